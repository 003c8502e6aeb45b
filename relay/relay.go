// Package relay implements the same-origin request relay: it forwards
// browser-originated calls to the configured backend base address,
// optionally scoping them by the caller's admin id, and hands the
// backend's JSON body back verbatim. No retries, no caching; each call
// is independent and at-most-once.
package relay

import (
	"context"
	"io"
	"net/http"

	"github.com/mkhasa/admin-gateway/backend"
	"github.com/mkhasa/admin-gateway/internal/config"
	"github.com/mkhasa/admin-gateway/internal/errors"
)

// Forwarder builds and issues the upstream requests for the /api/proxy
// route family.
type Forwarder struct {
	client *backend.Client
	config config.RelayConfig
}

func New(client *backend.Client, cfg config.RelayConfig) *Forwarder {
	return &Forwarder{
		client: client,
		config: cfg,
	}
}

// GetURL resolves the upstream URL for a relayed GET. The admin id is
// appended as a trailing path segment unless the path is identity
// agnostic per configuration.
func (f *Forwarder) GetURL(path, adminID string) (string, error) {
	if f.config.GetPublicPaths().IsPublic(path) || adminID == "" {
		return f.client.URL(path)
	}
	return f.client.URL(path, adminID)
}

// Get forwards a read to base/path (plus the admin id suffix where it
// applies) and returns the body verbatim, whatever status the backend
// answered with.
func (f *Forwarder) Get(ctx context.Context, path, adminID string) ([]byte, error) {
	url, err := f.GetURL(path, adminID)
	if err != nil {
		return nil, err
	}
	body, _, err := f.client.Do(ctx, http.MethodGet, url, nil, nil)
	return body, err
}

// Post forwards a JSON write to base/path/adminID. The admin id is
// required: every backend write route is scoped by it.
func (f *Forwarder) Post(ctx context.Context, path, adminID string, body io.Reader) ([]byte, error) {
	if adminID == "" {
		return nil, errors.FieldErrors{"adminId": "adminId is required"}
	}
	url, err := f.client.URL(path, adminID)
	if err != nil {
		return nil, err
	}
	header := http.Header{}
	header.Set("Content-Type", "application/json")
	respBody, _, err := f.client.Do(ctx, http.MethodPost, url, body, header)
	return respBody, err
}

// Delete forwards a delete to base/path with no identity suffix and fails
// loudly on a non-success status.
func (f *Forwarder) Delete(ctx context.Context, path string) ([]byte, error) {
	url, err := f.client.URL(path)
	if err != nil {
		return nil, err
	}
	body, status, err := f.client.Do(ctx, http.MethodDelete, url, nil, nil)
	if err != nil {
		return nil, err
	}
	if status < 200 || status >= 300 {
		return nil, errors.Wrapf(errors.ErrRelayFailure, "DELETE %s: status %d", url, status)
	}
	return body, nil
}

// Put forwards a multipart body unmodified to base/path (image-bearing
// updates) and fails loudly on a non-success status. contentType must be
// the caller's original Content-Type header so the multipart boundary
// survives the hop.
func (f *Forwarder) Put(ctx context.Context, path, contentType string, body io.Reader) ([]byte, error) {
	url, err := f.client.URL(path)
	if err != nil {
		return nil, err
	}
	header := http.Header{}
	if contentType != "" {
		header.Set("Content-Type", contentType)
	}
	respBody, status, err := f.client.Do(ctx, http.MethodPut, url, body, header)
	if err != nil {
		return nil, err
	}
	if status < 200 || status >= 300 {
		return nil, errors.Wrapf(errors.ErrRelayFailure, "PUT %s: status %d", url, status)
	}
	return respBody, nil
}
