package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mkhasa/admin-gateway/internal/config"
	"github.com/mkhasa/admin-gateway/internal/errors"
	"github.com/mkhasa/admin-gateway/internal/utils"
	"github.com/rs/zerolog/log"
)

const loginPath = "admin/login"

// Client talks to the external e-commerce REST backend. It is the only
// place in the gateway that knows the backend base address; everything
// else (session bridge, relay, catalog handlers) goes through it.
type Client struct {
	config     config.EnvConfig
	httpClient *http.Client
}

// Option modifies a Client instance.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client (primarily for testing).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

func New(cfg config.EnvConfig, options ...Option) *Client {
	c := &Client{
		config:     cfg,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

// URL joins the configured base address with the given path segments.
// The base address is read per call so a missing value surfaces as a
// configuration error on the request that needed it, not at startup.
func (c *Client) URL(segments ...string) (string, error) {
	base := c.config.GetBaseURL()
	if base == "" {
		return "", errors.Wrapf(errors.ErrConfiguration, "BASE_URL is not defined")
	}
	parts := make([]string, 0, len(segments)+1)
	parts = append(parts, strings.TrimSuffix(base, "/"))
	for _, s := range segments {
		s = strings.Trim(s, "/")
		if s == "" {
			continue
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, "/"), nil
}

// Do issues a single request against the backend and returns the raw
// response body and status code. No retries: every call is at-most-once,
// a failure is terminal for that attempt.
func (c *Client) Do(ctx context.Context, method, url string, body io.Reader, header http.Header) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, 0, fmt.Errorf("[Client Do] http.NewRequestWithContext: %w", err)
	}
	for k, vals := range header {
		for _, v := range vals {
			req.Header.Add(k, v)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, errors.Wrapf(errors.ErrRelayFailure, "%s %s: %v", method, url, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, errors.Wrapf(errors.ErrRelayFailure, "%s %s: reading body: %v", method, url, err)
	}
	return respBody, resp.StatusCode, nil
}

// GetJSON fetches a backend path and decodes the JSON body into out.
func (c *Client) GetJSON(ctx context.Context, out any, segments ...string) error {
	url, err := c.URL(segments...)
	if err != nil {
		return err
	}
	body, status, err := c.Do(ctx, http.MethodGet, url, nil, nil)
	if err != nil {
		return err
	}
	if status < 200 || status >= 300 {
		return errors.Wrapf(errors.ErrRelayFailure, "GET %s: status %d", url, status)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return errors.Wrapf(errors.ErrRelayFailure, "GET %s: decoding response: %v", url, err)
	}
	return nil
}

// LoginResult is the identity the backend returns on a successful
// credential exchange.
type LoginResult struct {
	UserID string
	Name   string
	Email  string
	Token  string
}

// The backend's login payload shape. The user record arrives under the
// "doesUserEmailExist" key.
type loginResponse struct {
	User  loginUser `json:"doesUserEmailExist"`
	Token string    `json:"token"`
}

type loginUser struct {
	ID    string  `json:"_id"`
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

// Login exchanges credentials for a backend identity and bearer token.
// Every failure mode beyond configuration collapses into
// ErrInvalidCredentials; the underlying cause is logged, not surfaced.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	url, err := c.URL(loginPath)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return nil, fmt.Errorf("[Client Login] marshalling credentials: %w", err)
	}

	header := http.Header{}
	header.Set("Content-Type", "application/json")
	body, status, err := c.Do(ctx, http.MethodPost, url, bytes.NewReader(payload), header)
	if err != nil {
		log.Err(err).Str("email", email).Msg("Backend login request failed")
		return nil, errors.ErrInvalidCredentials
	}
	if status < 200 || status >= 300 {
		log.Warn().Int("status", status).Str("email", email).Msg("Backend rejected login")
		return nil, errors.ErrInvalidCredentials
	}

	var resp loginResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		log.Err(err).Str("email", email).Msg("Backend login response could not be decoded")
		return nil, errors.ErrInvalidCredentials
	}
	if resp.User.ID == "" || resp.Token == "" {
		log.Warn().Str("email", email).Msg("Backend login response missing identity or token")
		return nil, errors.ErrInvalidCredentials
	}

	return &LoginResult{
		UserID: resp.User.ID,
		Name:   utils.Value(resp.User.Name),
		Email:  utils.Value(resp.User.Email),
		Token:  resp.Token,
	}, nil
}
