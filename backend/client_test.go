package backend_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mkhasa/admin-gateway/backend"
	"github.com/mkhasa/admin-gateway/internal/errors"
)

const (
	testUserEmail    = "admin@x.com"
	testUserPassword = "secret"
)

type testConfig struct {
	baseURL string
}

func (c testConfig) GetPort() string    { return ":0" }
func (c testConfig) GetAppName() string { return "test" }
func (c testConfig) GetEnv() string     { return "TEST" }
func (c testConfig) GetBaseURL() string { return c.baseURL }

func newTestClient(t *testing.T, handler http.HandlerFunc) *backend.Client {
	t.Helper()
	upstream := httptest.NewServer(handler)
	t.Cleanup(upstream.Close)
	return backend.New(testConfig{baseURL: upstream.URL})
}

func TestURLJoinsSegments(t *testing.T) {
	client := backend.New(testConfig{baseURL: "https://api.example.com/api/v1/"})

	url, err := client.URL("all/products", "u1")
	require.NoError(t, err)
	require.Equal(t, "https://api.example.com/api/v1/all/products/u1", url)
}

func TestURLMissingBaseIsConfigurationError(t *testing.T) {
	client := backend.New(testConfig{})

	_, err := client.URL("all/products")
	require.ErrorIs(t, err, errors.ErrConfiguration)
}

func TestLoginSuccess(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/admin/login", r.URL.Path)

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		var creds map[string]string
		require.NoError(t, json.Unmarshal(body, &creds))
		require.Equal(t, testUserEmail, creds["email"])
		require.Equal(t, testUserPassword, creds["password"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"doesUserEmailExist":{"_id":"u1","name":"Ada","email":"admin@x.com"},"token":"t1"}`))
	})

	result, err := client.Login(context.Background(), testUserEmail, testUserPassword)
	require.NoError(t, err)
	require.Equal(t, "u1", result.UserID)
	require.Equal(t, "t1", result.Token)
	require.Equal(t, "Ada", result.Name)
	require.Equal(t, "admin@x.com", result.Email)
}

func TestLoginWithoutDisplayFields(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"doesUserEmailExist":{"_id":"u1"},"token":"t1"}`))
	})

	result, err := client.Login(context.Background(), testUserEmail, testUserPassword)
	require.NoError(t, err)
	require.Equal(t, "u1", result.UserID)
	require.Equal(t, "t1", result.Token)
	require.Empty(t, result.Name)
	require.Empty(t, result.Email)
}

func TestLoginRejectedIsInvalidCredentials(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := client.Login(context.Background(), testUserEmail, "wrong")
	require.ErrorIs(t, err, errors.ErrInvalidCredentials)
}

func TestLoginMalformedPayloadIsInvalidCredentials(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	})

	_, err := client.Login(context.Background(), testUserEmail, testUserPassword)
	require.ErrorIs(t, err, errors.ErrInvalidCredentials)
}

func TestLoginMissingTokenIsInvalidCredentials(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"doesUserEmailExist":{"_id":"u1"}}`))
	})

	_, err := client.Login(context.Background(), testUserEmail, testUserPassword)
	require.ErrorIs(t, err, errors.ErrInvalidCredentials)
}

func TestLoginMissingBaseURLIsConfigurationError(t *testing.T) {
	client := backend.New(testConfig{})

	_, err := client.Login(context.Background(), testUserEmail, testUserPassword)
	require.ErrorIs(t, err, errors.ErrConfiguration)
}

func TestGetJSONDecodesResponse(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/count/pending/order/u1", r.URL.Path)
		_, _ = w.Write([]byte(`7`))
	})

	var count int
	require.NoError(t, client.GetJSON(context.Background(), &count, "count/pending/order", "u1"))
	require.Equal(t, 7, count)
}

func TestGetJSONNonSuccessIsRelayFailure(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	var out any
	err := client.GetJSON(context.Background(), &out, "all/products")
	require.ErrorIs(t, err, errors.ErrRelayFailure)
}

func TestDoNetworkFailureIsRelayFailure(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	upstream.Close() // connection refused from here on

	client := backend.New(testConfig{baseURL: upstream.URL})
	_, _, err := client.Do(context.Background(), http.MethodGet, upstream.URL+"/all/products", nil, nil)
	require.ErrorIs(t, err, errors.ErrRelayFailure)
}
