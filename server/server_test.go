package server_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mkhasa/admin-gateway/internal/config"
	"github.com/mkhasa/admin-gateway/server"
	"github.com/mkhasa/admin-gateway/session"
)

const (
	testUserID       = "u1"
	testUserEmail    = "admin@x.com"
	testUserPassword = "secret"
	testToken        = "t1"
)

type testConfig struct {
	config.Cors
	config.Relay
	baseURL string
}

func (c testConfig) GetPort() string                 { return ":0" }
func (c testConfig) GetAppName() string              { return "test" }
func (c testConfig) GetEnv() string                  { return "TEST" }
func (c testConfig) GetBaseURL() string              { return c.baseURL }
func (c testConfig) GetSessionSecret() string        { return "test-secret" }
func (c testConfig) GetMaxSessionAge() time.Duration { return time.Hour }

var _ config.Config = testConfig{}

// upstreamRequest captures one request the fake backend received.
type upstreamRequest struct {
	Method        string
	Path          string
	Body          string
	ContentType   string
	Authorization string
}

// fakeUpstream stands in for the external e-commerce backend. It always
// answers the login route; everything else is served from Routes or falls
// back to an empty object. The request log is mutex-guarded because the
// dashboard fan-out hits it concurrently.
type fakeUpstream struct {
	mu       sync.Mutex
	requests []upstreamRequest
	Routes   map[string]func(w http.ResponseWriter, r *http.Request)
}

func (f *fakeUpstream) record(req upstreamRequest) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
}

func (f *fakeUpstream) Requests() []upstreamRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]upstreamRequest(nil), f.requests...)
}

func (f *fakeUpstream) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		r.Body = io.NopCloser(bytes.NewReader(body))
		f.record(upstreamRequest{
			Method:        r.Method,
			Path:          r.URL.Path,
			Body:          string(body),
			ContentType:   r.Header.Get("Content-Type"),
			Authorization: r.Header.Get("Authorization"),
		})

		if r.URL.Path == "/admin/login" {
			var creds map[string]string
			_ = json.Unmarshal(body, &creds)
			if creds["email"] == testUserEmail && creds["password"] == testUserPassword {
				_, _ = w.Write([]byte(`{"doesUserEmailExist":{"_id":"` + testUserID + `","name":"Ada","email":"` + testUserEmail + `"},"token":"` + testToken + `"}`))
			} else {
				w.WriteHeader(http.StatusUnauthorized)
			}
			return
		}

		if h, ok := f.Routes[r.URL.Path]; ok {
			h(w, r)
			return
		}
		_, _ = w.Write([]byte(`{}`))
	}
}

func (f *fakeUpstream) lastPath(t *testing.T) string {
	t.Helper()
	requests := f.Requests()
	require.NotEmpty(t, requests)
	return requests[len(requests)-1].Path
}

func (f *fakeUpstream) lastRequest(t *testing.T) upstreamRequest {
	t.Helper()
	requests := f.Requests()
	require.NotEmpty(t, requests)
	return requests[len(requests)-1]
}

func jsonRoute(body string) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}
}

type testFixture struct {
	server   *server.Server
	upstream *fakeUpstream
}

func setupTestFixture(t *testing.T) *testFixture {
	t.Helper()

	upstream := &fakeUpstream{Routes: map[string]func(http.ResponseWriter, *http.Request){}}
	upstreamServer := httptest.NewServer(upstream.handler())
	t.Cleanup(upstreamServer.Close)

	srv, err := server.New(testConfig{baseURL: upstreamServer.URL}, session.NewInMemoryRepo())
	require.NoError(t, err)

	return &testFixture{server: srv, upstream: upstream}
}

// do serves a request straight through the gateway's mux.
func (f *testFixture) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	f.server.ServeHTTP(rec, req)
	return rec
}

// login authenticates and returns the session cookie.
func (f *testFixture) login(t *testing.T) *http.Cookie {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":"`+testUserEmail+`","password":"`+testUserPassword+`"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := f.do(req)
	require.Equal(t, http.StatusOK, rec.Code)

	for _, c := range rec.Result().Cookies() {
		if c.Name == "mkhasa_session" && c.Value != "" {
			return c
		}
	}
	t.Fatal("login response carried no session cookie")
	return nil
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}

// mutableConfig lets a test change the base URL after the gateway is
// built; the address is read per relay call.
type mutableConfig struct {
	testConfig
	base *string
}

func (c mutableConfig) GetBaseURL() string { return *c.base }

// setupFixtureLosingBaseURL builds a gateway, logs in while the backend
// is reachable, then drops the configured base address.
func setupFixtureLosingBaseURL(t *testing.T) (*testFixture, *http.Cookie) {
	t.Helper()

	upstream := &fakeUpstream{Routes: map[string]func(http.ResponseWriter, *http.Request){}}
	upstreamServer := httptest.NewServer(upstream.handler())
	t.Cleanup(upstreamServer.Close)

	base := upstreamServer.URL
	srv, err := server.New(mutableConfig{base: &base}, session.NewInMemoryRepo())
	require.NoError(t, err)

	f := &testFixture{server: srv, upstream: upstream}
	cookie := f.login(t)
	base = ""
	return f, cookie
}
