package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mkhasa/admin-gateway/auth"
	"github.com/mkhasa/admin-gateway/backend"
	"github.com/mkhasa/admin-gateway/internal/config"
	"github.com/mkhasa/admin-gateway/internal/errors"
	"github.com/mkhasa/admin-gateway/session"
)

const (
	testUserID       = "u1"
	testUserEmail    = "admin@x.com"
	testUserPassword = "secret"
	testToken        = "t1"
)

type testSecurity struct {
	maxAge time.Duration
}

func (testSecurity) GetSessionSecret() string { return "test-secret" }

func (s testSecurity) GetMaxSessionAge() time.Duration {
	if s.maxAge != 0 {
		return s.maxAge
	}
	return time.Hour
}

var _ config.SecurityConfig = testSecurity{}

// fakeBackend implements auth.Login with canned results.
type fakeBackend struct {
	result *backend.LoginResult
	err    error
	calls  int
}

func (f *fakeBackend) Login(ctx context.Context, email, password string) (*backend.LoginResult, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

type testFixture struct {
	backend  *fakeBackend
	sessions session.Repo
	service  *auth.Service
}

func setupTestFixture(t *testing.T, be *fakeBackend, options ...auth.ServiceOption) *testFixture {
	t.Helper()

	repo := session.NewInMemoryRepo()
	manager, err := session.NewManager(testSecurity{})
	require.NoError(t, err)

	service, err := auth.NewService(be, repo, manager, options...)
	require.NoError(t, err)

	return &testFixture{backend: be, sessions: repo, service: service}
}

func validBackend() *fakeBackend {
	return &fakeBackend{result: &backend.LoginResult{
		UserID: testUserID,
		Name:   "Ada",
		Email:  testUserEmail,
		Token:  testToken,
	}}
}

func TestAuthenticateSuccess(t *testing.T) {
	f := setupTestFixture(t, validBackend())

	sess, signed, err := f.service.Authenticate(context.Background(), testUserEmail, testUserPassword)
	require.NoError(t, err)
	require.Equal(t, testUserID, sess.UserID)
	require.Equal(t, testToken, sess.AccessToken)
	require.NotEmpty(t, sess.ID)
	require.NotEmpty(t, signed)

	stored, err := f.sessions.Get(sess.ID)
	require.NoError(t, err)
	require.Equal(t, *sess, stored)
}

func TestAuthenticateInvalidCredentials(t *testing.T) {
	f := setupTestFixture(t, &fakeBackend{err: errors.ErrInvalidCredentials})

	_, _, err := f.service.Authenticate(context.Background(), testUserEmail, "wrong")
	require.ErrorIs(t, err, errors.ErrInvalidCredentials)

	// No session may exist after a failed attempt.
	_, err = f.service.CurrentSession("")
	require.Error(t, err)
}

func TestAuthenticateConfigurationErrorIsNotMasked(t *testing.T) {
	f := setupTestFixture(t, &fakeBackend{err: errors.Wrapf(errors.ErrConfiguration, "BASE_URL is not defined")})

	_, _, err := f.service.Authenticate(context.Background(), testUserEmail, testUserPassword)
	require.ErrorIs(t, err, errors.ErrConfiguration)
}

func TestAuthenticateValidatesCredentialsFirst(t *testing.T) {
	f := setupTestFixture(t, validBackend())

	_, _, err := f.service.Authenticate(context.Background(), "", "")
	require.ErrorIs(t, err, errors.ErrValidation)
	require.Zero(t, f.backend.calls, "validation failure must not reach the backend")

	var fieldErrs errors.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	require.Contains(t, fieldErrs, "email")
	require.Contains(t, fieldErrs, "password")
}

func TestAuthenticateIsNotRetried(t *testing.T) {
	f := setupTestFixture(t, &fakeBackend{err: errors.ErrInvalidCredentials})

	_, _, _ = f.service.Authenticate(context.Background(), testUserEmail, testUserPassword)
	require.Equal(t, 1, f.backend.calls)
}

func TestCurrentSessionRoundTrip(t *testing.T) {
	f := setupTestFixture(t, validBackend())

	sess, signed, err := f.service.Authenticate(context.Background(), testUserEmail, testUserPassword)
	require.NoError(t, err)

	current, err := f.service.CurrentSession(signed)
	require.NoError(t, err)
	require.Equal(t, *sess, current)
}

func TestCurrentSessionRejectsGarbageToken(t *testing.T) {
	f := setupTestFixture(t, validBackend())

	_, err := f.service.CurrentSession("not-a-token")
	require.ErrorIs(t, err, errors.ErrSessionNotFound)
}

func TestCurrentSessionExpires(t *testing.T) {
	now := time.Now()
	f := setupTestFixture(t, validBackend(), auth.WithNowTime(func() time.Time { return now }))

	_, signed, err := f.service.Authenticate(context.Background(), testUserEmail, testUserPassword)
	require.NoError(t, err)

	// Advance past the session lifetime; the repo copy is what expires.
	now = now.Add(2 * time.Hour)
	_, err = f.service.CurrentSession(signed)
	require.Error(t, err)
}

func TestLogoutRevokesSession(t *testing.T) {
	f := setupTestFixture(t, validBackend())

	sess, signed, err := f.service.Authenticate(context.Background(), testUserEmail, testUserPassword)
	require.NoError(t, err)

	require.NoError(t, f.service.Logout(signed))

	_, err = f.service.CurrentSession(signed)
	require.ErrorIs(t, err, errors.ErrSessionNotFound)
	_, err = f.sessions.Get(sess.ID)
	require.ErrorIs(t, err, errors.ErrSessionNotFound)
}

func TestLogoutWithDeadTokenIsNoError(t *testing.T) {
	f := setupTestFixture(t, validBackend())

	require.NoError(t, f.service.Logout("not-a-token"))
}
