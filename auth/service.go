package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/mkhasa/admin-gateway/backend"
	"github.com/mkhasa/admin-gateway/internal/errors"
	"github.com/mkhasa/admin-gateway/session"
)

// Login is the part of the backend client the session bridge depends on.
type Login interface {
	Login(ctx context.Context, email, password string) (*backend.LoginResult, error)
}

// Service is the session bridge: it exchanges credentials for a backend
// identity, mints the local session, and answers "who is this?" for every
// protected request. A browser context moves Anonymous -> Authenticating ->
// Authenticated through Authenticate, and back to Anonymous only through
// Logout; a failed attempt returns to Anonymous with no retry.
type Service struct {
	backend  Login
	sessions session.Repo
	tokens   *session.Manager
	nowTime  func() time.Time // nowTime function (injectable for testing)
}

// ServiceOption defines a function type to modify the Service instance.
type ServiceOption func(*Service)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) ServiceOption {
	return func(s *Service) {
		s.nowTime = nowFunc
	}
}

// NewService initializes the session bridge with required dependencies.
func NewService(backendClient Login, sessions session.Repo, tokens *session.Manager, options ...ServiceOption) (*Service, error) {
	if backendClient == nil {
		return nil, errors.Wrapf(errors.ErrInternal, "[NewService] backend client is required")
	}
	if sessions == nil {
		return nil, errors.Wrapf(errors.ErrInternal, "[NewService] session repo is required")
	}
	if tokens == nil {
		return nil, errors.Wrapf(errors.ErrInternal, "[NewService] session token manager is required")
	}

	service := &Service{
		backend:  backendClient,
		sessions: sessions,
		tokens:   tokens,
		nowTime:  time.Now,
	}

	for _, opt := range options {
		opt(service)
	}

	return service, nil
}

// Authenticate exchanges credentials for a session. On success it stores
// the session and returns it together with the signed cookie token. Every
// failure beyond input validation is InvalidCredentials; the cause has
// already been logged by the backend client.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*session.Session, string, error) {
	if err := ValidateCredentials(email, password); err != nil {
		return nil, "", err
	}

	result, err := s.backend.Login(ctx, email, password)
	if err != nil {
		if errors.Is(err, errors.ErrConfiguration) {
			return nil, "", err
		}
		return nil, "", errors.ErrInvalidCredentials
	}

	now := s.nowTime()
	sess := session.Session{
		ID:          uuid.New().String(),
		UserID:      result.UserID,
		AccessToken: result.Token,
		Name:        result.Name,
		Email:       result.Email,
		CreatedAt:   now,
		ExpiresAt:   now.Add(s.tokens.MaxAge()),
	}

	if err := s.sessions.Upsert(sess.ID, sess); err != nil {
		log.Err(err).Str("userID", sess.UserID).Msg("Failed to store session")
		return nil, "", errors.Wrapf(errors.ErrInternal, "storing session: %v", err)
	}

	signed, err := s.tokens.Mint(sess)
	if err != nil {
		log.Err(err).Str("userID", sess.UserID).Msg("Failed to mint session token")
		return nil, "", errors.Wrapf(errors.ErrInternal, "minting session token: %v", err)
	}

	log.Info().Str("userID", sess.UserID).Msg("Admin logged in")
	return &sess, signed, nil
}

// CurrentSession resolves a raw cookie token to the session it names, or
// reports absence. Expiry is checked against the repo copy so a revoked
// or timed-out session fails even if the token itself still verifies.
func (s *Service) CurrentSession(rawToken string) (session.Session, error) {
	sid, err := s.tokens.Verify(rawToken)
	if err != nil {
		return session.Session{}, err
	}

	sess, err := s.sessions.Get(sid)
	if err != nil {
		return session.Session{}, errors.ErrSessionNotFound
	}
	if sess.Expired(s.nowTime()) {
		_ = s.sessions.Delete(sid)
		return session.Session{}, errors.ErrSessionExpired
	}
	return sess, nil
}

// Logout revokes the session named by the raw cookie token. Logging out
// with a token that no longer resolves is not an error.
func (s *Service) Logout(rawToken string) error {
	sid, err := s.tokens.Verify(rawToken)
	if err != nil {
		return nil
	}
	if err := s.sessions.Delete(sid); err != nil {
		return errors.Wrapf(errors.ErrInternal, "deleting session: %v", err)
	}
	log.Info().Str("sessionID", sid).Msg("Admin logged out")
	return nil
}
