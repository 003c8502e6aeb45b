package session

import (
	"crypto/sha256"
	"fmt"
	"io"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/hkdf"

	"github.com/mkhasa/admin-gateway/internal/config"
	"github.com/mkhasa/admin-gateway/internal/errors"
)

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

const signingKeyLength = 32

// Manager mints and verifies the browser-facing session tokens. A token
// is an HS256 JWT carrying the session ID plus the display identity; the
// backend access token stays server-side in the repo, never in the cookie.
type Manager struct {
	signingKey []byte
	maxAge     time.Duration
}

// NewManager derives the HMAC signing key from the configured secret via
// HKDF-SHA256 so the raw secret string is never used as key material
// directly.
func NewManager(cfg config.SecurityConfig) (*Manager, error) {
	secret := cfg.GetSessionSecret()
	if secret == "" {
		return nil, fmt.Errorf("[NewManager] session secret is required")
	}

	h := hkdf.New(sha256.New, []byte(secret), nil, []byte("session-signing-key"))
	key := make([]byte, signingKeyLength)
	if _, err := io.ReadFull(h, key); err != nil {
		return nil, fmt.Errorf("[NewManager] deriving signing key: %w", err)
	}

	return &Manager{
		signingKey: key,
		maxAge:     cfg.GetMaxSessionAge(),
	}, nil
}

// MaxAge returns the configured session lifetime.
func (m *Manager) MaxAge() time.Duration {
	return m.maxAge
}

// Mint signs a token for the given session.
func (m *Manager) Mint(s Session) (string, error) {
	now := NowTimeFunc()
	claims := jwtlib.MapClaims{
		"sid":   s.ID,
		"sub":   s.UserID,
		"name":  s.Name,
		"email": s.Email,
		"iat":   now.Unix(),
		"exp":   now.Add(m.maxAge).Unix(),
	}

	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.signingKey)
	if err != nil {
		return "", fmt.Errorf("[Manager Mint] signing session token: %w", err)
	}
	return signed, nil
}

// Verify checks a raw token's signature and expiry and returns the session
// ID it carries.
func (m *Manager) Verify(rawToken string) (string, error) {
	token, err := jwtlib.Parse(rawToken, func(t *jwtlib.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwtlib.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return m.signingKey, nil
	}, jwtlib.WithTimeFunc(func() time.Time { return NowTimeFunc() }))
	if err != nil {
		if errors.Is(err, jwtlib.ErrTokenExpired) {
			return "", errors.ErrSessionExpired
		}
		return "", errors.Wrapf(errors.ErrSessionNotFound, "parsing session token: %v", err)
	}

	claims, ok := token.Claims.(jwtlib.MapClaims)
	if !ok {
		return "", errors.Wrapf(errors.ErrSessionNotFound, "unexpected claims type")
	}
	sid, _ := claims["sid"].(string)
	if sid == "" {
		return "", errors.Wrapf(errors.ErrSessionNotFound, "token has no session id")
	}
	return sid, nil
}
