package session

import "time"

// Session is the authenticated identity held for a browser context after
// login. It is immutable after creation; the only transition out of it is
// an explicit logout, which removes it from the repo.
type Session struct {
	// Core identity
	ID     string
	UserID string

	// Bearer token issued by the backend. Treated as valid for the life
	// of the session; the backend does not document an expiry and the
	// gateway performs no refresh.
	AccessToken string

	// Optional display fields
	Name  string
	Email string

	// Session management
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Expired reports whether the session's local lifetime has elapsed at now.
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && s.ExpiresAt.Before(now)
}
