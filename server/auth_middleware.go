package server

import (
	"context"
	"net/http"
	"strings"

	"github.com/mkhasa/admin-gateway/session"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

// ContextKeySession stores the caller's session as an immutable value.
// It is set once by the guard and only ever read downstream.
const ContextKeySession ContextKey = "session"

// GuardResult is the outcome of the session guard, decided before the
// protected handler is constructed. Navigation is the middleware's
// translation of a Denied result, never a side effect of the check itself.
type GuardResult struct {
	Allowed bool
	Session session.Session
	Reason  error // set when denied
}

// CheckSession resolves the session cookie to a guard decision.
func (s *Server) CheckSession(r *http.Request) GuardResult {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil || cookie.Value == "" {
		return GuardResult{Reason: http.ErrNoCookie}
	}

	sess, err := s.auth.CurrentSession(cookie.Value)
	if err != nil {
		return GuardResult{Reason: err}
	}

	return GuardResult{Allowed: true, Session: sess}
}

// RequireSession guards a protected route. A denied browser navigation is
// redirected to the login page; a denied API call gets a 401 so the front
// end can handle the transition itself.
func (s *Server) RequireSession(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result := s.CheckSession(r)
		if !result.Allowed {
			if wantsHTML(r) {
				http.Redirect(w, r, RouteLogin, http.StatusSeeOther)
				return
			}
			writeError(w, http.StatusUnauthorized, "unauthorized", "authentication required")
			return
		}

		ctx := context.WithValue(r.Context(), ContextKeySession, result.Session)
		next(w, r.WithContext(ctx))
	}
}

// SessionFromContext returns the session the guard attached to the request.
func SessionFromContext(ctx context.Context) (session.Session, bool) {
	sess, ok := ctx.Value(ContextKeySession).(session.Session)
	return sess, ok
}

// wantsHTML distinguishes a browser navigation from an XHR/fetch call.
func wantsHTML(r *http.Request) bool {
	accept := r.Header.Get("Accept")
	return strings.Contains(accept, "text/html")
}
