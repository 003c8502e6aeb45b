package server

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"
)

const (
	// sessionCookieName is the name of the cookie carrying the signed
	// session token
	sessionCookieName = "mkhasa_session"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	UserID string `json:"userId"`
	Name   string `json:"name,omitempty"`
	Email  string `json:"email,omitempty"`
}

// LoginHandler exchanges credentials for a session (POST /auth/login).
// The response carries the identity; the session token travels only in
// the HttpOnly cookie.
func (s *Server) LoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", "request body must be JSON")
			return
		}

		sess, signed, err := s.auth.Authenticate(r.Context(), req.Email, req.Password)
		if err != nil {
			respondWithError(w, err)
			return
		}

		s.setSessionCookie(w, r, signed, int(sess.ExpiresAt.Sub(sess.CreatedAt).Seconds()))
		writeJSON(w, http.StatusOK, sessionResponse{
			UserID: sess.UserID,
			Name:   sess.Name,
			Email:  sess.Email,
		})
	}
}

// SessionHandler reports the current identity (GET /auth/session), or 401
// when the browser context is anonymous.
func (s *Server) SessionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result := s.CheckSession(r)
		if !result.Allowed {
			writeError(w, http.StatusUnauthorized, "unauthorized", "no active session")
			return
		}
		writeJSON(w, http.StatusOK, sessionResponse{
			UserID: result.Session.UserID,
			Name:   result.Session.Name,
			Email:  result.Session.Email,
		})
	}
}

// LogoutHandler revokes the session and sends the browser back to the
// login page (GET /auth/logout).
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if cookie, err := r.Cookie(sessionCookieName); err == nil && cookie.Value != "" {
			if err := s.auth.Logout(cookie.Value); err != nil {
				log.Err(err).Msg("Failed to revoke session on logout")
			}
		}

		s.setSessionCookie(w, r, "", -1)
		if wantsHTML(r) {
			http.Redirect(w, r, RouteLogin, http.StatusSeeOther)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
	}
}

func (s *Server) setSessionCookie(w http.ResponseWriter, r *http.Request, value string, maxAge int) {
	isSecure := getScheme(r) == "https"

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   isSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   maxAge,
	})
}
