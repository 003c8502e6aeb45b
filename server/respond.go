package server

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/mkhasa/admin-gateway/internal/errors"
)

const contentTypeJSON = "application/json; charset=utf-8"

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Err(err).Msg("Failed to encode response body")
	}
}

// writeRawJSON passes an upstream body through untouched so relayed
// responses stay byte-identical.
func writeRawJSON(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		log.Err(err).Msg("Failed to write response body")
	}
}

func writeError(w http.ResponseWriter, status int, kind, message string) {
	writeJSON(w, status, map[string]string{"error": kind, "message": message})
}

// respondWithError maps the gateway's error taxonomy onto HTTP responses.
func respondWithError(w http.ResponseWriter, err error) {
	var fieldErrs errors.FieldErrors
	switch {
	case errors.As(err, &fieldErrs):
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":  "validation",
			"fields": fieldErrs,
		})
	case errors.Is(err, errors.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "invalid_credentials", "incorrect email or password")
	case errors.Is(err, errors.ErrSessionNotFound), errors.Is(err, errors.ErrSessionExpired):
		writeError(w, http.StatusUnauthorized, "unauthorized", "authentication required")
	case errors.Is(err, errors.ErrConfiguration):
		writeError(w, http.StatusInternalServerError, "configuration", "BASE_URL is not defined")
	case errors.Is(err, errors.ErrRelayFailure):
		writeError(w, http.StatusBadGateway, "relay_failure", "could not reach the backend")
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}
