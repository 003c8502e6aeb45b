package server

import (
	"net/http"

	"github.com/rs/zerolog/log"
)

// The relay route family: /api/proxy?path=<backend-suffix>&adminId=<id>.
// The path parameter is the backend route suffix with no leading slash;
// adminId scopes reads to the logged-in admin where the backend expects it.

func proxyParams(r *http.Request) (path, adminID string) {
	q := r.URL.Query()
	return q.Get("path"), q.Get("adminId")
}

// ProxyGetHandler forwards a read and returns the backend body verbatim.
func (s *Server) ProxyGetHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		path, adminID := proxyParams(r)
		if path == "" {
			writeError(w, http.StatusBadRequest, "bad_request", "path query parameter is required")
			return
		}

		body, err := s.relay.Get(r.Context(), path, adminID)
		if err != nil {
			log.Err(err).Str("path", path).Msg("Relay GET failed")
			respondWithError(w, err)
			return
		}
		writeRawJSON(w, http.StatusOK, body)
	}
}

// ProxyPostHandler forwards a JSON write to base/path/adminId.
func (s *Server) ProxyPostHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		path, adminID := proxyParams(r)
		if path == "" {
			writeError(w, http.StatusBadRequest, "bad_request", "path query parameter is required")
			return
		}

		body, err := s.relay.Post(r.Context(), path, adminID, r.Body)
		if err != nil {
			log.Err(err).Str("path", path).Msg("Relay POST failed")
			respondWithError(w, err)
			return
		}
		writeRawJSON(w, http.StatusOK, body)
	}
}

// ProxyPutHandler forwards a multipart update (image-bearing writes) and
// fails loudly on a non-success upstream status.
func (s *Server) ProxyPutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		path, _ := proxyParams(r)
		if path == "" {
			writeError(w, http.StatusBadRequest, "bad_request", "path query parameter is required")
			return
		}

		body, err := s.relay.Put(r.Context(), path, r.Header.Get("Content-Type"), r.Body)
		if err != nil {
			log.Err(err).Str("path", path).Msg("Relay PUT failed")
			respondWithError(w, err)
			return
		}
		writeRawJSON(w, http.StatusOK, body)
	}
}

// ProxyDeleteHandler forwards a delete and fails loudly on a non-success
// upstream status.
func (s *Server) ProxyDeleteHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		path, _ := proxyParams(r)
		if path == "" {
			writeError(w, http.StatusBadRequest, "bad_request", "path query parameter is required")
			return
		}

		body, err := s.relay.Delete(r.Context(), path)
		if err != nil {
			log.Err(err).Str("path", path).Msg("Relay DELETE failed")
			respondWithError(w, err)
			return
		}
		writeRawJSON(w, http.StatusOK, body)
	}
}
