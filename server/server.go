package server

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/mkhasa/admin-gateway/auth"
	"github.com/mkhasa/admin-gateway/backend"
	"github.com/mkhasa/admin-gateway/internal/config"
	"github.com/mkhasa/admin-gateway/relay"
	"github.com/mkhasa/admin-gateway/session"
)

type Server struct {
	env      string // Environment (e.g., "DEV", "PROD")
	mux      *http.ServeMux
	routes   []string
	config   config.Config
	auth     *auth.Service
	backend  *backend.Client
	relay    *relay.Forwarder
	sessions session.Repo
}

func New(cfg config.Config, sessionRepo session.Repo) (*Server, error) {
	tokenManager, err := session.NewManager(cfg)
	if err != nil {
		return nil, fmt.Errorf("[Server New] failed to create session token manager: %w", err)
	}

	backendClient := backend.New(cfg)

	authService, err := auth.NewService(backendClient, sessionRepo, tokenManager)
	if err != nil {
		return nil, fmt.Errorf("[Server New] failed to create session bridge: %w", err)
	}

	s := &Server{
		mux:      http.NewServeMux(),
		config:   cfg,
		auth:     authService,
		backend:  backendClient,
		relay:    relay.New(backendClient, cfg),
		sessions: sessionRepo,
	}
	s.env = cfg.GetEnv()

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

func logRoute(method, path string) {
	var displayMethod string
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := methodColors[method]; ok {
		displayMethod = color + paddedMethod + ResetColor
	} else {
		displayMethod = Gray + paddedMethod + ResetColor
	}
	log.Printf("[%-19s] %s\n", displayMethod, path)
}

// Helper function to determine the scheme (http/https)
func getScheme(r *http.Request) string {
	if r.TLS != nil {
		return "https"
	}
	if scheme := r.Header.Get("X-Forwarded-Proto"); scheme != "" {
		return scheme
	}
	return "http"
}
