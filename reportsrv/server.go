// Package reportsrv is the report API: a resource server that validates
// bearer tokens on every request, maps the verified identity to a scope
// key, and serves the rendered report artifact.
package reportsrv

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/prosthetix/reports-platform/internal/config"
	"github.com/prosthetix/reports-platform/report"
	"github.com/prosthetix/reports-platform/token"
	"github.com/rs/zerolog/log"
)

type Server struct {
	env      string
	mux      *http.ServeMux
	routes   []string
	config   config.Config
	verifier *token.Verifier
	store    *report.Store
}

func New(cfg config.Config, verifier *token.Verifier, store *report.Store) *Server {
	s := &Server{
		mux:      http.NewServeMux(),
		config:   cfg,
		verifier: verifier,
		store:    store,
	}
	s.env = cfg.GetEnv()

	s.initRoutes()
	s.logRoutes()

	return s
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
		log.Info().Str("route", route).Msg("registered")
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func jsonDecode(r io.Reader, dest any) error {
	return json.NewDecoder(r).Decode(dest)
}
