// Package gateway is the authentication gateway (BFF) between the browser,
// the identity provider and the report API. It orchestrates the OAuth2
// Authorization Code + PKCE flow, owns the in-memory session store and
// proxies the authenticated report download.
package gateway

import (
	"encoding/json"
	"net/http"

	"github.com/prosthetix/reports-platform/gateway/authflowrepo"
	"github.com/prosthetix/reports-platform/gateway/idp"
	"github.com/prosthetix/reports-platform/gateway/sessionrepo"
	"github.com/prosthetix/reports-platform/internal/config"
	"github.com/rs/zerolog/log"
)

type Server struct {
	env    string // Environment (e.g., "DEV", "PROD")
	mux    *http.ServeMux
	routes []string
	config config.Config

	idp      idp.Client
	sessions sessionrepo.Repo
	pending  authflowrepo.Repo

	reportsClient *http.Client
}

func New(cfg config.Config, idpClient idp.Client, sessionRepo sessionrepo.Repo, pendingRepo authflowrepo.Repo) *Server {
	s := &Server{
		mux:      http.NewServeMux(),
		config:   cfg,
		idp:      idpClient,
		sessions: sessionRepo,
		pending:  pendingRepo,
		reportsClient: &http.Client{
			Timeout: cfg.GetProxyTimeout(),
		},
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
