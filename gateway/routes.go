package gateway

import "github.com/prometheus/client_golang/prometheus/promhttp"

func (s *Server) initRoutes() {
	s.RegisterRouteFunc("GET "+RouteHealth, s.HealthHandler())
	s.RegisterRouteHandler("GET "+RouteMetrics, promhttp.Handler())

	// OAuth2 Authorization Code + PKCE flow
	s.RegisterRouteFunc("GET "+RouteAuthLogin, ChainMiddleware(s.LoginHandler(), s.APIMiddleware()...))
	s.RegisterRouteFunc("GET "+RouteAuthCallback, ChainMiddleware(s.CallbackHandler(), s.APIMiddleware()...))
	s.RegisterRouteFunc("GET "+RouteAuthStatus, ChainMiddleware(s.StatusHandler(), s.APIMiddleware()...))
	s.RegisterRouteFunc("GET "+RouteAuthUser, ChainMiddleware(s.UserHandler(), s.APIMiddleware()...))
	s.RegisterRouteFunc("GET "+RouteAuthLogout, ChainMiddleware(s.LogoutHandler(), s.APIMiddleware()...))

	// Authenticated report download, proxied to the report API
	s.RegisterRouteFunc("GET "+RouteAPIReports, ChainMiddleware(s.ReportsProxyHandler(), s.APIMiddleware()...))
}
