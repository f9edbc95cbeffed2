package reportsrv

import "github.com/prometheus/client_golang/prometheus/promhttp"

const (
	RouteReports     = "/reports"
	RouteHealth      = "/health"
	RouteMetrics     = "/metrics"
	RouteTestIdP     = "/test/keycloak"
	RouteTestJWKS    = "/test/jwks"
	RouteTestToken   = "/test/token-info"
	RouteTestCurrent = "/test/current-user"
)

func (s *Server) initRoutes() {
	s.RegisterRouteFunc("GET "+RouteReports, s.RequireToken(s.ReportsHandler()))
	s.RegisterRouteFunc("GET "+RouteHealth, s.HealthHandler())
	s.RegisterRouteHandler("GET "+RouteMetrics, promhttp.Handler())

	// Diagnostic endpoints for connectivity checks; not part of the core
	// contract.
	s.RegisterRouteFunc("GET "+RouteTestIdP, s.TestIdPHandler())
	s.RegisterRouteFunc("GET "+RouteTestJWKS, s.TestJWKSHandler())
	s.RegisterRouteFunc("GET "+RouteTestToken, s.RequireToken(s.TestTokenInfoHandler()))
	s.RegisterRouteFunc("GET "+RouteTestCurrent, s.RequireToken(s.TestCurrentUserHandler()))
}
