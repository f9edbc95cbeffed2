package gateway

const (
	RouteHealth       = "/health"
	RouteMetrics      = "/metrics"
	RouteAuthStatus   = "/auth/status"
	RouteAuthLogin    = "/auth/login"
	RouteAuthCallback = "/auth/callback"
	RouteAuthUser     = "/auth/user"
	RouteAuthLogout   = "/auth/logout"
	RouteAPIReports   = "/api/reports"
)
