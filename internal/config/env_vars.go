package config

import (
	"fmt"
	"os"
)

const (
	portEnvVar       = "PORT"
	reportPortEnvVar = "REPORT_API_PORT"
	appNameVar       = "APP_NAME"
	frontendVar      = "FRONTEND_URL"
	gatewayVar       = "GATEWAY_URL"
)

type EnvVars struct{}

var _ EnvConfig = EnvVars{}

func (EnvVars) GetPort() string {
	return listenAddr(GetEnv(portEnvVar, "8000"))
}

// GetReportAPIPort returns the report API's listen address. The gateway and
// the report API share one configuration package, so the two listen ports
// are separate variables.
func (EnvVars) GetReportAPIPort() string {
	return listenAddr(GetEnv(reportPortEnvVar, "8081"))
}

func listenAddr(port string) string {
	if port != "" && port[0] != ':' {
		port = fmt.Sprintf(":%s", port)
	}
	return port
}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameVar, "Prosthesis Reports")
}

func (EnvVars) GetEnv() string {
	env := os.Getenv("ENV")
	if env == "" {
		return "DEV"
	}
	return env
}

// GetFrontendURL returns the front-end origin the gateway redirects to after
// a completed login, and the origin allowed by CORS.
func (EnvVars) GetFrontendURL() string {
	return GetEnv(frontendVar, "http://localhost:3000")
}

// GetGatewayURL returns the externally visible base URL of the gateway.
// Used to build the registered OAuth redirect URI.
func (EnvVars) GetGatewayURL() string {
	return GetEnv(gatewayVar, "http://localhost:8000")
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}
