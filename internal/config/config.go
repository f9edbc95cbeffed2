package config

type Config interface {
	EnvConfig
	CorsConfig
	OIDCConfig
	StoreConfig
}

type EnvConfig interface {
	GetPort() string
	GetReportAPIPort() string
	GetAppName() string
	GetEnv() string
	GetFrontendURL() string
	GetGatewayURL() string
}

type CorsConfig interface {
	GetAllowedOrigins() AllowedOrigins
	GetAllowedMethods() string
	GetAllowedHeaders() string
}

type mainConfig struct {
	EnvVars
	Cors
	OIDC
	Store
}

func New() Config {
	return mainConfig{}
}
