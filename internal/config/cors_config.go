package config

import "strings"

type Cors struct{}

var _ CorsConfig = Cors{}

type AllowedOrigins map[string]struct{}
type nullValue = struct{}

func (a AllowedOrigins) IsAllowedOrigin(origin string) bool {
	_, ok := a[origin]
	return ok
}

func (a AllowedOrigins) String() string {
	var origins []string
	for k := range a {
		origins = append(origins, k)
	}
	return strings.Join(origins, ", ")
}

// The browser front-end talks to the gateway cross-origin with credentials,
// so the frontend origin must be explicitly allow-listed.
func (Cors) GetAllowedOrigins() AllowedOrigins {
	return AllowedOrigins{
		EnvVars{}.GetFrontendURL(): nullValue{},
		"http://127.0.0.1:3000":    nullValue{},
	}
}

func (Cors) GetAllowedMethods() string {
	return "GET, POST, PUT, PATCH, DELETE"
}

func (Cors) GetAllowedHeaders() string {
	return "Content-Type, Authorization"
}
