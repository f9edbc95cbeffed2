package config

import (
	"strconv"
	"time"
)

type OIDCConfig interface {
	GetIssuerURL() string
	GetClientID() string
	GetClientSecret() string
	GetSessionMaxAge() int
	GetUserInfoTimeout() time.Duration
	GetExchangeTimeout() time.Duration
	GetLogoutTimeout() time.Duration
}

type OIDC struct{}

var _ OIDCConfig = OIDC{}

// GetIssuerURL returns the identity provider's issuer URL, e.g.
// "http://keycloak:8080/realms/reports-realm". OIDC discovery resolves the
// authorization, token, userinfo, end-session and JWKS endpoints from it.
func (OIDC) GetIssuerURL() string {
	base := GetEnv("KEYCLOAK_URL", "http://keycloak:8080")
	realm := GetEnv("KEYCLOAK_REALM", "reports-realm")
	return base + "/realms/" + realm
}

func (OIDC) GetClientID() string {
	return GetEnv("KEYCLOAK_CLIENT_ID", "reports-bff")
}

func (OIDC) GetClientSecret() string {
	return GetEnv("KEYCLOAK_CLIENT_SECRET", "")
}

// GetSessionMaxAge returns the session cookie lifetime in seconds.
func (OIDC) GetSessionMaxAge() int {
	maxAge, err := strconv.Atoi(GetEnv("SESSION_MAX_AGE", "3600"))
	if err != nil {
		return 3600
	}
	return maxAge
}

func (OIDC) GetUserInfoTimeout() time.Duration {
	return 5 * time.Second
}

func (OIDC) GetExchangeTimeout() time.Duration {
	return 10 * time.Second
}

func (OIDC) GetLogoutTimeout() time.Duration {
	return 5 * time.Second
}
