// Package identity holds the verified identity claims shared between the
// gateway (which caches them in the session for display) and the report API
// (which re-derives them from the bearer token on every request).
package identity

import "strings"

// Identity is the result of validating a bearer token or fetching userinfo.
type Identity struct {
	Username   string `json:"preferred_username"`
	Email      string `json:"email"`
	Subject    string `json:"sub"`
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
	Name       string `json:"name"`
}

// DisplayName returns "given family" or falls back to the username.
func (id Identity) DisplayName() string {
	name := strings.TrimSpace(id.GivenName + " " + id.FamilyName)
	if name == "" {
		return id.Username
	}
	return name
}

// EmailOrDefault returns the email claim or a synthesized placeholder
// address when the provider did not supply one.
func (id Identity) EmailOrDefault() string {
	if id.Email != "" {
		return id.Email
	}
	return id.Username + "@example.com"
}

// Placeholder is the clearly-marked identity substituted when the userinfo
// fetch fails after a successful token exchange. Token validity is not
// best-effort, but the display claims are.
func Placeholder() Identity {
	return Identity{
		Username: "user_from_keycloak",
		Email:    "user@example.com",
		Subject:  "user_id",
	}
}
