// Package token is the report API's front door: it verifies bearer tokens
// issued by the identity provider against its published signing keys.
package token

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/prosthetix/reports-platform/identity"
	apperrors "github.com/prosthetix/reports-platform/internal/errors"
)

// Verified is the outcome of a successful token validation. Claims carries
// the raw claim set for diagnostic endpoints; it is never cached across
// requests.
type Verified struct {
	Identity identity.Identity
	Claims   map[string]any
}

// Verifier validates bearer tokens against the provider's key set.
type Verifier struct {
	keys *KeySet
}

// NewVerifier creates a verifier backed by the given key set.
func NewVerifier(keys *KeySet) *Verifier {
	return &Verifier{keys: keys}
}

// BearerToken extracts the bearer credential from an Authorization header.
// A missing or malformed header is an authentication failure.
func BearerToken(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", apperrors.Wrapf(apperrors.ErrUnauthenticated, "missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
		return "", apperrors.Wrapf(apperrors.ErrUnauthenticated, "invalid authorization header format")
	}

	return parts[1], nil
}

// Verify checks the token's signature, algorithm and expiry and extracts the
// fixed claim set. The signing algorithm is pinned to RS256: a token
// asserting any other algorithm is rejected outright, which defeats
// signature-algorithm confusion. The audience claim is deliberately NOT
// verified — single-client deployment policy, do not tighten without
// confirming the set of valid audiences.
func (v *Verifier) Verify(ctx context.Context, rawToken string) (*Verified, error) {
	var keyErr error
	keyFunc := func(t *jwtlib.Token) (interface{}, error) {
		kid, _ := t.Header["kid"].(string)
		if kid == "" {
			return nil, errors.New("token header missing kid")
		}
		key, err := v.keys.Key(ctx, kid)
		if err != nil {
			keyErr = err
			return nil, err
		}
		return key, nil
	}

	parsed, err := jwtlib.ParseWithClaims(rawToken, jwtlib.MapClaims{}, keyFunc,
		jwtlib.WithValidMethods([]string{RS256}),
		jwtlib.WithExpirationRequired(),
	)
	if err != nil {
		// Key-set infrastructure failures are not the caller's fault and are
		// reported as a verification error so they can be logged with detail.
		if keyErr != nil {
			return nil, fmt.Errorf("%w: %w", apperrors.ErrTokenVerification, keyErr)
		}
		switch {
		case errors.Is(err, jwtlib.ErrTokenExpired), errors.Is(err, jwtlib.ErrTokenSignatureInvalid):
			return nil, fmt.Errorf("%w: %w", apperrors.ErrUnauthenticated, err)
		default:
			return nil, fmt.Errorf("%w: %w", apperrors.ErrTokenVerification, err)
		}
	}

	claims, ok := parsed.Claims.(jwtlib.MapClaims)
	if !ok {
		return nil, apperrors.Wrapf(apperrors.ErrTokenVerification, "error extracting claims from token")
	}

	username, _ := claims["preferred_username"].(string)
	if username == "" {
		return nil, apperrors.Wrapf(apperrors.ErrUnauthenticated, "token missing username claim")
	}

	email, _ := claims["email"].(string)
	sub, _ := claims["sub"].(string)
	givenName, _ := claims["given_name"].(string)
	familyName, _ := claims["family_name"].(string)
	name, _ := claims["name"].(string)

	return &Verified{
		Identity: identity.Identity{
			Username:   username,
			Email:      email,
			Subject:    sub,
			GivenName:  givenName,
			FamilyName: familyName,
			Name:       name,
		},
		Claims: claims,
	}, nil
}
