package token

import (
	"context"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"sync"
	"time"

	apperrors "github.com/prosthetix/reports-platform/internal/errors"
)

// JWT algorithms (string values used in JWKs and headers)
const RS256 = "RS256"

// JWKS represents a JSON Web Key Set
type JWKS struct {
	Keys []JWK `json:"keys"`
}

// JWK represents a JSON Web Key
type JWK struct {
	Kty string `json:"kty"`           // Key type (RSA, EC)
	Use string `json:"use,omitempty"` // sig or enc
	Kid string `json:"kid,omitempty"` // Key ID
	Alg string `json:"alg,omitempty"` // Algorithm
	N   string `json:"n,omitempty"`   // Modulus
	E   string `json:"e,omitempty"`   // Exponent
}

// RSAPublicKey decodes the JWK modulus and exponent into an rsa.PublicKey.
func (k JWK) RSAPublicKey() (*rsa.PublicKey, error) {
	if k.Kty != "RSA" {
		return nil, fmt.Errorf("unsupported key type %q", k.Kty)
	}

	nBytes, err := base64.RawURLEncoding.DecodeString(k.N)
	if err != nil {
		return nil, fmt.Errorf("failed to decode modulus: %w", err)
	}

	eBytes, err := base64.RawURLEncoding.DecodeString(k.E)
	if err != nil {
		return nil, fmt.Errorf("failed to decode exponent: %w", err)
	}

	return &rsa.PublicKey{
		N: new(big.Int).SetBytes(nBytes),
		E: int(new(big.Int).SetBytes(eBytes).Int64()),
	}, nil
}

// KeySet fetches and caches the identity provider's public signing keys,
// indexed by key ID. An unknown kid triggers a single re-fetch so rotated
// keys are picked up without restarting the service.
type KeySet struct {
	jwksURL string
	client  *http.Client

	mu   sync.RWMutex
	keys map[string]*rsa.PublicKey
}

// NewKeySet creates a key set backed by the provider's JWKS endpoint.
func NewKeySet(jwksURL string) *KeySet {
	return &KeySet{
		jwksURL: jwksURL,
		client:  &http.Client{Timeout: 5 * time.Second},
		keys:    make(map[string]*rsa.PublicKey),
	}
}

// Key resolves the public key referenced by kid, refreshing the cached set
// when the kid is not known.
func (ks *KeySet) Key(ctx context.Context, kid string) (*rsa.PublicKey, error) {
	ks.mu.RLock()
	key, ok := ks.keys[kid]
	ks.mu.RUnlock()
	if ok {
		return key, nil
	}

	if err := ks.refresh(ctx); err != nil {
		return nil, apperrors.Wrapf(err, "failed to fetch signing keys")
	}

	ks.mu.RLock()
	key, ok = ks.keys[kid]
	ks.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("no signing key found for kid %q", kid)
	}
	return key, nil
}

func (ks *KeySet) refresh(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ks.jwksURL, nil)
	if err != nil {
		return fmt.Errorf("failed to build JWKS request: %w", err)
	}

	resp, err := ks.client.Do(req)
	if err != nil {
		return fmt.Errorf("JWKS request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("JWKS endpoint returned status %d", resp.StatusCode)
	}

	var jwks JWKS
	if err := json.NewDecoder(resp.Body).Decode(&jwks); err != nil {
		return fmt.Errorf("failed to decode JWKS document: %w", err)
	}

	keys := make(map[string]*rsa.PublicKey, len(jwks.Keys))
	for _, jwk := range jwks.Keys {
		if jwk.Use != "" && jwk.Use != "sig" {
			continue
		}
		pubKey, err := jwk.RSAPublicKey()
		if err != nil {
			continue // skip non-RSA entries, the verifier only accepts RS256
		}
		keys[jwk.Kid] = pubKey
	}

	ks.mu.Lock()
	ks.keys = keys
	ks.mu.Unlock()

	return nil
}
