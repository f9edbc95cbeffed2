package reportsrv

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	apperrors "github.com/prosthetix/reports-platform/internal/errors"
	"github.com/prosthetix/reports-platform/report"
	"github.com/prosthetix/reports-platform/scopekey"
	"github.com/prosthetix/reports-platform/token"
	"github.com/rs/zerolog/log"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

// ContextKeyVerified stores the verified token result for the request
const ContextKeyVerified ContextKey = "verified_token"

// RequireToken validates the bearer token on every request. Decoded claims
// are never cached across requests.
func (s *Server) RequireToken(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rawToken, err := token.BearerToken(r)
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, map[string]string{
				"error":             "unauthorized",
				"error_description": "Missing or invalid authorization header",
			})
			return
		}

		verified, err := s.verifier.Verify(r.Context(), rawToken)
		if err != nil {
			if errors.Is(err, apperrors.ErrTokenVerification) {
				log.Error().Err(err).Msg("token verification infrastructure failure")
			} else {
				log.Warn().Err(err).Msg("rejected bearer token")
			}
			writeJSON(w, http.StatusUnauthorized, map[string]string{
				"error":             "unauthorized",
				"error_description": "Invalid token",
			})
			return
		}

		ctx := context.WithValue(r.Context(), ContextKeyVerified, verified)
		next(w, r.WithContext(ctx))
	}
}

func verifiedFrom(r *http.Request) *token.Verified {
	verified, _ := r.Context().Value(ContextKeyVerified).(*token.Verified)
	return verified
}

// ReportsHandler queries the analytical store for the caller's scope key and
// streams back the rendered CSV artifact.
func (s *Server) ReportsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		verified := verifiedFrom(r)
		id := verified.Identity
		key := scopekey.ForUser(id.Username)

		log.Info().
			Str("username", id.Username).
			Str("scope_key", key).
			Msg("generating report")

		records, err := s.store.FetchByScopeKey(r.Context(), key)
		if err != nil {
			log.Error().Err(err).Str("scope_key", key).Msg("report query failed")
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"message": "Database temporarily unavailable",
				"details": "Please try again later",
			})
			return
		}

		if len(records) == 0 {
			log.Info().Err(apperrors.ErrNoReportData).Str("scope_key", key).Msg("nothing to report")
			writeJSON(w, http.StatusNotFound, map[string]string{
				"message":   "No report data available for your account",
				"details":   "Please check back later or contact support if you believe this is an error",
				"client_id": key,
				"username":  id.Username,
			})
			return
		}

		artifact, err := report.Generate(id, records)
		if err != nil {
			log.Error().Err(err).Str("scope_key", key).Msg("report rendering failed")
			http.Error(w, "Failed to generate report", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=prosthesis_report_%s.csv", id.Username))
		_, _ = w.Write(artifact)
	}
}

func (s *Server) HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		database := "connected"
		if err := s.store.Health(r.Context()); err != nil {
			log.Warn().Err(err).Msg("store health check failed")
			database = "unavailable"
		}
		writeJSON(w, http.StatusOK, map[string]string{
			"status":   "healthy",
			"service":  "reports-api",
			"database": database,
		})
	}
}

// TestIdPHandler checks whether the identity provider realm is reachable.
func (s *Server) TestIdPHandler() http.HandlerFunc {
	client := &http.Client{Timeout: 5 * time.Second}

	return func(w http.ResponseWriter, r *http.Request) {
		resp, err := client.Get(s.config.GetIssuerURL())
		if err != nil {
			writeJSON(w, http.StatusOK, map[string]string{
				"status":  "error",
				"message": "Cannot connect to identity provider: " + err.Error(),
			})
			return
		}
		defer resp.Body.Close()

		status := "failed"
		message := "Identity provider not reachable"
		if resp.StatusCode == http.StatusOK {
			status = "success"
			message = "Identity provider is reachable"
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"status":          status,
			"keycloak_status": resp.StatusCode,
			"message":         message,
		})
	}
}

// TestJWKSHandler checks the JWKS endpoint and reports how many keys it
// publishes.
func (s *Server) TestJWKSHandler() http.HandlerFunc {
	client := &http.Client{Timeout: 5 * time.Second}

	return func(w http.ResponseWriter, r *http.Request) {
		resp, err := client.Get(JWKSURL(s.config.GetIssuerURL()))
		if err != nil {
			writeJSON(w, http.StatusOK, map[string]string{
				"status":  "error",
				"message": "Cannot connect to JWKS endpoint: " + err.Error(),
			})
			return
		}
		defer resp.Body.Close()

		keyCount := 0
		status := "failed"
		if resp.StatusCode == http.StatusOK {
			status = "success"
			var jwks token.JWKS
			if err := jsonDecode(resp.Body, &jwks); err == nil {
				keyCount = len(jwks.Keys)
			}
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"status":      status,
			"jwks_status": resp.StatusCode,
			"jwks_keys":   keyCount,
		})
	}
}

func (s *Server) TestTokenInfoHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		verified := verifiedFrom(r)

		claimKeys := make([]string, 0, len(verified.Claims))
		for k := range verified.Claims {
			claimKeys = append(claimKeys, k)
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"authenticated_user": verified.Identity,
			"token_claims":       claimKeys,
			"mapped_client_id":   scopekey.ForUser(verified.Identity.Username),
		})
	}
}

func (s *Server) TestCurrentUserHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		verified := verifiedFrom(r)

		writeJSON(w, http.StatusOK, map[string]any{
			"authenticated_user": verified.Identity,
			"mapped_client_id":   scopekey.ForUser(verified.Identity.Username),
		})
	}
}

// JWKSURL derives the provider's JWKS endpoint from the issuer URL using
// the standard OIDC convention.
func JWKSURL(issuerURL string) string {
	return issuerURL + "/protocol/openid-connect/certs"
}
