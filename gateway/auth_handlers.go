package gateway

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prosthetix/reports-platform/gateway/authflowrepo"
	"github.com/prosthetix/reports-platform/gateway/sessionrepo"
	"github.com/prosthetix/reports-platform/identity"
	apperrors "github.com/prosthetix/reports-platform/internal/errors"
	"github.com/rs/zerolog/log"
)

func (s *Server) HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"status":  "healthy",
			"service": "gateway",
		})
	}
}

// LoginHandler starts a login attempt: it mints the PKCE verifier and the
// state token, parks them as a pending attempt, and redirects the browser
// to the provider's authorization endpoint.
func (s *Server) LoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.config.GetClientSecret() == "" {
			log.Error().Err(apperrors.ErrConfigurationMissing).Msg("cannot start login flow")
			writeJSON(w, http.StatusInternalServerError, map[string]string{
				"error": "Client secret not configured",
			})
			return
		}

		state := generateRandomString(16)    // 128 bits
		verifier := generateRandomString(32) // 256 bits
		challenge := generateCodeChallenge(verifier)

		if err := s.pending.Upsert(state, &authflowrepo.PendingLogin{
			CodeVerifier: verifier,
			CreatedAt:    time.Now(),
		}); err != nil {
			log.Error().Err(err).Msg("failed to store pending login")
			http.Error(w, "Failed to start login", http.StatusInternalServerError)
			return
		}

		authURL := s.idp.AuthCodeURL(state, challenge)
		log.Info().Str("state", state).Msg("redirecting to identity provider")
		http.Redirect(w, r, authURL, http.StatusFound)
	}
}

// CallbackHandler finishes a login attempt: it consumes the pending state
// entry (one-time use), exchanges the authorization code, fetches identity
// claims best-effort, and mints the active session.
func (s *Server) CallbackHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state := r.URL.Query().Get("state")
		code := r.URL.Query().Get("code")

		if state == "" || code == "" {
			http.Redirect(w, r, RouteAuthLogin, http.StatusFound)
			return
		}

		pending, err := s.pending.Consume(state)
		if err != nil {
			// Unknown or replayed state. Redirect back to login rather than
			// erroring, so the response leaks no validity oracle.
			log.Warn().Err(fmt.Errorf("%w: %w", apperrors.ErrInvalidAttempt, err)).Msg("rejected callback")
			http.Redirect(w, r, RouteAuthLogin, http.StatusFound)
			return
		}

		tokens, err := s.idp.Exchange(r.Context(), code, pending.CodeVerifier)
		if err != nil {
			log.Error().Err(err).Msg("token exchange failed")
			writeJSON(w, http.StatusUnauthorized, map[string]string{
				"error": "Authentication failed",
			})
			return
		}

		// Userinfo is best-effort: a failed fetch degrades to a placeholder
		// identity, it does not fail the login. Token validity is not
		// best-effort.
		id, err := s.idp.UserInfo(r.Context(), tokens.AccessToken)
		degraded := err != nil
		if degraded {
			log.Warn().Err(err).Msg("userinfo fetch failed, using placeholder identity")
			id = identity.Placeholder()
		} else {
			log.Info().Str("username", id.Username).Msg("userinfo retrieved")
		}

		sessionID := generateRandomString(32) // 256 bits
		if err := s.sessions.Upsert(sessionID, sessionrepo.Session{
			AccessToken:  tokens.AccessToken,
			RefreshToken: tokens.RefreshToken,
			IDToken:      tokens.IDToken,
			Identity:     id,
			CreatedAt:    time.Now(),
		}); err != nil {
			log.Error().Err(err).Msg("failed to create session")
			http.Error(w, "Failed to create session", http.StatusInternalServerError)
			return
		}

		s.setSessionCookie(w, sessionID)
		log.Info().Bool("degraded_userinfo", degraded).Msg("authentication completed")
		http.Redirect(w, r, s.config.GetFrontendURL(), http.StatusFound)
	}
}

// StatusHandler reports whether the caller holds a live session. The stored
// access token is re-validated against the provider on every call; any
// failure deletes the session and downgrades to unauthenticated.
func (s *Server) StatusHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, ok := s.sessionFromRequest(r)
		if !ok {
			writeJSON(w, http.StatusOK, map[string]any{"authenticated": false})
			return
		}

		session, err := s.sessions.Get(sessionID)
		if err != nil {
			writeJSON(w, http.StatusOK, map[string]any{"authenticated": false})
			return
		}

		if _, err := s.idp.UserInfo(r.Context(), session.AccessToken); err != nil {
			log.Warn().Err(err).Msg("token validation failed, deleting session")
			_ = s.sessions.Delete(sessionID)
			writeJSON(w, http.StatusOK, map[string]any{"authenticated": false})
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"authenticated": true,
			"user":          session.Identity,
		})
	}
}

// UserHandler returns the identity claims cached at login.
func (s *Server) UserHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, ok := s.sessionFromRequest(r)
		if !ok {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Not authenticated"})
			return
		}

		session, err := s.sessions.Get(sessionID)
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Not authenticated"})
			return
		}

		writeJSON(w, http.StatusOK, session.Identity)
	}
}

// LogoutHandler deletes the local session unconditionally and best-effort
// revokes the upstream session. The two outcomes are reported separately so
// the caller can tell "signed out locally" from "revoked upstream".
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionCleared := false
		idpLogout := false

		if sessionID, ok := s.sessionFromRequest(r); ok {
			session, err := s.sessions.Get(sessionID)
			if err == nil {
				_ = s.sessions.Delete(sessionID)
				sessionCleared = true

				if session.RefreshToken != "" {
					if err := s.idp.Logout(r.Context(), session.RefreshToken); err != nil {
						log.Warn().Err(err).Msg("identity provider logout failed")
					} else {
						idpLogout = true
					}
				}
			}
		}

		log.Info().
			Bool("session_cleared", sessionCleared).
			Bool("idp_logout", idpLogout).
			Msg("logout completed")

		s.clearSessionCookie(w)
		w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
		w.Header().Set("Pragma", "no-cache")
		w.Header().Set("Expires", "0")
		writeJSON(w, http.StatusOK, map[string]any{
			"status":          "success",
			"message":         "Logged out successfully",
			"session_cleared": sessionCleared,
			"idp_logout":      idpLogout,
		})
	}
}
