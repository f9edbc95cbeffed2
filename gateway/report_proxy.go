package gateway

import (
	"io"
	"net/http"

	"github.com/rs/zerolog/log"
)

// ReportsProxyHandler forwards the stored access token to the report API as
// a bearer credential and streams the artifact back verbatim, forcing an
// attachment disposition. Non-200 responses from the report API are
// propagated, never rewritten into a success.
func (s *Server) ReportsProxyHandler() http.HandlerFunc {
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
		if session.AccessToken == "" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Invalid session"})
			return
		}

		req, err := http.NewRequestWithContext(r.Context(), http.MethodGet, s.config.GetReportsAPIURL()+"/reports", nil)
		if err != nil {
			http.Error(w, "Failed to build report request", http.StatusInternalServerError)
			return
		}
		req.Header.Set("Authorization", "Bearer "+session.AccessToken)

		resp, err := s.reportsClient.Do(req)
		if err != nil {
			log.Error().Err(err).Msg("report download failed")
			writeJSON(w, http.StatusBadGateway, map[string]string{"error": "Report download failed"})
			return
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			log.Warn().Int("status", resp.StatusCode).Msg("report API returned error")
			writeJSON(w, resp.StatusCode, map[string]string{
				"error": "Failed to download report from API",
			})
			return
		}

		contentType := resp.Header.Get("Content-Type")
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Content-Disposition", "attachment; filename=prosthesis_report.csv")
		_, _ = io.Copy(w, resp.Body)
	}
}
