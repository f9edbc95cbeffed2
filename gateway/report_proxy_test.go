package gateway_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prosthetix/reports-platform/gateway"
	"github.com/prosthetix/reports-platform/internal/config"
	"github.com/stretchr/testify/require"
)

func TestReportsProxyHandler(t *testing.T) {
	t.Run("streams the artifact with the stored token", func(t *testing.T) {
		var gotAuth string
		backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			w.Header().Set("Content-Type", "text/csv; charset=utf-8")
			_, _ = w.Write([]byte("User ID,User Name\nCLI004,prothetic2\n"))
		}))
		defer backend.Close()

		f := &fakeIdP{}
		cfg := testConfig{Config: config.New(), secret: "test-secret", reportsAPI: backend.URL}
		srv, _ := newGatewayServer(t, f, cfg)
		cookie := doLogin(t, srv)

		r := httptest.NewRequest(http.MethodGet, gateway.RouteAPIReports, nil)
		r.AddCookie(cookie)
		w := httptest.NewRecorder()
		srv.ServeHTTP(w, r)

		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, "Bearer access-token", gotAuth)
		require.Contains(t, w.Header().Get("Content-Type"), "text/csv")
		require.Equal(t, "attachment; filename=prosthesis_report.csv", w.Header().Get("Content-Disposition"))
		require.Contains(t, w.Body.String(), "CLI004,prothetic2")
	})

	t.Run("no session", func(t *testing.T) {
		f := &fakeIdP{}
		srv, _ := newGatewayServer(t, f, testCfg())

		w := httptest.NewRecorder()
		srv.ServeHTTP(w, httptest.NewRequest(http.MethodGet, gateway.RouteAPIReports, nil))

		require.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("upstream errors are propagated, not rewritten", func(t *testing.T) {
		backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer backend.Close()

		f := &fakeIdP{}
		cfg := testConfig{Config: config.New(), secret: "test-secret", reportsAPI: backend.URL}
		srv, _ := newGatewayServer(t, f, cfg)
		cookie := doLogin(t, srv)

		r := httptest.NewRequest(http.MethodGet, gateway.RouteAPIReports, nil)
		r.AddCookie(cookie)
		w := httptest.NewRecorder()
		srv.ServeHTTP(w, r)

		require.Equal(t, http.StatusNotFound, w.Code)
		require.Contains(t, w.Body.String(), "Failed to download report from API")
	})

	t.Run("unreachable report API is a bad gateway", func(t *testing.T) {
		backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		backend.Close()

		f := &fakeIdP{}
		cfg := testConfig{Config: config.New(), secret: "test-secret", reportsAPI: backend.URL}
		srv, _ := newGatewayServer(t, f, cfg)
		cookie := doLogin(t, srv)

		r := httptest.NewRequest(http.MethodGet, gateway.RouteAPIReports, nil)
		r.AddCookie(cookie)
		w := httptest.NewRecorder()
		srv.ServeHTTP(w, r)

		require.Equal(t, http.StatusBadGateway, w.Code)
	})
}
