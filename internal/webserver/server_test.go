package webserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vedanthq/SLMGen/internal/catalog"
	"github.com/vedanthq/SLMGen/internal/engine"
	"github.com/vedanthq/SLMGen/internal/session"
)

func newTestServer() *Server {
	eng := engine.New(session.NewMemoryStore(0, 0), catalog.Default())
	return New(Config{AllowedOrigins: []string{"http://localhost:5173"}}, eng)
}

func TestNew_Defaults(t *testing.T) {
	s := newTestServer()
	require.Equal(t, "127.0.0.1:8080", s.srv.Addr)
	require.NotNil(t, s.Handler())
}

func TestNew_CustomPort(t *testing.T) {
	eng := engine.New(session.NewMemoryStore(0, 0), catalog.Default())
	s := New(Config{Port: 9999}, eng)
	require.Equal(t, "127.0.0.1:9999", s.srv.Addr)
}

func TestServer_ServesAPI(t *testing.T) {
	s := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var health map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &health))
	require.Equal(t, "ok", health["status"])
}

func TestServer_AppliesCORS(t *testing.T) {
	s := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/api/catalog", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
}
