package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/yanqian/wellbeing/internal/infra/config"
)

func TestRateLimiterRefillsPerKey(t *testing.T) {
	current := time.Date(2024, 6, 14, 12, 0, 0, 0, time.UTC)
	limiter := newRateLimiter(config.RateLimitConfig{Enabled: true, RequestsPerMinute: 60, Burst: 2})
	limiter.now = func() time.Time { return current }

	require.True(t, limiter.allow("user:a"))
	require.True(t, limiter.allow("user:a"))
	require.False(t, limiter.allow("user:a"))
	require.True(t, limiter.allow("user:b"))

	current = current.Add(time.Second)
	require.True(t, limiter.allow("user:a"))
	require.False(t, limiter.allow("user:a"))
}

func TestRouter_RateLimitsPerUser(t *testing.T) {
	cfg := testConfig()
	cfg.HTTP.RateLimit = config.RateLimitConfig{Enabled: true, RequestsPerMinute: 1, Burst: 1}
	server := NewRouter(cfg, NewHandler(&stubWellbeing{}, &stubInterventions{}, newTestLogger()))

	first := "/api/v1/users/" + uuid.NewString() + "/interventions"
	second := "/api/v1/users/" + uuid.NewString() + "/interventions"

	require.Equal(t, http.StatusOK, performRequest(http.MethodGet, first, "", server).Code)
	limited := performRequest(http.MethodGet, first, "", server)
	require.Equal(t, http.StatusTooManyRequests, limited.Code)
	require.Equal(t, "rate_limit_exceeded", decodeErrorBody(t, limited.Body.Bytes())["error"]["code"])
	require.Equal(t, http.StatusOK, performRequest(http.MethodGet, second, "", server).Code)
}

func TestRouter_CORSAllowList(t *testing.T) {
	cfg := testConfig()
	cfg.HTTP.AllowedOrigins = []string{"https://app.example.com"}
	server := NewRouter(cfg, NewHandler(&stubWellbeing{}, &stubInterventions{}, newTestLogger()))
	path := "/api/v1/users/" + uuid.NewString() + "/interventions"

	preflight := httptest.NewRequest(http.MethodOptions, path, nil)
	preflight.Header.Set("Origin", "https://app.example.com")
	rec := httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, preflight)
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, "https://app.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
	require.Equal(t, "Origin", rec.Header().Get("Vary"))
	require.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), http.MethodPatch)

	foreign := httptest.NewRequest(http.MethodGet, path, nil)
	foreign.Header.Set("Origin", "https://evil.example.com")
	rec = httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, foreign)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRetryableRequest(t *testing.T) {
	exclude := []string{"/signals"}
	tests := []struct {
		method string
		path   string
		want   bool
	}{
		{http.MethodGet, "/api/v1/users/x/reports/weekly", true},
		{http.MethodPost, "/api/v1/users/x/scores/calculate", true},
		{http.MethodPost, "/api/v1/users/x/signals", false},
		{http.MethodPatch, "/api/v1/users/x/interventions/y", false},
	}
	for _, tc := range tests {
		req, err := http.NewRequest(tc.method, tc.path, nil)
		require.NoError(t, err)
		require.Equal(t, tc.want, retryableRequest(req, exclude), tc.method+" "+tc.path)
	}
}

func TestResolveOrigin(t *testing.T) {
	require.Equal(t, "*", resolveOrigin("https://a.example.com", nil))
	require.Equal(t, "https://b.example.com", resolveOrigin("https://b.example.com", []string{"https://a.example.com", "https://b.example.com"}))
	require.Empty(t, resolveOrigin("https://evil.example.com", []string{"https://a.example.com"}))
	require.Empty(t, resolveOrigin("", []string{"https://a.example.com"}))
}
