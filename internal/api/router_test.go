package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/mgleavitt/lockquests/internal/cache"
	"github.com/mgleavitt/lockquests/internal/catalog"
	"github.com/mgleavitt/lockquests/internal/middleware"
	"github.com/mgleavitt/lockquests/internal/models"
)

type staticSource struct {
	table *models.Table
}

func (s *staticSource) Fetch(context.Context) (*models.Table, error) {
	return s.table, nil
}

func testService(t *testing.T) *catalog.Service {
	t.Helper()

	src := &staticSource{table: &models.Table{
		Headers: []string{"Room Name", "Company", "Together Unique #"},
		Rows:    [][]string{{"Labyrinth", "Acme", "9"}},
	}}
	snapshots := cache.NewSnapshotCache(cache.NewMemoryStore(), time.Minute, "test")
	svc, err := catalog.NewService(catalog.NewLoader(src, snapshots), true)
	require.NoError(t, err)
	return svc
}

func TestNewRouterRequiresService(t *testing.T) {
	gin.SetMode(gin.TestMode)

	_, err := NewRouter(Config{}, nil, nil)
	require.Error(t, err)
}

func TestRouterServesCoreRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r, err := NewRouter(Config{EnableMetrics: true}, testService(t), nil)
	require.NoError(t, err)

	for _, path := range []string{"/health", "/metrics", "/api/rooms", "/api/rooms/9", "/api/stats"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		require.Equal(t, http.StatusOK, w.Code, path)
	}
}

func TestRouterMetricsDisabledByConfig(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r, err := NewRouter(Config{EnableMetrics: false}, testService(t), nil)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouterUnknownAPIRouteIsJSONNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r, err := NewRouter(Config{}, testService(t), nil)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/nope", nil))
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Contains(t, w.Body.String(), "NOT_FOUND")
}

func TestRouterFallsBackToFrontend(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r, err := NewRouter(Config{}, testService(t), nil)
	require.NoError(t, err)

	// Both the root and unknown client-side routes serve the SPA shell.
	for _, path := range []string{"/", "/rooms/labyrinth"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		require.Equal(t, http.StatusOK, w.Code, path)
		require.Contains(t, w.Body.String(), "LockQuests", path)
	}
}

func TestRouterRateLimitAppliesToAPIOnly(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cfg := Config{RateLimit: 1, RateLimitWindow: time.Minute}
	r, err := NewRouter(cfg, testService(t), middleware.NewMemoryRateStore())
	require.NoError(t, err)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/rooms", nil))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/rooms", nil))
	require.Equal(t, http.StatusTooManyRequests, w.Code)

	// Health is outside the limited group.
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, w.Code)
}
