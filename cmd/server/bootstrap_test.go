package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/mgleavitt/lockquests/internal/app"
)

func testConfig(t *testing.T) *app.Config {
	t.Helper()

	cfg, err := app.LoadConfig(t.TempDir())
	require.NoError(t, err)
	cfg.Database.Path = filepath.Join(t.TempDir(), "lockquests.sqlite")
	cfg.Refresh.Enabled = false
	return cfg
}

func TestBuildRuntimeWithPlaceholderCredentials(t *testing.T) {
	gin.SetMode(gin.TestMode)

	stack, err := buildRuntime(context.Background(), testConfig(t))
	require.NoError(t, err)
	defer stack.Shutdown()

	require.Nil(t, stack.warmer, "unconfigured source must not start the warmer")

	w := httptest.NewRecorder()
	stack.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"configured":false`)

	w = httptest.NewRecorder()
	stack.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/rooms", nil))
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	require.Contains(t, w.Body.String(), "NOT_CONFIGURED")
}

func TestBuildRuntimeRedisFallback(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cfg := testConfig(t)
	cfg.Cache.Redis.Enabled = true
	cfg.Cache.Redis.Address = "127.0.0.1:1" // nothing listens here
	cfg.Cache.Redis.Timeout = 100 * time.Millisecond

	stack, err := buildRuntime(context.Background(), cfg)
	require.NoError(t, err, "redis being down must not block startup")
	defer stack.Shutdown()

	require.Nil(t, stack.redis)
}

func TestBuildRuntimeRejectsUnknownSourceDriver(t *testing.T) {
	cfg := testConfig(t)
	cfg.Source.Driver = "carrier-pigeon"

	_, err := buildRuntime(context.Background(), cfg)
	require.Error(t, err)
	require.Contains(t, err.Error(), "unsupported source driver")
}
