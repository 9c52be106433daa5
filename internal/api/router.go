package api

import (
	"fmt"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mgleavitt/lockquests/internal/catalog"
	"github.com/mgleavitt/lockquests/internal/handlers"
	"github.com/mgleavitt/lockquests/internal/middleware"
	appErrors "github.com/mgleavitt/lockquests/pkg/errors"
	"github.com/mgleavitt/lockquests/pkg/response"
	"github.com/mgleavitt/lockquests/web"
)

// Config carries the router-level knobs: metrics exposure and the per-client
// request budget for the public API.
type Config struct {
	EnableMetrics   bool
	RateLimit       int
	RateLimitWindow time.Duration
}

// NewRouter builds the Gin engine, wires middleware and registers the
// directory routes. The rate store may be nil, which disables limiting.
func NewRouter(cfg Config, svc *catalog.Service, rateStore middleware.RateStore) (*gin.Engine, error) {
	if svc == nil {
		return nil, fmt.Errorf("catalog service must be provided")
	}

	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Metrics())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS())

	// Health endpoint (public, never rate limited)
	r.GET("/health", handlers.Health(svc))

	if cfg.EnableMetrics {
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	roomHandler, err := handlers.NewRoomHandler(svc)
	if err != nil {
		return nil, err
	}

	api := r.Group("/api")
	if cfg.RateLimit > 0 {
		api.Use(middleware.RateLimitWithStore(rateStore, cfg.RateLimit, cfg.RateLimitWindow))
	}
	{
		api.GET("/rooms", roomHandler.List)
		api.GET("/rooms/:id", roomHandler.Get)
		api.GET("/stats", roomHandler.Stats)
	}

	// Embedded frontend: unknown non-API paths fall back to the SPA bundle.
	staticFS, err := web.FS()
	if err != nil {
		return nil, fmt.Errorf("load embedded frontend: %w", err)
	}
	r.NoRoute(spaFallback(staticFS))

	return r, nil
}

// spaFallback serves the embedded frontend for any route the API does not
// claim. Missing files fall back to index.html so client-side routing works.
func spaFallback(staticFS fs.FS) gin.HandlerFunc {
	fileServer := http.FileServer(http.FS(staticFS))

	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if strings.HasPrefix(path, "/api/") || path == "/metrics" {
			response.Error(c, appErrors.New("NOT_FOUND", "route not found", http.StatusNotFound))
			return
		}

		trimmed := strings.TrimPrefix(path, "/")
		if trimmed != "" {
			if _, err := fs.Stat(staticFS, trimmed); err == nil {
				fileServer.ServeHTTP(c.Writer, c.Request)
				return
			}
		}

		c.Request.URL.Path = "/"
		fileServer.ServeHTTP(c.Writer, c.Request)
	}
}
