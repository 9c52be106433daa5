package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/mgleavitt/lockquests/internal/api"
	"github.com/mgleavitt/lockquests/internal/app"
	"github.com/mgleavitt/lockquests/internal/cache"
	"github.com/mgleavitt/lockquests/internal/catalog"
	"github.com/mgleavitt/lockquests/internal/database"
	"github.com/mgleavitt/lockquests/internal/middleware"
	"github.com/mgleavitt/lockquests/internal/photos"
	"github.com/mgleavitt/lockquests/internal/refresh"
	"github.com/mgleavitt/lockquests/internal/source"
	"github.com/mgleavitt/lockquests/pkg/logger"
)

// runtimeStack holds everything buildRuntime wires together so shutdown can
// unwind it in order.
type runtimeStack struct {
	db     *gorm.DB
	redis  *cache.RedisStore
	warmer *refresh.Warmer
	router *gin.Engine
	log    *zap.Logger
}

// buildRuntime assembles the full service graph from configuration: database,
// snapshot cache, table source, catalog service, background warmer and router.
func buildRuntime(ctx context.Context, cfg *app.Config) (*runtimeStack, error) {
	log := logger.WithModule("bootstrap")

	db, err := database.Open(cfg.Database.ConnectionConfig())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("auto-migrate database: %w", err)
	}

	stack := &runtimeStack{db: db, log: log}

	var store cache.Store = cache.NewDatabaseStore(db)
	if cfg.Cache.Redis.Enabled {
		redisStore, redisErr := cache.NewRedisStore(cfg.Cache.RedisClientConfig())
		if redisErr != nil {
			log.Warn("redis unavailable; falling back to database-backed cache", zap.Error(redisErr))
		} else {
			stack.redis = redisStore
			store = redisStore
			log.Info("redis connected", zap.String("addr", cfg.Cache.Redis.Address))
		}
	}

	snapshots := cache.NewSnapshotCache(store, cfg.Cache.TTL, cfg.Cache.Version)
	snapshots.InvalidateIfStaleVersion(ctx)

	src, err := buildSource(cfg.Source)
	if err != nil {
		return nil, err
	}

	var loaderOpts []catalog.LoaderOption
	if strings.TrimSpace(cfg.Photos.BaseURL) != "" {
		loaderOpts = append(loaderOpts,
			catalog.WithPhotoResolver(photos.NewResolver(cfg.Photos.ResolverConfig())),
			catalog.WithPhotoConcurrency(cfg.Photos.Concurrency),
		)
	}
	loader := catalog.NewLoader(src, snapshots, loaderOpts...)

	configured := cfg.Source.Configured()
	if !configured {
		log.Warn("source credentials are placeholders; API will serve a setup notice")
	}

	svc, err := catalog.NewService(loader, configured)
	if err != nil {
		return nil, fmt.Errorf("initialise catalog service: %w", err)
	}

	if cfg.Refresh.Enabled && configured {
		stack.warmer = refresh.NewWarmer(loader, db,
			refresh.WithRefreshSchedule(cfg.Refresh.Schedule),
			refresh.WithSweepSchedule(cfg.Refresh.SweepSchedule),
		)
		if err := stack.warmer.Start(); err != nil {
			return nil, fmt.Errorf("start refresh warmer: %w", err)
		}
	}

	var rateStore middleware.RateStore
	if cfg.RateLimit.Max > 0 {
		rateStore = middleware.NewCacheRateStore(store)
	}

	router, err := api.NewRouter(api.Config{
		EnableMetrics:   cfg.Monitoring.Prometheus.Enabled,
		RateLimit:       cfg.RateLimit.Max,
		RateLimitWindow: cfg.RateLimit.Window,
	}, svc, rateStore)
	if err != nil {
		return nil, fmt.Errorf("build api router: %w", err)
	}
	stack.router = router

	return stack, nil
}

// buildSource picks the table source implementation from configuration.
func buildSource(cfg app.SourceConfig) (source.TableSource, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Driver)) {
	case "", "sheets":
		return source.NewSheetsSource(cfg.SheetsSourceConfig()), nil
	case "workbook":
		return source.NewWorkbookSource(cfg.WorkbookSourceConfig()), nil
	default:
		return nil, fmt.Errorf("unsupported source driver %q", cfg.Driver)
	}
}

// Shutdown stops background jobs and closes connections in reverse order.
func (s *runtimeStack) Shutdown() {
	if s.warmer != nil {
		stopCtx := s.warmer.Stop()
		<-stopCtx.Done()
	}

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			s.log.Warn("failed to close redis", zap.Error(err))
		}
	}

	if s.db != nil {
		sqlDB, err := s.db.DB()
		if err != nil {
			s.log.Warn("failed to obtain underlying sql DB for closing", zap.Error(err))
			return
		}
		if err := sqlDB.Close(); err != nil {
			s.log.Warn("failed to close database", zap.Error(err))
		}
	}
}
