package refresh

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/mgleavitt/lockquests/internal/catalog"
	"github.com/mgleavitt/lockquests/internal/models"
	"github.com/mgleavitt/lockquests/pkg/logger"
)

const (
	defaultRefreshSpec = "@every 10m"
	defaultSweepSpec   = "@daily"
)

// Warmer keeps the snapshot cache warm by re-fetching the sheet on a
// schedule, so interactive requests rarely pay the live fetch, and prunes
// expired cache rows from the local database.
type Warmer struct {
	loader *catalog.Loader
	db     *gorm.DB
	cron   *cron.Cron
	now    func() time.Time
	log    *zap.Logger

	refreshSchedule string
	sweepSchedule   string
}

// Option customises the Warmer.
type Option func(*Warmer)

// WithCron injects a preconfigured cron instance, primarily for testing.
func WithCron(c *cron.Cron) Option {
	return func(w *Warmer) {
		if c != nil {
			w.cron = c
		}
	}
}

// WithNow overrides the clock used by the cache sweep.
func WithNow(now func() time.Time) Option {
	return func(w *Warmer) {
		if now != nil {
			w.now = now
		}
	}
}

// WithRefreshSchedule overrides the cron specification for sheet refreshes.
func WithRefreshSchedule(spec string) Option {
	return func(w *Warmer) {
		if spec != "" {
			w.refreshSchedule = spec
		}
	}
}

// WithSweepSchedule overrides the cron specification for cache row pruning.
func WithSweepSchedule(spec string) Option {
	return func(w *Warmer) {
		if spec != "" {
			w.sweepSchedule = spec
		}
	}
}

// NewWarmer constructs a Warmer. A nil loader disables refreshing and a nil
// db disables sweeping; with both nil the Warmer is inert.
func NewWarmer(loader *catalog.Loader, db *gorm.DB, opts ...Option) *Warmer {
	w := &Warmer{
		loader:          loader,
		db:              db,
		now:             time.Now,
		refreshSchedule: defaultRefreshSpec,
		sweepSchedule:   defaultSweepSpec,
		log:             logger.WithModule("refresh"),
	}

	for _, opt := range opts {
		opt(w)
	}

	if w.cron == nil {
		w.cron = cron.New(cron.WithLogger(cron.DiscardLogger))
	}

	return w
}

// Start registers the background jobs and launches the scheduler.
func (w *Warmer) Start() error {
	if w.loader == nil && w.db == nil {
		return nil
	}

	if w.loader != nil {
		if _, err := w.cron.AddFunc(w.refreshSchedule, func() {
			if err := w.loader.Refresh(context.Background()); err != nil {
				w.log.Warn("scheduled refresh failed", zap.Error(err))
			}
		}); err != nil {
			return err
		}
	}

	if w.db != nil {
		if _, err := w.cron.AddFunc(w.sweepSchedule, func() {
			if _, err := SweepExpiredEntries(context.Background(), w.db, w.now()); err != nil {
				w.log.Warn("cache sweep failed", zap.Error(err))
			}
		}); err != nil {
			return err
		}
	}

	w.cron.Start()
	return nil
}

// Stop halts the underlying scheduler, waiting for any running jobs to complete.
func (w *Warmer) Stop() context.Context {
	if w.cron == nil {
		return context.Background()
	}
	return w.cron.Stop()
}

// RunOnce executes both jobs sequentially. Primarily used in tests and for
// warming the cache right after startup.
func (w *Warmer) RunOnce(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	var errs error

	if w.loader != nil {
		if err := w.loader.Refresh(ctx); err != nil {
			errs = multierr.Append(errs, err)
		}
	}

	if w.db != nil {
		if _, err := SweepExpiredEntries(ctx, w.db, w.now()); err != nil {
			errs = multierr.Append(errs, err)
		}
	}

	return errs
}

// SweepExpiredEntries removes cache rows whose store-level expiry has
// passed. The snapshot slots are written without store-level expiry and are
// never touched by the sweep.
func SweepExpiredEntries(ctx context.Context, db *gorm.DB, now time.Time) (int64, error) {
	if db == nil {
		return 0, nil
	}

	result := db.WithContext(ctx).
		Where("expires_at > ? AND expires_at < ?", time.Time{}, now).
		Delete(&models.CacheEntry{})

	return result.RowsAffected, result.Error
}
