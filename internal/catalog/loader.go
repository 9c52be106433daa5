package catalog

import (
	"context"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/mgleavitt/lockquests/internal/cache"
	"github.com/mgleavitt/lockquests/internal/models"
	"github.com/mgleavitt/lockquests/internal/source"
	appErrors "github.com/mgleavitt/lockquests/pkg/errors"
	"github.com/mgleavitt/lockquests/pkg/logger"
	"github.com/mgleavitt/lockquests/pkg/metrics"
)

const defaultPhotoConcurrency = 8

// PhotoResolver resolves a room's photo URL, reporting false when no
// candidate exists. The photos package provides the HTTP implementation.
type PhotoResolver interface {
	Resolve(ctx context.Context, id int, name string) (string, bool)
}

// Loader orchestrates cache-or-fetch of the room table and hands normalized,
// ordered records downstream. Records are rebuilt on every Load from
// whichever table snapshot is current.
type Loader struct {
	source      source.TableSource
	snapshots   *cache.SnapshotCache
	resolver    PhotoResolver
	concurrency int
	log         *zap.Logger
}

// LoaderOption customises the Loader.
type LoaderOption func(*Loader)

// WithPhotoResolver enables photo resolution after mapping. Without one,
// every room keeps a nil photo URL.
func WithPhotoResolver(resolver PhotoResolver) LoaderOption {
	return func(l *Loader) {
		l.resolver = resolver
	}
}

// WithPhotoConcurrency bounds how many photo probes run at once.
func WithPhotoConcurrency(n int) LoaderOption {
	return func(l *Loader) {
		if n > 0 {
			l.concurrency = n
		}
	}
}

// NewLoader wires a loader over a table source and snapshot cache.
func NewLoader(src source.TableSource, snapshots *cache.SnapshotCache, opts ...LoaderOption) *Loader {
	l := &Loader{
		source:      src,
		snapshots:   snapshots,
		concurrency: defaultPhotoConcurrency,
		log:         logger.WithModule("loader"),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load returns the current room set, ordered by id descending with photo
// URLs resolved. A fetch or shape failure surfaces as ErrUpstreamUnavailable
// rather than an empty set, so callers can render an error state instead of
// silently showing zero rooms.
func (l *Loader) Load(ctx context.Context) ([]models.Room, error) {
	table, hit := l.snapshots.Read(ctx)
	if !hit {
		fetched, err := l.fetchAndStore(ctx)
		if err != nil {
			return nil, err
		}
		table = fetched
	}

	rooms := MapRecords(table.Headers, table.Rows)
	sort.SliceStable(rooms, func(i, j int) bool { return rooms[i].ID > rooms[j].ID })

	l.resolvePhotos(ctx, rooms)

	metrics.RoomsLoaded.Set(float64(len(rooms)))
	return rooms, nil
}

// Refresh forces a live fetch and rewrites the cache, ignoring any cached
// snapshot. The background warmer calls this on its schedule.
func (l *Loader) Refresh(ctx context.Context) error {
	_, err := l.fetchAndStore(ctx)
	return err
}

func (l *Loader) fetchAndStore(ctx context.Context) (*models.Table, error) {
	table, err := l.source.Fetch(ctx)
	if err != nil {
		metrics.TableFetches.WithLabelValues("failure").Inc()
		l.log.Error("table fetch failed", zap.Error(err))
		return nil, appErrors.ErrUpstreamUnavailable.WithInternal(err)
	}

	metrics.TableFetches.WithLabelValues("success").Inc()
	l.snapshots.Write(ctx, table)
	return table, nil
}

// resolvePhotos fans probe work out across rooms. Each goroutine writes only
// its own record's PhotoURL, and all of them finish before Load returns, so
// presentation code never observes a half-resolved set.
func (l *Loader) resolvePhotos(ctx context.Context, rooms []models.Room) {
	if l.resolver == nil || len(rooms) == 0 {
		return
	}

	sem := make(chan struct{}, l.concurrency)
	var wg sync.WaitGroup

	for i := range rooms {
		wg.Add(1)
		sem <- struct{}{}
		go func(room *models.Room) {
			defer wg.Done()
			defer func() { <-sem }()

			if url, ok := l.resolver.Resolve(ctx, room.ID, room.Name); ok {
				room.PhotoURL = &url
			}
		}(&rooms[i])
	}

	wg.Wait()
}
