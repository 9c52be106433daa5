package refresh

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mgleavitt/lockquests/internal/cache"
	"github.com/mgleavitt/lockquests/internal/catalog"
	"github.com/mgleavitt/lockquests/internal/database/testutil"
	"github.com/mgleavitt/lockquests/internal/models"
)

type stubSource struct {
	table   *models.Table
	err     error
	fetches int
}

func (s *stubSource) Fetch(context.Context) (*models.Table, error) {
	s.fetches++
	if s.err != nil {
		return nil, s.err
	}
	return s.table, nil
}

func TestRunOnceRefreshesSheet(t *testing.T) {
	src := &stubSource{table: &models.Table{
		Headers: []string{"Together Unique #"},
		Rows:    [][]string{{"1"}},
	}}
	loader := catalog.NewLoader(src, cache.NewSnapshotCache(cache.NewMemoryStore(), time.Minute, "t"))

	warmer := NewWarmer(loader, nil)
	require.NoError(t, warmer.RunOnce(context.Background()))
	require.Equal(t, 1, src.fetches)
}

func TestRunOnceAggregatesErrors(t *testing.T) {
	src := &stubSource{err: errors.New("sheet gone")}
	loader := catalog.NewLoader(src, cache.NewSnapshotCache(cache.NewMemoryStore(), time.Minute, "t"))

	warmer := NewWarmer(loader, nil)
	require.Error(t, warmer.RunOnce(context.Background()))
}

func TestSweepExpiredEntries(t *testing.T) {
	ctx := context.Background()
	db := testutil.MustOpenTestDB(t)
	now := time.Now()

	require.NoError(t, db.Create(&models.CacheEntry{
		Key: "expired", Value: []byte("1"), ExpiresAt: now.Add(-time.Hour),
	}).Error)
	require.NoError(t, db.Create(&models.CacheEntry{
		Key: "live", Value: []byte("1"), ExpiresAt: now.Add(time.Hour),
	}).Error)
	require.NoError(t, db.Create(&models.CacheEntry{
		Key: "snapshot", Value: []byte("1"), // zero expiry: never swept
	}).Error)

	removed, err := SweepExpiredEntries(ctx, db, now)
	require.NoError(t, err)
	require.EqualValues(t, 1, removed)

	var remaining int64
	require.NoError(t, db.Model(&models.CacheEntry{}).Count(&remaining).Error)
	require.EqualValues(t, 2, remaining)
}

func TestStartIsInertWithoutWork(t *testing.T) {
	warmer := NewWarmer(nil, nil)
	require.NoError(t, warmer.Start())
	<-warmer.Stop().Done()
}
