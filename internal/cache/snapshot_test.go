package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mgleavitt/lockquests/internal/database/testutil"
	"github.com/mgleavitt/lockquests/internal/models"
)

func sampleTable() *models.Table {
	return &models.Table{
		Headers: []string{"Room Name", "Together Unique #"},
		Rows: [][]string{
			{"Atlas", "5"},
			{"Ferrum", "3"},
		},
	}
}

func TestSnapshotRoundTripWithinTTL(t *testing.T) {
	ctx := context.Background()
	snap := NewSnapshotCache(NewMemoryStore(), 10*time.Minute, "1")

	_, ok := snap.Read(ctx)
	require.False(t, ok, "empty cache should miss")

	snap.Write(ctx, sampleTable())

	table, ok := snap.Read(ctx)
	require.True(t, ok)
	require.Equal(t, sampleTable(), table)
}

func TestSnapshotExpiresAfterTTL(t *testing.T) {
	ctx := context.Background()
	base := time.Now()
	current := base

	snap := NewSnapshotCache(NewMemoryStore(), 10*time.Minute, "1").
		WithClock(func() time.Time { return current })

	snap.Write(ctx, sampleTable())

	current = base.Add(9 * time.Minute)
	_, ok := snap.Read(ctx)
	require.True(t, ok, "snapshot should still be valid before TTL")

	current = base.Add(11 * time.Minute)
	_, ok = snap.Read(ctx)
	require.False(t, ok, "snapshot should be treated as absent after TTL")
}

func TestSnapshotVersionBumpInvalidates(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	snap := NewSnapshotCache(store, 10*time.Minute, "1")
	snap.InvalidateIfStaleVersion(ctx)
	snap.Write(ctx, sampleTable())

	_, ok := snap.Read(ctx)
	require.True(t, ok)

	// Same version: the payload survives startup invalidation.
	again := NewSnapshotCache(store, 10*time.Minute, "1")
	again.InvalidateIfStaleVersion(ctx)
	_, ok = again.Read(ctx)
	require.True(t, ok)

	// Bumped version: payload and timestamp are purged, marker updated.
	bumped := NewSnapshotCache(store, 10*time.Minute, "2")
	bumped.InvalidateIfStaleVersion(ctx)
	_, ok = bumped.Read(ctx)
	require.False(t, ok)

	marker, found, err := store.Get(ctx, snapshotVersionKey)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "2", string(marker))
}

func TestSnapshotOverDatabaseStore(t *testing.T) {
	ctx := context.Background()
	db := testutil.MustOpenTestDB(t)

	snap := NewSnapshotCache(NewDatabaseStore(db), 10*time.Minute, "1")
	snap.InvalidateIfStaleVersion(ctx)
	snap.Write(ctx, sampleTable())

	table, ok := snap.Read(ctx)
	require.True(t, ok)
	require.Equal(t, sampleTable().Rows, table.Rows)
}

func TestSnapshotReadTolerantOfCorruptPayload(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	snap := NewSnapshotCache(store, 10*time.Minute, "1")

	snap.Write(ctx, sampleTable())
	require.NoError(t, store.Set(ctx, snapshotPayloadKey, []byte("{not json"), 0))

	_, ok := snap.Read(ctx)
	require.False(t, ok, "corrupt payload must read as absent, not panic")
}
