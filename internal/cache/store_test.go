package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mgleavitt/lockquests/internal/database/testutil"
)

func TestDatabaseStoreSetGetDelete(t *testing.T) {
	ctx := context.Background()
	store := NewDatabaseStore(testutil.MustOpenTestDB(t))

	require.NoError(t, store.Set(ctx, "k", []byte("v"), 0))

	value, ok, err := store.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []byte("v"), value)

	require.NoError(t, store.Delete(ctx, "k"))

	_, ok, err = store.Get(ctx, "k")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestDatabaseStoreRespectsExpiry(t *testing.T) {
	ctx := context.Background()
	store := NewDatabaseStore(testutil.MustOpenTestDB(t))

	require.NoError(t, store.Set(ctx, "short", []byte("v"), -time.Second))

	_, ok, err := store.Get(ctx, "short")
	require.NoError(t, err)
	require.True(t, ok, "non-positive ttl means no expiry at the store level")

	require.NoError(t, store.Set(ctx, "expired", []byte("v"), time.Nanosecond))
	time.Sleep(5 * time.Millisecond)

	_, ok, err = store.Get(ctx, "expired")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestDatabaseStoreIncrementWindows(t *testing.T) {
	ctx := context.Background()
	store := NewDatabaseStore(testutil.MustOpenTestDB(t))

	count, ttl, err := store.IncrementWithTTL(ctx, "rate", time.Minute)
	require.NoError(t, err)
	require.EqualValues(t, 1, count)
	require.Greater(t, ttl, time.Duration(0))

	count, _, err = store.IncrementWithTTL(ctx, "rate", time.Minute)
	require.NoError(t, err)
	require.EqualValues(t, 2, count)
}

func TestMemoryStoreBehavesLikeDatabaseStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.Set(ctx, "k", []byte("v"), 0))
	value, ok, err := store.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []byte("v"), value)

	count, _, err := store.IncrementWithTTL(ctx, "rate", time.Minute)
	require.NoError(t, err)
	require.EqualValues(t, 1, count)
	count, _, err = store.IncrementWithTTL(ctx, "rate", time.Minute)
	require.NoError(t, err)
	require.EqualValues(t, 2, count)

	require.NoError(t, store.Delete(ctx, "k"))
	_, ok, err = store.Get(ctx, "k")
	require.NoError(t, err)
	require.False(t, ok)
}
