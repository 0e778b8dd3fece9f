package storage

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/rubber-bridge/internal/network/server/types"
)

func newTestRedisStore(t *testing.T, expiration time.Duration) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client, expiration), mr
}

func TestRedisStore_SaveLoadDeleteTable(t *testing.T) {
	t.Parallel()

	store, mr := newTestRedisStore(t, time.Hour)
	ctx := context.Background()

	snap := &types.TableSnapshot{
		Code:       "123456",
		Phase:      "play",
		DealNumber: 2,
		Dealer:     "E",
		Players:    []string{"Ann", "Bob", "", "Dan"},
		Contract:   "4HX N",
		ScoreNS:    620,
	}
	require.NoError(t, store.SaveTable(ctx, snap))
	assert.Equal(t, time.Hour, mr.TTL(tableKeyPrefix+"123456"))

	loaded, err := store.LoadTable(ctx, "123456")
	require.NoError(t, err)
	assert.Equal(t, snap, loaded)

	codes, err := store.GetAllTableCodes(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"123456"}, codes)

	require.NoError(t, store.DeleteTable(ctx, "123456"))
	loaded, err = store.LoadTable(ctx, "123456")
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestRedisStore_ClearTables(t *testing.T) {
	t.Parallel()

	store, mr := newTestRedisStore(t, time.Hour)
	ctx := context.Background()

	for _, code := range []string{"111111", "222222"} {
		require.NoError(t, store.SaveTable(ctx, &types.TableSnapshot{Code: code}))
	}
	require.NoError(t, mr.Set("leaderboard:other", "x"))

	n, err := store.ClearTables(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	codes, err := store.GetAllTableCodes(ctx)
	require.NoError(t, err)
	assert.Empty(t, codes)
	assert.True(t, mr.Exists("leaderboard:other"))
}

func TestRedisStore_Expiration(t *testing.T) {
	t.Parallel()

	store, mr := newTestRedisStore(t, 0)
	ctx := context.Background()

	require.NoError(t, store.SaveTable(ctx, &types.TableSnapshot{Code: "1"}))
	assert.Equal(t, defaultTableExpiration, mr.TTL(tableKeyPrefix+"1"))

	mr.FastForward(defaultTableExpiration + time.Second)
	loaded, err := store.LoadTable(ctx, "1")
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestRedisStore_CorruptData(t *testing.T) {
	t.Parallel()

	store, mr := newTestRedisStore(t, time.Hour)
	require.NoError(t, mr.Set(tableKeyPrefix+"bad", "{"))

	_, err := store.LoadTable(context.Background(), "bad")
	assert.Error(t, err)
}

func TestRedisStore_Ping(t *testing.T) {
	t.Parallel()

	store, mr := newTestRedisStore(t, time.Hour)
	assert.NoError(t, store.Ping(context.Background()))

	mr.Close()
	assert.Error(t, store.Ping(context.Background()))
}
