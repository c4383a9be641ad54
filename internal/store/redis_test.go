package store

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zed-charania/Meridian/internal/intake"
)

func setupTestRedis(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	s := miniredis.RunT(t)
	store, err := OpenRedis(context.Background(), "redis://"+s.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store, s
}

// clock returns successive instants one second apart.
func clock(start time.Time) func() time.Time {
	next := start
	return func() time.Time {
		now := next
		next = next.Add(time.Second)
		return now
	}
}

func TestRedisStore_SaveAndGet(t *testing.T) {
	store, s := setupTestRedis(t)
	ctx := context.Background()
	store.now = clock(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))

	rec, err := intake.Parse([]byte(`{"first_name":"Maria","weight":145,"trips":[{"countries_traveled":"Mexico"}]}`))
	require.NoError(t, err)

	saved, err := store.Save(ctx, rec)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, saved.ID)
	assert.Equal(t, StatusSubmitted, saved.Status)
	assert.Equal(t, saved.CreatedAt, saved.UpdatedAt)
	assert.True(t, s.Exists(redisPrefix+saved.ID.String()))

	got, err := store.Get(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, saved.ID, got.ID)
	assert.Equal(t, StatusSubmitted, got.Status)
	assert.True(t, saved.CreatedAt.Equal(got.CreatedAt))
	assert.Equal(t, "Maria", got.Data.String("first_name"))
	assert.Equal(t, "145", got.Data.String("weight"))
	trips := got.Data.List("trips")
	require.Len(t, trips, 1)
	assert.Equal(t, "Mexico", trips[0].String("countries_traveled"))
}

func TestRedisStore_Latest(t *testing.T) {
	store, _ := setupTestRedis(t)
	ctx := context.Background()
	store.now = clock(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))

	_, err := store.Latest(ctx)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = store.Save(ctx, intake.Record{"first_name": "First"})
	require.NoError(t, err)
	second, err := store.Save(ctx, intake.Record{"first_name": "Second"})
	require.NoError(t, err)

	latest, err := store.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, second.ID, latest.ID)
	assert.Equal(t, "Second", latest.Data.String("first_name"))
}

func TestRedisStore_NotFound(t *testing.T) {
	store, _ := setupTestRedis(t)

	_, err := store.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStore_Ping(t *testing.T) {
	store, s := setupTestRedis(t)
	assert.NoError(t, store.Ping(context.Background()))

	s.Close()
	assert.Error(t, store.Ping(context.Background()))
}

func TestOpenRedis_Unreachable(t *testing.T) {
	_, err := OpenRedis(context.Background(), "not a url")
	assert.ErrorContains(t, err, "parse redis url")
}

func TestOpen(t *testing.T) {
	s := miniredis.RunT(t)
	ctx := context.Background()

	none, err := Open(ctx, Options{Backend: BackendNone})
	require.NoError(t, err)
	assert.Nil(t, none)

	r, err := Open(ctx, Options{Backend: "Redis", RedisURL: "redis://" + s.Addr()})
	require.NoError(t, err)
	require.NotNil(t, r)
	assert.NoError(t, r.Close())

	_, err = Open(ctx, Options{Backend: BackendRedis})
	assert.ErrorContains(t, err, "requires a redis url")
	_, err = Open(ctx, Options{Backend: BackendPostgres})
	assert.ErrorContains(t, err, "requires a database url")
	_, err = Open(ctx, Options{Backend: "sqlite"})
	assert.ErrorContains(t, err, "unknown store backend")
}
