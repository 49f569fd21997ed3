package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepository(t *testing.T) (*miniredis.Miniredis, *redisRepository) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, &redisRepository{client: client}
}

func TestRedisRepository_SetGet(t *testing.T) {
	_, repo := newTestRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "k", "value", time.Minute))
	got, err := repo.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, `"value"`, got)

	missing, err := repo.Get(ctx, "missing")
	require.NoError(t, err)
	assert.Empty(t, missing)

	require.NoError(t, repo.Delete(ctx, "k"))
	got, err = repo.Get(ctx, "k")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRedisRepository_IncrementAndExpire(t *testing.T) {
	mr, repo := newTestRepository(t)
	ctx := context.Background()

	first, err := repo.Increment(ctx, "seq")
	require.NoError(t, err)
	second, err := repo.Increment(ctx, "seq")
	require.NoError(t, err)
	assert.Equal(t, int64(1), first)
	assert.Equal(t, int64(2), second)

	require.NoError(t, repo.Expire(ctx, "seq", time.Hour))
	assert.Equal(t, time.Hour, mr.TTL("seq"))
}

func TestRedisRepository_List(t *testing.T) {
	_, repo := newTestRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.PushToList(ctx, "list", "a", "b"))
	length, err := repo.ListLength(ctx, "list")
	require.NoError(t, err)
	assert.Equal(t, int64(2), length)

	value, err := repo.PopFromList(ctx, "list")
	require.NoError(t, err)
	assert.Equal(t, "a", value)
	value, err = repo.PopFromList(ctx, "list")
	require.NoError(t, err)
	assert.Equal(t, "b", value)

	value, err = repo.PopFromList(ctx, "list")
	require.NoError(t, err)
	assert.Empty(t, value)
}

func TestRedisRepository_TrySetNX(t *testing.T) {
	_, repo := newTestRepository(t)
	ctx := context.Background()

	acquired, err := repo.TrySetNX(ctx, "lock", "owner", time.Minute)
	require.NoError(t, err)
	assert.True(t, acquired)

	acquired, err = repo.TrySetNX(ctx, "lock", "other", time.Minute)
	require.NoError(t, err)
	assert.False(t, acquired)
}
