package locker

import (
	sharedredis "clinic-service/internal/app/services/shared/redis"
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestLocker(t *testing.T) (*miniredis.Miniredis, *lockService) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, NewLockService(sharedredis.NewRedisRepository(client), zap.NewNop()).(*lockService)
}

func TestLockService_TryLockIsExclusive(t *testing.T) {
	_, locker := newTestLocker(t)
	ctx := context.Background()

	acquired, token, err := locker.TryLock(ctx, "worker:leader", time.Minute)
	require.NoError(t, err)
	assert.True(t, acquired)
	assert.NotEmpty(t, token)

	acquired, other, err := locker.TryLock(ctx, "worker:leader", time.Minute)
	require.NoError(t, err)
	assert.False(t, acquired)
	assert.Empty(t, other)

	require.NoError(t, locker.Unlock(ctx, "worker:leader", token))

	acquired, _, err = locker.TryLock(ctx, "worker:leader", time.Minute)
	require.NoError(t, err)
	assert.True(t, acquired)
}

func TestLockService_UnlockIgnoresForeignToken(t *testing.T) {
	mr, locker := newTestLocker(t)
	ctx := context.Background()

	_, token, err := locker.TryLock(ctx, "k", time.Minute)
	require.NoError(t, err)

	require.NoError(t, locker.Unlock(ctx, "k", "someone-else"))
	assert.True(t, mr.Exists("k"))

	require.NoError(t, locker.Unlock(ctx, "k", token))
	assert.False(t, mr.Exists("k"))
}

func TestLockService_Refresh(t *testing.T) {
	mr, locker := newTestLocker(t)
	ctx := context.Background()

	_, token, err := locker.TryLock(ctx, "k", time.Minute)
	require.NoError(t, err)

	require.NoError(t, locker.Refresh(ctx, "k", token, 10*time.Minute))
	assert.Equal(t, 10*time.Minute, mr.TTL("k"))

	assert.Error(t, locker.Refresh(ctx, "k", "someone-else", time.Minute))
}
