package outbox

import (
	"clinic-service/internal/app/models"
	sharedredis "clinic-service/internal/app/services/shared/redis"
	"clinic-service/internal/pkg/constvars"
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestOutboxService_FIFO(t *testing.T) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	defer client.Close()

	svc := NewOutboxService(sharedredis.NewRedisRepository(client), zap.NewNop())
	ctx := context.Background()

	require.NoError(t, svc.Enqueue(ctx, models.OutboxJob{Kind: constvars.SideEffectReportSync, ID: "a1"}))
	require.NoError(t, svc.Enqueue(ctx, models.OutboxJob{Kind: constvars.SideEffectInvoiceSettle, ID: "inv-1", Attempts: 2, LastError: "timeout"}))

	length, err := svc.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), length)

	first, err := svc.Dequeue(ctx)
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Equal(t, "report_sync", first.Kind)
	assert.Equal(t, "a1", first.ID)

	second, err := svc.Dequeue(ctx)
	require.NoError(t, err)
	require.NotNil(t, second)
	assert.Equal(t, 2, second.Attempts)
	assert.Equal(t, "timeout", second.LastError)

	empty, err := svc.Dequeue(ctx)
	require.NoError(t, err)
	assert.Nil(t, empty)
}

func TestOutboxService_MalformedJob(t *testing.T) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	defer client.Close()

	_, err := mr.Push(constvars.RedisKeySideEffectOutbox, "{not json")
	require.NoError(t, err)

	svc := NewOutboxService(sharedredis.NewRedisRepository(client), zap.NewNop())
	job, err := svc.Dequeue(context.Background())
	assert.Error(t, err)
	assert.Nil(t, job)
}
