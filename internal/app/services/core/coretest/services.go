package coretest

import (
	"clinic-service/internal/app/contracts"
	"clinic-service/internal/app/models"
	sharedredis "clinic-service/internal/app/services/shared/redis"
	"context"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

// NewRedis starts a miniredis server bound to the test lifetime.
func NewRedis(t *testing.T) (contracts.RedisRepository, *miniredis.Miniredis) {
	t.Helper()
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return sharedredis.NewRedisRepository(client), server
}

// Notifier records status change notifications.
type Notifier struct {
	mu    sync.Mutex
	Sent  []models.Appointment
	Error error
}

func (n *Notifier) NotifyStatusChanged(_ context.Context, appointment *models.Appointment) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.Error != nil {
		return n.Error
	}
	n.Sent = append(n.Sent, *appointment)
	return nil
}

type Outbox struct {
	mu   sync.Mutex
	Jobs []models.OutboxJob
}

func (o *Outbox) Enqueue(_ context.Context, job models.OutboxJob) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.Jobs = append(o.Jobs, job)
	return nil
}

func (o *Outbox) Dequeue(_ context.Context) (*models.OutboxJob, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if len(o.Jobs) == 0 {
		return nil, nil
	}
	job := o.Jobs[0]
	o.Jobs = o.Jobs[1:]
	return &job, nil
}

func (o *Outbox) Len(_ context.Context) (int64, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return int64(len(o.Jobs)), nil
}

// Storage keeps uploaded documents by object name.
type Storage struct {
	mu      sync.Mutex
	Objects map[string][]byte
	Error   error
}

func (s *Storage) PutDocument(_ context.Context, bucketName, objectName, _ string, body []byte) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Error != nil {
		return "", s.Error
	}
	if s.Objects == nil {
		s.Objects = map[string][]byte{}
	}
	s.Objects[bucketName+"/"+objectName] = body
	return objectName, nil
}
