package contracts

import (
	"clinic-service/internal/app/models"
	"context"
)

type OutboxService interface {
	Enqueue(ctx context.Context, job models.OutboxJob) error
	// Dequeue returns nil when the outbox is empty.
	Dequeue(ctx context.Context) (*models.OutboxJob, error)
	Len(ctx context.Context) (int64, error)
}
