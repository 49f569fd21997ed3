package contracts

import (
	"context"
	"time"
)

// LockerService guards work that only one clinic-service instance may run at a
// time, such as the outbox replay.
type LockerService interface {
	// TryLock returns the owner token when the lock was taken.
	TryLock(ctx context.Context, key string, ttl time.Duration) (acquired bool, token string, err error)
	Unlock(ctx context.Context, key, token string) error
	Refresh(ctx context.Context, key, token string, ttl time.Duration) error
}
