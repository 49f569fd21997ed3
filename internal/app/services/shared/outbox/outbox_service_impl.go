package outbox

import (
	"clinic-service/internal/app/contracts"
	"clinic-service/internal/app/models"
	"clinic-service/internal/pkg/constvars"
	"clinic-service/internal/pkg/exceptions"
	"context"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type outboxService struct {
	redisRepo contracts.RedisRepository
	Log       *zap.Logger
}

func NewOutboxService(repo contracts.RedisRepository, logger *zap.Logger) contracts.OutboxService {
	return &outboxService{
		redisRepo: repo,
		Log:       logger,
	}
}

func (s *outboxService) Enqueue(ctx context.Context, job models.OutboxJob) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	payload, err := json.Marshal(job)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	err = s.redisRepo.PushToList(ctx, constvars.RedisKeySideEffectOutbox, string(payload))
	if err != nil {
		s.Log.Error("outboxService.Enqueue error pushing job",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingOutboxKindKey, job.Kind),
			zap.Error(err),
		)
		return err
	}

	s.Log.Info("outboxService.Enqueue job queued",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingOutboxKindKey, job.Kind),
		zap.String(constvars.LoggingAppointmentIDKey, job.ID),
		zap.Int(constvars.LoggingOutboxAttemptsKey, job.Attempts),
	)
	return nil
}

func (s *outboxService) Dequeue(ctx context.Context) (*models.OutboxJob, error) {
	payload, err := s.redisRepo.PopFromList(ctx, constvars.RedisKeySideEffectOutbox)
	if err != nil {
		return nil, err
	}
	if payload == "" {
		return nil, nil
	}

	var job models.OutboxJob
	err = json.Unmarshal([]byte(payload), &job)
	if err != nil {
		s.Log.Warn("outboxService.Dequeue dropping malformed job", zap.String(constvars.LoggingDataKey, payload), zap.Error(err))
		return nil, exceptions.ErrCannotParseJSON(err)
	}
	return &job, nil
}

func (s *outboxService) Len(ctx context.Context) (int64, error) {
	return s.redisRepo.ListLength(ctx, constvars.RedisKeySideEffectOutbox)
}
