package session

import (
	"clinic-service/internal/app/contracts"
	"clinic-service/internal/app/models"
	"clinic-service/internal/pkg/constvars"
	"clinic-service/internal/pkg/exceptions"
	"context"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type sessionService struct {
	RedisRepository contracts.RedisRepository
	Log             *zap.Logger
	now             func() time.Time
}

func NewSessionService(redisRepository contracts.RedisRepository, logger *zap.Logger) contracts.SessionService {
	return &sessionService{
		RedisRepository: redisRepository,
		Log:             logger,
		now:             time.Now,
	}
}

func (svc *sessionService) CreateSession(ctx context.Context, session *models.Session, ttl time.Duration) error {
	if session.ExpiresAt.IsZero() {
		session.ExpiresAt = svc.now().Add(ttl)
	}
	return svc.RedisRepository.Set(ctx, sessionKey(session.SessionID), session, ttl)
}

// GetSession fails with an unauthorized error when the session is unknown or
// past its expiry.
func (svc *sessionService) GetSession(ctx context.Context, sessionID string) (*models.Session, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	raw, err := svc.RedisRepository.Get(ctx, sessionKey(sessionID))
	if err != nil {
		return nil, err
	}
	if raw == "" {
		return nil, exceptions.ErrInvalidSession(nil)
	}

	session := new(models.Session)
	err = json.Unmarshal([]byte(raw), session)
	if err != nil {
		svc.Log.Error("sessionService.GetSession error parsing session data",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrServerParseSessionData(err)
	}

	if session.IsExpired(svc.now()) {
		_ = svc.RedisRepository.Delete(ctx, sessionKey(sessionID))
		return nil, exceptions.ErrTokenInvalidOrExpired(nil)
	}
	return session, nil
}

func (svc *sessionService) DeleteSession(ctx context.Context, sessionID string) error {
	return svc.RedisRepository.Delete(ctx, sessionKey(sessionID))
}

func sessionKey(sessionID string) string {
	return constvars.RedisKeySessionPrefix + sessionID
}
