package utils

import (
	"clinic-service/internal/pkg/constvars"
	"context"
	"time"

	"go.uber.org/zap"
)

// LogBusinessEvent records a clinic workflow milestone (appointment booked,
// invoice settled) so it can be filtered apart from request logs.
func LogBusinessEvent(logger *zap.Logger, event string, requestID string, fields ...zap.Field) {
	logger.Info("clinic event",
		append([]zap.Field{
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String("business_event", event),
			zap.Time("timestamp", time.Now()),
		}, fields...)...,
	)
}

func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string); ok {
		return requestID
	}
	return ""
}
