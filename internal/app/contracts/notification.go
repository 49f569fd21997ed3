package contracts

import (
	"clinic-service/internal/app/models"
	"context"
)

type MessageRepository interface {
	CreateMessage(ctx context.Context, message *models.Message) (string, error)
}

type NotificationService interface {
	// NotifyStatusChanged records the patient message and publishes the event.
	NotifyStatusChanged(ctx context.Context, appointment *models.Appointment) error
}
