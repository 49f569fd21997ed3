package notifier

import (
	"clinic-service/internal/app/contracts"
	"clinic-service/internal/app/models"
	"clinic-service/internal/pkg/constvars"
	"clinic-service/internal/pkg/exceptions"
	"clinic-service/internal/pkg/utils"
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// Publisher is the subset of *amqp091.Channel the notifier needs.
type Publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
}

type StatusChangedEvent struct {
	Event         string    `json:"event"`
	AppointmentID string    `json:"appointmentId"`
	PatientID     string    `json:"patientId"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"paymentStatus"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	Message       string    `json:"message"`
	SentAt        time.Time `json:"sentAt"`
}

type notifierService struct {
	Publisher   Publisher
	MessageRepo contracts.MessageRepository
	Queue       string
	PhoneRegion string
	Log         *zap.Logger
	now         func() time.Time
}

func NewNotifierService(rabbitMQConnection *amqp091.Connection, messageRepo contracts.MessageRepository, queue, phoneRegion string, logger *zap.Logger) (contracts.NotificationService, error) {
	var publisher Publisher
	if rabbitMQConnection != nil {
		channel, err := rabbitMQConnection.Channel()
		if err != nil {
			return nil, err
		}
		publisher = channel
	}
	return newNotifierService(publisher, messageRepo, queue, phoneRegion, logger), nil
}

func newNotifierService(publisher Publisher, messageRepo contracts.MessageRepository, queue, phoneRegion string, logger *zap.Logger) *notifierService {
	return &notifierService{
		Publisher:   publisher,
		MessageRepo: messageRepo,
		Queue:       queue,
		PhoneRegion: phoneRegion,
		Log:         logger,
		now:         time.Now,
	}
}

func (s *notifierService) NotifyStatusChanged(ctx context.Context, appointment *models.Appointment) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	s.Log.Info("notifierService.NotifyStatusChanged called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointment.ID),
		zap.String(constvars.LoggingStatusKey, appointment.Status),
	)

	firstName, lastName := utils.SplitFullName(appointment.Name)
	sentAt := s.now()
	text := fmt.Sprintf(constvars.NotificationStatusChangedFormat, appointment.AppointmentDate, appointment.Status)
	phone := utils.NormalizePhoneE164(appointment.Phone, s.PhoneRegion)

	message := &models.Message{
		FirstName:     firstName,
		LastName:      lastName,
		Email:         appointment.Email,
		Phone:         phone,
		Message:       text,
		AppointmentID: appointment.ID,
		SentAt:        sentAt,
	}
	_, err := s.MessageRepo.CreateMessage(ctx, message)
	if err != nil {
		s.Log.Error("notifierService.NotifyStatusChanged error creating message record",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return err
	}

	if s.Publisher == nil {
		return nil
	}

	body, err := json.Marshal(StatusChangedEvent{
		Event:         constvars.NotificationEventStatusChanged,
		AppointmentID: appointment.ID,
		PatientID:     appointment.PatientID,
		Status:        appointment.Status,
		PaymentStatus: appointment.PaymentStatus,
		Email:         appointment.Email,
		Phone:         phone,
		Message:       text,
		SentAt:        sentAt,
	})
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	msg := amqp091.Publishing{
		ContentType:  constvars.MIMEApplicationJSON,
		Body:         body,
		DeliveryMode: amqp091.Persistent,
		Timestamp:    sentAt,
		Headers: amqp091.Table{
			"message_type": "JSON",
			"request_id":   requestID,
		},
	}

	err = s.Publisher.PublishWithContext(ctx, "", s.Queue, false, false, msg)
	if err != nil {
		s.Log.Error("notifierService.NotifyStatusChanged error publishing event",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingQueueNameKey, s.Queue),
			zap.Error(err),
		)
		return exceptions.ErrRabbitMQPublishMessage(err, s.Queue)
	}

	return nil
}
