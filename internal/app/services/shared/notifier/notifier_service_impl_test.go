package notifier

import (
	"clinic-service/internal/app/models"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakePublisher struct {
	queue    string
	messages []amqp091.Publishing
	err      error
}

func (f *fakePublisher) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error {
	if f.err != nil {
		return f.err
	}
	f.queue = key
	f.messages = append(f.messages, msg)
	return nil
}

type fakeMessageRepo struct {
	messages []models.Message
	err      error
}

func (f *fakeMessageRepo) CreateMessage(ctx context.Context, message *models.Message) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.messages = append(f.messages, *message)
	return "msg-1", nil
}

func testAppointment() *models.Appointment {
	return &models.Appointment{
		ID:              "appt-1",
		Name:            "Nimal Perera Silva",
		Email:           "nimal@example.com",
		Phone:           "0771234567",
		PatientID:       "patient-1",
		AppointmentDate: "2026-03-04",
		Status:          "Accepted",
		PaymentStatus:   "Pending",
	}
}

func TestNotifierService_NotifyStatusChanged(t *testing.T) {
	publisher := &fakePublisher{}
	repo := &fakeMessageRepo{}
	svc := newNotifierService(publisher, repo, "clinic.notifications", "LK", zap.NewNop())
	svc.now = func() time.Time { return time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC) }

	err := svc.NotifyStatusChanged(context.Background(), testAppointment())
	require.NoError(t, err)

	require.Len(t, repo.messages, 1)
	message := repo.messages[0]
	assert.Equal(t, "Nimal", message.FirstName)
	assert.Equal(t, "Perera Silva", message.LastName)
	assert.Equal(t, "+94771234567", message.Phone)
	assert.Equal(t, "Your appointment scheduled on 2026-03-04 is now Accepted.", message.Message)

	require.Len(t, publisher.messages, 1)
	assert.Equal(t, "clinic.notifications", publisher.queue)
	assert.Equal(t, amqp091.Persistent, publisher.messages[0].DeliveryMode)

	var event StatusChangedEvent
	require.NoError(t, json.Unmarshal(publisher.messages[0].Body, &event))
	assert.Equal(t, "appointment.status_changed", event.Event)
	assert.Equal(t, "appt-1", event.AppointmentID)
}

func TestNotifierService_Failures(t *testing.T) {
	t.Run("message record failure skips publishing", func(t *testing.T) {
		publisher := &fakePublisher{}
		svc := newNotifierService(publisher, &fakeMessageRepo{err: errors.New("db down")}, "q", "LK", zap.NewNop())

		assert.Error(t, svc.NotifyStatusChanged(context.Background(), testAppointment()))
		assert.Empty(t, publisher.messages)
	})

	t.Run("publish failure is returned", func(t *testing.T) {
		repo := &fakeMessageRepo{}
		svc := newNotifierService(&fakePublisher{err: errors.New("closed")}, repo, "q", "LK", zap.NewNop())

		assert.Error(t, svc.NotifyStatusChanged(context.Background(), testAppointment()))
		assert.Len(t, repo.messages, 1)
	})

	t.Run("no broker only records the message", func(t *testing.T) {
		repo := &fakeMessageRepo{}
		svc := newNotifierService(nil, repo, "q", "LK", zap.NewNop())

		assert.NoError(t, svc.NotifyStatusChanged(context.Background(), testAppointment()))
		assert.Len(t, repo.messages, 1)
	})
}
