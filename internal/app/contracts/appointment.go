package contracts

import (
	"clinic-service/internal/app/models"
	"clinic-service/internal/pkg/dto/requests"
	"clinic-service/internal/pkg/dto/responses"
	"context"
	"time"
)

type AppointmentRepository interface {
	CreateAppointment(ctx context.Context, appointment *models.Appointment) (string, error)
	FindByID(ctx context.Context, appointmentID string) (*models.Appointment, error)
	FindAll(ctx context.Context) ([]models.Appointment, error)
	FindByPatientID(ctx context.Context, patientID string) ([]models.Appointment, error)
	Search(ctx context.Context, name, phone string) ([]models.Appointment, error)
	// FindWithoutInvoices matches appointment_date as a string, see utils.AppointmentDateBounds.
	FindWithoutInvoices(ctx context.Context, start, end *time.Time, doctorID string) ([]models.Appointment, error)
	UpdateAppointment(ctx context.Context, appointment *models.Appointment) error
	AddInvoice(ctx context.Context, appointmentID, invoiceID string) error
	RemoveInvoice(ctx context.Context, appointmentID, invoiceID string) error
	DeleteByID(ctx context.Context, appointmentID string) error
}

type AppointmentUsecase interface {
	CreateAppointment(ctx context.Context, requester *models.Session, request *requests.CreateAppointment) (*models.Appointment, error)
	RenderAppointmentDocument(ctx context.Context, appointment *models.Appointment) (*responses.Document, error)
	UpdateAppointmentStatus(ctx context.Context, appointmentID string, request *requests.UpdateAppointmentStatus) (*models.Appointment, error)
	UpdateLatestByPatient(ctx context.Context, patientID string, request *requests.SavePrescription) (*models.Appointment, error)
	DeleteAppointment(ctx context.Context, appointmentID string) error
	BulkDeleteAppointments(ctx context.Context, appointmentIDs []string) (int, error)
	DeleteAppointmentsByPatient(ctx context.Context, patientID string) (int, error)
	FindAll(ctx context.Context) ([]models.Appointment, error)
	FindByID(ctx context.Context, appointmentID string) (*models.Appointment, error)
	FindByPatient(ctx context.Context, patientID string) ([]models.Appointment, error)
	Search(ctx context.Context, request *requests.SearchAppointments) ([]models.Appointment, error)
}
