package contracts

import (
	"clinic-service/internal/app/models"
	"clinic-service/internal/pkg/dto/requests"
	"clinic-service/internal/pkg/dto/responses"
	"context"
	"time"
)

type InvoiceRepository interface {
	CreateInvoice(ctx context.Context, invoice *models.Invoice) (string, error)
	FindByID(ctx context.Context, invoiceID string) (*models.Invoice, error)
	FindByIDs(ctx context.Context, invoiceIDs []string) ([]models.Invoice, error)
	FindByAppointmentID(ctx context.Context, appointmentID string) ([]models.Invoice, error)
	FindByFilter(ctx context.Context, filter *requests.InvoiceFilter) ([]models.Invoice, int64, error)
	FindIssuedBetween(ctx context.Context, start, end *time.Time, doctorID string) ([]models.Invoice, error)
	Search(ctx context.Context, query string, patientIDs []string) ([]models.Invoice, error)
	UpdateInvoice(ctx context.Context, invoice *models.Invoice) error
	DeleteByID(ctx context.Context, invoiceID string) error
	DeleteByAppointmentID(ctx context.Context, appointmentID string) (int64, error)
}

type InvoiceUsecase interface {
	CreateInvoice(ctx context.Context, request *requests.CreateInvoice) (*models.Invoice, error)
	CreateForAppointment(ctx context.Context, appointment *models.Appointment, doctor *models.User, paid bool, createdBy string) (*models.Invoice, error)
	GetInvoice(ctx context.Context, invoiceID string) (*models.Invoice, error)
	ListInvoices(ctx context.Context, filter *requests.InvoiceFilter) ([]models.Invoice, int64, error)
	SearchInvoices(ctx context.Context, query string) ([]models.Invoice, error)
	GetInvoicesByAppointment(ctx context.Context, appointmentID string) ([]models.Invoice, error)
	UpdateInvoice(ctx context.Context, invoiceID string, request *requests.UpdateInvoice) (*models.Invoice, error)
	UpdateInvoicesByAppointment(ctx context.Context, appointmentID string, request *requests.UpdateInvoice) ([]models.Invoice, error)
	SettleInvoice(ctx context.Context, invoiceID, requester string) (*models.Invoice, error)
	SettleInvoicesForAppointment(ctx context.Context, appointmentID, requester string) (*responses.SettleInvoices, error)
	DeleteInvoice(ctx context.Context, invoiceID string) (*models.Invoice, error)
	DeleteByAppointment(ctx context.Context, appointmentID string) (int64, error)
	GetInvoiceStats(ctx context.Context, filter *requests.InvoiceStatsFilter) (*models.InvoiceStats, error)
	RenderInvoiceDocument(ctx context.Context, invoiceID string) (*responses.Document, error)
}
