package contracts

import (
	"clinic-service/internal/app/models"
	"clinic-service/internal/pkg/dto/requests"
	"clinic-service/internal/pkg/dto/responses"
	"context"
)

type ReportRepository interface {
	// UpsertByAppointmentID overwrites the computed fields and only sets createdAt on insert.
	UpsertByAppointmentID(ctx context.Context, report *models.Report) error
	FindByAppointmentID(ctx context.Context, appointmentID string) (*models.Report, error)
	DeleteByAppointmentID(ctx context.Context, appointmentID string) error
}

type ReportUsecase interface {
	Sync(ctx context.Context, appointmentID string) (*models.Report, error)
	GetByAppointment(ctx context.Context, appointmentID string) (*models.Report, error)
	DeleteByAppointment(ctx context.Context, appointmentID string) error
	Summary(ctx context.Context, filter *requests.ReportSummaryFilter) (*models.ReportSummary, error)
	ExportSummary(ctx context.Context, filter *requests.ReportSummaryFilter) (*responses.Document, error)
}
