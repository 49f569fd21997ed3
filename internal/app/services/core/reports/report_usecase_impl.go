package reports

import (
	"clinic-service/internal/app/contracts"
	"clinic-service/internal/app/models"
	"clinic-service/internal/pkg/constvars"
	"clinic-service/internal/pkg/dto/requests"
	"clinic-service/internal/pkg/dto/responses"
	"clinic-service/internal/pkg/exceptions"
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type reportUsecase struct {
	ReportRepository      contracts.ReportRepository
	AppointmentRepository contracts.AppointmentRepository
	InvoiceRepository     contracts.InvoiceRepository
	Log                   *zap.Logger
	tracer                trace.Tracer
	now                   func() time.Time
}

func NewReportUsecase(
	reportRepository contracts.ReportRepository,
	appointmentRepository contracts.AppointmentRepository,
	invoiceRepository contracts.InvoiceRepository,
	logger *zap.Logger,
) contracts.ReportUsecase {
	return &reportUsecase{
		ReportRepository:      reportRepository,
		AppointmentRepository: appointmentRepository,
		InvoiceRepository:     invoiceRepository,
		Log:                   logger,
		tracer:                otel.Tracer("clinic-service/reports"),
		now:                   time.Now,
	}
}

// Sync recomputes the report of an appointment and stores it. A missing
// appointment is not an error and yields a nil report.
func (uc *reportUsecase) Sync(ctx context.Context, appointmentID string) (*models.Report, error) {
	ctx, span := uc.tracer.Start(ctx, "reports.Sync")
	defer span.End()
	span.SetAttributes(attribute.String("appointment.id", appointmentID))

	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("reportUsecase.Sync called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
	)

	appointment, err := uc.AppointmentRepository.FindByID(ctx, appointmentID)
	if err != nil {
		uc.Log.Error("reportUsecase.Sync error fetching appointment",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if appointment == nil {
		uc.Log.Info("reportUsecase.Sync appointment not found, nothing to project",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
		)
		return nil, nil
	}

	var linked []models.Invoice
	if len(appointment.Invoices) > 0 {
		linked, err = uc.InvoiceRepository.FindByIDs(ctx, appointment.Invoices)
		if err != nil {
			uc.Log.Error("reportUsecase.Sync error fetching linked invoices",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
			return nil, err
		}
	}

	report := Project(appointment, linked)
	if appointment.BookedBy != nil {
		report.CreatedBy = appointment.BookedBy.ID
	}

	existing, err := uc.ReportRepository.FindByAppointmentID(ctx, appointmentID)
	if err != nil {
		uc.Log.Error("reportUsecase.Sync error fetching stored report",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if existing != nil && sameProjection(existing, &report) {
		span.SetAttributes(attribute.Bool("report.unchanged", true))
		return existing, nil
	}

	report.SetCreatedAtUpdatedAt(uc.now())
	if existing != nil {
		report.ID = existing.ID
		report.CreatedAt = existing.CreatedAt
	}

	err = uc.ReportRepository.UpsertByAppointmentID(ctx, &report)
	if err != nil {
		uc.Log.Error("reportUsecase.Sync error upserting report",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	span.SetAttributes(attribute.String("report.status", report.Status))
	uc.Log.Info("reportUsecase.Sync succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
		zap.String(constvars.LoggingStatusKey, report.Status),
	)
	return &report, nil
}

func (uc *reportUsecase) GetByAppointment(ctx context.Context, appointmentID string) (*models.Report, error) {
	report, err := uc.ReportRepository.FindByAppointmentID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if report == nil {
		return nil, exceptions.ErrReportNotFound(nil, appointmentID)
	}
	return report, nil
}

func (uc *reportUsecase) DeleteByAppointment(ctx context.Context, appointmentID string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	err := uc.ReportRepository.DeleteByAppointmentID(ctx, appointmentID)
	if err != nil {
		uc.Log.Error("reportUsecase.DeleteByAppointment error deleting report",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func (uc *reportUsecase) Summary(ctx context.Context, filter *requests.ReportSummaryFilter) (*models.ReportSummary, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("reportUsecase.Summary called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Any(constvars.LoggingQueryParamsKey, filter),
	)

	start, end := SummaryRange(filter.Start, filter.End)
	linked, err := uc.InvoiceRepository.FindIssuedBetween(ctx, start, end, filter.DoctorID)
	if err != nil {
		uc.Log.Error("reportUsecase.Summary error fetching invoices",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	var unbilled []models.Appointment
	if IncludesAppointments(filter.Source) {
		unbilled, err = uc.AppointmentRepository.FindWithoutInvoices(ctx, start, end, filter.DoctorID)
		if err != nil {
			uc.Log.Error("reportUsecase.Summary error fetching appointments without invoices",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
			return nil, err
		}
	}

	return BuildSummary(linked, unbilled, filter.GroupBy), nil
}

func (uc *reportUsecase) ExportSummary(ctx context.Context, filter *requests.ReportSummaryFilter) (*responses.Document, error) {
	summary, err := uc.Summary(ctx, filter)
	if err != nil {
		return nil, err
	}

	body, err := ExportSummaryXLSX(summary)
	if err != nil {
		requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
		uc.Log.Error("reportUsecase.ExportSummary error writing workbook",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrExportSpreadsheet(err)
	}

	return &responses.Document{
		FileName:    constvars.ReportSummaryExportFileName,
		ContentType: constvars.MIMEApplicationSpreadsheet,
		Body:        body,
	}, nil
}

func sameProjection(stored, computed *models.Report) bool {
	return stored.DoctorID == computed.DoctorID &&
		stored.PatientID == computed.PatientID &&
		stored.AppointmentDate == computed.AppointmentDate &&
		stored.Amount == computed.Amount &&
		stored.Paid == computed.Paid &&
		stored.Due == computed.Due &&
		stored.Revenue == computed.Revenue &&
		stored.Status == computed.Status &&
		stored.Notes == computed.Notes &&
		stored.CreatedBy == computed.CreatedBy
}
