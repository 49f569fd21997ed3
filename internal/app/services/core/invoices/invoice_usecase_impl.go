package invoices

import (
	"clinic-service/internal/app/config"
	"clinic-service/internal/app/contracts"
	"clinic-service/internal/app/models"
	"clinic-service/internal/app/services/core/documents"
	"clinic-service/internal/app/services/shared/metrics"
	"clinic-service/internal/pkg/constvars"
	"clinic-service/internal/pkg/dto/requests"
	"clinic-service/internal/pkg/dto/responses"
	"clinic-service/internal/pkg/exceptions"
	"clinic-service/internal/pkg/utils"
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("clinic-service/invoices")

type invoiceUsecase struct {
	InvoiceRepository     contracts.InvoiceRepository
	AppointmentRepository contracts.AppointmentRepository
	UserRepository        contracts.UserRepository
	RedisRepository       contracts.RedisRepository
	Storage               contracts.Storage
	Metrics               *metrics.ClinicMetrics
	InternalConfig        *config.InternalConfig
	Log                   *zap.Logger
	now                   func() time.Time
}

// NewInvoiceUsecase wires the invoice engine. storage may be nil, in which case
// rendered documents are not archived.
func NewInvoiceUsecase(
	invoiceRepository contracts.InvoiceRepository,
	appointmentRepository contracts.AppointmentRepository,
	userRepository contracts.UserRepository,
	redisRepository contracts.RedisRepository,
	storage contracts.Storage,
	clinicMetrics *metrics.ClinicMetrics,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.InvoiceUsecase {
	return &invoiceUsecase{
		InvoiceRepository:     invoiceRepository,
		AppointmentRepository: appointmentRepository,
		UserRepository:        userRepository,
		RedisRepository:       redisRepository,
		Storage:               storage,
		Metrics:               clinicMetrics,
		InternalConfig:        internalConfig,
		Log:                   logger,
		now:                   time.Now,
	}
}

func (uc *invoiceUsecase) CreateInvoice(ctx context.Context, request *requests.CreateInvoice) (*models.Invoice, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("invoiceUsecase.CreateInvoice called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingInvoiceNumberKey, request.InvoiceNumber),
	)

	if strings.TrimSpace(request.InvoiceNumber) == "" || strings.TrimSpace(request.Patient) == "" {
		return nil, exceptions.ErrInvoiceRequiredFields(nil)
	}

	err := utils.ValidateStruct(request)
	if err != nil {
		return nil, exceptions.ErrInputValidation(err)
	}

	if request.Appointment != "" {
		appointment, err := uc.AppointmentRepository.FindByID(ctx, request.Appointment)
		if err != nil {
			uc.Log.Error("invoiceUsecase.CreateInvoice error fetching appointment",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
			return nil, err
		}
		if appointment == nil {
			return nil, exceptions.ErrAppointmentNotFound(nil, request.Appointment)
		}
	}

	if request.Doctor != "" {
		doctor, err := uc.UserRepository.FindByID(ctx, request.Doctor)
		if err != nil {
			uc.Log.Error("invoiceUsecase.CreateInvoice error fetching doctor",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
			return nil, err
		}
		if doctor == nil || doctor.Role != constvars.RoleDoctor {
			return nil, exceptions.ErrDoctorNotFoundForID(nil, request.Doctor)
		}
	}

	now := uc.now()
	invoice := &models.Invoice{
		InvoiceNumber: strings.TrimSpace(request.InvoiceNumber),
		Appointment:   request.Appointment,
		Patient:       request.Patient,
		Doctor:        request.Doctor,
		Items:         NormalizeItems(request.Items),
		Tax:           request.Tax,
		Discount:      request.Discount,
		IssuedAt:      now,
		DueDate:       request.DueDate,
		Payments:      []models.Payment{},
	}
	if request.IssuedAt != nil {
		invoice.IssuedAt = *request.IssuedAt
	}
	invoice.SetCreatedAtUpdatedAt(now)

	for _, payment := range request.Payments {
		err := AppendPayment(invoice, payment.Amount, payment.Method, payment.Reference, request.CreatedBy, paidAtOrNow(payment.PaidAt, now))
		if err != nil {
			return nil, err
		}
	}
	RecomputeTotals(invoice)
	RecomputeStatus(invoice)
	if request.Status != "" {
		invoice.Status = request.Status
	}

	invoiceID, err := uc.InvoiceRepository.CreateInvoice(ctx, invoice)
	if err != nil {
		uc.Log.Error("invoiceUsecase.CreateInvoice error creating invoice",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	invoice.ID = invoiceID

	if invoice.Appointment != "" {
		err = uc.AppointmentRepository.AddInvoice(ctx, invoice.Appointment, invoiceID)
		if err != nil {
			uc.Log.Error("invoiceUsecase.CreateInvoice error linking invoice to appointment, removing invoice",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingAppointmentIDKey, invoice.Appointment),
				zap.Error(err),
			)
			if deleteErr := uc.InvoiceRepository.DeleteByID(ctx, invoiceID); deleteErr != nil {
				uc.Log.Error("invoiceUsecase.CreateInvoice error removing unlinked invoice",
					zap.String(constvars.LoggingRequestIDKey, requestID),
					zap.String(constvars.LoggingInvoiceIDKey, invoiceID),
					zap.Error(deleteErr),
				)
			}
			return nil, err
		}
	}

	uc.Log.Info("invoiceUsecase.CreateInvoice succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingInvoiceIDKey, invoiceID),
	)
	return invoice, nil
}

func (uc *invoiceUsecase) CreateForAppointment(ctx context.Context, appointment *models.Appointment, doctor *models.User, paid bool, createdBy string) (*models.Invoice, error) {
	ctx, span := tracer.Start(ctx, "invoices.CreateForAppointment")
	defer span.End()
	span.SetAttributes(
		attribute.String("appointment.id", appointment.ID),
		attribute.Bool("invoice.paid", paid),
	)

	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("invoiceUsecase.CreateForAppointment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointment.ID),
	)

	now := uc.now()
	invoiceNumber, err := uc.nextInvoiceNumber(ctx, now)
	if err != nil {
		uc.Log.Error("invoiceUsecase.CreateForAppointment error generating invoice number",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	fee := models.MoneyFromUnits(uc.InternalConfig.Clinic.DefaultConsultationFee)
	if doctor != nil && doctor.ConsultationFee > 0 {
		fee = doctor.ConsultationFee
	}
	platformFee := models.MoneyFromUnits(uc.InternalConfig.Clinic.PlatformFee)

	invoice := &models.Invoice{
		InvoiceNumber: invoiceNumber,
		Appointment:   appointment.ID,
		Patient:       appointment.PatientID,
		Doctor:        appointment.DoctorID,
		Items: []models.InvoiceItem{
			{Description: constvars.InvoiceItemConsultationFee, Quantity: 1, UnitPrice: fee, Total: fee},
			{Description: constvars.InvoiceItemPlatformFee, Quantity: 1, UnitPrice: platformFee, Total: platformFee},
		},
		IssuedAt: now,
		Payments: []models.Payment{},
	}
	invoice.SetCreatedAtUpdatedAt(now)
	RecomputeTotals(invoice)
	if paid {
		Settle(invoice, createdBy, now)
	} else {
		RecomputeStatus(invoice)
	}

	invoiceID, err := uc.InvoiceRepository.CreateInvoice(ctx, invoice)
	if err != nil {
		uc.Log.Error("invoiceUsecase.CreateForAppointment error creating invoice",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	invoice.ID = invoiceID

	err = uc.AppointmentRepository.AddInvoice(ctx, appointment.ID, invoiceID)
	if err != nil {
		uc.Log.Error("invoiceUsecase.CreateForAppointment error linking invoice to appointment",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingInvoiceIDKey, invoiceID),
			zap.Error(err),
		)
		return nil, err
	}
	if !appointment.HasInvoice(invoiceID) {
		appointment.Invoices = append(appointment.Invoices, invoiceID)
	}

	span.SetAttributes(attribute.String("invoice.number", invoiceNumber))
	uc.Log.Info("invoiceUsecase.CreateForAppointment succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingInvoiceIDKey, invoiceID),
		zap.String(constvars.LoggingInvoiceNumberKey, invoiceNumber),
		zap.String(constvars.LoggingStatusKey, invoice.Status),
	)
	return invoice, nil
}

func (uc *invoiceUsecase) GetInvoice(ctx context.Context, invoiceID string) (*models.Invoice, error) {
	invoice, err := uc.InvoiceRepository.FindByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, exceptions.ErrInvoiceNotFound(nil, invoiceID)
	}
	return invoice, nil
}

func (uc *invoiceUsecase) ListInvoices(ctx context.Context, filter *requests.InvoiceFilter) ([]models.Invoice, int64, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("invoiceUsecase.ListInvoices called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Any(constvars.LoggingQueryParamsKey, filter),
	)

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = constvars.AppDefaultPageSize
	}

	invoices, total, err := uc.InvoiceRepository.FindByFilter(ctx, filter)
	if err != nil {
		uc.Log.Error("invoiceUsecase.ListInvoices error fetching invoices",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, 0, err
	}
	return invoices, total, nil
}

func (uc *invoiceUsecase) SearchInvoices(ctx context.Context, query string) ([]models.Invoice, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("invoiceUsecase.SearchInvoices called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingQueryKey, query),
	)

	query = strings.TrimSpace(query)
	if query == "" {
		return nil, exceptions.ErrSearchQueryRequired(nil)
	}

	patientIDs, err := uc.UserRepository.FindPatientIDsMatching(ctx, query)
	if err != nil {
		uc.Log.Error("invoiceUsecase.SearchInvoices error matching patients",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	return uc.InvoiceRepository.Search(ctx, query, patientIDs)
}

func (uc *invoiceUsecase) GetInvoicesByAppointment(ctx context.Context, appointmentID string) ([]models.Invoice, error) {
	invoices, err := uc.InvoiceRepository.FindByAppointmentID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if len(invoices) == 0 {
		return nil, exceptions.ErrNoInvoicesForAppointment(nil, appointmentID)
	}
	return invoices, nil
}

func (uc *invoiceUsecase) UpdateInvoice(ctx context.Context, invoiceID string, request *requests.UpdateInvoice) (*models.Invoice, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("invoiceUsecase.UpdateInvoice called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingInvoiceIDKey, invoiceID),
	)

	err := utils.ValidateStruct(request)
	if err != nil {
		return nil, exceptions.ErrInputValidation(err)
	}

	invoice, err := uc.GetInvoice(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	err = ApplyUpdate(invoice, request, uc.now())
	if err != nil {
		return nil, err
	}

	err = uc.InvoiceRepository.UpdateInvoice(ctx, invoice)
	if err != nil {
		uc.Log.Error("invoiceUsecase.UpdateInvoice error saving invoice",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.Log.Info("invoiceUsecase.UpdateInvoice succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingInvoiceIDKey, invoiceID),
		zap.String(constvars.LoggingStatusKey, invoice.Status),
	)
	return invoice, nil
}

func (uc *invoiceUsecase) UpdateInvoicesByAppointment(ctx context.Context, appointmentID string, request *requests.UpdateInvoice) ([]models.Invoice, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("invoiceUsecase.UpdateInvoicesByAppointment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
	)

	err := utils.ValidateStruct(request)
	if err != nil {
		return nil, exceptions.ErrInputValidation(err)
	}

	invoices, err := uc.GetInvoicesByAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	for i := range invoices {
		err = ApplyUpdate(&invoices[i], request, now)
		if err != nil {
			return nil, err
		}
		err = uc.InvoiceRepository.UpdateInvoice(ctx, &invoices[i])
		if err != nil {
			uc.Log.Error("invoiceUsecase.UpdateInvoicesByAppointment error saving invoice",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingInvoiceIDKey, invoices[i].ID),
				zap.Error(err),
			)
			return nil, err
		}
	}

	uc.Log.Info("invoiceUsecase.UpdateInvoicesByAppointment succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingCountKey, len(invoices)),
	)
	return invoices, nil
}

func (uc *invoiceUsecase) SettleInvoice(ctx context.Context, invoiceID, requester string) (*models.Invoice, error) {
	ctx, span := tracer.Start(ctx, "invoices.SettleInvoice")
	defer span.End()
	span.SetAttributes(attribute.String("invoice.id", invoiceID))

	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("invoiceUsecase.SettleInvoice called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingInvoiceIDKey, invoiceID),
	)

	invoice, err := uc.GetInvoice(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	err = uc.settleAndSave(ctx, invoice, requester)
	if err != nil {
		uc.Log.Error("invoiceUsecase.SettleInvoice error saving invoice",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	return invoice, nil
}

func (uc *invoiceUsecase) SettleInvoicesForAppointment(ctx context.Context, appointmentID, requester string) (*responses.SettleInvoices, error) {
	ctx, span := tracer.Start(ctx, "invoices.SettleInvoicesForAppointment")
	defer span.End()
	span.SetAttributes(attribute.String("appointment.id", appointmentID))

	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("invoiceUsecase.SettleInvoicesForAppointment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
	)

	invoices, err := uc.GetInvoicesByAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	result := &responses.SettleInvoices{Settled: []models.Invoice{}}
	for i := range invoices {
		err = uc.settleAndSave(ctx, &invoices[i], requester)
		if err != nil {
			uc.Log.Warn("invoiceUsecase.SettleInvoicesForAppointment failed to settle invoice",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingInvoiceIDKey, invoices[i].ID),
				zap.Error(err),
			)
			uc.Metrics.ObserveSideEffect(constvars.SideEffectInvoiceSettle, constvars.OutcomeFailure)
			result.Failures = append(result.Failures, invoices[i].ID)
			continue
		}
		uc.Metrics.ObserveSideEffect(constvars.SideEffectInvoiceSettle, constvars.OutcomeSuccess)
		result.Settled = append(result.Settled, invoices[i])
	}

	uc.Log.Info("invoiceUsecase.SettleInvoicesForAppointment completed",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingCountKey, len(result.Settled)),
	)
	return result, nil
}

func (uc *invoiceUsecase) DeleteInvoice(ctx context.Context, invoiceID string) (*models.Invoice, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("invoiceUsecase.DeleteInvoice called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingInvoiceIDKey, invoiceID),
	)

	invoice, err := uc.GetInvoice(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	if invoice.Appointment != "" {
		err = uc.AppointmentRepository.RemoveInvoice(ctx, invoice.Appointment, invoice.ID)
		if err != nil {
			uc.Log.Error("invoiceUsecase.DeleteInvoice error unlinking invoice from appointment",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingAppointmentIDKey, invoice.Appointment),
				zap.Error(err),
			)
			return nil, err
		}
	}

	err = uc.InvoiceRepository.DeleteByID(ctx, invoice.ID)
	if err != nil {
		uc.Log.Error("invoiceUsecase.DeleteInvoice error deleting invoice",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	return invoice, nil
}

func (uc *invoiceUsecase) DeleteByAppointment(ctx context.Context, appointmentID string) (int64, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	deleted, err := uc.InvoiceRepository.DeleteByAppointmentID(ctx, appointmentID)
	if err != nil {
		uc.Log.Error("invoiceUsecase.DeleteByAppointment error deleting invoices",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
			zap.Error(err),
		)
		return 0, err
	}
	return deleted, nil
}

func (uc *invoiceUsecase) GetInvoiceStats(ctx context.Context, filter *requests.InvoiceStatsFilter) (*models.InvoiceStats, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("invoiceUsecase.GetInvoiceStats called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Any(constvars.LoggingQueryParamsKey, filter),
	)

	from, to := StatsWindow(filter.Start, filter.End, uc.now())
	invoices, err := uc.InvoiceRepository.FindIssuedBetween(ctx, &from, &to, filter.Doctor)
	if err != nil {
		uc.Log.Error("invoiceUsecase.GetInvoiceStats error fetching invoices",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	return BuildInvoiceStats(invoices, filter.Group), nil
}

func (uc *invoiceUsecase) RenderInvoiceDocument(ctx context.Context, invoiceID string) (*responses.Document, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("invoiceUsecase.RenderInvoiceDocument called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingInvoiceIDKey, invoiceID),
	)

	invoice, err := uc.GetInvoice(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	doc := documents.InvoiceDocument{
		Invoice: invoice,
		Patient: uc.lookupUser(ctx, invoice.Patient),
		Doctor:  uc.lookupUser(ctx, invoice.Doctor),
	}
	if invoice.Appointment != "" {
		appointment, err := uc.AppointmentRepository.FindByID(ctx, invoice.Appointment)
		if err != nil {
			uc.Log.Warn("invoiceUsecase.RenderInvoiceDocument could not load appointment",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
		}
		doc.Appointment = appointment
	}

	body := documents.RenderInvoiceHTML(doc)
	uc.archiveDocument(ctx, invoice.ID, body)

	return &responses.Document{
		FileName:    fmt.Sprintf(constvars.InvoiceDocumentFileNameFmt, invoice.ID),
		ContentType: constvars.MIMETextHTMLCharsetUTF8,
		Body:        body,
	}, nil
}

func (uc *invoiceUsecase) settleAndSave(ctx context.Context, invoice *models.Invoice, requester string) error {
	previousStatus := invoice.Status
	appended := Settle(invoice, requester, uc.now())
	if !appended && previousStatus == invoice.Status {
		return nil
	}
	invoice.SetUpdatedAt(uc.now())
	return uc.InvoiceRepository.UpdateInvoice(ctx, invoice)
}

// nextInvoiceNumber draws from a per-day redis counter; the key expires so
// old counters do not pile up.
func (uc *invoiceUsecase) nextInvoiceNumber(ctx context.Context, at time.Time) (string, error) {
	key := fmt.Sprintf(constvars.RedisKeyInvoiceSequenceFmt, at.Format(constvars.InvoiceSequenceDateLayout))
	sequence, err := uc.RedisRepository.Increment(ctx, key)
	if err != nil {
		return "", err
	}
	if sequence == 1 {
		ttl := time.Duration(uc.InternalConfig.Clinic.InvoiceSequenceTTLInHour) * time.Hour
		err = uc.RedisRepository.Expire(ctx, key, ttl)
		if err != nil {
			uc.Log.Warn("invoiceUsecase.nextInvoiceNumber failed to set sequence expiry",
				zap.String(constvars.LoggingRedisKey, key),
				zap.Error(err),
			)
		}
	}
	return utils.GenerateInvoiceNumber(at, sequence), nil
}

func (uc *invoiceUsecase) lookupUser(ctx context.Context, userID string) *models.User {
	if userID == "" {
		return nil
	}
	user, err := uc.UserRepository.FindByID(ctx, userID)
	if err != nil {
		uc.Log.Warn("invoiceUsecase.lookupUser failed",
			zap.String(constvars.LoggingUserIDKey, userID),
			zap.Error(err),
		)
		return nil
	}
	return user
}

func (uc *invoiceUsecase) archiveDocument(ctx context.Context, invoiceID string, body []byte) {
	if uc.Storage == nil {
		return
	}
	bucket := uc.InternalConfig.Minio.InvoiceBucketName
	objectName := fmt.Sprintf(constvars.InvoiceDocumentObjectNameFmt, invoiceID)
	_, err := uc.Storage.PutDocument(ctx, bucket, objectName, constvars.MIMETextHTMLCharsetUTF8, body)
	if err != nil {
		uc.Log.Warn("invoiceUsecase.archiveDocument failed",
			zap.String(constvars.LoggingSideEffectKey, constvars.SideEffectDocumentArchive),
			zap.String(constvars.LoggingBucketNameKey, bucket),
			zap.String(constvars.LoggingObjectNameKey, objectName),
			zap.Error(err),
		)
		uc.Metrics.ObserveSideEffect(constvars.SideEffectDocumentArchive, constvars.OutcomeFailure)
		return
	}
	uc.Metrics.ObserveSideEffect(constvars.SideEffectDocumentArchive, constvars.OutcomeSuccess)
}

// ApplyUpdate applies the allow-listed fields of request and recomputes totals.
// The status follows the payments unless the request sets it.
func ApplyUpdate(invoice *models.Invoice, request *requests.UpdateInvoice, now time.Time) error {
	if number := strings.TrimSpace(request.InvoiceNumber); number != "" {
		invoice.InvoiceNumber = number
	}
	if request.Items != nil {
		invoice.Items = NormalizeItems(request.Items)
	}
	if request.Tax != nil {
		invoice.Tax = models.MaxMoney(0, *request.Tax)
	}
	if request.Discount != nil {
		invoice.Discount = models.MaxMoney(0, *request.Discount)
	}
	if request.DueDate != nil {
		invoice.DueDate = request.DueDate
	}
	for _, payment := range request.Payments {
		err := AppendPayment(invoice, payment.Amount, payment.Method, payment.Reference, request.UpdatedBy, paidAtOrNow(payment.PaidAt, now))
		if err != nil {
			return err
		}
	}

	RecomputeTotals(invoice)
	if request.Status != "" {
		invoice.Status = request.Status
	} else {
		RecomputeStatus(invoice)
	}
	invoice.SetUpdatedAt(now)
	return nil
}

func paidAtOrNow(paidAt *time.Time, now time.Time) time.Time {
	if paidAt != nil {
		return *paidAt
	}
	return now
}
