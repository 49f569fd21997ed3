package appointments

import (
	"clinic-service/internal/app/config"
	"clinic-service/internal/app/contracts"
	"clinic-service/internal/app/models"
	"clinic-service/internal/app/services/core/documents"
	"clinic-service/internal/app/services/core/harmonizer"
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

var tracer = otel.Tracer("clinic-service/appointments")

type appointmentUsecase struct {
	AppointmentRepository contracts.AppointmentRepository
	UserRepository        contracts.UserRepository
	InvoiceUsecase        contracts.InvoiceUsecase
	ReportUsecase         contracts.ReportUsecase
	NotificationService   contracts.NotificationService
	OutboxService         contracts.OutboxService
	Metrics               *metrics.ClinicMetrics
	InternalConfig        *config.InternalConfig
	Log                   *zap.Logger
	now                   func() time.Time
}

func NewAppointmentUsecase(
	appointmentRepository contracts.AppointmentRepository,
	userRepository contracts.UserRepository,
	invoiceUsecase contracts.InvoiceUsecase,
	reportUsecase contracts.ReportUsecase,
	notificationService contracts.NotificationService,
	outboxService contracts.OutboxService,
	clinicMetrics *metrics.ClinicMetrics,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.AppointmentUsecase {
	return &appointmentUsecase{
		AppointmentRepository: appointmentRepository,
		UserRepository:        userRepository,
		InvoiceUsecase:        invoiceUsecase,
		ReportUsecase:         reportUsecase,
		NotificationService:   notificationService,
		OutboxService:         outboxService,
		Metrics:               clinicMetrics,
		InternalConfig:        internalConfig,
		Log:                   logger,
		now:                   time.Now,
	}
}

func (uc *appointmentUsecase) CreateAppointment(ctx context.Context, requester *models.Session, request *requests.CreateAppointment) (*models.Appointment, error) {
	ctx, span := tracer.Start(ctx, "appointments.CreateAppointment")
	defer span.End()

	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.CreateAppointment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String("department", request.Department),
	)

	if requester == nil {
		return nil, exceptions.ErrRequesterMissing(nil)
	}
	switch requester.Role {
	case constvars.RoleAdmin, constvars.RoleDoctor, constvars.RoleCompounder:
	default:
		uc.Log.Warn("appointmentUsecase.CreateAppointment role not allowed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRoleKey, requester.Role),
		)
		return nil, exceptions.ErrForbiddenRole(nil, requester.Role)
	}

	err := utils.ValidateStruct(request)
	if err != nil {
		return nil, exceptions.ErrInputValidation(err)
	}

	doctor, err := uc.resolveDoctor(ctx, request.DoctorID, request.Department)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.String("doctor.id", doctor.ID))

	now := uc.now()
	appointment := &models.Appointment{
		Name:            strings.TrimSpace(request.Name),
		Email:           strings.TrimSpace(request.Email),
		Phone:           strings.TrimSpace(request.Phone),
		NIC:             strings.TrimSpace(request.NIC),
		Age:             request.Age,
		Gender:          request.Gender,
		Address:         request.Address,
		AppointmentDate: request.AppointmentDate,
		Department:      request.Department,
		Doctor:          models.DoctorSnapshot{FirstName: doctor.FirstName, LastName: doctor.LastName},
		DoctorID:        doctor.ID,
		HasVisited:      request.HasVisited,
		Invoices:        []string{},
		BookedBy:        &models.BookedBy{ID: requester.UserID, Name: requester.Name, Role: requester.Role},
	}
	if appointment.AppointmentDate == "" {
		appointment.AppointmentDate = now.Format("2006-01-02")
	}

	err = uc.derivePatientFields(appointment, request.DOB, now)
	if err != nil {
		return nil, err
	}

	patient, err := uc.resolvePatient(ctx, appointment, request.Password, now)
	if err != nil {
		return nil, err
	}
	appointment.PatientID = patient.ID

	fee := models.MoneyFromUnits(uc.InternalConfig.Clinic.DefaultConsultationFee)
	if doctor.ConsultationFee > 0 {
		fee = doctor.ConsultationFee
	}
	appointment.Price = ConsultationPrice(fee)

	decision := harmonizer.Harmonize(harmonizer.Input{
		Status:        request.Status,
		PaymentStatus: request.PaymentStatus,
	}, nil, harmonizer.ContextCreate)
	appointment.Status = decision.Status
	appointment.PaymentStatus = decision.PaymentStatus
	appointment.SetCreatedAtUpdatedAt(now)

	appointmentID, err := uc.AppointmentRepository.CreateAppointment(ctx, appointment)
	if err != nil {
		uc.Log.Error("appointmentUsecase.CreateAppointment error creating appointment",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	appointment.ID = appointmentID
	span.SetAttributes(attribute.String("appointment.id", appointmentID))

	invoice, err := uc.InvoiceUsecase.CreateForAppointment(ctx, appointment, doctor, harmonizer.IsPaidEquivalent(decision.PaymentStatus), requester.UserID)
	if err != nil {
		uc.Log.Error("appointmentUsecase.CreateAppointment invoice generation failed, appointment kept without invoice",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
			zap.String(constvars.LoggingSideEffectKey, constvars.SideEffectInvoiceCreate),
			zap.Error(err),
		)
		uc.Metrics.ObserveSideEffect(constvars.SideEffectInvoiceCreate, constvars.OutcomeFailure)
	} else {
		if !appointment.HasInvoice(invoice.ID) {
			appointment.Invoices = append(appointment.Invoices, invoice.ID)
		}
		uc.Metrics.ObserveSideEffect(constvars.SideEffectInvoiceCreate, constvars.OutcomeSuccess)
	}

	uc.syncReport(ctx, appointmentID, requester.UserID)

	utils.LogBusinessEvent(uc.Log, "appointment_created", requestID,
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
		zap.String(constvars.LoggingPatientIDKey, appointment.PatientID),
		zap.String(constvars.LoggingDoctorIDKey, appointment.DoctorID),
		zap.String(constvars.LoggingStatusKey, appointment.Status),
		zap.String(constvars.LoggingPaymentStatusKey, appointment.PaymentStatus),
	)
	return appointment, nil
}

func (uc *appointmentUsecase) RenderAppointmentDocument(ctx context.Context, appointment *models.Appointment) (*responses.Document, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.RenderAppointmentDocument called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointment.ID),
	)

	var invoice *models.Invoice
	if len(appointment.Invoices) > 0 {
		latest := appointment.Invoices[len(appointment.Invoices)-1]
		found, err := uc.InvoiceUsecase.GetInvoice(ctx, latest)
		if err != nil {
			uc.Log.Warn("appointmentUsecase.RenderAppointmentDocument invoice unavailable, rendering price only",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingInvoiceIDKey, latest),
				zap.Error(err),
			)
		} else {
			invoice = found
		}
	}

	return &responses.Document{
		FileName:    fmt.Sprintf(constvars.AppointmentDocumentFileName, appointment.ID),
		ContentType: constvars.MIMETextHTMLCharsetUTF8,
		Body:        documents.RenderAppointmentHTML(appointment, invoice),
	}, nil
}

func (uc *appointmentUsecase) UpdateAppointmentStatus(ctx context.Context, appointmentID string, request *requests.UpdateAppointmentStatus) (*models.Appointment, error) {
	ctx, span := tracer.Start(ctx, "appointments.UpdateAppointmentStatus")
	defer span.End()
	span.SetAttributes(attribute.String("appointment.id", appointmentID))

	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.UpdateAppointmentStatus called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
	)

	err := utils.ValidateStruct(request)
	if err != nil {
		return nil, exceptions.ErrInputValidation(err)
	}

	appointment, err := uc.FindByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	previousStatus := appointment.Status
	previousPaymentStatus := appointment.PaymentStatus

	decision := harmonizer.Harmonize(harmonizer.Input{
		Status:        request.Status,
		PaymentStatus: request.PaymentStatus,
	}, appointment, harmonizer.ContextStatusUpdate)
	appointment.Status = decision.Status
	appointment.PaymentStatus = decision.PaymentStatus
	if request.AppointmentDate != nil {
		appointment.AppointmentDate = *request.AppointmentDate
	}
	if request.Department != nil {
		appointment.Department = *request.Department
	}
	if request.Address != nil {
		appointment.Address = *request.Address
	}
	if request.HasVisited != nil {
		appointment.HasVisited = *request.HasVisited
	}
	appointment.SetUpdatedAt(uc.now())

	err = uc.AppointmentRepository.UpdateAppointment(ctx, appointment)
	if err != nil {
		uc.Log.Error("appointmentUsecase.UpdateAppointmentStatus error updating appointment",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	if appointment.Status != previousStatus {
		uc.notifyStatusChanged(ctx, appointment)
	}

	requesterID := requesterIDFromContext(ctx)
	if previousPaymentStatus != constvars.PaymentStatusPaid && appointment.PaymentStatus == constvars.PaymentStatusPaid {
		uc.settleLinkedInvoices(ctx, appointment, requesterID)
	}

	uc.syncReport(ctx, appointment.ID, requesterID)

	uc.Log.Info("appointmentUsecase.UpdateAppointmentStatus succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointment.ID),
		zap.String(constvars.LoggingStatusKey, appointment.Status),
		zap.String(constvars.LoggingPaymentStatusKey, appointment.PaymentStatus),
	)
	return appointment, nil
}

func (uc *appointmentUsecase) UpdateLatestByPatient(ctx context.Context, patientID string, request *requests.SavePrescription) (*models.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.UpdateLatestByPatient called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patientID),
	)

	err := utils.ValidateStruct(request)
	if err != nil {
		return nil, exceptions.ErrInputValidation(err)
	}

	appointments, err := uc.AppointmentRepository.FindByPatientID(ctx, patientID)
	if err != nil {
		uc.Log.Error("appointmentUsecase.UpdateLatestByPatient error fetching appointments",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	appointment := latestByDate(appointments)
	if appointment == nil {
		return nil, exceptions.ErrPatientAppointmentNotFound(nil, patientID)
	}

	records, supplied, err := NormalizeResult(request.Result)
	if err != nil {
		return nil, exceptions.ErrCannotParseJSON(err)
	}
	if supplied {
		appointment.Result = records
	}

	decision := harmonizer.Harmonize(harmonizer.Input{
		Status:        request.Status,
		PaymentStatus: request.PaymentStatus,
		Print:         request.Print,
		PrintAndSave:  request.PrintAndSave,
	}, appointment, harmonizer.ContextPrescriptionSave)
	appointment.Status = decision.Status
	appointment.PaymentStatus = decision.PaymentStatus
	appointment.SetUpdatedAt(uc.now())

	err = uc.AppointmentRepository.UpdateAppointment(ctx, appointment)
	if err != nil {
		uc.Log.Error("appointmentUsecase.UpdateLatestByPatient error updating appointment",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.syncReport(ctx, appointment.ID, requesterIDFromContext(ctx))

	uc.Log.Info("appointmentUsecase.UpdateLatestByPatient succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointment.ID),
		zap.String(constvars.LoggingStatusKey, appointment.Status),
	)
	return appointment, nil
}

func (uc *appointmentUsecase) DeleteAppointment(ctx context.Context, appointmentID string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.DeleteAppointment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
	)

	_, err := uc.FindByID(ctx, appointmentID)
	if err != nil {
		return err
	}
	return uc.cascadeDelete(ctx, appointmentID)
}

func (uc *appointmentUsecase) BulkDeleteAppointments(ctx context.Context, appointmentIDs []string) (int, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.BulkDeleteAppointments called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingCountKey, len(appointmentIDs)),
	)

	if len(appointmentIDs) == 0 {
		return 0, exceptions.ErrNoIDsProvided(nil)
	}

	deleted := 0
	for _, appointmentID := range appointmentIDs {
		appointment, err := uc.AppointmentRepository.FindByID(ctx, appointmentID)
		if err != nil && exceptions.StatusCodeOf(err) == constvars.StatusBadRequest {
			uc.Log.Warn("appointmentUsecase.BulkDeleteAppointments skipping malformed id",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
			)
			continue
		}
		if err != nil {
			return deleted, err
		}
		if appointment == nil {
			continue
		}
		err = uc.cascadeDelete(ctx, appointmentID)
		if err != nil {
			return deleted, err
		}
		deleted++
	}

	uc.Log.Info("appointmentUsecase.BulkDeleteAppointments succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingCountKey, deleted),
	)
	return deleted, nil
}

func (uc *appointmentUsecase) DeleteAppointmentsByPatient(ctx context.Context, patientID string) (int, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.DeleteAppointmentsByPatient called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patientID),
	)

	appointments, err := uc.AppointmentRepository.FindByPatientID(ctx, patientID)
	if err != nil {
		return 0, err
	}
	deleted := 0
	for _, appointment := range appointments {
		err = uc.cascadeDelete(ctx, appointment.ID)
		if err != nil {
			return deleted, err
		}
		deleted++
	}
	return deleted, nil
}

func (uc *appointmentUsecase) FindAll(ctx context.Context) ([]models.Appointment, error) {
	return uc.AppointmentRepository.FindAll(ctx)
}

func (uc *appointmentUsecase) FindByID(ctx context.Context, appointmentID string) (*models.Appointment, error) {
	appointment, err := uc.AppointmentRepository.FindByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, exceptions.ErrAppointmentNotFound(nil, appointmentID)
	}
	return appointment, nil
}

func (uc *appointmentUsecase) FindByPatient(ctx context.Context, patientID string) ([]models.Appointment, error) {
	appointments, err := uc.AppointmentRepository.FindByPatientID(ctx, patientID)
	if err != nil {
		return nil, err
	}
	if len(appointments) == 0 {
		return nil, exceptions.ErrPatientAppointmentNotFound(nil, patientID)
	}
	return appointments, nil
}

func (uc *appointmentUsecase) Search(ctx context.Context, request *requests.SearchAppointments) ([]models.Appointment, error) {
	name := strings.TrimSpace(request.Name)
	phone := strings.TrimSpace(request.Phone)
	if name == "" && phone == "" {
		return nil, exceptions.ErrSearchCriteriaRequired(nil)
	}

	appointments, err := uc.AppointmentRepository.Search(ctx, name, phone)
	if err != nil {
		return nil, err
	}
	if len(appointments) == 0 {
		return nil, exceptions.ErrSearchAppointmentNotFound(nil)
	}
	return appointments, nil
}

func (uc *appointmentUsecase) resolveDoctor(ctx context.Context, doctorID, department string) (*models.User, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	if doctorID != "" {
		doctor, err := uc.UserRepository.FindByID(ctx, doctorID)
		if err != nil && exceptions.StatusCodeOf(err) != constvars.StatusBadRequest {
			return nil, err
		}
		if doctor == nil || doctor.Role != constvars.RoleDoctor {
			return nil, exceptions.ErrDoctorNotFoundForID(err, doctorID)
		}
		return doctor, nil
	}

	doctors, err := uc.UserRepository.FindDoctorsByDepartment(ctx, department)
	if err != nil {
		return nil, err
	}
	if len(doctors) == 0 {
		return nil, exceptions.ErrDoctorNotFound(nil)
	}
	if len(doctors) > 1 {
		uc.Log.Warn("appointmentUsecase.resolveDoctor several doctors match department, using the first",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String("department", department),
			zap.Int(constvars.LoggingCountKey, len(doctors)),
		)
	}
	return &doctors[0], nil
}

func (uc *appointmentUsecase) derivePatientFields(appointment *models.Appointment, rawDOB string, now time.Time) error {
	if strings.TrimSpace(rawDOB) != "" {
		dob, err := utils.ParseFlexibleTime(rawDOB)
		if err != nil {
			return exceptions.ErrInvalidFormat(err, "dob")
		}
		appointment.DOB = &dob
	}

	if appointment.DOB == nil && appointment.Age != nil {
		dob := DeriveDOB(*appointment.Age, now)
		appointment.DOB = &dob
	}
	if appointment.Age == nil && appointment.DOB != nil {
		age := DeriveAge(*appointment.DOB, now)
		appointment.Age = &age
	}
	if appointment.NIC == "" {
		appointment.NIC = SynthesizeNIC(appointment.Phone, now)
	}
	if appointment.Email == "" {
		appointment.Email = SynthesizeEmail(appointment.Name, appointment.Phone, uc.InternalConfig.Clinic.SynthesizedEmailDomain)
	}
	return nil
}

func (uc *appointmentUsecase) resolvePatient(ctx context.Context, appointment *models.Appointment, password string, now time.Time) (*models.User, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	patient, err := uc.UserRepository.FindPatientByNICOrEmail(ctx, appointment.NIC, appointment.Email)
	if err != nil {
		uc.Log.Error("appointmentUsecase.resolvePatient error fetching patient",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if patient != nil {
		return patient, nil
	}

	if password == "" {
		password = uc.InternalConfig.Clinic.DefaultPatientPassword
	}
	hashed, err := utils.HashPassword(password)
	if err != nil {
		return nil, exceptions.ErrHashPassword(err)
	}

	firstName, lastName := PatientNames(appointment.Name, appointment.Email, appointment.Phone)
	patient = &models.User{
		FirstName: firstName,
		LastName:  lastName,
		Email:     appointment.Email,
		Phone:     appointment.Phone,
		NIC:       appointment.NIC,
		DOB:       appointment.DOB,
		Gender:    appointment.Gender,
		Password:  hashed,
		Role:      constvars.RolePatient,
	}
	patient.SetCreatedAtUpdatedAt(now)

	patientID, err := uc.UserRepository.CreateUser(ctx, patient)
	if err != nil {
		uc.Log.Error("appointmentUsecase.resolvePatient error creating patient",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	patient.ID = patientID

	uc.Log.Info("appointmentUsecase.resolvePatient created patient",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patientID),
	)
	return patient, nil
}

// cascadeDelete removes invoices, then the report, then the appointment.
func (uc *appointmentUsecase) cascadeDelete(ctx context.Context, appointmentID string) error {
	_, err := uc.InvoiceUsecase.DeleteByAppointment(ctx, appointmentID)
	if err != nil {
		return err
	}
	err = uc.ReportUsecase.DeleteByAppointment(ctx, appointmentID)
	if err != nil {
		return err
	}
	return uc.AppointmentRepository.DeleteByID(ctx, appointmentID)
}

func (uc *appointmentUsecase) notifyStatusChanged(ctx context.Context, appointment *models.Appointment) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	err := uc.NotificationService.NotifyStatusChanged(ctx, appointment)
	if err != nil {
		uc.Log.Warn("appointmentUsecase.notifyStatusChanged failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAppointmentIDKey, appointment.ID),
			zap.String(constvars.LoggingSideEffectKey, constvars.SideEffectNotification),
			zap.Error(err),
		)
		uc.Metrics.ObserveSideEffect(constvars.SideEffectNotification, constvars.OutcomeFailure)
		return
	}
	uc.Metrics.ObserveSideEffect(constvars.SideEffectNotification, constvars.OutcomeSuccess)
}

// settleLinkedInvoices settles each invoice independently. Failed settlements
// go to the outbox for the repair worker.
func (uc *appointmentUsecase) settleLinkedInvoices(ctx context.Context, appointment *models.Appointment, requesterID string) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	for _, invoiceID := range appointment.Invoices {
		_, err := uc.InvoiceUsecase.SettleInvoice(ctx, invoiceID, requesterID)
		if err == nil {
			uc.Metrics.ObserveSideEffect(constvars.SideEffectInvoiceSettle, constvars.OutcomeSuccess)
			continue
		}

		uc.Log.Warn("appointmentUsecase.settleLinkedInvoices settlement failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAppointmentIDKey, appointment.ID),
			zap.String(constvars.LoggingInvoiceIDKey, invoiceID),
			zap.String(constvars.LoggingSideEffectKey, constvars.SideEffectInvoiceSettle),
			zap.Error(err),
		)
		uc.Metrics.ObserveSideEffect(constvars.SideEffectInvoiceSettle, constvars.OutcomeFailure)
		if exceptions.StatusCodeOf(err) == constvars.StatusNotFound {
			continue
		}
		uc.enqueue(ctx, models.OutboxJob{Kind: constvars.SideEffectInvoiceSettle, ID: invoiceID, CreatedBy: requesterID})
	}
}

func (uc *appointmentUsecase) syncReport(ctx context.Context, appointmentID, requesterID string) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	_, err := uc.ReportUsecase.Sync(ctx, appointmentID)
	if err == nil {
		uc.Metrics.ObserveSideEffect(constvars.SideEffectReportSync, constvars.OutcomeSuccess)
		return
	}

	uc.Log.Warn("appointmentUsecase.syncReport failed",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
		zap.String(constvars.LoggingSideEffectKey, constvars.SideEffectReportSync),
		zap.Error(err),
	)
	uc.Metrics.ObserveSideEffect(constvars.SideEffectReportSync, constvars.OutcomeFailure)
	uc.enqueue(ctx, models.OutboxJob{Kind: constvars.SideEffectReportSync, ID: appointmentID, CreatedBy: requesterID})
}

func (uc *appointmentUsecase) enqueue(ctx context.Context, job models.OutboxJob) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	err := uc.OutboxService.Enqueue(ctx, job)
	if err != nil {
		uc.Log.Error("appointmentUsecase.enqueue outbox write failed, side effect lost until next resync",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingOutboxKindKey, job.Kind),
			zap.String("id", job.ID),
			zap.Error(err),
		)
		return
	}
	uc.Metrics.ObserveSideEffect(job.Kind, constvars.OutcomeEnqueued)
}

// latestByDate picks the appointment with the greatest appointment_date.
// Unparseable dates sort first.
func latestByDate(appointments []models.Appointment) *models.Appointment {
	var latest *models.Appointment
	var latestAt time.Time
	for i := range appointments {
		at, _ := utils.ParseFlexibleTime(appointments[i].AppointmentDate)
		if latest == nil || at.After(latestAt) {
			latest = &appointments[i]
			latestAt = at
		}
	}
	return latest
}

func requesterIDFromContext(ctx context.Context) string {
	session, ok := ctx.Value(constvars.CONTEXT_SESSION_DATA_KEY).(*models.Session)
	if !ok || session == nil {
		return ""
	}
	return session.UserID
}
