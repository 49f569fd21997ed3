package appointments

import (
	"clinic-service/internal/app/config"
	"clinic-service/internal/app/contracts"
	"clinic-service/internal/app/models"
	"clinic-service/internal/app/services/core/coretest"
	"clinic-service/internal/app/services/core/invoices"
	"clinic-service/internal/app/services/core/reports"
	"clinic-service/internal/pkg/constvars"
	"clinic-service/internal/pkg/dto/requests"
	"clinic-service/internal/pkg/exceptions"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var fixedNow = time.Date(2026, 3, 15, 9, 30, 0, 0, time.UTC)

// flakyInvoices fails selected calls of the real invoice usecase.
type flakyInvoices struct {
	contracts.InvoiceUsecase
	failCreate bool
	failSettle bool
}

func (f *flakyInvoices) CreateForAppointment(ctx context.Context, appointment *models.Appointment, doctor *models.User, paid bool, createdBy string) (*models.Invoice, error) {
	if f.failCreate {
		return nil, coretest.ErrInjected
	}
	return f.InvoiceUsecase.CreateForAppointment(ctx, appointment, doctor, paid, createdBy)
}

func (f *flakyInvoices) SettleInvoice(ctx context.Context, invoiceID, requester string) (*models.Invoice, error) {
	if f.failSettle {
		return nil, coretest.ErrInjected
	}
	return f.InvoiceUsecase.SettleInvoice(ctx, invoiceID, requester)
}

type appointmentFixture struct {
	uc           *appointmentUsecase
	appointments *coretest.AppointmentRepository
	invoices     *coretest.InvoiceRepository
	reports      *coretest.ReportRepository
	users        *coretest.UserRepository
	invoiceUC    *flakyInvoices
	reportUC     contracts.ReportUsecase
	notifier     *coretest.Notifier
	outbox       *coretest.Outbox
	doctor       models.User
	admin        *models.Session
}

func newAppointmentFixture(t *testing.T) *appointmentFixture {
	t.Helper()
	redisRepo, _ := coretest.NewRedis(t)
	f := &appointmentFixture{
		appointments: coretest.NewAppointmentRepository(),
		invoices:     coretest.NewInvoiceRepository(),
		reports:      coretest.NewReportRepository(),
		notifier:     &coretest.Notifier{},
		outbox:       &coretest.Outbox{},
		doctor: models.User{
			FirstName:        "Kamal",
			LastName:         "Silva",
			Role:             constvars.RoleDoctor,
			DoctorDepartment: "Cardiology",
			ConsultationFee:  models.MoneyFromUnits(500),
		},
		admin: &models.Session{UserID: "admin-1", Name: "Front Desk", Role: constvars.RoleAdmin},
	}
	f.users = coretest.NewUserRepository()
	_, _ = f.users.CreateUser(context.Background(), &f.doctor)

	cfg := &config.InternalConfig{
		Clinic: config.AppClinic{
			DefaultPatientPassword:   "defaultPassword123",
			DefaultConsultationFee:   500,
			PlatformFee:              50,
			SynthesizedEmailDomain:   "clinic.local",
			InvoiceSequenceTTLInHour: 48,
		},
		Minio: config.AppMinio{InvoiceBucketName: "invoices"},
	}
	f.invoiceUC = &flakyInvoices{
		InvoiceUsecase: invoices.NewInvoiceUsecase(f.invoices, f.appointments, f.users, redisRepo, &coretest.Storage{}, nil, cfg, zap.NewNop()),
	}
	f.reportUC = reports.NewReportUsecase(f.reports, f.appointments, f.invoices, zap.NewNop())

	uc := NewAppointmentUsecase(f.appointments, f.users, f.invoiceUC, f.reportUC, f.notifier, f.outbox, nil, cfg, zap.NewNop()).(*appointmentUsecase)
	uc.now = func() time.Time { return fixedNow }
	f.uc = uc
	return f
}

func (f *appointmentFixture) request() *requests.CreateAppointment {
	return &requests.CreateAppointment{
		Name:       "Nimali Perera",
		Phone:      "0771234567",
		Address:    "12 Galle Road",
		Department: "Cardiology",
	}
}

func TestAppointmentUsecase_CreateAppointment_EndToEnd(t *testing.T) {
	ctx := context.Background()
	f := newAppointmentFixture(t)
	request := f.request()
	request.PaymentStatus = constvars.PaymentStatusPaid

	appointment, err := f.uc.CreateAppointment(ctx, f.admin, request)
	require.NoError(t, err)

	assert.Equal(t, models.MoneyFromUnits(100), appointment.Price)
	assert.Equal(t, constvars.AppointmentStatusAccepted, appointment.Status)
	assert.Equal(t, constvars.PaymentStatusPaid, appointment.PaymentStatus)
	assert.Equal(t, f.doctor.ID, appointment.DoctorID)
	assert.Equal(t, models.DoctorSnapshot{FirstName: "Kamal", LastName: "Silva"}, appointment.Doctor)
	assert.Equal(t, "admin-1", appointment.BookedBy.ID)
	require.Len(t, appointment.Invoices, 1)
	stored, err := f.appointments.FindByID(ctx, appointment.ID)
	require.NoError(t, err)
	assert.Equal(t, stored.Invoices, appointment.Invoices)

	invoice, err := f.invoices.FindByID(ctx, appointment.Invoices[0])
	require.NoError(t, err)
	require.Len(t, invoice.Items, 2)
	assert.Equal(t, constvars.InvoiceItemConsultationFee, invoice.Items[0].Description)
	assert.Equal(t, models.MoneyFromUnits(500), invoice.Items[0].Total)
	assert.Equal(t, constvars.InvoiceItemPlatformFee, invoice.Items[1].Description)
	assert.Equal(t, models.MoneyFromUnits(50), invoice.Items[1].Total)
	assert.Equal(t, models.MoneyFromUnits(550), invoice.Total)
	assert.Equal(t, constvars.InvoiceStatusPaid, invoice.Status)

	stored, err = f.appointments.FindByID(ctx, appointment.ID)
	require.NoError(t, err)
	assert.Equal(t, appointment.Invoices, stored.Invoices)

	report, err := f.reports.FindByAppointmentID(ctx, appointment.ID)
	require.NoError(t, err)
	require.NotNil(t, report)
	assert.Equal(t, models.MoneyFromUnits(550), report.Amount)
	assert.Equal(t, models.MoneyFromUnits(550), report.Paid)
	assert.Zero(t, report.Due)
	assert.Equal(t, constvars.ReportStatusPaid, report.Status)
	assert.Empty(t, f.outbox.Jobs)
}

func TestAppointmentUsecase_CreateAppointment_Patient(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a patient with derived fields", func(t *testing.T) {
		f := newAppointmentFixture(t)
		request := f.request()
		age := 30
		request.Age = &age

		appointment, err := f.uc.CreateAppointment(ctx, f.admin, request)
		require.NoError(t, err)

		assert.Equal(t, time.Date(1996, 3, 15, 0, 0, 0, 0, time.UTC), *appointment.DOB)
		assert.Len(t, appointment.NIC, constvars.SynthesizedNICLength)
		assert.Equal(t, "nimali67@clinic.local", appointment.Email)
		assert.Equal(t, constvars.AppointmentStatusPending, appointment.Status)
		assert.Equal(t, constvars.PaymentStatusPending, appointment.PaymentStatus)

		patients := f.users.Patients()
		require.Len(t, patients, 1)
		assert.Equal(t, appointment.PatientID, patients[0].ID)
		assert.Equal(t, "Nimali", patients[0].FirstName)
		assert.Equal(t, "Perera", patients[0].LastName)
		assert.NotEqual(t, "defaultPassword123", patients[0].Password)
	})

	t.Run("age derived from dob", func(t *testing.T) {
		f := newAppointmentFixture(t)
		request := f.request()
		request.DOB = "2000-03-16"

		appointment, err := f.uc.CreateAppointment(ctx, f.admin, request)
		require.NoError(t, err)
		require.NotNil(t, appointment.Age)
		assert.Equal(t, 25, *appointment.Age)
	})

	t.Run("reuses a patient matched by email", func(t *testing.T) {
		f := newAppointmentFixture(t)
		existing := models.User{FirstName: "Nimali", Email: "nimali@example.com", Role: constvars.RolePatient}
		_, _ = f.users.CreateUser(ctx, &existing)

		request := f.request()
		request.Email = "nimali@example.com"
		appointment, err := f.uc.CreateAppointment(ctx, f.admin, request)
		require.NoError(t, err)
		assert.Equal(t, existing.ID, appointment.PatientID)
		assert.Len(t, f.users.Patients(), 1)
	})

	t.Run("invalid dob", func(t *testing.T) {
		f := newAppointmentFixture(t)
		request := f.request()
		request.DOB = "yesterday"
		_, err := f.uc.CreateAppointment(ctx, f.admin, request)
		assert.Equal(t, constvars.StatusBadRequest, exceptions.StatusCodeOf(err))
	})
}

func TestAppointmentUsecase_CreateAppointment_Rejections(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		requester *models.Session
		mutate    func(*requests.CreateAppointment)
		wantCode  int
	}{
		{"no requester", nil, func(*requests.CreateAppointment) {}, constvars.StatusUnauthorized},
		{"patient requester", &models.Session{UserID: "p", Role: constvars.RolePatient}, func(*requests.CreateAppointment) {}, constvars.StatusForbidden},
		{"missing address", &models.Session{Role: constvars.RoleCompounder}, func(r *requests.CreateAppointment) { r.Address = "" }, constvars.StatusBadRequest},
		{"unknown doctor id", &models.Session{Role: constvars.RoleDoctor}, func(r *requests.CreateAppointment) { r.DoctorID = "64b7f0c2a1b2c3d4e5f60718" }, constvars.StatusNotFound},
		{"no doctor in department", &models.Session{Role: constvars.RoleAdmin}, func(r *requests.CreateAppointment) { r.Department = "Dermatology" }, constvars.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAppointmentFixture(t)
			request := f.request()
			tt.mutate(request)

			_, err := f.uc.CreateAppointment(ctx, tt.requester, request)
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, exceptions.StatusCodeOf(err))
			assert.Zero(t, f.appointments.Count())
		})
	}

	t.Run("explicit id of a non doctor", func(t *testing.T) {
		f := newAppointmentFixture(t)
		nurse := models.User{FirstName: "Ama", Role: constvars.RoleCompounder}
		_, _ = f.users.CreateUser(ctx, &nurse)

		request := f.request()
		request.DoctorID = nurse.ID
		_, err := f.uc.CreateAppointment(ctx, f.admin, request)
		assert.Equal(t, constvars.StatusNotFound, exceptions.StatusCodeOf(err))
	})
}

func TestAppointmentUsecase_CreateAppointment_BestEffort(t *testing.T) {
	ctx := context.Background()

	t.Run("invoice failure keeps the appointment", func(t *testing.T) {
		f := newAppointmentFixture(t)
		f.invoiceUC.failCreate = true

		appointment, err := f.uc.CreateAppointment(ctx, f.admin, f.request())
		require.NoError(t, err)
		assert.Empty(t, appointment.Invoices)
		assert.Equal(t, 1, f.appointments.Count())

		report, _ := f.reports.FindByAppointmentID(ctx, appointment.ID)
		require.NotNil(t, report)
		assert.Equal(t, models.MoneyFromUnits(100), report.Amount)
		assert.Equal(t, constvars.ReportStatusDue, report.Status)
	})

	t.Run("report failure is queued for replay", func(t *testing.T) {
		f := newAppointmentFixture(t)
		f.reports.FailUpsert = true

		appointment, err := f.uc.CreateAppointment(ctx, f.admin, f.request())
		require.NoError(t, err)
		require.Len(t, f.outbox.Jobs, 1)
		assert.Equal(t, models.OutboxJob{Kind: constvars.SideEffectReportSync, ID: appointment.ID, CreatedBy: "admin-1"}, f.outbox.Jobs[0])
	})
}

func TestAppointmentUsecase_UpdateAppointmentStatus(t *testing.T) {
	ctx := context.WithValue(context.Background(), constvars.CONTEXT_SESSION_DATA_KEY, &models.Session{UserID: "admin-1", Role: constvars.RoleAdmin})

	t.Run("completing an unpaid appointment is held at accepted", func(t *testing.T) {
		f := newAppointmentFixture(t)
		created, err := f.uc.CreateAppointment(ctx, f.admin, f.request())
		require.NoError(t, err)

		updated, err := f.uc.UpdateAppointmentStatus(ctx, created.ID, &requests.UpdateAppointmentStatus{Status: constvars.AppointmentStatusCompleted})
		require.NoError(t, err)
		assert.Equal(t, constvars.AppointmentStatusAccepted, updated.Status)
		assert.Equal(t, constvars.PaymentStatusDue, updated.PaymentStatus)
		require.Len(t, f.notifier.Sent, 1)
		assert.Equal(t, constvars.AppointmentStatusAccepted, f.notifier.Sent[0].Status)

		invoice, _ := f.invoices.FindByID(ctx, created.Invoices[0])
		assert.Equal(t, constvars.InvoiceStatusUnpaid, invoice.Status)
	})

	t.Run("paid transition settles linked invoices and resyncs", func(t *testing.T) {
		f := newAppointmentFixture(t)
		created, err := f.uc.CreateAppointment(ctx, f.admin, f.request())
		require.NoError(t, err)
		department := "Neurology"

		updated, err := f.uc.UpdateAppointmentStatus(ctx, created.ID, &requests.UpdateAppointmentStatus{
			Status:        constvars.AppointmentStatusCompleted,
			PaymentStatus: constvars.PaymentStatusPaid,
			Department:    &department,
		})
		require.NoError(t, err)
		assert.Equal(t, constvars.AppointmentStatusCompleted, updated.Status)
		assert.Equal(t, constvars.PaymentStatusPaid, updated.PaymentStatus)
		assert.Equal(t, "Neurology", updated.Department)

		invoice, _ := f.invoices.FindByID(ctx, created.Invoices[0])
		assert.Equal(t, constvars.InvoiceStatusPaid, invoice.Status)
		require.Len(t, invoice.Payments, 1)
		assert.Equal(t, constvars.PaymentMethodSettlement, invoice.Payments[0].Method)
		assert.Equal(t, "admin-1", invoice.Payments[0].CreatedBy)

		report, _ := f.reports.FindByAppointmentID(ctx, created.ID)
		assert.Equal(t, models.MoneyFromUnits(550), report.Paid)
		assert.Equal(t, constvars.ReportStatusPaid, report.Status)
	})

	t.Run("settlement failure is queued and does not fail the update", func(t *testing.T) {
		f := newAppointmentFixture(t)
		created, err := f.uc.CreateAppointment(ctx, f.admin, f.request())
		require.NoError(t, err)
		f.invoiceUC.failSettle = true
		f.notifier.Error = coretest.ErrInjected

		updated, err := f.uc.UpdateAppointmentStatus(ctx, created.ID, &requests.UpdateAppointmentStatus{PaymentStatus: constvars.PaymentStatusPaid})
		require.NoError(t, err)
		assert.Equal(t, constvars.AppointmentStatusAccepted, updated.Status)
		require.Len(t, f.outbox.Jobs, 1)
		assert.Equal(t, constvars.SideEffectInvoiceSettle, f.outbox.Jobs[0].Kind)
		assert.Equal(t, created.Invoices[0], f.outbox.Jobs[0].ID)
	})

	t.Run("unknown appointment", func(t *testing.T) {
		f := newAppointmentFixture(t)
		_, err := f.uc.UpdateAppointmentStatus(ctx, "missing", &requests.UpdateAppointmentStatus{Status: constvars.AppointmentStatusRejected})
		assert.Equal(t, constvars.StatusNotFound, exceptions.StatusCodeOf(err))
	})
}

func TestAppointmentUsecase_UpdateLatestByPatient(t *testing.T) {
	ctx := context.Background()
	f := newAppointmentFixture(t)
	for _, date := range []string{"2026-03-01", "2026-03-10T08:00:00.000Z", "2026-02-20"} {
		_, err := f.appointments.CreateAppointment(ctx, &models.Appointment{
			PatientID:       "patient-1",
			AppointmentDate: date,
			Price:           models.MoneyFromUnits(100),
			Status:          constvars.AppointmentStatusAccepted,
			PaymentStatus:   constvars.PaymentStatusAccepted,
		})
		require.NoError(t, err)
	}

	updated, err := f.uc.UpdateLatestByPatient(ctx, "patient-1", &requests.SavePrescription{
		Print:  true,
		Result: []byte(`{"medicineAdvice": {"Medicine": "Cetirizine", "Interval": "nightly"}}`),
	})
	require.NoError(t, err)
	assert.Equal(t, "2026-03-10T08:00:00.000Z", updated.AppointmentDate)
	assert.Equal(t, constvars.AppointmentStatusCompleted, updated.Status)
	assert.Equal(t, constvars.PaymentStatusPaid, updated.PaymentStatus)
	require.Len(t, updated.Result, 1)
	assert.Equal(t, "Cetirizine", updated.Result[0].MedicineAdvice[0]["name"])
	assert.Equal(t, "nightly", updated.Result[0].MedicineAdvice[0]["frequency"])

	report, _ := f.reports.FindByAppointmentID(ctx, updated.ID)
	require.NotNil(t, report)
	assert.Equal(t, constvars.ReportStatusPaid, report.Status)

	_, err = f.uc.UpdateLatestByPatient(ctx, "nobody", &requests.SavePrescription{})
	assert.Equal(t, constvars.StatusNotFound, exceptions.StatusCodeOf(err))

	_, err = f.uc.UpdateLatestByPatient(ctx, "patient-1", &requests.SavePrescription{Result: []byte(`42`)})
	assert.Equal(t, constvars.StatusBadRequest, exceptions.StatusCodeOf(err))
}

func TestAppointmentUsecase_Deletes(t *testing.T) {
	ctx := context.Background()

	t.Run("cascade removes invoices and report", func(t *testing.T) {
		f := newAppointmentFixture(t)
		created, err := f.uc.CreateAppointment(ctx, f.admin, f.request())
		require.NoError(t, err)
		_, err = f.invoiceUC.CreateInvoice(ctx, &requests.CreateInvoice{
			InvoiceNumber: "INV-MANUAL-1",
			Appointment:   created.ID,
			Patient:       created.PatientID,
		})
		require.NoError(t, err)

		stored, _ := f.appointments.FindByID(ctx, created.ID)
		require.Len(t, stored.Invoices, 2)

		require.NoError(t, f.uc.DeleteAppointment(ctx, created.ID))

		assert.Zero(t, f.invoices.Count())
		for _, invoiceID := range stored.Invoices {
			_, err := f.invoiceUC.GetInvoice(ctx, invoiceID)
			assert.Equal(t, constvars.StatusNotFound, exceptions.StatusCodeOf(err))
		}
		_, err = f.reportUC.GetByAppointment(ctx, created.ID)
		assert.Equal(t, constvars.StatusNotFound, exceptions.StatusCodeOf(err))
		_, err = f.uc.FindByID(ctx, created.ID)
		assert.Equal(t, constvars.StatusNotFound, exceptions.StatusCodeOf(err))

		err = f.uc.DeleteAppointment(ctx, created.ID)
		assert.Equal(t, constvars.StatusNotFound, exceptions.StatusCodeOf(err))
	})

	t.Run("bulk and by patient", func(t *testing.T) {
		f := newAppointmentFixture(t)
		first, err := f.uc.CreateAppointment(ctx, f.admin, f.request())
		require.NoError(t, err)
		second, err := f.uc.CreateAppointment(ctx, f.admin, f.request())
		require.NoError(t, err)
		other := f.request()
		other.Name = "Sunil Fernando"
		other.Phone = "0719876543"
		third, err := f.uc.CreateAppointment(ctx, f.admin, other)
		require.NoError(t, err)
		require.Equal(t, first.PatientID, second.PatientID)

		_, err = f.uc.BulkDeleteAppointments(ctx, nil)
		assert.Equal(t, constvars.StatusBadRequest, exceptions.StatusCodeOf(err))

		deleted, err := f.uc.BulkDeleteAppointments(ctx, []string{third.ID, "missing"})
		require.NoError(t, err)
		assert.Equal(t, 1, deleted)

		deleted, err = f.uc.DeleteAppointmentsByPatient(ctx, first.PatientID)
		require.NoError(t, err)
		assert.Equal(t, 2, deleted)
		assert.Zero(t, f.appointments.Count())
		assert.Zero(t, f.invoices.Count())
		assert.Zero(t, f.reports.Count())
	})

	t.Run("bulk skips malformed ids", func(t *testing.T) {
		f := newAppointmentFixture(t)
		f.appointments.RejectMalformedIDs = true
		first, err := f.uc.CreateAppointment(ctx, f.admin, f.request())
		require.NoError(t, err)
		second, err := f.uc.CreateAppointment(ctx, f.admin, f.request())
		require.NoError(t, err)

		deleted, err := f.uc.BulkDeleteAppointments(ctx, []string{first.ID, "not-an-object-id", second.ID})
		require.NoError(t, err)
		assert.Equal(t, 2, deleted)
		assert.Zero(t, f.appointments.Count())
		assert.Zero(t, f.invoices.Count())
	})
}

func TestAppointmentUsecase_Queries(t *testing.T) {
	ctx := context.Background()
	f := newAppointmentFixture(t)
	created, err := f.uc.CreateAppointment(ctx, f.admin, f.request())
	require.NoError(t, err)

	all, err := f.uc.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	byPatient, err := f.uc.FindByPatient(ctx, created.PatientID)
	require.NoError(t, err)
	assert.Len(t, byPatient, 1)
	_, err = f.uc.FindByPatient(ctx, "nobody")
	assert.Equal(t, constvars.StatusNotFound, exceptions.StatusCodeOf(err))

	found, err := f.uc.Search(ctx, &requests.SearchAppointments{Name: "nimali"})
	require.NoError(t, err)
	assert.Len(t, found, 1)
	found, err = f.uc.Search(ctx, &requests.SearchAppointments{Name: "nimali", Phone: "0000"})
	assert.Equal(t, constvars.StatusNotFound, exceptions.StatusCodeOf(err))
	assert.Nil(t, found)
	_, err = f.uc.Search(ctx, &requests.SearchAppointments{})
	assert.Equal(t, constvars.StatusBadRequest, exceptions.StatusCodeOf(err))

	doc, err := f.uc.RenderAppointmentDocument(ctx, created)
	require.NoError(t, err)
	assert.Equal(t, "appointment-"+created.ID+".html", doc.FileName)
	assert.Contains(t, string(doc.Body), "Nimali Perera")
}
