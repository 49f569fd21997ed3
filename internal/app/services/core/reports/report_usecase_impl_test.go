package reports

import (
	"clinic-service/internal/app/models"
	"clinic-service/internal/app/services/core/coretest"
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

type reportFixture struct {
	uc           *reportUsecase
	reports      *coretest.ReportRepository
	appointments *coretest.AppointmentRepository
	invoices     *coretest.InvoiceRepository
}

func newReportFixture() *reportFixture {
	f := &reportFixture{
		reports:      coretest.NewReportRepository(),
		appointments: coretest.NewAppointmentRepository(),
		invoices:     coretest.NewInvoiceRepository(),
	}
	uc := NewReportUsecase(f.reports, f.appointments, f.invoices, zap.NewNop()).(*reportUsecase)
	clock := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	uc.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}
	f.uc = uc
	return f
}

func (f *reportFixture) appointmentWithInvoices(t *testing.T, invoices ...models.Invoice) *models.Appointment {
	t.Helper()
	ctx := context.Background()
	appointment := &models.Appointment{
		DoctorID:        "d1",
		PatientID:       "p1",
		AppointmentDate: "2026-02-01",
		Status:          constvars.AppointmentStatusAccepted,
		PaymentStatus:   constvars.PaymentStatusDue,
		BookedBy:        &models.BookedBy{ID: "admin-1", Name: "Admin"},
	}
	id, err := f.appointments.CreateAppointment(ctx, appointment)
	require.NoError(t, err)
	appointment.ID = id
	for i := range invoices {
		invoices[i].Appointment = id
		invoiceID, err := f.invoices.CreateInvoice(ctx, &invoices[i])
		require.NoError(t, err)
		require.NoError(t, f.appointments.AddInvoice(ctx, id, invoiceID))
	}
	return appointment
}

func TestReportUsecase_Sync(t *testing.T) {
	ctx := context.Background()

	t.Run("two invoices with partial payments", func(t *testing.T) {
		f := newReportFixture()
		appointment := f.appointmentWithInvoices(t,
			models.Invoice{Total: models.MoneyFromUnits(300), Payments: []models.Payment{{Amount: models.MoneyFromUnits(150)}}},
			models.Invoice{Total: models.MoneyFromUnits(200)},
		)

		report, err := f.uc.Sync(ctx, appointment.ID)
		require.NoError(t, err)
		assert.Equal(t, models.MoneyFromUnits(500), report.Amount)
		assert.Equal(t, models.MoneyFromUnits(150), report.Paid)
		assert.Equal(t, models.MoneyFromUnits(350), report.Due)
		assert.Equal(t, constvars.ReportStatusDue, report.Status)
		assert.Equal(t, "admin-1", report.CreatedBy)
	})

	t.Run("second sync leaves the stored report untouched", func(t *testing.T) {
		f := newReportFixture()
		appointment := f.appointmentWithInvoices(t, models.Invoice{Total: models.MoneyFromUnits(550)})

		_, err := f.uc.Sync(ctx, appointment.ID)
		require.NoError(t, err)
		first, _ := f.reports.FindByAppointmentID(ctx, appointment.ID)

		_, err = f.uc.Sync(ctx, appointment.ID)
		require.NoError(t, err)
		second, _ := f.reports.FindByAppointmentID(ctx, appointment.ID)

		assert.Equal(t, *first, *second)
		assert.Equal(t, 1, f.reports.Upserts)
	})

	t.Run("state change rewrites and keeps createdAt", func(t *testing.T) {
		f := newReportFixture()
		appointment := f.appointmentWithInvoices(t, models.Invoice{Total: models.MoneyFromUnits(550)})

		first, err := f.uc.Sync(ctx, appointment.ID)
		require.NoError(t, err)

		invoices, _ := f.invoices.FindByAppointmentID(ctx, appointment.ID)
		invoices[0].Payments = []models.Payment{{Amount: models.MoneyFromUnits(550)}}
		require.NoError(t, f.invoices.UpdateInvoice(ctx, &invoices[0]))

		second, err := f.uc.Sync(ctx, appointment.ID)
		require.NoError(t, err)
		assert.Equal(t, constvars.ReportStatusPaid, second.Status)
		assert.Equal(t, first.CreatedAt, second.CreatedAt)
		assert.True(t, second.UpdatedAt.After(first.UpdatedAt))
		assert.Equal(t, 1, f.reports.Count())
	})

	t.Run("missing appointment is a no-op", func(t *testing.T) {
		f := newReportFixture()
		report, err := f.uc.Sync(ctx, "missing")
		require.NoError(t, err)
		assert.Nil(t, report)
		assert.Zero(t, f.reports.Count())
	})

	t.Run("upsert failure surfaces", func(t *testing.T) {
		f := newReportFixture()
		appointment := f.appointmentWithInvoices(t)
		f.reports.FailUpsert = true
		_, err := f.uc.Sync(ctx, appointment.ID)
		assert.Error(t, err)
	})
}

func TestReportUsecase_GetAndDelete(t *testing.T) {
	ctx := context.Background()
	f := newReportFixture()
	appointment := f.appointmentWithInvoices(t)

	_, err := f.uc.GetByAppointment(ctx, appointment.ID)
	assert.Equal(t, constvars.StatusNotFound, exceptions.StatusCodeOf(err))

	_, err = f.uc.Sync(ctx, appointment.ID)
	require.NoError(t, err)
	report, err := f.uc.GetByAppointment(ctx, appointment.ID)
	require.NoError(t, err)
	assert.Equal(t, appointment.ID, report.AppointmentID)

	require.NoError(t, f.uc.DeleteByAppointment(ctx, appointment.ID))
	_, err = f.uc.GetByAppointment(ctx, appointment.ID)
	assert.Equal(t, constvars.StatusNotFound, exceptions.StatusCodeOf(err))
}

func TestReportUsecase_Summary(t *testing.T) {
	ctx := context.Background()
	f := newReportFixture()
	f.appointmentWithInvoices(t, models.Invoice{
		Doctor:   "d1",
		IssuedAt: time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC),
		Total:    models.MoneyFromUnits(550),
		Payments: []models.Payment{{Amount: models.MoneyFromUnits(550)}},
	})
	unbilled := &models.Appointment{DoctorID: "d1", AppointmentDate: "2026-02-01", Price: models.MoneyFromUnits(100)}
	_, err := f.appointments.CreateAppointment(ctx, unbilled)
	require.NoError(t, err)

	start := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	hybrid, err := f.uc.Summary(ctx, &requests.ReportSummaryFilter{Start: &start, DoctorID: "d1"})
	require.NoError(t, err)
	assert.Equal(t, models.MoneyFromUnits(550), hybrid.Totals.Revenue)
	assert.Equal(t, models.MoneyFromUnits(100), hybrid.Totals.Due)
	require.Len(t, hybrid.ByPeriod, 1)
	assert.Equal(t, 1, hybrid.ByPeriod[0].Appointments)

	invoiceOnly, err := f.uc.Summary(ctx, &requests.ReportSummaryFilter{Start: &start, Source: constvars.ReportSourceInvoice})
	require.NoError(t, err)
	assert.Zero(t, invoiceOnly.Totals.Due)

	doc, err := f.uc.ExportSummary(ctx, &requests.ReportSummaryFilter{Start: &start})
	require.NoError(t, err)
	assert.Equal(t, constvars.ReportSummaryExportFileName, doc.FileName)
	assert.Equal(t, constvars.MIMEApplicationSpreadsheet, doc.ContentType)
	assert.NotEmpty(t, doc.Body)
}
