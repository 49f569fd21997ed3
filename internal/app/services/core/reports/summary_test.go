package reports

import (
	"bytes"
	"clinic-service/internal/app/models"
	"clinic-service/internal/pkg/constvars"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func summaryFixture() ([]models.Invoice, []models.Appointment) {
	linked := []models.Invoice{
		{IssuedAt: time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC), Total: models.MoneyFromUnits(550), Payments: []models.Payment{{Amount: models.MoneyFromUnits(550)}}},
		{IssuedAt: time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC), Total: models.MoneyFromUnits(300), Payments: []models.Payment{{Amount: models.MoneyFromUnits(100)}}},
		{IssuedAt: time.Date(2026, 5, 3, 9, 0, 0, 0, time.UTC), Total: models.MoneyFromUnits(200)},
	}
	unbilled := []models.Appointment{
		{AppointmentDate: "2026-05-01", Price: models.MoneyFromUnits(100), Status: constvars.AppointmentStatusCompleted, PaymentStatus: constvars.PaymentStatusPaid},
		{AppointmentDate: "2026-05-02T10:30", Price: models.MoneyFromUnits(100), Status: constvars.AppointmentStatusAccepted, PaymentStatus: constvars.PaymentStatusPaid},
	}
	return linked, unbilled
}

func TestBuildSummary_ByDay(t *testing.T) {
	linked, unbilled := summaryFixture()
	summary := BuildSummary(linked, unbilled, "")

	assert.Equal(t, models.MoneyFromUnits(750), summary.Totals.Revenue)
	assert.Equal(t, models.MoneyFromUnits(500), summary.Totals.Due)

	require.Len(t, summary.ByPeriod, 3)
	first := summary.ByPeriod[0]
	assert.Equal(t, "2026-05-01", first.Period)
	assert.Equal(t, models.MoneyFromUnits(750), first.Revenue)
	assert.Equal(t, models.MoneyFromUnits(200), first.Due)
	assert.Equal(t, 2, first.Invoices)
	assert.Equal(t, 1, first.Appointments)

	assert.Equal(t, "2026-05-02", summary.ByPeriod[1].Period)
	assert.Equal(t, models.MoneyFromUnits(100), summary.ByPeriod[1].Due)
	assert.Equal(t, "2026-05-03", summary.ByPeriod[2].Period)
}

func TestBuildSummary_ByMonthInvoicesOnly(t *testing.T) {
	linked, _ := summaryFixture()
	summary := BuildSummary(linked, nil, constvars.ReportGroupByMonth)
	require.Len(t, summary.ByPeriod, 1)
	assert.Equal(t, "2026-05", summary.ByPeriod[0].Period)
	assert.Equal(t, 3, summary.ByPeriod[0].Invoices)
	assert.Zero(t, summary.ByPeriod[0].Appointments)
}

func TestBuildSummary_UnparseableDate(t *testing.T) {
	summary := BuildSummary(nil, []models.Appointment{{AppointmentDate: "someday", Price: 100}}, "")
	require.Len(t, summary.ByPeriod, 1)
	assert.Equal(t, "unknown", summary.ByPeriod[0].Period)
}

func TestSummaryRangeAndSource(t *testing.T) {
	start := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)
	from, to := SummaryRange(&start, nil)
	assert.Equal(t, start, *from)
	require.NotNil(t, to)
	assert.Equal(t, time.Date(2026, 5, 1, 23, 59, 59, int(999*time.Millisecond), time.UTC), *to)

	from, to = SummaryRange(nil, nil)
	assert.Nil(t, from)
	assert.Nil(t, to)

	assert.True(t, IncludesAppointments(""))
	assert.True(t, IncludesAppointments(constvars.ReportSourceAppointment))
	assert.False(t, IncludesAppointments(constvars.ReportSourceInvoice))
}

func TestExportSummaryXLSX(t *testing.T) {
	linked, unbilled := summaryFixture()
	body, err := ExportSummaryXLSX(BuildSummary(linked, unbilled, ""))
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(body))
	require.NoError(t, err)
	defer f.Close()

	header, err := f.GetCellValue(summarySheet, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Period", header)

	period, err := f.GetCellValue(summarySheet, "A2")
	require.NoError(t, err)
	assert.Equal(t, "2026-05-01", period)

	total, err := f.GetCellValue(summarySheet, "A5")
	require.NoError(t, err)
	assert.Equal(t, "Total", total)

	revenue, err := f.GetCellValue(summarySheet, "B5")
	require.NoError(t, err)
	assert.Equal(t, "750", revenue)
}
