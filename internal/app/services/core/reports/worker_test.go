package reports

import (
	"clinic-service/internal/app/config"
	"clinic-service/internal/app/contracts"
	"clinic-service/internal/app/models"
	"clinic-service/internal/app/services/core/coretest"
	"clinic-service/internal/app/services/shared/locker"
	"clinic-service/internal/pkg/constvars"
	"clinic-service/internal/pkg/dto/requests"
	"clinic-service/internal/pkg/dto/responses"
	"clinic-service/internal/pkg/exceptions"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubReports struct {
	failures map[string]int
	synced   []string
}

func (s *stubReports) Sync(_ context.Context, appointmentID string) (*models.Report, error) {
	if s.failures[appointmentID] > 0 {
		s.failures[appointmentID]--
		return nil, errors.New("mongo unavailable")
	}
	s.synced = append(s.synced, appointmentID)
	return &models.Report{AppointmentID: appointmentID}, nil
}

func (s *stubReports) GetByAppointment(context.Context, string) (*models.Report, error) {
	return nil, nil
}

func (s *stubReports) DeleteByAppointment(context.Context, string) error { return nil }

func (s *stubReports) Summary(context.Context, *requests.ReportSummaryFilter) (*models.ReportSummary, error) {
	return &models.ReportSummary{}, nil
}

func (s *stubReports) ExportSummary(context.Context, *requests.ReportSummaryFilter) (*responses.Document, error) {
	return nil, nil
}

// stubInvoices only implements settlement; the embedded interface panics on anything else.
type stubInvoices struct {
	contracts.InvoiceUsecase
	settled []string
}

func (s *stubInvoices) SettleInvoice(_ context.Context, invoiceID, _ string) (*models.Invoice, error) {
	if invoiceID == "gone" {
		return nil, exceptions.ErrInvoiceNotFound(nil, invoiceID)
	}
	s.settled = append(s.settled, invoiceID)
	return &models.Invoice{ID: invoiceID, Appointment: "appt-of-" + invoiceID}, nil
}

func newTestWorker(t *testing.T, reports *stubReports, invoices *stubInvoices, outbox *coretest.Outbox) *Worker {
	t.Helper()
	redisRepo, _ := coretest.NewRedis(t)
	cfg := &config.InternalConfig{App: config.App{ReportRepairLockTTLSeconds: 30, OutboxMaxAttempts: 2, ReportRepairCronSpec: "@every 1h"}}
	return NewWorker(zap.NewNop(), cfg, locker.NewLockService(redisRepo, zap.NewNop()), outbox, reports, invoices, nil)
}

func TestWorker_ReplaysOutbox(t *testing.T) {
	ctx := context.Background()
	reports := &stubReports{failures: map[string]int{"flaky": 1, "broken": 10}}
	invoices := &stubInvoices{}
	outbox := &coretest.Outbox{}
	for _, job := range []models.OutboxJob{
		{Kind: constvars.SideEffectReportSync, ID: "ok"},
		{Kind: constvars.SideEffectReportSync, ID: "flaky"},
		{Kind: constvars.SideEffectReportSync, ID: "broken", Attempts: 1},
		{Kind: constvars.SideEffectInvoiceSettle, ID: "inv-1"},
		{Kind: constvars.SideEffectInvoiceSettle, ID: "gone"},
		{Kind: "unknown", ID: "x"},
	} {
		require.NoError(t, outbox.Enqueue(ctx, job))
	}

	w := newTestWorker(t, reports, invoices, outbox)
	w.runOnce(ctx)

	assert.Equal(t, []string{"ok", "appt-of-inv-1"}, reports.synced)
	assert.Equal(t, []string{"inv-1"}, invoices.settled)

	// flaky is retried, broken reached the attempt limit, gone and unknown are dropped
	require.Len(t, outbox.Jobs, 1)
	assert.Equal(t, "flaky", outbox.Jobs[0].ID)
	assert.Equal(t, 1, outbox.Jobs[0].Attempts)
	assert.NotEmpty(t, outbox.Jobs[0].LastError)

	w.runOnce(ctx)
	assert.Empty(t, outbox.Jobs)
	assert.Contains(t, reports.synced, "flaky")
}

func TestWorker_SkipsWhenLeaderLockHeld(t *testing.T) {
	ctx := context.Background()
	reports := &stubReports{failures: map[string]int{}}
	outbox := &coretest.Outbox{}
	require.NoError(t, outbox.Enqueue(ctx, models.OutboxJob{Kind: constvars.SideEffectReportSync, ID: "a"}))

	w := newTestWorker(t, reports, &stubInvoices{}, outbox)
	acquired, _, err := w.locker.TryLock(ctx, constvars.RedisKeyReportRepairLeader, time.Minute)
	require.NoError(t, err)
	require.True(t, acquired)

	w.runOnce(ctx)
	assert.Empty(t, reports.synced)
	assert.Len(t, outbox.Jobs, 1)
}

func TestWorker_StartStop(t *testing.T) {
	w := newTestWorker(t, &stubReports{failures: map[string]int{}}, &stubInvoices{}, &coretest.Outbox{})
	w.Start(context.Background())
	w.Stop()
	w.Stop()
}
