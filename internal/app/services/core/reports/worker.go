package reports

import (
	"clinic-service/internal/app/config"
	"clinic-service/internal/app/contracts"
	"clinic-service/internal/app/models"
	"clinic-service/internal/app/services/shared/metrics"
	"clinic-service/internal/pkg/constvars"
	"clinic-service/internal/pkg/exceptions"
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const fallbackRepairSpec = "@every 5m"

// Worker replays side effects that failed inline (report sync, invoice
// settlement) from the redis outbox. Only the instance holding the leader lock
// drains the queue.
type Worker struct {
	log            *zap.Logger
	cfg            *config.InternalConfig
	locker         contracts.LockerService
	outbox         contracts.OutboxService
	reportUsecase  contracts.ReportUsecase
	invoiceUsecase contracts.InvoiceUsecase
	metrics        *metrics.ClinicMetrics
	stop           chan struct{}
	cron           *cron.Cron
	runCtx         context.Context
	cancel         context.CancelFunc
}

func NewWorker(
	log *zap.Logger,
	cfg *config.InternalConfig,
	lockerSvc contracts.LockerService,
	outboxSvc contracts.OutboxService,
	reportUsecase contracts.ReportUsecase,
	invoiceUsecase contracts.InvoiceUsecase,
	clinicMetrics *metrics.ClinicMetrics,
) *Worker {
	return &Worker{
		log:            log,
		cfg:            cfg,
		locker:         lockerSvc,
		outbox:         outboxSvc,
		reportUsecase:  reportUsecase,
		invoiceUsecase: invoiceUsecase,
		metrics:        clinicMetrics,
		stop:           make(chan struct{}),
	}
}

func (w *Worker) Start(ctx context.Context) {
	w.runCtx, w.cancel = context.WithCancel(ctx)
	c := cron.New()
	_, err := c.AddFunc(w.cfg.App.ReportRepairCronSpec, func() { w.runOnce(w.runCtx) })
	if err != nil {
		w.log.Warn("reports.worker: invalid cron spec, falling back",
			zap.String("spec", w.cfg.App.ReportRepairCronSpec),
			zap.Error(err),
		)
		c = cron.New()
		_, _ = c.AddFunc(fallbackRepairSpec, func() { w.runOnce(w.runCtx) })
	}
	c.Start()
	w.cron = c
}

// Stop waits for an in-flight run to finish.
func (w *Worker) Stop() {
	select {
	case <-w.stop:
	default:
		close(w.stop)
	}
	if w.cancel != nil {
		w.cancel()
	}
	if w.cron != nil {
		<-w.cron.Stop().Done()
	}
}

func (w *Worker) runOnce(ctx context.Context) {
	ttl := time.Duration(w.cfg.App.ReportRepairLockTTLSeconds) * time.Second
	if ttl <= 0 {
		ttl = time.Minute
	}
	acquired, token, err := w.locker.TryLock(ctx, constvars.RedisKeyReportRepairLeader, ttl)
	if err != nil {
		w.log.Warn("reports.worker: leader lock attempt failed", zap.Error(err))
		return
	}
	if !acquired {
		w.log.Info("reports.worker: leader lock held by another instance")
		return
	}
	defer w.locker.Unlock(ctx, constvars.RedisKeyReportRepairLeader, token)

	refreshCtx, cancelRefresh := context.WithCancel(ctx)
	defer cancelRefresh()
	go func() {
		tick := time.NewTicker(ttl / 2)
		defer tick.Stop()
		for {
			select {
			case <-refreshCtx.Done():
				return
			case <-tick.C:
				if err := w.locker.Refresh(ctx, constvars.RedisKeyReportRepairLeader, token, ttl); err != nil {
					w.log.Warn("reports.worker: failed to refresh leader lock", zap.Error(err))
				}
			}
		}
	}()

	w.drain(ctx)
}

// drain replays at most the jobs queued when it started, so re-enqueued
// failures wait for the next run.
func (w *Worker) drain(ctx context.Context) int {
	pending, err := w.outbox.Len(ctx)
	if err != nil {
		w.log.Warn("reports.worker: cannot read outbox length", zap.Error(err))
		return 0
	}
	w.metrics.SetOutboxDepth(pending)

	replayed := 0
	for i := int64(0); i < pending; i++ {
		select {
		case <-w.stop:
			return replayed
		case <-ctx.Done():
			return replayed
		default:
		}

		job, err := w.outbox.Dequeue(ctx)
		if err != nil {
			w.log.Warn("reports.worker: dequeue failed", zap.Error(err))
			continue
		}
		if job == nil {
			break
		}
		w.replay(ctx, job)
		replayed++
	}

	if remaining, err := w.outbox.Len(ctx); err == nil {
		w.metrics.SetOutboxDepth(remaining)
	}
	return replayed
}

func (w *Worker) replay(ctx context.Context, job *models.OutboxJob) {
	err := w.execute(ctx, job)
	if err == nil {
		w.metrics.ObserveOutboxReplay(job.Kind, constvars.OutcomeSuccess)
		return
	}

	job.Attempts++
	job.LastError = err.Error()
	if job.Attempts >= w.maxAttempts() || exceptions.StatusCodeOf(err) == constvars.StatusNotFound {
		w.log.Error("reports.worker: dropping outbox job",
			zap.String(constvars.LoggingOutboxKindKey, job.Kind),
			zap.String("id", job.ID),
			zap.Int(constvars.LoggingOutboxAttemptsKey, job.Attempts),
			zap.Error(err),
		)
		w.metrics.ObserveOutboxReplay(job.Kind, constvars.OutcomeDropped)
		return
	}

	w.log.Warn("reports.worker: replay failed, re-enqueueing",
		zap.String(constvars.LoggingOutboxKindKey, job.Kind),
		zap.String("id", job.ID),
		zap.Int(constvars.LoggingOutboxAttemptsKey, job.Attempts),
		zap.Error(err),
	)
	if err := w.outbox.Enqueue(ctx, *job); err != nil {
		w.log.Error("reports.worker: re-enqueue failed", zap.Error(err))
	}
	w.metrics.ObserveOutboxReplay(job.Kind, constvars.OutcomeFailure)
}

func (w *Worker) execute(ctx context.Context, job *models.OutboxJob) error {
	switch job.Kind {
	case constvars.SideEffectReportSync:
		_, err := w.reportUsecase.Sync(ctx, job.ID)
		return err
	case constvars.SideEffectInvoiceSettle:
		invoice, err := w.invoiceUsecase.SettleInvoice(ctx, job.ID, job.CreatedBy)
		if err != nil {
			return err
		}
		if invoice.Appointment != "" {
			if _, err := w.reportUsecase.Sync(ctx, invoice.Appointment); err != nil {
				w.log.Warn("reports.worker: report sync after settlement failed",
					zap.String(constvars.LoggingAppointmentIDKey, invoice.Appointment),
					zap.Error(err),
				)
			}
		}
		return nil
	}
	return exceptions.WrapWithoutError(constvars.StatusNotFound, constvars.ErrClientCannotProcessRequest, fmt.Sprintf("unknown outbox job kind %q", job.Kind))
}

func (w *Worker) maxAttempts() int {
	if w.cfg.App.OutboxMaxAttempts > 0 {
		return w.cfg.App.OutboxMaxAttempts
	}
	return 5
}
