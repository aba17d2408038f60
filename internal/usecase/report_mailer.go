package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"

	"gitlab.com/ringvox/api/sales-call-dashboard/internal/config"
	"gitlab.com/ringvox/api/sales-call-dashboard/internal/mailer"
	"gitlab.com/ringvox/api/sales-call-dashboard/internal/model"
	"gitlab.com/ringvox/api/sales-call-dashboard/internal/observer"
	"gitlab.com/ringvox/api/sales-call-dashboard/pkg/logger"
)

// MailTaskData holds the data for one summary email delivery.
type MailTaskData struct {
	Ctx       context.Context // Context derived for the task, NOT the original request context
	Recipient string
	Email     model.DailySummaryEmail
}

// IReportMailer defines the interface for the summary mailer pool.
type IReportMailer interface {
	SubmitTask(taskData MailTaskData) error
	Stop()
}

// ReportMailer fans summary emails out to recipients through a worker pool.
type ReportMailer struct {
	pool       *ants.PoolWithFunc
	mailer     mailer.Mailer
	cfg        config.MailerWorkerPoolConfig
	baseLogger *zap.Logger
}

// Ensure ReportMailer implements IReportMailer
var _ IReportMailer = (*ReportMailer)(nil)

// NewReportMailer creates and initializes the mailer worker pool.
func NewReportMailer(
	cfg config.MailerWorkerPoolConfig,
	m mailer.Mailer,
	baseLogger *zap.Logger,
) (*ReportMailer, error) {
	worker := &ReportMailer{
		mailer:     m,
		cfg:        cfg,
		baseLogger: baseLogger.Named("report_mailer"),
	}

	pool, err := ants.NewPoolWithFunc(cfg.PoolSize, func(i interface{}) {
		taskData, ok := i.(MailTaskData)
		if !ok {
			worker.baseLogger.Error("Invalid task data type received", zap.Any("data", i))
			return
		}
		worker.processMailTask(taskData)
	},
		ants.WithExpiryDuration(cfg.ExpiryTime),
		ants.WithNonblocking(false), // Block the submitter when the queue is full
		ants.WithMaxBlockingTasks(cfg.QueueSize),
		ants.WithPanicHandler(func(err interface{}) {
			worker.baseLogger.Error("Panic recovered in mailer worker", zap.Any("panic_error", err), zap.Stack("stack"))
			observer.IncSummaryEmail("panic")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create mailer worker pool: %w", err)
	}
	worker.pool = pool
	worker.baseLogger.Info("Mailer worker pool initialized",
		zap.Int("pool_size", cfg.PoolSize),
		zap.Int("queue_size", cfg.QueueSize),
		zap.Duration("expiry_time", cfg.ExpiryTime),
	)
	return worker, nil
}

// SubmitTask hands one email delivery to the worker pool.
func (w *ReportMailer) SubmitTask(taskData MailTaskData) error {
	start := time.Now()
	observer.IncMailerTasksSubmitted()
	observer.SetMailerQueueLength(w.pool.Waiting()) // Approximate queue length

	err := w.pool.Invoke(taskData)
	duration := time.Since(start)

	if err != nil {
		w.baseLogger.Warn("Failed to submit mail task to pool",
			zap.String("recipient", taskData.Recipient),
			zap.Duration("submit_duration", duration),
			zap.Error(err),
		)
		observer.IncSummaryEmail("submit_error")
		if errors.Is(err, ants.ErrPoolOverload) {
			return fmt.Errorf("mailer pool overload: %w", err)
		}
		return fmt.Errorf("failed to invoke mail task: %w", err)
	}

	w.baseLogger.Debug("Successfully submitted mail task",
		zap.String("recipient", taskData.Recipient),
		zap.Duration("submit_duration", duration),
	)
	return nil
}

// processMailTask runs inside a worker goroutine.
func (w *ReportMailer) processMailTask(taskData MailTaskData) {
	log := logger.FromContextOr(taskData.Ctx, w.baseLogger).With(
		zap.String("recipient", taskData.Recipient),
		zap.String("subject", taskData.Email.Subject),
	)

	start := time.Now()
	err := w.mailer.Send(taskData.Ctx, taskData.Recipient, taskData.Email)
	duration := time.Since(start)

	if err != nil {
		log.Error("Summary email delivery failed",
			zap.Duration("send_duration", duration),
			zap.Error(err),
		)
		observer.IncSummaryEmail("error")
		return
	}

	log.Info("Summary email delivery finished", zap.Duration("send_duration", duration))
	observer.IncSummaryEmail("sent")
}

// Stop gracefully shuts down the worker pool, waiting for running tasks.
func (w *ReportMailer) Stop() {
	w.baseLogger.Info("Stopping mailer worker pool")
	w.pool.Release()
	w.baseLogger.Info("Mailer worker pool stopped")
}
