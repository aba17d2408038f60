package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"gitlab.com/ringvox/api/sales-call-dashboard/internal/usecase"
	"gitlab.com/ringvox/api/sales-call-dashboard/pkg/logger"
	"gitlab.com/ringvox/api/sales-call-dashboard/pkg/utils"
)

// jobTimeout bounds one scheduled summary run end to end.
const jobTimeout = 2 * time.Minute

// Scheduler runs the end-of-day summary report on a cron schedule.
type Scheduler struct {
	cron       *cron.Cron
	summary    *usecase.SummaryReportService
	schedule   string
	recipients []string
	log        *zap.Logger
}

// NewScheduler creates the cron scheduler for the daily summary job.
func NewScheduler(summary *usecase.SummaryReportService, schedule string, recipients []string, log *zap.Logger) *Scheduler {
	return &Scheduler{
		cron:       cron.New(),
		summary:    summary,
		schedule:   schedule,
		recipients: recipients,
		log:        log.Named("scheduler"),
	}
}

// Start registers the daily summary job and starts the scheduler.
func (s *Scheduler) Start() error {
	_, err := s.cron.AddFunc(s.schedule, s.runDailySummary)
	if err != nil {
		return err
	}

	s.cron.Start()
	s.log.Info("Scheduler started",
		zap.String("schedule", s.schedule),
		zap.Int("recipients", len(s.recipients)),
	)
	return nil
}

// Stop stops the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	s.log.Info("Stopping scheduler")
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.log.Info("Scheduler stopped")
}

// runDailySummary sends the summary for the current day across all
// executives to the configured recipients.
func (s *Scheduler) runDailySummary() {
	day := utils.Today()
	s.log.Info("Running daily summary job", zap.String("day", utils.FormatDay(day)))

	if len(s.recipients) == 0 {
		s.log.Warn("No summary recipients configured, skipping daily summary job")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()
	ctx = logger.WithLogger(ctx, s.log)

	// A panicking job must not take the cron goroutine down with it.
	defer utils.RecoverWithLog(ctx, "daily summary job")

	if _, err := s.summary.SendDailySummary(ctx, day, "", s.recipients); err != nil {
		s.log.Error("Daily summary job failed", zap.String("day", utils.FormatDay(day)), zap.Error(err))
		return
	}
	s.log.Info("Daily summary job finished", zap.String("day", utils.FormatDay(day)))
}
