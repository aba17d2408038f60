package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"gitlab.com/ringvox/api/sales-call-dashboard/internal/model"
	"gitlab.com/ringvox/api/sales-call-dashboard/internal/summarygen"
	"gitlab.com/ringvox/api/sales-call-dashboard/pkg/logger"
	"gitlab.com/ringvox/api/sales-call-dashboard/pkg/utils"
)

// followUpDateLabel is the display format for the highlight's follow-up day.
const followUpDateLabel = "02-Jan-2006"

// SummaryReportService assembles the flat input record the daily summary
// generator consumes (the day's numbers, the executive's display name, and
// one representative call highlight), generates the email content, and hands
// delivery to the mailer pool.
type SummaryReportService struct {
	dashboard  *DashboardService
	logView    *LogViewService
	generator  summarygen.Generator
	mailerPool IReportMailer
}

// NewSummaryReportService creates the daily summary service.
func NewSummaryReportService(
	dashboard *DashboardService,
	logView *LogViewService,
	generator summarygen.Generator,
	mailerPool IReportMailer,
) *SummaryReportService {
	return &SummaryReportService{
		dashboard:  dashboard,
		logView:    logView,
		generator:  generator,
		mailerPool: mailerPool,
	}
}

// BuildDailySummaryInput computes the summary record for one calendar day,
// optionally narrowed to a single executive.
func (s *SummaryReportService) BuildDailySummaryInput(ctx context.Context, day time.Time, salesExecID string) (*model.DailySummaryInput, error) {
	log := logger.FromContext(ctx)

	dayStart := utils.StartOfDay(day)
	f := Filter{From: &dayStart, To: &dayStart, SalesExecID: salesExecID}

	stats, err := s.dashboard.Summary(ctx, f)
	if err != nil {
		log.Error("Failed to compute daily summary stats", zap.String("day", utils.FormatDay(day)), zap.Error(err))
		return nil, err
	}
	rows, err := s.logView.Logs(ctx, f)
	if err != nil {
		log.Error("Failed to load daily summary rows", zap.String("day", utils.FormatDay(day)), zap.Error(err))
		return nil, err
	}

	input := &model.DailySummaryInput{
		Date:           utils.FormatDay(day),
		TotalCalls:     stats.TotalCalls,
		ConnectedCalls: stats.ConnectedCalls,
		NewLeadsAdded:  stats.NewLeads,
		DemosScheduled: stats.DemosScheduled,
		DealsClosed:    stats.DealsClosed,
		TotalDealValue: stats.TotalDealValue,
		SalesExecName:  PlaceholderName,
		BusinessName:   PlaceholderName,
		InterestLevel:  PlaceholderName,
		LeadStage:      PlaceholderName,
		FollowUpDate:   PlaceholderName,
	}

	for i := range rows {
		if rows[i].NextStepRequired {
			input.FollowUpsSet++
		}
	}

	if len(rows) == 0 {
		return input, nil
	}
	input.SalesExecName = rows[0].SalesExecName

	// The highlight is the first connected call of the day. A day with no
	// connected call keeps the placeholder record.
	var highlight *model.CallLogView
	for i := range rows {
		if rows[i].CallOutcome == model.OutcomeConnected {
			highlight = &rows[i]
			break
		}
	}
	if highlight == nil {
		return input, nil
	}

	input.BusinessName = highlight.BusinessName
	if input.BusinessName == PlaceholderName {
		// A connected call whose lead record does not resolve reads as a
		// freshly captured lead.
		input.BusinessName = "New Lead"
	}
	if highlight.InterestLevel != "" {
		input.InterestLevel = string(highlight.InterestLevel)
	}
	if highlight.LeadStage != "" {
		input.LeadStage = string(highlight.LeadStage)
	}
	input.FollowUpDate = "None"
	if highlight.FollowUpDate != nil {
		input.FollowUpDate = time.Time(*highlight.FollowUpDate).Format(followUpDateLabel)
	}

	return input, nil
}

// SendDailySummary builds the summary for one day, generates the email, and
// fans delivery out to every recipient through the mailer pool. The email is
// generated once and shared by all recipients.
func (s *SummaryReportService) SendDailySummary(ctx context.Context, day time.Time, salesExecID string, recipients []string) (*model.DailySummaryEmail, error) {
	log := logger.FromContext(ctx)

	input, err := s.BuildDailySummaryInput(ctx, day, salesExecID)
	if err != nil {
		return nil, err
	}

	email, err := s.generator.Generate(ctx, *input)
	if err != nil {
		log.Error("Failed to generate daily summary email", zap.String("day", input.Date), zap.Error(err))
		return nil, err
	}

	// Delivery outlives the request: the task context keeps the request's
	// logger and values but not its cancellation.
	taskCtx := context.WithoutCancel(ctx)

	for _, recipient := range recipients {
		if submitErr := s.mailerPool.SubmitTask(MailTaskData{
			Ctx:       taskCtx,
			Recipient: recipient,
			Email:     email,
		}); submitErr != nil {
			log.Error("Failed to enqueue summary email",
				zap.String("day", input.Date),
				zap.String("recipient", recipient),
				zap.Error(submitErr),
			)
			err = submitErr
		}
	}
	if err != nil {
		return &email, err
	}

	log.Info("Daily summary dispatched",
		zap.String("day", input.Date),
		zap.Int("recipients", len(recipients)),
	)
	return &email, nil
}
