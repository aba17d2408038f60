package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"gitlab.com/ringvox/api/sales-call-dashboard/internal/apperrors"
	"gitlab.com/ringvox/api/sales-call-dashboard/internal/model"
	"gitlab.com/ringvox/api/sales-call-dashboard/internal/observer"
	"gitlab.com/ringvox/api/sales-call-dashboard/internal/storage"
	"gitlab.com/ringvox/api/sales-call-dashboard/pkg/logger"
	"gitlab.com/ringvox/api/sales-call-dashboard/pkg/utils"
)

// trendDateLabel is the display format for daily trend points.
const trendDateLabel = "Jan 2"

// DashboardService is the aggregation engine: it reduces filtered call-log
// row sets into the summary counters, the daily trend series, and the
// categorical distributions the dashboard renders. It never returns partial
// results; any fetch failure aborts the whole operation.
type DashboardService struct {
	callLogRepo  storage.CallLogRepo
	queryTimeout time.Duration
	trendDays    int
}

// NewDashboardService creates the aggregation engine.
func NewDashboardService(callLogRepo storage.CallLogRepo, queryTimeout time.Duration, trendDays int) *DashboardService {
	if queryTimeout <= 0 {
		queryTimeout = 5 * time.Second
	}
	if trendDays < 1 {
		trendDays = 7
	}
	return &DashboardService{
		callLogRepo:  callLogRepo,
		queryTimeout: queryTimeout,
		trendDays:    trendDays,
	}
}

// fetchWindow loads the filter's row set with the per-call timeout applied.
func (s *DashboardService) fetchWindow(ctx context.Context, f Filter) ([]model.CallLog, error) {
	tctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	logs, err := s.callLogRepo.FindByDateRange(tctx, f.From, f.To, f.SalesExecID)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: call log fetch exceeded %s: %w", apperrors.ErrTimeout, s.queryTimeout, err)
		}
		return nil, err
	}
	return logs, nil
}

// Summary computes the seven dashboard counters over the filter's row set.
// FollowUpsDue deliberately ignores the date filter: it counts, across the
// whole table, follow-ups falling on the day after the window's end day.
func (s *DashboardService) Summary(ctx context.Context, f Filter) (*model.DashboardStats, error) {
	start := utils.Now()
	stats, err := s.summary(ctx, f)
	observer.ObserveAggregationDuration("summary", time.Since(start), err)
	return stats, err
}

func (s *DashboardService) summary(ctx context.Context, f Filter) (*model.DashboardStats, error) {
	log := logger.FromContext(ctx)

	logs, err := s.fetchWindow(ctx, f)
	if err != nil {
		log.Error("Failed to fetch call logs for summary", zap.Error(err))
		return nil, err
	}

	stats := &model.DashboardStats{TotalCalls: len(logs)}
	for i := range logs {
		cl := &logs[i]
		if cl.CallOutcome == model.OutcomeConnected {
			stats.ConnectedCalls++
		}
		if cl.LeadType == model.LeadTypeNew {
			stats.NewLeads++
		}
		switch cl.LeadStage {
		case model.StageDemoScheduled:
			stats.DemosScheduled++
		case model.StageClosedWon:
			stats.DealsClosed++
			stats.TotalDealValue += cl.DealValueOrZero()
		}
	}

	dueDay := utils.NextDay(f.EndDay())
	tctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()
	due, err := s.callLogRepo.CountFollowUpsOn(tctx, dueDay)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: follow-up count exceeded %s: %w", apperrors.ErrTimeout, s.queryTimeout, err)
		}
		log.Error("Failed to count follow-ups due", zap.String("day", utils.FormatDay(dueDay)), zap.Error(err))
		return nil, err
	}
	stats.FollowUpsDue = int(due)

	return stats, nil
}

// DailyTrend returns one point per calendar day of the window, ascending,
// zero-filled for days without calls. An open window defaults to the
// trailing trendDays days ending today.
func (s *DashboardService) DailyTrend(ctx context.Context, f Filter) ([]model.TrendPoint, error) {
	start := utils.Now()
	points, err := s.dailyTrend(ctx, f)
	observer.ObserveAggregationDuration("daily_trend", time.Since(start), err)
	return points, err
}

func (s *DashboardService) dailyTrend(ctx context.Context, f Filter) ([]model.TrendPoint, error) {
	log := logger.FromContext(ctx)

	from, to := f.TrendWindow(s.trendDays)
	windowed := f.WithWindow(from, to)

	logs, err := s.fetchWindow(ctx, windowed)
	if err != nil {
		log.Error("Failed to fetch call logs for daily trend", zap.Error(err))
		return nil, err
	}

	type bucket struct{ total, connected int }
	byDay := make(map[string]*bucket)
	for i := range logs {
		key := utils.FormatDay(logs[i].Date)
		b := byDay[key]
		if b == nil {
			b = &bucket{}
			byDay[key] = b
		}
		b.total++
		if logs[i].CallOutcome == model.OutcomeConnected {
			b.connected++
		}
	}

	var points []model.TrendPoint
	for day := from; !day.After(to); day = utils.NextDay(day) {
		point := model.TrendPoint{Date: day.Format(trendDateLabel)}
		if b := byDay[utils.FormatDay(day)]; b != nil {
			point.Total = b.total
			point.Connected = b.connected
		}
		points = append(points, point)
	}
	return points, nil
}

// InterestLevelDistribution counts the filtered rows by interest level.
// Only categories present in the data appear; order is first appearance in
// chronological row order, which keeps the output stable for a given input.
func (s *DashboardService) InterestLevelDistribution(ctx context.Context, f Filter) ([]model.ChartDatum, error) {
	start := utils.Now()
	data, err := s.distribution(ctx, f, func(cl *model.CallLog) string {
		return string(cl.InterestLevel)
	})
	observer.ObserveAggregationDuration("interest_level_distribution", time.Since(start), err)
	return data, err
}

// LeadStageDistribution counts the filtered rows by lead stage under the
// same shape and rules as the interest level distribution.
func (s *DashboardService) LeadStageDistribution(ctx context.Context, f Filter) ([]model.ChartDatum, error) {
	start := utils.Now()
	data, err := s.distribution(ctx, f, func(cl *model.CallLog) string {
		return string(cl.LeadStage)
	})
	observer.ObserveAggregationDuration("lead_stage_distribution", time.Since(start), err)
	return data, err
}

func (s *DashboardService) distribution(ctx context.Context, f Filter, key func(*model.CallLog) string) ([]model.ChartDatum, error) {
	log := logger.FromContext(ctx)

	logs, err := s.fetchWindow(ctx, f)
	if err != nil {
		log.Error("Failed to fetch call logs for distribution", zap.Error(err))
		return nil, err
	}

	// The store returns rows newest first; walk them oldest first so the
	// category order tracks first appearance chronologically.
	counts := make(map[string]int)
	var order []string
	for i := len(logs) - 1; i >= 0; i-- {
		k := key(&logs[i])
		if k == "" {
			continue
		}
		if _, seen := counts[k]; !seen {
			order = append(order, k)
		}
		counts[k]++
	}

	data := make([]model.ChartDatum, 0, len(order))
	for _, name := range order {
		data = append(data, model.ChartDatum{Name: name, Value: counts[name]})
	}
	return data, nil
}

// Overview bundles everything one dashboard page load needs. The four
// aggregations run concurrently and all must complete; the first failure
// cancels the rest and fails the whole call.
func (s *DashboardService) Overview(ctx context.Context, f Filter) (*model.DashboardOverview, error) {
	start := utils.Now()

	var overview model.DashboardOverview
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		stats, err := s.Summary(gctx, f)
		if err != nil {
			return err
		}
		overview.Stats = *stats
		return nil
	})
	g.Go(func() error {
		trend, err := s.DailyTrend(gctx, f)
		if err != nil {
			return err
		}
		overview.DailyTrend = trend
		return nil
	})
	g.Go(func() error {
		levels, err := s.InterestLevelDistribution(gctx, f)
		if err != nil {
			return err
		}
		overview.InterestLevels = levels
		return nil
	})
	g.Go(func() error {
		stages, err := s.LeadStageDistribution(gctx, f)
		if err != nil {
			return err
		}
		overview.LeadStages = stages
		return nil
	})

	err := g.Wait()
	observer.ObserveAggregationDuration("overview", time.Since(start), err)
	if err != nil {
		logger.FromContext(ctx).Error("Dashboard overview aggregation failed", zap.Error(err))
		return nil, err
	}
	return &overview, nil
}
