package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"gitlab.com/ringvox/api/sales-call-dashboard/internal/apperrors"
	"gitlab.com/ringvox/api/sales-call-dashboard/internal/model"
	"gitlab.com/ringvox/api/sales-call-dashboard/internal/storage"
	"gitlab.com/ringvox/api/sales-call-dashboard/pkg/logger"
)

// LogViewService builds the enriched, filterable log table: the filtered
// call logs joined to lead and executive display names. The same Filter as
// the aggregation engine drives the row set, so a log view and a summary
// over one filter always describe the same rows.
type LogViewService struct {
	callLogRepo  storage.CallLogRepo
	leadRepo     storage.LeadRepo
	execRepo     storage.SalesExecutiveRepo
	queryTimeout time.Duration
}

// NewLogViewService creates a log view builder.
func NewLogViewService(callLogRepo storage.CallLogRepo, leadRepo storage.LeadRepo, execRepo storage.SalesExecutiveRepo, queryTimeout time.Duration) *LogViewService {
	if queryTimeout <= 0 {
		queryTimeout = 5 * time.Second
	}
	return &LogViewService{
		callLogRepo:  callLogRepo,
		leadRepo:     leadRepo,
		execRepo:     execRepo,
		queryTimeout: queryTimeout,
	}
}

// Logs returns the filter's call logs enriched with display names, most
// recently created first. Rows and executives are fetched concurrently;
// leads are then loaded by the IDs the window actually references. Any
// failure fails the whole call.
func (s *LogViewService) Logs(ctx context.Context, f Filter) ([]model.CallLogView, error) {
	log := logger.FromContext(ctx)

	var (
		logs  []model.CallLog
		leads []model.Lead
		execs []model.SalesExecutive
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.withTimeout(gctx, func(tctx context.Context) error {
			var ferr error
			logs, ferr = s.callLogRepo.FindByDateRange(tctx, f.From, f.To, f.SalesExecID)
			return ferr
		})
	})
	g.Go(func() error {
		return s.withTimeout(gctx, func(tctx context.Context) error {
			var ferr error
			execs, ferr = s.execRepo.FindAll(tctx)
			return ferr
		})
	})

	if err := g.Wait(); err != nil {
		log.Error("Failed to build log view", zap.Error(err))
		return nil, err
	}

	if ids := distinctLeadIDs(logs); len(ids) > 0 {
		err := s.withTimeout(ctx, func(tctx context.Context) error {
			var ferr error
			leads, ferr = s.leadRepo.FindByIDs(tctx, ids)
			return ferr
		})
		if err != nil {
			log.Error("Failed to load leads for log view", zap.Error(err))
			return nil, err
		}
	}

	resolver := NewNameResolver(leads, execs)
	views := make([]model.CallLogView, 0, len(logs))
	for _, cl := range logs {
		views = append(views, resolver.Enrich(cl))
	}
	return views, nil
}

// distinctLeadIDs collects the lead IDs referenced by the rows, first seen
// first, skipping blanks.
func distinctLeadIDs(logs []model.CallLog) []string {
	seen := make(map[string]struct{}, len(logs))
	ids := make([]string, 0, len(logs))
	for _, cl := range logs {
		if cl.LeadID == "" {
			continue
		}
		if _, ok := seen[cl.LeadID]; ok {
			continue
		}
		seen[cl.LeadID] = struct{}{}
		ids = append(ids, cl.LeadID)
	}
	return ids
}

// withTimeout runs one store call under the per-call timeout, surfacing a
// deadline hit as ErrTimeout.
func (s *LogViewService) withTimeout(ctx context.Context, op func(context.Context) error) error {
	tctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()
	if err := op(tctx); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("%w: fetch exceeded %s: %w", apperrors.ErrTimeout, s.queryTimeout, err)
		}
		return err
	}
	return nil
}

// RefineOptions narrow an already-fetched log view in memory. This stage
// never changes which rows the store returned, only which are displayed.
type RefineOptions struct {
	// Search is a case-insensitive substring match over the business name
	// and executive name.
	Search string
	// ExecName keeps only rows with this exact executive display name.
	ExecName string
	// Outcome keeps only rows with this exact call outcome.
	Outcome string
}

// Refine applies the in-memory refinement stage to enriched rows.
func Refine(rows []model.CallLogView, opts RefineOptions) []model.CallLogView {
	search := strings.ToLower(strings.TrimSpace(opts.Search))

	out := make([]model.CallLogView, 0, len(rows))
	for _, row := range rows {
		if search != "" &&
			!strings.Contains(strings.ToLower(row.BusinessName), search) &&
			!strings.Contains(strings.ToLower(row.SalesExecName), search) {
			continue
		}
		if opts.ExecName != "" && row.SalesExecName != opts.ExecName {
			continue
		}
		if opts.Outcome != "" && string(row.CallOutcome) != opts.Outcome {
			continue
		}
		out = append(out, row)
	}
	return out
}
