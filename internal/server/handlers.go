package server

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"gitlab.com/ringvox/api/sales-call-dashboard/internal/apperrors"
	"gitlab.com/ringvox/api/sales-call-dashboard/internal/model"
	"gitlab.com/ringvox/api/sales-call-dashboard/internal/usecase"
	"gitlab.com/ringvox/api/sales-call-dashboard/pkg/utils"
)

// filterFromQuery parses the shared from/to/sales_exec_id query contract.
func filterFromQuery(c echo.Context) (usecase.Filter, error) {
	return usecase.ParseFilter(
		c.QueryParam("from"),
		c.QueryParam("to"),
		c.QueryParam("sales_exec_id"),
	)
}

func (s *Server) handleDashboardStats(c echo.Context) error {
	f, err := filterFromQuery(c)
	if err != nil {
		return respondError(c, err)
	}
	stats, err := s.dashboard.Summary(c.Request().Context(), f)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, stats)
}

func (s *Server) handleDashboardTrend(c echo.Context) error {
	f, err := filterFromQuery(c)
	if err != nil {
		return respondError(c, err)
	}
	trend, err := s.dashboard.DailyTrend(c.Request().Context(), f)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, trend)
}

func (s *Server) handleInterestLevels(c echo.Context) error {
	f, err := filterFromQuery(c)
	if err != nil {
		return respondError(c, err)
	}
	dist, err := s.dashboard.InterestLevelDistribution(c.Request().Context(), f)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, dist)
}

func (s *Server) handleLeadStages(c echo.Context) error {
	f, err := filterFromQuery(c)
	if err != nil {
		return respondError(c, err)
	}
	dist, err := s.dashboard.LeadStageDistribution(c.Request().Context(), f)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, dist)
}

func (s *Server) handleDashboardOverview(c echo.Context) error {
	f, err := filterFromQuery(c)
	if err != nil {
		return respondError(c, err)
	}
	overview, err := s.dashboard.Overview(c.Request().Context(), f)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, overview)
}

// handleCallLogs serves the enriched log view. Beyond the shared window
// filter, search/exec_name/outcome refine the result set in memory.
func (s *Server) handleCallLogs(c echo.Context) error {
	f, err := filterFromQuery(c)
	if err != nil {
		return respondError(c, err)
	}
	rows, err := s.logView.Logs(c.Request().Context(), f)
	if err != nil {
		return respondError(c, err)
	}
	rows = usecase.Refine(rows, usecase.RefineOptions{
		Search:   c.QueryParam("search"),
		ExecName: c.QueryParam("exec_name"),
		Outcome:  c.QueryParam("outcome"),
	})
	return respondData(c, http.StatusOK, rows)
}

func (s *Server) handleLeads(c echo.Context) error {
	leads, err := s.leadRepo.FindAll(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, leads)
}

func (s *Server) handleSalesExecutives(c echo.Context) error {
	execs, err := s.execRepo.FindAll(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusOK, execs)
}

func (s *Server) handleCallReport(c echo.Context) error {
	var report model.CallReport
	if err := c.Bind(&report); err != nil {
		return respondError(c, fmt.Errorf("%w: %v", apperrors.ErrBadRequest, err))
	}
	created, err := s.report.SubmitCallReport(c.Request().Context(), report)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusCreated, created)
}

// dailySummaryRequest triggers an on-demand summary run. All fields are
// optional: date defaults to today, recipients to the configured list.
type dailySummaryRequest struct {
	Date        string   `json:"date"` // yyyy-mm-dd
	SalesExecID string   `json:"sales_exec_id"`
	Recipients  []string `json:"recipients"`
}

func (s *Server) handleDailySummary(c echo.Context) error {
	var req dailySummaryRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, fmt.Errorf("%w: %v", apperrors.ErrBadRequest, err))
	}

	day := utils.Today()
	if req.Date != "" {
		parsed, err := utils.ParseDay(req.Date)
		if err != nil {
			return respondError(c, fmt.Errorf("%w: invalid date %q", apperrors.ErrBadRequest, req.Date))
		}
		day = parsed
	}

	recipients := req.Recipients
	if len(recipients) == 0 {
		recipients = s.recipients
	}
	if len(recipients) == 0 {
		return respondError(c, fmt.Errorf("%w: no recipients configured or provided", apperrors.ErrBadRequest))
	}

	email, err := s.summary.SendDailySummary(c.Request().Context(), day, req.SalesExecID, recipients)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, http.StatusAccepted, map[string]interface{}{
		"date":       utils.FormatDay(day),
		"recipients": len(recipients),
		"subject":    email.Subject,
	})
}
