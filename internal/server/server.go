package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"gitlab.com/ringvox/api/sales-call-dashboard/internal/storage"
	"gitlab.com/ringvox/api/sales-call-dashboard/internal/usecase"
)

// Server is the public HTTP API for the dashboard, log view and report
// submission endpoints.
type Server struct {
	echo       *echo.Echo
	addr       string
	logger     *zap.Logger
	recipients []string

	dashboard *usecase.DashboardService
	logView   *usecase.LogViewService
	report    *usecase.ReportService
	summary   *usecase.SummaryReportService
	leadRepo  storage.LeadRepo
	execRepo  storage.SalesExecutiveRepo
}

// Deps bundles everything the HTTP server serves from.
type Deps struct {
	Dashboard *usecase.DashboardService
	LogView   *usecase.LogViewService
	Report    *usecase.ReportService
	Summary   *usecase.SummaryReportService
	LeadRepo  storage.LeadRepo
	ExecRepo  storage.SalesExecutiveRepo

	// SummaryRecipients is the default recipient list for on-demand
	// summary runs.
	SummaryRecipients []string
}

// New creates the HTTP server and registers all routes.
func New(port int, deps Deps, log *zap.Logger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{
		echo:       e,
		addr:       fmt.Sprintf(":%d", port),
		logger:     log.Named("http"),
		recipients: deps.SummaryRecipients,
		dashboard:  deps.Dashboard,
		logView:    deps.LogView,
		report:     deps.Report,
		summary:    deps.Summary,
		leadRepo:   deps.LeadRepo,
		execRepo:   deps.ExecRepo,
	}

	e.Use(middleware.Recover())
	e.Use(requestContextMiddleware(s.logger))
	e.Use(metricsMiddleware())

	v1 := e.Group("/api/v1")
	v1.GET("/dashboard/stats", s.handleDashboardStats)
	v1.GET("/dashboard/trend", s.handleDashboardTrend)
	v1.GET("/dashboard/interest-levels", s.handleInterestLevels)
	v1.GET("/dashboard/lead-stages", s.handleLeadStages)
	v1.GET("/dashboard/overview", s.handleDashboardOverview)
	v1.GET("/call-logs", s.handleCallLogs)
	v1.GET("/leads", s.handleLeads)
	v1.GET("/sales-executives", s.handleSalesExecutives)
	v1.POST("/call-reports", s.handleCallReport)
	v1.POST("/reports/daily-summary", s.handleDailySummary)

	return s
}

// Start runs the server in a background goroutine.
func (s *Server) Start() {
	go func() {
		s.logger.Info("Starting HTTP server", zap.String("addr", s.addr))
		if err := s.echo.Start(s.addr); err != nil && err != http.ErrServerClosed {
			s.logger.Error("HTTP server error", zap.Error(err))
		}
	}()
}

// Stop gracefully shuts the server down.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping HTTP server")
	return s.echo.Shutdown(ctx)
}
