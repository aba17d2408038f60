package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"gitlab.com/ringvox/api/sales-call-dashboard/internal/config"
	"gitlab.com/ringvox/api/sales-call-dashboard/internal/healthcheck"
	"gitlab.com/ringvox/api/sales-call-dashboard/internal/jobs"
	"gitlab.com/ringvox/api/sales-call-dashboard/internal/mailer"
	"gitlab.com/ringvox/api/sales-call-dashboard/internal/observer"
	"gitlab.com/ringvox/api/sales-call-dashboard/internal/server"
	"gitlab.com/ringvox/api/sales-call-dashboard/internal/storage"
	"gitlab.com/ringvox/api/sales-call-dashboard/internal/summarygen"
	"gitlab.com/ringvox/api/sales-call-dashboard/internal/usecase"
	"gitlab.com/ringvox/api/sales-call-dashboard/pkg/logger"
	"gitlab.com/ringvox/api/sales-call-dashboard/pkg/utils"
)

func main() {
	// Set timezone to UTC
	time.Local = time.UTC

	// Load configuration
	cfg, err := config.LoadConfig("")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Initialize(cfg.LogLevel); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	metricsEnabled := cfg.Metrics.Enabled
	observer.InitMetrics(metricsEnabled)

	logger.Log.Info("Starting Sales Call Dashboard",
		zap.String("environment", cfg.Environment),
		zap.Int("http_port", cfg.Server.Port),
		zap.Int("health_port", cfg.Health.Port),
	)

	// Initialize repositories
	postgresRepo, err := storage.NewPostgresRepo(cfg.Database.PostgresDSN, cfg.Database.PostgresAutoMigrate)
	if err != nil {
		logger.Log.Fatal("Failed to initialize Postgres repository", zap.Error(err))
	}

	// Create repository adapters for the services
	leadRepo := storage.NewLeadRepoAdapter(postgresRepo)
	execRepo := storage.NewSalesExecutiveRepoAdapter(postgresRepo)
	callLogRepo := storage.NewCallLogRepoAdapter(postgresRepo)

	// Seed reference executives when the table is empty
	seedCtx, seedCancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := execRepo.Seed(seedCtx, cfg.Executives.Seed); err != nil {
		seedCancel()
		logger.Log.Fatal("Failed to seed sales executives", zap.Error(err))
	}
	seedCancel()

	countCtx, countCancel := context.WithTimeout(context.Background(), 10*time.Second)
	if total, err := callLogRepo.Count(countCtx); err != nil {
		logger.Log.Warn("Failed to count stored call logs", zap.Error(err))
	} else {
		logger.Log.Info("Call log store ready", zap.Int64("totalCallLogs", total))
	}
	countCancel()

	// Summary generation and delivery
	generator := summarygen.NewGenerator(summarygen.Config{
		APIKey:      cfg.Summary.OpenAI.APIKey,
		Model:       cfg.Summary.OpenAI.Model,
		Temperature: cfg.Summary.OpenAI.Temperature,
		MaxTokens:   cfg.Summary.OpenAI.MaxTokens,
	}, logger.Log)
	summaryMailer := mailer.NewMailer(
		cfg.Summary.Mail.SendGridAPIKey,
		cfg.Summary.Mail.FromEmail,
		cfg.Summary.Mail.FromName,
		logger.Log,
	)

	// Create mailer worker pool
	reportMailer, err := usecase.NewReportMailer(cfg.WorkerPools.Mailer, summaryMailer, logger.Log)
	if err != nil {
		logger.Log.Fatal("Failed to initialize mailer worker pool", zap.Error(err))
	}

	// Create services
	dashboardService := usecase.NewDashboardService(callLogRepo, cfg.Database.QueryTimeout, cfg.Dashboard.TrendDays)
	logViewService := usecase.NewLogViewService(callLogRepo, leadRepo, execRepo, cfg.Database.QueryTimeout)
	reportService := usecase.NewReportService(callLogRepo, leadRepo, execRepo)
	summaryService := usecase.NewSummaryReportService(dashboardService, logViewService, generator, reportMailer)

	// Daily summary schedule
	scheduler := jobs.NewScheduler(summaryService, cfg.Summary.Schedule, cfg.Summary.Recipients, logger.Log)
	if cfg.Summary.Enabled {
		if err := scheduler.Start(); err != nil {
			logger.Log.Fatal("Failed to start summary scheduler", zap.Error(err))
		}
	} else {
		logger.Log.Info("Summary scheduler disabled")
	}

	// Create health check server
	healthServer := healthcheck.NewServer(strconv.Itoa(cfg.Health.Port), postgresRepo.Ping, logger.Log)

	// Register metrics handler if enabled BEFORE starting the server
	if metricsEnabled {
		healthServer.RegisterMetricsHandler(promhttp.Handler())
		logger.Log.Info("Metrics endpoint enabled", zap.String("path", "/metrics"), zap.Int("port", cfg.Health.Port))
	} else {
		logger.Log.Info("Metrics endpoint disabled for environment", zap.String("environment", cfg.Environment))
	}

	healthServer.Start()

	logger.Log.Info("Health check endpoints available",
		zap.String("health", fmt.Sprintf("http://localhost:%d/health", cfg.Health.Port)),
		zap.String("readiness", fmt.Sprintf("http://localhost:%d/ready", cfg.Health.Port)),
	)

	// Start the public API server
	apiServer := server.New(cfg.Server.Port, server.Deps{
		Dashboard:         dashboardService,
		LogView:           logViewService,
		Report:            reportService,
		Summary:           summaryService,
		LeadRepo:          leadRepo,
		ExecRepo:          execRepo,
		SummaryRecipients: cfg.Summary.Recipients,
	}, logger.Log)
	apiServer.Start()

	// Wait for termination signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	logger.Log.Info("Received termination signal", zap.String("signal", sig.String()))

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	logger.Log.Info("Starting graceful shutdown", zap.Duration("timeout", 30*time.Second))

	var wg sync.WaitGroup
	wg.Add(5)

	// Shutdown API server first so no new work arrives
	utils.SafeGo(func() {
		defer wg.Done()
		logger.Log.Info("[shutdown] Stopping HTTP server")
		start := time.Now()
		if err := apiServer.Stop(shutdownCtx); err != nil {
			logger.Log.Error("[shutdown] Error stopping HTTP server", zap.Error(err))
		} else {
			logger.Log.Info("[shutdown] HTTP server stopped",
				zap.Duration("duration", time.Since(start)))
		}
	}, func(r interface{}, stack []byte) {
		logger.Log.Error("[shutdown] Panic while stopping HTTP server",
			zap.Any("panic", r),
			zap.ByteString("stack", stack),
		)
		wg.Done()
	})

	// Shutdown the scheduler
	utils.SafeGo(func() {
		defer wg.Done()
		if !cfg.Summary.Enabled {
			return
		}
		logger.Log.Info("[shutdown] Stopping summary scheduler")
		start := time.Now()
		scheduler.Stop()
		logger.Log.Info("[shutdown] Summary scheduler stopped",
			zap.Duration("duration", time.Since(start)))
	}, func(r interface{}, stack []byte) {
		logger.Log.Error("[shutdown] Panic while stopping summary scheduler",
			zap.Any("panic", r),
			zap.ByteString("stack", stack),
		)
		wg.Done()
	})

	// Shutdown mailer worker pool
	utils.SafeGo(func() {
		defer wg.Done()
		logger.Log.Info("[shutdown] Stopping mailer worker pool")
		start := time.Now()
		reportMailer.Stop()
		logger.Log.Info("[shutdown] Mailer worker pool stopped",
			zap.Duration("duration", time.Since(start)))
	}, func(r interface{}, stack []byte) {
		logger.Log.Error("[shutdown] Panic while stopping mailer worker pool",
			zap.Any("panic", r),
			zap.ByteString("stack", stack),
		)
		wg.Done()
	})

	// Shutdown health check server (includes metrics if enabled)
	utils.SafeGo(func() {
		defer wg.Done()
		logger.Log.Info("[shutdown] Stopping health check server")
		start := time.Now()
		if err := healthServer.Stop(shutdownCtx); err != nil {
			logger.Log.Error("[shutdown] Error stopping health check server", zap.Error(err))
		} else {
			logger.Log.Info("[shutdown] Health check server stopped",
				zap.Duration("duration", time.Since(start)))
		}
	}, func(r interface{}, stack []byte) {
		logger.Log.Error("[shutdown] Panic while stopping health check server",
			zap.Any("panic", r),
			zap.ByteString("stack", stack),
		)
		wg.Done()
	})

	// Close database connections
	utils.SafeGo(func() {
		defer wg.Done()
		logger.Log.Info("[shutdown] Closing PostgreSQL connection")
		start := time.Now()
		if err := postgresRepo.Close(shutdownCtx); err != nil {
			logger.Log.Error("[shutdown] Failed to close PostgreSQL connection", zap.Error(err))
		} else {
			logger.Log.Info("[shutdown] PostgreSQL connection closed",
				zap.Duration("duration", time.Since(start)))
		}
	}, func(r interface{}, stack []byte) {
		logger.Log.Error("[shutdown] Panic while closing database connections",
			zap.Any("panic", r),
			zap.ByteString("stack", stack),
		)
		wg.Done()
	})

	// Wait with a timeout for all components to shut down
	waitCh := make(chan struct{})
	go func() {
		wg.Wait()
		close(waitCh)
	}()

	select {
	case <-waitCh:
		logger.Log.Info("[shutdown] All components stopped gracefully")
	case <-shutdownCtx.Done():
		logger.Log.Warn("[shutdown] Graceful shutdown timed out, forcing exit")
	}

	logger.Log.Info("Sales Call Dashboard shutdown complete")
}
