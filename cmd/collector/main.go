// cmd/collector/main.go
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/robfig/cron/v3"

	"gitdiscover-collector/internal/ai"
	"gitdiscover-collector/internal/api"
	"gitdiscover-collector/internal/config"
	"gitdiscover-collector/internal/database"
	"gitdiscover-collector/internal/github"
	"gitdiscover-collector/internal/jobs"
	"gitdiscover-collector/internal/processor"
	"gitdiscover-collector/internal/trending"
)

// Every scheduled run gets its own deadline so a wedged job cannot block
// the next day's schedule.
const jobTimeout = 30 * time.Minute

func main() {
	if err := run(); err != nil {
		slog.Error("Application startup error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Initialize structured logger
	logLevel := new(slog.LevelVar)
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	logger := slog.New(handler)
	slog.SetDefault(logger)

	// 2. Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	setLogLevel(cfg.LogLevel, logLevel)
	logger.Info("Configuration loaded successfully")

	// 3. Setup context for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// 4. Initialize database connection and run migrations
	dbpool, err := pgxpool.New(ctx, cfg.DBURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer dbpool.Close()
	logger.Info("Database connection established")

	if err := runMigrations(cfg.DBURL); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}
	logger.Info("Database migrations applied successfully")

	// 5. Initialize application components
	db := database.New(dbpool)
	ghClient := github.NewClient(cfg.GithubToken, logger)
	scraper := trending.NewScraper(nil, logger)
	repoProcessor := processor.NewRepositoryProcessor(db, ghClient, logger)
	devProcessor := processor.NewDeveloperProcessor(db, ghClient, logger)

	var analyzer jobs.Analyzer
	if cfg.OpenAIAPIKey != "" {
		analyzer = ai.NewClient(cfg.OpenAIAPIKey, logger)
	}

	dailyJob := jobs.NewDailyJob(db, scraper, repoProcessor, devProcessor, logger)
	aiJob := jobs.NewAIJob(db, analyzer, logger)
	warmJob := jobs.NewWarmCacheJob(cfg.APIBaseURL, logger)

	tracker := jobs.NewStatusTracker()
	runner := jobs.NewRunner(db, tracker, logger)

	runDaily := func(ctx context.Context) error {
		return runner.Run(ctx, jobs.JobDaily, func(ctx context.Context) (jobs.Outcome, error) {
			return dailyJob.Run(ctx, utcDate(time.Now()))
		})
	}
	runAI := func(ctx context.Context) error {
		return runner.Run(ctx, jobs.JobAI, func(ctx context.Context) (jobs.Outcome, error) {
			return aiJob.Run(ctx, utcDate(time.Now()))
		})
	}
	runWarm := func(ctx context.Context) error {
		return runner.Run(ctx, jobs.JobWarmCache, func(ctx context.Context) (jobs.Outcome, error) {
			return warmJob.Run(ctx)
		})
	}

	// 6. Start the health check server
	healthServer := &http.Server{
		Addr:    cfg.HealthAddr,
		Handler: api.NewRouter(tracker, logger),
	}
	go func() {
		logger.Info("Health check server listening", "addr", cfg.HealthAddr)
		if err := healthServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Health check server error", "error", err)
		}
	}()
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := healthServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("Health check server shutdown error", "error", err)
		}
	}()

	// 7. One-shot mode: run one job and exit
	if len(os.Args) > 1 {
		switch cmd := os.Args[1]; cmd {
		case "daily":
			return runWithTimeout(ctx, runDaily)
		case "ai":
			return runWithTimeout(ctx, runAI)
		case "warm-cache":
			return runWithTimeout(ctx, runWarm)
		default:
			return fmt.Errorf("unknown command %q (expected daily, ai or warm-cache)", cmd)
		}
	}

	// 8. Scheduler mode
	scheduler := cron.New(cron.WithLocation(time.UTC))
	schedule := func(spec string, job func(context.Context) error) error {
		_, err := scheduler.AddFunc(spec, func() {
			if err := runWithTimeout(ctx, job); err != nil {
				logger.Error("Scheduled job error", "error", err)
			}
		})
		return err
	}
	if err := schedule("0 2 * * *", runDaily); err != nil {
		return fmt.Errorf("failed to schedule daily job: %w", err)
	}
	if err := schedule("0 3 * * *", runAI); err != nil {
		return fmt.Errorf("failed to schedule ai job: %w", err)
	}
	if err := schedule("0 4 * * *", runWarm); err != nil {
		return fmt.Errorf("failed to schedule warm-cache job: %w", err)
	}
	scheduler.Start()

	// 9. Wait for shutdown signal
	logger.Info("Collector scheduler started (UTC). Waiting for shutdown signal...")
	<-ctx.Done()
	logger.Info("Shutdown signal received. Exiting.")

	stopCtx := scheduler.Stop()
	select {
	case <-stopCtx.Done():
	case <-time.After(10 * time.Second):
		logger.Warn("Timed out waiting for running jobs to finish")
	}

	return nil
}

func runWithTimeout(ctx context.Context, job func(context.Context) error) error {
	jobCtx, cancel := context.WithTimeout(ctx, jobTimeout)
	defer cancel()
	return job(jobCtx)
}

// utcDate truncates a time to its UTC calendar date.
func utcDate(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func runMigrations(dbURL string) error {
	m, err := migrate.New("file://migrations", dbURL)
	if err != nil {
		return err
	}
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}
	return nil
}

func setLogLevel(level string, v *slog.LevelVar) {
	switch level {
	case "debug":
		v.Set(slog.LevelDebug)
	case "warn":
		v.Set(slog.LevelWarn)
	case "error":
		v.Set(slog.LevelError)
	default:
		v.Set(slog.LevelInfo)
	}
}
