// The worker keeps the business gauges fresh: on a cron schedule it recounts
// the active entries and today's calorie total and pushes them to Prometheus.
// It runs alongside the API server against the same database.
package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"calorietracker/internal/config"
	"calorietracker/internal/domain/entity"
	pgRepo "calorietracker/internal/infra/adapter/persistence/postgres"
	sqliteRepo "calorietracker/internal/infra/adapter/persistence/sqlite"
	"calorietracker/internal/infra/db"
	"calorietracker/internal/observability/logging"
	"calorietracker/internal/observability/metrics"
	"calorietracker/internal/repository"
	pkgcfg "calorietracker/pkg/config"
)

func main() {
	logger := initLogger()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	database := initDatabase(logger, cfg)
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	var repo repository.FoodRepository
	if cfg.Database.Driver == db.DriverSQLite {
		repo = sqliteRepo.NewFoodRepo(database)
	} else {
		repo = pgRepo.NewFoodRepo(database)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	startMetricsServer(ctx, logger)

	schedule := pkgcfg.GetEnvString("WORKER_CRON", "*/1 * * * *")
	refreshTimeout := pkgcfg.GetEnvDuration("WORKER_REFRESH_TIMEOUT", 30*time.Second)

	// Prime the gauges immediately so a fresh deployment does not report
	// zeros until the first tick.
	refreshGauges(ctx, logger, repo, refreshTimeout)

	c := cron.New()
	if _, err := c.AddFunc(schedule, func() {
		refreshGauges(ctx, logger, repo, refreshTimeout)
	}); err != nil {
		logger.Error("invalid cron schedule",
			slog.String("schedule", schedule),
			slog.Any("error", err))
		os.Exit(1)
	}
	c.Start()
	logger.Info("gauge refresh scheduled", slog.String("schedule", schedule))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down worker...")

	cancel()
	<-c.Stop().Done()
	logger.Info("worker stopped")
}

// initLogger initializes the structured JSON logger and installs it as the
// process default.
func initLogger() *slog.Logger {
	logger := logging.NewLogger()
	slog.SetDefault(logger)
	return logger
}

// initDatabase opens the database connection. Migrations are owned by the API
// server; the worker only waits until the schema is present.
func initDatabase(logger *slog.Logger, cfg *config.Config) *sql.DB {
	database, err := db.Open(cfg.Database)
	if err != nil {
		logger.Error("failed to open database", slog.Any("error", err))
		os.Exit(1)
	}
	waitForMigrations(logger, database)
	return database
}

func waitForMigrations(logger *slog.Logger, database *sql.DB) {
	const probe = "SELECT 1 FROM food_entries LIMIT 1"
	for i := 0; i < 10; i++ {
		if _, err := database.Exec(probe); err == nil {
			return
		}
		logger.Info("waiting for migrations, retrying in 3s", slog.Int("attempt", i+1))
		time.Sleep(3 * time.Second)
	}
	logger.Error("migrations did not complete in time")
	os.Exit(1)
}

// refreshGauges recounts the active entries and today's calorie total and
// updates the Prometheus gauges.
func refreshGauges(ctx context.Context, logger *slog.Logger, repo repository.FoodRepository, timeout time.Duration) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()

	active, err := repo.CountActive(ctx)
	if err != nil {
		logger.Error("failed to count active entries", slog.Any("error", err))
		return
	}
	metrics.UpdateEntriesActive(active)

	today := entity.DateOf(time.Now())
	total, err := repo.SumCalories(ctx, today)
	if err != nil {
		logger.Error("failed to sum today's calories", slog.Any("error", err))
		return
	}
	metrics.UpdateCaloriesToday(total)

	logger.Info("gauges refreshed",
		slog.Int64("entries_active", active),
		slog.Int64("calories_today", total),
		slog.Duration("duration", time.Since(start)))
}
