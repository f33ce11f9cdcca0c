package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"calorietracker/internal/common/pagination"
	"calorietracker/internal/config"
	pgRepo "calorietracker/internal/infra/adapter/persistence/postgres"
	sqliteRepo "calorietracker/internal/infra/adapter/persistence/sqlite"
	"calorietracker/internal/infra/db"
	"calorietracker/internal/observability/logging"
	"calorietracker/internal/observability/tracing"
	"calorietracker/internal/repository"
	foodUC "calorietracker/internal/usecase/food"
	pkgcfg "calorietracker/pkg/config"
	"calorietracker/pkg/security/csp"

	hhttp "calorietracker/internal/handler/http"
	hapi "calorietracker/internal/handler/http/api"
	hfood "calorietracker/internal/handler/http/food"
	"calorietracker/internal/handler/http/requestid"
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

	version := getVersion()
	handler := setupServer(logger, cfg, database, version)

	runServer(logger, cfg, handler, version)
}

// initLogger initializes the structured JSON logger and installs it as the
// process default.
func initLogger() *slog.Logger {
	logger := logging.NewLogger()
	slog.SetDefault(logger)
	return logger
}

// initDatabase opens the database connection and runs migrations.
func initDatabase(logger *slog.Logger, cfg *config.Config) *sql.DB {
	database, err := db.Open(cfg.Database)
	if err != nil {
		logger.Error("failed to open database", slog.Any("error", err))
		os.Exit(1)
	}
	if err := db.MigrateUp(database, cfg.Database.Driver); err != nil {
		logger.Error("failed to migrate database", slog.Any("error", err))
		os.Exit(1)
	}
	return database
}

// getVersion returns the application version from environment or default.
func getVersion() string {
	version := os.Getenv("VERSION")
	if version == "" {
		version = "dev"
	}
	return version
}

// newFoodRepo selects the repository implementation for the configured driver.
func newFoodRepo(database *sql.DB, driver string) repository.FoodRepository {
	if driver == db.DriverSQLite {
		return sqliteRepo.NewFoodRepo(database)
	}
	return pgRepo.NewFoodRepo(database)
}

// setupServer configures and returns the HTTP handler with all routes and
// middleware.
func setupServer(logger *slog.Logger, cfg *config.Config, database *sql.DB, version string) http.Handler {
	svc := &foodUC.Service{
		Repo:  newFoodRepo(database, cfg.Database.Driver),
		Clock: foodUC.SystemClock{},
	}

	mux := setupRoutes(database, version, svc, logger)
	return applyMiddleware(logger, cfg, mux)
}

// setupRoutes registers the page handlers, the JSON endpoints, and the
// operational endpoints.
func setupRoutes(database *sql.DB, version string, svc *foodUC.Service, logger *slog.Logger) *http.ServeMux {
	mux := http.NewServeMux()

	mux.Handle("GET /health", &hhttp.HealthHandler{DB: database, Version: version})
	mux.Handle("GET /ready", &hhttp.ReadyHandler{DB: database})
	mux.Handle("GET /live", &hhttp.LiveHandler{})
	mux.Handle("GET /metrics", hhttp.MetricsHandler())

	hfood.Register(mux, svc, logger)
	hapi.Register(mux, svc, pagination.LoadFromEnv(), logger)

	return mux
}

// limitSubmissions rate-limits form submissions only; page reads stay
// unthrottled.
func limitSubmissions(limiter *hhttp.RateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		limited := limiter.Limit(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodPost {
				limited.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// applyMiddleware wraps the handler with the middleware chain.
// Order: Request ID → Tracing → Recovery → Logging → Rate Limit (POST) →
// Timeout → Body Limit → CSP → Metrics.
func applyMiddleware(logger *slog.Logger, cfg *config.Config, handler http.Handler) http.Handler {
	cspEnabled := pkgcfg.GetEnvBool("CSP_ENABLED", true)
	cspReportOnly := pkgcfg.GetEnvBool("CSP_REPORT_ONLY", false)

	var cspMiddleware func(http.Handler) http.Handler
	if cspEnabled {
		cspMiddleware = hhttp.CSP(hhttp.CSPConfig{
			Enabled:       true,
			DefaultPolicy: csp.HTMLPolicy(),
			PathPolicies: map[string]*csp.CSPBuilder{
				"/api/":    csp.StrictPolicy(),
				"/health":  csp.StrictPolicy(),
				"/metrics": csp.StrictPolicy(),
			},
			ReportOnly: cspReportOnly,
		})
		logger.Info("CSP enabled", slog.Bool("report_only", cspReportOnly))
	} else {
		cspMiddleware = func(next http.Handler) http.Handler { return next }
		logger.Warn("CSP is disabled")
	}

	chain := handler

	// Apply in reverse order (innermost to outermost)
	chain = hhttp.MetricsMiddleware(chain)
	chain = cspMiddleware(chain)
	chain = hhttp.LimitRequestBody(1 << 20)(chain) // 1MB limit
	chain = hhttp.Timeout(30 * time.Second)(chain)

	if cfg.RateLimit.Enabled {
		limiter := hhttp.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
		chain = limitSubmissions(limiter)(chain)
		logger.Info("submission rate limiting enabled",
			slog.Float64("requests_per_second", cfg.RateLimit.RequestsPerSecond),
			slog.Int("burst", cfg.RateLimit.Burst))
	} else {
		logger.Warn("submission rate limiting is DISABLED")
	}

	chain = hhttp.Logging(logger)(chain)
	chain = hhttp.Recover(logger)(chain)
	chain = tracing.Middleware(chain)
	chain = requestid.Middleware(chain)

	return chain
}

// runServer starts the HTTP server and handles graceful shutdown.
func runServer(logger *slog.Logger, cfg *config.Config, handler http.Handler, version string) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           handler,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		logger.Info("server starting",
			slog.String("addr", cfg.Server.Addr),
			slog.String("version", version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
	}
	logger.Info("server stopped")
}
