// Package db opens the database connection and manages the schema.
// Two drivers are supported: pgx (PostgreSQL, production) and the pure-Go
// sqlite driver (local development).
package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"calorietracker/internal/config"
)

// Driver names accepted in configuration.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// ConnectionConfig holds database connection pool configuration.
type ConnectionConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// DefaultConnectionConfig returns the default connection pool configuration.
func DefaultConnectionConfig() ConnectionConfig {
	return ConnectionConfig{
		MaxOpenConns:    25,
		MaxIdleConns:    10,
		ConnMaxLifetime: 1 * time.Hour,
		ConnMaxIdleTime: 30 * time.Minute,
	}
}

// Open creates and configures a database connection pool for the configured
// driver and verifies connectivity with a ping.
func Open(cfg config.DatabaseConfig) (*sql.DB, error) {
	var (
		database *sql.DB
		err      error
	)
	switch cfg.Driver {
	case DriverPostgres:
		if cfg.DSN == "" {
			return nil, fmt.Errorf("open database: DSN is required for the postgres driver")
		}
		database, err = sql.Open("pgx", cfg.DSN)
	case DriverSQLite:
		if cfg.Path == "" {
			return nil, fmt.Errorf("open database: path is required for the sqlite driver")
		}
		database, err = sql.Open("sqlite", cfg.Path)
	default:
		return nil, fmt.Errorf("open database: unknown driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	pool := poolConfigFor(cfg)
	database.SetMaxOpenConns(pool.MaxOpenConns)
	database.SetMaxIdleConns(pool.MaxIdleConns)
	database.SetConnMaxLifetime(pool.ConnMaxLifetime)
	database.SetConnMaxIdleTime(pool.ConnMaxIdleTime)

	slog.Info("database connection pool configured",
		slog.String("driver", cfg.Driver),
		slog.Int("max_open_conns", pool.MaxOpenConns),
		slog.Int("max_idle_conns", pool.MaxIdleConns),
		slog.Duration("conn_max_lifetime", pool.ConnMaxLifetime),
		slog.Duration("conn_max_idle_time", pool.ConnMaxIdleTime))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := database.PingContext(ctx); err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	slog.Info("database connection established")
	return database, nil
}

// poolConfigFor applies configured overrides on top of the pool defaults.
// SQLite keeps a single writer connection; modernc serializes writes anyway
// and a pool of writers only produces SQLITE_BUSY errors.
func poolConfigFor(cfg config.DatabaseConfig) ConnectionConfig {
	pool := DefaultConnectionConfig()
	if cfg.Driver == DriverSQLite {
		pool.MaxOpenConns = 1
		pool.MaxIdleConns = 1
	}
	if cfg.MaxOpenConns > 0 {
		pool.MaxOpenConns = cfg.MaxOpenConns
	}
	if cfg.MaxIdleConns > 0 {
		pool.MaxIdleConns = cfg.MaxIdleConns
	}
	if cfg.ConnMaxLifetime > 0 {
		pool.ConnMaxLifetime = cfg.ConnMaxLifetime
	}
	if cfg.ConnMaxIdleTime > 0 {
		pool.ConnMaxIdleTime = cfg.ConnMaxIdleTime
	}
	return pool
}
