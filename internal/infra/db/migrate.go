package db

import (
	"database/sql"
	"fmt"
)

// MigrateUp creates the schema for the configured driver. The statements are
// idempotent so migration runs on every startup.
func MigrateUp(database *sql.DB, driver string) error {
	var ddl string
	switch driver {
	case DriverPostgres:
		ddl = `
CREATE TABLE IF NOT EXISTS food_entries (
    id         BIGSERIAL PRIMARY KEY,
    name       VARCHAR(200) NOT NULL,
    calories   INTEGER NOT NULL CHECK (calories >= 0 AND calories <= 999999),
    date_added DATE NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    is_deleted BOOLEAN NOT NULL DEFAULT FALSE
)`
	case DriverSQLite:
		ddl = `
CREATE TABLE IF NOT EXISTS food_entries (
    id         INTEGER PRIMARY KEY AUTOINCREMENT,
    name       TEXT NOT NULL,
    calories   INTEGER NOT NULL CHECK (calories >= 0 AND calories <= 999999),
    date_added TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL,
    updated_at TIMESTAMP NOT NULL,
    is_deleted INTEGER NOT NULL DEFAULT 0
)`
	default:
		return fmt.Errorf("migrate: unknown driver %q", driver)
	}

	if _, err := database.Exec(ddl); err != nil {
		return fmt.Errorf("migrate: create food_entries: %w", err)
	}

	// Every read filters on date_added and is_deleted.
	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_food_entries_date_added ON food_entries(date_added)`,
		`CREATE INDEX IF NOT EXISTS idx_food_entries_date_active ON food_entries(date_added, is_deleted)`,
	}
	for _, idx := range indexes {
		if _, err := database.Exec(idx); err != nil {
			return fmt.Errorf("migrate: create index: %w", err)
		}
	}

	return nil
}

// MigrateDown drops the schema. Use with caution: this deletes all data,
// including soft-deleted rows.
func MigrateDown(database *sql.DB) error {
	statements := []string{
		`DROP INDEX IF EXISTS idx_food_entries_date_active`,
		`DROP INDEX IF EXISTS idx_food_entries_date_added`,
		`DROP TABLE IF EXISTS food_entries`,
	}
	for _, stmt := range statements {
		if _, err := database.Exec(stmt); err != nil {
			return fmt.Errorf("migrate down: %w", err)
		}
	}
	return nil
}
