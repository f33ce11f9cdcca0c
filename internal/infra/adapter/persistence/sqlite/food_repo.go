// Package sqlite provides the SQLite implementation of the repository
// interfaces. It targets the pure-Go modernc.org/sqlite driver and is used for
// local development; dates are stored as ISO-8601 text.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"calorietracker/internal/domain/entity"
	"calorietracker/internal/observability/metrics"
	"calorietracker/internal/repository"
)

// FoodRepo implements the FoodRepository interface using SQLite.
type FoodRepo struct{ db *sql.DB }

// NewFoodRepo creates a new SQLite-backed food entry repository.
func NewFoodRepo(db *sql.DB) repository.FoodRepository {
	return &FoodRepo{db: db}
}

// ListByDate retrieves the active entries for a calendar day, newest first.
func (repo *FoodRepo) ListByDate(ctx context.Context, day time.Time) ([]*entity.FoodEntry, error) {
	defer metrics.StartDBQuery("ListByDate")()

	const query = `
SELECT id, name, calories, date_added, created_at, updated_at, is_deleted
FROM food_entries
WHERE date_added = ? AND is_deleted = 0
ORDER BY created_at DESC
`
	rows, err := repo.db.QueryContext(ctx, query, dateText(day))
	if err != nil {
		return nil, fmt.Errorf("ListByDate: QueryContext: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanEntries(rows, "ListByDate")
}

// SumCalories returns the calorie sum over the active entries for a day.
func (repo *FoodRepo) SumCalories(ctx context.Context, day time.Time) (int64, error) {
	defer metrics.StartDBQuery("SumCalories")()

	const query = `
SELECT COALESCE(SUM(calories), 0)
FROM food_entries
WHERE date_added = ? AND is_deleted = 0
`
	var total int64
	if err := repo.db.QueryRowContext(ctx, query, dateText(day)).Scan(&total); err != nil {
		return 0, fmt.Errorf("SumCalories: QueryRowContext: %w", err)
	}
	return total, nil
}

// ListActivePaginated retrieves active entries across all dates with
// LIMIT/OFFSET, ordered by date_added then created_at descending.
func (repo *FoodRepo) ListActivePaginated(ctx context.Context, offset, limit int) ([]*entity.FoodEntry, error) {
	defer metrics.StartDBQuery("ListActivePaginated")()

	const query = `
SELECT id, name, calories, date_added, created_at, updated_at, is_deleted
FROM food_entries
WHERE is_deleted = 0
ORDER BY date_added DESC, created_at DESC
LIMIT ? OFFSET ?
`
	rows, err := repo.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("ListActivePaginated: QueryContext: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanEntries(rows, "ListActivePaginated")
}

// CountActive returns the number of active entries.
func (repo *FoodRepo) CountActive(ctx context.Context) (int64, error) {
	defer metrics.StartDBQuery("CountActive")()

	const query = `SELECT COUNT(*) FROM food_entries WHERE is_deleted = 0`

	var count int64
	if err := repo.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("CountActive: QueryRowContext: %w", err)
	}
	return count, nil
}

// Create inserts a new entry and assigns the generated ID.
func (repo *FoodRepo) Create(ctx context.Context, e *entity.FoodEntry) error {
	defer metrics.StartDBQuery("Create")()

	const query = `
INSERT INTO food_entries
(name, calories, date_added, created_at, updated_at, is_deleted)
VALUES (?, ?, ?, ?, ?, 0)
`
	res, err := repo.db.ExecContext(ctx, query,
		e.Name, e.Calories, dateText(e.DateAdded), e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("Create: ExecContext: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("Create: LastInsertId: %w", err)
	}
	e.ID = id
	return nil
}

// FindActiveByID retrieves an active entry, or (nil, nil) when the ID is
// absent or the row is soft-deleted.
func (repo *FoodRepo) FindActiveByID(ctx context.Context, id int64) (*entity.FoodEntry, error) {
	defer metrics.StartDBQuery("FindActiveByID")()

	const query = `
SELECT id, name, calories, date_added, created_at, updated_at, is_deleted
FROM food_entries
WHERE id = ? AND is_deleted = 0
LIMIT 1
`
	var e entity.FoodEntry
	var day string
	err := repo.db.QueryRowContext(ctx, query, id).Scan(
		&e.ID, &e.Name, &e.Calories, &day,
		&e.CreatedAt, &e.UpdatedAt, &e.IsDeleted,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("FindActiveByID: QueryRowContext: %w", err)
	}
	if e.DateAdded, err = parseDateText(day); err != nil {
		return nil, fmt.Errorf("FindActiveByID: %w", err)
	}
	return &e, nil
}

// Update overwrites name and calories of an active entry.
func (repo *FoodRepo) Update(ctx context.Context, e *entity.FoodEntry) error {
	defer metrics.StartDBQuery("Update")()

	const query = `
UPDATE food_entries SET
	name       = ?,
	calories   = ?,
	updated_at = ?
WHERE id = ? AND is_deleted = 0
`
	res, err := repo.db.ExecContext(ctx, query, e.Name, e.Calories, e.UpdatedAt, e.ID)
	if err != nil {
		return fmt.Errorf("Update: ExecContext: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("Update: RowsAffected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("Update: no rows affected")
	}
	return nil
}

// SoftDelete flags an active entry as deleted. The row is kept in storage.
func (repo *FoodRepo) SoftDelete(ctx context.Context, id int64, deletedAt time.Time) error {
	defer metrics.StartDBQuery("SoftDelete")()

	const query = `
UPDATE food_entries SET
	is_deleted = 1,
	updated_at = ?
WHERE id = ? AND is_deleted = 0
`
	res, err := repo.db.ExecContext(ctx, query, deletedAt, id)
	if err != nil {
		return fmt.Errorf("SoftDelete: ExecContext: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("SoftDelete: RowsAffected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("SoftDelete: no rows affected")
	}
	return nil
}

// dateText renders a calendar date the way it is stored in SQLite.
func dateText(day time.Time) string {
	return day.Format(time.DateOnly)
}

func parseDateText(s string) (time.Time, error) {
	d, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return d, nil
}

// scanEntries drains a result set of food entry rows.
func scanEntries(rows *sql.Rows, op string) ([]*entity.FoodEntry, error) {
	entries := make([]*entity.FoodEntry, 0, 32)
	for rows.Next() {
		var e entity.FoodEntry
		var day string
		err := rows.Scan(&e.ID, &e.Name, &e.Calories,
			&day, &e.CreatedAt, &e.UpdatedAt, &e.IsDeleted)
		if err != nil {
			return nil, fmt.Errorf("%s: Scan: %w", op, err)
		}
		d, err := parseDateText(day)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		e.DateAdded = d
		entries = append(entries, &e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows.Err: %w", op, err)
	}

	return entries, nil
}
