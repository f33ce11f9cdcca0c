// Package repository defines the persistence contracts of the application.
// Implementations live under internal/infra/adapter/persistence.
package repository

import (
	"context"
	"time"

	"calorietracker/internal/domain/entity"
)

// FoodRepository persists food entries. Every read excludes soft-deleted rows;
// the is_deleted predicate is baked into the queries, not an optional flag.
// Each operation executes as a single atomic statement against storage.
type FoodRepository interface {
	// ListByDate retrieves the active entries whose date_added equals day,
	// ordered by created_at descending.
	ListByDate(ctx context.Context, day time.Time) ([]*entity.FoodEntry, error)
	// SumCalories returns the calorie sum over the active entries for day.
	// Returns 0 when no rows match; absence is not an error.
	SumCalories(ctx context.Context, day time.Time) (int64, error)
	// ListActivePaginated retrieves active entries across all dates, ordered by
	// date_added descending then created_at descending, using LIMIT and OFFSET.
	ListActivePaginated(ctx context.Context, offset, limit int) ([]*entity.FoodEntry, error)
	// CountActive returns the total number of active entries.
	CountActive(ctx context.Context) (int64, error)
	// Create inserts a new entry and assigns its ID.
	Create(ctx context.Context, e *entity.FoodEntry) error
	// FindActiveByID retrieves an active entry by ID.
	// Returns (nil, nil) when the ID is absent or soft-deleted.
	FindActiveByID(ctx context.Context, id int64) (*entity.FoodEntry, error)
	// Update overwrites name and calories of an active entry and refreshes
	// updated_at. Returns an error when no active row was affected.
	Update(ctx context.Context, e *entity.FoodEntry) error
	// SoftDelete marks an active entry deleted and refreshes updated_at.
	// Returns an error when no active row was affected.
	SoftDelete(ctx context.Context, id int64, deletedAt time.Time) error
}
