// Package entity defines the core domain entities and validation logic for the
// application. It contains the FoodEntry business object along with its
// validation rules and domain-specific errors.
package entity

import "time"

// Limits enforced on food entry input before persistence.
const (
	// MaxNameLength is the maximum length of a food name after trimming.
	MaxNameLength = 200

	// MaxCalories is the maximum calorie value for a single entry.
	MaxCalories = 999999
)

// FoodEntry represents a single logged food item.
// Entries are never physically removed; IsDeleted marks them inactive and
// every repository read excludes inactive rows.
type FoodEntry struct {
	ID        int64
	Name      string
	Calories  int
	DateAdded time.Time // calendar date, no time component
	CreatedAt time.Time
	UpdatedAt time.Time
	IsDeleted bool
}

// DateOf truncates t to its calendar date in t's location.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
