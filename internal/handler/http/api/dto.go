// Package api provides the read-only JSON endpoints: a paginated entry
// listing and the rolling daily calorie summary.
package api

import (
	"time"

	"calorietracker/internal/domain/entity"
)

// EntryDTO represents the JSON structure for a food entry.
type EntryDTO struct {
	ID        int64     `json:"id" example:"1"`
	Name      string    `json:"name" example:"Apple"`
	Calories  int       `json:"calories" example:"95"`
	DateAdded string    `json:"date_added" example:"2024-05-10"`
	CreatedAt time.Time `json:"created_at" example:"2024-05-10T12:00:00Z"`
	UpdatedAt time.Time `json:"updated_at" example:"2024-05-10T12:00:00Z"`
}

func toEntryDTO(e *entity.FoodEntry) EntryDTO {
	return EntryDTO{
		ID:        e.ID,
		Name:      e.Name,
		Calories:  e.Calories,
		DateAdded: e.DateAdded.Format(time.DateOnly),
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

// DailyTotalDTO is one day of the summary response. The weekday label is
// derived from the date; the date itself is the key.
type DailyTotalDTO struct {
	Date     string `json:"date" example:"2024-05-10"`
	Weekday  string `json:"weekday" example:"Fri"`
	Calories int64  `json:"calories" example:"1850"`
}
