package food

import (
	"log/slog"
	"net/http"
	"time"

	"calorietracker/internal/domain/entity"
	foodUC "calorietracker/internal/usecase/food"
)

type HomeHandler struct {
	Svc    *foodUC.Service
	Logger *slog.Logger
}

// weekdayTotal is one column of the weekly bar on the home page. The summary
// is keyed by date; the weekday label is formatted here at the presentation
// boundary only.
type weekdayTotal struct {
	Label    string
	Date     time.Time
	Calories int64
}

type homePage struct {
	Flash         string
	Today         time.Time
	Entries       []*entity.FoodEntry
	TotalCalories int64
	ItemCount     int
	Weekly        []weekdayTotal
}

// ServeHTTP renders the home page: today's entries and total plus the rolling
// weekly summary.
func (h HomeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	view, err := h.Svc.Home(r.Context())
	if err != nil {
		h.Logger.Error("home view failed", slog.String("error", err.Error()))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	page := homePage{
		Flash:         popFlash(w, r),
		Today:         view.Today,
		Entries:       view.Entries,
		TotalCalories: view.TotalCalories,
		ItemCount:     view.ItemCount,
		Weekly:        make([]weekdayTotal, 0, len(view.Weekly)),
	}
	for _, day := range view.Weekly {
		page.Weekly = append(page.Weekly, weekdayTotal{
			Label:    day.Date.Format("Mon"),
			Date:     day.Date,
			Calories: day.Calories,
		})
	}

	renderPage(w, h.Logger, http.StatusOK, "index.html", page)
}
