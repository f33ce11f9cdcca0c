package api

import (
	"log/slog"
	"net/http"
	"time"

	"calorietracker/internal/handler/http/respond"
	"calorietracker/internal/observability/logging"
	foodUC "calorietracker/internal/usecase/food"
)

type SummaryHandler struct {
	Svc    *foodUC.Service
	Logger *slog.Logger
}

// ServeHTTP returns the rolling daily calorie totals, oldest first. The last
// element is today.
func (h SummaryHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.WithRequestID(ctx, h.Logger)

	weekly, err := h.Svc.WeeklySummary(ctx)
	if err != nil {
		logger.Error("Failed to build summary", "error", err.Error())
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	dtos := make([]DailyTotalDTO, 0, len(weekly))
	for _, day := range weekly {
		dtos = append(dtos, DailyTotalDTO{
			Date:     day.Date.Format(time.DateOnly),
			Weekday:  day.Date.Format("Mon"),
			Calories: day.Calories,
		})
	}

	respond.JSON(w, http.StatusOK, struct {
		Days []DailyTotalDTO `json:"days"`
	}{Days: dtos})
}
