package api

import (
	"log/slog"
	"net/http"

	"calorietracker/internal/common/pagination"
	foodUC "calorietracker/internal/usecase/food"
)

// Register registers the JSON endpoints with the given mux.
func Register(mux *http.ServeMux, svc *foodUC.Service, paginationCfg pagination.Config, logger *slog.Logger) {
	mux.Handle("GET /api/entries", EntriesHandler{
		Svc:           svc,
		PaginationCfg: paginationCfg,
		Logger:        logger,
	})
	mux.Handle("GET /api/summary", SummaryHandler{Svc: svc, Logger: logger})
}
