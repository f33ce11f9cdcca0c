package api

import (
	"log/slog"
	"net/http"
	"time"

	"calorietracker/internal/common/pagination"
	"calorietracker/internal/handler/http/requestid"
	"calorietracker/internal/handler/http/respond"
	"calorietracker/internal/observability/logging"
	foodUC "calorietracker/internal/usecase/food"
)

type EntriesHandler struct {
	Svc           *foodUC.Service
	PaginationCfg pagination.Config
	Logger        *slog.Logger
}

// ServeHTTP lists active entries across all dates with pagination.
func (h EntriesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	startTime := time.Now()

	reqID := requestid.FromContext(ctx)
	logger := logging.WithRequestID(ctx, h.Logger)

	params, err := pagination.ParseQueryParams(r, h.PaginationCfg)
	if err != nil {
		logger.Warn("Invalid pagination parameters",
			"error", err.Error(),
			"request_id", reqID)
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	entries, meta, err := h.Svc.ListPaginated(ctx, params)
	if err != nil {
		logger.Error("Failed to list entries",
			"error", err.Error(),
			"page", params.Page,
			"limit", params.Limit,
			"request_id", reqID)
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	dtos := make([]EntryDTO, 0, len(entries))
	for _, e := range entries {
		dtos = append(dtos, toEntryDTO(e))
	}

	logger.Info("Paginated entry list response",
		"page", params.Page,
		"limit", params.Limit,
		"returned_count", len(dtos),
		"duration_ms", time.Since(startTime).Milliseconds(),
		"request_id", reqID)

	respond.JSON(w, http.StatusOK, pagination.NewResponse(dtos, meta))
}
