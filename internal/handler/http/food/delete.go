package food

import (
	"errors"
	"log/slog"
	"net/http"

	"calorietracker/internal/handler/http/pathutil"
	foodUC "calorietracker/internal/usecase/food"
)

type DeleteHandler struct {
	Svc    *foodUC.Service
	Logger *slog.Logger
}

// ServeHTTP soft-deletes an active entry and redirects home. Deleting an
// already-deleted entry yields 404 because the row is no longer active.
func (h DeleteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ExtractID(r.URL.Path, "/delete/")
	if err != nil {
		http.NotFound(w, r)
		return
	}

	res, err := h.Svc.Delete(r.Context(), id)
	if err != nil {
		if errors.Is(err, foodUC.ErrEntryNotFound) || errors.Is(err, foodUC.ErrInvalidEntryID) {
			http.NotFound(w, r)
			return
		}
		h.Logger.Error("delete entry failed", slog.Int64("id", id), slog.String("error", err.Error()))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	setFlash(w, res.Flash)
	http.Redirect(w, r, "/home/", http.StatusSeeOther)
}
