package food

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"calorietracker/internal/handler/http/pathutil"
	foodUC "calorietracker/internal/usecase/food"
)

type EditFormHandler struct {
	Svc    *foodUC.Service
	Logger *slog.Logger
}

// ServeHTTP renders the edit form pre-filled with the entry's current values.
// An ID that does not resolve to an active entry yields 404.
func (h EditFormHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ExtractID(r.URL.Path, "/edit/")
	if err != nil {
		http.NotFound(w, r)
		return
	}

	e, err := h.Svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, foodUC.ErrEntryNotFound) || errors.Is(err, foodUC.ErrInvalidEntryID) {
			http.NotFound(w, r)
			return
		}
		h.Logger.Error("load entry failed", slog.Int64("id", id), slog.String("error", err.Error()))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	renderPage(w, h.Logger, http.StatusOK, "edit_food.html", formPage{
		Flash:    popFlash(w, r),
		Name:     e.Name,
		Calories: strconv.Itoa(e.Calories),
		EntryID:  e.ID,
	})
}

type EditHandler struct {
	Svc    *foodUC.Service
	Logger *slog.Logger
}

// ServeHTTP updates an active entry from the submitted form. A missing or
// soft-deleted entry is a 404, distinct from validation failures, which
// re-render the form with the messages and echoed input.
func (h EditHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ExtractID(r.URL.Path, "/edit/")
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	res, err := h.Svc.Edit(r.Context(), id, r.PostFormValue("name"), r.PostFormValue("calories"))
	if err != nil {
		if errors.Is(err, foodUC.ErrEntryNotFound) || errors.Is(err, foodUC.ErrInvalidEntryID) {
			http.NotFound(w, r)
			return
		}
		h.Logger.Error("edit entry failed", slog.Int64("id", id), slog.String("error", err.Error()))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if !res.OK() {
		renderPage(w, h.Logger, http.StatusOK, "edit_food.html", formPage{
			Errors:   res.Errors,
			Name:     res.EchoName,
			Calories: res.EchoCalories,
			EntryID:  res.Entry.ID,
		})
		return
	}

	setFlash(w, res.Flash)
	http.Redirect(w, r, "/home/", http.StatusSeeOther)
}
