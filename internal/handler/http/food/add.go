package food

import (
	"log/slog"
	"net/http"

	foodUC "calorietracker/internal/usecase/food"
)

// formPage is the template data for the add and edit forms. On a validation
// failure the submitted values are echoed back so the user can correct them
// without retyping.
type formPage struct {
	Flash    string
	Errors   []string
	Name     string
	Calories string
	EntryID  int64
}

type AddFormHandler struct {
	Logger *slog.Logger
}

// ServeHTTP renders the empty add form.
func (h AddFormHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	renderPage(w, h.Logger, http.StatusOK, "add_food.html", formPage{
		Flash: popFlash(w, r),
	})
}

type AddHandler struct {
	Svc    *foodUC.Service
	Logger *slog.Logger
}

// ServeHTTP creates a new entry from the submitted form. Validation failures
// re-render the form with every applicable message; success redirects home
// with a flash notification.
func (h AddHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	res, err := h.Svc.Add(r.Context(), r.PostFormValue("name"), r.PostFormValue("calories"))
	if err != nil {
		h.Logger.Error("add entry failed", slog.String("error", err.Error()))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if !res.OK() {
		renderPage(w, h.Logger, http.StatusOK, "add_food.html", formPage{
			Errors:   res.Errors,
			Name:     res.EchoName,
			Calories: res.EchoCalories,
		})
		return
	}

	setFlash(w, res.Flash)
	http.Redirect(w, r, "/home/", http.StatusSeeOther)
}
