package food

import (
	"log/slog"
	"net/http"

	foodUC "calorietracker/internal/usecase/food"
)

// Register registers the page handlers with the given mux. The root path
// redirects to the home page; edit and delete match by path prefix so the
// handlers can extract the entry ID themselves.
func Register(mux *http.ServeMux, svc *foodUC.Service, logger *slog.Logger) {
	mux.Handle("GET /{$}", http.RedirectHandler("/home/", http.StatusMovedPermanently))
	mux.Handle("GET /home/", HomeHandler{Svc: svc, Logger: logger})

	mux.Handle("GET /add/", AddFormHandler{Logger: logger})
	mux.Handle("POST /add/", AddHandler{Svc: svc, Logger: logger})

	mux.Handle("GET /edit/", EditFormHandler{Svc: svc, Logger: logger})
	mux.Handle("POST /edit/", EditHandler{Svc: svc, Logger: logger})

	mux.Handle("POST /delete/", DeleteHandler{Svc: svc, Logger: logger})
}
