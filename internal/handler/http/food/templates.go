// Package food serves the server-rendered pages for logging food entries:
// the daily home view, the add form, the edit form, and the delete action.
// Mutations redirect back to the home page with a one-shot flash message.
package food

import (
	"bytes"
	"embed"
	"html/template"
	"log/slog"
	"net/http"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// renderPage executes the named template into a buffer first so a render
// failure produces a clean 500 instead of a half-written page.
func renderPage(w http.ResponseWriter, logger *slog.Logger, status int, name string, data any) {
	var buf bytes.Buffer
	if err := pages.ExecuteTemplate(&buf, name, data); err != nil {
		if logger != nil {
			logger.Error("template render failed",
				slog.String("template", name),
				slog.String("error", err.Error()))
		}
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
