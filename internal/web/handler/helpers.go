package handler

import (
	"log/slog"
	"net/http"

	"github.com/gobrains/brains/internal/web/middleware"
	"github.com/gobrains/brains/internal/web/view"
)

// pageData assembles the layout data every page shares
func pageData(r *http.Request, title string) view.PageData {
	return view.PageData{
		Title: title,
		User:  middleware.GetUser(r.Context()),
		Flash: middleware.GetFlash(r.Context()),
	}
}

// render writes a page, falling back to a plain 500 if the template fails
func render(w http.ResponseWriter, r *http.Request, renderer *view.Renderer, logger *slog.Logger, page string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := renderer.Render(w, page, data); err != nil {
		logger.Error("template render failed",
			slog.String("page", page),
			slog.String("error", err.Error()),
		)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}
