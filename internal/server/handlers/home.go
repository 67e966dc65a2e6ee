package handlers

import (
	_ "embed"
	"log/slog"
	"net/http"
)

//go:embed static/index.html
var indexHTML []byte

// HomeHandler отдает статическую главную страницу
type HomeHandler struct {
	logger *slog.Logger
}

// NewHomeHandler создает handler главной страницы
func NewHomeHandler(logger *slog.Logger) *HomeHandler {
	return &HomeHandler{logger: logger}
}

// Index обрабатывает GET /
func (h *HomeHandler) Index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(indexHTML); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to write index page", slog.Any("error", err))
	}
}
