package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/drywaters/textsum/internal/client"
	"github.com/drywaters/textsum/internal/ui"
)

// PageHandler serves the browser UI
type PageHandler struct {
	api          client.Summarizer
	maxBodyBytes int64
}

// NewPageHandler creates a new PageHandler
func NewPageHandler(b Bridge, readyTimeout time.Duration, maxBodyBytes int64) *PageHandler {
	return &PageHandler{
		api:          statusTransport{svc: &summarizeService{bridge: b, readyTimeout: readyTimeout}},
		maxBodyBytes: maxBodyBytes,
	}
}

// Page renders the empty summarize page
func (h *PageHandler) Page(w http.ResponseWriter, r *http.Request) {
	data := ui.PageData{View: client.Select(client.State{})}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := ui.Page(data).Render(r.Context(), w); err != nil {
		// Log only - response may already be partially written, can't send clean http.Error
		slog.Error("failed to render page", "handler", "Page", "error", err)
	}
}

// Submit runs one submission through a fresh controller and renders the
// resulting view. htmx requests get only the result panel.
func (h *PageHandler) Submit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)

	if err := r.ParseForm(); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, msgTextTooLarge, http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}
	text := r.FormValue("text")

	c := client.New(h.api)
	c.UpdateInput(text)
	c.Submit(ctx)

	data := ui.PageData{Input: text, View: c.View()}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	var err error
	if r.Header.Get("HX-Request") == "true" {
		err = ui.ResultPanel(data.View).Render(ctx, w)
	} else {
		err = ui.Page(data).Render(ctx, w)
	}
	if err != nil {
		slog.Error("failed to render page", "handler", "Submit", "error", err)
	}
}
