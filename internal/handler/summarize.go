package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/drywaters/textsum/internal/bridge"
	"github.com/drywaters/textsum/internal/metrics"
)

// SummarizeHandler serves the JSON summarize API
type SummarizeHandler struct {
	svc          *summarizeService
	maxBodyBytes int64
}

// NewSummarizeHandler creates a new SummarizeHandler
func NewSummarizeHandler(b Bridge, readyTimeout time.Duration, maxBodyBytes int64) *SummarizeHandler {
	return &SummarizeHandler{
		svc:          &summarizeService{bridge: b, readyTimeout: readyTimeout},
		maxBodyBytes: maxBodyBytes,
	}
}

type summarizeRequest struct {
	Text *string `json:"text"`
}

type summarizeResponse struct {
	Summary string `json:"summary"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type readyResponse struct {
	State string `json:"state"`
	Error string `json:"error,omitempty"`
}

// Summarize handles POST /summarize
func (h *SummarizeHandler) Summarize(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)

	var req summarizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			metrics.RecordSummarize(metrics.OutcomeInvalid)
			http.Error(w, msgTextTooLarge, http.StatusRequestEntityTooLarge)
			return
		}
		slog.Debug("invalid summarize body", "handler", "Summarize", "error", err)
		req.Text = nil
	}

	if req.Text == nil || strings.TrimSpace(*req.Text) == "" {
		metrics.RecordSummarize(metrics.OutcomeInvalid)
		http.Error(w, msgTextRequired, http.StatusBadRequest)
		return
	}

	summary, err := h.svc.Summarize(ctx, *req.Text)
	if err != nil {
		code, msg := StatusFor(err)
		slog.Error("summarize request failed",
			"handler", "Summarize",
			"request_id", chimw.GetReqID(ctx),
			"status", code,
			"error", err)
		writeJSON(w, code, errorResponse{Error: msg})
		return
	}

	writeJSON(w, http.StatusOK, summarizeResponse{Summary: summary})
}

// Ready handles GET /ready
func (h *SummarizeHandler) Ready(w http.ResponseWriter, r *http.Request) {
	state := h.svc.bridge.State()
	resp := readyResponse{State: state.String()}

	if h.svc.bridge.Err() != nil {
		resp.Error = "summarizer failed to load"
	}

	code := http.StatusOK
	if state != bridge.StateReady {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, resp)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode JSON response", "status", code, "error", err)
	}
}
