package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/drywaters/textsum/internal/bridge"
	"github.com/drywaters/textsum/internal/client"
	"github.com/drywaters/textsum/internal/metrics"
	"github.com/drywaters/textsum/internal/summarizer"
)

// Public error messages
const (
	msgTextRequired = "Text is required."
	msgTextTooLarge = "Text is too large."
	msgNotReady     = "Summarizer is not ready."
	msgUnavailable  = "Summarizer is unavailable."
	msgFailed       = "Summarization failed."
)

// Bridge is the readiness-gated summarizer
type Bridge interface {
	Wait(ctx context.Context) (summarizer.Summarizer, error)
	Summarize(ctx context.Context, text string) (string, error)
	State() bridge.State
	Err() error
}

// StatusFor maps a bridge error to an HTTP status and a public message
func StatusFor(err error) (int, string) {
	var loadErr *bridge.LoadError
	if errors.As(err, &loadErr) && loadErr.Permanent {
		return http.StatusServiceUnavailable, msgUnavailable
	}
	if errors.Is(err, bridge.ErrNotReady) {
		return http.StatusServiceUnavailable, msgNotReady
	}
	return http.StatusInternalServerError, msgFailed
}

// summarizeService waits a bounded time for readiness, then calls the
// capability without any deadline of its own.
type summarizeService struct {
	bridge       Bridge
	readyTimeout time.Duration
}

func (s *summarizeService) Summarize(ctx context.Context, text string) (string, error) {
	waitCtx, cancel := context.WithTimeout(ctx, s.readyTimeout)
	_, err := s.bridge.Wait(waitCtx)
	cancel()
	if err != nil {
		metrics.RecordSummarize(metrics.OutcomeNotReady)
		return "", err
	}

	start := time.Now()
	summary, err := s.bridge.Summarize(ctx, text)
	metrics.ObserveSummarizeDuration(time.Since(start))
	if err != nil {
		if errors.Is(err, bridge.ErrNotReady) {
			metrics.RecordSummarize(metrics.OutcomeNotReady)
		} else {
			metrics.RecordSummarize(metrics.OutcomeFailed)
		}
		return "", err
	}

	metrics.RecordSummarize(metrics.OutcomeOK)
	return summary, nil
}

// statusTransport lets the in-process controller see the same status
// codes a remote client would.
type statusTransport struct {
	svc *summarizeService
}

func (t statusTransport) Summarize(ctx context.Context, text string) (string, error) {
	summary, err := t.svc.Summarize(ctx, text)
	if err != nil {
		code, msg := StatusFor(err)
		return "", &client.StatusError{Code: code, Message: msg}
	}
	return summary, nil
}
