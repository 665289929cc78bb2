package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drywaters/textsum/internal/bridge"
	"github.com/drywaters/textsum/internal/client"
	"github.com/drywaters/textsum/internal/summarizer"
)

func postPage(h *PageHandler, text string, htmx bool) *httptest.ResponseRecorder {
	form := url.Values{"text": {text}}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if htmx {
		req.Header.Set("HX-Request", "true")
	}
	rec := httptest.NewRecorder()
	h.Submit(rec, req)
	return rec
}

func TestPageRendersPlaceholder(t *testing.T) {
	h := NewPageHandler(readyBridge(t, &mockSummarizer{summary: "x"}), time.Second, 1<<20)

	rec := httptest.NewRecorder()
	h.Page(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	body := rec.Body.String()
	assert.Contains(t, body, "<!doctype html>")
	assert.Contains(t, body, client.Placeholder)
	assert.Contains(t, body, `data-view="placeholder"`)
}

func TestPageSubmit(t *testing.T) {
	tests := []struct {
		name      string
		load      bridge.LoadFunc
		text      string
		htmx      bool
		wantView  string
		wantText  string
		wantCalls int32
		fullPage  bool
	}{
		{
			name:      "htmx success renders summary panel",
			text:      "Hello world",
			htmx:      true,
			wantView:  `data-view="summary"`,
			wantText:  "<strong>Short</strong>",
			wantCalls: 1,
		},
		{
			name:      "plain form post renders full page",
			text:      "Hello world",
			wantView:  `data-view="summary"`,
			wantText:  "<strong>Short</strong>",
			wantCalls: 1,
			fullPage:  true,
		},
		{
			name:      "blank input stays on placeholder",
			text:      "   ",
			htmx:      true,
			wantView:  `data-view="placeholder"`,
			wantText:  client.Placeholder,
			wantCalls: 0,
		},
		{
			name: "load failure renders error panel",
			load: func(context.Context) (summarizer.Summarizer, error) {
				return nil, errors.New("missing key")
			},
			text:     "Hello world",
			htmx:     true,
			wantView: `data-view="error"`,
			wantText: client.MsgUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &mockSummarizer{summary: "**Short**"}
			load := tt.load
			if load == nil {
				load = func(context.Context) (summarizer.Summarizer, error) { return m, nil }
			}
			b := bridge.New(load, bridge.PolicyFailFast)
			h := NewPageHandler(b, time.Second, 1<<20)

			rec := postPage(h, tt.text, tt.htmx)

			require.Equal(t, http.StatusOK, rec.Code)
			body := rec.Body.String()
			assert.Contains(t, body, tt.wantView)
			assert.Contains(t, body, tt.wantText)
			assert.Equal(t, tt.fullPage, strings.Contains(body, "<!doctype html>"))
			assert.Equal(t, tt.wantCalls, m.calls.Load())
		})
	}
}

func TestPageSubmitCapabilityFailure(t *testing.T) {
	m := &mockSummarizer{err: errors.New("boom")}
	h := NewPageHandler(readyBridge(t, m), time.Second, 1<<20)

	rec := postPage(h, "Hello", true)

	body := rec.Body.String()
	assert.Contains(t, body, `data-view="error"`)
	assert.Contains(t, body, "panel-error")
	assert.Contains(t, body, client.MsgFailed)
	assert.NotContains(t, body, "boom")
}

func TestPageSubmitTooLarge(t *testing.T) {
	m := &mockSummarizer{summary: "never"}
	h := NewPageHandler(readyBridge(t, m), time.Second, 16)

	rec := postPage(h, strings.Repeat("a", 100), true)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Equal(t, "Text is too large.", strings.TrimSpace(rec.Body.String()))
	assert.Equal(t, int32(0), m.calls.Load())
}
