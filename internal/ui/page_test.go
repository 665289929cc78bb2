package ui

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/a-h/templ"

	"github.com/drywaters/textsum/internal/client"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	if err := c.Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	return buf.String()
}

func TestResultPanel(t *testing.T) {
	tests := []struct {
		name     string
		view     client.View
		contains []string
		excludes []string
	}{
		{
			name:     "placeholder",
			view:     client.Select(client.State{}),
			contains: []string{`data-view="placeholder"`, client.Placeholder, "panel-placeholder"},
		},
		{
			name:     "loading",
			view:     client.Select(client.State{Phase: client.PhaseSubmitting}),
			contains: []string{`data-view="loading"`, "Summarizing..."},
		},
		{
			name:     "summary renders markdown",
			view:     client.Select(client.State{Phase: client.PhaseSucceeded, Outcome: "# Title\n\n**S**"}),
			contains: []string{`data-view="summary"`, "<h1>Title</h1>", "<strong>S</strong>"},
			excludes: []string{"panel-error"},
		},
		{
			name:     "summary drops raw html",
			view:     client.Select(client.State{Phase: client.PhaseSucceeded, Outcome: "Hi <script>alert(1)</script>"}),
			contains: []string{`data-view="summary"`, "Hi"},
			excludes: []string{"<script>alert(1)"},
		},
		{
			name:     "error is escaped plain text",
			view:     client.Select(client.State{Phase: client.PhaseFailed, Outcome: "Bad <b>thing</b>"}),
			contains: []string{`data-view="error"`, "panel-error", "Bad &lt;b&gt;thing&lt;/b&gt;"},
			excludes: []string{"<b>thing</b>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := render(t, ResultPanel(tt.view))
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("ResultPanel() = %q, want it to contain %q", got, want)
				}
			}
			for _, bad := range tt.excludes {
				if strings.Contains(got, bad) {
					t.Errorf("ResultPanel() = %q, must not contain %q", got, bad)
				}
			}
		})
	}
}

func TestPage(t *testing.T) {
	state := client.State{Input: "<hello>", Phase: client.PhaseSucceeded, Outcome: "A test."}
	got := render(t, Page(PageData{Input: state.Input, View: client.Select(state)}))

	for _, want := range []string{"<!doctype html>", "&lt;hello&gt;</textarea>", "<p>A test.</p>", `<button type="submit">`} {
		if !strings.Contains(got, want) {
			t.Errorf("Page() missing %q", want)
		}
	}
}

func TestInputFormDisabled(t *testing.T) {
	got := render(t, InputForm("", client.Select(client.State{})))
	if !strings.Contains(got, `<button type="submit" disabled>`) {
		t.Errorf("InputForm() with blank input should disable submit, got %q", got)
	}
}
