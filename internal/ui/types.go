package ui

import (
	"log/slog"

	"github.com/a-h/templ"

	"github.com/drywaters/textsum/internal/client"
	"github.com/drywaters/textsum/internal/markdown"
)

// PageData is everything the summarize page renders
type PageData struct {
	Input string
	View  client.View
}

// panelClass picks the surface style for a view
func panelClass(kind client.ViewKind) string {
	switch kind {
	case client.ViewError:
		return "panel panel-error"
	case client.ViewSummary:
		return "panel panel-summary prose"
	case client.ViewLoading:
		return "panel panel-loading"
	default:
		return "panel panel-placeholder"
	}
}

// summaryHTML renders a summary as markdown, falling back to escaped text
func summaryHTML(text string) string {
	html, err := markdown.ToHTML(text)
	if err != nil {
		slog.Warn("falling back to plain summary", "error", err)
		return "<p>" + templ.EscapeString(text) + "</p>"
	}
	return html
}
