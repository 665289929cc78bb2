// Package markdown renders model output to HTML for the web UI.
package markdown

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Raw HTML in the source is dropped by goldmark unless html.WithUnsafe is
// set, so output is safe to embed.
var md = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
)

// ToHTML converts markdown to HTML
func ToHTML(src string) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return buf.String(), nil
}
