package brandkit

import (
	"bytes"
	"fmt"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// markdownRenderer converts markdown-bearing campaign copy (section bodies,
// notes) to HTML fragments for the static engine.
type markdownRenderer struct {
	md goldmark.Markdown
}

// newMarkdownRenderer creates a renderer with GFM extensions and syntax
// highlighting for fenced code in developer-facing campaign notes.
func newMarkdownRenderer() *markdownRenderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM, // Tables, strikethrough, autolinks, task lists
			highlighting.NewHighlighting(
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true), // CSS classes so the stylesheet stays external
				),
			),
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(), // Treat newlines as <br>
			html.WithXHTML(),     // Self-closing tags
			// WithUnsafe() intentionally not used: campaign copy is
			// caller-supplied text, not trusted markup.
		),
	)
	return &markdownRenderer{md: md}
}

// Fragment converts markdown to an HTML fragment (no document wrapper).
func (r *markdownRenderer) Fragment(content string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(content), &buf); err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return buf.String(), nil
}
