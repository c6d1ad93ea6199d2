// Package render turns assistant markdown (lesson outlines, role-play
// scenes) into styled terminal output.
package render

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// Renderer renders markdown at a fixed wrap width. The zero value renders
// plain text; use New to get a styled terminal renderer.
type Renderer struct {
	tr *glamour.TermRenderer
}

// New creates a Renderer wrapping at width columns. When the terminal
// renderer cannot be constructed (unusual TERM, no TTY), the Renderer falls
// back to returning the markdown unstyled rather than failing.
func New(width int) *Renderer {
	if width <= 0 {
		width = 80
	}
	tr, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return &Renderer{}
	}
	return &Renderer{tr: tr}
}

// Render renders the markdown. Falls back to the raw input on renderer
// errors; chat output should degrade, not disappear.
func (r *Renderer) Render(markdown string) string {
	if r == nil || r.tr == nil {
		return markdown
	}
	out, err := r.tr.Render(markdown)
	if err != nil {
		return markdown
	}
	return strings.TrimRight(out, "\n")
}
