// Package markdown renders review text for terminals.
package markdown

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

const (
	defaultWidth = 80
	minWidth     = 40
)

// Renderer converts markdown to styled ANSI output at a fixed wrap width.
type Renderer struct {
	renderer *glamour.TermRenderer
	width    int
	style    string
}

// NewRenderer creates a renderer. An empty style picks one from the terminal
// background; "notty" produces plain text.
func NewRenderer(width int, style string) *Renderer {
	r := &Renderer{style: style}
	r.SetWidth(width)
	return r
}

func (r *Renderer) options(width int) []glamour.TermRendererOption {
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width - 4)}
	if r.style == "" {
		return append(opts, glamour.WithAutoStyle())
	}
	return append(opts, glamour.WithStandardStyle(r.style))
}

// SetWidth recreates the renderer for a new terminal width.
func (r *Renderer) SetWidth(width int) {
	switch {
	case width <= 0:
		width = defaultWidth
	case width < minWidth:
		width = minWidth
	}
	if width == r.width && r.renderer != nil {
		return
	}
	tr, err := glamour.NewTermRenderer(r.options(width)...)
	if err != nil {
		return
	}
	r.width = width
	r.renderer = tr
}

// Width is the current wrap width.
func (r *Renderer) Width() int { return r.width }

// Render returns md styled for the terminal. The input is returned unchanged
// when rendering fails, so review text is never lost.
func (r *Renderer) Render(md string) string {
	if r.renderer == nil {
		return md
	}
	out, err := r.renderer.Render(md)
	if err != nil {
		return md
	}
	return strings.Trim(out, "\n")
}
