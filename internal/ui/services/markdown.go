package services

import (
	"sync"

	"github.com/charmbracelet/glamour"
)

// MarkdownRenderer renders markdown for the terminal.
type MarkdownRenderer interface {
	Render(content string, width int) (string, error)
}

// GlamourRenderer renders markdown with glamour, caching one renderer per width.
type GlamourRenderer struct {
	mu        sync.Mutex
	width     int
	renderer  *glamour.TermRenderer
	styleName string
}

// NewGlamourRenderer creates a renderer using the dark standard style.
// The style is fixed because auto detection queries the terminal, which the
// running program owns.
func NewGlamourRenderer() *GlamourRenderer {
	return &GlamourRenderer{styleName: "dark"}
}

func (g *GlamourRenderer) Render(content string, width int) (string, error) {
	r, err := g.ensure(width)
	if err != nil {
		return "", err
	}
	return r.Render(content)
}

func (g *GlamourRenderer) ensure(width int) (*glamour.TermRenderer, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.renderer != nil && g.width == width {
		return g.renderer, nil
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(g.styleName),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	g.renderer = r
	g.width = width
	return r, nil
}

// RenderMarkdown renders content, falling back to the raw text on error.
func RenderMarkdown(content string, width int, renderer MarkdownRenderer) string {
	if renderer == nil {
		return content
	}
	out, err := renderer.Render(content, width)
	if err != nil {
		return content
	}
	return out
}
