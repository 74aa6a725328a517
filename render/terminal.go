package render

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/mhpenta/slidegen"
)

// DefaultWordWrap is the column terminal output wraps at.
const DefaultWordWrap = 80

// Terminal renders Markdown to styled terminal output.
type Terminal struct {
	renderer *glamour.TermRenderer
}

var _ slidegen.Renderer = (*Terminal)(nil)

// NewTerminal creates a terminal renderer. style is a glamour standard style
// ("dark", "light", "notty", ...); empty selects "notty", which emits no
// escape sequences.
func NewTerminal(style string, wordWrap int) (*Terminal, error) {
	if style == "" {
		style = "notty"
	}
	if wordWrap <= 0 {
		wordWrap = DefaultWordWrap
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(wordWrap),
	)
	if err != nil {
		return nil, fmt.Errorf("creating terminal renderer: %w", err)
	}
	return &Terminal{renderer: r}, nil
}

// Render converts text to terminal output.
func (t *Terminal) Render(ctx context.Context, text string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	out, err := t.renderer.Render(text)
	if err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return strings.Trim(out, "\n"), nil
}
