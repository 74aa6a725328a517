// Package render converts slide captions and question echoes from Markdown
// into display markup.
package render

import (
	"context"
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/russross/blackfriday/v2"

	"github.com/mhpenta/slidegen"
)

const markdownExtensions = blackfriday.CommonExtensions |
	blackfriday.HardLineBreak |
	blackfriday.NoEmptyLineBeforeBlock

// HTML renders Markdown to sanitized HTML. Model output is untrusted, so raw
// HTML in captions is stripped to the user-generated-content subset.
type HTML struct {
	policy *bluemonday.Policy
}

var _ slidegen.Renderer = (*HTML)(nil)

// NewHTML creates an HTML renderer with bluemonday's UGC policy.
func NewHTML() *HTML {
	return &HTML{policy: bluemonday.UGCPolicy()}
}

// Render converts text to sanitized HTML.
func (h *HTML) Render(ctx context.Context, text string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	out := blackfriday.Run([]byte(text), blackfriday.WithExtensions(markdownExtensions))
	return strings.TrimSpace(string(h.policy.SanitizeBytes(out))), nil
}

// Markup renders text for direct use in an html/template. Render errors fall
// back to the escaped source text.
func (h *HTML) Markup(ctx context.Context, text string) template.HTML {
	out, err := h.Render(ctx, text)
	if err != nil {
		return template.HTML(template.HTMLEscapeString(text))
	}
	return template.HTML(out)
}

// Sanitize makes already rendered markup safe for an html/template.
func (h *HTML) Sanitize(markup string) template.HTML {
	return template.HTML(h.policy.Sanitize(markup))
}
