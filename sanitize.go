package slidegen

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// SanitizeRule removes one kind of boilerplate from model text.
type SanitizeRule struct {
	Name        string
	Pattern     *regexp.Regexp
	Replacement string
}

// Apply runs the rule once over text.
func (r SanitizeRule) Apply(text string) string {
	return r.Pattern.ReplaceAllString(text, r.Replacement)
}

// SanitizeRules are applied in order on every pass of Sanitize.
var SanitizeRules = []SanitizeRule{
	{Name: "image-generation-enabled", Pattern: regexp.MustCompile(`(?i)^Image Generation: enabled\.\s*`)},
	{Name: "image-generation-is-enabled", Pattern: regexp.MustCompile(`(?i)^Image generation is enabled\.\s*`)},
	{Name: "image-generation-colon-enabled", Pattern: regexp.MustCompile(`(?i)^Image generation:\s*enabled\.\s*`)},
	{Name: "system-prefix", Pattern: regexp.MustCompile(`(?i)^System:\s*`)},
	{Name: "assistant-prefix", Pattern: regexp.MustCompile(`(?i)^Assistant:\s*`)},
	{Name: "ai-prefix", Pattern: regexp.MustCompile(`(?i)^AI:\s*`)},
	{Name: "bot-prefix", Pattern: regexp.MustCompile(`(?i)^Bot:\s*`)},
	{Name: "model-prefix", Pattern: regexp.MustCompile(`(?i)^Model:\s*`)},
	{Name: "bold-system-prefix", Pattern: regexp.MustCompile(`(?i)^\*\*System\*\*:\s*`)},
	{Name: "bold-assistant-prefix", Pattern: regexp.MustCompile(`(?i)^\*\*Assistant\*\*:\s*`)},
	{Name: "separator", Pattern: regexp.MustCompile(`(?m)^---\s*`)},
}

// maxSanitizePasses bounds the fixpoint loop; every pass that changes the
// text makes it strictly shorter, so this is never reached in practice.
const maxSanitizePasses = 32

// noiseText matches residue made only of punctuation and whitespace.
var noiseText = regexp.MustCompile(`^[.,!?;:\s]*$`)

// maxNoiseRunes is the longest punctuation-only residue dropped as noise.
// An ellipsis on its own is noise.
const maxNoiseRunes = 3

// Sanitize strips role prefixes, image-generation preambles and separators
// from model text. It returns "" when nothing meaningful is left.
func Sanitize(raw string) string {
	text := raw
	for range maxSanitizePasses {
		next := sanitizePass(text)
		if next == text {
			break
		}
		text = next
	}

	if text == "" {
		return ""
	}
	if utf8.RuneCountInString(text) <= maxNoiseRunes && noiseText.MatchString(text) {
		return ""
	}
	return text
}

func sanitizePass(text string) string {
	for _, rule := range SanitizeRules {
		text = rule.Apply(text)
	}
	return strings.TrimSpace(text)
}
