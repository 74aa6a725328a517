package slidegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeRules(t *testing.T) {
	inputs := map[string]string{
		"image-generation-enabled":       "Image Generation: enabled. Robotlar uyandı.",
		"image-generation-is-enabled":    "image generation is enabled.   Robotlar uyandı.",
		"image-generation-colon-enabled": "Image generation:   ENABLED.\nRobotlar uyandı.",
		"system-prefix":                  "System: Robotlar uyandı.",
		"assistant-prefix":               "assistant:Robotlar uyandı.",
		"ai-prefix":                      "AI:  Robotlar uyandı.",
		"bot-prefix":                     "Bot: Robotlar uyandı.",
		"model-prefix":                   "MODEL: Robotlar uyandı.",
		"bold-system-prefix":             "**System**: Robotlar uyandı.",
		"bold-assistant-prefix":          "**Assistant**: Robotlar uyandı.",
		"separator":                      "---\nRobotlar uyandı.",
	}
	require.Len(t, inputs, len(SanitizeRules), "every rule needs a case")

	for _, rule := range SanitizeRules {
		t.Run(rule.Name, func(t *testing.T) {
			input, ok := inputs[rule.Name]
			require.True(t, ok)

			assert.NotEqual(t, input, rule.Apply(input), "rule must match its case")
			assert.Equal(t, "Robotlar uyandı.", Sanitize(input))
		})
	}
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"role prefix", "System: Hello", "Hello"},
		{"blank", "   ", ""},
		{"empty", "", ""},
		{"ellipsis", "...", ""},
		{"short punctuation", " !?\n", ""},
		{"short word kept", "Ok", "Ok"},
		{"long punctuation kept", "....", "...."},
		{"stacked prefixes", "Assistant: System: Merhaba", "Merhaba"},
		{"prefix only", "Model:", ""},
		{"separators inside text", "Bir\n---\nİki", "Bir\nİki"},
		{"prefix not at start", "Dedi ki System: selam", "Dedi ki System: selam"},
		{"surrounding blank lines", "\n\n  Robot  \n\n", "Robot"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sanitize(tt.in))
		})
	}
}

func TestSanitizeIdempotent(t *testing.T) {
	inputs := []string{
		"System: Hello",
		"Assistant: ---\nModel: AI: Bot: metin",
		"**System**:   **Assistant**: iç içe",
		"---\n---\n",
		"Image Generation: enabled. System: ..",
		"  düz metin  ",
	}

	for _, in := range inputs {
		once := Sanitize(in)
		assert.Equal(t, once, Sanitize(once), "input %q", in)
	}
}
