package slidegen

import (
	"time"
)

// Model represents a specific chat model.
type Model string

// String returns the model identifier.
func (m Model) String() string {
	return string(m)
}

const (
	// ModelFlashImagePreview is Gemini 2.0 Flash with image generation (default)
	ModelFlashImagePreview Model = "flash-image-preview"

	// ModelFlashImage is Gemini 2.5 Flash Image
	ModelFlashImage Model = "flash-image"
)

// Modality is a kind of output the model may produce.
type Modality string

const (
	ModalityText  Modality = "TEXT"
	ModalityImage Modality = "IMAGE"
)

// SafetyCategory represents a content safety category.
type SafetyCategory string

const (
	SafetyCategoryHarassment       SafetyCategory = "HARM_CATEGORY_HARASSMENT"
	SafetyCategoryHateSpeech       SafetyCategory = "HARM_CATEGORY_HATE_SPEECH"
	SafetyCategorySexuallyExplicit SafetyCategory = "HARM_CATEGORY_SEXUALLY_EXPLICIT"
	SafetyCategoryDangerousContent SafetyCategory = "HARM_CATEGORY_DANGEROUS_CONTENT"
)

// SafetyThreshold represents the blocking threshold for safety filters.
type SafetyThreshold string

const (
	SafetyThresholdBlockNone      SafetyThreshold = "BLOCK_NONE"
	SafetyThresholdBlockLowAndUp  SafetyThreshold = "BLOCK_LOW_AND_ABOVE"
	SafetyThresholdBlockMedAndUp  SafetyThreshold = "BLOCK_MEDIUM_AND_ABOVE"
	SafetyThresholdBlockHighAndUp SafetyThreshold = "BLOCK_ONLY_HIGH"
)

// SafetySetting configures content filtering for a specific category.
type SafetySetting struct {
	Category  SafetyCategory
	Threshold SafetyThreshold
}

// DefaultInstructions is appended to every question before it is sent. It
// sets the storytelling style, the illustration style and the language.
const DefaultInstructions = `
Use a fun story about lots of robots as a metaphor.
Keep sentences short but conversational, casual, and engaging.
Generate a cute, minimal illustration for each sentence with black ink on white background.
No commentary, just begin your explanation.
Keep going until you're done.
Tüm anlatım Türkçe olacak, başka dil kullanılmayacak.
Açıklama tamamlanana kadar kesintisiz devam et.
Bu açıklama, mizah anlayışı olan meraklı gençlere ve yetişkinlere yönelik.`

// GenerateConfig holds configuration options for a chat.
type GenerateConfig struct {
	// Model to use (if empty, the provider's default is used)
	Model Model

	// Modalities requested from the model
	Modalities []Modality

	// Temperature controls randomness (nil keeps the model default)
	Temperature *float32

	// SafetySettings for content filtering
	SafetySettings []SafetySetting

	// WaitOnRateLimit, if true, causes the Session to wait when rate limited.
	// If false, a RateLimitError is returned immediately.
	WaitOnRateLimit bool

	// MaxWaitDuration is the maximum time to wait when WaitOnRateLimit is true.
	// Zero means no limit.
	MaxWaitDuration time.Duration
}

// WithModel returns a copy of the config with the specified model.
func (c *GenerateConfig) WithModel(model Model) *GenerateConfig {
	if c == nil {
		cfg := DefaultConfig()
		cfg.Model = model
		return cfg
	}
	cX := *c
	cX.Model = model
	return &cX
}

// DefaultConfig returns a GenerateConfig asking for interleaved text and images.
func DefaultConfig() *GenerateConfig {
	return &GenerateConfig{
		Modalities: []Modality{ModalityText, ModalityImage},
	}
}
