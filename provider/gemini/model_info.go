package gemini

import "github.com/mhpenta/slidegen"

// API model identifiers.
const (
	APIModelFlashImagePreview = "gemini-2.0-flash-preview-image-generation"
	APIModelFlashImage        = "gemini-2.5-flash-image"
)

// FlashImagePreviewInfo is the model info for Gemini 2.0 Flash with image
// generation, the default storytelling model. It answers with interleaved
// text and inline images and supports streaming.
var FlashImagePreviewInfo = slidegen.ModelInfo{
	Name:         "flash-image-preview",
	Provider:     slidegen.ProviderGeminiAPI,
	APIModelName: APIModelFlashImagePreview,

	Capabilities: slidegen.ModelCapabilities{
		SupportsImageOutput:  true,
		SupportsConversation: true,
		SupportsStreaming:    true,
	},

	ContextLength: 32768,

	RateLimits: slidegen.RateLimits{
		TokensPerMinute:   1000000,
		RequestsPerMinute: 100,
	},
}

// FlashImageInfo is the model info for Gemini 2.5 Flash Image (nano-banana).
var FlashImageInfo = slidegen.ModelInfo{
	Name:         "flash-image",
	Provider:     slidegen.ProviderGeminiAPI,
	APIModelName: APIModelFlashImage,

	Capabilities: slidegen.ModelCapabilities{
		SupportsImageOutput:  true,
		SupportsConversation: true,
		SupportsStreaming:    true,
	},

	ContextLength: 1048576, // 1M tokens

	RateLimits: slidegen.RateLimits{
		TokensPerMinute:   4000000,
		RequestsPerMinute: 500, // ~500 RPM for Tier 1
	},
}
