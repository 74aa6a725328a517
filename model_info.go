package slidegen

// Provider represents a model provider/backend.
type Provider string

const (
	ProviderGeminiAPI Provider = "gemini"
)

// ModelCapabilities describes what features a model supports.
type ModelCapabilities struct {
	SupportsImageOutput  bool
	SupportsConversation bool
	SupportsStreaming    bool
}

// RateLimits defines rate limiting parameters for a model.
type RateLimits struct {
	TokensPerMinute   int
	RequestsPerMinute int
}

// ModelInfo contains complete metadata for a model.
type ModelInfo struct {
	// Identity
	Name         string   // Public model name (e.g., "flash-image-preview")
	Provider     Provider // Which provider serves this model
	APIModelName string   // Actual API name (e.g., "gemini-2.0-flash-preview-image-generation")

	Capabilities ModelCapabilities

	ContextLength int

	RateLimits RateLimits
}
