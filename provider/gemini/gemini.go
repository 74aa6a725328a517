// Package gemini provides a slidegen.ChatProvider backed by Google's Gemini API.
//
// This provider uses the Gemini API backend via the official Go SDK:
// https://github.com/googleapis/go-genai
package gemini

import (
	"context"
	"errors"
	"fmt"
	"time"

	"google.golang.org/genai"

	"github.com/mhpenta/slidegen"
)

// GeminiProvider implements slidegen.ChatProvider using Google's Gemini API.
type GeminiProvider struct {
	client *genai.Client
}

var _ slidegen.ChatProvider = (*GeminiProvider)(nil)

// Config configures the Gemini client.
type Config struct {
	// APIKey for authentication. If empty, the SDK reads GOOGLE_API_KEY or
	// GEMINI_API_KEY.
	APIKey string

	// BaseURL for custom endpoints (optional)
	BaseURL string

	// Timeout for each HTTP request (optional)
	Timeout time.Duration
}

// New creates a GeminiProvider.
func New(ctx context.Context, config *Config) (*GeminiProvider, error) {
	if config == nil {
		config = &Config{}
	}

	clientCfg := &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if config.BaseURL != "" || config.Timeout > 0 {
		httpOpts := genai.HTTPOptions{BaseURL: config.BaseURL}
		if config.Timeout > 0 {
			httpOpts.Timeout = &config.Timeout
		}
		clientCfg.HTTPOptions = httpOpts
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiProvider{client: client}, nil
}

// NewWithAPIKey creates a provider with an API key for the Gemini API.
func NewWithAPIKey(ctx context.Context, apiKey string) (*GeminiProvider, error) {
	return New(ctx, &Config{APIKey: apiKey})
}

// StartChat begins a new conversation. A nil config asks the default model
// for text and images.
func (g *GeminiProvider) StartChat(config *slidegen.GenerateConfig) slidegen.ChatService {
	if config == nil {
		config = slidegen.DefaultConfig()
	}

	info := g.resolveModel(config)
	return &GeminiChat{
		backend:   g.client.Models,
		model:     info,
		genConfig: buildGenerateContentConfig(config),
	}
}

// Models returns the model definitions supported by this provider.
// The first model (FlashImagePreview) is the default.
func (g *GeminiProvider) Models() []slidegen.ModelInfo {
	return []slidegen.ModelInfo{
		FlashImagePreviewInfo,
		FlashImageInfo,
	}
}

// Close releases any resources held by the provider.
func (g *GeminiProvider) Close() error {
	// The genai.Client doesn't require explicit closing in the current SDK
	return nil
}

// resolveModel finds the model info for config.Model, matching either the
// public or the API name. Unknown names are passed through with the default
// model's capabilities.
func (g *GeminiProvider) resolveModel(config *slidegen.GenerateConfig) slidegen.ModelInfo {
	models := g.Models()
	if config.Model == "" {
		return models[0]
	}

	for _, info := range models {
		if info.Name == config.Model.String() || info.APIModelName == config.Model.String() {
			return info
		}
	}

	info := models[0]
	info.Name = config.Model.String()
	info.APIModelName = config.Model.String()
	return info
}

// buildGenerateContentConfig converts our config to Gemini's GenerateContentConfig format.
func buildGenerateContentConfig(config *slidegen.GenerateConfig) *genai.GenerateContentConfig {
	modalities := make([]string, 0, len(config.Modalities))
	for _, m := range config.Modalities {
		modalities = append(modalities, string(m))
	}
	if len(modalities) == 0 {
		modalities = []string{string(slidegen.ModalityText), string(slidegen.ModalityImage)}
	}

	genConfig := &genai.GenerateContentConfig{
		ResponseModalities: modalities,
	}

	if config.Temperature != nil {
		genConfig.Temperature = genai.Ptr(*config.Temperature)
	}

	if len(config.SafetySettings) > 0 {
		genConfig.SafetySettings = convertSafetySettings(config.SafetySettings)
	}

	return genConfig
}

// convertSafetySettings converts our SafetySettings to Gemini's format.
func convertSafetySettings(settings []slidegen.SafetySetting) []*genai.SafetySetting {
	result := make([]*genai.SafetySetting, 0, len(settings))
	for _, s := range settings {
		result = append(result, &genai.SafetySetting{
			Category:  genai.HarmCategory(s.Category),
			Threshold: genai.HarmBlockThreshold(s.Threshold),
		})
	}
	return result
}

// checkRateLimitError checks if an error from the Gemini API is a rate limit error.
// If so, it wraps it in a RateLimitError for standardized handling; otherwise returns the original error.
func checkRateLimitError(err error, model string) error {
	if err == nil {
		return nil
	}

	var apiErr genai.APIError
	if !errors.As(err, &apiErr) {
		return err
	}

	if apiErr.Code != 429 && apiErr.Status != "RESOURCE_EXHAUSTED" {
		return err
	}

	return &slidegen.RateLimitError{
		RetryAfter: 60 * time.Second, // Default; API doesn't reliably provide Retry-After
		LimitType:  "requests",
		Model:      model,
		Err:        err,
	}
}
