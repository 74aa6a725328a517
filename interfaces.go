package slidegen

import (
	"context"
	"iter"
)

// ChatService is a multi-turn multimodal chat that answers with interleaved
// caption text and inline illustrations.
type ChatService interface {
	// SendStream sends a message and yields response fragments as they arrive.
	// The sequence is finite and cannot be restarted. A non-nil error ends it.
	SendStream(ctx context.Context, message string) iter.Seq2[*Envelope, error]

	// Send sends a message and returns the complete response.
	Send(ctx context.Context, message string) (*Envelope, error)

	// Model returns the definition of the model serving this chat.
	Model() ModelInfo

	// History returns the conversation history.
	History() []ConversationTurn

	// Clear resets the conversation history.
	Clear()
}

// ChatProvider creates chats against a backend.
// The first model returned by Models() is considered the default model.
type ChatProvider interface {
	// StartChat begins a new conversation configured by genConfig.
	StartChat(genConfig *GenerateConfig) ChatService

	// Models returns the model definitions supported by this provider.
	Models() []ModelInfo

	// Close releases any resources held by the provider.
	Close() error
}

// Renderer maps caption text to displayable markup. Implementations must be
// free of side effects.
type Renderer interface {
	Render(ctx context.Context, text string) (string, error)
}

// Presenter displays a session. It owns all visual layout; a Session only
// tells it what changed.
type Presenter interface {
	// SetBusy disables input and shows the busy indicator, or reverts both.
	SetBusy(busy bool)

	// Clear drops everything shown for the previous request.
	Clear()

	// ShowQuestion displays the rendered user question.
	ShowQuestion(markup string)

	// RevealSlides makes the slide container visible.
	RevealSlides()

	// AppendSlide adds a slide at the end of the container.
	AppendSlide(view SlideView)

	// SetPage updates the page indicator (1-indexed current, total).
	SetPage(current, total int)

	// ScrollTo brings the slide at index into view.
	ScrollTo(index int)

	// ShowError displays a user-facing error message.
	ShowError(message string)
}
