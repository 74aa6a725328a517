package gemini

import (
	"context"
	"fmt"
	"iter"
	"sync"

	"google.golang.org/genai"

	"github.com/mhpenta/slidegen"
)

// contentGenerator is the part of genai.Models a chat needs.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
	GenerateContentStream(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) iter.Seq2[*genai.GenerateContentResponse, error]
}

// GeminiChat implements multi-turn chat with interleaved text and image output.
// A turn enters the history only after the model has answered it, so a
// failed stream can be retried with Send without duplicating the question.
//
// The history lock is held only to read or update the history, never while
// a request is in flight or a fragment is being handed to the caller. A
// request still running when Clear is called does not write its turn back.
type GeminiChat struct {
	backend   contentGenerator
	model     slidegen.ModelInfo
	genConfig *genai.GenerateContentConfig

	history  []slidegen.ConversationTurn
	contents []*genai.Content
	// epoch changes on every Clear.
	epoch uint64

	mu sync.Mutex
}

var _ slidegen.ChatService = (*GeminiChat)(nil)

// SendStream sends a message and yields fragments as they arrive.
func (c *GeminiChat) SendStream(ctx context.Context, message string) iter.Seq2[*slidegen.Envelope, error] {
	return func(yield func(*slidegen.Envelope, error) bool) {
		userContent := newUserContent(message)
		contents, epoch := c.snapshot(userContent)

		var modelParts []*genai.Part
		received := 0
		for resp, err := range c.backend.GenerateContentStream(ctx, c.model.APIModelName, contents, c.genConfig) {
			if err != nil {
				yield(nil, c.wrapError("stream", err))
				return
			}

			received++
			modelParts = append(modelParts, responseParts(resp)...)
			if !yield(toEnvelope(resp), nil) {
				return
			}
		}

		if received > 0 {
			c.commit(epoch, userContent, &genai.Content{Role: "model", Parts: modelParts})
		}
	}
}

// Send sends a message and receives the complete response.
func (c *GeminiChat) Send(ctx context.Context, message string) (*slidegen.Envelope, error) {
	userContent := newUserContent(message)
	contents, epoch := c.snapshot(userContent)

	result, err := c.backend.GenerateContent(ctx, c.model.APIModelName, contents, c.genConfig)
	if err != nil {
		return nil, c.wrapError("send", err)
	}

	var modelContent *genai.Content
	if result != nil && len(result.Candidates) > 0 && result.Candidates[0].Content != nil {
		modelContent = result.Candidates[0].Content
	}
	c.commit(epoch, userContent, modelContent)

	return toEnvelope(result), nil
}

// Model returns the model serving this chat.
func (c *GeminiChat) Model() slidegen.ModelInfo {
	return c.model
}

// History returns the conversation history.
func (c *GeminiChat) History() []slidegen.ConversationTurn {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Return a copy to prevent external modification
	historyCopy := make([]slidegen.ConversationTurn, len(c.history))
	copy(historyCopy, c.history)
	return historyCopy
}

// Clear resets the conversation history.
func (c *GeminiChat) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.history = nil
	c.contents = nil
	c.epoch++
}

// snapshot returns the contents sent so far followed by next, and the epoch
// they belong to.
func (c *GeminiChat) snapshot(next *genai.Content) ([]*genai.Content, uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	contents := make([]*genai.Content, len(c.contents), len(c.contents)+1)
	copy(contents, c.contents)
	return append(contents, next), c.epoch
}

// commit records an answered turn unless the history was cleared since the
// request started.
func (c *GeminiChat) commit(epoch uint64, user, model *genai.Content) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if epoch != c.epoch {
		return
	}

	c.contents = append(c.contents, user)
	c.history = append(c.history, slidegen.ConversationTurn{
		Role: "user",
		Text: user.Parts[0].Text,
	})

	if model == nil || len(model.Parts) == 0 {
		return
	}
	c.contents = append(c.contents, model)
	c.history = append(c.history, modelTurn(model))
}

func (c *GeminiChat) wrapError(op string, err error) error {
	err = checkRateLimitError(err, c.model.APIModelName)
	if slidegen.IsRateLimitError(err) {
		return err
	}
	return fmt.Errorf("gemini %s: %w", op, err)
}

func newUserContent(message string) *genai.Content {
	return &genai.Content{
		Role:  "user",
		Parts: []*genai.Part{{Text: message}},
	}
}
