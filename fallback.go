package slidegen

import (
	"context"
	"log/slog"
)

// SlideSink receives slides in emission order. Returning an error aborts
// assembly.
type SlideSink func(ctx context.Context, slide Slide) error

// CoordinatorOption configures a Coordinator.
type CoordinatorOption func(*Coordinator)

// WithCoordinatorLogger sets a structured logger for the coordinator.
func WithCoordinatorLogger(logger *slog.Logger) CoordinatorOption {
	return func(c *Coordinator) {
		c.logger = logger
	}
}

// WithCoordinatorMetrics records fragments, fallbacks and slides.
func WithCoordinatorMetrics(metrics *Metrics) CoordinatorOption {
	return func(c *Coordinator) {
		c.metrics = metrics
	}
}

// WithStreaming enables or disables the streaming path. When disabled only
// the single-request path runs.
func WithStreaming(enabled bool) CoordinatorOption {
	return func(c *Coordinator) {
		c.streaming = enabled
	}
}

// WithFallbackCaption sets the caption used for a degraded slide that has an
// image but no text.
func WithFallbackCaption(caption string) CoordinatorOption {
	return func(c *Coordinator) {
		c.fallbackCaption = caption
	}
}

// Coordinator turns one message into slides: streaming first, then a single
// request when the stream delivers nothing or fails.
type Coordinator struct {
	chat            ChatService
	logger          *slog.Logger
	metrics         *Metrics
	streaming       bool
	fallbackCaption string
}

// NewCoordinator creates a Coordinator for chat. Streaming is enabled unless
// the chat's model reports it cannot stream.
func NewCoordinator(chat ChatService, opts ...CoordinatorOption) *Coordinator {
	c := &Coordinator{
		chat:            chat,
		logger:          slog.Default(),
		streaming:       chat.Model().Capabilities.SupportsStreaming,
		fallbackCaption: DefaultFallbackCaption,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type assembly struct {
	asm    *Assembler
	sink   SlideSink
	slides []Slide
	c      *Coordinator
}

// push hands slide to the sink and records it once the sink accepts it.
func (a *assembly) push(ctx context.Context, slide Slide) error {
	if a.sink != nil {
		if err := a.sink(ctx, slide); err != nil {
			return err
		}
	}
	a.slides = append(a.slides, slide)
	a.c.metrics.slideEmitted()
	return nil
}

func (a *assembly) add(ctx context.Context, p Partial) error {
	if slide, ok := a.asm.Add(p); ok {
		return a.push(ctx, slide)
	}
	return nil
}

// Assemble sends message and returns the slides it produced, in order. Each
// slide is also passed to sink as soon as it is complete. An empty result
// with a nil error means the service answered without usable content.
func (c *Coordinator) Assemble(ctx context.Context, message string, sink SlideSink) ([]Slide, error) {
	a := &assembly{asm: NewAssembler(), sink: sink, c: c}

	reason := FallbackNoStreaming
	if c.streaming {
		fragments, streamErr, sinkErr := c.stream(ctx, message, a)
		if sinkErr != nil {
			return a.slides, sinkErr
		}
		if err := ctx.Err(); err != nil {
			return a.slides, err
		}

		switch {
		case streamErr != nil:
			c.logger.Warn("streaming failed, falling back to single request",
				"fragments", fragments,
				"error", streamErr.Error(),
			)
			reason = FallbackStreamError
		case fragments == 0:
			c.logger.Warn("stream delivered no fragments, falling back to single request")
			reason = FallbackEmptyStream
		default:
			c.logger.Debug("stream completed", "fragments", fragments)
			return a.slides, c.flush(ctx, a)
		}
	}

	if err := c.fallback(ctx, message, a, reason); err != nil {
		return a.slides, err
	}
	return a.slides, c.flush(ctx, a)
}

func (c *Coordinator) stream(ctx context.Context, message string, a *assembly) (fragments int, streamErr, sinkErr error) {
	for env, err := range c.chat.SendStream(ctx, message) {
		if err != nil {
			return fragments, err, nil
		}
		if err := ctx.Err(); err != nil {
			return fragments, err, nil
		}

		fragments++
		c.metrics.fragmentReceived()

		p := Extract(env)
		c.logger.Debug("fragment received",
			"fragment", fragments,
			"text_length", len(p.Text),
			"has_image", p.Image != nil,
		)

		if err := a.add(ctx, p); err != nil {
			return fragments, nil, err
		}
	}
	return fragments, nil, nil
}

func (c *Coordinator) fallback(ctx context.Context, message string, a *assembly, reason string) error {
	c.metrics.fallback(reason)
	a.asm.Reset()

	env, err := c.chat.Send(ctx, message)
	if err != nil {
		return err
	}

	before := len(a.slides)
	if err := a.add(ctx, Extract(env)); err != nil {
		return err
	}
	if len(a.slides) > before {
		return nil
	}

	// Degraded response: keep forward progress with whatever arrived.
	if slide, ok := a.asm.Degrade(c.fallbackCaption); ok {
		c.logger.Warn("degraded response, synthesizing slide",
			"placeholder_image", slide.Image.Placeholder,
		)
		return a.push(ctx, slide)
	}
	return nil
}

func (c *Coordinator) flush(ctx context.Context, a *assembly) error {
	if slide, ok := a.asm.Flush(); ok {
		return a.push(ctx, slide)
	}
	return nil
}
