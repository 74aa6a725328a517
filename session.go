package slidegen

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mhpenta/slidegen/ratelimiter"
)

// QuestionPrefix precedes the user's question when it is echoed back.
const QuestionPrefix = "**Soru:** "

// responseTokenBuffer is added to the prompt estimate to cover the reply.
const responseTokenBuffer = 100

// Session drives one chat and one presenter. It runs at most one generation
// at a time and owns the slide sequence of the current generation.
type Session struct {
	chat           ChatService
	presenter      Presenter
	renderer       Renderer
	logger         *slog.Logger
	metrics        *Metrics
	limiter        ratelimiter.Limiter
	tokenEstimator TokenEstimator
	config         *GenerateConfig

	timeout      time.Duration
	scrollDelay  time.Duration
	instructions string

	coordinatorOpts []CoordinatorOption
	coordinator     *Coordinator

	mu sync.Mutex
	// busy is set while a generation holds the session.
	busy bool
	// generation tags the current attempt. Writes carrying an older tag are
	// dropped.
	generation uint64
	state      SessionState
}

// NewSession creates a Session for chat that reports to presenter.
//
// Example:
//
//	provider, err := gemini.NewWithAPIKey(ctx, apiKey)
//	if err != nil {
//	    return err
//	}
//	session := slidegen.NewSession(provider.StartChat(nil), presenter,
//	    slidegen.WithLogger(slog.Default()),
//	    slidegen.WithRenderer(render.NewHTML()),
//	)
func NewSession(chat ChatService, presenter Presenter, opts ...SessionOption) *Session {
	s := &Session{
		chat:           chat,
		presenter:      presenter,
		renderer:       PlainRenderer{},
		logger:         slog.Default(),
		tokenEstimator: NewSimpleTokenEstimator(),
		config:         DefaultConfig(),
		timeout:        DefaultTimeout,
		scrollDelay:    DefaultScrollDelay,
		instructions:   DefaultInstructions,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.limiter == nil {
		limits := chat.Model().RateLimits
		if limits.TokensPerMinute > 0 || limits.RequestsPerMinute > 0 {
			s.limiter = ratelimiter.New(limits.TokensPerMinute, limits.RequestsPerMinute)
		}
	}

	coordOpts := []CoordinatorOption{
		WithCoordinatorLogger(s.logger),
		WithCoordinatorMetrics(s.metrics),
	}
	s.coordinator = NewCoordinator(chat, append(coordOpts, s.coordinatorOpts...)...)

	return s
}

type generationResult struct {
	slides []Slide
	err    error
}

// Submit turns message into slides and shows them.
//
// An empty message returns ErrEmptyPrompt without touching the presenter.
// While another submission is in flight Submit returns ErrBusy. Every other
// outcome is also shown to the user: ErrTimeout when the timeout fires first,
// ErrNoSlides when nothing usable came back, or the service error.
//
// The timeout does not cancel the request to the chat service; whatever it
// produces afterwards is discarded.
func (s *Session) Submit(ctx context.Context, message string) ([]Slide, error) {
	question, err := ValidatePrompt(message)
	if err != nil {
		return nil, err
	}

	tag, err := s.begin()
	if err != nil {
		return nil, err
	}
	defer s.end()

	logger := s.logger.With(
		"request_id", uuid.NewString(),
		"attempt", tag,
		"model", s.chat.Model().Name,
	)
	start := time.Now()
	logger.Info("generation started", "question_length", len(question))

	timer := time.NewTimer(s.timeout)
	defer timer.Stop()

	done := make(chan generationResult, 1)
	go func() {
		slides, err := s.generate(ctx, tag, question)
		done <- generationResult{slides: slides, err: err}
	}()

	select {
	case res := <-done:
		return s.complete(tag, res, start, logger)

	case <-timer.C:
		s.abandon(TimeoutText)
		logger.Warn("generation timed out",
			"timeout", s.timeout,
			"duration_ms", time.Since(start).Milliseconds(),
		)
		s.metrics.observeRequest(OutcomeTimeout, time.Since(start))
		return nil, ErrTimeout

	case <-ctx.Done():
		err := ctx.Err()
		s.abandon(ClassifyError(err))
		logger.Warn("generation cancelled", "error", err.Error())
		s.metrics.observeRequest(OutcomeError, time.Since(start))
		return nil, err
	}
}

func (s *Session) generate(ctx context.Context, tag uint64, question string) ([]Slide, error) {
	markup, err := s.renderer.Render(ctx, QuestionPrefix+question)
	if err != nil {
		return nil, fmt.Errorf("rendering question: %w", err)
	}
	if !s.apply(tag, func(p Presenter) { p.ShowQuestion(markup) }) {
		return nil, ErrStaleAttempt
	}

	prompt := question + s.instructions
	if err := s.checkRateLimit(ctx, prompt); err != nil {
		return nil, err
	}

	return s.coordinator.Assemble(ctx, prompt, func(ctx context.Context, slide Slide) error {
		return s.appendSlide(ctx, tag, slide)
	})
}

func (s *Session) appendSlide(ctx context.Context, tag uint64, slide Slide) error {
	caption, err := s.renderer.Render(ctx, slide.Text)
	if err != nil {
		return fmt.Errorf("rendering caption: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if tag != s.generation {
		return ErrStaleAttempt
	}

	s.state = s.state.WithSlide(slide)
	index := s.state.Total() - 1

	s.presenter.AppendSlide(SlideView{Index: index, Slide: slide, Caption: caption})
	s.presenter.SetPage(s.state.Page())
	if index == 0 {
		s.presenter.RevealSlides()
	}
	return nil
}

func (s *Session) complete(tag uint64, res generationResult, start time.Time, logger *slog.Logger) ([]Slide, error) {
	duration := time.Since(start)

	switch {
	case res.err != nil:
		logger.Error("generation failed",
			"duration_ms", duration.Milliseconds(),
			"slides", len(res.slides),
			"error", res.err.Error(),
		)
		s.apply(tag, func(p Presenter) { p.ShowError(ClassifyError(res.err)) })
		s.metrics.observeRequest(OutcomeError, duration)
		return res.slides, res.err

	case len(res.slides) == 0:
		logger.Warn("generation produced no slides", "duration_ms", duration.Milliseconds())
		s.apply(tag, func(p Presenter) { p.ShowError(NoSlidesText) })
		s.metrics.observeRequest(OutcomeNoSlides, duration)
		return nil, ErrNoSlides
	}

	logger.Info("generation completed",
		"duration_ms", duration.Milliseconds(),
		"slides", len(res.slides),
	)
	s.metrics.observeRequest(OutcomeSuccess, duration)

	time.AfterFunc(s.scrollDelay, func() {
		s.apply(tag, func(Presenter) { s.goTo(0) })
	})
	return res.slides, nil
}

// begin claims the session for a new generation and resets all state.
func (s *Session) begin() (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.busy {
		return 0, ErrBusy
	}
	s.busy = true
	s.generation++
	s.state = SessionState{}

	s.presenter.SetBusy(true)
	s.presenter.Clear()
	s.presenter.SetPage(s.state.Page())
	return s.generation, nil
}

// end releases the session. It runs on every exit path of Submit.
func (s *Session) end() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.busy = false
	s.presenter.SetBusy(false)
}

// abandon stops honoring the current attempt and shows message.
func (s *Session) abandon(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.generation++
	s.presenter.ShowError(message)
}

// apply runs fn against the presenter if tag is still the current attempt.
func (s *Session) apply(tag uint64, fn func(Presenter)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if tag != s.generation {
		return false
	}
	fn(s.presenter)
	return true
}

// checkRateLimit checks the limiter for prompt and optionally waits.
func (s *Session) checkRateLimit(ctx context.Context, prompt string) error {
	if s.limiter == nil {
		return nil
	}

	tokens := s.tokenEstimator.EstimateTokens(prompt) + responseTokenBuffer

	if s.config.WaitOnRateLimit {
		return s.limiter.WaitAndConsume(ctx, tokens, s.config.MaxWaitDuration)
	}

	if !s.limiter.TryConsume(tokens) {
		err := &RateLimitError{
			RetryAfter: s.limiter.TimeUntilAvailable(tokens),
			LimitType:  "tokens",
			Model:      s.chat.Model().Name,
		}
		s.logger.Warn("rate limit hit", "model", err.Model, "retry_after", err.RetryAfter)
		return err
	}
	return nil
}

// GoTo brings the slide at index into view. Out-of-range indexes are ignored.
func (s *Session) GoTo(index int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.goTo(index)
}

// Next moves to the following slide.
func (s *Session) Next() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.goTo(s.state.Current + 1)
}

// Prev moves to the preceding slide.
func (s *Session) Prev() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.goTo(s.state.Current - 1)
}

// First moves to the first slide.
func (s *Session) First() bool {
	return s.GoTo(0)
}

// Last moves to the last slide.
func (s *Session) Last() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.goTo(s.state.Total() - 1)
}

func (s *Session) goTo(index int) bool {
	st, ok := s.state.At(index)
	if !ok {
		return false
	}
	s.state = st
	s.presenter.ScrollTo(index)
	s.presenter.SetPage(st.Page())
	return true
}

// State returns a copy of the current slide sequence and position.
func (s *Session) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.state
	st.Slides = append([]Slide(nil), s.state.Slides...)
	return st
}

// Busy reports whether a generation is in flight.
func (s *Session) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy
}

// Reset forgets the conversation history and clears the presenter. An
// abandoned attempt that is still running does not block it.
func (s *Session) Reset() error {
	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		return ErrBusy
	}
	s.generation++
	s.state = SessionState{}
	s.presenter.Clear()
	s.presenter.SetPage(s.state.Page())
	s.mu.Unlock()

	// The chat is never called with s.mu held: its fragments reach the
	// session through appendSlide, which takes s.mu.
	s.chat.Clear()
	return nil
}

// Chat returns the chat driven by this session.
func (s *Session) Chat() ChatService {
	return s.chat
}

// PlainRenderer returns caption text unchanged.
type PlainRenderer struct{}

func (PlainRenderer) Render(_ context.Context, text string) (string, error) {
	return text, nil
}

// RendererFunc adapts a function to the Renderer interface.
type RendererFunc func(ctx context.Context, text string) (string, error)

func (f RendererFunc) Render(ctx context.Context, text string) (string, error) {
	return f(ctx, text)
}

var (
	_ Renderer = PlainRenderer{}
	_ Renderer = RendererFunc(nil)
)

// IsUserFacing reports whether err is one of the outcomes Submit has already
// shown to the user.
func IsUserFacing(err error) bool {
	return err != nil && !errors.Is(err, ErrEmptyPrompt) && !errors.Is(err, ErrBusy)
}
