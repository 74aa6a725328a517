package slidegen

import (
	"context"
	"iter"
	"sync"
)

// MockChatService is a mock implementation of ChatService.
type MockChatService struct {
	SendStreamFunc func(ctx context.Context, message string) iter.Seq2[*Envelope, error]
	SendFunc       func(ctx context.Context, message string) (*Envelope, error)
	ModelFunc      func() ModelInfo
	ClearFunc      func()

	mu       sync.Mutex
	messages []string
}

func (m *MockChatService) SendStream(ctx context.Context, message string) iter.Seq2[*Envelope, error] {
	m.record(message)
	if m.SendStreamFunc != nil {
		return m.SendStreamFunc(ctx, message)
	}
	return func(func(*Envelope, error) bool) {}
}

func (m *MockChatService) Send(ctx context.Context, message string) (*Envelope, error) {
	m.record(message)
	if m.SendFunc != nil {
		return m.SendFunc(ctx, message)
	}
	return &Envelope{}, nil
}

func (m *MockChatService) Model() ModelInfo {
	if m.ModelFunc != nil {
		return m.ModelFunc()
	}
	return ModelInfo{
		Name:         "test-model",
		Provider:     "test-provider",
		APIModelName: "test-model-api",
		Capabilities: ModelCapabilities{SupportsStreaming: true},
	}
}

func (m *MockChatService) History() []ConversationTurn {
	return nil
}

func (m *MockChatService) Clear() {
	if m.ClearFunc != nil {
		m.ClearFunc()
	}
}

func (m *MockChatService) record(message string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, message)
}

// Messages returns every message sent, streaming or not.
func (m *MockChatService) Messages() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.messages...)
}

// streamOf returns a sequence yielding envs, then err if it is not nil.
func streamOf(err error, envs ...*Envelope) func(context.Context, string) iter.Seq2[*Envelope, error] {
	return func(context.Context, string) iter.Seq2[*Envelope, error] {
		return func(yield func(*Envelope, error) bool) {
			for _, env := range envs {
				if !yield(env, nil) {
					return
				}
			}
			if err != nil {
				yield(nil, err)
			}
		}
	}
}

// envelope wraps parts in a single-candidate envelope.
func envelope(parts ...Part) *Envelope {
	return &Envelope{Candidates: []Candidate{{Parts: parts}}}
}

func testImage(name string) *Image {
	return &Image{Data: []byte(name), MIMEType: "image/png"}
}

func imagePart(name string) Part {
	return Part{Kind: PartImage, Image: testImage(name)}
}

// recordingPresenter records presenter calls in order.
type recordingPresenter struct {
	mu       sync.Mutex
	calls    []string
	busy     []bool
	question string
	slides   []SlideView
	pages    [][2]int
	scrolls  []int
	errors   []string
	reveals  int
}

func (p *recordingPresenter) SetBusy(busy bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, "busy")
	p.busy = append(p.busy, busy)
}

func (p *recordingPresenter) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, "clear")
	p.slides = nil
}

func (p *recordingPresenter) ShowQuestion(markup string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, "question")
	p.question = markup
}

func (p *recordingPresenter) RevealSlides() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, "reveal")
	p.reveals++
}

func (p *recordingPresenter) AppendSlide(view SlideView) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, "append")
	p.slides = append(p.slides, view)
}

func (p *recordingPresenter) SetPage(current, total int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, "page")
	p.pages = append(p.pages, [2]int{current, total})
}

func (p *recordingPresenter) ScrollTo(index int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, "scroll")
	p.scrolls = append(p.scrolls, index)
}

func (p *recordingPresenter) ShowError(message string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, "error")
	p.errors = append(p.errors, message)
}

func (p *recordingPresenter) Errors() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.errors...)
}

func (p *recordingPresenter) Slides() []SlideView {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]SlideView(nil), p.slides...)
}

func (p *recordingPresenter) Scrolls() []int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]int(nil), p.scrolls...)
}

func (p *recordingPresenter) Busy() []bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]bool(nil), p.busy...)
}
