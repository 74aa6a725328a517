// Package present implements slidegen.Presenter for terminals and for
// static HTML decks.
package present

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/mhpenta/slidegen"
)

// ErrorPrefix precedes every user-facing error message.
const ErrorPrefix = "❌ Bir sorun oluştu: "

const busyIndicator = "⏳ ..."

// Terminal writes the session to a terminal. Captions and the question are
// printed as received, so the session should be configured with a renderer
// that produces terminal output.
type Terminal struct {
	w io.Writer

	mu       sync.Mutex
	busy     bool
	revealed bool
	slides   []slidegen.SlideView
	err      error
}

var _ slidegen.Presenter = (*Terminal)(nil)

// NewTerminal creates a Terminal writing to w.
func NewTerminal(w io.Writer) *Terminal {
	return &Terminal{w: w}
}

func (t *Terminal) SetBusy(busy bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if busy && !t.busy {
		t.println(busyIndicator)
	}
	t.busy = busy
}

func (t *Terminal) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.revealed = false
	t.slides = nil
}

func (t *Terminal) ShowQuestion(markup string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.println(markup)
}

func (t *Terminal) RevealSlides() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.revealed = true
}

// AppendSlide prints the caption under a rule. Image bytes are not printed;
// the slide notes whether it carries a real illustration.
func (t *Terminal) AppendSlide(view slidegen.SlideView) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.slides = append(t.slides, view)
	t.println(strings.Repeat("─", 40))
	t.println(view.Caption)
	if img := view.Slide.Image; img != nil && !img.Placeholder {
		t.println(fmt.Sprintf("🖼  %s, %d bytes", img.MIMEType, len(img.Data)))
	}
}

func (t *Terminal) SetPage(current, total int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if total == 0 {
		return
	}
	t.println(fmt.Sprintf("%d / %d", current, total))
}

// ScrollTo reprints the slide at index.
func (t *Terminal) ScrollTo(index int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if index < 0 || index >= len(t.slides) {
		return
	}
	t.println(strings.Repeat("═", 40))
	t.println(t.slides[index].Caption)
}

func (t *Terminal) ShowError(message string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.println(ErrorPrefix + message)
}

// Err returns the first write error, if any.
func (t *Terminal) Err() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.err
}

// println writes line. Callers hold t.mu.
func (t *Terminal) println(line string) {
	if t.err != nil {
		return
	}
	_, t.err = fmt.Fprintln(t.w, line)
}
