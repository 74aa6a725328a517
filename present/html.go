package present

import (
	"context"
	_ "embed"
	"fmt"
	"html/template"
	"io"
	"sync"

	"github.com/mhpenta/slidegen"
	"github.com/mhpenta/slidegen/render"
)

// ImageAlt is the alternative text of every slide illustration.
const ImageAlt = "Robot hikayesi illüstrasyonu"

//go:embed templates/deck.html.tmpl
var deckTemplate string

var deckTmpl = template.Must(template.New("deck").Parse(deckTemplate))

// HTMLDeck collects a session into a self-contained HTML page with the
// illustrations inlined as data URIs. Captions are rendered from the slide
// text; the question markup is sanitized as received.
type HTMLDeck struct {
	title    string
	renderer *render.HTML

	mu       sync.Mutex
	question template.HTML
	slides   []deckSlide
	current  int
	total    int
	errMsg   string
}

var _ slidegen.Presenter = (*HTMLDeck)(nil)

type deckSlide struct {
	Number  int
	Image   template.URL
	Caption template.HTML
}

type deckData struct {
	Title       string
	Question    template.HTML
	Error       string
	ErrorPrefix string
	ImageAlt    string
	Slides      []deckSlide
	Current     int
	Total       int
}

// NewHTMLDeck creates an empty deck.
func NewHTMLDeck(title string, renderer *render.HTML) *HTMLDeck {
	if renderer == nil {
		renderer = render.NewHTML()
	}
	return &HTMLDeck{title: title, renderer: renderer}
}

func (d *HTMLDeck) SetBusy(bool) {}

func (d *HTMLDeck) Clear() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.question = ""
	d.slides = nil
	d.current, d.total = 0, 0
	d.errMsg = ""
}

func (d *HTMLDeck) ShowQuestion(markup string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.question = d.renderer.Sanitize(markup)
}

func (d *HTMLDeck) RevealSlides() {}

func (d *HTMLDeck) AppendSlide(view slidegen.SlideView) {
	img := view.Slide.Image
	if img == nil {
		img = slidegen.PlaceholderImage()
	}
	slide := deckSlide{
		Number: view.Index + 1,
		// html/template rejects data: URLs unless typed as template.URL.
		Image:   template.URL(img.DataURI()),
		Caption: d.renderer.Markup(context.Background(), view.Slide.Text),
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	d.slides = append(d.slides, slide)
}

func (d *HTMLDeck) SetPage(current, total int) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.current, d.total = current, total
}

func (d *HTMLDeck) ScrollTo(int) {}

func (d *HTMLDeck) ShowError(message string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.errMsg = message
}

// Len returns the number of slides collected.
func (d *HTMLDeck) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.slides)
}

// WriteTo renders the deck as an HTML page.
func (d *HTMLDeck) WriteTo(w io.Writer) (int64, error) {
	d.mu.Lock()
	data := deckData{
		Title:       d.title,
		Question:    d.question,
		Error:       d.errMsg,
		ErrorPrefix: ErrorPrefix,
		ImageAlt:    ImageAlt,
		Slides:      append([]deckSlide(nil), d.slides...),
		Current:     d.current,
		Total:       d.total,
	}
	d.mu.Unlock()

	cw := &countingWriter{w: w}
	if err := deckTmpl.Execute(cw, data); err != nil {
		return cw.n, fmt.Errorf("rendering deck: %w", err)
	}
	return cw.n, nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
