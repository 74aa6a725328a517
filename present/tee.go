package present

import "github.com/mhpenta/slidegen"

// Tee fans every call out to several presenters in order.
type Tee []slidegen.Presenter

var _ slidegen.Presenter = Tee(nil)

func (t Tee) SetBusy(busy bool) {
	for _, p := range t {
		p.SetBusy(busy)
	}
}

func (t Tee) Clear() {
	for _, p := range t {
		p.Clear()
	}
}

func (t Tee) ShowQuestion(markup string) {
	for _, p := range t {
		p.ShowQuestion(markup)
	}
}

func (t Tee) RevealSlides() {
	for _, p := range t {
		p.RevealSlides()
	}
}

func (t Tee) AppendSlide(view slidegen.SlideView) {
	for _, p := range t {
		p.AppendSlide(view)
	}
}

func (t Tee) SetPage(current, total int) {
	for _, p := range t {
		p.SetPage(current, total)
	}
}

func (t Tee) ScrollTo(index int) {
	for _, p := range t {
		p.ScrollTo(index)
	}
}

func (t Tee) ShowError(message string) {
	for _, p := range t {
		p.ShowError(message)
	}
}
