package slidegen

// SessionState is the slide sequence of one generation and the slide
// currently in view. It is a value: methods return modified copies.
type SessionState struct {
	Slides  []Slide
	Current int
}

// Total returns the number of slides.
func (st SessionState) Total() int {
	return len(st.Slides)
}

// WithSlide returns the state with slide appended.
func (st SessionState) WithSlide(slide Slide) SessionState {
	slides := make([]Slide, len(st.Slides), len(st.Slides)+1)
	copy(slides, st.Slides)
	st.Slides = append(slides, slide)
	return st
}

// At returns the state moved to index. It reports false, leaving the state
// unchanged, if index is out of range.
func (st SessionState) At(index int) (SessionState, bool) {
	if index < 0 || index >= len(st.Slides) {
		return st, false
	}
	st.Current = index
	return st, true
}

// Page returns the page indicator values: 1-indexed current page and total.
// An empty state reports 1 / 0.
func (st SessionState) Page() (current, total int) {
	return st.Current + 1, len(st.Slides)
}

// IsFirst reports whether the current slide is the first one.
func (st SessionState) IsFirst() bool {
	return st.Current == 0
}

// IsLast reports whether the current slide is the last one.
func (st SessionState) IsLast() bool {
	return st.Current == len(st.Slides)-1
}
