package slidegen

// AssemblerState is the logical state of an Assembler.
type AssemblerState int

const (
	// Waiting means nothing is accumulated.
	Waiting AssemblerState = iota
	// Accumulating means text and/or an image is pending.
	Accumulating
)

// DefaultFallbackCaption is used when a degraded response carries an image
// but no caption.
const DefaultFallbackCaption = "Robot hikayesi..."

// Assembler pairs caption text with illustrations.
//
// The chat service interleaves the caption and the illustration of one beat
// across fragments in no fixed order and never marks slide boundaries. The
// assembler therefore appends text, keeps only the latest image, and emits a
// slide as soon as both are present. This is a best-effort pairing policy,
// not a parser of a guaranteed format.
type Assembler struct {
	pendingText  string
	pendingImage *Image
	emitted      int
}

// NewAssembler returns an assembler in the Waiting state.
func NewAssembler() *Assembler {
	return &Assembler{}
}

// Add feeds one partial. It returns a slide when the partial completes a
// (text, image) pair.
func (a *Assembler) Add(p Partial) (Slide, bool) {
	if p.Text != "" {
		a.pendingText += p.Text
	}
	if p.Image != nil {
		a.pendingImage = p.Image
	}

	if a.pendingText != "" && a.pendingImage != nil {
		return a.emit(a.pendingText, a.pendingImage), true
	}
	return Slide{}, false
}

// Flush handles end of sequence: leftovers become a slide only if both text
// and image are pending. A lone leftover is discarded.
func (a *Assembler) Flush() (Slide, bool) {
	defer a.Reset()

	if a.pendingText != "" && a.pendingImage != nil {
		return a.emit(a.pendingText, a.pendingImage), true
	}
	return Slide{}, false
}

// Degrade turns whatever is pending into a slide, substituting a placeholder
// image and the given caption for the missing half. It reports false when
// nothing is pending.
func (a *Assembler) Degrade(caption string) (Slide, bool) {
	if a.State() == Waiting {
		return Slide{}, false
	}

	text := a.pendingText
	if text == "" {
		text = caption
	}
	img := a.pendingImage
	if img == nil {
		img = PlaceholderImage()
	}
	return a.emit(text, img), true
}

// Pending returns the accumulated, not yet emitted text and image.
func (a *Assembler) Pending() (string, *Image) {
	return a.pendingText, a.pendingImage
}

// State returns Waiting or Accumulating.
func (a *Assembler) State() AssemblerState {
	if a.pendingText == "" && a.pendingImage == nil {
		return Waiting
	}
	return Accumulating
}

// Emitted returns how many slides this assembler has produced.
func (a *Assembler) Emitted() int {
	return a.emitted
}

// Reset drops pending content. The emitted count is kept.
func (a *Assembler) Reset() {
	a.pendingText = ""
	a.pendingImage = nil
}

func (a *Assembler) emit(text string, img *Image) Slide {
	a.Reset()
	a.emitted++
	return Slide{Text: text, Image: img}
}
