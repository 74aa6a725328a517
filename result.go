package slidegen

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"sync"
)

// Image is an owned illustration handle decoded from an inline payload.
type Image struct {
	// Data contains the raw image bytes
	Data []byte

	// MIMEType of the image (e.g., "image/png")
	MIMEType string

	// Placeholder is set on the blank image substituted for a missing illustration
	Placeholder bool
}

// DataURI returns the image encoded as a data: URI suitable for markup.
func (i *Image) DataURI() string {
	if i == nil {
		return ""
	}
	mime := i.MIMEType
	if mime == "" {
		mime = "image/png"
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(i.Data)
}

var placeholderPNG = sync.OnceValue(func() []byte {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.Set(0, 0, color.White)

	var buf bytes.Buffer
	// Encoding a 1x1 in-memory image cannot fail.
	_ = png.Encode(&buf, img)
	return buf.Bytes()
})

// PlaceholderImage returns a blank 1x1 white PNG.
func PlaceholderImage() *Image {
	return &Image{
		Data:        placeholderPNG(),
		MIMEType:    "image/png",
		Placeholder: true,
	}
}

// Slide is one emitted (caption, illustration) pair.
type Slide struct {
	Text  string
	Image *Image
}

// SlideView is a slide prepared for display.
type SlideView struct {
	// Index is the position of the slide in the current sequence (0-indexed)
	Index int

	Slide Slide

	// Caption is the rendered markup for Slide.Text
	Caption string
}

// Partial is the output of one Extract call.
type Partial struct {
	Text  string
	Image *Image
}

// IsEmpty reports whether the partial carries neither text nor an image.
func (p Partial) IsEmpty() bool {
	return p.Text == "" && p.Image == nil
}

// PartKind tags the payload carried by a Part.
type PartKind int

const (
	// PartMalformed is a part with neither a usable text nor image payload.
	PartMalformed PartKind = iota
	PartText
	PartImage
	// PartThought is model reasoning, never shown on a slide.
	PartThought
)

// String returns the kind name for logging.
func (k PartKind) String() string {
	switch k {
	case PartText:
		return "text"
	case PartImage:
		return "image"
	case PartThought:
		return "thought"
	default:
		return "malformed"
	}
}

// Part is the smallest payload unit of a response.
type Part struct {
	Kind  PartKind
	Text  string
	Image *Image
}

// TextPart returns a text part.
func TextPart(text string) Part {
	return Part{Kind: PartText, Text: text}
}

// ImagePart returns an inline image part.
func ImagePart(data []byte, mimeType string) Part {
	return Part{Kind: PartImage, Image: &Image{Data: data, MIMEType: mimeType}}
}

// Candidate is one alternative completion. Nil Parts means the candidate
// arrived without content.
type Candidate struct {
	Parts []Part
}

// Envelope is one response unit from the chat service: a streamed fragment
// or the complete response of a single request.
type Envelope struct {
	Candidates []Candidate

	// Usage contains token/billing information when the service reports it
	Usage *UsageMetadata
}

// UsageMetadata contains usage information for billing and monitoring.
type UsageMetadata struct {
	PromptTokens     int
	CandidatesTokens int
	TotalTokens      int
}

// ConversationTurn represents a single turn in a conversation.
type ConversationTurn struct {
	Role   string // "user" or "model"
	Text   string
	Images []Image
}
