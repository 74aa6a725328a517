package slidegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name string
		env  *Envelope
		want Partial
	}{
		{
			name: "nil envelope",
			env:  nil,
			want: Partial{},
		},
		{
			name: "empty envelope",
			env:  &Envelope{},
			want: Partial{},
		},
		{
			name: "candidate without content",
			env:  &Envelope{Candidates: []Candidate{{}}},
			want: Partial{},
		},
		{
			name: "sanitized text",
			env:  envelope(TextPart("System: Hi")),
			want: Partial{Text: "Hi"},
		},
		{
			name: "noise text dropped",
			env:  envelope(TextPart("..."), imagePart("a")),
			want: Partial{Image: testImage("a")},
		},
		{
			name: "last image wins",
			env:  envelope(imagePart("a"), TextPart("Bir "), imagePart("b")),
			want: Partial{Text: "Bir", Image: testImage("b")},
		},
		{
			name: "text concatenated across candidates",
			env: &Envelope{Candidates: []Candidate{
				{Parts: []Part{TextPart("Robot"), TextPart("lar")}},
				{Parts: []Part{TextPart(" uyandı.")}},
			}},
			want: Partial{Text: "Robotlaruyandı."},
		},
		{
			name: "thoughts and malformed parts skipped",
			env: envelope(
				Part{Kind: PartThought, Text: "plan"},
				Part{Kind: PartMalformed},
				Part{Kind: PartImage},
				Part{Kind: PartImage, Image: &Image{MIMEType: "image/png"}},
				TextPart("metin"),
			),
			want: Partial{Text: "metin"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Extract(tt.env))
		})
	}
}

func TestExtractDoesNotMutate(t *testing.T) {
	env := envelope(TextPart("Assistant: merhaba"), imagePart("a"))
	Extract(env)

	assert.Equal(t, "Assistant: merhaba", env.Candidates[0].Parts[0].Text)
	assert.Equal(t, []byte("a"), env.Candidates[0].Parts[1].Image.Data)
}
