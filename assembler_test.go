package slidegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// feed adds partials in order and collects every emitted slide, then flushes.
func feed(a *Assembler, partials ...Partial) []Slide {
	var slides []Slide
	for _, p := range partials {
		if s, ok := a.Add(p); ok {
			slides = append(slides, s)
		}
	}
	if s, ok := a.Flush(); ok {
		slides = append(slides, s)
	}
	return slides
}

func TestAssembler_EmitsWhenBothPresent(t *testing.T) {
	a := NewAssembler()
	i1 := testImage("i1")

	_, ok := a.Add(Partial{Text: "A"})
	assert.False(t, ok)
	assert.Equal(t, Accumulating, a.State())

	slide, ok := a.Add(Partial{Image: i1})
	require.True(t, ok)
	assert.Equal(t, Slide{Text: "A", Image: i1}, slide)
	assert.Equal(t, Waiting, a.State())
	assert.Equal(t, 1, a.Emitted())
}

func TestAssembler_TextOnlyIsDiscarded(t *testing.T) {
	a := NewAssembler()
	assert.Empty(t, feed(a, Partial{Text: "A"}))
	assert.Equal(t, Waiting, a.State(), "flush resets leftovers")
}

func TestAssembler_ImageOnlyIsDiscarded(t *testing.T) {
	assert.Empty(t, feed(NewAssembler(), Partial{Image: testImage("i1")}))
}

func TestAssembler_LastImageWins(t *testing.T) {
	slides := feed(NewAssembler(),
		Partial{Image: testImage("i1")},
		Partial{Image: testImage("i2")},
		Partial{Text: "A"},
	)
	require.Len(t, slides, 1)
	assert.Equal(t, []byte("i2"), slides[0].Image.Data)
}

func TestAssembler_TextAppends(t *testing.T) {
	slides := feed(NewAssembler(),
		Partial{Text: "A"},
		Partial{Text: "B"},
		Partial{Image: testImage("i1")},
	)
	require.Len(t, slides, 1)
	assert.Equal(t, "AB", slides[0].Text)
}

func TestAssembler_PairsInOrder(t *testing.T) {
	slides := feed(NewAssembler(),
		Partial{Text: "A"}, Partial{Image: testImage("i1")},
		Partial{Text: "B"}, Partial{Image: testImage("i2")},
		Partial{Text: "C", Image: testImage("i3")},
	)
	require.Len(t, slides, 3)
	for i, want := range []string{"A", "B", "C"} {
		assert.Equal(t, want, slides[i].Text)
	}
}

func TestAssembler_EmptyPartialIsNoop(t *testing.T) {
	a := NewAssembler()
	_, ok := a.Add(Partial{})
	assert.False(t, ok)
	assert.Equal(t, Waiting, a.State())
}

func TestAssembler_Degrade(t *testing.T) {
	t.Run("image without text gets the caption", func(t *testing.T) {
		a := NewAssembler()
		a.Add(Partial{Image: testImage("i1")})

		slide, ok := a.Degrade(DefaultFallbackCaption)
		require.True(t, ok)
		assert.Equal(t, DefaultFallbackCaption, slide.Text)
		assert.Equal(t, []byte("i1"), slide.Image.Data)
	})

	t.Run("text without image gets a placeholder", func(t *testing.T) {
		a := NewAssembler()
		a.Add(Partial{Text: "A"})

		slide, ok := a.Degrade(DefaultFallbackCaption)
		require.True(t, ok)
		assert.Equal(t, "A", slide.Text)
		assert.True(t, slide.Image.Placeholder)
		assert.NotEmpty(t, slide.Image.Data)
	})

	t.Run("nothing pending", func(t *testing.T) {
		_, ok := NewAssembler().Degrade(DefaultFallbackCaption)
		assert.False(t, ok)
	})
}

func TestAssembler_ResetKeepsCount(t *testing.T) {
	a := NewAssembler()
	feed(a, Partial{Text: "A", Image: testImage("i1")})
	a.Add(Partial{Text: "B"})

	a.Reset()
	text, img := a.Pending()
	assert.Empty(t, text)
	assert.Nil(t, img)
	assert.Equal(t, 1, a.Emitted())
}
