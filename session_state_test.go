package slidegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSessionState(t *testing.T) {
	var st SessionState
	cur, total := st.Page()
	assert.Equal(t, 1, cur)
	assert.Equal(t, 0, total)

	a := st.WithSlide(Slide{Text: "A"})
	b := a.WithSlide(Slide{Text: "B"})
	assert.Zero(t, st.Total(), "WithSlide does not modify the receiver")
	assert.Equal(t, 1, a.Total())
	assert.Equal(t, 2, b.Total())

	moved, ok := b.At(1)
	assert.True(t, ok)
	assert.Equal(t, 1, moved.Current)
	assert.Equal(t, 0, b.Current)
	assert.True(t, moved.IsLast())
	assert.False(t, moved.IsFirst())

	cur, total = moved.Page()
	assert.Equal(t, 2, cur)
	assert.Equal(t, 2, total)

	for _, i := range []int{-1, 2} {
		same, ok := b.At(i)
		assert.False(t, ok)
		assert.Equal(t, b, same)
	}
}

func TestSessionState_WithSlideDoesNotAlias(t *testing.T) {
	base := SessionState{}.WithSlide(Slide{Text: "A"})
	x := base.WithSlide(Slide{Text: "X"})
	y := base.WithSlide(Slide{Text: "Y"})

	assert.Equal(t, "X", x.Slides[1].Text)
	assert.Equal(t, "Y", y.Slides[1].Text)
}
