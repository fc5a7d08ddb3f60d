package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColourValidate(t *testing.T) {
	assert.True(t, ColourValidate("#1a4d4dff"))
	assert.True(t, ColourValidate("#FF00ff00"))
	assert.False(t, ColourValidate("#1a4d4d"))
	assert.False(t, ColourValidate("1a4d4dff"))
	assert.False(t, ColourValidate("#1a4d4dffee"))
	assert.False(t, ColourValidate("#1a4d4dfg"))
}

func TestColourParse(t *testing.T) {
	c := ColourParse("#ff000080")
	assert.Equal(t, float32(1), c.R)
	assert.Equal(t, float32(0), c.G)
	assert.Equal(t, float32(0), c.B)
	assert.InDelta(t, 0.5, c.A, 0.01)

	assert.Equal(t, Colour{A: 1}, ColourParse("nonsense"))
}

func TestColourRoundTrip(t *testing.T) {
	assert.Equal(t, "#1a4d4dff", ColourParse("#1a4d4dff").String())
	assert.Equal(t, "#ffffff00", Colour{R: 2, G: 1, B: 1.5}.String())
}
