package utils

import (
	"fmt"
	"regexp"

	"github.com/go-gl/mathgl/mgl32"
)

type Colour struct {
	R, G, B, A float32
}

var colourRe = regexp.MustCompile(`^#[0-9A-Fa-f]{8}$`)

func ColourValidate(c string) bool {
	return colourRe.MatchString(c)
}

// ColourParse reads an "#rrggbbaa" string. Invalid input yields black.
func ColourParse(s string) Colour {
	var r, g, b, a uint8
	n, err := fmt.Sscanf(s, "#%02x%02x%02x%02x", &r, &g, &b, &a)
	if err != nil || n != 4 {
		return Colour{A: 1}
	}
	return Colour{
		R: float32(r) / 255,
		G: float32(g) / 255,
		B: float32(b) / 255,
		A: float32(a) / 255,
	}
}

func (c Colour) Vec4() mgl32.Vec4 {
	return mgl32.Vec4{c.R, c.G, c.B, c.A}
}

func (c Colour) String() string {
	return fmt.Sprintf("#%02x%02x%02x%02x", toByte(c.R), toByte(c.G), toByte(c.B), toByte(c.A))
}

func toByte(f float32) uint8 {
	return uint8(mgl32.Clamp(f, 0, 1)*255 + 0.5)
}
