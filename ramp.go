package askcii

import (
	"fmt"
	"unicode/utf8"
)

// lumaStep is the width of each luminance bucket. 255/lumaStep is the last
// index of DefaultRamp, so the default ramp never needs clamping.
const lumaStep = 25

// Ramp is an ordered, immutable sequence of glyphs. Index 0 is used for the
// darkest luminance, the last index for the brightest.
type Ramp struct {
	glyphs []rune
}

// DefaultRamp is the eleven glyph ramp: @ # S % ? * + ; : , .
var DefaultRamp = Ramp{glyphs: []rune("@#S%?*+;:,.")}

// NewRamp builds a ramp from the runes of s, darkest first.
func NewRamp(s string) (Ramp, error) {
	if s == "" {
		return Ramp{}, fmt.Errorf("%w: ramp is empty", ErrInvalidRamp)
	}
	if !utf8.ValidString(s) {
		return Ramp{}, fmt.Errorf("%w: ramp is not valid UTF-8", ErrInvalidRamp)
	}
	return Ramp{glyphs: []rune(s)}, nil
}

// Len returns the number of glyphs in the ramp.
func (r Ramp) Len() int {
	return len(r.glyphs)
}

// Glyph returns the glyph at index i.
func (r Ramp) Glyph(i int) rune {
	return r.glyphs[i]
}

// Glyphs returns a copy of the ramp's glyphs.
func (r Ramp) Glyphs() []rune {
	return append([]rune(nil), r.glyphs...)
}

// Index maps a luminance value to a ramp index using integer division by 25,
// clamped to the ramp's bounds. An empty ramp always yields 0.
func (r Ramp) Index(v uint8) int {
	i := int(v) / lumaStep
	if last := len(r.glyphs) - 1; i > last {
		if last < 0 {
			return 0
		}
		return last
	}
	return i
}

func (r Ramp) String() string {
	return string(r.glyphs)
}
