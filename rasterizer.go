/*
Package askcii converts images into grids of ASCII glyphs.

Every pixel of the resized image is reduced to a single luminance value and
mapped onto a character ramp, darkest glyph first:

	@ # S % ? * + ; : , .

Each row of pixels becomes one line of text, so the output has exactly as many
lines as the target height and as many glyphs per line as the target width.
*/
package askcii

import (
	"fmt"
	"image"
	"io"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/nfnt/resize"
)

// Art is rendered ASCII art, one string per row of pixels.
type Art []string

// String joins the lines of a, terminating every line (including the last)
// with a line feed.
func (a Art) String() string {
	var b strings.Builder
	for _, line := range a {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}

// Filter alters an image between resizing and grayscale conversion.
type Filter interface {
	Filter(image.Image) image.Image
}

type RasterizerOpt func(r *Rasterizer)

// WithRamp sets the character ramp. An empty ramp keeps DefaultRamp.
func WithRamp(ramp Ramp) RasterizerOpt {
	return func(r *Rasterizer) {
		if ramp.Len() > 0 {
			r.ramp = ramp
		}
	}
}

// WithInterpolation sets the resampling kernel used by Resize.
func WithInterpolation(interp resize.InterpolationFunction) RasterizerOpt {
	return func(r *Rasterizer) {
		r.interp = interp
	}
}

// If used, f is applied to every resized image.
func WithFilter(f Filter) RasterizerOpt {
	return func(r *Rasterizer) {
		r.filter = f
	}
}

// Rasterizer turns bitmaps into Art. It holds no mutable state and may be
// shared between goroutines.
type Rasterizer struct {
	ramp   Ramp                         // Glyphs, darkest first
	interp resize.InterpolationFunction // Resampling kernel
	filter Filter                       // Optional, may be nil
}

// NewRasterizer returns a Rasterizer using DefaultRamp and nearest-neighbour
// resampling unless overridden by opts.
func NewRasterizer(opts ...RasterizerOpt) *Rasterizer {
	r := Rasterizer{
		ramp:   DefaultRamp,
		interp: resize.NearestNeighbor,
	}
	for _, opt := range opts {
		opt(&r)
	}
	return &r
}

// Ramp returns the rasterizer's character ramp.
func (r *Rasterizer) Ramp() Ramp {
	return r.ramp
}

// Resize scales img to exactly width x height pixels.
func (r *Rasterizer) Resize(img image.Image, width, height int) (image.Image, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: target %dx%d", ErrInvalidDimension, width, height)
	}
	if img.Bounds().Empty() {
		return nil, fmt.Errorf("%w: source image is empty", ErrInvalidDimension)
	}
	return resize.Resize(uint(width), uint(height), img, r.interp), nil
}

/*
Render resizes img to width x height, applies the filter (if any), converts the
result to grayscale, maps every luminance value onto the ramp and wraps the
glyphs into lines.

Rendering the same image at the same size always yields identical Art.
*/
func (r *Rasterizer) Render(img image.Image, width, height int) (Art, error) {
	resized, err := r.Resize(img, width, height)
	if err != nil {
		return nil, err
	}
	if r.filter != nil {
		resized = r.filter.Filter(resized)
	}
	gray := Grayscale(resized)
	return WrapIntoLines(MapToCharacters(gray, r.ramp), gray.Bounds().Dx())
}

// Encode renders img and writes the resulting text to w.
func (r *Rasterizer) Encode(w io.Writer, img image.Image, width, height int) error {
	art, err := r.Render(img, width, height)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, art.String())
	return err
}

/*
Grayscale computes one luminance sample per pixel:

	L = round(0.299 R + 0.587 G + 0.114 B)

over non-premultiplied 8-bit channels. The returned image always starts at
(0, 0).
*/
func Grayscale(img image.Image) *image.Gray {
	desaturated := imaging.Grayscale(img)
	bounds := desaturated.Bounds()
	gray := image.NewGray(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	for y := 0; y < bounds.Dy(); y++ {
		for x := 0; x < bounds.Dx(); x++ {
			// All three channels carry the same value after desaturation.
			gray.Pix[gray.PixOffset(x, y)] = desaturated.Pix[desaturated.PixOffset(bounds.Min.X+x, bounds.Min.Y+y)]
		}
	}
	return gray
}

// MapToCharacters returns one glyph per pixel of gray in row-major order.
// An empty ramp is treated as DefaultRamp.
func MapToCharacters(gray *image.Gray, ramp Ramp) []rune {
	if ramp.Len() == 0 {
		ramp = DefaultRamp
	}
	bounds := gray.Bounds()
	glyphs := make([]rune, 0, bounds.Dx()*bounds.Dy())
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			glyphs = append(glyphs, ramp.Glyph(ramp.Index(gray.GrayAt(x, y).Y)))
		}
	}
	return glyphs
}

// WrapIntoLines splits glyphs into consecutive lines of exactly width glyphs.
func WrapIntoLines(glyphs []rune, width int) (Art, error) {
	if width <= 0 {
		return nil, fmt.Errorf("%w: line width %d", ErrMalformedInput, width)
	}
	if len(glyphs)%width != 0 {
		return nil, fmt.Errorf("%w: %d glyphs do not divide into lines of %d", ErrMalformedInput, len(glyphs), width)
	}
	art := make(Art, 0, len(glyphs)/width)
	for i := 0; i < len(glyphs); i += width {
		art = append(art, string(glyphs[i:i+width]))
	}
	return art, nil
}
