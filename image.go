package askcii

import (
	"image"
	"image/color"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/disintegration/imaging"
	"github.com/llgcode/draw2d/draw2dimg"
	"github.com/llgcode/draw2d/draw2dkit"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// DefaultBlankSize is the width and height of the image rendered when no
// image could be acquired.
const DefaultBlankSize = 100

// DefaultImage returns the blank white fallback image.
func DefaultImage() image.Image {
	return Blank(DefaultBlankSize, DefaultBlankSize, color.White)
}

// Blank returns a width x height canvas painted with c.
func Blank(width, height int, c color.Color) *image.RGBA {
	canvas := image.NewRGBA(image.Rect(0, 0, width, height))
	gc := draw2dimg.NewGraphicContext(canvas)
	gc.SetFillColor(c)
	draw2dkit.Rectangle(gc, 0, 0, float64(width), float64(height))
	gc.Fill()
	return canvas
}

// Decode reads an image in any registered format (gif, jpeg, png, bmp, tiff,
// webp), applying the EXIF orientation tag when present.
func Decode(r io.Reader) (image.Image, error) {
	return imaging.Decode(r, imaging.AutoOrientation(true))
}

func clone(img draw.Image) *image.RGBA {
	dst := image.NewRGBA(img.Bounds())
	draw.Draw(dst, dst.Bounds(), img, img.Bounds().Min, draw.Src)
	return dst
}
