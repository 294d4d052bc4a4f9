package askcii

import (
	"context"
	"image"
)

// Acquisition is the outcome of Acquire. Image is always usable; when
// Fallback is set it is the blank default image and Err says why.
type Acquisition struct {
	Image    image.Image
	Err      error
	Fallback bool
}

// Acquire asks src for the image described by d and substitutes
// DefaultImage on any failure instead of returning an error.
func Acquire(ctx context.Context, src Source, d Descriptor) Acquisition {
	img, err := src.Acquire(ctx, d)
	if err != nil {
		return Acquisition{Image: DefaultImage(), Err: err, Fallback: true}
	}
	return Acquisition{Image: img}
}
