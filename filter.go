package askcii

import (
	"image"

	"github.com/disintegration/imaging"
)

// Adjustments is a Filter applying tonal corrections. Zero values leave the
// image untouched, as does a Gamma of 1.
type Adjustments struct {
	// Gamma less than 1.0 darkens the image and greater than 1.0 lightens it.
	Gamma float64
	// Brightness in the range (-100, 100). -100 gives solid black.
	Brightness float64
	// Contrast in the range (-100, 100). -100 gives solid grey.
	Contrast float64
	// Sharpen is the sigma of the sharpening kernel.
	Sharpen float64
	// SigmoidMidpoint must be between 0 and 1. Only used when SigmoidFactor
	// is not zero.
	SigmoidMidpoint float64
	// SigmoidFactor above 0 increases contrast, below 0 decreases it.
	SigmoidFactor float64
	Invert        bool
}

// IsZero reports whether a leaves every image unchanged.
func (a Adjustments) IsZero() bool {
	return (a.Gamma == 0 || a.Gamma == 1) &&
		a.Brightness == 0 &&
		a.Contrast == 0 &&
		a.Sharpen == 0 &&
		a.SigmoidFactor == 0 &&
		!a.Invert
}

func (a Adjustments) Filter(img image.Image) image.Image {
	if a.Gamma != 0 && a.Gamma != 1 {
		img = imaging.AdjustGamma(img, a.Gamma)
	}
	if a.Brightness != 0 {
		img = imaging.AdjustBrightness(img, a.Brightness)
	}
	if a.Sharpen != 0 {
		img = imaging.Sharpen(img, a.Sharpen)
	}
	if a.Contrast != 0 {
		img = imaging.AdjustContrast(img, a.Contrast)
	}
	if a.SigmoidFactor != 0 {
		img = imaging.AdjustSigmoid(img, a.SigmoidMidpoint, a.SigmoidFactor)
	}
	if a.Invert {
		img = imaging.Invert(img)
	}
	return img
}
