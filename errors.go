package askcii

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDimension is returned when a resize target is not positive.
	ErrInvalidDimension = errors.New("invalid dimension")
	// ErrMalformedInput is returned when a glyph sequence does not divide
	// evenly into lines of the requested width.
	ErrMalformedInput = errors.New("malformed input")
	// ErrInvalidRamp is returned for character ramps that cannot be used.
	ErrInvalidRamp = errors.New("invalid character ramp")
	// ErrAcquisition matches every *AcquisitionError via errors.Is.
	ErrAcquisition = errors.New("image acquisition failed")
)

// FailureKind classifies why an image could not be acquired.
type FailureKind int

const (
	// FetchError means the network resource or file could not be read.
	FetchError FailureKind = iota + 1
	// DecodeError means the bytes were read but are not a supported image.
	DecodeError
	// GenerationError means the diffusion model did not produce an image.
	GenerationError
)

func (k FailureKind) String() string {
	switch k {
	case FetchError:
		return "fetch"
	case DecodeError:
		return "decode"
	case GenerationError:
		return "generation"
	}
	return fmt.Sprintf("FailureKind(%d)", int(k))
}

// AcquisitionError is returned by every Source.
type AcquisitionError struct {
	Kind   FailureKind
	Target string // URL, path or prompt
	Err    error
}

func (e *AcquisitionError) Error() string {
	return fmt.Sprintf("%s error for %q: %v", e.Kind, e.Target, e.Err)
}

func (e *AcquisitionError) Unwrap() error {
	return e.Err
}

func (e *AcquisitionError) Is(target error) bool {
	return target == ErrAcquisition
}

// IsKind reports whether err is an *AcquisitionError of the given kind.
func IsKind(err error, kind FailureKind) bool {
	var ae *AcquisitionError
	return errors.As(err, &ae) && ae.Kind == kind
}
