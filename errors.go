package diffuse

import (
	"errors"

	intImage "github.com/gogpu/diffuse/internal/image"
)

// Engine errors.
var (
	// ErrNilBuffer is returned when the input or output buffer is nil.
	ErrNilBuffer = errors.New("diffuse: nil buffer")

	// ErrInvalidConfig is returned when a configuration value is outside
	// its documented range. The wrapping error names the field.
	ErrInvalidConfig = errors.New("diffuse: invalid config")

	// ErrAllocation is returned when the working buffers cannot be
	// obtained, including when they would exceed the memory limit.
	ErrAllocation = errors.New("diffuse: allocation failed")

	// ErrFormatMismatch is returned when the output buffer does not cover
	// the target rectangle.
	ErrFormatMismatch = errors.New("diffuse: output does not cover target")

	// ErrClosed is returned by Process after Close.
	ErrClosed = errors.New("diffuse: engine closed")
)

// Image errors, re-exported for errors.Is checks.
var (
	ErrInvalidDimensions = intImage.ErrInvalidDimensions
	ErrOutOfBounds       = intImage.ErrOutOfBounds
	ErrUnsupportedFormat = intImage.ErrUnsupportedFormat
	ErrEmptyData         = intImage.ErrEmptyData
)
