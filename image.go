package diffuse

import (
	"image"
	"io"

	intImage "github.com/gogpu/diffuse/internal/image"
)

// ImageBuf is a float32 straight-alpha RGBA raster with an origin.
// This is an alias to the internal implementation.
type ImageBuf = intImage.ImageBuf

// Rect is an integer rectangle (x, y, width, height).
type Rect = intImage.Rect

// EdgeMode selects how reads outside the image are resolved.
type EdgeMode = intImage.EdgeMode

// Edge mode constants.
const (
	// EdgeClamp repeats the nearest edge pixel.
	EdgeClamp = intImage.EdgeClamp

	// EdgeWrap wraps coordinates around the image.
	EdgeWrap = intImage.EdgeWrap

	// EdgeNone reads transparent black outside the image.
	EdgeNone = intImage.EdgeNone
)

// Format describes the pixel layout an engine consumes and produces.
type Format = intImage.Format

// FormatInfo describes the properties of a Format.
type FormatInfo = intImage.FormatInfo

// FormatRGBAFloat is 4-channel float32 straight-alpha RGBA.
const FormatRGBAFloat = intImage.FormatRGBAFloat

// NewRect returns the rectangle (x, y, width, height).
func NewRect(x, y, width, height int) Rect {
	return intImage.NewRect(x, y, width, height)
}

// NewImageBuf creates a zeroed buffer of the given size with origin (0, 0).
func NewImageBuf(width, height int) (*ImageBuf, error) {
	return intImage.NewImageBuf(width, height)
}

// NewImageBufAt creates a zeroed buffer covering r.
func NewImageBufAt(r Rect) (*ImageBuf, error) {
	return intImage.NewImageBufAt(r)
}

// ImageBufFromRaw wraps interleaved RGBA samples without copying.
func ImageBufFromRaw(data []float32, width, height int) (*ImageBuf, error) {
	return intImage.FromRaw(data, width, height)
}

// LoadImage reads and decodes an image file (PNG, JPEG, GIF, BMP, TIFF or
// WebP) into a float32 buffer.
func LoadImage(path string) (*ImageBuf, error) {
	return intImage.LoadImage(path)
}

// DecodeImage decodes an image stream into a float32 buffer.
func DecodeImage(r io.Reader) (*ImageBuf, error) {
	return intImage.Decode(r)
}

// ImageBufFromImage converts any image.Image into a float32 buffer.
func ImageBufFromImage(img image.Image) (*ImageBuf, error) {
	return intImage.FromStdImage(img)
}
