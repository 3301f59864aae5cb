// Package image provides float32 RGBA raster buffers for gogpu/diffuse.
//
// Buffers store straight-alpha RGBA samples as contiguous float32 values in
// row-major order. Every buffer carries an origin so that a buffer can cover
// an arbitrary window of a larger logical image while still being addressed
// in image coordinates.
package image

import (
	"errors"
	"math"
)

// Channels is the number of samples per pixel (R, G, B, A).
const Channels = 4

// Common errors for image operations.
var (
	// ErrInvalidDimensions is returned when width or height is non-positive
	// or the sample count overflows.
	ErrInvalidDimensions = errors.New("image: invalid dimensions")

	// ErrDataTooSmall is returned when provided data is smaller than required.
	ErrDataTooSmall = errors.New("image: data buffer too small")

	// ErrOutOfBounds is returned when pixel coordinates are outside image bounds.
	ErrOutOfBounds = errors.New("image: coordinates out of bounds")
)

// ImageBuf is a float32 RGBA raster covering the rectangle Bounds().
//
// Thread safety: concurrent reads are safe. Concurrent writes are safe only
// when the writers touch disjoint pixels and no reader observes them.
type ImageBuf struct {
	data   []float32
	x0, y0 int
	width  int
	height int
}

// SampleCount returns width*height*Channels, or an error when the product is
// not representable.
func SampleCount(width, height int) (int, error) {
	if width <= 0 || height <= 0 {
		return 0, ErrInvalidDimensions
	}
	if width > math.MaxInt/height/Channels {
		return 0, ErrInvalidDimensions
	}
	return width * height * Channels, nil
}

// NewImageBuf creates a zeroed buffer of the given size with origin (0, 0).
func NewImageBuf(width, height int) (*ImageBuf, error) {
	return NewImageBufAt(NewRect(0, 0, width, height))
}

// NewImageBufAt creates a zeroed buffer covering r in image coordinates.
func NewImageBufAt(r Rect) (*ImageBuf, error) {
	n, err := SampleCount(r.Width, r.Height)
	if err != nil {
		return nil, err
	}
	return &ImageBuf{
		data:   make([]float32, n),
		x0:     r.X,
		y0:     r.Y,
		width:  r.Width,
		height: r.Height,
	}, nil
}

// FromRaw wraps existing samples without copying. The caller keeps data
// alive for the lifetime of the buffer.
func FromRaw(data []float32, width, height int) (*ImageBuf, error) {
	n, err := SampleCount(width, height)
	if err != nil {
		return nil, err
	}
	if len(data) < n {
		return nil, ErrDataTooSmall
	}
	return &ImageBuf{data: data[:n], width: width, height: height}, nil
}

// Clone creates a deep copy of the buffer.
func (b *ImageBuf) Clone() *ImageBuf {
	data := make([]float32, len(b.data))
	copy(data, b.data)
	return &ImageBuf{data: data, x0: b.x0, y0: b.y0, width: b.width, height: b.height}
}

// Width returns the buffer width in pixels.
func (b *ImageBuf) Width() int {
	return b.width
}

// Height returns the buffer height in pixels.
func (b *ImageBuf) Height() int {
	return b.height
}

// Bounds returns the rectangle covered by the buffer in image coordinates.
func (b *ImageBuf) Bounds() Rect {
	return Rect{X: b.x0, Y: b.y0, Width: b.width, Height: b.height}
}

// Data returns the raw samples.
func (b *ImageBuf) Data() []float32 {
	return b.data
}

// Stride returns the number of samples per row.
func (b *ImageBuf) Stride() int {
	return b.width * Channels
}

// PixelOffset returns the sample offset of pixel (x, y) given in image
// coordinates, or -1 if the pixel lies outside the buffer.
func (b *ImageBuf) PixelOffset(x, y int) int {
	x -= b.x0
	y -= b.y0
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return -1
	}
	return (y*b.width + x) * Channels
}

// Pixel returns the samples at (x, y). Out-of-bounds reads return zero.
func (b *ImageBuf) Pixel(x, y int) [Channels]float32 {
	var px [Channels]float32
	if off := b.PixelOffset(x, y); off >= 0 {
		copy(px[:], b.data[off:off+Channels])
	}
	return px
}

// SetPixel stores px at (x, y).
func (b *ImageBuf) SetPixel(x, y int, px [Channels]float32) error {
	off := b.PixelOffset(x, y)
	if off < 0 {
		return ErrOutOfBounds
	}
	copy(b.data[off:off+Channels], px[:])
	return nil
}

// Row returns the samples of row y restricted to columns [x, x+width).
// The slice aliases the buffer. Returns nil when the span is not inside the buffer.
func (b *ImageBuf) Row(x, y, width int) []float32 {
	if width <= 0 || !b.Bounds().ContainsRect(NewRect(x, y, width, 1)) {
		return nil
	}
	off := b.PixelOffset(x, y)
	return b.data[off : off+width*Channels]
}

// Fill sets every pixel to px.
func (b *ImageBuf) Fill(px [Channels]float32) {
	for i := 0; i < len(b.data); i += Channels {
		copy(b.data[i:i+Channels], px[:])
	}
}

// Clear zeroes every sample.
func (b *ImageBuf) Clear() {
	clear(b.data)
}

// CopyRect copies the pixels of r from src into dst. r is clipped to both
// buffers. Returns the rectangle actually copied.
func CopyRect(dst, src *ImageBuf, r Rect) Rect {
	r = r.Intersect(src.Bounds()).Intersect(dst.Bounds())
	for y := r.Y; y < r.MaxY(); y++ {
		copy(dst.Row(r.X, y, r.Width), src.Row(r.X, y, r.Width))
	}
	return r
}

// IsEmpty returns true if the buffer has zero dimensions.
func (b *ImageBuf) IsEmpty() bool {
	return b.width == 0 || b.height == 0
}
