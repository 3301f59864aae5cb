// Package tensor implements the structure-tensor half of the diffusion
// engine: per-pixel structure tensor fields, their Gaussian smoothing, the
// closed-form 2x2 eigen-decomposition and the mapping from local structure
// to a 2x2 diffusion tensor.
package tensor

import (
	"github.com/gogpu/diffuse/internal/filter"
	"github.com/gogpu/diffuse/internal/image"
)

// Structure is the symmetric 2x2 structure tensor [[Ixx, Ixy], [Ixy, Iyy]].
// Ixx and Iyy are averages of squares and therefore never negative.
type Structure struct {
	Ixx, Ixy, Iyy float32
}

// CentralGradient returns the per-channel central differences at (x, y):
// Ix = (I(x+1) - I(x-1)) / 2 and Iy = (I(y+1) - I(y-1)) / 2.
func CentralGradient(s *image.Sampler, x, y int) (ix, iy [image.Channels]float32) {
	left := s.At(x-1, y)
	right := s.At(x+1, y)
	up := s.At(x, y-1)
	down := s.At(x, y+1)
	for c := range image.Channels {
		ix[c] = (right[c] - left[c]) / 2
		iy[c] = (down[c] - up[c]) / 2
	}
	return ix, iy
}

// Outer averages the gradient outer products over all channels.
func Outer(ix, iy [image.Channels]float32) Structure {
	var st Structure
	for c := range image.Channels {
		st.Ixx += ix[c] * ix[c]
		st.Iyy += iy[c] * iy[c]
		st.Ixy += ix[c] * iy[c]
	}
	const inv = 1.0 / image.Channels
	st.Ixx *= inv
	st.Iyy *= inv
	st.Ixy *= inv
	return st
}

// Field stores the three structure tensor planes over a rectangle.
type Field struct {
	rect image.Rect
	ixx  filter.Field
	ixy  filter.Field
	iyy  filter.Field
}

// FieldSamples returns the scratch size BuildField needs for r.
func FieldSamples(r image.Rect) int {
	return 3 * r.Area()
}

// BuildField computes the unsmoothed structure tensor at every pixel of r,
// reading neighbors through s. buf must hold FieldSamples(r) samples and
// backs the returned planes.
func BuildField(s *image.Sampler, r image.Rect, buf []float32) Field {
	n := r.Area()
	plane := func(i int) filter.Field {
		return filter.Field{Data: buf[i*n : (i+1)*n], Width: r.Width, Height: r.Height}
	}
	f := Field{rect: r, ixx: plane(0), ixy: plane(1), iyy: plane(2)}

	i := 0
	for y := r.Y; y < r.MaxY(); y++ {
		for x := r.X; x < r.MaxX(); x++ {
			st := Outer(CentralGradient(s, x, y))
			f.ixx.Data[i] = st.Ixx
			f.ixy.Data[i] = st.Ixy
			f.iyy.Data[i] = st.Iyy
			i++
		}
	}
	return f
}

// Smooth blurs each plane independently with the same separable kernel.
// Reads beyond the field edges clamp. scratch must hold Rect().Area() samples.
func (f Field) Smooth(kernel, scratch []float32) {
	filter.BlurField(f.ixx, kernel, scratch)
	filter.BlurField(f.ixy, kernel, scratch)
	filter.BlurField(f.iyy, kernel, scratch)
}

// Rect returns the rectangle covered by the field.
func (f Field) Rect() image.Rect {
	return f.rect
}

// At returns the tensor at image coordinates (x, y), clamped into the field.
func (f Field) At(x, y int) Structure {
	lx, ly := x-f.rect.X, y-f.rect.Y
	return Structure{
		Ixx: f.ixx.At(lx, ly),
		Ixy: f.ixy.At(lx, ly),
		Iyy: f.iyy.At(lx, ly),
	}
}
