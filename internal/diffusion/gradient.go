package diffusion

import (
	"github.com/chewxy/math32"

	"github.com/gogpu/diffuse/internal/image"
)

// Pixel is one RGBA sample.
type Pixel = [image.Channels]float32

// Difference returns the one-sided per-channel difference neighbor - center
// for the neighbor at offset o from (x, y). Reads outside the image follow
// the sampler's edge mode.
func Difference(s *image.Sampler, x, y int, center Pixel, o Offset) Pixel {
	n := s.At(x+o.DX, y+o.DY)
	var d Pixel
	for c := range image.Channels {
		d[c] = n[c] - center[c]
	}
	return d
}

// Conductance is the Perona-Malik edge-stopping function exp(-(g/kappa)²).
// It is 1 for a zero gradient and falls toward 0 as |g| grows past kappa.
// kappa must be positive.
func Conductance(g, kappa float32) float32 {
	r := g / kappa
	return math32.Exp(-r * r)
}

// clamp01 limits v to [0, 1]. NaN maps to 0.
func clamp01(v float32) float32 {
	return clampBand(v, 0, 1)
}

// clampBand limits v to [lo, hi]. NaN maps to 0.
func clampBand(v, lo, hi float32) float32 {
	switch {
	case v > hi:
		return hi
	case v >= lo:
		return v
	case v < lo:
		return lo
	default:
		return 0
	}
}
