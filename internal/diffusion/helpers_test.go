package diffusion

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/gogpu/diffuse/internal/image"
	"github.com/gogpu/diffuse/internal/parallel"
)

// newImage builds a w x h opaque buffer whose color channels follow fn.
func newImage(t *testing.T, w, h int, fn func(x, y int) float32) *image.ImageBuf {
	t.Helper()

	buf, err := image.NewImageBuf(w, h)
	if err != nil {
		t.Fatalf("NewImageBuf(%d, %d): %v", w, h, err)
	}
	for y := range h {
		for x := range w {
			v := fn(x, y)
			if err := buf.SetPixel(x, y, Pixel{v, v, v, 1}); err != nil {
				t.Fatalf("SetPixel(%d, %d): %v", x, y, err)
			}
		}
	}
	return buf
}

// newNoise builds a w x h buffer of uniform random samples in [0, 1].
func newNoise(t *testing.T, w, h int, seed uint64) *image.ImageBuf {
	t.Helper()

	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b9))
	buf, err := image.NewImageBuf(w, h)
	if err != nil {
		t.Fatalf("NewImageBuf(%d, %d): %v", w, h, err)
	}
	for i := range buf.Data() {
		buf.Data()[i] = float32(rng.Float64())
	}
	return buf
}

// runPass applies one kernel pass over the whole image using tiles of
// tw x th and returns the result.
func runPass(t *testing.T, k Kernel, src *image.ImageBuf, mode image.EdgeMode, tw, th int) *image.ImageBuf {
	t.Helper()

	bounds := src.Bounds()
	dst, err := image.NewImageBufAt(bounds)
	if err != nil {
		t.Fatalf("NewImageBufAt(%+v): %v", bounds, err)
	}
	s := image.NewSampler(src, nil, bounds, mode)
	grid := parallel.NewTileGridSize(bounds, bounds, k.Halo(), tw, th)
	grid.ForEach(func(tile parallel.Tile) {
		k.Step(s, dst, tile)
	})
	return dst
}

// maxDiff returns the largest absolute sample difference between a and b.
func maxDiff(a, b *image.ImageBuf) float64 {
	var m float64
	for i, v := range a.Data() {
		m = math.Max(m, math.Abs(float64(v-b.Data()[i])))
	}
	return m
}

// assertUnitRange fails when any sample is outside [0, 1] or NaN.
func assertUnitRange(t *testing.T, buf *image.ImageBuf) {
	t.Helper()

	for i, v := range buf.Data() {
		if !(v >= 0 && v <= 1) {
			t.Fatalf("sample %d = %v, outside [0, 1]", i, v)
		}
	}
}
