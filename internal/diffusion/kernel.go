package diffusion

import (
	"github.com/gogpu/diffuse/internal/image"
	"github.com/gogpu/diffuse/internal/parallel"
)

// Kernel performs one diffusion update over a single tile.
//
// Step reads the previous iteration through src and writes every pixel of
// tile.Target into dst. It never writes outside the target and never reads
// dst, so kernels for different tiles of one pass may run concurrently.
type Kernel interface {
	// Halo is the margin, in pixels, the kernel needs around a target.
	Halo() int

	// Step updates tile.Target.
	Step(src *image.Sampler, dst *image.ImageBuf, tile parallel.Tile)
}

// MinTarget is the smallest width and height a kernel can process. Smaller
// targets are copied through unchanged.
type MinTarget interface {
	MinSize() int
}

// MinSize returns the minimum target edge length for k, or 1 when the
// kernel does not declare one.
func MinSize(k Kernel) int {
	if m, ok := k.(MinTarget); ok {
		return m.MinSize()
	}
	return 1
}

// writePixel stores px at (x, y) in dst after clamping every channel to [0, 1].
func writePixel(dst *image.ImageBuf, x, y int, px Pixel) {
	off := dst.PixelOffset(x, y)
	if off < 0 {
		return
	}
	out := dst.Data()[off : off+image.Channels]
	for c := range image.Channels {
		out[c] = clamp01(px[c])
	}
}
