package filter

import "sync"

// Field is a single-channel float32 plane of Width x Height samples in
// row-major order.
type Field struct {
	Data   []float32
	Width  int
	Height int
}

// At returns the sample at (x, y) with coordinates clamped to the field.
func (f Field) At(x, y int) float32 {
	x = clampInt(x, 0, f.Width-1)
	y = clampInt(y, 0, f.Height-1)
	return f.Data[y*f.Width+x]
}

// BlurField convolves field in place with the separable kernel: a horizontal
// pass into scratch, then a vertical pass back into field. Reads beyond the
// field edges are clamped to the nearest edge sample.
//
// scratch must hold at least len(field.Data) samples.
func BlurField(field Field, kernel []float32, scratch []float32) {
	if len(kernel) <= 1 || field.Width <= 0 || field.Height <= 0 {
		return
	}

	temp := scratch[:len(field.Data)]
	blurHorizontal(field, temp, kernel)
	blurVertical(temp, field, kernel)
}

// blurHorizontal applies 1D horizontal convolution.
// Reads from src, writes to dst.
func blurHorizontal(src Field, dst []float32, kernel []float32) {
	halfKernel := KernelCenter(len(kernel))
	w := src.Width

	for y := range src.Height {
		row := src.Data[y*w : (y+1)*w]
		out := dst[y*w : (y+1)*w]

		for x := range w {
			var v float32
			for k, weight := range kernel {
				// Clamp to field bounds (edge extension)
				kx := clampInt(x+k-halfKernel, 0, w-1)
				v += row[kx] * weight
			}
			out[x] = v
		}
	}
}

// blurVertical applies 1D vertical convolution.
// Reads from src, writes to dst.
func blurVertical(src []float32, dst Field, kernel []float32) {
	halfKernel := KernelCenter(len(kernel))
	w, h := dst.Width, dst.Height

	for y := range h {
		out := dst.Data[y*w : (y+1)*w]

		for x := range w {
			var v float32
			for k, weight := range kernel {
				ky := clampInt(y+k-halfKernel, 0, h-1)
				v += src[ky*w+x] * weight
			}
			out[x] = v
		}
	}
}

// floatBuffer wraps a slice for sync.Pool to avoid allocation warnings.
type floatBuffer struct {
	data []float32
}

// Scratch buffer pool for per-tile intermediate fields.
var scratchPool = sync.Pool{
	New: func() interface{} {
		// Enough for a 64x64 tile plus halo with four planes.
		return &floatBuffer{data: make([]float32, 72*72*4)}
	},
}

// GetScratch retrieves a zeroed scratch buffer of exactly n samples.
func GetScratch(n int) []float32 {
	wrapper := scratchPool.Get().(*floatBuffer)

	if len(wrapper.data) < n {
		// Need larger buffer - return old one and allocate new
		scratchPool.Put(wrapper)
		return make([]float32, n)
	}

	buf := wrapper.data[:n]
	clear(buf)
	return buf
}

// PutScratch returns a scratch buffer to the pool.
func PutScratch(buf []float32) {
	// Only pool reasonably-sized buffers
	if cap(buf) <= 16*1024*1024 {
		scratchPool.Put(&floatBuffer{data: buf[:cap(buf)]})
	}
}

// clampInt clamps v to [lo, hi].
func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
