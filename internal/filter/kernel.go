package filter

import (
	"github.com/chewxy/math32"

	"github.com/gogpu/diffuse/internal/cache"
)

// MinKernelTaps is the smallest kernel produced for a positive sigma.
const MinKernelTaps = 3

// GaussianKernel generates a 1D Gaussian kernel for the given sigma.
// The kernel is normalized so all values sum to 1.0.
//
// The kernel radius is ceil(3*sigma), covering 99.7% of the distribution,
// and never less than one tap on each side of the center.
//
// For sigma <= 0, returns a single-element kernel [1.0] (identity).
func GaussianKernel(sigma float32) []float32 {
	if !(sigma > 0) {
		return []float32{1.0}
	}

	halfSize := KernelRadius(sigma)
	size := halfSize*2 + 1

	kernel := make([]float32, size)

	// G(x) = exp(-x²/(2σ²)); the 1/(σ√(2π)) factor cancels in normalization.
	twoSigmaSq := 2 * sigma * sigma
	var sum float32

	for i := range size {
		x := float32(i - halfSize)
		val := math32.Exp(-(x * x) / twoSigmaSq)
		kernel[i] = val
		sum += val
	}

	if sum > 0 {
		invSum := 1 / sum
		for i := range kernel {
			kernel[i] *= invSum
		}
	}

	return kernel
}

// KernelRadius returns the half-width of the Gaussian kernel for sigma.
func KernelRadius(sigma float32) int {
	if !(sigma > 0) {
		return 0
	}
	return max(int(math32.Ceil(sigma*3)), (MinKernelTaps-1)/2)
}

// kernelCache holds computed Gaussian kernels keyed by sigma * 1000.
var kernelCache = cache.New[int, []float32](64)

// CachedGaussianKernel returns a cached Gaussian kernel for sigma, quantized
// to 0.001. The returned slice is shared and must not be modified.
func CachedGaussianKernel(sigma float32) []float32 {
	key := int(sigma * 1000)
	return kernelCache.GetOrCreate(key, func() []float32 {
		return GaussianKernel(float32(key) / 1000)
	})
}

// KernelCenter returns the center index of a kernel of the given size.
func KernelCenter(kernelSize int) int {
	return kernelSize / 2
}
