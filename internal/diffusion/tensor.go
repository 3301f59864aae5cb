package diffusion

import (
	"github.com/gogpu/diffuse/internal/filter"
	"github.com/gogpu/diffuse/internal/image"
	"github.com/gogpu/diffuse/internal/parallel"
	"github.com/gogpu/diffuse/internal/tensor"
)

const (
	// tensorHalo is the margin needed by central differences of the
	// tensor field plus the update stencil.
	tensorHalo = 2

	// divergenceBand bounds the per-channel divergence so that one step
	// stays stable whatever the tensor scale.
	divergenceBand = 0.2

	// damping is the share of the explicit step kept when blending it with
	// the input pixel: 0.9·(in + dt·div) + 0.1·in == in + 0.9·dt·div.
	damping = 0.9
)

// TensorParams configures the structure-tensor kernel.
type TensorParams struct {
	tensor.Params

	// Sigma is the Gaussian scale used to smooth the tensor field.
	Sigma float32

	// DT is the integration time step.
	DT float32
}

// TensorKernel is the structure-tensor (coherence-enhancing) update step.
type TensorKernel struct {
	params TensorParams
	kernel []float32
	halo   int
}

// NewTensorKernel creates a tensor kernel. The halo covers the blur
// support of the field smoothing so that results do not depend on how the
// target is split into tiles.
func NewTensorKernel(p TensorParams) *TensorKernel {
	k := filter.CachedGaussianKernel(p.Sigma)
	return &TensorKernel{
		params: p,
		kernel: k,
		halo:   max(tensorHalo, filter.KernelCenter(len(k))),
	}
}

// Halo implements Kernel.
func (k *TensorKernel) Halo() int {
	return k.halo
}

// MinSize implements MinTarget.
func (k *TensorKernel) MinSize() int {
	return 3
}

// Params returns the kernel parameters.
func (k *TensorKernel) Params() TensorParams {
	return k.params
}

// Step implements Kernel.
func (k *TensorKernel) Step(src *image.Sampler, dst *image.ImageBuf, tile parallel.Tile) {
	r := tile.Source
	fieldLen := tensor.FieldSamples(r)
	scratch := filter.GetScratch(fieldLen + r.Area())
	defer filter.PutScratch(scratch)

	field := tensor.BuildField(src, r, scratch[:fieldLen])
	field.Smooth(k.kernel, scratch[fieldLen:])

	dt := k.params.DT
	for y := tile.Target.Y; y < tile.Target.MaxY(); y++ {
		for x := tile.Target.X; x < tile.Target.MaxX(); x++ {
			d := tensor.FromStructure(field.At(x, y), k.params.Params)

			in := src.At(x, y)
			left := src.At(x-1, y)
			right := src.At(x+1, y)
			up := src.At(x, y-1)
			down := src.At(x, y+1)

			var out Pixel
			for c := range image.Channels {
				div := d.Divergence(in[c], left[c], right[c], up[c], down[c])
				div = clampBand(div, -divergenceBand, divergenceBand)
				out[c] = in[c] + damping*dt*div
			}
			writePixel(dst, x, y, out)
		}
	}
}
