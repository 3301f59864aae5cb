package diffusion

import (
	"github.com/chewxy/math32"

	"github.com/gogpu/diffuse/internal/image"
	"github.com/gogpu/diffuse/internal/parallel"
)

const (
	// scalarHalo is the margin needed by single-offset neighbor differences.
	scalarHalo = 1

	// fluxBand bounds the normalized per-channel flux.
	fluxBand = 2

	// minWeightSum is the conductance sum below which a pixel is left as is.
	minWeightSum = 1e-6
)

// ScalarParams configures the scalar-conductance (Perona-Malik) kernel.
type ScalarParams struct {
	// Alpha is the diffusion strength in homogeneous regions.
	Alpha float32

	// Kappa is the edge sensitivity. Larger values suppress less.
	Kappa float32

	// Strength scales the normalized flux together with Alpha.
	Strength float32

	// DeltaT is the integration time step.
	DeltaT float32

	// GradientScale multiplies the first-channel difference before it is
	// compared with Kappa. 255 measures Kappa in 8-bit intensity steps;
	// 1 compares unit-range differences directly.
	GradientScale float32

	// Neighbors selects 4 or 8 directions.
	Neighbors Neighborhood

	// ScaleDiagonalConductance also applies the 1/√2 diagonal weight to
	// the conductance argument, not only to the contribution.
	ScaleDiagonalConductance bool
}

// ScalarKernel is the per-direction conductance update step.
type ScalarKernel struct {
	params  ScalarParams
	offsets []Offset
}

// NewScalarKernel creates a scalar kernel.
func NewScalarKernel(p ScalarParams) *ScalarKernel {
	return &ScalarKernel{
		params:  p,
		offsets: p.Neighbors.Offsets(),
	}
}

// Halo implements Kernel.
func (k *ScalarKernel) Halo() int {
	return scalarHalo
}

// MinSize implements MinTarget.
func (k *ScalarKernel) MinSize() int {
	return 2
}

// Params returns the kernel parameters.
func (k *ScalarKernel) Params() ScalarParams {
	return k.params
}

// Weight returns the conductance-weighted step weight of offset o for a
// first-channel difference g.
func (k *ScalarKernel) Weight(g float32, o Offset) float32 {
	arg := math32.Abs(g) * k.params.GradientScale
	if k.params.ScaleDiagonalConductance && o.Diagonal() {
		arg *= o.Weight
	}
	return Conductance(arg, k.params.Kappa) * o.Weight
}

// Step implements Kernel.
func (k *ScalarKernel) Step(src *image.Sampler, dst *image.ImageBuf, tile parallel.Tile) {
	gain := k.params.Alpha * k.params.Strength

	for y := tile.Target.Y; y < tile.Target.MaxY(); y++ {
		for x := tile.Target.X; x < tile.Target.MaxX(); x++ {
			in := src.At(x, y)

			var acc Pixel
			var weightSum float32
			for _, o := range k.offsets {
				d := Difference(src, x, y, in, o)
				w := k.Weight(d[0], o)
				if w == 0 {
					continue
				}
				weightSum += w
				for c := range image.Channels {
					acc[c] += w * d[c]
				}
			}

			out := in
			if weightSum > minWeightSum {
				norm := gain / weightSum
				for c := range image.Channels {
					flux := clampBand(norm*acc[c], -fluxBand, fluxBand)
					out[c] = in[c] + k.params.DeltaT*flux
				}
			}
			writePixel(dst, x, y, out)
		}
	}
}
