package tensor

import "github.com/chewxy/math32"

// minConductance is the lower clamp for both diffusion coefficients.
// It is lowered to the strength itself when strength is smaller, so a zero
// strength still yields a zero tensor.
const minConductance = 0.1

// Params controls how local structure maps to diffusion coefficients.
type Params struct {
	// Strength is the maximum conductance along either principal axis.
	Strength float32

	// EdgeThreshold controls how quickly diffusion across an edge is
	// suppressed as coherence grows.
	EdgeThreshold float32

	// Anisotropy in [0, 1] blends between isotropic (0) and fully
	// coherence-driven (1) diffusion along the edge.
	Anisotropy float32
}

// Coefficients returns the diffusion coefficients across (c1) and along (c2)
// the dominant gradient direction for the given coherence. Both lie in
// [min(0.1, Strength), Strength].
func Coefficients(coherence float32, p Params) (c1, c2 float32) {
	coh2 := coherence * coherence
	c1 = p.Strength / (1 + p.EdgeThreshold*coh2)
	c2 = p.Strength * (1 - p.Anisotropy + p.Anisotropy*math32.Exp(-coh2))

	lo := min(minConductance, p.Strength)
	return clamp(c1, lo, p.Strength), clamp(c2, lo, p.Strength)
}

// DiffusionTensor is the symmetric 2x2 matrix [[Dxx, Dxy], [Dxy, Dyy]]
// steering the flux at one pixel.
type DiffusionTensor struct {
	Dxx, Dxy, Dyy float32
}

// NewDiffusionTensor assembles c1·v1·v1ᵀ + c2·v2·v2ᵀ from the principal
// direction v1 and its perpendicular v2.
func NewDiffusionTensor(e EigenPair, c1, c2 float32) DiffusionTensor {
	v1x, v1y := e.V1x, e.V1y
	v2x, v2y := e.Perpendicular()
	return DiffusionTensor{
		Dxx: c1*v1x*v1x + c2*v2x*v2x,
		Dxy: c1*v1x*v1y + c2*v2x*v2y,
		Dyy: c1*v1y*v1y + c2*v2y*v2y,
	}
}

// FromStructure runs the full per-pixel chain: eigen-decomposition,
// coherence, coefficients and tensor assembly.
func FromStructure(s Structure, p Params) DiffusionTensor {
	e := Eigen(s)
	c1, c2 := Coefficients(Coherence(e), p)
	return NewDiffusionTensor(e, c1, c2)
}

// At returns the matrix entry at (row, col), each in {0, 1}.
func (d DiffusionTensor) At(row, col int) float32 {
	switch {
	case row == 0 && col == 0:
		return d.Dxx
	case row == 1 && col == 1:
		return d.Dyy
	default:
		return d.Dxy
	}
}

// Flux returns D·∇I for the gradient (ix, iy).
func (d DiffusionTensor) Flux(ix, iy float32) (fx, fy float32) {
	return d.Dxx*ix + d.Dxy*iy, d.Dxy*ix + d.Dyy*iy
}

// Divergence approximates div(D·∇I) on the 5-point cross around a pixel
// with value c and neighbors left, right, up and down. Second differences
// are weighted by Dxx and Dyy, first differences by Dxy, and the result is
// averaged over both axes.
func (d DiffusionTensor) Divergence(c, left, right, up, down float32) float32 {
	divX := (right-2*c+left)*d.Dxx + (down-up)*d.Dxy
	divY := (down-2*c+up)*d.Dyy + (right-left)*d.Dxy
	return (divX + divY) / 2
}
