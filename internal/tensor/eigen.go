package tensor

import "github.com/chewxy/math32"

// Epsilon guards every division and degenerate-direction test.
const Epsilon = 1e-5

// EigenPair is the eigen-decomposition of a Structure.
//
// Lambda1 >= Lambda2 always. (V1x, V1y) is the unit eigenvector of Lambda1,
// or (1, 0) when the tensor is isotropic and the direction is undefined.
type EigenPair struct {
	Lambda1, Lambda2 float32
	V1x, V1y         float32
}

// Eigen decomposes a symmetric 2x2 tensor in closed form.
func Eigen(s Structure) EigenPair {
	trace := s.Ixx + s.Iyy
	det := s.Ixx*s.Iyy - s.Ixy*s.Ixy
	half := trace / 2
	disc := math32.Sqrt(max(0, half*half-det))

	e := EigenPair{
		Lambda1: half + disc,
		Lambda2: half - disc,
	}

	vx, vy := s.Ixy, e.Lambda1-s.Ixx
	norm := math32.Sqrt(vx*vx + vy*vy)
	if !(norm >= Epsilon) {
		// (Ixy, λ1-Ixx) vanishes when Ixy == 0 and Ixx is the larger
		// diagonal, where the x axis is principal, and for isotropic tensors.
		e.V1x, e.V1y = 1, 0
		return e
	}
	e.V1x, e.V1y = vx/norm, vy/norm
	return e
}

// Perpendicular returns the principal direction rotated by 90 degrees.
func (e EigenPair) Perpendicular() (x, y float32) {
	return -e.V1y, e.V1x
}

// Coherence measures how strongly oriented the local structure is, in [0, 1].
//
// It is the normalized eigenvalue spread (λ1-λ2)/(λ1+λ2+ε), attenuated by
// exp(-1/(|∇I|+ε)) with |∇I| = sqrt(λ1+λ2), so weak gradients cannot read
// as edges. Flat regions yield 0.
func Coherence(e EigenPair) float32 {
	sum := e.Lambda1 + e.Lambda2
	mag := math32.Sqrt(max(sum, 0))
	if !(mag > Epsilon) {
		return 0
	}
	c := (e.Lambda1 - e.Lambda2) / (sum + Epsilon) * math32.Exp(-1/(mag+Epsilon))
	return clamp(c, 0, 1)
}

// clamp limits v to [lo, hi]; NaN maps to lo.
func clamp(v, lo, hi float32) float32 {
	if !(v > lo) {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
