// Package diffusion implements the per-tile update steps of the diffusion
// engine: neighbor offsets, gradient estimation, edge-stopping conductance
// and the tensor and scalar update kernels.
//
// Every kernel reads from a frozen source through an image.Sampler and
// writes only the target pixels of its tile into the destination buffer, so
// tiles of one pass are independent.
package diffusion

import "github.com/chewxy/math32"

// Neighborhood selects how many neighbor directions the scalar kernel uses.
type Neighborhood uint8

const (
	// Four samples the axis-aligned neighbors W, E, N, S.
	Four Neighborhood = 4

	// Eight adds the four diagonals.
	Eight Neighborhood = 8
)

// String returns "4" or "8".
func (n Neighborhood) String() string {
	switch n {
	case Four:
		return "4"
	case Eight:
		return "8"
	default:
		return "Unknown"
	}
}

// IsValid reports whether n is Four or Eight.
func (n Neighborhood) IsValid() bool {
	return n == Four || n == Eight
}

// Offset is one neighbor direction with its step weight.
type Offset struct {
	DX, DY int

	// Weight is 1 for axis neighbors and 1/√2 for diagonals, which
	// equalizes the longer step length.
	Weight float32
}

// Diagonal reports whether the offset moves along both axes.
func (o Offset) Diagonal() bool {
	return o.DX != 0 && o.DY != 0
}

var (
	axisOffsets = []Offset{
		{DX: -1, DY: 0, Weight: 1},
		{DX: 1, DY: 0, Weight: 1},
		{DX: 0, DY: -1, Weight: 1},
		{DX: 0, DY: 1, Weight: 1},
	}

	allOffsets = append(append([]Offset(nil), axisOffsets...),
		Offset{DX: -1, DY: -1, Weight: 1 / math32.Sqrt2},
		Offset{DX: 1, DY: -1, Weight: 1 / math32.Sqrt2},
		Offset{DX: -1, DY: 1, Weight: 1 / math32.Sqrt2},
		Offset{DX: 1, DY: 1, Weight: 1 / math32.Sqrt2},
	)
)

// Offsets returns the neighbor offsets for n in a fixed order: W, E, N, S,
// then NW, NE, SW, SE. Unknown values fall back to Four. The returned slice
// is shared and must not be modified.
func (n Neighborhood) Offsets() []Offset {
	if n == Eight {
		return allOffsets
	}
	return axisOffsets
}
