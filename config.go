package diffuse

import (
	"fmt"
	"strings"

	"github.com/gogpu/diffuse/internal/diffusion"
	"github.com/gogpu/diffuse/internal/tensor"
)

// Strategy selects the diffusion policy of an engine.
type Strategy uint8

const (
	// StrategyTensor steers diffusion with a smoothed structure tensor.
	StrategyTensor Strategy = iota

	// StrategyScalar uses per-direction Perona-Malik conductance.
	StrategyScalar
)

// String returns "tensor" or "scalar".
func (s Strategy) String() string {
	switch s {
	case StrategyTensor:
		return "tensor"
	case StrategyScalar:
		return "scalar"
	default:
		return "unknown"
	}
}

// ParseStrategy parses "tensor" or "scalar", ignoring case.
func ParseStrategy(s string) (Strategy, error) {
	switch strings.ToLower(s) {
	case "tensor":
		return StrategyTensor, nil
	case "scalar":
		return StrategyScalar, nil
	}
	return 0, fmt.Errorf("%w: unknown strategy %q", ErrInvalidConfig, s)
}

// ParseEdgeMode parses "clamp", "wrap" or "none" (alias "zero"), ignoring case.
func ParseEdgeMode(s string) (EdgeMode, error) {
	switch strings.ToLower(s) {
	case "clamp":
		return EdgeClamp, nil
	case "wrap":
		return EdgeWrap, nil
	case "none", "zero":
		return EdgeNone, nil
	}
	return 0, fmt.Errorf("%w: unknown edge mode %q", ErrInvalidConfig, s)
}

// Config is the complete parameter set of an engine. Strategy selects which
// of the strategy-specific fields apply; the others are ignored.
type Config struct {
	// Strategy selects the diffusion policy.
	Strategy Strategy

	// Iterations is the number of update passes, 1 to 20.
	Iterations int

	// EdgeMode resolves reads outside the image for every stage.
	EdgeMode EdgeMode

	// Strength is the overall diffusion magnitude, 0 to 20.
	Strength float32

	// Tensor strategy.

	// EdgeThreshold suppresses across-edge conductance as coherence
	// rises, 0 to 2.
	EdgeThreshold float32
	// Anisotropy blends isotropic and edge-aligned diffusion, 0 to 1.
	Anisotropy float32
	// TensorSigma is the structure tensor smoothing scale, 0.5 to 2.
	TensorSigma float32
	// DT is the integration time step, 0.01 to 0.25.
	DT float32

	// Scalar strategy.

	// Alpha is the diffusion strength in homogeneous regions, 0 to 1.
	Alpha float32
	// Kappa is the edge sensitivity, 1 to 50. Larger values preserve less.
	Kappa float32
	// DeltaT is the integration time step, 0.01 to 0.5.
	DeltaT float32
	// GradientScale converts unit-range differences into the units of
	// Kappa. 255 measures Kappa in 8-bit steps.
	GradientScale float32
	// Neighbors is 4 or 8.
	Neighbors int
	// ScaleDiagonalConductance applies the 1/√2 diagonal weight to the
	// conductance argument as well as to the contribution.
	ScaleDiagonalConductance bool
}

// DefaultTensorConfig returns the default structure-tensor configuration.
func DefaultTensorConfig() Config {
	return Config{
		Strategy:      StrategyTensor,
		Iterations:    10,
		EdgeMode:      EdgeClamp,
		Strength:      10,
		EdgeThreshold: 0.9,
		Anisotropy:    0.3,
		TensorSigma:   1,
		DT:            0.1,
	}
}

// DefaultScalarConfig returns the default scalar-conductance configuration.
func DefaultScalarConfig() Config {
	return Config{
		Strategy:      StrategyScalar,
		Iterations:    10,
		EdgeMode:      EdgeClamp,
		Strength:      2.5,
		Alpha:         0.6,
		Kappa:         4,
		DeltaT:        0.3,
		GradientScale: 255,
		Neighbors:     4,
	}
}

// Validate reports the first field outside its range, wrapped in
// ErrInvalidConfig.
func (c Config) Validate() error {
	if c.Iterations < 1 || c.Iterations > 20 {
		return fmt.Errorf("%w: iterations %d outside [1, 20]", ErrInvalidConfig, c.Iterations)
	}
	if !c.EdgeMode.IsValid() {
		return fmt.Errorf("%w: edge mode %d", ErrInvalidConfig, c.EdgeMode)
	}
	if err := checkRange("strength", c.Strength, 0, 20); err != nil {
		return err
	}

	switch c.Strategy {
	case StrategyTensor:
		return firstErr(
			checkRange("edge_threshold", c.EdgeThreshold, 0, 2),
			checkRange("anisotropy", c.Anisotropy, 0, 1),
			checkRange("tensor_sigma", c.TensorSigma, 0.5, 2),
			checkRange("dt", c.DT, 0.01, 0.25),
		)
	case StrategyScalar:
		if err := firstErr(
			checkRange("alpha", c.Alpha, 0, 1),
			checkRange("kappa", c.Kappa, 1, 50),
			checkRange("delta_t", c.DeltaT, 0.01, 0.5),
			checkRange("gradient_scale", c.GradientScale, 1, 65535),
		); err != nil {
			return err
		}
		if !diffusion.Neighborhood(c.Neighbors).IsValid() {
			return fmt.Errorf("%w: neighbors %d not 4 or 8", ErrInvalidConfig, c.Neighbors)
		}
		return nil
	default:
		return fmt.Errorf("%w: strategy %d", ErrInvalidConfig, c.Strategy)
	}
}

// kernel builds the per-tile update step for the configured strategy.
// The config must be valid.
func (c Config) kernel() diffusion.Kernel {
	if c.Strategy == StrategyScalar {
		return diffusion.NewScalarKernel(diffusion.ScalarParams{
			Alpha:                    c.Alpha,
			Kappa:                    c.Kappa,
			Strength:                 c.Strength,
			DeltaT:                   c.DeltaT,
			GradientScale:            c.GradientScale,
			Neighbors:                diffusion.Neighborhood(c.Neighbors),
			ScaleDiagonalConductance: c.ScaleDiagonalConductance,
		})
	}
	return diffusion.NewTensorKernel(diffusion.TensorParams{
		Params: tensor.Params{
			Strength:      c.Strength,
			EdgeThreshold: c.EdgeThreshold,
			Anisotropy:    c.Anisotropy,
		},
		Sigma: c.TensorSigma,
		DT:    c.DT,
	})
}

// checkRange returns an error when v is outside [lo, hi] or NaN.
func checkRange(name string, v, lo, hi float32) error {
	if !(v >= lo && v <= hi) {
		return fmt.Errorf("%w: %s %v outside [%v, %v]", ErrInvalidConfig, name, v, lo, hi)
	}
	return nil
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
