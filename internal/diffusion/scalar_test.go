package diffusion

import (
	"math"
	"testing"

	"github.com/gogpu/diffuse/internal/image"
)

func defaultScalarParams() ScalarParams {
	return ScalarParams{
		Alpha:         0.6,
		Kappa:         4,
		Strength:      2.5,
		DeltaT:        0.3,
		GradientScale: 255,
		Neighbors:     Four,
	}
}

func TestScalarKernel_HardEdgePersists(t *testing.T) {
	img := newImage(t, 10, 10, func(x, _ int) float32 {
		if x >= 5 {
			return 1
		}
		return 0
	})
	p := defaultScalarParams()
	p.Alpha = 0.5
	p.Kappa = 5
	k := NewScalarKernel(p)

	// The step across the edge is blocked.
	if w := k.Weight(1, Offset{DX: 1, Weight: 1}); w > 1e-30 {
		t.Errorf("edge conductance = %v, want ~0", w)
	}

	out := img
	for range 5 {
		out = runPass(t, k, out, image.EdgeClamp, 64, 64)
	}
	if d := maxDiff(out, img); d != 0 {
		t.Errorf("hard edge blurred by %v", d)
	}
}

func TestScalarKernel_FlatUnchanged(t *testing.T) {
	img := newImage(t, 7, 5, func(int, int) float32 { return 0.3 })

	for _, n := range []Neighborhood{Four, Eight} {
		p := defaultScalarParams()
		p.Neighbors = n
		out := runPass(t, NewScalarKernel(p), img, image.EdgeClamp, 64, 64)
		if d := maxDiff(out, img); d != 0 {
			t.Errorf("%v neighbors: flat image changed by %v", n, d)
		}
	}
}

func TestScalarKernel_ZeroGainIdentity(t *testing.T) {
	img := newNoise(t, 12, 12, 4)

	tests := []struct {
		name string
		edit func(*ScalarParams)
	}{
		{"alpha", func(p *ScalarParams) { p.Alpha = 0 }},
		{"strength", func(p *ScalarParams) { p.Strength = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := defaultScalarParams()
			tt.edit(&p)
			out := runPass(t, NewScalarKernel(p), img, image.EdgeClamp, 64, 64)
			if d := maxDiff(out, img); d != 0 {
				t.Errorf("zero gain changed image by %v", d)
			}
		})
	}
}

func TestScalarKernel_SmoothsWeakGradients(t *testing.T) {
	// A gentle ramp is well below kappa and diffuses freely.
	img := newImage(t, 8, 8, func(x, y int) float32 {
		if x == 3 && y == 3 {
			return 0.51
		}
		return 0.5
	})
	p := defaultScalarParams()
	p.GradientScale = 1
	out := runPass(t, NewScalarKernel(p), img, image.EdgeClamp, 64, 64)

	got := out.Pixel(3, 3)[0]
	if got >= 0.51 || got < 0.5 {
		t.Errorf("bump = %v, want in [0.5, 0.51)", got)
	}
	if out.Pixel(4, 3)[0] <= 0.5 {
		t.Errorf("neighbor = %v, want > 0.5", out.Pixel(4, 3)[0])
	}
}

func TestScalarKernel_Range(t *testing.T) {
	img := newNoise(t, 16, 16, 5)

	for _, mode := range []image.EdgeMode{image.EdgeClamp, image.EdgeWrap, image.EdgeNone} {
		p := defaultScalarParams()
		p.GradientScale = 1
		p.Neighbors = Eight
		k := NewScalarKernel(p)

		out := img
		for range 10 {
			out = runPass(t, k, out, mode, 64, 64)
		}
		assertUnitRange(t, out)
	}
}

func TestScalarKernel_DiagonalConductanceTunable(t *testing.T) {
	p := defaultScalarParams()
	p.Neighbors = Eight
	diag := Offset{DX: 1, DY: 1, Weight: 1 / math.Sqrt2}
	axis := Offset{DX: 1, Weight: 1}
	g := float32(4.0 / 255)

	plain := NewScalarKernel(p)
	p.ScaleDiagonalConductance = true
	scaled := NewScalarKernel(p)

	wantPlain := float32(math.Exp(-1) / math.Sqrt2)
	if got := plain.Weight(g, diag); math.Abs(float64(got-wantPlain)) > 1e-6 {
		t.Errorf("contribution-only weight = %v, want %v", got, wantPlain)
	}
	wantScaled := float32(math.Exp(-0.5) / math.Sqrt2)
	if got := scaled.Weight(g, diag); math.Abs(float64(got-wantScaled)) > 1e-6 {
		t.Errorf("scaled-argument weight = %v, want %v", got, wantScaled)
	}
	if plain.Weight(g, axis) != scaled.Weight(g, axis) {
		t.Error("tunable changed an axis weight")
	}
}

func TestScalarKernel_TilingInvariant(t *testing.T) {
	img := newNoise(t, 23, 31, 6)
	p := defaultScalarParams()
	p.Neighbors = Eight
	k := NewScalarKernel(p)

	whole := runPass(t, k, img, image.EdgeWrap, 64, 64)
	tiled := runPass(t, k, img, image.EdgeWrap, 4, 3)
	if d := maxDiff(whole, tiled); d != 0 {
		t.Errorf("tiled result differs by %v", d)
	}
	if k.Halo() != 1 || MinSize(k) != 2 {
		t.Errorf("Halo() = %d, MinSize() = %d, want 1, 2", k.Halo(), MinSize(k))
	}
}
