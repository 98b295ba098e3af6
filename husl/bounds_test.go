package husl

import (
	"math"
	"testing"
)

func TestLightnessSubBranch(t *testing.T) {
	// The cubic form drops below epsilon at L=8, the same point where
	// the inverse lightness function changes branch.
	for _, l := range []float64{0, 0.001, 1, 7.9} {
		if got, want := lightnessSub(l), l/kappa; got != want {
			t.Errorf("lightnessSub(%v) = %v, want linear form %v", l, got, want)
		}
	}
	for _, l := range []float64{8.1, 50, 100} {
		s := l + 16.0
		if got, want := lightnessSub(l), s*s*s/boundCubeDiv; got != want {
			t.Errorf("lightnessSub(%v) = %v, want cubic form %v", l, got, want)
		}
	}
}

func TestRayLength(t *testing.T) {
	tests := []struct {
		name         string
		sinH, cosH   float64
		line         boundLine
		want         float64
		wantInfinite bool
	}{
		{name: "straight up", sinH: 1, cosH: 0, line: boundLine{slope: 0, intercept: 2}, want: 2},
		{name: "behind ray", sinH: 1, cosH: 0, line: boundLine{slope: 0, intercept: -2}, wantInfinite: true},
		{name: "parallel", sinH: 0, cosH: 1, line: boundLine{slope: 0, intercept: 0}, wantInfinite: true},
		{name: "diagonal", sinH: 0, cosH: 1, line: boundLine{slope: -1, intercept: 3}, want: 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := rayLength(tt.sinH, tt.cosH, tt.line)
			if tt.wantInfinite {
				if !math.IsInf(got, 1) {
					t.Fatalf("got %v, want +Inf", got)
				}
				return
			}
			if math.Abs(got-tt.want) > 1e-12 {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMaxChromaPositiveFinite(t *testing.T) {
	for l := 0.5; l < 100; l += 0.5 {
		for h := 0.0; h < 360; h += 7.5 {
			mx := maxChromaForLH(l, h)
			if math.IsInf(mx, 0) || math.IsNaN(mx) || mx <= 0 {
				t.Fatalf("maxChromaForLH(%v, %v) = %v", l, h, mx)
			}
		}
	}
}

// TestMaxChromaAtPrimaries checks the solver against the forward
// conversion: fully saturated colors sit exactly on a gamut boundary,
// so their chroma must equal the solver's bound at their (L, H).
func TestMaxChromaAtPrimaries(t *testing.T) {
	colors := [][3]float64{
		{1, 0, 0}, {0, 1, 0}, {0, 0, 1},
		{1, 1, 0}, {0, 1, 1}, {1, 0, 1},
		{1, 0.5, 0}, {0.5, 0, 1},
	}
	for _, rgb := range colors {
		l, c, h := pixelToLCH(rgb[0], rgb[1], rgb[2])
		mx := maxChromaForLH(l, h)
		if math.Abs(mx-c)/c > 1e-9 {
			t.Errorf("rgb %v: boundary chroma %v, pixel chroma %v", rgb, mx, c)
		}
	}
}

// TestMaxChromaBoundsGamut samples in-gamut colors and verifies none
// exceeds the solver's chroma bound.
func TestMaxChromaBoundsGamut(t *testing.T) {
	for r := 0.0; r <= 1.0; r += 0.2 {
		for g := 0.0; g <= 1.0; g += 0.2 {
			for b := 0.0; b <= 1.0; b += 0.2 {
				l, c, h := pixelToLCH(r, g, b)
				if l <= lightnessMin || l >= lightnessMax || c < 1e-8 {
					continue
				}
				mx := maxChromaForLH(l, h)
				if c > mx*(1+1e-9) {
					t.Fatalf("rgb(%v,%v,%v): chroma %v exceeds bound %v", r, g, b, c, mx)
				}
			}
		}
	}
}
