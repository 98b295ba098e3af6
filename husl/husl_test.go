package husl

import (
	"math"
	"math/rand"
	"testing"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Reference HUSL values for primary colors, from the canonical HUSL
// (rev4) implementation.
var knownColors = []struct {
	name    string
	rgb     [3]uint8
	h, s, l float64
}{
	{"red", [3]uint8{255, 0, 0}, 12.177050630061776, 100.0, 53.23711559542933},
	{"green", [3]uint8{0, 255, 0}, 127.71501294924046, 100.0, 87.73552635371513},
	{"blue", [3]uint8{0, 0, 255}, 265.8743202181779, 100.0, 32.30086775656343},
	{"white", [3]uint8{255, 255, 255}, 0.0, 0.0, 100.0},
	{"black", [3]uint8{0, 0, 0}, 0.0, 0.0, 0.0},
}

func TestToHUSLKnownColors(t *testing.T) {
	for _, tt := range knownColors {
		t.Run(tt.name, func(t *testing.T) {
			px, err := TensorFromBytes(tt.rgb[:], 3)
			if err != nil {
				t.Fatal(err)
			}
			got, err := ToHUSL(px, 0, nil)
			if err != nil {
				t.Fatal(err)
			}
			if len(got.Shape) != 1 || got.Shape[0] != 3 {
				t.Fatalf("shape = %v, want [3]", got.Shape)
			}
			h, s, l := got.Data[0], got.Data[1], got.Data[2]
			// Hue is meaningless for achromatic colors; only compare it
			// where there is chroma.
			if tt.s != 0 && math.Abs(h-tt.h) > 1e-3 {
				t.Errorf("hue = %v, want %v", h, tt.h)
			}
			if math.Abs(s-tt.s) > 1e-3 {
				t.Errorf("saturation = %v, want %v", s, tt.s)
			}
			if math.Abs(l-tt.l) > 1e-3 {
				t.Errorf("lightness = %v, want %v", l, tt.l)
			}
		})
	}
}

// TestReferenceTierFixedImage converts a fixed 4x4 image with every
// optional tier disabled and checks the literal expected values.
func TestReferenceTierFixedImage(t *testing.T) {
	saveBackendFlags(t)
	SetSIMDEnabled(false)
	SetExpressionEnabled(false)
	SetCompiledEnabled(false)

	img := NewByteTensor(4, 4, 3)
	for i := 0; i < 16; i++ {
		c := knownColors[i%len(knownColors)]
		copy(img.Data[i*3:i*3+3], c.rgb[:])
	}

	hsl, err := ToHUSLBytes(img, 0, nil)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 16; i++ {
		c := knownColors[i%len(knownColors)]
		h, s, l := hsl.Data[i*3], hsl.Data[i*3+1], hsl.Data[i*3+2]
		if c.s != 0 && math.Abs(h-c.h) > 1e-3 {
			t.Errorf("pixel %d (%s): hue %v, want %v", i, c.name, h, c.h)
		}
		if math.Abs(s-c.s) > 1e-3 || math.Abs(l-c.l) > 1e-3 {
			t.Errorf("pixel %d (%s): S,L = %v,%v want %v,%v", i, c.name, s, l, c.s, c.l)
		}
	}
}

func TestLightnessExtremesExact(t *testing.T) {
	white, _ := TensorFromBytes([]uint8{255, 255, 255}, 3)
	hsl, err := ToHUSL(white, 0, nil)
	if err != nil {
		t.Fatal(err)
	}
	if hsl.Data[1] != 0 || hsl.Data[2] != 100 {
		t.Errorf("white = %v, want saturation 0 and lightness 100 exactly", hsl.Data)
	}

	black, _ := TensorFromBytes([]uint8{0, 0, 0}, 3)
	hsl, err = ToHUSL(black, 0, nil)
	if err != nil {
		t.Fatal(err)
	}
	if hsl.Data[0] != 0 || hsl.Data[1] != 0 || hsl.Data[2] != 0 {
		t.Errorf("black = %v, want all zero", hsl.Data)
	}
}

func TestRangeInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	img := NewTensor(32, 32, 3)
	for i := range img.Data {
		img.Data[i] = rng.Float64()
	}

	hsl, err := ToHUSL(img, 0, nil)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < len(hsl.Data); i += 3 {
		h, s, l := hsl.Data[i], hsl.Data[i+1], hsl.Data[i+2]
		if h < 0 || h >= 360 {
			t.Fatalf("pixel %d: hue %v out of [0,360)", i/3, h)
		}
		if s < 0 || s > 100.0001 {
			t.Fatalf("pixel %d: saturation %v out of [0,100]", i/3, s)
		}
		if l < 0 || l > 100 {
			t.Fatalf("pixel %d: lightness %v out of [0,100]", i/3, l)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	// Sweep the RGB cube on a coarse grid; every channel must survive
	// the round trip within one integer unit.
	var pixels []uint8
	for r := 0; r <= 255; r += 17 {
		for g := 0; g <= 255; g += 17 {
			for b := 0; b <= 255; b += 17 {
				pixels = append(pixels, uint8(r), uint8(g), uint8(b))
			}
		}
	}
	n := len(pixels) / 3
	src := &ByteTensor{Shape: []int{n, 3}, Data: pixels}

	hsl, err := ToHUSLBytes(src, 0, nil)
	if err != nil {
		t.Fatal(err)
	}
	back, err := ToRGB(hsl, 0, nil)
	if err != nil {
		t.Fatal(err)
	}
	for i, want := range pixels {
		got := back.Data[i]
		diff := int(got) - int(want)
		if diff < -1 || diff > 1 {
			t.Fatalf("value %d: round trip %d -> %d (pixel %v)", i, want, got, pixels[i/3*3:i/3*3+3])
		}
	}

	// Pure black and white are masked at the extremes and must map to
	// themselves exactly.
	for _, v := range []uint8{0, 255} {
		px := &ByteTensor{Shape: []int{3}, Data: []uint8{v, v, v}}
		hsl, err := ToHUSLBytes(px, 0, nil)
		if err != nil {
			t.Fatal(err)
		}
		back, err := ToRGB(hsl, 0, nil)
		if err != nil {
			t.Fatal(err)
		}
		for ch := 0; ch < 3; ch++ {
			if back.Data[ch] != v {
				t.Errorf("extreme %d channel %d: got %d", v, ch, back.Data[ch])
			}
		}
	}
}

// TestAgainstGoColorful cross-checks against an independent HSLuv
// implementation. go-colorful reports saturation and lightness in
// [0,1] rather than percent.
func TestAgainstGoColorful(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for i := 0; i < 200; i++ {
		r := float64(rng.Intn(256)) / 255.0
		g := float64(rng.Intn(256)) / 255.0
		b := float64(rng.Intn(256)) / 255.0

		got, err := ToHUSL(Pixel(r, g, b), 0, nil)
		if err != nil {
			t.Fatal(err)
		}
		wantH, wantS, wantL := colorful.Color{R: r, G: g, B: b}.HSLuv()

		if math.Abs(got.Data[2]-wantL*100) > 0.01 {
			t.Fatalf("rgb(%v,%v,%v): lightness %v, colorful says %v", r, g, b, got.Data[2], wantL*100)
		}
		if math.Abs(got.Data[1]-wantS*100) > 0.05 {
			t.Fatalf("rgb(%v,%v,%v): saturation %v, colorful says %v", r, g, b, got.Data[1], wantS*100)
		}
		// Hue is ill-conditioned for achromatic colors; compare only
		// when there is real chroma.
		if got.Data[1] > 0.1 {
			diff := math.Abs(got.Data[0] - wantH)
			if diff > 180 {
				diff = 360 - diff
			}
			if diff > 0.05 {
				t.Fatalf("rgb(%v,%v,%v): hue %v, colorful says %v", r, g, b, got.Data[0], wantH)
			}
		}
	}
}

func TestToHueMatchesToHUSL(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	img := NewTensor(5, 7, 3)
	for i := range img.Data {
		img.Data[i] = rng.Float64()
	}

	hsl, err := ToHUSL(img, 0, nil)
	if err != nil {
		t.Fatal(err)
	}
	hue, err := ToHue(img, 0, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(hue.Shape) != 2 || hue.Shape[0] != 5 || hue.Shape[1] != 7 {
		t.Fatalf("hue shape = %v, want [5 7]", hue.Shape)
	}
	for i := range hue.Data {
		if math.Abs(hue.Data[i]-hsl.Data[i*3]) > 1e-12 {
			t.Fatalf("pixel %d: hue-only %v vs full %v", i, hue.Data[i], hsl.Data[i*3])
		}
	}
}

func TestAlphaChannelDropped(t *testing.T) {
	rgba := NewTensor(2, 2, 4)
	for i := 0; i < 4; i++ {
		rgba.Data[i*4+0] = 1.0 // red
		rgba.Data[i*4+3] = 0.5 // alpha, must be ignored
	}
	hsl, err := ToHUSL(rgba, 0, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(hsl.Shape) != 3 || hsl.Shape[2] != 3 {
		t.Fatalf("shape = %v, want trailing dimension 3", hsl.Shape)
	}
	for i := 0; i < 4; i++ {
		if math.Abs(hsl.Data[i*3]-12.177050630061776) > 1e-3 {
			t.Fatalf("pixel %d: hue %v, want pure red", i, hsl.Data[i*3])
		}
	}
}
