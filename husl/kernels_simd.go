// Copyright 2025 go-husl Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package husl

import (
	"math"

	"github.com/ajroetker/go-highway/hwy"
	hwymath "github.com/ajroetker/go-highway/hwy/contrib/math"
)

// SIMD tier: lane-batched kernels on go-highway vectors. All control
// flow is branch-free masking (hwy.Merge); divide-by-zero and NaN
// lanes are masked to 0 and invalid boundary rays to +Inf, matching
// the reference tier's edge policy. Pixels load in groups of
// hwy.MaxLanes via LoadInterleaved3; short tail batches are
// zero-padded on load and clipped on store.

func init() {
	mustRegister(KernelRGBToHUSL, BackendSIMD, 3, simdRGBToHUSL)
	mustRegister(KernelHUSLToRGB, BackendSIMD, 3, simdHUSLToRGB)
	mustRegister(KernelRGBToHue, BackendSIMD, 1, simdRGBToHue)
}

type vec = hwy.Vec[float64]

func vecNaNToZero(v vec) vec {
	zero := hwy.Zero[float64]()
	v = hwy.Merge(zero, v, hwy.IsNaN(v))
	return hwy.Merge(zero, v, hwy.IsInf(v, 0))
}

func vecDot(row [3]float64, a, b, c vec) vec {
	sum := hwy.Mul(hwy.Set(row[0]), a)
	sum = hwy.MulAdd(hwy.Set(row[1]), b, sum)
	return hwy.MulAdd(hwy.Set(row[2]), c, sum)
}

func vecLinearize(v vec) vec {
	gt := hwy.Greater(v, hwy.Set(srgbGammaThreshold))
	pow := hwy.Pow(
		hwy.Div(hwy.Add(v, hwy.Set(srgbGammaOffset)), hwy.Set(1.0+srgbGammaOffset)),
		hwy.Set(srgbGammaExponent))
	lin := hwy.Div(v, hwy.Set(srgbLinearSlope))
	return hwy.Merge(pow, lin, gt)
}

func vecDelinearize(v vec) vec {
	gt := hwy.Greater(v, hwy.Set(srgbLinearThreshold))
	pow := hwy.Sub(
		hwy.Mul(hwy.Set(1.0+srgbGammaOffset), hwy.Pow(v, hwy.Set(1.0/srgbGammaExponent))),
		hwy.Set(srgbGammaOffset))
	lin := hwy.Mul(v, hwy.Set(srgbLinearSlope))
	return hwy.Merge(pow, lin, gt)
}

func vecToLight(y vec) vec {
	yn := hwy.Div(y, hwy.Set(refY))
	cube := hwy.Sub(hwy.Mul(hwymath.Cbrt(yn), hwy.Set(116.0)), hwy.Set(16.0))
	lin := hwy.Mul(yn, hwy.Set(kappa))
	return hwy.Merge(cube, lin, hwy.Greater(y, hwy.Set(epsilon)))
}

func vecFromLight(l vec) vec {
	s := hwy.Div(hwy.Add(l, hwy.Set(16.0)), hwy.Set(116.0))
	cube := hwy.Mul(hwy.Set(refY), hwy.Mul(hwy.Mul(s, s), s))
	lin := hwy.Div(hwy.Mul(hwy.Set(refY), l), hwy.Set(kappa))
	return hwy.Merge(cube, lin, hwy.Greater(l, hwy.Set(lightnessBranch)))
}

// vecMaxChroma is the lane-batched bounds solver: a running minimum
// over the six boundary-line ray lengths, one line live at a time.
func vecMaxChroma(l, h vec) vec {
	inf := hwy.Set(math.Inf(1))

	s1 := hwy.Add(l, hwy.Set(16.0))
	sub := hwy.Div(hwy.Mul(hwy.Mul(s1, s1), s1), hwy.Set(boundCubeDiv))
	sub = hwy.Merge(hwy.Div(l, hwy.Set(kappa)), sub, hwy.Less(sub, hwy.Set(epsilon)))

	hRad := hwy.Mul(hwy.Div(h, hwy.Set(360.0)), hwy.Set(2.0*math.Pi))
	sinH, cosH := hwymath.SinCos(hRad)

	minLen := inf
	for ch := 0; ch < 3; ch++ {
		t1 := hwy.Mul(sub, hwy.Set(boundTop1[ch]))
		t2 := hwy.Mul(hwy.Mul(l, sub), hwy.Set(boundTop2[ch]))
		b0 := hwy.Mul(sub, hwy.Set(boundBottom[ch]))
		b1 := hwy.Add(b0, hwy.Set(boundBottomC))

		len0 := vecRayLength(sinH, cosH, hwy.Div(t1, b0), hwy.Div(t2, b0))
		len1 := vecRayLength(sinH, cosH, hwy.Div(t1, b1),
			hwy.Div(hwy.Sub(t2, hwy.Mul(l, hwy.Set(boundTop2L))), b1))

		minLen = hwy.Min(minLen, len0)
		minLen = hwy.Min(minLen, len1)
	}
	return minLen
}

func vecRayLength(sinH, cosH, slope, intercept vec) vec {
	zero := hwy.Zero[float64]()
	inf := hwy.Set(math.Inf(1))
	length := hwy.Div(intercept, hwy.Sub(sinH, hwy.Mul(slope, cosH)))
	length = hwy.Merge(inf, length, hwy.IsNaN(length))
	return hwy.Merge(inf, length, hwy.Less(length, zero))
}

// vecLCH runs a batch of RGB lanes through XYZ and LUV to LCH.
func vecLCH(r, g, b vec) (l, c, h vec) {
	zero := hwy.Zero[float64]()

	lr := vecLinearize(r)
	lg := vecLinearize(g)
	lb := vecLinearize(b)

	x := vecDot(rgbToXYZMatrix[0], lr, lg, lb)
	y := vecDot(rgbToXYZMatrix[1], lr, lg, lb)
	z := vecDot(rgbToXYZMatrix[2], lr, lg, lb)

	denom := hwy.MulAdd(hwy.Set(3.0), z, hwy.MulAdd(hwy.Set(15.0), y, x))
	uVar := hwy.Div(hwy.Mul(hwy.Set(4.0), x), denom)
	vVar := hwy.Div(hwy.Mul(hwy.Set(9.0), y), denom)
	denomZero := hwy.Equal(denom, zero)
	uVar = hwy.Merge(zero, uVar, denomZero)
	vVar = hwy.Merge(zero, vVar, denomZero)

	l = vecToLight(y)
	l13 := hwy.Mul(l, hwy.Set(13.0))
	u := hwy.Mul(l13, hwy.Sub(uVar, hwy.Set(refU)))
	v := hwy.Mul(l13, hwy.Sub(vVar, hwy.Set(refV)))
	u = vecNaNToZero(u)
	v = vecNaNToZero(v)

	lZero := hwy.Equal(l, zero)
	u = hwy.Merge(zero, u, lZero)
	v = hwy.Merge(zero, v, lZero)

	// Clear -0.0 lanes; a negative zero flips the sign of atan2.
	u = hwy.Merge(zero, u, hwy.Equal(u, zero))
	v = hwy.Merge(zero, v, hwy.Equal(v, zero))

	c = hwymath.Hypot(u, v)
	h = hwy.Mul(hwymath.Atan2(v, u), hwy.Set(180.0/math.Pi))
	h = hwy.Merge(hwy.Add(h, hwy.Set(360.0)), h, hwy.Less(h, zero))
	// Lanes where an ulp-scale negative angle rounded to exactly 360
	// wrap back to 0.
	h = hwy.Merge(zero, h, hwy.GreaterEqual(h, hwy.Set(360.0)))
	return l, c, h
}

func simdRGBToHUSL(dst, src []float64) {
	lanes := hwy.MaxLanes[float64]()
	zero := hwy.Zero[float64]()
	n := len(src) / 3

	for i := 0; i < n; i += lanes {
		lo := i * 3
		r, g, b := hwy.LoadInterleaved3(src[lo:])
		l, c, h := vecLCH(r, g, b)

		mx := vecMaxChroma(l, h)
		s := hwy.Mul(hwy.Div(c, mx), hwy.Set(100.0))

		light := hwy.GreaterEqual(l, hwy.Set(lightnessMax))
		dark := hwy.LessEqual(l, hwy.Set(lightnessMin))
		s = hwy.Merge(zero, s, light)
		s = hwy.Merge(zero, s, dark)
		l = hwy.Merge(hwy.Set(100.0), l, light)
		l = hwy.Merge(zero, l, dark)

		hwy.StoreInterleaved3(h, s, l, dst[lo:])
	}
}

func simdRGBToHue(dst, src []float64) {
	lanes := hwy.MaxLanes[float64]()
	n := len(src) / 3

	for i := 0; i < n; i += lanes {
		r, g, b := hwy.LoadInterleaved3(src[i*3:])
		_, _, h := vecLCH(r, g, b)
		hwy.Store(h, dst[i:])
	}
}

func simdHUSLToRGB(dst, src []float64) {
	lanes := hwy.MaxLanes[float64]()
	zero := hwy.Zero[float64]()
	n := len(src) / 3

	for i := 0; i < n; i += lanes {
		lo := i * 3
		h, s, l := hwy.LoadInterleaved3(src[lo:])

		mx := vecMaxChroma(l, h)
		c := hwy.Mul(hwy.Div(mx, hwy.Set(100.0)), s)

		light := hwy.GreaterEqual(l, hwy.Set(lightnessMax))
		dark := hwy.LessEqual(l, hwy.Set(lightnessMin))
		c = hwy.Merge(zero, c, light)
		c = hwy.Merge(zero, c, dark)
		l = hwy.Merge(hwy.Set(100.0), l, light)
		l = hwy.Merge(zero, l, dark)

		sinH, cosH := hwymath.SinCos(hwy.Mul(h, hwy.Set(math.Pi/180.0)))
		u := hwy.Mul(cosH, c)
		v := hwy.Mul(sinH, c)

		y := vecFromLight(l)
		l13 := hwy.Mul(l, hwy.Set(13.0))
		uVar := hwy.Add(hwy.Div(u, l13), hwy.Set(refU))
		vVar := hwy.Add(hwy.Div(v, l13), hwy.Set(refV))

		nineY := hwy.Mul(hwy.Set(9.0), y)
		x := hwy.Div(
			hwy.Neg(hwy.Mul(nineY, uVar)),
			hwy.Sub(hwy.Mul(hwy.Sub(uVar, hwy.Set(4.0)), vVar), hwy.Mul(uVar, vVar)))
		z := hwy.Div(
			hwy.Sub(hwy.Sub(nineY, hwy.Mul(hwy.Mul(hwy.Set(15.0), vVar), y)), hwy.Mul(vVar, x)),
			hwy.Mul(hwy.Set(3.0), vVar))

		x = vecNaNToZero(x)
		z = vecNaNToZero(z)

		lZero := hwy.LessEqual(l, zero)
		x = hwy.Merge(zero, x, lZero)
		y = hwy.Merge(zero, y, lZero)
		z = hwy.Merge(zero, z, lZero)

		r := vecDelinearize(vecDot(xyzToRGBMatrix[0], x, y, z))
		g := vecDelinearize(vecDot(xyzToRGBMatrix[1], x, y, z))
		b := vecDelinearize(vecDot(xyzToRGBMatrix[2], x, y, z))

		hwy.StoreInterleaved3(r, g, b, dst[lo:])
	}
}
