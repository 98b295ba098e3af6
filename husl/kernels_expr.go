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

import "math"

// Expression tier: the whole chain fused into a single pass per pixel,
// no intermediate buffers. Same formulas and edge policy as the
// reference tier, minus the per-stage allocations.

func init() {
	mustRegister(KernelRGBToHUSL, BackendExpression, 3, exprRGBToHUSL)
	mustRegister(KernelHUSLToRGB, BackendExpression, 3, exprHUSLToRGB)
	mustRegister(KernelRGBToHue, BackendExpression, 1, exprRGBToHue)
}

// pixelToLCH runs one pixel through RGB -> XYZ -> LUV -> LCH.
func pixelToLCH(r, g, b float64) (l, c, h float64) {
	lr := linearize(r)
	lg := linearize(g)
	lb := linearize(b)

	x := rgbToXYZMatrix[0][0]*lr + rgbToXYZMatrix[0][1]*lg + rgbToXYZMatrix[0][2]*lb
	y := rgbToXYZMatrix[1][0]*lr + rgbToXYZMatrix[1][1]*lg + rgbToXYZMatrix[1][2]*lb
	z := rgbToXYZMatrix[2][0]*lr + rgbToXYZMatrix[2][1]*lg + rgbToXYZMatrix[2][2]*lb

	l = toLight(y)
	var u, v float64
	if l != 0 {
		denom := x + 15.0*y + 3.0*z
		var uVar, vVar float64
		if denom != 0 {
			uVar = 4.0 * x / denom
			vVar = 9.0 * y / denom
		}
		u = nanToZero(l * 13.0 * (uVar - refU))
		v = nanToZero(l * 13.0 * (vVar - refV))
	} else {
		l = 0
	}

	if u == 0 {
		u = 0
	}
	if v == 0 {
		v = 0
	}
	c = math.Hypot(u, v)
	h = math.Atan2(v, u) * (180.0 / math.Pi)
	if h < 0 {
		h += 360.0
	}
	// An ulp-scale negative angle rounds to exactly 360 above; keep hue
	// in [0, 360).
	if h >= 360.0 {
		h = 0
	}
	return l, c, h
}

func exprRGBToHUSL(dst, src []float64) {
	for i := 0; i+2 < len(src); i += 3 {
		l, c, h := pixelToLCH(src[i], src[i+1], src[i+2])
		var s float64
		switch {
		case l >= lightnessMax:
			l = 100.0
		case l <= lightnessMin:
			l = 0.0
		default:
			s = c / maxChromaForLH(l, h) * 100.0
		}
		dst[i], dst[i+1], dst[i+2] = h, s, l
	}
}

func exprRGBToHue(dst, src []float64) {
	for i, j := 0, 0; i+2 < len(src); i, j = i+3, j+1 {
		_, _, h := pixelToLCH(src[i], src[i+1], src[i+2])
		dst[j] = h
	}
}

func exprHUSLToRGB(dst, src []float64) {
	for i := 0; i+2 < len(src); i += 3 {
		h, s, l := src[i], src[i+1], src[i+2]

		var c float64
		switch {
		case l >= lightnessMax:
			l = 100.0
		case l <= lightnessMin:
			l = 0.0
		default:
			c = maxChromaForLH(l, h) / 100.0 * s
		}

		sinH, cosH := math.Sincos(h * (math.Pi / 180.0))
		u := cosH * c
		v := sinH * c

		var x, y, z float64
		if l > 0 {
			y = fromLight(l)
			l13 := 13.0 * l
			uVar := u/l13 + refU
			vVar := v/l13 + refV
			x = -(9.0 * y * uVar) / ((uVar-4.0)*vVar - uVar*vVar)
			z = (9.0*y - 15.0*vVar*y - vVar*x) / (3.0 * vVar)
			x = nanToZero(x)
			y = nanToZero(y)
			z = nanToZero(z)
		}

		for ch := 0; ch < 3; ch++ {
			row := &xyzToRGBMatrix[ch]
			dst[i+ch] = delinearize(row[0]*x + row[1]*y + row[2]*z)
		}
	}
}
