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

// Reference tier: the conversion chain written stage by stage, one
// intermediate buffer between stages. Always registered, never
// disabled; every other tier is validated against it.

func init() {
	mustRegister(KernelRGBToHUSL, BackendReference, 3, refRGBToHUSL)
	mustRegister(KernelHUSLToRGB, BackendReference, 3, refHUSLToRGB)
	mustRegister(KernelRGBToHue, BackendReference, 1, refRGBToHue)
}

// Scalar helpers shared by the reference and expression tiers.

// linearize inverts sRGB gamma companding for one channel.
func linearize(v float64) float64 {
	if v > srgbGammaThreshold {
		return math.Pow((v+srgbGammaOffset)/(1.0+srgbGammaOffset), srgbGammaExponent)
	}
	return v / srgbLinearSlope
}

// delinearize applies forward sRGB gamma companding for one channel.
func delinearize(v float64) float64 {
	if v > srgbLinearThreshold {
		return (1.0+srgbGammaOffset)*math.Pow(v, 1.0/srgbGammaExponent) - srgbGammaOffset
	}
	return srgbLinearSlope * v
}

// toLight maps CIE Y to L*, with the linear branch below epsilon.
func toLight(y float64) float64 {
	if y > epsilon {
		return math.Cbrt(y/refY)*116.0 - 16.0
	}
	return (y / refY) * kappa
}

// fromLight inverts toLight, switching to the linear branch below L=8.
func fromLight(l float64) float64 {
	if l > lightnessBranch {
		s := (l + 16.0) / 116.0
		return refY * s * s * s
	}
	return refY * l / kappa
}

func nanToZero(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// Stage kernels. Each reads a pixel into locals before writing, so
// dst may alias src.

func refToLinear(dst, src []float64) {
	for i, v := range src {
		dst[i] = linearize(v)
	}
}

func refRGBToXYZ(dst, src []float64) {
	for i := 0; i+2 < len(src); i += 3 {
		r, g, b := src[i], src[i+1], src[i+2]
		for ch := 0; ch < 3; ch++ {
			row := &rgbToXYZMatrix[ch]
			dst[i+ch] = row[0]*r + row[1]*g + row[2]*b
		}
	}
}

func refXYZToLUV(dst, src []float64) {
	for i := 0; i+2 < len(src); i += 3 {
		x, y, z := src[i], src[i+1], src[i+2]
		denom := x + 15.0*y + 3.0*z
		var uVar, vVar float64
		if denom != 0 {
			uVar = 4.0 * x / denom
			vVar = 9.0 * y / denom
		}
		l := toLight(y)
		if l == 0 {
			dst[i], dst[i+1], dst[i+2] = 0, 0, 0
			continue
		}
		dst[i] = l
		dst[i+1] = nanToZero(l * 13.0 * (uVar - refU))
		dst[i+2] = nanToZero(l * 13.0 * (vVar - refV))
	}
}

func refLUVToLCH(dst, src []float64) {
	for i := 0; i+2 < len(src); i += 3 {
		l, u, v := src[i], src[i+1], src[i+2]
		// Normalize -0.0: it flips the sign of atan2.
		if u == 0 {
			u = 0
		}
		if v == 0 {
			v = 0
		}
		c := math.Hypot(u, v)
		h := math.Atan2(v, u) * (180.0 / math.Pi)
		if h < 0 {
			h += 360.0
		}
		// An ulp-scale negative angle rounds to exactly 360 above; keep
		// hue in [0, 360).
		if h >= 360.0 {
			h = 0
		}
		dst[i], dst[i+1], dst[i+2] = l, c, h
	}
}

func refLCHToHUSL(dst, src []float64) {
	for i := 0; i+2 < len(src); i += 3 {
		l, c, h := src[i], src[i+1], src[i+2]
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

func refHUSLToLCH(dst, src []float64) {
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
		dst[i], dst[i+1], dst[i+2] = l, c, h
	}
}

func refLCHToLUV(dst, src []float64) {
	for i := 0; i+2 < len(src); i += 3 {
		l, c, h := src[i], src[i+1], src[i+2]
		sinH, cosH := math.Sincos(h * (math.Pi / 180.0))
		dst[i], dst[i+1], dst[i+2] = l, cosH*c, sinH*c
	}
}

func refLUVToXYZ(dst, src []float64) {
	for i := 0; i+2 < len(src); i += 3 {
		l, u, v := src[i], src[i+1], src[i+2]
		if l <= 0 {
			dst[i], dst[i+1], dst[i+2] = 0, 0, 0
			continue
		}
		y := fromLight(l)
		l13 := 13.0 * l
		uVar := u/l13 + refU
		vVar := v/l13 + refV
		x := -(9.0 * y * uVar) / ((uVar-4.0)*vVar - uVar*vVar)
		z := (9.0*y - 15.0*vVar*y - vVar*x) / (3.0 * vVar)
		dst[i] = nanToZero(x)
		dst[i+1] = nanToZero(y)
		dst[i+2] = nanToZero(z)
	}
}

func refXYZToRGB(dst, src []float64) {
	for i := 0; i+2 < len(src); i += 3 {
		x, y, z := src[i], src[i+1], src[i+2]
		for ch := 0; ch < 3; ch++ {
			row := &xyzToRGBMatrix[ch]
			dst[i+ch] = delinearize(row[0]*x + row[1]*y + row[2]*z)
		}
	}
}

// Chained kernels.

func refRGBToHUSL(dst, src []float64) {
	tmp := make([]float64, len(src))
	refToLinear(tmp, src)
	refRGBToXYZ(tmp, tmp)
	refXYZToLUV(tmp, tmp)
	refLUVToLCH(tmp, tmp)
	refLCHToHUSL(dst, tmp)
}

func refHUSLToRGB(dst, src []float64) {
	tmp := make([]float64, len(src))
	refHUSLToLCH(tmp, src)
	refLCHToLUV(tmp, tmp)
	refLUVToXYZ(tmp, tmp)
	refXYZToRGB(dst, tmp)
}

// refRGBToHue stops at the LCH stage: hue needs no chroma bound.
func refRGBToHue(dst, src []float64) {
	tmp := make([]float64, len(src))
	refToLinear(tmp, src)
	refRGBToXYZ(tmp, tmp)
	refXYZToLUV(tmp, tmp)
	refLUVToLCH(tmp, tmp)
	for i := range dst {
		dst[i] = tmp[i*3+2]
	}
}
