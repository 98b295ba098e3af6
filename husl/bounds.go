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

// boundLine is one edge of the RGB gamut at a fixed lightness,
// projected into LUV chromaticity-angle space as slope and intercept.
// Six lines exist per lightness: three matrix rows times two polarity
// branches.
type boundLine struct {
	slope     float64
	intercept float64
}

// lightnessSub computes the shared intermediate term for the boundary
// lines of lightness l. Near zero the cubic is numerically unstable
// and the linear form l/kappa is used instead.
func lightnessSub(l float64) float64 {
	s := l + 16.0
	sub := (s * s * s) / boundCubeDiv
	if sub < epsilon {
		sub = l / kappa
	}
	return sub
}

// lightnessBounds fills lines with the six gamut boundary lines for
// lightness l. The fixed-size array keeps the solver allocation-free;
// callers reduce over it with a running minimum rather than
// materializing per-line arrays for a whole image.
func lightnessBounds(l float64, lines *[6]boundLine) {
	sub := lightnessSub(l)
	for ch := 0; ch < 3; ch++ {
		t1 := sub * boundTop1[ch]
		t2 := l * sub * boundTop2[ch]
		b := sub * boundBottom[ch]
		// Polarity 0.
		lines[ch*2] = boundLine{slope: t1 / b, intercept: t2 / b}
		// Polarity 1.
		bottom := b + boundBottomC
		lines[ch*2+1] = boundLine{
			slope:     t1 / bottom,
			intercept: (t2 - l*boundTop2L) / bottom,
		}
	}
}

// rayLength returns the distance along the hue direction (radians) to
// a boundary line, or +Inf when the line does not intersect the
// forward ray (negative length or no intersection at all).
func rayLength(sinH, cosH float64, line boundLine) float64 {
	length := line.intercept / (sinH - line.slope*cosH)
	if math.IsNaN(length) || length < 0 {
		return math.Inf(1)
	}
	return length
}

// maxChromaForLH returns the maximum chroma that stays inside the RGB
// gamut at lightness l and hue h (degrees): the minimum forward ray
// length across the six boundary lines.
func maxChromaForLH(l, hDeg float64) float64 {
	hRad := hDeg / 360.0 * (2.0 * math.Pi)
	sinH, cosH := math.Sincos(hRad)

	var lines [6]boundLine
	lightnessBounds(l, &lines)

	minLength := math.Inf(1)
	for _, line := range lines {
		if length := rayLength(sinH, cosH, line); length < minLength {
			minLength = length
		}
	}
	return minLength
}
