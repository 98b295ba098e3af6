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

// Color-space constants from the HUSL reference implementation.
// These are fixed domain constants; the lightness thresholds in
// particular affect round-trip fidelity at the extremes and must
// not be re-derived.

// xyzToRGBMatrix maps CIE XYZ to linear sRGB. Its rows also drive the
// chroma bounds solver: each row contributes two gamut boundary lines.
var xyzToRGBMatrix = [3][3]float64{
	{3.240969941904521, -1.537383177570093, -0.498610760293},
	{-0.96924363628087, 1.87596750150772, 0.041555057407175},
	{0.055630079696993, -0.20397695888897, 1.056971514242878},
}

// rgbToXYZMatrix maps linear sRGB to CIE XYZ.
var rgbToXYZMatrix = [3][3]float64{
	{0.41239079926595, 0.35758433938387, 0.18048078840183},
	{0.21263900587151, 0.71516867876775, 0.072192315360733},
	{0.019330818715591, 0.11919477979462, 0.95053215224966},
}

const (
	refY = 1.0
	refU = 0.19783000664283
	refV = 0.46831999493879

	// CIE lightness function constants.
	kappa   = 903.2962962
	epsilon = 0.0088564516

	// Lightness extremes: at or beyond these, saturation is forced to 0
	// and lightness clamps to 100 or 0. Numerical-stability policy from
	// the reference algorithm, not a rounding artifact.
	lightnessMax = 99.99
	lightnessMin = 0.01

	// Inverse lightness function switches from the cubic to the linear
	// branch below this lightness.
	lightnessBranch = 8.0

	// sRGB gamma companding thresholds.
	srgbGammaOffset     = 0.055
	srgbGammaExponent   = 2.4
	srgbLinearSlope     = 12.92
	srgbLinearThreshold = 0.0031308
	srgbGammaThreshold  = 0.04045
)

// Boundary-line coefficients, derived once from the XYZ-to-RGB matrix.
// Each matrix row i yields lines with
//
//	slope     = boundTop1[i]*sub / bottom
//	intercept = (L*sub*boundTop2[i] - t*L*boundTop2L) / bottom
//	bottom    = sub*boundBottom[i] + t*boundBottomC
//
// for polarity t in {0, 1}.
var (
	boundTop1   [3]float64
	boundTop2   [3]float64
	boundBottom [3]float64
)

const (
	boundTop2L   = 769860.0
	boundBottomC = 126452.0
	boundCubeDiv = 1560896.0
)

func init() {
	for i, row := range xyzToRGBMatrix {
		boundTop1[i] = 284517.0*row[0] - 94839.0*row[2]
		boundTop2[i] = 838422.0*row[2] + 769860.0*row[1] + 731718.0*row[0]
		boundBottom[i] = 632260.0*row[2] - 126452.0*row[1]
	}
}
