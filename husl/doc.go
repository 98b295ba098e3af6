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

// Package husl converts whole images between RGB and HUSL, a
// perceptually uniform hue/saturation/lightness model derived from
// CIE LUV.
//
// # Conversions
//
// ToHUSL, ToRGB, and ToHue run the chained transforms
// RGB <-> XYZ <-> LUV <-> LCH <-> HUSL over tensors of any leading
// shape with channels in the trailing dimension:
//
//	img := husl.NewTensor(1080, 1920, 3) // rows, cols, channels
//	hsl, err := husl.ToHUSL(img, 0, nil)
//
// Saturation conversion consults a chroma bounds solver that finds,
// per pixel, the largest chroma still inside the RGB gamut at that
// lightness and hue.
//
// # Memory
//
// Large images can be processed in bounded-size row chunks: a non-zero
// chunk size caps how many pixels any kernel invocation touches at
// once, and an optional preallocated output buffer avoids the result
// allocation. Chunking never changes the numeric result.
//
// # Backends
//
// Every conversion kernel has interchangeable implementations:
// reference (plain Go), expression (fused single pass), SIMD
// (go-highway lanes), and an externally-registrable compiled tier.
// Dispatch picks the fastest enabled tier per call; see Backend,
// SetSIMDEnabled, and RegisterKernel. Disabling every optional tier
// reproduces the reference output.
package husl
