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

// Tensor is a rectangular float64 array with channels in the trailing
// dimension. The leading dimensions are arbitrary: a bare [3] shape is
// a single pixel, [N 3] a pixel list, [H W 3] an image, and so on.
// Conversion inputs are treated as immutable; kernels never write to
// them.
type Tensor struct {
	Shape []int
	Data  []float64
}

// ByteTensor is the 8-bit integer counterpart of Tensor, used for RGB
// data in the 0-255 range.
type ByteTensor struct {
	Shape []int
	Data  []uint8
}

// NewTensor allocates a zeroed tensor of the given shape.
func NewTensor(shape ...int) *Tensor {
	return &Tensor{Shape: shape, Data: make([]float64, sizeOf(shape))}
}

// NewByteTensor allocates a zeroed byte tensor of the given shape.
func NewByteTensor(shape ...int) *ByteTensor {
	return &ByteTensor{Shape: shape, Data: make([]uint8, sizeOf(shape))}
}

// Pixel builds a single-pixel tensor of shape [3].
func Pixel(a, b, c float64) *Tensor {
	return &Tensor{Shape: []int{3}, Data: []float64{a, b, c}}
}

// TensorFromBytes converts 0-255 integer channel data into the 0.0-1.0
// float working range. The data length must match the shape product.
func TensorFromBytes(data []uint8, shape ...int) (*Tensor, error) {
	if sizeOf(shape) != len(data) {
		return nil, &ShapeError{Shape: shape, Want: "shape product must match data length"}
	}
	t := NewTensor(shape...)
	for i, v := range data {
		t.Data[i] = float64(v) / 255.0
	}
	return t, nil
}

// Size returns the number of elements described by the tensor's shape.
func (t *Tensor) Size() int { return sizeOf(t.Shape) }

// Size returns the number of elements described by the tensor's shape.
func (t *ByteTensor) Size() int { return sizeOf(t.Shape) }

// At returns the element at the given multi-dimensional index.
func (t *Tensor) At(index ...int) float64 {
	return t.Data[t.offset(index)]
}

func (t *Tensor) offset(index []int) int {
	off := 0
	for d, i := range index {
		off = off*t.Shape[d] + i
	}
	return off
}

func sizeOf(shape []int) int {
	if len(shape) == 0 {
		return 0
	}
	n := 1
	for _, d := range shape {
		n *= d
	}
	return n
}

// normalizeRGB flattens an RGB-typed tensor to canonical (N,3) form.
// A trailing dimension of 4 carries an alpha channel, which is
// stripped here and not restored. When no alpha strip is needed the
// returned slice aliases the input data (a view, not a copy); kernels
// treat src as read-only so this is safe.
func normalizeRGB(t *Tensor) (flat []float64, n int, lead []int, err error) {
	if len(t.Shape) == 0 || len(t.Data) != t.Size() {
		return nil, 0, nil, &ShapeError{Shape: t.Shape, Want: "data length must match shape product"}
	}
	channels := t.Shape[len(t.Shape)-1]
	if channels != 3 && channels != 4 {
		return nil, 0, nil, &ShapeError{Shape: t.Shape, Want: "trailing dimension must be 3 (RGB) or 4 (RGBA)"}
	}
	lead = t.Shape[:len(t.Shape)-1]
	n = len(t.Data) / channels
	if channels == 3 {
		return t.Data, n, lead, nil
	}
	flat = make([]float64, n*3)
	for i := 0; i < n; i++ {
		copy(flat[i*3:i*3+3], t.Data[i*4:i*4+3])
	}
	return flat, n, lead, nil
}

// normalizeHUSL flattens a HUSL tensor to canonical (N,3) form. HUSL
// input never carries alpha; the trailing dimension must be exactly 3.
func normalizeHUSL(t *Tensor) (flat []float64, n int, lead []int, err error) {
	if len(t.Shape) == 0 || len(t.Data) != t.Size() {
		return nil, 0, nil, &ShapeError{Shape: t.Shape, Want: "data length must match shape product"}
	}
	if t.Shape[len(t.Shape)-1] != 3 {
		return nil, 0, nil, &ShapeError{Shape: t.Shape, Want: "trailing dimension must be 3 (HSL)"}
	}
	return t.Data, len(t.Data) / 3, t.Shape[:len(t.Shape)-1], nil
}

// restoreShape rebuilds the caller's shape from the recorded leading
// dimensions. Width 3 restores a channel dimension; width 1 (hue
// output) drops it, leaving one value per pixel. A single pixel in
// yields a single pixel out, not a 1-element batch.
func restoreShape(lead []int, width int) []int {
	shape := make([]int, 0, len(lead)+1)
	shape = append(shape, lead...)
	if width > 1 {
		shape = append(shape, width)
	} else if len(shape) == 0 {
		shape = append(shape, 1)
	}
	return shape
}

// byteOutput rounds a float RGB array in the 0-1 working range into
// 0-255 integer channels, clamping out-of-range values.
func byteOutput(dst []uint8, src []float64) {
	for i, v := range src {
		r := math.Round(v * 255.0)
		switch {
		case r < 0 || math.IsNaN(r):
			dst[i] = 0
		case r > 255:
			dst[i] = 255
		default:
			dst[i] = uint8(r)
		}
	}
}
