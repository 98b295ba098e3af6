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
	"fmt"

	"github.com/ajroetker/go-highway/hwy/contrib/workerpool"
)

// Converter carries the per-call configuration for the conversion
// functions. The zero value converts whole images in a single chunk
// with automatic backend dispatch.
type Converter struct {
	// Backend selects an implementation tier explicitly. BackendAuto
	// (the zero value) picks the fastest enabled tier; any other value
	// fails with *BackendUnavailableError when that tier is disabled or
	// unregistered.
	Backend Backend

	// ChunkSize bounds peak memory: rows are processed in consecutive
	// slices of at most this many pixels. 0 processes everything at
	// once; negative values fail with *InvalidChunkSizeError.
	ChunkSize int

	// Pool, when non-nil, executes chunks in parallel. Each chunk
	// writes a disjoint output region, so results are identical to
	// sequential processing.
	Pool *workerpool.Pool
}

// ToHUSL converts RGB pixels in the 0.0-1.0 working range to HUSL
// (hue in degrees [0,360), saturation and lightness in percent). The
// input may carry an alpha channel, which is dropped. If out is
// non-nil its data buffer is reused and its shape is overwritten.
func (c *Converter) ToHUSL(rgb *Tensor, out *Tensor) (*Tensor, error) {
	flat, n, lead, err := normalizeRGB(rgb)
	if err != nil {
		return nil, err
	}
	return c.run(KernelRGBToHUSL, flat, n, lead, out)
}

// ToHue converts RGB pixels to HUSL hue only, one value per pixel:
// the output shape is the input shape minus the channel dimension.
func (c *Converter) ToHue(rgb *Tensor, out *Tensor) (*Tensor, error) {
	flat, n, lead, err := normalizeRGB(rgb)
	if err != nil {
		return nil, err
	}
	return c.run(KernelRGBToHue, flat, n, lead, out)
}

// ToRGB converts HUSL pixels to 0-255 integer RGB. The trailing
// dimension must be exactly 3. If out is non-nil its data buffer is
// reused and its shape is overwritten.
func (c *Converter) ToRGB(hsl *Tensor, out *ByteTensor) (*ByteTensor, error) {
	flat, n, lead, err := normalizeHUSL(hsl)
	if err != nil {
		return nil, err
	}
	if c.ChunkSize < 0 {
		return nil, &InvalidChunkSizeError{Size: c.ChunkSize}
	}
	fn, _, err := KernelFor(KernelHUSLToRGB, c.Backend)
	if err != nil {
		return nil, err
	}

	shape := restoreShape(lead, 3)
	if out != nil {
		if len(out.Data) != n*3 {
			return nil, &ShapeError{Shape: out.Shape, Want: fmt.Sprintf("output buffer must hold %d values", n*3)}
		}
		out.Shape = shape
	} else {
		out = &ByteTensor{Shape: shape, Data: make([]uint8, n*3)}
	}

	// Rounding to bytes happens per chunk, so the float scratch never
	// exceeds one chunk regardless of image size.
	err = runChunks(n, c.ChunkSize, c.Pool, func(start, end int) {
		tmp := make([]float64, (end-start)*3)
		fn(tmp, flat[start*3:end*3])
		byteOutput(out.Data[start*3:end*3], tmp)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Converter) run(name string, flat []float64, n int, lead []int, out *Tensor) (*Tensor, error) {
	if c.ChunkSize < 0 {
		return nil, &InvalidChunkSizeError{Size: c.ChunkSize}
	}
	fn, _, err := KernelFor(name, c.Backend)
	if err != nil {
		return nil, err
	}

	width := kernelWidth(name)
	need := n * width
	shape := restoreShape(lead, width)
	result := out
	if result != nil {
		if len(result.Data) != need {
			return nil, &ShapeError{Shape: result.Shape, Want: fmt.Sprintf("output buffer must hold %d values", need)}
		}
		result.Shape = shape
	} else {
		result = &Tensor{Shape: shape, Data: make([]float64, need)}
	}

	err = runChunks(n, c.ChunkSize, c.Pool, func(start, end int) {
		fn(result.Data[start*width:end*width], flat[start*3:end*3])
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Package-level convenience wrappers over a default Converter.

// ToHUSL converts an RGB tensor (0.0-1.0 floats, optional alpha) to
// HUSL. chunkSize 0 converts the whole image in one chunk.
func ToHUSL(rgb *Tensor, chunkSize int, out *Tensor) (*Tensor, error) {
	c := Converter{ChunkSize: chunkSize}
	return c.ToHUSL(rgb, out)
}

// ToHUSLBytes converts 0-255 integer RGB data to HUSL.
func ToHUSLBytes(rgb *ByteTensor, chunkSize int, out *Tensor) (*Tensor, error) {
	t, err := TensorFromBytes(rgb.Data, rgb.Shape...)
	if err != nil {
		return nil, err
	}
	return ToHUSL(t, chunkSize, out)
}

// ToRGB converts a HUSL tensor to 0-255 integer RGB.
func ToRGB(hsl *Tensor, chunkSize int, out *ByteTensor) (*ByteTensor, error) {
	c := Converter{ChunkSize: chunkSize}
	return c.ToRGB(hsl, out)
}

// ToHue converts an RGB tensor to HUSL hues, one value per pixel.
func ToHue(rgb *Tensor, chunkSize int, out *Tensor) (*Tensor, error) {
	c := Converter{ChunkSize: chunkSize}
	return c.ToHue(rgb, out)
}

// ToHueBytes converts 0-255 integer RGB data to HUSL hues.
func ToHueBytes(rgb *ByteTensor, chunkSize int, out *Tensor) (*Tensor, error) {
	t, err := TensorFromBytes(rgb.Data, rgb.Shape...)
	if err != nil {
		return nil, err
	}
	return ToHue(t, chunkSize, out)
}
