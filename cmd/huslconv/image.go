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

package main

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	_ "image/gif"
	_ "image/jpeg"

	"github.com/ajroetker/go-husl/husl"
)

// readImage decodes an image file into an [H W 3] tensor in the
// 0.0-1.0 working range.
func readImage(path string) (*husl.Tensor, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}

	b := img.Bounds()
	t := husl.NewTensor(b.Dy(), b.Dx(), 3)
	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			t.Data[i+0] = float64(r) / 65535.0
			t.Data[i+1] = float64(g) / 65535.0
			t.Data[i+2] = float64(bl) / 65535.0
			i += 3
		}
	}
	return t, nil
}

// writeHueImage renders an [H W] hue tensor as a grayscale PNG, with
// the 0-360 degree range mapped onto 0-255.
func writeHueImage(path string, hue *husl.Tensor) error {
	if len(hue.Shape) != 2 {
		return fmt.Errorf("hue tensor has shape %v, want [H W]", hue.Shape)
	}
	h, w := hue.Shape[0], hue.Shape[1]
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetGray(x, y, color.Gray{Y: uint8(hue.At(y, x) / 360.0 * 255.0)})
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
