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

// huslconv converts images between RGB and the HUSL color space from
// the command line.
package main

import (
	"fmt"
	"os"
	"runtime"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
	"golang.org/x/sys/cpu"

	"github.com/ajroetker/go-highway/hwy"
	"github.com/ajroetker/go-highway/hwy/contrib/workerpool"
	"github.com/ajroetker/go-husl/husl"
)

var (
	flagBackend      string
	flagChunkSize    int
	flagWorkers      int
	flagNoSIMD       bool
	flagNoExpression bool
	flagVerbose      int
	version          = "dev" // Injected at build time via ldflags
)

var rootCmd = &cobra.Command{
	Use:     "huslconv",
	Short:   "Convert images between RGB and the HUSL color space",
	Version: version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		commonlog.Configure(flagVerbose, nil)
		if flagNoSIMD {
			husl.SetSIMDEnabled(false)
		}
		if flagNoExpression {
			husl.SetExpressionEnabled(false)
		}
		if _, err := parseBackend(flagBackend); err != nil {
			return err
		}
		return nil
	},
}

var toHUSLCmd = &cobra.Command{
	Use:   "to-husl <image>",
	Short: "Convert an image to HUSL and print per-channel statistics",
	Args:  cobra.ExactArgs(1),
	RunE:  runToHUSL,
}

var toHueCmd = &cobra.Command{
	Use:   "to-hue <image> <output.png>",
	Short: "Write the per-pixel HUSL hue as a grayscale image",
	Args:  cobra.ExactArgs(2),
	RunE:  runToHue,
}

var toRGBCmd = &cobra.Command{
	Use:   "to-rgb <hue> <saturation> <lightness>",
	Short: "Convert one HUSL color to 0-255 RGB",
	Args:  cobra.ExactArgs(3),
	RunE:  runToRGB,
}

var backendsCmd = &cobra.Command{
	Use:   "backends",
	Short: "Report registered kernels, dispatch choices, and CPU features",
	RunE:  runBackends,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagBackend, "backend", "auto", "implementation tier (auto, reference, expression, compiled, simd)")
	pf.IntVar(&flagChunkSize, "chunk-size", 0, "pixels per chunk; 0 converts whole images at once")
	pf.IntVar(&flagWorkers, "workers", 0, "worker goroutines for chunked conversion; 0 disables parallelism")
	pf.BoolVar(&flagNoSIMD, "no-simd", false, "disable the SIMD tier")
	pf.BoolVar(&flagNoExpression, "no-expression", false, "disable the expression tier")
	pf.CountVarP(&flagVerbose, "verbose", "v", "increase log verbosity (repeatable)")
	rootCmd.AddCommand(toHUSLCmd)
	rootCmd.AddCommand(toHueCmd)
	rootCmd.AddCommand(toRGBCmd)
	rootCmd.AddCommand(backendsCmd)
}

func parseBackend(name string) (husl.Backend, error) {
	for _, b := range []husl.Backend{
		husl.BackendAuto, husl.BackendReference, husl.BackendExpression,
		husl.BackendCompiled, husl.BackendSIMD,
	} {
		if b.String() == name {
			return b, nil
		}
	}
	return husl.BackendAuto, fmt.Errorf("unknown backend %q", name)
}

// converter builds the Converter described by the global flags. The
// returned cleanup closes the worker pool, if any.
func converter() (*husl.Converter, func()) {
	backend, _ := parseBackend(flagBackend) // validated in PersistentPreRunE
	c := &husl.Converter{Backend: backend, ChunkSize: flagChunkSize}
	if flagWorkers > 0 && flagChunkSize > 0 {
		pool := workerpool.New(flagWorkers)
		c.Pool = pool
		return c, pool.Close
	}
	return c, func() {}
}

func runToHUSL(cmd *cobra.Command, args []string) error {
	img, err := readImage(args[0])
	if err != nil {
		return err
	}
	c, cleanup := converter()
	defer cleanup()

	hsl, err := c.ToHUSL(img, nil)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s: %dx%d pixels\n", args[0], hsl.Shape[1], hsl.Shape[0])
	for ch, name := range []string{"hue", "saturation", "lightness"} {
		lo, hi, mean := channelStats(hsl, ch)
		fmt.Fprintf(out, "%-10s min %8.3f  max %8.3f  mean %8.3f\n", name, lo, hi, mean)
	}
	return nil
}

func runToHue(cmd *cobra.Command, args []string) error {
	img, err := readImage(args[0])
	if err != nil {
		return err
	}
	c, cleanup := converter()
	defer cleanup()

	hue, err := c.ToHue(img, nil)
	if err != nil {
		return err
	}
	if err := writeHueImage(args[1], hue); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", args[1])
	return nil
}

func runToRGB(cmd *cobra.Command, args []string) error {
	var hsl [3]float64
	for i, arg := range args {
		v, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return fmt.Errorf("parsing %q: %w", arg, err)
		}
		hsl[i] = v
	}
	c, cleanup := converter()
	defer cleanup()

	rgb, err := c.ToRGB(husl.Pixel(hsl[0], hsl[1], hsl[2]), nil)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "rgb(%d, %d, %d)  #%02x%02x%02x\n",
		rgb.Data[0], rgb.Data[1], rgb.Data[2],
		rgb.Data[0], rgb.Data[1], rgb.Data[2])
	return nil
}

func runBackends(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "arch: %s, vector lanes (float64): %d\n", runtime.GOARCH, hwy.MaxLanes[float64]())
	switch runtime.GOARCH {
	case "amd64":
		fmt.Fprintf(out, "cpu: avx2=%v avx512=%v fma=%v\n",
			cpu.X86.HasAVX2, cpu.X86.HasAVX512F, cpu.X86.HasFMA)
	case "arm64":
		fmt.Fprintf(out, "cpu: asimd=%v sve=%v\n", cpu.ARM64.HasASIMD, cpu.ARM64.HasSVE)
	}
	fmt.Fprintf(out, "tiers: simd=%v compiled=%v expression=%v reference=true\n",
		husl.SIMDEnabled(), husl.CompiledEnabled(), husl.ExpressionEnabled())

	for _, name := range husl.KernelNames() {
		active, err := husl.ActiveBackend(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "kernel %-12s -> %s\n", name, active)
	}
	return nil
}

func channelStats(t *husl.Tensor, ch int) (lo, hi, mean float64) {
	lo, hi = t.Data[ch], t.Data[ch]
	var sum float64
	n := 0
	for i := ch; i < len(t.Data); i += 3 {
		v := t.Data[i]
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
		sum += v
		n++
	}
	return lo, hi, sum / float64(n)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
