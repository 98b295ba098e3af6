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
	"os"
	"strconv"
	"sync/atomic"
)

// Backend identifies one tier of interchangeable kernel implementations.
type Backend int

const (
	// BackendAuto resolves to the fastest enabled, registered tier at
	// call time using the fixed preference order
	// SIMD > compiled > expression > reference.
	BackendAuto Backend = iota

	// BackendReference is the plain Go implementation. It is always
	// registered and cannot be disabled.
	BackendReference

	// BackendExpression is the fused single-pass implementation that
	// avoids intermediate arrays.
	BackendExpression

	// BackendCompiled is reserved for natively compiled kernels
	// registered by external provider modules via RegisterKernel.
	BackendCompiled

	// BackendSIMD is the go-highway lane-batched implementation.
	BackendSIMD

	numBackends = int(BackendSIMD) + 1
)

// String returns a human-readable name for the backend tier.
func (b Backend) String() string {
	switch b {
	case BackendAuto:
		return "auto"
	case BackendReference:
		return "reference"
	case BackendExpression:
		return "expression"
	case BackendCompiled:
		return "compiled"
	case BackendSIMD:
		return "simd"
	default:
		return "unknown"
	}
}

// preferenceOrder is the fixed dispatch order for BackendAuto.
var preferenceOrder = [...]Backend{BackendSIMD, BackendCompiled, BackendExpression, BackendReference}

// Backend enable flags are process-wide configuration. Reads are
// race-free (atomic), but changing them while conversions are in
// flight leaves those calls on whichever implementation they already
// resolved; set configuration once at startup or serialize changes
// externally.
var (
	simdEnabled       atomic.Bool
	compiledEnabled   atomic.Bool
	expressionEnabled atomic.Bool
)

func init() {
	simdEnabled.Store(!noSIMDEnv())
	compiledEnabled.Store(true)
	expressionEnabled.Store(true)
}

// noSIMDEnv checks the HUSL_NO_SIMD environment variable. Any
// non-empty value that does not parse as false disables the SIMD tier
// at startup, regardless of what is registered.
func noSIMDEnv() bool {
	val := os.Getenv("HUSL_NO_SIMD")
	if val == "" {
		return false
	}
	if b, err := strconv.ParseBool(val); err == nil {
		return b
	}
	return true
}

// SetSIMDEnabled enables or disables the SIMD tier for subsequent calls.
func SetSIMDEnabled(enabled bool) { simdEnabled.Store(enabled) }

// SetCompiledEnabled enables or disables the compiled tier for subsequent calls.
func SetCompiledEnabled(enabled bool) { compiledEnabled.Store(enabled) }

// SetExpressionEnabled enables or disables the expression tier for subsequent calls.
func SetExpressionEnabled(enabled bool) { expressionEnabled.Store(enabled) }

// SIMDEnabled reports whether the SIMD tier may be selected by dispatch.
func SIMDEnabled() bool { return simdEnabled.Load() }

// CompiledEnabled reports whether the compiled tier may be selected by dispatch.
func CompiledEnabled() bool { return compiledEnabled.Load() }

// ExpressionEnabled reports whether the expression tier may be selected by dispatch.
func ExpressionEnabled() bool { return expressionEnabled.Load() }

// backendEnabled reports whether tier b is administratively enabled.
// The reference tier is always enabled.
func backendEnabled(b Backend) bool {
	switch b {
	case BackendSIMD:
		return simdEnabled.Load()
	case BackendCompiled:
		return compiledEnabled.Load()
	case BackendExpression:
		return expressionEnabled.Load()
	case BackendReference:
		return true
	default:
		return false
	}
}
