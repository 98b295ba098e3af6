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
	"sort"
	"sync"

	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("husl")

// Kernel is the uniform contract every implementation tier satisfies:
// transform n pixels from src (length n*3, channels interleaved) into
// dst (length n*width, where width is the kernel's output width).
// Kernels never mutate src and never return errors; numeric edge cases
// are masked to 0 internally.
type Kernel func(dst, src []float64)

// Logical kernel names registered by this package.
const (
	KernelRGBToHUSL = "rgb_to_husl"
	KernelHUSLToRGB = "husl_to_rgb"
	KernelRGBToHue  = "rgb_to_hue"
)

type kernelEntry struct {
	width int
	impls [numBackends]Kernel
}

var (
	registryMu sync.RWMutex
	registry   = make(map[string]*kernelEntry)
)

// RegisterKernel adds an implementation of the named logical kernel
// under the given backend tier. width is the number of output values
// per pixel and must agree with any previous registration of the same
// name. External provider modules (cgo or assembly kernels) use this
// to populate the compiled tier; registration is expected to happen
// during process initialization, before conversions start.
func RegisterKernel(name string, backend Backend, width int, fn Kernel) error {
	if backend <= BackendAuto || int(backend) >= numBackends {
		return fmt.Errorf("husl: cannot register kernel %q under backend %s", name, backend)
	}
	if fn == nil {
		return fmt.Errorf("husl: nil kernel for %q", name)
	}
	registryMu.Lock()
	defer registryMu.Unlock()
	entry, ok := registry[name]
	if !ok {
		entry = &kernelEntry{width: width}
		registry[name] = entry
	} else if entry.width != width {
		return fmt.Errorf("husl: kernel %q output width mismatch: registered %d, got %d",
			name, entry.width, width)
	}
	entry.impls[backend] = fn
	return nil
}

// mustRegister is used for this package's own init-time registrations.
func mustRegister(name string, backend Backend, width int, fn Kernel) {
	if err := RegisterKernel(name, backend, width, fn); err != nil {
		panic(err)
	}
}

// KernelFor returns the implementation of the named kernel for an
// explicitly requested backend, or the automatic choice for
// BackendAuto. An explicit request for a tier that is disabled or has
// no registration fails with *BackendUnavailableError; automatic
// dispatch silently falls back through the preference order instead.
func KernelFor(name string, backend Backend) (Kernel, Backend, error) {
	registryMu.RLock()
	entry, ok := registry[name]
	registryMu.RUnlock()
	if !ok {
		return nil, backend, fmt.Errorf("husl: unknown kernel %q", name)
	}
	if backend != BackendAuto {
		if backend < BackendAuto || int(backend) >= numBackends {
			return nil, backend, &BackendUnavailableError{Kernel: name, Backend: backend}
		}
		fn := entry.impls[backend]
		if fn == nil || !backendEnabled(backend) {
			return nil, backend, &BackendUnavailableError{Kernel: name, Backend: backend}
		}
		return fn, backend, nil
	}
	for _, b := range preferenceOrder {
		if fn := entry.impls[b]; fn != nil && backendEnabled(b) {
			return fn, b, nil
		}
	}
	// Unreachable for kernels registered by this package: the reference
	// tier is always present and cannot be disabled.
	return nil, BackendAuto, &BackendUnavailableError{Kernel: name, Backend: BackendAuto}
}

// ActiveBackend reports which tier automatic dispatch would select for
// the named kernel right now.
func ActiveBackend(name string) (Backend, error) {
	_, b, err := KernelFor(name, BackendAuto)
	return b, err
}

// KernelNames returns the sorted set of registered logical kernel names.
func KernelNames() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func kernelWidth(name string) int {
	registryMu.RLock()
	defer registryMu.RUnlock()
	if entry, ok := registry[name]; ok {
		return entry.width
	}
	return 0
}

func init() {
	// Capability report: the compiled tier ships no in-repo provider, so
	// its absence at package load is expected and non-fatal. A provider
	// module that imports this package registers afterwards.
	registryMu.RLock()
	defer registryMu.RUnlock()
	for name, entry := range registry {
		if entry.impls[BackendCompiled] == nil {
			log.Debugf("no compiled implementation for kernel %q; dispatch falls back", name)
		}
	}
}
