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

import "fmt"

// ShapeError reports an input tensor whose shape cannot enter the
// conversion pipeline: wrong trailing channel count, empty shape, or a
// data length inconsistent with the shape. It is returned before any
// chunk processing begins.
type ShapeError struct {
	Shape []int
	Want  string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("husl: invalid shape %v: %s", e.Shape, e.Want)
}

// InvalidChunkSizeError reports a negative chunk size. Zero means
// "process the whole array in one chunk" and is always valid.
type InvalidChunkSizeError struct {
	Size int
}

func (e *InvalidChunkSizeError) Error() string {
	return fmt.Sprintf("husl: invalid chunk size %d", e.Size)
}

// BackendUnavailableError reports an explicit request for a backend
// tier that is disabled or has no registered implementation for the
// kernel. Automatic dispatch never returns this; it falls back through
// the preference order instead.
type BackendUnavailableError struct {
	Kernel  string
	Backend Backend
}

func (e *BackendUnavailableError) Error() string {
	return fmt.Sprintf("husl: backend %s unavailable for kernel %q", e.Backend, e.Kernel)
}
