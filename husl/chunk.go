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

import "github.com/ajroetker/go-highway/hwy/contrib/workerpool"

// runChunks partitions n pixels into consecutive row slices of at most
// chunkSize rows and invokes process once per [start, end) slice.
// chunkSize 0 processes everything as a single chunk; a negative
// chunkSize is rejected before any work runs. Chunking (and the
// optional pool) never changes the result: chunks partition the rows
// exactly once, in order, and each process call owns a disjoint output
// region.
func runChunks(n, chunkSize int, pool *workerpool.Pool, process func(start, end int)) error {
	if chunkSize < 0 {
		return &InvalidChunkSizeError{Size: chunkSize}
	}
	if n == 0 {
		return nil
	}
	if chunkSize == 0 || chunkSize > n {
		chunkSize = n
	}

	numChunks := (n + chunkSize - 1) / chunkSize
	chunk := func(ci int) {
		start := ci * chunkSize
		process(start, min(start+chunkSize, n))
	}

	if pool != nil && numChunks > 1 {
		// The backend enabled-set was already resolved by the caller, so
		// the parallel region only reads immutable state.
		pool.ParallelForAtomic(numChunks, chunk)
		return nil
	}
	for ci := 0; ci < numChunks; ci++ {
		chunk(ci)
	}
	return nil
}
