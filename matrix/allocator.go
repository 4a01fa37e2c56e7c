// SPDX-License-Identifier: MIT

// Package matrix - allocation accounting.
//
// Purpose:
//   - Give callers one place that creates and releases Dense buffers so every
//     allocation can be paired with exactly one release.
//   - Turn impossible or oversized requests into ErrAllocation instead of a
//     runtime panic.
//
// Complexity quicksheet:
//   - Allocate: O(r*c) zero-init; Release: O(1); counters: O(1).

package matrix

import (
	"fmt"
	"math"
)

// DefaultMaxElements bounds the element count of one matrix (128 MiB of float64).
const DefaultMaxElements = 1 << 24

// Allocator creates and releases Dense matrices.
type Allocator interface {
	// Allocate returns a zeroed rows×cols matrix or an error wrapping
	// ErrInvalidDimensions or ErrAllocation. No partial matrix is returned.
	Allocate(rows, cols int, opts ...Option) (*Dense, error)

	// Release frees m. Releasing nil or an already released matrix is a no-op.
	Release(m *Dense)
}

// AllocationRecorder observes successful allocations and releases.
// Implementations must be cheap; they run on every call.
type AllocationRecorder interface {
	RecordAllocation(rows, cols int)
	RecordRelease(rows, cols int)
}

// TrackingAllocator is an Allocator with an element budget and counters.
//
// Behavior highlights:
//   - rows*cols overflow or a count above MaxElements yields ErrAllocation.
//   - A runtime panic raised by make() is recovered into ErrAllocation.
//   - Only effective releases are counted, so double release keeps
//     Allocations() == Releases().
//
// Not safe for concurrent use.
type TrackingAllocator struct {
	maxElements int
	recorder    AllocationRecorder
	allocations int
	releases    int
}

var _ Allocator = (*TrackingAllocator)(nil)

// AllocatorOption configures a TrackingAllocator.
type AllocatorOption func(*TrackingAllocator)

// WithMaxElements sets the per-matrix element budget (n ≥ 1).
// Panics on n < 1 (programmer error), like the other WithX constructors.
func WithMaxElements(n int) AllocatorOption {
	if n < 1 {
		panic("matrix: WithMaxElements: n must be >= 1")
	}

	return func(a *TrackingAllocator) { a.maxElements = n }
}

// WithRecorder forwards every counted allocation and release to r.
func WithRecorder(r AllocationRecorder) AllocatorOption {
	return func(a *TrackingAllocator) { a.recorder = r }
}

// NewTrackingAllocator returns an allocator with DefaultMaxElements unless overridden.
func NewTrackingAllocator(opts ...AllocatorOption) *TrackingAllocator {
	a := &TrackingAllocator{maxElements: DefaultMaxElements}
	for _, set := range opts {
		set(a)
	}

	return a
}

// Allocate implements Allocator.
//
// Implementation:
//   - Stage 1: shape check (ErrInvalidDimensions).
//   - Stage 2: overflow and budget check (ErrAllocation).
//   - Stage 3: allocate under recover; count on success only.
func (a *TrackingAllocator) Allocate(rows, cols int, opts ...Option) (m *Dense, err error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("Allocate(%d,%d): %w", rows, cols, ErrInvalidDimensions)
	}
	limit := a.maxElements
	if limit <= 0 {
		limit = DefaultMaxElements // zero-value allocator
	}
	if rows > math.MaxInt/cols || rows*cols > limit {
		return nil, fmt.Errorf("Allocate(%d,%d): %d elements over budget %d: %w",
			rows, cols, uint64(rows)*uint64(cols), limit, ErrAllocation)
	}

	defer func() {
		if r := recover(); r != nil {
			m = nil
			err = fmt.Errorf("Allocate(%d,%d): %v: %w", rows, cols, r, ErrAllocation)
		}
	}()

	if m, err = newDenseWithPolicy(rows, cols, opts...); err != nil {
		return nil, fmt.Errorf("Allocate(%d,%d): %w", rows, cols, err)
	}
	a.allocations++
	if a.recorder != nil {
		a.recorder.RecordAllocation(rows, cols)
	}

	return m, nil
}

// Release implements Allocator.
func (a *TrackingAllocator) Release(m *Dense) {
	if !m.Release() {
		return
	}
	a.releases++
	if a.recorder != nil {
		a.recorder.RecordRelease(m.r, m.c)
	}
}

// Allocations returns the number of successful Allocate calls.
func (a *TrackingAllocator) Allocations() int { return a.allocations }

// Releases returns the number of effective Release calls.
func (a *TrackingAllocator) Releases() int { return a.releases }

// Outstanding returns allocations not yet released.
func (a *TrackingAllocator) Outstanding() int { return a.allocations - a.releases }
