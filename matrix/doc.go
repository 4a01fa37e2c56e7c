// SPDX-License-Identifier: MIT

// Package matrix provides dense real-valued matrices and their product.
//
// The matrix package provides:
//
//   - Dense, a row-major float64 buffer with bounds-checked At/Set and a
//     per-instance NaN/Inf policy.
//   - MulInto, the reference i-j-k multiplication kernel, and Mul, its
//     validating facade over any Matrix implementation.
//   - Allocator and TrackingAllocator, which pair every allocation with
//     exactly one release and enforce an element budget.
//   - Small constructors (NewIdentity, NewZeros, NewDenseFrom) and AllClose
//     for tolerance comparisons.
//
// Each Dense owns a single contiguous slice of rows*cols elements; element
// (i, j) lives at offset i*cols + j. One allocation per matrix means a
// failed allocation never leaves a partially built matrix behind.
//
// See the examples in this package for usage patterns.
package matrix
