// SPDX-License-Identifier: MIT
// Package matrix_test contains test helpers
//
// Purpose:
//   • Provide small, deterministic test fixtures and utilities for kernels.
//   • Keep random data finite to avoid numeric-policy interference.

package matrix_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/matprod/matrix"
)

// Tolerances shared by property tests.
const (
	RtolTiny  = 1e-12
	AtolTiny  = 1e-12
	RtolLoose = 1e-9
	AtolLoose = 1e-9
)

// hide WRAPS any Matrix to hide its concrete type from type assertions.
// Use hide{X} to force the generic (non-*Dense) path in code under test.
type hide struct{ matrix.Matrix }

// MustDense ALLOCATES an r×c *Dense or fails the test (fatal on error).
func MustDense(t *testing.T, r, c int) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDense(r, c)
	if err != nil {
		t.Fatalf("NewDense(%d,%d): %v", r, c, err)
	}

	return m
}

// MustFrom BUILDS a *Dense from a literal or fails the test.
func MustFrom(t *testing.T, rows [][]float64, opts ...matrix.Option) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDenseFrom(rows, opts...)
	if err != nil {
		t.Fatalf("NewDenseFrom: %v", err)
	}

	return m
}

// IdentityDense RETURNS an n×n identity or fails the test.
func IdentityDense(t *testing.T, n int) *matrix.Dense {
	t.Helper()
	I, err := matrix.NewIdentity(n)
	if err != nil {
		t.Fatalf("NewIdentity(%d): %v", n, err)
	}

	return I
}

// RandFilledDense RETURNS a new r×c Dense filled with deterministic U(-1,1).
//
// Determinism:
//   - Deterministic per seed.
func RandFilledDense(t *testing.T, r, c int, seed int64) *matrix.Dense {
	t.Helper()
	m := MustDense(t, r, c)
	rng := rand.New(rand.NewSource(seed))
	var i, j int
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			MustSet(t, m, i, j, rng.Float64()*2-1) // 0*2-1=-1 || 1*2-1=1
		}
	}

	return m
}

// MustSet WRITES v to m[i,j] or fails the test.
func MustSet(t *testing.T, m matrix.Matrix, i, j int, v float64) {
	t.Helper()
	if err := m.Set(i, j, v); err != nil {
		t.Fatalf("Set(%d,%d,%v): %v", i, j, v, err)
	}
}

// MustAt READS m[i,j] or fails the test.
func MustAt(t *testing.T, m matrix.Matrix, i, j int) float64 {
	t.Helper()
	v, err := m.At(i, j)
	if err != nil {
		t.Fatalf("At(%d,%d): %v", i, j, err)
	}

	return v
}

// MustMul MULTIPLIES via the validating facade or fails the test.
func MustMul(t *testing.T, a, b matrix.Matrix) matrix.Matrix {
	t.Helper()
	c, err := matrix.Mul(a, b)
	if err != nil {
		t.Fatalf("Mul: %v", err)
	}

	return c
}

// CompareExact ASSERTS m equals want element-wise (no tolerance).
// Use only for integer-like or carefully crafted small matrices.
func CompareExact(t *testing.T, want [][]float64, m matrix.Matrix) {
	t.Helper()
	r, c := m.Rows(), m.Cols()
	if len(want) != r {
		t.Fatalf("CompareExact: Rows = %d; want %d", r, len(want))
	}
	var i, j int // loop iterators
	var v float64
	for i = 0; i < r; i++ {
		if len(want[i]) != c {
			t.Fatalf("CompareExact: Cols[%d] = %d; want %d", i, c, len(want[i]))
		}
		for j = 0; j < c; j++ {
			if v = MustAt(t, m, i, j); v != want[i][j] {
				t.Fatalf("m[%d,%d]=%v; want %v", i, j, v, want[i][j])
			}
		}
	}
}

// CompareClose ASSERTS AllClose(a,b) under (rtol, atol).
func CompareClose(t *testing.T, a, b matrix.Matrix, rtol, atol float64) {
	t.Helper()
	ok, err := matrix.AllClose(a, b, rtol, atol)
	if err != nil {
		t.Fatalf("AllClose err: %v", err)
	}
	if !ok {
		t.Fatalf("AllClose=false (rtol=%g, atol=%g)", rtol, atol)
	}
}

// countingRecorder implements matrix.AllocationRecorder for tests.
type countingRecorder struct {
	allocs, releases int
	elements         int
}

func (r *countingRecorder) RecordAllocation(rows, cols int) {
	r.allocs++
	r.elements += rows * cols
}

func (r *countingRecorder) RecordRelease(rows, cols int) {
	r.releases++
	r.elements -= rows * cols
}
