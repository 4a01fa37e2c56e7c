// SPDX-License-Identifier: MIT
// Package matrix: public API facades.
//
// Purpose:
//   - Provide thin entry points for building operands: zeros, identity, literals.
//   - Avoid logic duplication: each facade delegates to the canonical constructor.
//
// Determinism & Policy:
//   - Facades never change the numeric policy of the constructor they call.

package matrix

import "fmt"

// NewZeros returns a new zero-initialized *Dense of size rows×cols.
// It is a thin alias of NewDense with an intention-revealing name.
//
// Note: Returns (*Dense, error) to surface ErrInvalidDimensions.
func NewZeros(rows, cols int) (*Dense, error) {
	return NewDense(rows, cols)
}

// NewIdentity returns I_n (n×n identity; ones on the diagonal, zeros elsewhere).
// Complexity: O(n^2) zeroing (constructor) + O(n) writes on the diagonal.
func NewIdentity(n int) (*Dense, error) {
	I, err := NewDense(n, n)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		I.data[i*n+i] = 1.0
	}

	return I, nil
}

// NewDenseFrom copies a rectangular [][]float64 literal into a new Dense.
//
// Errors:
//   - ErrInvalidDimensions for an empty literal or empty first row.
//   - ErrRaggedRows when rows differ in length.
//   - ErrNaNInf when a value is non-finite and the resolved policy rejects it.
//
// Complexity: O(r*c).
func NewDenseFrom(rows [][]float64, opts ...Option) (*Dense, error) {
	if len(rows) == 0 {
		return nil, matrixErrorf("NewDenseFrom", ErrInvalidDimensions)
	}
	m, err := newDenseWithPolicy(len(rows), len(rows[0]), opts...)
	if err != nil {
		return nil, matrixErrorf("NewDenseFrom", err)
	}
	for i, row := range rows {
		if len(row) != m.c {
			return nil, fmt.Errorf("NewDenseFrom: row %d has %d values, want %d: %w", i, len(row), m.c, ErrRaggedRows)
		}
		for j, v := range row {
			if err = m.Set(i, j, v); err != nil {
				return nil, matrixErrorf("NewDenseFrom", err)
			}
		}
	}

	return m, nil
}
