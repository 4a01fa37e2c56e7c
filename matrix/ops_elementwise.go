// SPDX-License-Identifier: MIT
// Package matrix: element-wise comparison.

package matrix

import "math"

// AllClose reports whether |a[i,j]-b[i,j]| ≤ atol + rtol*|b[i,j]| for every element.
// Returns (true,nil) if all elements satisfy the relation; (false,nil) otherwise.
// Time: O(r*c). Space: O(1). Deterministic.
//
// Policy:
//   - a and b must be non-nil and have identical shapes.
//   - rtol, atol are treated as |rtol|, |atol| (negative values are normalized).
//   - NaN matches only NaN in the same position; ±Inf matches only the same Inf.
func AllClose(a, b Matrix, rtol, atol float64) (bool, error) {
	if isNonFinite(rtol) || isNonFinite(atol) {
		return false, matrixErrorf("AllClose", ErrNaNInf) // invalid tolerance
	}
	rtol, atol = math.Abs(rtol), math.Abs(atol)

	if err := ValidateNotNil(a); err != nil {
		return false, matrixErrorf("AllClose", err)
	}
	if err := ValidateNotNil(b); err != nil {
		return false, matrixErrorf("AllClose", err)
	}
	if err := ValidateSameShape(a, b); err != nil {
		return false, matrixErrorf("AllClose", err)
	}

	r, c := a.Rows(), a.Cols()

	// Dense fast-path: operate over flat slices when both are *Dense.
	if da, okA := a.(*Dense); okA {
		if db, okB := b.(*Dense); okB {
			if da.Released() || db.Released() {
				return false, matrixErrorf("AllClose", ErrReleased)
			}
			for idx := range da.data {
				if !withinTol(da.data[idx], db.data[idx], rtol, atol) {
					return false, nil // early-exit on first violation
				}
			}
			return true, nil
		}
	}

	// Generic fallback via At.
	var av, bv float64
	var err error
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if av, err = a.At(i, j); err != nil {
				return false, matrixErrorf("AllClose", err)
			}
			if bv, err = b.At(i, j); err != nil {
				return false, matrixErrorf("AllClose", err)
			}
			if !withinTol(av, bv, rtol, atol) {
				return false, nil
			}
		}
	}

	return true, nil
}

// withinTol applies the AllClose relation to one pair of scalars.
func withinTol(x, y, rtol, atol float64) bool {
	switch {
	case math.IsNaN(x) || math.IsNaN(y):
		return math.IsNaN(x) && math.IsNaN(y)
	case math.IsInf(x, 0) || math.IsInf(y, 0):
		return x == y
	}

	return math.Abs(x-y) <= atol+rtol*math.Abs(y)
}
