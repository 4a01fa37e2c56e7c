// SPDX-License-Identifier: MIT
// Package matrix provides the matrix product over any Matrix implementation.
//
// Purpose:
//   - MulInto: the reference kernel over *Dense flat buffers. Trusts its caller.
//   - MulTo / Mul: validating facades (nil, compatibility, result shape) with a
//     *Dense fast-path and a generic At/Set fallback using the same loop order.
//
// Notes:
//   - Loop order is i → j → k with the accumulator starting at ZeroSum and k
//     increasing. Results are therefore bit-for-bit identical between the
//     fast-path and the fallback.
//   - No zero skipping: 0*NaN and 0*Inf must still produce NaN.

package matrix

import "fmt"

// ZeroSum is the initial value of every dot-product accumulator.
const ZeroSum = 0.0

// Operation name constants for unified error wrapping.
const (
	opMul   = "Mul"
	opMulTo = "MulTo"
)

// matrixErrorf wraps err with an operation tag: "Op: underlying".
// Use only when err != nil.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// MulInto computes c = a × b into a pre-allocated result.
//
// Contract (NOT re-validated):
//   - a, b, c are non-nil and not released.
//   - a.Cols() == b.Rows().
//   - c is a.Rows() × b.Cols().
//
// Violations are caller error; with Go slices they surface as an index panic,
// never as silent memory corruption.
//
// Behavior highlights:
//   - c[i][j] = Σ_{k=0}^{a.Cols()-1} a[i][k]*b[k][j], accumulated from 0.0 in
//     increasing k.
//   - Writes every element of c; reads a and b only.
//   - Ordinary IEEE-754 arithmetic; NaN/Inf propagate. The numeric policy of c
//     is not consulted.
//
// Complexity:
//   - Time O(r1*c1*c2), Space O(1).
func MulInto(a, b, c *Dense) {
	r1, c1, c2 := a.r, a.c, b.c
	var (
		i, j, k    int // loop iterators
		rowA, rowC int // row offsets into a and c
		acc        float64
	)
	for i = 0; i < r1; i++ {
		rowA = i * c1
		rowC = i * c2
		for j = 0; j < c2; j++ {
			acc = ZeroSum
			for k = 0; k < c1; k++ {
				acc += a.data[rowA+k] * b.data[k*c2+j]
			}
			c.data[rowC+j] = acc
		}
	}
}

// MulTo computes dst = a × b after validating every operand.
//
// Implementation:
//   - Stage 1: ValidateMulCompatible(a, b); ValidateNotNil(dst); ValidateProductShape.
//   - Stage 2: *Dense triple → MulInto; otherwise generic At/Set triple loop.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch, plus any At/Set error of a custom
//     Matrix (e.g. ErrNaNInf when dst enforces the finite policy).
//
// Complexity:
//   - Time O(r1*c1*c2), Space O(1).
func MulTo(dst, a, b Matrix) error {
	if err := ValidateMulCompatible(a, b); err != nil {
		return matrixErrorf(opMulTo, err)
	}
	if err := ValidateNotNil(dst); err != nil {
		return matrixErrorf(opMulTo, err)
	}
	if err := ValidateProductShape(a, b, dst); err != nil {
		return matrixErrorf(opMulTo, err)
	}

	// Fast-path for three Dense matrices.
	if da, okA := a.(*Dense); okA {
		if db, okB := b.(*Dense); okB {
			if dc, okC := dst.(*Dense); okC {
				if da.Released() || db.Released() || dc.Released() {
					return matrixErrorf(opMulTo, ErrReleased)
				}
				MulInto(da, db, dc)
				return nil
			}
		}
	}

	// Fallback: generic interface triple-loop (i-j-k), same order as MulInto.
	aRows, aCols, bCols := a.Rows(), a.Cols(), b.Cols()
	var (
		i, j, k       int
		av, bv, accum float64
		err           error
	)
	for i = 0; i < aRows; i++ {
		for j = 0; j < bCols; j++ {
			accum = ZeroSum
			for k = 0; k < aCols; k++ {
				if av, err = a.At(i, k); err != nil {
					return matrixErrorf(opMulTo, err)
				}
				if bv, err = b.At(k, j); err != nil {
					return matrixErrorf(opMulTo, err)
				}
				accum += av * bv
			}
			if err = dst.Set(i, j, accum); err != nil {
				return matrixErrorf(opMulTo, err)
			}
		}
	}

	return nil
}

// Mul performs standard matrix multiplication C = A × B into a fresh Dense.
//
// Behavior highlights:
//   - Operands are never mutated.
//   - The result inherits the numeric policy of a when a is *Dense, the
//     package default otherwise.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (wrapped with "Mul").
//
// Complexity:
//   - Time O(r1*c1*c2), Space O(r1*c2).
func Mul(a, b Matrix) (Matrix, error) {
	if err := ValidateMulCompatible(a, b); err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	res, err := NewDense(a.Rows(), b.Cols())
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	if da, ok := a.(*Dense); ok {
		res.validateNaNInf = da.validateNaNInf
	}
	if err = MulTo(res, a, b); err != nil {
		return nil, matrixErrorf(opMul, err)
	}

	return res, nil
}
