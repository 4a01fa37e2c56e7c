// SPDX-License-Identifier: MIT
// Package matrix_test contains unit tests for the Dense implementation
// of the Matrix interface in the matrix package.
package matrix_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/matprod/matrix"
	"github.com/stretchr/testify/require"
)

// TestNewDenseInvalidDimensions ensures that NewDense rejects non-positive dimensions.
func TestNewDenseInvalidDimensions(t *testing.T) {
	_, err := matrix.NewDense(0, 5)                      // attempt to create with zero rows
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions) // expect ErrInvalidDimensions

	_, err = matrix.NewDense(5, 0)                       // attempt to create with zero columns
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions) // expect ErrInvalidDimensions

	_, err = matrix.NewDense(-1, 3)                      // negative rows
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions) // expect ErrInvalidDimensions
}

// TestRowsCols verifies that Rows() and Cols() return correct dimension values.
func TestRowsCols(t *testing.T) {
	rows, cols := 3, 4                    // define expected row and column counts
	m, err := matrix.NewDense(rows, cols) // create a Dense matrix of size 3x4
	require.NoError(t, err)               // assert no error on valid dimensions

	require.Equal(t, rows, m.Rows()) // assert Rows() equals expected rows
	require.Equal(t, cols, m.Cols()) // assert Cols() equals expected cols

	r, c := m.Shape()
	require.Equal(t, rows, r)
	require.Equal(t, cols, c)
}

// TestNewDenseZeroed verifies the constructor zero-fills every element.
func TestNewDenseZeroed(t *testing.T) {
	m := MustDense(t, 2, 3)
	m.Do(func(i, j int, v float64) bool {
		require.Zero(t, v, "m[%d,%d]", i, j)
		return true
	})
}

// TestAtSetOutOfBounds ensures At() and Set() return ErrOutOfRange on invalid access.
func TestAtSetOutOfBounds(t *testing.T) {
	m := MustDense(t, 2, 2) // create a 2x2 Dense matrix

	_, err := m.At(-1, 0)                         // attempt At() with negative row index
	require.ErrorIs(t, err, matrix.ErrOutOfRange) // expect ErrOutOfRange

	_, err = m.At(0, 2)                           // attempt At() with column index out of range
	require.ErrorIs(t, err, matrix.ErrOutOfRange) // expect ErrOutOfRange

	err = m.Set(2, 0, 1.23)                       // attempt Set() with row index out of range
	require.ErrorIs(t, err, matrix.ErrOutOfRange) // expect ErrOutOfRange

	err = m.Set(0, -1, 4.56)                      // attempt Set() with negative column index
	require.ErrorIs(t, err, matrix.ErrOutOfRange) // expect ErrOutOfRange
}

// TestSetGet validates correct behavior of Set() followed by At() on valid indices.
func TestSetGet(t *testing.T) {
	m := MustDense(t, 2, 3) // create a 2x3 Dense matrix

	err := m.Set(1, 2, 7.89) // set element at row 1, column 2
	require.NoError(t, err)  // assert Set() succeeded

	val, err := m.At(1, 2)      // retrieve the set element
	require.NoError(t, err)     // assert At() succeeded
	require.Equal(t, 7.89, val) // assert retrieved value matches set value
}

// TestSetNaNInfPolicy checks the default finite-only policy and its opt-out.
func TestSetNaNInfPolicy(t *testing.T) {
	strict := MustDense(t, 1, 2)
	require.ErrorIs(t, strict.Set(0, 0, math.NaN()), matrix.ErrNaNInf)
	require.ErrorIs(t, strict.Set(0, 1, math.Inf(-1)), matrix.ErrNaNInf)

	relaxed := MustFrom(t, [][]float64{{0, 0}}, matrix.WithNoValidateNaNInf())
	require.NoError(t, relaxed.Set(0, 0, math.NaN()))
	require.NoError(t, relaxed.Set(0, 1, math.Inf(1)))
	require.True(t, math.IsNaN(MustAt(t, relaxed, 0, 0)))
	require.True(t, math.IsInf(MustAt(t, relaxed, 0, 1), 1))
}

// TestCloneIndependence ensures Clone() returns a deep copy that does not share storage.
func TestCloneIndependence(t *testing.T) {
	m := MustDense(t, 2, 2) // create a 2x2 Dense matrix

	// initialize matrix elements to distinct values
	MustSet(t, m, 0, 0, 1.0)
	MustSet(t, m, 1, 1, 2.0)

	clone := m.Clone() // clone the matrix

	// modify the clone, but not the original
	MustSet(t, clone, 0, 0, 3.0)

	require.Equal(t, 1.0, MustAt(t, m, 0, 0))     // expect original remains unchanged
	require.Equal(t, 3.0, MustAt(t, clone, 0, 0)) // expect clone reflects new value
}

// TestStringOutput checks that String() formats the matrix as expected.
func TestStringOutput(t *testing.T) {
	m := MustFrom(t, [][]float64{{1, 2}, {3, 4}})

	expected := "[1, 2]\n[3, 4]\n"         // define expected string output
	require.Equal(t, expected, m.String()) // assert String() output matches expected format
}

// TestApply maps in place and honors the numeric policy.
func TestApply(t *testing.T) {
	m := MustFrom(t, [][]float64{{1, 2}, {3, 4}})
	require.NoError(t, m.Apply(func(_, _ int, v float64) float64 { return v * 2 }))
	CompareExact(t, [][]float64{{2, 4}, {6, 8}}, m)

	err := m.Apply(func(i, j int, v float64) float64 {
		if i == 1 && j == 0 {
			return math.NaN()
		}
		return v
	})
	require.ErrorIs(t, err, matrix.ErrNaNInf)
}

// TestDoEarlyStop verifies the visitor stops when the callback returns false.
func TestDoEarlyStop(t *testing.T) {
	m := MustDense(t, 3, 3)
	visited := 0
	m.Do(func(_, _ int, _ float64) bool {
		visited++
		return visited < 4
	})
	require.Equal(t, 4, visited)
}

// TestRelease covers release semantics: single effect, nil-safe, guarded access.
func TestRelease(t *testing.T) {
	var nilDense *matrix.Dense
	require.False(t, nilDense.Release()) // nil is a safe no-op

	m := MustDense(t, 2, 2)
	require.False(t, m.Released())
	require.True(t, m.Release())
	require.True(t, m.Released())
	require.False(t, m.Release()) // second release has no effect

	// Shape survives for diagnostics; data access does not.
	require.Equal(t, 2, m.Rows())
	_, err := m.At(0, 0)
	require.ErrorIs(t, err, matrix.ErrReleased)
	require.ErrorIs(t, m.Set(0, 0, 1), matrix.ErrReleased)
	require.Equal(t, "", m.String())
}
