// SPDX-License-Identifier: MIT

// Package matrix: the public Matrix interface shared by Dense and the kernels.
// Sparse operators deliberately do NOT implement Matrix: element-wise Set on a
// compressed structure is a trap, so sparse values are fixed at construction.
package matrix

// Matrix represents a two-dimensional mutable array of float64 values.
//
// Complexity notes: all methods are expected O(1) except Clone (O(r*c)).
type Matrix interface {
	// Rows returns the number of rows in the matrix.
	Rows() int

	// Cols returns the number of columns in the matrix.
	Cols() int

	// At retrieves the element at position (i, j).
	// Returns ErrOutOfRange if i<0, i>=Rows(), j<0 or j>=Cols().
	At(i, j int) (float64, error)

	// Set assigns the value v at position (i, j).
	// Returns ErrOutOfRange if indices are invalid, ErrNaNInf for non-finite v.
	Set(i, j int, v float64) error

	// Clone returns a deep copy of the matrix.
	Clone() Matrix
}

// Triplet is one explicit (row, col, value) entry used to assemble a Sparse.
// Duplicated coordinates are summed during compression.
type Triplet struct {
	Row, Col int
	Val      float64
}
