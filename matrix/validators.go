// SPDX-License-Identifier: MIT

// Package matrix - centralized validators.
//
// Purpose:
//   - Keep every shape/numeric precondition in one place so kernels report
//     identical sentinels for identical violations.
//   - Validators return bare sentinels; kernels add the operation tag.

package matrix

import (
	"fmt"
	"math"
)

// validatorErrorf keeps validator context ("ValidateSymmetric(2,3): ...") uniform.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// ValidateNotNil rejects a nil interface and a typed-nil *Dense.
func ValidateNotNil(m Matrix) error {
	if m == nil {
		return ErrNilMatrix
	}
	if d, ok := m.(*Dense); ok && d == nil {
		return ErrNilMatrix
	}

	return nil
}

// ValidateSameShape requires identical (rows, cols).
func ValidateSameShape(a, b Matrix) error {
	if a.Rows() != b.Rows() || a.Cols() != b.Cols() {
		return ErrDimensionMismatch
	}

	return nil
}

// ValidateBinarySameShape composes nil checks and the shape check for binary kernels.
func ValidateBinarySameShape(a, b Matrix) error {
	if err := ValidateNotNil(a); err != nil {
		return err
	}
	if err := ValidateNotNil(b); err != nil {
		return err
	}

	return ValidateSameShape(a, b)
}

// ValidateSquare requires a non-nil square matrix.
func ValidateSquare(m Matrix) error {
	if err := ValidateNotNil(m); err != nil {
		return err
	}
	if m.Rows() != m.Cols() {
		return ErrNonSquare
	}

	return nil
}

// ValidateMulCompatible requires a.Cols == b.Rows.
func ValidateMulCompatible(a, b Matrix) error {
	if err := ValidateNotNil(a); err != nil {
		return err
	}
	if err := ValidateNotNil(b); err != nil {
		return err
	}
	if a.Cols() != b.Rows() {
		return ErrDimensionMismatch
	}

	return nil
}

// ValidateVecLen requires len(x) == n.
func ValidateVecLen(x []float64, n int) error {
	if len(x) != n {
		return ErrDimensionMismatch
	}

	return nil
}

// ValidateSymmetric checks squareness and |m[i,j]-m[j,i]| <= tol for all i<j.
// MAIN DESCRIPTION:
//   - Gatekeeper for the symmetric eigen kernels.
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare, ErrAsymmetry (first violating pair reported).
//
// Complexity:
//   - Time O(n^2), Space O(1).
func ValidateSymmetric(m Matrix, tol float64) error {
	if err := ValidateSquare(m); err != nil {
		return err
	}
	n := m.Rows()
	var i, j int
	var a, b float64
	if d, ok := m.(*Dense); ok {
		for i = 0; i < n; i++ {
			for j = i + 1; j < n; j++ {
				a, b = d.data[i*n+j], d.data[j*n+i]
				if math.Abs(a-b) > tol {
					return validatorErrorf(fmt.Sprintf("ValidateSymmetric(%d,%d)", i, j), ErrAsymmetry)
				}
			}
		}

		return nil
	}
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			a, _ = m.At(i, j)
			b, _ = m.At(j, i)
			if math.Abs(a-b) > tol {
				return validatorErrorf(fmt.Sprintf("ValidateSymmetric(%d,%d)", i, j), ErrAsymmetry)
			}
		}
	}

	return nil
}
