// SPDX-License-Identifier: MIT
// Package matrix provides universal operations on any Matrix implementation,
// including element-wise addition, subtraction, matrix multiplication,
// transpose, and scalar scaling. All functions perform strict
// fail-fast validation and return clear errors on dimension mismatches.
//
// Purpose:
//   - Canonical dense kernels used by the Hodge assembler and the eigen tiers.
//   - Every kernel has a *Dense fast-path (flat-slice loops) and an interface fallback.
//
// Notes:
//   - All kernels accept zero-sized operands and return zero-sized results
//     with the mathematically correct shape (e.g. (n×0)·(0×n) = n×n zeros).

package matrix

import (
	"fmt"
	"math"
)

// ZeroSum is the initial value for accumulations.
const ZeroSum = 0.0

// Operation name constants for unified error wrapping and reducing magic strings.
const (
	opAdd       = "Add"
	opSub       = "Sub"
	opMul       = "Mul"
	opTranspose = "Transpose"
	opScale     = "Scale"
	opMaxAbs    = "MaxAbs"
	opFrobenius = "FrobeniusNorm"
	opAllClose  = "AllClose"
	opSymmetric = "Symmetrize"
)

// matrixErrorf wraps err with an operation tag, preserving the original error via %w.
// Use only when err != nil.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// asDense converts any Matrix into a *Dense view: the same pointer for *Dense,
// a materialized copy otherwise. Keeps the kernels down to one fast-path each.
func asDense(m Matrix) *Dense {
	if d, ok := m.(*Dense); ok {
		return d
	}
	r, c := m.Rows(), m.Cols()
	d := &Dense{r: r, c: c, data: make([]float64, r*c)}
	var i, j int
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			d.data[i*c+j], _ = m.At(i, j) // bounds guaranteed by loop limits
		}
	}

	return d
}

// addSub computes elementwise out = a + sign*b for sign ∈ {+1, -1}.
// Internal helper for Add/Sub to share validation, allocation, and fast-path.
//
// Determinism:
//   - single flat slice walk 0..(r*c−1).
//
// Complexity:
//   - Time O(r*c), Space O(r*c) for the new result.
func addSub(a, b Matrix, sign float64, opTag string) (*Dense, error) {
	if err := ValidateBinarySameShape(a, b); err != nil {
		return nil, matrixErrorf(opTag, err)
	}
	da, db := asDense(a), asDense(b)
	res := &Dense{r: da.r, c: da.c, data: make([]float64, len(da.data))}
	for idx := range res.data {
		res.data[idx] = da.data[idx] + sign*db.data[idx]
	}

	return res, nil
}

// Add returns a + b. Errors: ErrNilMatrix, ErrDimensionMismatch. O(r*c).
func Add(a, b Matrix) (*Dense, error) { return addSub(a, b, +1, opAdd) }

// Sub returns a - b. Errors: ErrNilMatrix, ErrDimensionMismatch. O(r*c).
func Sub(a, b Matrix) (*Dense, error) { return addSub(a, b, -1, opSub) }

// Mul performs standard matrix multiplication of a and b (a × b).
// Implementation:
//   - Stage 1: ValidateMulCompatible.
//   - Stage 2: i→k→j loop on flat buffers (row of b streamed per a[i,k]);
//     zero a[i,k] are skipped, which matters for incidence-like operands.
//
// Behavior highlights:
//   - (r×0)·(0×c) yields an r×c zero matrix.
//
// Complexity:
//   - Time O(r*n*c), Space O(r*c).
func Mul(a, b Matrix) (*Dense, error) {
	if err := ValidateMulCompatible(a, b); err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	da, db := asDense(a), asDense(b)
	r, n, c := da.r, da.c, db.c
	res := &Dense{r: r, c: c, data: make([]float64, r*c)}
	var i, k, j int
	var aik float64
	var rowA, rowB, rowR int
	for i = 0; i < r; i++ {
		rowA = i * n
		rowR = i * c
		for k = 0; k < n; k++ {
			aik = da.data[rowA+k]
			if aik == 0 {
				continue
			}
			rowB = k * c
			for j = 0; j < c; j++ {
				res.data[rowR+j] += aik * db.data[rowB+j]
			}
		}
	}

	return res, nil
}

// Transpose returns mᵀ as a new Dense. O(r*c).
func Transpose(m Matrix) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	d := asDense(m)
	res := &Dense{r: d.c, c: d.r, data: make([]float64, len(d.data))}
	var i, j int
	for i = 0; i < d.r; i++ {
		for j = 0; j < d.c; j++ {
			res.data[j*d.r+i] = d.data[i*d.c+j]
		}
	}

	return res, nil
}

// Scale returns alpha*m. Errors: ErrNilMatrix, ErrNaNInf (non-finite alpha). O(r*c).
func Scale(m Matrix, alpha float64) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opScale, err)
	}
	if math.IsNaN(alpha) || math.IsInf(alpha, 0) {
		return nil, matrixErrorf(opScale, ErrNaNInf)
	}
	d := asDense(m)
	res := &Dense{r: d.r, c: d.c, data: make([]float64, len(d.data))}
	for idx, v := range d.data {
		res.data[idx] = alpha * v
	}

	return res, nil
}

// MaxAbs returns max |m[i,j]| (0 for an empty matrix). O(r*c).
func MaxAbs(m Matrix) (float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return 0, matrixErrorf(opMaxAbs, err)
	}
	var best float64
	for _, v := range asDense(m).data {
		if a := math.Abs(v); a > best {
			best = a
		}
	}

	return best, nil
}

// FrobeniusNorm returns sqrt(Σ m[i,j]^2) using hypot-style accumulation. O(r*c).
func FrobeniusNorm(m Matrix) (float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return 0, matrixErrorf(opFrobenius, err)
	}
	var acc float64
	for _, v := range asDense(m).data {
		acc = math.Hypot(acc, v)
	}

	return acc, nil
}

// AllClose checks element-wise |a-b| ≤ atol + rtol*|b| for identical shapes.
// Returns (true,nil) if all elements satisfy the relation; (false,nil) otherwise.
// Negative tolerances are normalized to their absolute values.
//
// AI-Hints:
//   - AllClose with small atol/rtol is ideal for invariance tests in unit tests.
func AllClose(a, b Matrix, rtol, atol float64) (bool, error) {
	if err := ValidateBinarySameShape(a, b); err != nil {
		return false, matrixErrorf(opAllClose, err)
	}
	rtol, atol = math.Abs(rtol), math.Abs(atol)
	da, db := asDense(a), asDense(b)
	for idx, av := range da.data {
		bv := db.data[idx]
		if math.Abs(av-bv) > atol+rtol*math.Abs(bv) {
			return false, nil
		}
	}

	return true, nil
}

// Symmetrize returns (m + mᵀ)/2.
// MAIN DESCRIPTION:
//   - Repairs asymmetry drift accumulated by floating-point products
//     (Laplacian assembly). The result is exactly symmetric bit-for-bit
//     because both triangles are written from the same expression.
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare.
//
// Complexity:
//   - Time O(n^2), Space O(n^2).
func Symmetrize(m Matrix) (*Dense, error) {
	if err := ValidateSquare(m); err != nil {
		return nil, matrixErrorf(opSymmetric, err)
	}
	d := asDense(m)
	n := d.r
	res := &Dense{r: n, c: n, data: make([]float64, n*n)}
	var i, j int
	var v float64
	for i = 0; i < n; i++ {
		res.data[i*n+i] = d.data[i*n+i]
		for j = i + 1; j < n; j++ {
			v = 0.5 * (d.data[i*n+j] + d.data[j*n+i])
			res.data[i*n+j] = v
			res.data[j*n+i] = v
		}
	}

	return res, nil
}
