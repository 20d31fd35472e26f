// SPDX-License-Identifier: MIT
// Package matrix — public API facades.
//
// Purpose:
//   - Provide thin entry points for common constructions.
//   - Avoid logic duplication — each facade delegates to the canonical implementation.

package matrix

// NewZeros returns a new zero-initialized *Dense of size rows×cols.
// Thin alias of NewDense with an intention-revealing name.
func NewZeros(rows, cols int) (*Dense, error) { return NewDense(rows, cols) }

// NewIdentity returns I_n (n×n identity; ones on the diagonal, zeros elsewhere).
// Complexity: O(n^2) zeroing + O(n) diagonal writes.
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

// Gram returns mᵀ·m (cols×cols). Used for orthonormality checks: ‖UᵀU − I‖.
// Complexity: O(r*c^2).
func Gram(m Matrix) (*Dense, error) {
	mt, err := Transpose(m)
	if err != nil {
		return nil, err
	}

	return Mul(mt, m)
}

// OrthonormalityDefect returns max |(UᵀU − I)[i,j]| for the columns of u.
func OrthonormalityDefect(u Matrix) (float64, error) {
	g, err := Gram(u)
	if err != nil {
		return 0, err
	}
	I, err := NewIdentity(g.Rows())
	if err != nil {
		return 0, err
	}
	diff, err := Sub(g, I)
	if err != nil {
		return 0, err
	}

	return MaxAbs(diff)
}
