// SPDX-License-Identifier: MIT
package matrix_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/hodgenet/matrix"
)

func TestThinQR_Reconstructs(t *testing.T) {
	t.Parallel()

	m := MustFrom(t, 4, 2,
		1, 2,
		3, 4,
		5, 6,
		7, 9)
	q, r, err := matrix.ThinQR(m)
	require.NoError(t, err)
	assert.Equal(t, 4, q.Rows())
	assert.Equal(t, 2, q.Cols())

	defect, err := matrix.OrthonormalityDefect(q)
	require.NoError(t, err)
	assert.Less(t, defect, 1e-12)
	assert.Zero(t, MustAt(t, r, 1, 0))

	qr, err := matrix.Mul(q, r)
	require.NoError(t, err)
	ok, err := matrix.AllClose(qr, m, 0, 1e-12)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestThinQR_RankDeficientStaysOrthonormal(t *testing.T) {
	t.Parallel()

	// Second column is zero, third duplicates the first.
	m := MustFrom(t, 3, 3,
		1, 0, 1,
		1, 0, 1,
		0, 0, 0)
	q, _, err := matrix.ThinQR(m)
	require.NoError(t, err)
	defect, err := matrix.OrthonormalityDefect(q)
	require.NoError(t, err)
	assert.Less(t, defect, 1e-12)
}

func TestThinQR_WideRejected(t *testing.T) {
	t.Parallel()

	_, _, err := matrix.ThinQR(MustDense(t, 2, 3))
	AssertErrorIs(t, err, matrix.ErrDimensionMismatch)
}
