// SPDX-License-Identifier: MIT
package matrix_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/hodgenet/matrix"
)

func TestNewDense_ZeroSizedShapesAreLegal(t *testing.T) {
	for _, tc := range []struct{ r, c int }{{0, 0}, {5, 0}, {0, 3}} {
		m, err := matrix.NewDense(tc.r, tc.c)
		require.NoError(t, err)
		assert.Equal(t, tc.r, m.Rows())
		assert.Equal(t, tc.c, m.Cols())
		assert.Empty(t, m.Values())
	}
}

func TestNewDense_NegativeRejected(t *testing.T) {
	_, err := matrix.NewDense(-1, 2)
	AssertErrorIs(t, err, matrix.ErrInvalidDimensions)
}

func TestDense_AtSetBoundsAndNaN(t *testing.T) {
	m := MustDense(t, 2, 2)
	require.NoError(t, m.Set(1, 0, 3.5))
	assert.Equal(t, 3.5, MustAt(t, m, 1, 0))

	_, err := m.At(2, 0)
	AssertErrorIs(t, err, matrix.ErrOutOfRange)
	AssertErrorIs(t, m.Set(0, -1, 1), matrix.ErrOutOfRange)
	AssertErrorIs(t, m.Set(0, 0, math.NaN()), matrix.ErrNaNInf)
	AssertErrorIs(t, m.Set(0, 0, math.Inf(1)), matrix.ErrNaNInf)
}

func TestNewDenseFrom_LengthMismatch(t *testing.T) {
	_, err := matrix.NewDenseFrom(2, 2, []float64{1, 2, 3})
	AssertErrorIs(t, err, matrix.ErrDimensionMismatch)
}

func TestDense_CloneIsIndependent(t *testing.T) {
	m := MustFrom(t, 2, 2, 1, 2, 3, 4)
	c := m.Clone()
	require.NoError(t, c.Set(0, 0, 9))
	assert.Equal(t, 1.0, MustAt(t, m, 0, 0))
}

func TestDense_ColAndSliceCols(t *testing.T) {
	m := MustFrom(t, 2, 3,
		1, 2, 3,
		4, 5, 6)
	col, err := m.Col(1)
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 5}, col)

	s, err := m.SliceCols(2)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 4, 5}, s.Values())

	_, err = m.SliceCols(4)
	AssertErrorIs(t, err, matrix.ErrOutOfRange)
	_, err = m.Col(3)
	AssertErrorIs(t, err, matrix.ErrOutOfRange)
}
