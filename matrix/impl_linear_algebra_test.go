// Package matrix_test contains unit tests for universal Matrix (linear algebra) operations.
package matrix_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/hodgenet/matrix"
)

func TestAddSub_FastPathMatchesFallback(t *testing.T) {
	t.Parallel()

	a := MustFrom(t, 2, 3, 1, 2, 3, 4, 5, 6)
	b := MustFrom(t, 2, 3, 6, 5, 4, 3, 2, 1)

	fast, err := matrix.Add(a, b)
	require.NoError(t, err)
	slow, err := matrix.Add(hide{a}, hide{b})
	require.NoError(t, err)
	assert.Equal(t, fast.Values(), slow.Values())
	assert.Equal(t, []float64{7, 7, 7, 7, 7, 7}, fast.Values())

	d, err := matrix.Sub(a, b)
	require.NoError(t, err)
	assert.Equal(t, []float64{-5, -3, -1, 1, 3, 5}, d.Values())
}

func TestAdd_DimensionMismatch(t *testing.T) {
	t.Parallel()

	_, err := matrix.Add(MustDense(t, 3, 4), MustDense(t, 4, 3))
	AssertErrorIs(t, err, matrix.ErrDimensionMismatch)
	_, err = matrix.Add(nil, MustDense(t, 1, 1))
	AssertErrorIs(t, err, matrix.ErrNilMatrix)
}

func TestMul_KnownProductAndDegenerateInner(t *testing.T) {
	t.Parallel()

	a := MustFrom(t, 2, 2, 1, 2, 3, 4)
	b := MustFrom(t, 2, 1, 5, 6)
	p, err := matrix.Mul(a, b)
	require.NoError(t, err)
	assert.Equal(t, []float64{17, 39}, p.Values())

	// (3×0)·(0×3) is a 3×3 zero matrix, not an error.
	z, err := matrix.Mul(MustDense(t, 3, 0), MustDense(t, 0, 3))
	require.NoError(t, err)
	assert.Equal(t, 3, z.Rows())
	assert.Equal(t, 3, z.Cols())
	assert.Equal(t, make([]float64, 9), z.Values())

	_, err = matrix.Mul(a, MustDense(t, 3, 1))
	AssertErrorIs(t, err, matrix.ErrDimensionMismatch)
}

func TestTranspose_Involution(t *testing.T) {
	t.Parallel()

	a := MustFrom(t, 2, 3, 1, 2, 3, 4, 5, 6)
	at, err := matrix.Transpose(a)
	require.NoError(t, err)
	assert.Equal(t, 3, at.Rows())
	assert.Equal(t, 4.0, MustAt(t, at, 0, 1))
	att, err := matrix.Transpose(at)
	require.NoError(t, err)
	assert.Equal(t, a.Values(), att.Values())
}

func TestSymmetrize_ExactSymmetry(t *testing.T) {
	t.Parallel()

	m := MustFrom(t, 3, 3,
		1, 2.0000001, 3,
		2, 5, 6.5,
		3.25, 6, 9)
	s, err := matrix.Symmetrize(m)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			assert.Equal(t, MustAt(t, s, i, j), MustAt(t, s, j, i))
		}
	}
	_, err = matrix.Symmetrize(MustDense(t, 2, 3))
	AssertErrorIs(t, err, matrix.ErrNonSquare)
}

func TestScaleNorms(t *testing.T) {
	t.Parallel()

	a := MustFrom(t, 2, 2, 3, 0, 0, -4)
	s, err := matrix.Scale(a, 2)
	require.NoError(t, err)
	assert.Equal(t, []float64{6, 0, 0, -8}, s.Values())

	mx, err := matrix.MaxAbs(a)
	require.NoError(t, err)
	assert.Equal(t, 4.0, mx)

	fn, err := matrix.FrobeniusNorm(a)
	require.NoError(t, err)
	assert.InDelta(t, 5.0, fn, 1e-12)
}

func TestAllClose(t *testing.T) {
	t.Parallel()

	a := MustFrom(t, 1, 2, 1, 2)
	b := MustFrom(t, 1, 2, 1+1e-10, 2)
	ok, err := matrix.AllClose(a, b, 0, 1e-9)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = matrix.AllClose(a, b, 0, 1e-12)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestOrthonormalityDefect_Identity(t *testing.T) {
	t.Parallel()

	I, err := matrix.NewIdentity(4)
	require.NoError(t, err)
	d, err := matrix.OrthonormalityDefect(I)
	require.NoError(t, err)
	assert.Zero(t, d)
}
