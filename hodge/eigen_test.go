// SPDX-License-Identifier: MIT
package hodge_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/katalvlaran/hodgenet/hodge"
	"github.com/katalvlaran/hodgenet/matrix"
)

// pathLaplacian returns the graph Laplacian of a path on n vertices.
func pathLaplacian(t *testing.T, n int) *matrix.Sparse {
	t.Helper()
	var entries []matrix.Triplet
	for i := 0; i < n; i++ {
		deg := 2.0
		if i == 0 || i == n-1 {
			deg = 1
		}
		entries = append(entries, matrix.Triplet{Row: i, Col: i, Val: deg})
		if i+1 < n {
			entries = append(entries,
				matrix.Triplet{Row: i, Col: i + 1, Val: -1},
				matrix.Triplet{Row: i + 1, Col: i, Val: -1},
			)
		}
	}
	l, err := matrix.NewSparse(n, n, entries)
	require.NoError(t, err)

	return l
}

// pathEigen is the j-th eigenvalue of the path Laplacian: 2-2cos(πj/n).
func pathEigen(n, j int) float64 {
	return 2 - 2*math.Cos(math.Pi*float64(j)/float64(n))
}

func TestDecompose_Tiers(t *testing.T) {
	l := pathLaplacian(t, 30)
	ctx := context.Background()

	tests := []struct {
		name string
		m    int
		tier hodge.Tier
	}{
		{"iterative", 4, hodge.TierIterative},
		{"dense when m = n-1", 29, hodge.TierDense},
		{"dense when m > n", 40, hodge.TierDense},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e, err := hodge.Decompose(ctx, l, tc.m)
			require.NoError(t, err)
			assert.Equal(t, tc.tier, e.Tier())
			assert.Equal(t, min(tc.m, 30), e.Modes())
			for j := 0; j < e.Modes(); j++ {
				assert.InDelta(t, pathEigen(30, j), e.Value(j), 1e-6, "λ_%d", j)
			}
			defect, err := matrix.OrthonormalityDefect(e.Vectors())
			require.NoError(t, err)
			assert.Less(t, defect, 1e-8)
		})
	}
}

func TestDecompose_EigenvectorResidual(t *testing.T) {
	l := pathLaplacian(t, 40)
	e, err := hodge.Decompose(context.Background(), l, 5, hodge.WithSolverTolerance(1e-9))
	require.NoError(t, err)
	require.Equal(t, hodge.TierIterative, e.Tier())

	u := e.Vectors()
	for j := 0; j < e.Modes(); j++ {
		col, err := u.Col(j)
		require.NoError(t, err)
		lx, err := l.MulVec(col)
		require.NoError(t, err)
		var res float64
		for i := range lx {
			d := lx[i] - e.Value(j)*col[i]
			res += d * d
		}
		assert.Less(t, math.Sqrt(res), 1e-7, "mode %d", j)
	}
}

func TestDecompose_FallbackIsLogged(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	l := pathLaplacian(t, 30)

	e, err := hodge.Decompose(context.Background(), l, 3,
		hodge.WithMaxIterations(1),
		hodge.WithLogger(zap.New(core)),
	)
	require.NoError(t, err)
	assert.Equal(t, hodge.TierFallback, e.Tier())
	assert.Equal(t, 3, e.Modes())
	for j := 0; j < 3; j++ {
		assert.InDelta(t, pathEigen(30, j), e.Value(j), 1e-9)
	}

	entries := logs.FilterMessage("iterative eigensolver failed, falling back to dense").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.EqualValues(t, 30, fields["n"])
	assert.EqualValues(t, 3, fields["modes"])
	assert.Contains(t, fields["error"], "did not converge")
}

func TestDecompose_BothTiersFail(t *testing.T) {
	// Path Laplacian with one unmatched off-diagonal entry: Jacobi rejects it.
	var entries []matrix.Triplet
	for i := 0; i < 12; i++ {
		entries = append(entries, matrix.Triplet{Row: i, Col: i, Val: 2})
		if i+1 < 12 {
			entries = append(entries,
				matrix.Triplet{Row: i, Col: i + 1, Val: -1},
				matrix.Triplet{Row: i + 1, Col: i, Val: -1},
			)
		}
	}
	entries = append(entries, matrix.Triplet{Row: 0, Col: 11, Val: 0.5})
	l, err := matrix.NewSparse(12, 12, entries)
	require.NoError(t, err)

	tests := []struct {
		name     string
		m        int
		fallback int
	}{
		{"iterative then dense", 2, 1},
		{"dense only", 12, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			core, logs := observer.New(zapcore.WarnLevel)
			_, err := hodge.Decompose(context.Background(), l, tc.m,
				hodge.WithMaxIterations(1),
				hodge.WithLogger(zap.New(core)),
			)
			require.Error(t, err)

			var ne *hodge.NumericalError
			require.True(t, errors.As(err, &ne), "got %T", err)
			assert.Equal(t, -1, ne.Level)
			assert.ErrorIs(t, err, matrix.ErrAsymmetry)
			assert.Contains(t, err.Error(), "numerical failure")
			assert.Len(t, logs.FilterMessage("iterative eigensolver failed, falling back to dense").All(), tc.fallback)
		})
	}
}

func TestDecompose_Empty(t *testing.T) {
	l, err := matrix.ZeroSparse(0, 0)
	require.NoError(t, err)
	e, err := hodge.Decompose(context.Background(), l, 8)
	require.NoError(t, err)
	assert.Equal(t, 0, e.Modes())
	assert.Equal(t, hodge.TierNone, e.Tier())
	assert.Empty(t, e.Values())
}

func TestDecompose_ZeroOperatorConverges(t *testing.T) {
	l, err := matrix.ZeroSparse(10, 10)
	require.NoError(t, err)
	e, err := hodge.Decompose(context.Background(), l, 3)
	require.NoError(t, err)
	assert.Equal(t, hodge.TierIterative, e.Tier())
	assert.Equal(t, []float64{0, 0, 0}, e.Values())
}

func TestDecompose_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := hodge.Decompose(ctx, pathLaplacian(t, 20), 2)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEigenpairs_Immutable(t *testing.T) {
	e, err := hodge.Decompose(context.Background(), pathLaplacian(t, 5), 5)
	require.NoError(t, err)

	vals := e.Values()
	vals[0] = 42
	assert.NotEqual(t, 42.0, e.Value(0))

	u := e.Vectors()
	require.NoError(t, u.Set(0, 0, 42))
	assert.NotEqual(t, 42.0, e.Basis(0, 0))
	assert.Equal(t, "dense", e.Tier().String())
}

func TestCountHarmonic(t *testing.T) {
	assert.Equal(t, 2, hodge.CountHarmonic([]float64{-1e-9, 5e-7, 1e-6, 0.3}, 1e-6))
	assert.Zero(t, hodge.CountHarmonic(nil, 1e-6))
}
