// SPDX-License-Identifier: MIT
package hodge_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/katalvlaran/hodgenet/hodge"
	"github.com/katalvlaran/hodgenet/simplicial"
)

// Build fans out over levels; every worker must be joined before it returns.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// mustBuild builds a Ready complex or fails the test.
func mustBuild(t *testing.T, sc *simplicial.Complex, opts ...hodge.Option) *hodge.Complex {
	t.Helper()
	hc, err := hodge.Build(context.Background(), sc, opts...)
	require.NoError(t, err)
	require.Equal(t, hodge.Ready, hc.State())

	return hc
}

// mustEdges derives a complex from an edge list or fails the test.
func mustEdges(t *testing.T, n int, edges [][2]int, triangles bool) *simplicial.Complex {
	t.Helper()
	sc, err := simplicial.FromEdges(n, edges, triangles)
	require.NoError(t, err)

	return sc
}

func cycleEdges(n int) [][2]int {
	edges := make([][2]int, n)
	for i := 0; i < n; i++ {
		edges[i] = [2]int{i, (i + 1) % n}
	}

	return edges
}
