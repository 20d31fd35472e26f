// SPDX-License-Identifier: MIT
package hodge_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/katalvlaran/hodgenet/hodge"
)

func TestOptions_PanicOnNonsense(t *testing.T) {
	cases := map[string]func(){
		"modes zero":       func() { hodge.WithMaxModes(0) },
		"level negative":   func() { hodge.WithLevelModes(map[int]int{-1: 4}) },
		"level modes zero": func() { hodge.WithLevelModes(map[int]int{1: 0}) },
		"betti tol zero":   func() { hodge.WithBettiTolerance(0) },
		"betti tol NaN":    func() { hodge.WithBettiTolerance(math.NaN()) },
		"solver tol inf":   func() { hodge.WithSolverTolerance(math.Inf(1)) },
		"iterations zero":  func() { hodge.WithMaxIterations(0) },
		"negative workers": func() { hodge.WithWorkers(-1) },
		"nil logger":       func() { hodge.WithLogger(nil) },
	}
	for name, fn := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Panics(t, fn)
		})
	}
}

func TestOptions_AffectBuild(t *testing.T) {
	sc := mustEdges(t, 10, cycleEdges(10), false)

	hc := mustBuild(t, sc,
		hodge.WithMaxModes(4),
		hodge.WithLevelModes(map[int]int{1: 10}),
		hodge.WithWorkers(1),
		hodge.WithSeed(7),
	)
	e0, err := hc.Eigenpairs(0)
	assert.NoError(t, err)
	e1, err := hc.Eigenpairs(1)
	assert.NoError(t, err)
	assert.Equal(t, 4, e0.Modes())
	assert.Equal(t, 10, e1.Modes())
	assert.True(t, hc.Truncated(0))
	assert.False(t, hc.Truncated(1))

	// A huge Betti tolerance counts every computed mode as harmonic.
	loose := mustBuild(t, sc, hodge.WithBettiTolerance(10))
	assert.Equal(t, []int{10, 10}, loose.BettiNumbers())
	assert.Equal(t, 10.0, loose.BettiTolerance())
}
