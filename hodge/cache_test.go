// SPDX-License-Identifier: MIT
package hodge_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/hodgenet/hodge"
	"github.com/katalvlaran/hodgenet/simplicial"
)

func TestCache_MemoisesByRecipe(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	cache := hodge.NewCache(hodge.WithLogger(zap.New(core)))
	ctx := context.Background()
	edges := cycleEdges(5)

	first, err := cache.FromEdges(ctx, 5, edges, true)
	require.NoError(t, err)
	second, err := cache.FromEdges(ctx, 5, edges, true)
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, 1, cache.Len())
	assert.Equal(t, 1, logs.FilterMessage("complex cache hit").Len())

	// Edge order fixes level-1 indices, so a permuted list is a different recipe.
	permuted := append([][2]int{edges[4]}, edges[:4]...)
	third, err := cache.FromEdges(ctx, 5, permuted, true)
	require.NoError(t, err)
	assert.NotSame(t, first, third)
	assert.Equal(t, first.BettiNumbers(), third.BettiNumbers())

	seq, err := cache.FromSequence(ctx, 6, 3)
	require.NoError(t, err)
	assert.Equal(t, []int{6, 9, 4}, seq.Counts())
	assert.Equal(t, 3, cache.Len())

	hc, ok := cache.Lookup(cache.SequenceKey(6, 3))
	require.True(t, ok)
	assert.Same(t, seq, hc)
	_, ok = cache.Lookup(cache.SequenceKey(6, 2))
	assert.False(t, ok)
}

func TestCache_KeyIncludesOptions(t *testing.T) {
	a := hodge.NewCache(hodge.WithMaxModes(8))
	b := hodge.NewCache(hodge.WithMaxModes(8), hodge.WithWorkers(1), hodge.WithLogger(zap.NewNop()))
	c := hodge.NewCache(hodge.WithMaxModes(16))

	edges := [][2]int{{0, 1}, {1, 2}}
	assert.Equal(t, a.EdgesKey(3, edges, false), b.EdgesKey(3, edges, false))
	assert.NotEqual(t, a.EdgesKey(3, edges, false), c.EdgesKey(3, edges, false))
	assert.NotEqual(t, a.EdgesKey(3, edges, false), a.EdgesKey(3, edges, true))
	assert.Equal(t, "edges", a.EdgesKey(3, edges, false).Kind.String())
	assert.Contains(t, a.EdgesKey(3, edges, false).String(), "e=0-1,1-2")
}

func TestCache_ConcurrentBuildsShareResult(t *testing.T) {
	cache := hodge.NewCache()
	const callers = 16
	results := make([]*hodge.Complex, callers)

	g, ctx := errgroup.WithContext(context.Background())
	for i := 0; i < callers; i++ {
		i := i
		g.Go(func() error {
			hc, err := cache.FromSequence(ctx, 40, 3)
			results[i] = hc
			return err
		})
	}
	require.NoError(t, g.Wait())
	for i := 1; i < callers; i++ {
		assert.Same(t, results[0], results[i])
	}
	assert.Equal(t, 1, cache.Len())
}

func TestCache_FailuresAreNotStored(t *testing.T) {
	cache := hodge.NewCache()
	_, err := cache.FromEdges(context.Background(), 2, [][2]int{{0, 5}}, false)
	assert.ErrorIs(t, err, simplicial.ErrVertexOutOfRange)
	assert.Zero(t, cache.Len())
}

func TestCache_CanceledWaiterDoesNotFailOthers(t *testing.T) {
	for round := 0; round < 8; round++ {
		cache := hodge.NewCache()
		ctx, cancel := context.WithCancel(context.Background())

		early := make(chan error, 1)
		go func() {
			_, err := cache.FromSequence(ctx, 60, 3)
			early <- err
		}()
		cancel()

		hc, err := cache.FromSequence(context.Background(), 60, 3)
		require.NoError(t, err, "round %d", round)
		assert.Equal(t, hodge.Ready, hc.State())

		if err := <-early; err != nil {
			assert.ErrorIs(t, err, context.Canceled)
		}
		stored, ok := cache.Lookup(cache.SequenceKey(60, 3))
		require.True(t, ok)
		assert.Same(t, hc, stored)
	}
}

func TestCache_CanceledCallerReturnsPromptly(t *testing.T) {
	cache := hodge.NewCache()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := cache.FromSequence(ctx, 12, 3)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, cache.Len())

	hc, err := cache.FromSequence(context.Background(), 12, 3)
	require.NoError(t, err)
	assert.Equal(t, []int{12, 21, 10}, hc.Counts())
}
