// SPDX-License-Identifier: MIT
// Package: hodgenet/hodge
//
// cache.go — memoised Ready complexes keyed by their derivation recipe.
//
// Contract:
//   • RecipeKey is a comparable struct; two recipes share an entry iff every
//     field matches, including the exact edge list and the result-affecting options.
//   • Entries never invalidate: a Ready Complex is immutable.
//   • Concurrent requests for the same key build once (singleflight); failures
//     are returned to every waiter and are not stored.
//   • A waiter whose ctx ends returns ctx.Err() at once; the shared build keeps
//     running for the remaining waiters and is stored when it succeeds.

package hodge

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/katalvlaran/hodgenet/simplicial"
)

// RecipeKind names a derivation recipe.
type RecipeKind int

const (
	// RecipeEdges derives a complex from an edge list (simplicial.FromEdges).
	RecipeEdges RecipeKind = iota + 1
	// RecipeSequence derives a complex from a linear sequence (simplicial.FromSequence).
	RecipeSequence
)

// String returns "edges" or "sequence".
func (k RecipeKind) String() string {
	switch k {
	case RecipeEdges:
		return "edges"
	case RecipeSequence:
		return "sequence"
	default:
		return "RecipeKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// RecipeKey identifies a cached complex.
type RecipeKey struct {
	Kind      RecipeKind
	Vertices  int    // RecipeEdges: vertex count; RecipeSequence: length
	Window    int    // RecipeSequence only
	Triangles bool   // RecipeEdges only
	Edges     string // exact encoding of the raw edge list, order preserved
	Options   string // fingerprint of the result-affecting Build options
}

// String renders the key for logs and singleflight.
func (k RecipeKey) String() string {
	return fmt.Sprintf("%s|v=%d|w=%d|t=%t|e=%s|o=%s", k.Kind, k.Vertices, k.Window, k.Triangles, k.Edges, k.Options)
}

// encodeEdges renders edges as "u-v,u-v,…"; order matters because it fixes level-1 indices.
func encodeEdges(edges [][2]int) string {
	var b strings.Builder
	b.Grow(len(edges) * 6)
	for i, e := range edges {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(e[0]))
		b.WriteByte('-')
		b.WriteString(strconv.Itoa(e[1]))
	}

	return b.String()
}

// Cache memoises Build results for derivation recipes. The zero value is not usable; call NewCache.
type Cache struct {
	mu      sync.RWMutex
	entries map[RecipeKey]*Complex
	group   singleflight.Group
	opts    []Option
	resolve options
}

// NewCache returns an empty cache whose builds all use opts.
func NewCache(opts ...Option) *Cache {
	return &Cache{
		entries: make(map[RecipeKey]*Complex),
		opts:    opts,
		resolve: resolveOptions(opts...),
	}
}

// Len returns the number of stored complexes.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}

// EdgesKey returns the key FromEdges would use.
func (c *Cache) EdgesKey(numVertices int, edges [][2]int, includeTriangles bool) RecipeKey {
	return RecipeKey{
		Kind:      RecipeEdges,
		Vertices:  numVertices,
		Triangles: includeTriangles,
		Edges:     encodeEdges(edges),
		Options:   c.resolve.fingerprint(),
	}
}

// SequenceKey returns the key FromSequence would use.
func (c *Cache) SequenceKey(length, window int) RecipeKey {
	return RecipeKey{
		Kind:     RecipeSequence,
		Vertices: length,
		Window:   window,
		Options:  c.resolve.fingerprint(),
	}
}

// FromEdges returns the Ready complex for the edge recipe, building it on first use.
func (c *Cache) FromEdges(ctx context.Context, numVertices int, edges [][2]int, includeTriangles bool) (*Complex, error) {
	key := c.EdgesKey(numVertices, edges, includeTriangles)

	return c.get(ctx, key, func() (*simplicial.Complex, error) {
		return simplicial.FromEdges(numVertices, edges, includeTriangles)
	})
}

// FromSequence returns the Ready complex for the sequence recipe, building it on first use.
func (c *Cache) FromSequence(ctx context.Context, length, window int) (*Complex, error) {
	key := c.SequenceKey(length, window)

	return c.get(ctx, key, func() (*simplicial.Complex, error) {
		return simplicial.FromSequence(length, window)
	})
}

// Lookup returns a stored complex without building.
func (c *Cache) Lookup(key RecipeKey) (*Complex, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	hc, ok := c.entries[key]

	return hc, ok
}

func (c *Cache) get(ctx context.Context, key RecipeKey, derive func() (*simplicial.Complex, error)) (*Complex, error) {
	if hc, ok := c.Lookup(key); ok {
		c.resolve.logger.Debug("complex cache hit",
			zap.Stringer("recipe", key.Kind),
			zap.String("complex", hc.ID().String()),
		)
		return hc, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// The shared build outlives any single waiter; each waiter still honours its own ctx.
	build := context.WithoutCancel(ctx)
	ch := c.group.DoChan(key.String(), func() (interface{}, error) {
		if hc, ok := c.Lookup(key); ok {
			return hc, nil
		}
		sc, err := derive()
		if err != nil {
			return nil, err
		}
		hc, err := Build(build, sc, c.opts...)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.entries[key] = hc
		c.mu.Unlock()
		return hc, nil
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res = <-ch:
	}
	if res.Err != nil {
		return nil, res.Err
	}

	return res.Val.(*Complex), nil
}
