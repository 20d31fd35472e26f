// SPDX-License-Identifier: MIT
// Package: hodgenet/builder
//
// api.go - thin public entry-points for the builder package.
//
// Design contract (strict):
//   - One orchestrator: BuildComplex(bopts, cons...). Resolves cfg, runs cons in order
//     over one edge set, then hands the edge list to simplicial.FromEdges.
//   - Functional options (BuilderOption) resolve into an immutable builderConfig (no global state).
//   - Determinism: same inputs/options/seed and constructor order ⇒ identical complexes.
//   - Safety: never panic at runtime; return sentinel errors from constructors.
//
// AI-Hints (practical):
//   - Compose constructors to assemble fixtures (e.g. Cycle(4) + Path(3) share vertices 0..2).
//   - Use WithSeed(...) to freeze RandomSparse.
//   - WithTriangles(false) keeps the complex one-dimensional (graph Laplacians only).

package builder

import (
	"fmt"

	"github.com/katalvlaran/hodgenet/simplicial"
)

// edgeSet accumulates the vertex count and the raw edge list produced by constructors.
type edgeSet struct {
	n     int
	edges [][2]int
}

// ensure grows the vertex set to at least n vertices.
func (es *edgeSet) ensure(n int) {
	if n > es.n {
		es.n = n
	}
}

// add records an undirected edge; canonicalisation and dedup happen in simplicial.FromEdges.
func (es *edgeSet) add(u, v int) {
	es.edges = append(es.edges, [2]int{u, v})
}

// Constructor applies a deterministic topology mutation using the resolved
// builderConfig. Constructors MUST:
//   - Validate parameters early and return sentinel errors (no panics).
//   - Add vertices through ensure before emitting edges that touch them.
//   - Preserve determinism for the same config and call order.
type Constructor func(es *edgeSet, cfg builderConfig) error

// BuildComplex resolves the builder configuration from bopts, applies all
// constructors in order and derives the simplicial complex.
// Any constructor error is wrapped with the context "BuildComplex: %w" and
// returned immediately.
//
// Complexity:
//   - Resolving options: O(len(bopts)).
//   - Applying K constructors: Σ cost of each constructor; FromEdges is O(V + E log E + Σ deg²).
//
// Errors:
//   - ErrConstructFailed for a nil constructor; constructor sentinels otherwise
//     (ErrTooFewVertices, ErrInvalidProbability, ErrNeedRandSource).
func BuildComplex(bopts []BuilderOption, cons ...Constructor) (*simplicial.Complex, error) {
	cfg := newBuilderConfig(bopts...)
	es := &edgeSet{}
	for i, fn := range cons {
		if fn == nil {
			return nil, fmt.Errorf("BuildComplex: nil constructor at index %d: %w", i, ErrConstructFailed)
		}
		if err := fn(es, cfg); err != nil {
			return nil, fmt.Errorf("BuildComplex: %w", err)
		}
	}
	c, err := simplicial.FromEdges(es.n, es.edges, cfg.triangles)
	if err != nil {
		return nil, fmt.Errorf("BuildComplex: %w", err)
	}

	return c, nil
}

// Edges runs the constructors and returns the raw vertex count and edge list
// without deriving a complex (useful for cache keys and for FromEdges callers).
func Edges(bopts []BuilderOption, cons ...Constructor) (int, [][2]int, error) {
	cfg := newBuilderConfig(bopts...)
	es := &edgeSet{}
	for i, fn := range cons {
		if fn == nil {
			return 0, nil, fmt.Errorf("Edges: nil constructor at index %d: %w", i, ErrConstructFailed)
		}
		if err := fn(es, cfg); err != nil {
			return 0, nil, fmt.Errorf("Edges: %w", err)
		}
	}

	return es.n, es.edges, nil
}
