// SPDX-License-Identifier: MIT
// Package: hodgenet/config
//
// topology.go — named fixture complexes built through package builder and
// memoized by a hodge.Cache.

package config

import (
	"context"
	"fmt"

	"github.com/katalvlaran/hodgenet/builder"
	"github.com/katalvlaran/hodgenet/hodge"
)

// Topology kinds.
const (
	TopologyCycle     = "cycle"
	TopologyPath      = "path"
	TopologyStar      = "star"
	TopologyWheel     = "wheel"
	TopologyComplete  = "complete"
	TopologyBipartite = "bipartite"
	TopologyGrid      = "grid"
	TopologyRandom    = "random"
	TopologySequence  = "sequence"
	TopologyEdges     = "edges"
)

// TopologyConfig selects the complex the CLI runs on.
//
//	cycle, path, star, wheel, complete: vertices
//	bipartite, grid:                    rows × cols
//	random:                             vertices, probability, seed
//	sequence:                           vertices (length), window
//	edges:                              vertices, edges
type TopologyConfig struct {
	Kind        string  `yaml:"kind"`
	Vertices    int     `yaml:"vertices"`
	Rows        int     `yaml:"rows"`
	Cols        int     `yaml:"cols"`
	Probability float64 `yaml:"probability"`
	Window      int     `yaml:"window"`
	Edges       [][]int `yaml:"edges"`
	Triangles   bool    `yaml:"triangles"`
	Seed        int64   `yaml:"seed"`
}

func (t TopologyConfig) validate() error {
	switch t.Kind {
	case TopologyCycle, TopologyPath, TopologyStar, TopologyWheel, TopologyComplete,
		TopologyRandom, TopologySequence:
		if t.Vertices < 0 {
			return invalidf("topology.vertices %d", t.Vertices)
		}
	case TopologyBipartite, TopologyGrid:
		if t.Rows < 1 || t.Cols < 1 {
			return invalidf("topology %s: rows %d cols %d", t.Kind, t.Rows, t.Cols)
		}
	case TopologyEdges:
		if _, err := t.edgeList(); err != nil {
			return err
		}
	default:
		return fmt.Errorf("topology.kind %q: %w", t.Kind, ErrUnknownTopology)
	}
	if t.Kind == TopologyRandom && (t.Probability < 0 || t.Probability > 1) {
		return invalidf("topology.probability %v", t.Probability)
	}

	return nil
}

func (t TopologyConfig) edgeList() ([][2]int, error) {
	out := make([][2]int, len(t.Edges))
	for i, e := range t.Edges {
		if len(e) != 2 {
			return nil, invalidf("topology.edges[%d] has %d endpoints", i, len(e))
		}
		out[i] = [2]int{e[0], e[1]}
	}

	return out, nil
}

func (t TopologyConfig) constructor() (builder.Constructor, error) {
	switch t.Kind {
	case TopologyCycle:
		return builder.Cycle(t.Vertices), nil
	case TopologyPath:
		return builder.Path(t.Vertices), nil
	case TopologyStar:
		return builder.Star(t.Vertices), nil
	case TopologyWheel:
		return builder.Wheel(t.Vertices), nil
	case TopologyComplete:
		return builder.Complete(t.Vertices), nil
	case TopologyBipartite:
		return builder.CompleteBipartite(t.Rows, t.Cols), nil
	case TopologyGrid:
		return builder.Grid(t.Rows, t.Cols), nil
	case TopologyRandom:
		return builder.RandomSparse(t.Vertices, t.Probability), nil
	default:
		return nil, fmt.Errorf("topology.kind %q: %w", t.Kind, ErrUnknownTopology)
	}
}

// Build derives the configured complex through cache, so repeated builds of
// the same topology return the same Ready complex.
func (t TopologyConfig) Build(ctx context.Context, cache *hodge.Cache) (*hodge.Complex, error) {
	switch t.Kind {
	case TopologySequence:
		return cache.FromSequence(ctx, t.Vertices, t.Window)
	case TopologyEdges:
		edges, err := t.edgeList()
		if err != nil {
			return nil, err
		}
		return cache.FromEdges(ctx, t.Vertices, edges, t.Triangles)
	}
	con, err := t.constructor()
	if err != nil {
		return nil, err
	}
	n, edges, err := builder.Edges([]builder.BuilderOption{builder.WithSeed(t.Seed)}, con)
	if err != nil {
		return nil, fmt.Errorf("topology %s: %w", t.Kind, err)
	}

	return cache.FromEdges(ctx, n, edges, t.Triangles)
}
