// SPDX-License-Identifier: MIT
// Package: hodgenet/builder
//
// config.go — internal configuration and deterministic defaults.
//
// Deterministic defaults (no surprises):
//   • rng        = nil   (pure/deterministic unless seeded)
//   • triangles  = true  (fill every 3-clique, as FromEdges(…, true))

package builder

import "math/rand"

// builderConfig aggregates all knobs used by constructors.
// It is passed by VALUE to constructors (immutable to callers).
type builderConfig struct {
	// RNG for stochastic choices; nil means “no randomness”.
	rng *rand.Rand
	// Fill triangles when deriving the complex.
	triangles bool
}

const defaultTriangles = true

// newBuilderConfig constructs a config with deterministic defaults and applies
// all options in order (last wins).
func newBuilderConfig(opts ...BuilderOption) builderConfig {
	cfg := builderConfig{
		rng:       nil,
		triangles: defaultTriangles,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}
