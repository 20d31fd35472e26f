// SPDX-License-Identifier: MIT
// Package: hodgenet/sfno
//
// config.go — network shape and construction settings.

package sfno

import (
	"go.uber.org/zap"

	"github.com/katalvlaran/hodgenet/hodge"
)

const (
	// DefaultLayers is the depth of the main stack.
	DefaultLayers = 4
	// DefaultModes is the per-level spectral mode count when Modes is empty.
	DefaultModes = hodge.DefaultMaxModes
)

// DefaultBranchTags name the parallel branches when branches are enabled without tags.
var DefaultBranchTags = []string{"2", "3", "5"}

// Config describes a Network. InDims, HiddenDims and OutDims have one entry
// per level and must agree in length with the complex the network runs on.
type Config struct {
	InDims     []int
	HiddenDims []int
	OutDims    []int

	// Layers is the depth of the main stack (DefaultLayers when 0).
	Layers int
	// Modes is the spectral mode count per level (DefaultModes everywhere when nil).
	Modes []int

	Filter     FilterKind
	PolyOrder  int // Chebyshev terms (DefaultPolyOrder when 0)
	Activation Activation

	// UseBranches enables the parallel branch stacks fused at level 0.
	UseBranches bool
	// Branches tags the branches (DefaultBranchTags when empty).
	Branches []string
	// BranchLayers is each branch's depth (max(1, Layers/2) when 0).
	BranchLayers int

	// Tropical keeps only the maximal output channel of every row.
	Tropical bool

	Seed   int64
	Logger *zap.Logger
}

// resolved returns a copy with defaults filled in, or ErrInvalidConfig.
func (c Config) resolved() (Config, error) {
	levels := len(c.InDims)
	if levels == 0 {
		return c, configErrorf("no levels")
	}
	if len(c.HiddenDims) != levels || len(c.OutDims) != levels {
		return c, configErrorf("dims per level: in=%d hidden=%d out=%d", levels, len(c.HiddenDims), len(c.OutDims))
	}
	for k := 0; k < levels; k++ {
		if c.InDims[k] < 1 || c.HiddenDims[k] < 1 || c.OutDims[k] < 1 {
			return c, configErrorf("level %d: dims must be >= 1", k)
		}
	}
	if c.Layers < 0 || c.BranchLayers < 0 || c.PolyOrder < 0 {
		return c, configErrorf("negative depth or order")
	}
	if c.Layers == 0 {
		c.Layers = DefaultLayers
	}
	if c.PolyOrder == 0 {
		c.PolyOrder = DefaultPolyOrder
	}
	if c.Filter != FilterModeWise && c.Filter != FilterPolynomial {
		return c, configErrorf("filter %v", c.Filter)
	}
	if c.Activation != GELU && c.Activation != ReLU {
		return c, configErrorf("activation %v", c.Activation)
	}
	switch {
	case len(c.Modes) == 0:
		c.Modes = make([]int, levels)
		for k := range c.Modes {
			c.Modes[k] = DefaultModes
		}
	case len(c.Modes) != levels:
		return c, configErrorf("modes for %d levels, want %d", len(c.Modes), levels)
	default:
		c.Modes = append([]int(nil), c.Modes...)
		for k, m := range c.Modes {
			if m < 1 {
				return c, configErrorf("level %d: modes %d", k, m)
			}
		}
	}
	if c.UseBranches {
		if len(c.Branches) == 0 {
			c.Branches = append([]string(nil), DefaultBranchTags...)
		}
		seen := make(map[string]bool, len(c.Branches))
		for _, tag := range c.Branches {
			if tag == "" || seen[tag] {
				return c, configErrorf("branch tag %q", tag)
			}
			seen[tag] = true
		}
		if c.BranchLayers == 0 {
			c.BranchLayers = max(1, c.Layers/2)
		}
	}
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}

	return c, nil
}
