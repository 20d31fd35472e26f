// SPDX-License-Identifier: MIT
// Package: hodgenet/sfno
//
// coupling.go — cross-level message passing through the boundary operators.
//
//   C_k(X) = β·B_{k+1}·(X_{k+1}·W_↓) + γ·B_kᵀ·(X_{k-1}·W_↑)
//
// Each term is present only when the neighbouring level exists and has
// simplices; with both neighbours empty the output is exactly zero.

package sfno

import (
	"fmt"

	"github.com/katalvlaran/hodgenet/matrix"
	"github.com/katalvlaran/hodgenet/tensor"
)

const (
	opCoupling = "BoundaryCoupling.Forward"
	// DefaultGate is the initial value of the coupling gates β and γ.
	DefaultGate = 0.1
)

// BoundaryCoupling is the learnable cross-level coupling of one level.
type BoundaryCoupling struct {
	Level int
	Dim   int
	Down  *Linear // level k+1 → k channels; nil at the top level
	Up    *Linear // level k-1 → k channels; nil at level 0
	Beta  *Param  // gate of the term from above
	Gamma *Param  // gate of the term from below
}

// newBoundaryCoupling builds the coupling of level k; dimBelow/dimAbove are 0 where no neighbour exists.
func newBoundaryCoupling(in *initializer, name string, level, dim, dimBelow, dimAbove int) *BoundaryCoupling {
	c := &BoundaryCoupling{Level: level, Dim: dim}
	if dimAbove > 0 {
		c.Down = newLinear(in, name+".down", dimAbove, dim, false)
		c.Beta = newScalar(name+".beta", DefaultGate)
	}
	if dimBelow > 0 {
		c.Up = newLinear(in, name+".up", dimBelow, dim, false)
		c.Gamma = newScalar(name+".gamma", DefaultGate)
	}

	return c
}

// Forward returns the coupling contribution for x (batch × n_k × Dim).
// below/above are the neighbouring levels' features (nil when absent); bk is
// B_k (n_{k-1}×n_k) and bk1 is B_{k+1} (n_k×n_{k+1}). Every operand is
// checked before either term is computed.
func (c *BoundaryCoupling) Forward(x, below, above *tensor.Tensor, bk, bk1 *matrix.Sparse) (*tensor.Tensor, error) {
	if err := checkShape(opCoupling, c.Level, tensor.Shape{Batch: -1, Rows: -1, Channels: c.Dim}, x.Shape()); err != nil {
		return nil, err
	}
	fromAbove := c.Down != nil && above != nil && bk1 != nil && above.Rows() > 0
	fromBelow := c.Up != nil && below != nil && bk != nil && below.Rows() > 0
	if fromAbove {
		if err := c.checkNeighbour(x, above, c.Down, bk1.Rows(), bk1.Cols()); err != nil {
			return nil, err
		}
	}
	if fromBelow {
		if err := c.checkNeighbour(x, below, c.Up, bk.Cols(), bk.Rows()); err != nil {
			return nil, err
		}
	}
	out := tensor.Zeros(x.Shape())

	if fromAbove {
		term, err := c.term(above, c.Down, bk1, c.Beta.Value())
		if err != nil {
			return nil, fmt.Errorf("%s: level %d from above: %w", opCoupling, c.Level, err)
		}
		if out, err = tensor.Add(out, term); err != nil {
			return nil, err
		}
	}
	if fromBelow {
		term, err := c.term(below, c.Up, bk.Transpose(), c.Gamma.Value())
		if err != nil {
			return nil, fmt.Errorf("%s: level %d from below: %w", opCoupling, c.Level, err)
		}
		if out, err = tensor.Add(out, term); err != nil {
			return nil, err
		}
	}

	return out, nil
}

// checkNeighbour requires x to have own rows and y to be batch × other × proj.In.
func (c *BoundaryCoupling) checkNeighbour(x, y *tensor.Tensor, proj *Linear, own, other int) error {
	if err := checkShape(opCoupling, c.Level, tensor.Shape{Batch: -1, Rows: own, Channels: c.Dim}, x.Shape()); err != nil {
		return err
	}

	return checkShape(opCoupling, c.Level, tensor.Shape{Batch: x.Batch(), Rows: other, Channels: proj.In}, y.Shape())
}

// term computes gate·S·(y·W).
func (c *BoundaryCoupling) term(y *tensor.Tensor, proj *Linear, s *matrix.Sparse, gate float64) (*tensor.Tensor, error) {
	projected, err := proj.Forward(y)
	if err != nil {
		return nil, err
	}
	mixed, err := tensor.MixRows(s, projected)
	if err != nil {
		return nil, err
	}

	return tensor.Scale(mixed, gate), nil
}

func (c *BoundaryCoupling) params() []*Param {
	var ps []*Param
	if c.Down != nil {
		ps = append(ps, c.Down.params()...)
		ps = append(ps, c.Beta)
	}
	if c.Up != nil {
		ps = append(ps, c.Up.params()...)
		ps = append(ps, c.Gamma)
	}

	return ps
}
