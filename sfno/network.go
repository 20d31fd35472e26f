// SPDX-License-Identifier: MIT
// Package: hodgenet/sfno
//
// network.go — the full operator G = P_out ∘ L_L ∘ … ∘ L_1 ∘ P_in with optional
// branch fusion and tropical output.
//
// Concurrency:
//   • Forward/ForwardTrace take a read lock on the parameters and may run
//     concurrently on the same Network and the same Ready complex.
//   • Update takes the write lock; parameters never change during a forward pass.
//   • Branch stacks are independent and run in parallel on an errgroup.

package sfno

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/hodgenet/hodge"
	"github.com/katalvlaran/hodgenet/tensor"
)

const opForward = "Network.Forward"

type branch struct {
	tag    string
	layers []*Layer
}

// Network is the stacked spectral operator over every level of a complex.
type Network struct {
	mu       sync.RWMutex
	cfg      Config
	inProj   []*Linear
	layers   []*Layer
	branches []branch
	binding  *Linear // nil without branches
	outProj  []*Linear
	logger   *zap.Logger
}

// Trace holds per-stage snapshots of one forward pass.
type Trace struct {
	Input    []*tensor.Tensor
	Layers   [][]*tensor.Tensor
	Branches map[string][]*tensor.Tensor
}

// NewNetwork validates cfg and initialises every parameter from cfg.Seed.
// Errors: ErrInvalidConfig.
func NewNetwork(cfg Config) (*Network, error) {
	c, err := cfg.resolved()
	if err != nil {
		return nil, err
	}
	in := newInitializer(c.Seed)
	levels := len(c.InDims)
	n := &Network{cfg: c, logger: c.Logger}

	n.inProj = make([]*Linear, levels)
	for k := 0; k < levels; k++ {
		n.inProj[k] = newLinear(in, fmt.Sprintf("input.level%d", k), c.InDims[k], c.HiddenDims[k], true)
	}
	n.layers = make([]*Layer, c.Layers)
	for i := range n.layers {
		n.layers[i] = newLayer(in, fmt.Sprintf("layer%d", i), c.HiddenDims, c.Modes, c.Filter, c.PolyOrder, c.Activation)
	}
	if c.UseBranches {
		n.branches = make([]branch, len(c.Branches))
		for b, tag := range c.Branches {
			n.branches[b] = branch{tag: tag, layers: make([]*Layer, c.BranchLayers)}
			for i := range n.branches[b].layers {
				n.branches[b].layers[i] = newLayer(in, fmt.Sprintf("branch%s.layer%d", tag, i),
					c.HiddenDims, c.Modes, c.Filter, c.PolyOrder, c.Activation)
			}
		}
		width := c.HiddenDims[0]
		n.binding = newLinear(in, "binding", width*(1+len(c.Branches)), width, true)
	}
	n.outProj = make([]*Linear, levels)
	for k := 0; k < levels; k++ {
		n.outProj[k] = newLinear(in, fmt.Sprintf("output.level%d", k), c.HiddenDims[k], c.OutDims[k], true)
	}

	n.logger.Info("network initialised",
		zap.Int("levels", levels),
		zap.Int("layers", c.Layers),
		zap.Stringer("filter", c.Filter),
		zap.Strings("branches", c.Branches),
		zap.Int("params", n.numParamsLocked()),
	)

	return n, nil
}

// Levels returns the number of levels the network expects.
func (n *Network) Levels() int { return len(n.cfg.InDims) }

// Config returns the resolved configuration.
func (n *Network) Config() Config { return n.cfg }

// Layer returns the i-th layer of the main stack.
func (n *Network) Layer(i int) *Layer { return n.layers[i] }

// Forward maps per-level inputs (batch × n_k × InDims[k]) to outputs (batch × n_k × OutDims[k]).
func (n *Network) Forward(ctx context.Context, xs []*tensor.Tensor, hc *hodge.Complex) ([]*tensor.Tensor, error) {
	out, _, err := n.forward(ctx, xs, hc, false)

	return out, err
}

// ForwardTrace is Forward that also returns every intermediate stage.
func (n *Network) ForwardTrace(ctx context.Context, xs []*tensor.Tensor, hc *hodge.Complex) ([]*tensor.Tensor, *Trace, error) {
	return n.forward(ctx, xs, hc, true)
}

func (n *Network) forward(ctx context.Context, xs []*tensor.Tensor, hc *hodge.Complex, trace bool) ([]*tensor.Tensor, *Trace, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	if err := n.checkInputs(xs, hc); err != nil {
		return nil, nil, err
	}
	var tr *Trace
	if trace {
		tr = &Trace{Branches: make(map[string][]*tensor.Tensor)}
	}

	h := make([]*tensor.Tensor, len(xs))
	for k, x := range xs {
		y, err := n.inProj[k].Forward(x)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: input level %d: %w", opForward, k, err)
		}
		h[k] = y
	}
	if tr != nil {
		tr.Input = snapshot(h)
	}

	h, err := n.runStack(ctx, n.layers, h, hc, func(hs []*tensor.Tensor) {
		if tr != nil {
			tr.Layers = append(tr.Layers, snapshot(hs))
		}
	})
	if err != nil {
		return nil, nil, err
	}

	if len(n.branches) > 0 {
		if h, err = n.fuseBranches(ctx, h, hc, tr); err != nil {
			return nil, nil, err
		}
	}

	out := make([]*tensor.Tensor, len(h))
	for k := range h {
		y, err := n.outProj[k].Forward(h[k])
		if err != nil {
			return nil, nil, fmt.Errorf("%s: output level %d: %w", opForward, k, err)
		}
		if n.cfg.Tropical {
			y = Tropicalize(y)
		}
		out[k] = y
	}
	n.logger.Debug("forward pass",
		zap.String("complex", hc.ID().String()),
		zap.Int("batch", xs[0].Batch()),
		zap.Ints("counts", hc.Counts()),
	)

	return out, tr, nil
}

func (n *Network) runStack(ctx context.Context, stack []*Layer, h []*tensor.Tensor, hc *hodge.Complex, each func([]*tensor.Tensor)) ([]*tensor.Tensor, error) {
	var err error
	for i, layer := range stack {
		if err = ctx.Err(); err != nil {
			return nil, err
		}
		if h, err = layer.Forward(h, hc); err != nil {
			return nil, fmt.Errorf("%s: layer %d: %w", opForward, i, err)
		}
		if each != nil {
			each(h)
		}
	}

	return h, nil
}

// fuseBranches runs every branch on a copy of h and replaces level 0 with
// binding([h_0 | branch_1 level 0 | …]).
func (n *Network) fuseBranches(ctx context.Context, h []*tensor.Tensor, hc *hodge.Complex, tr *Trace) ([]*tensor.Tensor, error) {
	results := make([][]*tensor.Tensor, len(n.branches))
	g, gctx := errgroup.WithContext(ctx)
	for b := range n.branches {
		b := b
		g.Go(func() error {
			out, err := n.runStack(gctx, n.branches[b].layers, snapshot(h), hc, nil)
			if err != nil {
				return fmt.Errorf("branch %s: %w", n.branches[b].tag, err)
			}
			results[b] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	parts := make([]*tensor.Tensor, 0, 1+len(results))
	parts = append(parts, h[0])
	for b, r := range results {
		parts = append(parts, r[0])
		if tr != nil {
			tr.Branches[n.branches[b].tag] = r
		}
	}
	joined, err := tensor.ConcatChannels(parts...)
	if err != nil {
		return nil, fmt.Errorf("%s: binding: %w", opForward, err)
	}
	fused, err := n.binding.Forward(joined)
	if err != nil {
		return nil, fmt.Errorf("%s: binding: %w", opForward, err)
	}
	out := append([]*tensor.Tensor(nil), h...)
	out[0] = fused

	return out, nil
}

func (n *Network) checkInputs(xs []*tensor.Tensor, hc *hodge.Complex) error {
	if _, err := hc.Laplacian(0); err != nil {
		return fmt.Errorf("%s: %w", opForward, err)
	}
	levels := n.Levels()
	if len(xs) != levels || hc.MaxDim()+1 != levels {
		return fmt.Errorf("%s: %d tensors, %d network levels, %d complex levels: %w",
			opForward, len(xs), levels, hc.MaxDim()+1, ErrLevelCount)
	}
	batch := -1
	for k, x := range xs {
		if x == nil {
			return fmt.Errorf("%s: level %d: %w", opForward, k, tensor.ErrNilTensor)
		}
		want := tensor.Shape{Batch: batch, Rows: hc.Count(k), Channels: n.cfg.InDims[k]}
		if err := checkShape(opForward, k, want, x.Shape()); err != nil {
			return err
		}
		batch = x.Batch()
	}

	return nil
}

// Tropicalize keeps, in every row, only the maximal channel (first on ties)
// at its value and zeroes the others.
func Tropicalize(x *tensor.Tensor) *tensor.Tensor {
	return tensor.ApplyRows(x, func(in, out []float64) {
		best := 0
		for c := 1; c < len(in); c++ {
			if in[c] > in[best] {
				best = c
			}
		}
		out[best] = in[best]
	})
}

func snapshot(ts []*tensor.Tensor) []*tensor.Tensor {
	out := make([]*tensor.Tensor, len(ts))
	for i, t := range ts {
		out[i] = t.Clone()
	}

	return out
}

// SpectralBias returns the mode energies of the first layer's filter at level k,
// or false when that filter is not mode-wise.
func (n *Network) SpectralBias(k int) ([]float64, bool) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	if k < 0 || k >= n.Levels() {
		return nil, false
	}
	f, ok := n.layers[0].convs[k].Filter.(*ModeWiseFilter)
	if !ok {
		return nil, false
	}

	return f.ModeEnergy(), true
}

func (n *Network) paramsLocked() []*Param {
	var ps []*Param
	for _, l := range n.inProj {
		ps = append(ps, l.params()...)
	}
	for _, l := range n.layers {
		ps = append(ps, l.params()...)
	}
	for _, b := range n.branches {
		for _, l := range b.layers {
			ps = append(ps, l.params()...)
		}
	}
	if n.binding != nil {
		ps = append(ps, n.binding.params()...)
	}
	for _, l := range n.outProj {
		ps = append(ps, l.params()...)
	}

	return ps
}

func (n *Network) numParamsLocked() int {
	total := 0
	for _, p := range n.paramsLocked() {
		total += p.Size()
	}

	return total
}

// NumParams returns the total number of scalar parameters.
func (n *Network) NumParams() int {
	n.mu.RLock()
	defer n.mu.RUnlock()

	return n.numParamsLocked()
}

// Params returns deep copies of every parameter in a fixed order.
func (n *Network) Params() []*Param {
	n.mu.RLock()
	defer n.mu.RUnlock()
	live := n.paramsLocked()
	out := make([]*Param, len(live))
	for i, p := range live {
		out[i] = p.clone()
	}

	return out
}

// Update hands the live parameters to fn under the write lock. fn may change
// values in place but not resize Data; a resize is rejected with ErrParamShape
// and the previous values are restored.
func (n *Network) Update(fn func(params []*Param) error) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	live := n.paramsLocked()
	backup := make([]*Param, len(live))
	for i, p := range live {
		backup[i] = p.clone()
	}
	restore := func() {
		for i, p := range live {
			p.Data = backup[i].Data
			p.Dims = backup[i].Dims
		}
	}
	if err := fn(live); err != nil {
		restore()
		return err
	}
	for i, p := range live {
		if len(p.Data) != len(backup[i].Data) {
			restore()
			return fmt.Errorf("Network.Update: %s: %d values, want %d: %w", p.Name, len(p.Data), len(backup[i].Data), ErrParamShape)
		}
	}

	return nil
}
