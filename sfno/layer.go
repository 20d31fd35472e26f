// SPDX-License-Identifier: MIT
// Package: hodgenet/sfno
//
// layer.go — one network layer across all levels.
//
//   Y_k = Norm(Act(α_k·S_k(X_k) + C_k(X) + R_k·X_k))
//
// Levels with zero simplices are passed through untouched: no spectral
// filter, coupling, residual, activation or normalisation runs for them.

package sfno

import (
	"fmt"

	"github.com/katalvlaran/hodgenet/hodge"
	"github.com/katalvlaran/hodgenet/matrix"
	"github.com/katalvlaran/hodgenet/tensor"
)

const (
	opLayer = "Layer.Forward"
	// DefaultAlpha is the initial spectral mixing weight α_k.
	DefaultAlpha = 1.0
)

// Layer holds per-level operators of width dims[k].
type Layer struct {
	dims      []int
	convs     []*SpectralConv
	alphas    []*Param
	couplings []*BoundaryCoupling
	residuals []*Linear
	norms     []*LayerNorm
	act       Activation
}

func newLayer(in *initializer, name string, dims, modes []int, kind FilterKind, order int, act Activation) *Layer {
	levels := len(dims)
	l := &Layer{
		dims:      append([]int(nil), dims...),
		convs:     make([]*SpectralConv, levels),
		alphas:    make([]*Param, levels),
		couplings: make([]*BoundaryCoupling, levels),
		residuals: make([]*Linear, levels),
		norms:     make([]*LayerNorm, levels),
		act:       act,
	}
	for k := 0; k < levels; k++ {
		prefix := fmt.Sprintf("%s.level%d", name, k)
		var below, above int
		if k > 0 {
			below = dims[k-1]
		}
		if k+1 < levels {
			above = dims[k+1]
		}
		l.convs[k] = newSpectralConv(in, prefix+".spectral", k, modes[k], kind, order, dims[k], dims[k])
		l.alphas[k] = newScalar(prefix+".alpha", DefaultAlpha)
		l.couplings[k] = newBoundaryCoupling(in, prefix+".coupling", k, dims[k], below, above)
		l.residuals[k] = newLinear(in, prefix+".residual", dims[k], dims[k], false)
		l.norms[k] = newLayerNorm(prefix+".norm", dims[k])
	}

	return l
}

// Levels returns the number of levels the layer spans.
func (l *Layer) Levels() int { return len(l.dims) }

// Conv returns the spectral operator of level k.
func (l *Layer) Conv(k int) *SpectralConv { return l.convs[k] }

// Coupling returns the boundary-coupling operator of level k.
func (l *Layer) Coupling(k int) *BoundaryCoupling { return l.couplings[k] }

// Forward maps per-level features xs (batch × n_k × dims[k]) through the layer.
// Shapes are checked against the complex before any level is computed.
func (l *Layer) Forward(xs []*tensor.Tensor, hc *hodge.Complex) ([]*tensor.Tensor, error) {
	if err := l.check(xs, hc); err != nil {
		return nil, err
	}
	out := make([]*tensor.Tensor, len(xs))
	for k, x := range xs {
		if x.Rows() == 0 {
			out[k] = x
			continue
		}
		y, err := l.level(k, xs, hc)
		if err != nil {
			return nil, err
		}
		out[k] = y
	}

	return out, nil
}

func (l *Layer) check(xs []*tensor.Tensor, hc *hodge.Complex) error {
	if len(xs) != len(l.dims) || hc.MaxDim()+1 != len(l.dims) {
		return fmt.Errorf("%s: %d tensors, %d layer levels, %d complex levels: %w",
			opLayer, len(xs), len(l.dims), hc.MaxDim()+1, ErrLevelCount)
	}
	batch := -1
	for k, x := range xs {
		if x == nil {
			return fmt.Errorf("%s: level %d: %w", opLayer, k, tensor.ErrNilTensor)
		}
		want := tensor.Shape{Batch: batch, Rows: hc.Count(k), Channels: l.dims[k]}
		if err := checkShape(opLayer, k, want, x.Shape()); err != nil {
			return err
		}
		batch = x.Batch()
	}

	return nil
}

func (l *Layer) level(k int, xs []*tensor.Tensor, hc *hodge.Complex) (*tensor.Tensor, error) {
	x := xs[k]
	e, err := hc.Eigenpairs(k)
	if err != nil {
		return nil, err
	}
	spectral, err := l.convs[k].Forward(x, e)
	if err != nil {
		return nil, err
	}
	spectral = tensor.Scale(spectral, l.alphas[k].Value())

	var below, above *tensor.Tensor
	var bk, bk1 *matrix.Sparse
	if k > 0 {
		below = xs[k-1]
		if bk, err = hc.Boundary(k); err != nil {
			return nil, err
		}
	}
	if k+1 < len(xs) {
		above = xs[k+1]
		if bk1, err = hc.Boundary(k + 1); err != nil {
			return nil, err
		}
	}
	coupled, err := l.couplings[k].Forward(x, below, above, bk, bk1)
	if err != nil {
		return nil, err
	}
	residual, err := l.residuals[k].Forward(x)
	if err != nil {
		return nil, err
	}
	sum, err := tensor.Sum(spectral, coupled, residual)
	if err != nil {
		return nil, fmt.Errorf("%s: level %d: %w", opLayer, k, err)
	}

	return l.norms[k].Forward(l.act.Apply(sum))
}

func (l *Layer) params() []*Param {
	var ps []*Param
	for k := range l.dims {
		ps = append(ps, l.convs[k].params()...)
		ps = append(ps, l.alphas[k])
		ps = append(ps, l.couplings[k].params()...)
		ps = append(ps, l.residuals[k].params()...)
		ps = append(ps, l.norms[k].params()...)
	}

	return ps
}
