// SPDX-License-Identifier: MIT
// Package: hodgenet/sfno
//
// spectral_conv.go — per-level filtering in the Hodge eigenbasis.
//
// Forward(X, (Λ,U)):
//   1. X̂ = Uᵀ·X           batch × m × C_in
//   2. Ŷ[m] = X̂[m]·G_m     batch × m × C_out   (G from the filter variant)
//   3. Y = U·Ŷ             batch × n_k × C_out
// with m = min(configured modes, available eigenvectors). A level with no
// eigenvectors yields zeros of the output shape.

package sfno

import (
	"fmt"

	"github.com/katalvlaran/hodgenet/hodge"
	"github.com/katalvlaran/hodgenet/tensor"
)

const opSpectralConv = "SpectralConv.Forward"

// SpectralConv is the learnable spectral filter of one level.
type SpectralConv struct {
	Level   int
	In, Out int
	Modes   int
	Filter  Filter
}

func newSpectralConv(in *initializer, name string, level, modes int, kind FilterKind, order, cin, cout int) *SpectralConv {
	return &SpectralConv{
		Level: level, In: cin, Out: cout, Modes: modes,
		Filter: newFilter(in, name, kind, modes, order, cin, cout),
	}
}

// Forward filters x (batch × n_k × In) with the level's truncated spectrum.
// Errors: *ShapeMismatchError when rows differ from e.Dim() or channels from In.
func (s *SpectralConv) Forward(x *tensor.Tensor, e hodge.Eigenpairs) (*tensor.Tensor, error) {
	if err := checkShape(opSpectralConv, s.Level, tensor.Shape{Batch: -1, Rows: e.Dim(), Channels: s.In}, x.Shape()); err != nil {
		return nil, err
	}
	m := min(s.Modes, e.Modes())
	if m == 0 {
		return tensor.Zeros(tensor.Shape{Batch: x.Batch(), Rows: x.Rows(), Channels: s.Out}), nil
	}
	u, err := e.Vectors().SliceCols(m)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opSpectralConv, err)
	}

	coeff, err := tensor.MulRowsTrans(u, x)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opSpectralConv, err)
	}

	var resp []float64
	switch f := s.Filter.(type) {
	case *ModeWiseFilter:
		resp = f.response(m)
	case *PolynomialFilter:
		resp = f.response(e.Values()[:m])
	default:
		return nil, fmt.Errorf("%s: filter %T: %w", opSpectralConv, f, ErrInvalidConfig)
	}
	filtered, err := applyModeMatrices(coeff, resp, s.In, s.Out)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opSpectralConv, err)
	}

	return tensor.MulRows(u, filtered)
}

// applyModeMatrices computes Ŷ[b,m,:] = X̂[b,m,:]·G_m, G_m = resp[m·in·out:(m+1)·in·out].
func applyModeMatrices(coeff *tensor.Tensor, resp []float64, in, out int) (*tensor.Tensor, error) {
	modes, batch := coeff.Rows(), coeff.Batch()
	if len(resp) != modes*in*out {
		return nil, fmt.Errorf("response of %d values for %d modes: %w", len(resp), modes, ErrShapeMismatch)
	}
	src := coeff.Data()
	dst := make([]float64, batch*modes*out)
	block := in * out
	var b, m, i, o int
	var xv float64
	for b = 0; b < batch; b++ {
		for m = 0; m < modes; m++ {
			g := resp[m*block : (m+1)*block]
			xrow := src[(b*modes+m)*in : (b*modes+m+1)*in]
			yrow := dst[(b*modes+m)*out : (b*modes+m+1)*out]
			for i = 0; i < in; i++ {
				xv = xrow[i]
				for o = 0; o < out; o++ {
					yrow[o] += xv * g[i*out+o]
				}
			}
		}
	}

	return tensor.FromSlice(batch, modes, out, dst)
}

func (s *SpectralConv) params() []*Param { return s.Filter.params() }
