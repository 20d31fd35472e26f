// SPDX-License-Identifier: MIT
// Package: hodgenet/sfno
//
// nn.go — channel-wise building blocks: Linear, LayerNorm, activations.

package sfno

import (
	"fmt"
	"math"

	"github.com/katalvlaran/hodgenet/tensor"
)

// Linear maps the channel axis: Y = X·W (+ b). W is In×Out.
type Linear struct {
	In, Out int
	Weight  *Param
	Bias    *Param // nil for a bias-free map
}

func newLinear(in *initializer, name string, cin, cout int, bias bool) *Linear {
	bound := fanInBound(cin)
	l := &Linear{In: cin, Out: cout, Weight: in.uniform(newParam(name+".weight", cin, cout), bound)}
	if bias {
		l.Bias = in.uniform(newParam(name+".bias", cout), bound)
	}

	return l
}

// Forward applies the map to every row of x.
func (l *Linear) Forward(x *tensor.Tensor) (*tensor.Tensor, error) {
	w, err := l.Weight.dense()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", l.Weight.Name, err)
	}
	y, err := tensor.MulChannels(x, w)
	if err != nil {
		return nil, err
	}
	if l.Bias == nil {
		return y, nil
	}

	return tensor.AddBias(y, l.Bias.Data)
}

func (l *Linear) params() []*Param {
	if l.Bias == nil {
		return []*Param{l.Weight}
	}

	return []*Param{l.Weight, l.Bias}
}

// LayerNormEpsilon stabilises the variance in LayerNorm.
const LayerNormEpsilon = 1e-5

// LayerNorm normalises every row over its channels, then applies gain and bias.
type LayerNorm struct {
	Gain *Param
	Bias *Param
	Eps  float64
}

func newLayerNorm(name string, channels int) *LayerNorm {
	gain := newParam(name+".gain", channels)
	for i := range gain.Data {
		gain.Data[i] = 1
	}

	return &LayerNorm{Gain: gain, Bias: newParam(name+".bias", channels), Eps: LayerNormEpsilon}
}

// Forward normalises x row by row.
func (n *LayerNorm) Forward(x *tensor.Tensor) (*tensor.Tensor, error) {
	if x.Channels() != n.Gain.Size() {
		return nil, fmt.Errorf("LayerNorm %s: %d channels vs %d: %w", n.Gain.Name, x.Channels(), n.Gain.Size(), ErrShapeMismatch)
	}
	gain, bias := n.Gain.Data, n.Bias.Data

	return tensor.ApplyRows(x, func(in, out []float64) {
		var mean, variance float64
		for _, v := range in {
			mean += v
		}
		mean /= float64(len(in))
		for _, v := range in {
			d := v - mean
			variance += d * d
		}
		variance /= float64(len(in))
		inv := 1 / math.Sqrt(variance+n.Eps)
		for c, v := range in {
			out[c] = (v-mean)*inv*gain[c] + bias[c]
		}
	}), nil
}

func (n *LayerNorm) params() []*Param { return []*Param{n.Gain, n.Bias} }

// Activation selects the layer nonlinearity.
type Activation int

const (
	// GELU is the exact Gaussian error linear unit x·Φ(x).
	GELU Activation = iota
	// ReLU is max(x, 0).
	ReLU
)

// String returns "gelu" or "relu".
func (a Activation) String() string {
	switch a {
	case GELU:
		return "gelu"
	case ReLU:
		return "relu"
	default:
		return fmt.Sprintf("Activation(%d)", int(a))
	}
}

// ParseActivation maps "gelu"/"relu" to an Activation.
func ParseActivation(s string) (Activation, error) {
	switch s {
	case "gelu", "":
		return GELU, nil
	case "relu":
		return ReLU, nil
	default:
		return 0, configErrorf("activation %q", s)
	}
}

func (a Activation) fn() func(float64) float64 {
	if a == ReLU {
		return func(v float64) float64 { return math.Max(v, 0) }
	}

	return func(v float64) float64 { return 0.5 * v * (1 + math.Erf(v/math.Sqrt2)) }
}

// Apply runs the activation elementwise.
func (a Activation) Apply(x *tensor.Tensor) *tensor.Tensor {
	return tensor.Apply(x, a.fn())
}
