// SPDX-License-Identifier: MIT
// Package: hodgenet/sfno
//
// filter.go — the closed set of spectral filters.
//
// A Filter is exactly one of:
//   • *ModeWiseFilter   — a free C_in×C_out matrix per mode (M×C_in×C_out).
//   • *PolynomialFilter — Chebyshev coefficients (order×C_in×C_out) evaluated
//                         at the normalised eigenvalue λ/(max λ + 1e-6).
// SpectralConv dispatches on the concrete type; the set is sealed by an
// unexported method.

package sfno

import (
	"fmt"
	"math"
)

const (
	// DefaultPolyOrder is the number of Chebyshev terms in a PolynomialFilter.
	DefaultPolyOrder = 5
	// spectralInitStd scales the random initial filter weights.
	spectralInitStd = 0.02
	// lambdaNormShift keeps the eigenvalue normalisation finite on an all-zero spectrum.
	lambdaNormShift = 1e-6
)

// FilterKind selects a Filter variant at construction time.
type FilterKind int

const (
	// FilterModeWise selects ModeWiseFilter.
	FilterModeWise FilterKind = iota
	// FilterPolynomial selects PolynomialFilter.
	FilterPolynomial
)

// String returns "mode" or "polynomial".
func (k FilterKind) String() string {
	switch k {
	case FilterModeWise:
		return "mode"
	case FilterPolynomial:
		return "polynomial"
	default:
		return fmt.Sprintf("FilterKind(%d)", int(k))
	}
}

// ParseFilterKind maps "mode" (or "mlp") and "polynomial" to a FilterKind.
func ParseFilterKind(s string) (FilterKind, error) {
	switch s {
	case "mode", "mlp", "":
		return FilterModeWise, nil
	case "polynomial", "chebyshev":
		return FilterPolynomial, nil
	default:
		return 0, configErrorf("filter %q", s)
	}
}

// Filter is the sealed spectral-filter variant.
type Filter interface {
	// Kind reports the variant.
	Kind() FilterKind
	params() []*Param
	sealed()
}

// ModeWiseFilter holds one C_in×C_out matrix per mode.
type ModeWiseFilter struct {
	Modes, In, Out int
	Weight         *Param // Modes×In×Out
}

// Kind returns FilterModeWise.
func (*ModeWiseFilter) Kind() FilterKind { return FilterModeWise }
func (*ModeWiseFilter) sealed()          {}

func (f *ModeWiseFilter) params() []*Param {
	return []*Param{f.Weight}
}

// response returns the first m mode matrices.
func (f *ModeWiseFilter) response(m int) []float64 {
	return f.Weight.Data[:m*f.In*f.Out]
}

// ModeEnergy returns Σ_{i,o} W[m,i,o]² for every mode m, a proxy for how
// strongly the filter passes that frequency.
func (f *ModeWiseFilter) ModeEnergy() []float64 {
	out := make([]float64, f.Modes)
	block := f.In * f.Out
	for m := range out {
		for _, w := range f.Weight.Data[m*block : (m+1)*block] {
			out[m] += w * w
		}
	}

	return out
}

// PolynomialFilter holds Chebyshev coefficients; the response of mode m is
// Σ_i C_i·T_i(λ̂_m).
type PolynomialFilter struct {
	Order, In, Out int
	Coeffs         *Param // Order×In×Out
}

// Kind returns FilterPolynomial.
func (*PolynomialFilter) Kind() FilterKind { return FilterPolynomial }
func (*PolynomialFilter) sealed()          {}

func (f *PolynomialFilter) params() []*Param {
	return []*Param{f.Coeffs}
}

// Chebyshev returns T_0..T_{order-1} at x via the three-term recurrence.
func Chebyshev(x float64, order int) []float64 {
	t := make([]float64, order)
	if order > 0 {
		t[0] = 1
	}
	if order > 1 {
		t[1] = x
	}
	for i := 2; i < order; i++ {
		t[i] = 2*x*t[i-1] - t[i-2]
	}

	return t
}

// response evaluates the filter at the given ascending eigenvalues.
func (f *PolynomialFilter) response(values []float64) []float64 {
	m := len(values)
	block := f.In * f.Out
	out := make([]float64, m*block)
	if m == 0 {
		return out
	}
	peak := math.Inf(-1)
	for _, v := range values {
		peak = math.Max(peak, v)
	}
	scale := peak + lambdaNormShift
	for mode, v := range values {
		dst := out[mode*block : (mode+1)*block]
		for i, ti := range Chebyshev(v/scale, f.Order) {
			if ti == 0 {
				continue
			}
			src := f.Coeffs.Data[i*block : (i+1)*block]
			for j := range dst {
				dst[j] += ti * src[j]
			}
		}
	}

	return out
}

func newFilter(in *initializer, name string, kind FilterKind, modes, order, cin, cout int) Filter {
	if kind == FilterPolynomial {
		return &PolynomialFilter{
			Order: order, In: cin, Out: cout,
			Coeffs: in.normal(newParam(name+".coeffs", order, cin, cout), spectralInitStd),
		}
	}

	return &ModeWiseFilter{
		Modes: modes, In: cin, Out: cout,
		Weight: in.normal(newParam(name+".weight", modes, cin, cout), spectralInitStd),
	}
}
