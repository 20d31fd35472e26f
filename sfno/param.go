// SPDX-License-Identifier: MIT
// Package: hodgenet/sfno
//
// param.go — learnable parameters and their seeded initialisation.

package sfno

import (
	"math"
	"math/rand"

	"github.com/katalvlaran/hodgenet/matrix"
)

// Param is a named learnable array. Dims describes the logical shape; Data is
// row-major with len(Data) == Π Dims. Scalars have Dims == nil.
type Param struct {
	Name string
	Dims []int
	Data []float64
}

func newParam(name string, dims ...int) *Param {
	size := 1
	for _, d := range dims {
		size *= d
	}

	return &Param{Name: name, Dims: append([]int(nil), dims...), Data: make([]float64, size)}
}

func newScalar(name string, v float64) *Param {
	p := newParam(name)
	p.Data[0] = v

	return p
}

// Size returns len(Data).
func (p *Param) Size() int { return len(p.Data) }

// Value returns Data[0]; meaningful for scalars.
func (p *Param) Value() float64 { return p.Data[0] }

// clone deep-copies the parameter.
func (p *Param) clone() *Param {
	return &Param{Name: p.Name, Dims: append([]int(nil), p.Dims...), Data: append([]float64(nil), p.Data...)}
}

// dense views a two-dimensional parameter as a fresh matrix.Dense.
func (p *Param) dense() (*matrix.Dense, error) {
	return matrix.NewDenseFrom(p.Dims[0], p.Dims[1], p.Data)
}

// initializer draws every random parameter from one seeded source, so a fixed
// seed and construction order give identical networks.
type initializer struct {
	rng *rand.Rand
}

func newInitializer(seed int64) *initializer {
	return &initializer{rng: rand.New(rand.NewSource(seed))}
}

// uniform fills p with U(-bound, bound).
func (in *initializer) uniform(p *Param, bound float64) *Param {
	for i := range p.Data {
		p.Data[i] = (2*in.rng.Float64() - 1) * bound
	}

	return p
}

// normal fills p with N(0, std²).
func (in *initializer) normal(p *Param, std float64) *Param {
	for i := range p.Data {
		p.Data[i] = in.rng.NormFloat64() * std
	}

	return p
}

// fanInBound is the 1/√fanIn bound used for linear weights and biases.
func fanInBound(fanIn int) float64 {
	if fanIn <= 0 {
		return 0
	}

	return 1 / math.Sqrt(float64(fanIn))
}
