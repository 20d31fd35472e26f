// SPDX-License-Identifier: MIT
package sfno_test

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/hodgenet/hodge"
	"github.com/katalvlaran/hodgenet/sfno"
	"github.com/katalvlaran/hodgenet/tensor"
)

var triangle = [][][]int{{{0}, {1}, {2}}, {{0, 1}, {1, 2}, {0, 2}}, {{0, 1, 2}}}

func baseConfig() sfno.Config {
	return sfno.Config{
		InDims:     []int{3, 2, 1},
		HiddenDims: []int{4, 4, 4},
		OutDims:    []int{2, 2, 2},
		Layers:     2,
		Modes:      []int{3, 3, 1},
		Seed:       11,
	}
}

// randomInputs builds batch × n_k × in[k] features with a fixed seed.
func randomInputs(t *testing.T, hc *hodge.Complex, in []int, batch int, seed int64) []*tensor.Tensor {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	xs := make([]*tensor.Tensor, len(in))
	for k := range in {
		vals := make([]float64, batch*hc.Count(k)*in[k])
		for i := range vals {
			vals[i] = rng.NormFloat64()
		}
		xs[k] = mustTensor(t, batch, hc.Count(k), in[k], vals...)
	}

	return xs
}

func mustNetwork(t *testing.T, cfg sfno.Config) *sfno.Network {
	t.Helper()
	n, err := sfno.NewNetwork(cfg)
	require.NoError(t, err)

	return n
}

func TestNetwork_ForwardShapes(t *testing.T) {
	hc := mustComplex(t, triangle)
	for _, kind := range []sfno.FilterKind{sfno.FilterModeWise, sfno.FilterPolynomial} {
		t.Run(kind.String(), func(t *testing.T) {
			cfg := baseConfig()
			cfg.Filter = kind
			n := mustNetwork(t, cfg)

			out, err := n.Forward(context.Background(), randomInputs(t, hc, cfg.InDims, 2, 1), hc)
			require.NoError(t, err)
			require.Len(t, out, 3)
			for k, y := range out {
				assert.Equal(t, tensor.Shape{Batch: 2, Rows: hc.Count(k), Channels: 2}, y.Shape(), "level %d", k)
				assert.True(t, y.AllFinite())
			}
		})
	}
}

func TestNetwork_Deterministic(t *testing.T) {
	hc := mustComplex(t, triangle)
	xs := randomInputs(t, hc, baseConfig().InDims, 3, 5)

	a := mustNetwork(t, baseConfig())
	b := mustNetwork(t, baseConfig())
	ya, err := a.Forward(context.Background(), xs, hc)
	require.NoError(t, err)
	yb, err := b.Forward(context.Background(), xs, hc)
	require.NoError(t, err)
	for k := range ya {
		assert.Equal(t, ya[k].Data(), yb[k].Data())
	}
	assert.Equal(t, a.Params(), b.Params())

	other := baseConfig()
	other.Seed = 12
	yc, err := mustNetwork(t, other).Forward(context.Background(), xs, hc)
	require.NoError(t, err)
	assert.NotEqual(t, ya[0].Data(), yc[0].Data())
}

func TestNetwork_EmptyLevelPassesThrough(t *testing.T) {
	hc := mustComplex(t, [][][]int{{{0}, {1}}, {}})
	cfg := sfno.Config{InDims: []int{2, 3}, HiddenDims: []int{4, 5}, OutDims: []int{1, 2}, Layers: 1}
	n := mustNetwork(t, cfg)

	xs := randomInputs(t, hc, cfg.InDims, 2, 3)
	out, err := n.Forward(context.Background(), xs, hc)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{Batch: 2, Rows: 0, Channels: 2}, out[1].Shape())

	hidden := randomInputs(t, hc, cfg.HiddenDims, 2, 4)
	layerOut, err := n.Layer(0).Forward(hidden, hc)
	require.NoError(t, err)
	assert.Same(t, hidden[1], layerOut[1])
	assert.NotSame(t, hidden[0], layerOut[0])
}

func TestNetwork_InputErrors(t *testing.T) {
	hc := mustComplex(t, triangle)
	n := mustNetwork(t, baseConfig())
	ctx := context.Background()

	xs := randomInputs(t, hc, []int{3, 2, 5}, 1, 1)
	_, err := n.Forward(ctx, xs, hc)
	var sme *sfno.ShapeMismatchError
	require.True(t, errors.As(err, &sme))
	assert.Equal(t, 2, sme.Level)
	assert.Equal(t, 1, sme.Want.Channels)

	mixed := randomInputs(t, hc, baseConfig().InDims, 1, 1)
	mixed[1] = randomInputs(t, hc, baseConfig().InDims, 2, 1)[1]
	_, err = n.Forward(ctx, mixed, hc)
	assert.ErrorIs(t, err, sfno.ErrShapeMismatch)

	_, err = n.Forward(ctx, xs[:2], hc)
	assert.ErrorIs(t, err, sfno.ErrLevelCount)

	_, err = n.Forward(ctx, xs, &hodge.Complex{})
	assert.ErrorIs(t, err, hodge.ErrNotReady)

	_, err = n.Forward(ctx, xs, nil)
	assert.ErrorIs(t, err, hodge.ErrNotReady)
	_, err = n.Layer(0).Forward(xs, nil)
	assert.ErrorIs(t, err, sfno.ErrLevelCount)
}

func TestNetwork_Tropical(t *testing.T) {
	hc := mustComplex(t, triangle)
	cfg := baseConfig()
	cfg.Tropical = true
	out, err := mustNetwork(t, cfg).Forward(context.Background(), randomInputs(t, hc, cfg.InDims, 2, 9), hc)
	require.NoError(t, err)
	for _, y := range out {
		for b := 0; b < y.Batch(); b++ {
			for r := 0; r < y.Rows(); r++ {
				nonzero := 0
				for _, v := range y.Row(b, r) {
					if v != 0 {
						nonzero++
					}
				}
				assert.LessOrEqual(t, nonzero, 1)
			}
		}
	}
}

func TestNetwork_BranchesAndTrace(t *testing.T) {
	hc := mustComplex(t, triangle)
	cfg := baseConfig()
	cfg.Layers = 4
	cfg.UseBranches = true
	n := mustNetwork(t, cfg)
	assert.Equal(t, sfno.DefaultBranchTags, n.Config().Branches)
	assert.Equal(t, 2, n.Config().BranchLayers)

	out, tr, err := n.ForwardTrace(context.Background(), randomInputs(t, hc, cfg.InDims, 2, 2), hc)
	require.NoError(t, err)
	require.NotNil(t, tr)
	assert.Len(t, tr.Input, 3)
	assert.Len(t, tr.Layers, 4)
	require.Len(t, tr.Branches, 3)
	for _, tag := range sfno.DefaultBranchTags {
		require.Contains(t, tr.Branches, tag)
		assert.Equal(t, tensor.Shape{Batch: 2, Rows: 3, Channels: 4}, tr.Branches[tag][0].Shape())
	}
	assert.Equal(t, tensor.Shape{Batch: 2, Rows: 3, Channels: 2}, out[0].Shape())

	plain, err := n.Forward(context.Background(), randomInputs(t, hc, cfg.InDims, 2, 2), hc)
	require.NoError(t, err)
	assert.Equal(t, out[0].Data(), plain[0].Data())
}

func TestNetwork_ConcurrentForward(t *testing.T) {
	hc := mustComplex(t, triangle)
	cfg := baseConfig()
	cfg.UseBranches = true
	n := mustNetwork(t, cfg)
	xs := randomInputs(t, hc, cfg.InDims, 2, 6)
	want, err := n.Forward(context.Background(), xs, hc)
	require.NoError(t, err)

	const callers = 8
	got := make([][]*tensor.Tensor, callers)
	g, ctx := errgroup.WithContext(context.Background())
	for i := 0; i < callers; i++ {
		i := i
		g.Go(func() error {
			out, err := n.Forward(ctx, xs, hc)
			got[i] = out
			return err
		})
	}
	require.NoError(t, g.Wait())
	for i := range got {
		for k := range want {
			assert.Equal(t, want[k].Data(), got[i][k].Data())
		}
	}
}

func TestNetwork_Update(t *testing.T) {
	hc := mustComplex(t, triangle)
	n := mustNetwork(t, baseConfig())
	before := n.NumParams()

	require.NoError(t, n.Update(func(ps []*sfno.Param) error {
		for _, p := range ps {
			if strings.HasPrefix(p.Name, "output.") {
				for i := range p.Data {
					p.Data[i] = 0
				}
			}
		}
		return nil
	}))
	out, err := n.Forward(context.Background(), randomInputs(t, hc, baseConfig().InDims, 1, 1), hc)
	require.NoError(t, err)
	for _, y := range out {
		assert.True(t, y.IsZero())
	}

	snapshot := n.Params()
	err = n.Update(func(ps []*sfno.Param) error {
		ps[0].Data[0] = 99
		ps[1].Data = append(ps[1].Data, 1)
		return nil
	})
	assert.ErrorIs(t, err, sfno.ErrParamShape)
	assert.Equal(t, snapshot, n.Params())
	assert.Equal(t, before, n.NumParams())

	boom := errors.New("boom")
	assert.ErrorIs(t, n.Update(func([]*sfno.Param) error { return boom }), boom)
}

func TestNetwork_SpectralBias(t *testing.T) {
	n := mustNetwork(t, baseConfig())
	energy, ok := n.SpectralBias(0)
	require.True(t, ok)
	assert.Len(t, energy, 3)
	_, ok = n.SpectralBias(7)
	assert.False(t, ok)

	cfg := baseConfig()
	cfg.Filter = sfno.FilterPolynomial
	_, ok = mustNetwork(t, cfg).SpectralBias(0)
	assert.False(t, ok)
}

func TestNetwork_LogsConstructionAndForward(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	hc := mustComplex(t, triangle)
	cfg := baseConfig()
	cfg.Logger = zap.New(core)
	n := mustNetwork(t, cfg)
	_, err := n.Forward(context.Background(), randomInputs(t, hc, cfg.InDims, 1, 1), hc)
	require.NoError(t, err)

	inits := logs.FilterMessage("network initialised").All()
	require.Len(t, inits, 1)
	assert.EqualValues(t, n.NumParams(), inits[0].ContextMap()["params"])
	assert.Equal(t, 1, logs.FilterMessage("forward pass").Len())
}

func TestConfig_Invalid(t *testing.T) {
	tests := map[string]func(c *sfno.Config){
		"no levels":     func(c *sfno.Config) { c.InDims, c.HiddenDims, c.OutDims = nil, nil, nil },
		"ragged dims":   func(c *sfno.Config) { c.OutDims = []int{1} },
		"zero width":    func(c *sfno.Config) { c.HiddenDims = []int{4, 0, 4} },
		"modes length":  func(c *sfno.Config) { c.Modes = []int{1} },
		"zero modes":    func(c *sfno.Config) { c.Modes = []int{1, 0, 1} },
		"negative":      func(c *sfno.Config) { c.Layers = -1 },
		"bad filter":    func(c *sfno.Config) { c.Filter = sfno.FilterKind(9) },
		"duplicate tag": func(c *sfno.Config) { c.UseBranches, c.Branches = true, []string{"a", "a"} },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			cfg := baseConfig()
			mutate(&cfg)
			_, err := sfno.NewNetwork(cfg)
			assert.ErrorIs(t, err, sfno.ErrInvalidConfig)
		})
	}
}

func TestConfig_Defaults(t *testing.T) {
	n := mustNetwork(t, sfno.Config{InDims: []int{1}, HiddenDims: []int{2}, OutDims: []int{1}})
	c := n.Config()
	assert.Equal(t, sfno.DefaultLayers, c.Layers)
	assert.Equal(t, []int{sfno.DefaultModes}, c.Modes)
	assert.Equal(t, sfno.DefaultPolyOrder, c.PolyOrder)
	assert.Nil(t, c.Branches)
	assert.Equal(t, 1, n.Levels())
}
