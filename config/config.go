// SPDX-License-Identifier: MIT
// Package: hodgenet/config
//
// config.go — YAML configuration for complexes, networks, topology fixtures
// and logging.
//
// Loading order:
//   Default() → YAML document (unknown keys rejected) → ApplyEnv() → Validate().
// Fields absent from the document keep their defaults.

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/hodgenet/hodge"
	"github.com/katalvlaran/hodgenet/sfno"
)

// Config is the root document.
type Config struct {
	Complex  ComplexConfig  `yaml:"complex"`
	Model    ModelConfig    `yaml:"model"`
	Topology TopologyConfig `yaml:"topology"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ComplexConfig mirrors the hodge.Build options.
type ComplexConfig struct {
	MaxModes        int         `yaml:"max_modes"`
	LevelModes      map[int]int `yaml:"level_modes"`
	BettiTolerance  float64     `yaml:"betti_tolerance"`
	SolverTolerance float64     `yaml:"solver_tolerance"`
	MaxIterations   int         `yaml:"max_iterations"`
	Workers         int         `yaml:"workers"` // 0 = GOMAXPROCS
	Seed            int64       `yaml:"seed"`
}

// ModelConfig describes an sfno.Network. A dims list with a single entry
// applies to every level.
type ModelConfig struct {
	InDims       []int    `yaml:"in_dims"`
	HiddenDims   []int    `yaml:"hidden_dims"`
	OutDims      []int    `yaml:"out_dims"`
	Layers       int      `yaml:"layers"`
	Modes        []int    `yaml:"modes"`
	Filter       string   `yaml:"filter"`     // mode | polynomial
	PolyOrder    int      `yaml:"poly_order"` // Chebyshev terms
	Activation   string   `yaml:"activation"` // gelu | relu
	UseBranches  bool     `yaml:"use_branches"`
	Branches     []string `yaml:"branches"`
	BranchLayers int      `yaml:"branch_layers"`
	Tropical     bool     `yaml:"tropical"`
	Seed         int64    `yaml:"seed"`
}

// LoggingConfig selects the zap preset and level.
type LoggingConfig struct {
	Level       string `yaml:"level"` // debug, info, warn, error
	Development bool   `yaml:"development"`
}

// Default returns the configuration used when no document is given.
func Default() *Config {
	return &Config{
		Complex: ComplexConfig{
			MaxModes:        hodge.DefaultMaxModes,
			BettiTolerance:  hodge.DefaultBettiTolerance,
			SolverTolerance: hodge.DefaultSolverTolerance,
			MaxIterations:   hodge.DefaultMaxIterations,
			Seed:            hodge.DefaultSeed,
		},
		Model: ModelConfig{
			InDims:     []int{1},
			HiddenDims: []int{16},
			OutDims:    []int{1},
			Layers:     sfno.DefaultLayers,
			Filter:     sfno.FilterModeWise.String(),
			PolyOrder:  sfno.DefaultPolyOrder,
			Activation: sfno.GELU.String(),
		},
		Topology: TopologyConfig{
			Kind:      TopologyCycle,
			Vertices:  6,
			Triangles: true,
		},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Parse decodes a YAML document over the defaults and validates the result.
// An empty document yields Default().
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Load reads and parses the YAML file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	return Parse(data)
}

// Save writes c as YAML to path.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}

	return nil
}

// Validate reports the first value outside its domain, wrapped in ErrInvalidConfig
// (or ErrUnknownTopology for an unrecognised topology kind).
func (c *Config) Validate() error {
	cc := c.Complex
	if cc.MaxModes < 1 {
		return invalidf("complex.max_modes %d", cc.MaxModes)
	}
	for k, m := range cc.LevelModes {
		if k < 0 || m < 1 {
			return invalidf("complex.level_modes[%d] = %d", k, m)
		}
	}
	if !positiveFinite(cc.BettiTolerance) {
		return invalidf("complex.betti_tolerance %v", cc.BettiTolerance)
	}
	if !positiveFinite(cc.SolverTolerance) {
		return invalidf("complex.solver_tolerance %v", cc.SolverTolerance)
	}
	if cc.MaxIterations < 1 {
		return invalidf("complex.max_iterations %d", cc.MaxIterations)
	}
	if cc.Workers < 0 {
		return invalidf("complex.workers %d", cc.Workers)
	}

	m := c.Model
	if _, err := sfno.ParseFilterKind(m.Filter); err != nil {
		return invalidf("model.filter %q", m.Filter)
	}
	if _, err := sfno.ParseActivation(m.Activation); err != nil {
		return invalidf("model.activation %q", m.Activation)
	}
	for _, f := range []struct {
		name string
		dims []int
	}{{"in_dims", m.InDims}, {"hidden_dims", m.HiddenDims}, {"out_dims", m.OutDims}} {
		if len(f.dims) == 0 {
			return invalidf("model.%s is empty", f.name)
		}
		for _, d := range f.dims {
			if d < 1 {
				return invalidf("model.%s has width %d", f.name, d)
			}
		}
	}
	if m.Layers < 0 || m.PolyOrder < 0 || m.BranchLayers < 0 {
		return invalidf("model: negative layers, poly_order or branch_layers")
	}

	if _, err := zapcore.ParseLevel(c.Logging.Level); err != nil {
		return invalidf("logging.level %q", c.Logging.Level)
	}

	return c.Topology.validate()
}

func positiveFinite(v float64) bool {
	return v > 0 && !math.IsNaN(v) && !math.IsInf(v, 0)
}

// HodgeOptions converts the complex section into hodge.Build options.
// logger may be nil.
func (c *Config) HodgeOptions(logger *zap.Logger) []hodge.Option {
	cc := c.Complex
	opts := []hodge.Option{
		hodge.WithMaxModes(cc.MaxModes),
		hodge.WithBettiTolerance(cc.BettiTolerance),
		hodge.WithSolverTolerance(cc.SolverTolerance),
		hodge.WithMaxIterations(cc.MaxIterations),
		hodge.WithWorkers(cc.Workers),
		hodge.WithSeed(cc.Seed),
	}
	if len(cc.LevelModes) > 0 {
		opts = append(opts, hodge.WithLevelModes(cc.LevelModes))
	}
	if logger != nil {
		opts = append(opts, hodge.WithLogger(logger))
	}

	return opts
}

// SFNOConfig converts the model section into an sfno.Config for a complex
// with the given number of levels.
func (c *Config) SFNOConfig(levels int, logger *zap.Logger) (sfno.Config, error) {
	m := c.Model
	filter, err := sfno.ParseFilterKind(m.Filter)
	if err != nil {
		return sfno.Config{}, fmt.Errorf("config: model.filter: %w", err)
	}
	act, err := sfno.ParseActivation(m.Activation)
	if err != nil {
		return sfno.Config{}, fmt.Errorf("config: model.activation: %w", err)
	}
	in, err := perLevel("in_dims", m.InDims, levels)
	if err != nil {
		return sfno.Config{}, err
	}
	hidden, err := perLevel("hidden_dims", m.HiddenDims, levels)
	if err != nil {
		return sfno.Config{}, err
	}
	out, err := perLevel("out_dims", m.OutDims, levels)
	if err != nil {
		return sfno.Config{}, err
	}
	var modes []int
	if len(m.Modes) > 0 {
		if modes, err = perLevel("modes", m.Modes, levels); err != nil {
			return sfno.Config{}, err
		}
	}

	return sfno.Config{
		InDims:       in,
		HiddenDims:   hidden,
		OutDims:      out,
		Layers:       m.Layers,
		Modes:        modes,
		Filter:       filter,
		PolyOrder:    m.PolyOrder,
		Activation:   act,
		UseBranches:  m.UseBranches,
		Branches:     append([]string(nil), m.Branches...),
		BranchLayers: m.BranchLayers,
		Tropical:     m.Tropical,
		Seed:         m.Seed,
		Logger:       logger,
	}, nil
}

// perLevel broadcasts a single value to every level or checks an explicit list.
func perLevel(name string, v []int, levels int) ([]int, error) {
	switch len(v) {
	case levels:
		return append([]int(nil), v...), nil
	case 1:
		out := make([]int, levels)
		for i := range out {
			out[i] = v[0]
		}
		return out, nil
	default:
		return nil, invalidf("model.%s has %d entries for %d levels", name, len(v), levels)
	}
}

// Logger builds the zap logger described by the logging section.
func (c *Config) Logger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.Logging.Level)
	if err != nil {
		return nil, invalidf("logging.level %q", c.Logging.Level)
	}
	zc := zap.NewProductionConfig()
	if c.Logging.Development {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("config: build logger: %w", err)
	}

	return logger, nil
}
