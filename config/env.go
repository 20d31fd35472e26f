// SPDX-License-Identifier: MIT
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Environment variables read by ApplyEnv.
const (
	EnvMaxModes = "HODGENET_MAX_MODES"
	EnvWorkers  = "HODGENET_WORKERS"
	EnvLogLevel = "HODGENET_LOG_LEVEL"
	EnvSeed     = "HODGENET_SEED"
)

// ApplyEnv overrides fields from the process environment and re-validates.
// Unset variables leave the configuration alone; HODGENET_SEED seeds both the
// eigensolver and the network initialiser.
func (c *Config) ApplyEnv() error {
	if v, ok := os.LookupEnv(EnvMaxModes); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s=%q: %w", EnvMaxModes, v, ErrInvalidEnv)
		}
		c.Complex.MaxModes = n
	}
	if v, ok := os.LookupEnv(EnvWorkers); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s=%q: %w", EnvWorkers, v, ErrInvalidEnv)
		}
		c.Complex.Workers = n
	}
	if v, ok := os.LookupEnv(EnvLogLevel); ok {
		c.Logging.Level = v
	}
	if v, ok := os.LookupEnv(EnvSeed); ok {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%s=%q: %w", EnvSeed, v, ErrInvalidEnv)
		}
		c.Complex.Seed = seed
		c.Model.Seed = seed
	}

	return c.Validate()
}
