// SPDX-License-Identifier: MIT
// Package config: sentinel errors.

package config

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfig marks a configuration value outside its domain.
	ErrInvalidConfig = errors.New("config: invalid value")

	// ErrInvalidEnv marks an environment override that cannot be parsed.
	ErrInvalidEnv = errors.New("config: invalid environment override")

	// ErrUnknownTopology marks a topology kind with no generator.
	ErrUnknownTopology = errors.New("config: unknown topology kind")
)

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrInvalidConfig)
}
