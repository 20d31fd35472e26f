// SPDX-License-Identifier: MIT
package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/hodgenet/config"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv(config.EnvLogLevel, "error")
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()

	return out.String(), err
}

func writeConfig(t *testing.T, doc string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hodgenet.yaml")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	return path
}

func TestInspect_DefaultCycle(t *testing.T) {
	out, err := run(t, "inspect")
	require.NoError(t, err)
	assert.Contains(t, out, "euler characteristic 0 (from betti 0, exact=true)")
	assert.Contains(t, out, "level")
	assert.Contains(t, out, "resid")
	assert.Contains(t, out, "dense")
}

func TestInspect_Truncated(t *testing.T) {
	path := writeConfig(t, `
complex:
  max_modes: 2
topology:
  kind: edges
  vertices: 5
  edges: [[0, 1]]
`)
	out, err := run(t, "inspect", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, ">=")
	assert.Contains(t, out, "exact=false")
	assert.Contains(t, out, "connected components 4")
}

func TestForward_TraceWithBranches(t *testing.T) {
	path := writeConfig(t, `
model:
  in_dims: [2]
  hidden_dims: [4]
  out_dims: [3]
  layers: 2
  modes: [4]
  use_branches: true
topology:
  kind: complete
  vertices: 4
`)
	out, err := run(t, "forward", "--config", path, "--batch", "2", "--trace")
	require.NoError(t, err)
	assert.Contains(t, out, "level 0: 2×4×3")
	assert.Contains(t, out, "level 2: 2×4×3")
	assert.Contains(t, out, "layer 1:")
	for _, tag := range []string{"2", "3", "5"} {
		assert.Contains(t, out, "branch "+tag+":")
	}
}

func TestRoot_Errors(t *testing.T) {
	_, err := run(t, "inspect", "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = run(t, "forward", "--batch", "0")
	assert.Error(t, err)

	t.Setenv(config.EnvWorkers, "many")
	_, err = run(t, "inspect")
	assert.ErrorIs(t, err, config.ErrInvalidEnv)
}
