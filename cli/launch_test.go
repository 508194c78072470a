package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaptide/geobridge/pkg/converter/catalog"
	"github.com/yaptide/geobridge/pkg/converter/runner"
)

const geometryYAML = `
materials:
  - name: Water
    state: liquid
    density: 1
    components:
      - {z: 1, a: 1.008, fraction: 0.112}
      - {z: 8, a: 15.999, fraction: 0.888}
volumes:
  - name: World
    assembly: true
    shape: {type: box, dx: 100, dy: 100, dz: 100}
  - name: Slab
    material: Water
    shape: {type: box, dx: 10, dy: 10, dz: 1}
nodes:
  - {name: world, volume: World}
  - {name: slab_1, volume: Slab, mother: world, copy: 1}
  - {name: slab_2, volume: Slab, mother: world, copy: 2, translation: [0, 0, 10]}
`

const modulesTOML = `
[[modules]]
id = "Phantom"
volumes = ["Slab", "Cavity"]
`

const stepsYAML = `
steps:
  - {track: 1, node: slab_1, edep: 0.5}
  - {track: 2, node: slab_2, edep: 1.5}
  - {track: 3, node: world, edep: 9}
`

func writeInputs(t *testing.T) (string, string, string) {
	t.Helper()
	dir := t.TempDir()
	paths := []string{
		filepath.Join(dir, "geometry.yaml"),
		filepath.Join(dir, "modules.toml"),
		filepath.Join(dir, "steps.yaml"),
	}
	for i, content := range []string{geometryYAML, modulesTOML, stepsYAML} {
		require.NoError(t, os.WriteFile(paths[i], []byte(content), 0o600))
	}
	return paths[0], paths[1], paths[2]
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out := &bytes.Buffer{}
	cmd := newRootCmd()
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestConvertCommand(t *testing.T) {
	geometry, modules, _ := writeInputs(t)
	catalogPath := filepath.Join(t.TempDir(), "catalog.db")

	out, err := execute(t, "convert", "-g", geometry, "-m", modules, "--catalog", catalogPath)
	require.NoError(t, err)
	assert.Contains(t, out, "placements")
	assert.Regexp(t, `nodes\s+3`, out)
	assert.Regexp(t, `volumes\s+2`, out)
	assert.Regexp(t, `module Phantom\s+1 sensitive, 1 skipped`, out)

	store, err := catalog.Open(catalogPath)
	require.NoError(t, err)
	defer store.Close()
	placements, err := store.Placements(t.Context())
	require.NoError(t, err)
	assert.Len(t, placements, 3)
}

func TestReplayCommand(t *testing.T) {
	geometry, modules, steps := writeInputs(t)

	out, err := execute(t, "replay", "-g", geometry, "-m", modules, "--steps", steps, "--workers", "2")
	require.NoError(t, err)

	var result runner.Result
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, "2", result.Metadata["workers"])
	phantom, found := result.Module("Phantom")
	require.True(t, found)
	assert.Len(t, phantom.Hits, 2)
	assert.InDelta(t, 2.0, phantom.EnergyDeposit, 1e-12)
}

func TestCommandErrors(t *testing.T) {
	geometry, _, _ := writeInputs(t)

	testCases := []struct {
		name string
		args []string
	}{
		{"MissingGeometry", []string{"convert"}},
		{"MissingSteps", []string{"replay", "-g", geometry}},
		{"InvalidWorkers", []string{"convert", "-g", geometry, "--workers", "0"}},
		{"InvalidLoggingLevel", []string{"convert", "-g", geometry, "--logging-level", "loud"}},
		{"UnknownDocument", []string{"convert", "-g", filepath.Join(t.TempDir(), "geometry.xml")}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := execute(t, tc.args...)
			assert.Error(t, err)
		})
	}
}
