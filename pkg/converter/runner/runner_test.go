package runner

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaptide/geobridge/pkg/converter/bridge"
	"github.com/yaptide/geobridge/pkg/converter/engine"
	"github.com/yaptide/geobridge/pkg/converter/sensitive"
	"github.com/yaptide/geobridge/pkg/converter/setup"
)

const geometryJSON = `{
	"materials": [{"name": "Silicon", "density": 2.33, "z": 14, "a": 28.085}],
	"volumes": [
		{"name": "World", "assembly": true, "shape": {"type": "box", "dx": 10, "dy": 10, "dz": 10}},
		{"name": "Sensor", "material": "Silicon", "shape": {"type": "tube", "rmin": 0, "rmax": 1, "dz": 1}},
		{"name": "Absorber", "material": "Silicon", "shape": {"type": "sphere", "rmax": 1}}
	],
	"nodes": [
		{"name": "world", "volume": "World"},
		{"name": "sensor_1", "volume": "Sensor", "mother": "world", "copy": 1},
		{"name": "sensor_2", "volume": "Sensor", "mother": "world", "copy": 2, "translation": [0, 0, 5]},
		{"name": "absorber", "volume": "Absorber", "mother": "world"}
	]
}`

const stepsJSON = `{
	"steps": [
		{"track": 1, "node": "sensor_1", "position": [0, 0, 0.5], "edep": 0.2, "length": 0.1},
		{"track": 2, "node": "sensor_2", "position": [0, 0, 5], "edep": 0.3, "length": 0.1},
		{"track": 3, "node": "absorber", "position": [0, 0, 0], "edep": 1.0, "length": 0.1},
		{"track": 4, "node": "world", "position": [9, 0, 0], "edep": 0.0, "length": 2.0},
		{"track": 5, "node": "sensor_2", "position": [0, 0, 5.5], "edep": 0.01, "length": 0.1},
		{"track": 6, "node": "sensor_1", "position": [0, 0, 0], "edep": 0.5, "length": 0.1},
		{"track": 7, "node": "absorber", "position": [0, 0, 0], "edep": 2.0, "length": 0.1}
	]
}`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func prepare(t *testing.T) (*bridge.Converter, *sensitive.Registry, []*engine.Step) {
	t.Helper()
	g, err := setup.LoadGeometry(writeFile(t, "geometry.json", geometryJSON), nil)
	require.NoError(t, err)
	c, err := bridge.New(g, bridge.DefaultOptions())
	require.NoError(t, err)
	_, err = c.Construct(context.Background())
	require.NoError(t, err)

	logger, _ := logtest.NewNullLogger()
	registry := sensitive.NewRegistry(logger)
	require.NoError(t, registry.RegisterModule(sensitive.NewStaticModule(sensitive.ModuleSpec{
		ID: "Tracker", Volumes: []string{"Sensor", "Strip"}, Threshold: 0.05,
	})))
	require.NoError(t, registry.RegisterModule(sensitive.NewStaticModule(sensitive.ModuleSpec{
		ID: "Calorimeter", Volumes: []string{"Absorber"},
	})))
	require.NoError(t, c.ConstructSensitive(context.Background(), registry))
	require.NoError(t, c.Close())

	specs, err := LoadSteps(writeFile(t, "steps.json", stepsJSON))
	require.NoError(t, err)
	steps, err := ResolveSteps(c, specs)
	require.NoError(t, err)
	return c, registry, steps
}

func TestResolveSteps(t *testing.T) {
	c, _, steps := prepare(t)
	require.Len(t, steps, 7)
	assert.Equal(t, "sensor_2", steps[1].Placement.Name())
	assert.Equal(t, engine.Vec3{Z: 50}, steps[1].Position)
	assert.Same(t, c.World(), steps[3].Placement)
	assert.Equal(t, 20.0, steps[3].Length)

	_, err := ResolveSteps(c, []StepSpec{{Node: "missing"}})
	assert.Error(t, err)
}

func TestResolveStepsUnnamedNodes(t *testing.T) {
	g := setup.NewGeometry(nil)
	silicon, err := g.AddMaterial(&setup.Material{Name: "Silicon", Density: 2.33, Z: 14, A: 28.085})
	require.NoError(t, err)
	world, err := g.AddVolume(&setup.Volume{Name: "World", Assembly: true, Shape: setup.Shape{setup.Box{DX: 10, DY: 10, DZ: 10}}})
	require.NoError(t, err)
	sensor, err := g.AddVolume(&setup.Volume{Name: "Sensor", Material: silicon, Shape: setup.Shape{setup.Box{DX: 1, DY: 1, DZ: 1}}})
	require.NoError(t, err)
	absorber, err := g.AddVolume(&setup.Volume{Name: "Absorber", Material: silicon, Shape: setup.Shape{setup.Sphere{RMax: 1}}})
	require.NoError(t, err)

	root, err := g.AddNode(&setup.Node{Name: "world", Volume: world})
	require.NoError(t, err)
	for copyNo := 1; copyNo <= 2; copyNo++ {
		_, err = g.AddNode(&setup.Node{Volume: sensor, Mother: root, CopyNumber: copyNo})
		require.NoError(t, err)
	}
	_, err = g.AddNode(&setup.Node{Volume: absorber, Mother: root})
	require.NoError(t, err)
	require.NoError(t, g.Close())

	c, err := bridge.New(g, bridge.DefaultOptions())
	require.NoError(t, err)
	_, err = c.Construct(context.Background())
	require.NoError(t, err)

	steps, err := ResolveSteps(c, []StepSpec{{Track: 1, Node: "Absorber"}})
	require.NoError(t, err)
	require.Len(t, steps, 1)
	assert.Equal(t, "Absorber", steps[0].Placement.Name())
	source, found := c.Tables().SourceVolume(steps[0].Placement.LogicalVolume())
	require.True(t, found)
	assert.Same(t, absorber, source)

	_, err = ResolveSteps(c, []StepSpec{{Track: 2, Node: "Sensor"}})
	assert.ErrorContains(t, err, "ambiguous")
	_, err = ResolveSteps(c, []StepSpec{{Track: 3, Node: ""}})
	assert.Error(t, err)
}

func TestRun(t *testing.T) {
	testCases := []struct {
		name    string
		workers int
	}{
		{"SingleWorker", 1},
		{"TwoWorkers", 2},
		{"MoreWorkersThanSteps", 10},
	}

	check := func(t *testing.T, workers int) {
		c, registry, steps := prepare(t)
		r, err := NewRunner(registry, workers)
		require.NoError(t, err)

		result, err := r.Run(context.Background(), steps)
		require.NoError(t, err)
		assert.Equal(t, "5", result.Metadata["hits"])
		assert.Equal(t, "7", result.Metadata["steps"])

		sensor, _ := c.Tables().VolumeByName("Sensor")
		sensorID, _ := c.Tables().VolumeID(sensor)

		tracker, found := result.Module("Tracker")
		require.True(t, found)
		assert.Empty(t, tracker.Errors)
		assert.Equal(t, "Strip", tracker.ModuleMetadata["skipped"])
		require.Len(t, tracker.Hits, 3)
		assert.Equal(t, []int{1, 2, 6}, []int{tracker.Hits[0].TrackID, tracker.Hits[1].TrackID, tracker.Hits[2].TrackID})
		assert.Equal(t, sensorID, tracker.Hits[1].VolumeID)
		assert.InDelta(t, 1.0, tracker.EnergyDeposit, 1e-12)

		calorimeter, found := result.Module("Calorimeter")
		require.True(t, found)
		require.Len(t, calorimeter.Hits, 2)
		assert.InDelta(t, 3.0, calorimeter.EnergyDeposit, 1e-12)

		shared, _ := registry.Detector("Tracker")
		assert.Empty(t, shared.Processor().(*sensitive.Collector).Hits())
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			check(t, tc.workers)
		})
	}
}

func TestRunCanceled(t *testing.T) {
	_, registry, steps := prepare(t)
	r, err := NewRunner(registry, 2)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = r.Run(ctx, steps)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewRunner(t *testing.T) {
	_, err := NewRunner(sensitive.NewRegistry(nil), 1)
	assert.ErrorIs(t, err, sensitive.ErrNotAttached)

	_, registry, _ := prepare(t)
	_, err = NewRunner(registry, 0)
	assert.ErrorIs(t, err, ErrNoWorkers)

	r, err := NewRunner(registry, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, r.Workers())
}
