package catalog

import (
	"context"
	"path/filepath"
	"testing"

	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaptide/geobridge/pkg/converter/bridge"
	"github.com/yaptide/geobridge/pkg/converter/runner"
	"github.com/yaptide/geobridge/pkg/converter/sensitive"
	"github.com/yaptide/geobridge/pkg/converter/setup"
)

func construct(t *testing.T) (*bridge.Converter, *sensitive.Registry) {
	t.Helper()
	box := setup.Shape{setup.Box{DX: 1, DY: 1, DZ: 1}}
	doc := setup.Document{
		Materials: []setup.MaterialSpec{{Name: "Lead", Density: 11.35, Z: 82, A: 207.2}},
		Volumes: []setup.VolumeSpec{
			{Name: "World", Assembly: true, Shape: box},
			{Name: "Brick", Material: "Lead", Shape: box},
		},
		Nodes: []setup.NodeSpec{
			{Name: "world", Volume: "World"},
			{Name: "brick_1", Volume: "Brick", Mother: "world", Copy: 1},
			{Name: "brick_2", Volume: "Brick", Mother: "world", Copy: 2, Translation: [3]float64{0, 0, 10}},
		},
	}
	g, err := doc.Build(nil)
	require.NoError(t, err)
	require.NoError(t, g.Close())

	c, err := bridge.New(g, bridge.DefaultOptions())
	require.NoError(t, err)
	_, err = c.Construct(context.Background())
	require.NoError(t, err)

	logger, _ := logtest.NewNullLogger()
	registry := sensitive.NewRegistry(logger)
	require.NoError(t, registry.RegisterModule(sensitive.NewStaticModule(sensitive.ModuleSpec{
		ID: "Calorimeter", Volumes: []string{"Brick"},
	})))
	require.NoError(t, c.ConstructSensitive(context.Background(), registry))
	return c, registry
}

func TestWriteGeometry(t *testing.T) {
	ctx := context.Background()
	c, registry := construct(t)

	store, err := Open(":memory:")
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.WriteGeometry(ctx, c, registry))
	// second export replaces the first one
	require.NoError(t, store.WriteGeometry(ctx, c, registry))

	volumes, err := store.Volumes(ctx)
	require.NoError(t, err)
	assert.Equal(t, []VolumeRecord{
		{ID: 0, Name: "World", Solid: "box", Material: "Assembly"},
		{ID: 1, Name: "Brick", Solid: "box", Material: "Lead", Module: "Calorimeter"},
	}, volumes)

	placements, err := store.Placements(ctx)
	require.NoError(t, err)
	require.Len(t, placements, 3)
	assert.Nil(t, placements[0].MotherID)
	for _, p := range placements[1:] {
		require.NotNil(t, p.MotherID)
		assert.Equal(t, int64(0), *p.MotherID)
		assert.Equal(t, int64(1), p.VolumeID)
	}
	assert.Equal(t, 2, placements[2].CopyNo)
}

func TestWriteHits(t *testing.T) {
	ctx := context.Background()
	c, registry := construct(t)

	store, err := Open(filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	defer store.Close()
	require.NoError(t, store.WriteGeometry(ctx, c, registry))

	r, err := runner.NewRunner(registry, 2)
	require.NoError(t, err)
	steps, err := runner.ResolveSteps(c, []runner.StepSpec{
		{Track: 1, Node: "brick_1", EnergyDeposit: 1.5},
		{Track: 2, Node: "brick_2", EnergyDeposit: 2.5},
		{Track: 3, Node: "world", EnergyDeposit: 4},
	})
	require.NoError(t, err)
	result, err := r.Run(ctx, steps)
	require.NoError(t, err)

	require.NoError(t, store.WriteHits(ctx, result))
	energy, err := store.EnergyByVolume(ctx, "Calorimeter")
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"Brick": 4}, energy)

	empty, err := store.EnergyByVolume(ctx, "Tracker")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestOpenRequiresPath(t *testing.T) {
	_, err := Open(" ")
	assert.Error(t, err)
}
