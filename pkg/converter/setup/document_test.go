package setup

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaptide/geobridge/pkg/converter/test"
)

var shapeTestCases = test.MarshallingCases{
	{
		&Shape{Box{DX: 1, DY: 2, DZ: 3.5}},
		`{"type": "box", "dx": 1, "dy": 2, "dz": 3.5}`,
	},
	{
		&Shape{Tube{RMin: 0.5, RMax: 2, DZ: 10}},
		`{"type": "tube", "rmin": 0.5, "rmax": 2, "dz": 10}`,
	},
	{
		&Shape{Sphere{RMax: 4}},
		`{"type": "sphere", "rmin": 0, "rmax": 4}`,
	},
	{
		&Shape{Generic{Kind: "polycone", Params: map[string]float64{"phi": 360}}},
		`{"type": "generic", "kind": "polycone", "params": {"phi": 360}}`,
	},
}

func TestShapeMarshal(t *testing.T) {
	test.Marshal(t, shapeTestCases)
}

func TestShapeUnmarshal(t *testing.T) {
	test.Unmarshal(t, shapeTestCases)
}

func TestShapeUnmarshalUnknownType(t *testing.T) {
	var s Shape
	assert.Error(t, s.UnmarshalJSON([]byte(`{"type": "torus"}`)))
}

const yamlDocument = `
materials:
  - name: Vacuum
    density: 0
  - name: Silicon
    state: solid
    density: 2.33
    z: 14
    a: 28.085
volumes:
  - name: Cave
    material: Vacuum
    shape: {type: box, dx: 100, dy: 100, dz: 100}
  - name: Sensor
    material: Silicon
    shape: {type: tube, rmin: 1, rmax: 2, dz: 5}
nodes:
  - name: sensor_2
    volume: Sensor
    mother: cave
    copy: 2
    translation: [0, 0, 10]
  - name: cave
    volume: Cave
  - name: sensor_1
    volume: Sensor
    mother: cave
    copy: 1
    rotation: [0, -1, 0, 1, 0, 0, 0, 0, 1]
`

const tomlDocument = `
[[materials]]
name = "Water"
state = "liquid"
density = 1.0

[[materials.components]]
z = 1
a = 1.008
fraction = 0.112

[[materials.components]]
z = 8
a = 15.999
fraction = 0.888

[[volumes]]
name = "Tank"
material = "Water"
shape = { type = "sphere", rmax = 30 }

[[nodes]]
name = "tank"
volume = "Tank"
translation = [0, 0, 0]
`

func writeDocument(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadGeometryYAML(t *testing.T) {
	g, err := LoadGeometry(writeDocument(t, "geometry.yaml", yamlDocument), nil)
	require.NoError(t, err)
	require.True(t, g.IsClosed())

	require.Len(t, g.Materials(), 2)
	silicon := g.Materials()[1]
	assert.Equal(t, StateSolid, silicon.State)
	assert.Equal(t, DefaultTemperature, silicon.Temperature)
	assert.Equal(t, DefaultPressure, silicon.Pressure)

	require.Len(t, g.Volumes(), 2)
	assert.Equal(t, Shape{Tube{RMin: 1, RMax: 2, DZ: 5}}, g.Volumes()[1].Shape)

	root := g.Root()
	require.NotNil(t, root)
	assert.Equal(t, "cave", root.Name)

	daughters := g.Daughters(root)
	require.Len(t, daughters, 2)
	assert.Equal(t, "sensor_2", daughters[0].Name)
	assert.Equal(t, Vec3{Z: 10}, daughters[0].Transform.Translation)
	assert.False(t, daughters[0].Transform.HasRotation())
	assert.Same(t, daughters[0].Volume, daughters[1].Volume)
	assert.True(t, daughters[1].Transform.HasRotation())
	assert.Equal(t, Matrix3{0, -1, 0, 1, 0, 0, 0, 0, 1}, *daughters[1].Transform.Rotation)
}

func TestLoadGeometryTOML(t *testing.T) {
	g, err := LoadGeometry(writeDocument(t, "geometry.toml", tomlDocument), nil)
	require.NoError(t, err)

	water := g.Materials()[0]
	assert.Equal(t, StateLiquid, water.State)
	assert.Equal(t, []Component{
		{Z: 1, A: 1.008, Fraction: 0.112},
		{Z: 8, A: 15.999, Fraction: 0.888},
	}, water.Components)
	assert.Equal(t, Shape{Sphere{RMax: 30}}, g.Volumes()[0].Shape)
}

func TestDocumentBuildErrors(t *testing.T) {
	box := Shape{Box{DX: 1, DY: 1, DZ: 1}}

	testCases := []struct {
		name string
		doc  Document
	}{
		{"UnknownMaterial", Document{
			Volumes: []VolumeSpec{{Name: "V", Material: "missing", Shape: box}},
		}},
		{"UnknownVolume", Document{
			Nodes: []NodeSpec{{Name: "n", Volume: "missing"}},
		}},
		{"UnknownMother", Document{
			Volumes: []VolumeSpec{{Name: "V", Assembly: true, Shape: box}},
			Nodes:   []NodeSpec{{Name: "n", Volume: "V", Mother: "missing"}},
		}},
		{"Cycle", Document{
			Volumes: []VolumeSpec{{Name: "V", Assembly: true, Shape: box}},
			Nodes: []NodeSpec{
				{Name: "a", Volume: "V", Mother: "b"},
				{Name: "b", Volume: "V", Mother: "a"},
			},
		}},
		{"DuplicatedNode", Document{
			Volumes: []VolumeSpec{{Name: "V", Assembly: true, Shape: box}},
			Nodes:   []NodeSpec{{Name: "a", Volume: "V"}, {Name: "a", Volume: "V"}},
		}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.doc.Build(nil)
			assert.Error(t, err)
		})
	}
}
