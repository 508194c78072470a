package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func assertVecInDelta(t *testing.T, expected, actual Vec3) {
	t.Helper()
	assert.InDelta(t, 0, expected.Sub(actual).Norm(), 1e-9, "expected %v, actual %v", expected, actual)
}

func newTestVolume(name string) *LogicalVolume {
	m, _ := NewMaterial("Galactic", 1, 1.01*GramPerMole, UniverseMeanDensity, StateGas, STPTemperature, Pascal)
	return NewLogicalVolume(NewBox(name, 1, 1, 1), m, name)
}

func TestPlacementTransform(t *testing.T) {
	world := NewPlacement(nil, Vec3{}, newTestVolume("World"), "world", nil, 0)

	// rotation of the frame by +90 degrees around z
	frame := Rotation{
		0, 1, 0,
		-1, 0, 0,
		0, 0, 1,
	}
	rotated := NewPlacement(&frame, Vec3{Z: 100}, newTestVolume("Rotated"), "rotated", world, 1)
	inner := NewPlacement(nil, Vec3{X: 5}, newTestVolume("Inner"), "inner", rotated, 0)

	assert.Equal(t, 0, world.Depth())
	assert.Equal(t, 2, inner.Depth())
	assert.Equal(t, []*Placement{rotated}, world.Daughters())
	assert.Same(t, rotated, inner.Mother())

	assertVecInDelta(t, Vec3{Z: 100}, rotated.LocalToGlobal(Vec3{}))
	assertVecInDelta(t, Vec3{Y: 1, Z: 100}, rotated.LocalToGlobal(Vec3{X: 1}))
	assertVecInDelta(t, Vec3{Y: 5, Z: 100}, inner.LocalToGlobal(Vec3{}))

	global := inner.GlobalRotation()
	assertVecInDelta(t, Vec3{Y: 1}, global.Apply(Vec3{X: 1}))
}

func TestRotation(t *testing.T) {
	r := Rotation{
		0, -1, 0,
		1, 0, 0,
		0, 0, 1,
	}
	assert.True(t, r.Mul(r.Inverse()).IsIdentity())
	assert.Equal(t, r, r.Transpose().Transpose())
	assert.False(t, r.IsIdentity())
	assert.True(t, IdentityRotation().IsIdentity())
}

func TestVolumeStore(t *testing.T) {
	store := NewVolumeStore()
	first := newTestVolume("Cell")
	second := newTestVolume("Cell")

	assert.True(t, store.Register(first))
	assert.False(t, store.Register(second))
	assert.Equal(t, 2, store.Len())

	found, ok := store.Get("Cell")
	assert.True(t, ok)
	assert.Same(t, first, found)

	_, ok = store.Get("Missing")
	assert.False(t, ok)
}

type countingDetector struct {
	steps int
}

func (d *countingDetector) ProcessHits(*Step) bool {
	d.steps++
	return true
}

type fixedLookup struct {
	detector SensitiveDetector
}

func (l fixedLookup) Detector(*LogicalVolume) SensitiveDetector {
	return l.detector
}

func TestDispatch(t *testing.T) {
	lv := newTestVolume("Sensor")
	p := NewPlacement(nil, Vec3{}, lv, "sensor", nil, 0)
	step := &Step{TrackID: 1, Placement: p, EnergyDeposit: MeV}

	assert.False(t, Dispatch(SharedDetectors{}, step))
	assert.False(t, Dispatch(SharedDetectors{}, &Step{}))

	shared := &countingDetector{}
	lv.SetSensitiveDetector(shared)
	assert.True(t, Dispatch(SharedDetectors{}, step))
	assert.Equal(t, 1, shared.steps)

	private := &countingDetector{}
	assert.True(t, Dispatch(fixedLookup{private}, step))
	assert.Equal(t, 1, private.steps)
	assert.Equal(t, 1, shared.steps)
}
