package engine

import "math"

// Solid kinds.
const (
	KindBox     = "box"
	KindTube    = "tube"
	KindSphere  = "sphere"
	KindGeneric = "generic"
)

// Solid is a shape in engine length units.
type Solid interface {
	Name() string
	Kind() string
}

// Box is centered at the origin, dimensions are half lengths.
type Box struct {
	name                string
	HalfX, HalfY, HalfZ float64
}

// NewBox ...
func NewBox(name string, halfX, halfY, halfZ float64) *Box {
	return &Box{name: name, HalfX: halfX, HalfY: halfY, HalfZ: halfZ}
}

// Name ...
func (b *Box) Name() string { return b.name }

// Kind ...
func (b *Box) Kind() string { return KindBox }

// Tube is a cylindrical section along z.
type Tube struct {
	name       string
	RMin, RMax float64
	HalfZ      float64
	StartPhi   float64
	DeltaPhi   float64
}

// NewTube creates a full (2π) tube.
func NewTube(name string, rMin, rMax, halfZ float64) *Tube {
	return &Tube{name: name, RMin: rMin, RMax: rMax, HalfZ: halfZ, DeltaPhi: 2 * math.Pi}
}

// Name ...
func (t *Tube) Name() string { return t.name }

// Kind ...
func (t *Tube) Kind() string { return KindTube }

// Sphere is a full spherical shell.
type Sphere struct {
	name       string
	RMin, RMax float64
}

// NewSphere ...
func NewSphere(name string, rMin, rMax float64) *Sphere {
	return &Sphere{name: name, RMin: rMin, RMax: rMax}
}

// Name ...
func (s *Sphere) Name() string { return s.name }

// Kind ...
func (s *Sphere) Kind() string { return KindSphere }

// GenericSolid wraps a shape the engine has no closed form for. Navigation
// queries are delegated back to the source description identified by Shape.
type GenericSolid struct {
	name   string
	Shape  string
	Params map[string]float64
}

// NewGenericSolid ...
func NewGenericSolid(name, shape string, params map[string]float64) *GenericSolid {
	copied := make(map[string]float64, len(params))
	for k, v := range params {
		copied[k] = v
	}
	return &GenericSolid{name: name, Shape: shape, Params: copied}
}

// Name ...
func (g *GenericSolid) Name() string { return g.name }

// Kind ...
func (g *GenericSolid) Kind() string { return KindGeneric }
