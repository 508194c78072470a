package setup

import (
	"encoding/json"

	"github.com/yaptide/geobridge/pkg/converter/utils"
)

var shapeType = struct {
	box     string
	tube    string
	sphere  string
	generic string
}{
	box:     "box",
	tube:    "tube",
	sphere:  "sphere",
	generic: "generic",
}

var shapeTypeMapping = map[string]func() interface{}{
	shapeType.box:     func() interface{} { return &Box{} },
	shapeType.tube:    func() interface{} { return &Tube{} },
	shapeType.sphere:  func() interface{} { return &Sphere{} },
	shapeType.generic: func() interface{} { return &Generic{} },
}

// Shape wraps one of the geometric primitives: Box, Tube, Sphere or Generic.
type Shape struct {
	Primitive
}

// Primitive ...
type Primitive interface{}

// IsEmpty returns true if no primitive is set.
func (s Shape) IsEmpty() bool {
	return s.Primitive == nil
}

// MarshalJSON json.Marshaller implementation.
func (s Shape) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Primitive)
}

// UnmarshalJSON custom Unmarshal function.
// Primitive type is recognized by "type" field in json.
func (s *Shape) UnmarshalJSON(b []byte) error {
	primitive, err := utils.TypeBasedUnmarshallJSON(b, shapeTypeMapping)
	if err != nil {
		return err
	}
	s.Primitive = primitive
	return nil
}

// Box is an axis aligned box centered in the origin. Half lengths in cm.
type Box struct {
	DX float64 `json:"dx"`
	DY float64 `json:"dy"`
	DZ float64 `json:"dz"`
}

// MarshalJSON json.Marshaller implementaion.
func (b Box) MarshalJSON() ([]byte, error) {
	type Alias Box
	return json.Marshal(struct {
		Type string `json:"type"`
		Alias
	}{
		Type:  shapeType.box,
		Alias: Alias(b),
	})
}

// Tube is a cylindrical section along z axis. Radii and half length in cm.
type Tube struct {
	RMin float64 `json:"rmin"`
	RMax float64 `json:"rmax"`
	DZ   float64 `json:"dz"`
}

// MarshalJSON json.Marshaller implementaion.
func (t Tube) MarshalJSON() ([]byte, error) {
	type Alias Tube
	return json.Marshal(struct {
		Type string `json:"type"`
		Alias
	}{
		Type:  shapeType.tube,
		Alias: Alias(t),
	})
}

// Sphere is a spherical shell. Radii in cm.
type Sphere struct {
	RMin float64 `json:"rmin"`
	RMax float64 `json:"rmax"`
}

// MarshalJSON json.Marshaller implementaion.
func (s Sphere) MarshalJSON() ([]byte, error) {
	type Alias Sphere
	return json.Marshal(struct {
		Type string `json:"type"`
		Alias
	}{
		Type:  shapeType.sphere,
		Alias: Alias(s),
	})
}

// Generic is any shape without closed-form counterpart in the engine.
// It is carried through as an opaque descriptor.
type Generic struct {
	Kind   string             `json:"kind"`
	Params map[string]float64 `json:"params,omitempty"`
}

// MarshalJSON json.Marshaller implementaion.
func (g Generic) MarshalJSON() ([]byte, error) {
	type Alias Generic
	return json.Marshal(struct {
		Type string `json:"type"`
		Alias
	}{
		Type:  shapeType.generic,
		Alias: Alias(g),
	})
}
