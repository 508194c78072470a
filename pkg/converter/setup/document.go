package setup

import (
	"fmt"

	"github.com/yaptide/geobridge/pkg/converter/utils"
)

// Document is the serializable form of a Geometry. Objects reference each other by name.
type Document struct {
	Materials []MaterialSpec `json:"materials"`
	Volumes   []VolumeSpec   `json:"volumes"`
	Nodes     []NodeSpec     `json:"nodes"`
}

// MaterialSpec describes Material.
type MaterialSpec struct {
	Name        string      `json:"name"`
	State       State       `json:"state,omitempty"`
	Density     float64     `json:"density"`
	Temperature float64     `json:"temperature,omitempty"`
	Pressure    float64     `json:"pressure,omitempty"`
	Z           float64     `json:"z,omitempty"`
	A           float64     `json:"a,omitempty"`
	Components  []Component `json:"components,omitempty"`
}

// VolumeSpec describes Volume. Material is ignored for assemblies.
type VolumeSpec struct {
	Name     string `json:"name"`
	Material string `json:"material,omitempty"`
	Assembly bool   `json:"assembly,omitempty"`
	Shape    Shape  `json:"shape"`
}

// NodeSpec describes Node. Empty Mother marks the root.
type NodeSpec struct {
	Name        string      `json:"name"`
	Volume      string      `json:"volume"`
	Mother      string      `json:"mother,omitempty"`
	Copy        int         `json:"copy"`
	Translation [3]float64  `json:"translation"`
	Rotation    *[9]float64 `json:"rotation,omitempty"`
}

// LoadGeometry reads document from path (json, yaml or toml), builds and closes geometry.
func LoadGeometry(path string, elements *ElementTable) (*Geometry, error) {
	var doc Document
	if err := utils.DecodeFile(path, &doc); err != nil {
		return nil, err
	}
	g, err := doc.Build(elements)
	if err != nil {
		return nil, err
	}
	if err := g.Close(); err != nil {
		return nil, fmt.Errorf("close geometry %s: %w", path, err)
	}
	return g, nil
}

// Build creates open geometry from document.
// Nodes may be listed in any order; mothers are resolved on demand.
func (d Document) Build(elements *ElementTable) (*Geometry, error) {
	g := NewGeometry(elements)

	materials := map[string]*Material{}
	for _, spec := range d.Materials {
		if _, found := materials[spec.Name]; found {
			return nil, fmt.Errorf("duplicated material name %q", spec.Name)
		}
		m, err := g.AddMaterial(spec.material())
		if err != nil {
			return nil, err
		}
		materials[spec.Name] = m
	}

	volumes := map[string]*Volume{}
	for _, spec := range d.Volumes {
		if _, found := volumes[spec.Name]; found {
			return nil, fmt.Errorf("duplicated volume name %q", spec.Name)
		}
		v := &Volume{Name: spec.Name, Shape: spec.Shape, Assembly: spec.Assembly}
		if !spec.Assembly {
			m, found := materials[spec.Material]
			if !found {
				return nil, fmt.Errorf("volume %q: unknown material %q", spec.Name, spec.Material)
			}
			v.Material = m
		}
		if _, err := g.AddVolume(v); err != nil {
			return nil, err
		}
		volumes[spec.Name] = v
	}

	b := nodeBuilder{
		geometry: g,
		volumes:  volumes,
		specs:    map[string]NodeSpec{},
		built:    map[string]*Node{},
		visiting: map[string]bool{},
	}
	for _, spec := range d.Nodes {
		if _, found := b.specs[spec.Name]; found {
			return nil, fmt.Errorf("duplicated node name %q", spec.Name)
		}
		b.specs[spec.Name] = spec
	}
	for _, spec := range d.Nodes {
		if _, err := b.build(spec.Name); err != nil {
			return nil, err
		}
	}
	return g, nil
}

func (s MaterialSpec) material() *Material {
	m := &Material{
		Name:        s.Name,
		State:       s.State,
		Density:     s.Density,
		Temperature: s.Temperature,
		Pressure:    s.Pressure,
		Z:           s.Z,
		A:           s.A,
		Components:  append([]Component(nil), s.Components...),
	}
	if m.Temperature == 0 {
		m.Temperature = DefaultTemperature
	}
	if m.Pressure == 0 {
		m.Pressure = DefaultPressure
	}
	return m
}

type nodeBuilder struct {
	geometry *Geometry
	volumes  map[string]*Volume
	specs    map[string]NodeSpec
	built    map[string]*Node
	visiting map[string]bool
}

func (b *nodeBuilder) build(name string) (*Node, error) {
	if n, found := b.built[name]; found {
		return n, nil
	}
	spec, found := b.specs[name]
	if !found {
		return nil, fmt.Errorf("unknown node %q", name)
	}
	if b.visiting[name] {
		return nil, fmt.Errorf("node %q is its own ancestor", name)
	}
	b.visiting[name] = true
	defer delete(b.visiting, name)

	volume, found := b.volumes[spec.Volume]
	if !found {
		return nil, fmt.Errorf("node %q: unknown volume %q", name, spec.Volume)
	}

	var mother *Node
	if spec.Mother != "" {
		m, err := b.build(spec.Mother)
		if err != nil {
			return nil, fmt.Errorf("node %q: %w", name, err)
		}
		mother = m
	}

	transform := Transform{
		Translation: Vec3{X: spec.Translation[0], Y: spec.Translation[1], Z: spec.Translation[2]},
	}
	if spec.Rotation != nil {
		rotation := Matrix3(*spec.Rotation)
		transform.Rotation = &rotation
	}

	n, err := b.geometry.AddNode(&Node{
		Name:       name,
		Volume:     volume,
		Mother:     mother,
		Transform:  transform,
		CopyNumber: spec.Copy,
	})
	if err != nil {
		return nil, err
	}
	b.built[name] = n
	return n, nil
}
