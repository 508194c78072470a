package bridge

import (
	"fmt"

	"github.com/yaptide/geobridge/pkg/converter/engine"
	"github.com/yaptide/geobridge/pkg/converter/setup"
)

type elementKey struct {
	z int
	a float64
}

// Tables map source objects to engine objects and back.
//
// Tables are filled by a single Converter and are read only once placements
// are converted; concurrent reads are safe from then on.
type Tables struct {
	materials       map[*setup.Material]*engine.Material
	materialSources map[*engine.Material]*setup.Material
	materialOrder   []*engine.Material

	volumes       map[*setup.Volume]*engine.LogicalVolume
	volumeSources map[*engine.LogicalVolume]*setup.Volume
	volumeIDs     map[*engine.LogicalVolume]setup.VolumeID
	store         *engine.VolumeStore

	placements     map[*setup.Node]*engine.Placement
	nodes          map[*engine.Placement]*setup.Node
	placementOrder []*engine.Placement

	elements map[elementKey]*engine.Element
}

func newTables() *Tables {
	return &Tables{
		materials:       map[*setup.Material]*engine.Material{},
		materialSources: map[*engine.Material]*setup.Material{},
		volumes:         map[*setup.Volume]*engine.LogicalVolume{},
		volumeSources:   map[*engine.LogicalVolume]*setup.Volume{},
		volumeIDs:       map[*engine.LogicalVolume]setup.VolumeID{},
		store:           engine.NewVolumeStore(),
		placements:      map[*setup.Node]*engine.Placement{},
		nodes:           map[*engine.Placement]*setup.Node{},
		elements:        map[elementKey]*engine.Element{},
	}
}

func (t *Tables) addMaterial(source *setup.Material, target *engine.Material) error {
	if _, found := t.materials[source]; found {
		return fmt.Errorf("%w: material %q converted twice", ErrInvalidState, source.Name)
	}
	t.materials[source] = target
	t.materialSources[target] = source
	t.materialOrder = append(t.materialOrder, target)
	return nil
}

func (t *Tables) addVolume(source *setup.Volume, target *engine.LogicalVolume) error {
	if _, found := t.volumes[source]; found {
		return fmt.Errorf("%w: volume %q converted twice", ErrInvalidState, source.Name)
	}
	t.volumes[source] = target
	t.volumeSources[target] = source
	t.volumeIDs[target] = source.ID
	t.store.Register(target)
	return nil
}

func (t *Tables) addPlacement(source *setup.Node, target *engine.Placement) error {
	if _, found := t.placements[source]; found {
		return fmt.Errorf("%w: node %q converted twice", ErrInvalidState, source.Name)
	}
	if mother := target.Mother(); mother != nil {
		if _, found := t.nodes[mother]; !found {
			return fmt.Errorf("%w: mother of node %q is not converted", ErrInvalidState, source.Name)
		}
	}
	t.placements[source] = target
	t.nodes[target] = source
	t.placementOrder = append(t.placementOrder, target)
	return nil
}

// Material returns converted material.
func (t *Tables) Material(source *setup.Material) (*engine.Material, bool) {
	m, found := t.materials[source]
	return m, found
}

// SourceMaterial returns material target was converted from.
func (t *Tables) SourceMaterial(target *engine.Material) (*setup.Material, bool) {
	m, found := t.materialSources[target]
	return m, found
}

// Volume returns converted volume.
func (t *Tables) Volume(source *setup.Volume) (*engine.LogicalVolume, bool) {
	lv, found := t.volumes[source]
	return lv, found
}

// SourceVolume returns volume lv was converted from.
func (t *Tables) SourceVolume(lv *engine.LogicalVolume) (*setup.Volume, bool) {
	v, found := t.volumeSources[lv]
	return v, found
}

// VolumeID returns ID of the source volume lv was converted from.
func (t *Tables) VolumeID(lv *engine.LogicalVolume) (setup.VolumeID, bool) {
	id, found := t.volumeIDs[lv]
	return id, found
}

// VolumeByName returns the first converted volume with name.
func (t *Tables) VolumeByName(name string) (*engine.LogicalVolume, bool) {
	return t.store.Get(name)
}

// Placement returns converted node.
func (t *Tables) Placement(source *setup.Node) (*engine.Placement, bool) {
	p, found := t.placements[source]
	return p, found
}

// Node returns node p was converted from.
func (t *Tables) Node(p *engine.Placement) (*setup.Node, bool) {
	n, found := t.nodes[p]
	return n, found
}

// Materials in conversion order.
func (t *Tables) Materials() []*engine.Material {
	return t.materialOrder
}

// Volumes in conversion order.
func (t *Tables) Volumes() []*engine.LogicalVolume {
	return t.store.Volumes()
}

// Placements in conversion order. Mothers always precede their daughters.
func (t *Tables) Placements() []*engine.Placement {
	return t.placementOrder
}

// Elements returns number of distinct engine elements created for mixtures.
func (t *Tables) Elements() int {
	return len(t.elements)
}
