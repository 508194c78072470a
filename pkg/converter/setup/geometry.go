// Package setup implements the source geometry: materials, volumes and placement
// nodes, built once and then closed.
package setup

import (
	"errors"
	"fmt"
	"math"

	"go.uber.org/multierr"
)

// ErrGeometryClosed is returned when geometry is modified after Close.
var ErrGeometryClosed = errors.New("geometry is closed")

// FractionTolerance is the allowed deviation of mixture mass fractions from 1.
const FractionTolerance = 1e-3

// Geometry owns the source description of a detector.
//
// Geometry is built from a single goroutine. After a successful Close it is
// immutable and safe for concurrent reads.
type Geometry struct {
	elements *ElementTable

	materials []*Material
	volumes   []*Volume
	nodes     []*Node

	materialSet map[*Material]struct{}
	volumeSet   map[*Volume]struct{}
	nodeSet     map[*Node]struct{}
	daughters   map[*Node][]*Node

	root   *Node
	closed bool
}

// NewGeometry creates empty geometry. DefaultElements is used if elements is nil.
func NewGeometry(elements *ElementTable) *Geometry {
	if elements == nil {
		elements = DefaultElements()
	}
	return &Geometry{
		elements:    elements,
		materialSet: map[*Material]struct{}{},
		volumeSet:   map[*Volume]struct{}{},
		nodeSet:     map[*Node]struct{}{},
		daughters:   map[*Node][]*Node{},
	}
}

// AddMaterial registers material and assigns its ID.
func (g *Geometry) AddMaterial(m *Material) (*Material, error) {
	if g.closed {
		return nil, ErrGeometryClosed
	}
	if m == nil {
		return nil, errors.New("nil material")
	}
	if _, found := g.materialSet[m]; found {
		return nil, fmt.Errorf("material %q already registered", m.Name)
	}
	m.ID = MaterialID(len(g.materials))
	g.materials = append(g.materials, m)
	g.materialSet[m] = struct{}{}
	return m, nil
}

// AddVolume registers volume and assigns its ID.
func (g *Geometry) AddVolume(v *Volume) (*Volume, error) {
	if g.closed {
		return nil, ErrGeometryClosed
	}
	if v == nil {
		return nil, errors.New("nil volume")
	}
	if _, found := g.volumeSet[v]; found {
		return nil, fmt.Errorf("volume %q already registered", v.Name)
	}
	v.ID = VolumeID(len(g.volumes))
	g.volumes = append(g.volumes, v)
	g.volumeSet[v] = struct{}{}
	return v, nil
}

// AddNode registers placement node and assigns its ID.
// Node without mother becomes the root; mother, if set, must be registered already.
func (g *Geometry) AddNode(n *Node) (*Node, error) {
	if g.closed {
		return nil, ErrGeometryClosed
	}
	if n == nil {
		return nil, errors.New("nil node")
	}
	if _, found := g.nodeSet[n]; found {
		return nil, fmt.Errorf("node %q already registered", n.Name)
	}
	if n.Mother == nil {
		if g.root != nil {
			return nil, fmt.Errorf("node %q: geometry already has root %q", n.Name, g.root.Name)
		}
		g.root = n
	} else {
		if _, found := g.nodeSet[n.Mother]; !found {
			return nil, fmt.Errorf("node %q: mother %q is not registered", n.Name, n.Mother.Name)
		}
		g.daughters[n.Mother] = append(g.daughters[n.Mother], n)
	}
	n.ID = NodeID(len(g.nodes))
	g.nodes = append(g.nodes, n)
	g.nodeSet[n] = struct{}{}
	return n, nil
}

// Close validates geometry and forbids further modifications.
// Geometry stays open if validation fails; all problems are reported at once.
func (g *Geometry) Close() error {
	if g.closed {
		return nil
	}
	var err error
	if g.root == nil {
		err = multierr.Append(err, errors.New("geometry has no root node"))
	}
	for _, m := range g.materials {
		sum, positive := 0.0, true
		for i, c := range m.Components {
			if c.Fraction <= 0 {
				positive = false
				err = multierr.Append(err, fmt.Errorf(
					"material %q: component %d has non positive fraction %g", m.Name, i, c.Fraction,
				))
			}
			sum += c.Fraction
		}
		if positive && len(m.Components) > 0 && math.Abs(sum-1) > FractionTolerance {
			err = multierr.Append(err, fmt.Errorf(
				"material %q: component fractions sum to %g, expected 1", m.Name, sum,
			))
		}
	}
	for _, v := range g.volumes {
		if v.Shape.IsEmpty() {
			err = multierr.Append(err, fmt.Errorf("volume %q has no shape", v.Name))
		}
		if v.Assembly {
			continue
		}
		if v.Material == nil {
			err = multierr.Append(err, fmt.Errorf("volume %q has no material", v.Name))
		} else if _, found := g.materialSet[v.Material]; !found {
			err = multierr.Append(err, fmt.Errorf(
				"volume %q: material %q is not registered", v.Name, v.Material.Name,
			))
		}
	}
	for _, n := range g.nodes {
		if n.Volume == nil {
			err = multierr.Append(err, fmt.Errorf("node %q has no volume", n.Name))
		} else if _, found := g.volumeSet[n.Volume]; !found {
			err = multierr.Append(err, fmt.Errorf(
				"node %q: volume %q is not registered", n.Name, n.Volume.Name,
			))
		}
	}
	if err != nil {
		return err
	}
	g.closed = true
	return nil
}

// IsClosed returns true after successful Close.
func (g *Geometry) IsClosed() bool {
	return g.closed
}

// Elements returns element table used to resolve mixture components.
func (g *Geometry) Elements() *ElementTable {
	return g.elements
}

// Materials in registration order. The slice must not be modified.
func (g *Geometry) Materials() []*Material {
	return g.materials
}

// Volumes in registration order. The slice must not be modified.
func (g *Geometry) Volumes() []*Volume {
	return g.volumes
}

// Nodes in registration order. The slice must not be modified.
func (g *Geometry) Nodes() []*Node {
	return g.nodes
}

// Root returns the node without mother.
func (g *Geometry) Root() *Node {
	return g.root
}

// Daughters returns nodes placed directly inside n, in registration order.
func (g *Geometry) Daughters(n *Node) []*Node {
	return g.daughters[n]
}

// Walk visits nodes depth-first starting at the root, mothers before daughters.
// Walk stops at the first error returned by fn.
func (g *Geometry) Walk(fn func(n *Node, depth int) error) error {
	if g.root == nil {
		return nil
	}
	return g.walk(g.root, 0, fn)
}

func (g *Geometry) walk(n *Node, depth int, fn func(n *Node, depth int) error) error {
	if err := fn(n, depth); err != nil {
		return err
	}
	for _, d := range g.daughters[n] {
		if err := g.walk(d, depth+1, fn); err != nil {
			return err
		}
	}
	return nil
}
