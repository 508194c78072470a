package engine

import (
	"errors"
	"fmt"
)

// State of matter.
type State int

// Known states.
const (
	StateUndefined State = iota
	StateSolid
	StateLiquid
	StateGas
)

func (s State) String() string {
	switch s {
	case StateSolid:
		return "solid"
	case StateLiquid:
		return "liquid"
	case StateGas:
		return "gas"
	default:
		return "undefined"
	}
}

// ErrInvalidDensity is returned for materials with density that is not positive.
var ErrInvalidDensity = errors.New("material density must be positive")

// Element is a chemical element. A is in engine units (GramPerMole).
type Element struct {
	Name   string
	Symbol string
	Z      float64
	A      float64
}

// MaterialComponent is an element of a material with its mass fraction.
type MaterialComponent struct {
	Element  *Element
	Fraction float64
}

// Material is an engine material. Density, temperature and pressure are in
// engine units.
type Material struct {
	name        string
	density     float64
	state       State
	temperature float64
	pressure    float64

	components  []MaterialComponent
	nComponents int
}

// NewMaterial creates a material made of a single element with atomic number z and
// molar mass a.
func NewMaterial(
	name string, z, a, density float64, state State, temperature, pressure float64,
) (*Material, error) {
	if density <= 0 {
		return nil, fmt.Errorf("%s: %w", name, ErrInvalidDensity)
	}
	if z < 1 {
		return nil, fmt.Errorf("%s: atomic number %g below 1", name, z)
	}
	element := &Element{Name: name, Z: z, A: a}
	return &Material{
		name:        name,
		density:     density,
		state:       state,
		temperature: temperature,
		pressure:    pressure,
		components:  []MaterialComponent{{Element: element, Fraction: 1}},
		nComponents: 1,
	}, nil
}

// NewMixture creates a material which expects nComponents calls to AddElement.
func NewMixture(
	name string, density float64, nComponents int, state State, temperature, pressure float64,
) (*Material, error) {
	if density <= 0 {
		return nil, fmt.Errorf("%s: %w", name, ErrInvalidDensity)
	}
	if nComponents < 1 {
		return nil, fmt.Errorf("%s: mixture needs at least one component", name)
	}
	return &Material{
		name:        name,
		density:     density,
		state:       state,
		temperature: temperature,
		pressure:    pressure,
		components:  make([]MaterialComponent, 0, nComponents),
		nComponents: nComponents,
	}, nil
}

// AddElement appends element with mass fraction to a mixture.
func (m *Material) AddElement(element *Element, fraction float64) error {
	if element == nil {
		return fmt.Errorf("%s: nil element", m.name)
	}
	if len(m.components) >= m.nComponents {
		return fmt.Errorf("%s: all %d components already added", m.name, m.nComponents)
	}
	if fraction <= 0 || fraction > 1 {
		return fmt.Errorf("%s: mass fraction %g of %s out of (0, 1]", m.name, fraction, element.Symbol)
	}
	m.components = append(m.components, MaterialComponent{Element: element, Fraction: fraction})
	return nil
}

// Name ...
func (m *Material) Name() string { return m.name }

// Density ...
func (m *Material) Density() float64 { return m.density }

// State ...
func (m *Material) State() State { return m.state }

// Temperature ...
func (m *Material) Temperature() float64 { return m.temperature }

// Pressure ...
func (m *Material) Pressure() float64 { return m.pressure }

// Components returns copy of material components in insertion order.
func (m *Material) Components() []MaterialComponent {
	return append([]MaterialComponent(nil), m.components...)
}

// IsComplete returns true if all declared components were added.
func (m *Material) IsComplete() bool {
	return len(m.components) == m.nComponents
}

// Z returns mass fraction weighted atomic number.
func (m *Material) Z() float64 {
	var z, total float64
	for _, c := range m.components {
		z += c.Element.Z * c.Fraction
		total += c.Fraction
	}
	if total == 0 {
		return 0
	}
	return z / total
}
