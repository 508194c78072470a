package setup

import (
	"fmt"
	"strings"
)

// Defaults applied by Document.Build when a material omits them.
const (
	// DefaultTemperature in kelvin.
	DefaultTemperature = 273.15
	// DefaultPressure in pascal.
	DefaultPressure = 101325.0
)

// MaterialID identifies material inside a Geometry, assigned in registration order.
type MaterialID int64

// State of matter.
type State int

// States of matter.
const (
	StateUndefined State = iota
	StateSolid
	StateLiquid
	StateGas
)

var stateNames = map[State]string{
	StateUndefined: "undefined",
	StateSolid:     "solid",
	StateLiquid:    "liquid",
	StateGas:       "gas",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// MarshalText encoding.TextMarshaler implementation.
func (s State) MarshalText() ([]byte, error) {
	name, ok := stateNames[s]
	if !ok {
		return nil, fmt.Errorf("unknown state of matter %d", int(s))
	}
	return []byte(name), nil
}

// UnmarshalText encoding.TextUnmarshaler implementation.
func (s *State) UnmarshalText(text []byte) error {
	value := strings.ToLower(string(text))
	if value == "" {
		*s = StateUndefined
		return nil
	}
	for state, name := range stateNames {
		if name == value {
			*s = state
			return nil
		}
	}
	return fmt.Errorf("unknown state of matter %q", value)
}

// Component is a single element of a mixture.
type Component struct {
	// Atomic number.
	Z float64 `json:"z"`
	// Atomic mass in g/mole.
	A float64 `json:"a"`
	// Mass fraction.
	Fraction float64 `json:"fraction"`
}

// Material is either a single element material (Z, A) or a mixture of Components.
type Material struct {
	ID    MaterialID
	Name  string
	State State

	// Density in g/cm³.
	Density float64
	// Temperature in kelvin.
	Temperature float64
	// Pressure in pascal.
	Pressure float64

	// Atomic number, used when Components is empty.
	Z float64
	// Atomic mass in g/mole, used when Components is empty.
	A float64

	Components []Component
}

// IsMixture returns true if material is defined by its components.
func (m *Material) IsMixture() bool {
	return len(m.Components) > 0
}

// EffectiveZ is Z of single element materials and mass fraction weighted Z of mixtures.
func (m *Material) EffectiveZ() float64 {
	if !m.IsMixture() {
		return m.Z
	}
	var z, total float64
	for _, c := range m.Components {
		z += c.Z * c.Fraction
		total += c.Fraction
	}
	if total <= 0 {
		return 0
	}
	return z / total
}
