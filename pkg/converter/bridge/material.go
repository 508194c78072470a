package bridge

import (
	"fmt"

	"github.com/yaptide/geobridge/pkg/converter"
	"github.com/yaptide/geobridge/pkg/converter/engine"
	"github.com/yaptide/geobridge/pkg/converter/setup"
)

var stateMapping = map[setup.State]engine.State{
	setup.StateUndefined: engine.StateUndefined,
	setup.StateSolid:     engine.StateSolid,
	setup.StateLiquid:    engine.StateLiquid,
	setup.StateGas:       engine.StateGas,
}

// ConvertMaterial returns engine material for m, converting it on first request.
func (c *Converter) ConvertMaterial(m *setup.Material) (*engine.Material, error) {
	if c.err != nil {
		return nil, c.err
	}
	if m == nil {
		err := converter.GeometryError("%w: nil material", ErrMissingMaterial)
		c.fail(err)
		return nil, err
	}
	if cached, found := c.tables.Material(m); found {
		return cached, nil
	}
	if err := c.admit(); err != nil {
		return nil, err
	}

	result, err := c.convertMaterial(m)
	if err == nil {
		err = c.tables.addMaterial(m, result)
	}
	if err != nil {
		c.fail(err)
		return nil, err
	}
	return result, nil
}

func (c *Converter) convertMaterial(m *setup.Material) (*engine.Material, error) {
	density := m.Density * engine.GramPerCm3
	minDensity := c.options.MinDensity * engine.GramPerCm3
	if density < minDensity || m.EffectiveZ() < 1 {
		c.log.Debugf("Material %q replaced by placeholder gas", m.Name)
		return c.placeholder(m.Name, minDensity)
	}

	state := stateMapping[m.State]
	temperature := m.Temperature * engine.Kelvin
	pressure := m.Pressure * engine.Pascal

	if !m.IsMixture() {
		result, err := engine.NewMaterial(
			m.Name, m.Z, m.A*engine.GramPerMole, density, state, temperature, pressure,
		)
		if err != nil {
			return nil, converter.MaterialError(m.Name, "%v", err)
		}
		return result, nil
	}

	mixture, err := engine.NewMixture(m.Name, density, len(m.Components), state, temperature, pressure)
	if err != nil {
		return nil, converter.MaterialError(m.Name, "%v", err)
	}
	for _, component := range m.Components {
		element, err := c.element(component)
		if err != nil {
			return nil, converter.MaterialError(m.Name, "%w", err)
		}
		if err := mixture.AddElement(element, component.Fraction); err != nil {
			return nil, converter.MaterialError(m.Name, "%v", err)
		}
	}
	return mixture, nil
}

func (c *Converter) placeholder(name string, density float64) (*engine.Material, error) {
	p := c.options.Placeholder
	result, err := engine.NewMaterial(
		name,
		p.Z,
		p.A*engine.GramPerMole,
		density,
		engine.StateGas,
		p.Temperature*engine.Kelvin,
		p.Pressure*engine.Pascal,
	)
	if err != nil {
		return nil, converter.MaterialError(name, "placeholder: %v", err)
	}
	return result, nil
}

// element returns engine element for mixture component. Elements are shared
// between materials with the same Z and A.
func (c *Converter) element(component setup.Component) (*engine.Element, error) {
	z := int(component.Z)
	key := elementKey{z: z, a: component.A}
	if cached, found := c.tables.elements[key]; found {
		return cached, nil
	}
	known, found := c.geometry.Elements().Lookup(z)
	if !found {
		return nil, fmt.Errorf("%w: no element corresponding to Z=%d", ErrUnknownElement, z)
	}
	result := &engine.Element{
		Name:   known.Name,
		Symbol: known.Symbol,
		Z:      float64(z),
		A:      component.A * engine.GramPerMole,
	}
	c.tables.elements[key] = result
	return result, nil
}
