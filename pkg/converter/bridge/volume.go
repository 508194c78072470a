package bridge

import (
	"fmt"

	"github.com/yaptide/geobridge/pkg/converter"
	"github.com/yaptide/geobridge/pkg/converter/engine"
	"github.com/yaptide/geobridge/pkg/converter/setup"
)

// ConvertVolume returns logical volume for v, converting it and its material
// on first request.
func (c *Converter) ConvertVolume(v *setup.Volume) (*engine.LogicalVolume, error) {
	if c.err != nil {
		return nil, c.err
	}
	if v == nil {
		err := converter.GeometryError("nil volume")
		c.fail(err)
		return nil, err
	}
	if cached, found := c.tables.Volume(v); found {
		return cached, nil
	}
	if err := c.admit(); err != nil {
		return nil, err
	}

	result, err := c.convertVolume(v)
	if err == nil {
		err = c.tables.addVolume(v, result)
	}
	if err != nil {
		c.fail(err)
		return nil, err
	}
	return result, nil
}

func (c *Converter) convertVolume(v *setup.Volume) (*engine.LogicalVolume, error) {
	solid, err := convertShape(v.Name, v.Shape)
	if err != nil {
		return nil, converter.VolumeError(v.Name, "%w", err)
	}

	source := v.Material
	if v.Assembly {
		source = c.assembly
	}
	if source == nil {
		return nil, converter.VolumeError(v.Name, "%w", ErrMissingMaterial)
	}
	material, err := c.ConvertMaterial(source)
	if err != nil {
		return nil, converter.VolumeError(v.Name, "material: %w", err)
	}
	return engine.NewLogicalVolume(solid, material, v.Name), nil
}

func convertShape(name string, shape setup.Shape) (engine.Solid, error) {
	switch p := shape.Primitive.(type) {
	case setup.Box:
		return engine.NewBox(name, p.DX*engine.Centimeter, p.DY*engine.Centimeter, p.DZ*engine.Centimeter), nil
	case setup.Tube:
		return engine.NewTube(name, p.RMin*engine.Centimeter, p.RMax*engine.Centimeter, p.DZ*engine.Centimeter), nil
	case setup.Sphere:
		return engine.NewSphere(name, p.RMin*engine.Centimeter, p.RMax*engine.Centimeter), nil
	case setup.Generic:
		if p.Kind == "" {
			return nil, fmt.Errorf("%w: generic shape without kind", ErrUnsupportedShape)
		}
		return engine.NewGenericSolid(name, p.Kind, p.Params), nil
	case nil:
		return nil, fmt.Errorf("%w: no shape", ErrUnsupportedShape)
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedShape, p)
	}
}
