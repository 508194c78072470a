package bridge

import (
	"github.com/yaptide/geobridge/pkg/converter"
	"github.com/yaptide/geobridge/pkg/converter/engine"
	"github.com/yaptide/geobridge/pkg/converter/setup"
)

// ConvertNode returns placement for n. The volume of n and all its ancestors
// are converted first, so n may be requested before its mother.
func (c *Converter) ConvertNode(n *setup.Node) (*engine.Placement, error) {
	if c.err != nil {
		return nil, c.err
	}
	if n == nil {
		err := converter.GeometryError("nil node")
		c.fail(err)
		return nil, err
	}
	if cached, found := c.tables.Placement(n); found {
		return cached, nil
	}
	if err := c.admit(); err != nil {
		return nil, err
	}

	result, err := c.convertNode(n)
	if err == nil {
		err = c.tables.addPlacement(n, result)
	}
	if err != nil {
		c.fail(err)
		return nil, err
	}
	if result.Mother() == nil {
		c.world = result
		c.worldNode = n
	}
	return result, nil
}

func (c *Converter) convertNode(n *setup.Node) (*engine.Placement, error) {
	translation, rotation := convertTransform(n.Transform)

	volume, err := c.ConvertVolume(n.Volume)
	if err != nil {
		return nil, converter.NodeError(n.Name, "volume: %w", err)
	}

	var mother *engine.Placement
	if n.Mother == nil {
		if c.worldNode != nil {
			return nil, converter.NodeError(
				n.Name, "%w: world is already placed by %q", ErrMultipleRoots, c.worldNode.Name,
			)
		}
	} else {
		mother, err = c.ConvertNode(n.Mother)
		if err != nil {
			return nil, converter.NodeError(n.Name, "mother: %w", err)
		}
	}

	name := n.Name
	if name == "" {
		name = n.Volume.Name
	}
	return engine.NewPlacement(rotation, translation, volume, name, mother, n.CopyNumber), nil
}

// convertTransform scales translation to engine units and transposes rotation.
// The engine keeps the inverse of the source matrix, so Placement.LocalToMother
// maps points exactly as the source transform does.
func convertTransform(t setup.Transform) (engine.Vec3, *engine.Rotation) {
	translation := engine.Vec3{
		X: t.Translation.X * engine.Centimeter,
		Y: t.Translation.Y * engine.Centimeter,
		Z: t.Translation.Z * engine.Centimeter,
	}
	if !t.HasRotation() {
		return translation, nil
	}
	rotation := engine.Rotation(*t.Rotation).Transpose()
	return translation, &rotation
}
