package engine

// Placement positions a logical volume inside the volume of its mother placement.
type Placement struct {
	name        string
	rotation    *Rotation
	translation Vec3
	volume      *LogicalVolume
	mother      *Placement
	copyNo      int
	daughters   []*Placement
}

// NewPlacement creates placement and registers it as a daughter of mother.
// rotation is nil for unrotated placements; mother is nil for the world.
func NewPlacement(
	rotation *Rotation,
	translation Vec3,
	volume *LogicalVolume,
	name string,
	mother *Placement,
	copyNo int,
) *Placement {
	p := &Placement{
		name:        name,
		rotation:    rotation,
		translation: translation,
		volume:      volume,
		mother:      mother,
		copyNo:      copyNo,
	}
	if mother != nil {
		mother.daughters = append(mother.daughters, p)
	}
	return p
}

// Name ...
func (p *Placement) Name() string { return p.name }

// Rotation returns frame rotation or nil.
func (p *Placement) Rotation() *Rotation { return p.rotation }

// Translation in the mother frame.
func (p *Placement) Translation() Vec3 { return p.translation }

// LogicalVolume ...
func (p *Placement) LogicalVolume() *LogicalVolume { return p.volume }

// Mother returns nil for the world placement.
func (p *Placement) Mother() *Placement { return p.mother }

// CopyNo ...
func (p *Placement) CopyNo() int { return p.copyNo }

// Daughters in creation order.
func (p *Placement) Daughters() []*Placement { return p.daughters }

// Depth is 0 for the world placement.
func (p *Placement) Depth() int {
	depth := 0
	for m := p.mother; m != nil; m = m.mother {
		depth++
	}
	return depth
}

// LocalToMother transforms point from this placement frame to the mother frame.
func (p *Placement) LocalToMother(point Vec3) Vec3 {
	if p.rotation != nil {
		point = p.rotation.Inverse().Apply(point)
	}
	return point.Add(p.translation)
}

// LocalToGlobal transforms point from this placement frame to the world frame.
func (p *Placement) LocalToGlobal(point Vec3) Vec3 {
	for current := p; current != nil; current = current.mother {
		point = current.LocalToMother(point)
	}
	return point
}

// GlobalRotation returns rotation which maps directions from this frame to the world frame.
func (p *Placement) GlobalRotation() Rotation {
	result := IdentityRotation()
	for current := p; current != nil; current = current.mother {
		if current.rotation != nil {
			result = current.rotation.Inverse().Mul(result)
		}
	}
	return result
}
