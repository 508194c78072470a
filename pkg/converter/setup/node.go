package setup

// NodeID identifies a placement node, assigned in registration order.
type NodeID int64

// Vec3 is a point or a vector. Lengths in cm.
type Vec3 struct {
	X, Y, Z float64
}

// Matrix3 is a row-major 3x3 rotation matrix which rotates the frame.
type Matrix3 [9]float64

// Identity returns identity matrix.
func Identity() Matrix3 {
	return Matrix3{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}
}

// IsIdentity returns true for identity matrix.
func (m Matrix3) IsIdentity() bool {
	return m == Identity()
}

// Transform places a node inside its mother.
type Transform struct {
	Translation Vec3
	// Rotation is nil for pure translations.
	Rotation *Matrix3
}

// HasRotation returns true if transform carries a non identity rotation.
func (t Transform) HasRotation() bool {
	return t.Rotation != nil && !t.Rotation.IsIdentity()
}

// Node places Volume inside the volume of Mother. Many nodes may place the same
// volume; CopyNumber distinguishes placements of one volume under one mother.
type Node struct {
	ID         NodeID
	Name       string
	Volume     *Volume
	Mother     *Node
	Transform  Transform
	CopyNumber int
}

// IsRoot returns true if node has no mother.
func (n *Node) IsRoot() bool {
	return n.Mother == nil
}
