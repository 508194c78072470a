package setup

// VolumeID is a stable small integer identifying a volume, assigned in registration
// order starting from 0. Hit dispatch uses it instead of pointer identity.
type VolumeID int64

// Volume is a shape filled with a material.
// Assembly volumes only group daughters and carry no material of their own.
type Volume struct {
	ID       VolumeID
	Name     string
	Shape    Shape
	Material *Material
	Assembly bool
}
