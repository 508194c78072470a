package engine

// LogicalVolume binds a solid with a material. Solid and material are fixed
// at construction; only the sensitive detector may change, and only before
// stepping starts.
type LogicalVolume struct {
	name     string
	solid    Solid
	material *Material
	detector SensitiveDetector
}

// NewLogicalVolume ...
func NewLogicalVolume(solid Solid, material *Material, name string) *LogicalVolume {
	return &LogicalVolume{name: name, solid: solid, material: material}
}

// Name ...
func (lv *LogicalVolume) Name() string { return lv.name }

// Solid ...
func (lv *LogicalVolume) Solid() Solid { return lv.solid }

// Material ...
func (lv *LogicalVolume) Material() *Material { return lv.material }

// SetSensitiveDetector replaces the detector handle. nil detaches.
func (lv *LogicalVolume) SetSensitiveDetector(sd SensitiveDetector) {
	lv.detector = sd
}

// SensitiveDetector returns attached detector or nil.
func (lv *LogicalVolume) SensitiveDetector() SensitiveDetector {
	return lv.detector
}
