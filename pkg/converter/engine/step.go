package engine

// Step is a single tracking step as seen by sensitive detectors.
type Step struct {
	TrackID int
	// Placement the step started in.
	Placement *Placement
	// Position of the pre step point in world frame.
	Position      Vec3
	EnergyDeposit float64
	Length        float64
}

// SensitiveDetector receives steps taken inside the volumes it is attached to.
// ProcessHits returns true if the step produced a hit.
type SensitiveDetector interface {
	ProcessHits(step *Step) bool
}

// DetectorLookup resolves the detector attached to a logical volume.
// Each worker uses its own lookup.
type DetectorLookup interface {
	Detector(lv *LogicalVolume) SensitiveDetector
}

// SharedDetectors looks up detectors attached directly to logical volumes.
type SharedDetectors struct{}

// Detector ...
func (SharedDetectors) Detector(lv *LogicalVolume) SensitiveDetector {
	return lv.SensitiveDetector()
}

// Dispatch passes step to the detector of the volume it was taken in.
// It returns false if there is no such detector.
func Dispatch(lookup DetectorLookup, step *Step) bool {
	if step == nil || step.Placement == nil {
		return false
	}
	sd := lookup.Detector(step.Placement.LogicalVolume())
	if sd == nil {
		return false
	}
	return sd.ProcessHits(step)
}
