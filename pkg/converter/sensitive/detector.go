// Package sensitive attaches detector modules to converted volumes and
// dispatches steps taken in those volumes to the modules' hit processors.
package sensitive

import (
	"fmt"

	"github.com/yaptide/geobridge/pkg/converter/engine"
	"github.com/yaptide/geobridge/pkg/converter/setup"
)

// HitProcessor turns steps into hits for a single detector module.
// volumeID identifies the source volume the step was taken in.
type HitProcessor interface {
	ProcessHits(step *engine.Step, volumeID setup.VolumeID) bool
}

// Module is a detector module declaring which volumes it is sensitive to.
type Module interface {
	ID() string
	SensitiveVolumes() []string
	// NewHitProcessor returns a fresh processor. It is called once for the shared
	// attachment and once per worker.
	NewHitProcessor() HitProcessor
}

// SensitiveDetector dispatches steps of one module. It maps logical volumes
// back to source volume IDs, so the processor never sees engine identities.
type SensitiveDetector struct {
	module    string
	processor HitProcessor
	volumeIDs map[*engine.LogicalVolume]setup.VolumeID
}

func newSensitiveDetector(module string, processor HitProcessor) *SensitiveDetector {
	return &SensitiveDetector{
		module:    module,
		processor: processor,
		volumeIDs: map[*engine.LogicalVolume]setup.VolumeID{},
	}
}

func (sd *SensitiveDetector) mapVolume(lv *engine.LogicalVolume, id setup.VolumeID) error {
	if previous, found := sd.volumeIDs[lv]; found {
		return fmt.Errorf("volume %q already mapped to ID %d", lv.Name(), previous)
	}
	sd.volumeIDs[lv] = id
	return nil
}

// withProcessor returns detector sharing the volume map with sd.
func (sd *SensitiveDetector) withProcessor(processor HitProcessor) *SensitiveDetector {
	return &SensitiveDetector{
		module:    sd.module,
		processor: processor,
		volumeIDs: sd.volumeIDs,
	}
}

// Module returns ID of the owning module.
func (sd *SensitiveDetector) Module() string {
	return sd.module
}

// Processor ...
func (sd *SensitiveDetector) Processor() HitProcessor {
	return sd.processor
}

// VolumeID returns source volume ID of lv.
func (sd *SensitiveDetector) VolumeID(lv *engine.LogicalVolume) (setup.VolumeID, bool) {
	id, found := sd.volumeIDs[lv]
	return id, found
}

// ProcessHits implements engine.SensitiveDetector. Steps in volumes that were
// never mapped to this detector are ignored.
func (sd *SensitiveDetector) ProcessHits(step *engine.Step) bool {
	if step == nil || step.Placement == nil {
		return false
	}
	id, found := sd.volumeIDs[step.Placement.LogicalVolume()]
	if !found {
		return false
	}
	return sd.processor.ProcessHits(step, id)
}
