package sensitive

import (
	"github.com/yaptide/geobridge/pkg/converter/engine"
	"github.com/yaptide/geobridge/pkg/converter/setup"
)

// Hit is an energy deposit recorded by a Collector.
type Hit struct {
	Module        string         `json:"module"`
	VolumeID      setup.VolumeID `json:"volumeId"`
	TrackID       int            `json:"trackId"`
	EnergyDeposit float64        `json:"edep"`
	Position      engine.Vec3    `json:"position"`
}

// Collector is a HitProcessor which stores every step depositing more than
// Threshold. It is not safe for concurrent use; every worker gets its own.
type Collector struct {
	module    string
	threshold float64
	hits      []Hit
}

// NewCollector creates collector for module. threshold is in engine energy units.
func NewCollector(module string, threshold float64) *Collector {
	return &Collector{module: module, threshold: threshold}
}

// ProcessHits implements HitProcessor.
func (c *Collector) ProcessHits(step *engine.Step, volumeID setup.VolumeID) bool {
	if step.EnergyDeposit <= c.threshold {
		return false
	}
	c.hits = append(c.hits, Hit{
		Module:        c.module,
		VolumeID:      volumeID,
		TrackID:       step.TrackID,
		EnergyDeposit: step.EnergyDeposit,
		Position:      step.Position,
	})
	return true
}

// Hits returns collected hits in arrival order.
func (c *Collector) Hits() []Hit {
	return c.hits
}
