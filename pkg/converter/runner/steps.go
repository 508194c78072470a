package runner

import (
	"fmt"

	"github.com/yaptide/geobridge/pkg/converter/bridge"
	"github.com/yaptide/geobridge/pkg/converter/engine"
	"github.com/yaptide/geobridge/pkg/converter/utils"
)

// StepsDocument lists recorded steps.
type StepsDocument struct {
	Steps []StepSpec `json:"steps"`
}

// StepSpec is a recorded step. Node is the name of the source node the step
// started in; position and length are in cm, energy deposit in MeV.
type StepSpec struct {
	Track         int        `json:"track"`
	Node          string     `json:"node"`
	Position      [3]float64 `json:"position"`
	EnergyDeposit float64    `json:"edep"`
	Length        float64    `json:"length"`
}

// LoadSteps reads steps document from path (json, yaml or toml).
func LoadSteps(path string) ([]StepSpec, error) {
	var doc StepsDocument
	if err := utils.DecodeFile(path, &doc); err != nil {
		return nil, err
	}
	return doc.Steps, nil
}

// ResolveSteps maps recorded steps onto placements of converted geometry.
func ResolveSteps(c *bridge.Converter, specs []StepSpec) ([]*engine.Step, error) {
	tables := c.Tables()
	if tables == nil || c.World() == nil {
		return nil, fmt.Errorf("%w: geometry is not constructed", bridge.ErrInvalidState)
	}
	byName := map[string]*engine.Placement{}
	ambiguous := map[string]bool{}
	for _, p := range tables.Placements() {
		if _, found := byName[p.Name()]; found {
			ambiguous[p.Name()] = true
			continue
		}
		byName[p.Name()] = p
	}

	steps := make([]*engine.Step, 0, len(specs))
	for i, spec := range specs {
		if ambiguous[spec.Node] {
			return nil, fmt.Errorf("step %d: node name %q is ambiguous", i, spec.Node)
		}
		placement, found := byName[spec.Node]
		if !found {
			return nil, fmt.Errorf("step %d: unknown node %q", i, spec.Node)
		}
		steps = append(steps, &engine.Step{
			TrackID:   spec.Track,
			Placement: placement,
			Position: engine.Vec3{
				X: spec.Position[0] * engine.Centimeter,
				Y: spec.Position[1] * engine.Centimeter,
				Z: spec.Position[2] * engine.Centimeter,
			},
			EnergyDeposit: spec.EnergyDeposit * engine.MeV,
			Length:        spec.Length * engine.Centimeter,
		})
	}
	return steps, nil
}
