package sensitive

import (
	"fmt"

	"github.com/yaptide/geobridge/pkg/converter/engine"
	"github.com/yaptide/geobridge/pkg/converter/utils"
)

// ModuleDocument lists detector modules.
type ModuleDocument struct {
	Modules []ModuleSpec `json:"modules"`
}

// ModuleSpec declares sensitive volumes of a module. Threshold is the minimal
// energy deposit in MeV recorded as a hit.
type ModuleSpec struct {
	ID        string   `json:"id"`
	Volumes   []string `json:"volumes"`
	Threshold float64  `json:"threshold,omitempty"`
}

// StaticModule is a Module described by a ModuleSpec; it records hits with a Collector.
type StaticModule struct {
	spec ModuleSpec
}

// NewStaticModule ...
func NewStaticModule(spec ModuleSpec) *StaticModule {
	spec.Volumes = append([]string(nil), spec.Volumes...)
	return &StaticModule{spec: spec}
}

// ID implements Module.
func (m *StaticModule) ID() string {
	return m.spec.ID
}

// SensitiveVolumes implements Module.
func (m *StaticModule) SensitiveVolumes() []string {
	return m.spec.Volumes
}

// NewHitProcessor implements Module.
func (m *StaticModule) NewHitProcessor() HitProcessor {
	return NewCollector(m.spec.ID, m.spec.Threshold*engine.MeV)
}

// LoadModules reads module document from path (json, yaml or toml).
func LoadModules(path string) ([]Module, error) {
	var doc ModuleDocument
	if err := utils.DecodeFile(path, &doc); err != nil {
		return nil, err
	}
	modules := make([]Module, 0, len(doc.Modules))
	for i, spec := range doc.Modules {
		if spec.ID == "" {
			return nil, fmt.Errorf("%s: module %d has no id", path, i)
		}
		modules = append(modules, NewStaticModule(spec))
	}
	return modules, nil
}
