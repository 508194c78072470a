package runner

import (
	"github.com/yaptide/geobridge/pkg/converter/sensitive"
)

// Result contains all replay result data.
type Result struct {
	Errors   map[string]string `json:"errors"`
	Metadata map[string]string `json:"result_metadata"`
	Modules  []ModuleResult    `json:"modules"`
}

// ModuleResult contains hits recorded by single module.
type ModuleResult struct {
	ModuleID       string            `json:"moduleId"`
	Errors         map[string]string `json:"errors"`
	ModuleMetadata map[string]string `json:"metadata"`
	Hits           []sensitive.Hit   `json:"hits"`
	EnergyDeposit  float64           `json:"edep"`
}

// NewModuleResult constructor.
func NewModuleResult(moduleID string) ModuleResult {
	return ModuleResult{
		ModuleID:       moduleID,
		Errors:         map[string]string{},
		ModuleMetadata: map[string]string{},
		Hits:           []sensitive.Hit{},
	}
}

// NewEmptyResult constructor.
func NewEmptyResult() Result {
	return Result{
		Errors:   map[string]string{},
		Metadata: map[string]string{},
		Modules:  make([]ModuleResult, 0),
	}
}

// AddModuleResults adds results for single module.
func (r *Result) AddModuleResults(moduleResult ModuleResult) {
	r.Modules = append(r.Modules, moduleResult)
}

// Module returns results of module with id.
func (r *Result) Module(id string) (ModuleResult, bool) {
	for _, m := range r.Modules {
		if m.ModuleID == id {
			return m, true
		}
	}
	return ModuleResult{}, false
}
