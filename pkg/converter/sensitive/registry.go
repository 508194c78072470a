package sensitive

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"go.uber.org/multierr"

	"github.com/yaptide/geobridge/pkg/converter"
	"github.com/yaptide/geobridge/pkg/converter/bridge"
	conflog "github.com/yaptide/geobridge/pkg/converter/log"
	"github.com/yaptide/geobridge/pkg/converter/engine"
	"github.com/yaptide/geobridge/pkg/converter/setup"
)

var log = conflog.NamedLogger("sensitive")

// Registry errors.
var (
	ErrDuplicateSensitive = errors.New("volume is sensitive to more than one module")
	ErrAlreadyAttached    = errors.New("sensitive detectors already attached")
	ErrNotAttached        = errors.New("sensitive detectors not attached")
)

// Registration associates a converted volume with a module.
type Registration struct {
	Module   string
	Volume   *engine.LogicalVolume
	VolumeID setup.VolumeID
}

// Registry collects detector modules and attaches their detectors to converted
// volumes. It implements bridge.Attacher.
type Registry struct {
	log logrus.FieldLogger

	modules       []Module
	moduleIDs     map[string]struct{}
	registrations map[string][]Registration
	skipped       map[string][]string
	detectors     map[string]*SensitiveDetector
	attached      bool
}

// NewRegistry creates empty registry. Package logger is used if logger is nil.
func NewRegistry(logger logrus.FieldLogger) *Registry {
	if logger == nil {
		logger = log
	}
	return &Registry{
		log:           logger,
		moduleIDs:     map[string]struct{}{},
		registrations: map[string][]Registration{},
		skipped:       map[string][]string{},
		detectors:     map[string]*SensitiveDetector{},
	}
}

// RegisterModule adds module. Modules are attached in registration order.
func (r *Registry) RegisterModule(module Module) error {
	if r.attached {
		return ErrAlreadyAttached
	}
	if module == nil {
		return errors.New("nil module")
	}
	id := module.ID()
	if id == "" {
		return errors.New("module without ID")
	}
	if _, found := r.moduleIDs[id]; found {
		return converter.ModuleError(id, "module registered twice")
	}
	r.moduleIDs[id] = struct{}{}
	r.modules = append(r.modules, module)
	return nil
}

type plannedModule struct {
	module        Module
	detector      *SensitiveDetector
	registrations []Registration
	skipped       []string
}

// AttachAll resolves declared volume names against tables and attaches one
// detector per module to every resolved volume. Names that can't be resolved
// are skipped with a warning. Nothing is attached if any volume is claimed by
// more than one module.
func (r *Registry) AttachAll(tables *bridge.Tables) error {
	if r.attached {
		return ErrAlreadyAttached
	}
	if tables == nil {
		return errors.New("nil conversion tables")
	}

	plan, err := r.plan(tables)
	if err != nil {
		return err
	}

	for _, p := range plan {
		for _, reg := range p.registrations {
			reg.Volume.SetSensitiveDetector(p.detector)
		}
		id := p.module.ID()
		r.registrations[id] = p.registrations
		r.skipped[id] = p.skipped
		if p.detector != nil {
			r.detectors[id] = p.detector
			r.log.WithField("module", id).Infof("Attached to %d volumes", len(p.registrations))
		}
	}
	r.attached = true
	return nil
}

func (r *Registry) plan(tables *bridge.Tables) ([]plannedModule, error) {
	owners := map[*engine.LogicalVolume]string{}
	plan := make([]plannedModule, 0, len(r.modules))
	var err error

	for _, module := range r.modules {
		id := module.ID()
		logger := r.log.WithField("module", id)
		p := plannedModule{module: module}
		seen := map[string]struct{}{}

		for _, name := range module.SensitiveVolumes() {
			if _, found := seen[name]; found {
				continue
			}
			seen[name] = struct{}{}

			lv, found := tables.VolumeByName(name)
			if !found {
				logger.Warnf("Sensitive volume %q not found, skipped", name)
				p.skipped = append(p.skipped, name)
				continue
			}
			if owner, found := owners[lv]; found && owner != id {
				err = multierr.Append(err, converter.ModuleError(
					id, "%w: %q is already claimed by module %q", ErrDuplicateSensitive, name, owner,
				))
				continue
			}
			if lv.SensitiveDetector() != nil {
				err = multierr.Append(err, converter.ModuleError(
					id, "%w: %q already has a detector attached", ErrDuplicateSensitive, name,
				))
				continue
			}
			volumeID, found := tables.VolumeID(lv)
			if !found {
				err = multierr.Append(err, converter.ModuleError(id, "volume %q has no source ID", name))
				continue
			}
			owners[lv] = id
			p.registrations = append(p.registrations, Registration{Module: id, Volume: lv, VolumeID: volumeID})
		}

		if len(p.registrations) == 0 {
			logger.Warn("No sensitive volumes resolved")
		} else {
			processor := module.NewHitProcessor()
			if processor == nil {
				err = multierr.Append(err, converter.ModuleError(id, "nil hit processor"))
			} else {
				p.detector = newSensitiveDetector(id, processor)
				for _, reg := range p.registrations {
					if mapErr := p.detector.mapVolume(reg.Volume, reg.VolumeID); mapErr != nil {
						err = multierr.Append(err, converter.ModuleError(id, "%v", mapErr))
					}
				}
			}
		}
		plan = append(plan, p)
	}
	if err != nil {
		return nil, err
	}
	return plan, nil
}

// Modules in registration order.
func (r *Registry) Modules() []Module {
	return r.modules
}

// Registrations of module, in declaration order.
func (r *Registry) Registrations(module string) []Registration {
	return r.registrations[module]
}

// Skipped returns names declared by module that could not be resolved.
func (r *Registry) Skipped(module string) []string {
	return r.skipped[module]
}

// Detector returns shared detector of module.
func (r *Registry) Detector(module string) (*SensitiveDetector, bool) {
	sd, found := r.detectors[module]
	return sd, found
}

// IsAttached ...
func (r *Registry) IsAttached() bool {
	return r.attached
}

// WorkerAttachments creates a private set of detectors for one worker. Each
// module provides a new hit processor; volume maps and volumes are shared.
// It must be called before the worker starts stepping.
func (r *Registry) WorkerAttachments() (*WorkerAttachments, error) {
	if !r.attached {
		return nil, ErrNotAttached
	}
	w := &WorkerAttachments{
		byVolume:   map[*engine.LogicalVolume]*SensitiveDetector{},
		processors: map[string]HitProcessor{},
	}
	for _, module := range r.modules {
		id := module.ID()
		shared, found := r.detectors[id]
		if !found {
			continue
		}
		processor := module.NewHitProcessor()
		if processor == nil {
			return nil, converter.ModuleError(id, "nil hit processor")
		}
		detector := shared.withProcessor(processor)
		for _, reg := range r.registrations[id] {
			w.byVolume[reg.Volume] = detector
		}
		w.processors[id] = processor
	}
	return w, nil
}

// WorkerAttachments is the detector lookup of a single worker.
type WorkerAttachments struct {
	byVolume   map[*engine.LogicalVolume]*SensitiveDetector
	processors map[string]HitProcessor
}

// Detector implements engine.DetectorLookup.
func (w *WorkerAttachments) Detector(lv *engine.LogicalVolume) engine.SensitiveDetector {
	if sd, found := w.byVolume[lv]; found {
		return sd
	}
	return nil
}

// Processor returns the private hit processor of module.
func (w *WorkerAttachments) Processor(module string) (HitProcessor, bool) {
	p, found := w.processors[module]
	return p, found
}

func (w *WorkerAttachments) String() string {
	return fmt.Sprintf("WorkerAttachments{modules: %d, volumes: %d}", len(w.processors), len(w.byVolume))
}
