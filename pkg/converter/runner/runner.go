// Package runner replays recorded steps through sensitive detectors on many
// workers sharing one converted geometry.
package runner

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	conflog "github.com/yaptide/geobridge/pkg/converter/log"
	"github.com/yaptide/geobridge/pkg/converter/engine"
	"github.com/yaptide/geobridge/pkg/converter/sensitive"
)

var log = conflog.NamedLogger("runner")

var tracer = otel.Tracer("github.com/yaptide/geobridge/pkg/converter/runner")

// ErrNoWorkers error.
var ErrNoWorkers = errors.New("at least one worker is required")

type hitSource interface {
	Hits() []sensitive.Hit
}

// Runner replays steps.
type Runner struct {
	registry *sensitive.Registry
	workers  int
}

// NewRunner constructor. Detectors must be attached to registry already.
func NewRunner(registry *sensitive.Registry, workers int) (*Runner, error) {
	if workers < 1 {
		return nil, ErrNoWorkers
	}
	if registry == nil || !registry.IsAttached() {
		return nil, sensitive.ErrNotAttached
	}
	return &Runner{registry: registry, workers: workers}, nil
}

// Workers returns number of workers.
func (r *Runner) Workers() int {
	return r.workers
}

// Run dispatches steps round-robin to workers. Every worker gets its own
// detector attachments, built before any worker starts stepping.
func (r *Runner) Run(ctx context.Context, steps []*engine.Step) (Result, error) {
	ctx, span := tracer.Start(ctx, "Run")
	defer span.End()
	span.SetAttributes(attribute.Int("workers", r.workers), attribute.Int("steps", len(steps)))

	attachments := make([]*sensitive.WorkerAttachments, r.workers)
	for i := range attachments {
		a, err := r.registry.WorkerAttachments()
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return Result{}, err
		}
		log.Debugf("Worker %d: %s", i, a)
		attachments[i] = a
	}

	hits := make([]int, r.workers)
	group, ctx := errgroup.WithContext(ctx)
	for worker := 0; worker < r.workers; worker++ {
		group.Go(func() error {
			for i := worker; i < len(steps); i += r.workers {
				if err := ctx.Err(); err != nil {
					return err
				}
				if engine.Dispatch(attachments[worker], steps[i]) {
					hits[worker]++
				}
			}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Result{}, err
	}

	result := r.collect(attachments)
	total := 0
	for _, h := range hits {
		total += h
	}
	result.Metadata["workers"] = strconv.Itoa(r.workers)
	result.Metadata["steps"] = strconv.Itoa(len(steps))
	result.Metadata["hits"] = strconv.Itoa(total)
	log.Infof("Replayed %d steps on %d workers, %d hits", len(steps), r.workers, total)
	return result, nil
}

func (r *Runner) collect(attachments []*sensitive.WorkerAttachments) Result {
	result := NewEmptyResult()
	for _, module := range r.registry.Modules() {
		id := module.ID()
		moduleResult := NewModuleResult(id)
		if skipped := r.registry.Skipped(id); len(skipped) > 0 {
			moduleResult.ModuleMetadata["skipped"] = strings.Join(skipped, ",")
		}
		moduleResult.ModuleMetadata["volumes"] = strconv.Itoa(len(r.registry.Registrations(id)))

		for _, a := range attachments {
			processor, found := a.Processor(id)
			if !found {
				continue
			}
			source, ok := processor.(hitSource)
			if !ok {
				moduleResult.Errors["hits"] = "hit processor does not expose hits"
				continue
			}
			moduleResult.Hits = append(moduleResult.Hits, source.Hits()...)
		}
		sort.SliceStable(moduleResult.Hits, func(i, j int) bool {
			return moduleResult.Hits[i].TrackID < moduleResult.Hits[j].TrackID
		})
		for _, hit := range moduleResult.Hits {
			moduleResult.EnergyDeposit += hit.EnergyDeposit
		}
		result.AddModuleResults(moduleResult)
	}
	return result
}
