// Package bridge converts a closed source geometry into the engine scene graph.
//
// Every source object is converted at most once; results are memoized by
// source identity in Tables. Conversion is pull based: converting a node
// converts its volume and its mother first, so nodes may be visited in any
// order.
package bridge

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/yaptide/geobridge/pkg/converter"
	conflog "github.com/yaptide/geobridge/pkg/converter/log"
	"github.com/yaptide/geobridge/pkg/converter/engine"
	"github.com/yaptide/geobridge/pkg/converter/setup"
)

var log = conflog.NamedLogger("bridge")

var tracer = otel.Tracer("github.com/yaptide/geobridge/pkg/converter/bridge")

// Attacher attaches sensitive detectors to converted volumes.
type Attacher interface {
	AttachAll(tables *Tables) error
}

// Converter drives the conversion of one source geometry.
// It is not safe for concurrent use.
type Converter struct {
	geometry *setup.Geometry
	options  Options
	tables   *Tables
	log      logrus.FieldLogger

	state State
	err   error

	world     *engine.Placement
	worldNode *setup.Node
	assembly  *setup.Material

	attacher Attacher
	attached bool
}

// New creates converter for closed geometry.
func New(geometry *setup.Geometry, options Options) (*Converter, error) {
	if geometry == nil || !geometry.IsClosed() {
		return nil, converter.GeometryError("%w", ErrGeometryNotClosed)
	}
	if err := options.Validate(); err != nil {
		return nil, fmt.Errorf("invalid conversion options: %w", err)
	}
	return &Converter{
		geometry: geometry,
		options:  options,
		tables:   newTables(),
		log:      log,
		state:    StateUnbuilt,
		assembly: &setup.Material{Name: "Assembly", State: setup.StateGas},
	}, nil
}

// State returns current state.
func (c *Converter) State() State {
	return c.state
}

// Err returns the error which poisoned the converter, if any.
func (c *Converter) Err() error {
	return c.err
}

// Tables returns lookup tables, or nil if conversion failed.
func (c *Converter) Tables() *Tables {
	if c.err != nil {
		return nil
	}
	return c.tables
}

// World returns the root placement, or nil if it was not converted yet or
// conversion failed.
func (c *Converter) World() *engine.Placement {
	if c.err != nil {
		return nil
	}
	return c.world
}

// Geometry returns the source geometry.
func (c *Converter) Geometry() *setup.Geometry {
	return c.geometry
}

// ConvertMaterials converts every material of the geometry.
func (c *Converter) ConvertMaterials(ctx context.Context) error {
	return c.stage(ctx, "ConvertMaterials", StateUnbuilt, StateMaterialsConverted, func(span trace.Span) error {
		for _, m := range c.geometry.Materials() {
			if _, err := c.ConvertMaterial(m); err != nil {
				return err
			}
		}
		span.SetAttributes(
			attribute.Int("materials", len(c.tables.Materials())),
			attribute.Int("elements", c.tables.Elements()),
		)
		c.log.Infof("Converted %d materials", len(c.tables.Materials()))
		return nil
	})
}

// ConvertVolumes converts every volume of the geometry.
func (c *Converter) ConvertVolumes(ctx context.Context) error {
	return c.stage(ctx, "ConvertVolumes", StateMaterialsConverted, StateVolumesConverted, func(span trace.Span) error {
		for _, v := range c.geometry.Volumes() {
			if _, err := c.ConvertVolume(v); err != nil {
				return err
			}
		}
		span.SetAttributes(attribute.Int("volumes", len(c.tables.Volumes())))
		c.log.Infof("Converted %d logical volumes", len(c.tables.Volumes()))
		return nil
	})
}

// ConvertPlacements converts the node tree depth-first from the root.
func (c *Converter) ConvertPlacements(ctx context.Context) error {
	return c.stage(ctx, "ConvertPlacements", StateVolumesConverted, StatePlacementsConverted, func(span trace.Span) error {
		err := c.geometry.Walk(func(n *setup.Node, _ int) error {
			_, err := c.ConvertNode(n)
			return err
		})
		if err != nil {
			return err
		}
		if c.world == nil {
			return converter.GeometryError("no root node")
		}
		span.SetAttributes(attribute.Int("placements", len(c.tables.Placements())))
		c.log.Infof("Converted %d placements", len(c.tables.Placements()))
		return nil
	})
}

// Construct runs all conversion stages and returns the world placement.
// Repeated calls return the same world.
func (c *Converter) Construct(ctx context.Context) (*engine.Placement, error) {
	if c.err != nil {
		return nil, c.err
	}
	if c.state >= StatePlacementsConverted {
		return c.world, nil
	}
	ctx, span := tracer.Start(ctx, "Construct")
	defer span.End()

	for _, stage := range []func(context.Context) error{
		c.ConvertMaterials, c.ConvertVolumes, c.ConvertPlacements,
	} {
		if err := stage(ctx); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}
	}
	return c.world, nil
}

// ConstructSensitive attaches sensitive detectors once placements are converted.
// Repeating the call with the same attacher is a no-op; any other attacher is
// rejected once detectors are attached or the converter is closed.
func (c *Converter) ConstructSensitive(ctx context.Context, attacher Attacher) error {
	if c.err != nil {
		return c.err
	}
	if c.attached {
		if attacher != c.attacher {
			return fmt.Errorf("%w: sensitive detectors are already attached", ErrInvalidState)
		}
		return nil
	}
	if c.state == StateClosed {
		return fmt.Errorf("%w: sensitive detectors were never attached", ErrConverterClosed)
	}
	return c.stage(ctx, "ConstructSensitive", StatePlacementsConverted, StateSensitiveAttached, func(trace.Span) error {
		if attacher != nil {
			if err := attacher.AttachAll(c.tables); err != nil {
				return err
			}
		}
		c.attacher = attacher
		c.attached = true
		return nil
	})
}

// Close finishes conversion. Cached results stay available; requests for
// objects that were never converted fail with ErrConverterClosed.
func (c *Converter) Close() error {
	if c.err != nil {
		return c.err
	}
	if c.state == StateClosed {
		return nil
	}
	if c.state < StatePlacementsConverted {
		return fmt.Errorf("%w: cannot close in state %s", ErrInvalidState, c.state)
	}
	c.state = StateClosed
	return nil
}

func (c *Converter) stage(
	ctx context.Context, name string, from, to State, run func(span trace.Span) error,
) error {
	if c.err != nil {
		return c.err
	}
	if c.state >= to {
		return nil
	}
	if c.state != from {
		return fmt.Errorf("%w: %s requires state %s, converter is in %s", ErrInvalidState, name, from, c.state)
	}

	_, span := tracer.Start(ctx, name)
	defer span.End()

	if err := run(span); err != nil {
		c.fail(err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	c.log.Debugf("%s -> %s", c.state, to)
	c.state = to
	return nil
}

func (c *Converter) fail(err error) {
	if c.err == nil {
		c.log.WithError(err).Error("Conversion failed")
		c.err = err
	}
}

// admit checks whether a new object may be converted in the current state.
func (c *Converter) admit() error {
	if c.err != nil {
		return c.err
	}
	if c.state == StateClosed {
		return ErrConverterClosed
	}
	if c.state.readOnly() {
		return fmt.Errorf("%w: tables are read only in state %s", ErrInvalidState, c.state)
	}
	return nil
}
