package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/yaptide/geobridge/pkg/converter/bridge"
	"github.com/yaptide/geobridge/pkg/converter/catalog"
	"github.com/yaptide/geobridge/pkg/converter/runner"
	"github.com/yaptide/geobridge/pkg/converter/sensitive"
	"github.com/yaptide/geobridge/pkg/converter/setup"
)

type session struct {
	converter *bridge.Converter
	registry  *sensitive.Registry
}

func build(ctx context.Context, s *settings) (*session, error) {
	geometry, err := setup.LoadGeometry(s.geometryPath, nil)
	if err != nil {
		return nil, err
	}
	c, err := bridge.New(geometry, s.conf.ConverterOptions())
	if err != nil {
		return nil, err
	}
	if _, err := c.Construct(ctx); err != nil {
		return nil, err
	}

	registry := sensitive.NewRegistry(nil)
	if s.modulesPath != "" {
		modules, err := sensitive.LoadModules(s.modulesPath)
		if err != nil {
			return nil, err
		}
		for _, m := range modules {
			if err := registry.RegisterModule(m); err != nil {
				return nil, err
			}
		}
	}
	if err := c.ConstructSensitive(ctx, registry); err != nil {
		return nil, err
	}
	if err := c.Close(); err != nil {
		return nil, err
	}
	return &session{converter: c, registry: registry}, nil
}

func openCatalog(ctx context.Context, s *settings, sess *session) (*catalog.Store, error) {
	if s.conf.Catalog == "" {
		return nil, nil
	}
	store, err := catalog.Open(s.conf.Catalog)
	if err != nil {
		return nil, err
	}
	if err := store.WriteGeometry(ctx, sess.converter, sess.registry); err != nil {
		_ = store.Close()
		return nil, err
	}
	log.Infof("Catalog written to %s", s.conf.Catalog)
	return store, nil
}

func runConvert(ctx context.Context, s *settings, out io.Writer) error {
	sess, err := build(ctx, s)
	if err != nil {
		return err
	}
	store, err := openCatalog(ctx, s, sess)
	if err != nil {
		return err
	}
	if store != nil {
		defer store.Close()
	}
	return printSummary(out, sess)
}

func printSummary(out io.Writer, sess *session) error {
	tables := sess.converter.Tables()
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "world\t%s\n", sess.converter.World().Name())
	fmt.Fprintf(w, "nodes\t%d\n", len(sess.converter.Geometry().Nodes()))
	fmt.Fprintf(w, "materials\t%d\n", len(tables.Materials()))
	fmt.Fprintf(w, "volumes\t%d\n", len(tables.Volumes()))
	fmt.Fprintf(w, "placements\t%d\n", len(tables.Placements()))
	for _, m := range sess.registry.Modules() {
		fmt.Fprintf(w, "module %s\t%d sensitive, %d skipped\n",
			m.ID(), len(sess.registry.Registrations(m.ID())), len(sess.registry.Skipped(m.ID())),
		)
	}
	return w.Flush()
}

func runReplay(ctx context.Context, s *settings, out io.Writer) error {
	sess, err := build(ctx, s)
	if err != nil {
		return err
	}
	specs, err := runner.LoadSteps(s.stepsPath)
	if err != nil {
		return err
	}
	steps, err := runner.ResolveSteps(sess.converter, specs)
	if err != nil {
		return err
	}
	r, err := runner.NewRunner(sess.registry, s.conf.Workers)
	if err != nil {
		return err
	}
	log.Infof("Replaying %d steps on %d workers", len(steps), r.Workers())
	result, err := r.Run(ctx, steps)
	if err != nil {
		return err
	}

	store, err := openCatalog(ctx, s, sess)
	if err != nil {
		return err
	}
	if store != nil {
		defer store.Close()
		if err := store.WriteHits(ctx, result); err != nil {
			return err
		}
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}
