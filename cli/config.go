package cli

import (
	"github.com/spf13/cobra"

	"github.com/yaptide/geobridge/config"
	conflog "github.com/yaptide/geobridge/pkg/converter/log"
)

// settings combine environment config with command line flags. Flags win.
type settings struct {
	conf config.Config

	geometryPath string
	modulesPath  string
	stepsPath    string

	loggingLevel string
	minDensity   float64
	workers      int
	catalog      string
}

func (s *settings) bindFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.StringVarP(&s.geometryPath, "geometry", "g", "", "geometry document (json, yaml or toml)")
	flags.StringVarP(&s.modulesPath, "modules", "m", "", "detector modules document")
	flags.StringVar(&s.loggingLevel, "logging-level", "", "logging level, one of: "+conflog.AvailableLoggingLevels)
	flags.Float64Var(&s.minDensity, "min-density", 0, "density in g/cm3 below which materials become placeholder gas")
	flags.IntVar(&s.workers, "workers", 0, "number of replay workers")
	flags.StringVar(&s.catalog, "catalog", "", "path of SQLite volume catalog")
	_ = cmd.MarkPersistentFlagRequired("geometry")
}

func (s *settings) load(cmd *cobra.Command) error {
	conf, err := config.Read()
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("logging-level") {
		conf.LoggingLevel = s.loggingLevel
	}
	if flags.Changed("min-density") {
		conf.MinDensity = s.minDensity
	}
	if flags.Changed("workers") {
		conf.Workers = s.workers
	}
	if flags.Changed("catalog") {
		conf.Catalog = s.catalog
	}
	if err := conf.Check(); err != nil {
		return err
	}
	if err := conflog.SetLevel(conf.LoggingLevel); err != nil {
		return err
	}
	log.Debugf("Config: %#v", conf)
	s.conf = conf
	return nil
}
