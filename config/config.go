// Package config provides geobridge configuration read from the environment.
package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"

	"github.com/yaptide/geobridge/pkg/converter/bridge"
)

// Config represent geobridge configuration.
type Config struct {
	LoggingLevel string `env:"GEOBRIDGE_LOGGING_LEVEL" envDefault:"info"`

	// MinDensity in g/cm³, lighter materials are converted to placeholder gas.
	MinDensity float64 `env:"GEOBRIDGE_MIN_DENSITY" envDefault:"1e-25"`
	// PlaceholderZ and PlaceholderA (g/mole) describe the placeholder element.
	PlaceholderZ float64 `env:"GEOBRIDGE_PLACEHOLDER_Z" envDefault:"1"`
	PlaceholderA float64 `env:"GEOBRIDGE_PLACEHOLDER_A" envDefault:"1.01"`
	// PlaceholderPressure in pascal.
	PlaceholderPressure float64 `env:"GEOBRIDGE_PLACEHOLDER_PRESSURE" envDefault:"3e-18"`

	Workers int `env:"GEOBRIDGE_WORKERS" envDefault:"1"`
	// Catalog is the path of SQLite volume catalog. Empty disables export.
	Catalog string `env:"GEOBRIDGE_CATALOG"`
}

// Read config from the process environment.
func Read() (Config, error) {
	return read(env.Options{})
}

// ReadEnvironment reads config from environment given as a map.
func ReadEnvironment(environment map[string]string) (Config, error) {
	return read(env.Options{Environment: environment})
}

func read(options env.Options) (Config, error) {
	conf := Config{}
	if err := env.ParseWithOptions(&conf, options); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	conf.LoggingLevel = strings.ToLower(conf.LoggingLevel)
	if err := checkConfig(&conf); err != nil {
		return Config{}, err
	}
	return conf, nil
}

// ConverterOptions returns conversion options described by config.
func (c Config) ConverterOptions() bridge.Options {
	options := bridge.DefaultOptions()
	options.MinDensity = c.MinDensity
	options.Placeholder.Z = c.PlaceholderZ
	options.Placeholder.A = c.PlaceholderA
	options.Placeholder.Pressure = c.PlaceholderPressure
	return options
}
