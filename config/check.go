package config

import (
	"errors"
	"fmt"

	conflog "github.com/yaptide/geobridge/pkg/converter/log"
)

type checkFunc func(conf *Config) error

// Check validates config, e.g. after command line flags were applied.
func (c *Config) Check() error {
	return checkConfig(c)
}

func checkConfig(conf *Config) error {
	checkFuncs := []checkFunc{
		checkLoggingLevel,
		checkWorkers,
		checkConverterOptions,
	}

	for _, checkFunc := range checkFuncs {
		if err := checkFunc(conf); err != nil {
			return err
		}
	}

	return nil
}

func checkLoggingLevel(conf *Config) error {
	if !conflog.IsValidLevel(conf.LoggingLevel) {
		return fmt.Errorf(
			"Invalid logging level %q, expected one of: %s", conf.LoggingLevel, conflog.AvailableLoggingLevels,
		)
	}
	return nil
}

func checkWorkers(conf *Config) error {
	if conf.Workers < 1 {
		return errors.New("Invalid number of workers")
	}
	return nil
}

func checkConverterOptions(conf *Config) error {
	if err := conf.ConverterOptions().Validate(); err != nil {
		return fmt.Errorf("Invalid converter options: %w", err)
	}
	return nil
}
