package bridge

import (
	"errors"

	"go.uber.org/multierr"
)

// Placeholder describes the gas used in place of materials too light for the engine.
type Placeholder struct {
	// Atomic number of the single element.
	Z float64
	// Atomic mass in g/mole.
	A float64
	// Pressure in pascal.
	Pressure float64
	// Temperature in kelvin.
	Temperature float64
}

// Options of the conversion.
type Options struct {
	// MinDensity in g/cm³. Lighter materials are replaced by Placeholder.
	MinDensity  float64
	Placeholder Placeholder
}

// DefaultOptions mirror the engine defaults: universe mean density and
// hydrogen gas at STP temperature and near zero pressure.
func DefaultOptions() Options {
	return Options{
		MinDensity: 1e-25,
		Placeholder: Placeholder{
			Z:           1,
			A:           1.01,
			Pressure:    3e-18,
			Temperature: 273.15,
		},
	}
}

// Validate returns all problems with options.
func (o Options) Validate() error {
	var err error
	if o.MinDensity <= 0 {
		err = multierr.Append(err, errors.New("min density must be positive"))
	}
	if o.Placeholder.Z < 1 {
		err = multierr.Append(err, errors.New("placeholder Z must be at least 1"))
	}
	if o.Placeholder.A <= 0 {
		err = multierr.Append(err, errors.New("placeholder A must be positive"))
	}
	if o.Placeholder.Pressure < 0 {
		err = multierr.Append(err, errors.New("placeholder pressure can't be negative"))
	}
	if o.Placeholder.Temperature <= 0 {
		err = multierr.Append(err, errors.New("placeholder temperature must be positive"))
	}
	return err
}
