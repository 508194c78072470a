// Package engine implements the transport engine side of the scene graph:
// materials, solids, logical volumes and placements expressed in engine units.
package engine

// Internal units. Length is measured in millimeters, energy in MeV, time in
// nanoseconds and charge in positron charges; everything else is derived.
const (
	Millimeter = 1.0
	Centimeter = 10 * Millimeter
	Meter      = 1000 * Millimeter

	Nanosecond = 1.0
	Second     = 1e9 * Nanosecond

	MeV = 1.0
	EV  = 1e-6 * MeV

	Kelvin = 1.0
	Mole   = 1.0

	elementaryChargeSI = 1.602176634e-19

	Joule    = EV / elementaryChargeSI
	Kilogram = Joule * Second * Second / (Meter * Meter)
	Gram     = 1e-3 * Kilogram
	Newton   = Joule / Meter
	Pascal   = Newton / (Meter * Meter)

	Atmosphere = 101325 * Pascal

	Centimeter3 = Centimeter * Centimeter * Centimeter
	GramPerCm3  = Gram / Centimeter3
	GramPerMole = Gram / Mole
)

// Reference conditions.
const (
	UniverseMeanDensity = 1e-25 * GramPerCm3
	STPTemperature      = 273.15 * Kelvin
	STPPressure         = Atmosphere
)
