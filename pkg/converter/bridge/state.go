package bridge

// State of the Converter. States only move forward.
type State int

// Converter states in the order they are reached.
const (
	StateUnbuilt State = iota
	StateMaterialsConverted
	StateVolumesConverted
	StatePlacementsConverted
	StateSensitiveAttached
	StateClosed
)

var stateNames = map[State]string{
	StateUnbuilt:             "Unbuilt",
	StateMaterialsConverted:  "MaterialsConverted",
	StateVolumesConverted:    "VolumesConverted",
	StatePlacementsConverted: "PlacementsConverted",
	StateSensitiveAttached:   "SensitiveAttached",
	StateClosed:              "Closed",
}

func (s State) String() string {
	if name, found := stateNames[s]; found {
		return name
	}
	return "Unknown"
}

// readOnly returns true once tables must not grow anymore.
func (s State) readOnly() bool {
	return s >= StatePlacementsConverted
}
