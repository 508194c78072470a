// Package converter contains helpers shared by all geometry conversion stages.
package converter

import (
	"fmt"
)

type makeNewGeneralErrorFuncType = func(message string, formatedValues ...interface{}) error
type makeNewNamedErrorFuncType = func(
	name interface{}, message string, formatedValues ...interface{},
) error

// GeometryError reports problems with the source geometry as a whole.
var GeometryError = makeNewGeneralErrorFunc("geometry")

// MaterialError reports a problem converting a single material.
var MaterialError = makeNewNamedErrorFunc("Material", "materials")

// VolumeError reports a problem converting a single volume.
var VolumeError = makeNewNamedErrorFunc("Volume", "volumes")

// NodeError reports a problem converting a single placement node.
var NodeError = makeNewNamedErrorFunc("Node", "placements")

// ModuleError reports a problem attaching a detector module.
var ModuleError = makeNewNamedErrorFunc("Module", "sensitive")

func makeNewGeneralErrorFunc(stage string) makeNewGeneralErrorFuncType {
	return func(message string, formatedValues ...interface{}) error {
		return fmt.Errorf("[converter] "+stage+": "+message, formatedValues...)
	}
}

func makeNewNamedErrorFunc(modelName, stage string) makeNewNamedErrorFuncType {
	return func(name interface{}, message string, formatedValues ...interface{}) error {
		header := fmt.Sprintf("[converter] %s{Name: %v} -> %s: ", modelName, name, stage)
		return fmt.Errorf(header+message, formatedValues...)
	}
}
