// Package utils contains decoding helpers shared by the document loaders.
package utils

import (
	"encoding/json"
	"fmt"
	"reflect"
)

// TypeBasedUnmarshallJSON decodes data into the type registered under its "type" field.
// typeMapping constructors must return pointers; the pointed-to value is returned.
func TypeBasedUnmarshallJSON(
	data []byte, typeMapping map[string]func() interface{},
) (interface{}, error) {
	var raw struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	create, knownType := typeMapping[raw.Type]
	if !knownType {
		return nil, fmt.Errorf("unknown type %q", raw.Type)
	}
	value := create()
	if err := json.Unmarshal(data, value); err != nil {
		return nil, err
	}
	reflectValue := reflect.ValueOf(value)
	if reflectValue.Kind() != reflect.Ptr {
		return nil, fmt.Errorf("invalid input type %T", value)
	}
	return reflectValue.Elem().Interface(), nil
}
