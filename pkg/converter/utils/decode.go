package utils

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format of a document file.
type Format string

// Supported document formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFromPath guesses document format from file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("unsupported document extension %q", filepath.Ext(path))
	}
}

// DecodeFile reads path and decodes it into target.
func DecodeFile(path string, target interface{}) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := Decode(data, format, target); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// Decode decodes data into target. YAML and TOML documents are normalized to JSON
// first, so custom json.Unmarshaler implementations (type tagged shapes) apply
// to every format.
func Decode(data []byte, format Format, target interface{}) error {
	switch format {
	case FormatJSON:
		return json.Unmarshal(data, target)
	case FormatYAML:
		var generic interface{}
		if err := yaml.Unmarshal(data, &generic); err != nil {
			return err
		}
		return reencode(generic, target)
	case FormatTOML:
		generic := map[string]interface{}{}
		if err := toml.Unmarshal(data, &generic); err != nil {
			return err
		}
		return reencode(generic, target)
	default:
		return fmt.Errorf("unsupported document format %q", format)
	}
}

func reencode(generic interface{}, target interface{}) error {
	data, err := json.Marshal(generic)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, target)
}
