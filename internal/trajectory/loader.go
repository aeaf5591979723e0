package trajectory

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format identifies the encoding of a dataset file
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks a format from the file extension
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported trajectory file extension %q", filepath.Ext(path))
	}
}

// Load reads a dataset file. An empty path loads the embedded dataset.
func Load(path string) (*Store, error) {
	if path == "" {
		return LoadDefault()
	}

	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read trajectory file: %w", err)
	}

	store, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return store, nil
}

// Parse decodes and validates a dataset
func Parse(data []byte, format Format) (*Store, error) {
	var ds Dataset
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &ds); err != nil {
			return nil, fmt.Errorf("failed to decode trajectory json: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &ds); err != nil {
			return nil, fmt.Errorf("failed to decode trajectory yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported trajectory format %q", format)
	}

	if err := ds.Validate(); err != nil {
		return nil, fmt.Errorf("invalid trajectory dataset: %w", err)
	}

	return NewStore(ds), nil
}
