// Package specfile decodes field specification lists from YAML or JSON.
//
// A document is either a bare list of specifications or a mapping with a
// "fields" key holding that list.
package specfile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/fieldmodel/internal/domain/field"
)

// Format is a spec document encoding.
type Format string

// Supported formats.
const (
	YAML Format = "yaml"
	JSON Format = "json"
)

// FormatFromPath picks a format by file extension, defaulting to YAML.
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return JSON
	}
	return YAML
}

// LoadFile reads and decodes a spec document.
func LoadFile(path string) ([]any, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read spec file %s: %w", path, err)
	}
	return Decode(data, FormatFromPath(path))
}

// Decode parses a spec document. Entries are returned undecoded so the
// compiler can report non-mapping entries itself.
func Decode(data []byte, format Format) ([]any, error) {
	var doc any
	switch format {
	case JSON:
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse spec JSON: %w", err)
		}
	case YAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse spec YAML: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported spec format %q", format)
	}
	return fieldList(doc)
}

func fieldList(doc any) ([]any, error) {
	switch d := doc.(type) {
	case []any:
		return d, nil
	case map[string]any:
		fields, ok := d["fields"]
		if !ok {
			return nil, fmt.Errorf("spec document has no \"fields\" list")
		}
		list, ok := fields.([]any)
		if !ok {
			return nil, fmt.Errorf("spec document \"fields\" must be a list, got %T", fields)
		}
		return list, nil
	case map[any]any:
		// YAML mapping with a non-string key somewhere at the top level
		spec, _ := field.AsSpec(d)
		return fieldList(map[string]any(spec))
	case nil:
		return nil, fmt.Errorf("spec document is empty")
	default:
		return nil, fmt.Errorf("spec document must be a list or a mapping with \"fields\", got %T", doc)
	}
}
