package schema

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Parse decodes a JSON or YAML questionnaire document, applies defaults,
// indexes fields, and validates the result. JSON is attempted first; YAML is
// the fallback so either format can be handed in without a hint.
func Parse(data []byte, source string) (*Schema, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyDocument, source)
	}

	var doc Schema
	if err := json.Unmarshal(data, &doc); err != nil {
		doc = Schema{}
		if yerr := yaml.Unmarshal(data, &doc); yerr != nil {
			return nil, fmt.Errorf("schema: parse %s: invalid JSON or YAML: %w", source, yerr)
		}
	}

	if err := doc.Normalize(); err != nil {
		return nil, fmt.Errorf("schema: %s: %w", source, err)
	}
	return &doc, nil
}

// LoadFile reads and parses a schema document from disk.
func LoadFile(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("schema: read %s: %w", path, err)
	}
	return Parse(data, path)
}

// LoadFS reads and parses the named schema document from fsys.
func LoadFS(fsys fs.FS, name string) (*Schema, error) {
	if fsys == nil {
		return nil, fmt.Errorf("schema: filesystem is nil")
	}
	if !isSchemaFile(name) {
		return nil, fmt.Errorf("schema: %s is not a .json, .yaml or .yml file", name)
	}
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("schema: read %s: %w", name, err)
	}
	return Parse(data, name)
}

func isSchemaFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
