// Package source turns metadata files into the loosely typed values the
// metadata package validates, and writes output mappings back as YAML or
// JSON.
package source

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Format names a document serialization.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// ParseFormat resolves a format name ("yml" is accepted for YAML).
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("unknown format %q (expected yaml or json)", name)
}

// FormatFromPath picks the format by file extension; anything but .json is
// read as YAML.
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// Decode reads one document in the given format.
func Decode(r io.Reader, f Format) (any, error) {
	switch f {
	case FormatJSON:
		return DecodeJSON(r)
	case FormatYAML, "":
		return DecodeYAML(r)
	}
	return nil, fmt.Errorf("unsupported format %q", f)
}

// ReadFile decodes the file at path, choosing the format by extension.
func ReadFile(path string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	v, err := Decode(bytes.NewReader(data), FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return v, nil
}
