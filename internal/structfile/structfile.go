// Package structfile reads and writes frame structures as JSON, YAML or
// Excel workbooks.
package structfile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexiusacademia/goframe/internal/frame"
	"github.com/alexiusacademia/goframe/internal/model"
	"gopkg.in/yaml.v3"
)

// Format is a structure file encoding
type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
	XLSX Format = "xlsx"
)

// FormatFromPath picks the format from a file extension
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return JSON, nil
	case ".yaml", ".yml":
		return YAML, nil
	case ".xlsx":
		return XLSX, nil
	}
	return "", fmt.Errorf("unsupported structure file %q (use .json, .yaml, .yml or .xlsx)", path)
}

// LoadFromFile loads a structure definition from a file
func LoadFromFile(path string) (frame.Structure, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return frame.Structure{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return frame.Structure{}, err
	}
	s, err := Parse(data, format)
	if err != nil {
		return frame.Structure{}, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse decodes a structure and normalizes it through the editable model,
// so a repeated support or load on a node keeps only the first entry.
// The result is validated.
func Parse(data []byte, format Format) (frame.Structure, error) {
	var s frame.Structure
	var err error

	switch format {
	case JSON:
		err = json.Unmarshal(data, &s)
	case YAML:
		err = yaml.Unmarshal(data, &s)
	case XLSX:
		s, err = readWorkbook(bytes.NewReader(data))
	default:
		err = fmt.Errorf("unsupported format %q", format)
	}
	if err != nil {
		return frame.Structure{}, err
	}

	return Normalize(s)
}

// Normalize replays s through the editable model and validates the result
func Normalize(s frame.Structure) (frame.Structure, error) {
	m, err := model.FromStructure(s)
	if err != nil {
		return frame.Structure{}, err
	}
	out := m.Snapshot()
	if err := out.Validate(); err != nil {
		return frame.Structure{}, err
	}
	return out, nil
}

// Marshal encodes a structure in the given format
func Marshal(s frame.Structure, format Format) ([]byte, error) {
	switch format {
	case JSON:
		data, err := json.MarshalIndent(s, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	case YAML:
		return yaml.Marshal(s)
	case XLSX:
		var buf bytes.Buffer
		if err := writeWorkbook(&buf, s); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
	return nil, fmt.Errorf("unsupported format %q", format)
}

// SaveToFile writes a structure in the format implied by the file extension
func SaveToFile(path string, s frame.Structure) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	data, err := Marshal(s, format)
	if err != nil {
		return err
	}

	// Create directory if needed
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0644)
}

// Template returns a small cantilever with tagged loads, used as a starting
// point for new structure files
func Template() frame.Structure {
	return frame.Structure{
		Nodes: []frame.Node{
			{ID: "A", X: 0, Y: 0},
			{ID: "B", X: 4, Y: 0},
		},
		Members: []frame.Member{
			{ID: "M1", StartNodeID: "A", EndNodeID: "B"},
		},
		Supports: []frame.Support{
			{ID: "S1", NodeID: "A", Type: frame.Fixed},
		},
		PointLoads: []frame.PointLoad{
			{ID: "P1", NodeID: "B", Fx: 0, Fy: -10, Case: "D"},
		},
		MomentLoads: []frame.MomentLoad{},
	}
}
