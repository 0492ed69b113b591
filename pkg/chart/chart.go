package chart

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/dropline/pkg/errors"
	"github.com/matzehuels/dropline/pkg/pedigree/gedcom"
)

// =============================================================================
// Chart Serialization API
// =============================================================================

// MarshalChart converts a chart to indented JSON bytes.
func MarshalChart(c Chart) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteChart(c, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteChart writes a chart as JSON to an io.Writer.
func WriteChart(c Chart, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteChartFile writes a chart to a JSON file.
// The file is created with 0644 permissions.
func WriteChartFile(c Chart, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteChart(c, f)
}

// ReadChart decodes a JSON chart. Malformed JSON is an INVALID_FORMAT error.
func ReadChart(r io.Reader) (Chart, error) {
	var c Chart
	if err := json.NewDecoder(r).Decode(&c); err != nil {
		return Chart{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode chart")
	}
	return c, nil
}

// ReadChartYAML decodes a YAML chart. Keys are the same as in the JSON
// format. Malformed YAML is an INVALID_FORMAT error.
func ReadChartYAML(r io.Reader) (Chart, error) {
	var c Chart
	if err := yaml.NewDecoder(r).Decode(&c); err != nil {
		return Chart{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode chart")
	}
	return c, nil
}

// UnmarshalChart deserializes JSON bytes to a Chart.
func UnmarshalChart(data []byte) (Chart, error) {
	return ReadChart(bytes.NewReader(data))
}

// ReadChartFile reads a chart file, choosing the format by extension: .json
// for the native format, .yaml or .yml for its YAML form, .ged or .gedcom
// for GEDCOM. The logger receives
// GEDCOM warnings and may be nil.
func ReadChartFile(path string, logger *log.Logger) (Chart, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Chart{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return Chart{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return ReadChart(f)
	case ".yaml", ".yml":
		return ReadChartYAML(f)
	case ".ged", ".gedcom":
		pop, err := gedcom.Read(f, logger)
		if err != nil {
			return Chart{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "read %s", path)
		}
		return FromPopulation(pop), nil
	default:
		return Chart{}, errors.New(errors.ErrCodeUnsupported, "unsupported chart file %q (want .json, .yaml, .ged or .gedcom)", filepath.Base(path))
	}
}
