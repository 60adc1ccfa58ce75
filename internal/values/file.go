package values

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	fmterrors "github.com/chgroeling/formatify/internal/errors"
)

// Format identifies a value file format.
type Format string

const (
	FormatYAML   Format = "yaml"
	FormatTOML   Format = "toml"
	FormatJSON   Format = "json"
	FormatDotenv Format = "dotenv"
)

// FormatFromPath detects the format from the file extension.
// Supported extensions: .yaml, .yml, .toml, .json, .env
// A file named exactly ".env" is dotenv as well.
func FormatFromPath(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	case ".env":
		return FormatDotenv, nil
	}
	return "", fmt.Errorf("%w: unsupported value file extension %q", fmterrors.ErrInvalid, ext)
}

// LoadFile reads a value file, auto-detecting format by extension.
func LoadFile(path string) (map[string]string, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, &fmterrors.ValuesError{Path: path, Err: err}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &fmterrors.ValuesError{Path: path, Err: fmterrors.ErrNotFound}
		}
		return nil, &fmterrors.ValuesError{Path: path, Err: fmt.Errorf("%w: %v", fmterrors.ErrIO, err)}
	}

	m, err := Parse(format, data)
	if err != nil {
		if ve, ok := fmterrors.AsValuesError(err); ok {
			ve.Path = path
			return nil, ve
		}
		return nil, &fmterrors.ValuesError{Path: path, Err: err}
	}
	return m, nil
}

// Parse decodes data in the given format into a flat mapping.
func Parse(format Format, data []byte) (map[string]string, error) {
	switch format {
	case FormatYAML:
		return FromYAML(data)
	case FormatTOML:
		return FromTOML(data)
	case FormatJSON:
		return FromJSON(data)
	case FormatDotenv:
		return FromDotenv(data)
	}
	return nil, fmt.Errorf("%w: unknown value format %q", fmterrors.ErrInvalid, format)
}

// FromYAML parses a YAML mapping. An empty document yields no values.
func FromYAML(data []byte) (map[string]string, error) {
	var m map[string]any
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: parse yaml: %v", fmterrors.ErrInvalid, err)
	}
	return Flatten(m)
}

// FromTOML parses a TOML document.
func FromTOML(data []byte) (map[string]string, error) {
	var m map[string]any
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: parse toml: %v", fmterrors.ErrInvalid, err)
	}
	return Flatten(m)
}

// FromJSON parses a JSON object. Numbers keep their literal form.
func FromJSON(data []byte) (map[string]string, error) {
	var m map[string]any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("%w: parse json: %v", fmterrors.ErrInvalid, err)
	}
	return Flatten(m)
}

// FromDotenv parses KEY=VALUE lines with optional comments, quotes and
// "export " prefixes.
func FromDotenv(data []byte) (map[string]string, error) {
	m, err := godotenv.UnmarshalBytes(data)
	if err != nil {
		return nil, fmt.Errorf("%w: parse dotenv: %v", fmterrors.ErrInvalid, err)
	}
	return m, nil
}
