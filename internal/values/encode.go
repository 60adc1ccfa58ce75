package values

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	fmterrors "github.com/chgroeling/formatify/internal/errors"
)

// Unflatten is the inverse of Flatten: keys are split at Separator into
// nested maps. A key that is both a value and a parent of other keys is
// an error wrapping ErrInvalid.
func Unflatten(m map[string]string) (map[string]any, error) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	root := map[string]any{}
	for _, key := range keys {
		parts := strings.Split(key, Separator)
		node := root
		for i, part := range parts[:len(parts)-1] {
			switch child := node[part].(type) {
			case nil:
				next := map[string]any{}
				node[part] = next
				node = next
			case map[string]any:
				node = child
			default:
				return nil, &fmterrors.ValuesError{Key: key, Err: fmt.Errorf("%w: %q is already a value", fmterrors.ErrInvalid, strings.Join(parts[:i+1], Separator))}
			}
		}
		leaf := parts[len(parts)-1]
		if _, exists := node[leaf]; exists {
			return nil, &fmterrors.ValuesError{Key: key, Err: fmt.Errorf("%w: key has nested values", fmterrors.ErrInvalid)}
		}
		node[leaf] = m[key]
	}
	return root, nil
}

// Encode writes m in the given format. Structured formats nest keys at
// Separator; dotenv keeps them flat.
func Encode(format Format, m map[string]string) ([]byte, error) {
	if format == FormatDotenv {
		s, err := godotenv.Marshal(m)
		if err != nil {
			return nil, fmt.Errorf("%w: encode dotenv: %v", fmterrors.ErrInvalid, err)
		}
		if s != "" {
			s += "\n"
		}
		return []byte(s), nil
	}

	doc, err := Unflatten(m)
	if err != nil {
		return nil, err
	}

	switch format {
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return nil, fmt.Errorf("%w: encode yaml: %v", fmterrors.ErrInvalid, err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("%w: encode yaml: %v", fmterrors.ErrInvalid, err)
		}
		return buf.Bytes(), nil
	case FormatTOML:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(doc); err != nil {
			return nil, fmt.Errorf("%w: encode toml: %v", fmterrors.ErrInvalid, err)
		}
		return buf.Bytes(), nil
	case FormatJSON:
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("%w: encode json: %v", fmterrors.ErrInvalid, err)
		}
		return append(data, '\n'), nil
	}
	return nil, fmt.Errorf("%w: unknown value format %q", fmterrors.ErrInvalid, format)
}

// WriteFile writes m to path in the format given by its extension.
func WriteFile(path string, m map[string]string) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return &fmterrors.ValuesError{Path: path, Err: err}
	}

	data, err := Encode(format, m)
	if err != nil {
		if ve, ok := fmterrors.AsValuesError(err); ok {
			ve.Path = path
			return ve
		}
		return &fmterrors.ValuesError{Path: path, Err: err}
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return &fmterrors.ValuesError{Path: path, Err: fmt.Errorf("%w: %v", fmterrors.ErrIO, err)}
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return &fmterrors.ValuesError{Path: path, Err: fmt.Errorf("%w: %v", fmterrors.ErrIO, err)}
	}
	return nil
}
