// Package values builds the key/value mapping a template is rendered against.
//
// Values come from files (YAML, TOML, JSON, dotenv), from the environment
// and from key=value assignments. Structured files may nest maps; nested
// keys are joined with "/", which is a valid placeholder key character:
//
//	user:
//	  name: Alice      # %(user/name)
//
// Scalars are converted to their usual text form. Lists are rejected since
// a placeholder substitutes a single value.
package values

import (
	"fmt"
	"maps"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"

	fmterrors "github.com/chgroeling/formatify/internal/errors"
)

// Separator joins the keys of nested maps.
const Separator = "/"

// Sources lists where values come from. Later sources override earlier
// ones: Files in order, then the environment, then Assignments.
type Sources struct {
	// Files are value files, decoded by extension.
	Files []string

	// EnvPrefix imports environment variables starting with the prefix,
	// with the prefix removed. Empty disables the import.
	EnvPrefix string

	// Environ is the environment consulted for EnvPrefix, in os.Environ form.
	Environ []string

	// Assignments are key=value strings.
	Assignments []string
}

// Load reads and merges every source.
func Load(src Sources) (map[string]string, error) {
	layers := make([]map[string]string, 0, len(src.Files)+2)

	for _, path := range src.Files {
		m, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		layers = append(layers, m)
	}

	if src.EnvPrefix != "" {
		layers = append(layers, FromEnv(src.EnvPrefix, src.Environ))
	}

	assigned, err := ParseAssignments(src.Assignments)
	if err != nil {
		return nil, err
	}
	layers = append(layers, assigned)

	return Merge(layers...), nil
}

// Merge combines maps into a new map. Keys in later maps win.
func Merge(layers ...map[string]string) map[string]string {
	out := make(map[string]string)
	for _, m := range layers {
		maps.Copy(out, m)
	}
	return out
}

// ParseAssignments parses "key=value" strings. The value may be empty and
// may itself contain '='.
func ParseAssignments(assignments []string) (map[string]string, error) {
	out := make(map[string]string, len(assignments))
	for _, a := range assignments {
		key, value, ok := strings.Cut(a, "=")
		if !ok {
			return nil, &fmterrors.ValuesError{Key: a, Err: fmt.Errorf("%w: expected key=value", fmterrors.ErrInvalid)}
		}
		if key == "" {
			return nil, &fmterrors.ValuesError{Err: fmt.Errorf("%w: empty key in %q", fmterrors.ErrInvalid, a)}
		}
		out[key] = value
	}
	return out, nil
}

// FromEnv returns the variables in environ whose name starts with prefix,
// keyed by the remainder of the name. A variable equal to the bare prefix
// is skipped.
func FromEnv(prefix string, environ []string) map[string]string {
	out := make(map[string]string)
	for _, kv := range environ {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(name, prefix) {
			continue
		}
		if key := strings.TrimPrefix(name, prefix); key != "" {
			out[key] = value
		}
	}
	return out
}

// NormalizeNFC returns a copy of m with keys and values in Unicode NFC.
func NormalizeNFC(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[norm.NFC.String(k)] = norm.NFC.String(v)
	}
	return out
}

// Flatten converts a decoded document into a flat mapping. Nested maps are
// joined with Separator. Lists yield an error wrapping ErrInvalid.
func Flatten(doc map[string]any) (map[string]string, error) {
	out := make(map[string]string)
	if err := flatten(out, "", doc); err != nil {
		return nil, err
	}
	return out, nil
}

func flatten(out map[string]string, prefix string, doc map[string]any) error {
	// Sorted so the first reported error is stable.
	keys := make([]string, 0, len(doc))
	for k := range doc {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		key := k
		if prefix != "" {
			key = prefix + Separator + k
		}

		switch v := doc[k].(type) {
		case map[string]any:
			if err := flatten(out, key, v); err != nil {
				return err
			}
		case map[any]any:
			nested := make(map[string]any, len(v))
			for nk, nv := range v {
				nested[fmt.Sprint(nk)] = nv
			}
			if err := flatten(out, key, nested); err != nil {
				return err
			}
		case []any, []map[string]any:
			return &fmterrors.ValuesError{Key: key, Err: fmt.Errorf("%w: lists are not supported", fmterrors.ErrInvalid)}
		default:
			s, err := scalar(v)
			if err != nil {
				return &fmterrors.ValuesError{Key: key, Err: err}
			}
			out[key] = s
		}
	}
	return nil
}

// scalar renders a decoded scalar as text.
func scalar(v any) (string, error) {
	switch val := v.(type) {
	case nil:
		return "", nil
	case string:
		return val, nil
	case bool:
		return strconv.FormatBool(val), nil
	case int:
		return strconv.Itoa(val), nil
	case int64:
		return strconv.FormatInt(val, 10), nil
	case uint64:
		return strconv.FormatUint(val, 10), nil
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), nil
	case time.Time:
		return val.Format(time.RFC3339), nil
	case fmt.Stringer:
		return val.String(), nil
	}
	return "", fmt.Errorf("%w: unsupported value of type %T", fmterrors.ErrInvalid, v)
}
