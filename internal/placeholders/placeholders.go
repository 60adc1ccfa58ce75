// Package placeholders provides checks over the keys referenced by a template:
// de-duplication, missing-value detection and value validation.
package placeholders

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// Unique returns keys without duplicates, keeping the first occurrence of each.
func Unique(keys []string) []string {
	seen := make(map[string]bool, len(keys))
	result := make([]string, 0, len(keys))

	for _, key := range keys {
		if !seen[key] {
			seen[key] = true
			result = append(result, key)
		}
	}

	return result
}

// Missing reports the keys that have no entry in values.
// Returns nil if every key is present, a *MissingError otherwise.
func Missing(keys []string, values map[string]string) error {
	var missing []string
	for _, key := range Unique(keys) {
		if _, ok := values[key]; !ok {
			missing = append(missing, key)
		}
	}

	if len(missing) > 0 {
		return &MissingError{MissingNames: missing}
	}
	return nil
}

// MissingError is returned when referenced keys have no value.
type MissingError struct {
	MissingNames []string
}

func (e *MissingError) Error() string {
	return fmt.Sprintf("missing placeholders: %s", strings.Join(e.MissingNames, ", "))
}

// Missing returns the list of missing placeholder names.
func (e *MissingError) Missing() []string {
	return e.MissingNames
}

// Validate validates a placeholder value against a regex pattern.
func Validate(value, pattern string) error {
	if pattern == "" {
		return nil // No validation
	}

	matched, err := regexp.MatchString(pattern, value)
	if err != nil {
		return fmt.Errorf("invalid regex pattern: %w", err)
	}

	if !matched {
		return fmt.Errorf("value does not match pattern %s", pattern)
	}

	return nil
}

// ValidateAll validates the values of keys against their patterns.
// Keys without a value or without a pattern are skipped.
// Returns nil if all values pass, a *ValidationError otherwise.
func ValidateAll(keys []string, values map[string]string, patterns map[string]string) error {
	var failures []Failure
	for _, key := range Unique(keys) {
		value, ok := values[key]
		if !ok {
			continue
		}
		if err := Validate(value, patterns[key]); err != nil {
			failures = append(failures, Failure{Key: key, Err: err})
		}
	}

	if len(failures) > 0 {
		return &ValidationError{Failures: failures}
	}
	return nil
}

// Failure is a single failed validation.
type Failure struct {
	Key string
	Err error
}

// ValidationError is returned when values do not match their patterns.
type ValidationError struct {
	Failures []Failure
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Key, f.Err))
	}
	return fmt.Sprintf("invalid placeholders: %s", strings.Join(parts, "; "))
}

// Keys returns the sorted keys of a mapping.
func Keys(values map[string]string) []string {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
