// Package errors provides a structured error type hierarchy for the formatify CLI.
//
// The template engine itself never fails; these errors cover everything
// around it: reading templates, loading value files, configuration and
// strict rendering.
//
// # Error Types
//
// Base errors (sentinel errors):
//   - ErrNotFound - file or key not found
//   - ErrInvalid - validation failed
//   - ErrIO - file I/O error
//   - ErrTooLarge - input exceeds a configured limit
//   - ErrMissing - template references keys without values
//   - ErrCanceled - user canceled operation
//
// Wrapped error types (add context):
//   - TemplateError{Op, Path, Err} - template source errors
//   - ValuesError{Path, Key, Err} - value source errors
//   - ConfigError{Path, Err} - configuration errors
//
// # Usage
//
//	// Use sentinel errors directly
//	return errors.ErrNotFound
//
//	// Wrap with context using Wrap
//	return errors.Wrap(err, "render")
//
//	// Use structured error types
//	return &errors.ValuesError{Path: "values.yaml", Key: "tags", Err: errors.ErrInvalid}
//
//	// Check error types
//	if errors.IsNotFound(err) {
//	    // handle not found
//	}
package errors

import (
	"errors"
	"fmt"
)

// Base error types (sentinel errors).
var (
	// ErrNotFound indicates a file or key was not found.
	ErrNotFound = baseError("not found")

	// ErrInvalid indicates validation failed.
	ErrInvalid = baseError("invalid")

	// ErrIO indicates a file I/O error.
	ErrIO = baseError("I/O error")

	// ErrTooLarge indicates an input exceeds a configured limit.
	ErrTooLarge = baseError("too large")

	// ErrMissing indicates a template references keys without values.
	ErrMissing = baseError("missing values")

	// ErrCanceled indicates the user canceled an operation.
	ErrCanceled = baseError("canceled")
)

// baseError is a string that implements error.
type baseError string

func (e baseError) Error() string { return string(e) }

// TemplateError represents an error that occurred while obtaining a template.
type TemplateError struct {
	// Op is the operation being performed (e.g., "read", "render").
	Op string
	// Path is the template file path; empty for stdin or arguments.
	Path string
	// Err is the underlying error.
	Err error
}

func (e *TemplateError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("template %s %q: %s", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("template %s: %s", e.Op, e.Err)
}

func (e *TemplateError) Unwrap() error { return e.Err }

// ValuesError represents an error that occurred while loading values.
type ValuesError struct {
	// Path is the value file path (optional).
	Path string
	// Key is the offending key (optional).
	Key string
	// Err is the underlying error.
	Err error
}

func (e *ValuesError) Error() string {
	switch {
	case e.Path != "" && e.Key != "":
		return fmt.Sprintf("values %s: key %q: %s", e.Path, e.Key, e.Err)
	case e.Path != "":
		return fmt.Sprintf("values %s: %s", e.Path, e.Err)
	case e.Key != "":
		return fmt.Sprintf("values: key %q: %s", e.Key, e.Err)
	}
	return fmt.Sprintf("values: %s", e.Err)
}

func (e *ValuesError) Unwrap() error { return e.Err }

// ConfigError represents an error related to configuration.
type ConfigError struct {
	// Path is the configuration file path (optional).
	Path string
	// Err is the underlying error.
	Err error
}

func (e *ConfigError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("config %s: %s", e.Path, e.Err)
	}
	return fmt.Sprintf("config: %s", e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// Wrap adds context to an error by wrapping it with an operation name.
// The returned error implements Unwrap() allowing errors.Is and errors.As
// to work with the wrapped error. Wrap returns nil if err is nil.
func Wrap(err error, op string) error {
	if err == nil {
		return nil
	}
	return &wrappedError{op: op, err: err}
}

// wrappedError is an error with an operation context.
type wrappedError struct {
	op  string
	err error
}

func (e *wrappedError) Error() string { return fmt.Sprintf("%s: %s", e.op, e.err) }
func (e *wrappedError) Unwrap() error { return e.err }

// IsNotFound reports whether err is or wraps ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsInvalid reports whether err is or wraps ErrInvalid.
func IsInvalid(err error) bool {
	return errors.Is(err, ErrInvalid)
}

// IsIO reports whether err is or wraps ErrIO.
func IsIO(err error) bool {
	return errors.Is(err, ErrIO)
}

// IsTooLarge reports whether err is or wraps ErrTooLarge.
func IsTooLarge(err error) bool {
	return errors.Is(err, ErrTooLarge)
}

// IsMissing reports whether err is or wraps ErrMissing.
func IsMissing(err error) bool {
	return errors.Is(err, ErrMissing)
}

// IsCanceled reports whether err is or wraps ErrCanceled.
func IsCanceled(err error) bool {
	return errors.Is(err, ErrCanceled)
}

// AsTemplateError reports whether err can be typed as a *TemplateError.
func AsTemplateError(err error) (*TemplateError, bool) {
	var te *TemplateError
	if errors.As(err, &te) {
		return te, true
	}
	return nil, false
}

// AsValuesError reports whether err can be typed as a *ValuesError.
func AsValuesError(err error) (*ValuesError, bool) {
	var ve *ValuesError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// AsConfigError reports whether err can be typed as a *ConfigError.
func AsConfigError(err error) (*ConfigError, bool) {
	var ce *ConfigError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}
