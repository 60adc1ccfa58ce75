// Package formatify formats strings with %-placeholders, in the spirit of
// git's pretty formats.
//
// # Placeholders
//
//	%n                 newline
//	%%                 literal '%'
//	%(key)             value of key
//	%<(width)          left-align the next %(key) to width
//	%<(width,trunc)    left-align, cut the tail with '…' if longer
//	%>(width)          right-align the next %(key) to width
//	%>(width,trunc)    right-align, cut the tail with '…' if longer
//	%>(width,ltrunc)   right-align, cut the head with '…' if longer
//
// Widths are decimal without leading zero and count Unicode scalar values,
// not bytes. An alignment directive applies to the next %(key) only.
//
// Keys are made of ASCII letters, digits and the characters _ + * / ? ä ö ü ß.
// %() refers to the empty key.
//
// Parsing never fails. A malformed placeholder, or a %(key) whose key has no
// value, is copied to the output as written.
//
// Widths up to 4294967295 are accepted and padding is allocated in full.
// The default formatter has no cap, so set WithMaxWidth when templates come
// from untrusted input.
//
// # Usage
//
//	values := map[string]string{"name": "Alice"}
//	formatify.ReplacePlaceholders(values, "Hello, %(name)!")        // "Hello, Alice!"
//	formatify.MeasureLengths(values, "Hello, %(name)! This is a test.") // [29 5]
//	formatify.ExtractPlaceholderKeys("Hello, %(name)! Today is %(day).") // [name day]
package formatify

import (
	"log/slog"

	"github.com/chgroeling/formatify/internal/engine"
	"github.com/chgroeling/formatify/internal/placeholders"
)

// PlaceholderFormatter is the set of operations offered by Formatify.
type PlaceholderFormatter interface {
	// ReplacePlaceholders returns input with every resolvable placeholder
	// replaced. Unknown keys and malformed placeholders are kept as written.
	ReplacePlaceholders(values map[string]string, input string) string

	// MeasureLengths returns the rune count of the text ReplacePlaceholders
	// would produce, followed by the rendered width of every resolved key
	// placeholder in input order.
	MeasureLengths(values map[string]string, input string) []int

	// ExtractPlaceholderKeys returns the keys of all well-formed key
	// placeholders in input order, duplicates included.
	ExtractPlaceholderKeys(input string) []string
}

// Formatify implements PlaceholderFormatter.
// It is immutable after New and safe for concurrent use.
type Formatify struct {
	engine *engine.Engine
}

var _ PlaceholderFormatter = (*Formatify)(nil)

// Option configures a Formatify.
type Option func(*options)

type options struct {
	logger   *slog.Logger
	maxWidth int
}

// WithLogger reports recovered placeholders and unresolved keys to logger
// at debug level. By default nothing is logged.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithMaxWidth treats alignment widths greater than n as malformed.
// This bounds the padding a template can request. Zero means no limit, in
// which case %<(4294967295)%(key) allocates 4 GiB of padding.
func WithMaxWidth(n int) Option {
	return func(o *options) {
		o.maxWidth = n
	}
}

// New creates a Formatify.
func New(opts ...Option) *Formatify {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	return &Formatify{
		engine: engine.New(
			engine.WithLogger(o.logger),
			engine.WithMaxWidth(o.maxWidth),
		),
	}
}

func (f *Formatify) ReplacePlaceholders(values map[string]string, input string) string {
	return engine.Run(f.engine, values, input, engine.NewReplace())
}

func (f *Formatify) MeasureLengths(values map[string]string, input string) []int {
	return engine.Run(f.engine, values, input, engine.NewMeasure())
}

func (f *Formatify) ExtractPlaceholderKeys(input string) []string {
	return engine.Run(f.engine, nil, input, engine.NewExtract())
}

// UniquePlaceholderKeys is ExtractPlaceholderKeys without duplicates,
// keeping the first occurrence of each key.
func (f *Formatify) UniquePlaceholderKeys(input string) []string {
	return placeholders.Unique(f.ExtractPlaceholderKeys(input))
}

// CheckPlaceholders reports the keys referenced by input that have no entry
// in values. It returns nil or a *MissingError.
func (f *Formatify) CheckPlaceholders(values map[string]string, input string) error {
	return placeholders.Missing(f.ExtractPlaceholderKeys(input), values)
}

// MissingError lists referenced keys without a value.
type MissingError = placeholders.MissingError

var defaultFormatter = New()

// ReplacePlaceholders calls ReplacePlaceholders on a default Formatify.
func ReplacePlaceholders(values map[string]string, input string) string {
	return defaultFormatter.ReplacePlaceholders(values, input)
}

// MeasureLengths calls MeasureLengths on a default Formatify.
func MeasureLengths(values map[string]string, input string) []int {
	return defaultFormatter.MeasureLengths(values, input)
}

// ExtractPlaceholderKeys calls ExtractPlaceholderKeys on a default Formatify.
func ExtractPlaceholderKeys(input string) []string {
	return defaultFormatter.ExtractPlaceholderKeys(input)
}

// UniquePlaceholderKeys calls UniquePlaceholderKeys on a default Formatify.
func UniquePlaceholderKeys(input string) []string {
	return defaultFormatter.UniquePlaceholderKeys(input)
}

// CheckPlaceholders calls CheckPlaceholders on a default Formatify.
func CheckPlaceholders(values map[string]string, input string) error {
	return defaultFormatter.CheckPlaceholders(values, input)
}
