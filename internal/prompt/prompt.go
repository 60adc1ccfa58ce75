// Package prompt asks the user for values of keys a template references
// but no value source provides.
package prompt

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/huh"

	fmterrors "github.com/chgroeling/formatify/internal/errors"
	"github.com/chgroeling/formatify/internal/placeholders"
)

// Prompter collects values for keys.
type Prompter interface {
	Prompt(keys []string) (map[string]string, error)
}

// FormPrompter asks for all keys on one huh form.
type FormPrompter struct {
	// Patterns maps a key to a regular expression its answer must match.
	Patterns map[string]string

	// Accessible renders the form line by line for screen readers and dumb terminals.
	Accessible bool

	// Input and Output default to the terminal when nil.
	Input  io.Reader
	Output io.Writer
}

var _ Prompter = (*FormPrompter)(nil)

// Prompt runs the form. With no keys it returns an empty map without
// touching the terminal. Aborting the form returns ErrCanceled.
func (p *FormPrompter) Prompt(keys []string) (map[string]string, error) {
	answers := make(map[string]string, len(keys))
	if len(keys) == 0 {
		return answers, nil
	}

	form, bound := p.form(keys)
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil, fmterrors.ErrCanceled
		}
		return nil, fmt.Errorf("form error: %w", err)
	}

	for key, v := range bound {
		answers[key] = *v
	}
	return answers, nil
}

func (p *FormPrompter) form(keys []string) (*huh.Form, map[string]*string) {
	bound := make(map[string]*string, len(keys))
	fields := make([]huh.Field, 0, len(keys))

	for _, key := range placeholders.Unique(keys) {
		v := new(string)
		bound[key] = v

		input := huh.NewInput().
			Title(key).
			Value(v)
		if pattern := p.Patterns[key]; pattern != "" {
			input = input.
				Description(fmt.Sprintf("must match %s", pattern)).
				Validate(Validator(pattern))
		}
		fields = append(fields, input)
	}

	form := huh.NewForm(huh.NewGroup(fields...)).WithAccessible(p.Accessible)
	if p.Input != nil {
		form = form.WithInput(p.Input)
	}
	if p.Output != nil {
		form = form.WithOutput(p.Output)
	}
	return form, bound
}

// Validator returns a huh validation func checking answers against pattern.
func Validator(pattern string) func(string) error {
	return func(s string) error {
		return placeholders.Validate(s, pattern)
	}
}

// Static answers from a fixed map. Keys without an entry are answered
// with the empty string.
type Static map[string]string

var _ Prompter = Static(nil)

func (s Static) Prompt(keys []string) (map[string]string, error) {
	out := make(map[string]string, len(keys))
	for _, key := range keys {
		out[key] = s[key]
	}
	return out, nil
}
