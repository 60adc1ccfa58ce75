// Package source reads templates from a command line argument, a file or
// standard input, bounded by a size limit.
package source

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/text/unicode/norm"

	fmterrors "github.com/chgroeling/formatify/internal/errors"
)

// StdinName is the name reported for templates read from standard input.
const StdinName = "<stdin>"

// Template is a template text together with where it came from.
type Template struct {
	// Text is the template itself.
	Text string
	// Path is the file the template was read from; empty for arguments and stdin.
	Path string
	// Name is Path, StdinName or "<arg>".
	Name string
}

// Request describes where to look for a template.
// At most one of Arg and File may be set; with neither, Stdin is read.
type Request struct {
	Arg    string
	HasArg bool
	File   string
	Stdin  io.Reader
	// MaxBytes bounds the template size. Zero means no limit.
	MaxBytes int
}

// Read resolves req to a template.
func Read(req Request) (Template, error) {
	switch {
	case req.HasArg && req.File != "":
		return Template{}, &fmterrors.TemplateError{Op: "read", Err: fmt.Errorf("%w: template given both as argument and --file", fmterrors.ErrInvalid)}
	case req.HasArg:
		return FromArg(req.Arg, req.MaxBytes)
	case req.File != "" && req.File != "-":
		return FromFile(req.File, req.MaxBytes)
	case req.Stdin != nil:
		return FromReader(req.Stdin, StdinName, req.MaxBytes)
	}
	return Template{}, &fmterrors.TemplateError{Op: "read", Err: fmt.Errorf("%w: no template given", fmterrors.ErrInvalid)}
}

// FromArg wraps a template passed on the command line.
func FromArg(text string, maxBytes int) (Template, error) {
	if maxBytes > 0 && len(text) > maxBytes {
		return Template{}, &fmterrors.TemplateError{Op: "read", Err: tooLarge(maxBytes)}
	}
	return Template{Text: text, Name: "<arg>"}, nil
}

// FromFile reads a template file.
func FromFile(path string, maxBytes int) (Template, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Template{}, &fmterrors.TemplateError{Op: "open", Path: path, Err: fmterrors.ErrNotFound}
		}
		return Template{}, &fmterrors.TemplateError{Op: "open", Path: path, Err: fmt.Errorf("%w: %v", fmterrors.ErrIO, err)}
	}
	defer f.Close()

	tmpl, err := FromReader(f, path, maxBytes)
	if err != nil {
		if te, ok := fmterrors.AsTemplateError(err); ok {
			te.Path = path
		}
		return Template{}, err
	}
	tmpl.Path = path
	return tmpl, nil
}

// FromReader reads a template from r, reading at most one byte past
// maxBytes to detect oversized input.
func FromReader(r io.Reader, name string, maxBytes int) (Template, error) {
	if maxBytes > 0 {
		r = io.LimitReader(r, int64(maxBytes)+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return Template{}, &fmterrors.TemplateError{Op: "read", Err: fmt.Errorf("%w: %v", fmterrors.ErrIO, err)}
	}
	if maxBytes > 0 && len(data) > maxBytes {
		return Template{}, &fmterrors.TemplateError{Op: "read", Err: tooLarge(maxBytes)}
	}
	return Template{Text: string(data), Name: name}, nil
}

func tooLarge(maxBytes int) error {
	return fmt.Errorf("%w: template exceeds %d bytes", fmterrors.ErrTooLarge, maxBytes)
}

// NormalizeNFC returns text in Unicode normalization form C, so composed
// and decomposed spellings of a character measure the same.
func NormalizeNFC(text string) string {
	return norm.NFC.String(text)
}
