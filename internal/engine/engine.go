// Package engine implements the placeholder grammar and the scan that feeds
// its events to a Task.
//
// Grammar:
//
//	%n                 newline
//	%%                 literal '%'
//	%(key)             value of key
//	%<(w) %<(w,trunc)  left-align the next key placeholder
//	%>(w) %>(w,trunc) %>(w,ltrunc)
//	                   right-align the next key placeholder
//
// Spaces are allowed inside the directive parentheses around the width and
// the keyword. Anything that does not parse is handed to Task.Error, which
// decides how the consumed text is recovered.
package engine

import (
	"log/slog"
	"math"
	"strconv"
)

// Engine runs scans. The zero value is not usable; create one with New.
// An Engine is immutable and safe for concurrent use.
type Engine struct {
	logger   *slog.Logger
	maxWidth int
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used to report recovered placeholders at debug level.
// A nil logger is ignored.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithMaxWidth rejects directive widths greater than n.
// Zero or a negative n disables the limit.
func WithMaxWidth(n int) Option {
	return func(e *Engine) {
		e.maxWidth = max(n, 0)
	}
}

// New creates an Engine.
func New(opts ...Option) *Engine {
	e := &Engine{
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run scans input once, feeding every event to task, and returns its result.
// A nil Engine behaves like New().
func Run[T any](e *Engine, values map[string]string, input string, task Task[T]) T {
	if e == nil {
		e = New()
	}
	s := &scanner{
		ctx:      newContext(values, input, e.logger),
		h:        task,
		maxWidth: e.maxWidth,
	}
	s.run()
	return task.Done()
}

type scanner struct {
	ctx      *Context
	h        Handler
	maxWidth int
}

func (s *scanner) run() {
	cur := s.ctx.Cursor
	for {
		r, ok := cur.Peek()
		if !ok {
			return
		}
		if r != '%' {
			cur.Next()
			s.h.ProcessChar(s.ctx, r)
			continue
		}
		cur.Mark()
		cur.Next()
		s.placeholder()
	}
}

// placeholder dispatches on the rune following '%'.
func (s *scanner) placeholder() {
	r, ok := s.ctx.Cursor.Next()
	if !ok {
		s.fail("end of input after '%'")
		return
	}

	switch r {
	case '(':
		s.keyPlaceholder()
	case '<':
		s.directive(false)
	case '>':
		s.directive(true)
	case 'n':
		s.h.ProcessCharPlaceholder(s.ctx, '\n')
	case '%':
		s.h.ProcessCharPlaceholder(s.ctx, '%')
	default:
		s.fail("unsupported placeholder")
	}
}

// keyPlaceholder parses the rest of %(key). The pending format is consumed
// whatever the outcome.
func (s *scanner) keyPlaceholder() {
	defer func() { s.ctx.Format = Format{} }()

	key, ok := s.gather(isKeyRune)
	if !ok {
		s.fail("unterminated key")
		return
	}
	if !s.accept(')') {
		s.fail("unexpected character in key")
		return
	}

	s.h.ProcessStrPlaceholder(s.ctx, key)
}

// directive parses the rest of %<(...) or %>(...).
func (s *scanner) directive(right bool) {
	if !s.accept('(') {
		s.fail("expected '(' after alignment")
		return
	}
	s.skipSpaces()

	width, ok := s.width()
	if !ok {
		s.fail("invalid width")
		return
	}
	s.skipSpaces()

	if !s.accept(',') {
		if !s.accept(')') {
			s.fail("expected ')' after width")
			return
		}
		align := AlignLeft
		if right {
			align = AlignRight
		}
		s.ctx.Format = Format{Align: align, Width: width}
		return
	}

	s.skipSpaces()
	keyword, ok := s.gather(isKeyRune)
	if !ok {
		s.fail("unterminated truncation keyword")
		return
	}
	s.skipSpaces()
	if !s.accept(')') {
		s.fail("expected ')' after truncation keyword")
		return
	}

	align, ok := truncation(keyword, right)
	if !ok {
		s.fail("unknown truncation keyword")
		return
	}
	s.ctx.Format = Format{Align: align, Width: width}
}

func truncation(keyword string, right bool) (Align, bool) {
	switch {
	case keyword == "trunc" && right:
		return AlignRightTrunc, true
	case keyword == "trunc":
		return AlignLeftTrunc, true
	case keyword == "ltrunc" && right:
		return AlignRightLTrunc, true
	}
	return AlignNone, false
}

// width parses a decimal without sign or leading zero that fits in 32 bits.
func (s *scanner) width() (int, bool) {
	r, ok := s.ctx.Cursor.Peek()
	if !ok || r < '1' || r > '9' {
		return 0, false
	}

	digits, _ := s.gather(isDigit)
	n, err := strconv.ParseUint(digits, 10, 32)
	if err != nil || n > math.MaxInt {
		return 0, false
	}
	if s.maxWidth > 0 && n > uint64(s.maxWidth) {
		return 0, false
	}
	return int(n), true
}

// gather consumes the maximal run of runes matching pred. The boolean is
// false if the input ended before a non-matching rune was seen.
func (s *scanner) gather(pred func(rune) bool) (string, bool) {
	var run []rune
	for {
		r, ok := s.ctx.Cursor.Peek()
		if !ok {
			return string(run), false
		}
		if !pred(r) {
			return string(run), true
		}
		run = append(run, r)
		s.ctx.Cursor.Next()
	}
}

// accept consumes the next rune if it equals want.
func (s *scanner) accept(want rune) bool {
	r, ok := s.ctx.Cursor.Peek()
	if !ok || r != want {
		return false
	}
	s.ctx.Cursor.Next()
	return true
}

func (s *scanner) skipSpaces() {
	for s.accept(' ') {
	}
}

func (s *scanner) fail(reason string) {
	s.ctx.logMalformed(reason)
	s.h.Error(s.ctx)
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func isKeyRune(r rune) bool {
	switch {
	case r >= '0' && r <= '9', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		return true
	}
	switch r {
	case '_', '+', '*', '/', 'ä', 'ö', 'ü', 'ß', '?':
		return true
	}
	return false
}
