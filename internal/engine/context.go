package engine

import (
	"context"
	"log/slog"

	"github.com/chgroeling/formatify/internal/cursor"
)

// Context is the state threaded through one scan.
type Context struct {
	// Values is the caller's key/value mapping. It is only read.
	Values map[string]string
	// Cursor walks the input.
	Cursor *cursor.Cursor
	// Format is the directive pending for the next key placeholder.
	Format Format

	logger *slog.Logger
}

func newContext(values map[string]string, input string, logger *slog.Logger) *Context {
	return &Context{
		Values: values,
		Cursor: cursor.New(input),
		logger: logger,
	}
}

// Lookup returns the value stored for key.
func (c *Context) Lookup(key string) (string, bool) {
	v, ok := c.Values[key]
	return v, ok
}

// Recovered returns the input consumed since the start of the current
// placeholder. Tasks use it to replay malformed placeholders verbatim.
func (c *Context) Recovered() []rune {
	s, _ := c.Cursor.SliceFromMark()
	return s
}

// LogUnresolved records a key placeholder whose key has no value.
func (c *Context) LogUnresolved(key string) {
	if !c.logger.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	c.logger.Debug("unresolved placeholder key",
		slog.String("key", key),
		slog.Int("offset", c.Cursor.Marked()),
	)
}

func (c *Context) logMalformed(reason string) {
	if !c.logger.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	c.logger.Debug("malformed placeholder",
		slog.String("reason", reason),
		slog.Int("offset", c.Cursor.Marked()),
		slog.String("text", string(c.Recovered())),
	)
}
