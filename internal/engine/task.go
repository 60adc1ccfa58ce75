package engine

// Handler receives the events of one scan.
type Handler interface {
	// Error is called when a placeholder cannot be parsed.
	// Context.Recovered holds the text consumed since its '%'.
	Error(ctx *Context)

	// ProcessChar receives a literal input rune.
	ProcessChar(ctx *Context, r rune)

	// ProcessCharPlaceholder receives the rune produced by %n or %%.
	ProcessCharPlaceholder(ctx *Context, r rune)

	// ProcessStrPlaceholder receives the key of a %(key) placeholder.
	// ctx.Format holds the directive that applies to it.
	ProcessStrPlaceholder(ctx *Context, key string)
}

// Task is a Handler that accumulates a result of type T.
type Task[T any] interface {
	Handler

	// Done returns the accumulated result once the input is exhausted.
	Done() T
}
