package engine

import "strings"

// Replace substitutes key placeholders with their formatted values.
// Malformed placeholders and unknown keys are copied to the output verbatim.
type Replace struct {
	out strings.Builder
}

// NewReplace creates a Replace task.
func NewReplace() *Replace {
	return &Replace{}
}

func (t *Replace) Error(ctx *Context) {
	for _, r := range ctx.Recovered() {
		t.out.WriteRune(r)
	}
}

func (t *Replace) ProcessChar(_ *Context, r rune) {
	t.out.WriteRune(r)
}

func (t *Replace) ProcessCharPlaceholder(_ *Context, r rune) {
	t.out.WriteRune(r)
}

func (t *Replace) ProcessStrPlaceholder(ctx *Context, key string) {
	value, ok := ctx.Lookup(key)
	if !ok {
		ctx.LogUnresolved(key)
		t.Error(ctx)
		return
	}
	t.out.WriteString(ctx.Format.Render(value))
}

// Done returns the rendered text.
func (t *Replace) Done() string {
	return t.out.String()
}
