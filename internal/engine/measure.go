package engine

import "unicode/utf8"

// Measure computes rendered lengths without building the output.
//
// The result starts with the rune count of the whole rendered text, followed
// by the rendered width of every resolved key placeholder in input order.
type Measure struct {
	counts []int
}

// NewMeasure creates a Measure task.
func NewMeasure() *Measure {
	return &Measure{counts: []int{0}}
}

func (t *Measure) Error(ctx *Context) {
	t.counts[0] += len(ctx.Recovered())
}

func (t *Measure) ProcessChar(_ *Context, _ rune) {
	t.counts[0]++
}

func (t *Measure) ProcessCharPlaceholder(_ *Context, _ rune) {
	t.counts[0]++
}

func (t *Measure) ProcessStrPlaceholder(ctx *Context, key string) {
	value, ok := ctx.Lookup(key)
	if !ok {
		ctx.LogUnresolved(key)
		t.Error(ctx)
		return
	}
	n := ctx.Format.Measure(utf8.RuneCountInString(value))
	t.counts[0] += n
	t.counts = append(t.counts, n)
}

// Done returns the total followed by the per-placeholder widths.
func (t *Measure) Done() []int {
	return t.counts
}
