package engine

// Extract collects the keys of well-formed key placeholders in input order.
// Duplicates are kept; whether a key has a value does not matter.
type Extract struct {
	keys []string
}

// NewExtract creates an Extract task.
func NewExtract() *Extract {
	return &Extract{keys: []string{}}
}

func (t *Extract) Error(_ *Context) {}

func (t *Extract) ProcessChar(_ *Context, _ rune) {}

func (t *Extract) ProcessCharPlaceholder(_ *Context, _ rune) {}

func (t *Extract) ProcessStrPlaceholder(_ *Context, key string) {
	t.keys = append(t.keys, key)
}

// Done returns the collected keys.
func (t *Extract) Done() []string {
	return t.keys
}
