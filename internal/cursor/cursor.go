// Package cursor provides a peekable, markable rune cursor over a buffered input.
package cursor

// Cursor walks a slice of runes with one rune of lookahead.
//
// The whole input is materialized up front and all state is kept as plain
// indices, so marking a position and later slicing back to it is free.
type Cursor struct {
	// runes is the input decoded into Unicode scalar values.
	runes []rune
	// current is the index of the next unread rune.
	current int
	// marked is the index recorded by Mark, or -1 if Mark was never called.
	marked int
}

// New creates a Cursor over s. Invalid UTF-8 sequences decode to U+FFFD.
func New(s string) *Cursor {
	return &Cursor{
		runes:  []rune(s),
		marked: -1,
	}
}

// Peek returns the next rune without consuming it.
// Repeated calls without an intervening Next return the same rune, since
// the lookahead is the rune at the current index.
func (c *Cursor) Peek() (rune, bool) {
	if c.current >= len(c.runes) {
		return 0, false
	}
	return c.runes[c.current], true
}

// Next consumes and returns the next rune.
// It returns false once the input is exhausted and never moves past the end.
func (c *Cursor) Next() (rune, bool) {
	if c.current >= len(c.runes) {
		return 0, false
	}
	r := c.runes[c.current]
	c.current++
	return r, true
}

// Mark records the current unread position.
func (c *Cursor) Mark() {
	c.marked = c.current
}

// SliceFromMark returns the runes between the mark (inclusive) and the
// current unread position (exclusive). It returns false if Mark was never called.
func (c *Cursor) SliceFromMark() ([]rune, bool) {
	if c.marked < 0 {
		return nil, false
	}
	out := make([]rune, c.current-c.marked)
	copy(out, c.runes[c.marked:c.current])
	return out, true
}

// Marked returns the marked index, or -1 if Mark was never called.
func (c *Cursor) Marked() int { return c.marked }

// Pos returns the index of the next unread rune.
func (c *Cursor) Pos() int { return c.current }

// Len returns the number of runes in the input.
func (c *Cursor) Len() int { return len(c.runes) }
