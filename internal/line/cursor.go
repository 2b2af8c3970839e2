package line

// Cursor is a (row, column) position in the terminal grid.
type Cursor struct {
	Row int
	Col int

	// home is the column typed text starts at, right after the prompt.
	home int
}

// NewCursor returns a cursor at row 0, just after a prompt of the given width.
func NewCursor(promptWidth int) Cursor {
	return Cursor{Col: promptWidth, home: promptWidth}
}

// Home returns the column typed text starts at.
func (c Cursor) Home() int {
	return c.home
}

// Forward moves one column right.
func (c *Cursor) Forward() {
	c.Col++
}

// Back moves one column left, never past the prompt.
func (c *Cursor) Back() {
	if c.Col > c.home {
		c.Col--
	}
}

// CarriageReturn moves back to the first column after the prompt.
func (c *Cursor) CarriageReturn() {
	c.Col = c.home
}
