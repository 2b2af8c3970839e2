// Package render keeps the cell grid the shell draws into and turns it into
// frames for the terminal.
package render

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// ScrollThreshold is the share of the visible height at which the screen is
// cleared and drawing restarts from the top row.
const ScrollThreshold = 0.98

// Default grid size used until the terminal reports its real size.
const (
	DefaultWidth  = 80
	DefaultHeight = 24
)

// Cell is one grid position. A wide rune occupies its own cell plus a
// continuation cell to its right (Rune == 0, Width == 0).
type Cell struct {
	Rune  rune
	Role  Role
	Width int
}

var blank = Cell{Rune: ' ', Role: RoleBlank, Width: 1}

func (c Cell) continuation() bool {
	return c.Width == 0
}

// Surface is an in-memory terminal grid. Writes outside the grid are
// clipped. Nothing reaches the terminal until Present is called.
type Surface struct {
	width   int
	height  int
	percent int
	cells   [][]Cell
	theme   Theme
	frame   string
}

// Option configures a Surface.
type Option func(*Surface)

// WithTheme sets the styles used for each role.
func WithTheme(theme Theme) Option {
	return func(s *Surface) {
		s.theme = theme
	}
}

// WithHeightPercent limits the surface to a share of the terminal height.
func WithHeightPercent(percent int) Option {
	return func(s *Surface) {
		if percent >= 1 && percent <= 100 {
			s.percent = percent
		}
	}
}

// NewSurface creates a blank surface for a terminal of the given size.
func NewSurface(termWidth, termHeight int, opts ...Option) *Surface {
	s := &Surface{
		percent: 100,
		theme:   DefaultTheme(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Resize(termWidth, termHeight)
	return s
}

// Resize adapts the grid to a new terminal size, keeping whatever content
// still fits.
func (s *Surface) Resize(termWidth, termHeight int) {
	width := max(termWidth, 1)
	height := max(termHeight*s.percent/100, 1)

	cells := make([][]Cell, height)
	for r := range cells {
		cells[r] = blankRow(width)
		if r < len(s.cells) {
			copy(cells[r], s.cells[r])
			// A wide rune cut in half at the new right edge becomes blank.
			if last := cells[r][width-1]; last.Width == 2 {
				cells[r][width-1] = blank
			}
		}
	}

	s.width = width
	s.height = height
	s.cells = cells
}

func blankRow(width int) []Cell {
	row := make([]Cell, width)
	for i := range row {
		row[i] = blank
	}
	return row
}

// Size returns the grid width and height.
func (s *Surface) Size() (width, height int) {
	return s.width, s.height
}

// NeedsScrollReset reports whether drawing at row has reached the scroll
// threshold.
func (s *Surface) NeedsScrollReset(row int) bool {
	return float64(row) >= float64(s.height)*ScrollThreshold
}

// Clear blanks the whole grid.
func (s *Surface) Clear() {
	for r := range s.cells {
		s.cells[r] = blankRow(s.width)
	}
}

// ClearRow blanks one row.
func (s *Surface) ClearRow(row int) {
	if row < 0 || row >= s.height {
		return
	}
	s.cells[row] = blankRow(s.width)
}

// PutCell writes one rune and returns the number of columns it takes.
func (s *Surface) PutCell(row, col int, r rune, role Role) int {
	w := runewidth.RuneWidth(r)
	if w < 1 {
		w = 1
	}
	if row < 0 || row >= s.height || col < 0 || col+w > s.width {
		return w
	}

	cells := s.cells[row]
	s.unlink(cells, col)
	if w == 2 {
		s.unlink(cells, col+1)
	}

	cells[col] = Cell{Rune: r, Role: role, Width: w}
	if w == 2 {
		cells[col+1] = Cell{Role: role}
	}
	return w
}

// unlink blanks the other half of a wide rune about to be overwritten at col.
func (s *Surface) unlink(cells []Cell, col int) {
	switch {
	case cells[col].continuation() && col > 0:
		cells[col-1] = blank
	case cells[col].Width == 2 && col+1 < len(cells):
		cells[col+1] = blank
	}
}

// Print writes text starting at (row, col) and returns the column after it.
func (s *Surface) Print(row, col int, text string, role Role) int {
	for _, r := range text {
		col += s.PutCell(row, col, r, role)
	}
	return col
}

// Present renders the grid into the frame returned by View.
func (s *Surface) Present() {
	lines := make([]string, s.height)
	for r, row := range s.cells {
		lines[r] = s.renderRow(row)
	}
	s.frame = strings.Join(lines, "\n")
}

// View returns the last presented frame.
func (s *Surface) View() string {
	return s.frame
}

func (s *Surface) renderRow(row []Cell) string {
	end := len(row)
	for end > 0 && row[end-1].Role == RoleBlank {
		end--
	}

	var b strings.Builder
	var run strings.Builder
	runRole := RoleBlank
	flush := func() {
		if run.Len() == 0 {
			return
		}
		b.WriteString(s.theme.Render(runRole, run.String()))
		run.Reset()
	}

	for _, c := range row[:end] {
		if c.continuation() {
			continue
		}
		if c.Role != runRole {
			flush()
			runRole = c.Role
		}
		run.WriteRune(c.Rune)
	}
	flush()
	return b.String()
}

// Text returns the plain characters of a row with trailing blanks removed.
func (s *Surface) Text(row int) string {
	if row < 0 || row >= s.height {
		return ""
	}
	var b strings.Builder
	for _, c := range s.cells[row] {
		if !c.continuation() {
			b.WriteRune(c.Rune)
		}
	}
	return strings.TrimRight(b.String(), " ")
}

// RoleAt returns the role of the cell at (row, col).
func (s *Surface) RoleAt(row, col int) Role {
	if row < 0 || row >= s.height || col < 0 || col >= s.width {
		return RoleBlank
	}
	return s.cells[row][col].Role
}
