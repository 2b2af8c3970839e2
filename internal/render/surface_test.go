package render

import (
	"os"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	// Plain frames make assertions independent of the test terminal.
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

func TestNewSurface_Size(t *testing.T) {
	t.Parallel()

	s := NewSurface(40, 10)
	w, h := s.Size()
	assert.Equal(t, 40, w)
	assert.Equal(t, 10, h)
}

func TestNewSurface_HeightPercent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		percent int
		term    int
		want    int
	}{
		{100, 50, 50},
		{50, 50, 25},
		{40, 10, 4},
		{1, 10, 1}, // never below one row
		{0, 10, 10}, // out of range keeps the default
	}

	for _, tt := range tests {
		s := NewSurface(80, tt.term, WithHeightPercent(tt.percent))
		_, h := s.Size()
		assert.Equal(t, tt.want, h, "percent=%d term=%d", tt.percent, tt.term)
	}
}

func TestPrint_AdvancesColumn(t *testing.T) {
	t.Parallel()

	s := NewSurface(20, 5)
	next := s.Print(1, 2, "hello", RoleOutput)

	assert.Equal(t, 7, next)
	assert.Equal(t, "  hello", s.Text(1))
	assert.Equal(t, RoleOutput, s.RoleAt(1, 2))
	assert.Equal(t, RoleBlank, s.RoleAt(1, 1))
}

func TestPrint_WideRunes(t *testing.T) {
	t.Parallel()

	s := NewSurface(20, 2)
	next := s.Print(0, 0, "日本", RoleInput)
	assert.Equal(t, 4, next)
	assert.Equal(t, "日本", s.Text(0))

	// Overwriting the second half of a wide rune blanks its first half.
	s.PutCell(0, 1, 'x', RoleInput)
	assert.Equal(t, " x本", s.Text(0))
}

func TestPrint_ClipsOutsideGrid(t *testing.T) {
	t.Parallel()

	s := NewSurface(5, 2)
	s.Print(0, 3, "abcdef", RoleOutput)
	s.Print(7, 0, "off grid", RoleOutput)
	s.Print(-1, 0, "off grid", RoleOutput)

	assert.Equal(t, "   ab", s.Text(0))
	assert.Equal(t, "", s.Text(1))
}

func TestClearRowAndClear(t *testing.T) {
	t.Parallel()

	s := NewSurface(10, 3)
	s.Print(0, 0, "one", RoleOutput)
	s.Print(1, 0, "two", RoleOutput)

	s.ClearRow(0)
	assert.Equal(t, "", s.Text(0))
	assert.Equal(t, "two", s.Text(1))

	s.ClearRow(99)
	s.Clear()
	assert.Equal(t, "", s.Text(1))
}

func TestNeedsScrollReset(t *testing.T) {
	t.Parallel()

	// 0.98 * 100 = 98: row 98 is exactly at the threshold.
	s := NewSurface(80, 100)
	assert.False(t, s.NeedsScrollReset(0))
	assert.False(t, s.NeedsScrollReset(97))
	assert.True(t, s.NeedsScrollReset(98))
	assert.True(t, s.NeedsScrollReset(99))

	// 0.98 * 24 = 23.52: row 23 is still below it.
	s = NewSurface(80, 24)
	assert.False(t, s.NeedsScrollReset(23))
	assert.True(t, s.NeedsScrollReset(24))

	// Threshold follows the configured share of the terminal.
	s = NewSurface(80, 100, WithHeightPercent(50))
	assert.True(t, s.NeedsScrollReset(49))
	assert.False(t, s.NeedsScrollReset(48))
}

func TestResize_KeepsContent(t *testing.T) {
	t.Parallel()

	s := NewSurface(10, 4)
	s.Print(0, 0, "keep", RoleOutput)
	s.Print(3, 0, "gone", RoleOutput)
	s.Print(1, 8, "日", RoleOutput)

	s.Resize(9, 2)
	w, h := s.Size()
	assert.Equal(t, 9, w)
	assert.Equal(t, 2, h)
	assert.Equal(t, "keep", s.Text(0))
	assert.Equal(t, "", s.Text(1), "wide rune cut by the edge is blanked")

	s.Resize(20, 6)
	assert.Equal(t, "keep", s.Text(0))
	assert.Equal(t, "", s.Text(5))
}

func TestPresent_View(t *testing.T) {
	t.Parallel()

	s := NewSurface(20, 3)
	assert.Equal(t, "", s.View(), "nothing presented yet")

	s.Print(0, 0, "nash~>> ", RolePrompt)
	s.Print(0, 9, "ls", RoleInput)
	s.Print(0, 11, "of", RoleHint)

	// Writes are not visible until presented.
	assert.Equal(t, "", s.View())

	s.Present()
	lines := strings.Split(s.View(), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "nash~>>  lsof", lines[0])
	assert.Equal(t, "", lines[1])
	assert.Equal(t, "", lines[2])
}

func TestTheme_RenderRoles(t *testing.T) {
	t.Parallel()

	theme := NewTheme(Colors{Prompt: "3", Input: "4", Hint: "12", Output: "5", Error: "1"})
	for _, role := range []Role{RolePrompt, RoleInput, RoleHint, RoleOutput, RoleError} {
		assert.Equal(t, "abc", theme.Render(role, "abc"))
	}
	assert.Equal(t, "   ", theme.Render(RoleBlank, "   "))
}
