package render

import "github.com/charmbracelet/lipgloss"

// Role says what kind of text a cell holds; each role has its own style.
type Role int

const (
	RoleBlank  Role = iota // Cleared cell
	RolePrompt             // Prompt text
	RoleInput              // Characters the user typed
	RoleHint               // Inline completion hint, not part of the buffer
	RoleOutput             // Command output
	RoleError              // Shell error messages
)

// Colors names a color for each role. Values are anything lipgloss.Color
// accepts: ANSI indexes ("3") or hex ("#ff00ff").
type Colors struct {
	Prompt string
	Input  string
	Hint   string
	Output string
	Error  string
}

// Theme maps roles to lipgloss styles.
type Theme struct {
	styles map[Role]lipgloss.Style
}

// DefaultTheme is yellow prompt, blue input, light blue hints, magenta
// output and red errors.
func DefaultTheme() Theme {
	return NewTheme(Colors{
		Prompt: "3",
		Input:  "4",
		Hint:   "12",
		Output: "5",
		Error:  "1",
	})
}

// NewTheme builds a theme with a foreground color per role. Hints are also
// rendered faint so they read as distinct from typed text.
func NewTheme(c Colors) Theme {
	fg := func(color string) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
	}
	return Theme{styles: map[Role]lipgloss.Style{
		RolePrompt: fg(c.Prompt),
		RoleInput:  fg(c.Input),
		RoleHint:   fg(c.Hint).Faint(true),
		RoleOutput: fg(c.Output),
		RoleError:  fg(c.Error),
	}}
}

// Render styles text for role. Blank cells are never styled.
func (t Theme) Render(role Role, text string) string {
	style, ok := t.styles[role]
	if !ok {
		return text
	}
	return style.Render(text)
}
