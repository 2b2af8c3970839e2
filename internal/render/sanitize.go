package render

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/x/ansi"
)

// tabWidth is the distance between tab stops in command output.
const tabWidth = 8

// ValidateUTF8 replaces invalid UTF-8 byte sequences with the Unicode
// replacement character (U+FFFD).
func ValidateUTF8(s string) string {
	if utf8.ValidString(s) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size <= 1 {
			b.WriteRune(utf8.RuneError)
			i++
		} else {
			b.WriteRune(r)
			i += size
		}
	}
	return b.String()
}

// ExpandTabs replaces tabs in a single line with spaces up to the next tab
// stop.
func ExpandTabs(line string) string {
	if !strings.Contains(line, "\t") {
		return line
	}
	var b strings.Builder
	col := 0
	for _, r := range line {
		if r == '\t' {
			n := tabWidth - col%tabWidth
			b.WriteString(strings.Repeat(" ", n))
			col += n
			continue
		}
		b.WriteRune(r)
		col++
	}
	return b.String()
}

// stripControl drops C0 control characters other than newline and tab, and DEL.
func stripControl(s string) string {
	return strings.Map(func(r rune) rune {
		if (r < 0x20 && r != '\n' && r != '\t') || r == 0x7f {
			return -1
		}
		return r
	}, s)
}

// Sanitize makes raw command output safe to put into the grid. Invalid
// UTF-8 is replaced and escape sequences are removed. Control characters
// other than newline and tab are dropped.
func Sanitize(output string) string {
	s := ansi.Strip(ValidateUTF8(output))
	return stripControl(s)
}

// OutputLines splits command output into display lines. A single trailing
// newline does not start another line; empty output has no lines.
func OutputLines(output string) []string {
	s := Sanitize(output)
	if s == "" {
		return nil
	}
	lines := strings.Split(strings.TrimSuffix(s, "\n"), "\n")
	for i, l := range lines {
		lines[i] = ExpandTabs(l)
	}
	return lines
}
