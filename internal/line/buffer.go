// Package line holds the text of the command being typed and the cursor
// position it occupies on screen.
package line

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Buffer is the text typed since the last submission.
type Buffer struct {
	text string
}

// Append adds r to the end of the buffer.
func (b *Buffer) Append(r rune) {
	b.text += string(r)
}

// Backspace removes the last rune. It reports false on an empty buffer.
func (b *Buffer) Backspace() bool {
	if b.text == "" {
		return false
	}
	_, size := utf8.DecodeLastRuneInString(b.text)
	b.text = b.text[:len(b.text)-size]
	return true
}

// Reset empties the buffer.
func (b *Buffer) Reset() {
	b.text = ""
}

// String returns the buffer contents.
func (b *Buffer) String() string {
	return b.text
}

// Len returns the number of runes in the buffer.
func (b *Buffer) Len() int {
	return utf8.RuneCountInString(b.text)
}

// LastToken returns the last whitespace-delimited token. It reports false
// when the buffer is empty or ends in whitespace.
func (b *Buffer) LastToken() (string, bool) {
	return LastToken(b.text)
}

// Command splits the buffer into a command name and its arguments.
func (b *Buffer) Command() (name string, args []string, ok bool) {
	return Split(b.text)
}

// LastToken returns the final whitespace-delimited token of s, or false
// when s is empty or ends in whitespace.
func LastToken(s string) (string, bool) {
	if s == "" {
		return "", false
	}
	last, _ := utf8.DecodeLastRuneInString(s)
	if unicode.IsSpace(last) {
		return "", false
	}
	i := strings.LastIndexFunc(s, unicode.IsSpace)
	if i < 0 {
		return s, true
	}
	_, size := utf8.DecodeRuneInString(s[i:])
	return s[i+size:], true
}

// Split trims s and splits it on whitespace into a command name and
// arguments. ok is false when s holds no command.
func Split(s string) (name string, args []string, ok bool) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return "", nil, false
	}
	return fields[0], fields[1:], true
}
