// Package shell drives an interactive nash session: it owns the line being
// typed, the suggestion state and the screen, and runs submitted commands.
package shell

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/runger/nash/internal/line"
	nashlog "github.com/runger/nash/internal/log"
	"github.com/runger/nash/internal/process"
	"github.com/runger/nash/internal/render"
	"github.com/runger/nash/internal/suggest"
)

// Prompt defaults.
const (
	DefaultPrompt      = "nash~>> "
	DefaultPromptWidth = 9
)

// Session is the state of one interactive shell. All of its methods must be
// called from the same goroutine.
type Session struct {
	prompt string
	buf    line.Buffer
	cur    line.Cursor
	cache  *suggest.Cache
	sel    suggest.Selection
	hint   string

	surface *render.Surface
	runner  process.Runner
	logger  *slog.Logger
}

// Option configures a Session.
type Option func(*Session)

// WithPrompt sets the prompt text and the column typed text starts at.
// width is raised to the display width of prompt if it is smaller.
func WithPrompt(prompt string, width int) Option {
	return func(s *Session) {
		if w := runewidth.StringWidth(prompt); width < w {
			width = w
		}
		s.prompt = prompt
		s.cur = line.NewCursor(width)
	}
}

// WithRunner sets how submitted commands are executed.
func WithRunner(r process.Runner) Option {
	return func(s *Session) {
		s.runner = r
	}
}

// WithLogger sets the session logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// NewSession creates a session drawing onto surface and completing from cache.
func NewSession(surface *render.Surface, cache *suggest.Cache, opts ...Option) *Session {
	s := &Session{
		prompt:  DefaultPrompt,
		cur:     line.NewCursor(DefaultPromptWidth),
		cache:   cache,
		surface: surface,
		runner:  process.NewExecRunner(),
		logger:  nashlog.New(nil),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start clears the screen and draws the first prompt.
func (s *Session) Start() {
	s.surface.Clear()
	s.cur = line.NewCursor(s.cur.Home())
	s.drawLine()
}

// Tick moves at most one pending suggestion into the cache. It is called
// once per event.
func (s *Session) Tick() {
	s.cache.IngestOne()
}

// Warming reports whether names may still arrive from the source.
func (s *Session) Warming() bool {
	return !s.cache.Drained()
}

// AcceptChar appends r to the line and refreshes the hint for the last token.
func (s *Session) AcceptChar(r rune) {
	s.buf.Append(r)
	s.cur.Forward()
	s.suggest()
	s.drawLine()
}

// Backspace removes the last character of the line, if any.
func (s *Session) Backspace() {
	if !s.buf.Backspace() {
		return
	}
	s.cur.Back()
	s.suggest()
	s.drawLine()
}

// suggest recomputes the selection for the last token and shows its first
// match as the hint.
func (s *Session) suggest() {
	token, ok := s.buf.LastToken()
	if !ok {
		s.sel.Clear()
		s.hint = ""
		return
	}
	s.sel.Reset(token, s.cache.Lookup(token))
	s.hint = s.sel.Suffix()
}

// CycleSuggestion moves to the next match for the last token. A single
// remaining match is typed out in full followed by a space; otherwise only
// the hint changes.
func (s *Session) CycleSuggestion() {
	token, ok := s.buf.LastToken()
	if !ok {
		return
	}

	fresh := s.sel.Len() == 0 || s.sel.Prefix() != token
	matches := s.cache.Lookup(token)
	if fresh {
		s.sel.Reset(token, matches)
	} else {
		s.sel.Refresh(token, matches)
		s.sel.Advance(s.pullMore)
	}

	switch s.sel.Len() {
	case 0:
		s.hint = ""
		s.drawLine()
	case 1:
		suffix := s.sel.Suffix()
		for _, r := range suffix {
			s.AcceptChar(r)
		}
		s.AcceptChar(' ')
	default:
		s.hint = s.sel.Suffix()
		s.drawLine()
	}
}

// pullMore waits for another name matching prefix and returns the grown
// match set, or nil when the source is exhausted.
func (s *Session) pullMore(prefix string) []string {
	if !s.cache.PullMore(prefix) {
		return nil
	}
	return s.cache.Search(prefix)
}

// Submit runs the line as a command and prints its output below it. A line
// that names no runnable program prints an unknown command message instead.
// Either way a fresh prompt follows.
func (s *Session) Submit(ctx context.Context) {
	s.sel.Clear()
	s.hint = ""
	s.drawLine()

	if name, args, ok := s.buf.Command(); ok {
		res, err := s.runner.Run(ctx, name, args)
		if err != nil {
			nashlog.LogUnknownCommand(s.logger, name, err)
			s.advance()
			msg := fmt.Sprintf("nash: unknown command: %s", strings.TrimSpace(s.buf.String()))
			s.surface.Print(s.cur.Row, 0, render.Sanitize(msg), render.RoleError)
		} else {
			nashlog.LogCommand(s.logger, name, len(args), res.ExitCode, res.Duration)
			for _, l := range render.OutputLines(string(res.Output())) {
				s.advance()
				s.surface.Print(s.cur.Row, 0, l, render.RoleOutput)
			}
		}
	}

	s.advance()
	s.buf.Reset()
	s.cur.CarriageReturn()
	s.drawLine()
}

// Resize adapts the surface to a new terminal size.
func (s *Session) Resize(width, height int) {
	s.surface.Resize(width, height)
	s.drawLine()
}

// advance moves to the next row, clearing the screen and starting over at
// the top once the row reaches the scroll threshold.
func (s *Session) advance() {
	s.cur.Row++
	s.scrollIfNeeded()
}

func (s *Session) scrollIfNeeded() {
	if !s.surface.NeedsScrollReset(s.cur.Row) {
		return
	}
	_, height := s.surface.Size()
	nashlog.LogScrollReset(s.logger, s.cur.Row, height)
	s.surface.Clear()
	s.cur.Row = 0
}

// drawLine redraws the active row: prompt, typed text, then the hint.
func (s *Session) drawLine() {
	s.scrollIfNeeded()
	row := s.cur.Row
	s.surface.ClearRow(row)
	s.surface.Print(row, 0, s.prompt, render.RolePrompt)
	col := s.surface.Print(row, s.cur.Home(), s.buf.String(), render.RoleInput)
	if s.hint != "" {
		s.surface.Print(row, col, s.hint, render.RoleHint)
	}
	s.surface.Present()
}

// Buffer returns the text typed so far.
func (s *Session) Buffer() string {
	return s.buf.String()
}

// Cursor returns the cursor position.
func (s *Session) Cursor() line.Cursor {
	return s.cur
}

// Hint returns the suggestion suffix shown after the typed text.
func (s *Session) Hint() string {
	return s.hint
}

// Selection returns the current matches and the index being shown.
func (s *Session) Selection() (matches []string, index int) {
	return s.sel.Matches(), s.sel.Index()
}

// Surface returns the surface the session draws on.
func (s *Session) Surface() *render.Surface {
	return s.surface
}
