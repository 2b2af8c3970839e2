package shell

import (
	"context"
	"time"
	"unicode"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// ingestInterval is how often the cache is fed while the user is idle.
const ingestInterval = 10 * time.Millisecond

// initMsg is sent by Init() so the first prompt is drawn through Update.
type initMsg struct{}

// ingestMsg wakes the event loop so pending names reach the cache between
// key presses.
type ingestMsg struct{}

// Model is the Bubble Tea model for an interactive session.
type Model struct {
	ctx     context.Context
	session *Session
	keys    KeyMap
	done    bool
}

// NewModel wraps session in a Bubble Tea model. ctx bounds the commands the
// session runs.
func NewModel(ctx context.Context, session *Session, keys KeyMap) Model {
	return Model{
		ctx:     ctx,
		session: session,
		keys:    keys,
	}
}

// Session returns the wrapped session.
func (m Model) Session() *Session {
	return m.session
}

// Done reports whether the user ended the session.
func (m Model) Done() bool {
	return m.done
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return func() tea.Msg { return initMsg{} }
}

// Update implements tea.Model. Every event first moves one pending
// suggestion into the cache.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m.session.Tick()

	switch msg := msg.(type) {
	case initMsg:
		m.session.Start()
		return m, m.scheduleIngest()

	case ingestMsg:
		return m, m.scheduleIngest()

	case tea.WindowSizeMsg:
		m.session.Resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.done = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Submit):
		m.session.Submit(m.ctx)

	case key.Matches(msg, m.keys.Complete):
		m.session.CycleSuggestion()

	case key.Matches(msg, m.keys.Backspace):
		m.session.Backspace()

	case msg.Type == tea.KeySpace:
		m.session.AcceptChar(' ')

	case msg.Type == tea.KeyRunes:
		for _, r := range msg.Runes {
			if unicode.IsPrint(r) || r == ' ' {
				m.session.AcceptChar(r)
			}
		}
	}

	return m, nil
}

func (m Model) scheduleIngest() tea.Cmd {
	if !m.session.Warming() {
		return nil
	}
	return tea.Tick(ingestInterval, func(time.Time) tea.Msg {
		return ingestMsg{}
	})
}

// View implements tea.Model.
func (m Model) View() string {
	return m.session.Surface().View()
}
