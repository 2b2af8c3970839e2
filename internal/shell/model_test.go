package shell

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runger/nash/internal/process"
	"github.com/runger/nash/internal/render"
	"github.com/runger/nash/internal/suggest"
)

// runCmd executes a tea.Cmd and returns the resulting message, or nil.
func runCmd(cmd tea.Cmd) tea.Msg {
	if cmd == nil {
		return nil
	}
	return cmd()
}

func newTestModel(t *testing.T, cache *suggest.Cache, runner process.Runner) Model {
	t.Helper()
	if runner == nil {
		runner = &fakeRunner{}
	}
	s := NewSession(render.NewSurface(80, 24), cache, WithRunner(runner))
	return NewModel(context.Background(), s, DefaultKeyMap())
}

// initModel delivers the Init message so the first prompt is drawn.
func initModel(t *testing.T, m Model) Model {
	t.Helper()
	msg := runCmd(m.Init())
	require.IsType(t, initMsg{}, msg)
	result, _ := m.Update(msg)
	return result.(Model)
}

func press(m Model, msg tea.KeyMsg) (Model, tea.Cmd) {
	result, cmd := m.Update(msg)
	return result.(Model), cmd
}

func typeRunes(m Model, text string) Model {
	for _, r := range text {
		if r == ' ' {
			m, _ = press(m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
			continue
		}
		m, _ = press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func TestModel_InitDrawsPrompt(t *testing.T) {
	t.Parallel()

	m := initModel(t, newTestModel(t, seeded(), nil))

	lines := strings.Split(m.View(), "\n")
	require.Len(t, lines, 24)
	assert.Equal(t, "nash~>>", lines[0])
}

func TestModel_TypingAndCompletion(t *testing.T) {
	t.Parallel()

	m := initModel(t, newTestModel(t, seeded("ls", "lsof"), nil))

	m = typeRunes(m, "ls")
	assert.Equal(t, "ls", m.Session().Buffer())
	assert.True(t, strings.HasPrefix(m.View(), "nash~>>  ls\n"))

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, "of", m.Session().Hint())
	assert.True(t, strings.HasPrefix(m.View(), "nash~>>  lsof\n"))
}

func TestModel_SpaceAndBackspace(t *testing.T) {
	t.Parallel()

	m := initModel(t, newTestModel(t, seeded(), nil))

	m = typeRunes(m, "a b")
	assert.Equal(t, "a b", m.Session().Buffer())

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyBackspace})
	assert.Equal(t, "a ", m.Session().Buffer())
}

func TestModel_PastedControlRunesDropped(t *testing.T) {
	t.Parallel()

	m := initModel(t, newTestModel(t, seeded(), nil))

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("ec\x07ho"), Paste: true})
	assert.Equal(t, "echo", m.Session().Buffer())
}

func TestModel_EnterRunsCommand(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{results: map[string]process.Result{
		"echo": {Stdout: []byte("hi\n")},
	}}
	m := initModel(t, newTestModel(t, seeded(), runner))

	m = typeRunes(m, "echo hi")
	m, cmd := press(m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.Equal(t, [][]string{{"echo", "hi"}}, runner.calls)
	lines := strings.Split(m.View(), "\n")
	assert.Equal(t, "hi", lines[1])
	assert.Equal(t, "nash~>>", lines[2])
}

func TestModel_QuitKeys(t *testing.T) {
	t.Parallel()

	for _, msg := range []tea.KeyMsg{
		{Type: tea.KeyEsc},
		{Type: tea.KeyCtrlC},
		{Type: tea.KeyCtrlD},
	} {
		m := initModel(t, newTestModel(t, seeded(), nil))

		m, cmd := press(m, msg)
		assert.True(t, m.Done(), msg.String())
		assert.IsType(t, tea.QuitMsg{}, runCmd(cmd), msg.String())
	}
}

func TestModel_CustomQuitKey(t *testing.T) {
	t.Parallel()

	s := NewSession(render.NewSurface(80, 24), seeded(), WithRunner(&fakeRunner{}))
	m := initModel(t, NewModel(context.Background(), s, NewKeyMap([]string{"ctrl+q"})))

	m, cmd := press(m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.Done())
	assert.Nil(t, cmd)

	m, cmd = press(m, tea.KeyMsg{Type: tea.KeyCtrlQ})
	assert.True(t, m.Done())
	assert.IsType(t, tea.QuitMsg{}, runCmd(cmd))
}

func TestModel_LetterQIsTyped(t *testing.T) {
	t.Parallel()

	m := initModel(t, newTestModel(t, seeded(), nil))

	m = typeRunes(m, "q")
	assert.False(t, m.Done())
	assert.Equal(t, "q", m.Session().Buffer())
}

func TestModel_EveryEventIngestsOne(t *testing.T) {
	t.Parallel()

	ch := make(chan string, 3)
	ch <- "ls"
	ch <- "cat"
	ch <- "cp"
	cache := suggest.NewCache(ch)

	m := newTestModel(t, cache, nil)
	m = initModel(t, m)
	assert.Equal(t, 1, cache.Len())

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 2, cache.Len())

	result, _ := m.Update(ingestMsg{})
	m = result.(Model)
	assert.Equal(t, 3, cache.Len())
	assert.False(t, cache.Drained())
}

func TestModel_IngestTickStopsWhenDrained(t *testing.T) {
	t.Parallel()

	ch := make(chan string, 1)
	ch <- "ls"
	cache := suggest.NewCache(ch)

	m := newTestModel(t, cache, nil)
	result, cmd := m.Update(runCmd(m.Init()))
	m = result.(Model)
	assert.NotNil(t, cmd, "ticks while the source may still send")

	close(ch)
	result, cmd = m.Update(ingestMsg{})
	m = result.(Model)
	assert.True(t, cache.Drained())
	assert.Nil(t, cmd)
	assert.False(t, m.Session().Warming())
}

func TestModel_WindowSize(t *testing.T) {
	t.Parallel()

	m := initModel(t, newTestModel(t, seeded(), nil))

	result, _ := m.Update(tea.WindowSizeMsg{Width: 30, Height: 6})
	m = result.(Model)

	w, h := m.Session().Surface().Size()
	assert.Equal(t, 30, w)
	assert.Equal(t, 6, h)
	assert.Len(t, strings.Split(m.View(), "\n"), 6)
}
