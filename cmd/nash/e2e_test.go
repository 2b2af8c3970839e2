//go:build !windows

package main

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"testing"
	"time"

	expect "github.com/Netflix/go-expect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Keys as a terminal sends them.
const (
	keyEnter = "\r"
	keyTab   = "\t"
	keyCtrlD = "\x04"
)

var (
	buildOnce sync.Once
	binPath   string
	buildErr  error
	buildOut  []byte
)

// nashBinary builds the nash binary once per test run.
func nashBinary(t *testing.T) string {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping e2e test in short mode")
	}

	buildOnce.Do(func() {
		dir, err := os.MkdirTemp("", "nash-e2e-*")
		if err != nil {
			buildErr = err
			return
		}
		binPath = filepath.Join(dir, "nash")
		cmd := exec.Command("go", "build", "-o", binPath, ".")
		cmd.Env = append(os.Environ(), "CGO_ENABLED=0")
		buildOut, buildErr = cmd.CombinedOutput()
	})
	if buildErr != nil {
		t.Fatalf("go build failed: %v\n%s", buildErr, buildOut)
	}
	return binPath
}

// session is a nash process attached to a pseudo terminal.
type session struct {
	console *expect.Console
	cmd     *exec.Cmd
}

// startNash runs nash in a pty with completions read from execDir.
func startNash(t *testing.T, execDir string, args ...string) *session {
	t.Helper()
	bin := nashBinary(t)

	console, err := expect.NewConsole(expect.WithDefaultTimeout(5 * time.Second))
	require.NoError(t, err)

	cmd := exec.Command(bin, args...)
	cmd.Stdin = console.Tty()
	cmd.Stdout = console.Tty()
	cmd.Stderr = console.Tty()
	cmd.Env = append(os.Environ(),
		"TERM=xterm-256color",
		"NASH_CONFIG="+filepath.Join(t.TempDir(), "config.yaml"),
		"NASH_EXEC_DIR="+execDir,
		"XDG_CACHE_HOME="+t.TempDir(),
	)
	require.NoError(t, cmd.Start())

	s := &session{console: console, cmd: cmd}
	t.Cleanup(func() {
		_ = console.Close()
		if cmd.ProcessState == nil {
			_ = cmd.Process.Kill()
			_ = cmd.Wait()
		}
	})
	return s
}

func (s *session) send(t *testing.T, text string) {
	t.Helper()
	_, err := s.console.Send(text)
	require.NoError(t, err)
}

func (s *session) expect(t *testing.T, text string) string {
	t.Helper()
	out, err := s.console.ExpectString(text)
	require.NoError(t, err, "waiting for %q, got:\n%s", text, out)
	return out
}

// wait waits for the process to exit and returns its exit code.
func (s *session) wait(t *testing.T) int {
	t.Helper()
	done := make(chan error, 1)
	go func() { done <- s.cmd.Wait() }()

	select {
	case err := <-done:
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode()
		}
		require.NoError(t, err)
		return 0
	case <-time.After(5 * time.Second):
		t.Fatal("nash did not exit")
		return -1
	}
}

func execDir(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("#!/bin/sh\n"), 0o755))
	}
	return dir
}

func TestE2E_RunsCommand(t *testing.T) {
	if _, err := exec.LookPath("echo"); err != nil {
		t.Skip("echo not available")
	}
	s := startNash(t, execDir(t, "echo"))
	s.expect(t, "nash~>>")

	s.send(t, "echo hello-from-nash"+keyEnter)
	s.expect(t, "hello-from-nash")

	s.send(t, keyCtrlD)
	assert.Equal(t, 0, s.wait(t))
}

func TestE2E_UnknownCommand(t *testing.T) {
	s := startNash(t, execDir(t, "ls"))
	s.expect(t, "nash~>>")

	s.send(t, "doesnotexist123"+keyEnter)
	s.expect(t, "unknown command: doesnotexist123")

	s.send(t, keyCtrlD)
	assert.Equal(t, 0, s.wait(t))
}

func TestE2E_TabCompletesUniqueMatch(t *testing.T) {
	// The completed name is not on PATH, so running it reports the
	// full completed text.
	s := startNash(t, execDir(t, "zzunique-tool", "ls"))
	s.expect(t, "nash~>>")

	s.send(t, "zzun")
	s.expect(t, "ique-tool")
	s.send(t, keyTab+keyEnter)
	s.expect(t, "unknown command: zzunique-tool")

	s.send(t, keyCtrlD)
	assert.Equal(t, 0, s.wait(t))
}

func TestE2E_UnreadableExecDirIsFatal(t *testing.T) {
	s := startNash(t, filepath.Join(t.TempDir(), "missing"))

	s.expect(t, "nash: failed to open")
	assert.Equal(t, 1, s.wait(t))
}

func TestE2E_InvalidFlag(t *testing.T) {
	s := startNash(t, execDir(t), "--height", "0")

	s.expect(t, "height_percent")
	assert.Equal(t, 1, s.wait(t))
}
