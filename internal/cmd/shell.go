package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/runger/nash/internal/config"
	nashlog "github.com/runger/nash/internal/log"
	"github.com/runger/nash/internal/render"
	"github.com/runger/nash/internal/shell"
	"github.com/runger/nash/internal/suggest"
)

func runShell(cmd *cobra.Command, _ []string) error {
	cfg, cfgPath, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := checkTTY(); err != nil {
		return err
	}

	logger, closeLog, err := openLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	sessionID := uuid.NewString()
	logger = logger.With("session_id", sessionID)
	nashlog.LogStartup(logger, nashlog.StartupInfo{
		Version:    Version,
		ConfigPath: cfgPath,
		ExecDir:    cfg.ExecDir,
		SessionID:  sessionID,
		PID:        os.Getpid(),
	})

	lipgloss.SetColorProfile(termenv.NewOutput(os.Stdout).EnvColorProfile())

	// The source may fail before the program owns the terminal.
	var program atomic.Pointer[tea.Program]
	source := suggest.NewDirSource(cfg.ExecDir,
		suggest.WithBuffer(cfg.PendingBuffer),
		suggest.WithLogger(logger),
		suggest.WithAbort(func(err error) {
			if p := program.Load(); p != nil {
				_ = p.ReleaseTerminal()
			}
			nashlog.LogShutdown(logger, "source failed")
			closeLog()
			fmt.Fprintf(os.Stderr, "nash: %v\n", err)
			os.Exit(1)
		}),
	)

	width, height := termSize()
	surface := render.NewSurface(width, height,
		render.WithHeightPercent(cfg.HeightPercent),
		render.WithTheme(themeFromConfig(cfg.Theme)),
	)
	session := shell.NewSession(surface, suggest.NewCache(source.Start()),
		shell.WithPrompt(cfg.Prompt, cfg.PromptWidth),
		shell.WithLogger(logger),
	)
	model := shell.NewModel(cmd.Context(), session, shell.NewKeyMap(cfg.Keys.Quit))

	var opts []tea.ProgramOption
	if cfg.HeightPercent == 100 {
		opts = append(opts, tea.WithAltScreen())
	}
	p := tea.NewProgram(model, opts...)
	program.Store(p)

	if _, err := p.Run(); err != nil {
		nashlog.LogShutdown(logger, "terminal error")
		return fmt.Errorf("terminal: %w", err)
	}
	nashlog.LogShutdown(logger, "quit")
	return nil
}

// openLogger returns the session logger and a func that closes its file.
// Logging goes to log_file, or to the default log path in debug mode, and
// is discarded otherwise.
func openLogger(cfg *config.Config) (*slog.Logger, func(), error) {
	path := cfg.LogFile
	if path == "" && cfg.LogLevel == "debug" {
		path = config.DefaultPaths().LogFile()
	}
	if path == "" {
		return nashlog.New(nil), func() {}, nil
	}

	f, err := nashlog.OpenFile(path)
	if err != nil {
		return nil, nil, err
	}
	var once sync.Once
	closeFn := func() {
		once.Do(func() { _ = f.Close() })
	}

	logger := nashlog.New(&nashlog.Config{
		Output: f,
		Level:  nashlog.ParseLevel(cfg.LogLevel),
	})
	return logger, closeFn, nil
}

func themeFromConfig(t config.ThemeConfig) render.Theme {
	return render.NewTheme(render.Colors{
		Prompt: t.Prompt,
		Input:  t.Input,
		Hint:   t.Hint,
		Output: t.Output,
		Error:  t.Error,
	})
}
