// Package log provides JSON-lines structured logging for nash.
//
// The terminal belongs to the session while it runs, so the logger never
// writes to stdout or stderr: output goes to a log file, or nowhere.
package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// Config configures the structured logger.
type Config struct {
	// Output is the writer for log output (default: io.Discard)
	Output io.Writer

	// Level is the minimum log level (default: LevelInfo)
	Level slog.Level

	// Debug enables debug level logging (overrides Level)
	Debug bool
}

// DefaultConfig returns the default logging configuration.
func DefaultConfig() *Config {
	return &Config{
		Output: io.Discard,
		Level:  slog.LevelInfo,
		Debug:  false,
	}
}

// New creates a new JSON-lines structured logger. Lines look like:
//
//	{"ts":"2024-01-15T10:30:00Z","level":"INFO","msg":"session started","session_id":"..."}
func New(cfg *Config) *slog.Logger {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	output := cfg.Output
	if output == nil {
		output = io.Discard
	}

	level := cfg.Level
	if cfg.Debug {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				a.Key = "ts"
			}
			return a
		},
	}

	return slog.New(slog.NewJSONHandler(output, opts))
}

// ParseLevel maps a config level name to a slog.Level.
// Unknown names fall back to info.
func ParseLevel(name string) slog.Level {
	switch name {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// OpenFile opens (creating parent directories) a log file for appending.
func OpenFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, nil
}

// StartupInfo holds information to log at session startup.
type StartupInfo struct {
	Version    string
	ConfigPath string
	ExecDir    string
	SessionID  string
	PID        int
}

// LogStartup logs session startup information.
func LogStartup(logger *slog.Logger, info StartupInfo) {
	logger.Info("session started",
		"version", info.Version,
		"config_path", info.ConfigPath,
		"exec_dir", info.ExecDir,
		"session_id", info.SessionID,
		"pid", info.PID,
	)
}

// LogShutdown logs the end of a session.
func LogShutdown(logger *slog.Logger, reason string) {
	logger.Info("session ended", "reason", reason)
}

// LogSourceDone logs that the executable directory has been fully listed.
func LogSourceDone(logger *slog.Logger, dir string, entries int, elapsed time.Duration) {
	logger.Debug("suggestion source finished",
		"exec_dir", dir,
		"entries", entries,
		"duration_ms", elapsed.Milliseconds(),
	)
}

// LogSourceFatal logs a failure that aborts the process.
func LogSourceFatal(logger *slog.Logger, dir string, err error) {
	logger.Error("suggestion source failed", "exec_dir", dir, "error", err)
}

// LogCommand logs a finished command.
func LogCommand(logger *slog.Logger, name string, args int, exitCode int, elapsed time.Duration) {
	logger.Debug("command finished",
		"command", name,
		"args", args,
		"exit_code", exitCode,
		"duration_ms", elapsed.Milliseconds(),
	)
}

// LogUnknownCommand logs a command that could not be started.
func LogUnknownCommand(logger *slog.Logger, name string, err error) {
	logger.Warn("unknown command", "command", name, "error", err)
}

// LogScrollReset logs a full clear-and-reset of the screen.
func LogScrollReset(logger *slog.Logger, row, height int) {
	logger.Debug("scroll reset", "row", row, "height", height)
}
