package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/mattn/go-runewidth"
	"gopkg.in/yaml.v3"
)

// Config represents the nash configuration.
type Config struct {
	Prompt        string      `yaml:"prompt"`         // Prompt text drawn at column 0
	PromptWidth   int         `yaml:"prompt_width"`   // Column where typed text starts
	ExecDir       string      `yaml:"exec_dir"`       // Directory enumerated for suggestions
	HeightPercent int         `yaml:"height_percent"` // Share of the terminal height in use (1-100)
	PendingBuffer int         `yaml:"pending_buffer"` // Capacity of the suggestion channel
	LogLevel      string      `yaml:"log_level"`      // debug, info, warn, error
	LogFile       string      `yaml:"log_file"`       // Log file path ("" = no logging unless debug)
	Keys          KeysConfig  `yaml:"keys"`
	Theme         ThemeConfig `yaml:"theme"`
}

// KeysConfig holds key binding overrides.
type KeysConfig struct {
	Quit []string `yaml:"quit"` // Keys that end the session
}

// ThemeConfig holds the colors used for each kind of text on screen.
type ThemeConfig struct {
	Prompt string `yaml:"prompt"`
	Input  string `yaml:"input"`
	Hint   string `yaml:"hint"`
	Output string `yaml:"output"`
	Error  string `yaml:"error"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Prompt:        "nash~>> ",
		PromptWidth:   9,
		ExecDir:       "/usr/bin",
		HeightPercent: 100,
		PendingBuffer: 1024,
		LogLevel:      "info",
		LogFile:       "",
		Keys: KeysConfig{
			Quit: []string{"esc", "ctrl+c", "ctrl+d"},
		},
		Theme: ThemeConfig{
			Prompt: "3",  // yellow
			Input:  "4",  // blue
			Hint:   "12", // light blue
			Output: "5",  // magenta
			Error:  "1",  // red
		},
	}
}

// Load loads configuration from the default path.
func Load() (*Config, error) {
	paths := DefaultPaths()
	return LoadFromFile(paths.ConfigFile())
}

// LoadFromFile loads configuration from the specified file.
// If the file doesn't exist, returns default configuration.
// Environment variable overrides are applied after file loading.
func LoadFromFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.ApplyEnvOverrides()
			return cfg, nil // Return defaults if file doesn't exist
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.ApplyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration. Every problem found is reported.
func (c *Config) Validate() error {
	var result *multierror.Error

	if c.Prompt == "" {
		result = multierror.Append(result, errors.New("prompt must not be empty"))
	}

	if w := runewidth.StringWidth(c.Prompt); c.PromptWidth < w {
		result = multierror.Append(result, fmt.Errorf("prompt_width must be >= %d, the width of the prompt (got: %d)", w, c.PromptWidth))
	}

	if c.ExecDir == "" {
		result = multierror.Append(result, errors.New("exec_dir must not be empty"))
	}

	if c.HeightPercent < 1 || c.HeightPercent > 100 {
		result = multierror.Append(result, fmt.Errorf("height_percent must be between 1 and 100 (got: %d)", c.HeightPercent))
	}

	if c.PendingBuffer < 0 {
		result = multierror.Append(result, errors.New("pending_buffer must be >= 0"))
	}

	if !isValidLogLevel(c.LogLevel) {
		result = multierror.Append(result, fmt.Errorf("log_level must be debug, info, warn, or error (got: %s)", c.LogLevel))
	}

	if len(c.Keys.Quit) == 0 {
		result = multierror.Append(result, errors.New("keys.quit must name at least one key"))
	}

	if result != nil {
		result.ErrorFormat = listFormat
	}
	return result.ErrorOrNil()
}

// listFormat joins validation errors on one line.
func listFormat(errs []error) string {
	msgs := make([]string, len(errs))
	for i, err := range errs {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

func isValidLogLevel(level string) bool {
	switch level {
	case "debug", "info", "warn", "error":
		return true
	default:
		return false
	}
}

// ApplyEnvOverrides applies environment variable overrides to the config.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("NASH_DEBUG"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil && b {
			c.LogLevel = "debug"
		}
	}
	if v := os.Getenv("NASH_LOG_LEVEL"); v != "" {
		if isValidLogLevel(v) {
			c.LogLevel = v
		}
	}
	if v := os.Getenv("NASH_EXEC_DIR"); v != "" {
		c.ExecDir = v
	}
}

// Get retrieves a configuration value by dot-separated key.
// For example: "exec_dir" or "theme.hint".
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "prompt":
		return c.Prompt, nil
	case "prompt_width":
		return strconv.Itoa(c.PromptWidth), nil
	case "exec_dir":
		return c.ExecDir, nil
	case "height_percent":
		return strconv.Itoa(c.HeightPercent), nil
	case "pending_buffer":
		return strconv.Itoa(c.PendingBuffer), nil
	case "log_level":
		return c.LogLevel, nil
	case "log_file":
		return c.LogFile, nil
	case "keys.quit":
		return strings.Join(c.Keys.Quit, ","), nil
	case "theme.prompt":
		return c.Theme.Prompt, nil
	case "theme.input":
		return c.Theme.Input, nil
	case "theme.hint":
		return c.Theme.Hint, nil
	case "theme.output":
		return c.Theme.Output, nil
	case "theme.error":
		return c.Theme.Error, nil
	default:
		return "", fmt.Errorf("unknown key: %s", key)
	}
}

// ListKeys returns the configuration keys accepted by Get.
func ListKeys() []string {
	return []string{
		"prompt",
		"prompt_width",
		"exec_dir",
		"height_percent",
		"pending_buffer",
		"log_level",
		"log_file",
		"keys.quit",
		"theme.prompt",
		"theme.input",
		"theme.hint",
		"theme.output",
		"theme.error",
	}
}

// YAML renders the configuration in config file form.
func (c *Config) YAML() (string, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("failed to encode config: %w", err)
	}
	return string(data), nil
}
