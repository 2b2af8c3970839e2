// Package config provides configuration management for nash.
package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// Paths holds all the path configurations for nash.
type Paths struct {
	// ConfigDir is the directory for configuration files (~/.config/nash)
	ConfigDir string

	// CacheDir is the directory for cache files such as logs (~/.cache/nash)
	CacheDir string
}

// DefaultPaths returns the default paths based on XDG Base Directory spec.
// On Windows, it uses %APPDATA% instead.
func DefaultPaths() *Paths {
	home := homeDir()

	if runtime.GOOS == "windows" {
		appData := os.Getenv("APPDATA")
		if appData == "" {
			appData = filepath.Join(home, "AppData", "Roaming")
		}
		localAppData := os.Getenv("LOCALAPPDATA")
		if localAppData == "" {
			localAppData = filepath.Join(home, "AppData", "Local")
		}

		return &Paths{
			ConfigDir: filepath.Join(appData, "nash"),
			CacheDir:  filepath.Join(localAppData, "nash", "cache"),
		}
	}

	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		configHome = filepath.Join(home, ".config")
	}

	cacheHome := os.Getenv("XDG_CACHE_HOME")
	if cacheHome == "" {
		cacheHome = filepath.Join(home, ".cache")
	}

	return &Paths{
		ConfigDir: filepath.Join(configHome, "nash"),
		CacheDir:  filepath.Join(cacheHome, "nash"),
	}
}

// ConfigFile returns the path to the main configuration file.
// NASH_CONFIG takes precedence over the XDG location.
func (p *Paths) ConfigFile() string {
	if path := os.Getenv("NASH_CONFIG"); path != "" {
		return path
	}
	return filepath.Join(p.ConfigDir, "config.yaml")
}

// LogFile returns the default debug log path.
func (p *Paths) LogFile() string {
	return filepath.Join(p.CacheDir, "nash.log")
}

// EnsureCacheDir creates the cache directory if it doesn't exist.
func (p *Paths) EnsureCacheDir() error {
	return os.MkdirAll(p.CacheDir, 0o755)
}

// homeDir returns the user's home directory.
func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		if runtime.GOOS == "windows" {
			return os.Getenv("USERPROFILE")
		}
		return os.Getenv("HOME")
	}
	return home
}
