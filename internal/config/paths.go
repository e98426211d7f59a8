// Package config resolves file locations and the TOML settings file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const appName = "sumas"

// XDGConfigHome returns the XDG config home or a default fallback.
func XDGConfigHome() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".config")
}

// XDGDataHome returns the XDG data home or a default fallback.
func XDGDataHome() string {
	if v := os.Getenv("XDG_DATA_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".local", "share")
}

// DefaultConfigPath resolves the settings file path in priority order:
// 1. SUMAS_CONFIG environment variable
// 2. $XDG_CONFIG_HOME/sumas/config.toml
func DefaultConfigPath() string {
	if p := os.Getenv("SUMAS_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(XDGConfigHome(), appName, "config.toml")
}

// DefaultDBPath resolves the database file path in priority order:
// 1. SUMAS_DB environment variable
// 2. $XDG_DATA_HOME/sumas/sumas.db
// 3. ~/.local/share/sumas/sumas.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("SUMAS_DB"); p != "" {
		return p, EnsureDir(p)
	}
	p := filepath.Join(XDGDataHome(), appName, appName+".db")
	return p, EnsureDir(p)
}

// DefaultLogPath returns the debug log location.
func DefaultLogPath() string {
	return filepath.Join(XDGDataHome(), appName, "debug.log")
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directory for %s: %w", path, err)
	}
	return nil
}
