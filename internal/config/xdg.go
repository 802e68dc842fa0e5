// Package config provides XDG path helpers.
package config

import (
	"os"
	"path/filepath"
)

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

// DefaultConfigPath returns the default TOML config path, honoring the
// KEYZ_CONFIG override.
func DefaultConfigPath() string {
	if v := os.Getenv("KEYZ_CONFIG"); v != "" {
		return v
	}
	return filepath.Join(XDGConfigHome(), "keyz", "config.toml")
}
