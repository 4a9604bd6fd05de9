package config

import (
	"os"
	"path/filepath"
)

// DataDir returns the directory wellspring stores its database in.
// WELLSPRING_HOME overrides the default of ~/.wellspring.
func DataDir() string {
	if dir := os.Getenv("WELLSPRING_HOME"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".wellspring"
	}
	return filepath.Join(home, ".wellspring")
}

// DefaultConfigPath returns the default config file location.
func DefaultConfigPath() string {
	return filepath.Join(DataDir(), "config.yaml")
}

// DefaultDBPath returns the default SQLite database location.
func DefaultDBPath() string {
	return filepath.Join(DataDir(), "wellspring.db")
}

// ResolveDBPath returns the configured store path, falling back to the
// default location when unset.
func ResolveDBPath(cfg Config) string {
	if cfg.Store.Path != "" {
		return cfg.Store.Path
	}
	return DefaultDBPath()
}
