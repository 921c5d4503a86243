// Package project provides JSON persistence for the materials catalog, room
// templates, saved projects, and application configuration. Missing or
// corrupt store files never fail a load: catalogs fall back to the built-in
// defaults and the project store falls back to empty.
package project

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// DefaultConfigDir returns the default directory for application data.
// On all platforms this is ~/.buildest/
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".buildest")
}

// DefaultMaterialsPath returns the default path for the materials catalog.
func DefaultMaterialsPath() string {
	return filepath.Join(DefaultConfigDir(), "materials.json")
}

// DefaultTemplatesPath returns the default path for the room template catalog.
func DefaultTemplatesPath() string {
	return filepath.Join(DefaultConfigDir(), "templates.json")
}

// DefaultProjectsPath returns the default path for the saved projects store.
func DefaultProjectsPath() string {
	return filepath.Join(DefaultConfigDir(), "projects.json")
}

// DefaultConfigPath returns the default path for the application config file.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.json")
}

// writeJSON marshals v with indentation and writes it to path, creating
// parent directories as needed.
func writeJSON(path string, v any) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
