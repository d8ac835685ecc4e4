// Package config persists local user preferences: the AI insight
// configuration and the dark-mode flag. The session token is not kept
// here; it lives in the OS keyring.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/timelex/timelex-cli/internal/constants"
	"github.com/timelex/timelex-cli/internal/models"
)

// Preferences is the on-disk shape of the local config file.
type Preferences struct {
	Version  int             `json:"version"`
	AI       models.AIConfig `json:"ai"`
	DarkMode bool            `json:"darkMode"`
}

type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// DefaultPath resolves the per-user config file location.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve config dir: %w", err)
	}
	return filepath.Join(dir, constants.ConfigDirName, constants.ConfigFileName), nil
}

// Dir returns the directory holding the config file.
func (s *Store) Dir() string {
	return filepath.Dir(s.path)
}

// Load reads preferences from disk. A missing file yields defaults, not an
// error; the first Save creates it.
func (s *Store) Load() (Preferences, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Preferences{Version: 1}, nil
		}
		return Preferences{}, fmt.Errorf("failed to read config: %w", err)
	}

	var prefs Preferences
	if err := json.Unmarshal(data, &prefs); err != nil {
		return Preferences{}, fmt.Errorf("failed to parse config: %w", err)
	}
	return prefs, nil
}

// Save writes preferences to disk, creating the config directory as needed.
func (s *Store) Save(prefs Preferences) error {
	if prefs.Version == 0 {
		prefs.Version = 1
	}
	if err := os.MkdirAll(s.Dir(), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := json.MarshalIndent(prefs, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
