// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/paths.go
// Summary: Where the store keeps its files.
// Usage: <root>/texelpop.json and <root>/apps/<app>/config.json, with root
// under os.UserConfigDir.

package config

import (
	"os"
	"path/filepath"
)

const (
	systemConfigName = "texelpop.json"
	appConfigName    = "config.json"
)

func configRoot() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "texelpop"), nil
}

// path returns the file of app, or of the system config when app is empty.
// It is "" for an in-memory store.
func (s *Store) path(app string) string {
	if s.root == "" {
		return ""
	}
	if app == "" {
		return filepath.Join(s.root, systemConfigName)
	}
	return filepath.Join(s.root, "apps", app, appConfigName)
}

// SystemPath returns where texelpop.json lives, or "" for an in-memory store.
func (s *Store) SystemPath() string { return s.path("") }
