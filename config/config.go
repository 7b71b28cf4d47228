// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/config.go
// Summary: Config data types and the process-wide store.
// Usage: config.System() for the themed system config, config.App(name) for
// an app's own file. Both come from Default().
// Notes: Returned configs are shared. Clone before editing.

package config

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"sync"
)

// Config holds configuration sections as JSON-compatible data. Root-level
// keys live in the "" section.
type Config map[string]interface{}

// Section holds the key/value pairs of one section.
type Section map[string]interface{}

var (
	defaultOnce  sync.Once
	defaultStore *Store
)

// Default returns the store rooted at the user config dir. When no such dir
// can be resolved the store keeps everything in memory and Err reports why.
func Default() *Store {
	defaultOnce.Do(func() {
		root, err := configRoot()
		if err != nil {
			log.Printf("Config: No user config dir, using built-in defaults: %v", err)
		}
		defaultStore = NewStore(root)
		if err != nil {
			defaultStore.mu.Lock()
			if defaultStore.err == nil {
				defaultStore.err = err
			}
			defaultStore.mu.Unlock()
		}
	})
	return defaultStore
}

// System returns Default().System().
func System() Config { return Default().System() }

// App returns Default().App(name).
func App(name string) Config { return Default().App(name) }

// Err returns Default().Err().
func Err() error { return Default().Err() }

// readConfig decodes the JSON file at path. A missing file is not an error;
// it reports exists=false.
func readConfig(path string) (cfg Config, exists bool, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, true, err
	}
	return cfg, true, nil
}

func writeConfig(path string, cfg Config) error {
	if cfg == nil {
		cfg = make(Config)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
