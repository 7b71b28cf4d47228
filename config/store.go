// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/store.go
// Summary: Layered config store: embedded defaults, files on disk and a
// theme merged over the system layer.

package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"sort"
	"sync"

	"github.com/framegrace/texelpop/defaults"
)

// ErrNoRoot is returned by operations that need files when the store lives
// only in memory.
var ErrNoRoot = errors.New("config: store has no directory")

// Store owns texelpop.json and the per-app files under one root. The system
// config it hands out is the file (with defaults filled in) with the current
// theme merged on top; reloading the file keeps the theme.
type Store struct {
	root string

	mu     sync.RWMutex
	file   Config
	theme  Config
	system Config
	apps   map[string]Config
	err    error
}

// NewStore loads the system layer under root. An empty root keeps the store
// in memory: defaults apply but nothing is read or written.
func NewStore(root string) *Store {
	s := &Store{root: root, apps: make(map[string]Config)}
	s.file, s.err = s.load("", applySystemDefaults)
	s.system = s.file
	return s
}

// Root returns the directory the store reads from, or "".
func (s *Store) Root() string { return s.root }

// Err returns the error of the last system load.
func (s *Store) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// System returns the system config with the theme applied.
func (s *Store) System() Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.system
}

// Theme returns the theme layer, or nil.
func (s *Store) Theme() Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.theme
}

// SetTheme replaces the theme layer. A nil theme removes it.
func (s *Store) SetTheme(theme Config) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.theme = Clone(theme)
	s.system = s.themedLocked()
}

func (s *Store) themedLocked() Config {
	if len(s.theme) == 0 {
		return s.file
	}
	return Merge(Clone(s.file), s.theme)
}

// ReloadSystem re-reads texelpop.json. When the read fails the previous
// file layer stays in place and the error is returned.
func (s *Store) ReloadSystem() error {
	cfg, err := s.load("", applySystemDefaults)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
	if err != nil && s.file != nil {
		return err
	}
	s.file = cfg
	s.system = s.themedLocked()
	return err
}

// App returns the config of the named app, loading it on first use.
func (s *Store) App(name string) Config {
	if name == "" {
		return nil
	}
	s.mu.RLock()
	cfg, ok := s.apps[name]
	s.mu.RUnlock()
	if ok {
		return cfg
	}

	cfg, err := s.load(name, func(c Config) { applyAppDefaults(name, c) })
	if err != nil {
		log.Printf("Config: App %q uses defaults: %v", name, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if cached, ok := s.apps[name]; ok {
		return cached
	}
	s.apps[name] = cfg
	return cfg
}

// ReloadApp re-reads the named app's file. The cached config is kept when
// the read fails.
func (s *Store) ReloadApp(name string) error {
	if name == "" {
		return fmt.Errorf("config: app name is required")
	}
	cfg, err := s.load(name, func(c Config) { applyAppDefaults(name, c) })
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.apps[name] = cfg
	s.mu.Unlock()
	return nil
}

// loadedApps returns the names of the apps loaded so far, sorted.
func (s *Store) loadedApps() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.apps))
	for name := range s.apps {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// load reads the file of app ("" for the system config) and fills in
// defaults. A missing or empty file starts from the embedded config, which
// is then written back so there is something to edit. On error the returned
// config still carries the defaults.
func (s *Store) load(app string, fill func(Config)) (Config, error) {
	base, err := embedded(app)
	if err != nil {
		log.Printf("Config: Embedded defaults for %q unusable: %v", app, err)
	}
	fallback := func() Config {
		cfg := base
		if cfg == nil {
			cfg = make(Config)
		}
		fill(cfg)
		return cfg
	}

	path := s.path(app)
	if path == "" {
		return fallback(), nil
	}
	cfg, _, err := readConfig(path)
	if err != nil {
		return fallback(), fmt.Errorf("read %s: %w", path, err)
	}
	if len(cfg) > 0 {
		fill(cfg)
		log.Printf("Config: Loaded %s", path)
		return cfg, nil
	}
	if base == nil {
		return fallback(), nil
	}
	cfg = fallback()
	if err := writeConfig(path, cfg); err != nil {
		return cfg, fmt.Errorf("write defaults to %s: %w", path, err)
	}
	log.Printf("Config: Wrote defaults to %s", path)
	return cfg, nil
}

// Seed writes the system config and every app config shipped in the binary
// under the root, with defaults filled in. Existing files are left alone
// unless overwrite is set. It returns the paths written and reloads what
// it replaced.
func (s *Store) Seed(overwrite bool) ([]string, error) {
	if s.root == "" {
		return nil, ErrNoRoot
	}
	names := append([]string{""}, defaults.Apps()...)
	var (
		written []string
		apps    []string
		system  bool
	)
	for _, name := range names {
		path := s.path(name)
		if !overwrite {
			if _, err := os.Stat(path); err == nil {
				continue
			}
		}
		cfg, err := embedded(name)
		if err != nil {
			return written, err
		}
		if cfg == nil {
			cfg = make(Config)
		}
		if name == "" {
			applySystemDefaults(cfg)
			system = true
		} else {
			applyAppDefaults(name, cfg)
			apps = append(apps, name)
		}
		if err := writeConfig(path, cfg); err != nil {
			return written, fmt.Errorf("seed %s: %w", path, err)
		}
		written = append(written, path)
	}

	if system {
		if err := s.ReloadSystem(); err != nil {
			return written, err
		}
	}
	for _, name := range apps {
		if err := s.ReloadApp(name); err != nil {
			return written, err
		}
	}
	return written, nil
}
