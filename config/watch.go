// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/watch.go
// Summary: Reloads store files when they change on disk.
// Notes: Directories are watched rather than files so editors that replace
// a file by rename are still noticed.

package config

import (
	"context"
	"fmt"
	"log"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch follows texelpop.json and the files of every app loaded so far.
// When one is written, created or renamed into place it is reloaded and
// onChange gets the fresh config, with an empty name for the system config.
// A reload that fails is logged and the previous config kept. Watch blocks
// until ctx is done.
func (s *Store) Watch(ctx context.Context, onChange func(name string, cfg Config)) error {
	if s.root == "" {
		return ErrNoRoot
	}
	notify := func(name string, cfg Config) {
		if onChange != nil {
			onChange(name, cfg)
		}
	}
	targets := map[string]func(){
		s.path(""): func() {
			if err := s.ReloadSystem(); err != nil {
				log.Printf("Config: Reload of system config failed: %v", err)
				return
			}
			notify("", s.System())
		},
	}
	for _, name := range s.loadedApps() {
		targets[s.path(name)] = func() {
			if err := s.ReloadApp(name); err != nil {
				log.Printf("Config: Reload of app %q config failed: %v", name, err)
				return
			}
			notify(name, s.App(name))
		}
	}
	return watchFiles(ctx, targets)
}

// watchFiles calls the function keyed by a file's path whenever that file
// changes. Files whose directory cannot be watched are skipped.
func watchFiles(ctx context.Context, targets map[string]func()) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	fire := make(map[string]func(), len(targets))
	dirs := make(map[string]bool)
	for path, fn := range targets {
		dir := filepath.Dir(path)
		if !dirs[dir] {
			if err := w.Add(dir); err != nil {
				log.Printf("Config: Not watching %s: %v", dir, err)
				continue
			}
			dirs[dir] = true
		}
		fire[filepath.Clean(path)] = fn
	}
	if len(fire) == 0 {
		return fmt.Errorf("config: nothing to watch")
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			fn, ok := fire[filepath.Clean(ev.Name)]
			if !ok {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) {
				fn()
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Printf("Config: Watcher error: %v", err)
		}
	}
}
