// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/embedded.go
// Summary: Parsed configs compiled into the binary from defaults/.

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"sync"

	"github.com/framegrace/texelpop/defaults"
)

var (
	embeddedMu sync.Mutex
	// Parsed once per name; "" is the system config. A nil entry means the
	// app ships no file.
	embeddedParsed = make(map[string]Config)
)

// embedded returns a private copy of the embedded config of app, or of the
// system config when app is empty. Apps without an embedded file give nil.
func embedded(app string) (Config, error) {
	embeddedMu.Lock()
	defer embeddedMu.Unlock()

	cfg, ok := embeddedParsed[app]
	if !ok {
		var (
			data []byte
			err  error
		)
		if app == "" {
			data, err = defaults.SystemConfig()
		} else {
			data, err = defaults.AppConfig(app)
		}
		switch {
		case app != "" && errors.Is(err, fs.ErrNotExist):
			embeddedParsed[app] = nil
			return nil, nil
		case err != nil:
			return nil, err
		}
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("embedded %q: %w", app, err)
		}
		embeddedParsed[app] = cfg
	}
	return Clone(cfg), nil
}
