// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/file.go
// Summary: Loads standalone theme files in JSON or YAML.
// Usage: texelpop --theme dark.yaml; sections use the same keys as texelpop.json.

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadFile reads a config file outside the store. Files ending in .yaml or
// .yml are decoded as YAML, everything else as JSON.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data, filepath.Ext(path))
}

// Parse decodes data according to ext (".json", ".yaml" or ".yml").
func Parse(data []byte, ext string) (Config, error) {
	var cfg Config
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("config: yaml: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("config: json: %w", err)
		}
	}
	if cfg == nil {
		cfg = make(Config)
	}
	return cfg, nil
}

// Merge overlays the sections of src onto dst key by key. Root-level values
// in src replace those in dst.
func Merge(dst, src Config) Config {
	if dst == nil {
		dst = make(Config)
	}
	for name, raw := range src {
		section := src.Section(name)
		if section == nil {
			dst[name] = raw
			continue
		}
		target := dst.Section(name)
		if target == nil {
			target = make(Section, len(section))
			dst[name] = target
		}
		for k, v := range section {
			target[k] = v
		}
	}
	return dst
}
