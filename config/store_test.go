// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func readDisk(t *testing.T, path string) Config {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	var disk Config
	if err := json.Unmarshal(data, &disk); err != nil {
		t.Fatalf("unmarshal %s: %v", path, err)
	}
	return disk
}

func TestSystemDefaultsWritten(t *testing.T) {
	root := t.TempDir()
	s := NewStore(root)
	if err := s.Err(); err != nil {
		t.Fatalf("Err: %v", err)
	}

	cfg := s.System()
	if cfg.GetString("", "defaultApp", "") == "" {
		t.Fatalf("expected defaultApp to be set")
	}
	if got := cfg.GetInt("host", "cell_width", 0); got != 8 {
		t.Fatalf("expected cell_width 8, got %d", got)
	}

	path := s.SystemPath()
	if path != filepath.Join(root, "texelpop.json") {
		t.Fatalf("unexpected system config path %q", path)
	}
	disk := readDisk(t, path)
	if disk.Section("popover") == nil {
		t.Fatalf("expected popover section to be present")
	}
	if got := disk.GetFloats("popover", "angle_size", nil); len(got) != 2 || got[0] != 20 || got[1] != 10 {
		t.Fatalf("expected angle_size [20 10], got %v", got)
	}
}

func TestSystemDefaultsFillMissingKeys(t *testing.T) {
	root := t.TempDir()
	if err := writeConfig(filepath.Join(root, "texelpop.json"), Config{
		"popover": map[string]interface{}{"width": 200.0},
	}); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg := NewStore(root).System()
	if got := cfg.GetFloat("popover", "width", 0); got != 200 {
		t.Fatalf("expected width from disk, got %v", got)
	}
	if got := cfg.GetFloat("popover", "height", 0); got != 324 {
		t.Fatalf("expected default height, got %v", got)
	}
}

func TestInMemoryStore(t *testing.T) {
	s := NewStore("")
	if got := s.System().GetInt("host", "cell_height", 0); got != 16 {
		t.Fatalf("expected cell_height 16, got %d", got)
	}
	if got := s.App("popoverdemo").GetFloat("popoverdemo", "update_width", 0); got != 300 {
		t.Fatalf("expected embedded app defaults, got %v", got)
	}
	if s.SystemPath() != "" {
		t.Fatalf("expected no path, got %q", s.SystemPath())
	}
	if _, err := s.Seed(false); !errors.Is(err, ErrNoRoot) {
		t.Fatalf("expected ErrNoRoot from Seed, got %v", err)
	}
	if err := s.Watch(context.Background(), nil); !errors.Is(err, ErrNoRoot) {
		t.Fatalf("expected ErrNoRoot from Watch, got %v", err)
	}
}

func TestAppDefaultsWritten(t *testing.T) {
	s := NewStore(t.TempDir())
	cfg := s.App("popoverdemo")
	if cfg.Section("popoverdemo") == nil {
		t.Fatalf("expected popoverdemo section to be present")
	}
	if _, err := os.Stat(s.path("popoverdemo")); err != nil {
		t.Fatalf("expected app config to be written: %v", err)
	}
	if s.App("") != nil {
		t.Fatalf("expected nil for an empty app name")
	}
}

func TestUnknownAppIsNotWritten(t *testing.T) {
	s := NewStore(t.TempDir())
	if cfg := s.App("nothing-here"); cfg == nil {
		t.Fatalf("expected an empty config")
	}
	if _, err := os.Stat(s.path("nothing-here")); !os.IsNotExist(err) {
		t.Fatalf("expected no file for an app without defaults, got %v", err)
	}
}

func TestThemeSurvivesReload(t *testing.T) {
	s := NewStore(t.TempDir())
	theme := Config{"popover": map[string]interface{}{"background_color": "navy"}}
	s.SetTheme(theme)
	theme["popover"].(map[string]interface{})["background_color"] = "red"

	if got := s.System().GetString("popover", "background_color", ""); got != "navy" {
		t.Fatalf("expected themed background, got %q", got)
	}
	if got := s.System().GetFloat("popover", "width", 0); got != 375 {
		t.Fatalf("expected width from the file layer, got %v", got)
	}

	if err := writeConfig(s.SystemPath(), Config{
		"popover": map[string]interface{}{"width": 200.0, "background_color": "white"},
	}); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if err := s.ReloadSystem(); err != nil {
		t.Fatalf("ReloadSystem: %v", err)
	}
	sys := s.System()
	if got := sys.GetString("popover", "background_color", ""); got != "navy" {
		t.Fatalf("theme lost on reload, background %q", got)
	}
	if got := sys.GetFloat("popover", "width", 0); got != 200 {
		t.Fatalf("expected reloaded width, got %v", got)
	}

	s.SetTheme(nil)
	if got := s.System().GetString("popover", "background_color", ""); got != "white" {
		t.Fatalf("expected file background after clearing the theme, got %q", got)
	}
	if s.Theme() != nil {
		t.Fatalf("expected no theme")
	}
}

func TestReloadSystemKeepsLastGoodFile(t *testing.T) {
	s := NewStore(t.TempDir())
	if err := writeConfig(s.SystemPath(), Config{
		"popover": map[string]interface{}{"width": 222.0},
	}); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if err := s.ReloadSystem(); err != nil {
		t.Fatalf("ReloadSystem: %v", err)
	}

	if err := os.WriteFile(s.SystemPath(), []byte(`{"popover": {`), 0o644); err != nil {
		t.Fatalf("write broken config: %v", err)
	}
	if err := s.ReloadSystem(); err == nil {
		t.Fatalf("expected a parse error")
	}
	if s.Err() == nil {
		t.Fatalf("expected Err to report the failed reload")
	}
	if got := s.System().GetFloat("popover", "width", 0); got != 222 {
		t.Fatalf("expected last good width, got %v", got)
	}
}

func TestReloadAppPicksUpEdits(t *testing.T) {
	s := NewStore(t.TempDir())
	if !s.App("popoverdemo").GetBool("popoverdemo", "dim_overlay", false) {
		t.Fatalf("expected embedded dim_overlay true")
	}
	if err := writeConfig(s.path("popoverdemo"), Config{
		"popoverdemo": map[string]interface{}{"dim_overlay": false},
	}); err != nil {
		t.Fatalf("write app config: %v", err)
	}
	if err := s.ReloadApp("popoverdemo"); err != nil {
		t.Fatalf("ReloadApp: %v", err)
	}
	cfg := s.App("popoverdemo")
	if cfg.GetBool("popoverdemo", "dim_overlay", true) {
		t.Fatalf("expected edited dim_overlay false")
	}
	if got := cfg.GetInt("popoverdemo", "update_ms", 0); got != 300 {
		t.Fatalf("expected defaults filled in, got %d", got)
	}
	if err := s.ReloadApp(""); err == nil {
		t.Fatalf("expected an error for an empty app name")
	}
}

func TestSeedWritesShippedFiles(t *testing.T) {
	s := NewStore(t.TempDir())
	appPath := s.path("popoverdemo")

	written, err := s.Seed(false)
	if err != nil {
		t.Fatalf("Seed: %v", err)
	}
	if len(written) != 1 || written[0] != appPath {
		t.Fatalf("expected only the app file, got %v", written)
	}
	if disk := readDisk(t, appPath); disk.GetFloat("popoverdemo", "update_width", 0) != 300 {
		t.Fatalf("unexpected seeded app file %v", disk)
	}

	if err := writeConfig(s.SystemPath(), Config{
		"popover": map[string]interface{}{"width": 10.0},
	}); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if written, err = s.Seed(false); err != nil || len(written) != 0 {
		t.Fatalf("expected nothing written, got %v, %v", written, err)
	}

	written, err = s.Seed(true)
	if err != nil {
		t.Fatalf("Seed overwrite: %v", err)
	}
	if len(written) != 2 || written[0] != s.SystemPath() {
		t.Fatalf("expected system and app files, got %v", written)
	}
	if got := s.System().GetFloat("popover", "width", 0); got != 375 {
		t.Fatalf("expected store reloaded from seeded file, got %v", got)
	}
}

func TestCloneIsDeep(t *testing.T) {
	orig := Config{
		"defaultApp": "popoverdemo",
		"popover": map[string]interface{}{
			"angle_size": []interface{}{20.0, 10.0},
			"gradient": map[string]interface{}{"colors": []string{"navy", "teal"}},
		},
	}
	clone := Clone(orig)
	clone["defaultApp"] = "other"
	section := clone.Section("popover")
	section["angle_size"].([]interface{})[0] = 1.0
	section["gradient"].(map[string]interface{})["colors"].([]string)[0] = "red"
	section["width"] = 5.0

	if got := orig.GetString("", "defaultApp", ""); got != "popoverdemo" {
		t.Fatalf("root value leaked: %q", got)
	}
	if got := orig.GetFloats("popover", "angle_size", nil); got[0] != 20 {
		t.Fatalf("list leaked: %v", got)
	}
	inner := orig.Section("popover")["gradient"].(map[string]interface{})
	if got := inner["colors"].([]string)[0]; got != "navy" {
		t.Fatalf("nested list leaked: %q", got)
	}
	if _, ok := orig.Section("popover")["width"]; ok {
		t.Fatalf("new key leaked into the original")
	}
	if Clone(nil) != nil {
		t.Fatalf("expected nil clone of nil")
	}
}

func TestListGetters(t *testing.T) {
	cfg := Config{
		"popover": map[string]interface{}{
			"offset":  []interface{}{4.0, -2},
			"mixed":   []interface{}{1.0, "x"},
			"colors":  []interface{}{"red", "blue"},
			"scalar":  3.0,
			"numbers": []float64{1, 2},
		},
	}
	if got := cfg.GetFloats("popover", "offset", nil); len(got) != 2 || got[0] != 4 || got[1] != -2 {
		t.Fatalf("unexpected offset %v", got)
	}
	if got := cfg.GetFloats("popover", "mixed", nil); got != nil {
		t.Fatalf("expected default for mixed list, got %v", got)
	}
	if got := cfg.GetFloats("popover", "scalar", []float64{9}); len(got) != 1 || got[0] != 9 {
		t.Fatalf("expected default for scalar, got %v", got)
	}
	if got := cfg.GetFloats("popover", "numbers", nil); len(got) != 2 {
		t.Fatalf("expected typed slice to pass through, got %v", got)
	}
	if got := cfg.GetStrings("popover", "colors", nil); len(got) != 2 || got[1] != "blue" {
		t.Fatalf("unexpected colors %v", got)
	}
	if got := cfg.GetStrings("popover", "offset", nil); got != nil {
		t.Fatalf("expected default for numeric list, got %v", got)
	}
}

func TestParseYAMLTheme(t *testing.T) {
	cfg, err := Parse([]byte(`
popover:
  background_color: "#313244"
  corner_radius: 4
  angle_size: [16, 8]
  gradient_colors: [navy, teal]
`), ".yaml")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := cfg.GetString("popover", "background_color", ""); got != "#313244" {
		t.Fatalf("unexpected background %q", got)
	}
	if got := cfg.GetFloat("popover", "corner_radius", 0); got != 4 {
		t.Fatalf("unexpected radius %v", got)
	}
	if got := cfg.GetFloats("popover", "angle_size", nil); len(got) != 2 || got[0] != 16 {
		t.Fatalf("unexpected angle_size %v", got)
	}
	if got := cfg.GetStrings("popover", "gradient_colors", nil); len(got) != 2 || got[0] != "navy" {
		t.Fatalf("unexpected gradient colours %v", got)
	}

	if _, err := Parse([]byte("popover: [unterminated"), ".yml"); err == nil {
		t.Fatalf("expected yaml error")
	}
}

func TestLoadFileJSONAndMerge(t *testing.T) {
	path := filepath.Join(t.TempDir(), "theme.json")
	if err := os.WriteFile(path, []byte(`{"popover": {"width": 120}, "defaultApp": "x"}`), 0644); err != nil {
		t.Fatalf("write theme: %v", err)
	}
	theme, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}

	base := Config{"popover": map[string]interface{}{"width": 375.0, "height": 324.0}}
	merged := Merge(Clone(base), theme)
	if got := merged.GetFloat("popover", "width", 0); got != 120 {
		t.Fatalf("expected theme width, got %v", got)
	}
	if got := merged.GetFloat("popover", "height", 0); got != 324 {
		t.Fatalf("expected base height kept, got %v", got)
	}
	if got := merged.GetString("", "defaultApp", ""); got != "x" {
		t.Fatalf("expected root value replaced, got %q", got)
	}
	if got := base.GetFloat("popover", "width", 0); got != 375 {
		t.Fatalf("base must not change, got %v", got)
	}
}

// keepWriting rewrites path until got receives or the deadline passes.
func keepWriting(t *testing.T, path string, data []byte, got <-chan struct{}) {
	t.Helper()
	deadline := time.After(5 * time.Second)
	tick := time.NewTicker(50 * time.Millisecond)
	defer tick.Stop()
	for {
		select {
		case <-got:
			return
		case <-tick.C:
			if err := os.WriteFile(path, data, 0o644); err != nil {
				t.Fatalf("write: %v", err)
			}
			_ = os.WriteFile(filepath.Join(filepath.Dir(path), "other.json"), data, 0o644)
		case <-deadline:
			t.Fatalf("watcher never fired")
		}
	}
}

func TestWatchFilesFiresOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "texelpop.json")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	fired := make(chan struct{}, 16)
	done := make(chan error, 1)
	go func() {
		done <- watchFiles(ctx, map[string]func(){
			path: func() {
				select {
				case fired <- struct{}{}:
				default:
				}
			},
			filepath.Join(dir, "missing", "config.json"): func() {},
		})
	}()

	keepWriting(t, path, []byte(`{}`), fired)

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("watchFiles: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("watcher did not stop")
	}
}

func TestStoreWatchReloadsAppFile(t *testing.T) {
	s := NewStore(t.TempDir())
	s.App("popoverdemo")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	got := make(chan struct{}, 16)
	go func() {
		_ = s.Watch(ctx, func(name string, cfg Config) {
			if name != "popoverdemo" || cfg.GetFloat("popoverdemo", "update_width", 0) != 120 {
				return
			}
			select {
			case got <- struct{}{}:
			default:
			}
		})
	}()

	keepWriting(t, s.path("popoverdemo"), []byte(`{"popoverdemo": {"update_width": 120}}`), got)
	if w := s.App("popoverdemo").GetFloat("popoverdemo", "update_width", 0); w != 120 {
		t.Fatalf("expected cached app config reloaded, got %v", w)
	}
}
