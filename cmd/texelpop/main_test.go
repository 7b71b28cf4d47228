// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/term"

	"github.com/framegrace/texelpop/config"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := rootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func run(ctx context.Context, args ...string) error {
	cmd := rootCmd()
	cmd.SetArgs(args)
	return cmd.ExecuteContext(ctx)
}

func TestDefaultsPrintsEmbeddedSystemConfig(t *testing.T) {
	out, err := execute(t, "defaults")
	require.NoError(t, err)
	var cfg map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &cfg))
	assert.Contains(t, cfg, "popover")
	assert.Contains(t, cfg, "host")
}

func TestDefaultsForApp(t *testing.T) {
	out, err := execute(t, "defaults", "--app", "popoverdemo")
	require.NoError(t, err)
	assert.Contains(t, out, "update_width")

	_, err = execute(t, "defaults", "--app", "nope")
	assert.Error(t, err)
}

func TestAppsListsDemo(t *testing.T) {
	out, err := execute(t, "apps")
	require.NoError(t, err)
	var got struct {
		Registered []string `json:"registered"`
		Configured []string `json:"configured"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Contains(t, got.Registered, "popoverdemo")
	assert.Contains(t, got.Configured, "popoverdemo")
}

func TestRootRefusesNonTerminal(t *testing.T) {
	if term.IsTerminal(int(os.Stdout.Fd())) {
		t.Skip("stdout is a terminal")
	}
	err := run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a terminal")
}

// useStore points the commands at a fresh store under a temp dir.
func useStore(t *testing.T) *config.Store {
	t.Helper()
	store := config.NewStore(t.TempDir())
	prev := openStore
	openStore = func() *config.Store { return store }
	t.Cleanup(func() { openStore = prev })
	return store
}

func TestApplyThemeMergesYAML(t *testing.T) {
	store := useStore(t)
	path := filepath.Join(t.TempDir(), "dark.yaml")
	require.NoError(t, os.WriteFile(path, []byte("popover:\n  background_color: navy\n  width: 200\n"), 0o600))

	require.NoError(t, applyTheme(store, path))
	sys := store.System()
	assert.Equal(t, "navy", sys.GetString("popover", "background_color", ""))
	assert.Equal(t, 200.0, sys.GetFloat("popover", "width", 0))
	assert.Equal(t, 16.0, sys.GetFloat("host", "cell_height", 0))

	require.NoError(t, store.ReloadSystem())
	assert.Equal(t, "navy", store.System().GetString("popover", "background_color", ""))

	assert.Error(t, applyTheme(store, filepath.Join(t.TempDir(), "missing.json")))
}

func TestDefaultsWriteSeedsConfigDir(t *testing.T) {
	store := useStore(t)
	appPath := filepath.Join(store.Root(), "apps", "popoverdemo", "config.json")

	out, err := execute(t, "defaults", "--write")
	require.NoError(t, err)
	assert.Equal(t, "wrote "+appPath+"\n", out)
	_, err = os.Stat(appPath)
	require.NoError(t, err)

	out, err = execute(t, "defaults", "--write")
	require.NoError(t, err)
	assert.Contains(t, out, "--force")

	out, err = execute(t, "defaults", "--write", "--force")
	require.NoError(t, err)
	assert.Contains(t, out, "wrote "+store.SystemPath())
	assert.Contains(t, out, "wrote "+appPath)
}

func TestSetupLoggingCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "x.log")
	t.Cleanup(func() { log.SetOutput(os.Stderr) })
	f, err := setupLogging(path)
	require.NoError(t, err)
	defer f.Close()
	_, err = os.Stat(path)
	assert.NoError(t, err)
}
