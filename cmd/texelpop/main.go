// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/texelpop/main.go
// Summary: Command line entry for the popover demo and its config.
// Usage: texelpop [--app name] [--theme file.yaml]; texelpop defaults [--write].

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	_ "github.com/framegrace/texelpop/apps/popoverdemo"
	"github.com/framegrace/texelpop/config"
	"github.com/framegrace/texelpop/defaults"
	"github.com/framegrace/texelpop/internal/devshell"
)

// openStore returns the config store commands work on.
var openStore = config.Default

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		appName string
		theme   string
		logPath string
	)

	cmd := &cobra.Command{
		Use:   "texelpop [args...]",
		Short: "Anchored popovers for tcell terminals",
		Long: `texelpop runs a hosted app on the current terminal.

The default app is the popover demo: tap a button to present a popover
pointing at it. Ctrl-C quits.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !term.IsTerminal(int(os.Stdout.Fd())) {
				return fmt.Errorf("stdout is not a terminal")
			}
			logFile, err := setupLogging(logPath)
			if err != nil {
				return fmt.Errorf("setup logging: %w", err)
			}
			if logFile != nil {
				defer logFile.Close()
			}

			store := openStore()
			if theme != "" {
				if err := applyTheme(store, theme); err != nil {
					return err
				}
			}
			if appName == "" {
				appName = store.System().GetString("", "defaultApp", "popoverdemo")
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return devshell.RunApp(ctx, appName, args, devshell.OptionsFromConfig(store.System()))
		},
	}

	cmd.Flags().StringVarP(&appName, "app", "a", "", "app to run (default from texelpop.json)")
	cmd.Flags().StringVarP(&theme, "theme", "t", "", "JSON or YAML file merged over the system config")
	cmd.Flags().StringVar(&logPath, "log", "", "log file (default under the user config dir)")

	cmd.AddCommand(defaultsCmd(), appsCmd())
	return cmd
}

// applyTheme layers a theme file over the system config for this run. The
// theme stays in place when texelpop.json is reloaded.
func applyTheme(store *config.Store, path string) error {
	theme, err := config.LoadFile(path)
	if err != nil {
		return fmt.Errorf("load theme: %w", err)
	}
	store.SetTheme(theme)
	return nil
}

func defaultsCmd() *cobra.Command {
	var (
		app       string
		write     bool
		overwrite bool
	)
	cmd := &cobra.Command{
		Use:   "defaults",
		Short: "Print the embedded default config, or write it to the config dir",
		RunE: func(cmd *cobra.Command, args []string) error {
			if write {
				return seedDefaults(cmd, overwrite)
			}
			var (
				data []byte
				err  error
			)
			if app == "" {
				data, err = defaults.SystemConfig()
			} else {
				data, err = defaults.AppConfig(app)
			}
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().StringVar(&app, "app", "", "print this app's defaults instead")
	cmd.Flags().BoolVar(&write, "write", false, "write texelpop.json and every app config that is missing")
	cmd.Flags().BoolVar(&overwrite, "force", false, "with --write, replace existing files")
	return cmd
}

func seedDefaults(cmd *cobra.Command, overwrite bool) error {
	written, err := openStore().Seed(overwrite)
	for _, path := range written {
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
	}
	if err != nil {
		return fmt.Errorf("write defaults: %w", err)
	}
	if len(written) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "all config files exist; use --force to replace them")
	}
	return nil
}

func appsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "apps",
		Short: "List runnable apps",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := struct {
				Registered []string `json:"registered"`
				Configured []string `json:"configured"`
			}{devshell.Names(), defaults.Apps()}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		},
	}
}
