// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/popoverdemo/register.go
// Summary: Registers the popover demo with the dev shell.

package popoverdemo

import (
	"log"

	"github.com/framegrace/texelpop/config"
	"github.com/framegrace/texelpop/internal/devshell"
)

func init() {
	devshell.Register(Name, func(_ []string) (devshell.App, error) {
		if err := config.Err(); err != nil {
			log.Printf("PopoverDemo: config unavailable, using defaults: %v", err)
		}
		return New(config.System(), config.App(Name)), nil
	})
}
