// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/popoverdemo/examples.go
// Summary: Per-button popover configurations.

package popoverdemo

import (
	"log"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelpop/geom"
	"github.com/framegrace/texelpop/popover"
	"github.com/framegrace/texelpop/texel"
)

var textInsets = geom.Insets{Top: 16, Left: 16, Bottom: 16, Right: 16}

// sizeForText fits cfg around text plus insets and the pointer.
func sizeForText(a *App, cfg *popover.Config, text string) {
	sz := texel.MeasureLabel(text, a.host.Metrics())
	angle := cfg.EffectiveAngleSize()
	cfg.ContentInsets = textInsets
	cfg.Width = sz.W + textInsets.Left + textInsets.Right
	cfg.Height = sz.H + textInsets.Top + textInsets.Bottom + angle.H
}

func textContent(text string, fg tcell.Color) texel.Drawer {
	return texel.NewLabel(text, tcell.StyleDefault.Foreground(fg))
}

func basicExample(a *App, cfg *popover.Config) texel.Drawer {
	const text = "A popover anchored to its trigger.\n\nTap outside to dismiss."
	sizeForText(a, cfg, text)
	return textContent(text, tcell.ColorBlack)
}

func gradientExample(a *App, cfg *popover.Config) texel.Drawer {
	const text = "Gradient fill,\ntop to bottom."
	sizeForText(a, cfg, text)
	g, err := popover.EvenGradient(popover.DefaultGradientStart, popover.DefaultGradientEnd,
		tcell.ColorPurple, tcell.ColorTeal)
	if err != nil {
		log.Printf("PopoverDemo: gradient: %v", err)
	}
	cfg.Gradient = g
	return textContent(text, tcell.ColorWhite)
}

func codeExample(a *App, cfg *popover.Config) texel.Drawer {
	code := NewCodeView("main.go", sampleSource, "")
	m := a.host.Metrics()
	cfg.ContentInsets = geom.Insets{Top: m.H, Left: 2 * m.W, Bottom: m.H, Right: 2 * m.W}
	cfg.Width = float64(code.Columns()+4) * m.W
	cfg.Height = float64(code.Lines()+2)*m.H + cfg.EffectiveAngleSize().H
	if code.Background != tcell.ColorDefault {
		cfg.BackgroundColor = code.Background
	}
	return code
}

func offsetExample(follow bool) func(a *App, cfg *popover.Config) texel.Drawer {
	return func(a *App, cfg *popover.Config) texel.Drawer {
		text := "Shifted 48pt right.\nThe pointer stays\non the trigger."
		if follow {
			text = "Shifted 48pt right.\nThe pointer moves\nwith the popover."
		}
		sizeForText(a, cfg, text)
		cfg.Offset = geom.Offset{Horizontal: 48}
		cfg.AngleFollowsOffset = follow
		return textContent(text, tcell.ColorBlack)
	}
}

func centredExample(a *App, cfg *popover.Config) texel.Drawer {
	const text = "No trigger:\ncentred, no pointer."
	cfg.HideAngle = true
	sizeForText(a, cfg, text)
	return textContent(text, tcell.ColorBlack)
}

func bouncyExample(a *App, cfg *popover.Config) texel.Drawer {
	const text = "Low damping,\nfast spring."
	sizeForText(a, cfg, text)
	cfg.DampingRatio = 0.3
	cfg.SpringVelocity = 6
	cfg.EntranceDuration = 900 * time.Millisecond
	return textContent(text, tcell.ColorBlack)
}

func squareExample(a *App, cfg *popover.Config) texel.Drawer {
	const text = "Square corners,\nhidden pointer."
	cfg.HideAngle = true
	cfg.CornerRadius = 0
	sizeForText(a, cfg, text)
	return textContent(text, tcell.ColorBlack)
}
