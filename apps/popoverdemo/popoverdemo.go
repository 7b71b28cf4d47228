// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/popoverdemo/popoverdemo.go
// Summary: Interactive showcase of popover placement, styling and animation.
// Usage: texelpop --app popoverdemo. Tap a button to present its popover;
// keys: u resize, n centred popover, d dismiss, r rotate.
// Notes: Everything except Background runs on the host loop goroutine.

package popoverdemo

import (
	"context"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelpop/config"
	"github.com/framegrace/texelpop/geom"
	"github.com/framegrace/texelpop/popover"
	"github.com/framegrace/texelpop/texel"
)

// Name is the app name used for registration and its config file.
const Name = "popoverdemo"

const (
	buttonW = 96
	buttonH = 32
	edge    = 16
)

// settings are the demo's own knobs from apps/popoverdemo/config.json.
type settings struct {
	dimOverlay bool
	updateSize geom.Size
	updateTime time.Duration
	hotReload  bool
}

func loadSettings(cfg config.Config) settings {
	return settings{
		dimOverlay: cfg.GetBool(Name, "dim_overlay", true),
		updateSize: geom.Sz(cfg.GetFloat(Name, "update_width", 300), cfg.GetFloat(Name, "update_height", 200)),
		updateTime: time.Duration(cfg.GetInt(Name, "update_ms", 300)) * time.Millisecond,
		hotReload:  cfg.GetBool(Name, "hot_reload", true),
	}
}

// example is one button of the grid.
type example struct {
	title     string
	noTrigger bool
	// configure adjusts a copy of the theme and returns the content view.
	configure func(a *App, cfg *popover.Config) texel.Drawer
	shown     func(a *App)
}

type button struct {
	node  texel.NodeID
	label *texel.Label
	ex    *example
}

// App is the popover demo.
type App struct {
	host     *texel.Host
	manager  *popover.Manager
	theme    *popover.Config
	settings settings

	buttons []button
	status  *texel.Label
	statusN texel.NodeID

	full    geom.Size
	rotated bool
}

// New builds the demo from the system theme and the app settings.
func New(system, app config.Config) *App {
	a := &App{settings: loadSettings(app)}
	a.setTheme(system)
	return a
}

func (a *App) setTheme(system config.Config) {
	theme, err := popover.FromConfig(system)
	if err != nil {
		log.Printf("PopoverDemo: theme has problems, defaults kept: %v", err)
	}
	a.theme = theme
}

// Theme returns the popover config all examples start from.
func (a *App) Theme() *popover.Config { return a.theme }

// Manager returns the demo's presentation manager.
func (a *App) Manager() *popover.Manager { return a.manager }

func (a *App) examples() []*example {
	return []*example{
		{title: "Basic", configure: basicExample},
		{title: "Gradient", configure: gradientExample},
		{title: "Code", configure: codeExample},
		{title: "Offset", configure: offsetExample(false)},
		{title: "Centred", noTrigger: true, configure: centredExample},
		{title: "Follow", configure: offsetExample(true)},
		{title: "Bouncy", configure: bouncyExample},
		{title: "Update", configure: basicExample, shown: func(a *App) { a.update() }},
		{title: "Square", configure: squareExample},
	}
}

// Attach implements devshell.App.
func (a *App) Attach(host *texel.Host) error {
	a.host = host
	a.manager = popover.NewManager(host)
	a.full = host.ScreenSize()
	tree := host.Tree()
	root := host.MainWindow()

	for _, ex := range a.examples() {
		b := button{
			node:  tree.NewNode(geom.Rect{}),
			label: &texel.Label{Text: ex.title, Style: tcell.StyleDefault.Foreground(tcell.ColorBlack), Align: texel.AlignCenter, Middle: true},
			ex:    ex,
		}
		tree.SetFill(b.node, texel.Fill{Color: tcell.ColorSilver, Opacity: 1})
		tree.SetDrawer(b.node, b.label)
		node := b.node
		tree.SetTapHandler(node, func() { a.present(ex, node) })
		if err := tree.Attach(root, b.node); err != nil {
			return fmt.Errorf("attach button %s: %w", ex.title, err)
		}
		a.buttons = append(a.buttons, b)
	}

	a.status = &texel.Label{Text: "tap a button · u resize · n centred · d dismiss · r rotate", Style: tcell.StyleDefault.Foreground(tcell.ColorGray)}
	a.statusN = tree.NewNode(geom.Rect{})
	tree.SetDrawer(a.statusN, a.status)
	if err := tree.Attach(root, a.statusN); err != nil {
		return fmt.Errorf("attach status: %w", err)
	}

	host.Events().Subscribe(texel.ListenerFunc(func(ev texel.Event) {
		if ev.Type == texel.EventScreenResized {
			a.layout()
		}
	}))
	a.layout()
	return nil
}

// layout places the buttons on a 3×3 grid touching the screen edges so each
// popover direction gets exercised.
func (a *App) layout() {
	tree := a.host.Tree()
	size := a.host.ScreenSize()
	m := a.host.Metrics()
	cols := []float64{edge, math.Floor((size.W - buttonW) / 2), size.W - buttonW - edge}
	rows := []float64{m.H, math.Floor((size.H - buttonH) / 2), size.H - buttonH - 2*m.H}
	for i, b := range a.buttons {
		tree.SetFrame(b.node, geom.R(cols[i%3], rows[i/3], buttonW, buttonH))
	}
	tree.SetFrame(a.statusN, geom.R(0, size.H-m.H, size.W, m.H))
}

func (a *App) setStatus(format string, args ...interface{}) {
	a.status.Text = fmt.Sprintf(format, args...)
	a.host.Tree().Invalidate()
}

// present shows ex, pointing at trigger unless the example is centred.
func (a *App) present(ex *example, trigger texel.NodeID) {
	cfg := a.theme.Clone()
	if a.settings.dimOverlay && cfg.OverlayOpacity == 0 {
		cfg.OverlayColor = tcell.ColorBlack
		cfg.OverlayOpacity = 0.35
	}
	drawer := ex.configure(a, cfg)
	tree := a.host.Tree()
	content := tree.NewNode(geom.Rect{})
	tree.SetDrawer(content, drawer)
	if ex.noTrigger {
		trigger = texel.NoNode
	}

	var session *popover.Session
	onShown := func() {
		a.setStatus("%s: shown on the %s", ex.title, session.View().Side())
		if ex.shown != nil {
			ex.shown(a)
		}
	}
	onDismiss := func() {
		tree.Remove(content)
		a.setStatus("%s: dismissed", ex.title)
	}
	s, err := a.manager.Show(trigger, texel.NoNode, content, cfg, onShown, onDismiss)
	if err != nil {
		tree.Remove(content)
		log.Printf("PopoverDemo: show %s failed: %v", ex.title, err)
		a.setStatus("%s: %v", ex.title, err)
		return
	}
	session = s
}

func (a *App) update() {
	sz := a.settings.updateSize
	err := a.manager.Update(sz.W, sz.H, a.settings.updateTime, func() {
		a.setStatus("resized to %.0f×%.0f", sz.W, sz.H)
	})
	if err != nil {
		a.setStatus("%v", err)
	}
}

// rotate toggles between the full screen and a narrow portrait area, which
// the host announces like a device rotation.
func (a *App) rotate() {
	if a.rotated {
		a.rotated = false
		a.host.Resize(a.full)
		return
	}
	a.full = a.host.ScreenSize()
	a.rotated = true
	a.host.Resize(geom.Sz(math.Floor(a.full.W/2), a.full.H))
}

// HandleKey implements devshell.App.
func (a *App) HandleKey(ev *tcell.EventKey) bool {
	if ev.Key() != tcell.KeyRune {
		if ev.Key() == tcell.KeyEscape {
			a.manager.Dismiss()
			return true
		}
		return false
	}
	switch ev.Rune() {
	case 'u':
		a.update()
	case 'n':
		for _, b := range a.buttons {
			if b.ex.noTrigger {
				a.present(b.ex, texel.NoNode)
			}
		}
	case 'd':
		a.manager.Dismiss()
	case 'r':
		a.rotate()
	default:
		return false
	}
	return true
}

// Background implements devshell.BackgroundApp: it follows edits to the
// system config, re-theming subsequent popovers, and to the demo's own file.
func (a *App) Background(ctx context.Context, host *texel.Host) error {
	if !a.settings.hotReload {
		return nil
	}
	err := config.Default().Watch(ctx, func(name string, cfg config.Config) {
		host.Loop().Post(func() { a.reloaded(name, cfg) })
	})
	if err != nil {
		// Hot reload is optional; keep the demo running.
		log.Printf("PopoverDemo: config watch unavailable: %v", err)
	}
	return nil
}

// reloaded applies a config file that changed on disk.
func (a *App) reloaded(name string, cfg config.Config) {
	switch name {
	case "":
		a.setTheme(cfg)
		a.setStatus("theme reloaded")
	case Name:
		a.settings = loadSettings(cfg)
		a.setStatus("settings reloaded")
	}
}
