// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/devshell/runner.go
// Summary: Runs a hosted app on a local tcell screen.
// Usage: cmd/texelpop registers apps and calls RunApp; tests swap the screen
// factory for a simulation screen.
// Notes: Host state is only touched from the loop goroutine. The event pump
// and app background work talk to it through channels and the run loop.

package devshell

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/sync/errgroup"

	"github.com/framegrace/texelpop/config"
	"github.com/framegrace/texelpop/texel"
)

// App builds its views on a host and reacts to keys the host does not use.
type App interface {
	Attach(host *texel.Host) error
	HandleKey(ev *tcell.EventKey) bool
}

// BackgroundApp is an App with work that runs off the loop until ctx ends,
// such as watching files. It must reach the host only through
// host.Loop().Post. A returned error stops the shell.
type BackgroundApp interface {
	App
	Background(ctx context.Context, host *texel.Host) error
}

// Builder constructs an App, optionally using CLI args.
type Builder func(args []string) (App, error)

// Options tunes the shell.
type Options struct {
	Metrics    texel.CellMetrics
	Background tcell.Style
	FPS        int
}

const defaultFPS = 60

var errQuit = errors.New("devshell: quit")

var (
	registryMu sync.RWMutex
	registry   = map[string]Builder{}
)

// Register makes an app available to RunApp under name.
func Register(name string, builder Builder) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = builder
}

// Names lists registered apps in order.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var screenFactory = tcell.NewScreen

// SetScreenFactory overrides the screen factory used by Run. Passing nil restores the default.
func SetScreenFactory(factory func() (tcell.Screen, error)) {
	if factory == nil {
		screenFactory = tcell.NewScreen
		return
	}
	screenFactory = factory
}

// OptionsFromConfig reads the host section.
func OptionsFromConfig(cfg config.Config) Options {
	bg := tcell.GetColor(cfg.GetString("host", "background", "black"))
	return Options{
		Metrics: texel.CellMetrics{
			W: cfg.GetFloat("host", "cell_width", texel.DefaultMetrics.W),
			H: cfg.GetFloat("host", "cell_height", texel.DefaultMetrics.H),
		},
		Background: tcell.StyleDefault.Background(bg),
		FPS:        cfg.GetInt("host", "fps", defaultFPS),
	}
}

// Run executes the provided builder inside a local tcell screen until
// Ctrl-C, ctx cancellation or a background failure.
func Run(ctx context.Context, builder Builder, args []string, opts Options) error {
	app, err := builder(args)
	if err != nil {
		return err
	}

	screen, err := screenFactory()
	if err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	driver := texel.NewTcellScreenDriver(screen)
	if err := driver.Init(); err != nil {
		return fmt.Errorf("screen init: %w", err)
	}
	var finiOnce sync.Once
	fini := func() { finiOnce.Do(driver.Fini) }
	defer fini()
	driver.SetStyle(opts.Background)
	driver.HideCursor()
	driver.EnableMouse()

	metrics := opts.Metrics
	if !metrics.Valid() {
		metrics = texel.DefaultMetrics
	}
	cols, rows := driver.Size()
	host := texel.NewHost(texel.HostOptions{
		Size:       metrics.ScreenSize(cols, rows),
		Metrics:    metrics,
		Background: opts.Background,
	})
	if err := app.Attach(host); err != nil {
		return fmt.Errorf("attach app: %w", err)
	}
	buf := texel.NewBuffer(cols, rows)

	wake := make(chan struct{}, 1)
	host.Loop().SetWakeup(func() {
		select {
		case wake <- struct{}{}:
		default:
		}
	})

	g, gctx := errgroup.WithContext(ctx)
	events := make(chan tcell.Event, 32)

	g.Go(func() error {
		defer close(events)
		for {
			ev := driver.PollEvent()
			if ev == nil {
				return nil
			}
			select {
			case events <- ev:
			case <-gctx.Done():
				return nil
			}
		}
	})

	if bg, ok := app.(BackgroundApp); ok {
		g.Go(func() error {
			return bg.Background(gctx, host)
		})
	}

	g.Go(func() error {
		// Finalizing the screen unblocks the pump.
		defer fini()
		ticker := time.NewTicker(frameInterval(opts.FPS))
		defer ticker.Stop()

		draw := func() {
			host.Render(buf)
			driver.Flush(buf)
		}
		host.Tick(host.Now())
		draw()

		for {
			select {
			case <-gctx.Done():
				return nil
			case ev, ok := <-events:
				if !ok {
					return nil
				}
				switch tev := ev.(type) {
				case *tcell.EventKey:
					if tev.Key() == tcell.KeyCtrlC {
						return errQuit
					}
					app.HandleKey(tev)
				case *tcell.EventResize:
					cols, rows = tev.Size()
					buf.Resize(cols, rows)
					driver.Sync()
					host.HandleEvent(tev)
				default:
					host.HandleEvent(ev)
				}
			case <-wake:
			case <-ticker.C:
			}
			host.Tick(host.Now())
			if host.Tree().TakeDirty() {
				draw()
			}
		}
	})

	if err := g.Wait(); err != nil && !errors.Is(err, errQuit) {
		return err
	}
	return nil
}

func frameInterval(fps int) time.Duration {
	if fps <= 0 {
		fps = defaultFPS
	}
	return time.Second / time.Duration(fps)
}

// RunApp finds a registered builder by name and runs it.
func RunApp(ctx context.Context, name string, args []string, opts Options) error {
	registryMu.RLock()
	buildApp, ok := registry[name]
	registryMu.RUnlock()
	if !ok {
		return fmt.Errorf("unknown app %q", name)
	}
	return Run(ctx, buildApp, args, opts)
}
