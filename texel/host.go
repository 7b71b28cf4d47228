// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texel/host.go
// Summary: Bundles the view tree, run loop, dispatcher and animator of one screen.
// Usage: devshell feeds it tcell events and calls Tick/Render every frame;
// tests drive it directly with a manual clock.
// Notes: Everything except RunLoop.Post must be called from the loop goroutine.

package texel

import (
	"log"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelpop/geom"
	"github.com/framegrace/texelpop/internal/effects"
)

// HostOptions configures a Host.
type HostOptions struct {
	// Size is the initial screen size in points.
	Size geom.Size
	// Metrics maps cells to points; zero uses DefaultMetrics.
	Metrics CellMetrics
	// Clock supplies the animation time; nil uses time.Now.
	Clock func() time.Time
	// Background paints cells no view covers.
	Background tcell.Style
}

// Host owns the state of a single screen.
type Host struct {
	tree     *Tree
	loop     *RunLoop
	events   *EventDispatcher
	animator *effects.Animator
	metrics  CellMetrics
	clock    func() time.Time
	bg       tcell.Style

	size    geom.Size
	main    NodeID
	pressed NodeID
	press   bool
}

// NewHost creates a host with a key main window covering the screen.
func NewHost(opts HostOptions) *Host {
	metrics := opts.Metrics
	if !metrics.Valid() {
		metrics = DefaultMetrics
	}
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	h := &Host{
		tree:     NewTree(),
		loop:     NewRunLoop(),
		events:   NewEventDispatcher(),
		animator: effects.NewAnimator(clock),
		metrics:  metrics,
		clock:    clock,
		bg:       opts.Background,
		size:     opts.Size,
	}
	h.main = h.tree.AddWindow(geom.RectFrom(geom.Point{}, opts.Size), WindowOptions{OnMainScreen: true, Key: true})
	return h
}

func (h *Host) Tree() *Tree                 { return h.tree }
func (h *Host) Loop() *RunLoop              { return h.loop }
func (h *Host) Events() *EventDispatcher    { return h.events }
func (h *Host) Animator() *effects.Animator { return h.animator }
func (h *Host) Metrics() CellMetrics        { return h.metrics }
func (h *Host) MainWindow() NodeID          { return h.main }
func (h *Host) ScreenSize() geom.Size       { return h.size }
func (h *Host) Now() time.Time              { return h.clock() }

// Tick runs pending continuations, then advances animations to now.
func (h *Host) Tick(now time.Time) {
	h.loop.Drain()
	h.animator.Tick(now)
}

// Busy reports whether continuations or transitions are pending.
func (h *Host) Busy() bool {
	return h.loop.Pending() > 0 || h.animator.Active()
}

// Resize announces an orientation change, resizes every main-screen window
// to the new size and announces the completed resize.
func (h *Host) Resize(size geom.Size) {
	if size == h.size {
		return
	}
	payload := ResizePayload{Old: h.size, New: size}
	log.Printf("Host: resize %.0fx%.0f -> %.0fx%.0f", payload.Old.W, payload.Old.H, size.W, size.H)
	h.events.Broadcast(Event{Type: EventOrientationWillChange, Payload: payload})
	h.size = size
	for _, w := range h.tree.Windows() {
		n := h.tree.get(w)
		if n != nil && n.window.onMainScreen {
			h.tree.SetFrame(w, geom.RectFrom(n.frame.Origin(), size))
		}
	}
	h.events.Broadcast(Event{Type: EventScreenResized, Payload: payload})
}

// ResizeCells resizes to a cell grid.
func (h *Host) ResizeCells(cols, rows int) {
	h.Resize(h.metrics.ScreenSize(cols, rows))
}

// MakeKey makes id the key window and announces it.
func (h *Host) MakeKey(id NodeID) {
	if !h.tree.IsWindow(id) {
		return
	}
	h.tree.MakeKey(id)
	h.events.Broadcast(Event{Type: EventKeyWindowChanged, Payload: id})
}

// HandleEvent routes a tcell event. A tap is a primary button press and
// release over the same view. Returns true when the event was consumed.
func (h *Host) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		cols, rows := ev.Size()
		h.ResizeCells(cols, rows)
		return true
	case *tcell.EventMouse:
		x, y := ev.Position()
		p := h.metrics.CellCenter(x, y)
		if ev.Buttons()&tcell.Button1 != 0 {
			if !h.press {
				h.press = true
				h.pressed = h.tree.HitTest(p)
			}
			return true
		}
		if h.press {
			h.press = false
			target := h.tree.HitTest(p)
			if target != NoNode && target == h.pressed {
				return h.tree.TapNode(target)
			}
		}
	}
	return false
}

// TapAt simulates a complete tap at the screen point p.
func (h *Host) TapAt(p geom.Point) bool {
	return h.tree.Tap(p)
}

// Render clears buf to the host background and draws the tree.
func (h *Host) Render(buf *Buffer) {
	buf.Clear(h.bg)
	h.tree.Render(buf, h.metrics)
}
