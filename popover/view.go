// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: popover/view.go
// Summary: Popover view: two-phase layout, shape drawing and animations.
// Usage: The Manager creates one per session; Attach inserts it and defers
// LayoutAndAnimate to the next run-loop turn.
// Notes: The view never tears itself down. Orientation changes go through
// the dismiss callback so the manager can remove the overlay too.

package popover

import (
	"fmt"
	"log"
	"time"

	"github.com/framegrace/texelpop/geom"
	"github.com/framegrace/texelpop/internal/effects"
	"github.com/framegrace/texelpop/texel"
)

// View is a popover in the host's view tree.
type View struct {
	host    *texel.Host
	cfg     *Config
	dismiss func()

	node    texel.NodeID
	wrapper texel.NodeID
	content texel.NodeID
	trigger texel.NodeID
	parent  texel.NodeID

	insets  geom.Insets
	base    geom.Rect
	onShown func()

	unsubscribe func()
	entrance    effects.TransitionID
	resizing    effects.TransitionID

	attached bool
	laidOut  bool
	shown    bool
	closed   bool
}

// NewView creates a detached popover. cfg is cloned; an invalid gradient is
// dropped with a log line. dismiss is called when the host announces an
// orientation change.
func NewView(host *texel.Host, cfg *Config, dismiss func()) *View {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	own := cfg.Clone()
	if own.Gradient != nil {
		if err := own.Gradient.Validate(); err != nil {
			log.Printf("Popover: skip gradient: %v", err)
			own.Gradient = nil
		}
	}
	tree := host.Tree()
	v := &View{
		host:    host,
		cfg:     own,
		dismiss: dismiss,
		node:    tree.NewNode(geom.Rect{}),
		wrapper: tree.NewNode(geom.Rect{}),
	}
	tree.SetDrawer(v.node, texel.DrawerFunc(v.draw))
	return v
}

// Node returns the view's handle in the tree.
func (v *View) Node() texel.NodeID { return v.node }

// Wrapper returns the content wrapper's handle.
func (v *View) Wrapper() texel.NodeID { return v.wrapper }

// Config returns the view's own configuration.
func (v *View) Config() *Config { return v.cfg }

// Shown reports whether the entrance animation completed.
func (v *View) Shown() bool { return v.shown }

// Closed reports whether Close ran.
func (v *View) Closed() bool { return v.closed }

// Side returns the resolved side. Before layout, or when no trigger forced a
// choice, Auto lays out like bottom.
func (v *View) Side() Side {
	return v.cfg.Direction.SideOr(SideBottom)
}

// Attach inserts the view into parent with content inside the wrapper and
// schedules LayoutAndAnimate on the host run loop. A NoNode trigger means
// the popover is centred without a pointer.
func (v *View) Attach(trigger, parent, content texel.NodeID, onShown func()) error {
	if v.closed {
		return ErrClosed
	}
	if v.attached {
		return ErrAlreadyAttached
	}
	tree := v.host.Tree()
	if content != texel.NoNode && !tree.Valid(content) {
		return fmt.Errorf("content: %w", texel.ErrUnknownNode)
	}
	if err := tree.Attach(parent, v.node); err != nil {
		return fmt.Errorf("attach popover to parent: %w", err)
	}
	if err := tree.Attach(v.node, v.wrapper); err != nil {
		return fmt.Errorf("attach content wrapper: %w", err)
	}
	if content != texel.NoNode {
		if err := tree.Attach(v.wrapper, content); err != nil {
			return fmt.Errorf("attach content: %w", err)
		}
	}
	v.trigger, v.parent, v.content, v.onShown = trigger, parent, content, onShown
	v.attached = true

	// Nothing is visible until layout has placed the view.
	tree.SetTransform(v.node, geom.Pt(0.5, 0.5), 0)

	v.unsubscribe = v.host.Events().Subscribe(texel.ListenerFunc(v.onEvent))
	v.host.Loop().Post(v.LayoutAndAnimate)
	return nil
}

// triggerRect returns the trigger's frame in the parent's space. A trigger
// that was removed, or detached from the parent's window, counts as no
// trigger.
func (v *View) triggerRect(to texel.NodeID) (geom.Rect, bool) {
	if v.trigger == texel.NoNode {
		return geom.Rect{}, false
	}
	tree := v.host.Tree()
	window, ok := tree.WindowOf(v.trigger)
	if !ok {
		return geom.Rect{}, false
	}
	if parentWindow, ok := tree.WindowOf(to); !ok || parentWindow != window {
		return geom.Rect{}, false
	}
	return tree.ConvertFrame(v.trigger, to)
}

// LayoutAndAnimate resolves the direction, places the view and starts the
// spring entrance from the pointer tip. It runs once; later calls are
// ignored.
func (v *View) LayoutAndAnimate() {
	if v.closed || !v.attached || v.laidOut {
		return
	}
	tree := v.host.Tree()
	parent, ok := tree.Bounds(v.parent)
	if !ok {
		log.Printf("Popover: parent vanished before layout")
		return
	}
	v.laidOut = true

	angle := v.cfg.EffectiveAngleSize()
	trigger, hasTrigger := v.triggerRect(v.parent)
	v.insets = geom.Insets{}
	var triggerPtr *geom.Rect
	if hasTrigger {
		side := ResolveDirection(trigger, parent.Size(), v.cfg.Size(), angle.H, v.cfg.Offset, v.cfg.Direction)
		v.cfg.Direction = Concrete(side)
		v.insets = ContainerInsets(side, angle)
		triggerPtr = &trigger
	}
	side := v.Side()
	origin := ComputeOrigin(side, triggerPtr, parent.Size(), v.cfg.Size(), angle, v.cfg.Offset)
	v.base = geom.RectFrom(origin, v.cfg.Size())
	v.setFrame(v.base)

	anchor := geom.Pt(0.5, 0.5)
	if a, ok := v.angle(); ok {
		anchor = ComputeAnchorPoint(side, a.Tip, v.cfg.Size())
	}
	tree.SetTransform(v.node, anchor, 0)

	duration := v.cfg.EntranceDuration
	ease := effects.EaseSpring(v.cfg.DampingRatio, v.cfg.SpringVelocity, duration)
	v.entrance = v.host.Animator().Animate(
		effects.AnimateOptions{Duration: duration, Easing: ease},
		func(scale float64) {
			if !v.closed {
				tree.SetTransform(v.node, anchor, scale)
			}
		},
		func() {
			v.entrance = 0
			if v.closed {
				return
			}
			tree.SetTransform(v.node, anchor, 1)
			v.shown = true
			if v.onShown != nil {
				v.onShown()
			}
		},
	)
}

// setFrame moves the view and lays out the wrapper and content inside it.
func (v *View) setFrame(frame geom.Rect) {
	tree := v.host.Tree()
	tree.SetFrame(v.node, frame)
	container := frame.Bounds().Inset(v.insets)
	tree.SetFrame(v.wrapper, container)
	if v.content != texel.NoNode {
		tree.SetFrame(v.content, container.Bounds().Inset(v.cfg.ContentInsets))
	}
}

// angle returns the pointer for the current frame.
func (v *View) angle() (Angle, bool) {
	if !v.laidOut {
		return Angle{}, false
	}
	frame, ok := v.host.Tree().Frame(v.node)
	if !ok {
		return Angle{}, false
	}
	var center *geom.Point
	if r, ok := v.triggerRect(v.node); ok {
		c := r.Center()
		center = &c
	}
	return ComputeAngleVertices(v.Side(), center, v.cfg.EffectiveAngleSize(), frame.Size(), v.cfg.AngleFollowsOffset, v.cfg.Offset)
}

// Shape describes what the view paints for its current frame. It reports
// false before layout.
func (v *View) Shape() (Shape, bool) {
	if !v.laidOut || v.closed {
		return Shape{}, false
	}
	frame, ok := v.host.Tree().Frame(v.node)
	if !ok {
		return Shape{}, false
	}
	s := Shape{
		Container:    frame.Bounds().Inset(v.insets),
		CornerRadius: v.cfg.CornerRadius,
		Fill:         v.cfg.BackgroundColor,
		TipRadius:    TipRadius,
	}
	if a, ok := v.angle(); ok {
		s.Angle = a
		s.HasAngle = true
	}
	if g := v.cfg.Gradient; g != nil {
		s.Gradient = g
		s.GradientStart, s.GradientEnd = GradientVector(g, frame.Size())
	}
	return s, true
}

func (v *View) draw(c *texel.Canvas) {
	if s, ok := v.Shape(); ok {
		c.FillShape(s)
	}
}

// Resize changes the popover size, keeping the edge facing the trigger in
// place, and animates linearly to the new frame over d. The final frame is
// set exactly before onComplete runs. Targets are measured from the frame
// placed at layout, so resizing back to the layout size restores that frame
// exactly however many resizes came between. A resize that arrives before
// layout only updates the size used by the pending layout.
func (v *View) Resize(w, h float64, d time.Duration, onComplete func()) {
	if v.closed {
		return
	}
	v.cfg.Width, v.cfg.Height = w, h
	v.host.Tree().Invalidate()
	if !v.laidOut {
		if onComplete != nil {
			v.host.Loop().Post(func() {
				if !v.closed {
					onComplete()
				}
			})
		}
		return
	}

	animator := v.host.Animator()
	if v.resizing != 0 {
		animator.Cancel(v.resizing)
	}
	current, _ := v.host.Tree().Frame(v.node)
	target := ComputeResizedFrame(v.Side(), v.base, w, h)
	v.resizing = animator.Animate(
		effects.AnimateOptions{Duration: d, Easing: effects.EaseLinear},
		func(t float64) {
			if !v.closed {
				v.setFrame(geom.Lerp(current, target, t))
			}
		},
		func() {
			v.resizing = 0
			if v.closed {
				return
			}
			v.setFrame(target)
			if onComplete != nil {
				onComplete()
			}
		},
	)
}

func (v *View) onEvent(ev texel.Event) {
	if ev.Type != texel.EventOrientationWillChange || v.closed {
		return
	}
	log.Printf("Popover: orientation change, dismissing")
	if v.dismiss != nil {
		v.dismiss()
	}
}

// Close stops notifications and transitions and removes the view from the
// tree. Caller-owned content is detached, not removed. Close is idempotent.
func (v *View) Close() {
	if v.closed {
		return
	}
	v.closed = true
	if v.unsubscribe != nil {
		v.unsubscribe()
		v.unsubscribe = nil
	}
	animator := v.host.Animator()
	if v.entrance != 0 {
		animator.Cancel(v.entrance)
		v.entrance = 0
	}
	if v.resizing != 0 {
		animator.Cancel(v.resizing)
		v.resizing = 0
	}
	tree := v.host.Tree()
	if v.content != texel.NoNode && tree.Parent(v.content) == v.wrapper {
		tree.Detach(v.content)
	}
	tree.Remove(v.node)
	tree.Remove(v.wrapper)
}
