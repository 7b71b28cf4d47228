// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texel/windows.go
// Summary: Top-level windows and key-window resolution.
// Usage: Presenters ask the tree for the key window to host overlays.

package texel

import "github.com/framegrace/texelpop/geom"

// WindowOptions describes a new top-level window.
type WindowOptions struct {
	OnMainScreen bool
	Key          bool
}

type windowState struct {
	onMainScreen bool
	key          bool
}

// AddWindow creates a root view registered as a window. Windows are drawn
// in creation order, later ones on top.
func (t *Tree) AddWindow(frame geom.Rect, opts WindowOptions) NodeID {
	id := t.NewNode(frame)
	t.nodes[id].window = &windowState{onMainScreen: opts.OnMainScreen}
	t.windows = append(t.windows, id)
	if opts.Key {
		t.MakeKey(id)
	}
	t.Invalidate()
	return id
}

// MakeKey makes id the key window, clearing the flag on every other window.
func (t *Tree) MakeKey(id NodeID) {
	n := t.get(id)
	if n == nil || n.window == nil {
		return
	}
	for _, w := range t.windows {
		if other := t.get(w); other != nil && other.window != nil {
			other.window.key = false
		}
	}
	n.window.key = true
}

// Windows returns every window back to front.
func (t *Tree) Windows() []NodeID {
	out := make([]NodeID, len(t.windows))
	copy(out, t.windows)
	return out
}

// IsWindow reports whether id is a registered window.
func (t *Tree) IsWindow(id NodeID) bool {
	n := t.get(id)
	return n != nil && n.window != nil
}

// KeyWindow scans windows from the front for one on the main screen that is
// visible, non-transparent and key.
func (t *Tree) KeyWindow() (NodeID, bool) {
	for i := len(t.windows) - 1; i >= 0; i-- {
		n := t.get(t.windows[i])
		if n == nil || n.window == nil {
			continue
		}
		if n.window.onMainScreen && !n.hidden && n.alpha > 0 && n.window.key {
			return n.id, true
		}
	}
	return NoNode, false
}

// WindowOf returns the window at the root of id's branch.
func (t *Tree) WindowOf(id NodeID) (NodeID, bool) {
	n := t.get(id)
	for n != nil && n.parent != NoNode {
		n = t.get(n.parent)
	}
	if n == nil || n.window == nil {
		return NoNode, false
	}
	return n.id, true
}

func (t *Tree) dropWindow(id NodeID) {
	for i, w := range t.windows {
		if w == id {
			t.windows = append(t.windows[:i], t.windows[i+1:]...)
			return
		}
	}
}
