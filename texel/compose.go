// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texel/compose.go
// Summary: Renders the view tree into a cell buffer and routes taps.
// Usage: Host.Render and Host.HandleEvent build on these helpers.

package texel

import "github.com/framegrace/texelpop/geom"

// Render draws every window back to front into buf.
func (t *Tree) Render(buf *Buffer, metrics CellMetrics) {
	if !metrics.Valid() {
		return
	}
	w, h := buf.Size()
	clip := cellClip{x1: w, y1: h}
	for _, id := range t.windows {
		t.renderNode(buf, metrics, id, identity, clip, 1)
	}
}

func (t *Tree) renderNode(buf *Buffer, metrics CellMetrics, id NodeID, parent affine, clip cellClip, alpha float64) {
	n := t.get(id)
	if n == nil || n.hidden || n.alpha <= 0 {
		return
	}
	alpha *= min(n.alpha, 1)
	xf := parent.child(n.frame, n.anchor, n.scale)
	bounds := n.frame.Bounds()
	c := &Canvas{
		buf:     buf,
		metrics: metrics,
		xf:      xf,
		clip:    clip,
		size:    bounds.Size(),
		alpha:   alpha,
	}
	if n.clips {
		clip = c.span(bounds)
		c.clip = clip
		if clip.empty() {
			return
		}
	}
	if n.fill.Opacity > 0 {
		c.Fill(bounds, n.fill)
	}
	if n.drawer != nil {
		n.drawer.Draw(c)
	}
	for _, child := range n.children {
		t.renderNode(buf, metrics, child, xf, clip, alpha)
	}
}

// HitTest returns the deepest visible view under the screen point p,
// searching windows front to back.
func (t *Tree) HitTest(p geom.Point) NodeID {
	for i := len(t.windows) - 1; i >= 0; i-- {
		if hit := t.hit(t.windows[i], p); hit != NoNode {
			return hit
		}
	}
	return NoNode
}

// hit tests id against p given in id's parent space.
func (t *Tree) hit(id NodeID, p geom.Point) NodeID {
	n := t.get(id)
	if n == nil || n.hidden || n.alpha <= 0 {
		return NoNode
	}
	local, ok := identity.child(n.frame, n.anchor, n.scale).invert(p)
	if !ok {
		return NoNode
	}
	inside := n.frame.Bounds().Contains(local)
	if n.clips && !inside {
		return NoNode
	}
	for i := len(n.children) - 1; i >= 0; i-- {
		if h := t.hit(n.children[i], local); h != NoNode {
			return h
		}
	}
	if inside {
		return id
	}
	return NoNode
}

// Tap runs the tap handler of the view under p. Handlers only fire on the
// hit view itself; ancestors are not consulted.
func (t *Tree) Tap(p geom.Point) bool {
	return t.TapNode(t.HitTest(p))
}

// TapNode runs id's tap handler, reporting whether one ran.
func (t *Tree) TapNode(id NodeID) bool {
	n := t.get(id)
	if n == nil || n.onTap == nil {
		return false
	}
	n.onTap()
	return true
}
