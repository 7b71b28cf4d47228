// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texel/tree.go
// Summary: View tree of positionable rectangles addressed by non-owning handles.
// Usage: Hosts attach, detach, frame and convert coordinates between views.
// Notes: Handles stay valid until Remove; a removed handle simply stops
// resolving, callers must treat that as "view vanished".

package texel

import (
	"errors"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelpop/geom"
)

// NodeID is a handle to a view in a Tree. The zero value means "no view".
type NodeID uint64

// NoNode is the zero handle.
const NoNode NodeID = 0

var (
	// ErrUnknownNode is returned when a handle no longer resolves.
	ErrUnknownNode = errors.New("texel: unknown node")
	// ErrCycle is returned when attaching a node under its own descendant.
	ErrCycle = errors.New("texel: attach would create a cycle")
)

// Fill tints a view's frame with a colour at the given opacity.
type Fill struct {
	Color   tcell.Color
	Opacity float64
}

// Drawer paints a view's content onto a canvas set up in the view's local
// coordinate space.
type Drawer interface {
	Draw(c *Canvas)
}

// DrawerFunc adapts a function to the Drawer interface.
type DrawerFunc func(c *Canvas)

func (f DrawerFunc) Draw(c *Canvas) { f(c) }

type node struct {
	id       NodeID
	parent   NodeID
	children []NodeID
	frame    geom.Rect
	hidden   bool
	alpha    float64
	fill     Fill
	clips    bool
	onTap    func()
	drawer   Drawer
	anchor   geom.Point
	scale    float64
	window   *windowState
}

// Tree owns every view in a host. It is not safe for concurrent use; all
// calls happen on the host loop goroutine.
type Tree struct {
	nodes        map[NodeID]*node
	windows      []NodeID
	nextID       NodeID
	dirty        bool
	onInvalidate func()
}

// NewTree creates an empty view tree.
func NewTree() *Tree {
	return &Tree{nodes: make(map[NodeID]*node)}
}

// SetInvalidateNotifier registers fn to run whenever the tree is marked dirty.
func (t *Tree) SetInvalidateNotifier(fn func()) {
	t.onInvalidate = fn
}

// NewNode creates a detached view with the given frame.
func (t *Tree) NewNode(frame geom.Rect) NodeID {
	t.nextID++
	id := t.nextID
	t.nodes[id] = &node{
		id:     id,
		frame:  frame,
		alpha:  1,
		scale:  1,
		anchor: geom.Pt(0.5, 0.5),
	}
	return id
}

// Valid reports whether id still resolves.
func (t *Tree) Valid(id NodeID) bool {
	_, ok := t.nodes[id]
	return ok
}

func (t *Tree) get(id NodeID) *node {
	if id == NoNode {
		return nil
	}
	return t.nodes[id]
}

// Attach makes child the topmost child of parent, detaching it from any
// previous parent first.
func (t *Tree) Attach(parent, child NodeID) error {
	p, c := t.get(parent), t.get(child)
	if p == nil || c == nil {
		return ErrUnknownNode
	}
	if t.IsDescendant(parent, child) {
		return ErrCycle
	}
	t.Detach(child)
	c.parent = parent
	p.children = append(p.children, child)
	t.Invalidate()
	return nil
}

// Detach removes id from its parent. The view stays valid.
func (t *Tree) Detach(id NodeID) {
	n := t.get(id)
	if n == nil || n.parent == NoNode {
		return
	}
	if p := t.get(n.parent); p != nil {
		for i, c := range p.children {
			if c == id {
				p.children = append(p.children[:i], p.children[i+1:]...)
				break
			}
		}
	}
	n.parent = NoNode
	t.Invalidate()
}

// Remove detaches id and forgets it along with its whole subtree.
func (t *Tree) Remove(id NodeID) {
	n := t.get(id)
	if n == nil {
		return
	}
	t.Detach(id)
	if n.window != nil {
		t.dropWindow(id)
	}
	t.forget(n)
	t.Invalidate()
}

func (t *Tree) forget(n *node) {
	for _, c := range n.children {
		if child := t.get(c); child != nil {
			t.forget(child)
		}
	}
	delete(t.nodes, n.id)
}

// Parent returns the parent of id, or NoNode.
func (t *Tree) Parent(id NodeID) NodeID {
	if n := t.get(id); n != nil {
		return n.parent
	}
	return NoNode
}

// Children returns a copy of id's children in back-to-front order.
func (t *Tree) Children(id NodeID) []NodeID {
	n := t.get(id)
	if n == nil {
		return nil
	}
	out := make([]NodeID, len(n.children))
	copy(out, n.children)
	return out
}

// IsDescendant reports whether id equals ancestor or lives below it.
func (t *Tree) IsDescendant(id, ancestor NodeID) bool {
	for cur := id; cur != NoNode; {
		if cur == ancestor {
			return true
		}
		n := t.get(cur)
		if n == nil {
			return false
		}
		cur = n.parent
	}
	return false
}

// Frame returns id's frame in its parent's coordinate space.
func (t *Tree) Frame(id NodeID) (geom.Rect, bool) {
	n := t.get(id)
	if n == nil {
		return geom.Rect{}, false
	}
	return n.frame, true
}

// Bounds returns id's frame moved to the origin.
func (t *Tree) Bounds(id NodeID) (geom.Rect, bool) {
	r, ok := t.Frame(id)
	return r.Bounds(), ok
}

// SetFrame moves and resizes id.
func (t *Tree) SetFrame(id NodeID, frame geom.Rect) {
	if n := t.get(id); n != nil {
		n.frame = frame
		t.Invalidate()
	}
}

// SetHidden shows or hides id and its subtree.
func (t *Tree) SetHidden(id NodeID, hidden bool) {
	if n := t.get(id); n != nil {
		n.hidden = hidden
		t.Invalidate()
	}
}

// Hidden reports whether id is hidden. Unknown handles count as hidden.
func (t *Tree) Hidden(id NodeID) bool {
	if n := t.get(id); n != nil {
		return n.hidden
	}
	return true
}

// SetAlpha sets id's opacity; zero makes it invisible.
func (t *Tree) SetAlpha(id NodeID, alpha float64) {
	if n := t.get(id); n != nil {
		n.alpha = alpha
		t.Invalidate()
	}
}

// SetFill sets the tint painted over id's frame.
func (t *Tree) SetFill(id NodeID, fill Fill) {
	if n := t.get(id); n != nil {
		n.fill = fill
		t.Invalidate()
	}
}

// SetClips makes id clip its children to its bounds.
func (t *Tree) SetClips(id NodeID, clips bool) {
	if n := t.get(id); n != nil {
		n.clips = clips
		t.Invalidate()
	}
}

// SetTapHandler registers fn to run when a tap lands on id itself.
func (t *Tree) SetTapHandler(id NodeID, fn func()) {
	if n := t.get(id); n != nil {
		n.onTap = fn
	}
}

// SetDrawer sets the content painter for id.
func (t *Tree) SetDrawer(id NodeID, d Drawer) {
	if n := t.get(id); n != nil {
		n.drawer = d
		t.Invalidate()
	}
}

// SetTransform scales id and its subtree by scale around anchor, where
// anchor is normalized to id's bounds.
func (t *Tree) SetTransform(id NodeID, anchor geom.Point, scale float64) {
	if n := t.get(id); n != nil {
		n.anchor = anchor
		n.scale = scale
		t.Invalidate()
	}
}

// Transform returns id's anchor point and scale.
func (t *Tree) Transform(id NodeID) (geom.Point, float64) {
	if n := t.get(id); n != nil {
		return n.anchor, n.scale
	}
	return geom.Pt(0.5, 0.5), 1
}

// Invalidate marks the tree as needing a redraw.
func (t *Tree) Invalidate() {
	t.dirty = true
	if t.onInvalidate != nil {
		t.onInvalidate()
	}
}

// TakeDirty reports and clears the dirty flag.
func (t *Tree) TakeDirty() bool {
	d := t.dirty
	t.dirty = false
	return d
}

// Origin returns id's top-left corner in screen space. Transforms are
// ignored, matching frame-based conversion.
func (t *Tree) Origin(id NodeID) (geom.Point, bool) {
	var origin geom.Point
	n := t.get(id)
	if n == nil {
		return origin, false
	}
	for n != nil {
		origin = origin.Add(n.frame.Origin())
		n = t.get(n.parent)
	}
	return origin, true
}

// Convert maps r from from's bounds space into to's bounds space. Either
// handle may be NoNode, meaning screen space.
func (t *Tree) Convert(r geom.Rect, from, to NodeID) (geom.Rect, bool) {
	var fromOrigin, toOrigin geom.Point
	if from != NoNode {
		o, ok := t.Origin(from)
		if !ok {
			return geom.Rect{}, false
		}
		fromOrigin = o
	}
	if to != NoNode {
		o, ok := t.Origin(to)
		if !ok {
			return geom.Rect{}, false
		}
		toOrigin = o
	}
	return r.Translate(fromOrigin.Sub(toOrigin)), true
}

// ConvertFrame maps id's own frame into to's bounds space.
func (t *Tree) ConvertFrame(id, to NodeID) (geom.Rect, bool) {
	b, ok := t.Bounds(id)
	if !ok {
		return geom.Rect{}, false
	}
	return t.Convert(b, id, to)
}
