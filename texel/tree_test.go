// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package texel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/framegrace/texelpop/geom"
)

func TestTreeAttachDetachRemove(t *testing.T) {
	tree := NewTree()
	root := tree.NewNode(geom.R(0, 0, 100, 100))
	a := tree.NewNode(geom.R(10, 10, 20, 20))
	b := tree.NewNode(geom.R(1, 1, 5, 5))

	require.NoError(t, tree.Attach(root, a))
	require.NoError(t, tree.Attach(a, b))
	assert.Equal(t, []NodeID{a}, tree.Children(root))
	assert.Equal(t, a, tree.Parent(b))
	assert.ErrorIs(t, tree.Attach(b, root), ErrCycle)
	assert.ErrorIs(t, tree.Attach(root, NodeID(99)), ErrUnknownNode)

	tree.Detach(a)
	assert.Empty(t, tree.Children(root))
	assert.True(t, tree.Valid(a))

	tree.Remove(a)
	assert.False(t, tree.Valid(a))
	assert.False(t, tree.Valid(b), "subtree is forgotten with its root")
	_, ok := tree.Frame(b)
	assert.False(t, ok)
}

func TestTreeReattachMovesToTop(t *testing.T) {
	tree := NewTree()
	root := tree.NewNode(geom.R(0, 0, 10, 10))
	a := tree.NewNode(geom.Rect{})
	b := tree.NewNode(geom.Rect{})
	require.NoError(t, tree.Attach(root, a))
	require.NoError(t, tree.Attach(root, b))
	require.NoError(t, tree.Attach(root, a))
	assert.Equal(t, []NodeID{b, a}, tree.Children(root))
}

func TestTreeConvert(t *testing.T) {
	tree := NewTree()
	win := tree.AddWindow(geom.R(0, 0, 400, 800), WindowOptions{OnMainScreen: true, Key: true})
	panel := tree.NewNode(geom.R(50, 100, 200, 200))
	button := tree.NewNode(geom.R(10, 20, 40, 20))
	require.NoError(t, tree.Attach(win, panel))
	require.NoError(t, tree.Attach(panel, button))

	r, ok := tree.ConvertFrame(button, win)
	require.True(t, ok)
	assert.Equal(t, geom.R(60, 120, 40, 20), r)

	r, ok = tree.Convert(geom.R(0, 0, 5, 5), win, panel)
	require.True(t, ok)
	assert.Equal(t, geom.R(-50, -100, 5, 5), r)

	r, ok = tree.Convert(geom.R(1, 1, 1, 1), button, NoNode)
	require.True(t, ok)
	assert.Equal(t, geom.R(61, 121, 1, 1), r)

	tree.Remove(button)
	_, ok = tree.ConvertFrame(button, win)
	assert.False(t, ok)
}

func TestKeyWindowResolution(t *testing.T) {
	tree := NewTree()
	_, ok := tree.KeyWindow()
	assert.False(t, ok)

	main := tree.AddWindow(geom.R(0, 0, 10, 10), WindowOptions{OnMainScreen: true, Key: true})
	key, ok := tree.KeyWindow()
	require.True(t, ok)
	assert.Equal(t, main, key)

	external := tree.AddWindow(geom.R(0, 0, 10, 10), WindowOptions{Key: true})
	_, ok = tree.KeyWindow()
	assert.False(t, ok, "key moved to a window that is not on the main screen")

	alert := tree.AddWindow(geom.R(0, 0, 10, 10), WindowOptions{OnMainScreen: true})
	tree.MakeKey(alert)
	key, _ = tree.KeyWindow()
	assert.Equal(t, alert, key)

	tree.SetHidden(alert, true)
	_, ok = tree.KeyWindow()
	assert.False(t, ok, "hidden key window is skipped")

	tree.SetHidden(alert, false)
	tree.SetAlpha(alert, 0)
	_, ok = tree.KeyWindow()
	assert.False(t, ok, "transparent key window is skipped")

	tree.MakeKey(main)
	key, _ = tree.KeyWindow()
	assert.Equal(t, main, key)

	tree.Remove(main)
	assert.Equal(t, []NodeID{external, alert}, tree.Windows())
}

func TestHitTestAndTap(t *testing.T) {
	tree := NewTree()
	win := tree.AddWindow(geom.R(0, 0, 100, 100), WindowOptions{OnMainScreen: true, Key: true})
	overlay := tree.NewNode(geom.R(0, 0, 100, 100))
	card := tree.NewNode(geom.R(20, 20, 40, 40))
	require.NoError(t, tree.Attach(win, overlay))
	require.NoError(t, tree.Attach(overlay, card))

	overlayTaps := 0
	tree.SetTapHandler(overlay, func() { overlayTaps++ })

	assert.Equal(t, card, tree.HitTest(geom.Pt(30, 30)))
	assert.Equal(t, overlay, tree.HitTest(geom.Pt(5, 5)))

	assert.False(t, tree.Tap(geom.Pt(30, 30)), "ancestors do not receive taps")
	assert.Equal(t, 0, overlayTaps)
	assert.True(t, tree.Tap(geom.Pt(5, 5)))
	assert.Equal(t, 1, overlayTaps)

	tree.SetHidden(card, true)
	assert.Equal(t, overlay, tree.HitTest(geom.Pt(30, 30)))
}

func TestHitTestHonoursTransformAndClip(t *testing.T) {
	tree := NewTree()
	win := tree.AddWindow(geom.R(0, 0, 100, 100), WindowOptions{OnMainScreen: true})
	box := tree.NewNode(geom.R(0, 0, 40, 40))
	require.NoError(t, tree.Attach(win, box))

	tree.SetTransform(box, geom.Pt(0, 0), 0.5)
	assert.Equal(t, box, tree.HitTest(geom.Pt(10, 10)))
	assert.Equal(t, win, tree.HitTest(geom.Pt(30, 30)))

	tree.SetTransform(box, geom.Pt(0, 0), 0)
	assert.Equal(t, win, tree.HitTest(geom.Pt(1, 1)), "zero scale is not hittable")

	tree.SetTransform(box, geom.Pt(0.5, 0.5), 1)
	clip := tree.NewNode(geom.R(0, 0, 10, 10))
	child := tree.NewNode(geom.R(20, 20, 10, 10))
	require.NoError(t, tree.Attach(box, clip))
	require.NoError(t, tree.Attach(clip, child))
	assert.Equal(t, child, tree.HitTest(geom.Pt(25, 25)))
	tree.SetClips(clip, true)
	assert.Equal(t, box, tree.HitTest(geom.Pt(25, 25)))
}

func TestDispatcherUnsubscribeDuringBroadcast(t *testing.T) {
	d := NewEventDispatcher()
	var calls []string
	var stop func()
	stop = d.Subscribe(ListenerFunc(func(Event) {
		calls = append(calls, "a")
		stop()
	}))
	d.Subscribe(ListenerFunc(func(Event) { calls = append(calls, "b") }))

	d.Broadcast(Event{Type: EventOrientationWillChange})
	d.Broadcast(Event{Type: EventOrientationWillChange})
	assert.Equal(t, []string{"a", "b", "b"}, calls)
	assert.Equal(t, 1, d.Len())
	stop()
	assert.Equal(t, 1, d.Len())
}

func TestRunLoopDefersNestedPosts(t *testing.T) {
	loop := NewRunLoop()
	var order []int
	loop.Post(func() {
		order = append(order, 1)
		loop.Post(func() { order = append(order, 3) })
	})
	loop.Post(func() { order = append(order, 2) })

	assert.Equal(t, 2, loop.Drain())
	assert.Equal(t, []int{1, 2}, order)
	assert.Equal(t, 1, loop.Pending())
	loop.Drain()
	assert.Equal(t, []int{1, 2, 3}, order)
}
