// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texel/dispatcher.go
// Summary: Broadcasts host notifications such as orientation changes.
// Usage: Views subscribe and keep the returned func to unsubscribe on teardown.
// Notes: Broadcast works on a snapshot so listeners may unsubscribe from
// inside their own callback.

package texel

import (
	"sync"

	"github.com/framegrace/texelpop/geom"
)

// EventType defines the type of an event.
type EventType int

const (
	// EventOrientationWillChange fires before the screen geometry changes.
	EventOrientationWillChange EventType = iota
	// EventScreenResized fires after windows were resized to the new screen.
	EventScreenResized
	// EventKeyWindowChanged fires when a different window becomes key.
	EventKeyWindowChanged
)

// Event represents a message passed through the system.
// It has a type and can carry an arbitrary data payload.
type Event struct {
	Type    EventType
	Payload interface{}
}

// ResizePayload accompanies orientation and resize events.
type ResizePayload struct {
	Old geom.Size
	New geom.Size
}

// Listener is an interface that any component can implement to receive events.
type Listener interface {
	// OnEvent is the callback method for receiving events.
	OnEvent(event Event)
}

// ListenerFunc adapts a plain function to Listener.
type ListenerFunc func(event Event)

func (f ListenerFunc) OnEvent(event Event) { f(event) }

type subscription struct {
	id       uint64
	listener Listener
}

// EventDispatcher manages a list of listeners and broadcasts events to them.
type EventDispatcher struct {
	mu        sync.RWMutex
	listeners []subscription
	nextID    uint64
}

// NewEventDispatcher creates a new dispatcher.
func NewEventDispatcher() *EventDispatcher {
	return &EventDispatcher{}
}

// Subscribe adds a listener and returns a func that removes it again.
// Calling the returned func more than once is harmless.
func (d *EventDispatcher) Subscribe(listener Listener) func() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.nextID++
	id := d.nextID
	d.listeners = append(d.listeners, subscription{id: id, listener: listener})
	return func() { d.unsubscribe(id) }
}

func (d *EventDispatcher) unsubscribe(id uint64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i, s := range d.listeners {
		if s.id == id {
			d.listeners = append(d.listeners[:i], d.listeners[i+1:]...)
			return
		}
	}
}

// Len returns the number of subscribed listeners.
func (d *EventDispatcher) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.listeners)
}

// Broadcast sends an event to all subscribed listeners.
func (d *EventDispatcher) Broadcast(event Event) {
	d.mu.RLock()
	snapshot := make([]subscription, len(d.listeners))
	copy(snapshot, d.listeners)
	d.mu.RUnlock()

	for _, s := range snapshot {
		s.listener.OnEvent(event)
	}
}
