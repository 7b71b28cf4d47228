// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texel/runloop.go
// Summary: Queue of deferred continuations executed on the host loop.
// Usage: Post from any goroutine; the host drains once per frame.

package texel

import "sync"

// RunLoop defers work to the next turn of the host loop.
type RunLoop struct {
	mu     sync.Mutex
	queue  []func()
	wakeup func()
}

// NewRunLoop creates an empty run loop.
func NewRunLoop() *RunLoop {
	return &RunLoop{}
}

// SetWakeup registers fn to be called after every Post, so a blocked event
// loop can be interrupted.
func (l *RunLoop) SetWakeup(fn func()) {
	l.mu.Lock()
	l.wakeup = fn
	l.mu.Unlock()
}

// Post queues fn to run on the next Drain.
func (l *RunLoop) Post(fn func()) {
	if fn == nil {
		return
	}
	l.mu.Lock()
	l.queue = append(l.queue, fn)
	wake := l.wakeup
	l.mu.Unlock()
	if wake != nil {
		wake()
	}
}

// Pending returns the number of queued continuations.
func (l *RunLoop) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.queue)
}

// Drain runs everything queued so far and returns how many ran. Work posted
// while draining waits for the next call.
func (l *RunLoop) Drain() int {
	l.mu.Lock()
	batch := l.queue
	l.queue = nil
	l.mu.Unlock()

	for _, fn := range batch {
		fn()
	}
	return len(batch)
}
