// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/effects/animator.go
// Summary: Timed transitions with per-frame step callbacks and completion handlers.
// Usage: The host calls Tick once per frame; views start transitions with Animate.
// Notes: Completion callbacks run after the lock is released so they may start
// or cancel other transitions.

package effects

import (
	"sync"
	"time"
)

// TransitionID identifies a running transition.
type TransitionID uint64

type transition struct {
	step       func(value float64)
	onComplete func()
}

// Animator drives transitions from 0 to 1 over a timeline.
type Animator struct {
	mu          sync.Mutex
	clock       func() time.Time
	timeline    *Timeline
	transitions map[TransitionID]*transition
	nextID      TransitionID
}

// NewAnimator creates an animator reading the current time from clock.
// A nil clock uses time.Now.
func NewAnimator(clock func() time.Time) *Animator {
	if clock == nil {
		clock = time.Now
	}
	return &Animator{
		clock:       clock,
		timeline:    NewTimeline(0),
		transitions: make(map[TransitionID]*transition),
	}
}

// Animate starts a transition. step receives the eased progress on every
// Tick, starting with the value at the moment of the call; onComplete runs
// on the first Tick at or past the end. Zero-length transitions complete on
// the next Tick, never synchronously.
func (a *Animator) Animate(opts AnimateOptions, step func(value float64), onComplete func()) TransitionID {
	a.mu.Lock()
	a.nextID++
	id := a.nextID
	a.transitions[id] = &transition{step: step, onComplete: onComplete}
	a.timeline.Set(id, 0)
	value := a.timeline.AnimateTo(id, 1, opts, a.clock())
	a.mu.Unlock()

	if step != nil {
		step(value)
	}
	return id
}

// Cancel stops a transition without running its completion handler.
// Returns false when the transition already finished or never existed.
func (a *Animator) Cancel(id TransitionID) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, ok := a.transitions[id]; !ok {
		return false
	}
	delete(a.transitions, id)
	a.timeline.Reset(id)
	return true
}

// Running reports whether id is still in flight.
func (a *Animator) Running(id TransitionID) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	_, ok := a.transitions[id]
	return ok
}

// Active reports whether any transition is in flight.
func (a *Animator) Active() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.transitions) > 0
}

// Tick advances every transition to now, calling step handlers and then the
// completion handlers of transitions that finished.
func (a *Animator) Tick(now time.Time) {
	type pending struct {
		step  func(float64)
		value float64
	}

	a.mu.Lock()
	if len(a.transitions) == 0 {
		a.mu.Unlock()
		return
	}
	a.timeline.Update(now)
	steps := make([]pending, 0, len(a.transitions))
	callbacks := make([]func(), 0)
	for id, tr := range a.transitions {
		steps = append(steps, pending{step: tr.step, value: a.timeline.GetCached(id)})
		if !a.timeline.IsAnimating(id, now) {
			delete(a.transitions, id)
			a.timeline.Reset(id)
			if tr.onComplete != nil {
				callbacks = append(callbacks, tr.onComplete)
			}
		}
	}
	a.mu.Unlock()

	for _, s := range steps {
		if s.step != nil {
			s.step(s.value)
		}
	}
	for _, cb := range callbacks {
		cb()
	}
}
