// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/effects/timeline.go
// Summary: Per-key animation timeline with configurable easing functions.
// Usage: Backs the Animator; every call takes an explicit timestamp so hosts
// and tests control the clock.
// Notes: Supports linear, smoothstep, cubic and spring easing.

package effects

import (
	"sync"
	"time"
)

// EasingFunc maps progress [0,1] to an eased value. Spring curves may
// overshoot 1 before settling.
type EasingFunc func(progress float64) float64

// Common easing functions
var (
	// EaseLinear - No easing, constant speed
	EaseLinear EasingFunc = func(t float64) float64 { return t }

	// EaseSmoothstep - Smooth S-curve, accelerates at start, decelerates at end
	EaseSmoothstep EasingFunc = func(t float64) float64 {
		return t * t * (3.0 - 2.0*t)
	}

	// EaseOutCubic - Cubic ease-out
	EaseOutCubic EasingFunc = func(t float64) float64 {
		t1 := t - 1.0
		return t1*t1*t1 + 1.0
	}

	// EaseInOutCubic - Cubic ease-in-out
	EaseInOutCubic EasingFunc = func(t float64) float64 {
		if t < 0.5 {
			return 4.0 * t * t * t
		}
		t1 := 2.0*t - 2.0
		return 1.0 + t1*t1*t1*0.5
	}
)

// EasingByName resolves a config easing name. Unknown names yield smoothstep.
func EasingByName(name string) EasingFunc {
	switch name {
	case "linear":
		return EaseLinear
	case "ease-out":
		return EaseOutCubic
	case "ease-in-out":
		return EaseInOutCubic
	default:
		return EaseSmoothstep
	}
}

// AnimateOptions configures an animation transition
type AnimateOptions struct {
	Duration time.Duration // 0 = instant
	Easing   EasingFunc    // default: EaseSmoothstep
}

// keyState tracks animation state for a single key
type keyState struct {
	current   float64
	start     float64
	target    float64
	startTime time.Time
	duration  time.Duration
	easing    EasingFunc
}

// Timeline provides thread-safe, per-key animation timelines.
type Timeline struct {
	states         map[interface{}]*keyState
	mu             sync.RWMutex
	defaultEasing  EasingFunc
	defaultInitial float64
}

// NewTimeline creates a new timeline manager. defaultInitial is the value
// reported for keys that were never animated.
func NewTimeline(defaultInitial float64) *Timeline {
	return &Timeline{
		states:         make(map[interface{}]*keyState),
		defaultEasing:  EaseSmoothstep,
		defaultInitial: defaultInitial,
	}
}

// Set places key at value with no animation.
func (tl *Timeline) Set(key interface{}, value float64) {
	tl.mu.Lock()
	defer tl.mu.Unlock()
	tl.states[key] = &keyState{current: value, start: value, target: value}
}

// AnimateTo starts or retargets an animation for key and returns the value
// at now. A running animation restarts from its current value.
func (tl *Timeline) AnimateTo(key interface{}, target float64, opts AnimateOptions, now time.Time) float64 {
	tl.mu.Lock()
	defer tl.mu.Unlock()

	easing := opts.Easing
	if easing == nil {
		easing = tl.defaultEasing
	}

	state := tl.states[key]
	if state == nil {
		state = &keyState{current: tl.defaultInitial, start: tl.defaultInitial}
		tl.states[key] = state
	} else {
		state.current = tl.computeValue(state, now)
		state.start = state.current
	}
	state.target = target
	state.startTime = now
	state.duration = opts.Duration
	state.easing = easing

	if opts.Duration <= 0 || state.current == target {
		state.current = target
		state.duration = 0
	}
	return state.current
}

// Get returns the value of key at now.
func (tl *Timeline) Get(key interface{}, now time.Time) float64 {
	tl.mu.Lock()
	defer tl.mu.Unlock()
	state := tl.states[key]
	if state == nil {
		return tl.defaultInitial
	}
	state.current = tl.computeValue(state, now)
	return state.current
}

// GetCached returns the last computed value without advancing time.
func (tl *Timeline) GetCached(key interface{}) float64 {
	tl.mu.RLock()
	defer tl.mu.RUnlock()
	if state := tl.states[key]; state != nil {
		return state.current
	}
	return tl.defaultInitial
}

// IsAnimating reports whether key is still in flight at now.
func (tl *Timeline) IsAnimating(key interface{}, now time.Time) bool {
	tl.mu.RLock()
	defer tl.mu.RUnlock()
	state := tl.states[key]
	if state == nil || state.duration <= 0 {
		return false
	}
	return now.Sub(state.startTime) < state.duration
}

// HasActiveAnimations reports whether any key is still in flight at now.
func (tl *Timeline) HasActiveAnimations(now time.Time) bool {
	tl.mu.RLock()
	defer tl.mu.RUnlock()
	for _, state := range tl.states {
		if state.duration > 0 && now.Sub(state.startTime) < state.duration {
			return true
		}
	}
	return false
}

// Update advances all animations to now.
func (tl *Timeline) Update(now time.Time) {
	tl.mu.Lock()
	defer tl.mu.Unlock()
	for _, state := range tl.states {
		state.current = tl.computeValue(state, now)
	}
}

// Reset removes the timeline state for a key
func (tl *Timeline) Reset(key interface{}) {
	tl.mu.Lock()
	defer tl.mu.Unlock()
	delete(tl.states, key)
}

// Clear removes all timeline states
func (tl *Timeline) Clear() {
	tl.mu.Lock()
	defer tl.mu.Unlock()
	tl.states = make(map[interface{}]*keyState)
}

// computeValue must be called with the lock held.
func (tl *Timeline) computeValue(state *keyState, now time.Time) float64 {
	if state.duration <= 0 {
		return state.target
	}
	if now.Before(state.startTime) {
		return state.start
	}
	elapsed := now.Sub(state.startTime)
	if elapsed >= state.duration {
		return state.target
	}

	progress := float64(elapsed) / float64(state.duration)
	easing := state.easing
	if easing == nil {
		easing = tl.defaultEasing
	}
	return state.start + (state.target-state.start)*easing(progress)
}
