// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package effects

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type manualClock struct{ now time.Time }

func (c *manualClock) Now() time.Time { return c.now }

func (c *manualClock) Advance(d time.Duration) time.Time {
	c.now = c.now.Add(d)
	return c.now
}

func TestAnimatorRunsStepsAndCompletion(t *testing.T) {
	clock := &manualClock{now: time.Unix(100, 0)}
	a := NewAnimator(clock.Now)

	var values []float64
	done := 0
	a.Animate(AnimateOptions{Duration: 100 * time.Millisecond, Easing: EaseLinear},
		func(v float64) { values = append(values, v) },
		func() { done++ })

	require.Equal(t, []float64{0}, values)
	a.Tick(clock.Advance(50 * time.Millisecond))
	assert.InDelta(t, 0.5, values[len(values)-1], 1e-9)
	assert.Equal(t, 0, done)
	assert.True(t, a.Active())

	a.Tick(clock.Advance(60 * time.Millisecond))
	assert.Equal(t, 1.0, values[len(values)-1])
	assert.Equal(t, 1, done)
	assert.False(t, a.Active())

	a.Tick(clock.Advance(time.Second))
	assert.Equal(t, 1, done, "completion fires once")
}

func TestAnimatorZeroDurationCompletesOnNextTick(t *testing.T) {
	clock := &manualClock{now: time.Unix(0, 0)}
	a := NewAnimator(clock.Now)
	done := false
	a.Animate(AnimateOptions{}, nil, func() { done = true })
	assert.False(t, done, "completion must not run synchronously")
	a.Tick(clock.now)
	assert.True(t, done)
}

func TestAnimatorCancelSkipsCompletion(t *testing.T) {
	clock := &manualClock{now: time.Unix(0, 0)}
	a := NewAnimator(clock.Now)
	done := false
	id := a.Animate(AnimateOptions{Duration: time.Second}, nil, func() { done = true })
	assert.True(t, a.Running(id))
	assert.True(t, a.Cancel(id))
	assert.False(t, a.Cancel(id))
	a.Tick(clock.Advance(2 * time.Second))
	assert.False(t, done)
}

func TestAnimatorCompletionMayStartTransition(t *testing.T) {
	clock := &manualClock{now: time.Unix(0, 0)}
	a := NewAnimator(clock.Now)
	second := false
	a.Animate(AnimateOptions{}, nil, func() {
		a.Animate(AnimateOptions{}, nil, func() { second = true })
	})
	a.Tick(clock.now)
	assert.False(t, second)
	a.Tick(clock.now)
	assert.True(t, second)
}

func TestEaseSpringEndpoints(t *testing.T) {
	for _, damping := range []float64{0.3, 0.8, 1, 1.5} {
		ease := EaseSpring(damping, 3, 500*time.Millisecond)
		assert.Equal(t, 0.0, ease(0))
		assert.Equal(t, 1.0, ease(1))
		assert.InDelta(t, 1.0, ease(0.99), 0.01, "damping %v settles", damping)
	}
}

func TestEaseSpringLowDampingOvershoots(t *testing.T) {
	ease := EaseSpring(0.3, 6, 500*time.Millisecond)
	peak := 0.0
	for i := 1; i < 100; i++ {
		peak = math.Max(peak, ease(float64(i)/100))
	}
	assert.Greater(t, peak, 1.0)
}

func TestTimelineRetargetsFromCurrentValue(t *testing.T) {
	tl := NewTimeline(0)
	start := time.Unix(0, 0)
	tl.AnimateTo("k", 1, AnimateOptions{Duration: time.Second, Easing: EaseLinear}, start)
	mid := start.Add(500 * time.Millisecond)
	assert.InDelta(t, 0.5, tl.Get("k", mid), 1e-9)

	tl.AnimateTo("k", 0, AnimateOptions{Duration: time.Second, Easing: EaseLinear}, mid)
	assert.InDelta(t, 0.25, tl.Get("k", mid.Add(500*time.Millisecond)), 1e-9)
	assert.False(t, tl.IsAnimating("k", mid.Add(2*time.Second)))
}
