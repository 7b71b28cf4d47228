// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/effects/spring.go
// Summary: Damped spring easing curve parameterised like a UI spring animation.
// Usage: EaseSpring(damping, velocity, duration) for popover entrance.

package effects

import (
	"math"
	"time"
)

// springSettle is the residual amplitude the envelope decays to at t=1.
const springSettle = 0.001

// EaseSpring returns a damped harmonic oscillator that starts at 0 and
// settles on 1 when progress reaches 1. dampingRatio follows the usual
// convention (1 = critically damped, lower values bounce). velocity is the
// initial speed where 1 means the whole distance per second, so it is
// rescaled by duration into normalized time.
func EaseSpring(dampingRatio, velocity float64, duration time.Duration) EasingFunc {
	zeta := dampingRatio
	if zeta < 0.05 {
		zeta = 0.05
	}
	// Choose the natural frequency so the envelope has decayed by t=1.
	omega := math.Log(1/springSettle) / math.Min(zeta, 1)
	v0 := velocity * duration.Seconds()

	// d(t) is the displacement from the target, d(0) = -1, d'(0) = v0.
	var displacement func(t float64) float64
	if zeta < 1 {
		wd := omega * math.Sqrt(1-zeta*zeta)
		a := -1.0
		b := (v0 + zeta*omega*a) / wd
		displacement = func(t float64) float64 {
			return math.Exp(-zeta*omega*t) * (a*math.Cos(wd*t) + b*math.Sin(wd*t))
		}
	} else {
		a := -1.0
		b := v0 + omega*a
		displacement = func(t float64) float64 {
			return math.Exp(-omega*t) * (a + b*t)
		}
	}

	return func(t float64) float64 {
		if t <= 0 {
			return 0
		}
		if t >= 1 {
			return 1
		}
		return 1 + displacement(t)
	}
}
