// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: popover/config.go
// Summary: Tunable parameters of a popover.
// Usage: Start from DefaultConfig, adjust fields, pass to Manager.Show.
// Notes: A view clones the config it is given; only Width, Height and
// Direction change afterwards.

package popover

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelpop/geom"
	"github.com/framegrace/texelpop/texel"
)

var (
	// ErrInvalidSize is reported for a non-positive or non-finite width or height.
	ErrInvalidSize = errors.New("popover: width and height must be positive")
	// ErrInvalidAngle is reported for negative pointer dimensions.
	ErrInvalidAngle = errors.New("popover: angle size must not be negative")
	// ErrInvalidOpacity is reported for an overlay opacity outside [0,1].
	ErrInvalidOpacity = errors.New("popover: overlay opacity must be within [0,1]")
	// ErrInvalidRadius is reported for a negative corner radius.
	ErrInvalidRadius = errors.New("popover: corner radius must not be negative")
	// ErrInvalidAnimation is reported for negative durations or damping.
	ErrInvalidAnimation = errors.New("popover: animation parameters must not be negative")
)

// Config holds every tunable parameter of one popover.
type Config struct {
	OverlayColor    tcell.Color
	OverlayOpacity  float64
	BackgroundColor tcell.Color

	Direction Direction
	Width     float64
	Height    float64

	CornerRadius  float64
	ContentInsets geom.Insets
	Offset        geom.Offset

	// AngleFollowsOffset moves the pointer with Offset instead of keeping it
	// on the trigger's centre.
	AngleFollowsOffset bool

	Gradient *Gradient

	HideAngle bool
	AngleSize geom.Size // base width, protrusion

	EntranceDuration time.Duration
	DampingRatio     float64
	SpringVelocity   float64
}

// DefaultConfig returns the stock popover: a white 375×324 card with a
// 20×10 pointer and a half-second spring entrance over a clear overlay.
func DefaultConfig() *Config {
	return &Config{
		OverlayColor:     tcell.ColorDefault,
		BackgroundColor:  tcell.ColorWhite,
		Direction:        Auto,
		Width:            375,
		Height:           324,
		CornerRadius:     12,
		AngleSize:        geom.Sz(20, 10),
		EntranceDuration: 500 * time.Millisecond,
		DampingRatio:     0.8,
		SpringVelocity:   3,
	}
}

// Size returns the requested popover size.
func (c *Config) Size() geom.Size {
	return geom.Sz(c.Width, c.Height)
}

// EffectiveAngleSize is AngleSize, or zero when the pointer is hidden.
func (c *Config) EffectiveAngleSize() geom.Size {
	if c.HideAngle {
		return geom.Size{}
	}
	return c.AngleSize
}

// Overlay returns the dimming fill for the dismiss overlay.
func (c *Config) Overlay() texel.Fill {
	return texel.Fill{Color: c.OverlayColor, Opacity: c.OverlayOpacity}
}

// Clone returns a deep copy, gradient stops included.
func (c *Config) Clone() *Config {
	out := *c
	out.Gradient = c.Gradient.Clone()
	return &out
}

// Validate reports every problem with the config joined into one error.
func (c *Config) Validate() error {
	errs := []error{c.validateLayout()}
	if c.Gradient != nil {
		if err := c.Gradient.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// validateLayout checks the fields a popover cannot be laid out without.
// Gradient problems are not included; views drop a bad gradient instead.
func (c *Config) validateLayout() error {
	var errs []error
	if !positive(c.Width) || !positive(c.Height) {
		errs = append(errs, fmt.Errorf("%w: %vx%v", ErrInvalidSize, c.Width, c.Height))
	}
	if c.AngleSize.W < 0 || c.AngleSize.H < 0 || math.IsNaN(c.AngleSize.W) || math.IsNaN(c.AngleSize.H) {
		errs = append(errs, fmt.Errorf("%w: %vx%v", ErrInvalidAngle, c.AngleSize.W, c.AngleSize.H))
	}
	if c.OverlayOpacity < 0 || c.OverlayOpacity > 1 || math.IsNaN(c.OverlayOpacity) {
		errs = append(errs, fmt.Errorf("%w: %v", ErrInvalidOpacity, c.OverlayOpacity))
	}
	if c.CornerRadius < 0 {
		errs = append(errs, fmt.Errorf("%w: %v", ErrInvalidRadius, c.CornerRadius))
	}
	if c.EntranceDuration < 0 || c.DampingRatio < 0 {
		errs = append(errs, fmt.Errorf("%w: duration %v, damping %v", ErrInvalidAnimation, c.EntranceDuration, c.DampingRatio))
	}
	return errors.Join(errs...)
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}
