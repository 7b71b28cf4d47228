// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: popover/gradient.go
// Summary: Linear gradient fill for the popover shape.
// Usage: Start and End are unit-square points scaled by the popover bounds.

package popover

import (
	"errors"
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelpop/geom"
	"github.com/framegrace/texelpop/texel"
)

var (
	// ErrGradientEmpty is returned for a gradient without stops.
	ErrGradientEmpty = errors.New("popover: gradient has no stops")
	// ErrGradientMismatch is returned when colours and locations differ in length.
	ErrGradientMismatch = errors.New("popover: gradient colours and locations differ in length")
	// ErrGradientLocations is returned for locations outside [0,1] or out of order.
	ErrGradientLocations = errors.New("popover: gradient locations must be non-decreasing in [0,1]")
)

// GradientStop is one colour at a location along the gradient axis.
type GradientStop struct {
	Color    tcell.Color
	Location float64
}

// Gradient is a linear gradient between two unit-square points.
type Gradient struct {
	Stops []GradientStop
	Start geom.Point
	End   geom.Point
}

// DefaultGradientStart and DefaultGradientEnd run the gradient top to bottom.
var (
	DefaultGradientStart = geom.Pt(0.5, 0)
	DefaultGradientEnd   = geom.Pt(0.5, 1)
)

// NewGradient pairs colours with locations and validates the result.
func NewGradient(colors []tcell.Color, locations []float64, start, end geom.Point) (*Gradient, error) {
	if len(colors) != len(locations) {
		return nil, fmt.Errorf("%w: %d colours, %d locations", ErrGradientMismatch, len(colors), len(locations))
	}
	g := &Gradient{Start: start, End: end}
	for i, c := range colors {
		g.Stops = append(g.Stops, GradientStop{Color: c, Location: locations[i]})
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

// EvenGradient spreads colours evenly from 0 to 1.
func EvenGradient(start, end geom.Point, colors ...tcell.Color) (*Gradient, error) {
	locations := make([]float64, len(colors))
	for i := range colors {
		if len(colors) > 1 {
			locations[i] = float64(i) / float64(len(colors)-1)
		}
	}
	return NewGradient(colors, locations, start, end)
}

// Validate checks that there is at least one stop and that locations are
// non-decreasing within [0,1].
func (g *Gradient) Validate() error {
	if len(g.Stops) == 0 {
		return ErrGradientEmpty
	}
	prev := 0.0
	for i, s := range g.Stops {
		if math.IsNaN(s.Location) || s.Location < 0 || s.Location > 1 {
			return fmt.Errorf("%w: stop %d at %v", ErrGradientLocations, i, s.Location)
		}
		if s.Location < prev {
			return fmt.Errorf("%w: stop %d at %v after %v", ErrGradientLocations, i, s.Location, prev)
		}
		prev = s.Location
	}
	return nil
}

// Clone returns a deep copy.
func (g *Gradient) Clone() *Gradient {
	if g == nil {
		return nil
	}
	out := *g
	out.Stops = append([]GradientStop(nil), g.Stops...)
	return &out
}

// ColorAt returns the colour at position t along the axis. Positions before
// the first stop or after the last take that stop's colour.
func (g *Gradient) ColorAt(t float64) tcell.Color {
	if len(g.Stops) == 0 {
		return tcell.ColorDefault
	}
	first, last := g.Stops[0], g.Stops[len(g.Stops)-1]
	if t <= first.Location {
		return first.Color
	}
	if t >= last.Location {
		return last.Color
	}
	for i := 1; i < len(g.Stops); i++ {
		a, b := g.Stops[i-1], g.Stops[i]
		if t > b.Location {
			continue
		}
		span := b.Location - a.Location
		if span <= 0 {
			return b.Color
		}
		return texel.BlendColor(a.Color, b.Color, (t-a.Location)/span)
	}
	return last.Color
}

// axisPosition projects p onto the start→end axis, 0 at start and 1 at end.
func axisPosition(p, start, end geom.Point) float64 {
	axis := end.Sub(start)
	length := axis.Dot(axis)
	if length == 0 {
		return 0
	}
	return p.Sub(start).Dot(axis) / length
}
