// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: popover/shape.go
// Summary: Outline and fill of a popover: rounded container plus pointer.
// Usage: View.Shape builds one per redraw; texel.Canvas.FillShape paints it.

package popover

import (
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelpop/geom"
)

// TipRadius rounds the pointer apex.
const TipRadius = 3.0

// Shape is the region a popover paints: the container rect rounded by
// CornerRadius, unioned with the pointer triangle when HasAngle is set.
// With a gradient the whole region takes the gradient, clamped past its
// ends; otherwise it takes Fill.
type Shape struct {
	Container    geom.Rect
	CornerRadius float64
	Fill         tcell.Color

	Angle     Angle
	HasAngle  bool
	TipRadius float64

	Gradient      *Gradient
	GradientStart geom.Point
	GradientEnd   geom.Point
}

// Contains reports whether p lies inside the shape.
func (s Shape) Contains(p geom.Point) bool {
	if s.inContainer(p) {
		return true
	}
	return s.HasAngle && s.inAngle(p)
}

// ColorAt returns the fill colour at p.
func (s Shape) ColorAt(p geom.Point) tcell.Color {
	if s.Gradient == nil || len(s.Gradient.Stops) == 0 {
		return s.Fill
	}
	return s.Gradient.ColorAt(axisPosition(p, s.GradientStart, s.GradientEnd))
}

func (s Shape) inContainer(p geom.Point) bool {
	r := s.Container
	if r.IsEmpty() {
		return false
	}
	halfW, halfH := r.W/2, r.H/2
	radius := math.Min(math.Max(s.CornerRadius, 0), math.Min(halfW, halfH))
	return sdfRRect(p.X, p.Y, r.MidX(), r.MidY(), halfW, halfH, radius) <= 0
}

// sdfRRect is the signed distance from (px, py) to a rounded rectangle;
// negative inside.
func sdfRRect(px, py, cx, cy, halfW, halfH, cornerRadius float64) float64 {
	dx := math.Abs(px-cx) - halfW + cornerRadius
	dy := math.Abs(py-cy) - halfH + cornerRadius
	outside := math.Hypot(math.Max(dx, 0), math.Max(dy, 0))
	inside := math.Min(math.Max(dx, dy), 0)
	return outside + inside - cornerRadius
}

func (s Shape) inAngle(p geom.Point) bool {
	a := s.Angle
	d1 := cross(a.P1, a.Tip, p)
	d2 := cross(a.Tip, a.P2, p)
	d3 := cross(a.P2, a.P1, p)
	if cross(a.P1, a.Tip, a.P2) == 0 {
		return false
	}
	neg := d1 < 0 || d2 < 0 || d3 < 0
	pos := d1 > 0 || d2 > 0 || d3 > 0
	if neg && pos {
		return false
	}
	return !s.cutByTip(p)
}

// cutByTip reports whether p falls in the sliver the tip arc removes: closer
// to the apex than the arc's tangent points and outside the arc.
func (s Shape) cutByTip(p geom.Point) bool {
	r := s.TipRadius
	if r <= 0 {
		return false
	}
	a := s.Angle
	mid := geom.Pt((a.P1.X+a.P2.X)/2, (a.P1.Y+a.P2.Y)/2)
	axis := mid.Sub(a.Tip)
	height := math.Hypot(axis.X, axis.Y)
	side := a.P1.Sub(a.Tip)
	sideLen := math.Hypot(side.X, side.Y)
	if height == 0 || sideLen == 0 {
		return false
	}
	u := axis.Scale(1 / height)
	cosHalf := side.Dot(u) / sideLen
	sinHalf := math.Sqrt(math.Max(0, 1-cosHalf*cosHalf))
	if sinHalf == 0 || cosHalf <= 0 {
		return false
	}
	// Tangent points sit r/tan(half) from the apex along each side; the arc
	// centre sits r/sin(half) along the axis.
	chord := r / sinHalf * cosHalf * cosHalf
	if chord >= height {
		return false
	}
	rel := p.Sub(a.Tip)
	if rel.Dot(u) >= chord {
		return false
	}
	center := u.Scale(r / sinHalf)
	d := rel.Sub(center)
	return math.Hypot(d.X, d.Y) > r
}

func cross(a, b, p geom.Point) float64 {
	return (b.X-a.X)*(p.Y-a.Y) - (b.Y-a.Y)*(p.X-a.X)
}
