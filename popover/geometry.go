// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: popover/geometry.go
// Summary: Placement engine: direction choice, origin, pointer and resize rules.
// Usage: Pure functions over rectangles; View calls them during layout.
// Notes: All coordinates are points. Trigger rects are given in the parent's
// space and trigger centres in the popover's own space.

package popover

import "github.com/framegrace/texelpop/geom"

const (
	// Margin is the gap between the trigger and the popover.
	Margin = 8.0
	// AngleMargin keeps the pointer this far from the popover's edge when the
	// popover is pushed towards a screen edge.
	AngleMargin = 16.0
)

// Angle is the pointer triangle. P1 and P2 sit on the container edge in
// clockwise order; Tip is the apex.
type Angle struct {
	P1  geom.Point
	P2  geom.Point
	Tip geom.Point
}

// ResolveDirection picks where the popover goes. A concrete request is
// returned as is. Auto tries bottom, top and right in that order and falls
// back to left even when nothing fits.
func ResolveDirection(trigger geom.Rect, parent, popover geom.Size, angleHeight float64, offset geom.Offset, requested Direction) Side {
	if side, ok := requested.Side(); ok {
		return side
	}
	switch {
	case trigger.Y+trigger.H+angleHeight+popover.H+offset.Vertical+Margin <= parent.H:
		return SideBottom
	case popover.H+angleHeight+Margin <= trigger.Y-offset.Vertical:
		return SideTop
	case popover.W+angleHeight+trigger.X+trigger.W+offset.Horizontal+Margin < parent.W:
		return SideRight
	default:
		return SideLeft
	}
}

// ComputeOrigin returns the popover's top-left corner in the parent's space.
// Without a trigger the popover is centred in the parent. Offset is applied
// last in every case.
func ComputeOrigin(side Side, trigger *geom.Rect, parent, popover, angle geom.Size, offset geom.Offset) geom.Point {
	var origin geom.Point
	if trigger == nil {
		origin = geom.Pt(parent.W/2-popover.W/2, parent.H/2-popover.H/2)
	} else {
		t := *trigger
		half := angle.W / 2
		switch side {
		case SideTop:
			origin = geom.Pt(alongEdge(t.MidX(), parent.W, popover.W, half), t.Y-Margin-popover.H)
		case SideLeft:
			origin = geom.Pt(t.X-Margin-popover.W, alongEdge(t.MidY(), parent.H, popover.H, half))
		case SideRight:
			origin = geom.Pt(t.MaxX()+Margin, alongEdge(t.MidY(), parent.H, popover.H, half))
		default:
			origin = geom.Pt(alongEdge(t.MidX(), parent.W, popover.W, half), t.MaxY()+Margin)
		}
	}
	return geom.Pt(origin.X+offset.Horizontal, origin.Y+offset.Vertical)
}

// alongEdge places a popover of the given length along the axis parallel to
// the pointer edge. The extent is split in thirds: near the far end the
// popover hangs back from the trigger, near the start it extends forward,
// and in the middle it is centred.
func alongEdge(center, extent, length, halfAngle float64) float64 {
	switch {
	case center >= extent*2/3:
		return center + AngleMargin + halfAngle - length
	case center < extent*1/3:
		return center - AngleMargin - halfAngle
	default:
		return center - length/2
	}
}

// ContainerInsets returns the space reserved for the pointer on the edge
// facing the trigger.
func ContainerInsets(side Side, angle geom.Size) geom.Insets {
	switch side {
	case SideTop:
		return geom.Insets{Bottom: angle.H}
	case SideLeft:
		return geom.Insets{Right: angle.H}
	case SideRight:
		return geom.Insets{Left: angle.H}
	default:
		return geom.Insets{Top: angle.H}
	}
}

// ComputeAngleVertices returns the pointer triangle in the popover's space,
// or false when there is no trigger. The base is centred on the trigger's
// centre unless followsOffset shifts it with the offset.
func ComputeAngleVertices(side Side, triggerCenter *geom.Point, angle, bounds geom.Size, followsOffset bool, offset geom.Offset) (Angle, bool) {
	if triggerCenter == nil {
		return Angle{}, false
	}
	c := *triggerCenter
	var a Angle
	switch side {
	case SideTop:
		a.P1 = geom.Pt(c.X+angle.W/2, bounds.H-angle.H)
		a.P2 = geom.Pt(a.P1.X-angle.W, a.P1.Y)
	case SideLeft:
		a.P1 = geom.Pt(bounds.W-angle.H, c.Y-angle.W/2)
		a.P2 = geom.Pt(a.P1.X, a.P1.Y+angle.W)
	case SideRight:
		a.P1 = geom.Pt(angle.H, c.Y+angle.W/2)
		a.P2 = geom.Pt(a.P1.X, a.P1.Y-angle.W)
	default:
		a.P1 = geom.Pt(c.X-angle.W/2, angle.H)
		a.P2 = geom.Pt(a.P1.X+angle.W, a.P1.Y)
	}

	if followsOffset {
		if side.Horizontal() {
			a.P1.X += offset.Horizontal
			a.P2.X += offset.Horizontal
		} else {
			a.P1.Y += offset.Vertical
			a.P2.Y += offset.Vertical
		}
	}

	switch side {
	case SideTop:
		a.Tip = geom.Pt(a.P1.X-angle.W/2, bounds.H)
	case SideLeft:
		a.Tip = geom.Pt(bounds.W, a.P1.Y+angle.W/2)
	case SideRight:
		a.Tip = geom.Pt(0, a.P1.Y-angle.W/2)
	default:
		a.Tip = geom.Pt(a.P1.X+angle.W/2, 0)
	}
	return a, true
}

// ComputeAnchorPoint normalizes the pointer tip into the popover's unit
// square, pinning the axis of the pointer edge to 0 or 1.
func ComputeAnchorPoint(side Side, tip geom.Point, size geom.Size) geom.Point {
	ratio := func(v, extent float64) float64 {
		if extent == 0 {
			return 0.5
		}
		return v / extent
	}
	switch side {
	case SideTop:
		return geom.Pt(ratio(tip.X, size.W), 1)
	case SideLeft:
		return geom.Pt(1, ratio(tip.Y, size.H))
	case SideRight:
		return geom.Pt(0, ratio(tip.Y, size.H))
	default:
		return geom.Pt(ratio(tip.X, size.W), 0)
	}
}

// ComputeResizedFrame keeps the edge facing the trigger fixed and centres
// the new size on the current centre along that edge. Positions move by
// the size difference, so an unchanged size returns current unchanged.
func ComputeResizedFrame(side Side, current geom.Rect, w, h float64) geom.Rect {
	dw := current.W - w
	dh := current.H - h
	switch side {
	case SideTop:
		return geom.R(current.X+dw/2, current.Y+dh, w, h)
	case SideLeft:
		return geom.R(current.X+dw, current.Y+dh/2, w, h)
	case SideRight:
		return geom.R(current.X, current.Y+dh/2, w, h)
	default:
		return geom.R(current.X+dw/2, current.Y, w, h)
	}
}

// GradientVector converts the gradient's unit-square endpoints into points
// within bounds.
func GradientVector(g *Gradient, bounds geom.Size) (start, end geom.Point) {
	if g == nil {
		return geom.Point{}, geom.Point{}
	}
	start = geom.Pt(g.Start.X*bounds.W, g.Start.Y*bounds.H)
	end = geom.Pt(g.End.X*bounds.W, g.End.Y*bounds.H)
	return start, end
}
