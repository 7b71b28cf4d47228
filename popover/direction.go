// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: popover/direction.go
// Summary: Requested placement direction and the concrete side it resolves to.
// Notes: Geometry only ever sees Side; Auto is resolved by the view before
// the first layout.

package popover

import (
	"errors"
	"fmt"
	"strings"
)

// Side is the side of the trigger a popover sits on.
type Side int

const (
	SideTop Side = iota
	SideBottom
	SideLeft
	SideRight
)

func (s Side) String() string {
	switch s {
	case SideTop:
		return "top"
	case SideBottom:
		return "bottom"
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	}
	return fmt.Sprintf("side(%d)", int(s))
}

// Horizontal reports whether the popover sits above or below its trigger,
// so the pointer lives on a horizontal edge.
func (s Side) Horizontal() bool {
	return s == SideTop || s == SideBottom
}

// Direction is what callers request: Auto or a concrete side.
type Direction struct {
	side     Side
	concrete bool
}

// Auto lets the view pick a side that fits, preferring bottom, top, right,
// then left.
var Auto = Direction{}

// ErrUnknownDirection is returned by ParseDirection.
var ErrUnknownDirection = errors.New("popover: unknown direction")

// Concrete requests a fixed side.
func Concrete(s Side) Direction {
	return Direction{side: s, concrete: true}
}

// Side returns the requested side, or false for Auto.
func (d Direction) Side() (Side, bool) {
	return d.side, d.concrete
}

// IsAuto reports whether d is Auto.
func (d Direction) IsAuto() bool {
	return !d.concrete
}

// SideOr returns the requested side, or fallback for Auto.
func (d Direction) SideOr(fallback Side) Side {
	if d.concrete {
		return d.side
	}
	return fallback
}

func (d Direction) String() string {
	if !d.concrete {
		return "auto"
	}
	return d.side.String()
}

// ParseDirection accepts auto, top, bottom, left and right, case-insensitively.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return Auto, nil
	case "top":
		return Concrete(SideTop), nil
	case "bottom":
		return Concrete(SideBottom), nil
	case "left":
		return Concrete(SideLeft), nil
	case "right":
		return Concrete(SideRight), nil
	}
	return Auto, fmt.Errorf("%w: %q", ErrUnknownDirection, s)
}
