// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: popover/load.go
// Summary: Builds a popover Config from the "popover" config section.
// Usage: popover.FromConfig(config.System()) to theme popovers from disk.

package popover

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelpop/config"
	"github.com/framegrace/texelpop/geom"
)

// SectionName is the config section FromConfig reads.
const SectionName = "popover"

// ErrBadColor is reported for a colour name tcell does not know.
var ErrBadColor = errors.New("popover: unknown colour")

// FromConfig reads the popover section over DefaultConfig. Keys that are
// missing keep their defaults. Unparseable values are reported in the
// returned error and also keep their defaults, so the config is usable even
// when the error is non-nil. The result is not validated.
func FromConfig(cfg config.Config) (*Config, error) {
	out := DefaultConfig()
	var errs []error

	color := func(key string, def tcell.Color) tcell.Color {
		c, err := parseColor(cfg.GetString(SectionName, key, ""), def)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", key, err))
			return def
		}
		return c
	}
	pair := func(key string, a, b float64) (float64, float64) {
		vals := cfg.GetFloats(SectionName, key, nil)
		switch len(vals) {
		case 0:
			return a, b
		case 2:
			return vals[0], vals[1]
		}
		errs = append(errs, fmt.Errorf("%s: want 2 numbers, got %d", key, len(vals)))
		return a, b
	}

	out.OverlayColor = color("overlay_color", out.OverlayColor)
	out.OverlayOpacity = cfg.GetFloat(SectionName, "overlay_opacity", out.OverlayOpacity)
	out.BackgroundColor = color("background_color", out.BackgroundColor)

	if raw := cfg.GetString(SectionName, "direction", ""); raw != "" {
		d, err := ParseDirection(raw)
		if err != nil {
			errs = append(errs, err)
		} else {
			out.Direction = d
		}
	}
	out.Width = cfg.GetFloat(SectionName, "width", out.Width)
	out.Height = cfg.GetFloat(SectionName, "height", out.Height)
	out.CornerRadius = cfg.GetFloat(SectionName, "corner_radius", out.CornerRadius)

	if insets := cfg.GetFloats(SectionName, "content_insets", nil); insets != nil {
		if len(insets) == 4 {
			out.ContentInsets = geom.Insets{Top: insets[0], Left: insets[1], Bottom: insets[2], Right: insets[3]}
		} else {
			errs = append(errs, fmt.Errorf("content_insets: want 4 numbers, got %d", len(insets)))
		}
	}
	out.Offset.Horizontal, out.Offset.Vertical = pair("offset", out.Offset.Horizontal, out.Offset.Vertical)
	out.AngleFollowsOffset = cfg.GetBool(SectionName, "angle_follows_offset", out.AngleFollowsOffset)
	out.HideAngle = cfg.GetBool(SectionName, "hide_angle", out.HideAngle)
	out.AngleSize.W, out.AngleSize.H = pair("angle_size", out.AngleSize.W, out.AngleSize.H)

	ms := cfg.GetInt(SectionName, "entrance_ms", int(out.EntranceDuration/time.Millisecond))
	out.EntranceDuration = time.Duration(ms) * time.Millisecond
	out.DampingRatio = cfg.GetFloat(SectionName, "damping_ratio", out.DampingRatio)
	out.SpringVelocity = cfg.GetFloat(SectionName, "spring_velocity", out.SpringVelocity)

	if names := cfg.GetStrings(SectionName, "gradient_colors", nil); len(names) > 0 {
		g, err := loadGradient(cfg, names, pair)
		if err != nil {
			errs = append(errs, fmt.Errorf("gradient: %w", err))
		} else {
			out.Gradient = g
		}
	}
	return out, errors.Join(errs...)
}

func loadGradient(cfg config.Config, names []string, pair func(string, float64, float64) (float64, float64)) (*Gradient, error) {
	colors := make([]tcell.Color, len(names))
	for i, name := range names {
		c, err := parseColor(name, tcell.ColorDefault)
		if err != nil {
			return nil, err
		}
		colors[i] = c
	}
	start, end := DefaultGradientStart, DefaultGradientEnd
	start.X, start.Y = pair("gradient_start", start.X, start.Y)
	end.X, end.Y = pair("gradient_end", end.X, end.Y)

	locations := cfg.GetFloats(SectionName, "gradient_locations", nil)
	if locations == nil {
		return EvenGradient(start, end, colors...)
	}
	return NewGradient(colors, locations, start, end)
}

// parseColor accepts tcell colour names and #rrggbb. An empty name gives
// def; "default" and "clear" give ColorDefault.
func parseColor(name string, def tcell.Color) (tcell.Color, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	switch key {
	case "":
		return def, nil
	case "default", "clear":
		return tcell.ColorDefault, nil
	}
	c := tcell.GetColor(key)
	if c == tcell.ColorDefault {
		return def, fmt.Errorf("%w: %q", ErrBadColor, name)
	}
	return c, nil
}
