// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texel/fade_effect.go
// Summary: Colour blending used to tint cells under translucent views.
// Usage: Canvas.Fill and faded shapes call FadeCell and BlendColor.

package texel

import (
	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// DefaultBackground stands in for cells whose background is the terminal
// default when a blend needs a concrete colour.
var DefaultBackground = tcell.ColorBlack

// DefaultForeground stands in for the terminal default foreground.
var DefaultForeground = tcell.ColorSilver

// ToColorful converts a tcell colour to a colorful.Color.
func ToColorful(c tcell.Color) colorful.Color {
	r, g, b := c.RGB()
	if r < 0 {
		return colorful.Color{}
	}
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}

// FromColorful converts back to a true-colour tcell colour.
func FromColorful(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// BlendColor interpolates from original towards blend by intensity in RGB
// space. Invalid colours pass original through unchanged.
func BlendColor(original, blend tcell.Color, intensity float64) tcell.Color {
	if !original.Valid() || !blend.Valid() {
		return original
	}
	if intensity <= 0 {
		return original
	}
	if intensity >= 1 {
		return blend
	}
	return FromColorful(ToColorful(original).BlendRgb(ToColorful(blend), intensity))
}

// FadeCell tints both colours of c towards color by intensity, keeping the
// rune and attributes.
func FadeCell(c Cell, color tcell.Color, intensity float64) Cell {
	if intensity <= 0 || !color.Valid() {
		return c
	}
	fg, bg, attrs := c.Style.Decompose()
	if !fg.Valid() {
		fg = DefaultForeground
	}
	if !bg.Valid() {
		bg = DefaultBackground
	}
	c.Style = tcell.StyleDefault.
		Foreground(BlendColor(fg, color, intensity)).
		Background(BlendColor(bg, color, intensity)).
		Attributes(attrs)
	if c.Ch == 0 {
		c.Ch = ' '
	}
	return c
}
