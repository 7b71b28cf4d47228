// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texel/label.go
// Summary: Multi-line text content view.
// Usage: Demo content and button captions; MeasureLabel sizes a view to fit.

package texel

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/framegrace/texelpop/geom"
)

// Alignment controls horizontal placement of label lines.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
)

// Label draws text lines in its view, one line per cell row.
type Label struct {
	Text   string
	Style  tcell.Style
	Align  Alignment
	Middle bool // centre the block vertically
}

// NewLabel creates a left-aligned label.
func NewLabel(text string, style tcell.Style) *Label {
	return &Label{Text: text, Style: style}
}

func (l *Label) lines() []string {
	return strings.Split(l.Text, "\n")
}

// Draw implements Drawer.
func (l *Label) Draw(c *Canvas) {
	m := c.Metrics()
	size := c.Size()
	cols := int(size.W / m.W)
	lines := l.lines()
	top := 0.0
	if l.Middle {
		top = (size.H - float64(len(lines))*m.H) / 2
		if top < 0 {
			top = 0
		}
	}
	for i, line := range lines {
		y := top + float64(i)*m.H
		if y+m.H > size.H+0.5 {
			break
		}
		line = runewidth.Truncate(line, cols, "…")
		x := 0.0
		switch l.Align {
		case AlignCenter:
			x = float64((cols-runewidth.StringWidth(line))/2) * m.W
		case AlignRight:
			x = float64(cols-runewidth.StringWidth(line)) * m.W
		}
		c.Text(geom.Pt(x, y), line, l.Style)
	}
}

// MeasureLabel returns the point size needed to show text without
// truncation under the given metrics.
func MeasureLabel(text string, m CellMetrics) geom.Size {
	lines := strings.Split(text, "\n")
	width := 0
	for _, line := range lines {
		width = max(width, runewidth.StringWidth(line))
	}
	return geom.Sz(float64(width)*m.W, float64(len(lines))*m.H)
}
