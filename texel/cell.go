// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texel/cell.go
// Summary: Cell grid the view tree renders into.
// Usage: Host.Render fills a Buffer; the screen driver flushes it to tcell.

package texel

import (
	"strings"

	"github.com/gdamore/tcell/v2"
)

// Cell is one terminal cell.
type Cell struct {
	Ch    rune
	Style tcell.Style
}

// Buffer is a row-major grid of cells.
type Buffer struct {
	rows [][]Cell
	w, h int
}

// NewBuffer allocates a w×h buffer of blank cells.
func NewBuffer(w, h int) *Buffer {
	b := &Buffer{}
	b.Resize(w, h)
	return b
}

// Resize reallocates the grid, discarding its content.
func (b *Buffer) Resize(w, h int) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	b.w, b.h = w, h
	b.rows = make([][]Cell, h)
	for y := range b.rows {
		b.rows[y] = make([]Cell, w)
	}
	b.Clear(tcell.StyleDefault)
}

// Size returns the grid dimensions in cells.
func (b *Buffer) Size() (int, int) {
	return b.w, b.h
}

// Clear fills every cell with a blank in style.
func (b *Buffer) Clear(style tcell.Style) {
	for y := range b.rows {
		for x := range b.rows[y] {
			b.rows[y][x] = Cell{Ch: ' ', Style: style}
		}
	}
}

// InBounds reports whether (x, y) addresses a cell.
func (b *Buffer) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < b.w && y < b.h
}

// At returns the cell at (x, y), or a blank cell when out of range.
func (b *Buffer) At(x, y int) Cell {
	if !b.InBounds(x, y) {
		return Cell{Ch: ' ', Style: tcell.StyleDefault}
	}
	return b.rows[y][x]
}

// Set stores c at (x, y); out of range writes are ignored.
func (b *Buffer) Set(x, y int, c Cell) {
	if b.InBounds(x, y) {
		b.rows[y][x] = c
	}
}

// Row returns the runes of row y as a string, mostly for tests.
func (b *Buffer) Row(y int) string {
	if y < 0 || y >= b.h {
		return ""
	}
	var sb strings.Builder
	for _, c := range b.rows[y] {
		if c.Ch == 0 {
			sb.WriteRune(' ')
			continue
		}
		sb.WriteRune(c.Ch)
	}
	return sb.String()
}

// Rows exposes the grid for read-only iteration.
func (b *Buffer) Rows() [][]Cell {
	return b.rows
}
