// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texel/canvas.go
// Summary: Point-space drawing surface over a cell buffer.
// Usage: Drawers receive a Canvas set up in their view's local coordinates.
// Notes: Shapes are sampled twice per cell and painted with half blocks, so
// the vertical resolution is two samples per row.

package texel

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/framegrace/texelpop/geom"
)

// CellMetrics is the size of one terminal cell in points.
type CellMetrics struct {
	W float64
	H float64
}

// DefaultMetrics maps a cell to 8×16 points, close to a typical terminal
// glyph aspect ratio.
var DefaultMetrics = CellMetrics{W: 8, H: 16}

// Valid reports whether both dimensions are positive.
func (m CellMetrics) Valid() bool {
	return m.W > 0 && m.H > 0
}

// CellRect returns the point-space rectangle covered by cell (x, y).
func (m CellMetrics) CellRect(x, y int) geom.Rect {
	return geom.R(float64(x)*m.W, float64(y)*m.H, m.W, m.H)
}

// CellCenter returns the centre of cell (x, y) in points.
func (m CellMetrics) CellCenter(x, y int) geom.Point {
	return geom.Pt((float64(x)+0.5)*m.W, (float64(y)+0.5)*m.H)
}

// CellAt returns the cell containing p.
func (m CellMetrics) CellAt(p geom.Point) (int, int) {
	return int(math.Floor(p.X / m.W)), int(math.Floor(p.Y / m.H))
}

// ScreenSize converts a cell grid size into points.
func (m CellMetrics) ScreenSize(cols, rows int) geom.Size {
	return geom.Sz(float64(cols)*m.W, float64(rows)*m.H)
}

// Shape is a filled region the canvas can rasterise.
type Shape interface {
	Contains(p geom.Point) bool
	ColorAt(p geom.Point) tcell.Color
}

// affine maps local points to screen points as s*p + b.
type affine struct {
	s float64
	b geom.Point
}

var identity = affine{s: 1}

func (a affine) apply(p geom.Point) geom.Point {
	return geom.Pt(p.X*a.s+a.b.X, p.Y*a.s+a.b.Y)
}

func (a affine) invert(p geom.Point) (geom.Point, bool) {
	if a.s == 0 {
		return geom.Point{}, false
	}
	return geom.Pt((p.X-a.b.X)/a.s, (p.Y-a.b.Y)/a.s), true
}

// child composes the transform of a view with the given frame, scaled by k
// around its normalized anchor.
func (a affine) child(frame geom.Rect, anchor geom.Point, k float64) affine {
	off := geom.Pt(
		frame.X+anchor.X*frame.W*(1-k),
		frame.Y+anchor.Y*frame.H*(1-k),
	)
	return affine{s: a.s * k, b: a.apply(off)}
}

// cellClip is a half-open cell rectangle.
type cellClip struct {
	x0, y0, x1, y1 int
}

func (c cellClip) intersect(o cellClip) cellClip {
	return cellClip{
		x0: max(c.x0, o.x0),
		y0: max(c.y0, o.y0),
		x1: min(c.x1, o.x1),
		y1: min(c.y1, o.y1),
	}
}

func (c cellClip) empty() bool {
	return c.x1 <= c.x0 || c.y1 <= c.y0
}

func (c cellClip) contains(x, y int) bool {
	return x >= c.x0 && x < c.x1 && y >= c.y0 && y < c.y1
}

// textScaleTolerance is how far from 1 the scale may be before text is
// skipped; glyphs cannot be resized.
const textScaleTolerance = 0.02

// Canvas draws in a view's local point space.
type Canvas struct {
	buf     *Buffer
	metrics CellMetrics
	xf      affine
	clip    cellClip
	size    geom.Size
	alpha   float64
}

// NewCanvas returns an untransformed canvas covering the whole buffer.
func NewCanvas(buf *Buffer, metrics CellMetrics) *Canvas {
	w, h := buf.Size()
	return &Canvas{
		buf:     buf,
		metrics: metrics,
		xf:      identity,
		clip:    cellClip{x1: w, y1: h},
		size:    metrics.ScreenSize(w, h),
		alpha:   1,
	}
}

// Size returns the local bounds size of the view being drawn.
func (c *Canvas) Size() geom.Size {
	return c.size
}

// Scale returns the effective scale from local points to screen points.
func (c *Canvas) Scale() float64 {
	return c.xf.s
}

// Metrics returns the cell metrics of the underlying buffer.
func (c *Canvas) Metrics() CellMetrics {
	return c.metrics
}

// span returns the clipped cell range touched by the local rect r.
func (c *Canvas) span(r geom.Rect) cellClip {
	p0 := c.xf.apply(r.Origin())
	p1 := c.xf.apply(geom.Pt(r.MaxX(), r.MaxY()))
	s := cellClip{
		x0: int(math.Floor(p0.X / c.metrics.W)),
		y0: int(math.Floor(p0.Y / c.metrics.H)),
		x1: int(math.Ceil(p1.X / c.metrics.W)),
		y1: int(math.Ceil(p1.Y / c.metrics.H)),
	}
	return s.intersect(c.clip)
}

func (c *Canvas) local(p geom.Point) (geom.Point, bool) {
	return c.xf.invert(p)
}

// Fill tints every cell whose centre falls inside the local rect r.
func (c *Canvas) Fill(r geom.Rect, fill Fill) {
	opacity := fill.Opacity * c.alpha
	if opacity <= 0 || !fill.Color.Valid() {
		return
	}
	sp := c.span(r)
	for y := sp.y0; y < sp.y1; y++ {
		for x := sp.x0; x < sp.x1; x++ {
			p, ok := c.local(c.metrics.CellCenter(x, y))
			if !ok || !r.Contains(p) {
				continue
			}
			c.buf.Set(x, y, FadeCell(c.buf.At(x, y), fill.Color, opacity))
		}
	}
}

// FillShape paints s over the view's bounds. Each cell is split into an
// upper and lower sample; cells where only one half is inside keep the
// existing background on the other half.
func (c *Canvas) FillShape(s Shape) {
	if s == nil || c.alpha <= 0 {
		return
	}
	sp := c.span(geom.R(0, 0, c.size.W, c.size.H))
	for y := sp.y0; y < sp.y1; y++ {
		for x := sp.x0; x < sp.x1; x++ {
			cell := c.metrics.CellRect(x, y)
			top, topIn := c.sample(s, geom.Pt(cell.MidX(), cell.Y+cell.H/4))
			bottom, bottomIn := c.sample(s, geom.Pt(cell.MidX(), cell.Y+cell.H*3/4))
			if !topIn && !bottomIn {
				continue
			}
			_, bg, _ := c.buf.At(x, y).Style.Decompose()
			if c.alpha < 1 {
				base := bg
				if !base.Valid() {
					base = DefaultBackground
				}
				top = BlendColor(base, top, c.alpha)
				bottom = BlendColor(base, bottom, c.alpha)
			}
			switch {
			case topIn && bottomIn && top == bottom:
				c.buf.Set(x, y, Cell{Ch: ' ', Style: tcell.StyleDefault.Background(top)})
			case topIn && bottomIn:
				c.buf.Set(x, y, Cell{Ch: '▀', Style: tcell.StyleDefault.Foreground(top).Background(bottom)})
			case topIn:
				c.buf.Set(x, y, Cell{Ch: '▀', Style: tcell.StyleDefault.Foreground(top).Background(bg)})
			default:
				c.buf.Set(x, y, Cell{Ch: '▄', Style: tcell.StyleDefault.Foreground(bottom).Background(bg)})
			}
		}
	}
}

func (c *Canvas) sample(s Shape, screen geom.Point) (tcell.Color, bool) {
	p, ok := c.local(screen)
	if !ok || !s.Contains(p) {
		return tcell.ColorDefault, false
	}
	return s.ColorAt(p), true
}

// Text writes s starting at the cell containing the local point p and
// returns the number of cells written. Text is skipped while the view is
// scaled. A style without a background keeps the background underneath.
func (c *Canvas) Text(p geom.Point, s string, style tcell.Style) int {
	if math.Abs(c.xf.s-1) > textScaleTolerance || c.alpha <= 0 {
		return 0
	}
	x, y := c.metrics.CellAt(c.xf.apply(p).Add(geom.Pt(0.001, 0.001)))
	if y < c.clip.y0 || y >= c.clip.y1 {
		return 0
	}
	fg, bg, attrs := style.Decompose()
	written := 0
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if x+w > c.clip.x1 {
			break
		}
		if x >= c.clip.x0 {
			_, under, _ := c.buf.At(x, y).Style.Decompose()
			cellBg := bg
			if !cellBg.Valid() {
				cellBg = under
			}
			st := tcell.StyleDefault.Foreground(fg).Background(cellBg).Attributes(attrs)
			c.buf.Set(x, y, Cell{Ch: r, Style: st})
			for i := 1; i < w; i++ {
				c.buf.Set(x+i, y, Cell{Ch: 0, Style: st})
			}
			written += w
		}
		x += w
	}
	return written
}
