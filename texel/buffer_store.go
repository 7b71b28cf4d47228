// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texel/buffer_store.go
// Summary: Keeps the last flushed frame so drivers only push changed cells.

package texel

// BufferStore remembers the previously flushed frame.
type BufferStore interface {
	Snapshot() [][]Cell
	Save(buf *Buffer)
	Clear()
}

// InMemoryBufferStore is a BufferStore holding a private copy of the last
// frame.
type InMemoryBufferStore struct {
	buf [][]Cell
}

// NewInMemoryBufferStore constructs an empty buffer store.
func NewInMemoryBufferStore() BufferStore {
	return &InMemoryBufferStore{}
}

// Snapshot returns the last saved frame. Callers should treat the returned
// value as read-only.
func (s *InMemoryBufferStore) Snapshot() [][]Cell {
	return s.buf
}

// Save copies buf so later renders into it do not alter the snapshot.
func (s *InMemoryBufferStore) Save(buf *Buffer) {
	rows := buf.Rows()
	if len(s.buf) != len(rows) {
		s.buf = make([][]Cell, len(rows))
	}
	for y, row := range rows {
		if len(s.buf[y]) != len(row) {
			s.buf[y] = make([]Cell, len(row))
		}
		copy(s.buf[y], row)
	}
}

// Clear forgets the stored frame, forcing a full redraw.
func (s *InMemoryBufferStore) Clear() {
	s.buf = nil
}

// changed reports whether (x, y) differs from the snapshot.
func changed(prev [][]Cell, x, y int, c Cell) bool {
	if y >= len(prev) || x >= len(prev[y]) {
		return true
	}
	return prev[y][x] != c
}
