// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texel/buffer_store_test.go
// Summary: Exercises the frame store used to diff flushed frames.
// Usage: Executed during `go test` to guard against regressions.

package texel

import "testing"

func TestInMemoryBufferStore(t *testing.T) {
	store := NewInMemoryBufferStore()
	if store.Snapshot() != nil {
		t.Fatalf("expected empty snapshot")
	}

	buf := NewBuffer(1, 1)
	buf.Set(0, 0, Cell{Ch: 'a'})
	store.Save(buf)

	if store.Snapshot() == nil {
		t.Fatalf("expected snapshot after save")
	}

	buf.Set(0, 0, Cell{Ch: 'b'})
	if got := store.Snapshot()[0][0].Ch; got != 'a' {
		t.Fatalf("snapshot aliases the buffer: got %q", got)
	}
	if !changed(store.Snapshot(), 0, 0, buf.At(0, 0)) {
		t.Fatalf("expected cell to be reported as changed")
	}

	store.Clear()
	if store.Snapshot() != nil {
		t.Fatalf("expected snapshot to clear")
	}
}
