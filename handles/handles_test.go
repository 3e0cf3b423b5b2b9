// Copyright (c) 2024 The dogecore developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package handles

import "testing"

func TestIndicesNeverReused(t *testing.T) {
	tbl := NewTable[string]()
	a := tbl.Start("a")
	tbl.Remove(a)
	b := tbl.Start("b")
	if b == a {
		t.Fatalf("index %d was reused after removal", a)
	}
}

func TestRemoveAllPreservesCounter(t *testing.T) {
	tbl := NewTable[int]()
	first := tbl.Start(1)
	tbl.Start(2)
	tbl.RemoveAll()
	if tbl.Len() != 0 {
		t.Fatalf("expected empty table after RemoveAll, got %d entries", tbl.Len())
	}
	next := tbl.Start(3)
	if next <= first+1 {
		t.Fatalf("expected counter to keep advancing past RemoveAll, got %d", next)
	}
}

func TestUpdateUnknownIndexFails(t *testing.T) {
	tbl := NewTable[int]()
	if tbl.Update(999, 1) {
		t.Fatal("expected Update on an unknown index to report false")
	}
}

func TestFindAfterRemove(t *testing.T) {
	tbl := NewTable[int]()
	idx := tbl.Start(42)
	tbl.Remove(idx)
	if _, ok := tbl.Find(idx); ok {
		t.Fatal("expected Find to fail after Remove")
	}
}
