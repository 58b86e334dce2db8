// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package lzw

import (
	"bytes"
	"testing"
)

func TestWidthTrackerGrowth(t *testing.T) {
	wt := newWidthTracker(3, 5)
	steps := []struct {
		nextFree uint32
		want     uint8
	}{
		{7, 3},  // below threshold 8
		{8, 4},  // crosses 8
		{15, 4}, // below threshold 16
		{16, 5}, // crosses 16
		{32, 5}, // capped at W_max
	}
	for _, s := range steps {
		wt.Observe(s.nextFree)
		if got := wt.Width(); got != s.want {
			t.Fatalf("after Observe(%d): Width() = %d, want %d", s.nextFree, got, s.want)
		}
	}
}

// fillABDict populates an AB-alphabet encDict to capacity at W=3
// (five slots, codes 3 through 7).
func fillABDict(t *testing.T, policy Policy) *encDict {
	t.Helper()
	d := newEncDict(ABAlphabet(), policy, 3, 3, false)
	inserts := []struct {
		parent Code
		bytes  string
		sym    byte
	}{
		{0, "a", 'b'},  // ab -> 3
		{1, "b", 'a'},  // ba -> 4
		{3, "ab", 'a'}, // aba -> 5
		{3, "ab", 'b'}, // abb -> 6
		{4, "ba", 'a'}, // baa -> 7
	}
	for i, in := range inserts {
		slot, inserted := d.insert(in.parent, []byte(in.bytes), in.sym)
		if !inserted || slot != Code(3+i) {
			t.Fatalf("insert %d: slot = %d, inserted = %v; want %d, true", i, slot, inserted, 3+i)
		}
	}
	if !d.atCapacity() {
		t.Fatal("dictionary should be at capacity after five inserts")
	}
	return d
}

func TestEncDictEvictsLRUAndUnlinksTrie(t *testing.T) {
	d := fillABDict(t, PolicyLRUBasic)

	// All five entries were touched only at insertion, so slot 3 (ab)
	// is the LRU; the next insert must reuse it.
	slot, inserted := d.insert(4, []byte("ba"), 'b')
	if !inserted || slot != 3 {
		t.Fatalf("eviction insert: slot = %d, inserted = %v; want 3, true", slot, inserted)
	}
	if got := d.Evictions(); got != 1 {
		t.Fatalf("Evictions() = %d, want 1", got)
	}
	if _, ok := d.matchChild(0, 'b'); ok {
		t.Fatal("trie edge a->b should be gone after its phrase was evicted")
	}
	if c, ok := d.matchChild(4, 'b'); !ok || c != 3 {
		t.Fatalf("matchChild(ba, b) = %d, %v; want 3, true", c, ok)
	}
	if got := d.phraseBytes(3); !bytes.Equal(got, []byte("bab")) {
		t.Fatalf("phraseBytes(3) = %q, want bab", got)
	}
}

func TestEncDictFreezeStopsInserting(t *testing.T) {
	d := fillABDict(t, PolicyFreeze)

	if _, inserted := d.insert(4, []byte("ba"), 'b'); inserted {
		t.Fatal("freeze dictionary must not insert once full")
	}
	// Existing entries still match.
	if c, ok := d.matchChild(3, 'a'); !ok || c != 5 {
		t.Fatalf("matchChild(ab, a) = %d, %v; want 5, true", c, ok)
	}
}

func TestDecDictPredictsWriterVictim(t *testing.T) {
	d := newDecDict(ABAlphabet(), PolicyLRUBasic, 3, 3, false)
	phrases := []string{"ab", "ba", "aba", "abb", "baa"}
	for i, p := range phrases {
		slot, inserted := d.insert([]byte(p[:len(p)-1]), p[len(p)-1])
		if !inserted || slot != Code(3+i) {
			t.Fatalf("insert %d: slot = %d, inserted = %v; want %d, true", i, slot, inserted, 3+i)
		}
	}

	victim, willEvict := d.predictVictim()
	if !willEvict || victim != 3 {
		t.Fatalf("predictVictim() = %d, %v; want 3, true", victim, willEvict)
	}

	// The prediction must match what the insert then actually evicts.
	slot, inserted := d.insert([]byte("ba"), 'b')
	if !inserted || slot != 3 {
		t.Fatalf("eviction insert: slot = %d, inserted = %v; want 3, true", slot, inserted)
	}
	if got := d.phraseBytes(3); !bytes.Equal(got, []byte("bab")) {
		t.Fatalf("phraseBytes(3) = %q, want bab", got)
	}
}

func TestDecDictSignalledStopsInsertingAtCapacity(t *testing.T) {
	d := newDecDict(ABAlphabet(), PolicyLRUSignalledOpt1, 3, 3, false)
	// Signalled layout reserves the top slot, leaving codes 3..6.
	phrases := []string{"ab", "ba", "aba", "abb"}
	for i, p := range phrases {
		slot, inserted := d.insert([]byte(p[:len(p)-1]), p[len(p)-1])
		if !inserted || slot != Code(3+i) {
			t.Fatalf("insert %d: slot = %d, inserted = %v; want %d, true", i, slot, inserted, 3+i)
		}
	}
	if _, inserted := d.insert([]byte("baa"), 'b'); inserted {
		t.Fatal("signalled decoder must stop incremental insertion at capacity")
	}

	// Slot updates still arrive through resync signals.
	d.applySignal(3, []byte("bab"))
	if got := d.phraseBytes(3); !bytes.Equal(got, []byte("bab")) {
		t.Fatalf("phraseBytes(3) after signal = %q, want bab", got)
	}
}
