// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package lzw

import "testing"

func TestLRUOrderVictimSelection(t *testing.T) {
	o := NewLRUOrder[string]()
	o.Touch("a")
	o.Touch("b")
	o.Touch("c")
	o.Touch("a") // a is now MRU; b is LRU

	v, ok := o.FindVictim()
	if !ok || v != "b" {
		t.Fatalf("FindVictim() = %q, %v; want b, true", v, ok)
	}

	o.Remove("b")
	if o.Contains("b") {
		t.Fatal("b should no longer be tracked")
	}
	v, ok = o.FindVictim()
	if !ok || v != "c" {
		t.Fatalf("FindVictim() after remove = %q, %v; want c, true", v, ok)
	}
	if o.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", o.Len())
	}
}

func TestLRUOrderEmpty(t *testing.T) {
	o := NewLRUOrder[int]()
	if _, ok := o.FindVictim(); ok {
		t.Fatal("FindVictim on empty order should report false")
	}
}

func TestLFUOrderFrequencyThenRecency(t *testing.T) {
	o := NewLFUOrder[string]()
	o.Touch("a")
	o.Touch("a")
	o.Touch("b")
	o.Touch("c")
	o.Touch("b")
	// a: freq 2, b: freq 2 (touched after a's second touch), c: freq 1.
	v, ok := o.FindVictim()
	if !ok || v != "c" {
		t.Fatalf("FindVictim() = %q, %v; want c (lowest frequency)", v, ok)
	}

	o.Remove("c")
	// a and b both at freq 2; a was touched least recently among them.
	v, ok = o.FindVictim()
	if !ok || v != "a" {
		t.Fatalf("FindVictim() after removing c = %q, %v; want a", v, ok)
	}
}

func TestLFUOrderTouchNotIdempotent(t *testing.T) {
	o := NewLFUOrder[string]()
	o.Touch("a")
	o.Touch("b")
	o.Touch("a")
	o.Touch("a")
	// a: freq 3, b: freq 1 -> b is the victim.
	v, ok := o.FindVictim()
	if !ok || v != "b" {
		t.Fatalf("FindVictim() = %q, %v; want b", v, ok)
	}
}

func TestLFUOrderContinuousEvictionAcrossMultipleRounds(t *testing.T) {
	o := NewLFUOrder[int]()
	for i := 0; i < 5; i++ {
		o.Touch(i)
	}
	// All at freq 1; victim is the least-recently-touched, i.e. 0.
	for want := 0; want < 5; want++ {
		v, ok := o.FindVictim()
		if !ok || v != want {
			t.Fatalf("round %d: FindVictim() = %v, %v; want %d", want, v, ok, want)
		}
		o.Remove(v)
	}
	if o.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", o.Len())
	}
}
