// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package lzw

import (
	"bytes"
	"testing"
)

func TestRecentWindowPushAndGet(t *testing.T) {
	w := newRecentWindow()
	w.push([]byte("a"))
	w.push([]byte("b"))
	w.push([]byte("c"))

	got, ok := w.get(1)
	if !ok || !bytes.Equal(got, []byte("c")) {
		t.Fatalf("get(1) = %q, %v; want c, true", got, ok)
	}
	got, ok = w.get(3)
	if !ok || !bytes.Equal(got, []byte("a")) {
		t.Fatalf("get(3) = %q, %v; want a, true", got, ok)
	}
	if _, ok := w.get(4); ok {
		t.Fatal("get(4) should fail: only 3 entries pushed")
	}
	if _, ok := w.get(0); ok {
		t.Fatal("get(0) should fail: 0 is reserved for \"no reference\"")
	}
}

func TestRecentWindowFindRecent(t *testing.T) {
	w := newRecentWindow()
	w.push([]byte("ab"))
	w.push([]byte("cd"))

	off, ok := w.findRecent([]byte("ab"))
	if !ok || off != 2 {
		t.Fatalf("findRecent(ab) = %d, %v; want 2, true", off, ok)
	}
	if _, ok := w.findRecent([]byte("zz")); ok {
		t.Fatal("findRecent(zz) should fail: never pushed")
	}
}

func TestRecentWindowEvictsAtCapacity(t *testing.T) {
	w := newRecentWindow()
	for i := 0; i < windowCapacity+5; i++ {
		w.push([]byte{byte(i), byte(i >> 8)})
	}
	if w.size != windowCapacity {
		t.Fatalf("size = %d, want %d", w.size, windowCapacity)
	}
	if _, ok := w.findRecent([]byte{0, 0}); ok {
		t.Fatal("phrase pushed before capacity should have aged out")
	}
	last := windowCapacity + 4
	got, ok := w.get(1)
	if !ok || !bytes.Equal(got, []byte{byte(last), byte(last >> 8)}) {
		t.Fatalf("get(1) = %v, %v; want the most recently pushed byte", got, ok)
	}
}
