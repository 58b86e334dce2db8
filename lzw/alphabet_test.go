// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package lzw

import "testing"

func TestNewAlphabetRejectsEmpty(t *testing.T) {
	if _, err := NewAlphabet(nil); err == nil {
		t.Fatal("expected error for empty alphabet")
	}
}

func TestNewAlphabetRejectsDuplicates(t *testing.T) {
	if _, err := NewAlphabet([]byte("aab")); err == nil {
		t.Fatal("expected error for duplicate symbol")
	}
}

func TestAlphabetCodeSymbolRoundTrip(t *testing.T) {
	a, err := NewAlphabet([]byte("xyz"))
	if err != nil {
		t.Fatal(err)
	}
	for want, sym := range []byte("xyz") {
		code, ok := a.Code(sym)
		if !ok || code != want {
			t.Fatalf("Code(%q) = %d, %v; want %d, true", sym, code, ok, want)
		}
		if got := a.Symbol(code); got != sym {
			t.Fatalf("Symbol(%d) = %q; want %q", code, got, sym)
		}
	}
	if _, ok := a.Code('q'); ok {
		t.Fatal("Code('q') should fail: not in alphabet")
	}
}

func TestBuiltinAlphabets(t *testing.T) {
	if n := ASCIIAlphabet().Size(); n != 128 {
		t.Fatalf("ASCIIAlphabet size = %d, want 128", n)
	}
	if n := ExtendedASCIIAlphabet().Size(); n != 256 {
		t.Fatalf("ExtendedASCIIAlphabet size = %d, want 256", n)
	}
	if n := ABAlphabet().Size(); n != 2 {
		t.Fatalf("ABAlphabet size = %d, want 2", n)
	}
}

func TestAlphabetByName(t *testing.T) {
	for _, name := range []string{"ascii", "extendedascii", "ab"} {
		if _, err := AlphabetByName(name); err != nil {
			t.Fatalf("AlphabetByName(%q): %v", name, err)
		}
	}
	if _, err := AlphabetByName("klingon"); err == nil {
		t.Fatal("expected error for unrecognized alphabet name")
	} else if cerr, ok := err.(*CodecError); !ok || cerr.Kind != ErrUnsupportedAlphabet {
		t.Fatalf("got %v, want *CodecError{Kind: ErrUnsupportedAlphabet}", err)
	}
}
