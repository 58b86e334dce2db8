// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package lzw

// Alphabet is an ordered sequence of distinct single-octet symbols.
// An Alphabet is immutable once constructed and is chosen at
// compression time; it is serialized verbatim in the artifact header
// so a Reader never has to be told which alphabet a Writer used.
type Alphabet struct {
	symbols []byte
	index   [256]int16 // symbol -> code, or -1 if absent
}

// NewAlphabet builds an Alphabet from an explicit, distinct symbol
// list. This supplements the three builtin tables, used by the CLI
// and by tests that need an alphabet smaller than ABAlphabet to
// exercise width growth quickly.
func NewAlphabet(syms []byte) (Alphabet, error) {
	var a Alphabet
	for i := range a.index {
		a.index[i] = -1
	}
	if len(syms) == 0 {
		return Alphabet{}, newErr(ErrBadParameters, "alphabet must be non-empty")
	}
	for _, s := range syms {
		if a.index[s] >= 0 {
			return Alphabet{}, newErr(ErrBadParameters, "duplicate alphabet symbol")
		}
		a.index[s] = int16(len(a.symbols))
		a.symbols = append(a.symbols, s)
	}
	return a, nil
}

func mustAlphabet(syms []byte) Alphabet {
	a, err := NewAlphabet(syms)
	if err != nil {
		panic(err)
	}
	return a
}

// ASCIIAlphabet returns the 128-symbol 7-bit ASCII alphabet, in
// natural byte order.
func ASCIIAlphabet() Alphabet {
	syms := make([]byte, 128)
	for i := range syms {
		syms[i] = byte(i)
	}
	return mustAlphabet(syms)
}

// ExtendedASCIIAlphabet returns the 256-symbol 8-bit alphabet, in
// natural byte order.
func ExtendedASCIIAlphabet() Alphabet {
	syms := make([]byte, 256)
	for i := range syms {
		syms[i] = byte(i)
	}
	return mustAlphabet(syms)
}

// ABAlphabet returns the two-symbol alphabet {'a', 'b'}.
func ABAlphabet() Alphabet {
	return mustAlphabet([]byte("ab"))
}

// AlphabetByName resolves one of the three builtin alphabet
// identifiers used by the CLI and by artifact headers: "ascii",
// "extendedascii", or "ab".
func AlphabetByName(name string) (Alphabet, error) {
	switch name {
	case "ascii":
		return ASCIIAlphabet(), nil
	case "extendedascii":
		return ExtendedASCIIAlphabet(), nil
	case "ab":
		return ABAlphabet(), nil
	default:
		return Alphabet{}, newErr(ErrUnsupportedAlphabet, name)
	}
}

// Size reports |A|, the number of symbols in the alphabet.
func (a Alphabet) Size() int { return len(a.symbols) }

// Symbol returns the octet for alphabet code c. c must satisfy
// 0 <= c < a.Size().
func (a Alphabet) Symbol(c int) byte { return a.symbols[c] }

// Code reports the alphabet code for octet b, and whether b belongs
// to the alphabet at all.
func (a Alphabet) Code(b byte) (int, bool) {
	c := a.index[b]
	if c < 0 {
		return 0, false
	}
	return int(c), true
}

// Bytes returns the alphabet's symbols in declared order, the same
// slice written into the artifact header.
func (a Alphabet) Bytes() []byte { return a.symbols }
