// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package lzw implements a family of LZW byte-stream codecs with
// bounded-dictionary eviction policies.
//
// A Writer consumes an octet stream drawn from a declared Alphabet and
// emits a self-describing bit-packed artifact; a Reader consumes that
// artifact and reproduces the exact original octet stream. Because the
// LZW dictionary is bounded at 2^W entries, the codec is parameterized
// by a Policy that decides what happens once the dictionary fills:
// Freeze, Reset, LFU, LRUBasic, or one of the LRU-signalled variants
// (Opt1, Opt2), which resynchronize the reader's dictionary slots with
// an out-of-band signal instead of requiring it to mirror eviction
// decisions locally.
package lzw

// Error is the wrapper type for low-level errors specific to this
// package's bit-level plumbing. Higher-level callers mostly see
// *CodecError (errors.go); Error is reserved for invariants that
// indicate a bug in this package rather than a malformed artifact.
//
// Writer and Reader recover panics of this kind (and of *CodecError)
// at their public method boundaries via github.com/dsnet/golib/errs.
type Error string

func (e Error) Error() string { return "lzw: " + string(e) }
