// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package lzw

// Policy selects the full-dictionary behavior of a Writer/Reader pair.
type Policy uint8

const (
	// PolicyFreeze stops inserting once the dictionary is full;
	// lookups against already-present phrases continue to work.
	PolicyFreeze Policy = iota
	// PolicyReset discards the dictionary and reinitializes it to the
	// alphabet once full, emitting a RESET_CODE both sides recognize.
	PolicyReset
	// PolicyLFU evicts the least-frequently-used entry (LRU tiebreak)
	// once full, mirrored identically by the decoder.
	PolicyLFU
	// PolicyLRUBasic evicts the least-recently-used entry once full,
	// mirrored identically by the decoder (no out-of-band signal).
	PolicyLRUBasic
	// PolicyLRUSignalledOpt1 evicts LRU once full, but resynchronizes
	// the decoder out-of-band with a literal-payload signal instead of
	// having it mirror eviction decisions.
	PolicyLRUSignalledOpt1
	// PolicyLRUSignalledOpt2 is PolicyLRUSignalledOpt1 with the signal
	// payload compressed by referencing the Recent-Output Window.
	PolicyLRUSignalledOpt2
)

func (p Policy) String() string {
	switch p {
	case PolicyFreeze:
		return "freeze"
	case PolicyReset:
		return "reset"
	case PolicyLFU:
		return "lfu"
	case PolicyLRUBasic:
		return "lru-basic"
	case PolicyLRUSignalledOpt1:
		return "lru-signalled-opt1"
	case PolicyLRUSignalledOpt2:
		return "lru-signalled-opt2"
	default:
		return "unknown"
	}
}

// signalled reports whether this policy uses the out-of-band
// resynchronization signal (Opt-1 or Opt-2) rather than having the
// decoder mirror eviction locally.
func (p Policy) signalled() bool {
	return p == PolicyLRUSignalledOpt1 || p == PolicyLRUSignalledOpt2
}

// policyTag values written into the artifact header; the tag is
// always present so a single policy-agnostic decoder entry point can
// self-configure from the header alone.
const (
	tagFreeze          = 0
	tagReset           = 1
	tagLFU             = 2
	tagLRUBasic        = 3
	tagLRUSignalledOp1 = 4
	tagLRUSignalledOp2 = 5
)

func (p Policy) tag() byte {
	switch p {
	case PolicyFreeze:
		return tagFreeze
	case PolicyReset:
		return tagReset
	case PolicyLFU:
		return tagLFU
	case PolicyLRUBasic:
		return tagLRUBasic
	case PolicyLRUSignalledOpt1:
		return tagLRUSignalledOp1
	case PolicyLRUSignalledOpt2:
		return tagLRUSignalledOp2
	default:
		panic(Error("unknown policy"))
	}
}

func policyFromTag(tag byte) (Policy, bool) {
	switch tag {
	case tagFreeze:
		return PolicyFreeze, true
	case tagReset:
		return PolicyReset, true
	case tagLFU:
		return PolicyLFU, true
	case tagLRUBasic:
		return PolicyLRUBasic, true
	case tagLRUSignalledOp1:
		return PolicyLRUSignalledOpt1, true
	case tagLRUSignalledOp2:
		return PolicyLRUSignalledOpt2, true
	default:
		return 0, false
	}
}
