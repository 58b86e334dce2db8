// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package lzw

// Code is a value written onto (or read from) the bit stream. The
// space of codes is partitioned into four disjoint ranges: alphabet
// codes [0, |A|), EOFCode (== |A|), dictionary codes, and — for
// LRU-signalled policies only — EvictSignal at 2^W_max - 1.
type Code uint32

// codeLayout captures the partition of the code space for one run,
// derived from the alphabet size and the policy in use.
type codeLayout struct {
	alphaSize   uint32
	eofCode     Code
	reserveTop  bool // true when the top code (2^W_max - 1) is reserved: EvictSignal under LRU-signalled, RESET_CODE under Reset
	wMin, wMax  uint8
}

func newCodeLayout(alphaSize int, policy Policy, wMin, wMax uint8) codeLayout {
	return codeLayout{
		alphaSize:  uint32(alphaSize),
		eofCode:    Code(alphaSize),
		reserveTop: policy.signalled() || policy == PolicyReset,
		wMin:       wMin,
		wMax:       wMax,
	}
}

// firstDictCode is the first code number available for dictionary
// entries: one past EOFCode.
func (cl codeLayout) firstDictCode() Code { return Code(cl.alphaSize) + 1 }

// evictSignal is the reserved EVICT_SIGNAL code, valid only under
// LRU-signalled policies.
func (cl codeLayout) evictSignal() Code { return Code(1)<<cl.wMax - 1 }

// resetCode is the reserved RESET_CODE, valid only under PolicyReset.
// It shares the same reserved top-of-range slot EvictSignal occupies
// under LRU-signalled, since the two policies never reserve it
// simultaneously.
func (cl codeLayout) resetCode() Code { return Code(1)<<cl.wMax - 1 }

// maxDictCodes is the number of code slots available to the
// dictionary proper, i.e. 2^W_max minus the alphabet, EOF, and (if
// reserved) the top-of-range slot.
func (cl codeLayout) maxDictCodes() uint32 {
	total := uint32(1) << cl.wMax
	reserved := cl.alphaSize + 1
	if cl.reserveTop {
		reserved++
	}
	return total - reserved
}

// widthTracker implements the code-width growth rule: start at W_min,
// and whenever the next free code reaches the current threshold
// (2^W_current), grow W_current by one, capped at W_max.
type widthTracker struct {
	w         uint8
	wMax      uint8
	threshold uint32
}

func newWidthTracker(wMin, wMax uint8) *widthTracker {
	return &widthTracker{w: wMin, wMax: wMax, threshold: uint32(1) << wMin}
}

// Width reports the current bit width W_current.
func (wt *widthTracker) Width() uint8 { return wt.w }

// Observe grows W_current if nextFree has reached the threshold. The
// compressor calls it with the pre-insert next free code just before
// claiming a slot (and once more before EOF); the decompressor calls
// it with its own next free code before reading each code. The two
// call sites see the same value at every code boundary.
func (wt *widthTracker) Observe(nextFree uint32) {
	if nextFree >= wt.threshold && wt.w < wt.wMax {
		wt.w++
		wt.threshold <<= 1
	}
}
