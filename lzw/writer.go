// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package lzw

import (
	"io"

	"github.com/dsnet/golib/errs"
)

// Options configures a Writer/Reader pair. Both sides of a given
// artifact must agree on every field; Writer serializes Alphabet,
// MinBits, MaxBits, and Policy into the header, so a Reader only needs
// LFUContinuousEviction supplied out-of-band, the same way a CLI tool
// picks its policy out-of-band.
type Options struct {
	Policy   Policy
	Alphabet Alphabet
	MinBits  uint8
	MaxBits  uint8

	// LFUContinuousEviction selects between reproducing the observed
	// single-eviction behavior under PolicyLFU (false, the default) and
	// evicting on every subsequent fill (true). Only meaningful for
	// PolicyLFU; ignored otherwise.
	LFUContinuousEviction bool
}

// Validate reports whether o is internally consistent: widths ordered
// and in range, and wide enough to hold the alphabet plus reserved
// codes.
func (o Options) Validate() error {
	return validateWidths(o.MinBits, o.MaxBits, o.Alphabet.Size(), o.Policy)
}

// Stats reports counters accumulated over a Writer or Reader's run.
type Stats struct {
	CodesEmitted   int64
	SignalsEmitted int64
	Evictions      int64
	FinalWidth     uint8
}

// Writer consumes octets from the declared alphabet and writes a
// self-describing bit-packed artifact to an underlying io.Writer.
type Writer struct {
	bw   *BitWriter
	opts Options
	dict *encDict

	haveCurrent bool
	current     []byte
	currentCode Code

	inputOffset int64
	err         error
	closed      bool
	stats       Stats
}

// NewWriter validates opts, writes the artifact header, and returns a
// Writer ready to accept input via Write.
func NewWriter(w io.Writer, opts Options) (*Writer, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	bw := NewBitWriter(w)
	writeHeader(bw, opts.MinBits, opts.MaxBits, opts.Policy, opts.Alphabet)
	dict := newEncDict(opts.Alphabet, opts.Policy, opts.MinBits, opts.MaxBits, opts.LFUContinuousEviction)
	return &Writer{bw: bw, opts: opts, dict: dict}, nil
}

// Write feeds p through the codec. An octet outside the declared
// alphabet aborts with *CodecError{Kind: ErrOutOfAlphabet} naming its
// position and value; bytes consumed before the rejected one are
// already reflected in the (still in-progress) output.
func (wtr *Writer) Write(p []byte) (n int, err error) {
	if wtr.err != nil {
		return 0, wtr.err
	}
	defer errs.Recover(&err)

	for _, b := range p {
		if _, ok := wtr.opts.Alphabet.Code(b); !ok {
			e := newErrByte(ErrOutOfAlphabet, wtr.inputOffset, int(b), "input octet not in alphabet")
			wtr.err = e
			return n, e
		}
		if !wtr.haveCurrent {
			idx, _ := wtr.opts.Alphabet.Code(b)
			wtr.current = []byte{b}
			wtr.currentCode = Code(idx)
			wtr.haveCurrent = true
		} else {
			wtr.extendOrEmit(b)
		}
		wtr.inputOffset++
		n++
	}
	return n, nil
}

// extendOrEmit is the central LZW step: extend the current phrase by
// one octet if the result is already in the dictionary, otherwise emit
// the current phrase's code and insert the extended phrase.
func (wtr *Writer) extendOrEmit(c byte) {
	if child, ok := wtr.dict.matchChild(wtr.currentCode, c); ok {
		wtr.current = append(wtr.current, c)
		wtr.currentCode = child
		return
	}

	wtr.emit(wtr.currentCode)
	wtr.dict.touch(wtr.currentCode)

	parentCode := wtr.currentCode
	if wtr.opts.Policy == PolicyReset && wtr.dict.layout.maxDictCodes() > 0 && wtr.dict.atCapacity() {
		wtr.emitRaw(wtr.dict.layout.resetCode())
		wtr.dict.reinit()
		// The reset discarded the code that named the current phrase,
		// so the entry spanning the reset is stored without a trie
		// edge; the decoder defines the same slot from its retained
		// prev, keeping both tables aligned.
		parentCode = invalidCode
	}
	wtr.dict.insert(parentCode, wtr.current, c)

	idx, _ := wtr.opts.Alphabet.Code(c)
	wtr.current = []byte{c}
	wtr.currentCode = Code(idx)
}

// emit writes code at the current width, first closing out any
// pending resync signal for that slot (LRU-signalled only), and pushes
// the emitted phrase onto the Recent-Output Window under Opt-2.
func (wtr *Writer) emit(code Code) {
	if wtr.dict.policy.signalled() {
		if p, ok := wtr.dict.takePendingResync(code); ok {
			wtr.emitSignal(code, p)
		}
	}
	wtr.bw.Write(uint32(code), wtr.dict.width.Width())
	wtr.stats.CodesEmitted++
	if wtr.dict.window != nil {
		wtr.dict.pushWindow(wtr.dict.phraseBytes(code))
	}
}

// emitRaw writes code at the current width without signal, window, or
// CodesEmitted bookkeeping (mirroring the Reader, which does not count
// RESET_CODE as a phrase code either), used for RESET_CODE.
func (wtr *Writer) emitRaw(code Code) {
	wtr.bw.Write(uint32(code), wtr.dict.width.Width())
}

// emitSignal writes an EVICT_SIGNAL packet in the wire format of the
// active LRU-signalled variant.
func (wtr *Writer) emitSignal(victimCode Code, p pendingResync) {
	w := wtr.dict.width.Width()
	wtr.bw.Write(uint32(wtr.dict.layout.evictSignal()), w)
	wtr.bw.Write(uint32(victimCode), w)
	wtr.stats.SignalsEmitted++

	switch wtr.opts.Policy {
	case PolicyLRUSignalledOpt1:
		wtr.bw.Write(uint32(len(p.newPhrase)), 16)
		for _, b := range p.newPhrase {
			wtr.bw.Write(uint32(b), 8)
		}
	case PolicyLRUSignalledOpt2:
		off, found := wtr.dict.window.findRecent(p.prefix)
		if !found {
			wtr.bw.Write(0, 8)
			wtr.bw.Write(uint32(len(p.newPhrase)), 16)
			for _, b := range p.newPhrase {
				wtr.bw.Write(uint32(b), 8)
			}
			return
		}
		errs.Assert(len(p.newPhrase) == len(p.prefix)+1, newErr(ErrInternalInvariant, "opt-2 suffix length != 1"))
		trailing := p.newPhrase[len(p.newPhrase)-1]
		wtr.bw.Write(uint32(off), 8)
		wtr.bw.Write(uint32(trailing), 8)
	}
}

// Close flushes the final phrase and EOF_CODE, pads and flushes the
// last partial byte, and closes the underlying BitWriter. It is safe
// to call exactly once.
func (wtr *Writer) Close() (err error) {
	if wtr.closed {
		return wtr.err
	}
	wtr.closed = true
	if wtr.err != nil {
		return wtr.err
	}
	defer errs.Recover(&err)

	if wtr.haveCurrent {
		wtr.emit(wtr.currentCode)
		wtr.dict.touch(wtr.currentCode)
	}
	// Growth pending from the last insert takes effect now, so the
	// decoder, whose own check runs after processing the final data
	// code, reads EOF at the same width.
	wtr.dict.width.Observe(uint32(wtr.dict.nextFree))
	wtr.bw.Write(uint32(wtr.dict.layout.eofCode), wtr.dict.width.Width())
	wtr.stats.FinalWidth = wtr.dict.width.Width()

	if err := wtr.bw.Close(); err != nil {
		wtr.err = err
		return err
	}
	return nil
}

// InputOffset reports the number of input octets consumed so far.
func (wtr *Writer) InputOffset() int64 { return wtr.inputOffset }

// OutputOffset reports the number of artifact bytes written so far.
func (wtr *Writer) OutputOffset() int64 { return wtr.bw.Offset() }

// Stats reports the Writer's accumulated counters. Safe to call at any
// point, including before Close.
func (wtr *Writer) Stats() Stats {
	s := wtr.stats
	s.FinalWidth = wtr.dict.width.Width()
	s.Evictions = wtr.dict.Evictions()
	return s
}

// Compress streams src through a Writer into dst: equivalent to
// constructing a Writer, copying all of src into it, and closing it.
// Memory use is bounded regardless of input size.
func Compress(dst io.Writer, src io.Reader, opts Options) (Stats, error) {
	wtr, err := NewWriter(dst, opts)
	if err != nil {
		return Stats{}, err
	}
	if _, err := io.Copy(wtr, src); err != nil {
		return Stats{}, err
	}
	if err := wtr.Close(); err != nil {
		return Stats{}, err
	}
	return wtr.Stats(), nil
}
