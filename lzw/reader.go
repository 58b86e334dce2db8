// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package lzw

import (
	"io"

	"github.com/dsnet/golib/errs"
)

// Reader consumes a self-describing bit-packed artifact and
// reproduces the original octet stream, or reports a well-typed error.
//
// lfuContinuousEviction must match the Writer's Options.LFUContinuousEviction
// that produced the artifact; the header carries the policy but no
// such flag, so agreement on this bit is out-of-band.
type Reader struct {
	br     *BitReader
	header parsedHeader
	dict   *decDict

	prev []byte

	outputOffset int64
	done         bool
	err          error
	stats        Stats
}

// NewReader parses the artifact header from r and returns a Reader
// ready to decode its body.
func NewReader(r io.Reader, lfuContinuousEviction bool) (*Reader, error) {
	br := NewBitReader(r)
	h, err := parseHeader(br)
	if err != nil {
		return nil, err
	}
	dict := newDecDict(h.alphabet, h.policy, h.wMin, h.wMax, lfuContinuousEviction)
	return &Reader{br: br, header: h, dict: dict}, nil
}

// Header reports the parsed header fields.
func (rdr *Reader) Header() (policy Policy, alphabet Alphabet, minBits, maxBits uint8) {
	return rdr.header.policy, rdr.header.alphabet, rdr.header.wMin, rdr.header.wMax
}

// Decode drives the full body against dst: the header is already
// consumed by NewReader, so this reads the first code, then loops
// reading codes until EOF_CODE or an error.
func (rdr *Reader) Decode(dst io.Writer) (stats Stats, err error) {
	if rdr.err != nil {
		return rdr.stats, rdr.err
	}
	if rdr.done {
		return rdr.stats, nil
	}
	defer func() { rdr.err = err }()
	defer errs.Recover(&err)

	w := rdr.dict.width.Width()
	firstCode, ok := rdr.br.Read(w)
	if !ok {
		return Stats{}, newErrAt(ErrTruncatedArtifact, rdr.br.Offset(), "truncated reading first code")
	}
	if Code(firstCode) == rdr.dict.layout.eofCode {
		rdr.done = true
		rdr.stats.FinalWidth = rdr.dict.width.Width()
		return rdr.stats, nil
	}
	if Code(firstCode) >= Code(rdr.header.alphabet.Size()) {
		return Stats{}, newErrAt(ErrInvalidCode, rdr.br.Offset(), "first code outside alphabet range")
	}
	rdr.stats.CodesEmitted++
	prev := rdr.dict.phraseBytes(Code(firstCode))
	if _, err := dst.Write(prev); err != nil {
		return Stats{}, err
	}
	rdr.outputOffset += int64(len(prev))
	rdr.prev = prev
	if rdr.dict.window != nil {
		rdr.dict.pushWindow(prev)
	}

	suppressInsert := false
	for {
		rdr.dict.observeWidth()
		w := rdr.dict.width.Width()
		raw, ok := rdr.br.Read(w)
		if !ok {
			return Stats{}, newErrAt(ErrTruncatedArtifact, rdr.br.Offset(), "truncated, no EOF")
		}
		code := Code(raw)

		if code == rdr.dict.layout.eofCode {
			break
		}

		if rdr.header.policy == PolicyReset && code == rdr.dict.layout.resetCode() {
			rdr.dict.reinit()
			continue
		}

		if rdr.header.policy.signalled() && code == rdr.dict.layout.evictSignal() {
			if err := rdr.applySignalPacket(w); err != nil {
				return Stats{}, err
			}
			suppressInsert = true
			continue
		}

		// The insert below lags the writer's by one code, so exactly
		// one slot may be stale at read time: the next free code, or —
		// once the table is full under a mirrored eviction policy —
		// the slot the pending insert is about to repurpose. Both
		// decode as prev extended by its own first symbol.
		var current []byte
		victim, willEvict := rdr.dict.predictVictim()
		switch {
		case willEvict && code == victim:
			current = append(append([]byte{}, rdr.prev...), rdr.prev[0])
		case rdr.dict.contains(code):
			current = rdr.dict.phraseBytes(code)
		case code == rdr.dict.nextFree:
			current = append(append([]byte{}, rdr.prev...), rdr.prev[0])
		default:
			return Stats{}, newErrAt(ErrInvalidCode, rdr.br.Offset(), "code neither known nor special-case next_code")
		}
		rdr.stats.CodesEmitted++

		if _, err := dst.Write(current); err != nil {
			return Stats{}, err
		}
		rdr.outputOffset += int64(len(current))
		if rdr.dict.window != nil {
			rdr.dict.pushWindow(current)
		}

		if suppressInsert {
			suppressInsert = false
		} else {
			rdr.dict.insert(rdr.prev, current[0])
		}
		rdr.dict.touch(code)
		rdr.prev = current
	}

	rdr.done = true
	rdr.stats.FinalWidth = rdr.dict.width.Width()
	rdr.stats.Evictions = rdr.dict.evictions
	return rdr.stats, nil
}

// applySignalPacket reads a resync packet's victim code and payload at
// width w (after the already-consumed EVICT_SIGNAL code) and installs
// the resulting phrase at the victim's slot.
func (rdr *Reader) applySignalPacket(w uint8) error {
	victimRaw, ok := rdr.br.Read(w)
	if !ok {
		return newErrAt(ErrTruncatedArtifact, rdr.br.Offset(), "truncated reading signal victim code")
	}
	victim := Code(victimRaw)
	if victim < rdr.dict.layout.firstDictCode() || victim >= rdr.dict.nextFree {
		return newErrAt(ErrInvalidSignal, rdr.br.Offset(), "victim code not currently defined")
	}
	rdr.stats.SignalsEmitted++

	var newPhrase []byte
	switch rdr.header.policy {
	case PolicyLRUSignalledOpt1:
		p, err := rdr.readLiteralPhrase()
		if err != nil {
			return err
		}
		newPhrase = p
	case PolicyLRUSignalledOpt2:
		offRaw, ok := rdr.br.Read(8)
		if !ok {
			return newErrAt(ErrTruncatedArtifact, rdr.br.Offset(), "truncated reading signal offset")
		}
		if offRaw == 0 {
			p, err := rdr.readLiteralPhrase()
			if err != nil {
				return err
			}
			newPhrase = p
		} else {
			trailingRaw, ok := rdr.br.Read(8)
			if !ok {
				return newErrAt(ErrTruncatedArtifact, rdr.br.Offset(), "truncated reading signal trailing symbol")
			}
			base, ok := rdr.dict.window.get(int(offRaw))
			if !ok {
				return newErrAt(ErrInvalidSignal, rdr.br.Offset(), "signal offset exceeds window")
			}
			newPhrase = append(append([]byte{}, base...), byte(trailingRaw))
		}
	}
	rdr.dict.applySignal(victim, newPhrase)
	return nil
}

func (rdr *Reader) readLiteralPhrase() ([]byte, error) {
	lengthRaw, ok := rdr.br.Read(16)
	if !ok {
		return nil, newErrAt(ErrTruncatedArtifact, rdr.br.Offset(), "truncated reading signal length")
	}
	if lengthRaw < 2 {
		// Dictionary slots only ever hold multi-symbol phrases.
		return nil, newErrAt(ErrInvalidSignal, rdr.br.Offset(), "signal literal shorter than two symbols")
	}
	phrase := make([]byte, lengthRaw)
	for i := range phrase {
		b, ok := rdr.br.Read(8)
		if !ok {
			return nil, newErrAt(ErrTruncatedArtifact, rdr.br.Offset(), "truncated reading signal literal")
		}
		phrase[i] = byte(b)
	}
	return phrase, nil
}

// InputOffset reports the number of artifact bytes consumed so far.
func (rdr *Reader) InputOffset() int64 { return rdr.br.Offset() }

// OutputOffset reports the number of octets emitted to the sink so
// far.
func (rdr *Reader) OutputOffset() int64 { return rdr.outputOffset }

// Stats reports the Reader's accumulated counters. Evictions counts
// mirrored evictions, which is always zero under signalled policies.
func (rdr *Reader) Stats() Stats {
	s := rdr.stats
	s.FinalWidth = rdr.dict.width.Width()
	s.Evictions = rdr.dict.evictions
	return s
}

// Decompress streams the artifact in src into dst: equivalent to
// constructing a Reader over src and decoding its entire body. Memory
// use is bounded regardless of artifact size.
func Decompress(dst io.Writer, src io.Reader, lfuContinuousEviction bool) (Stats, error) {
	rdr, err := NewReader(src, lfuContinuousEviction)
	if err != nil {
		return Stats{}, err
	}
	return rdr.Decode(dst)
}
