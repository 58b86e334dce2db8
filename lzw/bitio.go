// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package lzw

import (
	"io"

	"github.com/dsnet/golib/errs"
)

const one64 = uint64(1)

// BitWriter packs variable-width unsigned integers into a byte
// stream, most-significant-bit first. It uses a uint64 accumulator
// plus a count of valid low bits, so an artifact of unbounded length
// can be produced in O(1) working memory rather than buffering the
// whole stream (see DESIGN.md for why github.com/dsnet/golib/bits
// isn't a fit here).
type BitWriter struct {
	wr   io.Writer
	buf  uint64
	held uint8
	off  int64 // number of bytes flushed to wr so far
	err  error
}

// NewBitWriter returns a BitWriter that packs bytes into w.
func NewBitWriter(w io.Writer) *BitWriter {
	return &BitWriter{wr: w}
}

// Write packs the low n bits of value, MSB-first, into the stream.
// It panics (a programmer error) if n > 32 or if value does not fit
// in n bits.
func (bw *BitWriter) Write(value uint32, n uint8) {
	errs.Assert(n <= 32, Error("BitWriter.Write: n > 32"))
	errs.Assert(n == 0 || uint64(value) < one64<<n, Error("BitWriter.Write: value does not fit in n bits"))
	if n == 0 {
		return
	}
	bw.buf = bw.buf<<n | uint64(value)&(one64<<n-1)
	bw.held += n
	bw.drain()
}

func (bw *BitWriter) drain() {
	for bw.held >= 8 && bw.err == nil {
		bw.held -= 8
		b := byte(bw.buf >> bw.held)
		if _, err := bw.wr.Write([]byte{b}); err != nil {
			bw.err = err
			return
		}
		bw.off++
	}
}

// Close flushes any partial byte, padded with zero bits on the
// right, and returns the first write error encountered, if any.
func (bw *BitWriter) Close() error {
	if bw.err != nil {
		return bw.err
	}
	if bw.held > 0 {
		pad := 8 - bw.held
		b := byte(bw.buf << pad)
		if _, err := bw.wr.Write([]byte{b}); err != nil {
			bw.err = err
			return err
		}
		bw.off++
		bw.held = 0
		bw.buf = 0
	}
	return nil
}

// Offset reports the number of bytes flushed to the underlying
// io.Writer so far (not counting bits still held in the accumulator).
func (bw *BitWriter) Offset() int64 { return bw.off }

// byteReader is the minimal interface BitReader needs from its
// underlying source: one byte at a time, since codes are read at
// widths no client controls ahead of time.
type byteReader interface {
	io.Reader
	io.ByteReader
}

// BitReader unpacks variable-width unsigned integers, MSB-first, from
// a byte stream. It mirrors BitWriter's accumulator.
type BitReader struct {
	rd   byteReader
	buf  uint64
	held uint8
	off  int64
}

// NewBitReader returns a BitReader over r.
func NewBitReader(r io.Reader) *BitReader {
	br := &BitReader{}
	if rr, ok := r.(byteReader); ok {
		br.rd = rr
	} else {
		br.rd = &byteReaderAdapter{r: r}
	}
	return br
}

// Read reads the next n bits MSB-first. It returns ok=false if the
// underlying reader is exhausted before n bits could be read; no
// partial value is returned in that case.
func (br *BitReader) Read(n uint8) (value uint32, ok bool) {
	errs.Assert(n <= 32, Error("BitReader.Read: n > 32"))
	for br.held < n {
		b, err := br.rd.ReadByte()
		if err != nil {
			return 0, false
		}
		br.off++
		br.buf = br.buf<<8 | uint64(b)
		br.held += 8
	}
	shift := br.held - n
	mask := one64<<n - 1
	value = uint32((br.buf >> shift) & mask)
	br.held = shift
	br.buf &= one64<<br.held - 1
	return value, true
}

// Offset reports the number of bytes consumed from the underlying
// io.Reader so far (including bits still held but not yet returned).
func (br *BitReader) Offset() int64 { return br.off }

// byteReaderAdapter upgrades a plain io.Reader to byteReader for
// callers that don't already have one.
type byteReaderAdapter struct {
	r   io.Reader
	buf [1]byte
}

func (a *byteReaderAdapter) Read(p []byte) (int, error) { return a.r.Read(p) }

func (a *byteReaderAdapter) ReadByte() (byte, error) {
	_, err := io.ReadFull(a.r, a.buf[:])
	if err != nil {
		return 0, err
	}
	return a.buf[0], nil
}
