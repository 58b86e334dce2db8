// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package lzw

import (
	"bytes"
	"testing"
)

func TestBitWriterReaderRoundTrip(t *testing.T) {
	type write struct {
		value uint32
		n     uint8
	}
	writes := []write{
		{0x1, 1}, {0x2, 2}, {0x0, 3}, {0x1ff, 9}, {0xffffffff, 32}, {0x0, 0}, {0x5, 4},
	}

	var buf bytes.Buffer
	bw := NewBitWriter(&buf)
	for _, w := range writes {
		bw.Write(w.value, w.n)
	}
	if err := bw.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	br := NewBitReader(bytes.NewReader(buf.Bytes()))
	for i, w := range writes {
		if w.n == 0 {
			continue
		}
		got, ok := br.Read(w.n)
		if !ok {
			t.Fatalf("write %d: unexpected EOF", i)
		}
		want := w.value & (uint32(1)<<w.n - 1)
		if got != want {
			t.Fatalf("write %d: got %#x, want %#x", i, got, want)
		}
	}
}

func TestBitWriterPadsWithZeros(t *testing.T) {
	var buf bytes.Buffer
	bw := NewBitWriter(&buf)
	bw.Write(0x1, 1)
	if err := bw.Close(); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 1 {
		t.Fatalf("expected 1 byte, got %d", buf.Len())
	}
	if buf.Bytes()[0] != 0x80 {
		t.Fatalf("expected 0x80 (1 followed by zero padding), got %#x", buf.Bytes()[0])
	}
}

func TestBitReaderTruncated(t *testing.T) {
	br := NewBitReader(bytes.NewReader([]byte{0xff}))
	if _, ok := br.Read(8); !ok {
		t.Fatal("expected first 8-bit read to succeed")
	}
	if _, ok := br.Read(1); ok {
		t.Fatal("expected read past end of stream to fail")
	}
}

func TestBitWriterAssertsOverflow(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic writing a value that doesn't fit in n bits")
		}
	}()
	var buf bytes.Buffer
	bw := NewBitWriter(&buf)
	bw.Write(0x10, 4) // 0x10 doesn't fit in 4 bits
}
