// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package lzw

// writeHeader emits the artifact header: min_bits (8), max_bits (8),
// an 8-bit policy tag (always written, so a single decoder entry
// point can self-configure), alphabet_size (16), then the alphabet's
// symbols verbatim.
func writeHeader(bw *BitWriter, wMin, wMax uint8, policy Policy, alphabet Alphabet) {
	bw.Write(uint32(wMin), 8)
	bw.Write(uint32(wMax), 8)
	bw.Write(uint32(policy.tag()), 8)
	bw.Write(uint32(alphabet.Size()), 16)
	for _, b := range alphabet.Bytes() {
		bw.Write(uint32(b), 8)
	}
}

type parsedHeader struct {
	wMin, wMax uint8
	policy     Policy
	alphabet   Alphabet
}

// parseHeader reads and validates an artifact header written by
// writeHeader. Errors carry br's byte offset for diagnostics.
func parseHeader(br *BitReader) (parsedHeader, error) {
	var h parsedHeader

	wMinV, ok := br.Read(8)
	if !ok {
		return h, newErrAt(ErrTruncatedArtifact, br.Offset(), "truncated reading min_bits")
	}
	wMaxV, ok := br.Read(8)
	if !ok {
		return h, newErrAt(ErrTruncatedArtifact, br.Offset(), "truncated reading max_bits")
	}
	tagV, ok := br.Read(8)
	if !ok {
		return h, newErrAt(ErrTruncatedArtifact, br.Offset(), "truncated reading policy tag")
	}
	policy, ok := policyFromTag(byte(tagV))
	if !ok {
		return h, newErrAt(ErrBadParameters, br.Offset(), "unrecognized policy tag")
	}
	sizeV, ok := br.Read(16)
	if !ok {
		return h, newErrAt(ErrTruncatedArtifact, br.Offset(), "truncated reading alphabet_size")
	}
	syms := make([]byte, sizeV)
	for i := range syms {
		b, ok := br.Read(8)
		if !ok {
			return h, newErrAt(ErrTruncatedArtifact, br.Offset(), "truncated reading alphabet symbols")
		}
		syms[i] = byte(b)
	}
	alphabet, err := NewAlphabet(syms)
	if err != nil {
		return h, err
	}

	h.wMin = uint8(wMinV)
	h.wMax = uint8(wMaxV)
	h.policy = policy
	h.alphabet = alphabet
	if err := validateWidths(h.wMin, h.wMax, alphabet.Size(), policy); err != nil {
		return h, err
	}
	return h, nil
}

// validateWidths enforces the parameter bounds a Writer or Reader must
// satisfy: widths ordered and in range, wide enough to hold the
// alphabet plus its reserved codes.
func validateWidths(wMin, wMax uint8, alphaSize int, policy Policy) error {
	if wMin > wMax {
		return newErr(ErrBadParameters, "min_bits exceeds max_bits")
	}
	if wMax == 0 || wMax > 32 {
		return newErr(ErrBadParameters, "max_bits out of range")
	}
	reserved := alphaSize + 2
	if policy.signalled() {
		reserved = alphaSize + 3
	}
	if (1 << wMin) < reserved {
		return newErr(ErrBadParameters, "min_bits too small for alphabet and reserved codes")
	}
	return nil
}
