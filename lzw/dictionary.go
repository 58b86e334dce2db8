// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package lzw

import "github.com/dsnet/golib/errs"

// invalidCode marks a parent that must not be linked into the trie;
// it is used for the one insertion that immediately follows a
// dictionary reset, whose parent code refers to the discarded table.
const invalidCode = ^Code(0)

// pendingResync records that the compressor has repurposed a code
// slot whose decoder-side value is stale until a resync signal closes
// the gap (evict-then-use detection, LRU-signalled only). Keyed by the
// reused code.
type pendingResync struct {
	newPhrase []byte
	prefix    []byte // current at the moment of eviction, for Opt-2's window lookup
}

// codeRecency is the subset of LRUOrder[Code]/LFUOrder[Code] the
// dictionary engines need; both satisfy it.
type codeRecency interface {
	Touch(Code)
	Remove(Code)
	Contains(Code) bool
	FindVictim() (Code, bool)
}

func newCodeRecency(policy Policy) codeRecency {
	switch policy {
	case PolicyLFU:
		return NewLFUOrder[Code]()
	case PolicyLRUBasic, PolicyLRUSignalledOpt1, PolicyLRUSignalledOpt2:
		return NewLRUOrder[Code]()
	default:
		return nil
	}
}

// Storing every phrase as a full, literal []byte (rather than
// reconstructing it by walking a parent-pointer chain on demand) is
// what makes code-slot reuse under eviction safe: a slot's content is
// never implicitly derived from another slot, so repurposing a code
// can never corrupt some unrelated phrase that happens to share an
// ancestor with the evicted one.

// encDict is the compressor-side DictionaryEngine: a trie of extend
// edges for longest-match lookup, plus code -> phrase for payload
// assembly and signalling.
type encDict struct {
	alphabet Alphabet
	policy   Policy
	layout   codeLayout
	width    *widthTracker

	nextFree Code
	full     bool // true once no further insertion will occur

	phrase map[Code][]byte        // dict codes only
	parent map[Code]Code          // dict codes only: the phrase this one extends
	sym    map[Code]byte          // dict codes only: the trailing symbol
	edges  map[Code]map[byte]Code // parent code (alphabet or dict) -> sym -> child code

	recency codeRecency             // nil for Freeze/Reset
	pending map[Code]pendingResync  // nil unless policy.signalled()
	window  *recentWindow           // nil unless PolicyLRUSignalledOpt2

	lfuContinuous  bool
	lfuEvictedOnce bool
	evictions      int64
}

func newEncDict(alphabet Alphabet, policy Policy, wMin, wMax uint8, lfuContinuous bool) *encDict {
	d := &encDict{
		alphabet: alphabet,
		policy:   policy,
		layout:   newCodeLayout(alphabet.Size(), policy, wMin, wMax),
		width:    newWidthTracker(wMin, wMax),
		phrase:   make(map[Code][]byte),
		parent:   make(map[Code]Code),
		sym:      make(map[Code]byte),
		edges:    make(map[Code]map[byte]Code),
		recency:  newCodeRecency(policy),

		lfuContinuous: lfuContinuous,
	}
	d.nextFree = d.layout.firstDictCode()
	if policy.signalled() {
		d.pending = make(map[Code]pendingResync)
	}
	if policy == PolicyLRUSignalledOpt2 {
		d.window = newRecentWindow()
	}
	return d
}

// phraseBytes returns the literal content of code, whether it's an
// alphabet code or a dictionary code.
func (d *encDict) phraseBytes(code Code) []byte {
	if code < Code(d.alphabet.Size()) {
		return []byte{d.alphabet.Symbol(int(code))}
	}
	return d.phrase[code]
}

// matchChild reports the code reached by extending parent with sym,
// if that phrase is already present.
func (d *encDict) matchChild(parent Code, sym byte) (Code, bool) {
	m := d.edges[parent]
	if m == nil {
		return 0, false
	}
	c, ok := m[sym]
	return c, ok
}

// atCapacity reports whether the dictionary range has no free slot
// left for a new phrase.
func (d *encDict) atCapacity() bool {
	return uint32(d.nextFree-d.layout.firstDictCode()) >= d.layout.maxDictCodes()
}

// reinit reinitializes the dictionary to its just-constructed state,
// used by PolicyReset once the table fills.
func (d *encDict) reinit() {
	d.nextFree = d.layout.firstDictCode()
	d.phrase = make(map[Code][]byte)
	d.parent = make(map[Code]Code)
	d.sym = make(map[Code]byte)
	d.edges = make(map[Code]map[byte]Code)
	d.width = newWidthTracker(d.layout.wMin, d.layout.wMax)
}

func (d *encDict) unlinkEdge(victim Code) {
	if oldParent, ok := d.parent[victim]; ok {
		if m := d.edges[oldParent]; m != nil && m[d.sym[victim]] == victim {
			delete(m, d.sym[victim])
		}
	}
	// Extension edges out of the victim name the old phrase's children;
	// left in place they would extend the slot's new phrase instead.
	delete(d.edges, victim)
	delete(d.phrase, victim)
	delete(d.parent, victim)
	delete(d.sym, victim)
}

// insert extends parentBytes with sym and stores the result at a free
// or evicted slot, per the active policy. parentCode identifies the
// same phrase for trie linkage; callers pass invalidCode when the
// parent's code no longer refers to parentBytes (immediately after a
// reset), in which case the new entry is stored without a trie edge.
// It returns the slot the new phrase now occupies and whether an
// insertion actually happened (false under Freeze once the table is
// full).
//
// The bit-width check runs before the slot is claimed, against the
// pre-insert next free code; the decoder performs the matching check
// against its own next free code before each read, and the two counts
// coincide at every code boundary.
func (d *encDict) insert(parentCode Code, parentBytes []byte, sym byte) (slot Code, inserted bool) {
	if d.full {
		return 0, false
	}
	var victim Code
	evicting := false

	if !d.atCapacity() {
		d.width.Observe(uint32(d.nextFree))
		slot = d.nextFree
		d.nextFree++
	} else {
		switch {
		case d.policy == PolicyFreeze:
			d.full = true
			return 0, false
		case d.policy == PolicyReset:
			if d.layout.maxDictCodes() == 0 {
				// Degenerate width: no dictionary range at all, so
				// there is nothing to reset into. Behave like Freeze.
				d.full = true
				return 0, false
			}
			// The writer is responsible for emitting RESET_CODE and
			// calling reinit before the table actually runs out of
			// room; reaching here under Reset is a caller bug.
			errs.Panic(newErr(ErrInternalInvariant, "reset dictionary reached capacity without reinit"))
		case d.policy == PolicyLFU && !d.lfuContinuous && d.lfuEvictedOnce:
			// Mirrors an observed LFU quirk: next_code stops advancing
			// after the first eviction, so the capacity check never
			// re-triggers a second one unless continuous eviction is
			// opted into.
			d.full = true
			return 0, false
		default:
			v, ok := d.recency.FindVictim()
			errs.Assert(ok, newErr(ErrInternalInvariant, "no eviction victim available at capacity"))
			victim = v
			evicting = true
		}
	}

	newPhrase := make([]byte, 0, len(parentBytes)+1)
	newPhrase = append(newPhrase, parentBytes...)
	newPhrase = append(newPhrase, sym)

	if evicting {
		if d.policy.signalled() {
			prefix := make([]byte, len(parentBytes))
			copy(prefix, parentBytes)
			d.pending[victim] = pendingResync{newPhrase: newPhrase, prefix: prefix}
		}
		d.unlinkEdge(victim)
		d.recency.Remove(victim)
		slot = victim
		d.evictions++
		if d.policy == PolicyLFU && !d.lfuContinuous {
			d.lfuEvictedOnce = true
		}
	}

	d.phrase[slot] = newPhrase
	if parentCode != invalidCode {
		d.parent[slot] = parentCode
		d.sym[slot] = sym
		if d.edges[parentCode] == nil {
			d.edges[parentCode] = make(map[byte]Code)
		}
		d.edges[parentCode][sym] = slot
	}
	if d.recency != nil {
		d.recency.Touch(slot)
	}
	return slot, true
}

// touch updates code's recency/frequency entry. Alphabet codes and
// reserved codes (EOF, EvictSignal) are never tracked.
func (d *encDict) touch(code Code) {
	if d.recency == nil || code < Code(d.alphabet.Size()) {
		return
	}
	d.recency.Touch(code)
}

// takePendingResync reports and clears any pending slot update for
// code, which the caller must signal before emitting code.
func (d *encDict) takePendingResync(code Code) (pendingResync, bool) {
	if d.pending == nil {
		return pendingResync{}, false
	}
	p, ok := d.pending[code]
	if ok {
		delete(d.pending, code)
	}
	return p, ok
}

func (d *encDict) pushWindow(phrase []byte) {
	if d.window != nil {
		d.window.push(phrase)
	}
}

// Evictions reports the number of dictionary slots reused so far.
func (d *encDict) Evictions() int64 { return d.evictions }

// decDict is the decompressor-side mirror of encDict. It never
// performs trie matching, only code -> phrase storage, and tracks
// recency only under the eviction-mirroring policies (LRU-basic/LFU); under
// LRU-signalled, resync packets are the sole source of slot updates.
type decDict struct {
	alphabet Alphabet
	policy   Policy
	layout   codeLayout
	width    *widthTracker

	nextFree Code
	full     bool

	phrase map[Code][]byte

	recency codeRecency // nil for Freeze/Reset/LRU-signalled
	window  *recentWindow

	lfuContinuous  bool
	lfuEvictedOnce bool
	evictions      int64
}

func newDecDict(alphabet Alphabet, policy Policy, wMin, wMax uint8, lfuContinuous bool) *decDict {
	d := &decDict{
		alphabet: alphabet,
		policy:   policy,
		layout:   newCodeLayout(alphabet.Size(), policy, wMin, wMax),
		width:    newWidthTracker(wMin, wMax),
		phrase:   make(map[Code][]byte),

		lfuContinuous: lfuContinuous,
	}
	d.nextFree = d.layout.firstDictCode()
	if policy == PolicyLRUBasic || policy == PolicyLFU {
		d.recency = newCodeRecency(policy)
	}
	if policy == PolicyLRUSignalledOpt2 {
		d.window = newRecentWindow()
	}
	return d
}

func (d *decDict) phraseBytes(code Code) []byte {
	if code < Code(d.alphabet.Size()) {
		return []byte{d.alphabet.Symbol(int(code))}
	}
	return d.phrase[code]
}

func (d *decDict) contains(code Code) bool {
	if code < Code(d.alphabet.Size()) {
		return true
	}
	_, ok := d.phrase[code]
	return ok
}

func (d *decDict) atCapacity() bool {
	return uint32(d.nextFree-d.layout.firstDictCode()) >= d.layout.maxDictCodes()
}

func (d *decDict) reinit() {
	d.nextFree = d.layout.firstDictCode()
	d.phrase = make(map[Code][]byte)
	d.width = newWidthTracker(d.layout.wMin, d.layout.wMax)
}

// observeWidth applies the width-growth check against the next free
// code. The reader calls it before reading each code, which keeps its
// width in lockstep with a writer that applies the same check against
// its pre-insert next free code.
func (d *decDict) observeWidth() {
	d.width.Observe(uint32(d.nextFree))
}

// predictVictim reports the slot the next incremental insert will
// repurpose, if that insert will evict. The writer performs that
// eviction before emitting the code that follows it, so a received
// code equal to the predicted victim refers to the repurposed slot's
// new phrase, not the stale one still stored here.
func (d *decDict) predictVictim() (Code, bool) {
	if d.recency == nil || d.full || !d.atCapacity() {
		return 0, false
	}
	if d.policy == PolicyLFU && !d.lfuContinuous && d.lfuEvictedOnce {
		return 0, false
	}
	return d.recency.FindVictim()
}

// insert stores prevBytes+trailing at a free or evicted slot, mirroring
// encDict.insert without trie bookkeeping. It reports the slot used.
func (d *decDict) insert(prevBytes []byte, trailing byte) (slot Code, inserted bool) {
	if d.full {
		return 0, false
	}
	if !d.atCapacity() {
		slot = d.nextFree
		d.nextFree++
	} else {
		switch {
		case d.policy == PolicyFreeze:
			d.full = true
			return 0, false
		case d.policy.signalled():
			// Once full, the decoder has no local basis to choose a
			// victim (it keeps no recency index under LRU-signalled);
			// every further slot update arrives exclusively through a
			// resync signal, so ordinary incremental insertion simply
			// stops here.
			d.full = true
			return 0, false
		case d.policy == PolicyReset:
			if d.layout.maxDictCodes() == 0 {
				d.full = true
				return 0, false
			}
			errs.Panic(newErr(ErrInternalInvariant, "reset dictionary reached capacity without reinit"))
		case d.policy == PolicyLFU && !d.lfuContinuous && d.lfuEvictedOnce:
			d.full = true
			return 0, false
		default:
			v, ok := d.recency.FindVictim()
			errs.Assert(ok, newErr(ErrInternalInvariant, "no eviction victim available at capacity"))
			slot = v
			d.recency.Remove(slot)
			d.evictions++
			if d.policy == PolicyLFU && !d.lfuContinuous {
				d.lfuEvictedOnce = true
			}
		}
	}
	newPhrase := make([]byte, 0, len(prevBytes)+1)
	newPhrase = append(newPhrase, prevBytes...)
	newPhrase = append(newPhrase, trailing)
	d.phrase[slot] = newPhrase
	if d.recency != nil {
		d.recency.Touch(slot)
	}
	return slot, true
}

// applySignal installs newPhrase directly at slot, used only for
// LRU-signalled resync packets; slot may or may not already exist.
func (d *decDict) applySignal(slot Code, newPhrase []byte) {
	d.phrase[slot] = newPhrase
}

func (d *decDict) touch(code Code) {
	if d.recency == nil || code < Code(d.alphabet.Size()) {
		return
	}
	d.recency.Touch(code)
}

func (d *decDict) pushWindow(phrase []byte) {
	if d.window != nil {
		d.window.push(phrase)
	}
}
