// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package lzw

// This file implements an O(1) touch/find_victim/remove/contains
// recency index twice over: once as LRUOrder (ordered by last use) and
// once as LFUOrder (ordered by (frequency, last use)). Both are
// generic over the key type so that the same arena-backed
// doubly-linked-list implementation serves the compressor (keyed by
// Code) and the decoder (keyed by Code) without duplicating the list
// logic.
//
// Nodes live in a flat slice addressed by small integer indices, with
// sentinel head/tail at fixed indices 0 and 1, so the list never forms
// a reference cycle and freed nodes are recycled from a free list
// instead of reallocated.

const (
	sentinelHead int32 = 0
	sentinelTail int32 = 1
)

type lruNode[K comparable] struct {
	key        K
	prev, next int32
	live       bool
}

// lruList is an arena-backed, intrusive doubly-linked list ordered by
// recency: Touch moves (or inserts) a key to the most-recent end;
// Victim reports the least-recent end without removing it.
type lruList[K comparable] struct {
	nodes []lruNode[K]
	index map[K]int32
	free  []int32
	n     int
}

func newLRUList[K comparable]() *lruList[K] {
	l := &lruList[K]{index: make(map[K]int32)}
	l.nodes = make([]lruNode[K], 2, 16)
	l.nodes[sentinelHead].next = sentinelTail
	l.nodes[sentinelTail].prev = sentinelHead
	return l
}

func (l *lruList[K]) unlink(idx int32) {
	n := &l.nodes[idx]
	l.nodes[n.prev].next = n.next
	l.nodes[n.next].prev = n.prev
}

// insertMRU splices node idx in immediately after the head sentinel,
// making it the most-recently-used entry.
func (l *lruList[K]) insertMRU(idx int32) {
	n := &l.nodes[idx]
	headNext := l.nodes[sentinelHead].next
	n.prev = sentinelHead
	n.next = headNext
	l.nodes[headNext].prev = idx
	l.nodes[sentinelHead].next = idx
}

func (l *lruList[K]) alloc(k K) int32 {
	if m := len(l.free); m > 0 {
		idx := l.free[m-1]
		l.free = l.free[:m-1]
		l.nodes[idx] = lruNode[K]{key: k, live: true}
		return idx
	}
	idx := int32(len(l.nodes))
	l.nodes = append(l.nodes, lruNode[K]{key: k, live: true})
	return idx
}

// Touch moves k to the most-recent end, inserting it if absent.
func (l *lruList[K]) Touch(k K) {
	if idx, ok := l.index[k]; ok {
		l.unlink(idx)
		l.insertMRU(idx)
		return
	}
	idx := l.alloc(k)
	l.index[k] = idx
	l.insertMRU(idx)
	l.n++
}

// Contains reports whether k is currently tracked.
func (l *lruList[K]) Contains(k K) bool {
	_, ok := l.index[k]
	return ok
}

// Remove detaches k, a no-op if k isn't tracked.
func (l *lruList[K]) Remove(k K) {
	idx, ok := l.index[k]
	if !ok {
		return
	}
	l.unlink(idx)
	delete(l.index, k)
	l.nodes[idx] = lruNode[K]{}
	l.free = append(l.free, idx)
	l.n--
}

// Victim reports the least-recently-used key without removing it.
func (l *lruList[K]) Victim() (k K, ok bool) {
	idx := l.nodes[sentinelTail].prev
	if idx == sentinelHead {
		return k, false
	}
	return l.nodes[idx].key, true
}

func (l *lruList[K]) Empty() bool { return l.n == 0 }
func (l *lruList[K]) Len() int    { return l.n }

// LRUOrder is the least-recently-used recency index instantiation.
type LRUOrder[K comparable] struct {
	list *lruList[K]
}

// NewLRUOrder constructs an empty LRU-ordered recency index.
func NewLRUOrder[K comparable]() *LRUOrder[K] {
	return &LRUOrder[K]{list: newLRUList[K]()}
}

func (o *LRUOrder[K]) Touch(k K)         { o.list.Touch(k) }
func (o *LRUOrder[K]) Contains(k K) bool { return o.list.Contains(k) }
func (o *LRUOrder[K]) Remove(k K)        { o.list.Remove(k) }
func (o *LRUOrder[K]) FindVictim() (K, bool) { return o.list.Victim() }
func (o *LRUOrder[K]) Len() int          { return o.list.Len() }

// LFUOrder is the least-frequently-used, LRU-tiebreak recency index
// instantiation. Touch increments frequency, inserting at frequency 1
// if absent; it is not idempotent.
type LFUOrder[K comparable] struct {
	freq    map[K]uint32
	buckets map[uint32]*lruList[K]
	minFreq uint32
	n       int
}

// NewLFUOrder constructs an empty LFU-ordered recency index.
func NewLFUOrder[K comparable]() *LFUOrder[K] {
	return &LFUOrder[K]{
		freq:    make(map[K]uint32),
		buckets: make(map[uint32]*lruList[K]),
	}
}

func (o *LFUOrder[K]) bucket(freq uint32) *lruList[K] {
	b, ok := o.buckets[freq]
	if !ok {
		b = newLRUList[K]()
		o.buckets[freq] = b
	}
	return b
}

// Touch increments k's frequency (inserting at frequency 1 if k is
// new), breaking ties within a frequency by recency.
func (o *LFUOrder[K]) Touch(k K) {
	oldFreq, existed := o.freq[k]
	newFreq := oldFreq + 1
	if existed {
		ob := o.bucket(oldFreq)
		ob.Remove(k)
		if ob.Empty() && o.minFreq == oldFreq {
			// The key we just promoted is guaranteed to populate
			// newFreq, so that bucket is non-empty by construction.
			o.minFreq = newFreq
		}
	} else {
		newFreq = 1
		o.minFreq = 1
		o.n++
	}
	o.freq[k] = newFreq
	o.bucket(newFreq).Touch(k)
}

func (o *LFUOrder[K]) Contains(k K) bool {
	_, ok := o.freq[k]
	return ok
}

// Remove detaches k. If k was the sole occupant of the current
// minimum-frequency bucket and other keys remain, minFreq is
// recomputed by scanning the non-empty buckets.
func (o *LFUOrder[K]) Remove(k K) {
	freq, ok := o.freq[k]
	if !ok {
		return
	}
	b := o.bucket(freq)
	b.Remove(k)
	delete(o.freq, k)
	o.n--
	if b.Empty() && freq == o.minFreq && o.n > 0 {
		// The promotion invariant in Touch resolves this for the
		// eviction-then-reinsert pattern every caller here actually
		// uses; this scan exists so LFUOrder stays correct even under
		// continuous eviction, where several victims can be removed in
		// sequence without an intervening Touch at frequency 1.
		newMin := ^uint32(0)
		for f, bb := range o.buckets {
			if !bb.Empty() && f < newMin {
				newMin = f
			}
		}
		o.minFreq = newMin
	}
}

// FindVictim reports the key with the smallest frequency, tie-broken
// by least-recent use.
func (o *LFUOrder[K]) FindVictim() (k K, ok bool) {
	b, present := o.buckets[o.minFreq]
	if !present {
		return k, false
	}
	return b.Victim()
}

func (o *LFUOrder[K]) Len() int { return o.n }
