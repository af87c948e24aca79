// Copyright 2026 The Atlaspack Authors. All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package atlas

// arena stores every node of a subdivision tree in fixed-size
// segments. Growing the arena appends a segment rather than
// reallocating and copying the whole backing store, so a *node
// obtained from get remains valid for the lifetime of the arena even
// across later growth.
//
// Freed slots are threaded into a LIFO list through node.next (reusing
// the same field a live node uses for its sibling chain, since an
// unused slot has no sibling chain of its own). Each slot additionally
// carries an 8-bit generation counter, bumped every time the slot is
// recycled, so that a stale AllocId minted before a free/realloc cycle
// can be distinguished from a fresh one addressing the same slot.
const (
	segmentSize = 1024
	maxSegments = 1 << 14 // segmentSize * maxSegments == 1<<24, the AllocId index space
)

type arena struct {
	segments    []*[segmentSize]node
	generations []uint8
	count       int32
	freeHead    nodeIndex
}

func newArena() *arena {
	return &arena{freeHead: noneIndex}
}

func (a *arena) get(idx nodeIndex) *node {
	seg := idx / segmentSize
	off := idx % segmentSize
	return &a.segments[seg][off]
}

func (a *arena) ensureSegment(idx nodeIndex) {
	seg := int(idx) / segmentSize
	for len(a.segments) <= seg {
		if len(a.segments) >= maxSegments {
			fatalf(ErrCorruption, "arena exhausted its 24-bit index space")
		}
		a.segments = append(a.segments, new([segmentSize]node))
		a.generations = append(a.generations, make([]uint8, segmentSize)...)
	}
}

// newNode returns the index of a node slot ready to be overwritten by
// the caller with its real contents. It never returns a partially
// initialized node to anything but the allocate/grow code paths that
// immediately assign every field.
func (a *arena) newNode() nodeIndex {
	if a.freeHead != noneIndex {
		idx := a.freeHead
		n := a.get(idx)
		a.freeHead = n.next
		a.generations[idx]++
		return idx
	}
	idx := nodeIndex(a.count)
	a.count++
	a.ensureSegment(idx)
	return idx
}

func (a *arena) markUnused(idx nodeIndex) {
	n := a.get(idx)
	n.kind = kindUnused
	n.next = a.freeHead
	a.freeHead = idx
}

func (a *arena) reset() {
	a.segments = a.segments[:0]
	a.generations = a.generations[:0]
	a.count = 0
	a.freeHead = noneIndex
}

func (a *arena) encode(idx nodeIndex) AllocId {
	return packID(uint32(idx), a.generations[idx])
}

// decode resolves an AllocId back to a node index, panicking with
// ErrInvalidAllocId if the id's generation does not match the slot's
// current generation (the id is stale) or the index falls outside the
// arena entirely.
func (a *arena) decode(id AllocId) nodeIndex {
	idx := nodeIndex(id.index())
	if int32(idx) >= a.count {
		fatalf(ErrInvalidAllocId, "alloc id %d does not refer to a node in this atlas", id)
	}
	if a.generations[idx] != id.generation() {
		fatalf(ErrInvalidAllocId, "alloc id %d is stale: its slot has been reused", id)
	}
	return idx
}
