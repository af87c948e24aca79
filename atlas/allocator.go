// Copyright 2026 The Atlaspack Authors. All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package atlas

// AtlasAllocator packs rectangles into a fixed-size canvas using a
// guillotine-partitioned binary tree: every allocation splits a free
// leaf into the allocated rectangle plus up to two leftover free
// rectangles, and every deallocation merges free siblings back
// together and collapses containers left with a single child. It is
// not safe for concurrent use; callers needing to share one across
// goroutines must provide their own exclusion.
type AtlasAllocator struct {
	arena *arena
	free  *freeList
	opts  Options
	size  Size
	root  nodeIndex
}

// New creates an allocator for a canvas of the given size, using
// DefaultOptions.
func New(size Size) *AtlasAllocator {
	return WithOptions(size, DefaultOptions())
}

// WithOptions creates an allocator for a canvas of the given size
// with explicit Options. It panics with ErrInvalidOptions if opts or
// size are not valid.
func WithOptions(size Size, opts Options) *AtlasAllocator {
	opts.validate()
	validateSize(size)
	al := &AtlasAllocator{}
	al.reinit(size, opts)
	return al
}

func (al *AtlasAllocator) reinit(size Size, opts Options) {
	al.opts = opts
	al.size = size

	if al.arena == nil {
		al.arena = newArena()
	} else {
		al.arena.reset()
	}
	if al.free == nil {
		al.free = &freeList{}
	} else {
		al.free.clear()
	}

	root := al.arena.newNode()
	*al.arena.get(root) = node{
		kind:        kindFree,
		orientation: vertical,
		rect:        Rectangle{Max: Point{X: size.W, Y: size.H}},
		parent:      noneIndex,
		prev:        noneIndex,
		next:        noneIndex,
	}
	al.root = root
	al.addFreeRect(root, size)
}

// Size returns the atlas' current size.
func (al *AtlasAllocator) Size() Size {
	return al.size
}

// IsEmpty reports whether the atlas currently holds no allocations.
func (al *AtlasAllocator) IsEmpty() bool {
	for i := nodeIndex(0); int32(i) < al.arena.count; i++ {
		if al.arena.get(i).kind == kindAlloc {
			return false
		}
	}
	return true
}

// Clear discards every allocation, returning the atlas to a single
// free rectangle covering its current size. It is equivalent to
// Reset(al.Size(), al.opts), but idempotent by construction: two
// consecutive Clear calls leave the atlas in the same state.
func (al *AtlasAllocator) Clear() {
	al.reinit(al.size, al.opts)
}

// Reset reinitializes the atlas to the given size and options,
// discarding every allocation. It panics with ErrInvalidOptions if
// opts or size are not valid.
func (al *AtlasAllocator) Reset(size Size, opts Options) {
	opts.validate()
	validateSize(size)
	al.reinit(size, opts)
}

// Rectangle returns the rectangle occupied by id. It panics with
// ErrInvalidAllocId if id does not currently identify an allocated
// rectangle.
func (al *AtlasAllocator) Rectangle(id AllocId) Rectangle {
	idx := al.arena.decode(id)
	n := al.arena.get(idx)
	if n.kind != kindAlloc {
		fatalf(ErrInvalidAllocId, "alloc id %d does not refer to an allocated rectangle", id)
	}
	return n.rect
}

// ForEachFreeRectangle calls cb once for every free rectangle
// currently in the tree, in arena order.
func (al *AtlasAllocator) ForEachFreeRectangle(cb func(Rectangle)) {
	for i := nodeIndex(0); int32(i) < al.arena.count; i++ {
		n := al.arena.get(i)
		if n.kind == kindFree {
			cb(n.rect)
		}
	}
}

// ForEachAllocatedRectangle calls cb once for every allocated
// rectangle currently in the tree, in arena order.
func (al *AtlasAllocator) ForEachAllocatedRectangle(cb func(AllocId, Rectangle)) {
	for i := nodeIndex(0); int32(i) < al.arena.count; i++ {
		n := al.arena.get(i)
		if n.kind == kindAlloc {
			cb(al.arena.encode(i), n.rect)
		}
	}
}

// FreeBucketCounts returns the number of entries currently filed in
// each free-list bucket, in [small, medium, large] order. Per the
// free-list's lazy-eviction design, an entry counts here even if its
// node has since stopped being Free; it will be evicted the next time
// Allocate scans past it.
func (al *AtlasAllocator) FreeBucketCounts() [int(numBuckets)]int {
	var counts [int(numBuckets)]int
	for b := range al.free.buckets {
		counts[b] = len(al.free.buckets[b])
	}
	return counts
}
