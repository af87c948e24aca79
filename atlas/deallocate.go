// Copyright 2026 The Atlaspack Authors. All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package atlas

// mergeSiblings absorbs next into node, extending node's rectangle
// along the sibling chain's orientation. It panics with ErrCorruption
// if the two rectangles do not share the edge the orientation implies,
// which would mean the tree's canonical-form invariant has already
// been broken elsewhere.
func (al *AtlasAllocator) mergeSiblings(idx, next nodeIndex, orient orientation) {
	n := al.arena.get(idx)
	nx := al.arena.get(next)

	if orient == horizontal {
		if n.rect.Min.Y != nx.rect.Min.Y || n.rect.Max.Y != nx.rect.Max.Y {
			fatalf(ErrCorruption, "horizontal siblings do not share a row")
		}
		n.rect.Max.X = nx.rect.Max.X
	} else {
		if n.rect.Min.X != nx.rect.Min.X || n.rect.Max.X != nx.rect.Max.X {
			fatalf(ErrCorruption, "vertical siblings do not share a column")
		}
		n.rect.Max.Y = nx.rect.Max.Y
	}

	afterNext := nx.next
	n.next = afterNext
	if afterNext != noneIndex {
		al.arena.get(afterNext).prev = idx
	}
	al.arena.markUnused(next)
}

// Deallocate frees the rectangle identified by id. Freeing coalesces
// the released node with an adjacent Free sibling on either side, and
// collapses a container left with a single child back into that
// child's former parent, repeating until no further merge or collapse
// applies. It panics with ErrInvalidAllocId if id does not currently
// identify an allocated rectangle.
func (al *AtlasAllocator) Deallocate(id AllocId) {
	idx := al.arena.decode(id)
	n := al.arena.get(idx)
	if n.kind != kindAlloc {
		fatalf(ErrInvalidAllocId, "alloc id %d does not refer to an allocated rectangle", id)
	}
	n.kind = kindFree

	for {
		cur := al.arena.get(idx)
		orient := cur.orientation
		next := cur.next
		prev := cur.prev

		if next != noneIndex && al.arena.get(next).isFree() {
			al.mergeSiblings(idx, next, orient)
		}

		if prev != noneIndex && al.arena.get(prev).isFree() {
			al.mergeSiblings(prev, idx, orient)
			idx = prev
		}

		cur = al.arena.get(idx)
		parent := cur.parent
		if cur.prev == noneIndex && cur.next == noneIndex && parent != noneIndex {
			rect := cur.rect
			al.arena.markUnused(idx)
			p := al.arena.get(parent)
			p.rect = rect
			p.kind = kindFree
			idx = parent
			continue
		}

		al.addFreeRect(idx, cur.rect.Size())
		break
	}
}
