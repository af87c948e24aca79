// Copyright 2026 The Atlaspack Authors. All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package atlas

import "sort"

type survivingAlloc struct {
	id   AllocId
	rect Rectangle
}

// Rearrange defragments the atlas in place: it re-packs every current
// allocation, largest first, into a freshly initialized tree of the
// same size. It is equivalent to ResizeAndRearrange(al.Size()).
func (al *AtlasAllocator) Rearrange() ChangeList {
	return al.ResizeAndRearrange(al.size)
}

// ResizeAndRearrange behaves like Rearrange but also changes the
// atlas' size first. Every AllocId that existed before the call is
// invalid afterward, whether or not its rectangle could be replayed;
// the returned ChangeList maps surviving ids to their new id and
// rectangle, and lists the ones that did not fit as Failures.
func (al *AtlasAllocator) ResizeAndRearrange(newSize Size) ChangeList {
	var allocs []survivingAlloc
	for i := nodeIndex(0); int32(i) < al.arena.count; i++ {
		n := al.arena.get(i)
		if n.kind == kindAlloc {
			allocs = append(allocs, survivingAlloc{id: al.arena.encode(i), rect: n.rect})
		}
	}

	sort.Slice(allocs, func(i, j int) bool {
		return allocs[i].rect.Size().Area() > allocs[j].rect.Size().Area()
	})

	al.reinit(newSize, al.opts)

	var changes []Change
	var failures []Failure
	for _, old := range allocs {
		alloc, ok := al.Allocate(old.rect.Size())
		if ok {
			changes = append(changes, Change{
				OldId:   old.id,
				OldRect: old.rect,
				NewId:   alloc.Id,
				NewRect: alloc.Rectangle,
			})
		} else {
			failures = append(failures, Failure{Id: old.id, Rect: old.rect})
		}
	}

	return ChangeList{Changes: changes, Failures: failures}
}
