// Copyright 2026 The Atlaspack Authors. All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package atlas

import "math"

// findSuitableRect scans the free-list buckets starting at the one
// sized for w x h and moving up to larger buckets until a candidate is
// found. The fit policy follows the bucket of the request, not of the
// bucket being scanned: a small request searches every bucket
// best-fit (minimize the smaller of the two leftover margins), while a
// medium or large request searches worst-fit (maximize it), which
// tends to leave behind squarer, more reusable leftovers for the
// bigger rectangles that dominate fragmentation. An exact fit on
// either axis short-circuits the scan.
//
// Stale entries (nodes that stopped being Free since they were filed)
// are evicted in place with a swap-remove as they're encountered.
func (al *AtlasAllocator) findSuitableRect(w, h int32) nodeIndex {
	ideal := bucketForSize(al.opts, w, h)
	worstFit := ideal != smallBucket

	for b := ideal; b < numBuckets; b++ {
		list := al.free.buckets[b]
		bestScore := int32(math.MaxInt32)
		if worstFit {
			bestScore = -1
		}
		bestPos := -1
		var bestIdx nodeIndex

		i := 0
		for i < len(list) {
			candidate := list[i]
			n := al.arena.get(candidate)
			if !n.isFree() {
				list[i] = list[len(list)-1]
				list = list[:len(list)-1]
				continue
			}

			sz := n.rect.Size()
			dx := sz.W - w
			dy := sz.H - h
			if dx >= 0 && dy >= 0 {
				if dx == 0 || dy == 0 {
					bestPos = i
					bestIdx = candidate
					break
				}
				score := min32(dx, dy)
				if (worstFit && score > bestScore) || (!worstFit && score < bestScore) {
					bestScore = score
					bestPos = i
					bestIdx = candidate
				}
			}
			i++
		}

		al.free.buckets[b] = list

		if bestPos >= 0 {
			list = al.free.buckets[b]
			list[bestPos] = list[len(list)-1]
			al.free.buckets[b] = list[:len(list)-1]
			return bestIdx
		}
	}

	return noneIndex
}

func (al *AtlasAllocator) addFreeRect(idx nodeIndex, size Size) {
	b := bucketForSize(al.opts, size.W, size.H)
	al.free.push(b, idx)
}

// Allocate carves a w x h rectangle (rounded up to the configured
// alignment) out of the atlas' free space. It reports false if no free
// rectangle is large enough, without mutating the tree.
func (al *AtlasAllocator) Allocate(size Size) (Allocation, bool) {
	w := adjustSize(al.opts.Alignment.X, size.W)
	h := adjustSize(al.opts.Alignment.Y, size.H)
	if w <= 0 || h <= 0 {
		return Allocation{}, false
	}

	chosenIdx := al.findSuitableRect(w, h)
	if chosenIdx == noneIndex {
		return Allocation{}, false
	}

	chosen := *al.arena.get(chosenIdx)
	if chosen.kind != kindFree {
		fatalf(ErrCorruption, "free-list candidate %d is not a free node", chosenIdx)
	}

	allocatedRect := Rectangle{
		Min: chosen.rect.Min,
		Max: Point{X: chosen.rect.Min.X + w, Y: chosen.rect.Min.Y + h},
	}
	splitRect, leftoverRect, splitOrientation := guillotineSplit(chosen.rect, w, h, chosen.orientation)

	var allocatedIdx, splitIdx, leftoverIdx nodeIndex = noneIndex, noneIndex, noneIndex

	if splitOrientation == chosen.orientation {
		// The new split strip tiles alongside chosen in its existing
		// sibling chain; chosen's own orientation does not change.
		if splitRect.Area() > 0 {
			nextSibling := chosen.next
			splitIdx = al.arena.newNode()
			*al.arena.get(splitIdx) = node{
				kind:        kindFree,
				orientation: chosen.orientation,
				rect:        splitRect,
				parent:      chosen.parent,
				prev:        chosenIdx,
				next:        nextSibling,
			}
			al.arena.get(chosenIdx).next = splitIdx
			if nextSibling != noneIndex {
				al.arena.get(nextSibling).prev = splitIdx
			}
		}

		if leftoverRect.Area() > 0 {
			al.arena.get(chosenIdx).kind = kindContainer

			allocatedIdx = al.arena.newNode()
			leftoverIdx = al.arena.newNode()
			*al.arena.get(allocatedIdx) = node{
				kind:        kindAlloc,
				orientation: chosen.orientation.flipped(),
				rect:        allocatedRect,
				parent:      chosenIdx,
				prev:        noneIndex,
				next:        leftoverIdx,
			}
			*al.arena.get(leftoverIdx) = node{
				kind:        kindFree,
				orientation: chosen.orientation.flipped(),
				rect:        leftoverRect,
				parent:      chosenIdx,
				prev:        allocatedIdx,
				next:        noneIndex,
			}
		} else {
			// Perfect fit on both axes (or only a split strip was
			// needed): chosen itself becomes the allocation.
			allocatedIdx = chosenIdx
			cn := al.arena.get(chosenIdx)
			cn.kind = kindAlloc
			cn.rect = allocatedRect
		}
	} else {
		// The split strip runs perpendicular to chosen's chain, so it
		// cannot simply be spliced in as a new sibling: chosen becomes
		// a container and gains a perpendicular child chain instead.
		al.arena.get(chosenIdx).kind = kindContainer

		if splitRect.Area() > 0 {
			splitIdx = al.arena.newNode()
			*al.arena.get(splitIdx) = node{
				kind:        kindFree,
				orientation: chosen.orientation.flipped(),
				rect:        splitRect,
				parent:      chosenIdx,
				prev:        noneIndex,
				next:        noneIndex,
			}
		}

		if leftoverRect.Area() > 0 {
			containerIdx := al.arena.newNode()
			*al.arena.get(containerIdx) = node{
				kind:        kindContainer,
				orientation: chosen.orientation.flipped(),
				parent:      chosenIdx,
				prev:        noneIndex,
				next:        splitIdx,
			}
			if splitIdx != noneIndex {
				al.arena.get(splitIdx).prev = containerIdx
			}

			allocatedIdx = al.arena.newNode()
			leftoverIdx = al.arena.newNode()
			*al.arena.get(allocatedIdx) = node{
				kind:        kindAlloc,
				orientation: chosen.orientation,
				rect:        allocatedRect,
				parent:      containerIdx,
				prev:        noneIndex,
				next:        leftoverIdx,
			}
			*al.arena.get(leftoverIdx) = node{
				kind:        kindFree,
				orientation: chosen.orientation,
				rect:        leftoverRect,
				parent:      containerIdx,
				prev:        allocatedIdx,
				next:        noneIndex,
			}
		} else {
			allocatedIdx = al.arena.newNode()
			*al.arena.get(allocatedIdx) = node{
				kind:        kindAlloc,
				orientation: chosen.orientation.flipped(),
				rect:        allocatedRect,
				parent:      chosenIdx,
				prev:        noneIndex,
				next:        splitIdx,
			}
			if splitIdx != noneIndex {
				al.arena.get(splitIdx).prev = allocatedIdx
			}
		}
	}

	if splitIdx != noneIndex {
		al.addFreeRect(splitIdx, splitRect.Size())
	}
	if leftoverIdx != noneIndex {
		al.addFreeRect(leftoverIdx, leftoverRect.Size())
	}

	return Allocation{Id: al.arena.encode(allocatedIdx), Rectangle: allocatedRect}, true
}
