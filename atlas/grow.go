// Copyright 2026 The Atlaspack Authors. All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package atlas

// Grow extends the atlas to newSize without disturbing any existing
// allocation. It panics with ErrShrink if either dimension of newSize
// is smaller than the current size.
//
// When the whole atlas is still a single unsplit Free leaf, growth is
// free: the leaf's rectangle is simply extended. Otherwise growth
// along the root's own orientation extends (or appends to) the last
// sibling in the root's chain, and growth along the perpendicular axis
// wraps the existing tree in a new root Container so that the newly
// available area can be filed as a sibling strip of opposite
// orientation. Both extensions apply independently, so growing in both
// dimensions at once does both.
func (al *AtlasAllocator) Grow(newSize Size) {
	if newSize.W < al.size.W || newSize.H < al.size.H {
		fatalf(ErrShrink, "grow: new size %+v is smaller than current size %+v", newSize, al.size)
	}

	oldSize := al.size
	al.size = newSize
	dx := newSize.W - oldSize.W
	dy := newSize.H - oldSize.H
	if dx == 0 && dy == 0 {
		return
	}

	root := al.arena.get(al.root)
	if root.kind == kindFree && root.rect.Size() == oldSize {
		root.rect.Max = Point{X: root.rect.Min.X + newSize.W, Y: root.rect.Min.Y + newSize.H}
		return
	}

	rootOrientation := root.orientation
	growsAlongRoot := (rootOrientation == horizontal && dx > 0) || (rootOrientation == vertical && dy > 0)
	growsAcrossRoot := (rootOrientation == horizontal && dy > 0) || (rootOrientation == vertical && dx > 0)

	if growsAlongRoot {
		last := al.root
		for al.arena.get(last).next != noneIndex {
			last = al.arena.get(last).next
		}
		lastNode := al.arena.get(last)

		if lastNode.isFree() {
			if rootOrientation == horizontal {
				lastNode.rect.Max.X += dx
			} else {
				lastNode.rect.Max.Y += dy
			}
		} else {
			// The top-level chain tiles the old atlas, so the gained
			// strip is derived from oldSize rather than from last's
			// rectangle (last may be a Container).
			var rect Rectangle
			if rootOrientation == horizontal {
				rect = Rectangle{Min: Point{X: oldSize.W, Y: 0}, Max: Point{X: newSize.W, Y: oldSize.H}}
			} else {
				rect = Rectangle{Min: Point{X: 0, Y: oldSize.H}, Max: Point{X: oldSize.W, Y: newSize.H}}
			}
			next := al.arena.newNode()
			al.arena.get(last).next = next
			*al.arena.get(next) = node{
				kind:        kindFree,
				orientation: rootOrientation,
				rect:        rect,
				parent:      noneIndex,
				prev:        last,
				next:        noneIndex,
			}
			al.addFreeRect(next, rect.Size())
		}
	}

	if growsAcrossRoot {
		newRootOrientation := rootOrientation.flipped()

		var min Point
		if newRootOrientation == horizontal {
			min = Point{X: oldSize.W, Y: 0}
		} else {
			min = Point{X: 0, Y: oldSize.H}
		}
		rect := Rectangle{Min: min, Max: Point{X: newSize.W, Y: newSize.H}}

		oldRoot := al.root
		freeNode := al.arena.newNode()
		newRoot := al.arena.newNode()
		al.root = newRoot

		*al.arena.get(freeNode) = node{
			kind:        kindFree,
			orientation: newRootOrientation,
			rect:        rect,
			parent:      noneIndex,
			prev:        newRoot,
			next:        noneIndex,
		}
		*al.arena.get(newRoot) = node{
			kind:        kindContainer,
			orientation: newRootOrientation,
			parent:      noneIndex,
			prev:        noneIndex,
			next:        freeNode,
		}
		al.addFreeRect(freeNode, rect.Size())

		for iter := oldRoot; iter != noneIndex; {
			n := al.arena.get(iter)
			n.parent = newRoot
			iter = n.next
		}
	}
}
