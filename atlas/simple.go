// Copyright 2026 The Atlaspack Authors. All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package atlas

import "math"

// SimpleAtlasAllocator is a grow-only rectangle packer with the same
// free-list bucketing and guillotine split as AtlasAllocator, but no
// subdivision tree: it never coalesces, because it has no Deallocate.
// It is cheaper to run and to serialize when a use case only ever
// grows its packing (e.g. glyph atlases that are rebuilt wholesale on
// overflow rather than freed piecemeal).
type SimpleAtlasAllocator struct {
	freeRects [numBuckets][]Rectangle
	opts      Options
	size      Size
}

// NewSimpleAtlasAllocator creates a SimpleAtlasAllocator for a canvas
// of the given size, using DefaultOptions.
func NewSimpleAtlasAllocator(size Size) *SimpleAtlasAllocator {
	return NewSimpleAtlasAllocatorWithOptions(size, DefaultOptions())
}

// NewSimpleAtlasAllocatorWithOptions creates a SimpleAtlasAllocator
// with explicit Options.
func NewSimpleAtlasAllocatorWithOptions(size Size, opts Options) *SimpleAtlasAllocator {
	opts.validate()
	validateSize(size)
	s := &SimpleAtlasAllocator{}
	s.reinit(size, opts)
	return s
}

// InitFromAllocator seeds a fresh SimpleAtlasAllocator with the free
// rectangles currently held by al, discarding its tree structure. The
// result occupies the same canvas size and options as al but loses
// al's ability to deallocate individual rectangles; it is meant for
// callers that want to hand off a packing session to the cheaper
// grow-only representation once it is done shrinking.
func InitFromAllocator(al *AtlasAllocator) *SimpleAtlasAllocator {
	s := &SimpleAtlasAllocator{opts: al.opts, size: al.size}
	al.ForEachFreeRectangle(func(r Rectangle) {
		s.addFreeRect(r)
	})
	return s
}

func (s *SimpleAtlasAllocator) reinit(size Size, opts Options) {
	for i := range s.freeRects {
		s.freeRects[i] = s.freeRects[i][:0]
	}
	s.opts = opts
	s.size = size
	s.addFreeRect(Rectangle{Max: Point{X: size.W, Y: size.H}})
}

// Size returns the atlas' current size.
func (s *SimpleAtlasAllocator) Size() Size {
	return s.size
}

// Reset reinitializes the atlas to the given size and options,
// discarding every free rectangle it had accumulated.
func (s *SimpleAtlasAllocator) Reset(size Size, opts Options) {
	opts.validate()
	validateSize(size)
	s.reinit(size, opts)
}

func (s *SimpleAtlasAllocator) addFreeRect(r Rectangle) {
	sz := r.Size()
	if sz.W < s.opts.Alignment.X || sz.H < s.opts.Alignment.Y {
		return
	}
	b := bucketForSize(s.opts, sz.W, sz.H)
	s.freeRects[b] = append(s.freeRects[b], r)
}

// Allocate carves a w x h rectangle (rounded up to the configured
// alignment) out of the atlas' free space, the same way
// AtlasAllocator.Allocate does. It reports false if no free rectangle
// is large enough.
func (s *SimpleAtlasAllocator) Allocate(size Size) (Rectangle, bool) {
	w := adjustSize(s.opts.Alignment.X, size.W)
	h := adjustSize(s.opts.Alignment.Y, size.H)
	if w <= 0 || h <= 0 {
		return Rectangle{}, false
	}

	ideal := bucketForSize(s.opts, w, h)
	worstFit := ideal != smallBucket

	for b := ideal; b < numBuckets; b++ {
		list := s.freeRects[b]
		bestScore := int32(math.MaxInt32)
		if worstFit {
			bestScore = -1
		}
		bestPos := -1

		for i, r := range list {
			sz := r.Size()
			dx := sz.W - w
			dy := sz.H - h
			if dx < 0 || dy < 0 {
				continue
			}
			if dx == 0 || dy == 0 {
				bestPos = i
				break
			}
			score := min32(dx, dy)
			if (worstFit && score > bestScore) || (!worstFit && score < bestScore) {
				bestScore = score
				bestPos = i
			}
		}

		if bestPos < 0 {
			continue
		}

		chosen := list[bestPos]
		list[bestPos] = list[len(list)-1]
		s.freeRects[b] = list[:len(list)-1]

		allocated := Rectangle{Min: chosen.Min, Max: Point{X: chosen.Min.X + w, Y: chosen.Min.Y + h}}
		splitRect, leftoverRect, _ := guillotineSplit(chosen, w, h, vertical)
		s.addFreeRect(splitRect)
		s.addFreeRect(leftoverRect)
		return allocated, true
	}

	return Rectangle{}, false
}

// Grow extends the atlas to newSize. Unlike AtlasAllocator.Grow, this
// never needs to touch a tree: the area gained is carved out with the
// same guillotine split used by Allocate, treating the whole new
// canvas as the "chosen" rectangle and the old size as the portion
// already spoken for. It panics with ErrShrink if either dimension of
// newSize is smaller than the current size.
func (s *SimpleAtlasAllocator) Grow(newSize Size) {
	if newSize.W < s.size.W || newSize.H < s.size.H {
		fatalf(ErrShrink, "grow: new size %+v is smaller than current size %+v", newSize, s.size)
	}

	whole := Rectangle{Max: Point{X: newSize.W, Y: newSize.H}}
	splitRect, leftoverRect, _ := guillotineSplit(whole, s.size.W, s.size.H, vertical)
	s.size = newSize
	s.addFreeRect(splitRect)
	s.addFreeRect(leftoverRect)
}
