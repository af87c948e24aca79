// Copyright 2026 The Atlaspack Authors. All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

// Package atlas implements a dynamic two-dimensional rectangle packer
// backed by a guillotine-partitioned binary tree. Rectangles are carved
// out of a fixed-size canvas and can be deallocated, grown, and
// rearranged without external bookkeeping: every allocation is
// identified by an opaque AllocId that remains valid until it is freed
// or the atlas is cleared, reset or rearranged.
package atlas

// Point is an integer coordinate in the atlas' space.
type Point struct {
	X, Y int32
}

// Size is a width/height pair.
type Size struct {
	W, H int32
}

// Area returns the area covered by the size, clamping negative
// dimensions to zero.
func (s Size) Area() int64 {
	w, h := s.W, s.H
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return int64(w) * int64(h)
}

// Rectangle is a closed-open axis-aligned box: it covers [Min, Max).
type Rectangle struct {
	Min, Max Point
}

// Size returns the width and height of the rectangle. The result is
// only meaningful when Max is componentwise greater than or equal to
// Min; degenerate rectangles are occasionally constructed as scratch
// values during splitting and are never surfaced to callers.
func (r Rectangle) Size() Size {
	return Size{W: r.Max.X - r.Min.X, H: r.Max.Y - r.Min.Y}
}

// Area returns the rectangle's area, clamping negative dimensions to
// zero the same way Size.Area does.
func (r Rectangle) Area() int64 {
	return r.Size().Area()
}

// orientation tags a subdivision tree node with the axis along which
// its sibling chain is laid out. A container's children always carry
// the opposite orientation of the container itself.
type orientation uint8

const (
	vertical orientation = iota
	horizontal
)

func (o orientation) flipped() orientation {
	if o == vertical {
		return horizontal
	}
	return vertical
}

// AllocId identifies a previously allocated rectangle. It packs a
// generation counter in the high byte and a node index in the low
// three bytes so that reuse of a freed slot can be detected: an id
// minted before a deallocate-then-reallocate cycle will not resolve to
// the new occupant of that slot.
type AllocId uint32

const (
	idIndexMask      = 0x00FFFFFF
	idGenerationMask = 0xFF000000
	idGenerationBits = 24
)

func packID(index uint32, generation uint8) AllocId {
	return AllocId(uint32(generation)<<idGenerationBits | (index & idIndexMask))
}

func (id AllocId) index() uint32 {
	return uint32(id) & idIndexMask
}

func (id AllocId) generation() uint8 {
	return uint8((uint32(id) & idGenerationMask) >> idGenerationBits)
}

// Allocation is the result of a successful Allocate call.
type Allocation struct {
	Id        AllocId
	Rectangle Rectangle
}

// Change describes how a single allocation was relocated by a
// rearrange or resize-and-rearrange pass.
type Change struct {
	OldId   AllocId
	OldRect Rectangle
	NewId   AllocId
	NewRect Rectangle
}

// Failure records an allocation that could not be replayed during a
// rearrange pass, typically because the atlas (or its new size) is too
// small to fit it.
type Failure struct {
	Id   AllocId
	Rect Rectangle
}

// ChangeList is returned by Rearrange and ResizeAndRearrange. Every id
// in Changes and Failures refers to an allocation that existed before
// the call; none of those ids remain valid afterward.
type ChangeList struct {
	Changes  []Change
	Failures []Failure
}
