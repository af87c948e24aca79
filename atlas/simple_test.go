// Copyright 2026 The Atlaspack Authors. All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package atlas

import "testing"

func TestSimpleAllocatorPacksAndGrows(t *testing.T) {
	s := NewSimpleAtlasAllocator(Size{100, 100})

	r1, ok := s.Allocate(Size{60, 100})
	if !ok {
		t.Fatal("expected (60,100) to fit")
	}
	if r1.Min != (Point{0, 0}) {
		t.Fatalf("expected first allocation at origin, got %+v", r1)
	}

	if _, ok := s.Allocate(Size{60, 100}); ok {
		t.Fatal("expected a second (60,100) to fail: only 40 units of width remain")
	}

	s.Grow(Size{200, 100})
	if got := s.Size(); got != (Size{200, 100}) {
		t.Fatalf("expected size (200,100) after grow, got %+v", got)
	}

	if _, ok := s.Allocate(Size{60, 100}); !ok {
		t.Fatal("expected (60,100) to fit after growing the canvas")
	}
}

func TestSimpleAllocatorReturnsPlacedRectangle(t *testing.T) {
	// Regression test: an earlier revision of the allocator it packs
	// computed the placed rectangle but unconditionally reported
	// failure. Every successful call must return the placed rectangle.
	s := NewSimpleAtlasAllocator(Size{50, 50})
	r, ok := s.Allocate(Size{50, 50})
	if !ok {
		t.Fatal("expected full-canvas allocation to succeed")
	}
	if r.Size() != (Size{50, 50}) {
		t.Fatalf("expected the placed rectangle to be returned, got %+v", r)
	}
}

func TestSimpleAllocatorRejectsShrink(t *testing.T) {
	s := NewSimpleAtlasAllocator(Size{100, 100})
	defer func() {
		if recover() == nil {
			t.Fatal("expected Grow to panic on a smaller size")
		}
	}()
	s.Grow(Size{50, 100})
}

func TestInitFromAllocator(t *testing.T) {
	al := New(Size{200, 200})
	if _, ok := al.Allocate(Size{50, 50}); !ok {
		t.Fatal("setup allocation failed")
	}

	s := InitFromAllocator(al)
	if got := s.Size(); got != al.Size() {
		t.Fatalf("expected matching size, got %+v want %+v", got, al.Size())
	}
	if _, ok := s.Allocate(Size{200, 100}); !ok {
		t.Fatal("expected the remaining free area to be allocatable from the derived simple allocator")
	}
}
