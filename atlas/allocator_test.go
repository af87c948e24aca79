// Copyright 2026 The Atlaspack Authors. All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package atlas

import "testing"

func TestAllocateFullCanvasThenFails(t *testing.T) {
	al := New(Size{W: 1000, H: 1000})

	a, ok := al.Allocate(Size{W: 1000, H: 1000})
	if !ok {
		t.Fatal("expected full-canvas allocation to succeed")
	}
	if a.Rectangle.Min != (Point{0, 0}) || a.Rectangle.Size() != (Size{1000, 1000}) {
		t.Fatalf("unexpected rectangle: %+v", a.Rectangle)
	}

	if _, ok := al.Allocate(Size{W: 1, H: 1}); ok {
		t.Fatal("expected second allocation to fail, atlas is full")
	}

	al.Deallocate(a.Id)
	if !al.IsEmpty() {
		t.Fatal("expected atlas to be empty after deallocating the only allocation")
	}
	if _, ok := al.Allocate(Size{W: 1000, H: 1000}); !ok {
		t.Fatal("expected re-allocation of the full canvas to succeed")
	}
}

func TestAllocateDeallocateSequence(t *testing.T) {
	al := New(Size{W: 1000, H: 1000})

	sizes := []Size{
		{100, 1000},
		{900, 200},
		{300, 200},
		{200, 300},
		{100, 300},
		{100, 300},
		{100, 300},
	}
	ids := make([]AllocId, len(sizes))
	for i, s := range sizes {
		a, ok := al.Allocate(s)
		if !ok {
			t.Fatalf("allocation %d of size %+v failed", i, s)
		}
		ids[i] = a.Id
	}

	for _, i := range []int{1, 5, 2, 4} {
		al.Deallocate(ids[i])
	}

	if _, ok := al.Allocate(Size{500, 200}); !ok {
		t.Fatal("expected (500,200) to fit after freeing rectangles 2,6,3,5")
	}

	al.Deallocate(ids[0])
	if _, ok := al.Allocate(Size{500, 200}); !ok {
		t.Fatal("expected a second (500,200) to fit after also freeing rectangle 1")
	}

	al.Clear()
	if _, ok := al.Allocate(Size{1000, 1000}); !ok {
		t.Fatal("expected the full canvas to fit after clearing")
	}
	if _, ok := al.Allocate(Size{1, 1}); ok {
		t.Fatal("expected (1,1) to fail once the canvas is fully allocated")
	}
}

func TestAllocateExtremeAspectRatios(t *testing.T) {
	al := New(Size{W: 65536, H: 65536})

	if _, ok := al.Allocate(Size{2, 2}); !ok {
		t.Fatal("expected (2,2) to fit")
	}
	if _, ok := al.Allocate(Size{65500, 2}); !ok {
		t.Fatal("expected (65500,2) to fit")
	}
	if _, ok := al.Allocate(Size{2, 65500}); !ok {
		t.Fatal("expected (2,65500) to fit")
	}
}

func TestAllocateAlignment(t *testing.T) {
	opts := DefaultOptions()
	opts.Alignment = Alignment{X: 5, Y: 2}
	al := WithOptions(Size{1000, 1000}, opts)

	a, ok := al.Allocate(Size{7, 3})
	if !ok {
		t.Fatal("expected (7,3) to fit")
	}
	if got := a.Rectangle.Size(); got != (Size{10, 4}) {
		t.Fatalf("expected rounded size (10,4), got %+v", got)
	}

	if _, ok := al.Allocate(Size{-1, 1}); ok {
		t.Fatal("expected negative-width request to fail")
	}
}

func TestGrowThenAllocate(t *testing.T) {
	al := New(Size{1000, 1000})
	al.Grow(Size{2000, 2000})

	if got := al.Size(); got != (Size{2000, 2000}) {
		t.Fatalf("expected size (2000,2000) after grow, got %+v", got)
	}
	if _, ok := al.Allocate(Size{2000, 2000}); !ok {
		t.Fatal("expected full grown canvas to fit")
	}
	if _, ok := al.Allocate(Size{1, 1}); ok {
		t.Fatal("expected (1,1) to fail once the grown canvas is full")
	}
}

func TestGrowPreservesExistingAllocations(t *testing.T) {
	al := New(Size{100, 100})
	a, ok := al.Allocate(Size{40, 100})
	if !ok {
		t.Fatal("setup allocation failed")
	}
	before := al.Rectangle(a.Id)

	al.Grow(Size{200, 150})

	after := al.Rectangle(a.Id)
	if before != after {
		t.Fatalf("expected allocation rectangle to survive grow unchanged: before=%+v after=%+v", before, after)
	}
}

func TestGrowRejectsShrink(t *testing.T) {
	al := New(Size{100, 100})
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected Grow to panic on a smaller size")
		}
		e, ok := r.(*Error)
		if !ok || e.Code != ErrShrink {
			t.Fatalf("expected ErrShrink, got %#v", r)
		}
	}()
	al.Grow(Size{50, 100})
}

func TestDeallocateInvalidIdPanics(t *testing.T) {
	al := New(Size{100, 100})
	a, _ := al.Allocate(Size{10, 10})
	al.Deallocate(a.Id)

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected Deallocate of a stale id to panic")
		}
		e, ok := r.(*Error)
		if !ok || e.Code != ErrInvalidAllocId {
			t.Fatalf("expected ErrInvalidAllocId, got %#v", r)
		}
	}()
	al.Deallocate(a.Id)
}

func TestRearrangeDefragments(t *testing.T) {
	al := New(Size{1000, 1000})

	var ids []AllocId
	for i := 0; i < 6; i++ {
		a, ok := al.Allocate(Size{100, 100})
		if !ok {
			t.Fatalf("setup allocation %d failed", i)
		}
		ids = append(ids, a.Id)
	}
	for _, i := range []int{0, 2, 4} {
		al.Deallocate(ids[i])
	}

	cl := al.Rearrange()
	if len(cl.Failures) != 0 {
		t.Fatalf("expected no failures rearranging a well-fitting set, got %+v", cl.Failures)
	}
	for _, c := range cl.Changes {
		if c.OldRect.Size() != c.NewRect.Size() {
			t.Fatalf("rearrange changed the size of an allocation: %+v", c)
		}
		al.Rectangle(c.NewId) // must not panic
	}
}

func TestResizeAndRearrangeReportsFailures(t *testing.T) {
	al := New(Size{100, 100})
	if _, ok := al.Allocate(Size{50, 100}); !ok {
		t.Fatal("setup allocation 1 failed")
	}
	if _, ok := al.Allocate(Size{50, 100}); !ok {
		t.Fatal("setup allocation 2 failed")
	}

	cl := al.ResizeAndRearrange(Size{50, 100})
	if len(cl.Failures) == 0 {
		t.Fatal("expected at least one failure shrinking to a size that cannot hold both allocations")
	}
	if len(cl.Changes) != 1 {
		t.Fatalf("expected exactly one surviving allocation, got %d", len(cl.Changes))
	}
}
