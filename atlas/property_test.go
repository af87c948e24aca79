// Copyright 2026 The Atlaspack Authors. All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package atlas

import "testing"

// lcg is a minimal deterministic pseudo-random source so the churn
// test below is reproducible without depending on math/rand's
// version-specific sequence.
type lcg struct{ state uint64 }

func (g *lcg) next() uint64 {
	g.state = g.state*6364136223846793005 + 1442695040888963407
	return g.state
}

func (g *lcg) intn(n int) int {
	return int(g.next() % uint64(n))
}

// checkInvariants walks every live node in al's arena and asserts the
// coverage, non-overlap and containment properties, plus the
// canonical-form rules that every container has at least two children
// and differs in orientation from its parent, that must hold after any
// sequence of operations. Consecutive Free siblings are not checked.
func checkInvariants(t *testing.T, al *AtlasAllocator) {
	t.Helper()

	atlasRect := Rectangle{Max: Point{X: al.size.W, Y: al.size.H}}
	var leaves []Rectangle

	for i := nodeIndex(0); int32(i) < al.arena.count; i++ {
		n := al.arena.get(i)
		switch n.kind {
		case kindFree, kindAlloc:
			leaves = append(leaves, n.rect)
			if n.rect.Min.X < atlasRect.Min.X || n.rect.Min.Y < atlasRect.Min.Y ||
				n.rect.Max.X > atlasRect.Max.X || n.rect.Max.Y > atlasRect.Max.Y {
				t.Fatalf("leaf %+v escapes atlas bounds %+v", n.rect, atlasRect)
			}
		case kindContainer:
			children := al.countChildren(i)
			if children < 2 {
				t.Fatalf("container %d has fewer than two children (%d)", i, children)
			}
			if al.arena.get(i).parent != noneIndex {
				parentOrient := al.arena.get(al.arena.get(i).parent).orientation
				if parentOrient == n.orientation {
					t.Fatalf("container %d shares orientation with its parent", i)
				}
			}
		}
	}

	var totalArea int64
	for i, a := range leaves {
		totalArea += a.Area()
		for j, b := range leaves {
			if i == j {
				continue
			}
			if overlapArea(a, b) > 0 {
				t.Fatalf("leaves overlap: %+v and %+v", a, b)
			}
		}
	}

	if totalArea != atlasRect.Area() {
		t.Fatalf("leaves cover %d of the atlas's %d area", totalArea, atlasRect.Area())
	}
}

// countChildren counts the nodes parented directly under container.
// Containers carry no down-link of their own (parent points up, not
// down), so finding a container's children means scanning the arena
// for nodes whose parent field names it, rather than following any
// field on the container itself.
func (al *AtlasAllocator) countChildren(container nodeIndex) int {
	children := 0
	for i := nodeIndex(0); int32(i) < al.arena.count; i++ {
		n := al.arena.get(i)
		if (n.kind == kindFree || n.kind == kindAlloc || n.kind == kindContainer) && n.parent == container {
			children++
		}
	}
	return children
}

func overlapArea(a, b Rectangle) int64 {
	minX := a.Min.X
	if b.Min.X > minX {
		minX = b.Min.X
	}
	minY := a.Min.Y
	if b.Min.Y > minY {
		minY = b.Min.Y
	}
	maxX := a.Max.X
	if b.Max.X < maxX {
		maxX = b.Max.X
	}
	maxY := a.Max.Y
	if b.Max.Y < maxY {
		maxY = b.Max.Y
	}
	w := maxX - minX
	h := maxY - minY
	if w <= 0 || h <= 0 {
		return 0
	}
	return int64(w) * int64(h)
}

func TestRandomChurnRestoresEmptyAtlas(t *testing.T) {
	const iterations = 20000
	al := New(Size{2048, 2048})
	rng := &lcg{state: 0xC0FFEE}

	live := map[AllocId]Size{}

	for i := 0; i < iterations; i++ {
		if len(live) > 0 && rng.intn(3) == 0 {
			var victim AllocId
			for id := range live {
				victim = id
				break
			}
			al.Deallocate(victim)
			delete(live, victim)
			continue
		}

		size := Size{W: int32(5 + rng.intn(300)), H: int32(5 + rng.intn(300))}
		a, ok := al.Allocate(size)
		if ok {
			live[a.Id] = a.Rectangle.Size()
		}

		if i%2000 == 0 {
			checkInvariants(t, al)
		}
	}

	for id := range live {
		al.Deallocate(id)
	}

	if !al.IsEmpty() {
		t.Fatal("expected atlas to be empty after deallocating every outstanding id")
	}
	if _, ok := al.Allocate(al.Size()); !ok {
		t.Fatal("expected the full atlas to be allocatable after the churn drains to empty")
	}
}
