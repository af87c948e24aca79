// Copyright 2026 The Atlaspack Authors. All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package atlas

// kind discriminates what a subdivision tree node currently represents.
type kind uint8

const (
	// kindUnused marks a slot sitting on the arena's freelist. Its
	// next field threads the list; every other field is stale and must
	// not be read.
	kindUnused kind = iota
	kindFree
	kindAlloc
	kindContainer
)

// nodeIndex addresses a slot in an arena. The arena packs indices into
// the low 24 bits of an AllocId, so a single arena never holds more
// than 1<<24 live slots.
type nodeIndex uint32

const noneIndex nodeIndex = 0xFFFFFFFF

// node is one slot of the subdivision tree. Free and Alloc nodes are
// leaves; Container nodes exist only to own a chain of children and
// carry no rectangle of their own. Siblings are linked through prev
// and next so that a node can be spliced out of, or merged into, its
// chain in constant time.
type node struct {
	kind        kind
	orientation orientation
	rect        Rectangle
	parent      nodeIndex
	prev        nodeIndex
	next        nodeIndex
}

func (n *node) isFree() bool {
	return n.kind == kindFree
}
