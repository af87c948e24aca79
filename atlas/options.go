// Copyright 2026 The Atlaspack Authors. All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package atlas

// Alignment is the rounding grid applied to every requested size
// before it is placed. Both axes default to 1, which disables
// rounding.
type Alignment struct {
	X, Y int32
}

// Options configures the behavior of an AtlasAllocator or
// SimpleAtlasAllocator.
//
// SmallSizeThreshold and LargeSizeThreshold partition the free-list
// index into three buckets (small, medium, large): a rectangle is
// bucketed large if either dimension reaches LargeSizeThreshold,
// medium if either dimension reaches SmallSizeThreshold, else small.
// They bound the cost of a free-rectangle scan, and the bucket of a
// request also selects its fit policy (best-fit for small requests,
// worst-fit otherwise), so they affect where a rectangle is placed.
type Options struct {
	Alignment          Alignment
	SmallSizeThreshold int32
	LargeSizeThreshold int32
}

// DefaultOptions returns the options used by New when no explicit
// Options value is supplied: no rounding, a small/medium boundary at
// 32 units and a medium/large boundary at 256 units.
func DefaultOptions() Options {
	return Options{
		Alignment:          Alignment{X: 1, Y: 1},
		SmallSizeThreshold: 32,
		LargeSizeThreshold: 256,
	}
}

// WithSnapSize returns a copy of o with both alignment axes set to n.
// It is a convenience constructor for callers that only need uniform,
// single-axis rounding.
func (o Options) WithSnapSize(n int32) Options {
	o.Alignment = Alignment{X: n, Y: n}
	return o
}

func (o Options) validate() {
	if o.Alignment.X < 1 || o.Alignment.Y < 1 {
		fatalf(ErrInvalidOptions, "alignment axes must be >= 1, got %+v", o.Alignment)
	}
	if o.SmallSizeThreshold <= 0 || o.LargeSizeThreshold <= 0 {
		fatalf(ErrInvalidOptions, "size thresholds must be positive, got small=%d large=%d", o.SmallSizeThreshold, o.LargeSizeThreshold)
	}
	if o.SmallSizeThreshold > o.LargeSizeThreshold {
		fatalf(ErrInvalidOptions, "small threshold (%d) must not exceed large threshold (%d)", o.SmallSizeThreshold, o.LargeSizeThreshold)
	}
}

func validateSize(s Size) {
	if s.W <= 0 || s.H <= 0 {
		fatalf(ErrInvalidOptions, "atlas size must be positive, got %+v", s)
	}
}

// adjustSize rounds v up to the next multiple of align. Unlike a
// nearest-multiple snap, this only ever grows v. A non-positive align
// is treated as 1 (no rounding). Negative v is returned unchanged,
// matching the two's-complement remainder semantics used throughout
// this package: rounding never turns a negative request positive, so
// the non-positive-dimension rejection in Allocate still fires.
func adjustSize(align, v int32) int32 {
	if align <= 0 {
		align = 1
	}
	rem := v % align
	if rem > 0 {
		v += align - rem
	}
	return v
}

func bucketForSize(o Options, w, h int32) bucketIndex {
	if w >= o.LargeSizeThreshold || h >= o.LargeSizeThreshold {
		return largeBucket
	}
	if w >= o.SmallSizeThreshold || h >= o.SmallSizeThreshold {
		return mediumBucket
	}
	return smallBucket
}
