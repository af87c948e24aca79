// Copyright 2026 The Atlaspack Authors. All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package atlas

// bucketIndex selects one of the three free-list buckets a free
// rectangle is filed under, by the larger of its two dimensions.
type bucketIndex int

const (
	smallBucket bucketIndex = iota
	mediumBucket
	largeBucket
	numBuckets
)

// freeList indexes every Free node in the subdivision tree by size
// bucket so that Allocate does not have to walk the whole tree looking
// for a candidate. Entries are not proactively removed when their node
// stops being Free (on allocation or coalescing); instead a scan lazily
// evicts stale entries it encounters via swap-remove, which is why
// iteration order within a bucket is not stable.
type freeList struct {
	buckets [numBuckets][]nodeIndex
}

func (f *freeList) push(b bucketIndex, idx nodeIndex) {
	f.buckets[b] = append(f.buckets[b], idx)
}

func (f *freeList) clear() {
	for i := range f.buckets {
		f.buckets[i] = f.buckets[i][:0]
	}
}

func min32(a, b int32) int32 {
	if a < b {
		return a
	}
	return b
}
