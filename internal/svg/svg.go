// Copyright 2026 The Atlaspack Authors. All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

// Package svg renders an atlas' current free and allocated rectangles
// to SVG, the same way the original tool's dump_svg did: free
// rectangles in one fill, allocated rectangles in another.
package svg

import (
	"fmt"
	"io"

	"github.com/texatlas/atlaspack/atlas"
)

// Colors controls the fill used for each rectangle class.
type Colors struct {
	Free      string
	Allocated string
	Stroke    string
}

// DefaultColors mirrors the original tool's palette: pale rectangles
// for free space, a solid fill for allocations.
func DefaultColors() Colors {
	return Colors{Free: "rgb(70,70,180)", Allocated: "rgb(50,200,50)", Stroke: "black"}
}

// Write renders al to w as a standalone SVG document scaled to fit
// within maxDimension on its longer side.
func Write(w io.Writer, al *atlas.AtlasAllocator, colors Colors, maxDimension float64) error {
	size := al.Size()
	scale := 1.0
	if size.W > 0 && size.H > 0 {
		longest := float64(size.W)
		if float64(size.H) > longest {
			longest = float64(size.H)
		}
		if longest > maxDimension {
			scale = maxDimension / longest
		}
	}

	if _, err := fmt.Fprintf(w, "<svg xmlns=\"http://www.w3.org/2000/svg\" width=\"%d\" height=\"%d\" viewBox=\"0 0 %d %d\">\n",
		int(float64(size.W)*scale), int(float64(size.H)*scale), size.W, size.H); err != nil {
		return err
	}

	var writeErr error
	emit := func(rect atlas.Rectangle, fill string) {
		if writeErr != nil {
			return
		}
		sz := rect.Size()
		_, writeErr = fmt.Fprintf(w,
			"  <rect x=\"%d\" y=\"%d\" width=\"%d\" height=\"%d\" fill=\"%s\" stroke=\"%s\" stroke-width=\"1\"/>\n",
			rect.Min.X, rect.Min.Y, sz.W, sz.H, fill, colors.Stroke)
	}

	al.ForEachFreeRectangle(func(rect atlas.Rectangle) { emit(rect, colors.Free) })
	al.ForEachAllocatedRectangle(func(_ atlas.AllocId, rect atlas.Rectangle) { emit(rect, colors.Allocated) })

	if writeErr != nil {
		return writeErr
	}
	_, err := fmt.Fprintln(w, "</svg>")
	return err
}
