// Copyright 2026 The Atlaspack Authors. All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package atlas

// guillotineSplit carves a requested w x h rectangle out of the
// top-left corner of chosen and returns the two leftover strips. The
// two candidates are the area to the right of the placed rectangle
// (placed height) and the area below it (placed width). If the right
// candidate has the larger area, it is extended down to chosen's
// bottom edge as split and the bottom candidate is leftover;
// otherwise the bottom candidate is extended to chosen's right edge
// as split and the right candidate is leftover. When w and h exactly match
// chosen's size, both strips are empty and defaultOrientation is
// returned unchanged.
//
// This is the "worst-fit-longest-axis" guillotine cut: keeping the
// larger leftover as one long strip instead of two balanced ones
// favors fewer, larger free rectangles over time.
func guillotineSplit(chosen Rectangle, w, h int32, defaultOrientation orientation) (split, leftover Rectangle, splitOrientation orientation) {
	chosenSize := chosen.Size()
	if w == chosenSize.W && h == chosenSize.H {
		return Rectangle{}, Rectangle{}, defaultOrientation
	}

	candidateRight := Rectangle{
		Min: Point{X: chosen.Min.X + w, Y: chosen.Min.Y},
		Max: Point{X: chosen.Max.X, Y: chosen.Min.Y + h},
	}
	candidateBottom := Rectangle{
		Min: Point{X: chosen.Min.X, Y: chosen.Min.Y + h},
		Max: Point{X: chosen.Min.X + w, Y: chosen.Max.Y},
	}

	if candidateRight.Area() > candidateBottom.Area() {
		leftover = candidateBottom
		split = Rectangle{
			Min: candidateRight.Min,
			Max: Point{X: candidateRight.Max.X, Y: chosen.Max.Y},
		}
		splitOrientation = horizontal
		return split, leftover, splitOrientation
	}

	leftover = candidateRight
	split = Rectangle{
		Min: candidateBottom.Min,
		Max: Point{X: chosen.Max.X, Y: candidateBottom.Max.Y},
	}
	splitOrientation = vertical
	return split, leftover, splitOrientation
}
