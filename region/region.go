/*
Package region turns landmark points into padded pixel boxes.

Points are scaled from normalized to pixel coordinates, the tight bounding box is
grown by a fraction of its own extent on every side and clamped to the image.
Indices outside the landmark set and points the detector could not locate are
skipped, so a set from a different model version yields a smaller or empty box
instead of an error.
*/
package region

import (
	"math"

	"thaitanloi365/go-face-censor/landmark"
)

// DefaultPadding grows a region by 12% of its extent on every side.
const DefaultPadding = 0.12

// Compute returns the padded box around the points at indices.
func Compute(set landmark.Set, indices []int, height, width int, padding float64) Box {
	w, h := float64(width), float64(height)

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	found := 0

	for _, idx := range indices {
		if idx < 0 || idx >= len(set) || !set[idx].Located() {
			continue
		}

		x, y := set[idx].X*w, set[idx].Y*h

		minX, maxX = math.Min(minX, x), math.Max(maxX, x)
		minY, maxY = math.Min(minY, y), math.Max(maxY, y)
		found++
	}

	if found == 0 {
		return Box{}
	}

	cx, cy := (minX+maxX)/2, (minY+maxY)/2
	hw := (maxX - minX) * (0.5 + padding)
	hh := (maxY - minY) * (0.5 + padding)

	return Box{
		X1: int(math.Max(0, cx-hw)),
		Y1: int(math.Max(0, cy-hh)),
		X2: int(math.Min(w, cx+hw)),
		Y2: int(math.Min(h, cy+hh)),
	}
}

// Eyes returns one box spanning both eyes.
func Eyes(set landmark.Set, topo landmark.Topology, height, width int) Box {
	return Compute(set, topo.Eyes(), height, width, DefaultPadding)
}

// Mouth returns the box around the lips.
func Mouth(set landmark.Set, topo landmark.Topology, height, width int) Box {
	return Compute(set, topo.Lips, height, width, DefaultPadding)
}
