package facecensoring

import (
	"image"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"

	"thaitanloi365/go-face-censor/landmark"
	"thaitanloi365/go-face-censor/region"
)

// Mark draws the region boxes and the located landmark points onto a copy of img.
func Mark(img image.Image, topo landmark.Topology, set landmark.Set, boxes ...region.Box) *image.NRGBA {
	dc := gg.NewContextForImage(img)
	w, h := float64(img.Bounds().Dx()), float64(img.Bounds().Dy())

	dc.SetLineWidth(2)
	dc.SetRGB(1, 0, 0)

	for _, b := range boxes {
		if b.Empty() {
			continue
		}

		dc.DrawRectangle(float64(b.X1), float64(b.Y1), float64(b.Dx()), float64(b.Dy()))
		dc.Stroke()
	}

	dc.SetRGB(0, 1, 0)

	for _, indices := range [][]int{topo.Eyes(), topo.Lips} {
		for _, idx := range indices {
			if idx >= len(set) || !set[idx].Located() {
				continue
			}

			dc.DrawCircle(set[idx].X*w, set[idx].Y*h, 2)
			dc.Fill()
		}
	}

	return imaging.Clone(dc.Image())
}
