package mode

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"

	"thaitanloi365/go-face-censor/region"
)

// clip converts the box to image coordinates and intersects it with the image bounds.
func clip(img *image.NRGBA, box region.Box) image.Rectangle {
	if box.Empty() {
		return image.Rectangle{}
	}

	b := img.Bounds()

	return box.Rectangle().Add(b.Min).Intersect(b)
}

// replace crops the box, transforms the crop and pastes it back onto a copy of img.
func replace(img *image.NRGBA, box region.Box, fn func(area *image.NRGBA) *image.NRGBA) *image.NRGBA {
	r := clip(img, box)

	if r.Empty() {
		return imaging.Clone(img)
	}

	return imaging.Paste(img, fn(imaging.Crop(img, r)), r.Min)
}

// adjust applies a per-pixel color function inside the box.
func adjust(img *image.NRGBA, box region.Box, fn func(c color.NRGBA) color.NRGBA) *image.NRGBA {
	return replace(img, box, func(area *image.NRGBA) *image.NRGBA {
		return imaging.AdjustFunc(area, fn)
	})
}

func black(img *image.NRGBA, box region.Box) *image.NRGBA {
	return adjust(img, box, func(c color.NRGBA) color.NRGBA {
		return color.NRGBA{R: 0, G: 0, B: 0, A: c.A}
	})
}

func white(img *image.NRGBA, box region.Box) *image.NRGBA {
	return adjust(img, box, func(c color.NRGBA) color.NRGBA {
		return color.NRGBA{R: 255, G: 255, B: 255, A: c.A}
	})
}

func invert(img *image.NRGBA, box region.Box) *image.NRGBA {
	return replace(img, box, func(area *image.NRGBA) *image.NRGBA {
		return imaging.Invert(area)
	})
}
