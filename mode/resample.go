package mode

import (
	"image"

	"gocv.io/x/gocv"

	"thaitanloi365/go-face-censor/region"
)

const (
	pixelBlock  = 10
	mosaicBlock = 8
)

// blocky shrinks the area by block with the given interpolation and enlarges it back with nearest neighbor.
func blocky(block int, shrink gocv.InterpolationFlags) func(area *image.NRGBA) *image.NRGBA {
	return func(area *image.NRGBA) *image.NRGBA {
		w, h := area.Bounds().Dx(), area.Bounds().Dy()

		return withMat(area, func(src gocv.Mat, dst *gocv.Mat) {
			small := gocv.NewMat()
			defer small.Close()

			gocv.Resize(src, &small, image.Pt(maxInt(1, w/block), maxInt(1, h/block)), 0, 0, shrink)
			gocv.Resize(small, dst, image.Pt(w, h), 0, 0, gocv.InterpolationNearestNeighbor)
		})
	}
}

// pixel samples two neighbors per axis when shrinking.
func pixel(img *image.NRGBA, box region.Box) *image.NRGBA {
	return replace(img, box, blocky(pixelBlock, gocv.InterpolationLinear))
}

// mosaic averages each block's area before enlarging.
func mosaic(img *image.NRGBA, box region.Box) *image.NRGBA {
	return replace(img, box, blocky(mosaicBlock, gocv.InterpolationArea))
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
