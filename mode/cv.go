package mode

import (
	"image"

	"github.com/disintegration/imaging"
	"gocv.io/x/gocv"
)

// withMat runs fn on an OpenCV copy of area and converts the result back.
// The area is returned unchanged when either conversion fails.
func withMat(area *image.NRGBA, fn func(src gocv.Mat, dst *gocv.Mat)) *image.NRGBA {
	src, err := gocv.ImageToMatRGBA(area)
	if err != nil {
		return area
	}
	defer src.Close()

	dst := gocv.NewMat()
	defer dst.Close()

	fn(src, &dst)

	img, err := dst.ToImage()
	if err != nil {
		return area
	}

	return imaging.Clone(img)
}
