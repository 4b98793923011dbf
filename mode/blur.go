package mode

import (
	"image"

	"gocv.io/x/gocv"

	"thaitanloi365/go-face-censor/region"
)

const (
	lightBlurKernel = 31
	lightBlurSigma  = 10
)

// BlurKernel returns the kernel size used by Blur for a box of w x h pixels.
func BlurKernel(w, h int) int {
	return kernelSize((w+h)/4, 51, 201)
}

// StrongBlurKernel returns the kernel size used by StrongBlur for a box of w x h pixels.
func StrongBlurKernel(w, h int) int {
	return kernelSize((w+h)/2, 101, 301)
}

// kernelSize clamps n to [lo, hi] and rounds even sizes up. Both bounds must be odd.
func kernelSize(n, lo, hi int) int {
	k := maxInt(lo, minInt(hi, n))

	if k%2 == 0 {
		k++
	}

	return k
}

func blur(img *image.NRGBA, box region.Box) *image.NRGBA {
	k := BlurKernel(box.Dx(), box.Dy())
	return gaussian(img, box, k, float64(k)/3.0)
}

func strongBlur(img *image.NRGBA, box region.Box) *image.NRGBA {
	k := StrongBlurKernel(box.Dx(), box.Dy())
	return gaussian(img, box, k, float64(k)/2.0)
}

func lightBlur(img *image.NRGBA, box region.Box) *image.NRGBA {
	return gaussian(img, box, lightBlurKernel, lightBlurSigma)
}

func gaussian(img *image.NRGBA, box region.Box, size int, sigma float64) *image.NRGBA {
	return replace(img, box, func(area *image.NRGBA) *image.NRGBA {
		return withMat(area, func(src gocv.Mat, dst *gocv.Mat) {
			// The crop is blurred in isolation, borders mirror the region's own edge pixels.
			gocv.GaussianBlur(src, dst, image.Pt(size, size), sigma, sigma, gocv.BorderReflect101)
		})
	})
}
