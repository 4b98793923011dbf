package landmark

import (
	"errors"
	"image"
	"math"
)

// ErrNoFace is returned by a Detector when the image contains no face.
var ErrNoFace = errors.New("no face detected")

// Point is a facial keypoint normalized to the image width and height.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Missing is a point the detector could not locate.
var Missing = Point{X: math.NaN(), Y: math.NaN()}

// Located reports whether the point carries usable coordinates.
func (p Point) Located() bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y)
}

// Set is the ordered point vector produced for a single face.
type Set []Point

// Detector finds the landmarks of the first face in an image.
type Detector interface {
	Detect(img image.Image) (Set, error)
}
