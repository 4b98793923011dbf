package landmark

// Topology maps the regions of one landmark model to the indices of its point vector.
type Topology struct {
	Name     string
	LeftEye  []int
	RightEye []int
	Lips     []int
}

// Eyes returns the left and right eye indices as one sequence.
func (t Topology) Eyes() []int {
	result := make([]int, 0, len(t.LeftEye)+len(t.RightEye))
	result = append(result, t.LeftEye...)
	return append(result, t.RightEye...)
}

// FaceMesh is the 468 point face mesh layout.
var FaceMesh = Topology{
	Name: "facemesh",
	LeftEye: []int{
		33, 7, 163, 144, 145, 153, 154, 155, 133, 173, 157, 158, 159, 160, 161, 246,
	},
	RightEye: []int{
		362, 382, 381, 380, 374, 373, 390, 249, 263, 466, 388, 387, 386, 385, 384, 398,
	},
	Lips: []int{
		61, 146, 91, 181, 84, 17, 314, 405, 320, 307, 375, 321, 308, 324, 318, 13,
		82, 81, 80, 78, 95, 88, 178, 87, 14, 317, 402, 318, 324,
	},
}

// Pigo point layout. Pupils come first, followed by the eye cascades
// (unflipped for the left eye, mirrored for the right) and the mouth cascades.
const (
	PigoLeftPupil  = 0
	PigoRightPupil = 1
	PigoLeftEye    = 2
	PigoRightEye   = PigoLeftEye + len(pigoEyeCascades)
	PigoMouth      = PigoRightEye + len(pigoEyeCascades)
	PigoMouthFlip  = PigoMouth + len(pigoMouthCascades)
	PigoPoints     = PigoMouthFlip + 1
)

var (
	pigoEyeCascades   = [...]string{"lp46", "lp44", "lp42", "lp38", "lp312"}
	pigoMouthCascades = [...]string{"lp93", "lp84", "lp82", "lp81"}
)

// PigoEyeCascades returns the flploc cascade names used for eye points, in layout order.
func PigoEyeCascades() []string {
	return append([]string(nil), pigoEyeCascades[:]...)
}

// PigoMouthCascades returns the flploc cascade names used for mouth points, in layout order.
func PigoMouthCascades() []string {
	return append([]string(nil), pigoMouthCascades[:]...)
}

// PigoMouthFlipCascade is mirrored once more to close the mouth contour.
const PigoMouthFlipCascade = "lp84"

// Pigo is the sparse layout emitted by the pigo flploc detector.
var Pigo = Topology{
	Name:     "pigo",
	LeftEye:  span(PigoLeftPupil, PigoLeftEye, PigoRightEye),
	RightEye: span(PigoRightPupil, PigoRightEye, PigoMouth),
	Lips:     span(-1, PigoMouth, PigoPoints),
}

// span returns [from, to) prefixed by first when first is not negative.
func span(first, from, to int) []int {
	var result []int

	if first >= 0 {
		result = append(result, first)
	}

	for i := from; i < to; i++ {
		result = append(result, i)
	}

	return result
}

// Topologies lists the known layouts by name.
var Topologies = map[string]Topology{
	FaceMesh.Name: FaceMesh,
	Pigo.Name:     Pigo,
}
