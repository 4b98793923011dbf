package facecensoring

import (
	"image"

	"github.com/disintegration/imaging"
	pigo "github.com/esimov/pigo/core"

	"thaitanloi365/go-face-censor/landmark"
)

// pigoDetector locates faces, pupils and flploc landmark points with pigo cascades.
// The cascades are read-only after loading and shared by all workers.
type pigoDetector struct {
	fd         *Config
	classifier *pigo.Pigo
	plc        *pigo.PuplocCascade
	flpcs      map[string][]*pigo.FlpCascade
}

var _ landmark.Detector = (*pigoDetector)(nil)

// Detect returns the landmarks of the most confident face in the pigo point layout.
func (f *pigoDetector) Detect(img image.Image) (landmark.Set, error) {
	src := imaging.Clone(img)
	cols, rows := src.Bounds().Dx(), src.Bounds().Dy()

	if cols == 0 || rows == 0 {
		return nil, landmark.ErrNoFace
	}

	var imgParams = pigo.ImageParams{
		Pixels: pigo.RgbToGrayscale(src),
		Rows:   rows,
		Cols:   cols,
		Dim:    cols,
	}

	face, ok := f.detectFace(imgParams)
	if !ok {
		return nil, landmark.ErrNoFace
	}

	return f.landmarks(face, imgParams), nil
}

// detectFace runs the face cascade and keeps the detection with the highest score.
func (f *pigoDetector) detectFace(imgParams pigo.ImageParams) (pigo.Detection, bool) {
	cParams := pigo.CascadeParams{
		MinSize:     f.fd.MinSize,
		MaxSize:     f.fd.MaxSize,
		ShiftFactor: f.fd.ShiftFactor,
		ScaleFactor: f.fd.ScaleFactor,
		ImageParams: imgParams,
	}

	// Run the classifier over the obtained leaf nodes and return the detection results.
	// The result contains quadruplets representing the row, column, scale and detection score.
	faces := f.classifier.RunCascade(cParams, f.fd.Angle)

	// Calculate the intersection over union (IoU) of two clusters.
	faces = f.classifier.ClusterDetections(faces, f.fd.IouThreshold)

	return bestFace(faces, f.fd.MinQuality)
}

// bestFace returns the detection with the highest score at or above minQuality.
func bestFace(faces []pigo.Detection, minQuality float32) (pigo.Detection, bool) {
	var best pigo.Detection
	found := false

	for _, face := range faces {
		if face.Q < minQuality {
			continue
		}

		if !found || face.Q > best.Q {
			best = face
			found = true
		}
	}

	if found && len(faces) > 1 {
		log.Debugf("censor: %d faces found, using the one with score %.1f", len(faces), best.Q)
	}

	return best, found
}

// landmarks locates pupils and flploc points for one face and normalizes them.
func (f *pigoDetector) landmarks(face pigo.Detection, imgParams pigo.ImageParams) landmark.Set {
	set := make(landmark.Set, landmark.PigoPoints)
	for i := range set {
		set[i] = landmark.Missing
	}

	scale := float32(face.Scale)

	leftEye := f.plc.RunDetector(pigo.Puploc{
		Row:      face.Row - int(0.075*scale),
		Col:      face.Col - int(0.175*scale),
		Scale:    scale * 0.25,
		Perturbs: f.fd.Perturbs,
	}, imgParams, f.fd.Angle, false)

	rightEye := f.plc.RunDetector(pigo.Puploc{
		Row:      face.Row - int(0.075*scale),
		Col:      face.Col + int(0.185*scale),
		Scale:    scale * 0.25,
		Perturbs: f.fd.Perturbs,
	}, imgParams, f.fd.Angle, false)

	set[landmark.PigoLeftPupil] = normalize(leftEye, imgParams)
	set[landmark.PigoRightPupil] = normalize(rightEye, imgParams)

	// Landmark points are placed relative to both pupils.
	if !set[landmark.PigoLeftPupil].Located() || !set[landmark.PigoRightPupil].Located() {
		return set
	}

	point := func(name string, flipV bool) landmark.Point {
		return f.landmarkPoint(name, leftEye, rightEye, imgParams, flipV)
	}

	for i, name := range landmark.PigoEyeCascades() {
		set[landmark.PigoLeftEye+i] = point(name, false)
		set[landmark.PigoRightEye+i] = point(name, true)
	}

	for i, name := range landmark.PigoMouthCascades() {
		set[landmark.PigoMouth+i] = point(name, false)
	}

	set[landmark.PigoMouthFlip] = point(landmark.PigoMouthFlipCascade, true)

	return set
}

// landmarkPoint runs the first flploc cascade registered under name.
func (f *pigoDetector) landmarkPoint(name string, leftEye, rightEye *pigo.Puploc, imgParams pigo.ImageParams, flipV bool) landmark.Point {
	cascades := f.flpcs[name]

	// pigo keeps unpack failures inside the cascade and leaves it without a tree.
	if len(cascades) == 0 || cascades[0] == nil || cascades[0].PuplocCascade == nil {
		return landmark.Missing
	}

	return normalize(cascades[0].GetLandmarkPoint(leftEye, rightEye, imgParams, f.fd.Perturbs, flipV), imgParams)
}

// normalize scales a pigo location to the image size. Unlocated results become landmark.Missing.
func normalize(pl *pigo.Puploc, imgParams pigo.ImageParams) landmark.Point {
	if pl == nil || pl.Row <= 0 || pl.Col <= 0 {
		return landmark.Missing
	}

	return landmark.Point{
		X: float64(pl.Col) / float64(imgParams.Cols),
		Y: float64(pl.Row) / float64(imgParams.Rows),
	}
}
