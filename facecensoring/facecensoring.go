package facecensoring

import (
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	pigo "github.com/esimov/pigo/core"

	"thaitanloi365/go-face-censor/censor"
	"thaitanloi365/go-face-censor/landmark"
)

// ErrCascadeMissing is returned by New when a required cascade path is empty.
var ErrCascadeMissing = errors.New("cascade file not configured")

// FaceCensoring detects the first face of an image and censors its eyes and mouth.
type FaceCensoring struct {
	fd       *Config
	detector landmark.Detector
	pipeline *censor.Pipeline
}

// New init
func New(config *Config) (*FaceCensoring, error) {
	var instance = &FaceCensoring{
		fd: config,
	}

	if instance.fd == nil {
		instance.fd = &Config{}
	}

	instance.fd.applyDefaults()

	for _, c := range []struct{ name, path string }{
		{"face", instance.fd.CascadeFile},
		{"puploc", instance.fd.Puploc},
		{"flploc", instance.fd.Flploc},
	} {
		if c.path == "" {
			return nil, fmt.Errorf("%s %w", c.name, ErrCascadeMissing)
		}
	}

	cascadeFile, err := os.ReadFile(instance.fd.CascadeFile)
	if err != nil {
		return nil, fmt.Errorf("can not open cascade file %s: %w", instance.fd.CascadeFile, err)
	}

	var p = pigo.NewPigo()
	// Unpack the binary file. This will return the number of cascade trees,
	// the tree depth, the threshold and the prediction from tree's leaf nodes.
	classifier, err := p.Unpack(cascadeFile)
	if err != nil {
		return nil, fmt.Errorf("unpack cascade file: %w", err)
	}

	pl := pigo.NewPuplocCascade()
	cascade, err := os.ReadFile(instance.fd.Puploc)
	if err != nil {
		return nil, fmt.Errorf("can not open puploc file %s: %w", instance.fd.Puploc, err)
	}

	plc, err := pl.UnpackCascade(cascade)
	if err != nil {
		return nil, fmt.Errorf("unpack puploc file: %w", err)
	}

	flpcs, err := pl.ReadCascadeDir(instance.fd.Flploc)
	if err != nil {
		return nil, fmt.Errorf("read flploc dir %s: %w", instance.fd.Flploc, err)
	}

	instance.detector = &pigoDetector{
		fd:         instance.fd,
		classifier: classifier,
		plc:        plc,
		flpcs:      flpcs,
	}
	instance.pipeline = censor.New(
		censor.WithTopology(landmark.Pigo),
		censor.WithPadding(instance.fd.Padding),
	)

	log.Debugf("censor: loaded %d landmark cascades from %s", len(flpcs), filepath.Base(instance.fd.Flploc))

	return instance, nil
}

// CensorImage detects landmarks and censors a copy of img with the named mode.
func (f *FaceCensoring) CensorImage(img image.Image, modeName string) (censor.Result, error) {
	set, err := f.detector.Detect(img)
	if err != nil {
		return censor.Result{}, err
	}

	res, err := f.pipeline.Run(img, set, modeName)
	if err != nil {
		return res, err
	}

	log.Debugf("censor: %s eyes %s mouth %s", res.Mode, res.Eyes, res.Mouth)

	if f.fd.MarkRegions {
		res.Image = Mark(res.Image, landmark.Pigo, set, res.Eyes, res.Mouth)
	}

	return res, nil
}

// CensorFaces censors the face in source and encodes the result to dst.
func (f *FaceCensoring) CensorFaces(source string, dst io.Writer, modeName string) error {
	img, err := f.censorSource(source, modeName)
	if err != nil {
		return err
	}

	return encodeImage(dst, img)
}

// censorSource decodes source and censors it.
func (f *FaceCensoring) censorSource(source, modeName string) (*image.NRGBA, error) {
	if !IsImage(source) {
		return nil, fmt.Errorf("%s: %w", filepath.Base(source), ErrUnsupportedFormat)
	}

	src, err := openImage(source)
	if err != nil {
		return nil, err
	}

	res, err := f.CensorImage(src, modeName)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(source), err)
	}

	return res.Image, nil
}

// openImage decodes a file and applies its EXIF orientation.
func openImage(source string) (image.Image, error) {
	img, err := imaging.Open(source, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(source), err)
	}

	return img, nil
}
