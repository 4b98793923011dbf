// Package censor obfuscates the eyes and mouth of one face given its landmarks.
package censor

import (
	"errors"
	"fmt"
	"image"

	"github.com/disintegration/imaging"

	"thaitanloi365/go-face-censor/landmark"
	"thaitanloi365/go-face-censor/mode"
	"thaitanloi365/go-face-censor/region"
)

// ErrEmptyImage is returned for images without pixels.
var ErrEmptyImage = errors.New("image has no pixels")

// Result is the censored copy together with the boxes that were derived for it.
type Result struct {
	Image *image.NRGBA
	Mode  mode.Name
	Eyes  region.Box
	Mouth region.Box
}

// Pipeline derives the eye and mouth boxes and applies one mode to both.
type Pipeline struct {
	topology landmark.Topology
	padding  float64
	modes    mode.Table
}

// Option configures a Pipeline.
type Option func(p *Pipeline)

// WithTopology selects the landmark layout the set is indexed by.
func WithTopology(t landmark.Topology) Option {
	return func(p *Pipeline) {
		p.topology = t
	}
}

// WithPadding overrides region.DefaultPadding.
func WithPadding(padding float64) Option {
	return func(p *Pipeline) {
		p.padding = padding
	}
}

// WithModes replaces the mode table, e.g. to seed the noise transform.
func WithModes(t mode.Table) Option {
	return func(p *Pipeline) {
		p.modes = t
	}
}

// New returns a pipeline for the face mesh layout with default padding.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		topology: landmark.FaceMesh,
		padding:  region.DefaultPadding,
		modes:    mode.Catalog(),
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

var std = New()

// Censor applies the named mode to the eyes and mouth of a face mesh landmark set.
// The input image is never modified.
func Censor(img image.Image, set landmark.Set, modeName string) (*image.NRGBA, error) {
	res, err := std.Run(img, set, modeName)

	if err != nil {
		return nil, err
	}

	return res.Image, nil
}

// Boxes returns the eye and mouth boxes for an image of the given size.
func (p *Pipeline) Boxes(set landmark.Set, height, width int) (eyes, mouth region.Box) {
	eyes = region.Compute(set, p.topology.Eyes(), height, width, p.padding)
	mouth = region.Compute(set, p.topology.Lips, height, width, p.padding)

	return eyes, mouth
}

// Run censors a copy of img. Eyes are processed first, so the mouth wins where the boxes overlap.
func (p *Pipeline) Run(img image.Image, set landmark.Set, modeName string) (Result, error) {
	if img == nil {
		return Result{}, ErrEmptyImage
	}

	b := img.Bounds()

	if b.Dx() <= 0 || b.Dy() <= 0 {
		return Result{}, fmt.Errorf("censor: %w (%dx%d)", ErrEmptyImage, b.Dx(), b.Dy())
	}

	res := Result{Image: imaging.Clone(img)}
	res.Eyes, res.Mouth = p.Boxes(set, b.Dy(), b.Dx())

	var fn mode.Func
	res.Mode, fn = p.modes.Lookup(modeName)

	for _, box := range []region.Box{res.Eyes, res.Mouth} {
		if box.Empty() {
			continue
		}

		res.Image = fn(res.Image, box)
	}

	return res, nil
}
