/*
Package mode holds the catalog of region obfuscation transforms.

Every transform is a pure function of an image and a box: it returns a new image
that differs from its input only inside the box, and equals the input when the box
is empty. The catalog is closed and read-only; unknown names resolve to Blur.
*/
package mode

import (
	"image"
	"strings"

	"thaitanloi365/go-face-censor/region"
)

// Name identifies a transform.
type Name string

const (
	Blur       Name = "blur"
	Black      Name = "black"
	Pixel      Name = "pixel"
	Mosaic     Name = "mosaic"
	White      Name = "white"
	Noise      Name = "noise"
	Invert     Name = "invert"
	StrongBlur Name = "strong_blur"
	LightBlur  Name = "light_blur"
)

// Default is used for empty or unknown names.
const Default = Blur

// Func transforms the pixels of img inside box and returns the result as a new image.
type Func func(img *image.NRGBA, box region.Box) *image.NRGBA

// Table maps mode names to transforms.
type Table map[Name]Func

var names = []Name{Blur, Black, Pixel, Mosaic, White, Noise, Invert, StrongBlur, LightBlur}

var catalog = Table{
	Blur:       blur,
	Black:      black,
	Pixel:      pixel,
	Mosaic:     mosaic,
	White:      white,
	Noise:      NoiseFrom(nil),
	Invert:     invert,
	StrongBlur: strongBlur,
	LightBlur:  lightBlur,
}

// Names returns all mode names in catalog order.
func Names() []Name {
	return append([]Name(nil), names...)
}

// Strings returns all mode names as strings.
func Strings() []string {
	result := make([]string, len(names))

	for i, n := range names {
		result[i] = string(n)
	}

	return result
}

// Catalog returns a copy of the built-in table that callers may modify.
func Catalog() Table {
	t := make(Table, len(catalog))

	for n, f := range catalog {
		t[n] = f
	}

	return t
}

// Parse returns the normalized name and whether it is part of the catalog.
func Parse(s string) (Name, bool) {
	n := Name(strings.ToLower(s))

	if _, ok := catalog[n]; !ok {
		return Default, false
	}

	return n, true
}

// Lookup resolves a name against the built-in catalog.
func Lookup(s string) (Name, Func) {
	return catalog.Lookup(s)
}

// Lookup resolves a name case-insensitively, falling back to Blur.
func (t Table) Lookup(s string) (Name, Func) {
	n := Name(strings.ToLower(s))

	if f, ok := t[n]; ok && f != nil {
		return n, f
	}

	if f, ok := t[Default]; ok && f != nil {
		return Default, f
	}

	return Default, catalog[Default]
}
