package facecensoring

import (
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"
)

// ErrUnsupportedFormat is returned for input files that are not images.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// Extensions lists the accepted input file extensions.
var Extensions = []string{".jpg", ".jpeg", ".png", ".bmp", ".webp", ".tiff", ".tif", ".gif"}

// IsImage reports whether the file name has an accepted image extension.
func IsImage(fileName string) bool {
	ext := strings.ToLower(filepath.Ext(fileName))

	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}

	return false
}

// OutputPath appends the input extension when output has none.
func OutputPath(input, output string) string {
	if filepath.Ext(output) != "" {
		return output
	}

	return output + filepath.Ext(input)
}

// outputFormat picks the encoder for a file name, JPEG when the extension has no encoder.
func outputFormat(fileName string) imaging.Format {
	format, err := imaging.FormatFromFilename(fileName)
	if err != nil {
		return imaging.JPEG
	}

	return format
}

func encodeImage(dst io.Writer, img image.Image) error {
	var format = imaging.JPEG

	switch d := dst.(type) {
	case *os.File:
		format = outputFormat(d.Name())
	}

	if err := imaging.Encode(dst, img, format, imaging.JPEGQuality(100)); err != nil {
		return fmt.Errorf("encode %s: %w", format, err)
	}

	return nil
}

// CensorFile censors source and writes the result to target.
// The target directory is only created once the image has been censored.
func (f *FaceCensoring) CensorFile(source, target, modeName string) (err error) {
	img, err := f.censorSource(source, modeName)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(target), os.ModePerm); err != nil {
		return err
	}

	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}

	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
	}()

	return encodeImage(out, img)
}
