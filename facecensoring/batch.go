package facecensoring

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync/atomic"
	"time"

	"github.com/dustin/go-humanize/english"
	"github.com/karrick/godirwalk"
	"golang.org/x/sync/errgroup"
)

// ErrNoImages is returned when a directory contains no accepted image files.
var ErrNoImages = errors.New("no valid images found")

// Summary counts the outcome of a directory run.
type Summary struct {
	Processed int
	Failed    int
}

// ListImages returns the image files directly inside dir, sorted by name.
func ListImages(dir string) ([]string, error) {
	dirents, err := godirwalk.ReadDirents(dir, nil)
	if err != nil {
		return nil, err
	}

	var files []string

	for _, de := range dirents {
		if de.IsDir() || !IsImage(de.Name()) {
			continue
		}

		files = append(files, filepath.Join(dir, de.Name()))
	}

	sort.Strings(files)

	return files, nil
}

// CensorDir censors every image in inputDir into outputDir under the same file name.
// A failed file is logged and counted; the remaining files are still processed.
func (f *FaceCensoring) CensorDir(ctx context.Context, inputDir, outputDir, modeName string) (Summary, error) {
	start := time.Now()

	files, err := ListImages(inputDir)
	if err != nil {
		return Summary{}, err
	}

	if len(files) == 0 {
		return Summary{}, fmt.Errorf("%s: %w", inputDir, ErrNoImages)
	}

	if err := os.MkdirAll(outputDir, os.ModePerm); err != nil {
		return Summary{}, err
	}

	var processed, failed int64

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(f.fd.Workers)

	for _, fileName := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			target := filepath.Join(outputDir, filepath.Base(fileName))

			if err := f.CensorFile(fileName, target, modeName); err != nil {
				log.Warnf("censor: %s", err)
				atomic.AddInt64(&failed, 1)
				return nil
			}

			log.Infof("censor: processed %s", filepath.Base(fileName))
			atomic.AddInt64(&processed, 1)

			return nil
		})
	}

	err = g.Wait()

	s := Summary{Processed: int(processed), Failed: int(failed)}

	log.Infof("censor: processed %s, %d failed [%s]", english.Plural(s.Processed, "image", "images"), s.Failed, time.Since(start))

	return s, err
}
