package facecensoring

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	pigo "github.com/esimov/pigo/core"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"thaitanloi365/go-face-censor/censor"
	"thaitanloi365/go-face-censor/landmark"
	"thaitanloi365/go-face-censor/region"
)

func TestLoadConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		fileName := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(fileName, []byte("cascade: ./cascade/facefinder\nmode: mosaic\nworkers: 4\n"), 0644))

		c, err := LoadConfig(fileName)
		require.NoError(t, err)

		assert.Equal(t, "./cascade/facefinder", c.CascadeFile)
		assert.Equal(t, "mosaic", c.Mode)
		assert.Equal(t, 4, c.Workers)
		assert.Equal(t, 20, c.MinSize)
		assert.Equal(t, 1000, c.MaxSize)
		assert.Equal(t, 0.1, c.ShiftFactor)
		assert.Equal(t, 1.1, c.ScaleFactor)
		assert.Equal(t, 0.2, c.IouThreshold)
		assert.Equal(t, float32(5), c.MinQuality)
		assert.Equal(t, 63, c.Perturbs)
		assert.Equal(t, region.DefaultPadding, c.Padding)
		assert.False(t, c.MarkRegions)
	})
	t.Run("empty config", func(t *testing.T) {
		c := &Config{}
		c.applyDefaults()

		assert.Equal(t, "blur", c.Mode)
		assert.Equal(t, 1, c.Workers)
	})
	t.Run("missing file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})
	t.Run("invalid yaml", func(t *testing.T) {
		fileName := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(fileName, []byte("workers: [1, 2"), 0644))

		_, err := LoadConfig(fileName)
		assert.Error(t, err)
	})
}

func TestNew(t *testing.T) {
	t.Run("cascade not configured", func(t *testing.T) {
		_, err := New(nil)
		assert.True(t, errors.Is(err, ErrCascadeMissing))
	})
	t.Run("cascade file missing", func(t *testing.T) {
		dir := t.TempDir()

		_, err := New(&Config{
			CascadeFile: filepath.Join(dir, "facefinder"),
			Puploc:      filepath.Join(dir, "puploc"),
			Flploc:      dir,
		})
		assert.Error(t, err)
		assert.False(t, errors.Is(err, ErrCascadeMissing))
	})
}

func TestIsImage(t *testing.T) {
	for _, name := range []string{"a.jpg", "b.JPEG", "c.png", "d.bmp", "e.webp", "f.tiff", "g.TIF", "h.gif"} {
		assert.True(t, IsImage(name), name)
	}

	for _, name := range []string{"a.txt", "b", "c.jpg.bak", ".png/x"} {
		assert.False(t, IsImage(name), name)
	}
}

func TestOutputPath(t *testing.T) {
	assert.Equal(t, "out.png", OutputPath("in.jpg", "out.png"))
	assert.Equal(t, "out.jpg", OutputPath("in.jpg", "out"))
	assert.Equal(t, "dir/out.JPEG", OutputPath("photos/in.JPEG", "dir/out"))
	assert.Equal(t, "out", OutputPath("in", "out"))
}

func TestOutputFormat(t *testing.T) {
	assert.Equal(t, imaging.PNG, outputFormat("a.png"))
	assert.Equal(t, imaging.JPEG, outputFormat("a.jpeg"))
	assert.Equal(t, imaging.BMP, outputFormat("a.BMP"))
	assert.Equal(t, imaging.JPEG, outputFormat("a.webp"))
	assert.Equal(t, imaging.JPEG, outputFormat("a"))
}

func TestEncodeImage(t *testing.T) {
	img := imaging.New(16, 8, color.NRGBA{R: 200, A: 255})

	t.Run("writer", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, encodeImage(&buf, img))

		_, format, err := image.Decode(&buf)
		require.NoError(t, err)
		assert.Equal(t, "jpeg", format)
	})
	t.Run("file extension", func(t *testing.T) {
		fileName := filepath.Join(t.TempDir(), "out.png")
		out, err := os.Create(fileName)
		require.NoError(t, err)

		require.NoError(t, encodeImage(out, img))
		require.NoError(t, out.Close())

		decoded, err := imaging.Open(fileName)
		require.NoError(t, err)
		assert.Equal(t, img.Bounds(), decoded.Bounds())
	})
}

func TestListImages(t *testing.T) {
	dir := t.TempDir()

	for _, name := range []string{"b.PNG", "a.jpg", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.jpg"), os.ModePerm))

	files, err := ListImages(dir)
	require.NoError(t, err)

	assert.Equal(t, []string{filepath.Join(dir, "a.jpg"), filepath.Join(dir, "b.PNG")}, files)

	_, err = ListImages(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}

// stubDetector returns a fixed landmark set in the pigo layout.
type stubDetector struct {
	set landmark.Set
	err error
}

func (d stubDetector) Detect(img image.Image) (landmark.Set, error) {
	return d.set, d.err
}

// pigoFace places the pupils and eye points in the upper band and the mouth points in the lower band.
func pigoFace() landmark.Set {
	set := make(landmark.Set, landmark.PigoPoints)

	for n, idx := range landmark.Pigo.Eyes() {
		x := 0.25 + 0.5*float64(n%2)
		y := 0.25 + 0.125*float64(n%3%2)
		set[idx] = landmark.Point{X: x, Y: y}
	}

	for n, idx := range landmark.Pigo.Lips {
		x := 0.375 + 0.25*float64(n%2)
		y := 0.6875 + 0.125*float64(n/2%2)
		set[idx] = landmark.Point{X: x, Y: y}
	}

	return set
}

func newTestCensoring(d landmark.Detector) *FaceCensoring {
	c := &Config{Workers: 2}
	c.applyDefaults()

	return &FaceCensoring{
		fd:       c,
		detector: d,
		pipeline: censor.New(censor.WithTopology(landmark.Pigo)),
	}
}

func writeTestImage(t *testing.T, fileName string) {
	t.Helper()

	img := imaging.New(64, 64, color.NRGBA{R: 120, G: 160, B: 200, A: 255})
	require.NoError(t, imaging.Save(img, fileName))
}

func TestCensorFile(t *testing.T) {
	t.Run("censored image is written", func(t *testing.T) {
		f := newTestCensoring(stubDetector{set: pigoFace()})
		source := filepath.Join(t.TempDir(), "face.png")
		writeTestImage(t, source)
		target := filepath.Join(t.TempDir(), "nested", "out.png")

		require.NoError(t, f.CensorFile(source, target, "black"))

		out, err := imaging.Open(target)
		require.NoError(t, err)

		assert.Equal(t, image.Rect(0, 0, 64, 64), out.Bounds())
		assert.Equal(t, color.NRGBA{A: 255}, color.NRGBAModel.Convert(out.At(32, 20)))
		assert.Equal(t, color.NRGBA{A: 255}, color.NRGBAModel.Convert(out.At(32, 48)))
		assert.Equal(t, color.NRGBA{R: 120, G: 160, B: 200, A: 255}, color.NRGBAModel.Convert(out.At(0, 63)))
	})
	t.Run("unsupported extension", func(t *testing.T) {
		f := newTestCensoring(stubDetector{set: pigoFace()})

		err := f.CensorFile("notes.txt", filepath.Join(t.TempDir(), "out.txt"), "blur")
		assert.True(t, errors.Is(err, ErrUnsupportedFormat))
	})
	t.Run("no directory is left behind on failure", func(t *testing.T) {
		f := newTestCensoring(stubDetector{err: landmark.ErrNoFace})
		source := filepath.Join(t.TempDir(), "face.png")
		writeTestImage(t, source)
		outDir := filepath.Join(t.TempDir(), "out")

		err := f.CensorFile(source, filepath.Join(outDir, "face.png"), "blur")
		assert.True(t, errors.Is(err, landmark.ErrNoFace))
		assert.NoDirExists(t, outDir)

		broken := filepath.Join(t.TempDir(), "broken.jpg")
		require.NoError(t, os.WriteFile(broken, []byte("not an image"), 0644))

		assert.Error(t, f.CensorFile(broken, filepath.Join(outDir, "broken.jpg"), "blur"))
		assert.NoDirExists(t, outDir)
	})
}

func TestCensorFaces(t *testing.T) {
	f := newTestCensoring(stubDetector{set: pigoFace()})
	source := filepath.Join(t.TempDir(), "face.png")
	writeTestImage(t, source)

	var buf bytes.Buffer
	require.NoError(t, f.CensorFaces(source, &buf, "white"))

	out, format, err := image.Decode(&buf)
	require.NoError(t, err)

	assert.Equal(t, "jpeg", format)
	assert.Equal(t, image.Rect(0, 0, 64, 64), out.Bounds())

	r, g, b, _ := out.At(32, 20).RGBA()
	assert.Greater(t, r>>8, uint32(240))
	assert.Greater(t, g>>8, uint32(240))
	assert.Greater(t, b>>8, uint32(240))
}

func TestCensorDir(t *testing.T) {
	t.Run("no images", func(t *testing.T) {
		f := newTestCensoring(stubDetector{set: pigoFace()})
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), nil, 0644))

		_, err := f.CensorDir(context.Background(), dir, filepath.Join(t.TempDir(), "out"), "blur")
		assert.True(t, errors.Is(err, ErrNoImages))
	})
	t.Run("failures are counted", func(t *testing.T) {
		f := newTestCensoring(stubDetector{set: pigoFace()})
		dir := t.TempDir()
		writeTestImage(t, filepath.Join(dir, "a.png"))
		writeTestImage(t, filepath.Join(dir, "b.jpg"))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "c.png"), []byte("not an image"), 0644))

		out := filepath.Join(t.TempDir(), "out")
		summary, err := f.CensorDir(context.Background(), dir, out, "mosaic")
		require.NoError(t, err)

		assert.Equal(t, Summary{Processed: 2, Failed: 1}, summary)
		assert.FileExists(t, filepath.Join(out, "a.png"))
		assert.FileExists(t, filepath.Join(out, "b.jpg"))
		assert.NoFileExists(t, filepath.Join(out, "c.png"))
	})
}

func TestCensorImage(t *testing.T) {
	t.Run("no face", func(t *testing.T) {
		f := newTestCensoring(stubDetector{err: landmark.ErrNoFace})

		_, err := f.CensorImage(imaging.New(8, 8, color.White), "blur")
		assert.True(t, errors.Is(err, landmark.ErrNoFace))
	})
	t.Run("mark regions", func(t *testing.T) {
		f := newTestCensoring(stubDetector{set: pigoFace()})
		f.fd.MarkRegions = true

		res, err := f.CensorImage(imaging.New(64, 64, color.White), "black")
		require.NoError(t, err)

		edge := res.Image.NRGBAAt(res.Mouth.X1, (res.Mouth.Y1+res.Mouth.Y2)/2)
		assert.Greater(t, edge.R, edge.G)
	})
}

func TestBestFace(t *testing.T) {
	hook := logtest.NewGlobal()
	defer hook.Reset()

	level := log.GetLevel()
	log.SetLevel(logrus.DebugLevel)
	defer log.SetLevel(level)

	t.Run("highest score wins", func(t *testing.T) {
		hook.Reset()

		face, ok := bestFace([]pigo.Detection{{Row: 1, Q: 6}, {Row: 2, Q: 30}, {Row: 3, Q: 2}}, 5)

		assert.True(t, ok)
		assert.Equal(t, 2, face.Row)
		require.Len(t, hook.AllEntries(), 1)
		assert.Contains(t, hook.LastEntry().Message, "score 30.0")
	})
	t.Run("all below threshold", func(t *testing.T) {
		hook.Reset()

		_, ok := bestFace([]pigo.Detection{{Q: 1}, {Q: 4.9}}, 5)

		assert.False(t, ok)
		assert.Empty(t, hook.AllEntries())
	})
	t.Run("none", func(t *testing.T) {
		_, ok := bestFace(nil, 5)
		assert.False(t, ok)
	})
}

func TestLandmarkPoint(t *testing.T) {
	c := &Config{}
	c.applyDefaults()

	d := &pigoDetector{
		fd: c,
		flpcs: map[string][]*pigo.FlpCascade{
			"lp46": {&pigo.FlpCascade{}},
			"lp44": {nil},
		},
	}

	eye := &pigo.Puploc{Row: 40, Col: 40, Scale: 10}
	params := pigo.ImageParams{Rows: 100, Cols: 100, Dim: 100}

	for _, name := range []string{"lp46", "lp44", "lp42"} {
		assert.False(t, d.landmarkPoint(name, eye, eye, params, false).Located(), name)
	}
}

func TestNormalize(t *testing.T) {
	params := pigo.ImageParams{Rows: 200, Cols: 100}

	assert.Equal(t, landmark.Point{X: 0.25, Y: 0.5}, normalize(&pigo.Puploc{Row: 100, Col: 25}, params))
	assert.False(t, normalize(nil, params).Located())
	assert.False(t, normalize(&pigo.Puploc{Row: -1, Col: 25}, params).Located())
	assert.False(t, normalize(&pigo.Puploc{Row: 10, Col: 0}, params).Located())
}

func TestMark(t *testing.T) {
	img := imaging.New(64, 64, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	set := landmark.Set{{X: 0.5, Y: 0.5}, landmark.Missing}
	topo := landmark.Topology{LeftEye: []int{0}, RightEye: []int{1}, Lips: []int{5}}
	box := region.Box{X1: 10, Y1: 10, X2: 30, Y2: 30}

	out := Mark(img, topo, set, box, region.Box{})

	assert.Equal(t, img.Bounds(), out.Bounds())

	edge := out.NRGBAAt(10, 20)
	assert.Greater(t, edge.R, edge.G)

	dot := out.NRGBAAt(32, 32)
	assert.Greater(t, dot.G, dot.R)

	assert.Equal(t, color.NRGBA{R: 255, G: 255, B: 255, A: 255}, out.NRGBAAt(50, 50))
	assert.Equal(t, color.NRGBA{R: 255, G: 255, B: 255, A: 255}, img.NRGBAAt(10, 20))
}
