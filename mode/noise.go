package mode

import (
	"image"
	"math/rand"

	"thaitanloi365/go-face-censor/region"
)

// NoiseFrom returns a noise transform that draws bytes from rng.
// A nil rng uses the shared math/rand source. A non-nil rng is not safe for
// concurrent use, so the returned Func must not be shared across goroutines.
func NoiseFrom(rng *rand.Rand) Func {
	intn := rand.Intn

	if rng != nil {
		intn = rng.Intn
	}

	return func(img *image.NRGBA, box region.Box) *image.NRGBA {
		return replace(img, box, func(area *image.NRGBA) *image.NRGBA {
			for i := 0; i+3 < len(area.Pix); i += 4 {
				area.Pix[i+0] = uint8(intn(256))
				area.Pix[i+1] = uint8(intn(256))
				area.Pix[i+2] = uint8(intn(256))
			}

			return area
		})
	}
}
