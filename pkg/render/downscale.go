package render

import (
	"image"
	"math"

	"github.com/disintegration/imaging"
)

// Downscale shrinks an image rendered at a device pixel ratio back to CSS
// pixels. Ratios up to 1 return an unscaled copy.
func Downscale(img image.Image, ratio float64) *image.NRGBA {
	if ratio <= 1 {
		return imaging.Clone(img)
	}
	w := int(math.Round(float64(img.Bounds().Dx()) / ratio))
	if w < 1 {
		w = 1
	}
	return imaging.Resize(img, w, 0, imaging.Lanczos)
}
