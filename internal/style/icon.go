package style

import (
	"image"
	"image/color"
	"math"

	"github.com/geovizlabs/geoviz/internal/observability"
)

// iconKey identifies one synthesized point icon. Radius is kept at
// 0.1px granularity so float noise does not defeat the cache.
type iconKey struct {
	radius  int32 // tenths of a pixel
	color   RGB
	opacity uint8
}

// Icon returns the canonical marker image for a point feature with the
// given radius, fill color, and opacity. Identical triples share one image:
// marker surfaces without a native circle-radius concept would otherwise
// re-render the same icon once per feature.
func (s *Styler) Icon(radius float64, fill RGB, opacity float64) *image.RGBA {
	if radius < 1 {
		radius = 1
	}
	key := iconKey{
		radius:  int32(math.Round(radius * 10)),
		color:   fill,
		opacity: alphaChannel(opacity),
	}
	if img, ok := s.icons.Get(key); ok {
		return img
	}
	img := drawCircle(radius, fill, key.opacity)
	s.icons.Add(key, img)
	observability.SetIconCacheSize(s.icons.Len())
	return img
}

// drawCircle rasterizes a filled anti-aliased circle centered in a square
// image just large enough to hold it.
func drawCircle(radius float64, fill RGB, alpha uint8) *image.RGBA {
	size := int(math.Ceil(radius*2)) + 2
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	cx := float64(size) / 2
	cy := float64(size) / 2

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			d := math.Hypot(float64(x)+0.5-cx, float64(y)+0.5-cy)
			// 1px anti-aliasing band at the rim
			cov := radius + 0.5 - d
			if cov <= 0 {
				continue
			}
			if cov > 1 {
				cov = 1
			}
			a := uint8(math.Round(float64(alpha) * cov))
			img.SetRGBA(x, y, color.RGBA{R: fill.R, G: fill.G, B: fill.B, A: a})
		}
	}
	return img
}
