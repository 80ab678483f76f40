package palette

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// achromatic is the saturation below which a color has no usable hue.
const achromatic = 1e-6

// BlendHSV interpolates in HSV space, taking the shorter way around the
// hue circle. When exactly one end is achromatic it borrows the other
// end's hue so no hue pop appears while saturation rises from zero.
func BlendHSV(a, b colorful.Color, t float64) colorful.Color {
	t = Clamp01(t)

	h1, s1, v1 := a.Hsv()
	h2, s2, v2 := b.Hsv()

	s := s1 + t*(s2-s1)
	v := v1 + t*(v2-v1)

	if s1 < achromatic && s2 > achromatic {
		h1 = h2
	} else if s2 < achromatic && s1 > achromatic {
		h2 = h1
	}

	d := h2 - h1
	if d > 180 {
		d -= 360
	} else if d <= -180 {
		d += 360
	}

	h := math.Mod(h1+t*d, 360)
	if h < 0 {
		h += 360
	}
	if h >= 360 {
		h -= 360
	}

	return colorful.Hsv(h, s, v)
}
