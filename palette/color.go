// Package palette maps field scalars to display colors.
//
// A palette is either a sequence of stops built from {off, back, fore}
// joined by one of four blend operators, or a procedural function of the
// scalar alone. Every result passes through Correct before output.
package palette

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Off is the unlit color.
var Off = colorful.Color{}

// Clamp01 clamps x to [0,1], coercing NaN to 0.
func Clamp01(x float64) float64 {
	if math.IsNaN(x) {
		return 0
	}
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

// Correct applies the fixed perceptual correction channel' = channel².
func Correct(c colorful.Color) colorful.Color {
	r := Clamp01(c.R)
	g := Clamp01(c.G)
	b := Clamp01(c.B)
	return colorful.Color{R: r * r, G: g * g, B: b * b}
}

// ToRGBA converts a float color to its 8-bit output form.
func ToRGBA(c colorful.Color) color.RGBA {
	c = colorful.Color{R: Clamp01(c.R), G: Clamp01(c.G), B: Clamp01(c.B)}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// FromRGBA converts an 8-bit color to float form.
func FromRGBA(c color.RGBA) colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}
}
