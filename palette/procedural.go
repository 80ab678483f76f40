package palette

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Generator is a procedural palette: a pure function of the scalar.
type Generator func(t float64) colorful.Color

// cosine evaluates a + b·cos(2π(c·t + d)) per channel.
func cosine(t float64, a, b, c, d [3]float64) colorful.Color {
	ch := func(i int) float64 {
		return a[i] + b[i]*math.Cos(2*math.Pi*(c[i]*t+d[i]))
	}
	return colorful.Color{R: ch(0), G: ch(1), B: ch(2)}
}

var half = [3]float64{0.5, 0.5, 0.5}

// Rainbow walks the hue circle once.
func Rainbow(t float64) colorful.Color {
	return cosine(t, half, half, [3]float64{1, 1, 1}, [3]float64{0, -1.0 / 3, -2.0 / 3})
}

// Blackbody approximates an incandescent glow: red first, blue last.
func Blackbody(t float64) colorful.Color {
	return colorful.Color{R: math.Pow(t, 0.4), G: math.Pow(t, 1.6), B: math.Pow(t, 4)}
}

// Fire is a hotter, yellower blackbody with little blue.
func Fire(t float64) colorful.Color {
	return colorful.Color{R: math.Pow(t, 0.25), G: 0.85 * math.Pow(t, 1.5), B: 0.6 * math.Pow(t, 5)}
}

// Heat ramps red, then green, then blue in thirds.
func Heat(t float64) colorful.Color {
	return colorful.Color{R: Clamp01(3 * t), G: Clamp01(3*t - 1), B: Clamp01(3*t - 2)}
}

// Oil is a muted iridescent sheen.
func Oil(t float64) colorful.Color {
	return cosine(t, half, half, [3]float64{1, 1, 1}, [3]float64{0.3, 0.2, 0.2})
}

// Neon cycles saturated pinks, cyans and greens.
func Neon(t float64) colorful.Color {
	return cosine(t, half, half, [3]float64{1, 1, 0.5}, [3]float64{0.8, 0.9, 0.3})
}

// Bias remaps t toward the high end: (t²+t)/2.
func Bias(t float64) float64 {
	return (t*t + t) / 2
}

// fizzleOffset returns the skewed jitter subtracted by the fizzle remap;
// mostly near zero, occasionally large.
func fizzleOffset(u float64) float64 {
	return math.Pow(u, 7)
}
