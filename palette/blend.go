package palette

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Blender mixes two colors; t=0 selects a.
type Blender interface {
	Blend(a, b colorful.Color, t float64) colorful.Color
}

// BlendKind is the closed set of blend operators.
type BlendKind uint8

const (
	Linear     BlendKind = iota // Per-channel RGB interpolation
	HSV                         // Shortest-path hue interpolation
	Add                         // Toward the saturating channel sum
	Difference                  // Toward the per-channel absolute difference
)

var blendNames = [...]string{"linear", "hsv", "add", "difference"}

func (k BlendKind) String() string {
	if int(k) < len(blendNames) {
		return blendNames[k]
	}
	return "unknown"
}

// Blend implements Blender.
func (k BlendKind) Blend(a, b colorful.Color, t float64) colorful.Color {
	switch k {
	case HSV:
		return BlendHSV(a, b, t)
	case Add:
		return a.BlendRgb(saturatingSum(a, b), t)
	case Difference:
		return a.BlendRgb(difference(a, b), t)
	default:
		return a.BlendRgb(b, t)
	}
}

// saturatingSum adds channels and rescales only when the brightest
// channel exceeds 1.
func saturatingSum(a, b colorful.Color) colorful.Color {
	s := colorful.Color{R: a.R + b.R, G: a.G + b.G, B: a.B + b.B}
	m := math.Max(s.R, math.Max(s.G, s.B))
	if m > 1 {
		s.R /= m
		s.G /= m
		s.B /= m
	}
	return s
}

func difference(a, b colorful.Color) colorful.Color {
	return colorful.Color{
		R: math.Abs(a.R - b.R),
		G: math.Abs(a.G - b.G),
		B: math.Abs(a.B - b.B),
	}
}
