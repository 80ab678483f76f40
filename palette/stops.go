package palette

import (
	"github.com/lucasb-eyer/go-colorful"
)

// Stops blends across a sequence of colors. The unit interval is split
// into len-1 equal segments and a scalar only blends the two stops
// bounding its segment.
type Stops struct {
	Colors []colorful.Color
	Blend  Blender
}

// At returns the color at t in [0,1].
func (s Stops) At(t float64) colorful.Color {
	t = Clamp01(t)
	blend := s.Blend
	if blend == nil {
		blend = Linear
	}
	return compose(s.Colors, blend, t)
}

// compose peels the first segment off and recurses on the remainder,
// rescaling t onto the shorter sequence.
func compose(c []colorful.Color, blend Blender, t float64) colorful.Color {
	switch len(c) {
	case 0:
		return Off
	case 1:
		return c[0]
	case 2:
		return blend.Blend(c[0], c[1], t)
	}
	k := float64(len(c) - 1)
	if t*k < 1 {
		return blend.Blend(c[0], c[1], t*k)
	}
	return compose(c[1:], blend, (t*k-1)/(k-1))
}

// Stop names one of the symbolic stop colors.
type Stop uint8

const (
	StopOff Stop = iota
	StopBack
	StopFore
)

func (s Stop) resolve(back, fore colorful.Color) colorful.Color {
	switch s {
	case StopBack:
		return back
	case StopFore:
		return fore
	default:
		return Off
	}
}

// maxStops bounds every symbolic sequence in the table.
const maxStops = 7

// stopSets are the symbolic sequences shared by all operators.
var stopSets = [][]Stop{
	{StopBack, StopFore},
	{StopOff, StopBack, StopFore},
	{StopBack, StopFore, StopOff},
	{StopBack, StopOff, StopFore},
	{StopOff, StopBack, StopFore, StopBack, StopOff},
	{StopBack, StopFore, StopBack},
	{StopFore, StopBack, StopOff, StopBack, StopFore},
	{StopBack, StopFore, StopBack, StopFore, StopBack, StopFore, StopBack},
}

var stopSetNames = []string{
	"back-fore",
	"off-back-fore",
	"back-fore-off",
	"back-off-fore",
	"off-back-fore-back-off",
	"back-fore-back",
	"fore-back-off-back-fore",
	"strobe",
}
