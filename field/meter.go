package field

import "math"

// meterPos measures pixel i from origin: 0 at the origin, 1 at the
// farthest pixel.
func (f *Field) meterPos(origin Origin, i int) float32 {
	u := f.position(i)
	switch origin {
	case End:
		return 1 - u
	case Mid:
		return float32(math.Abs(float64(0.5-u))) * 2
	case Ends:
		return 1 - float32(math.Abs(float64(0.5-u)))*2
	default:
		return u
	}
}

// MeterGradient draws a solid bar from origin covering level, followed by
// a falloff to the far end shaped by powerSmooth(shape).
func (f *Field) MeterGradient(origin Origin, level, shape float32) {
	for i := range f.Current {
		f.Current[i] = taper(f.meterPos(origin, i), Clamp(level), shape)
	}
}

// MeterBar lights the pixels within level of origin, leaving the rest
// untouched so an earlier decay can shape the tail.
func (f *Field) MeterBar(origin Origin, level float32) {
	level = Clamp(level)
	for i := range f.Current {
		if pos := f.meterPos(origin, i); pos < level || level >= 1 {
			f.Current[i] = 1
		}
	}
}

// taper is 1 below level, then falls linearly to 0 at 1, shaped by shape.
func taper(pos, level, shape float32) float32 {
	var v float32
	if pos < level {
		v = 1
	} else {
		v = 1 - (pos-level)/(1-level+epsilon)
	}
	return Clamp(powerSmooth(Clamp(v), shape))
}

// powerSmooth raises x to a power chosen by p: p=0.5 is linear, lower p
// sharpens towards 0 and higher p swells towards 1.
func powerSmooth(x, p float32) float32 {
	x = Clamp(x)
	p = Clamp(p)
	if p < 0.5 {
		e := 1 + math.Pow(2*float64(0.5-p), 3)*128
		return float32(math.Pow(float64(x), e))
	}
	e := 1 / (1 + math.Pow(2*float64(p-0.5), 3)*128)
	return float32(math.Pow(float64(x), e))
}
