package field

import (
	"math"

	"github.com/pthm-cable/glow/noise"
)

// Solid sets the whole strip to v.
func (f *Field) Solid(v float32) {
	v = Clamp(v)
	for i := range f.Current {
		f.Current[i] = v
	}
}

// Gradient ramps from 0 at the first pixel to 1 at the last, rotated by
// phase and shaped by powerSmooth(shape).
func (f *Field) Gradient(phase, shape float32) {
	for i := range f.Current {
		u := f.position(i) + Clamp(phase)
		if u > 1 {
			u--
		}
		f.Current[i] = Clamp(powerSmooth(u, shape))
	}
}

// Sine writes 0.5+0.5·sin over cycles periods, offset by phase periods.
func (f *Field) Sine(phase, cycles float32) {
	for i := range f.Current {
		a := 2 * math.Pi * float64(f.position(i)*cycles+phase)
		f.Current[i] = Clamp(float32(0.5 + 0.5*math.Sin(a)))
	}
}

// Saw writes a rising sawtooth.
func (f *Field) Saw(phase, cycles float32) {
	for i := range f.Current {
		f.Current[i] = Clamp(fract(f.position(i)*cycles + phase))
	}
}

// Triangle writes a symmetric triangle wave.
func (f *Field) Triangle(phase, cycles float32) {
	for i := range f.Current {
		s := fract(f.position(i)*cycles + phase)
		f.Current[i] = Clamp(1 - float32(math.Abs(float64(2*s-1))))
	}
}

// Noise writes fractal 1D noise sampled at pixel centres from offset.
// scale is the number of pixels per lattice cell; at or below the
// smallest float32 it falls back to 1.
func (f *Field) Noise(p *noise.Perlin, offset, scale float64, octaves int) {
	for i := range f.Current {
		x := offset + float64(i) + 0.5
		// Single octave 1D noise lies in [-0.5, 0.5]
		f.Current[i] = Clamp(float32(0.5 + p.Fractal1D(x, scale, octaves)))
	}
}

// NoiseField writes a row of 2D fractal noise at height y.
func (f *Field) NoiseField(s noise.Sampler2D, y, span float64, o noise.Octaves) {
	for i := range f.Current {
		x := float64(f.position(i)) * span
		f.Current[i] = Clamp(float32(0.5 + 0.5*noise.Fractal2D(s, x, y, o)))
	}
}

// Xor writes ((i·step) XOR key) & 255, scaled to [0,1].
func (f *Field) Xor(key, step int) {
	for i := range f.Current {
		f.Current[i] = float32(((i*step)^key)&255) / 255
	}
}
