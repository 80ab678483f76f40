// Package field holds the per-pixel scalar buffers of a strip and the
// primitives that animate them.
//
// Primitives write Current and read Previous, which holds the values
// committed at the end of the last frame. Every written value is clamped
// to [0,1] with NaN coerced to 0.
package field

import (
	"math"

	"gonum.org/v1/gonum/blas/blas32"
)

// MaxDT bounds the per-frame step in seconds.
const MaxDT = 0.1

// epsilon guards divisions by user-controlled times.
const epsilon = 1e-4

// Field is the scalar state of one strip.
type Field struct {
	Current  []float32
	Previous []float32
	Velocity []float32

	// Time is the accumulated simulated time in seconds. It is float64 so
	// millisecond steps still register after days of uptime.
	Time float64
	// DT is the step of the frame in progress, in seconds.
	DT float32

	scrollPos     float32 // [0,1), position of the last committed scroll
	drawPos       float32 // [0,1], end of the last drawn line
	tickerAdvance float32 // fractional pixels not yet shifted
	lastControl   float32
	lastSmooth    float32
	primed        bool

	// Set when a primitive consumed the memory this frame
	scrolled bool
	drew     bool
}

// New creates a field of n pixels (at least one).
func New(n int) *Field {
	if n < 1 {
		n = 1
	}
	return &Field{
		Current:  make([]float32, n),
		Previous: make([]float32, n),
		Velocity: make([]float32, n),
	}
}

// Len returns the pixel count.
func (f *Field) Len() int { return len(f.Current) }

// Begin starts a frame. The first frame primes the position memories
// from the controls and runs with dt=0 so nothing jumps. A memory left
// unused by the previous frame follows that frame's input, so switching
// into a scroll or line only moves by what the input moved since.
func (f *Field) Begin(dt, control, smooth float32) {
	control = Clamp(control)
	smooth = Clamp(smooth)
	if !f.primed {
		f.lastControl = control
		f.lastSmooth = smooth
		f.primed = true
		dt = 0
	}
	if !f.scrolled {
		f.scrollPos = wrap01(f.lastSmooth)
	}
	if !f.drew {
		f.drawPos = f.lastControl
	}
	f.scrolled, f.drew = false, false
	if !(dt > 0) {
		dt = 0
	}
	if dt > MaxDT {
		dt = MaxDT
	}
	f.DT = dt
	f.Time += float64(dt)
}

// Commit copies Current into Previous and records the controls that
// produced the frame.
func (f *Field) Commit(control, smooth float32) {
	n := f.Len()
	blas32.Copy(
		blas32.Vector{N: n, Inc: 1, Data: f.Current},
		blas32.Vector{N: n, Inc: 1, Data: f.Previous},
	)
	f.lastControl = Clamp(control)
	f.lastSmooth = Clamp(smooth)
}

// LastControl returns the control value of the previous frame.
func (f *Field) LastControl() float32 { return f.lastControl }

// LastSmooth returns the smooth value of the previous frame.
func (f *Field) LastSmooth() float32 { return f.lastSmooth }

// ScrollPos returns the committed scroll position in [0,1).
func (f *Field) ScrollPos() float32 { return f.scrollPos }

// DrawPos returns the end of the last drawn line in [0,1].
func (f *Field) DrawPos() float32 { return f.drawPos }

// Level returns the mean of Current.
func (f *Field) Level() float32 {
	n := f.Len()
	return blas32.Asum(blas32.Vector{N: n, Inc: 1, Data: f.Current}) / float32(n)
}

// Motion returns the total absolute velocity.
func (f *Field) Motion() float32 {
	return blas32.Asum(blas32.Vector{N: f.Len(), Inc: 1, Data: f.Velocity})
}

// Index maps x in [0,1] onto [0, Len-1], so 1 is the last pixel.
func (f *Field) Index(x float32) int {
	n := f.Len()
	if n == 1 {
		return 0
	}
	return int(math.Round(float64(Clamp(x) * float32(n-1))))
}

// position returns pixel i as a fraction of the strip, 0 at the first
// pixel and 1 at the last.
func (f *Field) position(i int) float32 {
	n := f.Len()
	if n == 1 {
		return 0
	}
	return float32(i) / float32(n-1)
}

// Set writes a clamped value.
func (f *Field) Set(i int, v float32) {
	f.Current[i] = Clamp(v)
}

// Clamp limits x to [0,1], coercing NaN to 0.
func Clamp(x float32) float32 {
	if x != x {
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

// mod is the non-negative remainder of i by n (n > 0).
func mod(i, n int) int {
	m := i % n
	if m < 0 {
		m += n
	}
	return m
}

// wrap01 wraps x into [0,1).
func wrap01(x float32) float32 {
	x -= float32(math.Floor(float64(x)))
	if x >= 1 {
		x = 0
	}
	return x
}

func fract(x float32) float32 {
	return x - float32(math.Floor(float64(x)))
}
