package effect

import (
	"fmt"

	"github.com/pthm-cable/glow/field"
	"github.com/pthm-cable/glow/noise"
)

// Effect id layout.
const (
	Freeze   = 0
	Fade     = 1
	Fizzle   = 2
	Scroll   = 3
	Blur     = 4
	SplitOut = 5 // Halves scroll away from the middle
	SplitIn  = 6 // Halves scroll towards the middle

	Solid      = 10
	Gradient   = 11
	Sine       = 12
	Saw        = 13
	Triangle   = 14
	Noise      = 15
	Droplet    = 16
	Xor        = 17
	NoiseField = 18
	Simplex    = 19

	MeterBase       = 20 // + 4·origin + taper
	PlotBase        = 40 // + background
	LineBase        = 44 // + background
	TickerBase      = 50 // + origin
	DecayTickerBase = 54 // + origin
	DrivenBlurBase  = 60 // + origin
	DrivenWaveBase  = 64 // + origin
)

// Taper selects how a meter falls off past its level.
type Taper uint8

const (
	TaperGradient Taper = iota // Shaped ramp
	TaperDecay                 // Bar over a fading trail
	TaperJitter                // Bar over a fizzling trail
)

var taperNames = []string{"gradient", "decay", "jitter"}

// Background selects what plots and lines draw over.
type Background uint8

const (
	BgFade Background = iota
	BgScroll
	BgFizzle
	BgNone
)

var backgroundNames = []string{"fade", "scroll", "fizzle", "none"}

// MeterID returns the id of the meter growing from origin with taper.
func MeterID(origin field.Origin, taper Taper) int {
	return MeterBase + 4*int(origin) + int(taper)
}

// registerDefaults adds all built-in effects.
// Update this when adding new effects.
func (d *Dispatcher) registerDefaults() {
	e := d.effects

	// Backgrounds
	d.Register(Entry{ID: Freeze, Name: "freeze", Family: "background"})
	d.Register(Entry{ID: Fade, Name: "fade", Family: "background", Program: Program{
		func(fr Frame) { fr.Field.Fade(fr.Field.DT, fr.Control*e.FadeMax) },
	}})
	d.Register(Entry{ID: Fizzle, Name: "fizzle", Family: "background", Program: Program{
		func(fr Frame) { fr.Field.Fizzle(fr.Field.DT, fr.Control*e.FizzleMax, fr.RNG) },
	}})
	d.Register(Entry{ID: Scroll, Name: "scroll", Family: "background", Program: Program{
		func(fr Frame) { fr.Field.Scroll(fr.Smooth) },
	}})
	d.Register(Entry{ID: Blur, Name: "blur", Family: "background", Program: Program{
		func(fr Frame) { fr.Field.Blur(fr.Field.DT, fr.Control*e.BlurMax) },
	}})
	d.Register(Entry{ID: SplitOut, Name: "split scroll out", Family: "background", Program: Program{
		func(fr Frame) { fr.Field.ScrollSplit(fr.Smooth, -1, 1) },
	}})
	d.Register(Entry{ID: SplitIn, Name: "split scroll in", Family: "background", Program: Program{
		func(fr Frame) { fr.Field.ScrollSplit(fr.Smooth, 1, -1) },
	}})

	// Generators
	d.Register(Entry{ID: Solid, Name: "solid", Family: "generator", Program: Program{
		func(fr Frame) { fr.Field.Solid(fr.Control) },
	}})
	d.Register(Entry{ID: Gradient, Name: "gradient", Family: "generator", Program: Program{
		func(fr Frame) { fr.Field.Gradient(fr.Control, fr.Smooth) },
	}})
	d.Register(Entry{ID: Sine, Name: "sine", Family: "generator", Program: Program{
		func(fr Frame) { fr.Field.Sine(fr.Control, d.cycles(fr.Smooth)) },
	}})
	d.Register(Entry{ID: Saw, Name: "saw", Family: "generator", Program: Program{
		func(fr Frame) { fr.Field.Saw(fr.Control, d.cycles(fr.Smooth)) },
	}})
	d.Register(Entry{ID: Triangle, Name: "triangle", Family: "generator", Program: Program{
		func(fr Frame) { fr.Field.Triangle(fr.Control, d.cycles(fr.Smooth)) },
	}})
	d.Register(Entry{ID: Noise, Name: "noise", Family: "generator", Program: Program{
		func(fr Frame) {
			// control scrubs through Scale strip lengths of noise
			offset := float64(fr.Control) * d.noise.Scale * float64(fr.Field.Len())
			fr.Field.Noise(d.perlin, offset, float64(fr.Smooth)*d.noise.Scale, d.noise.Octaves)
		},
	}})
	d.Register(Entry{ID: Droplet, Name: "droplet", Family: "generator", Program: Program{
		d.wave(),
		func(fr Frame) {
			if fr.Field.RisingEdge(fr.Control, e.DropletThreshold) {
				fr.Field.Drop(fr.RNG, 1)
			}
		},
	}})
	d.Register(Entry{ID: Xor, Name: "xor", Family: "generator", Program: Program{
		func(fr Frame) {
			key := int(fr.Control * 255)
			step := 1 + int(fr.Smooth*float32(e.XorStepMax))
			fr.Field.Xor(key, step)
		},
	}})
	d.Register(Entry{ID: NoiseField, Name: "noise field", Family: "generator", Program: Program{
		d.noiseField(d.perlin),
	}})
	d.Register(Entry{ID: Simplex, Name: "simplex", Family: "generator", Program: Program{
		d.noiseField(d.simplex),
	}})

	// Meters
	for _, origin := range field.Origins {
		d.Register(Entry{
			ID:     MeterID(origin, TaperGradient),
			Name:   fmt.Sprintf("meter %s/%s", origin, taperNames[TaperGradient]),
			Family: "meter",
			Program: Program{
				func(fr Frame) { fr.Field.MeterGradient(origin, fr.Control, fr.Smooth) },
			},
		})
		d.Register(Entry{
			ID:     MeterID(origin, TaperDecay),
			Name:   fmt.Sprintf("meter %s/%s", origin, taperNames[TaperDecay]),
			Family: "meter",
			Program: Program{
				func(fr Frame) { fr.Field.Fade(fr.Field.DT, fr.Smooth*e.FadeMax) },
				func(fr Frame) { fr.Field.MeterBar(origin, fr.Control) },
			},
		})
		d.Register(Entry{
			ID:     MeterID(origin, TaperJitter),
			Name:   fmt.Sprintf("meter %s/%s", origin, taperNames[TaperJitter]),
			Family: "meter",
			Program: Program{
				func(fr Frame) { fr.Field.Fizzle(fr.Field.DT, fr.Smooth*e.FizzleMax, fr.RNG) },
				func(fr Frame) { fr.Field.MeterBar(origin, fr.Control) },
			},
		})
	}

	// Plots and lines
	for bg := BgFade; bg <= BgNone; bg++ {
		d.Register(Entry{
			ID:     PlotBase + int(bg),
			Name:   "plot/" + backgroundNames[bg],
			Family: "draw",
			Program: append(d.background(bg), func(fr Frame) {
				fr.Field.Plot(fr.Control, 1)
			}),
		})
		d.Register(Entry{
			ID:     LineBase + int(bg),
			Name:   "line/" + backgroundNames[bg],
			Family: "draw",
			Program: append(d.background(bg), func(fr Frame) {
				fr.Field.DrawLine(fr.Control, 1)
			}),
		})
	}

	// Tickers and driven endpoints
	for _, origin := range field.Origins {
		tick := func(fr Frame) {
			fr.Field.Ticker(fr.Field.DT, fr.Smooth*e.TickerSpeedMax, fr.Control, origin)
		}
		pin := func(fr Frame) { fr.Field.PinOrigin(origin, fr.Control) }

		d.Register(Entry{
			ID:      TickerBase + int(origin),
			Name:    "ticker " + origin.String(),
			Family:  "ticker",
			Program: Program{tick},
		})
		d.Register(Entry{
			ID:     DecayTickerBase + int(origin),
			Name:   "decaying ticker " + origin.String(),
			Family: "ticker",
			Program: Program{
				func(fr Frame) { fr.Field.Fade(fr.Field.DT, e.TrailFade) },
				tick,
			},
		})
		d.Register(Entry{
			ID:     DrivenBlurBase + int(origin),
			Name:   "driven blur " + origin.String(),
			Family: "driven",
			Program: Program{
				func(fr Frame) { fr.Field.Blur(fr.Field.DT, fr.Smooth*e.BlurMax) },
				pin,
			},
		})
		d.Register(Entry{
			ID:      DrivenWaveBase + int(origin),
			Name:    "driven wave " + origin.String(),
			Family:  "driven",
			Program: Program{d.wave(), pin},
		})
	}
}

// background returns the steps a plot or line draws over.
func (d *Dispatcher) background(bg Background) Program {
	e := d.effects
	switch bg {
	case BgFade:
		return Program{func(fr Frame) { fr.Field.Fade(fr.Field.DT, fr.Smooth*e.FadeMax) }}
	case BgScroll:
		return Program{func(fr Frame) { fr.Field.Scroll(fr.Smooth) }}
	case BgFizzle:
		return Program{func(fr Frame) { fr.Field.Fizzle(fr.Field.DT, fr.Smooth*e.FizzleMax, fr.RNG) }}
	}
	return Program{}
}

// wave steps the spring-damper with stiffness set by smooth.
func (d *Dispatcher) wave() Step {
	w := d.effects.Wave
	return func(fr Frame) {
		fr.Field.Wave(fr.Field.DT, field.WaveParams{
			Spring:  fr.Smooth * w.SpringMax,
			Damping: w.Damping,
			Bounce:  w.Bounce,
		})
	}
}

// noiseField samples s along the strip while time moves through the
// second axis; control scrubs along that axis.
func (d *Dispatcher) noiseField(s noise.Sampler2D) Step {
	o := noise.Octaves{
		Count:       d.noise.Octaves,
		Persistence: d.noise.Persistence,
		Lacunarity:  d.noise.Lacunarity,
	}
	return func(fr Frame) {
		y := fr.Field.Time*d.noise.FieldSpeed + float64(fr.Control)*d.noise.Scale
		fr.Field.NoiseField(s, y, d.span(fr.Smooth), o)
	}
}

// cycles maps smooth onto 1..MaxCycles periods.
func (d *Dispatcher) cycles(smooth float32) float32 {
	m := max(d.effects.MaxCycles, 1)
	return 1 + smooth*(m-1)
}

// span maps smooth onto the noise distance covered by the strip.
func (d *Dispatcher) span(smooth float32) float64 {
	return max(float64(smooth), 0.01) * d.noise.Scale
}
