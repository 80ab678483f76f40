// Package strip runs the per-frame pipeline of one LED strip: effect,
// palette, sink, commit.
package strip

import (
	"image/color"
	"math/rand"
	"sync"
	"time"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/pthm-cable/glow/config"
	"github.com/pthm-cable/glow/effect"
	"github.com/pthm-cable/glow/field"
	"github.com/pthm-cable/glow/palette"
	"github.com/pthm-cable/glow/telemetry"
)

// Controls is the per-frame input of a strip.
type Controls struct {
	Effect  int
	Palette int
	Control float32 // [0,1]
	Smooth  float32 // [0,1]
	Back    colorful.Color
	Fore    colorful.Color
}

// sanitized clamps every continuous control to [0,1], NaN to 0.
func (c Controls) sanitized() Controls {
	c.Control = field.Clamp(c.Control)
	c.Smooth = field.Clamp(c.Smooth)
	c.Back = clampColor(c.Back)
	c.Fore = clampColor(c.Fore)
	return c
}

func clampColor(c colorful.Color) colorful.Color {
	return colorful.Color{R: palette.Clamp01(c.R), G: palette.Clamp01(c.G), B: palette.Clamp01(c.B)}
}

// PixelSink receives every pixel of every frame, in index order.
type PixelSink func(index int, c color.RGBA)

// Option configures a Strip.
type Option func(*Strip)

// WithDispatcher shares an effect table between strips.
func WithDispatcher(d *effect.Dispatcher) Option {
	return func(s *Strip) { s.dispatch = d }
}

// WithSeed seeds the strip's random source (fizzle and droplets).
func WithSeed(seed int64) Option {
	return func(s *Strip) { s.rng = rand.New(rand.NewSource(seed)) }
}

// WithPerf times the frame phases into pc.
func WithPerf(pc *telemetry.PerfCollector) Option {
	return func(s *Strip) { s.perf = pc }
}

var defaultDispatcher = sync.OnceValue(func() *effect.Dispatcher {
	cfg := config.Defaults()
	return effect.NewDispatcher(cfg.Effects, cfg.Noise)
})

// Strip owns the field of one physical strip. Update must not be called
// concurrently for the same Strip.
type Strip struct {
	field    *field.Field
	dispatch *effect.Dispatcher
	eval     *palette.Evaluator
	rng      *rand.Rand
	sink     PixelSink
	perf     *telemetry.PerfCollector

	pixels     []color.RGBA
	started    bool
	lastUpdate time.Duration
	frame      int64
	stats      telemetry.FrameStats
}

// New creates a strip of length pixels (at least one). A nil sink is
// allowed; frames are then only kept for Pixels.
func New(length int, sink PixelSink, opts ...Option) *Strip {
	f := field.New(length)
	s := &Strip{
		field:  f,
		sink:   sink,
		pixels: make([]color.RGBA, f.Len()),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.dispatch == nil {
		s.dispatch = defaultDispatcher()
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(1))
	}
	s.eval = palette.NewEvaluator(s.rng)
	return s
}

// NewFromConfig creates a strip whose effect table and random source come
// from cfg rather than the embedded defaults. opts apply afterwards.
func NewFromConfig(cfg *config.Config, length int, sink PixelSink, opts ...Option) *Strip {
	base := []Option{
		WithDispatcher(effect.NewDispatcher(cfg.Effects, cfg.Noise)),
		WithSeed(cfg.Noise.Seed),
	}
	return New(length, sink, append(base, opts...)...)
}

// Len returns the pixel count.
func (s *Strip) Len() int { return s.field.Len() }

// Update renders one frame at monotonic time now. The step since the
// previous frame is capped at field.MaxDT; the first frame and any
// timestamp going backwards step by zero.
func (s *Strip) Update(c Controls, now time.Duration) {
	var dt float32
	if s.started && now > s.lastUpdate {
		dt = float32((now - s.lastUpdate).Seconds())
	}
	s.started = true
	s.lastUpdate = now
	c = c.sanitized()

	if s.perf != nil {
		s.perf.StartFrame()
		s.perf.StartPhase(telemetry.PhaseEffect)
	}
	s.field.Begin(dt, c.Control, c.Smooth)
	known := s.dispatch.Apply(c.Effect, effect.Input{Control: c.Control, Smooth: c.Smooth}, s.field, s.rng)

	if s.perf != nil {
		s.perf.StartPhase(telemetry.PhasePalette)
	}
	lit := 0
	for i, x := range s.field.Current {
		px := palette.ToRGBA(s.eval.Evaluate(c.Palette, c.Back, c.Fore, x))
		s.pixels[i] = px
		if px.R|px.G|px.B != 0 {
			lit++
		}
		if s.sink != nil {
			s.sink(i, px)
		}
	}

	if s.perf != nil {
		s.perf.StartPhase(telemetry.PhaseCommit)
	}
	s.field.Commit(c.Control, c.Smooth)
	s.frame++
	s.stats = telemetry.FrameStats{
		Frame:   s.frame,
		TimeSec: s.field.Time,
		Effect:  c.Effect,
		Palette: c.Palette,
		Known:   known,
		Level:   float64(s.field.Level()),
		Motion:  float64(s.field.Motion()),
		Lit:     lit,
	}
	if s.perf != nil {
		s.perf.EndFrame()
	}
}

// Stats returns statistics of the last frame.
func (s *Strip) Stats() telemetry.FrameStats { return s.stats }

// Pixels returns a copy of the last frame's output colors.
func (s *Strip) Pixels() []color.RGBA {
	out := make([]color.RGBA, len(s.pixels))
	copy(out, s.pixels)
	return out
}

// Field exposes the scalar state for previews. Callers must not write it.
func (s *Strip) Field() *field.Field { return s.field }

// Dispatcher returns the effect table the strip runs.
func (s *Strip) Dispatcher() *effect.Dispatcher { return s.dispatch }
