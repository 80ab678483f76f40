// Package rig runs a set of independent strips, one ECS entity per strip.
package rig

import (
	"log/slog"
	"sync"
	"time"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/glow/config"
	"github.com/pthm-cable/glow/effect"
	"github.com/pthm-cable/glow/strip"
	"github.com/pthm-cable/glow/telemetry"
)

// Unit holds the engine side of a strip entity.
type Unit struct {
	Index int
	Strip *strip.Strip
	Perf  *telemetry.PerfCollector
	Stats *telemetry.Collector
}

// Input holds the controls a strip renders next.
type Input struct {
	Controls strip.Controls
}

// Rig owns the ECS world of strips and updates them frame by frame.
type Rig struct {
	world  *ecs.World
	mapper *ecs.Map2[Unit, Input]
	filter *ecs.Filter2[Unit, Input]
	units  []ecs.Entity

	cfg      *config.Config
	dispatch *effect.Dispatcher
	parallel bool
	out      *telemetry.OutputManager

	// Per-frame scratch for the fan-out
	batch []work
}

type work struct {
	strip    *strip.Strip
	controls strip.Controls
}

// Option configures a Rig.
type Option func(*Rig)

// WithOutput writes window stats and perf rows through om.
func WithOutput(om *telemetry.OutputManager) Option {
	return func(r *Rig) { r.out = om }
}

// New creates an empty rig sharing one effect table built from cfg.
func New(cfg *config.Config, opts ...Option) *Rig {
	world := ecs.NewWorld()
	r := &Rig{
		world:    world,
		mapper:   ecs.NewMap2[Unit, Input](world),
		filter:   ecs.NewFilter2[Unit, Input](world),
		cfg:      cfg,
		dispatch: effect.NewDispatcher(cfg.Effects, cfg.Noise),
		parallel: cfg.Rig.Parallel,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Add creates a strip of cfg.Strip.Length pixels feeding sink and
// returns its index. Sinks of different strips may run concurrently.
func (r *Rig) Add(sink strip.PixelSink) int {
	i := len(r.units)
	perf := telemetry.NewPerfCollector(r.cfg.Telemetry.PerfWindow)
	unit := Unit{
		Index: i,
		Strip: strip.New(r.cfg.Strip.Length, sink,
			strip.WithDispatcher(r.dispatch),
			strip.WithSeed(r.cfg.Noise.Seed+int64(i)),
			strip.WithPerf(perf),
		),
		Perf:  perf,
		Stats: telemetry.NewCollector(i, r.cfg.Telemetry.StatsWindow),
	}
	input := Input{}
	r.units = append(r.units, r.mapper.NewEntity(&unit, &input))
	return i
}

// Len returns the number of strips.
func (r *Rig) Len() int { return len(r.units) }

// Strip returns strip i.
func (r *Rig) Strip(i int) *strip.Strip {
	unit, _ := r.mapper.Get(r.units[i])
	return unit.Strip
}

// Dispatcher returns the effect table shared by every strip.
func (r *Rig) Dispatcher() *effect.Dispatcher { return r.dispatch }

// SetControls sets the controls strip i renders next.
func (r *Rig) SetControls(i int, c strip.Controls) {
	_, input := r.mapper.Get(r.units[i])
	input.Controls = c
}

// SetAll sets the same controls on every strip.
func (r *Rig) SetAll(c strip.Controls) {
	query := r.filter.Query()
	for query.Next() {
		_, input := query.Get()
		input.Controls = c
	}
}

// Update renders one frame of every strip at time now, then records
// telemetry.
func (r *Rig) Update(now time.Duration) {
	r.batch = r.batch[:0]
	query := r.filter.Query()
	for query.Next() {
		unit, input := query.Get()
		r.batch = append(r.batch, work{strip: unit.Strip, controls: input.Controls})
	}

	if r.parallel && len(r.batch) > 1 {
		var wg sync.WaitGroup
		for _, w := range r.batch {
			wg.Add(1)
			go func() {
				defer wg.Done()
				w.strip.Update(w.controls, now)
			}()
		}
		wg.Wait()
	} else {
		for _, w := range r.batch {
			w.strip.Update(w.controls, now)
		}
	}

	r.record()
}

// Present marks the frame just rendered as shown on the display, feeding
// the presented frame rate of every strip.
func (r *Rig) Present() {
	query := r.filter.Query()
	for query.Next() {
		unit, _ := query.Get()
		unit.Perf.RecordPresent()
	}
}

// record feeds frame stats into the collectors and flushes full windows.
func (r *Rig) record() {
	query := r.filter.Query()
	for query.Next() {
		unit, _ := query.Get()
		frame := unit.Strip.Stats()
		unit.Stats.Record(frame)
		if !unit.Stats.ShouldFlush() {
			continue
		}

		window := unit.Stats.Flush()
		perf := unit.Perf.Stats()
		slog.Info("stats", "window", window)
		slog.Info("perf", "strip", unit.Index, "stats", perf)
		if err := r.out.WriteWindow(window); err != nil {
			slog.Error("failed to write window stats", "error", err)
		}
		if err := r.out.WritePerf(perf, unit.Index, frame.Frame); err != nil {
			slog.Error("failed to write perf stats", "error", err)
		}
	}
}

// PlayDemo sets every strip's controls from the config demo program at
// elapsed, staggering strip i by i/Len of the program length. Reports
// false when the program is empty.
func (r *Rig) PlayDemo(elapsed time.Duration) bool {
	n := len(r.units)
	for i := range n {
		offset := r.cfg.Derived.DemoLength * time.Duration(i) / time.Duration(n)
		step, ok := r.cfg.DemoAt(elapsed + offset)
		if !ok {
			return false
		}
		r.SetControls(i, ControlsFromDemo(step))
	}
	return true
}

// ControlsFromDemo converts a demo step into strip controls.
func ControlsFromDemo(d config.DemoStep) strip.Controls {
	return strip.Controls{
		Effect:  d.Effect,
		Palette: d.Palette,
		Control: d.Control,
		Smooth:  d.Smooth,
		Back:    d.BackColor,
		Fore:    d.ForeColor,
	}
}
