package rig

import (
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/pthm-cable/glow/config"
	"github.com/pthm-cable/glow/effect"
	"github.com/pthm-cable/glow/strip"
	"github.com/pthm-cable/glow/telemetry"
)

var white = colorful.Color{R: 1, G: 1, B: 1}

func TestUpdateFeedsEverySink(t *testing.T) {
	cfg := config.Defaults()
	r := New(cfg)

	var calls [3]atomic.Int64
	for i := range calls {
		r.Add(func(int, color.RGBA) { calls[i].Add(1) })
	}
	if r.Len() != 3 {
		t.Fatalf("expected 3 strips, got %d", r.Len())
	}

	r.SetAll(strip.Controls{Effect: effect.Solid, Control: 1, Fore: white})
	r.Update(0)
	r.Update(10 * time.Millisecond)

	for i := range calls {
		if got := calls[i].Load(); got != int64(2*cfg.Strip.Length) {
			t.Errorf("strip %d: %d sink calls, want %d", i, got, 2*cfg.Strip.Length)
		}
	}
}

func TestStripsAreIndependent(t *testing.T) {
	r := New(config.Defaults())
	r.Add(nil)
	r.Add(nil)

	r.SetControls(0, strip.Controls{Effect: effect.Solid, Control: 1, Fore: white})
	r.SetControls(1, strip.Controls{Effect: effect.Solid, Control: 0, Fore: white})
	r.Update(0)

	on := r.Strip(0).Pixels()
	off := r.Strip(1).Pixels()
	if on[0] != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("strip 0 should be lit, got %v", on[0])
	}
	if off[0] != (color.RGBA{0, 0, 0, 255}) {
		t.Errorf("strip 1 should be dark, got %v", off[0])
	}
	if r.Strip(0).Dispatcher() != r.Dispatcher() {
		t.Error("strips should share the rig's effect table")
	}
}

func TestParallelMatchesSequential(t *testing.T) {
	run := func(parallel bool) [][]color.RGBA {
		cfg := config.Defaults()
		cfg.Rig.Parallel = parallel
		r := New(cfg)
		for i := 0; i < 4; i++ {
			r.Add(nil)
		}
		r.SetAll(strip.Controls{Effect: effect.Fizzle, Palette: 40, Control: 0.5, Fore: white})
		for i := 0; i < 20; i++ {
			r.Update(time.Duration(i) * 10 * time.Millisecond)
		}
		out := make([][]color.RGBA, r.Len())
		for i := range out {
			out[i] = r.Strip(i).Pixels()
		}
		return out
	}

	seq, par := run(false), run(true)
	for s := range seq {
		for i := range seq[s] {
			if seq[s][i] != par[s][i] {
				t.Fatalf("strip %d pixel %d differs: %v vs %v", s, i, seq[s][i], par[s][i])
			}
		}
	}
}

func TestWindowStatsWritten(t *testing.T) {
	cfg := config.Defaults()
	cfg.Telemetry.StatsWindow = 0.05

	dir := t.TempDir()
	om, err := telemetry.NewOutputManager(dir)
	if err != nil {
		t.Fatalf("NewOutputManager: %v", err)
	}
	r := New(cfg, WithOutput(om))
	r.Add(nil)
	r.SetAll(strip.Controls{Effect: effect.Sine, Control: 0.2, Smooth: 0.5, Fore: white})

	for i := 0; i < 30; i++ {
		r.Update(time.Duration(i) * 10 * time.Millisecond)
	}
	if err := om.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "frames.csv"))
	if err != nil {
		t.Fatalf("reading frames.csv: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) < 3 {
		t.Errorf("expected several window rows, got %d lines", len(lines))
	}

	perf, err := os.ReadFile(filepath.Join(dir, "perf.csv"))
	if err != nil {
		t.Fatalf("reading perf.csv: %v", err)
	}
	if !strings.HasPrefix(string(perf), "strip,frame,") {
		t.Errorf("unexpected perf header: %q", strings.SplitN(string(perf), "\n", 2)[0])
	}
}

func TestPlayDemoStaggersStrips(t *testing.T) {
	cfg := config.Defaults()
	r := New(cfg)
	r.Add(nil)
	r.Add(nil)

	if !r.PlayDemo(0) {
		t.Fatal("expected the default demo to play")
	}
	r.Update(0)

	first, _ := cfg.DemoAt(0)
	second, _ := cfg.DemoAt(cfg.Derived.DemoLength / 2)
	if got := r.Strip(0).Stats().Effect; got != first.Effect {
		t.Errorf("strip 0 effect %d, want %d", got, first.Effect)
	}
	if got := r.Strip(1).Stats().Effect; got != second.Effect {
		t.Errorf("strip 1 effect %d, want %d", got, second.Effect)
	}

	cfg.Demo = nil
	cfg.Derived.DemoLength = 0
	if r.PlayDemo(time.Second) {
		t.Error("expected empty demo to report false")
	}
}

func TestPresentFeedsFrameRate(t *testing.T) {
	r := New(config.Defaults())
	r.Add(nil)
	r.Add(nil)

	r.Update(0)
	r.Present()
	time.Sleep(5 * time.Millisecond)
	r.Update(10 * time.Millisecond)
	r.Present()

	for i := range r.units {
		unit, _ := r.mapper.Get(r.units[i])
		st := unit.Perf.Stats()
		if st.FPS <= 0 || st.PresentInterval < 5*time.Millisecond {
			t.Errorf("strip %d: expected a presented rate, got %v fps over %v", i, st.FPS, st.PresentInterval)
		}
	}
}
