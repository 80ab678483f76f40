package main

import (
	"flag"
	"image/color"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/glow/config"
	"github.com/pthm-cable/glow/rig"
	"github.com/pthm-cable/glow/telemetry"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	statsWindow := flag.Float64("stats-window", 0, "Stats window size in seconds (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	strips := flag.Int("strips", 0, "Strips to run (0 = use config)")
	maxFrames := flag.Int("max-frames", 0, "Stop after N frames (0 = unlimited)")
	realtime := flag.Bool("realtime", false, "Pace headless frames at the target frame rate")

	flag.Parse()

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if *statsWindow > 0 {
		cfg.Telemetry.StatsWindow = *statsWindow
	}
	if *strips > 0 {
		cfg.Rig.Strips = *strips
	}

	out, err := telemetry.NewOutputManager(*outputDir)
	if err != nil {
		slog.Error("failed to create output", "error", err)
		os.Exit(1)
	}
	defer out.Close()
	if err := out.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
	}

	if *headless {
		runHeadless(cfg, out, *maxFrames, *realtime)
	} else {
		runWindow(cfg, out, *maxFrames)
	}
}

// runHeadless drives the demo program without graphics. Unless realtime
// is set, frames advance a simulated clock as fast as they compute.
func runHeadless(cfg *config.Config, out *telemetry.OutputManager, maxFrames int, realtime bool) {
	r := rig.New(cfg, rig.WithOutput(out))
	for i := 0; i < cfg.Rig.Strips; i++ {
		r.Add(nil)
	}

	slog.Info("starting headless run",
		"strips", r.Len(),
		"length", cfg.Strip.Length,
		"fps", cfg.Strip.TargetFPS,
		"parallel", cfg.Rig.Parallel,
		"max_frames", maxFrames,
		"realtime", realtime,
	)

	var ticker *time.Ticker
	if realtime {
		ticker = time.NewTicker(cfg.Derived.FrameInterval)
		defer ticker.Stop()
	}

	for frame := 0; maxFrames == 0 || frame < maxFrames; frame++ {
		now := time.Duration(frame) * cfg.Derived.FrameInterval
		r.PlayDemo(now)
		r.Update(now)
		if ticker != nil {
			<-ticker.C
			r.Present()
		}
	}
	slog.Info("max frames reached", "frames", maxFrames)
}

// runWindow draws every strip as a row of squares.
func runWindow(cfg *config.Config, out *telemetry.OutputManager, maxFrames int) {
	rl.InitWindow(int32(cfg.Preview.Width), int32(cfg.Preview.Height), "Glow")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Strip.TargetFPS))

	// Sinks draw, so strips must update on the render thread
	cfg.Rig.Parallel = false

	size := int32(cfg.Preview.PixelSize)
	r := rig.New(cfg, rig.WithOutput(out))
	for i := 0; i < cfg.Rig.Strips; i++ {
		row := int32(i)
		r.Add(func(index int, c color.RGBA) {
			rl.DrawRectangle(10+int32(index)*size, 40+row*(size+10), size-2, size-2, c)
		})
	}

	start := time.Now()
	for frame := 0; !rl.WindowShouldClose(); frame++ {
		if maxFrames > 0 && frame >= maxFrames {
			break
		}
		now := time.Since(start)
		r.PlayDemo(now)

		rl.BeginDrawing()
		rl.ClearBackground(rl.Black)
		r.Update(now)

		st := r.Strip(0).Stats()
		rl.DrawText(r.Dispatcher().Name(st.Effect), 10, 10, 20, rl.LightGray)
		rl.DrawFPS(int32(cfg.Preview.Width)-90, 10)
		rl.EndDrawing()
		r.Present()
	}
}
