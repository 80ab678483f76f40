// Palette preview tool - interactive strip and palette visualization with sliders.
//
// Usage: go run ./cmd/palettepreview
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log/slog"
	"os"
	"time"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/pthm-cable/glow/config"
	"github.com/pthm-cable/glow/palette"
	"github.com/pthm-cable/glow/strip"
)

const (
	rampWidth   = 256
	panelWidth  = 420
	sliderWidth = panelWidth - 80
)

// previewState holds everything the sliders edit.
type previewState struct {
	controls strip.Controls
	back     [3]float32 // 0..255
	fore     [3]float32
	paused   bool
}

func (s *previewState) syncColors() {
	s.controls.Back = colorful.Color{R: float64(s.back[0]) / 255, G: float64(s.back[1]) / 255, B: float64(s.back[2]) / 255}
	s.controls.Fore = colorful.Color{R: float64(s.fore[0]) / 255, G: float64(s.fore[1]) / 255, B: float64(s.fore[2]) / 255}
}

func defaultState(cfg *config.Config) previewState {
	s := previewState{
		controls: strip.Controls{Effect: 10, Control: 0.5, Smooth: 0.5},
		back:     [3]float32{0, 0, 160},
		fore:     [3]float32{255, 255, 255},
	}
	if len(cfg.Demo) > 0 {
		d := cfg.Demo[0]
		s.controls = strip.Controls{Effect: d.Effect, Palette: d.Palette, Control: d.Control, Smooth: d.Smooth}
		r, g, b := d.BackColor.RGB255()
		s.back = [3]float32{float32(r), float32(g), float32(b)}
		r, g, b = d.ForeColor.RGB255()
		s.fore = [3]float32{float32(r), float32(g), float32(b)}
	}
	s.syncColors()
	return s
}

func main() {
	configPath := flag.String("config", "", "Path to config YAML file (empty = use embedded defaults)")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()
	width, height := int32(cfg.Preview.Width), int32(cfg.Preview.Height)
	pixelSize := int32(cfg.Preview.PixelSize)

	rl.InitWindow(width, height, "Palette Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Strip.TargetFPS))

	st := defaultState(cfg)
	s := strip.NewFromConfig(cfg, cfg.Strip.Length, nil)
	eval := palette.NewEvaluator(nil)

	img := rl.GenImageColor(rampWidth, 1, rl.Black)
	ramp := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	defer rl.UnloadTexture(ramp)

	var now time.Duration
	for !rl.WindowShouldClose() {
		if !st.paused {
			now += time.Duration(rl.GetFrameTime() * float32(time.Second))
		}
		s.Update(st.controls, now)
		rl.UpdateTexture(ramp, rampPixels(eval, st.controls, rampWidth))

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		// Strip
		for i, c := range s.Pixels() {
			x := 10 + int32(i)*pixelSize
			rl.DrawRectangle(x, 10, pixelSize-2, pixelSize-2, c)
		}

		// Scalars under the strip
		plotY := 20 + pixelSize
		plotH := int32(100)
		rl.DrawRectangleLines(10, plotY, int32(s.Len())*pixelSize, plotH, rl.LightGray)
		for i, v := range s.Field().Current {
			x := 10 + int32(i)*pixelSize + pixelSize/2
			y := plotY + plotH - int32(v*float32(plotH))
			rl.DrawCircle(x, y, 3, rl.DarkGray)
		}

		// Palette ramp
		rampY := plotY + plotH + 20
		rl.DrawText("Palette 0..1", 10, rampY, 14, rl.Gray)
		rl.DrawTexturePro(
			ramp,
			rl.Rectangle{X: 0, Y: 0, Width: rampWidth, Height: 1},
			rl.Rectangle{X: 10, Y: float32(rampY + 18), Width: float32(s.Len() * int(pixelSize)), Height: 30},
			rl.Vector2{X: 0, Y: 0},
			0,
			rl.White,
		)

		stats := s.Stats()
		rl.DrawText(fmt.Sprintf("Level: %.3f  Motion: %.3f  Lit: %d  Time: %.1f", stats.Level, stats.Motion, stats.Lit, stats.TimeSec),
			10, rampY+60, 16, rl.DarkGray)

		drawPanel(&st, s, float32(width-panelWidth-10))

		rl.EndDrawing()
	}
}

// drawPanel draws the sliders and buttons, writing edits into st.
func drawPanel(st *previewState, s *strip.Strip, panelX float32) {
	panelY := float32(10)
	c := &st.controls

	name := "unknown"
	if p, ok := palette.Lookup(c.Palette); ok {
		name = p.Name
	}
	rl.DrawText(fmt.Sprintf("%s / %s", s.Dispatcher().Name(c.Effect), name), int32(panelX), int32(panelY), 20, rl.DarkGray)
	panelY += 35

	ids := s.Dispatcher().IDs()
	c.Effect = int(slider("Effect", &panelY, panelX, float32(c.Effect), 0, float32(ids[len(ids)-1]), "%.0f"))
	c.Palette = int(slider("Palette", &panelY, panelX, float32(c.Palette), 0, float32(palette.Count()-1), "%.0f"))
	c.Control = slider("Control", &panelY, panelX, c.Control, 0, 1, "%.2f")
	c.Smooth = slider("Smooth", &panelY, panelX, c.Smooth, 0, 1, "%.2f")

	for i, ch := range []string{"Back R", "Back G", "Back B"} {
		st.back[i] = slider(ch, &panelY, panelX, st.back[i], 0, 255, "%.0f")
	}
	for i, ch := range []string{"Fore R", "Fore G", "Fore B"} {
		st.fore[i] = slider(ch, &panelY, panelX, st.fore[i], 0, 255, "%.0f")
	}
	st.syncColors()
	panelY += 10

	if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, toggleText(st.paused, "Resume", "Pause")) {
		st.paused = !st.paused
	}
	if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Reset All") {
		*st = defaultState(config.Cfg())
	}
	panelY += 45

	rl.DrawText("Press C to copy demo step YAML", int32(panelX), int32(panelY), 12, rl.LightGray)
	if rl.IsKeyPressed(rl.KeyC) {
		rl.SetClipboardText(demoStepYAML(*c))
	}
}

// slider draws a labelled slider at *y and advances it.
func slider(label string, y *float32, x, value, lo, hi float32, format string) float32 {
	rl.DrawText(label, int32(x), int32(*y), 14, rl.Gray)
	*y += 18
	v := gui.SliderBar(
		rl.Rectangle{X: x, Y: *y, Width: sliderWidth, Height: 20},
		"", "",
		value, lo, hi,
	)
	rl.DrawText(fmt.Sprintf(format, v), int32(x+sliderWidth+10), int32(*y+2), 16, rl.DarkGray)
	*y += 30
	return v
}

func toggleText(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}

// rampPixels samples palette c.Palette across [0,1].
func rampPixels(eval *palette.Evaluator, c strip.Controls, n int) []color.RGBA {
	pixels := make([]color.RGBA, n)
	for i := range pixels {
		x := float32(i) / float32(max(n-1, 1))
		pixels[i] = palette.ToRGBA(eval.Evaluate(c.Palette, c.Back, c.Fore, x))
	}
	return pixels
}

// demoStepYAML formats c as an entry of the config demo list.
func demoStepYAML(c strip.Controls) string {
	return fmt.Sprintf(`- { seconds: 4, effect: %d, palette: %d, control: %.2f, smooth: %.2f, back: "%s", fore: "%s" }`,
		c.Effect, c.Palette, c.Control, c.Smooth, c.Back.Clamped().Hex(), c.Fore.Clamped().Hex())
}
