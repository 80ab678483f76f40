// Command stripterm renders one strip in the terminal and reads control
// commands typed as lines (m12, p4, c128, ...). Esc or q quits.
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log/slog"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/pthm-cable/glow/config"
	"github.com/pthm-cable/glow/palette"
	"github.com/pthm-cable/glow/rig"
	"github.com/pthm-cable/glow/strip"
)

type term struct {
	screen   tcell.Screen
	strip    *strip.Strip
	controls strip.Controls
	line     []rune
	status   string
	start    time.Time
}

func newTerm(cfg *config.Config, length int) (*term, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("initializing screen: %w", err)
	}

	t := &term{
		screen: screen,
		controls: strip.Controls{
			Effect:  10,
			Control: 0.5,
			Smooth:  0.5,
			Back:    colorful.Color{B: 160.0 / 255},
			Fore:    colorful.Color{R: 1, G: 1, B: 1},
		},
		start: time.Now(),
	}
	if len(cfg.Demo) > 0 {
		t.controls = rig.ControlsFromDemo(cfg.Demo[0])
	}
	t.strip = strip.NewFromConfig(cfg, length, t.setPixel)
	return t, nil
}

// setPixel draws pixel i as two full blocks on the top row.
func (t *term) setPixel(i int, c color.RGBA) {
	style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
	t.screen.SetContent(2*i, 0, '█', nil, style)
	t.screen.SetContent(2*i+1, 0, '█', nil, style)
}

func (t *term) drawText(y int, s string) {
	w, _ := t.screen.Size()
	for x := 0; x < w; x++ {
		r := ' '
		if x < len(s) {
			r = rune(s[x])
		}
		t.screen.SetContent(x, y, r, nil, tcell.StyleDefault)
	}
}

func (t *term) frame() {
	t.strip.Update(t.controls, time.Since(t.start))

	c := t.controls
	d := t.strip.Dispatcher()
	name := "unknown"
	if p, ok := palette.Lookup(c.Palette); ok {
		name = p.Name
	}
	t.drawText(2, fmt.Sprintf("effect %d (%s)  palette %d (%s)  control %.2f  smooth %.2f",
		c.Effect, d.Name(c.Effect), c.Palette, name, c.Control, c.Smooth))
	t.drawText(3, "> "+string(t.line))
	t.drawText(4, t.status)
	t.screen.Show()
}

// handleKey returns false when the user asked to quit.
func (t *term) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyEnter:
		if err := applyCommand(string(t.line), &t.controls); err != nil {
			t.status = err.Error()
		} else {
			t.status = ""
		}
		t.line = t.line[:0]
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if len(t.line) > 0 {
			t.line = t.line[:len(t.line)-1]
		}
	case tcell.KeyRune:
		if ev.Rune() == 'q' && len(t.line) == 0 {
			return false
		}
		t.line = append(t.line, ev.Rune())
	}
	return true
}

type eventSource interface {
	PollEvent() tcell.Event
}

// pollEvents forwards events until src returns nil, which tcell does once
// the screen is finalized, then closes events.
func pollEvents(src eventSource, events chan<- tcell.Event) {
	defer close(events)
	for {
		ev := src.PollEvent()
		if ev == nil {
			return
		}
		events <- ev
	}
}

func (t *term) run(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go pollEvents(t.screen, events)

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if !t.handleKey(ev) {
					return
				}
			case *tcell.EventResize:
				t.screen.Sync()
			}
		case <-ticker.C:
			t.frame()
		}
	}
}

func main() {
	configPath := flag.String("config", "", "Path to config YAML file (empty = use embedded defaults)")
	length := flag.Int("length", 0, "Pixels in the strip (0 = config strip.length)")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()
	if *length <= 0 {
		*length = cfg.Strip.Length
	}

	t, err := newTerm(cfg, *length)
	if err != nil {
		slog.Error("failed to start terminal", "error", err)
		os.Exit(1)
	}
	defer t.screen.Fini()

	t.run(cfg.Derived.FrameInterval)
}
