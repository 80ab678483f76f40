// Package effect maps effect ids onto programs of field primitives.
package effect

import (
	"fmt"
	"math/rand"
	"slices"

	"github.com/pthm-cable/glow/config"
	"github.com/pthm-cable/glow/field"
	"github.com/pthm-cable/glow/noise"
)

// Input is the part of the controls an effect reads.
type Input struct {
	Control float32
	Smooth  float32
}

// Frame is what a step sees of the frame being rendered.
type Frame struct {
	Field   *field.Field
	Control float32
	Smooth  float32
	RNG     *rand.Rand
}

// Step is one primitive bound to its parameters.
type Step func(fr Frame)

// Program is the ordered list of steps an effect runs each frame.
type Program []Step

// Entry describes a registered effect.
type Entry struct {
	ID      int
	Name    string
	Family  string // Grouping (e.g., "generator", "meter")
	Program Program
}

// Dispatcher holds the effect table and the sources its programs share.
// Programs only read the dispatcher, so one dispatcher may serve many
// strips concurrently.
type Dispatcher struct {
	entries map[int]Entry
	effects config.EffectsConfig
	noise   config.NoiseConfig
	perlin  *noise.Perlin
	simplex *noise.Simplex
}

// NewDispatcher creates a dispatcher with every built-in effect.
func NewDispatcher(effects config.EffectsConfig, nc config.NoiseConfig) *Dispatcher {
	perlin := noise.New(nil)
	if nc.Seed != noise.DefaultSeed {
		perlin = noise.NewSeeded(nc.Seed)
	}
	d := &Dispatcher{
		entries: make(map[int]Entry),
		effects: effects,
		noise:   nc,
		perlin:  perlin,
		simplex: noise.NewSimplex(nc.Seed),
	}
	d.registerDefaults()
	return d
}

// Register adds or replaces an effect.
func (d *Dispatcher) Register(e Entry) {
	d.entries[e.ID] = e
}

// Apply runs effect id against f. Unknown ids leave the field untouched
// and report false.
func (d *Dispatcher) Apply(id int, in Input, f *field.Field, rng *rand.Rand) bool {
	e, ok := d.entries[id]
	if !ok {
		return false
	}
	fr := Frame{
		Field:   f,
		Control: field.Clamp(in.Control),
		Smooth:  field.Clamp(in.Smooth),
		RNG:     rng,
	}
	for _, step := range e.Program {
		step(fr)
	}
	return true
}

// Known reports whether id is registered.
func (d *Dispatcher) Known(id int) bool {
	_, ok := d.entries[id]
	return ok
}

// Lookup returns the entry for id.
func (d *Dispatcher) Lookup(id int) (Entry, bool) {
	e, ok := d.entries[id]
	return e, ok
}

// IDs returns every registered id in ascending order.
func (d *Dispatcher) IDs() []int {
	ids := make([]int, 0, len(d.entries))
	for id := range d.entries {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Name returns the display name for id.
// Falls back to the numeric id if not found.
func (d *Dispatcher) Name(id int) string {
	if e, ok := d.entries[id]; ok {
		return e.Name
	}
	return fmt.Sprintf("effect %d", id)
}
