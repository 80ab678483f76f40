package palette

import (
	"fmt"
	"math/rand"

	"github.com/lucasb-eyer/go-colorful"
)

// PreTransform reshapes the scalar before the palette sees it.
type PreTransform uint8

const (
	PreNone PreTransform = iota
	PreBias
	PreFizzle
)

// Palette is one entry of the palette table.
type Palette struct {
	Name     string
	Stops    []Stop    // Symbolic stops; ignored when Generate is set
	Blend    BlendKind // Operator between adjacent stops
	Pre      PreTransform
	Generate Generator
}

// Palette id layout. Ids below Procedural are stop palettes:
// operator·8 + stop set, then the biased and fizzled linear sets.
const (
	Biased     = 32
	Fizzled    = 40
	Procedural = 48
)

var table = buildTable()

func buildTable() []Palette {
	var t []Palette
	for _, kind := range []BlendKind{Linear, HSV, Add, Difference} {
		for i, set := range stopSets {
			t = append(t, Palette{
				Name:  fmt.Sprintf("%s/%s", kind, stopSetNames[i]),
				Stops: set,
				Blend: kind,
			})
		}
	}
	for _, pre := range []PreTransform{PreBias, PreFizzle} {
		prefix := "bias"
		if pre == PreFizzle {
			prefix = "fizzle"
		}
		for i, set := range stopSets {
			t = append(t, Palette{
				Name:  fmt.Sprintf("%s/%s", prefix, stopSetNames[i]),
				Stops: set,
				Blend: Linear,
				Pre:   pre,
			})
		}
	}
	t = append(t,
		Palette{Name: "rainbow", Generate: Rainbow},
		Palette{Name: "blackbody", Generate: Blackbody},
		Palette{Name: "fire", Generate: Fire},
		Palette{Name: "heat", Generate: Heat},
		Palette{Name: "oil", Generate: Oil},
		Palette{Name: "neon", Generate: Neon},
	)
	return t
}

// Lookup returns the palette for id.
func Lookup(id int) (Palette, bool) {
	if id < 0 || id >= len(table) {
		return Palette{}, false
	}
	return table[id], true
}

// Count returns the number of palette ids; valid ids are [0, Count).
func Count() int {
	return len(table)
}

// Evaluator maps scalars to corrected colors. The fizzle pre-transform
// draws from rng, so an Evaluator must stay on one goroutine.
type Evaluator struct {
	rng *rand.Rand
}

// NewEvaluator creates an evaluator. A nil rng gets a fixed-seed source.
func NewEvaluator(rng *rand.Rand) *Evaluator {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &Evaluator{rng: rng}
}

// Evaluate returns the corrected color of scalar x under palette id.
// x is clamped to [0,1] (NaN → 0); unknown ids return black.
func (e *Evaluator) Evaluate(id int, back, fore colorful.Color, x float32) colorful.Color {
	p, ok := Lookup(id)
	if !ok {
		return Off
	}

	t := Clamp01(float64(x))
	switch p.Pre {
	case PreBias:
		t = Bias(t)
	case PreFizzle:
		t = Clamp01(t - fizzleOffset(e.rng.Float64()))
	}

	if p.Generate != nil {
		return Correct(p.Generate(t))
	}

	var buf [maxStops]colorful.Color
	colors := buf[:len(p.Stops)]
	for i, s := range p.Stops {
		colors[i] = s.resolve(back, fore)
	}
	return Correct(Stops{Colors: colors, Blend: p.Blend}.At(t))
}
