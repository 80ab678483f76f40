// Package noise provides seeded gradient noise for strip effects.
package noise

import (
	"math"
	"math/rand"
	"sync"
)

// DefaultSeed seeds the process-wide permutation table.
const DefaultSeed = 42

// PermutationTable is a seeded bijection on [0,255], mirrored to 512
// entries so corner lookups never need a modulo. Immutable once built.
type PermutationTable struct {
	perm [512]uint8
}

// NewPermutationTable builds a table by Fisher-Yates shuffling 0..255
// with a generator seeded from seed.
func NewPermutationTable(seed int64) *PermutationTable {
	rng := rand.New(rand.NewSource(seed))

	var base [256]uint8
	for i := range base {
		base[i] = uint8(i)
	}

	// Shuffle
	for i := len(base) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		base[i], base[j] = base[j], base[i]
	}

	// Duplicate
	t := &PermutationTable{}
	for i := 0; i < 256; i++ {
		t.perm[i] = base[i]
		t.perm[i+256] = base[i]
	}
	return t
}

// At returns the permutation entry for i in [0,511].
func (t *PermutationTable) At(i int) int {
	return int(t.perm[i&511])
}

var defaultTable = sync.OnceValue(func() *PermutationTable {
	return NewPermutationTable(DefaultSeed)
})

// DefaultTable returns the shared table for DefaultSeed. It is built on
// first use and safe for concurrent readers.
func DefaultTable() *PermutationTable {
	return defaultTable()
}

// Sampler2D is implemented by every two-dimensional noise source.
type Sampler2D interface {
	Noise2D(x, y float64) float64
}

// Octaves configures fractal summation.
type Octaves struct {
	Count       int     // Layers summed (minimum 1)
	Persistence float64 // Amplitude multiplier per layer (0 = 0.5)
	Lacunarity  float64 // Frequency multiplier per layer (0 = 2)
}

func (o Octaves) normalized() Octaves {
	if o.Count < 1 {
		o.Count = 1
	}
	if o.Persistence <= 0 {
		o.Persistence = 0.5
	}
	if o.Lacunarity <= 0 {
		o.Lacunarity = 2
	}
	return o
}

// Perlin generates classic gradient noise from a permutation table.
type Perlin struct {
	table *PermutationTable
}

// New creates a Perlin generator. A nil table selects DefaultTable.
func New(table *PermutationTable) *Perlin {
	if table == nil {
		table = DefaultTable()
	}
	return &Perlin{table: table}
}

// NewSeeded creates a Perlin generator with its own table.
func NewSeeded(seed int64) *Perlin {
	return New(NewPermutationTable(seed))
}

// Noise1D returns single-octave noise for x in roughly [-0.5, 0.5].
func (p *Perlin) Noise1D(x float64) float64 {
	fx := math.Floor(x)
	X := int(int64(fx) & 255)
	xf := x - fx

	u := fade(xf)
	g0 := grad1D(p.table.At(X), xf)
	g1 := grad1D(p.table.At(X+1), xf-1)
	return lerp(u, g0, g1)
}

// Noise2D returns single-octave noise for (x, y) in roughly [-1, 1].
func (p *Perlin) Noise2D(x, y float64) float64 {
	fx := math.Floor(x)
	fy := math.Floor(y)
	X := int(int64(fx) & 255)
	Y := int(int64(fy) & 255)
	x -= fx
	y -= fy

	u := fade(x)
	v := fade(y)

	// Hash cell corners
	aa := p.table.At(p.table.At(X) + Y)
	ab := p.table.At(p.table.At(X) + Y + 1)
	ba := p.table.At(p.table.At(X+1) + Y)
	bb := p.table.At(p.table.At(X+1) + Y + 1)

	return lerp(v,
		lerp(u, grad2D(aa, x, y), grad2D(ba, x-1, y)),
		lerp(u, grad2D(ab, x, y-1), grad2D(bb, x-1, y-1)))
}

// Fractal1D sums octaves of Noise1D, doubling frequency and halving
// amplitude per layer. scale zooms the input; values at or below the
// smallest float32 fall back to 1.
func (p *Perlin) Fractal1D(x, scale float64, octaves int) float64 {
	if scale <= math.SmallestNonzeroFloat32 {
		scale = 1
	}
	return fractal(func(f float64) float64 {
		return p.Noise1D(x * f / scale)
	}, Octaves{Count: octaves})
}

// Fractal2D sums octaves of Noise2D with the given persistence and lacunarity.
func (p *Perlin) Fractal2D(x, y float64, o Octaves) float64 {
	return Fractal2D(p, x, y, o)
}

// Fractal2D sums octaves of any Sampler2D, normalized by total amplitude.
func Fractal2D(s Sampler2D, x, y float64, o Octaves) float64 {
	return fractal(func(f float64) float64 {
		return s.Noise2D(x*f, y*f)
	}, o)
}

func fractal(sample func(freq float64) float64, o Octaves) float64 {
	o = o.normalized()

	var total, maxValue float64
	frequency := 1.0
	amplitude := 1.0
	for i := 0; i < o.Count; i++ {
		total += sample(frequency) * amplitude
		maxValue += amplitude
		frequency *= o.Lacunarity
		amplitude *= o.Persistence
	}

	v := total / maxValue
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}
	return v
}

// fade is the quintic smoothstep 6t^5 - 15t^4 + 10t^3.
func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(t, a, b float64) float64 {
	return a + t*(b-a)
}

// grad1D picks a +1/-1 gradient from the low bit of the hash.
func grad1D(hash int, x float64) float64 {
	if hash&1 == 0 {
		return -x
	}
	return x
}

// grad2D picks one of eight gradient directions from the low three bits.
func grad2D(hash int, x, y float64) float64 {
	switch hash & 7 {
	case 0:
		return x
	case 1:
		return -x
	case 2:
		return y
	case 3:
		return -y
	case 4:
		return x + y
	case 5:
		return -x + y
	case 6:
		return x - y
	default:
		return -x - y
	}
}
