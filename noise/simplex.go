package noise

import (
	"github.com/ojrac/opensimplex-go"
)

// Simplex adapts OpenSimplex noise to Sampler2D.
type Simplex struct {
	noise opensimplex.Noise
}

// NewSimplex creates a seeded OpenSimplex source with output in [-1, 1].
func NewSimplex(seed int64) *Simplex {
	return &Simplex{noise: opensimplex.New(seed)}
}

// Noise2D implements Sampler2D.
func (s *Simplex) Noise2D(x, y float64) float64 {
	return s.noise.Eval2(x, y)
}
