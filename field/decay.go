package field

import "math/rand"

// Fade lowers every pixel so a full-scale pixel reaches zero after fadeTime seconds.
func (f *Field) Fade(dt, fadeTime float32) {
	step := dt / (fadeTime + epsilon)
	for i, v := range f.Current {
		f.Current[i] = Clamp(v - step)
	}
}

// Fizzle is Fade with an independent random decay time per pixel, which
// dissolves the strip instead of dimming it evenly.
func (f *Field) Fizzle(dt, fizzleTime float32, rng *rand.Rand) {
	span := 0.25 + 2*fizzleTime
	for i, v := range f.Current {
		t := span * rng.Float32()
		f.Current[i] = Clamp(v - dt/(t+epsilon))
	}
}
