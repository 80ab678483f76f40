package field

// blurLeak is the fixed fraction lost per second while blurring.
const blurLeak = 0.1

// Blur diffuses Previous into Current: each pixel moves towards its
// neighbours by (rate+0.02)·dt·15 of each gradient, then leaks slightly.
// Edges reuse their own value for the missing neighbour. Large rate·dt
// overshoots; nothing checks stability.
func (f *Field) Blur(dt, rate float32) {
	n := f.Len()
	k := (rate + 0.02) * dt * 15
	keep := 1 - dt*blurLeak
	for i := 0; i < n; i++ {
		p := f.Previous[i]
		l := f.Previous[max(i-1, 0)]
		r := f.Previous[min(i+1, n-1)]
		v := p + k*(l-p) + k*(r-p)
		f.Current[i] = Clamp(v * keep)
	}
}

// WaveParams configures the spring-damper.
type WaveParams struct {
	Spring  float32 // Pull towards neighbours, per second²
	Damping float32 // Velocity loss, per second
	Bounce  float32 // Restitution at the [0,1] limits (0 = absorbed)
}

// Wave advances a mass-spring-damper per pixel with explicit Euler,
// reading positions from Previous. A pixel leaving [0,1] is clamped and
// its velocity reflected by Bounce.
func (f *Field) Wave(dt float32, p WaveParams) {
	n := f.Len()
	for i := 0; i < n; i++ {
		x := f.Previous[i]
		l := f.Previous[max(i-1, 0)]
		r := f.Previous[min(i+1, n-1)]

		vel := f.Velocity[i]
		accel := p.Spring*((l-x)+(r-x)) - p.Damping*vel
		vel += accel * dt
		x += vel * dt

		switch {
		case x != x:
			x, vel = 0, 0
		case x < 0:
			x = 0
			vel = -vel * p.Bounce
		case x > 1:
			x = 1
			vel = -vel * p.Bounce
		}
		f.Current[i] = x
		f.Velocity[i] = vel
	}
}

// Pin drives pixel i to value with zero velocity, acting as a boundary
// condition for Blur and Wave.
func (f *Field) Pin(i int, value float32) {
	f.Current[i] = Clamp(value)
	f.Velocity[i] = 0
}

// PinOrigin pins the pixels an origin names.
func (f *Field) PinOrigin(origin Origin, value float32) {
	n := f.Len()
	switch origin {
	case Start:
		f.Pin(0, value)
	case End:
		f.Pin(n-1, value)
	case Mid:
		f.Pin((n-1)/2, value)
		f.Pin(n/2, value)
	case Ends:
		f.Pin(0, value)
		f.Pin(n-1, value)
	}
}
