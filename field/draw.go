package field

import "math/rand"

// Fill sets every pixel between indices a and b inclusive, in either order.
func (f *Field) Fill(a, b int, value float32) {
	if a > b {
		a, b = b, a
	}
	a = max(a, 0)
	b = min(b, f.Len()-1)
	value = Clamp(value)
	for i := a; i <= b; i++ {
		f.Current[i] = value
	}
}

// Plot sets the single pixel at position at.
func (f *Field) Plot(at, value float32) {
	f.Set(f.Index(at), value)
}

// DrawLine fills from the end of the last line to position to and makes
// to the new end, so successive plots join into a stroke.
func (f *Field) DrawLine(to, value float32) {
	to = Clamp(to)
	f.Fill(f.Index(f.drawPos), f.Index(to), value)
	f.drawPos = to
	f.drew = true
}

// Drop sets a random pixel to value and returns its index.
func (f *Field) Drop(rng *rand.Rand, value float32) int {
	i := rng.Intn(f.Len())
	f.Set(i, value)
	return i
}

// RisingEdge reports whether control crossed threshold upwards since the
// previous frame.
func (f *Field) RisingEdge(control, threshold float32) bool {
	return f.lastControl <= threshold && Clamp(control) > threshold
}
