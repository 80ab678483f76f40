package field

// Origin selects where meters and tickers start from.
type Origin uint8

const (
	Start Origin = iota // First pixel
	End                 // Last pixel
	Mid                 // Centre, growing outwards
	Ends                // Both ends, growing inwards
)

// Origins lists every origin in id order.
var Origins = []Origin{Start, End, Mid, Ends}

func (o Origin) String() string {
	switch o {
	case Start:
		return "start"
	case End:
		return "end"
	case Mid:
		return "mid"
	case Ends:
		return "ends"
	}
	return "unknown"
}

// shiftSlack lets float error in delta·N still reach a whole pixel.
const shiftSlack = 1e-3

// Scroll rotates the strip so its committed position follows target.
// The delta is the shortest way around the loop; only whole pixels are
// applied and the remainder stays pending, so slow scrolls do not
// stutter. Returns the applied shift.
func (f *Field) Scroll(target float32) int {
	shift := f.pendingShift(target)
	if shift == 0 {
		return 0
	}
	f.rotate(0, f.Len(), shift)
	f.commitScroll(shift)
	return shift
}

// ScrollSplit scrolls the two halves of the strip independently, each by
// the same shift times its own direction (+1 or -1).
func (f *Field) ScrollSplit(target float32, lowerDir, upperDir int) int {
	shift := f.pendingShift(target)
	if shift == 0 {
		return 0
	}
	h := f.Len() / 2
	if h > 0 {
		f.rotate(0, h, shift*lowerDir)
	}
	f.rotate(h, f.Len(), shift*upperDir)
	f.commitScroll(shift)
	return shift
}

func (f *Field) pendingShift(target float32) int {
	f.scrolled = true
	d := float64(wrap01(Clamp(target)) - f.scrollPos)
	if d > 0.5 {
		d--
	} else if d <= -0.5 {
		d++
	}
	s := d * float64(f.Len())
	if s > 0 {
		return int(s + shiftSlack)
	}
	return int(s - shiftSlack)
}

func (f *Field) commitScroll(shift int) {
	f.scrollPos = wrap01(f.scrollPos + float32(shift)/float32(f.Len()))
}

// rotate resamples [lo,hi) of Previous into Current, circularly shifted
// by shift pixels towards higher indices.
func (f *Field) rotate(lo, hi, shift int) {
	n := hi - lo
	if n <= 0 {
		return
	}
	for i := 0; i < n; i++ {
		f.Current[lo+i] = Clamp(f.Previous[lo+mod(i-shift, n)])
	}
}

// Ticker pushes the strip away from origin at speed pixels per second,
// injecting value into the vacated pixels. Nothing wraps around: pixels
// pushed past the far end are lost. The origin pixels always show value.
func (f *Field) Ticker(dt, speed, value float32, origin Origin) {
	value = Clamp(value)
	f.tickerAdvance += speed * dt
	k := int(f.tickerAdvance)
	f.tickerAdvance -= float32(k)

	n := f.Len()
	h := n / 2
	switch origin {
	case Start:
		f.push(0, n, k, 1, value)
	case End:
		f.push(0, n, k, -1, value)
	case Mid:
		f.push(0, h, k, -1, value)
		f.push(h, n, k, 1, value)
	case Ends:
		f.push(0, h, k, 1, value)
		f.push(h, n, k, -1, value)
	}
}

// push shifts [lo,hi) by k pixels in direction dir (+1 towards higher
// indices), filling from the trailing edge with value.
func (f *Field) push(lo, hi, k, dir int, value float32) {
	n := hi - lo
	if n <= 0 {
		return
	}
	if k > 0 {
		for i := 0; i < n; i++ {
			src := i - k*dir
			if src < 0 || src >= n {
				f.Current[lo+i] = value
			} else {
				f.Current[lo+i] = Clamp(f.Previous[lo+src])
			}
		}
	}
	if dir > 0 {
		f.Current[lo] = value
	} else {
		f.Current[hi-1] = value
	}
}
