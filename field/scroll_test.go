package field

import (
	"math/rand"
	"testing"
)

func randomPrevious(f *Field, seed int64) {
	rng := rand.New(rand.NewSource(seed))
	for i := range f.Previous {
		f.Previous[i] = rng.Float32()
	}
	copy(f.Current, f.Previous)
}

func TestScrollMovesLitPixel(t *testing.T) {
	f := New(30)
	f.Begin(0, 0, 0)
	f.Previous[0] = 1
	copy(f.Current, f.Previous)

	if shift := f.Scroll(1.0 / 30); shift != 1 {
		t.Fatalf("expected shift 1, got %d", shift)
	}
	if f.Current[1] != 1 || f.Current[0] != 0 {
		t.Errorf("expected lit pixel at index 1, got current[0]=%v current[1]=%v", f.Current[0], f.Current[1])
	}
}

func TestScrollInvariant(t *testing.T) {
	const n = 24
	for _, k := range []int{1, 2, 5, -1, -3, 11, -11} {
		f := New(n)
		f.Begin(0, 0, 0)
		randomPrevious(f, int64(k+100))

		target := float32(k) / n
		if target < 0 {
			target++
		}
		shift := f.Scroll(target)
		if shift != k {
			t.Fatalf("target %v: expected shift %d, got %d", target, k, shift)
		}
		for i := 0; i < n; i++ {
			if f.Current[i] != f.Previous[mod(i-k, n)] {
				t.Errorf("k=%d: current[%d]=%v, want previous[%d]=%v", k, i, f.Current[i], mod(i-k, n), f.Previous[mod(i-k, n)])
			}
		}
	}
}

func TestScrollNetZeroKeepsFrame(t *testing.T) {
	f := New(10)
	f.Begin(0, 0, 0.4)
	randomPrevious(f, 9)
	f.Current[3] = 0.123

	if shift := f.Scroll(0.4); shift != 0 {
		t.Fatalf("expected no shift, got %d", shift)
	}
	if f.Current[3] != 0.123 {
		t.Errorf("expected frame left as written, got %v", f.Current[3])
	}
}

func TestScrollAccumulatesSubPixelSteps(t *testing.T) {
	f := New(30)
	f.Begin(0, 0, 0)

	targets := []float32{0.01, 0.02, 0.03, 0.04, 0.05}
	want := []int{0, 0, 0, 1, 0}
	for i, target := range targets {
		if got := f.Scroll(target); got != want[i] {
			t.Errorf("step %d (target %v): shift %d, want %d", i, target, got, want[i])
		}
	}
	if !near(f.ScrollPos(), 1.0/30, 1e-6) {
		t.Errorf("expected scroll position 1/30, got %v", f.ScrollPos())
	}
}

func TestScrollTakesShortestWay(t *testing.T) {
	f := New(30)
	f.Begin(0, 0, 0)
	randomPrevious(f, 4)

	// 0 -> 0.95 is 0.05 backwards, not 0.95 forwards
	if shift := f.Scroll(0.95); shift != -1 {
		t.Errorf("expected shift -1, got %d", shift)
	}
	if !near(f.ScrollPos(), 1-1.0/30, 1e-6) {
		t.Errorf("expected wrapped scroll position, got %v", f.ScrollPos())
	}
}

func TestScrollSplit(t *testing.T) {
	const n = 10
	f := New(n)
	f.Begin(0, 0, 0)
	randomPrevious(f, 12)

	// Lower half moves down, upper half moves up
	if shift := f.ScrollSplit(0.1, -1, 1); shift != 1 {
		t.Fatalf("expected shift 1, got %d", shift)
	}
	h := n / 2
	for i := 0; i < h; i++ {
		if want := f.Previous[mod(i+1, h)]; f.Current[i] != want {
			t.Errorf("lower[%d]=%v, want %v", i, f.Current[i], want)
		}
	}
	for i := 0; i < n-h; i++ {
		if want := f.Previous[h+mod(i-1, n-h)]; f.Current[h+i] != want {
			t.Errorf("upper[%d]=%v, want %v", i, f.Current[h+i], want)
		}
	}
}

func TestTickerStart(t *testing.T) {
	f := New(10)
	f.Begin(0, 0, 0)
	randomPrevious(f, 5)

	f.Ticker(0.1, 10, 0.9, Start)
	if !near(f.Current[0], 0.9, 1e-7) {
		t.Errorf("expected injected value at start, got %v", f.Current[0])
	}
	for i := 1; i < 10; i++ {
		if f.Current[i] != f.Previous[i-1] {
			t.Errorf("pixel %d: got %v, want %v", i, f.Current[i], f.Previous[i-1])
		}
	}
}

func TestTickerEndAndSubPixel(t *testing.T) {
	f := New(10)
	f.Begin(0, 0, 0)
	randomPrevious(f, 6)

	// Half a pixel: nothing moves yet but the origin shows the value
	f.Ticker(0.1, 5, 1, End)
	if f.Current[9] != 1 {
		t.Errorf("expected origin lit, got %v", f.Current[9])
	}
	for i := 0; i < 9; i++ {
		if f.Current[i] != f.Previous[i] {
			t.Fatalf("pixel %d moved before a whole pixel accumulated", i)
		}
	}

	f.Commit(0, 0)
	f.Ticker(0.1, 5, 1, End)
	for i := 0; i < 9; i++ {
		if f.Current[i] != f.Previous[i+1] {
			t.Errorf("pixel %d: got %v, want %v", i, f.Current[i], f.Previous[i+1])
		}
	}
}

func TestTickerMidAndEnds(t *testing.T) {
	f := New(10)
	f.Begin(0, 0, 0)
	f.Ticker(0.1, 10, 1, Mid)
	if f.Current[4] != 1 || f.Current[5] != 1 {
		t.Errorf("expected centre pixels lit, got %v %v", f.Current[4], f.Current[5])
	}
	if f.Current[0] != 0 || f.Current[9] != 0 {
		t.Error("expected ends dark after one step from the middle")
	}

	g := New(10)
	g.Begin(0, 0, 0)
	g.Ticker(0.1, 10, 1, Ends)
	if g.Current[0] != 1 || g.Current[9] != 1 {
		t.Errorf("expected end pixels lit, got %v %v", g.Current[0], g.Current[9])
	}
	if g.Current[4] != 0 || g.Current[5] != 0 {
		t.Error("expected centre dark after one step from the ends")
	}
}
