package field

import (
	"math"
	"math/rand"
	"testing"
)

func near(a, b float32, tol float64) bool {
	return math.Abs(float64(a-b)) <= tol
}

func TestNewMinimumLength(t *testing.T) {
	f := New(0)
	if f.Len() != 1 {
		t.Errorf("expected length 1 for n=0, got %d", f.Len())
	}
	f = New(30)
	if len(f.Current) != 30 || len(f.Previous) != 30 || len(f.Velocity) != 30 {
		t.Error("expected all buffers sized to 30")
	}
}

func TestClamp(t *testing.T) {
	nan := float32(math.NaN())
	inputs := []float32{-1, 0, 0.25, 1, 3, nan, float32(math.Inf(1)), float32(math.Inf(-1))}
	for _, x := range inputs {
		once := Clamp(x)
		if once < 0 || once > 1 {
			t.Errorf("Clamp(%v)=%v out of range", x, once)
		}
		if Clamp(once) != once {
			t.Errorf("Clamp not idempotent at %v", x)
		}
	}
	if Clamp(nan) != 0 {
		t.Error("expected Clamp(NaN)=0")
	}
}

func TestMod(t *testing.T) {
	cases := []struct{ i, n, want int }{
		{0, 5, 0}, {4, 5, 4}, {5, 5, 0}, {-1, 5, 4}, {-6, 5, 4}, {12, 5, 2},
	}
	for _, tc := range cases {
		if got := mod(tc.i, tc.n); got != tc.want {
			t.Errorf("mod(%d,%d)=%d, want %d", tc.i, tc.n, got, tc.want)
		}
	}
}

func TestBeginFirstFrame(t *testing.T) {
	f := New(10)
	f.Begin(0.05, 0.3, 0.7)

	if f.DT != 0 {
		t.Errorf("expected dt=0 on the first frame, got %v", f.DT)
	}
	if f.DrawPos() != 0.3 || f.ScrollPos() != 0.7 {
		t.Errorf("expected memories primed from controls, got draw=%v scroll=%v", f.DrawPos(), f.ScrollPos())
	}

	f.Begin(0.05, 0, 0)
	if f.DT != 0.05 {
		t.Errorf("expected dt=0.05, got %v", f.DT)
	}
	f.Begin(2, 0, 0)
	if f.DT != MaxDT {
		t.Errorf("expected dt clamped to %v, got %v", MaxDT, f.DT)
	}
	f.Begin(-1, 0, 0)
	if f.DT != 0 {
		t.Errorf("expected negative dt to become 0, got %v", f.DT)
	}
	f.Begin(float32(math.NaN()), 0, 0)
	if f.DT != 0 {
		t.Errorf("expected NaN dt to become 0, got %v", f.DT)
	}
}

func TestCommitCopiesAndRecords(t *testing.T) {
	f := New(4)
	f.Begin(0, 0, 0)
	copy(f.Current, []float32{0.1, 0.2, 0.3, 0.4})
	f.Commit(0.6, 0.9)

	for i := range f.Current {
		if f.Previous[i] != f.Current[i] {
			t.Errorf("previous[%d]=%v, want %v", i, f.Previous[i], f.Current[i])
		}
	}
	if f.LastControl() != 0.6 || f.LastSmooth() != 0.9 {
		t.Errorf("expected last controls recorded, got %v %v", f.LastControl(), f.LastSmooth())
	}
	if !near(f.Level(), 0.25, 1e-6) {
		t.Errorf("expected level 0.25, got %v", f.Level())
	}
}

func TestIndexUsesLastPixel(t *testing.T) {
	f := New(30)
	cases := []struct {
		x    float32
		want int
	}{
		{0, 0}, {1, 29}, {0.5, 15}, {-1, 0}, {2, 29}, {float32(math.NaN()), 0},
	}
	for _, tc := range cases {
		if got := f.Index(tc.x); got != tc.want {
			t.Errorf("Index(%v)=%d, want %d", tc.x, got, tc.want)
		}
	}
	if New(1).Index(0.9) != 0 {
		t.Error("single pixel strip must map everything to 0")
	}
}

func TestFade(t *testing.T) {
	f := New(5)
	f.Solid(1)
	f.Fade(0.1, 1)
	want := 1 - 0.1/(1+epsilon)
	for i, v := range f.Current {
		if !near(v, float32(want), 1e-6) {
			t.Errorf("pixel %d: got %v, want %v", i, v, want)
		}
	}

	for i := 0; i < 20; i++ {
		f.Fade(0.1, 1)
	}
	for i, v := range f.Current {
		if v != 0 {
			t.Errorf("pixel %d: expected fully faded, got %v", i, v)
		}
	}

	// Zero fade time empties the strip in a single step
	f.Solid(1)
	f.Fade(0.01, 0)
	if f.Current[0] != 0 {
		t.Errorf("expected instant fade, got %v", f.Current[0])
	}
}

func TestFizzleDissolves(t *testing.T) {
	f := New(200)
	f.Solid(1)
	rng := rand.New(rand.NewSource(3))
	f.Fizzle(0.05, 1, rng)

	lo, hi := float32(1), float32(0)
	for _, v := range f.Current {
		if v < 0 || v > 1 {
			t.Fatalf("fizzle produced out-of-range value %v", v)
		}
		lo = min(lo, v)
		hi = max(hi, v)
	}
	if hi-lo < 0.05 {
		t.Errorf("expected uneven decay, got range [%v, %v]", lo, hi)
	}
	// Never decays slower than the longest possible decay time
	if hi > 1-0.05/(2.25+epsilon)+1e-6 {
		t.Errorf("pixel decayed slower than allowed: %v", hi)
	}
}

func TestDrawLineJoinsPlots(t *testing.T) {
	f := New(11)
	f.Begin(0, 0, 0)

	f.DrawLine(0.5, 1)
	for i := 0; i <= 5; i++ {
		if f.Current[i] != 1 {
			t.Errorf("pixel %d should be lit", i)
		}
	}
	for i := 6; i < 11; i++ {
		if f.Current[i] != 0 {
			t.Errorf("pixel %d should be dark", i)
		}
	}
	if f.DrawPos() != 0.5 {
		t.Errorf("expected draw position 0.5, got %v", f.DrawPos())
	}

	// Drawing backwards fills the same way
	f.DrawLine(0.2, 0.6)
	for i := 2; i <= 5; i++ {
		if !near(f.Current[i], 0.6, 1e-7) {
			t.Errorf("pixel %d: got %v, want 0.6", i, f.Current[i])
		}
	}
	if f.Current[1] != 1 {
		t.Errorf("pixel 1 should keep its value, got %v", f.Current[1])
	}
}

func TestFillClampsIndices(t *testing.T) {
	f := New(5)
	f.Fill(10, -3, 2)
	for i, v := range f.Current {
		if v != 1 {
			t.Errorf("pixel %d: got %v, want 1", i, v)
		}
	}
}

func TestPlot(t *testing.T) {
	f := New(30)
	f.Plot(1, 0.5)
	if f.Current[29] != 0.5 {
		t.Errorf("expected last pixel plotted, got %v", f.Current[29])
	}
}

func TestDropAndRisingEdge(t *testing.T) {
	f := New(16)
	f.Begin(0, 0.2, 0)

	if !f.RisingEdge(0.8, 0.5) {
		t.Error("expected rising edge from 0.2 to 0.8")
	}
	if f.RisingEdge(0.4, 0.5) {
		t.Error("no edge below threshold")
	}

	rng := rand.New(rand.NewSource(1))
	i := f.Drop(rng, 1)
	if i < 0 || i >= f.Len() || f.Current[i] != 1 {
		t.Errorf("drop at %d not lit", i)
	}

	f.Commit(0.8, 0)
	if f.RisingEdge(0.9, 0.5) {
		t.Error("no edge while control stays high")
	}
}

func TestTimeAdvancesAfterLongUptime(t *testing.T) {
	f := New(4)
	f.Begin(0, 0, 0)
	f.Time = 4 * 24 * 3600
	start := f.Time

	for i := 0; i < 100; i++ {
		f.Begin(0.01, 0, 0)
	}
	if d := f.Time - start; math.Abs(d-1) > 1e-4 {
		t.Errorf("expected 1s of 10ms steps to accumulate, advanced %v", d)
	}
}

func TestMemoriesFollowInputWhileUnused(t *testing.T) {
	f := New(30)
	f.Begin(0, 0.2, 0)
	f.Commit(0.2, 0)

	// A frame that neither scrolls nor draws while the inputs move
	f.Begin(0.01, 0.8, 0.4)
	f.Commit(0.8, 0.4)

	f.Begin(0.01, 0.8, 0.4)
	if !near(f.ScrollPos(), 0.4, 1e-6) || f.DrawPos() != 0.8 {
		t.Fatalf("expected memories synced to last inputs, got scroll=%v draw=%v", f.ScrollPos(), f.DrawPos())
	}
	if shift := f.Scroll(0.4); shift != 0 {
		t.Errorf("unchanged smooth must not scroll, got shift %d", shift)
	}
}

func TestScrollKeepsRemainderAcrossFrames(t *testing.T) {
	f := New(30)
	f.Begin(0, 0, 0)

	// Sub-pixel steps spread over frames still add up to one pixel
	targets := []float32{0.01, 0.02, 0.03, 0.04}
	want := []int{0, 0, 0, 1}
	for i, target := range targets {
		if i > 0 {
			f.Begin(0.01, 0, target)
		}
		if got := f.Scroll(target); got != want[i] {
			t.Errorf("frame %d (target %v): shift %d, want %d", i, target, got, want[i])
		}
		f.Commit(0, target)
	}
}
