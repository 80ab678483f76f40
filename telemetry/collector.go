package telemetry

// Collector accumulates frames of one strip and produces WindowStats.
type Collector struct {
	strip     int
	windowSec float64

	windowStart float64
	frames      int
	unknown     int
	levels      []float64
	motionMax   float64
	litSum      int
	last        FrameStats
}

// NewCollector creates a collector for strip.
// windowSec: how long each stats window lasts in simulated seconds.
func NewCollector(strip int, windowSec float64) *Collector {
	if windowSec <= 0 {
		windowSec = 1
	}
	return &Collector{
		strip:     strip,
		windowSec: windowSec,
		levels:    make([]float64, 0, 512),
	}
}

// Record adds a frame to the current window.
func (c *Collector) Record(s FrameStats) {
	c.frames++
	if !s.Known {
		c.unknown++
	}
	c.levels = append(c.levels, s.Level)
	c.motionMax = max(c.motionMax, s.Motion)
	c.litSum += s.Lit
	c.last = s
}

// ShouldFlush returns true if the window has covered windowSec.
func (c *Collector) ShouldFlush() bool {
	return c.frames > 0 && c.last.TimeSec-c.windowStart >= c.windowSec
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush() WindowStats {
	mean, p10, p50, p90 := ComputeLevelStats(c.levels)

	var litMean float64
	if c.frames > 0 {
		litMean = float64(c.litSum) / float64(c.frames)
	}

	stats := WindowStats{
		Strip:         c.strip,
		WindowEnd:     c.last.Frame,
		TimeSec:       c.last.TimeSec,
		Frames:        c.frames,
		Effect:        c.last.Effect,
		Palette:       c.last.Palette,
		UnknownFrames: c.unknown,
		LevelMean:     mean,
		LevelP10:      p10,
		LevelP50:      p50,
		LevelP90:      p90,
		MotionMax:     c.motionMax,
		LitMean:       litMean,
	}

	c.windowStart = c.last.TimeSec
	c.frames = 0
	c.unknown = 0
	c.levels = c.levels[:0]
	c.motionMax = 0
	c.litSum = 0

	return stats
}
