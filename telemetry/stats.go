// Package telemetry provides frame timing and per-strip statistics with CSV output.
package telemetry

import (
	"log/slog"
	"sort"
)

// FrameStats describes one rendered frame of a strip.
type FrameStats struct {
	Frame   int64   // Frames rendered so far, this one included
	TimeSec float64 // Accumulated simulated time
	Effect  int
	Palette int
	Known   bool    // Effect id was registered
	Level   float64 // Mean scalar value
	Motion  float64 // Total absolute velocity
	Lit     int     // Pixels with a non-black output color
}

// LogValue implements slog.LogValuer for structured logging.
func (s FrameStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("frame", s.Frame),
		slog.Float64("time", s.TimeSec),
		slog.Int("effect", s.Effect),
		slog.Int("palette", s.Palette),
		slog.Bool("known", s.Known),
		slog.Float64("level", s.Level),
		slog.Float64("motion", s.Motion),
		slog.Int("lit", s.Lit),
	)
}

// WindowStats holds aggregated statistics of one strip over a window.
type WindowStats struct {
	Strip     int     `csv:"strip"`
	WindowEnd int64   `csv:"window_end"`
	TimeSec   float64 `csv:"time"`
	Frames    int     `csv:"frames"`

	// Controls at window end
	Effect  int `csv:"effect"`
	Palette int `csv:"palette"`

	// Frames that ran an unregistered effect
	UnknownFrames int `csv:"unknown_frames"`

	// Mean scalar level distribution over the window
	LevelMean float64 `csv:"level_mean"`
	LevelP10  float64 `csv:"level_p10"`
	LevelP50  float64 `csv:"level_p50"`
	LevelP90  float64 `csv:"level_p90"`

	MotionMax float64 `csv:"motion_max"`
	LitMean   float64 `csv:"lit_mean"`
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// ComputeLevelStats calculates mean and percentiles of level samples.
func ComputeLevelStats(values []float64) (mean, p10, p50, p90 float64) {
	n := len(values)
	if n == 0 {
		return 0, 0, 0, 0
	}

	var sum float64
	for _, v := range values {
		sum += v
	}
	mean = sum / float64(n)

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	return mean, Percentile(sorted, 0.10), Percentile(sorted, 0.50), Percentile(sorted, 0.90)
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("strip", s.Strip),
		slog.Int64("window_end", s.WindowEnd),
		slog.Float64("time", s.TimeSec),
		slog.Int("frames", s.Frames),
		slog.Int("effect", s.Effect),
		slog.Int("palette", s.Palette),
		slog.Int("unknown_frames", s.UnknownFrames),
		slog.Float64("level_mean", s.LevelMean),
		slog.Float64("level_p10", s.LevelP10),
		slog.Float64("level_p50", s.LevelP50),
		slog.Float64("level_p90", s.LevelP90),
		slog.Float64("motion_max", s.MotionMax),
		slog.Float64("lit_mean", s.LitMean),
	)
}
