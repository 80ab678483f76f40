package telemetry

import (
	"log/slog"
	"time"
)

// Phase is a timed section of a strip frame.
type Phase uint8

// Frame phases in execution order.
const (
	PhaseEffect Phase = iota
	PhasePalette
	PhaseCommit
	numPhases
)

// Phases lists every phase in execution order.
var Phases = []Phase{PhaseEffect, PhasePalette, PhaseCommit}

var phaseNames = [numPhases]string{"effect", "palette", "commit"}

func (ph Phase) String() string {
	if ph < numPhases {
		return phaseNames[ph]
	}
	return "unknown"
}

// frameSample is the timing of one frame. ran marks the phases started.
type frameSample struct {
	total  time.Duration
	phases [numPhases]time.Duration
	ran    [numPhases]bool
}

// PerfCollector tracks frame timings and the presented frame rate over a
// rolling window of frames. It is owned by one strip and not safe for
// concurrent use.
type PerfCollector struct {
	samples []frameSample
	next    int
	count   int

	current    frameSample
	frameStart time.Time
	phaseStart time.Time
	phase      Phase
	inPhase    bool

	// Ring of wall-clock gaps between presented frames
	presents     []time.Duration
	presentNext  int
	presentCount int
	lastPresent  time.Time
}

// NewPerfCollector creates a collector averaging over window frames
// (100 frames is one second at the default rate).
func NewPerfCollector(window int) *PerfCollector {
	if window < 1 {
		window = 100
	}
	return &PerfCollector{
		samples:  make([]frameSample, window),
		presents: make([]time.Duration, window),
	}
}

// StartFrame begins timing a new frame.
func (p *PerfCollector) StartFrame() {
	p.frameStart = time.Now()
	p.current = frameSample{}
	p.inPhase = false
}

// StartPhase closes the running phase, if any, and starts ph.
func (p *PerfCollector) StartPhase(ph Phase) {
	now := time.Now()
	p.closePhase(now)
	p.phaseStart = now
	p.phase = ph
	p.inPhase = ph < numPhases
	if p.inPhase {
		p.current.ran[ph] = true
	}
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.inPhase {
		p.current.phases[p.phase] += now.Sub(p.phaseStart)
	}
}

// EndFrame closes the running phase and records the frame.
func (p *PerfCollector) EndFrame() {
	now := time.Now()
	p.closePhase(now)
	p.inPhase = false
	p.current.total = now.Sub(p.frameStart)

	p.samples[p.next] = p.current
	p.next = (p.next + 1) % len(p.samples)
	p.count = min(p.count+1, len(p.samples))
}

// RecordPresent marks the moment a frame reached the display. The gaps
// between calls give the presented frame rate.
func (p *PerfCollector) RecordPresent() {
	p.recordPresentAt(time.Now())
}

func (p *PerfCollector) recordPresentAt(now time.Time) {
	if !p.lastPresent.IsZero() && now.After(p.lastPresent) {
		p.presents[p.presentNext] = now.Sub(p.lastPresent)
		p.presentNext = (p.presentNext + 1) % len(p.presents)
		p.presentCount = min(p.presentCount+1, len(p.presents))
	}
	p.lastPresent = now
}

// PerfStats aggregates the window.
type PerfStats struct {
	AvgFrameDuration time.Duration
	MinFrameDuration time.Duration
	MaxFrameDuration time.Duration

	// Per phase, indexed by Phase
	PhaseAvg    [numPhases]time.Duration
	PhasePct    [numPhases]float64
	PhaseFrames [numPhases]int

	// Frames the engine could compute per second
	FramesPerSecond float64

	// Mean gap between presented frames and its rate; zero until two
	// frames were presented
	PresentInterval time.Duration
	FPS             float64
}

// Stats computes statistics over the current window.
func (p *PerfCollector) Stats() PerfStats {
	var s PerfStats

	if p.presentCount > 0 {
		var sum time.Duration
		for _, gap := range p.presents[:p.presentCount] {
			sum += gap
		}
		s.PresentInterval = sum / time.Duration(p.presentCount)
		if s.PresentInterval > 0 {
			s.FPS = float64(time.Second) / float64(s.PresentInterval)
		}
	}

	if p.count == 0 {
		return s
	}

	var total time.Duration
	var phaseSum [numPhases]time.Duration
	for i, smp := range p.samples[:p.count] {
		total += smp.total
		if i == 0 || smp.total < s.MinFrameDuration {
			s.MinFrameDuration = smp.total
		}
		s.MaxFrameDuration = max(s.MaxFrameDuration, smp.total)
		for ph := range numPhases {
			phaseSum[ph] += smp.phases[ph]
			if smp.ran[ph] {
				s.PhaseFrames[ph]++
			}
		}
	}

	n := time.Duration(p.count)
	s.AvgFrameDuration = total / n
	for ph := range numPhases {
		s.PhaseAvg[ph] = phaseSum[ph] / n
		if s.AvgFrameDuration > 0 {
			s.PhasePct[ph] = float64(s.PhaseAvg[ph]) / float64(s.AvgFrameDuration) * 100
		}
	}
	if s.AvgFrameDuration > 0 {
		s.FramesPerSecond = float64(time.Second) / float64(s.AvgFrameDuration)
	}
	return s
}

// LogValue implements slog.LogValuer.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_frame_us", s.AvgFrameDuration.Microseconds()),
		slog.Int64("max_frame_us", s.MaxFrameDuration.Microseconds()),
		slog.Float64("frames_per_sec", s.FramesPerSecond),
	}
	if s.FPS > 0 {
		attrs = append(attrs, slog.Float64("fps", s.FPS))
	}
	for _, ph := range Phases {
		if pct := s.PhasePct[ph]; pct > 0.1 {
			attrs = append(attrs, slog.Float64(ph.String()+"_pct", float64(int(pct*10))/10))
		}
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is one perf.csv row.
type PerfStatsCSV struct {
	Strip           int     `csv:"strip"`
	Frame           int64   `csv:"frame"`
	AvgFrameUS      int64   `csv:"avg_frame_us"`
	MinFrameUS      int64   `csv:"min_frame_us"`
	MaxFrameUS      int64   `csv:"max_frame_us"`
	FramesPerSecond float64 `csv:"frames_per_sec"`
	FPS             float64 `csv:"fps"`
	EffectPct       float64 `csv:"effect_pct"`
	PalettePct      float64 `csv:"palette_pct"`
	CommitPct       float64 `csv:"commit_pct"`
}

// ToCSV flattens s into a row for strip at frame.
func (s PerfStats) ToCSV(strip int, frame int64) PerfStatsCSV {
	return PerfStatsCSV{
		Strip:           strip,
		Frame:           frame,
		AvgFrameUS:      s.AvgFrameDuration.Microseconds(),
		MinFrameUS:      s.MinFrameDuration.Microseconds(),
		MaxFrameUS:      s.MaxFrameDuration.Microseconds(),
		FramesPerSecond: s.FramesPerSecond,
		FPS:             s.FPS,
		EffectPct:       s.PhasePct[PhaseEffect],
		PalettePct:      s.PhasePct[PhasePalette],
		CommitPct:       s.PhasePct[PhaseCommit],
	}
}
