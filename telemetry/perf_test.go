package telemetry

import (
	"testing"
	"time"
)

func TestPerfCollector_BasicTiming(t *testing.T) {
	pc := NewPerfCollector(10)

	for i := 0; i < 5; i++ {
		pc.StartFrame()
		pc.StartPhase(PhaseEffect)
		time.Sleep(100 * time.Microsecond)
		pc.StartPhase(PhasePalette)
		time.Sleep(200 * time.Microsecond)
		pc.EndFrame()
	}

	stats := pc.Stats()
	if stats.AvgFrameDuration <= 0 {
		t.Error("expected positive average frame duration")
	}
	if stats.PhaseFrames[PhaseEffect] != 5 || stats.PhaseFrames[PhasePalette] != 5 {
		t.Errorf("expected effect and palette in every frame, got %v", stats.PhaseFrames)
	}
	if stats.PhaseFrames[PhaseCommit] != 0 || stats.PhaseAvg[PhaseCommit] != 0 {
		t.Error("commit phase was never started")
	}
	if stats.PhasePct[PhasePalette] <= stats.PhasePct[PhaseEffect] {
		t.Errorf("expected palette (%v%%) > effect (%v%%)", stats.PhasePct[PhasePalette], stats.PhasePct[PhaseEffect])
	}
}

func TestPerfCollector_RollingWindow(t *testing.T) {
	pc := NewPerfCollector(5)

	for i := 0; i < 10; i++ {
		pc.StartFrame()
		pc.StartPhase(PhaseCommit)
		pc.EndFrame()
	}

	stats := pc.Stats()
	if stats.PhaseFrames[PhaseCommit] != 5 {
		t.Errorf("expected window of 5 frames, got %d", stats.PhaseFrames[PhaseCommit])
	}
	if stats.AvgFrameDuration <= 0 || stats.FramesPerSecond <= 0 {
		t.Errorf("expected positive timing, got %+v", stats)
	}
}

func TestPerfCollector_EmptyStats(t *testing.T) {
	stats := NewPerfCollector(10).Stats()
	if stats.AvgFrameDuration != 0 || stats.FPS != 0 {
		t.Errorf("expected zero stats for empty collector, got %+v", stats)
	}
}

func TestPerfCollector_PresentRate(t *testing.T) {
	pc := NewPerfCollector(4)
	t0 := time.Unix(1000, 0)

	pc.recordPresentAt(t0)
	if fps := pc.Stats().FPS; fps != 0 {
		t.Errorf("one present gives no rate, got %v", fps)
	}

	// 10ms gaps, then the window drops the first three
	for i := 1; i <= 3; i++ {
		pc.recordPresentAt(t0.Add(time.Duration(i) * 10 * time.Millisecond))
	}
	if s := pc.Stats(); s.PresentInterval != 10*time.Millisecond || s.FPS != 100 {
		t.Errorf("expected 10ms / 100fps, got %v / %v", s.PresentInterval, s.FPS)
	}
	last := t0.Add(30 * time.Millisecond)
	for i := 1; i <= 4; i++ {
		pc.recordPresentAt(last.Add(time.Duration(i) * 20 * time.Millisecond))
	}
	if s := pc.Stats(); s.PresentInterval != 20*time.Millisecond || s.FPS != 50 {
		t.Errorf("expected 20ms / 50fps after window rolled, got %v / %v", s.PresentInterval, s.FPS)
	}

	// Clock going backwards records nothing
	pc.recordPresentAt(t0)
	if s := pc.Stats(); s.PresentInterval != 20*time.Millisecond {
		t.Errorf("backwards present changed interval to %v", s.PresentInterval)
	}
}

func TestPerfStats_ToCSV(t *testing.T) {
	s := PerfStats{AvgFrameDuration: 250 * time.Microsecond, FPS: 99.5}
	s.PhasePct[PhaseEffect] = 60
	s.PhasePct[PhasePalette] = 30
	row := s.ToCSV(2, 500)
	if row.Strip != 2 || row.Frame != 500 || row.AvgFrameUS != 250 || row.FPS != 99.5 {
		t.Errorf("unexpected row header fields: %+v", row)
	}
	if row.EffectPct != 60 || row.PalettePct != 30 || row.CommitPct != 0 {
		t.Errorf("unexpected phase columns: %+v", row)
	}
}

func TestPhaseString(t *testing.T) {
	if PhaseEffect.String() != "effect" || PhaseCommit.String() != "commit" || Phase(9).String() != "unknown" {
		t.Error("unexpected phase names")
	}
}
