package beat

import "testing"

func TestSetTempoRejectsNonPositive(t *testing.T) {
	e := newDefaultEngine(t)
	if err := e.SetTempo(0); err == nil {
		t.Fatalf("expected error for bpm=0")
	}
	if err := e.SetTempo(-10); err == nil {
		t.Fatalf("expected error for negative bpm")
	}
}

func TestSetTempoUpdatesBeatPeriodAndSchedule(t *testing.T) {
	e := newDefaultEngine(t)
	if err := e.SetTempo(100); err != nil {
		t.Fatalf("SetTempo: %v", err)
	}

	if e.CurrentTempoEstimate() != 100 {
		t.Fatalf("CurrentTempoEstimate = %v, want 100", e.CurrentTempoEstimate())
	}
	if e.timeToNextBeat != 0 {
		t.Fatalf("timeToNextBeat = %d, want 0", e.timeToNextBeat)
	}
	wantPrediction := roundInt(e.beatPeriod / 2)
	if e.timeToNextPrediction != wantPrediction {
		t.Fatalf("timeToNextPrediction = %d, want %d", e.timeToNextPrediction, wantPrediction)
	}
}

func TestSetTempoFoldsIntoGrid(t *testing.T) {
	e := newDefaultEngine(t)
	if err := e.SetTempo(240); err != nil {
		t.Fatalf("SetTempo: %v", err)
	}
	// 240 halved until in [80,160) -> 120.
	if e.CurrentTempoEstimate() != 120 {
		t.Fatalf("CurrentTempoEstimate = %v, want 120 (folded from 240)", e.CurrentTempoEstimate())
	}
}

func TestFixTempoAndDoNotFixTempo(t *testing.T) {
	e := newDefaultEngine(t)
	if err := e.FixTempo(90); err != nil {
		t.Fatalf("FixTempo: %v", err)
	}
	if !e.tempoFixed {
		t.Fatalf("expected tempoFixed to be true after FixTempo")
	}
	e.DoNotFixTempo()
	if e.tempoFixed {
		t.Fatalf("expected tempoFixed to be false after DoNotFixTempo")
	}
}

func TestUpdateHopAndFrameSizeReconfigures(t *testing.T) {
	e := newDefaultEngine(t)
	if err := e.UpdateHopAndFrameSize(256, 512); err != nil {
		t.Fatalf("UpdateHopAndFrameSize: %v", err)
	}
	if e.HopSize() != 256 {
		t.Fatalf("HopSize = %d, want 256", e.HopSize())
	}

	// Engine must still process hops without panicking after reconfiguration.
	hop := make([]float64, 256)
	for i := 0; i < 50; i++ {
		e.ProcessAudioFrame(hop)
	}
}

func TestUpdateHopAndFrameSizeRejectsInvalidConfig(t *testing.T) {
	e := newDefaultEngine(t)
	if err := e.UpdateHopAndFrameSize(512, 64); err == nil {
		t.Fatalf("expected error for frameSize < hopSize")
	}
}

func TestFoldIntoGrid(t *testing.T) {
	cases := []struct {
		in, want float64
	}{
		{100, 100},
		{240, 120},
		{40, 80},
		{320, 80},
		{79, 158},
	}
	for _, c := range cases {
		got := foldIntoGrid(c.in)
		if got != c.want {
			t.Fatalf("foldIntoGrid(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}
