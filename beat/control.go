package beat

import (
	"fmt"

	"github.com/cwbudde/algo-beat/dsp"
)

// SetTempo forces the tracker's tempo estimate to bpm (folded into the
// [80,160) grid by octave halving/doubling), zeroes the Viterbi posterior
// onto that grid state, and forcibly resynchronises the running history:
// both ring buffers are overwritten with a period-synchronised pulse train
// (value 150 at the new beat period, 10 elsewhere) running backward from
// the newest slot. This is intentional in the source and biases subsequent
// cumulative-score updates toward the commanded tempo (spec.md §9).
func (e *Engine) SetTempo(bpm float64) error {
	if bpm <= 0 {
		return fmt.Errorf("beat: SetTempo requires bpm > 0, got %v", bpm)
	}

	folded := foldIntoGrid(bpm)
	idx := gridIndex(folded)

	for i := range e.prevDelta {
		e.prevDelta[i] = 0
	}
	e.prevDelta[idx] = 1

	newBeatPeriod := roundHalfUp(60.0 * fixedSampleRate / (folded * float64(e.cfg.HopSize)))
	if newBeatPeriod <= 0 {
		return nil
	}
	e.beatPeriod = newBeatPeriod
	e.estimatedTempo = folded

	resyncRingBuffer(e.onsetDF, newBeatPeriod)
	resyncRingBuffer(e.cumScore, newBeatPeriod)

	e.timeToNextBeat = 0
	e.timeToNextPrediction = roundInt(newBeatPeriod / 2)
	return nil
}

// FixTempo locks the Viterbi prior onto bpm (folded into [80,160)): every
// subsequent tempo update replaces prevDelta with a unit mass at that grid
// state before the max-product step, instead of carrying last beat's
// posterior forward.
func (e *Engine) FixTempo(bpm float64) error {
	if bpm <= 0 {
		return fmt.Errorf("beat: FixTempo requires bpm > 0, got %v", bpm)
	}
	folded := foldIntoGrid(bpm)
	idx := gridIndex(folded)

	for i := range e.prevDeltaFixed {
		e.prevDeltaFixed[i] = 0
	}
	e.prevDeltaFixed[idx] = 1
	e.tempoFixed = true
	return nil
}

// DoNotFixTempo releases a prior FixTempo, returning to a freely evolving
// Viterbi posterior.
func (e *Engine) DoNotFixTempo() {
	e.tempoFixed = false
}

// UpdateHopAndFrameSize reconfigures the engine for a new hop/frame size,
// reinitialising the ODF front-end and both ring buffers. Every invariant
// re-established by reinit must hold before the next ProcessAudioFrame
// call; this is not safe to call concurrently with processing.
func (e *Engine) UpdateHopAndFrameSize(hopSize, frameSize int) error {
	cfg := e.cfg
	cfg.HopSize = hopSize
	cfg.FrameSize = frameSize
	return e.reinit(cfg)
}

// foldIntoGrid folds bpm into [80,160) by repeated halving/doubling (octave
// equivalence), the grid spec.md §4.6 folds setTempo/fixTempo targets into.
func foldIntoGrid(bpm float64) float64 {
	for bpm >= 160 {
		bpm /= 2
	}
	for bpm < 80 {
		bpm *= 2
	}
	return bpm
}

// gridIndex maps a folded BPM value (already in [80,160)) to its 41-point
// grid index.
func gridIndex(foldedBPM float64) int {
	idx := roundInt((foldedBPM - 80) / gridStepBPM)
	if idx < 0 {
		idx = 0
	}
	if idx > numTempoStates-1 {
		idx = numTempoStates - 1
	}
	return idx
}

// resyncRingBuffer overwrites every slot with the "off-beat" value 10, then
// walks backward from the newest slot in steps of period, stamping the
// "on-beat" value 150.
func resyncRingBuffer(rb *dsp.RingBuffer, period float64) {
	n := rb.Cap()
	p := roundInt(period)
	if p < 1 {
		p = 1
	}
	for i := 0; i < n; i++ {
		rb.Set(i, 10)
	}
	for idx := n - 1; idx >= 0; idx -= p {
		rb.Set(idx, 150)
	}
}
