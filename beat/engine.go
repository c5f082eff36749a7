package beat

import (
	"fmt"

	"github.com/cwbudde/algo-beat/dsp"
	"github.com/cwbudde/algo-beat/odf"
)

// StepResult is returned from every per-hop processing call: whether a beat
// fired in this hop, and the tracker's current tempo estimate.
type StepResult struct {
	Beat     bool
	TempoBPM float64
}

// Engine is the beat tracker's handle type (§6): a coupled ODF front-end and
// cumulative-score/tempo-lattice beat tracker. Its buffers are allocated at
// construction or at UpdateHopAndFrameSize, except the ODF resampler's
// internal state, which is built on the first tempo update (inside
// ProcessOdfSample) and rebuilt only if the history length changes.
// ProcessAudioFrame and ProcessOdfSample never fail.
type Engine struct {
	cfg Config
	det *odf.Detector

	onsetDF  *dsp.RingBuffer
	cumScore *dsp.RingBuffer

	weightingVector  [numCombLags]float64
	transitionMatrix [numTempoStates][numTempoStates]float64

	prevDelta      [numTempoStates]float64
	prevDeltaFixed [numTempoStates]float64
	delta          [numTempoStates]float64
	obs            [numTempoStates]float64
	cfb            [numCombLags]float64
	acfBuf         [acfLen]float64
	resampledODF   [resampledODFLen]float64

	resampler *odfResampler
	fft       *realPlan
	fftTime   []float64
	fftSpec   []complex128

	futureScore    []float64
	historyScratch []float64
	threshScratch  [resampledODFLen]float64

	beatPeriod            float64
	estimatedTempo        float64
	timeToNextPrediction  int
	timeToNextBeat        int
	beatDueInFrame        bool
	tempoFixed            bool
	latestCumulativeScore float64
}

// New constructs an Engine for the given configuration.
func New(cfg Config) (*Engine, error) {
	e := &Engine{}
	if err := e.reinit(cfg); err != nil {
		return nil, err
	}
	return e, nil
}

// NewDefault constructs an Engine with DefaultConfig(): 512/1024 hop/frame,
// ComplexSpectralDifferenceHWR, Hanning.
func NewDefault() (*Engine, error) {
	return New(DefaultConfig())
}

// reinit (re)builds every owned buffer for cfg and resets the timing state
// machine to its construction-time defaults. Used by both New and
// UpdateHopAndFrameSize.
func (e *Engine) reinit(cfg Config) error {
	if err := cfg.validate(); err != nil {
		return err
	}

	det, err := odf.New(odf.Config{
		HopSize:   cfg.HopSize,
		FrameSize: cfg.FrameSize,
		Kind:      cfg.OdfKind,
		Window:    cfg.WindowKind,
	})
	if err != nil {
		return fmt.Errorf("beat: %w", err)
	}

	fft, err := newRealPlan(acfFFTSize)
	if err != nil {
		return fmt.Errorf("beat: %w", err)
	}

	e.cfg = cfg
	e.det = det
	e.onsetDF = dsp.NewRingBuffer(cfg.odfBufferSize())
	e.cumScore = dsp.NewRingBuffer(cfg.odfBufferSize())
	e.resampler = newODFResampler(resampledODFLen)
	e.fft = fft
	e.fftTime = make([]float64, acfFFTSize)
	e.fftSpec = make([]complex128, acfFFTSize/2+1)
	e.futureScore = make([]float64, cfg.maxBeatPeriod()+2)
	e.historyScratch = make([]float64, cfg.odfBufferSize())

	buildWeightingVector(&e.weightingVector)
	buildTransitionMatrix(&e.transitionMatrix)

	e.prevDelta = [numTempoStates]float64{}
	e.prevDeltaFixed = [numTempoStates]float64{}
	e.delta = [numTempoStates]float64{}
	e.obs = [numTempoStates]float64{}
	e.cfb = [numCombLags]float64{}
	e.acfBuf = [acfLen]float64{}
	e.resampledODF = [resampledODFLen]float64{}

	e.estimatedTempo = defaultTempoBPM
	e.beatPeriod = 60.0 * fixedSampleRate / (defaultTempoBPM * float64(cfg.HopSize))
	e.timeToNextPrediction = 10
	e.timeToNextBeat = -1
	e.beatDueInFrame = false
	e.tempoFixed = false
	e.latestCumulativeScore = 0

	return nil
}

// ProcessAudioFrame advances the tracker by one hop worth of audio samples
// (length cfg.HopSize): it runs the ODF front-end and feeds the resulting
// sample through ProcessOdfSample.
func (e *Engine) ProcessAudioFrame(frame []float64) StepResult {
	sample := e.det.Sample(frame)
	return e.ProcessOdfSample(sample)
}

// ProcessOdfSample advances the tracker by one hop given a precomputed ODF
// sample (§4.2).
func (e *Engine) ProcessOdfSample(s float64) StepResult {
	s = abs(s) + 1e-4

	e.timeToNextPrediction--
	e.timeToNextBeat--
	e.beatDueInFrame = false

	e.onsetDF.Append(s)
	e.latestCumulativeScore = e.updateCumulativeScore(s)

	if e.timeToNextPrediction == 0 {
		e.predict()
	}

	if e.timeToNextBeat == 0 {
		e.beatDueInFrame = true
		e.updateTempo()
	}

	return StepResult{Beat: e.beatDueInFrame, TempoBPM: e.estimatedTempo}
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

// HopSize returns the engine's configured hop size.
func (e *Engine) HopSize() int { return e.cfg.HopSize }

// BeatDueInCurrentFrame reports whether the most recently processed hop
// fired a beat.
func (e *Engine) BeatDueInCurrentFrame() bool { return e.beatDueInFrame }

// CurrentTempoEstimate returns the last computed tempo, in BPM.
func (e *Engine) CurrentTempoEstimate() float64 { return e.estimatedTempo }

// LatestCumulativeScoreValue returns the most recently appended
// cumulative-score sample.
func (e *Engine) LatestCumulativeScoreValue() float64 { return e.latestCumulativeScore }

// BeatTimeInSeconds converts a hop index into a time offset in seconds.
func BeatTimeInSeconds(frameIndex, hopSize int, sampleRate float64) float64 {
	return float64(hopSize*frameIndex) / sampleRate
}
