// Package beat implements the causal beat tracker: cumulative-score dynamic
// program, beat prediction, and tempo estimation (comb-filtered ACF fed
// through a Gaussian-transition tempo lattice), coupled to an odf.Detector
// front-end.
package beat

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-beat/odf"
)

// fixedSampleRate is the sample rate the tempo-lattice arithmetic assumes
// throughout (beatPeriod/estimatedTempo conversions and the comb-filter bin
// index K). The original BTrack engine hard-codes 44100 Hz in these
// formulas; Config.SampleRate is carried in the configuration (and its JSON
// form) but is not read by the engine, and the lattice math does not
// parameterise on it (see DESIGN.md).
const fixedSampleRate = 44100.0

// Tempo-lattice constants from the data model (§3): a 41-point BPM grid
// spanning 80..160 in 2-BPM steps, a Rayleigh-weighted comb-filter bank over
// 128 lags, and fixed shape parameters for the cumulative-score and
// tempo-transition Gaussians.
const (
	numTempoStates   = 41
	numCombLags      = 128
	rayleighParam    = 43.0
	tempoSigma       = float64(numTempoStates) / 8.0
	tightness        = 5.0
	scoreAlpha       = 0.9
	acfLen           = 512
	acfFFTSize       = 1024
	resampledODFLen  = 512
	adaptiveHalfWin  = 8
	defaultTempoBPM  = 120.0
	minGridBPM       = 80.0
	gridStepBPM      = 2.0
)

// Config is the engine configuration (data model §3): immutable after
// construction except via Engine.UpdateHopAndFrameSize.
type Config struct {
	HopSize    int
	FrameSize  int
	SampleRate int
	OdfKind    odf.Kind
	WindowKind odf.Window
}

// DefaultConfig mirrors new_default(): 512/1024 hop/frame,
// ComplexSpectralDifferenceHWR, Hanning window.
func DefaultConfig() Config {
	return Config{
		HopSize:    512,
		FrameSize:  1024,
		SampleRate: 44100,
		OdfKind:    odf.ComplexSpectralDifferenceHWR,
		WindowKind: odf.Hanning,
	}
}

// odfBufferSize computes the ring-buffer capacity for this hop size,
// truncating integer division per the open question in spec.md §9.
func (c Config) odfBufferSize() int {
	return (512 * 512) / c.HopSize
}

// maxBeatPeriod is the beat period, in hops, at the slowest tempo on the
// grid (80 BPM) — the longest beat period the tracker uses. The
// cumulative-score window looks back up to twice this many hops, and the
// predictor extends the score forward by up to this many hops.
func (c Config) maxBeatPeriod() int {
	return int(roundHalfUp(60.0 * fixedSampleRate / (minGridBPM * float64(c.HopSize))))
}

func (c Config) validate() error {
	if c.HopSize <= 0 {
		return fmt.Errorf("beat: hopSize must be > 0, got %d", c.HopSize)
	}
	if c.FrameSize < c.HopSize {
		return fmt.Errorf("beat: frameSize (%d) must be >= hopSize (%d)", c.FrameSize, c.HopSize)
	}
	n := c.odfBufferSize()
	if n < 2*c.maxBeatPeriod() {
		return fmt.Errorf("beat: odfBufferSize (%d) must be >= 2*maxBeatPeriod (%d) for hopSize %d", n, 2*c.maxBeatPeriod(), c.HopSize)
	}
	return nil
}

// roundHalfUp implements round(x) = floor(x+0.5) for nonnegative x, per the
// numeric semantics in spec.md §6.
func roundHalfUp(x float64) float64 {
	return math.Floor(x + 0.5)
}

func roundInt(x float64) int {
	return int(roundHalfUp(x))
}
