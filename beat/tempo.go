package beat

import "math"

// updateTempo recomputes beatPeriod and estimatedTempo from the current ODF
// history (C8), invoked only on hops where a beat fires:
//
//  1. resample the ODF ring to a fixed 512-sample vector (C9)
//  2. adaptive-threshold it
//  3. balanced autocorrelation via a zero-padded 1024-point real FFT
//  4. a four-harmonic, Rayleigh-weighted comb-filter bank over 128 lags
//  5. adaptive-threshold the comb-filter output
//  6. fold it into a 41-point BPM-grid observation vector
//  7. one Viterbi max-product step over the tempo lattice
//  8. pick the new beat period/tempo from the argmax state
func (e *Engine) updateTempo() {
	for i := range e.historyScratch {
		e.historyScratch[i] = e.onsetDF.At(i)
	}
	resampled, err := e.resampler.resample(e.historyScratch)
	if err != nil {
		return
	}
	copy(e.resampledODF[:], resampled)
	adaptiveThreshold(e.resampledODF[:], adaptiveHalfWin, e.threshScratch[:resampledODFLen])

	e.balancedACF()

	e.combFilterBank()
	adaptiveThreshold(e.cfb[:], adaptiveHalfWin, e.threshScratch[:numCombLags])

	e.tempoObservation()

	e.viterbiStep()

	best := argmax(e.delta[:])
	bpm := minGridBPM + gridStepBPM*float64(best)
	newBeatPeriod := roundHalfUp(60.0 * fixedSampleRate / (bpm * float64(e.cfg.HopSize)))
	if newBeatPeriod > 0 {
		e.beatPeriod = newBeatPeriod
		e.estimatedTempo = 60.0 / ((float64(e.cfg.HopSize) / fixedSampleRate) * e.beatPeriod)
	}
	copy(e.prevDelta[:], e.delta[:])
}

// adaptiveThreshold subtracts the local mean over a window of
// [-halfWin, halfWin-1] samples (clamped to the slice bounds) from every
// element and floors negative results to zero.
func adaptiveThreshold(v []float64, halfWin int, scratch []float64) {
	n := len(v)
	out := scratch[:n]
	for i := 0; i < n; i++ {
		lo := i - halfWin
		if lo < 0 {
			lo = 0
		}
		hi := i + halfWin - 1
		if hi > n-1 {
			hi = n - 1
		}
		var sum float64
		for j := lo; j <= hi; j++ {
			sum += v[j]
		}
		mean := sum / float64(hi-lo+1)
		out[i] = v[i] - mean
	}
	for i, x := range out {
		if x < 0 {
			x = 0
		}
		v[i] = x
	}
}

// balancedACF fills e.acfBuf[0:512] with the autocorrelation of the
// adaptive-thresholded, zero-padded resampled ODF, computed in the
// frequency domain via a length-1024 real FFT.
func (e *Engine) balancedACF() {
	for i := range e.fftTime {
		e.fftTime[i] = 0
	}
	copy(e.fftTime, e.resampledODF[:])

	_ = e.fft.forward(e.fftSpec, e.fftTime)
	for i := range e.fftSpec {
		m := cmplxAbs2(e.fftSpec[i])
		e.fftSpec[i] = complex(m, 0)
	}
	_ = e.fft.inverse(e.fftTime, e.fftSpec)

	for i := 0; i < acfLen; i++ {
		e.acfBuf[i] = e.fftTime[i] / float64(acfLen-i) / float64(acfFFTSize)
	}
}

func cmplxAbs2(c complex128) float64 {
	re, im := real(c), imag(c)
	return re*re + im*im
}

// combFilterBank fills e.cfb with the Rayleigh-weighted four-harmonic comb
// filter output (C8 step 4) for lags i=2..127.
func (e *Engine) combFilterBank() {
	for i := range e.cfb {
		e.cfb[i] = 0
	}
	for i := 2; i <= numCombLags-1; i++ {
		var acc float64
		for a := 1; a <= 4; a++ {
			var inner float64
			for b := 1 - a; b <= a-1; b++ {
				idx := a*i + b - 1
				if idx < 0 || idx >= acfLen {
					continue
				}
				inner += e.acfBuf[idx]
			}
			acc += inner / float64(2*a-1)
		}
		e.cfb[i-1] = acc * e.weightingVector[i-1]
	}
}

// tempoObservation folds the comb-filter output into the 41-point BPM grid
// observation vector (C8 step 6), summing each BPM bucket with the bucket
// an octave above it (twice the tempo, half the lag).
func (e *Engine) tempoObservation() {
	const k = 60.0 * fixedSampleRate / 512.0
	for i := 0; i < numTempoStates; i++ {
		bin1 := clampIndex(roundInt(k/(2*float64(i)+80))-1, numCombLags)
		bin2 := clampIndex(roundInt(k/(4*float64(i)+160))-1, numCombLags)
		e.obs[i] = e.cfb[bin1] + e.cfb[bin2]
	}
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// viterbiStep performs one max-product update over the tempo lattice (C8
// step 7).
func (e *Engine) viterbiStep() {
	prev := &e.prevDelta
	if e.tempoFixed {
		prev = &e.prevDeltaFixed
	}

	var sum float64
	for j := 0; j < numTempoStates; j++ {
		best := 0.0
		for i := 0; i < numTempoStates; i++ {
			v := prev[i] * e.transitionMatrix[i][j]
			if v > best {
				best = v
			}
		}
		d := best * e.obs[j]
		e.delta[j] = d
		sum += d
	}
	if sum > 0 {
		for j := range e.delta {
			e.delta[j] /= sum
		}
	}
}

func argmax(v []float64) int {
	best := 0
	for i := 1; i < len(v); i++ {
		if v[i] > v[best] {
			best = i
		}
	}
	return best
}
