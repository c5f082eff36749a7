package beat

import (
	"math"

	"github.com/cwbudde/algo-beat/dsp"
)

// transitionMax implements the log-Gaussian transition-weighted maximisation
// shared by the cumulative-score update (§4.3) and the beat predictor
// (§4.4): max over idx in [i-round(2B), i-round(B/2)] of
// get(idx) * exp(-0.5*(tightness*ln(-(idx-i)/B))^2).
func transitionMax(get func(idx int) float64, i int, beatPeriod float64) float64 {
	start := i - roundInt(2*beatPeriod)
	end := i - roundInt(beatPeriod/2)
	if start < 0 {
		start = 0
	}
	if end < start {
		end = start
	}

	best := math.Inf(-1)
	for idx := start; idx <= end; idx++ {
		v := float64(idx - i)
		if v >= 0 {
			continue
		}
		w := math.Exp(-0.5 * math.Pow(tightness*math.Log(-v/beatPeriod), 2))
		val := get(idx) * w
		if val > best {
			best = val
		}
	}
	if math.IsInf(best, -1) {
		return 0
	}
	return best
}

// updateCumulativeScore performs one step of the dynamic program (C6): it
// folds the new ODF sample s into the running cumulative score, weighting
// past cumulative-score values by a log-Gaussian kernel centred one beat
// period back, and appends the result to the cumulative-score ring buffer.
func (e *Engine) updateCumulativeScore(s float64) float64 {
	n := e.cumScore.Cap()
	maxWeighted := transitionMax(e.cumScore.At, n, e.beatPeriod)
	v := dsp.FlushDenormal((1-scoreAlpha)*s + scoreAlpha*maxWeighted)
	e.cumScore.Append(v)
	return v
}

// predict synthesises the cumulative score forward by one beat period (C7)
// and selects the next beat index, then schedules the following prediction
// tick half a beat period after that beat (the midpoint between it and the
// beat after it).
func (e *Engine) predict() {
	n := e.cumScore.Cap()
	w := roundInt(e.beatPeriod)
	if w < 1 {
		w = 1
	}
	if w > len(e.futureScore) {
		w = len(e.futureScore)
	}

	get := func(idx int) float64 {
		if idx < n {
			return e.cumScore.At(idx)
		}
		fi := idx - n
		if fi < 0 || fi >= len(e.futureScore) {
			return 0
		}
		return e.futureScore[fi]
	}

	for k := 0; k < w; k++ {
		i := n + k
		e.futureScore[k] = transitionMax(get, i, e.beatPeriod)
	}

	halfBeat := e.beatPeriod / 2
	bestN := 0
	bestVal := math.Inf(-1)
	for nIdx := 0; nIdx < w; nIdx++ {
		w2 := math.Exp(-0.5 * math.Pow((float64(nIdx+1)-halfBeat)/halfBeat, 2))
		val := e.futureScore[nIdx] * w2
		if val > bestVal {
			bestVal = val
			bestN = nIdx
		}
	}

	e.timeToNextBeat = bestN
	e.timeToNextPrediction = bestN + roundInt(e.beatPeriod/2)
}
