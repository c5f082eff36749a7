// Package analysis evaluates tracked beat times against a reference
// annotation. It has no runtime dependency on the beat package: both
// reference and candidate are plain beat-time vectors in seconds, the same
// interchange format MIREX-style beat-tracking evaluation harnesses use
// (the role BTrackVamp.cpp's VAMP plugin fills for the original BTrack, by
// letting Sonic Annotator feed its output to such a harness).
package analysis

import "math"

// Metrics summarises a precision/recall/F-measure comparison between a
// reference beat annotation and a tracker's candidate output, plus the mean
// absolute error between matched reference/candidate inter-beat periods.
type Metrics struct {
	TruePositives  int
	FalsePositives int
	FalseNegatives int
	Precision      float64
	Recall         float64
	FMeasure       float64

	MeanAbsBeatPeriodError float64
}

// Evaluate greedily matches each candidate beat to the nearest unmatched
// reference beat within tolerance seconds (both slices need not be sorted;
// Evaluate sorts internally), then reports precision, recall, F-measure
// over the match counts, and the mean absolute difference between
// consecutive matched reference periods and their candidate counterparts.
func Evaluate(reference, candidate []float64, tolerance float64) Metrics {
	ref := sortedCopy(reference)
	cand := sortedCopy(candidate)

	matchedRef := make([]bool, len(ref))
	matchedCand := make([]float64, len(ref))
	tp := 0

	for _, c := range cand {
		best := -1
		bestDist := math.Inf(1)
		for i, r := range ref {
			if matchedRef[i] {
				continue
			}
			d := math.Abs(c - r)
			if d <= tolerance && d < bestDist {
				bestDist = d
				best = i
			}
		}
		if best >= 0 {
			matchedRef[best] = true
			matchedCand[best] = c
			tp++
		}
	}

	fp := len(cand) - tp
	fn := len(ref) - tp

	m := Metrics{TruePositives: tp, FalsePositives: fp, FalseNegatives: fn}
	if tp+fp > 0 {
		m.Precision = float64(tp) / float64(tp+fp)
	}
	if tp+fn > 0 {
		m.Recall = float64(tp) / float64(tp+fn)
	}
	if m.Precision+m.Recall > 0 {
		m.FMeasure = 2 * m.Precision * m.Recall / (m.Precision + m.Recall)
	}
	m.MeanAbsBeatPeriodError = meanAbsBeatPeriodError(ref, matchedRef, matchedCand)
	return m
}

// meanAbsBeatPeriodError walks the matched reference/candidate beats in
// time order and averages |refPeriod - candPeriod| over consecutive matched
// pairs, where refPeriod/candPeriod are the time gaps between one matched
// beat and the next.
func meanAbsBeatPeriodError(ref []float64, matchedRef []bool, matchedCand []float64) float64 {
	var prevRef, prevCand float64
	have := false
	var sum float64
	var n int

	for i, r := range ref {
		if !matchedRef[i] {
			continue
		}
		c := matchedCand[i]
		if have {
			refPeriod := r - prevRef
			candPeriod := c - prevCand
			sum += math.Abs(refPeriod - candPeriod)
			n++
		}
		prevRef, prevCand = r, c
		have = true
	}

	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

func sortedCopy(v []float64) []float64 {
	out := make([]float64, len(v))
	copy(out, v)
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1] > out[j]; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}
