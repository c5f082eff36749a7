package beat

import (
	"math"

	"github.com/cwbudde/algo-approx"
)

// buildWeightingVector precomputes the Rayleigh prior over comb-filter lag
// indices 0..127 (data model §3), weighting[n] = (n/sigma^2) *
// exp(-n^2/(2*sigma^2)). It runs once per (re)configuration, not per hop, so
// it uses algo-approx's FastExp the same way algo-piano/piano's one-time
// pitch-ratio table does rather than math.Exp.
func buildWeightingVector(out *[numCombLags]float64) {
	sigma2 := rayleighParam * rayleighParam
	for n := 0; n < numCombLags; n++ {
		x := float64(n)
		exponent := float32(-(x * x) / (2 * sigma2))
		out[n] = (x / sigma2) * float64(approx.FastExp(exponent))
	}
}

// buildTransitionMatrix precomputes the 41x41 Gaussian tempo-transition
// matrix, mean i, sigma=41/8, evaluated at j (data model §3; spec.md §3
// describes this in 1-indexed terms as "mean i+1 evaluated at j+1", which is
// the same Gaussian shape once both sides shift by one).
func buildTransitionMatrix(out *[numTempoStates][numTempoStates]float64) {
	for i := 0; i < numTempoStates; i++ {
		for j := 0; j < numTempoStates; j++ {
			d := float64(j-i) / tempoSigma
			out[i][j] = math.Exp(-0.5 * d * d)
		}
	}
}
