package beat

import (
	"fmt"

	dspresample "github.com/cwbudde/algo-dsp/dsp/resample"
)

// odfResampler adapts the rate-based github.com/cwbudde/algo-dsp/dsp/resample
// package to the length-based "map N samples to exactly dstLen samples"
// contract spec.md §6/§9 calls for (C9): the same high-quality sinc
// resampler algo-piano/piano's SoundboardConvolver and
// algo-piano/internal/fitcommon use for sample-rate conversion, but treating
// the ODF ring-buffer length as the "rate" to convert from.
type odfResampler struct {
	dstLen int
	srcLen int
	r      *dspresample.Resampler
}

func newODFResampler(dstLen int) *odfResampler {
	return &odfResampler{dstLen: dstLen}
}

// resample maps src (length N, oldest-to-newest) onto exactly r.dstLen
// samples. The underlying resampler is rebuilt only when N changes, which
// in steady state (fixed hop size) never happens after the first call.
func (r *odfResampler) resample(src []float64) ([]float64, error) {
	n := len(src)
	if n == 0 {
		return make([]float64, r.dstLen), nil
	}
	if r.r == nil || r.srcLen != n {
		rs, err := dspresample.NewForRates(
			float64(n), float64(r.dstLen),
			dspresample.WithQuality(dspresample.QualityBest),
		)
		if err != nil {
			return nil, fmt.Errorf("beat: resampler setup: %w", err)
		}
		r.r = rs
		r.srcLen = n
	}

	out := r.r.Process(src)
	return fitLength(out, r.dstLen), nil
}

// fitLength pads with the last sample (or zero, if empty) or truncates so
// the result is exactly n samples long — the resampler's ratio-derived
// output length is not guaranteed to land on n exactly.
func fitLength(in []float64, n int) []float64 {
	if len(in) == n {
		return in
	}
	out := make([]float64, n)
	copy(out, in)
	if len(in) < n && len(in) > 0 {
		last := in[len(in)-1]
		for i := len(in); i < n; i++ {
			out[i] = last
		}
	}
	return out
}
