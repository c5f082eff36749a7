package beat

import (
	"errors"

	algofft "github.com/cwbudde/algo-fft"
)

// realPlan wraps a length-n real-input forward/inverse FFT pair, used for
// the balanced ACF (C8 step 3). It mirrors the fast/safe plan-caching
// pattern algo-piano/analysis uses for its own lag-correlation FFT plans.
type realPlan struct {
	n    int
	fast *algofft.FastPlanReal64
	safe *algofft.PlanRealT[float64, complex128]
}

func newRealPlan(n int) (*realPlan, error) {
	p := &realPlan{n: n}

	fast, err := algofft.NewFastPlanReal64(n)
	if err == nil {
		p.fast = fast
	} else if !errors.Is(err, algofft.ErrNotImplemented) {
		// Ignore fast-plan setup errors and rely on the safe plan below.
	}

	safe, err := algofft.NewPlanReal64(n)
	if err != nil {
		if p.fast == nil {
			return nil, err
		}
	} else {
		p.safe = safe
	}

	return p, nil
}

func (p *realPlan) forward(dst []complex128, src []float64) error {
	if p.fast != nil {
		p.fast.Forward(dst, src)
		return nil
	}
	if p.safe != nil {
		return p.safe.Forward(dst, src)
	}
	return errors.New("beat: missing ACF forward FFT plan")
}

func (p *realPlan) inverse(dst []float64, src []complex128) error {
	if p.fast != nil {
		p.fast.Inverse(dst, src)
		return nil
	}
	if p.safe != nil {
		return p.safe.Inverse(dst, src)
	}
	return errors.New("beat: missing ACF inverse FFT plan")
}
