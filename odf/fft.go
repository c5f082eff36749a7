package odf

import (
	"errors"

	algofft "github.com/cwbudde/algo-fft"
)

// complexPlan wraps a length-n complex forward FFT, preferring a SIMD/fast
// backend and falling back to the safe generic one when the fast backend
// declines to support this size — the same fast/safe pairing
// algo-piano/analysis uses for its lag-correlation FFT plans.
type complexPlan struct {
	n    int
	fast *algofft.FastPlanComplex64
	safe *algofft.PlanComplexT[float64, complex128]
}

func newComplexPlan(n int) (*complexPlan, error) {
	p := &complexPlan{n: n}

	fast, err := algofft.NewFastPlanComplex64(n)
	if err == nil {
		p.fast = fast
	} else if !errors.Is(err, algofft.ErrNotImplemented) {
		// Ignore fast-plan setup errors and rely on the safe plan below.
	}

	safe, err := algofft.NewPlanComplex64(n)
	if err != nil {
		if p.fast == nil {
			return nil, err
		}
	} else {
		p.safe = safe
	}

	return p, nil
}

func (p *complexPlan) forward(dst, src []complex128) error {
	if p.fast != nil {
		p.fast.Forward(dst, src)
		return nil
	}
	if p.safe != nil {
		return p.safe.Forward(dst, src)
	}
	return errors.New("odf: missing forward FFT plan")
}
