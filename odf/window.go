package odf

import (
	"math"

	dspwindow "github.com/cwbudde/algo-dsp/dsp/window"
)

// buildWindow precomputes the length-n analysis window table for the given
// kind. algo-dsp/dsp/window covers Hann, Hamming and Blackman; it does not
// expose Rectangular or Tukey, so those two are generated in-module with the
// standard formulas (see DESIGN.md).
func buildWindow(w Window, n int) []float64 {
	switch w {
	case Hanning:
		return dspwindow.Generate(dspwindow.TypeHann, n)
	case Hamming:
		return dspwindow.Generate(dspwindow.TypeHamming, n)
	case Blackman:
		return dspwindow.Generate(dspwindow.TypeBlackman, n)
	case Tukey:
		return tukeyWindow(n, 0.5)
	case Rectangular:
		fallthrough
	default:
		return rectangularWindow(n)
	}
}

func rectangularWindow(n int) []float64 {
	w := make([]float64, n)
	for i := range w {
		w[i] = 1
	}
	return w
}

// tukeyWindow generates a Tukey (tapered cosine) window whose two cosine
// tapers together cover a fraction alpha of the window (alpha/2 on each
// side).
func tukeyWindow(n int, alpha float64) []float64 {
	w := make([]float64, n)
	if n <= 1 {
		for i := range w {
			w[i] = 1
		}
		return w
	}
	if alpha <= 0 {
		return rectangularWindow(n)
	}
	if alpha > 1 {
		alpha = 1
	}
	taper := alpha * float64(n-1) / 2
	for i := 0; i < n; i++ {
		x := float64(i)
		switch {
		case x < taper:
			w[i] = 0.5 * (1 + math.Cos(math.Pi*(x/taper-1)))
		case x > float64(n-1)-taper:
			w[i] = 0.5 * (1 + math.Cos(math.Pi*((x-float64(n-1)+taper)/taper)))
		default:
			w[i] = 1
		}
	}
	return w
}
