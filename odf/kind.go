package odf

// Kind selects which scalar onset detection function the front-end computes
// from the current frame/spectrum. The set is closed; dispatch happens once
// per hop in (*Detector).Sample.
type Kind int

const (
	EnergyEnvelope Kind = iota
	EnergyDifference
	SpectralDifference
	SpectralDifferenceHWR
	PhaseDeviation
	ComplexSpectralDifference
	ComplexSpectralDifferenceHWR
	HighFrequencyContent
	HighFrequencySpectralDifference
	HighFrequencySpectralDifferenceHWR
)

func (k Kind) String() string {
	switch k {
	case EnergyEnvelope:
		return "EnergyEnvelope"
	case EnergyDifference:
		return "EnergyDifference"
	case SpectralDifference:
		return "SpectralDifference"
	case SpectralDifferenceHWR:
		return "SpectralDifferenceHWR"
	case PhaseDeviation:
		return "PhaseDeviation"
	case ComplexSpectralDifference:
		return "ComplexSpectralDifference"
	case ComplexSpectralDifferenceHWR:
		return "ComplexSpectralDifferenceHWR"
	case HighFrequencyContent:
		return "HighFrequencyContent"
	case HighFrequencySpectralDifference:
		return "HighFrequencySpectralDifference"
	case HighFrequencySpectralDifferenceHWR:
		return "HighFrequencySpectralDifferenceHWR"
	default:
		return "Unknown"
	}
}

// requiresSpectrum reports whether this kind needs the magnitude/phase
// spectrum computed, as opposed to only the time-domain frame.
func (k Kind) requiresSpectrum() bool {
	return k != EnergyEnvelope && k != EnergyDifference
}

// requiresPhase reports whether this kind consumes phase in addition to
// magnitude.
func (k Kind) requiresPhase() bool {
	switch k {
	case PhaseDeviation, ComplexSpectralDifference, ComplexSpectralDifferenceHWR:
		return true
	default:
		return false
	}
}

// Window selects the analysis window applied to each frame before the FFT.
type Window int

const (
	Rectangular Window = iota
	Hanning
	Hamming
	Blackman
	Tukey
)

func (w Window) String() string {
	switch w {
	case Rectangular:
		return "Rectangular"
	case Hanning:
		return "Hanning"
	case Hamming:
		return "Hamming"
	case Blackman:
		return "Blackman"
	case Tukey:
		return "Tukey"
	default:
		return "Unknown"
	}
}
