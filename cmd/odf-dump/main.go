// Command odf-dump computes an onset detection function over a WAV file
// and writes it as CSV, the offline analysis-dump role
// algo-piano/cmd/spectral-compare fills for spectral comparisons.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"

	"github.com/cwbudde/algo-beat/internal/audioio"
	"github.com/cwbudde/algo-beat/odf"
)

func main() {
	input := flag.String("input", "", "Input WAV file path (required)")
	output := flag.String("output", "", "Output CSV path (defaults to stdout)")
	hopSize := flag.Int("hop-size", 512, "ODF hop size in samples")
	frameSize := flag.Int("frame-size", 1024, "ODF frame size in samples")
	kind := flag.String("kind", "complex-hwr", "ODF kind: energy, energy-diff, spectral-diff, spectral-diff-hwr, phase-deviation, complex, complex-hwr, hfc, hfc-spectral-diff, hfc-spectral-diff-hwr")
	window := flag.String("window", "hanning", "Analysis window: rectangular, hanning, hamming, blackman, tukey")
	flag.Parse()

	if *input == "" {
		fmt.Fprintln(os.Stderr, "Error: -input is required")
		flag.Usage()
		os.Exit(1)
	}

	k, err := parseKind(*kind)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
	w, err := parseWindow(*window)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}

	samples, sampleRate, err := audioio.ReadMono(*input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading %q: %v\n", *input, err)
		os.Exit(1)
	}

	cfg := odf.Config{HopSize: *hopSize, FrameSize: *frameSize, Kind: k, Window: w}
	values, err := odf.Calculate(samples, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error computing ODF: %v\n", err)
		os.Exit(1)
	}

	out := os.Stdout
	if *output != "" {
		f, err := os.Create(*output)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating %q: %v\n", *output, err)
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}

	w2 := bufio.NewWriter(out)
	defer w2.Flush()
	fmt.Fprintln(w2, "frame,time_s,odf")
	for i, v := range values {
		t := float64(i*(*hopSize)) / float64(sampleRate)
		fmt.Fprintf(w2, "%d,%.6f,%.8f\n", i, t, v)
	}
}

func parseKind(s string) (odf.Kind, error) {
	switch s {
	case "energy":
		return odf.EnergyEnvelope, nil
	case "energy-diff":
		return odf.EnergyDifference, nil
	case "spectral-diff":
		return odf.SpectralDifference, nil
	case "spectral-diff-hwr":
		return odf.SpectralDifferenceHWR, nil
	case "phase-deviation":
		return odf.PhaseDeviation, nil
	case "complex":
		return odf.ComplexSpectralDifference, nil
	case "complex-hwr":
		return odf.ComplexSpectralDifferenceHWR, nil
	case "hfc":
		return odf.HighFrequencyContent, nil
	case "hfc-spectral-diff":
		return odf.HighFrequencySpectralDifference, nil
	case "hfc-spectral-diff-hwr":
		return odf.HighFrequencySpectralDifferenceHWR, nil
	default:
		return 0, fmt.Errorf("unknown -kind %q", s)
	}
}

func parseWindow(s string) (odf.Window, error) {
	switch s {
	case "rectangular":
		return odf.Rectangular, nil
	case "hanning":
		return odf.Hanning, nil
	case "hamming":
		return odf.Hamming, nil
	case "blackman":
		return odf.Blackman, nil
	case "tukey":
		return odf.Tukey, nil
	default:
		return 0, fmt.Errorf("unknown -window %q", s)
	}
}
