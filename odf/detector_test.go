package odf

import (
	"math"
	"testing"
)

func TestEnergyEnvelopeOfSilenceIsZero(t *testing.T) {
	d, err := New(Config{HopSize: 64, FrameSize: 128, Kind: EnergyEnvelope, Window: Hanning})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	hop := make([]float64, 64)
	for i := 0; i < 4; i++ {
		v := d.Sample(hop)
		if v != 0 {
			t.Fatalf("expected zero ODF for silence, got %v at hop %d", v, i)
		}
	}
}

func TestEnergyEnvelopeUsesUnwindowedFrame(t *testing.T) {
	const hopSize = 64
	const frameSize = 128
	const c = 0.5

	d, err := New(Config{HopSize: hopSize, FrameSize: frameSize, Kind: EnergyEnvelope, Window: Hanning})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	hop := make([]float64, hopSize)
	for i := range hop {
		hop[i] = c
	}

	var v float64
	for i := 0; i < frameSize/hopSize; i++ {
		v = d.Sample(hop)
	}

	want := float64(frameSize) * c * c
	if math.Abs(v-want) > 1e-9 {
		t.Fatalf("EnergyEnvelope = %v, want %v (raw frame energy, not windowed) — is it reading d.shift instead of d.frame?", v, want)
	}
}

func TestEnergyEnvelopeTracksLoudness(t *testing.T) {
	d, err := New(Config{HopSize: 64, FrameSize: 128, Kind: EnergyEnvelope, Window: Rectangular})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	quiet := make([]float64, 64)
	for i := range quiet {
		quiet[i] = 0.01
	}
	loud := make([]float64, 64)
	for i := range loud {
		loud[i] = 0.9
	}

	_ = d.Sample(quiet)
	quietVal := d.Sample(quiet)
	_ = d.Sample(loud)
	loudVal := d.Sample(loud)

	if loudVal <= quietVal {
		t.Fatalf("expected loud envelope (%v) > quiet envelope (%v)", loudVal, quietVal)
	}
}

func TestSpectralDifferenceNonNegative(t *testing.T) {
	d, err := New(Config{HopSize: 64, FrameSize: 128, Kind: SpectralDifferenceHWR, Window: Hanning})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	hop := make([]float64, 64)
	for n := 0; n < 20; n++ {
		for i := range hop {
			hop[i] = math.Sin(float64(n*64+i) * 0.3)
		}
		v := d.Sample(hop)
		if v < 0 {
			t.Fatalf("SpectralDifferenceHWR must be non-negative, got %v", v)
		}
	}
}

func TestComplexSpectralDifferenceOnSineBurst(t *testing.T) {
	d, err := New(Config{HopSize: 64, FrameSize: 128, Kind: ComplexSpectralDifference, Window: Hanning})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	silence := make([]float64, 64)
	tone := make([]float64, 64)
	for i := range tone {
		tone[i] = math.Sin(float64(i) * 0.5)
	}

	for i := 0; i < 4; i++ {
		d.Sample(silence)
	}
	onsetValue := d.Sample(tone)
	if onsetValue <= 0 {
		t.Fatalf("expected positive onset value when a tone follows silence, got %v", onsetValue)
	}
}

func TestCalculateBatchMatchesStreaming(t *testing.T) {
	cfg := Config{HopSize: 32, FrameSize: 64, Kind: HighFrequencyContent, Window: Hamming}
	samples := make([]float64, 32*10)
	for i := range samples {
		samples[i] = math.Sin(float64(i) * 0.1)
	}

	batch, err := Calculate(samples, cfg)
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}

	d, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for i, want := range batch {
		got := d.Sample(samples[i*cfg.HopSize : (i+1)*cfg.HopSize])
		if math.Abs(got-want) > 1e-9 {
			t.Fatalf("hop %d: streaming=%v batch=%v", i, got, want)
		}
	}
}

func TestInvalidConfigRejected(t *testing.T) {
	if _, err := New(Config{HopSize: 0, FrameSize: 64}); err == nil {
		t.Fatalf("expected error for zero hop size")
	}
	if _, err := New(Config{HopSize: 64, FrameSize: 32}); err == nil {
		t.Fatalf("expected error for frameSize < hopSize")
	}
}
