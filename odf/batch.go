package odf

import "fmt"

// Calculate runs a fresh Detector over a full audio buffer and returns one
// ODF sample per hop, discarding any trailing partial hop. It is the batch
// convenience counterpart to streaming Sample calls, mirroring the original
// BTrack Python module's one-shot onsetdf(samples) entry point.
func Calculate(samples []float64, cfg Config) ([]float64, error) {
	d, err := New(cfg)
	if err != nil {
		return nil, fmt.Errorf("odf: %w", err)
	}

	numHops := len(samples) / cfg.HopSize
	out := make([]float64, numHops)
	for i := 0; i < numHops; i++ {
		hop := samples[i*cfg.HopSize : (i+1)*cfg.HopSize]
		out[i] = d.Sample(hop)
	}
	return out, nil
}
