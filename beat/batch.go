package beat

// TrackODF runs a fresh Engine over a precomputed onset detection function
// vector (one sample per hop, e.g. from odf.Calculate), returning one
// StepResult per sample. It is the batch counterpart to streaming
// ProcessOdfSample calls, mirroring the original BTrack Python module's
// one-shot beat-tracking entry point.
func TrackODF(samples []float64, cfg Config) ([]StepResult, error) {
	e, err := New(cfg)
	if err != nil {
		return nil, err
	}

	out := make([]StepResult, len(samples))
	for i, s := range samples {
		out[i] = e.ProcessOdfSample(s)
	}
	return out, nil
}
