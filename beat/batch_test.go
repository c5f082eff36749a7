package beat

import "testing"

func TestTrackODFMatchesStreaming(t *testing.T) {
	const n = 2000
	stream := make([]float64, n)
	for i := range stream {
		if i%43 == 0 {
			stream[i] = 1000
		}
	}

	batch, err := TrackODF(stream, DefaultConfig())
	if err != nil {
		t.Fatalf("TrackODF: %v", err)
	}
	if len(batch) != n {
		t.Fatalf("len(batch) = %d, want %d", len(batch), n)
	}

	e, err := New(DefaultConfig())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for i, s := range stream {
		r := e.ProcessOdfSample(s)
		if r != batch[i] {
			t.Fatalf("mismatch at %d: streaming=%+v batch=%+v", i, r, batch[i])
		}
	}
}
