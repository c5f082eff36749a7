package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cwbudde/algo-beat/beat"
	"github.com/cwbudde/algo-beat/odf"
)

func TestLoadJSONAppliesPartialOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	content := `{
  "hop_size": 256,
  "odf_kind": "HighFrequencyContent"
}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadJSON(path)
	if err != nil {
		t.Fatalf("LoadJSON: %v", err)
	}
	if cfg.HopSize != 256 {
		t.Fatalf("HopSize = %d, want 256", cfg.HopSize)
	}
	if cfg.OdfKind != odf.HighFrequencyContent {
		t.Fatalf("OdfKind = %v, want HighFrequencyContent", cfg.OdfKind)
	}
	if cfg.FrameSize != 1024 {
		t.Fatalf("FrameSize = %d, want default 1024", cfg.FrameSize)
	}
}

func TestLoadJSONRejectsUnknownKind(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, []byte(`{"odf_kind": "NotAThing"}`), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadJSON(path); err == nil {
		t.Fatalf("expected error for unknown odf_kind")
	}
}

func TestSaveJSONRoundTrips(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	if _, err := LoadJSON(filepath.Join(dir, "missing.json")); err == nil {
		t.Fatalf("expected error reading missing file")
	}

	want := beat.DefaultConfig()
	if err := SaveJSON(path, want); err != nil {
		t.Fatalf("SaveJSON: %v", err)
	}
	loaded, err := LoadJSON(path)
	if err != nil {
		t.Fatalf("LoadJSON after save: %v", err)
	}
	if loaded.HopSize != want.HopSize {
		t.Fatalf("HopSize = %d, want %d", loaded.HopSize, want.HopSize)
	}
	if loaded.WindowKind != want.WindowKind {
		t.Fatalf("WindowKind = %v, want %v", loaded.WindowKind, want.WindowKind)
	}
}
