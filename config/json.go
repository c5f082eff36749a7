// Package config loads and saves beat.Config values as JSON, the same
// partial-override-over-defaults pattern algo-piano/preset uses for piano
// parameter presets.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/cwbudde/algo-beat/beat"
	"github.com/cwbudde/algo-beat/odf"
)

// File is the JSON schema for a beat tracker configuration. Every field is a
// pointer so a partial file only overrides what it names, leaving the rest
// at beat.DefaultConfig().
type File struct {
	HopSize    *int    `json:"hop_size"`
	FrameSize  *int    `json:"frame_size"`
	SampleRate *int    `json:"sample_rate"`
	OdfKind    *string `json:"odf_kind"`
	Window     *string `json:"window"`
}

// LoadJSON reads a configuration file and applies it on top of
// beat.DefaultConfig().
func LoadJSON(path string) (beat.Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return beat.Config{}, err
	}

	var f File
	if err := json.Unmarshal(b, &f); err != nil {
		return beat.Config{}, err
	}

	cfg := beat.DefaultConfig()
	if err := ApplyFile(&cfg, &f); err != nil {
		return beat.Config{}, err
	}
	return cfg, nil
}

// SaveJSON writes cfg to path as a fully-populated (non-pointer-sparse)
// configuration file.
func SaveJSON(path string, cfg beat.Config) error {
	f := File{
		HopSize:    intPtr(cfg.HopSize),
		FrameSize:  intPtr(cfg.FrameSize),
		SampleRate: intPtr(cfg.SampleRate),
		OdfKind:    strPtr(cfg.OdfKind.String()),
		Window:     strPtr(cfg.WindowKind.String()),
	}
	b, err := json.MarshalIndent(&f, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

// ApplyFile applies a parsed configuration file onto an existing
// beat.Config, validating every overridden field.
func ApplyFile(dst *beat.Config, f *File) error {
	if dst == nil {
		return fmt.Errorf("config: nil destination")
	}
	if f == nil {
		return nil
	}

	if f.HopSize != nil {
		if *f.HopSize <= 0 {
			return fmt.Errorf("config: hop_size must be > 0")
		}
		dst.HopSize = *f.HopSize
	}
	if f.FrameSize != nil {
		if *f.FrameSize <= 0 {
			return fmt.Errorf("config: frame_size must be > 0")
		}
		dst.FrameSize = *f.FrameSize
	}
	if f.SampleRate != nil {
		if *f.SampleRate <= 0 {
			return fmt.Errorf("config: sample_rate must be > 0")
		}
		dst.SampleRate = *f.SampleRate
	}
	if f.OdfKind != nil {
		k, err := parseKind(*f.OdfKind)
		if err != nil {
			return err
		}
		dst.OdfKind = k
	}
	if f.Window != nil {
		w, err := parseWindow(*f.Window)
		if err != nil {
			return err
		}
		dst.WindowKind = w
	}
	return nil
}

func parseKind(s string) (odf.Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "energyenvelope":
		return odf.EnergyEnvelope, nil
	case "energydifference":
		return odf.EnergyDifference, nil
	case "spectraldifference":
		return odf.SpectralDifference, nil
	case "spectraldifferencehwr":
		return odf.SpectralDifferenceHWR, nil
	case "phasedeviation":
		return odf.PhaseDeviation, nil
	case "complexspectraldifference":
		return odf.ComplexSpectralDifference, nil
	case "complexspectraldifferencehwr":
		return odf.ComplexSpectralDifferenceHWR, nil
	case "highfrequencycontent":
		return odf.HighFrequencyContent, nil
	case "highfrequencyspectraldifference":
		return odf.HighFrequencySpectralDifference, nil
	case "highfrequencyspectraldifferencehwr":
		return odf.HighFrequencySpectralDifferenceHWR, nil
	default:
		return 0, fmt.Errorf("config: unknown odf_kind %q", s)
	}
}

func parseWindow(s string) (odf.Window, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
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
		return 0, fmt.Errorf("config: unknown window %q", s)
	}
}

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }
