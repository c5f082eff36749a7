// Command btrack-cli runs the causal beat tracker over a WAV file and
// prints the detected beat times, mirroring the offline-over-a-file usage
// BTrack's command-line example and algo-piano/cmd/piano-render both
// demonstrate for their respective engines.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/cwbudde/algo-beat/beat"
	trackercfg "github.com/cwbudde/algo-beat/config"
	"github.com/cwbudde/algo-beat/internal/audioio"
)

func main() {
	input := flag.String("input", "", "Input WAV file path (required)")
	hopSize := flag.Int("hop-size", 512, "ODF hop size in samples")
	frameSize := flag.Int("frame-size", 1024, "ODF frame size in samples")
	configPath := flag.String("config", "", "Optional JSON config file overriding hop/frame/odf/window settings")
	flag.Parse()

	if *input == "" {
		fmt.Fprintln(os.Stderr, "Error: -input is required")
		flag.Usage()
		os.Exit(1)
	}

	cfg := beat.DefaultConfig()
	cfg.HopSize = *hopSize
	cfg.FrameSize = *frameSize

	if *configPath != "" {
		loaded, err := trackercfg.LoadJSON(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config %q: %v\n", *configPath, err)
			os.Exit(1)
		}
		cfg = loaded
	}

	samples, sampleRate, err := audioio.ReadMono(*input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading %q: %v\n", *input, err)
		os.Exit(1)
	}

	engine, err := beat.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error configuring engine: %v\n", err)
		os.Exit(1)
	}

	numHops := len(samples) / cfg.HopSize
	fmt.Printf("Tracking %d hops (%d samples at %d Hz, hop=%d frame=%d)...\n",
		numHops, len(samples), sampleRate, cfg.HopSize, cfg.FrameSize)

	for i := 0; i < numHops; i++ {
		hop := samples[i*cfg.HopSize : (i+1)*cfg.HopSize]
		result := engine.ProcessAudioFrame(hop)
		if result.Beat {
			t := beat.BeatTimeInSeconds(i, cfg.HopSize, float64(sampleRate))
			fmt.Printf("%.4f\t%.2f BPM\n", t, result.TempoBPM)
		}
	}
}
