// spectre-plan prints the linear frequency plan a Frequency Sweeper will
// cycle through, as YAML, so a downstream consumer can know the
// start-of-sweep value out-of-band (spec.md §9 Open Question 3: "the
// sweeper does not publish an initial frequency; downstream must know the
// start-of-sweep value out-of-band").
package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/sdrcore/spectre-capture/config"
)

// planEntry is one frequency the sweeper will retune to, in cycle order.
type planEntry struct {
	FreqHz      float64 `yaml:"freq_hz"`
	IsInitial   bool    `yaml:"is_initial,omitempty"`
	StepSamples uint64  `yaml:"step_samples"`
}

func main() {
	help := pflag.Bool("help", false, "Display help text.")
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: spectre-plan [options]\n\nPrints the sweep's frequency plan as YAML.\n\n")
		pflag.PrintDefaults()
	}
	pflag.Parse()
	if *help {
		pflag.Usage()
		os.Exit(0)
	}

	cfg, found := config.Load()
	if !found {
		fmt.Fprintln(os.Stderr, "spectre-plan: no spectre.toml found, using built-in defaults")
	}
	sweepCfg := cfg.Sweep

	samplesPerStep := uint64(sweepCfg.DwellTime * float64(sweepCfg.SampleRate))

	var entries []planEntry
	entries = append(entries, planEntry{FreqHz: sweepCfg.MinFreqHz, IsInitial: true, StepSamples: samplesPerStep})
	for f := sweepCfg.MinFreqHz + sweepCfg.HopFreqHz; f <= sweepCfg.MaxFreqHz; f += sweepCfg.HopFreqHz {
		entries = append(entries, planEntry{FreqHz: f, StepSamples: samplesPerStep})
	}

	out, err := yaml.Marshal(entries)
	if err != nil {
		fmt.Fprintf(os.Stderr, "spectre-plan: %s\n", err)
		os.Exit(1)
	}
	os.Stdout.Write(out)
}
