// spectre-simulate drives the Tagged Staircase Source into the Batched
// File Sink without a physical radio, for smoke-testing a capture
// configuration end to end (spec.md §1's "it exists so that the whole
// batched-capture + sweep-metadata pipeline can be validated against
// analytically known input without a physical radio").
//
// Grounded on jbrzusto-ogdar/ogdar.go's main(): load a config file if
// present, fall back to documented defaults otherwise, then run a fixed
// amount of work and report what happened.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/sdrcore/spectre-capture/config"
	"github.com/sdrcore/spectre-capture/harness"
	"github.com/sdrcore/spectre-capture/logx"
	"github.com/sdrcore/spectre-capture/sink"
	"github.com/sdrcore/spectre-capture/staircase"
)

func main() {
	total := pflag.IntP("samples", "n", 1000, "total number of samples to generate and capture")
	help := pflag.Bool("help", false, "Display help text.")
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: spectre-simulate [options]\n\nReads spectre.toml (or uses built-in defaults) and runs the staircase source through the sink.\n\n")
		pflag.PrintDefaults()
	}
	pflag.Parse()
	if *help {
		pflag.Usage()
		os.Exit(0)
	}

	log := logx.New("spectre-simulate")

	cfg, found := config.Load()
	if !found {
		log.Warn("no spectre.toml found, using built-in defaults")
	}

	src, err := staircase.New(cfg.Staircase.ToStaircaseConfig(), logx.New("staircase"))
	if err != nil {
		log.Error("staircase configuration", "err", err)
		os.Exit(1)
	}

	sinkCfg := cfg.Sink.ToSinkConfig()
	s, err := sink.New(sinkCfg, logx.New("sink"))
	if err != nil {
		log.Error("sink configuration", "err", err)
		os.Exit(1)
	}

	samples, tagLog := harness.Generate(src, *total)
	input := harness.EncodeFC32(samples)

	var nitemsRead uint64
	var offset int
	for offset < *total {
		n, err := s.Work(*total-offset, input[offset*8:], nitemsRead, tagLog)
		if err != nil {
			log.Error("work failed", "err", err)
			os.Exit(1)
		}
		if n == 0 {
			break
		}
		offset += n
		nitemsRead += uint64(n)
	}

	log.Info("simulation complete", "dir", sinkCfg.Dir, "samples_written", offset, "samples_generated", *total)
}
