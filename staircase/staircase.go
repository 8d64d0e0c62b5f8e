// Package staircase implements the Tagged Staircase Source (spec.md §4.3):
// a deterministic stepped complex waveform annotated with synthetic
// center-frequency tags at every step boundary, used to validate the
// batched-capture + sweep-metadata pipeline without a physical radio.
//
// The step/wrap bookkeeping follows jbrzusto-ogdar/radar.go's scanline
// index arithmetic (a counter that advances per-sample and wraps a higher
// level index on overflow), generalized from a fixed scan period to an
// arithmetically growing step length.
package staircase

import (
	"github.com/sdrcore/spectre-capture/block"
	"github.com/sdrcore/spectre-capture/logx"
)

// TagKey is the stream tag key carrying the active synthetic frequency,
// per spec.md §4.3 "(key=rx_freq, value=active_freq)".
const TagKey = "rx_freq"

// Config fixes a Source's step progression at construction time.
type Config struct {
	MinSamplesPerStep int     // lower (and wrap target) bound of the step-length progression, > 0
	MaxSamplesPerStep int     // upper bound of the progression, >= MinSamplesPerStep
	StepIncrement     int     // added to the step length at every step, > 0
	HopFreq           float32 // added to the active frequency at every step
	SampleRate        int     // samples/second, > 0 (used to derive initial_freq = sample_rate/2)
}

// Source emits z_n = (step_index_1based, 0) and tags step boundaries.
type Source struct {
	cfg         Config
	initialFreq float32
	log         *logx.Logger

	nstep           int
	nsamples        int
	nsamplesPerStep int
	activeFreq      float32
}

// New validates cfg and returns a ready-to-run Source.
func New(cfg Config, log *logx.Logger) (*Source, error) {
	if cfg.MinSamplesPerStep <= 0 {
		return nil, &block.ConfigurationError{Field: "min_samples_per_step", Value: cfg.MinSamplesPerStep}
	}
	if cfg.MaxSamplesPerStep < cfg.MinSamplesPerStep {
		return nil, &block.ConfigurationError{Field: "max_samples_per_step", Value: cfg.MaxSamplesPerStep}
	}
	if cfg.StepIncrement <= 0 {
		return nil, &block.ConfigurationError{Field: "step_increment", Value: cfg.StepIncrement}
	}
	if cfg.SampleRate <= 0 {
		return nil, &block.ConfigurationError{Field: "sample_rate", Value: cfg.SampleRate}
	}
	if log == nil {
		log = logx.New("staircase")
	}
	initialFreq := float32(cfg.SampleRate) / 2
	return &Source{
		cfg:             cfg,
		initialFreq:     initialFreq,
		log:             log,
		nsamplesPerStep: cfg.MinSamplesPerStep,
		activeFreq:      initialFreq,
	}, nil
}

// Sample is one emitted IQ value.
type Sample struct {
	Re, Im float32
}

// Work emits noutputItems samples into out (len(out) must be >=
// noutputItems), tagging every step boundary at its absolute offset on
// sink via sink.AddTag. nitemsWritten is the absolute offset of the first
// emitted sample, i.e. the runtime's nitems_written(port) at the start of
// this call (spec.md §4.3 "Operation").
func (s *Source) Work(noutputItems int, out []Sample, nitemsWritten uint64, sink block.TagSink) int {
	for i := 0; i < noutputItems; i++ {
		if s.nsamples == 0 {
			sink.AddTag(block.Tag{
				Offset: nitemsWritten + uint64(i),
				Key:    TagKey,
				Value:  s.activeFreq,
			})
		}
		out[i] = Sample{Re: float32(s.nstep + 1), Im: 0}
		s.nsamples++
		if s.nsamples == s.nsamplesPerStep {
			s.nstep++
			s.nsamples = 0
			s.activeFreq += s.cfg.HopFreq
			s.nsamplesPerStep += s.cfg.StepIncrement
			if s.nsamplesPerStep > s.cfg.MaxSamplesPerStep {
				s.nsamplesPerStep = s.cfg.MinSamplesPerStep
				s.nstep = 0
				s.activeFreq = s.initialFreq
				s.log.Info("staircase wrapped", "offset", nitemsWritten+uint64(i)+1)
			}
		}
	}
	return noutputItems
}
