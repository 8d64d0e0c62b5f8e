// Package sweep implements the Frequency Sweeper (spec.md §4.2): a
// passthrough block whose side effect is publishing retune messages on a
// fixed sample-counted cadence, cycling a linear frequency plan.
//
// The cadence counter mirrors jbrzusto-ogdar/radar.go's slot/pulse counting
// style (a monotonically advancing sample counter compared against a
// computed threshold, reset on trip) generalized from radar pulse timing to
// an arbitrary retune dwell time.
package sweep

import (
	"math"

	"github.com/sdrcore/spectre-capture/block"
	"github.com/sdrcore/spectre-capture/logx"
	"hz.tools/rf"
)

// RetuneCmdKey is the message map key carrying the next center frequency,
// per spec.md §4.2 "publish a retune command ... {retune_cmd_name:
// active_freq_as_float}".
const RetuneCmdKey = "freq"

// Config fixes a Sweeper's plan at construction time.
type Config struct {
	MinFreq    rf.Hz   // start (and wrap target) of the linear plan
	MaxFreq    rf.Hz   // inclusive upper bound of the plan
	HopFreq    rf.Hz   // step between consecutive plan frequencies, > 0
	DwellTime  float64 // seconds per step, > 0
	SampleRate int     // samples/second, > 0
}

// Sweeper drives retuning of an external receiver via a message port.
type Sweeper struct {
	cfg            Config
	samplesPerStep uint64
	log            *logx.Logger

	nsamples   uint64
	activeFreq rf.Hz
}

// New validates cfg and returns a ready-to-run Sweeper.
func New(cfg Config, log *logx.Logger) (*Sweeper, error) {
	if cfg.SampleRate <= 0 {
		return nil, &block.ConfigurationError{Field: "sample_rate", Value: cfg.SampleRate}
	}
	if cfg.DwellTime <= 0 {
		return nil, &block.ConfigurationError{Field: "dwell_time", Value: cfg.DwellTime}
	}
	if cfg.HopFreq <= 0 {
		return nil, &block.ConfigurationError{Field: "hop_freq", Value: cfg.HopFreq}
	}
	if cfg.MaxFreq < cfg.MinFreq {
		return nil, &block.ConfigurationError{Field: "max_freq", Value: cfg.MaxFreq}
	}
	samplesPerStep := uint64(math.Floor(cfg.DwellTime * float64(cfg.SampleRate)))
	if samplesPerStep == 0 {
		return nil, &block.ConfigurationError{Field: "dwell_time*sample_rate", Value: samplesPerStep}
	}
	if log == nil {
		log = logx.New("sweep")
	}
	return &Sweeper{
		cfg:            cfg,
		samplesPerStep: samplesPerStep,
		log:            log,
		activeFreq:     cfg.MinFreq,
	}, nil
}

// SamplesPerStep returns floor(dwell_time * sample_rate).
func (s *Sweeper) SamplesPerStep() uint64 { return s.samplesPerStep }

// Work advances the cadence counter by noutputItems samples, publishing a
// retune message on port each time the threshold trips, and returns
// noutputItems (spec.md §4.2 "Return noutput_items"; this block is a pure
// passthrough).
func (s *Sweeper) Work(noutputItems int, port block.MessagePort) int {
	for i := 0; i < noutputItems; i++ {
		s.nsamples++
		if s.nsamples == s.samplesPerStep {
			s.activeFreq += s.cfg.HopFreq
			if s.activeFreq > s.cfg.MaxFreq {
				s.activeFreq = s.cfg.MinFreq
			}
			port.Publish(map[string]float32{RetuneCmdKey: float32(s.activeFreq)})
			s.log.Info("retune published", "freq", float32(s.activeFreq))
			s.nsamples = 0
		}
	}
	return noutputItems
}
