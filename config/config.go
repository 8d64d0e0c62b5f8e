// Package config loads spectre-capture's component configuration from a
// TOML file, grounded on jbrzusto-ogdar/config.go's loadConfig/
// setDefaultConfig pair: look for a named config file in a short list of
// candidate directories, unmarshal its sections into typed structs, and
// fall back to documented defaults if none is found.
package config

import (
	"github.com/spf13/viper"
	"hz.tools/rf"

	"github.com/sdrcore/spectre-capture/sink"
	"github.com/sdrcore/spectre-capture/staircase"
	"github.com/sdrcore/spectre-capture/sweep"
)

// Sink mirrors sink.Config with TOML field names matching spec.md §4.1's
// configuration surface.
type Sink struct {
	Dir             string  `mapstructure:"dir"`
	Tag             string  `mapstructure:"tag"`
	InputType       string  `mapstructure:"input_type"`
	BatchSize       float64 `mapstructure:"batch_size"`
	SampleRate      int     `mapstructure:"sample_rate"`
	GroupByDate     bool    `mapstructure:"group_by_date"`
	IsTagged        bool    `mapstructure:"is_tagged"`
	TagKey          string  `mapstructure:"tag_key"`
	InitialTagValue float32 `mapstructure:"initial_tag_value"`
}

// ToSinkConfig converts the decoded TOML section into sink.Config.
func (c Sink) ToSinkConfig() sink.Config {
	return sink.Config{
		Dir: c.Dir, Tag: c.Tag, InputType: c.InputType,
		BatchSize: c.BatchSize, SampleRate: c.SampleRate,
		GroupByDate: c.GroupByDate, IsTagged: c.IsTagged,
		TagKey: c.TagKey, InitialTagValue: c.InitialTagValue,
	}
}

// Sweep mirrors sweep.Config.
type Sweep struct {
	MinFreqHz  float64 `mapstructure:"min_freq_hz"`
	MaxFreqHz  float64 `mapstructure:"max_freq_hz"`
	HopFreqHz  float64 `mapstructure:"hop_freq_hz"`
	DwellTime  float64 `mapstructure:"dwell_time"`
	SampleRate int     `mapstructure:"sample_rate"`
}

// ToSweepConfig converts the decoded TOML section into sweep.Config.
func (c Sweep) ToSweepConfig() sweep.Config {
	return sweep.Config{
		MinFreq: rf.Hz(c.MinFreqHz), MaxFreq: rf.Hz(c.MaxFreqHz), HopFreq: rf.Hz(c.HopFreqHz),
		DwellTime: c.DwellTime, SampleRate: c.SampleRate,
	}
}

// Staircase mirrors staircase.Config.
type Staircase struct {
	MinSamplesPerStep int     `mapstructure:"min_samples_per_step"`
	MaxSamplesPerStep int     `mapstructure:"max_samples_per_step"`
	StepIncrement     int     `mapstructure:"step_increment"`
	HopFreq           float32 `mapstructure:"hop_freq"`
	SampleRate        int     `mapstructure:"sample_rate"`
}

// ToStaircaseConfig converts the decoded TOML section into staircase.Config.
func (c Staircase) ToStaircaseConfig() staircase.Config {
	return staircase.Config{
		MinSamplesPerStep: c.MinSamplesPerStep, MaxSamplesPerStep: c.MaxSamplesPerStep,
		StepIncrement: c.StepIncrement, HopFreq: c.HopFreq, SampleRate: c.SampleRate,
	}
}

// Config is the full decoded TOML document, one section per component.
type Config struct {
	Sink      Sink      `mapstructure:"sink"`
	Sweep     Sweep     `mapstructure:"sweep"`
	Staircase Staircase `mapstructure:"staircase"`
}

// Load reads "spectre.toml" from /etc/spectre-capture and the working
// directory (in that order), unmarshals its "sink", "sweep", and
// "staircase" sections, and returns the result. If no config file is
// found, it returns DefaultConfig() with ok=false so callers can decide
// whether a missing file is fatal for their use case.
func Load() (cfg Config, ok bool) {
	viper.SetConfigName("spectre")
	viper.AddConfigPath("/etc/spectre-capture")
	viper.AddConfigPath(".")
	if err := viper.ReadInConfig(); err != nil {
		return DefaultConfig(), false
	}
	cfg = DefaultConfig()
	viper.UnmarshalKey("sink", &cfg.Sink)
	viper.UnmarshalKey("sweep", &cfg.Sweep)
	viper.UnmarshalKey("staircase", &cfg.Staircase)
	return cfg, true
}

// DefaultConfig returns a configuration usable for local smoke-testing
// against the staircase source (spec.md §4.3 Scenario D parameters).
// There is no sane default output directory or frequency plan for real
// capture; callers relying on this for production use must override it
// with a real config file.
func DefaultConfig() Config {
	return Config{
		Sink: Sink{
			Dir: "./capture", Tag: "capture", InputType: "fc32",
			BatchSize: 1.0, SampleRate: 20,
			GroupByDate: false, IsTagged: true, TagKey: staircase.TagKey,
		},
		Sweep: Sweep{
			MinFreqHz: 100e6, MaxFreqHz: 106e6, HopFreqHz: 2e6,
			DwellTime: 1e-3, SampleRate: 1000,
		},
		Staircase: Staircase{
			MinSamplesPerStep: 3, MaxSamplesPerStep: 5,
			StepIncrement: 1, HopFreq: 10, SampleRate: 20,
		},
	}
}
