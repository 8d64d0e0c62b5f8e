package staircase_test

import (
	"testing"

	"github.com/sdrcore/spectre-capture/block"
	"github.com/sdrcore/spectre-capture/staircase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSink struct {
	tags []block.Tag
}

func (f *fakeSink) AddTag(t block.Tag) { f.tags = append(f.tags, t) }

// TestScenarioDStaircaseShape mirrors spec.md §8 Scenario D.
func TestScenarioDStaircaseShape(t *testing.T) {
	s, err := staircase.New(staircase.Config{
		MinSamplesPerStep: 3, MaxSamplesPerStep: 5,
		StepIncrement: 1, HopFreq: 10, SampleRate: 20,
	}, nil)
	require.NoError(t, err)

	const total = 19
	out := make([]staircase.Sample, total)
	sink := &fakeSink{}
	n := s.Work(total, out, 0, sink)
	assert.Equal(t, total, n)

	wantRe := []float32{1, 1, 1, 2, 2, 2, 2, 3, 3, 3, 3, 3, 1, 1, 1, 2, 2, 2, 2}
	gotRe := make([]float32, total)
	for i, sm := range out {
		gotRe[i] = sm.Re
		assert.Zero(t, sm.Im)
	}
	assert.Equal(t, wantRe, gotRe)

	wantOffsets := []uint64{0, 3, 7, 12, 15}
	wantFreqs := []float32{10, 20, 30, 10, 20}
	require.Len(t, sink.tags, len(wantOffsets))
	for i, tag := range sink.tags {
		assert.Equal(t, wantOffsets[i], tag.Offset)
		assert.Equal(t, wantFreqs[i], tag.Value)
		assert.Equal(t, staircase.TagKey, tag.Key)
	}
}

func TestConfigurationErrors(t *testing.T) {
	cases := []staircase.Config{
		{MinSamplesPerStep: 0, MaxSamplesPerStep: 5, StepIncrement: 1, SampleRate: 20},
		{MinSamplesPerStep: 5, MaxSamplesPerStep: 3, StepIncrement: 1, SampleRate: 20},
		{MinSamplesPerStep: 3, MaxSamplesPerStep: 5, StepIncrement: 0, SampleRate: 20},
		{MinSamplesPerStep: 3, MaxSamplesPerStep: 5, StepIncrement: 1, SampleRate: 0},
	}
	for _, c := range cases {
		_, err := staircase.New(c, nil)
		require.Error(t, err)
	}
}
