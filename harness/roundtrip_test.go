package harness_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sdrcore/spectre-capture/harness"
	"github.com/sdrcore/spectre-capture/header"
	"github.com/sdrcore/spectre-capture/pathfmt"
	"github.com/sdrcore/spectre-capture/sink"
	"github.com/sdrcore/spectre-capture/staircase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// incrementingClock hands out strictly increasing millisecond timestamps
// so successive batches opened within the same test never collide on
// filename, mirroring the spacing real wall-clock time gives production
// batches.
func incrementingClock() func() pathfmt.Timestamp {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	var n int
	return func() pathfmt.Timestamp {
		t := base.Add(time.Duration(n) * time.Millisecond)
		n++
		return pathfmt.Timestamp{UTC: t.Truncate(time.Second), Ms: int(t.UnixMilli() % 1000)}
	}
}

// TestRoundTripLaw implements spec.md §8's "Round-trip law": feeding the
// staircase source into the sink in sweep mode, then parsing the .hdr
// file, recovers the exact sequence of (active_freq, step_length) pairs
// emitted by the staircase, modulo the batch-boundary split whose pairs on
// either side sum to the original.
func TestRoundTripLaw(t *testing.T) {
	src, err := staircase.New(staircase.Config{
		MinSamplesPerStep: 3, MaxSamplesPerStep: 5,
		StepIncrement: 1, HopFreq: 10, SampleRate: 20,
	}, nil)
	require.NoError(t, err)

	// Two full wrap cycles of the step progression (3+4+5 samples each),
	// so every step is completely generated and nothing is lost to a
	// partial, discarded final batch.
	const total = 24
	samples, tagLog := harness.Generate(src, total)
	input := harness.EncodeFC32(samples)

	// Expected (freq, length) pairs straight from the staircase's own step
	// boundaries: lengths 3,4,5 repeating, frequencies 10,20,30 repeating.
	wantPairs := []header.Pair{
		{FrequencyHz: 10, SampleCount: 3},
		{FrequencyHz: 20, SampleCount: 4},
		{FrequencyHz: 30, SampleCount: 5},
		{FrequencyHz: 10, SampleCount: 3},
		{FrequencyHz: 20, SampleCount: 4},
		{FrequencyHz: 30, SampleCount: 5},
	}

	dir := t.TempDir()
	s, err := sink.New(sink.Config{
		Dir: dir, Tag: "rt", InputType: "fc32",
		BatchSize: 0.4, SampleRate: 20, // N = floor(0.4*20) = 8, splits step boundaries mid-batch
		IsTagged: true, TagKey: staircase.TagKey, InitialTagValue: 1, // unused: offset 0 is always tagged
		Clock: incrementingClock(),
	}, nil)
	require.NoError(t, err)
	require.Equal(t, 8, s.BatchSizeSamples())

	var nitemsRead uint64
	var offset int
	for offset < total {
		n, err := s.Work(total-offset, input[offset*8:], nitemsRead, tagLog)
		require.NoError(t, err)
		require.Greater(t, n, 0)
		offset += n
		nitemsRead += uint64(n)
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var gotPairs []header.Pair
	for _, e := range entries {
		if filepath.Ext(e.Name()) != ".hdr" {
			continue
		}
		path := filepath.Join(dir, e.Name())
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		pairs, err := header.ReadAll(path, data)
		require.NoError(t, err)
		gotPairs = mergeAdjacent(append(gotPairs, pairs...))
	}

	assert.Equal(t, wantPairs, gotPairs)
}

// mergeAdjacent coalesces consecutive pairs that share the same frequency,
// undoing the batch-boundary split the round-trip law allows for.
func mergeAdjacent(pairs []header.Pair) []header.Pair {
	if len(pairs) == 0 {
		return pairs
	}
	out := []header.Pair{pairs[0]}
	for _, p := range pairs[1:] {
		last := &out[len(out)-1]
		if last.FrequencyHz == p.FrequencyHz {
			last.SampleCount += p.SampleCount
			continue
		}
		out = append(out, p)
	}
	return out
}
