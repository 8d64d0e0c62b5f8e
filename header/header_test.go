package header_test

import (
	"bytes"
	"testing"

	"github.com/sdrcore/spectre-capture/header"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestWriteReadRoundTrip(t *testing.T) {
	pairs := []header.Pair{
		{FrequencyHz: 100, SampleCount: 2},
		{FrequencyHz: 200, SampleCount: 1},
		{FrequencyHz: 300, SampleCount: 1},
	}
	var buf bytes.Buffer
	require.NoError(t, header.WritePairs(&buf, "test.hdr", pairs))
	assert.Equal(t, 8*len(pairs), buf.Len())

	got, err := header.ReadAll("test.hdr", buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, pairs, got)
}

func TestReadAllRejectsMisalignedLength(t *testing.T) {
	_, err := header.ReadAll("bad.hdr", make([]byte, 7))
	require.Error(t, err)
}

func TestSampleTotal(t *testing.T) {
	pairs := []header.Pair{{SampleCount: 2}, {SampleCount: 1}, {SampleCount: 1}}
	assert.Equal(t, uint64(4), header.SampleTotal(pairs))
}

func TestRoundTripProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(0, 64).Draw(t, "n")
		pairs := make([]header.Pair, n)
		for i := range pairs {
			pairs[i] = header.Pair{
				FrequencyHz: float32(rapid.IntRange(-1_000_000, 1_000_000).Draw(t, "freq")),
				SampleCount: uint32(rapid.IntRange(0, 1_000_000).Draw(t, "count")),
			}
		}
		var buf bytes.Buffer
		require.NoError(t, header.WritePairs(&buf, "p.hdr", pairs))
		got, err := header.ReadAll("p.hdr", buf.Bytes())
		require.NoError(t, err)
		assert.Equal(t, pairs, got)
	})
}
