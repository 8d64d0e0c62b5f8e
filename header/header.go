// Package header reads and writes the detached header (.hdr) file format
// described in spec.md §3/§6: a sequence of IEEE-754 single-precision
// floats, host byte order, interpreted as consecutive (center_frequency_hz,
// sample_count) pairs.
package header

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/sdrcore/spectre-capture/block"
)

// Pair is one (center_frequency_hz, sample_count) entry.
type Pair struct {
	FrequencyHz float32
	SampleCount uint32
}

// WriteBinary writes exactly len(floats) float32 values to w in host byte
// order, surfacing any short write as a fatal *block.IoError (spec.md
// §4.4's write_binary).
func WriteBinary(w io.Writer, path string, floats []float32) error {
	buf := make([]byte, 4*len(floats))
	for i, f := range floats {
		binary.NativeEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	n, err := w.Write(buf)
	if err != nil {
		return &block.IoError{Path: path, Op: "write", Err: err}
	}
	if n != len(buf) {
		return &block.IoError{Path: path, Op: "write", Err: fmt.Errorf("short write: wrote %d of %d bytes", n, len(buf))}
	}
	return nil
}

// WritePairs serializes pairs as alternating (freq, count) float32 values
// and writes them to w via WriteBinary.
func WritePairs(w io.Writer, path string, pairs []Pair) error {
	floats := make([]float32, 0, 2*len(pairs))
	for _, p := range pairs {
		floats = append(floats, p.FrequencyHz, float32(p.SampleCount))
	}
	return WriteBinary(w, path, floats)
}

// ReadAll parses a .hdr file's full byte contents into its (frequency,
// sample_count) pairs. len(data) must be a multiple of 8 bytes (two
// float32s per pair); any remainder is a malformed-file IoError.
func ReadAll(path string, data []byte) ([]Pair, error) {
	if len(data)%8 != 0 {
		return nil, &block.IoError{Path: path, Op: "parse", Err: fmt.Errorf("length %d is not a multiple of 8 bytes", len(data))}
	}
	n := len(data) / 8
	pairs := make([]Pair, n)
	for i := 0; i < n; i++ {
		freqBits := binary.NativeEndian.Uint32(data[i*8:])
		countBits := binary.NativeEndian.Uint32(data[i*8+4:])
		pairs[i] = Pair{
			FrequencyHz: math.Float32frombits(freqBits),
			SampleCount: uint32(math.Float32frombits(countBits)),
		}
	}
	return pairs, nil
}

// SampleTotal sums the sample_count across all pairs, for checking
// invariant I2 (sum of sample counts equals batch size N).
func SampleTotal(pairs []Pair) uint64 {
	var total uint64
	for _, p := range pairs {
		total += uint64(p.SampleCount)
	}
	return total
}
