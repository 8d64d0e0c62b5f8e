// Package harness wires the Tagged Staircase Source into the Batched File
// Sink without a real dataflow runtime, standing in for the host runtime's
// tag storage and offset bookkeeping (spec.md §6 "Runtime contract
// consumed by the core"). It exists for end-to-end simulation and the
// round-trip law test; production deployments supply their own runtime.
package harness

import (
	"encoding/binary"
	"math"
	"sort"

	"github.com/sdrcore/spectre-capture/block"
	"github.com/sdrcore/spectre-capture/staircase"
)

// TagLog is an in-memory append-only tag store implementing both
// block.TagSink (for the staircase source) and block.TagSource (for the
// sink), keeping tags sorted by absolute offset as the runtime contract
// requires.
type TagLog struct {
	tags []block.Tag
}

// AddTag appends t, maintaining offset order.
func (l *TagLog) AddTag(t block.Tag) {
	i := sort.Search(len(l.tags), func(i int) bool { return l.tags[i].Offset > t.Offset })
	l.tags = append(l.tags, block.Tag{})
	copy(l.tags[i+1:], l.tags[i:])
	l.tags[i] = t
}

// TagsInRange returns every tag of key whose offset lies in [start, end).
func (l *TagLog) TagsInRange(key string, start, end uint64) []block.Tag {
	var out []block.Tag
	for _, t := range l.tags {
		if t.Key != key {
			continue
		}
		if t.Offset >= start && t.Offset < end {
			out = append(out, t)
		}
	}
	return out
}

// NitemsRead is unused by sink.Sink, which takes the absolute offset as an
// explicit Work argument instead; it exists to satisfy block.TagSource.
func (l *TagLog) NitemsRead() uint64 { return 0 }

// Generate runs the staircase source for total samples starting at
// absolute offset 0 and returns the emitted samples alongside the TagLog
// that recorded every step-boundary tag.
func Generate(src *staircase.Source, total int) ([]staircase.Sample, *TagLog) {
	out := make([]staircase.Sample, total)
	log := &TagLog{}
	src.Work(total, out, 0, log)
	return out, log
}

// EncodeFC32 packs samples as host-byte-order complex float32 pairs, the
// on-disk convention for the "fc32" sample type code (spec.md §3).
func EncodeFC32(samples []staircase.Sample) []byte {
	buf := make([]byte, 8*len(samples))
	for i, s := range samples {
		binary.NativeEndian.PutUint32(buf[i*8:], math.Float32bits(s.Re))
		binary.NativeEndian.PutUint32(buf[i*8+4:], math.Float32bits(s.Im))
	}
	return buf
}
