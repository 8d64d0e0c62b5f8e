// Package block defines the host-runtime contract that every component in
// spectre-capture is built against (spec.md §6), and the error taxonomy
// raised across that boundary (spec.md §7).
//
// Nothing in this package talks to a real dataflow runtime; it only pins
// down the shapes the runtime must provide (tag enumeration, absolute
// offset counters, message ports) so sink, sweep, and staircase can be
// tested against fakes and wired to a real runtime later without change.
package block

import "fmt"

// Tag is a stream annotation delivered alongside the sample stream, at an
// absolute offset measured in samples since the start of the whole stream
// (not per-work-call). Key identifies what the tag carries; for this core
// Value is always a center-frequency reading.
type Tag struct {
	Offset uint64
	Key    string
	Value  float32
	Source string
}

// TagSource is the subset of the runtime contract needed to read tags off
// an input stream: enumerate tags whose absolute offset lies in a
// half-open range, and report the absolute offset of the next unread item.
type TagSource interface {
	// TagsInRange returns, in increasing offset order, every tag on the
	// given key whose Offset lies in [start, end).
	TagsInRange(key string, start, end uint64) []Tag

	// NitemsRead returns the cumulative number of items read from the
	// input stream as of the start of the current work call.
	NitemsRead() uint64
}

// TagSink is the subset of the runtime contract needed to emit a tag onto
// an output stream, used by the staircase source.
type TagSink interface {
	AddTag(t Tag)
}

// MessagePort delivers an opaque key-value message to all subscribers.
// Publish never blocks and never returns an error from this core's
// perspective (spec.md §5: "a non-blocking enqueue").
type MessagePort interface {
	Publish(msg map[string]float32)
}

// ConfigurationError is raised at construction time: an unknown input
// type, a non-positive rate, or any other statically-detectable
// misconfiguration (spec.md §7).
type ConfigurationError struct {
	Field string
	Value any
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s = %v", e.Field, e.Value)
}

// IoError wraps a failed open/write/mkdir/close, always carrying the
// offending path (spec.md §7).
type IoError struct {
	Path string
	Op   string
	Err  error
}

func (e *IoError) Error() string {
	return fmt.Sprintf("io error: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IoError) Unwrap() error { return e.Err }

// UndefinedTagState is raised when a sink in sweep mode opens its first
// ever batch, the first sample carries no tag, and no initial tag value
// was configured to fall back on (spec.md §7, §4.1 "Tag initialization").
type UndefinedTagState struct {
	Reason string
}

func (e *UndefinedTagState) Error() string {
	return fmt.Sprintf("undefined tag state: %s", e.Reason)
}

// TagValueError is raised when a tag carries a non-numeric payload
// (spec.md §7). This core's TagSource already types Value as float32, so
// this error exists for runtime adapters that decode a dynamically-typed
// tag value before handing it to this core.
type TagValueError struct {
	Key string
	Got any
}

func (e *TagValueError) Error() string {
	return fmt.Sprintf("tag value error: key %q carries non-numeric payload %v", e.Key, e.Got)
}
