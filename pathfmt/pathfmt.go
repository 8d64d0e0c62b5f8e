// Package pathfmt derives batch file paths and timestamps from the system
// wall clock, per spec.md §3 ("Batch timestamp", "Batch file path") and
// §4.4's format_path.
//
// The millisecond derivation is grounded on
// original_source/lib/bin_chunk_helper.cc's set_attrs: take milliseconds
// since epoch, floor to whole seconds for the broken-down time, and keep
// the remainder as the millisecond component.
package pathfmt

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Timestamp is the (utc_broken_down_time, millisecond_component) pair
// captured at the instant a batch file is opened.
type Timestamp struct {
	UTC time.Time // truncated to whole seconds
	Ms  int       // millisecond_component, in [0, 999]
}

// Now captures the current wall-clock instant as a Timestamp.
func Now() Timestamp {
	now := time.Now().UTC()
	msSinceEpoch := now.UnixMilli()
	flooredSeconds := msSinceEpoch / 1000
	ms := int(msSinceEpoch % 1000)
	return Timestamp{
		UTC: time.Unix(flooredSeconds, 0).UTC(),
		Ms:  ms,
	}
}

// String renders the timestamp as it appears in a batch file name:
// <YYYY>-<MM>-<DD>T<HH>:<MM>:<SS>.<mmm>Z
func (t Timestamp) String() string {
	return fmt.Sprintf("%sZ", t.UTC.Format("2006-01-02T15:04:05")+fmt.Sprintf(".%03d", t.Ms))
}

// Path computes a batch file path per spec.md §3:
//
//	<dir>/[YYYY/MM/DD/]<timestamp>_<tag>.<ext>
//
// groupByDate controls whether the YYYY/MM/DD prefix is inserted. ext is
// either a sample type code (data file) or "hdr" (detached header).
func Path(dir, tag, ext string, groupByDate bool, ts Timestamp) string {
	parts := []string{dir}
	if groupByDate {
		parts = append(parts, ts.UTC.Format("2006"), ts.UTC.Format("01"), ts.UTC.Format("02"))
	}
	name := fmt.Sprintf("%s_%s.%s", ts.String(), tag, ext)
	parts = append(parts, name)
	return filepath.Join(parts...)
}

// EnsureDir idempotently creates dir and all missing parents. A pre-existing
// directory is not an error (spec.md §4.1: "Directory creation is
// idempotent").
func EnsureDir(dir string) error {
	return os.MkdirAll(dir, 0o755)
}
