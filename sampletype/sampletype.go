// Package sampletype resolves the short GNU-Radio-style item type codes
// used throughout spectre-capture (fc32, fc64, sc16, sc8) to a concrete
// item size and wire format, per spec.md §3 and §4.4's item_size.
//
// Rather than hand-rolling a size table, codes are mapped onto
// hz.tools/sdr's SampleFormat enumeration, which already models exactly
// these four IQ layouts for the wider Go SDR ecosystem.
package sampletype

import (
	"github.com/sdrcore/spectre-capture/block"
	"hz.tools/sdr"
)

// Format identifies the on-disk/in-memory layout of one IQ item: the short
// code used in configuration and file extensions, plus the hz.tools/sdr
// SampleFormat it is backed by.
type Format struct {
	Code string
	SDR  sdr.SampleFormat
}

// Size returns the number of bytes one item of this format occupies, the
// §3 "item size".
func (f Format) Size() int {
	return f.SDR.Size()
}

// String returns the code, so a Format satisfies fmt.Stringer for logging.
func (f Format) String() string { return f.Code }

// table is the §3 sample type code table, each code bound to the
// hz.tools/sdr SampleFormat modeling the same wire layout:
//
//	fc32 -> complex float32 (re, im)  -> sdr.SampleFormatC64  (8 bytes)
//	fc64 -> complex float64 (re, im)  -> sdr.SampleFormatC128 (16 bytes)
//	sc16 -> complex signed 16-bit     -> sdr.SampleFormatI16  (4 bytes)
//	sc8  -> complex signed 8-bit      -> sdr.SampleFormatI8   (2 bytes)
var table = map[string]sdr.SampleFormat{
	"fc32": sdr.SampleFormatC64,
	"fc64": sdr.SampleFormatC128,
	"sc16": sdr.SampleFormatI16,
	"sc8":  sdr.SampleFormatI8,
}

// Parse resolves a configured input_type code to a Format, or a
// *block.ConfigurationError for any code outside the §3 table.
func Parse(code string) (Format, error) {
	f, ok := table[code]
	if !ok {
		return Format{}, &block.ConfigurationError{Field: "input_type", Value: code}
	}
	return Format{Code: code, SDR: f}, nil
}
