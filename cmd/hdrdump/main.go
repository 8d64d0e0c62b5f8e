// hdrdump prints the (center_frequency_hz, sample_count) pairs recorded
// in a detached header (.hdr) file, one per line, and checks invariant I2
// (spec.md §3: the sum of sample counts equals the batch's data-file
// sample count).
//
// Usage:
//
//	hdrdump --item-size N file.hdr
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"

	"github.com/sdrcore/spectre-capture/header"
)

func main() {
	itemSize := pflag.IntP("item-size", "s", 0, "sample item size in bytes, for cross-checking against the matching data file's size (0 to skip)")
	help := pflag.Bool("help", false, "Display help text.")
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: hdrdump [options] file.hdr\n\n")
		pflag.PrintDefaults()
	}
	pflag.Parse()

	if *help || pflag.NArg() != 1 {
		pflag.Usage()
		if *help {
			os.Exit(0)
		}
		os.Exit(2)
	}

	path := pflag.Arg(0)
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hdrdump: %s\n", err)
		os.Exit(1)
	}

	pairs, err := header.ReadAll(path, data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hdrdump: %s\n", err)
		os.Exit(1)
	}

	for _, p := range pairs {
		fmt.Printf("%.1f\t%d\n", p.FrequencyHz, p.SampleCount)
	}

	total := header.SampleTotal(pairs)
	fmt.Fprintf(os.Stderr, "%d pairs, %d samples total\n", len(pairs), total)

	if *itemSize > 0 {
		if dataPath, ok := siblingDataFile(path); ok {
			info, err := os.Stat(dataPath)
			if err != nil {
				fmt.Fprintf(os.Stderr, "hdrdump: %s\n", err)
				os.Exit(1)
			}
			wantBytes := total * uint64(*itemSize)
			if uint64(info.Size()) != wantBytes {
				fmt.Fprintf(os.Stderr, "hdrdump: I2 violated: header covers %d bytes, %s is %d bytes\n",
					wantBytes, dataPath, info.Size())
				os.Exit(1)
			}
		} else {
			fmt.Fprintf(os.Stderr, "hdrdump: no sibling data file found next to %s\n", path)
		}
	}
}

// siblingDataFile finds the batch data file matching an .hdr path: same
// directory, same stem, any extension other than "hdr" (spec.md §3 "Batch
// file path" — data and header files share every component but ext).
func siblingDataFile(hdrPath string) (string, bool) {
	dir := filepath.Dir(hdrPath)
	stem := strings.TrimSuffix(filepath.Base(hdrPath), filepath.Ext(hdrPath))
	matches, err := filepath.Glob(filepath.Join(dir, stem+".*"))
	if err != nil {
		return "", false
	}
	for _, m := range matches {
		if filepath.Ext(m) != ".hdr" {
			return m, true
		}
	}
	return "", false
}
