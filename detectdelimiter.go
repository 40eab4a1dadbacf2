package dnatraits

import (
	"bufio"
	"bytes"
	"io"

	"github.com/csimplestring/go-csv/detector"
)

// SampleSize is how much of a decompressed export is inspected to guess its
// delimiter.
const SampleSize = 64 * 1024

// DetermineDelimiter returns the single most likely rune that would delimit the
// values in the reader, assuming a CSV-like file. Lines starting with '#' are
// ignored, since genome exports open with free-text comments.
func DetermineDelimiter(r io.Reader) rune {
	var sample bytes.Buffer

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 || line[0] == '#' {
			continue
		}
		sample.Write(line)
		sample.WriteByte('\n')
	}

	// Tab-delimited exports are the common case
	if bytes.Count(sample.Bytes(), []byte{'\t'}) > 0 {
		return '\t'
	}

	d := detector.New()
	delimiters := d.DetectDelimiter(&sample, '"')

	if len(delimiters) > 0 {
		return rune(delimiters[0][0])
	}

	return ','
}
