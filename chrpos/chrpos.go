// Package chrpos knows the chromosome vocabulary used by consumer genome
// exports and the chromosome lengths of the GRCh37 and GRCh38 assemblies.
package chrpos

import (
	"bytes"
	"embed"
	"encoding/csv"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/carbocation/pfx"
)

//go:embed lookups/*
var embeddedLookups embed.FS

const (
	GRCh37 = "grch37"
	GRCh38 = "grch38"
)

var (
	ErrUnknownAssembly   = errors.New("unknown assembly")
	ErrUnknownChromosome = errors.New("unknown chromosome")
	ErrOutOfRange        = errors.New("position outside chromosome")
)

var (
	lengthsMu sync.Mutex
	lengths   = make(map[string]map[string]uint32)
)

// Normalize maps a chromosome label onto 1-22, X, Y or MT. It accepts a
// "chr" prefix, leading zeros, and the numeric codes used by genotyping
// arrays: 23 (X), 24 (Y), 25 (pseudo-autosomal XY, reported as X) and 26
// (MT).
func Normalize(label string) (string, error) {
	chrom := strings.ToUpper(strings.TrimSpace(label))
	chrom = strings.TrimPrefix(chrom, "CHR")

	switch chrom {
	case "X", "Y", "MT":
		return chrom, nil
	case "XY":
		return "X", nil
	case "M":
		return "MT", nil
	}

	n, err := strconv.Atoi(chrom)
	if err != nil {
		return "", fmt.Errorf("%q: %w", label, ErrUnknownChromosome)
	}

	switch {
	case n >= 1 && n <= 22:
		return strconv.Itoa(n), nil
	case n == 23, n == 25:
		return "X", nil
	case n == 24:
		return "Y", nil
	case n == 26:
		return "MT", nil
	}

	return "", fmt.Errorf("%q: %w", label, ErrUnknownChromosome)
}

// Length is the length in bases of a canonical chromosome label.
func Length(assembly, chromosome string) (uint32, error) {
	table, err := chromosomeLengths(assembly)
	if err != nil {
		return 0, err
	}

	n, exists := table[chromosome]
	if !exists {
		return 0, fmt.Errorf("%s %q: %w", assembly, chromosome, ErrUnknownChromosome)
	}

	return n, nil
}

// Validate checks that the 1-based position lies on the chromosome.
func Validate(assembly, chromosome string, position uint32) error {
	n, err := Length(assembly, chromosome)
	if err != nil {
		return err
	}

	if position == 0 || position > n {
		return fmt.Errorf("%s chr%s:%d (length %d): %w", assembly, chromosome, position, n, ErrOutOfRange)
	}

	return nil
}

// Chromosomes lists the canonical labels of an assembly in file order.
func Chromosomes(assembly string) ([]string, error) {
	entries, err := readLookup(assembly)
	if err != nil {
		return nil, err
	}

	out := make([]string, 0, len(entries))
	for _, v := range entries {
		out = append(out, v.name)
	}

	return out, nil
}

func chromosomeLengths(assembly string) (map[string]uint32, error) {
	lengthsMu.Lock()
	defer lengthsMu.Unlock()

	if table, exists := lengths[assembly]; exists {
		return table, nil
	}

	entries, err := readLookup(assembly)
	if err != nil {
		return nil, err
	}

	table := make(map[string]uint32, len(entries))
	for _, v := range entries {
		table[v.name] = v.end
	}
	lengths[assembly] = table

	return table, nil
}

type lookupEntry struct {
	name string
	end  uint32
}

func readLookup(assembly string) ([]lookupEntry, error) {
	fileBytes, err := embeddedLookups.ReadFile("lookups/" + strings.ToLower(assembly))
	if err != nil {
		return nil, fmt.Errorf("%q: %w", assembly, ErrUnknownAssembly)
	}

	cr := csv.NewReader(bytes.NewReader(fileBytes))
	cr.Comma = '\t'
	entries, err := cr.ReadAll()
	if err != nil {
		return nil, pfx.Err(err)
	}

	out := make([]lookupEntry, 0, len(entries))
	header := make(map[string]int)

	for i, v := range entries {
		if i == 0 {
			for key, name := range v {
				header[name] = key
			}
			continue
		}

		end, err := strconv.ParseUint(v[header["chromEnd"]], 10, 32)
		if err != nil {
			return nil, pfx.Err(err)
		}
		out = append(out, lookupEntry{name: v[header["name"]], end: uint32(end)})
	}

	return out, nil
}
