package dnatraits

import (
	"bufio"
	"context"
	"fmt"
	"strconv"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/dnatraits/genome"
	"github.com/carbocation/pfx"
)

// BIM reads a PLINK .bim variant list. The file may be compressed or live in
// a bucket; see Open.
type BIM struct {
	export  *Export
	scanner *bufio.Scanner
	line    int
	skipped int
	err     error
}

func OpenBIM(ctx context.Context, path string, client *storage.Client) (*BIM, error) {
	export, err := Open(ctx, path, client)
	if err != nil {
		return nil, err
	}

	return &BIM{
		export:  export,
		scanner: bufio.NewScanner(export),
	}, nil
}

func (b *BIM) Close() error {
	return b.export.Close()
}

func (b *BIM) Err() error {
	if b.err != nil {
		return b.err
	}

	return b.scanner.Err()
}

// Skipped counts variants whose ID is not an RSID (e.g. "1:12345:A:G").
func (b *BIM) Skipped() int { return b.skipped }

// Read returns the next variant keyed by RSID, or nil at the end of the file
// or on error.
func (b *BIM) Read() *BIMRow {
	for b.scanner.Scan() {
		b.line++

		cols := strings.Fields(b.scanner.Text())
		if len(cols) == 0 {
			continue
		}
		if len(cols) < bimAllele2+1 {
			b.err = pfx.Err(fmt.Errorf("%s:%d: expected %d columns, found %d", b.export.Path, b.line, bimAllele2+1, len(cols)))
			return nil
		}

		rsid, err := genome.ParseRSID(cols[bimVariantID])
		if err != nil {
			b.skipped++
			continue
		}

		coord64, err := strconv.ParseUint(cols[bimCoordinate], 10, 32)
		if err != nil {
			b.err = pfx.Err(fmt.Errorf("%s:%d: %w", b.export.Path, b.line, err))
			return nil
		}

		return &BIMRow{
			RSID:       rsid,
			Chromosome: cols[bimChromosome],
			Coordinate: uint32(coord64),
			Allele1:    cols[bimAllele1],
			Allele2:    cols[bimAllele2],
		}
	}

	return nil
}

// ReadBIMRSIDs returns every RSID listed in the .bim file at path, in file
// order.
func ReadBIMRSIDs(ctx context.Context, path string, client *storage.Client) ([]genome.RSID, error) {
	b, err := OpenBIM(ctx, path, client)
	if err != nil {
		return nil, err
	}
	defer b.Close()

	var out []genome.RSID
	for row := b.Read(); row != nil; row = b.Read() {
		out = append(out, row.RSID)
	}

	if err := b.Err(); err != nil {
		return nil, err
	}

	return out, nil
}
