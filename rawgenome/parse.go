package rawgenome

import (
	"context"
	"io"
	"log"
	"strings"

	"github.com/carbocation/dnatraits/genome"
)

// Parse reads a whole decompressed export into a table. When an RSID appears
// twice the first row is kept, unless it was a no-call and the later one is
// not.
func Parse(rd io.Reader, opts Options) (genome.Table, error) {
	r, err := NewReader(rd, opts)
	if err != nil {
		return nil, err
	}

	return collect(r, opts)
}

// ParseFile is Parse over a local or gs:// path.
func ParseFile(ctx context.Context, path string, opts Options) (genome.Table, error) {
	r, err := Open(ctx, path, opts)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	return collect(r, opts)
}

// Load parses path and builds an immutable genome from it.
func Load(ctx context.Context, path string, opts Options, config genome.Config) (*genome.Genome, error) {
	table, err := ParseFile(ctx, path, opts)
	if err != nil {
		return nil, err
	}

	return genome.New(table, config)
}

func collect(r *Reader, opts Options) (genome.Table, error) {
	table := make(genome.Table)

	for row := r.Read(); row != nil; row = r.Read() {
		if prev, exists := table[row.RSID]; exists {
			if called(prev.Genotype) || !called(row.Genotype) {
				if opts.Verbose {
					log.Printf("Keeping %s=%q over duplicate %q\n", row.RSID, prev.Genotype, row.Genotype)
				}
				continue
			}
		}

		table[row.RSID] = row.Record()
	}

	if err := r.Err(); err != nil {
		return nil, err
	}

	if opts.Verbose && r.Skipped() > 0 {
		log.Printf("Skipped %d malformed rows\n", r.Skipped())
	}

	return table, nil
}

func called(genotype string) bool {
	return strings.ContainsAny(genotype, "ACGTDI")
}
