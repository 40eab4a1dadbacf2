package match

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/carbocation/pfx"
	"github.com/gocarina/gocsv"
)

// DefaultKey marks the default row of a phenotype file.
const DefaultKey = "*"

type phenotypeRow struct {
	Genotype    string `csv:"genotype"`
	Description string `csv:"description"`
}

// ReadPhenotypeTable reads a tab-delimited file with a "genotype" and a
// "description" column. A genotype of "*" sets the table default. Lines
// starting with '#' are ignored.
func ReadPhenotypeTable(r io.Reader) (PhenotypeTable, error) {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.Comment = '#'
	cr.LazyQuotes = true

	rows := []*phenotypeRow{}
	if err := gocsv.UnmarshalCSV(cr, &rows); err != nil {
		return PhenotypeTable{}, pfx.Err(err)
	}

	entries := make(map[string]string, len(rows))
	var (
		def        string
		hasDefault bool
	)
	for i, row := range rows {
		genotype := strings.ToUpper(strings.TrimSpace(row.Genotype))
		switch {
		case genotype == DefaultKey:
			def, hasDefault = row.Description, true
		case genotype == "":
			return PhenotypeTable{}, fmt.Errorf("row %d: empty genotype", i+1)
		default:
			if _, exists := entries[genotype]; exists {
				return PhenotypeTable{}, fmt.Errorf("row %d: duplicate genotype %q", i+1, genotype)
			}
			entries[genotype] = row.Description
		}
	}

	t := NewPhenotypeTable(entries)
	if hasDefault {
		t = t.WithDefault(def)
	}
	return t, nil
}

// LoadPhenotypeTable reads a phenotype file from disk.
func LoadPhenotypeTable(path string) (PhenotypeTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return PhenotypeTable{}, pfx.Err(err)
	}
	defer f.Close()

	t, err := ReadPhenotypeTable(f)
	if err != nil {
		return PhenotypeTable{}, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}
