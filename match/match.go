// Package match maps genotypes onto phenotype descriptions without regard to
// allele order.
package match

import (
	"errors"
	"fmt"

	"github.com/carbocation/dnatraits/genome"
)

// ErrNoPhenotype is returned when a genotype has no entry in a table that has
// no default.
var ErrNoPhenotype = errors.New("no phenotype for genotype")

// PhenotypeTable maps genotype strings ("AG") to descriptions. A table may
// carry a default description used when nothing else matches.
type PhenotypeTable struct {
	entries    map[string]string
	def        string
	hasDefault bool
}

// NewPhenotypeTable copies entries.
func NewPhenotypeTable(entries map[string]string) PhenotypeTable {
	t := PhenotypeTable{entries: make(map[string]string, len(entries))}
	for k, v := range entries {
		t.entries[k] = v
	}
	return t
}

// WithDefault returns a copy of t that answers description for unmatched
// genotypes.
func (t PhenotypeTable) WithDefault(description string) PhenotypeTable {
	out := NewPhenotypeTable(t.entries)
	out.def = description
	out.hasDefault = true
	return out
}

func (t PhenotypeTable) Default() (string, bool) {
	return t.def, t.hasDefault
}

func (t PhenotypeTable) Len() int {
	return len(t.entries)
}

// Unphased looks genotype up as written, then reversed, then falls back to the
// table's default.
func Unphased(genotype string, table PhenotypeTable) (string, error) {
	if desc, ok := table.entries[genotype]; ok {
		return desc, nil
	}

	if desc, ok := table.entries[reverse(genotype)]; ok {
		return desc, nil
	}

	if table.hasDefault {
		return table.def, nil
	}

	return "", fmt.Errorf("%w: %q", ErrNoPhenotype, genotype)
}

// UnphasedSNP matches the plus-strand genotype of snp.
func UnphasedSNP(snp genome.SNP, table PhenotypeTable) (string, error) {
	desc, err := Unphased(snp.Positive().String(), table)
	if err != nil {
		return "", fmt.Errorf("%s: %w", snp.RSID(), err)
	}
	return desc, nil
}

func reverse(s string) string {
	b := []byte(s)
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return string(b)
}
