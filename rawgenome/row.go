// Package rawgenome reads the genotype exports produced by consumer genomics
// services (23andMe, AncestryDNA, FamilyTreeDNA) and single-sample VCFs into
// genome tables.
package rawgenome

import (
	"errors"

	"cloud.google.com/go/storage"
	"github.com/carbocation/dnatraits/genome"
)

var (
	ErrMalformedRow = errors.New("malformed row")
	ErrNoSample     = errors.New("sample not found in VCF")
)

// Format is the export layout, detected from the data. 23andMe exports have
// rsid, chromosome, position and genotype columns. AncestryDNA splits the
// genotype into allele1 and allele2. FTDNA exports are quoted CSV with the
// 23andMe columns.
type Format int

const (
	FormatUnknown Format = iota
	Format23andMe
	FormatAncestry
	FormatFTDNA
	FormatVCF
)

func (f Format) String() string {
	switch f {
	case Format23andMe:
		return "23andMe"
	case FormatAncestry:
		return "AncestryDNA"
	case FormatFTDNA:
		return "FTDNA"
	case FormatVCF:
		return "VCF"
	}
	return "unknown"
}

// Map columns in a delimited export to their positions
const (
	RSIDColumn int = iota
	ChromosomeColumn
	PositionColumn
	GenotypeColumn
	Allele2Column // AncestryDNA splits the genotype in two
)

// Row is one usable line of an export. Chromosome is canonical (see
// chrpos.Normalize) and Genotype only holds letters genome.ParseGenotype
// accepts.
type Row struct {
	RSID       genome.RSID
	Chromosome string
	Position   uint32
	Genotype   string
	Phased     bool
}

func (r Row) Record() genome.Record {
	return genome.Record{
		Chromosome: r.Chromosome,
		Position:   r.Position,
		Genotype:   r.Genotype,
		Phased:     r.Phased,
	}
}

type Options struct {
	// Assembly is chrpos.GRCh37 or chrpos.GRCh38. When set, rows whose
	// position falls outside their chromosome are rejected.
	Assembly string

	// Delimiter overrides per-line delimiter detection.
	Delimiter rune

	// Sample picks a VCF sample by name. It may be empty for single-sample
	// VCFs.
	Sample string

	// Strict makes malformed rows an error. Otherwise they are skipped and,
	// if Verbose, logged.
	Strict  bool
	Verbose bool

	// Client is used for gs:// paths. One is created if nil.
	Client *storage.Client
}
