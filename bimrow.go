package dnatraits

import "github.com/carbocation/dnatraits/genome"

// Columns of a .bim file
const (
	bimChromosome int = iota
	bimVariantID
	bimMorgans
	bimCoordinate
	bimAllele1
	bimAllele2
)

type BIMRow struct {
	RSID       genome.RSID
	Chromosome string
	Coordinate uint32 // Labeled "position" by most applications
	Allele1    string // Can contain > 1 character
	Allele2    string // Can contain > 1 character
}
