package genome

import (
	"fmt"
	"strings"
	"unicode"
)

// NegationMarker prefixes a genotype string that is written on the minus
// strand, e.g. "~AG". SNP.Matches compares such strings against the
// negative-orientation genotype.
const NegationMarker = "~"

// SNP is the genotype observed at one RSID. SNPs are values: Complement,
// Positive and Negative return new SNPs and never alias the receiver.
type SNP struct {
	rsid        RSID
	genotype    string // validated letters, never more than two
	orientation Orientation
	chromosome  string
	position    uint32
	phased      bool
}

// NewSNP builds an unphased SNP. Genotypes longer than two letters are
// truncated to their first two.
func NewSNP(rsid RSID, genotype []Nucleotide, orientation Orientation, chromosome string, position uint32) SNP {
	if len(genotype) > 2 {
		genotype = genotype[:2]
	}

	b := make([]byte, len(genotype))
	for i, n := range genotype {
		b[i] = byte(n)
	}

	return SNP{
		rsid:        rsid,
		genotype:    string(b),
		orientation: orientation,
		chromosome:  chromosome,
		position:    position,
	}
}

// ParseGenotype validates a raw genotype string such as "AG", "--" or "D".
func ParseGenotype(raw string) ([]Nucleotide, error) {
	if len(raw) > 2 {
		return nil, fmt.Errorf("%w: %q has more than two letters", ErrInvalidGenotype, raw)
	}

	out := make([]Nucleotide, 0, len(raw))
	for i := 0; i < len(raw); i++ {
		n, err := ParseNucleotide(raw[i])
		if err != nil {
			return nil, fmt.Errorf("%q: %w", raw, err)
		}
		out = append(out, n)
	}

	return out, nil
}

// Missing is the sentinel returned for RSIDs absent from a genome: empty
// genotype, chromosome "" and position 0. It compares and counts like any
// other SNP, so callers need no special casing.
func Missing(rsid RSID, orientation Orientation) SNP {
	return SNP{rsid: rsid, orientation: orientation}
}

// WithPhased returns a copy of s with the phased flag set.
func (s SNP) WithPhased(phased bool) SNP {
	s.phased = phased
	return s
}

func (s SNP) RSID() RSID                { return s.rsid }
func (s SNP) Orientation() Orientation  { return s.orientation }
func (s SNP) Chromosome() string        { return s.chromosome }
func (s SNP) Position() uint32          { return s.position }
func (s SNP) Phased() bool              { return s.phased }
func (s SNP) String() string            { return s.genotype }
func (s SNP) HasData() bool             { return len(s.genotype) > 0 }
func (s SNP) At(i int) Nucleotide       { return Nucleotide(s.genotype[i]) }
func (s SNP) SexChromosome() bool       { return s.chromosome == "X" || s.chromosome == "Y" }
func (s SNP) Mitochondrial() bool       { return s.chromosome == "MT" }
func (s SNP) withGenotype(g string) SNP { s.genotype = g; return s }

// Genotype returns a fresh slice of zero, one or two nucleotides.
func (s SNP) Genotype() []Nucleotide {
	out := make([]Nucleotide, len(s.genotype))
	for i := 0; i < len(s.genotype); i++ {
		out[i] = Nucleotide(s.genotype[i])
	}
	return out
}

// Len is the number of called letters; no-calls do not count.
func (s SNP) Len() int {
	return len(s.genotype) - strings.Count(s.genotype, string(NoCall))
}

func (s SNP) Homozygous() bool {
	return len(s.genotype) == 2 && s.genotype[0] == s.genotype[1]
}

func (s SNP) Heterozygous() bool {
	return len(s.genotype) == 2 && s.genotype[0] != s.genotype[1]
}

// Haploid is true on X, Y and MT, or when only one letter was called.
func (s SNP) Haploid() bool {
	switch s.chromosome {
	case "X", "Y", "MT":
		return true
	}

	return s.Len() == 1
}

// Count returns the occurrences of letter (case-insensitive) in the genotype.
func (s SNP) Count(letter rune) int {
	return strings.Count(s.genotype, string(unicode.ToUpper(letter)))
}

// Complement returns the strand complement: every letter complemented and the
// orientation flipped.
func (s SNP) Complement() SNP {
	b := make([]byte, len(s.genotype))
	for i := 0; i < len(s.genotype); i++ {
		b[i] = byte(Nucleotide(s.genotype[i]).Complement())
	}

	out := s.withGenotype(string(b))
	out.orientation = s.orientation.Flip()
	return out
}

// Positive returns s expressed on the plus strand.
func (s SNP) Positive() SNP {
	if s.orientation < 0 {
		return s.Complement()
	}
	return s
}

// Negative returns s expressed on the minus strand.
func (s SNP) Negative() SNP {
	if s.orientation > 0 {
		return s.Complement()
	}
	return s
}

// Equal compares the plus-strand genotypes. When neither SNP is phased the
// allele order is undefined, so "AG" equals "GA".
func (s SNP) Equal(o SNP) bool {
	a, b := s.Positive().genotype, o.Positive().genotype
	if a == b {
		return true
	}

	return !s.phased && !o.phased && reverse(a) == b
}

// Matches compares s against a published genotype string. Strings carrying
// NegationMarker are compared against the minus strand, all others against
// the plus strand. Unphased SNPs also match the reversed string.
func (s SNP) Matches(genotype string) bool {
	var own string
	if strings.HasPrefix(genotype, NegationMarker) {
		own = s.Negative().genotype
		genotype = genotype[len(NegationMarker):]
	} else {
		own = s.Positive().genotype
	}
	genotype = strings.ToUpper(genotype)

	if own == genotype {
		return true
	}

	return !s.phased && reverse(genotype) == own
}

// Compare dispatches on the type of v: SNP, *SNP, string, Nucleotide or
// []Nucleotide. Anything else yields ErrUnsupportedComparison.
func (s SNP) Compare(v interface{}) (bool, error) {
	switch o := v.(type) {
	case SNP:
		return s.Equal(o), nil
	case *SNP:
		if o == nil {
			return false, fmt.Errorf("%w: nil *SNP", ErrUnsupportedComparison)
		}
		return s.Equal(*o), nil
	case string:
		return s.Matches(o), nil
	case Nucleotide:
		return s.Matches(o.String()), nil
	case []Nucleotide:
		b := make([]byte, len(o))
		for i, n := range o {
			b[i] = byte(n)
		}
		return s.Matches(string(b)), nil
	}

	return false, fmt.Errorf("%w: %T", ErrUnsupportedComparison, v)
}

func (s SNP) GoString() string {
	return fmt.Sprintf("SNP(genotype=%q, rsid=%s, orientation=%s, chromosome=%q, position=%d, phased=%t)",
		s.genotype, s.rsid, s.orientation, s.chromosome, s.position, s.phased)
}

func reverse(g string) string {
	if len(g) < 2 {
		return g
	}

	b := []byte(g)
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return string(b)
}
