// Package cohort computes statistics across many genomes: genotype counts,
// Hardy-Weinberg equilibrium, allelic case/control association and
// heterozygosity. Genomes are only read, so one loaded genome can take part in
// any number of concurrent analyses.
package cohort

import (
	"errors"
	"fmt"
	"sort"

	"github.com/carbocation/dnatraits/genome"
)

var (
	// ErrNotBiallelic is returned when more than two alleles are seen at a site.
	ErrNotBiallelic = errors.New("site is not biallelic")

	// ErrNoData is returned when no genome has a usable call at a site.
	ErrNoData = errors.New("no usable genotype calls")
)

// GenotypeCounts tallies diploid plus-strand calls at one RSID. Major is the
// more frequent allele; Minor is zero for monomorphic sites.
type GenotypeCounts struct {
	RSID     genome.RSID
	Major    genome.Nucleotide
	Minor    genome.Nucleotide
	HomMajor int64
	Het      int64
	HomMinor int64

	// Missing counts genomes without a two-letter call: absent, no-call,
	// haploid or indel markers.
	Missing int64
}

func (c GenotypeCounts) N() int64 {
	return c.HomMajor + c.Het + c.HomMinor
}

// MinorAlleleFrequency is 0 when there are no calls.
func (c GenotypeCounts) MinorAlleleFrequency() float64 {
	n := c.N()
	if n == 0 {
		return 0
	}
	return float64(2*c.HomMinor+c.Het) / float64(2*n)
}

// Count tallies genotypes at rsid across genomes, after normalizing each to
// the plus strand.
func Count(genomes []*genome.Genome, rsid genome.RSID) (GenotypeCounts, error) {
	out := GenotypeCounts{RSID: rsid}

	calls := make([]genome.SNP, 0, len(genomes))
	alleles := make(map[genome.Nucleotide]int64)

	for _, g := range genomes {
		snp := g.SNP(rsid).Positive()
		if !diploid(snp) {
			out.Missing++
			continue
		}

		calls = append(calls, snp)
		alleles[snp.At(0)]++
		alleles[snp.At(1)]++
	}

	if len(alleles) > 2 {
		return out, fmt.Errorf("%s: %w: %d alleles", rsid, ErrNotBiallelic, len(alleles))
	}

	ranked := make([]genome.Nucleotide, 0, len(alleles))
	for n := range alleles {
		ranked = append(ranked, n)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if alleles[ranked[i]] != alleles[ranked[j]] {
			return alleles[ranked[i]] > alleles[ranked[j]]
		}
		return ranked[i] < ranked[j]
	})
	if len(ranked) > 0 {
		out.Major = ranked[0]
	}
	if len(ranked) > 1 {
		out.Minor = ranked[1]
	}

	for _, snp := range calls {
		switch snp.Count(rune(out.Major)) {
		case 2:
			out.HomMajor++
		case 1:
			out.Het++
		default:
			out.HomMinor++
		}
	}

	return out, nil
}

// diploid is true for two called bases from A, C, G or T.
func diploid(s genome.SNP) bool {
	if s.Len() != 2 {
		return false
	}
	for _, n := range s.Genotype() {
		switch n {
		case genome.A, genome.C, genome.G, genome.T:
		default:
			return false
		}
	}
	return true
}
