package cohort

import (
	"fmt"
	"math"

	"github.com/carbocation/dnatraits/genome"
	"github.com/carbocation/dnatraits/odds"
	fet "github.com/glycerine/golang-fisher-exact"
)

// Association is an allelic case/control test at one RSID. The contingency
// table counts alleles, not people:
//
//	           allele  other
//	cases      [0][0]  [0][1]
//	controls   [1][0]  [1][1]
type Association struct {
	RSID      genome.RSID
	Allele    genome.Nucleotide
	Table     [2][2]int
	OddsRatio float64
	CI        odds.Interval
	P         float64 // two-sided Fisher exact
}

// AllelicAssociation compares how often allele (plus strand) is carried by
// cases and controls. The odds ratio gets a Haldane-Anscombe correction when
// any cell is empty; its confidence interval at level uses Woolf's method.
func AllelicAssociation(cases, controls []*genome.Genome, rsid genome.RSID, allele genome.Nucleotide, level float64) (Association, error) {
	out := Association{RSID: rsid, Allele: allele}
	out.Table[0][0], out.Table[0][1] = countAllele(cases, rsid, allele)
	out.Table[1][0], out.Table[1][1] = countAllele(controls, rsid, allele)

	a, b := out.Table[0][0], out.Table[0][1]
	c, d := out.Table[1][0], out.Table[1][1]
	if a+b == 0 || c+d == 0 {
		return out, fmt.Errorf("%s: %w in cases (%d) or controls (%d)", rsid, ErrNoData, a+b, c+d)
	}

	fa, fb, fc, fd := float64(a), float64(b), float64(c), float64(d)
	if a == 0 || b == 0 || c == 0 || d == 0 {
		fa, fb, fc, fd = fa+0.5, fb+0.5, fc+0.5, fd+0.5
	}
	out.OddsRatio = (fa * fd) / (fb * fc)

	z, err := odds.ZValue(1 - level)
	if err != nil {
		return out, fmt.Errorf("%s: confidence level %v: %w", rsid, level, err)
	}
	se := math.Sqrt(1/fa + 1/fb + 1/fc + 1/fd)
	beta := math.Log(out.OddsRatio)
	out.CI = odds.NewInterval(math.Exp(beta-z*se), math.Exp(beta+z*se))

	_, _, _, out.P = fet.FisherExactTest(a, b, c, d)

	return out, nil
}

// countAllele counts called plus-strand letters at rsid that do and do not
// equal allele.
func countAllele(genomes []*genome.Genome, rsid genome.RSID, allele genome.Nucleotide) (with, without int) {
	for _, g := range genomes {
		for _, n := range g.SNP(rsid).Positive().Genotype() {
			if !n.Called() {
				continue
			}
			if n == allele {
				with++
			} else {
				without++
			}
		}
	}
	return
}
