package cohort

import (
	"math"

	"github.com/BenLubar/memoize"
	"github.com/tokenme/probab/dst"
)

var memoizedExactHWE = memoize.Memoize(exactHWE).(func(int64, int64, int64) float64)
var memoizedApproxHWE = memoize.Memoize(approxHWE).(func(int64, int64, int64) float64)

// HWEExact is the exact Hardy-Weinberg equilibrium P-value (Wigginton,
// Cutler & Abecasis 2005): the summed probability of every heterozygote count
// at least as unlikely as the observed one, given the allele counts. Results
// are memoized and safe to request from concurrent goroutines. Truth values
// checked against https://www.cog-genomics.org/software/stats
func (c GenotypeCounts) HWEExact() float64 {
	return memoizedExactHWE(c.HomMajor, c.Het, c.HomMinor)
}

// HWEApprox is the 1 degree of freedom χ² approximation. It is cheap but
// unreliable for rare alleles.
func (c GenotypeCounts) HWEApprox() float64 {
	return memoizedApproxHWE(c.HomMajor, c.Het, c.HomMinor)
}

// HWE returns the approximate P-value unless it falls below cutoff, in which
// case the exact P-value is computed instead.
func (c GenotypeCounts) HWE(cutoff float64) float64 {
	if p := c.HWEApprox(); p >= cutoff {
		return p
	}
	return c.HWEExact()
}

func exactHWE(AA, Aa, aa int64) float64 {
	if aa > AA {
		AA, aa = aa, AA
	}

	N := AA + Aa + aa
	rare := 2*aa + Aa
	if N == 0 || rare == 0 {
		return 1
	}

	observed := lnHetProbability(N, rare, Aa)

	var p float64
	for het := rare % 2; het <= rare; het += 2 {
		if N-het-(rare-het)/2 < 0 {
			continue
		}

		// The slack absorbs rounding so that ties with the observed
		// configuration are counted as "at least as extreme"
		if lnp := lnHetProbability(N, rare, het); lnp <= observed+1e-7 {
			p += math.Exp(lnp)
		}
	}

	return math.Min(p, 1)
}

// lnHetProbability is the log probability of het heterozygotes among N
// samples carrying rare copies of the rarer allele.
func lnHetProbability(N, rare, het int64) float64 {
	homRare := (rare - het) / 2
	homCommon := N - het - homRare
	common := 2*N - rare

	return float64(het)*math.Ln2 +
		lnFactorial(N) - lnFactorial(homCommon) - lnFactorial(het) - lnFactorial(homRare) +
		lnFactorial(common) + lnFactorial(rare) - lnFactorial(2*N)
}

func lnFactorial(n int64) float64 {
	v, _ := math.Lgamma(float64(n + 1))
	return v
}

func approxHWE(AA, Aa, aa int64) (p float64) {
	// dst panics on degenerate input; a recovered panic reports P=0
	defer func() { recover() }()

	p = 1.0 - dst.ChiSquareCDF(1)(chiSquareHWE(float64(AA), float64(Aa), float64(aa)))

	return
}

// chiSquareHWE compares observed genotype counts with those expected from the
// observed allele frequencies.
func chiSquareHWE(AA, Aa, aa float64) float64 {
	common := 2*AA + Aa
	rare := 2*aa + Aa

	// Monomorphic sites are trivially in equilibrium
	if common == 0 || rare == 0 {
		return 0
	}

	N := AA + Aa + aa
	pFreq := common / (common + rare)
	qFreq := rare / (common + rare)

	eAA := pFreq * pFreq * N
	eAa := 2 * pFreq * qFreq * N
	eaa := qFreq * qFreq * N

	return math.Pow(AA-eAA, 2)/eAA +
		math.Pow(Aa-eAa, 2)/eAa +
		math.Pow(aa-eaa, 2)/eaa
}
