package cohort

import (
	"fmt"
	"sync"

	"github.com/carbocation/dnatraits/genome"
	"github.com/montanaflynn/stats"
)

// Summary describes a per-genome rate across a cohort.
type Summary struct {
	N      int
	Mean   float64
	Median float64
	StdDev float64
	Min    float64
	Max    float64
}

// HeterozygosityRate is the share of diploid autosomal calls that are
// heterozygous. It is 0 for genomes without such calls.
func HeterozygosityRate(g *genome.Genome) float64 {
	var het, total int

	it := g.Iter()
	for it.Next() {
		snp := it.SNP()
		if snp.Haploid() || !diploid(snp) {
			continue
		}

		total++
		if snp.Heterozygous() {
			het++
		}
	}

	if total == 0 {
		return 0
	}
	return float64(het) / float64(total)
}

// Heterozygosity summarizes HeterozygosityRate over genomes, one goroutine per
// genome.
func Heterozygosity(genomes []*genome.Genome) (Summary, error) {
	if len(genomes) == 0 {
		return Summary{}, ErrNoData
	}

	rates := make([]float64, len(genomes))

	var wg sync.WaitGroup
	for i, g := range genomes {
		wg.Add(1)
		go func(i int, g *genome.Genome) {
			defer wg.Done()
			rates[i] = HeterozygosityRate(g)
		}(i, g)
	}
	wg.Wait()

	return summarize(rates)
}

func summarize(data []float64) (Summary, error) {
	out := Summary{N: len(data)}

	var err error
	if out.Mean, err = stats.Mean(data); err != nil {
		return out, fmt.Errorf("mean: %w", err)
	}
	if out.Median, err = stats.Median(data); err != nil {
		return out, fmt.Errorf("median: %w", err)
	}
	if out.StdDev, err = stats.StandardDeviation(data); err != nil {
		return out, fmt.Errorf("standard deviation: %w", err)
	}
	if out.Min, err = stats.Min(data); err != nil {
		return out, fmt.Errorf("min: %w", err)
	}
	if out.Max, err = stats.Max(data); err != nil {
		return out, fmt.Errorf("max: %w", err)
	}

	return out, nil
}
