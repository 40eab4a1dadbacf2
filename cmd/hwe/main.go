// hwe computes allele frequencies and Hardy-Weinberg equilibrium P-values
// across a cohort of raw genome exports.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/carbocation/dnatraits"
	"github.com/carbocation/dnatraits/cohort"
	_ "github.com/carbocation/dnatraits/compileinfoprint"
	"github.com/carbocation/dnatraits/genome"
	"github.com/carbocation/dnatraits/rawgenome"
	"github.com/carbocation/pfx"
)

var (
	BufferSize = 4096
	STDOUT     = bufio.NewWriterSize(os.Stdout, BufferSize)
)

func main() {
	defer STDOUT.Flush()

	var (
		listPath string
		snpPath  string
		cutoff   float64
	)
	flag.StringVar(&listPath, "genomes", "", "File with one raw genome path (local or gs://) per line")
	flag.StringVar(&snpPath, "snps", "", "Optional: file with one RSID per line, or a PLINK .bim file. If blank, every RSID shared by all genomes is tested.")
	flag.Float64Var(&cutoff, "exact-below", 0.05, "The exact test replaces the chi-square approximation whenever the approximate P-value is below this cutoff. Set to 1 to always use the exact test.")
	flag.Parse()

	if listPath == "" {
		flag.PrintDefaults()
		log.Fatalln("Please provide --genomes")
	}

	paths, err := readLines(listPath)
	if err != nil {
		log.Fatalln(err)
	}

	ctx := context.Background()
	genomes := make([]*genome.Genome, 0, len(paths))
	for _, path := range paths {
		g, err := rawgenome.Load(ctx, path, rawgenome.Options{}, genome.DefaultConfig())
		if err != nil {
			log.Fatalln(err)
		}
		genomes = append(genomes, g)
	}
	log.Println("Loaded", len(genomes), "genomes")

	if len(genomes) == 0 {
		log.Fatalln("No genomes were listed in", listPath)
	}

	var rsids []genome.RSID
	if isBIM(snpPath) {
		rsids, err = dnatraits.ReadBIMRSIDs(ctx, snpPath, nil)
		if err != nil {
			log.Fatalln(err)
		}
	} else if snpPath != "" {
		keys, err := readLines(snpPath)
		if err != nil {
			log.Fatalln(err)
		}
		for _, key := range keys {
			rsid, err := genome.ParseRSID(key)
			if err != nil {
				log.Fatalln(err)
			}
			rsids = append(rsids, rsid)
		}
	} else {
		rsids = genomes[0].RSIDs()
		for _, g := range genomes[1:] {
			rsids = intersect(rsids, g)
		}
	}

	fmt.Fprintf(STDOUT, "SNP\tCHR\tBP\tA1\tA2\tMAF\tAA\tAa\taa\tMISSING\tHWE_P\n")

	for _, rsid := range rsids {
		counts, err := cohort.Count(genomes, rsid)
		if err != nil {
			log.Println(err)
			continue
		}

		minor := "."
		if counts.Minor != 0 {
			minor = counts.Minor.String()
		}

		var chrom string
		var pos uint32
		for _, g := range genomes {
			if rec, ok := g.Record(rsid); ok {
				chrom, pos = rec.Chromosome, rec.Position
				break
			}
		}

		fmt.Fprintf(STDOUT, "%s\t%s\t%d\t%s\t%s\t%.6f\t%d\t%d\t%d\t%d\t%.6g\n",
			rsid, chrom, pos,
			counts.Major, minor,
			counts.MinorAlleleFrequency(),
			counts.HomMajor, counts.Het, counts.HomMinor, counts.Missing,
			counts.HWE(cutoff),
		)
	}
}

func isBIM(path string) bool {
	path = strings.TrimSuffix(strings.TrimSuffix(path, ".gz"), ".xz")
	return strings.HasSuffix(path, ".bim")
}

// intersect keeps the rsids that g also carries.
func intersect(rsids []genome.RSID, g *genome.Genome) []genome.RSID {
	out := rsids[:0]
	for _, rsid := range rsids {
		if g.Has(rsid) {
			out = append(out, rsid)
		}
	}
	return out
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, pfx.Err(err)
	}
	defer f.Close()

	var out []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" && !strings.HasPrefix(line, "#") {
			out = append(out, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, pfx.Err(err)
	}

	return out, nil
}
