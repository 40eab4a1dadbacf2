// heterozygosity reports the autosomal heterozygosity rate of many raw genome
// exports. Genomes are loaded one at a time, so the cohort never needs to fit
// in memory.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/carbocation/dnatraits/cohort"
	_ "github.com/carbocation/dnatraits/compileinfoprint"
	"github.com/carbocation/dnatraits/genome"
	"github.com/carbocation/dnatraits/rawgenome"
	"github.com/carbocation/pfx"
	"github.com/carbocation/runningvariance"
)

var (
	BufferSize = 4096
	STDOUT     = bufio.NewWriterSize(os.Stdout, BufferSize)
)

func main() {
	defer STDOUT.Flush()

	var (
		listPath string
		assembly string
		bins     int
	)
	flag.StringVar(&listPath, "genomes", "", "File with one raw genome path (local or gs://) per line. Paths may also be passed as arguments.")
	flag.StringVar(&assembly, "assembly", "", "Optional: grch37 or grch38, to reject rows with impossible positions")
	flag.IntVar(&bins, "bins", 20, "Number of histogram bins printed to STDERR")
	flag.Parse()

	paths := flag.Args()
	if listPath != "" {
		listed, err := readLines(listPath)
		if err != nil {
			log.Fatalln(err)
		}
		paths = append(paths, listed...)
	}

	if len(paths) == 0 {
		flag.PrintDefaults()
		log.Fatalln("Please provide --genomes or genome paths as arguments")
	}

	ctx := context.Background()
	stat := runningvariance.NewRunningStat()
	rates := make([]float64, 0, len(paths))

	fmt.Fprintf(STDOUT, "path\tsnps\tsex\theterozygosity\n")

	for _, path := range paths {
		g, err := rawgenome.Load(ctx, path, rawgenome.Options{Assembly: assembly}, genome.DefaultConfig())
		if err != nil {
			log.Fatalln(err)
		}

		rate := cohort.HeterozygosityRate(g)
		stat.Push(rate)
		rates = append(rates, rate)

		sex := "F"
		if g.Male() {
			sex = "M"
		}
		fmt.Fprintf(STDOUT, "%s\t%d\t%s\t%.6f\n", path, g.Len(), sex, rate)

		if stat.N%100 == 0 {
			log.Println("Processed", stat.N, "genomes. Running mean:", stat.Mean(), "SD:", stat.StandardDeviation())
		}
	}

	log.Printf("%d genomes: mean heterozygosity %.6f (SD %.6f)\n", len(rates), stat.Mean(), stat.StandardDeviation())

	hist := histogram.Hist(bins, rates)
	if err := histogram.Fprint(os.Stderr, hist, histogram.Linear(40)); err != nil {
		log.Fatalln(err)
	}
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
