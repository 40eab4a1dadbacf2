// phenotype looks up the description of a genome's genotype at one RSID in a
// phenotype table.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	_ "github.com/carbocation/dnatraits/compileinfoprint"
	"github.com/carbocation/dnatraits/genome"
	"github.com/carbocation/dnatraits/genomestore"
	"github.com/carbocation/dnatraits/match"
	"github.com/carbocation/dnatraits/rawgenome"
)

var (
	BufferSize = 4096
	STDOUT     = bufio.NewWriterSize(os.Stdout, BufferSize)
)

func main() {
	defer STDOUT.Flush()

	var (
		genomePath string
		storePath  string
		tablePath  string
		rsidKey    string
	)
	flag.StringVar(&genomePath, "genome", "", "Path (local or gs://) to a raw genome export")
	flag.StringVar(&storePath, "store", "", "Path to a genome store. Used instead of --genome.")
	flag.StringVar(&tablePath, "table", "", "Tab-delimited phenotype table with genotype and description columns. A genotype of * is the default.")
	flag.StringVar(&rsidKey, "rsid", "", "RSID to look up, e.g. rs4988235")
	flag.Parse()

	if (genomePath == "" && storePath == "") || tablePath == "" || rsidKey == "" {
		flag.PrintDefaults()
		log.Fatalln("Please provide --genome (or --store), --table and --rsid")
	}

	table, err := match.LoadPhenotypeTable(tablePath)
	if err != nil {
		log.Fatalln(err)
	}

	ctx := context.Background()

	var g *genome.Genome
	if storePath != "" {
		g, err = genomestore.Load(ctx, storePath)
	} else {
		g, err = rawgenome.Load(ctx, genomePath, rawgenome.Options{}, genome.DefaultConfig())
	}
	if err != nil {
		log.Fatalln(err)
	}

	snp, err := g.Lookup(rsidKey)
	if err != nil {
		log.Fatalln(err)
	}

	description, err := match.UnphasedSNP(snp, table)
	if errors.Is(err, match.ErrNoPhenotype) {
		log.Printf("No phenotype for %s=%q\n", snp.RSID(), snp)
		os.Exit(1)
	} else if err != nil {
		log.Fatalln(err)
	}

	fmt.Fprintf(STDOUT, "%s\t%s\t%s\n", snp.RSID(), snp.Positive(), description)
}
