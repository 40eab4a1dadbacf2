// haplotype prints the single-copy calls of a child that can be attributed to
// one parent: haploid and homozygous sites in either genome.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	_ "github.com/carbocation/dnatraits/compileinfoprint"
	"github.com/carbocation/dnatraits/genome"
	"github.com/carbocation/dnatraits/haplotype"
	"github.com/carbocation/dnatraits/rawgenome"
)

var (
	BufferSize = 4096
	STDOUT     = bufio.NewWriterSize(os.Stdout, BufferSize)
)

func main() {
	defer STDOUT.Flush()

	var (
		childPath  string
		parentPath string
		assembly   string
		verbose    bool
	)
	flag.StringVar(&childPath, "child", "", "Path (local or gs://) to the child's raw genome export")
	flag.StringVar(&parentPath, "parent", "", "Path (local or gs://) to one parent's raw genome export")
	flag.StringVar(&assembly, "assembly", "", "Optional: grch37 or grch38, to reject rows with impossible positions")
	flag.BoolVar(&verbose, "verbose", false, "Log skipped rows")
	flag.Parse()

	if childPath == "" || parentPath == "" {
		flag.PrintDefaults()
		log.Fatalln("Please provide --child and --parent")
	}

	ctx := context.Background()
	opts := rawgenome.Options{Assembly: assembly, Verbose: verbose}

	child, err := rawgenome.Load(ctx, childPath, opts, genome.DefaultConfig())
	if err != nil {
		log.Fatalln(err)
	}
	log.Println("Loaded child:", child)

	parent, err := rawgenome.Load(ctx, parentPath, opts, genome.DefaultConfig())
	if err != nil {
		log.Fatalln(err)
	}
	log.Println("Loaded parent:", parent)

	fmt.Fprintf(STDOUT, "rsid\tchromosome\tposition\tchild\tparent\thaplotype\n")

	n := 0
	r := haplotype.New(child, parent)
	for r.Next() {
		snp := r.SNP()
		fmt.Fprintf(STDOUT, "%s\t%s\t%d\t%s\t%s\t%s\n",
			snp.RSID(),
			snp.Chromosome(),
			snp.Position(),
			child.SNP(snp.RSID()),
			parent.SNP(snp.RSID()),
			snp,
		)
		n++
	}

	log.Printf("Determined %d of %d shared sites\n", n, len(child.IntersectRSID(parent)))
}
