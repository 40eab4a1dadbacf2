// genomesummary describes a raw genome export and can cache it as a SQLite
// genome store for faster reloads.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/carbocation/dnatraits/chrpos"
	_ "github.com/carbocation/dnatraits/compileinfoprint"
	"github.com/carbocation/dnatraits/genome"
	"github.com/carbocation/dnatraits/genomestore"
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
		savePath   string
		assembly   string
		ethnicity  string
		birthDate  string
		negative   bool
		verbose    bool
	)
	flag.StringVar(&genomePath, "genome", "", "Path (local or gs://) to a raw genome export")
	flag.StringVar(&storePath, "store", "", "Path to a genome store written by --save. Used instead of --genome.")
	flag.StringVar(&savePath, "save", "", "Optional: path where the parsed genome will be saved as a genome store")
	flag.StringVar(&assembly, "assembly", chrpos.GRCh37, "grch37 or grch38. Set to empty to skip position validation.")
	flag.StringVar(&ethnicity, "ethnicity", genome.DefaultEthnicity, "Ethnicity of the genome's owner")
	flag.StringVar(&birthDate, "birthdate", "", "Optional: date of birth of the genome's owner, in any common format")
	flag.BoolVar(&negative, "negative", false, "Genotypes in the export are reported on the minus strand")
	flag.BoolVar(&verbose, "verbose", false, "Log skipped rows")
	flag.Parse()

	if genomePath == "" && storePath == "" {
		flag.PrintDefaults()
		log.Fatalln("Please provide --genome or --store")
	}

	config := genome.Config{Orientation: genome.Positive, Ethnicity: ethnicity}
	if negative {
		config.Orientation = genome.Negative
	}
	if birthDate != "" {
		born, err := dateparse.ParseAny(birthDate)
		if err != nil {
			log.Fatalln(err)
		}
		config.YearOfBirth = born.Year()
	}

	ctx := context.Background()

	var g *genome.Genome
	var err error
	if storePath != "" {
		g, err = genomestore.Load(ctx, storePath)
	} else {
		g, err = rawgenome.Load(ctx, genomePath, rawgenome.Options{Assembly: assembly, Verbose: verbose}, config)
	}
	if err != nil {
		log.Fatalln(err)
	}

	if err := summarize(g); err != nil {
		log.Fatalln(err)
	}

	if savePath != "" {
		if err := genomestore.Save(ctx, g, savePath); err != nil {
			log.Fatalln(err)
		}
		log.Println("Saved genome store to", savePath)
	}
}

func summarize(g *genome.Genome) error {
	sex := "female"
	if g.Male() {
		sex = "male"
	}

	fmt.Fprintf(STDOUT, "snps\t%d\n", g.Len())
	fmt.Fprintf(STDOUT, "first\t%s\n", g.First())
	fmt.Fprintf(STDOUT, "last\t%s\n", g.Last())
	fmt.Fprintf(STDOUT, "sex\t%s\n", sex)
	fmt.Fprintf(STDOUT, "orientation\t%s\n", g.Orientation())
	fmt.Fprintf(STDOUT, "ethnicity\t%s\n", g.Ethnicity())
	if age, ok := g.Age(time.Now().Year()); ok {
		fmt.Fprintf(STDOUT, "age\t%d\n", age)
	}

	chromosomes, err := chrpos.Chromosomes(chrpos.GRCh37)
	if err != nil {
		return err
	}

	counts := g.ChromosomeCounts()
	largest := 0
	for _, n := range counts {
		if n > largest {
			largest = n
		}
	}

	for _, chrom := range chromosomes {
		n := counts[chrom]
		bar := 0
		if largest > 0 {
			bar = 40 * n / largest
		}
		fmt.Fprintf(STDOUT, "chr%s\t%d\t%s\n", chrom, n, strings.Repeat("#", bar))
	}

	return nil
}
