// association runs an allelic case/control test at one RSID.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

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
		casesPath    string
		controlsPath string
		rsidKey      string
		alleleFlag   string
		level        float64
	)
	flag.StringVar(&casesPath, "cases", "", "File with one raw genome path (local or gs://) per line for cases")
	flag.StringVar(&controlsPath, "controls", "", "File with one raw genome path (local or gs://) per line for controls")
	flag.StringVar(&rsidKey, "rsid", "", "RSID to test, e.g. rs4988235")
	flag.StringVar(&alleleFlag, "allele", "", "Tested allele on the plus strand (A, C, G or T)")
	flag.Float64Var(&level, "level", 0.95, "Confidence level of the odds ratio's interval")
	flag.Parse()

	if casesPath == "" || controlsPath == "" || rsidKey == "" || len(alleleFlag) != 1 {
		flag.PrintDefaults()
		log.Fatalln("Please provide --cases, --controls, --rsid and --allele")
	}

	rsid, err := genome.ParseRSID(rsidKey)
	if err != nil {
		log.Fatalln(err)
	}
	allele, err := genome.ParseNucleotide(alleleFlag[0])
	if err != nil {
		log.Fatalln(err)
	}

	ctx := context.Background()

	cases, err := loadGenomes(ctx, casesPath)
	if err != nil {
		log.Fatalln(err)
	}
	controls, err := loadGenomes(ctx, controlsPath)
	if err != nil {
		log.Fatalln(err)
	}
	log.Println("Loaded", len(cases), "cases and", len(controls), "controls")

	res, err := cohort.AllelicAssociation(cases, controls, rsid, allele, level)
	if err != nil {
		log.Fatalln(err)
	}

	fmt.Fprintf(STDOUT, "rsid\tallele\tcase_allele\tcase_other\tcontrol_allele\tcontrol_other\todds_ratio\tci_lower\tci_upper\tfisher_p\n")
	fmt.Fprintf(STDOUT, "%s\t%s\t%d\t%d\t%d\t%d\t%.4f\t%.4f\t%.4f\t%.6g\n",
		res.RSID, res.Allele,
		res.Table[0][0], res.Table[0][1], res.Table[1][0], res.Table[1][1],
		res.OddsRatio, res.CI.Lower, res.CI.Upper, res.P,
	)
}

func loadGenomes(ctx context.Context, listPath string) ([]*genome.Genome, error) {
	f, err := os.Open(listPath)
	if err != nil {
		return nil, pfx.Err(err)
	}
	defer f.Close()

	var out []*genome.Genome
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		path := strings.TrimSpace(scanner.Text())
		if path == "" || strings.HasPrefix(path, "#") {
			continue
		}

		g, err := rawgenome.Load(ctx, path, rawgenome.Options{}, genome.DefaultConfig())
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}

	if err := scanner.Err(); err != nil {
		return nil, pfx.Err(err)
	}

	return out, nil
}
