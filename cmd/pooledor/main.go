// pooledor pools published (odds ratio, P-value) results for one variant into
// a fixed-effect odds ratio.
package main

import (
	"bufio"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	_ "github.com/carbocation/dnatraits/compileinfoprint"
	"github.com/carbocation/dnatraits/odds"
	"github.com/carbocation/pfx"
	"github.com/gocarina/gocsv"
)

var (
	BufferSize = 4096
	STDOUT     = bufio.NewWriterSize(os.Stdout, BufferSize)
)

func main() {
	defer STDOUT.Flush()

	var (
		studiesPath string
		vif         float64
		level       float64
		absRisk     float64
	)
	flag.StringVar(&studiesPath, "studies", "", "Tab-delimited file with odds_ratio and p_value columns, one study per row")
	flag.Float64Var(&vif, "vif", 0, "Optional: variance inflation factor by which each study's variance is deflated")
	flag.Float64Var(&level, "level", 0.95, "Confidence level of the reported interval")
	flag.Float64Var(&absRisk, "absolute-risk", 0, "Optional: baseline absolute risk, to also report a relative risk")
	flag.Parse()

	if studiesPath == "" {
		flag.PrintDefaults()
		log.Fatalln("Please provide --studies")
	}

	studies, err := loadStudies(studiesPath)
	if err != nil {
		log.Fatalln(err)
	}
	log.Println("Pooling", len(studies), "studies")

	var pooled odds.Pooled
	if vif != 0 {
		pooled, err = odds.PooledORVIF(studies, vif)
	} else {
		pooled, err = odds.PooledOR(studies)
	}
	if err != nil {
		log.Fatalln(err)
	}

	ci, err := pooled.ConfidenceInterval(level)
	if err != nil {
		log.Fatalln(err)
	}

	ps := make([]float64, 0, len(studies))
	for _, s := range studies {
		ps = append(ps, s.P)
	}
	fisherP, err := odds.CombinedPFisher(ps)
	if err != nil {
		log.Fatalln(err)
	}

	fmt.Fprintf(STDOUT, "odds_ratio\t%g\n", pooled.OddsRatio)
	fmt.Fprintf(STDOUT, "standard_error\t%g\n", pooled.StandardError)
	fmt.Fprintf(STDOUT, "p_value\t%g\n", pooled.P)
	fmt.Fprintf(STDOUT, "ci_%g\t%s\n", level, ci)
	fmt.Fprintf(STDOUT, "significant\t%t\n", odds.Statsig(ci))
	fmt.Fprintf(STDOUT, "fisher_combined_p\t%g\n", fisherP)

	if absRisk > 0 {
		rr, err := odds.RelativeRisk(pooled.OddsRatio, absRisk)
		if err != nil {
			log.Fatalln(err)
		}
		fmt.Fprintf(STDOUT, "relative_risk\t%g\n", rr)
	}
}

func loadStudies(path string) ([]odds.Study, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, pfx.Err(err)
	}
	defer f.Close()

	return readStudies(f)
}

func readStudies(r io.Reader) ([]odds.Study, error) {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.Comment = '#'

	studies := []odds.Study{}
	if err := gocsv.UnmarshalCSV(cr, &studies); err != nil {
		return nil, pfx.Err(err)
	}

	return studies, nil
}
