// genomeserver loads one genome and answers read-only lookups over HTTP.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/araddon/dateparse"
	_ "github.com/carbocation/dnatraits/compileinfoprint"
	"github.com/carbocation/dnatraits/genome"
	"github.com/carbocation/dnatraits/genomestore"
	"github.com/carbocation/dnatraits/match"
	"github.com/carbocation/dnatraits/rawgenome"
)

// traitFlags collects repeated --trait rsid=path flags.
type traitFlags map[string]string

func (t traitFlags) String() string {
	parts := make([]string, 0, len(t))
	for k, v := range t {
		parts = append(parts, k+"="+v)
	}
	return strings.Join(parts, ",")
}

func (t traitFlags) Set(value string) error {
	parts := strings.SplitN(value, "=", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return fmt.Errorf("expected rsid=path, got %q", value)
	}
	t[parts[0]] = parts[1]
	return nil
}

func main() {
	var (
		genomePath string
		storePath  string
		birthDate  string
		ethnicity  string
		port       int
	)
	traits := make(traitFlags)
	flag.StringVar(&genomePath, "genome", "", "Path (local or gs://) to a raw genome export")
	flag.StringVar(&storePath, "store", "", "Path to a genome store. Used instead of --genome.")
	flag.StringVar(&birthDate, "birthdate", "", "Optional: date of birth of the genome's owner, in any common format")
	flag.StringVar(&ethnicity, "ethnicity", genome.DefaultEthnicity, "Ethnicity of the genome's owner")
	flag.IntVar(&port, "port", 9019, "Port to listen on")
	flag.Var(traits, "trait", "Repeatable: rsid=path of a tab-delimited phenotype table served at /phenotype/{rsid}")
	flag.Parse()

	if genomePath == "" && storePath == "" {
		flag.PrintDefaults()
		log.Fatalln("Please provide --genome or --store")
	}

	config := genome.Config{Orientation: genome.Positive, Ethnicity: ethnicity}
	if birthDate != "" {
		born, err := dateparse.ParseAny(birthDate)
		if err != nil {
			log.Fatalln(err)
		}
		config.YearOfBirth = born.Year()
	}

	ctx := context.Background()

	global := &Global{Phenotypes: make(map[genome.RSID]match.PhenotypeTable)}

	var err error
	if storePath != "" {
		global.Genome, err = genomestore.Load(ctx, storePath)
	} else {
		global.Genome, err = rawgenome.Load(ctx, genomePath, rawgenome.Options{}, config)
	}
	if err != nil {
		log.Fatalln(err)
	}
	log.Println("Loaded", global.Genome)

	for key, path := range traits {
		rsid, err := genome.ParseRSID(key)
		if err != nil {
			log.Fatalln(err)
		}
		table, err := match.LoadPhenotypeTable(path)
		if err != nil {
			log.Fatalln(err)
		}
		global.Phenotypes[rsid] = table
		log.Printf("Serving %d phenotypes for %s\n", table.Len(), rsid)
	}

	log.Printf("Starting server on port %d\n", port)
	if err := http.ListenAndServe(fmt.Sprintf(`:%d`, port), router(global)); err != nil {
		log.Fatalln(err)
	}
}
