package main

import (
	"net/http"

	"github.com/carbocation/dnatraits/genome"
	"github.com/carbocation/dnatraits/match"
	"github.com/gorilla/mux"
	"github.com/interpose/middleware"
	"github.com/justinas/alice"
)

// Global is shared by all handlers. Genomes and phenotype tables are
// immutable, so no locking is needed.
type Global struct {
	Genome     *genome.Genome
	Phenotypes map[genome.RSID]match.PhenotypeTable
}

func router(config *Global) http.Handler {
	router := mux.NewRouter()
	GET := router.Methods("GET", "HEAD").Subrouter()

	h := handler{Global: config}

	GET.HandleFunc("/summary", h.Summary).Name("summary")
	GET.HandleFunc("/snp/{rsid}", h.SNP).Name("snp")
	GET.HandleFunc("/phenotype/{rsid}", h.Phenotype).Name("phenotype")
	GET.HandleFunc("/version", h.Version).Name("version")

	standard := alice.New(
		// Log all requests to STDOUT
		middleware.GorillaLog(),
	)

	return standard.Then(router)
}
