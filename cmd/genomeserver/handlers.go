package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/carbocation/dnatraits/compileinfo"
	"github.com/carbocation/dnatraits/match"
	"github.com/gorilla/mux"
)

type handler struct {
	*Global
}

type snpResponse struct {
	RSID       string `json:"rsid"`
	Present    bool   `json:"present"`
	Chromosome string `json:"chromosome,omitempty"`
	Position   uint32 `json:"position,omitempty"`
	Genotype   string `json:"genotype"`
	Positive   string `json:"positive"`
	Phased     bool   `json:"phased"`
}

type phenotypeResponse struct {
	RSID        string `json:"rsid"`
	Genotype    string `json:"genotype"`
	Description string `json:"description"`
}

type summaryResponse struct {
	SNPs        int            `json:"snps"`
	First       string         `json:"first"`
	Last        string         `json:"last"`
	Male        bool           `json:"male"`
	Orientation string         `json:"orientation"`
	Ethnicity   string         `json:"ethnicity"`
	YearOfBirth int            `json:"year_of_birth,omitempty"`
	Chromosomes map[string]int `json:"chromosomes"`
}

func (h *handler) Summary(w http.ResponseWriter, r *http.Request) {
	g := h.Genome
	year, _ := g.YearOfBirth()

	writeJSON(w, summaryResponse{
		SNPs:        g.Len(),
		First:       g.First().String(),
		Last:        g.Last().String(),
		Male:        g.Male(),
		Orientation: g.Orientation().String(),
		Ethnicity:   g.Ethnicity(),
		YearOfBirth: year,
		Chromosomes: g.ChromosomeCounts(),
	})
}

func (h *handler) SNP(w http.ResponseWriter, r *http.Request) {
	snp, err := h.Genome.Lookup(mux.Vars(r)["rsid"])
	if err != nil {
		HTTPError(w, http.StatusBadRequest, err)
		return
	}

	writeJSON(w, snpResponse{
		RSID:       snp.RSID().String(),
		Present:    h.Genome.Has(snp.RSID()),
		Chromosome: snp.Chromosome(),
		Position:   snp.Position(),
		Genotype:   snp.String(),
		Positive:   snp.Positive().String(),
		Phased:     snp.Phased(),
	})
}

func (h *handler) Phenotype(w http.ResponseWriter, r *http.Request) {
	snp, err := h.Genome.Lookup(mux.Vars(r)["rsid"])
	if err != nil {
		HTTPError(w, http.StatusBadRequest, err)
		return
	}

	table, exists := h.Phenotypes[snp.RSID()]
	if !exists {
		HTTPError(w, http.StatusNotFound, fmt.Errorf("no phenotype table for %s", snp.RSID()))
		return
	}

	description, err := match.UnphasedSNP(snp, table)
	if errors.Is(err, match.ErrNoPhenotype) {
		HTTPError(w, http.StatusNotFound, err)
		return
	} else if err != nil {
		HTTPError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, phenotypeResponse{
		RSID:        snp.RSID().String(),
		Genotype:    snp.Positive().String(),
		Description: description,
	})
}

func (h *handler) Version(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, compileinfo.Get())
}

func HTTPError(w http.ResponseWriter, status int, err error) {
	log.Println(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Println(err)
	}
}
