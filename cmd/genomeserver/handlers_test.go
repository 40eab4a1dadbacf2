package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/carbocation/dnatraits/genome"
	"github.com/carbocation/dnatraits/match"
)

func testServer(t *testing.T) http.Handler {
	t.Helper()

	table := genome.Table{
		4988235: {Chromosome: "2", Position: 136608646, Genotype: "AG"},
		1:       {Chromosome: "1", Position: 1000, Genotype: "CC"},
		2:       {Chromosome: "Y", Position: 2000, Genotype: "T"},
	}
	g, err := genome.New(table, genome.Config{Orientation: genome.Positive, YearOfBirth: 1980})
	if err != nil {
		t.Fatal(err)
	}

	return router(&Global{
		Genome: g,
		Phenotypes: map[genome.RSID]match.PhenotypeTable{
			4988235: match.NewPhenotypeTable(map[string]string{"GG": "lactose intolerant", "AG": "lactase persistent"}),
		},
	})
}

func get(t *testing.T, h http.Handler, path string, out interface{}) int {
	t.Helper()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", path, nil))

	if out != nil && rec.Code == http.StatusOK {
		if err := json.NewDecoder(rec.Body).Decode(out); err != nil {
			t.Fatal(err)
		}
	}

	return rec.Code
}

func TestSummary(t *testing.T) {
	var res summaryResponse
	if code := get(t, testServer(t), "/summary", &res); code != http.StatusOK {
		t.Fatalf("status %d", code)
	}

	if res.SNPs != 3 || !res.Male || res.YearOfBirth != 1980 {
		t.Errorf("unexpected summary %+v", res)
	}
	if res.First != "rs1" || res.Last != "rs4988235" {
		t.Errorf("expected rs1..rs4988235, got %s..%s", res.First, res.Last)
	}
	if res.Chromosomes["Y"] != 1 {
		t.Errorf("expected one Y SNP, got %d", res.Chromosomes["Y"])
	}
}

func TestSNP(t *testing.T) {
	h := testServer(t)

	var res snpResponse
	if code := get(t, h, "/snp/rs4988235", &res); code != http.StatusOK {
		t.Fatalf("status %d", code)
	}
	if !res.Present || res.Genotype != "AG" || res.Chromosome != "2" || res.Position != 136608646 {
		t.Errorf("unexpected SNP %+v", res)
	}

	res = snpResponse{}
	if code := get(t, h, "/snp/rs42", &res); code != http.StatusOK {
		t.Fatalf("status %d", code)
	}
	if res.Present || res.Genotype != "" {
		t.Errorf("expected an absent SNP, got %+v", res)
	}

	if code := get(t, h, "/snp/chr2", nil); code != http.StatusBadRequest {
		t.Errorf("expected 400 for a malformed rsid, got %d", code)
	}
}

func TestPhenotype(t *testing.T) {
	h := testServer(t)

	var res phenotypeResponse
	if code := get(t, h, "/phenotype/rs4988235", &res); code != http.StatusOK {
		t.Fatalf("status %d", code)
	}
	if res.Description != "lactase persistent" {
		t.Errorf("expected lactase persistent, got %q", res.Description)
	}

	if code := get(t, h, "/phenotype/rs1", nil); code != http.StatusNotFound {
		t.Errorf("expected 404 without a table, got %d", code)
	}
}

func TestVersion(t *testing.T) {
	if code := get(t, testServer(t), "/version", nil); code != http.StatusOK {
		t.Errorf("status %d", code)
	}
}
