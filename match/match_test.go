package match

import (
	"errors"
	"strings"
	"testing"

	"github.com/carbocation/dnatraits/genome"
)

var lactose = NewPhenotypeTable(map[string]string{
	"AA": "Likely lactose tolerant",
	"AG": "Likely lactose tolerant",
	"GG": "Likely lactose intolerant",
})

func TestUnphased(t *testing.T) {
	for genotype, want := range map[string]string{
		"AA": "Likely lactose tolerant",
		"GA": "Likely lactose tolerant",
		"GG": "Likely lactose intolerant",
	} {
		got, err := Unphased(genotype, lactose)
		if err != nil {
			t.Fatal(err)
		}
		if got != want {
			t.Errorf("%s: got %q, expected %q", genotype, got, want)
		}
	}

	if _, err := Unphased("--", lactose); !errors.Is(err, ErrNoPhenotype) {
		t.Fatalf("expected ErrNoPhenotype, got %v", err)
	}

	withDefault := lactose.WithDefault("Unknown genotype")
	if got, err := Unphased("--", withDefault); err != nil || got != "Unknown genotype" {
		t.Fatalf("got %q, %v", got, err)
	}

	if _, ok := lactose.Default(); ok {
		t.Error("WithDefault must not modify the original table")
	}
}

func TestUnphasedSNP(t *testing.T) {
	g, err := genome.New(genome.Table{
		4988235: {Chromosome: "2", Position: 136608646, Genotype: "TC"},
	}, genome.Config{Orientation: genome.Negative})
	if err != nil {
		t.Fatal(err)
	}

	// TC on the minus strand is AG on the plus strand
	got, err := UnphasedSNP(g.SNP(4988235), lactose)
	if err != nil || got != "Likely lactose tolerant" {
		t.Fatalf("got %q, %v", got, err)
	}

	if _, err := UnphasedSNP(g.SNP(1), lactose); !errors.Is(err, ErrNoPhenotype) {
		t.Fatalf("a missing SNP should not match, got %v", err)
	}
}

func TestReadPhenotypeTable(t *testing.T) {
	in := "# rs4988235\n" +
		"genotype\tdescription\n" +
		"AA\tLikely lactose tolerant\n" +
		"ag\tLikely lactose tolerant\n" +
		"GG\tLikely lactose intolerant\n" +
		"*\tUnknown genotype\n"

	table, err := ReadPhenotypeTable(strings.NewReader(in))
	if err != nil {
		t.Fatal(err)
	}

	if table.Len() != 3 {
		t.Fatalf("got %d entries", table.Len())
	}

	if got, _ := Unphased("GA", table); got != "Likely lactose tolerant" {
		t.Errorf("got %q", got)
	}

	if def, ok := table.Default(); !ok || def != "Unknown genotype" {
		t.Errorf("got %q, %t", def, ok)
	}

	dup := "genotype\tdescription\nAA\tx\naa\ty\n"
	if _, err := ReadPhenotypeTable(strings.NewReader(dup)); err == nil {
		t.Error("expected an error for duplicate genotypes")
	}
}
