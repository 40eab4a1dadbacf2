package genome

import (
	"errors"
	"sync"
	"testing"
)

func testGenome(t *testing.T, table Table, config Config) *Genome {
	t.Helper()

	g, err := New(table, config)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

var sampleTable = Table{
	4988235: {Chromosome: "2", Position: 136608646, Genotype: "AG"},
	1805007: {Chromosome: "16", Position: 89986117, Genotype: "CC"},
	7495174: {Chromosome: "15", Position: 28344238, Genotype: "ag"},
	2032582: {Chromosome: "Y", Position: 14869076, Genotype: "A"},
	3:       {Chromosome: "13", Position: 32446842, Genotype: "--"},
}

func TestNucleotideComplementInvolution(t *testing.T) {
	for _, n := range []Nucleotide{A, C, G, T, Deletion, Insertion, NoCall} {
		if got := n.Complement().Complement(); got != n {
			t.Errorf("%s: complement of complement is %s", n, got)
		}
	}

	for n, want := range map[Nucleotide]Nucleotide{A: T, T: A, C: G, G: C, Deletion: Deletion, Insertion: Insertion, NoCall: NoCall} {
		if got := n.Complement(); got != want {
			t.Errorf("%s: got %s, expected %s", n, got, want)
		}
	}
}

func TestParseNucleotide(t *testing.T) {
	if n, err := ParseNucleotide('g'); err != nil || n != G {
		t.Fatalf("got %v, %v", n, err)
	}

	if _, err := ParseNucleotide('N'); !errors.Is(err, ErrInvalidGenotype) {
		t.Fatalf("expected ErrInvalidGenotype, got %v", err)
	}
}

func TestParseRSID(t *testing.T) {
	for key, want := range map[string]RSID{"rs123": 123, "RS4988235": 4988235, " rs1 ": 1} {
		got, err := ParseRSID(key)
		if err != nil {
			t.Fatalf("%q: %v", key, err)
		}
		if got != want {
			t.Errorf("%q: got %d, expected %d", key, got, want)
		}
	}

	for _, key := range []string{"", "rs", "rsx12", "123", "i7000001", "rs0", "rs-5"} {
		if _, err := ParseRSID(key); !errors.Is(err, ErrInvalidRSID) {
			t.Errorf("%q: expected ErrInvalidRSID, got %v", key, err)
		}
	}

	if RSID(42).String() != "rs42" {
		t.Errorf("got %s", RSID(42))
	}
}

func TestSNPZygosity(t *testing.T) {
	for _, v := range []struct {
		genotype     string
		chromosome   string
		homozygous   bool
		heterozygous bool
		haploid      bool
		length       int
	}{
		{"AA", "1", true, false, false, 2},
		{"AG", "1", false, true, false, 2},
		{"A", "1", false, false, true, 1},
		{"A-", "1", false, true, true, 1},
		{"AG", "X", false, true, true, 2},
		{"T", "MT", false, false, true, 1},
		{"--", "1", true, false, false, 0},
		{"", "", false, false, false, 0},
	} {
		nucs, err := ParseGenotype(v.genotype)
		if err != nil {
			t.Fatal(err)
		}
		s := NewSNP(1, nucs, Positive, v.chromosome, 10)

		if s.Homozygous() != v.homozygous || s.Heterozygous() != v.heterozygous || s.Haploid() != v.haploid || s.Len() != v.length {
			t.Errorf("%+v: got hom=%t het=%t haploid=%t len=%d", v, s.Homozygous(), s.Heterozygous(), s.Haploid(), s.Len())
		}
	}
}

func TestSNPOrientation(t *testing.T) {
	g := testGenome(t, sampleTable, DefaultConfig())
	neg := testGenome(t, sampleTable, Config{Orientation: Negative})

	for _, genome := range []*Genome{g, neg} {
		it := genome.Iter()
		for it.Next() {
			s := it.SNP()

			if !s.Positive().Equal(s.Negative().Complement()) || !s.Negative().Equal(s.Positive().Complement()) {
				t.Errorf("%#v: positive and negative are not mutual complements", s)
			}

			if s.Positive().String() != s.Negative().Complement().String() {
				t.Errorf("%#v: positive %q, complemented negative %q", s, s.Positive(), s.Negative().Complement())
			}

			if s.Orientation() > 0 && s.Complement().String() != s.Negative().String() {
				t.Errorf("%#v: complement should be the negative strand", s)
			} else if s.Orientation() < 0 && s.Complement().String() != s.Positive().String() {
				t.Errorf("%#v: complement should be the positive strand", s)
			}

			if s.Positive().Orientation() != Positive || s.Negative().Orientation() != Negative {
				t.Errorf("%#v: orientation not normalized", s)
			}

			for _, n := range "AGCTDI-" {
				if s.Count(n) != countRune(s.String(), n) {
					t.Errorf("%#v: count(%c) = %d", s, n, s.Count(n))
				}
			}
		}
	}
}

func countRune(s string, r rune) int {
	n := 0
	for _, c := range s {
		if c == r {
			n++
		}
	}
	return n
}

func TestComplementDoesNotAlias(t *testing.T) {
	s := NewSNP(1, []Nucleotide{A, G}, Positive, "1", 1)
	c := s.Complement()
	genotype := s.Genotype()
	genotype[0] = T

	if s.String() != "AG" || c.String() != "TC" {
		t.Fatalf("got %q and %q", s, c)
	}
}

func TestSNPMatchesUnphased(t *testing.T) {
	s := NewSNP(1, []Nucleotide{A, G}, Positive, "1", 1)

	for _, genotype := range []string{"AG", "GA", "ag"} {
		if !s.Matches(genotype) {
			t.Errorf("unphased AG should match %q", genotype)
		}
	}

	if s.Matches("AA") {
		t.Error("AG should not match AA")
	}

	phased := s.WithPhased(true)
	if !phased.Matches("AG") || phased.Matches("GA") {
		t.Error("phased AG should only match AG")
	}

	if !s.Matches("~TC") || !s.Matches("~CT") || s.Matches("~AG") {
		t.Error("negation marker should compare against the minus strand")
	}

	negative := NewSNP(1, []Nucleotide{T, C}, Negative, "1", 1)
	if !negative.Matches("AG") || !negative.Equal(s) {
		t.Error("minus-strand TC should equal plus-strand AG")
	}
}

func TestSNPCompare(t *testing.T) {
	s := NewSNP(1, []Nucleotide{C, T}, Positive, "1", 1)

	for _, v := range []interface{}{"CT", "TC", s, &s, []Nucleotide{T, C}} {
		ok, err := s.Compare(v)
		if err != nil || !ok {
			t.Errorf("%#v: got %t, %v", v, ok, err)
		}
	}

	if _, err := s.Compare(42); !errors.Is(err, ErrUnsupportedComparison) {
		t.Errorf("expected ErrUnsupportedComparison, got %v", err)
	}
}

func TestGenomeLookup(t *testing.T) {
	g := testGenome(t, sampleTable, DefaultConfig())

	for _, key := range []string{"rs4988235", "RS4988235", "4988235"} {
		s, err := g.Lookup(key)
		if err != nil {
			t.Fatal(err)
		}
		if s.String() != "AG" || s.Chromosome() != "2" || s.Position() != 136608646 || s.RSID() != 4988235 {
			t.Errorf("%q: got %#v", key, s)
		}
		if s.Orientation() != g.Orientation() {
			t.Errorf("SNP orientation %s, genome %s", s.Orientation(), g.Orientation())
		}
	}

	if s := g.SNP(7495174); s.String() != "AG" {
		t.Errorf("genotype letters were not upper-cased: %q", s)
	}

	if _, err := g.Lookup("rsabc"); !errors.Is(err, ErrInvalidRSID) {
		t.Errorf("expected ErrInvalidRSID, got %v", err)
	}

	if ok, err := g.Contains("rs3"); err != nil || !ok {
		t.Errorf("rs3 should be present: %t %v", ok, err)
	}
	if _, err := g.Contains("nope"); err == nil {
		t.Error("expected an error for a malformed key")
	}
}

func TestGenomeMiss(t *testing.T) {
	g := testGenome(t, sampleTable, DefaultConfig())

	s, err := g.Lookup("rs9999999")
	if err != nil {
		t.Fatal(err)
	}

	if s.HasData() || s.String() != "" || s.Chromosome() != "" || s.Position() != 0 {
		t.Fatalf("expected the missing sentinel, got %#v", s)
	}

	if g.Has(9999999) {
		t.Error("Has should be false for a miss")
	}

	if !s.Equal(Missing(1, Positive)) || s.Matches("AA") || s.Count('A') != 0 {
		t.Error("the sentinel should compose with comparison and counting")
	}
}

func TestGenomeSex(t *testing.T) {
	g := testGenome(t, sampleTable, DefaultConfig())
	if !g.YChromosome() || !g.Male() || g.Female() {
		t.Error("sample with Y records should be male")
	}

	noY := Table{1: {Chromosome: "X", Position: 5, Genotype: "AG"}}
	f := testGenome(t, noY, DefaultConfig())
	if f.YChromosome() || f.Male() || !f.Female() {
		t.Error("sample without Y records should be female")
	}
}

func TestGenomeIteration(t *testing.T) {
	g := testGenome(t, sampleTable, DefaultConfig())

	for pass := 0; pass < 2; pass++ {
		var prev RSID
		n := 0
		it := g.Iter()
		for it.Next() {
			if it.SNP().RSID() <= prev {
				t.Fatalf("pass %d: %s after %s", pass, it.SNP().RSID(), prev)
			}
			prev = it.SNP().RSID()
			n++
		}
		if n != g.Len() {
			t.Fatalf("pass %d: visited %d of %d", pass, n, g.Len())
		}
	}

	if g.First() != 3 || g.Last() != 7495174 {
		t.Errorf("first %d, last %d", g.First(), g.Last())
	}

	if s := g.Slice(0, 2); len(s) != 2 || s[0].RSID() != 3 || s[1].RSID() != 1805007 {
		t.Errorf("got %v", s)
	}
	if s := g.Slice(3, 100); len(s) != 2 {
		t.Errorf("slice should clamp, got %d", len(s))
	}
}

func TestGenomeIntersect(t *testing.T) {
	a := testGenome(t, sampleTable, DefaultConfig())
	b := testGenome(t, Table{
		4988235: {Chromosome: "2", Genotype: "GA"},
		1805007: {Chromosome: "16", Genotype: "CT"},
		3:       {Chromosome: "13", Genotype: "--"},
		42:      {Chromosome: "1", Genotype: "TT"},
	}, DefaultConfig())

	ab, ba := a.IntersectRSID(b), b.IntersectRSID(a)
	if len(ab) != 3 || len(ba) != 3 {
		t.Fatalf("got %v and %v", ab, ba)
	}
	for i := range ab {
		if ab[i] != ba[i] {
			t.Fatalf("intersection is not symmetric: %v vs %v", ab, ba)
		}
	}

	same := a.IntersectSNP(b)
	if len(same) != 2 || same[0] != 3 || same[1] != 4988235 {
		t.Fatalf("got %v", same)
	}

	shared := make(map[RSID]bool)
	for _, rsid := range ab {
		shared[rsid] = true
	}
	for _, rsid := range same {
		if !shared[rsid] {
			t.Errorf("%s is in IntersectSNP but not IntersectRSID", rsid)
		}
	}
}

func TestGenomeMatch(t *testing.T) {
	g := testGenome(t, sampleTable, DefaultConfig())

	criteria := []Criterion{{4988235, "GA"}, {1805007, "CC"}, {2032582, "G"}}
	want := []bool{true, true, false}

	it := g.Match(criteria)
	i := 0
	for it.Next() {
		if it.Matched() != want[i] {
			t.Errorf("%+v: got %t", it.Criterion(), it.Matched())
		}
		i++
	}
	if i != len(criteria) {
		t.Fatalf("yielded %d of %d", i, len(criteria))
	}

	if g.MatchAll(criteria) || !g.MatchAll(criteria[:2]) || !g.MatchAll(nil) {
		t.Error("MatchAll disagrees with the per-criterion results")
	}
}

func TestGenomeConfig(t *testing.T) {
	g := testGenome(t, sampleTable, Config{Orientation: Positive, YearOfBirth: 1980})
	if g.Ethnicity() != DefaultEthnicity || !g.IsEthnicity("European") {
		t.Errorf("got ethnicity %q", g.Ethnicity())
	}
	if age, ok := g.Age(2020); !ok || age != 40 {
		t.Errorf("got %d, %t", age, ok)
	}

	if _, err := New(sampleTable, Config{}); !errors.Is(err, ErrInvalidOrientation) {
		t.Errorf("expected ErrInvalidOrientation, got %v", err)
	}

	if _, err := New(Table{1: {Genotype: "AX"}}, DefaultConfig()); !errors.Is(err, ErrInvalidGenotype) {
		t.Errorf("expected ErrInvalidGenotype, got %v", err)
	}
}

func TestGenomeImmutable(t *testing.T) {
	table := Table{1: {Chromosome: "1", Genotype: "AA"}}
	g := testGenome(t, table, DefaultConfig())

	table[1] = Record{Chromosome: "1", Genotype: "TT"}
	out := g.Table()
	out[2] = Record{Genotype: "CC"}

	if g.SNP(1).String() != "AA" || g.Has(2) {
		t.Fatal("genome was mutated through a table it does not own")
	}

	if !g.Equal(testGenome(t, Table{1: {Chromosome: "1", Genotype: "aa"}}, DefaultConfig())) {
		t.Error("equal genomes compared unequal")
	}
}

func TestGenomeConcurrentReaders(t *testing.T) {
	g := testGenome(t, sampleTable, DefaultConfig())
	other := testGenome(t, Table{3: {Genotype: "--"}, 1805007: {Genotype: "CC"}}, DefaultConfig())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if n := len(g.IntersectSNP(other)); n != 2 {
				t.Errorf("got %d shared SNPs", n)
			}
			it := g.Iter()
			for it.Next() {
				_ = it.SNP().Positive().String()
			}
		}()
	}
	wg.Wait()
}
