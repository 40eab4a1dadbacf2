// Package genome models a personal genotype export: Nucleotides, SNPs and an
// immutable RSID-indexed Genome. A Genome never changes after New returns, so
// one value can be shared by any number of goroutines without locking.
package genome

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// DefaultEthnicity is what DefaultConfig assumes when nothing else is known.
const DefaultEthnicity = "european"

// Record is one parsed row of a genome export.
type Record struct {
	Chromosome string
	Position   uint32 // 1-based; 0 when unknown
	Genotype   string
	Phased     bool // letters are ordered by parent of origin
}

// Table is the parser's output: one Record per RSID.
type Table map[RSID]Record

// Config carries the context that applies to a whole genome.
type Config struct {
	Orientation Orientation
	Ethnicity   string
	YearOfBirth int // 0 when unknown
}

func DefaultConfig() Config {
	return Config{
		Orientation: Positive,
		Ethnicity:   DefaultEthnicity,
	}
}

type Genome struct {
	table       Table
	rsids       []RSID // ascending
	config      Config
	yChromosome bool
}

// New validates and copies table. Genotype letters are upper-cased; anything
// outside of the nucleotide alphabet is an error. An empty Ethnicity is
// replaced by DefaultEthnicity.
func New(table Table, config Config) (*Genome, error) {
	if !config.Orientation.Valid() {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidOrientation, config.Orientation)
	}
	if config.Ethnicity == "" {
		config.Ethnicity = DefaultEthnicity
	}

	g := &Genome{
		table:  make(Table, len(table)),
		rsids:  make([]RSID, 0, len(table)),
		config: config,
	}

	for rsid, rec := range table {
		if rsid == 0 {
			return nil, fmt.Errorf("%w: 0", ErrInvalidRSID)
		}

		genotype, err := ParseGenotype(rec.Genotype)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", rsid, err)
		}

		b := make([]byte, len(genotype))
		for i, n := range genotype {
			b[i] = byte(n)
		}
		rec.Genotype = string(b)

		if rec.Chromosome == "Y" {
			g.yChromosome = true
		}

		g.table[rsid] = rec
		g.rsids = append(g.rsids, rsid)
	}

	sort.Slice(g.rsids, func(i, j int) bool { return g.rsids[i] < g.rsids[j] })

	return g, nil
}

func (g *Genome) Len() int                 { return len(g.rsids) }
func (g *Genome) Orientation() Orientation { return g.config.Orientation }
func (g *Genome) Ethnicity() string        { return g.config.Ethnicity }
func (g *Genome) Config() Config           { return g.config }

// YearOfBirth reports false when the year is unknown.
func (g *Genome) YearOfBirth() (int, bool) {
	return g.config.YearOfBirth, g.config.YearOfBirth > 0
}

// Age is the age reached during the given calendar year.
func (g *Genome) Age(year int) (int, bool) {
	if g.config.YearOfBirth <= 0 || year < g.config.YearOfBirth {
		return 0, false
	}
	return year - g.config.YearOfBirth, true
}

// IsEthnicity gates population-specific interpretations.
func (g *Genome) IsEthnicity(name string) bool {
	return strings.EqualFold(g.config.Ethnicity, name)
}

// YChromosome is true if any record sits on the Y chromosome.
func (g *Genome) YChromosome() bool { return g.yChromosome }
func (g *Genome) Male() bool        { return g.yChromosome }
func (g *Genome) Female() bool      { return !g.Male() }

// SNP returns the SNP at rsid, or the Missing sentinel.
func (g *Genome) SNP(rsid RSID) SNP {
	rec, ok := g.table[rsid]
	if !ok {
		return Missing(rsid, g.config.Orientation)
	}

	return SNP{
		rsid:        rsid,
		genotype:    rec.Genotype,
		orientation: g.config.Orientation,
		chromosome:  rec.Chromosome,
		position:    rec.Position,
		phased:      rec.Phased,
	}
}

// Lookup accepts "rs123" or "123". Malformed keys are an error; absent RSIDs
// are not, and yield the Missing sentinel.
func (g *Genome) Lookup(key string) (SNP, error) {
	rsid, err := parseKey(key)
	if err != nil {
		return SNP{}, err
	}

	return g.SNP(rsid), nil
}

func (g *Genome) Has(rsid RSID) bool {
	_, ok := g.table[rsid]
	return ok
}

// Contains is Has for a textual key.
func (g *Genome) Contains(key string) (bool, error) {
	rsid, err := parseKey(key)
	if err != nil {
		return false, err
	}

	return g.Has(rsid), nil
}

// Record returns the raw row behind rsid.
func (g *Genome) Record(rsid RSID) (Record, bool) {
	rec, ok := g.table[rsid]
	return rec, ok
}

// Table returns a copy of the underlying records.
func (g *Genome) Table() Table {
	out := make(Table, len(g.table))
	for k, v := range g.table {
		out[k] = v
	}
	return out
}

// RSIDs returns a copy of the sorted RSIDs.
func (g *Genome) RSIDs() []RSID {
	out := make([]RSID, len(g.rsids))
	copy(out, g.rsids)
	return out
}

// First returns the lowest RSID, or 0 for an empty genome.
func (g *Genome) First() RSID {
	if len(g.rsids) == 0 {
		return 0
	}
	return g.rsids[0]
}

// Last returns the highest RSID, or 0 for an empty genome.
func (g *Genome) Last() RSID {
	if len(g.rsids) == 0 {
		return 0
	}
	return g.rsids[len(g.rsids)-1]
}

// Slice returns the SNPs at sorted positions [i, j), clamped to the genome.
func (g *Genome) Slice(i, j int) []SNP {
	if i < 0 {
		i = 0
	}
	if j > len(g.rsids) {
		j = len(g.rsids)
	}
	if i >= j {
		return nil
	}

	out := make([]SNP, 0, j-i)
	for _, rsid := range g.rsids[i:j] {
		out = append(out, g.SNP(rsid))
	}
	return out
}

// ChromosomeCounts tallies records per chromosome label.
func (g *Genome) ChromosomeCounts() map[string]int {
	out := make(map[string]int)
	for _, rec := range g.table {
		out[rec.Chromosome]++
	}
	return out
}

// IntersectRSID returns the sorted RSIDs present in both genomes. The smaller
// table is walked and probed against the larger one.
func (g *Genome) IntersectRSID(other *Genome) []RSID {
	small, large := g, other
	if len(large.table) < len(small.table) {
		small, large = large, small
	}

	out := make([]RSID, 0)
	for _, rsid := range small.rsids {
		if _, ok := large.table[rsid]; ok {
			out = append(out, rsid)
		}
	}

	// small.rsids is sorted, so out is too
	return out
}

// IntersectSNP returns the sorted RSIDs present in both genomes whose SNPs
// are Equal.
func (g *Genome) IntersectSNP(other *Genome) []RSID {
	shared := g.IntersectRSID(other)

	out := make([]RSID, 0, len(shared))
	for _, rsid := range shared {
		if g.SNP(rsid).Equal(other.SNP(rsid)) {
			out = append(out, rsid)
		}
	}
	return out
}

// Equal is true when both genomes hold the same records under the same
// context.
func (g *Genome) Equal(other *Genome) bool {
	if g == other {
		return true
	}
	if other == nil || g.config != other.config || len(g.table) != len(other.table) {
		return false
	}

	for rsid, rec := range g.table {
		if orec, ok := other.table[rsid]; !ok || orec != rec {
			return false
		}
	}
	return true
}

func (g *Genome) String() string {
	return fmt.Sprintf("<Genome: SNPs=%d, y_chromosome=%t, orientation=%s>", g.Len(), g.yChromosome, g.config.Orientation)
}

func parseKey(key string) (RSID, error) {
	key = strings.TrimSpace(key)
	if n, err := strconv.ParseInt(key, 10, 64); err == nil {
		return RSIDFromInt(n)
	}

	return ParseRSID(key)
}
