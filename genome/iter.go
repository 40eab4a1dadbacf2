package genome

// Iterator walks a Genome in ascending RSID order. Each call to Genome.Iter
// starts a fresh, independent walk.
//
//	it := g.Iter()
//	for it.Next() {
//		snp := it.SNP()
//	}
type Iterator struct {
	g   *Genome
	pos int
	cur SNP
}

func (g *Genome) Iter() *Iterator {
	return &Iterator{g: g}
}

func (it *Iterator) Next() bool {
	if it.pos >= len(it.g.rsids) {
		return false
	}

	it.cur = it.g.SNP(it.g.rsids[it.pos])
	it.pos++
	return true
}

func (it *Iterator) SNP() SNP {
	return it.cur
}

// Criterion pairs an RSID with a plus-strand genotype, optionally prefixed
// with NegationMarker.
type Criterion struct {
	RSID     RSID
	Genotype string
}

// MatchIterator yields one boolean per Criterion, in order, computed only
// when Next is called.
type MatchIterator struct {
	g        *Genome
	criteria []Criterion
	pos      int
	cur      bool
}

// Match lazily compares each criterion against the genome.
func (g *Genome) Match(criteria []Criterion) *MatchIterator {
	return &MatchIterator{g: g, criteria: criteria}
}

func (it *MatchIterator) Next() bool {
	if it.pos >= len(it.criteria) {
		return false
	}

	c := it.criteria[it.pos]
	it.cur = it.g.SNP(c.RSID).Matches(c.Genotype)
	it.pos++
	return true
}

func (it *MatchIterator) Matched() bool {
	return it.cur
}

// Criterion returns the criterion evaluated by the last call to Next.
func (it *MatchIterator) Criterion() Criterion {
	if it.pos == 0 {
		return Criterion{}
	}
	return it.criteria[it.pos-1]
}

// MatchAll is true when every criterion matches. It stops at the first
// mismatch. An empty criteria list matches.
func (g *Genome) MatchAll(criteria []Criterion) bool {
	it := g.Match(criteria)
	for it.Next() {
		if !it.Matched() {
			return false
		}
	}
	return true
}
