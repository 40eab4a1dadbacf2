// Package haplotype derives haploid calls for a child from a single parent.
package haplotype

import "github.com/carbocation/dnatraits/genome"

// Resolver walks the RSIDs shared by a child and a parent and yields one
// haploid SNP wherever the inherited allele can be determined. Positions where
// both are heterozygous are skipped. Neither genome is modified.
type Resolver struct {
	child, parent *genome.Genome
	shared        []genome.RSID
	pos           int
	cur           genome.SNP
}

// New prepares a lazy walk over child.IntersectRSID(parent).
func New(child, parent *genome.Genome) *Resolver {
	return &Resolver{
		child:  child,
		parent: parent,
		shared: child.IntersectRSID(parent),
	}
}

// Next advances to the next determinable RSID.
func (r *Resolver) Next() bool {
	for r.pos < len(r.shared) {
		rsid := r.shared[r.pos]
		r.pos++

		if snp, ok := Resolve(r.child.SNP(rsid), r.parent.SNP(rsid)); ok {
			r.cur = snp
			return true
		}
	}

	return false
}

func (r *Resolver) SNP() genome.SNP {
	return r.cur
}

// Resolve applies the inheritance rules to one child/parent pair:
//
//  1. haploid child: the child's first letter
//  2. homozygous child: the child's letter, whatever the parent carries
//  3. homozygous parent: the parent's letter, which the child must carry
//  4. both heterozygous: undeterminable
//
// No-call letters never count as a determined allele, so a "--" child falls
// through to the parent.
func Resolve(child, parent genome.SNP) (genome.SNP, bool) {
	switch {
	case child.Haploid() && child.Len() > 0:
		return haploid(child), true
	case child.Homozygous() && child.Len() == 2:
		return haploid(child), true
	case parent.Homozygous() && parent.Len() == 2:
		return haploid(parent), true
	}

	return genome.SNP{}, false
}

// All drains a Resolver.
func All(child, parent *genome.Genome) []genome.SNP {
	out := make([]genome.SNP, 0)
	r := New(child, parent)
	for r.Next() {
		out = append(out, r.SNP())
	}
	return out
}

// haploid keeps the first called letter of s.
func haploid(s genome.SNP) genome.SNP {
	var first genome.Nucleotide
	for _, n := range s.Genotype() {
		if n.Called() {
			first = n
			break
		}
	}

	return genome.NewSNP(s.RSID(), []genome.Nucleotide{first}, s.Orientation(), s.Chromosome(), s.Position())
}
