package genome

import "fmt"

// Nucleotide is a single base-pair letter as reported by consumer genotyping
// exports. D and I mark deletions and insertions; '-' is a no-call.
type Nucleotide byte

const (
	A         Nucleotide = 'A'
	C         Nucleotide = 'C'
	G         Nucleotide = 'G'
	T         Nucleotide = 'T'
	Deletion  Nucleotide = 'D'
	Insertion Nucleotide = 'I'
	NoCall    Nucleotide = '-'
)

var complements = map[Nucleotide]Nucleotide{
	A:         T,
	T:         A,
	C:         G,
	G:         C,
	Deletion:  Deletion,
	Insertion: Insertion,
	NoCall:    NoCall,
}

// ParseNucleotide validates a single letter. Lowercase letters are accepted.
func ParseNucleotide(b byte) (Nucleotide, error) {
	if b >= 'a' && b <= 'z' {
		b -= 'a' - 'A'
	}

	n := Nucleotide(b)
	if _, ok := complements[n]; !ok {
		return 0, fmt.Errorf("%w: %q is not one of A, C, G, T, D, I, -", ErrInvalidGenotype, b)
	}

	return n, nil
}

// Complement returns the letter on the opposite strand. It is an involution:
// n.Complement().Complement() == n for every valid Nucleotide.
func (n Nucleotide) Complement() Nucleotide {
	if c, ok := complements[n]; ok {
		return c
	}

	// Unknown letters have no partner and map onto themselves
	return n
}

// Called is false for the no-call marker.
func (n Nucleotide) Called() bool {
	return n != NoCall
}

func (n Nucleotide) String() string {
	return string(rune(n))
}
