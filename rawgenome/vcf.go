package rawgenome

import (
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/carbocation/dnatraits/genome"
	"github.com/carbocation/pfx"
)

func sampleIndex(names []string, want string) (int, error) {
	if want == "" {
		if len(names) != 1 {
			return 0, fmt.Errorf("%w: %d samples present, name one", ErrNoSample, len(names))
		}
		return 0, nil
	}

	for i, name := range names {
		if name == want {
			return i, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrNoSample, want)
}

func (r *Reader) readVariant() (*Row, error) {
	v := r.vcf.Read()
	if v == nil {
		if err := r.vcf.Error(); err != nil {
			if r.opts.Strict {
				return nil, pfx.Err(err)
			}
			if r.opts.Verbose {
				log.Printf("%s: %v\n", r.path, err)
			}
		}
		return nil, io.EOF
	}
	r.line++

	var id string
	for _, candidate := range strings.Split(v.Id(), ";") {
		if strings.HasPrefix(strings.ToLower(candidate), "rs") {
			id = candidate
			break
		}
	}
	if id == "" {
		return nil, errSkip
	}

	rsid, err := genome.ParseRSID(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedRow, err)
	}

	if r.sample >= len(v.Samples) || v.Samples[r.sample] == nil {
		return nil, fmt.Errorf("%w: %s has no genotype for sample %d", ErrMalformedRow, rsid, r.sample)
	}
	sample := v.Samples[r.sample]

	alleles := append([]string{v.Ref()}, v.Alt()...)
	letters := make([]byte, 0, len(sample.GT))
	for _, idx := range sample.GT {
		if idx < 0 {
			letters = append(letters, byte(genome.NoCall))
			continue
		}
		if idx >= len(alleles) {
			return nil, fmt.Errorf("%w: %s: allele index %d of %d", ErrMalformedRow, rsid, idx, len(alleles))
		}

		letter, ok := vcfLetter(alleles, idx)
		if !ok {
			return nil, errSkip
		}
		letters = append(letters, letter)
	}

	return r.finish(Row{
		RSID:     rsid,
		Position: uint32(v.Pos),
		Genotype: string(letters),
		Phased:   sample.Phased && len(letters) == 2,
	}, v.Chromosome)
}

// vcfLetter spells allele idx the way array exports do: the base itself at
// SNVs, and at indels I for the longest allele and D for any shorter one.
// Symbolic alleles have no such spelling.
func vcfLetter(alleles []string, idx int) (byte, bool) {
	longest := 0
	for _, a := range alleles {
		if strings.ContainsAny(a, "<>*.[]") {
			if a == alleles[idx] {
				return 0, false
			}
			continue
		}
		if len(a) > longest {
			longest = len(a)
		}
	}

	a := strings.ToUpper(alleles[idx])
	switch {
	case a == "":
		return 0, false
	case longest == 1:
		return a[0], true
	case len(a) == longest:
		return byte(genome.Insertion), true
	}
	return byte(genome.Deletion), true
}
