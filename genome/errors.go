package genome

import "errors"

var (
	// ErrInvalidRSID is returned for lookup keys that are not "rs<N>" or a
	// positive integer.
	ErrInvalidRSID = errors.New("invalid RSID")

	// ErrInvalidGenotype is returned when a raw genotype contains letters
	// outside of the nucleotide alphabet, or more than two of them.
	ErrInvalidGenotype = errors.New("invalid genotype")

	// ErrInvalidOrientation is returned for orientations other than +1 or -1.
	ErrInvalidOrientation = errors.New("orientation must be +1 or -1")

	// ErrUnsupportedComparison is returned by SNP.Compare when asked to
	// compare against a type it does not understand.
	ErrUnsupportedComparison = errors.New("unsupported comparison type")
)
