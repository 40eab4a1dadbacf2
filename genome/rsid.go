package genome

import (
	"fmt"
	"strconv"
	"strings"
)

// RSID is the numeric part of a dbSNP reference identifier. The zero value is
// not a valid RSID.
type RSID uint32

// ParseRSID accepts "rs123" (any case of the prefix) and returns 123.
func ParseRSID(key string) (RSID, error) {
	key = strings.TrimSpace(key)
	if len(key) < 3 || !strings.EqualFold(key[:2], "rs") {
		return 0, fmt.Errorf("%w: %q", ErrInvalidRSID, key)
	}

	n, err := strconv.ParseUint(key[2:], 10, 32)
	if err != nil || n == 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidRSID, key)
	}

	return RSID(n), nil
}

// RSIDFromInt validates an integer key.
func RSIDFromInt(n int64) (RSID, error) {
	if n <= 0 || n > int64(^uint32(0)) {
		return 0, fmt.Errorf("%w: %d", ErrInvalidRSID, n)
	}

	return RSID(n), nil
}

func (r RSID) String() string {
	return "rs" + strconv.FormatUint(uint64(r), 10)
}

// Orientation is the strand a genome export was reported on.
type Orientation int8

const (
	Negative Orientation = -1
	Positive Orientation = 1
)

func (o Orientation) Valid() bool {
	return o == Positive || o == Negative
}

// Flip returns the opposite strand.
func (o Orientation) Flip() Orientation {
	return -o
}

func (o Orientation) String() string {
	if o < 0 {
		return "-1"
	}
	return "+1"
}
