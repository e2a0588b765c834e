package names

import (
	"errors"
	"fmt"
)

// Pair is one inscribed record: a personal name and a second identifying name
// (usually the patronymic). Names are opaque and only compared for equality.
type Pair struct {
	First  string
	Second string
}

func (p Pair) String() string { return p.First + "," + p.Second }

// Set is an ordered, read-only sequence of records loaded from one source.
type Set []Pair

// ErrIndexOutOfRange is returned by Subset for a position outside the set.
var ErrIndexOutOfRange = errors.New("record index out of range")

// Subset returns the records at the given positions, in the order given.
func (s Set) Subset(idx []int) (Set, error) {
	out := make(Set, len(idx))
	for i, j := range idx {
		if j < 0 || j >= len(s) {
			return nil, fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, j, len(s))
		}
		out[i] = s[j]
	}
	return out, nil
}

// ErrMalformedLine is wrapped by every LineError.
var ErrMalformedLine = errors.New("malformed pair record")

// LineError reports a record that does not hold exactly two names.
type LineError struct {
	Path   string
	Line   int
	Fields int
}

func (e *LineError) Error() string {
	return fmt.Sprintf("%s:%d: expected 2 fields, got %d", e.Path, e.Line, e.Fields)
}

func (e *LineError) Unwrap() error { return ErrMalformedLine }
