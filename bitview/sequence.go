package bitview

import (
	"fmt"

	"github.com/wippyai/bitparse/errors"
	"github.com/wippyai/bitparse/internal/bits"
)

// Sequence is an immutable big-endian bit sequence.
type Sequence struct {
	data []byte
	n    int
}

// NewSequence wraps data as a sequence of 8*len(data) bits. The slice is
// aliased, not copied.
func NewSequence(data []byte) *Sequence {
	return &Sequence{data: data, n: len(data) * 8}
}

// ParseSequence builds a sequence from a textual bit literal such as
// "1011_0010". Underscores and whitespace are ignored.
func ParseSequence(s string) (*Sequence, error) {
	w := bits.NewWriter()
	for i, r := range s {
		switch r {
		case '0', '1':
			if err := w.WriteBit(r == '1'); err != nil {
				return nil, err
			}
		case '_', ' ', '\t', '\n', '\r':
		default:
			return nil, errors.New(errors.PhaseParse, errors.KindInvalidArgument).
				Value(string(r)).
				Detail("invalid bit character %q at offset %d", r, i).
				Build()
		}
	}
	n := w.Len()
	data, err := w.Bytes()
	if err != nil {
		return nil, err
	}
	return &Sequence{data: data, n: n}, nil
}

// MustParseSequence is like ParseSequence but panics on error.
func MustParseSequence(s string) *Sequence {
	seq, err := ParseSequence(s)
	if err != nil {
		panic(fmt.Sprintf("bitview: %v", err))
	}
	return seq
}

// Len returns the number of bits in the sequence.
func (s *Sequence) Len() int {
	if s == nil {
		return 0
	}
	return s.n
}

func (s *Sequence) bit(i int) byte {
	return bits.Bit(s.data, i)
}
