/*
Package pad renders a flat base sequence as one row of a column-aligned
pairwise alignment, driven by a CIGAR.

One operation type is designated blank: its columns are rendered as spaces
and consume nothing from the source sequence. Every other operation's columns
are filled with the next bases from the source, in order. Rendering a read
against deletion blanks and the corresponding reference span against
insertion blanks yields two rows of equal length that can be eyeballed as a
vertical diff.
*/
package pad

import (
	"errors"
	"fmt"

	biogosam "github.com/biogo/hts/sam"
)

// ErrCursorOverrun means the CIGAR describes more non-blank columns than the
// source sequence has bases, i.e. the CIGAR and the sequence disagree about
// the read's length
var ErrCursorOverrun = errors.New("cigar describes more bases than the sequence contains")

const blank = ' '

// Render walks the CIGAR in order and returns the padded row. The output
// length is always the CIGAR's total column count
func Render(src []byte, c biogosam.Cigar, toBlank biogosam.CigarOpType) ([]byte, error) {
	out := make([]byte, 0, len(src))
	cursor := 0
	for _, op := range c {
		n := op.Len()
		if op.Type() == toBlank {
			for i := 0; i < n; i++ {
				out = append(out, blank)
			}
			continue
		}
		if cursor+n > len(src) {
			return nil, fmt.Errorf("%w: need %d, have %d", ErrCursorOverrun, cursor+n, len(src))
		}
		out = append(out, src[cursor:cursor+n]...)
		cursor += n
	}
	return out, nil
}
