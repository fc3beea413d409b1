package verify

import (
	"errors"
	"fmt"
	"io"

	biogosam "github.com/biogo/hts/sam"

	"github.com/seq-qc/samcheck/pkg/align"
	"github.com/seq-qc/samcheck/pkg/cigar"
	"github.com/seq-qc/samcheck/pkg/pad"
	"github.com/seq-qc/samcheck/pkg/ref"
)

// Report writes one diagnostic block for a read whose candidates all failed
// to match the truth: the truth alignment rendered as aligned read/reference
// rows, followed by the same rendering for every candidate in every tier,
// matching or not, so the placements can be compared by eye.
//
// The read row is padded against deletion blanks (deletions consume
// reference, not read) and the reference row against insertion blanks. A
// reference fetch or rendering that fails for one candidate marks that row
// unavailable and the block carries on. Report never touches any counters;
// those belong to the run driver.
//
// Report returns pad.ErrCursorOverrun if the truth's own CIGAR can't render
// its bases - the caller should skip the record
func Report(w io.Writer, t Truth, store ref.Store, tiers align.TierSet) error {
	readRow, err := pad.Render(t.Bases, t.Cigar, biogosam.CigarDeletion)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "alignment mismatch for read %s\n", t.Name)
	fmt.Fprintf(w, "read          = %s, position = %d, negative strand = %t\n", readRow, t.Pos, t.Negative)

	refRow, err := renderReference(store, t.Contig, t.Pos, len(t.Bases), t.Cigar)
	switch {
	case err == nil:
		fmt.Fprintf(w, "expected ref  = %s\n", refRow)
	case errors.Is(err, ref.ErrOutOfRange):
		fmt.Fprintf(w, "expected ref  = (unavailable: %v)\n", err)
	default:
		return err
	}

	for _, candidate := range tiers.Flatten() {
		fmt.Fprintln(w)

		readRow, err := pad.Render(t.Bases, candidate.Cigar, biogosam.CigarDeletion)
		if err != nil {
			fmt.Fprintf(w, "read          = (unavailable: %v)\n", err)
		} else {
			fmt.Fprintf(w, "read          = %s\n", readRow)
		}

		refRow, err := renderReference(store, candidate.Contig, candidate.Pos, len(t.Bases), candidate.Cigar)
		switch {
		case err == nil:
			fmt.Fprintf(w, "actual ref    = %s, position = %d, negative strand = %t\n", refRow, candidate.Pos, candidate.Negative)
		case errors.Is(err, ref.ErrOutOfRange) || errors.Is(err, pad.ErrCursorOverrun):
			fmt.Fprintf(w, "actual ref    = (unavailable: %v), position = %d, negative strand = %t\n", err, candidate.Pos, candidate.Negative)
		default:
			return err
		}
	}

	return nil
}

// renderReference fetches the reference span an alignment covers and pads it
// against insertion blanks. Deletions lengthen the span relative to the
// read, because deleted bases are present in the reference but absent from
// the read
func renderReference(store ref.Store, contig string, pos, readLen int, c biogosam.Cigar) ([]byte, error) {
	deletions := cigar.OpLength(c, biogosam.CigarDeletion)
	sub, err := store.FetchSubsequence(contig, pos, pos+readLen+deletions-1)
	if err != nil {
		return nil, err
	}
	return pad.Render(sub, c, biogosam.CigarInsertion)
}
