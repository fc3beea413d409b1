/*
Package verify checks an aligner's candidate alignments against trusted truth
alignments, one read at a time, and renders column-aligned diagnostics for
the reads where they disagree
*/
package verify

import (
	biogosam "github.com/biogo/hts/sam"

	"github.com/seq-qc/samcheck/pkg/nuc"
)

// Truth is one pre-existing, trusted alignment: a read together with the
// placement some earlier pipeline assigned it. It is read-only to everything
// in this package
type Truth struct {
	Name     string
	Contig   string
	Pos      int // 1-based
	Negative bool
	Cigar    biogosam.Cigar
	Bases    []byte
}

// NewTruth builds a Truth from a mapped SAM record
func NewTruth(rec *biogosam.Record) Truth {
	return Truth{
		Name:     rec.Name,
		Contig:   rec.Ref.Name(),
		Pos:      rec.Pos + 1,
		Negative: rec.Flags&biogosam.Reverse != 0,
		Cigar:    rec.Cigar,
		Bases:    rec.Seq.Expand(),
	}
}

// CanonicalQuery strips a truth record down to the forward-strand base
// sequence the aligner expects: the reverse complement of the stored bases
// for a negative-strand truth, a copy of them otherwise. Nothing positional
// survives into the output - the query is just bases
func CanonicalQuery(t Truth) []byte {
	if t.Negative {
		return nuc.ReverseComplement(t.Bases)
	}
	query := make([]byte, len(t.Bases))
	copy(query, t.Bases)
	return query
}
