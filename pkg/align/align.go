/*
Package align defines candidate alignments as produced by an aligner, grouped
into quality-ranked tiers, and the boundary a verification run drives the
aligner through
*/
package align

import (
	biogosam "github.com/biogo/hts/sam"
)

// Alignment is one candidate placement of a query sequence on the reference.
// Pos is the 1-based leftmost reference coordinate. Alignments are values:
// once produced by an aligner they are never modified
type Alignment struct {
	Contig        string
	Pos           int
	Negative      bool
	Cigar         biogosam.Cigar
	Mismatches    int
	GapOpens      int
	GapExtensions int
}

// A Tier is a set of equally-ranked candidate alignments. Order within a
// tier carries no meaning
type Tier []Alignment

// A TierSet is an aligner's complete answer for one query: its tiers in
// quality order, best first
type TierSet []Tier

// A Candidate is one alignment paired with the index of the tier it came
// from
type Candidate struct {
	Tier int
	Alignment
}

// Flatten expands the two-level tier structure into a single sequence of
// candidates: tiers in rank order, alignments in within-tier order. Code
// that cares about enumeration order (the selector's tie-break does) should
// iterate this rather than nesting its own loops
func (ts TierSet) Flatten() []Candidate {
	candidates := make([]Candidate, 0)
	for i, tier := range ts {
		for _, a := range tier {
			candidates = append(candidates, Candidate{Tier: i, Alignment: a})
		}
	}
	return candidates
}

// An Aligner maps a forward-strand query sequence to every candidate
// alignment it can find, in ranked tiers. An empty TierSet means the aligner
// could not place the query at all
type Aligner interface {
	GetAllAlignments(query []byte) (TierSet, error)
}
