package verify

import (
	"github.com/seq-qc/samcheck/pkg/align"
)

// SelectCandidate returns the candidate alignment that agrees with the
// truth's strand and 1-based start coordinate, both exactly. The second
// return is false when no candidate matches.
//
// The enumeration runs over every candidate in every tier and never exits
// early: when more than one candidate matches, the one enumerated last wins.
// Tier rank plays no part in the tie-break
func SelectCandidate(tiers align.TierSet, t Truth) (align.Alignment, bool) {
	var (
		found align.Alignment
		ok    bool
	)
	for _, candidate := range tiers.Flatten() {
		if candidate.Negative != t.Negative {
			continue
		}
		if candidate.Pos != t.Pos {
			continue
		}
		found = candidate.Alignment
		ok = true
	}
	return found, ok
}
