package align

import (
	"errors"
	"io"
	"os"

	biogosam "github.com/biogo/hts/sam"
	"golang.org/x/exp/slices"

	"github.com/seq-qc/samcheck/pkg/nuc"
)

var (
	asTag = biogosam.NewTag("AS")
	nmTag = biogosam.NewTag("NM")
	xoTag = biogosam.NewTag("XO")
	xgTag = biogosam.NewTag("XG")
)

// SamAligner treats an aligner as a black box by answering queries from the
// aligner's own SAM output. All the mappings for one read (primary,
// secondary, supplementary) become that read's candidates, tiered by
// alignment score (the AS tag, falling back to mapping quality), best tier
// first.
//
// Candidates are keyed by the canonical forward-strand query sequence, which
// is also what callers are expected to query with, so no read-name plumbing
// crosses the aligner boundary
type SamAligner struct {
	byQuery map[string]TierSet
}

type scoredAlignment struct {
	score     int
	alignment Alignment
}

// NewSamAligner reads a whole SAM stream of candidate alignments and indexes
// it for querying. Unmapped records are skipped with a notice on stderr
func NewSamAligner(f io.Reader) (*SamAligner, error) {
	s, err := biogosam.NewReader(f)
	if err != nil {
		return nil, err
	}

	table := make(map[string][]scoredAlignment)

	for {
		rec, err := s.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}

		if rec.Flags&biogosam.Unmapped != 0 {
			os.Stderr.WriteString("skipping unmapped candidate record: " + rec.Name + "\n")
			continue
		}
		if rec.Ref == nil {
			return nil, errors.New("mapped candidate record with no reference: " + rec.Name)
		}

		// SEQ is stored reference-forward, so a reverse-strand mapping's
		// canonical query is its reverse complement
		query := rec.Seq.Expand()
		if rec.Flags&biogosam.Reverse != 0 {
			query = nuc.ReverseComplement(query)
		}

		gapOpens, gapExtensions := gapCounts(rec)

		sa := scoredAlignment{
			score: auxInt(rec, asTag, int(rec.MapQ)),
			alignment: Alignment{
				Contig:        rec.Ref.Name(),
				Pos:           rec.Pos + 1,
				Negative:      rec.Flags&biogosam.Reverse != 0,
				Cigar:         rec.Cigar,
				Mismatches:    auxInt(rec, nmTag, 0),
				GapOpens:      gapOpens,
				GapExtensions: gapExtensions,
			},
		}

		table[string(query)] = append(table[string(query)], sa)
	}

	byQuery := make(map[string]TierSet)
	for query, candidates := range table {
		slices.SortStableFunc(candidates, func(a, b scoredAlignment) bool {
			return a.score > b.score
		})
		var tiers TierSet
		for i, c := range candidates {
			if i == 0 || c.score != candidates[i-1].score {
				tiers = append(tiers, Tier{})
			}
			tiers[len(tiers)-1] = append(tiers[len(tiers)-1], c.alignment)
		}
		byQuery[query] = tiers
	}

	return &SamAligner{byQuery: byQuery}, nil
}

// GetAllAlignments returns the indexed candidates for a canonical query
// sequence. A query with no mappings gets an empty TierSet
func (a *SamAligner) GetAllAlignments(query []byte) (TierSet, error) {
	return a.byQuery[string(query)], nil
}

// gapCounts returns the number of gap openings and gap extensions for a
// record, from the XO/XG tags when the aligner wrote them, otherwise derived
// from the CIGAR (each indel element opens one gap, and every base beyond
// its first extends it)
func gapCounts(rec *biogosam.Record) (int, int) {
	opens, extensions := 0, 0
	for _, op := range rec.Cigar {
		if op.Type() == biogosam.CigarInsertion || op.Type() == biogosam.CigarDeletion {
			opens++
			extensions += op.Len() - 1
		}
	}
	return auxInt(rec, xoTag, opens), auxInt(rec, xgTag, extensions)
}

// auxInt returns an integer-valued aux tag, or def if the tag is absent or
// not an integer
func auxInt(rec *biogosam.Record, tag biogosam.Tag, def int) int {
	aux := rec.AuxFields.Get(tag)
	if aux == nil {
		return def
	}
	switch v := aux.Value().(type) {
	case int8:
		return int(v)
	case uint8:
		return int(v)
	case int16:
		return int(v)
	case uint16:
		return int(v)
	case int32:
		return int(v)
	case uint32:
		return int(v)
	case int:
		return v
	}
	return def
}
