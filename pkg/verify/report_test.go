package verify

import (
	"bytes"
	"testing"

	biogosam "github.com/biogo/hts/sam"

	"github.com/seq-qc/samcheck/pkg/align"
	"github.com/seq-qc/samcheck/pkg/ref"
)

// AAAACGTTCCGGAACGTT, 1-based:
// position 3-6 = AACG, position 5-8 = CGTT
func testStore(t *testing.T) *ref.FileStore {
	t.Helper()
	store, err := ref.Load(bytes.NewReader([]byte(">ref\nAAAACGTTCCGGAACGTT\n")))
	if err != nil {
		t.Fatal(err)
	}
	return store
}

func TestReport(t *testing.T) {
	store := testStore(t)

	truth := Truth{
		Name:   "read1",
		Contig: "ref",
		Pos:    3,
		Cigar:  cigar4M(),
		Bases:  []byte("TTTT"),
	}

	tiers := align.TierSet{
		{align.Alignment{Contig: "ref", Pos: 5, Cigar: cigar4M()}},
	}

	out := new(bytes.Buffer)
	if err := Report(out, truth, store, tiers); err != nil {
		t.Fatal(err)
	}

	want := `alignment mismatch for read read1
read          = TTTT, position = 3, negative strand = false
expected ref  = AACG

read          = TTTT
actual ref    = CGTT, position = 5, negative strand = false
`
	if out.String() != want {
		t.Errorf("got:\n%s\nwant:\n%s", out.String(), want)
	}
}

// deletions in the truth cigar lengthen the fetched reference span, and both
// rows come out the same length
func TestReportWithDeletion(t *testing.T) {
	store := testStore(t)

	truth := Truth{
		Name:   "read2",
		Contig: "ref",
		Pos:    1,
		Cigar: biogosam.Cigar{
			biogosam.NewCigarOp(biogosam.CigarMatch, 2),
			biogosam.NewCigarOp(biogosam.CigarDeletion, 2),
			biogosam.NewCigarOp(biogosam.CigarMatch, 2),
		},
		Bases: []byte("AACG"),
	}

	out := new(bytes.Buffer)
	if err := Report(out, truth, store, align.TierSet{}); err != nil {
		t.Fatal(err)
	}

	want := `alignment mismatch for read read2
read          = AA  CG, position = 1, negative strand = false
expected ref  = AAAACG
`
	if out.String() != want {
		t.Errorf("got:\n%s\nwant:\n%s", out.String(), want)
	}
}

// a candidate that runs off the end of the contig gets its row marked
// unavailable, and the block carries on
func TestReportOutOfRangeCandidate(t *testing.T) {
	store := testStore(t)

	truth := Truth{
		Name:   "read3",
		Contig: "ref",
		Pos:    3,
		Cigar:  cigar4M(),
		Bases:  []byte("TTTT"),
	}

	tiers := align.TierSet{
		{align.Alignment{Contig: "ref", Pos: 17, Cigar: cigar4M()}},
	}

	out := new(bytes.Buffer)
	if err := Report(out, truth, store, tiers); err != nil {
		t.Fatal(err)
	}

	if !bytes.Contains(out.Bytes(), []byte("actual ref    = (unavailable:")) {
		t.Errorf("expected an unavailable actual ref row, got:\n%s", out.String())
	}
	if !bytes.Contains(out.Bytes(), []byte("position = 17")) {
		t.Errorf("expected the candidate position to survive, got:\n%s", out.String())
	}
}
