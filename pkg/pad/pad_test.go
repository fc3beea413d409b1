package pad

import (
	"bytes"
	"errors"
	"testing"

	biogosam "github.com/biogo/hts/sam"
)

func TestRenderReadAgainstDeletions(t *testing.T) {
	c := biogosam.Cigar{
		biogosam.NewCigarOp(biogosam.CigarMatch, 5),
		biogosam.NewCigarOp(biogosam.CigarDeletion, 2),
		biogosam.NewCigarOp(biogosam.CigarMatch, 3),
	}

	got, err := Render([]byte("ACGTTCGA"), c, biogosam.CigarDeletion)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "ACGTT  CGA" {
		t.Errorf("got %q, want %q", got, "ACGTT  CGA")
	}
	if len(got) != 10 {
		t.Errorf("got %d columns, want 10", len(got))
	}
}

// rendering a read against deletion blanks and its reference span against
// insertion blanks must produce rows of equal length
func TestRenderRowsAlign(t *testing.T) {
	c := biogosam.Cigar{
		biogosam.NewCigarOp(biogosam.CigarMatch, 3),
		biogosam.NewCigarOp(biogosam.CigarInsertion, 2),
		biogosam.NewCigarOp(biogosam.CigarMatch, 2),
		biogosam.NewCigarOp(biogosam.CigarDeletion, 3),
		biogosam.NewCigarOp(biogosam.CigarMatch, 1),
	}

	// the read covers 3M+2I+2M+1M, the reference covers 3M+2M+3D+1M
	read := []byte("ACGTTCGA")
	reference := []byte("ACGCGTTTA")

	readRow, err := Render(read, c, biogosam.CigarDeletion)
	if err != nil {
		t.Fatal(err)
	}
	refRow, err := Render(reference, c, biogosam.CigarInsertion)
	if err != nil {
		t.Fatal(err)
	}

	if len(readRow) != len(refRow) {
		t.Errorf("rows don't align: %d vs %d columns", len(readRow), len(refRow))
	}
	if string(readRow) != "ACGTTCG   A" {
		t.Errorf("read row: got %q", readRow)
	}
	if string(refRow) != "ACG  CGTTTA" {
		t.Errorf("ref row: got %q", refRow)
	}
}

// removing the blanks from a rendering reproduces the source sequence
func TestRenderRoundTrip(t *testing.T) {
	c := biogosam.Cigar{
		biogosam.NewCigarOp(biogosam.CigarMatch, 4),
		biogosam.NewCigarOp(biogosam.CigarDeletion, 2),
		biogosam.NewCigarOp(biogosam.CigarMatch, 4),
	}

	src := []byte("ACGTACGT")
	row, err := Render(src, c, biogosam.CigarDeletion)
	if err != nil {
		t.Fatal(err)
	}

	stripped := bytes.ReplaceAll(row, []byte(" "), []byte(""))
	if !bytes.Equal(stripped, src) {
		t.Errorf("got %q, want %q", stripped, src)
	}
}

func TestRenderCursorOverrun(t *testing.T) {
	c := biogosam.Cigar{
		biogosam.NewCigarOp(biogosam.CigarMatch, 10),
	}

	_, err := Render([]byte("ACGT"), c, biogosam.CigarDeletion)
	if !errors.Is(err, ErrCursorOverrun) {
		t.Errorf("got %v, want ErrCursorOverrun", err)
	}
}
