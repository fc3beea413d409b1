package cigar

import (
	"errors"
	"testing"

	biogosam "github.com/biogo/hts/sam"
)

func TestLengths(t *testing.T) {
	c := biogosam.Cigar{
		biogosam.NewCigarOp(biogosam.CigarMatch, 5),
		biogosam.NewCigarOp(biogosam.CigarDeletion, 2),
		biogosam.NewCigarOp(biogosam.CigarMatch, 3),
	}

	if QueryLength(c) != 8 {
		t.Errorf("QueryLength: got %d, want 8", QueryLength(c))
	}
	if ReferenceLength(c) != 10 {
		t.Errorf("ReferenceLength: got %d, want 10", ReferenceLength(c))
	}
	if OpLength(c, biogosam.CigarDeletion) != 2 {
		t.Errorf("OpLength(D): got %d, want 2", OpLength(c, biogosam.CigarDeletion))
	}
	if Columns(c) != 10 {
		t.Errorf("Columns: got %d, want 10", Columns(c))
	}
}

// for any cigar without insertions, the deletion length plus the query
// length equals the reference length
func TestDeletionLengthInvariant(t *testing.T) {
	cigars := []biogosam.Cigar{
		{
			biogosam.NewCigarOp(biogosam.CigarMatch, 5),
			biogosam.NewCigarOp(biogosam.CigarDeletion, 2),
			biogosam.NewCigarOp(biogosam.CigarMatch, 3),
		},
		{
			biogosam.NewCigarOp(biogosam.CigarDeletion, 7),
		},
		{
			biogosam.NewCigarOp(biogosam.CigarMatch, 100),
		},
	}

	for _, c := range cigars {
		if OpLength(c, biogosam.CigarDeletion)+QueryLength(c) != ReferenceLength(c) {
			t.Errorf("invariant broken for %s", c.String())
		}
	}
}

func TestInsertionLengths(t *testing.T) {
	c := biogosam.Cigar{
		biogosam.NewCigarOp(biogosam.CigarMatch, 2),
		biogosam.NewCigarOp(biogosam.CigarInsertion, 1),
		biogosam.NewCigarOp(biogosam.CigarMatch, 3),
	}

	if QueryLength(c) != 6 {
		t.Errorf("QueryLength: got %d, want 6", QueryLength(c))
	}
	if ReferenceLength(c) != 5 {
		t.Errorf("ReferenceLength: got %d, want 5", ReferenceLength(c))
	}
}

func TestValidate(t *testing.T) {
	good := biogosam.Cigar{
		biogosam.NewCigarOp(biogosam.CigarMatch, 5),
		biogosam.NewCigarOp(biogosam.CigarSoftClipped, 2),
	}
	if err := Validate(good); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	zeroLength := biogosam.Cigar{
		biogosam.NewCigarOp(biogosam.CigarMatch, 0),
	}
	if err := Validate(zeroLength); !errors.Is(err, ErrMalformedCigar) {
		t.Errorf("got %v, want ErrMalformedCigar", err)
	}

	unknownOp := biogosam.Cigar{
		biogosam.NewCigarOp(biogosam.CigarOpType(12), 5),
	}
	if err := Validate(unknownOp); !errors.Is(err, ErrMalformedCigar) {
		t.Errorf("got %v, want ErrMalformedCigar", err)
	}
}
