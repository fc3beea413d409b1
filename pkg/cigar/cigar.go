/*
Package cigar provides length arithmetic over SAM CIGARs: how many query
bases, reference bases, or bases of one particular operation type a CIGAR
describes
*/
package cigar

import (
	"errors"
	"fmt"

	biogosam "github.com/biogo/hts/sam"
)

// ErrMalformedCigar means a CIGAR contains an element with a non-positive
// length or an unrecognised operation code. This signals corrupt input data,
// so callers should treat it as fatal
var ErrMalformedCigar = errors.New("malformed cigar")

// Validate checks every element of a CIGAR for a positive length and a known
// operation code
func Validate(c biogosam.Cigar) error {
	for i, op := range c {
		if op.Type() > biogosam.CigarBack {
			return fmt.Errorf("%w: unknown operation code in element %d", ErrMalformedCigar, i)
		}
		if op.Len() <= 0 {
			return fmt.Errorf("%w: element %d has length %d", ErrMalformedCigar, i, op.Len())
		}
	}
	return nil
}

// QueryLength returns the number of query bases consumed by a CIGAR
func QueryLength(c biogosam.Cigar) int {
	length := 0
	for _, op := range c {
		length += op.Len() * op.Type().Consumes().Query
	}
	return length
}

// ReferenceLength returns the number of reference bases consumed by a CIGAR
func ReferenceLength(c biogosam.Cigar) int {
	length := 0
	for _, op := range c {
		if op.Type() == biogosam.CigarBack {
			continue
		}
		length += op.Len() * op.Type().Consumes().Reference
	}
	return length
}

// OpLength returns the total length of all elements of one operation type.
// OpLength(c, sam.CigarDeletion) is the number of extra reference bases an
// alignment spans relative to its read
func OpLength(c biogosam.Cigar, t biogosam.CigarOpType) int {
	length := 0
	for _, op := range c {
		if op.Type() == t {
			length += op.Len()
		}
	}
	return length
}

// Columns returns the total column count of a CIGAR (the sum of all element
// lengths, whatever they consume)
func Columns(c biogosam.Cigar) int {
	length := 0
	for _, op := range c {
		length += op.Len()
	}
	return length
}
