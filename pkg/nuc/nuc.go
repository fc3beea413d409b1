/*
Package nuc provides nucleotide-level helpers for raw base sequences:
complementing and reverse complementing
*/
package nuc

// MakeCompArray returns a lookup from a nucleotide to its complement.
// Case is preserved, and symbols outside ATGC/atgc (ambiguity codes, gaps)
// map to themselves, so e.g. an N stays an N
func MakeCompArray() [256]byte {
	var CA [256]byte
	for i := 0; i < 256; i++ {
		CA[i] = byte(i)
	}
	CA['A'] = 'T'
	CA['T'] = 'A'
	CA['G'] = 'C'
	CA['C'] = 'G'
	CA['a'] = 't'
	CA['t'] = 'a'
	CA['g'] = 'c'
	CA['c'] = 'g'
	return CA
}

// Complement returns the complement of seq, as a new slice
func Complement(seq []byte) []byte {
	CA := MakeCompArray()
	comp := make([]byte, len(seq))
	for i := 0; i < len(seq); i++ {
		comp[i] = CA[seq[i]]
	}
	return comp
}

// ReverseComplement returns the reverse complement of seq, as a new slice
func ReverseComplement(seq []byte) []byte {
	rc := Complement(seq)
	for i, j := 0, len(rc)-1; i < j; i, j = i+1, j-1 {
		rc[i], rc[j] = rc[j], rc[i]
	}
	return rc
}
