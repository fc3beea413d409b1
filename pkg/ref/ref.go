/*
Package ref provides random access to reference subsequences by contig name
and 1-based coordinate range
*/
package ref

import (
	"errors"
	"fmt"
	"io"

	"github.com/seq-qc/samcheck/pkg/fasta"
)

// ErrOutOfRange means a requested interval falls outside the bounds of the
// named contig (or the contig doesn't exist at all)
var ErrOutOfRange = errors.New("reference interval out of range")

var (
	errEmptyReference  = errors.New("no sequences in reference file")
	errDuplicateContig = errors.New("duplicate contig in reference file")
)

// A Store answers subsequence queries against a set of reference contigs.
// Coordinates are 1-based and inclusive at both ends
type Store interface {
	FetchSubsequence(contig string, start, end int) ([]byte, error)
}

// FileStore is a Store holding a whole reference in memory, one sequence per
// contig. It is intended to be loaded once and shared for the duration of a
// run
type FileStore struct {
	contigs map[string][]byte
}

// Load reads fasta-format reference sequences into a FileStore. A contig ID
// that appears more than once is an error
func Load(f io.Reader) (*FileStore, error) {
	contigs := make(map[string][]byte)
	r := fasta.NewReader(f)
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if _, ok := contigs[record.ID]; ok {
			return nil, fmt.Errorf("%w: %s", errDuplicateContig, record.ID)
		}
		contigs[record.ID] = []byte(record.Seq)
	}
	if len(contigs) == 0 {
		return nil, errEmptyReference
	}
	return &FileStore{contigs: contigs}, nil
}

// FetchSubsequence returns a copy of the bases in [start, end] on the named
// contig
func (s *FileStore) FetchSubsequence(contig string, start, end int) ([]byte, error) {
	seq, ok := s.contigs[contig]
	if !ok {
		return nil, fmt.Errorf("%w: no such contig %q", ErrOutOfRange, contig)
	}
	if start < 1 || end > len(seq) || start > end {
		return nil, fmt.Errorf("%w: %s:%d-%d (contig is %d bases)", ErrOutOfRange, contig, start, end, len(seq))
	}
	sub := make([]byte, end-start+1)
	copy(sub, seq[start-1:end])
	return sub, nil
}

// Close releases the store's sequences
func (s *FileStore) Close() error {
	s.contigs = nil
	return nil
}
