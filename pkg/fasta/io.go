package fasta

import (
	"bufio"
	"bytes"
	"errors"
	"io"
)

var errBadlyFormedFasta = errors.New("badly formed fasta file")

type Reader struct {
	*bufio.Reader
}

func NewReader(f io.Reader) *Reader {
	return &Reader{bufio.NewReader(f)}
}

// Read reads one fasta record from the underlying reader. The final record is
// returned with error = nil, and the next call to Read() returns an empty
// Record struct and error = io.EOF.
func (r *Reader) Read() (Record, error) {

	var (
		buffer, line, peek []byte
		err                error
		FR                 Record
	)

	first := true

	for {
		if first {
			line, err = r.ReadBytes('\n')

			// the file should never end on a fasta header line
			if err != nil {
				return Record{}, err
			} else if line[0] != '>' {
				return Record{}, errBadlyFormedFasta
			}

			line = dropNewline(line)

			// the ID is the header up to the first whitespace
			fields := bytes.Fields(line[1:])
			if len(fields) == 0 {
				return Record{}, errBadlyFormedFasta
			}
			FR.ID = string(fields[0])
			FR.Description = string(line[1:])

			first = false

		} else {
			// peek at the next byte of the underlying reader, to see if we've
			// reached the end of this record (or the file)
			peek, err = r.Peek(1)

			if err == io.EOF || peek[0] == '>' {
				err = nil
				break
			} else if err != nil {
				return Record{}, err
			}

			// this should be a sequence line. io.EOF from ReadBytes is okay
			// here because the peek above will catch it next time round
			line, err = r.ReadBytes('\n')
			if err != nil && err != io.EOF {
				return Record{}, err
			}

			buffer = append(buffer, dropNewline(line)...)
		}
	}
	FR.Seq = string(buffer)

	return FR, err
}

// dropNewline strips unix or dos newline characters from the end of a line
func dropNewline(line []byte) []byte {
	drop := 0
	if len(line) > 0 && line[len(line)-1] == '\n' {
		drop = 1
		if len(line) > 1 && line[len(line)-2] == '\r' {
			drop = 2
		}
	}
	return line[:len(line)-drop]
}
