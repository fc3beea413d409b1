/*
Package fasta reads fasta-format sequence files, one record at a time
*/
package fasta

// A struct for one Fasta record
type Record struct {
	ID          string
	Description string
	Seq         string
}
