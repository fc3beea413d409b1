/*
Package quals compares per-locus base-quality sums between two SAM streams
over the same reference - typically an original file and a reduced
(compressed) rendition of it - and emits the intervals where the two
disagree by more than a tolerance.

A locus passes when the reduced stream's quality sum is close enough to the
original's, or when both clear a sufficient-quality threshold outright.
Contiguous failing loci are merged into intervals before being written
*/
package quals

import (
	"fmt"
	"io"
	"math"
	"os"

	biogosam "github.com/biogo/hts/sam"
	"github.com/willf/bitset"
	"golang.org/x/exp/slices"
)

const (
	minBaseQuality    = 20
	minMappingQuality = 20
)

// Options configures an assessment
type Options struct {
	Original          io.Reader // SAM stream of the original alignments
	Reduced           io.Reader // SAM stream of the reduced alignments
	Out               io.Writer
	SufficientQualSum int     // quality sums are clamped to this before comparison
	Epsilon           float64 // tolerated fraction of the original quality sum
}

// An Interval is a 1-based inclusive range of reference positions
type Interval struct {
	Start, End int
}

// String renders an interval the way interval lists are usually written:
// contig omitted, single-locus intervals as a bare position
func (iv Interval) String() string {
	if iv.Start == iv.End {
		return fmt.Sprintf("%d", iv.Start)
	}
	return fmt.Sprintf("%d-%d", iv.Start, iv.End)
}

// Assess accumulates per-locus quality sums for both streams, flags the loci
// where they differ by more than the tolerance, and writes the flagged
// intervals one per line as contig:start-end
func Assess(opts Options) error {

	original, err := accumulate(opts.Original, true)
	if err != nil {
		return err
	}
	reduced, err := accumulate(opts.Reduced, false)
	if err != nil {
		return err
	}

	// the two headers may order (or even mention) contigs differently, so
	// take the union and emit it sorted by name
	seen := make(map[string]bool)
	for contig := range original {
		seen[contig] = true
	}
	for contig := range reduced {
		seen[contig] = true
	}
	contigs := make([]string, 0, len(seen))
	for contig := range seen {
		contigs = append(contigs, contig)
	}
	slices.Sort(contigs)

	for _, contig := range contigs {
		originalSums := original[contig]
		reducedSums := reduced[contig]

		n := len(originalSums)
		if len(reducedSums) > n {
			n = len(reducedSums)
		}

		flagged := bitset.New(uint(n))
		for pos := 0; pos < n; pos++ {
			originalSum, reducedSum := 0, 0
			if pos < len(originalSums) {
				originalSum = originalSums[pos]
			}
			if pos < len(reducedSums) {
				reducedSum = reducedSums[pos]
			}
			if differ(originalSum, reducedSum, opts.SufficientQualSum, opts.Epsilon) {
				flagged.Set(uint(pos))
			}
		}

		for _, iv := range runs(flagged) {
			fmt.Fprintf(opts.Out, "%s:%s\n", contig, iv)
		}
	}

	return nil
}

// differ reports whether a locus should be flagged. Sums are clamped to the
// sufficient threshold first, so two loci that both have plenty of quality
// never differ however lopsided their totals are
func differ(originalSum, reducedSum, sufficient int, epsilonFraction float64) bool {
	epsilon := int(math.Round(float64(originalSum) * epsilonFraction))
	diff := min(originalSum, sufficient) - min(reducedSum, sufficient)
	return diff > epsilon || diff < -epsilon
}

// accumulate walks one SAM stream and sums base qualities per reference
// position. When strict is true (the original stream), bases below the
// quality cutoffs are left out; the reduced stream is exempt because its
// qualities are synthetic. Deletion and skip columns never contribute
func accumulate(f io.Reader, strict bool) (map[string][]int, error) {

	s, err := biogosam.NewReader(f)
	if err != nil {
		return nil, err
	}

	sums := make(map[string][]int)

	for {
		rec, err := s.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}

		if rec.Flags&biogosam.Unmapped != 0 {
			continue
		}
		if rec.Flags&biogosam.Secondary != 0 {
			os.Stderr.WriteString("ignoring secondary mapping: " + rec.Name + "\n")
			continue
		}
		if strict && int(rec.MapQ) < minMappingQuality {
			continue
		}

		contig := rec.Ref.Name()
		sum, ok := sums[contig]
		if !ok {
			sum = make([]int, rec.Ref.Len())
			sums[contig] = sum
		}

		quals := rec.Qual
		q, rp := 0, rec.Pos

		for _, op := range rec.Cigar {
			n := op.Len()
			consumes := op.Type().Consumes()
			switch {
			case consumes.Query == 1 && consumes.Reference == 1:
				for i := 0; i < n; i++ {
					if rp+i >= len(sum) || q+i >= len(quals) {
						break
					}
					qual := int(quals[q+i])
					if strict && qual < minBaseQuality {
						continue
					}
					sum[rp+i] += qual
				}
				q += n
				rp += n
			case consumes.Query == 1:
				q += n
			case consumes.Reference == 1:
				rp += n
			}
		}
	}

	return sums, nil
}

// runs converts the set of flagged positions (0-based) into merged 1-based
// intervals, one per maximal run of consecutive set bits
func runs(flagged *bitset.BitSet) []Interval {
	intervals := make([]Interval, 0)
	i, ok := flagged.NextSet(0)
	for ok {
		start := i
		end := i
		var next uint
		for {
			next, ok = flagged.NextSet(end + 1)
			if !ok || next != end+1 {
				break
			}
			end = next
		}
		intervals = append(intervals, Interval{Start: int(start) + 1, End: int(end) + 1})
		i = next
	}
	return intervals
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
