package verify

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	biogosam "github.com/biogo/hts/sam"

	"github.com/seq-qc/samcheck/pkg/align"
	"github.com/seq-qc/samcheck/pkg/cigar"
	"github.com/seq-qc/samcheck/pkg/pad"
	"github.com/seq-qc/samcheck/pkg/ref"
)

// Options configures a verification run
type Options struct {
	Truth         io.Reader // SAM stream of truth alignments
	Aligner       align.Aligner
	Ref           ref.Store
	Out           io.Writer
	MaxReads      int // stop after this many truth reads; 0 means no cap
	ProgressEvery int // progress line cadence in reads; 0 means no progress lines
	Threads       int
}

// Result carries a run's counters
type Result struct {
	Examined   int
	Mismatches int
	Failures   int
	Skipped    int
}

type job struct {
	idx   int
	truth Truth
}

type outcomeKind int

const (
	outcomeOK outcomeKind = iota
	outcomeFailure
	outcomeMismatch
	outcomeSkipped
)

// outcome is the result of verifying one read. text holds the diagnostic
// block for a mismatch, or the reason for a skip
type outcome struct {
	idx  int
	kind outcomeKind
	name string
	text string
}

// Run streams truth records, verifies each against the aligner's candidates,
// and writes diagnostics and a final summary to opts.Out. Records are fanned
// out across opts.Threads workers; outcomes are put back in input order
// before anything is written or counted, so output and counters are
// deterministic regardless of thread count.
//
// Unmapped and secondary truth records are passed over with a notice on
// stderr and are not examined. A malformed CIGAR aborts the run; every other
// per-read problem is counted or skipped and the run carries on
func Run(opts Options) (Result, error) {

	threads := opts.Threads
	if threads < 1 {
		threads = 1
	}

	cJob := make(chan job, threads)
	cOut := make(chan outcome, threads)
	cErr := make(chan error)
	cReadDone := make(chan bool)
	cWorkersDone := make(chan bool)
	cResult := make(chan Result)

	go readTruth(opts.Truth, opts.MaxReads, cJob, cReadDone, cErr)

	var wg sync.WaitGroup
	wg.Add(threads)

	for n := 0; n < threads; n++ {
		go func() {
			defer wg.Done()
			for j := range cJob {
				o, err := processTruth(j.truth, opts.Aligner, opts.Ref)
				if err != nil {
					cErr <- err
					return
				}
				o.idx = j.idx
				cOut <- o
			}
		}()
	}

	go func() {
		wg.Wait()
		cWorkersDone <- true
	}()

	go collectOutcomes(cOut, opts.Out, opts.ProgressEvery, cResult)

	for n := 1; n > 0; {
		select {
		case err := <-cErr:
			return Result{}, err
		case <-cReadDone:
			close(cJob)
			n--
		}
	}

	for n := 1; n > 0; {
		select {
		case err := <-cErr:
			return Result{}, err
		case <-cWorkersDone:
			close(cOut)
			n--
		}
	}

	result := <-cResult

	fmt.Fprintf(opts.Out, "%d reads examined; %d mismatches; %d failures.\n",
		result.Examined, result.Mismatches, result.Failures)

	return result, nil
}

// readTruth parses the truth SAM stream and sends one indexed job per
// examined record. Unmapped and secondary records are skipped here, the same
// way they would be skipped when flattening a SAM file to an alignment
func readTruth(f io.Reader, maxReads int, cJob chan job, cDone chan bool, cErr chan error) {

	s, err := biogosam.NewReader(f)
	if err != nil {
		cErr <- err
		return
	}

	count := 0

	for {
		if maxReads > 0 && count >= maxReads {
			break
		}

		rec, err := s.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			cErr <- err
			return
		}

		if rec.Flags&biogosam.Unmapped != 0 {
			os.Stderr.WriteString("skipping unmapped read: " + rec.Name + "\n")
			continue
		}
		if rec.Flags&biogosam.Secondary != 0 {
			os.Stderr.WriteString("ignoring secondary mapping: " + rec.Name + "\n")
			continue
		}

		cJob <- job{idx: count, truth: NewTruth(rec)}
		count++
	}

	cDone <- true
}

// processTruth verifies one truth record. The error return is reserved for
// conditions that should abort the whole run
func processTruth(t Truth, aligner align.Aligner, store ref.Store) (outcome, error) {

	if err := cigar.Validate(t.Cigar); err != nil {
		return outcome{}, fmt.Errorf("read %s: %w", t.Name, err)
	}

	if got, want := cigar.QueryLength(t.Cigar), len(t.Bases); got != want {
		reason := fmt.Sprintf("cigar consumes %d query bases but the read has %d", got, want)
		return outcome{kind: outcomeSkipped, name: t.Name, text: reason}, nil
	}

	query := CanonicalQuery(t)

	tiers, err := aligner.GetAllAlignments(query)
	if err != nil {
		return outcome{}, fmt.Errorf("read %s: %w", t.Name, err)
	}

	// no candidates at all is an alignment failure, which is counted
	// separately from a mismatch
	if len(tiers) == 0 {
		return outcome{kind: outcomeFailure, name: t.Name}, nil
	}

	if _, ok := SelectCandidate(tiers, t); ok {
		return outcome{kind: outcomeOK, name: t.Name}, nil
	}

	buffer := new(bytes.Buffer)
	if err := Report(buffer, t, store, tiers); err != nil {
		if errors.Is(err, pad.ErrCursorOverrun) {
			return outcome{kind: outcomeSkipped, name: t.Name, text: err.Error()}, nil
		}
		return outcome{}, fmt.Errorf("read %s: %w", t.Name, err)
	}

	return outcome{kind: outcomeMismatch, name: t.Name, text: buffer.String()}, nil
}

// collectOutcomes reads worker outcomes, restores input order, writes
// diagnostics and progress lines, and accumulates the counters. It sends the
// final Result when the outcome channel has drained
func collectOutcomes(cOut chan outcome, w io.Writer, progressEvery int, cResult chan Result) {

	outputMap := make(map[int]outcome)
	counter := 0
	var result Result

	for o := range cOut {
		outputMap[o.idx] = o
		for {
			next, ok := outputMap[counter]
			if !ok {
				break
			}

			result.Examined++

			switch next.kind {
			case outcomeFailure:
				result.Failures++
				fmt.Fprintf(w, "unable to align read %s to reference; count = %d\n", next.name, counter+1)
			case outcomeMismatch:
				result.Mismatches++
				io.WriteString(w, next.text)
			case outcomeSkipped:
				result.Skipped++
				os.Stderr.WriteString("skipping read " + next.name + ": " + next.text + "\n")
			}

			if progressEvery > 0 && result.Examined%progressEvery == 0 {
				fmt.Fprintf(w, "%d reads examined.\n", result.Examined)
			}

			delete(outputMap, counter)
			counter++
		}
	}

	cResult <- result
}
