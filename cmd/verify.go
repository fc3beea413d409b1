package cmd

import (
	"github.com/spf13/cobra"

	"github.com/seq-qc/samcheck/pkg/align"
	"github.com/seq-qc/samcheck/pkg/gfio"
	"github.com/seq-qc/samcheck/pkg/ref"
	"github.com/seq-qc/samcheck/pkg/verify"
)

var verifyTruth string
var verifyAlignments string
var verifyReference string
var verifyOutfile string
var verifyMaxReads int
var verifyProgressEvery int
var verifyThreads int

func init() {
	rootCmd.AddCommand(verifyCmd)

	verifyCmd.Flags().StringVarP(&verifyTruth, "truth", "s", "stdin", "SAM file of trusted truth alignments. If none is specified, will read from stdin")
	verifyCmd.Flags().StringVarP(&verifyAlignments, "alignments", "a", "", "SAM file written by the aligner under test")
	verifyCmd.Flags().StringVarP(&verifyReference, "reference", "r", "", "Reference sequences, in fasta format")
	verifyCmd.Flags().StringVarP(&verifyOutfile, "outfile", "o", "stdout", "Output to write")
	verifyCmd.Flags().IntVarP(&verifyMaxReads, "max-reads", "n", 0, "Stop after this many truth reads. 0 means no cap")
	verifyCmd.Flags().IntVarP(&verifyProgressEvery, "progress-every", "p", 1000, "Print a progress line every so many reads. 0 turns progress lines off")
	verifyCmd.Flags().IntVarP(&verifyThreads, "threads", "t", 1, "Number of threads to use")

	verifyCmd.Flags().SortFlags = false
}

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check an aligner's placements against truth alignments",
	Long: `Check an aligner's placements against truth alignments

Every truth read is normalised back to its forward-strand bases and looked up among the
candidate alignments the aligner produced for that sequence. A read passes when some
candidate agrees with the truth's strand and start coordinate exactly. For each read that
fails, a diagnostic block is written with the truth and every candidate rendered as
column-aligned read/reference rows.

Example usage:
	samcheck verify -s truth.sam -a aligned.sam -r reference.fasta -o report.txt

If input and output files are not specified, the truth alignments are read from stdin and
the report is written to stdout:
	cat truth.sam | samcheck verify -a aligned.sam -r reference.fasta > report.txt`,

	RunE: func(cmd *cobra.Command, args []string) (err error) {

		truthIn, err := gfio.OpenIn(*cmd.Flag("truth"))
		if err != nil {
			return err
		}
		defer truthIn.Close()

		alignmentsIn, err := gfio.OpenIn(*cmd.Flag("alignments"))
		if err != nil {
			return err
		}
		defer alignmentsIn.Close()

		refIn, err := gfio.OpenIn(*cmd.Flag("reference"))
		if err != nil {
			return err
		}
		defer refIn.Close()

		out, err := gfio.OpenOut(*cmd.Flag("outfile"))
		if err != nil {
			return err
		}
		defer out.Close()

		// the reference store and the candidate index are built once here
		// and shared for the whole run
		store, err := ref.Load(refIn)
		if err != nil {
			return err
		}
		defer store.Close()

		aligner, err := align.NewSamAligner(alignmentsIn)
		if err != nil {
			return err
		}

		_, err = verify.Run(verify.Options{
			Truth:         truthIn,
			Aligner:       aligner,
			Ref:           store,
			Out:           out,
			MaxReads:      verifyMaxReads,
			ProgressEvery: verifyProgressEvery,
			Threads:       verifyThreads,
		})

		return
	},
}
