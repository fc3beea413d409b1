package cmd

import (
	"github.com/spf13/cobra"

	"github.com/seq-qc/samcheck/pkg/gfio"
	"github.com/seq-qc/samcheck/pkg/quals"
)

var qualsOriginal string
var qualsReduced string
var qualsOutfile string
var qualsSufficientQualSum int
var qualsEpsilon float64

func init() {
	rootCmd.AddCommand(qualsCmd)

	qualsCmd.Flags().StringVarP(&qualsOriginal, "original", "", "", "SAM file of the original alignments")
	qualsCmd.Flags().StringVarP(&qualsReduced, "reduced", "", "", "SAM file of the reduced alignments")
	qualsCmd.Flags().StringVarP(&qualsOutfile, "outfile", "o", "stdout", "Output to write")
	qualsCmd.Flags().IntVarP(&qualsSufficientQualSum, "sufficient-qual-sum", "", 600, "A locus whose quality sums both reach this threshold always passes")
	qualsCmd.Flags().Float64VarP(&qualsEpsilon, "epsilon", "", 0, "Tolerated difference, as a fraction of the original quality sum")

	qualsCmd.Flags().SortFlags = false
}

var qualsCmd = &cobra.Command{
	Use:   "quals",
	Short: "Find loci where reduced alignments lost base quality",
	Long: `Find loci where reduced alignments lost base quality

Per-locus base-quality sums are accumulated for the original and the reduced SAM files,
and the intervals where the sums differ by more than epsilon times the original sum are
written out, one contig:start-end line per interval.

Example usage:
	samcheck quals --original original.sam --reduced reduced.sam -o lost.intervals`,

	RunE: func(cmd *cobra.Command, args []string) (err error) {

		originalIn, err := gfio.OpenIn(*cmd.Flag("original"))
		if err != nil {
			return err
		}
		defer originalIn.Close()

		reducedIn, err := gfio.OpenIn(*cmd.Flag("reduced"))
		if err != nil {
			return err
		}
		defer reducedIn.Close()

		out, err := gfio.OpenOut(*cmd.Flag("outfile"))
		if err != nil {
			return err
		}
		defer out.Close()

		err = quals.Assess(quals.Options{
			Original:          originalIn,
			Reduced:           reducedIn,
			Out:               out,
			SufficientQualSum: qualsSufficientQualSum,
			Epsilon:           qualsEpsilon,
		})

		return
	},
}
