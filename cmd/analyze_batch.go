package cmd

import (
	"github.com/spf13/cobra"

	"github.com/example/examprep/internal/analysis"
)

var (
	batchSheet    string
	batchTop      int
	batchParallel int
)

type batchOutput struct {
	Name     string             `json:"name"`
	Analysis *analysis.Analysis `json:"analysis"`
}

var analyzeBatchCmd = &cobra.Command{
	Use:   "analyze-batch [file...]",
	Short: "Analyze several exam files concurrently",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		batches := make([]analysis.Batch, 0, len(args))
		for _, path := range args {
			attempts, err := readAttempts(path, batchSheet)
			if err != nil {
				return err
			}
			batches = append(batches, analysis.Batch{Name: path, Attempts: attempts})
		}

		analyzer, err := newAnalyzer(batchTop)
		if err != nil {
			return err
		}
		results, err := analyzer.AnalyzeMany(cmd.Context(), batches, batchParallel)
		if err != nil {
			return err
		}

		out := make([]batchOutput, len(results))
		for i, res := range results {
			out[i] = batchOutput{Name: batches[i].Name, Analysis: res}
		}
		return printJSON(cmd.OutOrStdout(), out)
	},
}

func init() {
	rootCmd.AddCommand(analyzeBatchCmd)

	analyzeBatchCmd.Flags().StringVar(&batchSheet, "sheet", "", "Sheet to read from every file")
	analyzeBatchCmd.Flags().IntVar(&batchTop, "top", 0, "Number of weak topics to keep (default ANALYSIS_TOP_N)")
	analyzeBatchCmd.Flags().IntVarP(&batchParallel, "parallel", "p", 4, "Maximum number of files analyzed at once, 0 for no limit")
}
