package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	comparePrevious     string
	compareCurrent      string
	comparePreviousExam string
	compareCurrentExam  string
	compareSheet        string
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare two exams and report progress per topic",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		previous, err := loadAttempts(ctx, comparePrevious, compareSheet, comparePreviousExam)
		if err != nil {
			return fmt.Errorf("previous exam: %w", err)
		}
		current, err := loadAttempts(ctx, compareCurrent, compareSheet, compareCurrentExam)
		if err != nil {
			return fmt.Errorf("current exam: %w", err)
		}

		analyzer, err := newAnalyzer(0)
		if err != nil {
			return err
		}
		report, err := analyzer.AnalyzeProgress(previous, current)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), report)
	},
}

func init() {
	rootCmd.AddCommand(compareCmd)

	compareCmd.Flags().StringVar(&comparePrevious, "previous", "", "File with the earlier exam")
	compareCmd.Flags().StringVar(&compareCurrent, "current", "", "File with the later exam")
	compareCmd.Flags().StringVar(&comparePreviousExam, "previous-exam", "", "ID of the stored earlier exam")
	compareCmd.Flags().StringVar(&compareCurrentExam, "current-exam", "", "ID of the stored later exam")
	compareCmd.Flags().StringVar(&compareSheet, "sheet", "", "Sheet to read from both files")
}
