package cmd

import (
	"github.com/spf13/cobra"

	"github.com/example/examprep/internal/composite"
)

var scoreInputs composite.Inputs

type scoreOutput struct {
	*composite.Score
	NextMilestone composite.Milestone `json:"next_milestone"`
}

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Combine exam, task and study signals into an overall score",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		score, err := composite.NewEngine(composite.DefaultConfig()).Score(scoreInputs)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), scoreOutput{
			Score:         score,
			NextMilestone: composite.MilestoneFor(score.ProgressTier),
		})
	},
}

func init() {
	rootCmd.AddCommand(scoreCmd)

	scoreCmd.Flags().Float64Var(&scoreInputs.AverageNet, "average-net", 0, "Average net score across exams")
	scoreCmd.Flags().Float64Var(&scoreInputs.TaskCompletionRate, "task-rate", 0, "Task completion rate, 0-100")
	scoreCmd.Flags().Float64Var(&scoreInputs.DailyStudyHours, "study-hours", 0, "Average daily study hours")
}
