package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/example/examprep/internal/composite"
	"github.com/example/examprep/internal/database"
	"github.com/example/examprep/internal/report"
)

var reportUser string

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Build the full progress report of a user",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		exams, err := database.NewExamRecordRepository(db).ListByUser(ctx, reportUser)
		if err != nil {
			return err
		}
		tasks, err := database.NewTaskRepository(db).ListByUser(ctx, reportUser)
		if err != nil {
			return err
		}
		sessions, err := database.NewStudySessionRepository(db).ListByUser(ctx, reportUser)
		if err != nil {
			return err
		}

		builder, err := report.NewBuilder(composite.NewEngine(composite.DefaultConfig()), report.DefaultHeuristicConfig())
		if err != nil {
			return err
		}
		rep, err := builder.Build(report.Input{Exams: exams, Tasks: tasks, Sessions: sessions}, time.Now().UTC())
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), rep)
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().StringVarP(&reportUser, "user", "u", "", "User to report on")
	reportCmd.MarkFlagRequired("user")
}
