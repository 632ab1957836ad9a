package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/examprep/internal/database"
	"github.com/example/examprep/pkg/models"
)

var (
	taskUser      string
	taskType      string
	taskMinutes   int
	taskCompleted bool

	sessionUser    string
	sessionMinutes int
	sessionStart   string
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Manage study tasks",
}

var taskAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a study task",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if taskMinutes < 0 {
			return fmt.Errorf("minutes must not be negative")
		}
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		now := time.Now().UTC()
		task := &models.StudyTask{
			UserID:           taskUser,
			TaskType:         taskType,
			EstimatedMinutes: taskMinutes,
			IsCompleted:      taskCompleted,
			CreatedAt:        now,
		}
		if taskCompleted {
			task.CompletedAt = &now
		}
		if err := database.NewTaskRepository(db).Create(cmd.Context(), task); err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), task)
	},
}

var taskCompleteCmd = &cobra.Command{
	Use:   "complete [task id]",
	Short: "Mark a study task as completed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		if err := database.NewTaskRepository(db).Complete(cmd.Context(), args[0], time.Now().UTC()); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Completed task %s\n", args[0])
		return nil
	},
}

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Record a study session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if sessionMinutes <= 0 {
			return fmt.Errorf("minutes must be positive")
		}
		start := time.Now().UTC().Add(-time.Duration(sessionMinutes) * time.Minute)
		if sessionStart != "" {
			t, err := time.Parse(time.RFC3339, sessionStart)
			if err != nil {
				return fmt.Errorf("invalid start %q, expected RFC 3339", sessionStart)
			}
			start = t
		}

		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		session := &models.StudySession{UserID: sessionUser, StartTime: start, DurationMinutes: sessionMinutes}
		if err := database.NewStudySessionRepository(db).Create(cmd.Context(), session); err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), session)
	},
}

func init() {
	rootCmd.AddCommand(taskCmd)
	rootCmd.AddCommand(sessionCmd)
	taskCmd.AddCommand(taskAddCmd)
	taskCmd.AddCommand(taskCompleteCmd)

	taskAddCmd.Flags().StringVarP(&taskUser, "user", "u", "", "User the task belongs to")
	taskAddCmd.Flags().StringVarP(&taskType, "type", "t", "practice", "Task type, e.g. practice, reading, review")
	taskAddCmd.Flags().IntVarP(&taskMinutes, "minutes", "m", 0, "Estimated duration in minutes")
	taskAddCmd.Flags().BoolVar(&taskCompleted, "completed", false, "Record the task as already completed")
	taskAddCmd.MarkFlagRequired("user")

	sessionCmd.Flags().StringVarP(&sessionUser, "user", "u", "", "User who studied")
	sessionCmd.Flags().IntVarP(&sessionMinutes, "minutes", "m", 0, "Duration in minutes")
	sessionCmd.Flags().StringVar(&sessionStart, "start", "", "Start time in RFC 3339, now minus the duration by default")
	sessionCmd.MarkFlagRequired("user")
	sessionCmd.MarkFlagRequired("minutes")
}
