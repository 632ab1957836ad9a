package cmd

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"

	"github.com/example/examprep/internal/database"
	sr "github.com/example/examprep/internal/spaced_repetition"
)

var (
	reviewUser  string
	reviewItem  string
	reviewGrade int
)

func reviewService(db *sqlx.DB) *sr.Service {
	return sr.NewService(database.NewReviewItemRepository(db), logger)
}

var learnCmd = &cobra.Command{
	Use:   "learn",
	Short: "Start spaced repetition for an item",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		item, created, err := reviewService(db).StartLearning(cmd.Context(), reviewUser, reviewItem)
		if err != nil {
			return err
		}
		if !created {
			fmt.Fprintf(cmd.ErrOrStderr(), "Already learning %s\n", reviewItem)
		}
		return printJSON(cmd.OutOrStdout(), item)
	},
}

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Record a review with a 0-5 grade",
	Long: `Record a review of an item with a grade from 0 to 5:
  0-2 failed, the item starts over tomorrow
  3   correct with serious difficulty
  4   correct after hesitation
  5   perfect recall`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		item, err := reviewService(db).Review(cmd.Context(), reviewUser, reviewItem, reviewGrade)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), item)
	},
}

var dueCmd = &cobra.Command{
	Use:   "due",
	Short: "List items due for review",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		items, err := reviewService(db).Due(cmd.Context(), reviewUser)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), items)
	},
}

func init() {
	rootCmd.AddCommand(learnCmd)
	rootCmd.AddCommand(reviewCmd)
	rootCmd.AddCommand(dueCmd)

	for _, c := range []*cobra.Command{learnCmd, reviewCmd, dueCmd} {
		c.Flags().StringVarP(&reviewUser, "user", "u", "", "User ID")
		c.MarkFlagRequired("user")
	}
	for _, c := range []*cobra.Command{learnCmd, reviewCmd} {
		c.Flags().StringVarP(&reviewItem, "item", "i", "", "Item ID")
		c.MarkFlagRequired("item")
	}
	reviewCmd.Flags().IntVarP(&reviewGrade, "grade", "g", 0, "Recall grade, 0-5")
	reviewCmd.MarkFlagRequired("grade")
}
