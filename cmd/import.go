package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/examprep/internal/database"
	"github.com/example/examprep/pkg/models"
)

var (
	importUser     string
	importExamName string
	importFile     string
	importSheet    string
	importSubject  string
	importDate     string
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Store an exam and its attempts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		examDate := time.Now().UTC()
		if importDate != "" {
			d, err := time.Parse("2006-01-02", importDate)
			if err != nil {
				return fmt.Errorf("invalid date %q, expected YYYY-MM-DD", importDate)
			}
			examDate = d
		}

		attempts, err := readAttempts(importFile, importSheet)
		if err != nil {
			return err
		}
		if len(attempts) == 0 {
			return fmt.Errorf("%s contains no attempts", importFile)
		}

		analyzer, err := newAnalyzer(0)
		if err != nil {
			return err
		}
		an, err := analyzer.Analyze(attempts)
		if err != nil {
			return err
		}

		topics := make(models.StringList, 0, len(an.TopicPerformance))
		for _, p := range an.TopicPerformance {
			topics = append(topics, p.Topic)
		}
		subject := importSubject
		if subject == "" {
			subject = attempts[0].Subject
		}

		record := &models.ExamRecord{
			UserID:         importUser,
			ExamName:       importExamName,
			SubjectName:    subject,
			TotalQuestions: an.General.Total,
			TotalCorrect:   an.General.Correct,
			TotalWrong:     an.General.Wrong,
			TotalNet:       an.General.Net,
			Topics:         topics,
			ExamDate:       examDate,
		}

		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		if err := database.NewExamRecordRepository(db).CreateWithAttempts(ctx, record, attempts); err != nil {
			return err
		}
		logger.Info("imported exam", "exam_id", record.ID, "user_id", record.UserID, "attempts", len(attempts))
		return printJSON(cmd.OutOrStdout(), record)
	},
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().StringVarP(&importUser, "user", "u", "", "User the exam belongs to")
	importCmd.Flags().StringVarP(&importExamName, "exam-name", "n", "", "Name of the exam")
	importCmd.Flags().StringVarP(&importFile, "file", "f", "", "Excel or CSV file with the attempts")
	importCmd.Flags().StringVar(&importSheet, "sheet", "", "Sheet to read, first sheet by default")
	importCmd.Flags().StringVar(&importSubject, "subject", "", "Subject of the exam, the first attempt's subject by default")
	importCmd.Flags().StringVar(&importDate, "date", "", "Exam date as YYYY-MM-DD, today by default")
	importCmd.MarkFlagRequired("user")
	importCmd.MarkFlagRequired("exam-name")
	importCmd.MarkFlagRequired("file")
}
