package cmd

import (
	"github.com/spf13/cobra"

	"github.com/example/examprep/internal/analysis"
	"github.com/example/examprep/internal/event"
	"github.com/example/examprep/internal/excel"
)

var (
	analyzeFile    string
	analyzeSheet   string
	analyzeExam    string
	analyzeTop     int
	analyzePerWeek int
	analyzeXLSX    string
)

type analyzeOutput struct {
	Analysis *analysis.Analysis `json:"analysis"`
	Roadmap  *analysis.Roadmap  `json:"roadmap"`
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze one exam and build its study roadmap",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		attempts, err := loadAttempts(ctx, analyzeFile, analyzeSheet, analyzeExam)
		if err != nil {
			return err
		}
		analyzer, err := newAnalyzer(analyzeTop)
		if err != nil {
			return err
		}

		an, err := analyzer.Analyze(attempts)
		if err != nil {
			return err
		}
		roadmap, err := buildRoadmap(cmd, analyzer, an)
		if err != nil {
			return err
		}

		if analyzeXLSX != "" {
			if err := excel.ExportAnalysis(analyzeXLSX, an, roadmap); err != nil {
				return err
			}
			logger.Info("exported analysis", "file", analyzeXLSX)
		}

		publishAnalysis(cmd, sourceName(analyzeFile, analyzeExam), an)
		return printJSON(cmd.OutOrStdout(), analyzeOutput{Analysis: an, Roadmap: roadmap})
	},
}

// buildRoadmap uses the configured week size unless --per-week was given
func buildRoadmap(cmd *cobra.Command, analyzer *analysis.Analyzer, an *analysis.Analysis) (*analysis.Roadmap, error) {
	if cmd.Flags().Changed("per-week") {
		return analyzer.Config().GenerateRoadmap(an.WeakTopics, analyzePerWeek)
	}
	return analyzer.Roadmap(an, 0)
}

func sourceName(file, examID string) string {
	if file != "" {
		return file
	}
	return examID
}

// publishAnalysis announces the analysis when a broker is configured. Failures are only logged.
func publishAnalysis(cmd *cobra.Command, name string, an *analysis.Analysis) {
	pub, err := openPublisher()
	if err != nil {
		logger.Warn("event publishing disabled", "error", err)
		return
	}
	if pub == nil {
		return
	}
	defer pub.Close()

	weak := make([]string, 0, len(an.WeakTopics))
	for _, w := range an.WeakTopics {
		weak = append(weak, w.TopicName)
	}
	err = pub.Publish(cmd.Context(), event.TypeAnalysisCompleted, event.AnalysisCompleted{
		Name:           name,
		TotalQuestions: an.General.Total,
		Net:            an.General.Net,
		WeakTopics:     weak,
	})
	if err != nil {
		logger.Warn("failed to publish analysis", "error", err)
	}
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVarP(&analyzeFile, "file", "f", "", "Excel or CSV file with the exam attempts")
	analyzeCmd.Flags().StringVar(&analyzeSheet, "sheet", "", "Sheet to read, first sheet by default")
	analyzeCmd.Flags().StringVar(&analyzeExam, "exam", "", "ID of a stored exam to analyze instead of a file")
	analyzeCmd.Flags().IntVar(&analyzeTop, "top", 0, "Number of weak topics to keep (default ANALYSIS_TOP_N)")
	analyzeCmd.Flags().IntVar(&analyzePerWeek, "per-week", 0, "Topics per roadmap week (default ANALYSIS_TOPICS_PER_WEEK)")
	analyzeCmd.Flags().StringVar(&analyzeXLSX, "xlsx", "", "Also export the analysis to this xlsx file")
}
