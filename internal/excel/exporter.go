package excel

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/example/examprep/internal/analysis"
)

// Sheet names of an exported report
const (
	TopicsSheet  = "Topics"
	WeakSheet    = "Weak Topics"
	RoadmapSheet = "Roadmap"
)

// ExportAnalysis writes topic performance, the weak topic ranking and the
// roadmap to an xlsx workbook. roadmap may be nil.
func ExportAnalysis(path string, an *analysis.Analysis, roadmap *analysis.Roadmap) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), TopicsSheet); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}

	topicRows := [][]interface{}{{"Topic", "Subject", "Total", "Correct", "Wrong", "Blank", "Accuracy", "Net", "Weakness"}}
	for _, p := range an.TopicPerformance {
		topicRows = append(topicRows, []interface{}{
			p.Topic, p.Subject, p.TotalQuestions, p.CorrectCount, p.WrongCount, p.BlankCount,
			p.AccuracyRate, p.Net, p.WeaknessScore,
		})
	}
	if err := writeRows(f, TopicsSheet, topicRows); err != nil {
		return err
	}

	weakRows := [][]interface{}{{"Rank", "Topic", "Subject", "Weakness", "Accuracy", "Questions", "Net"}}
	for _, w := range an.WeakTopics {
		weakRows = append(weakRows, []interface{}{
			w.Rank, w.TopicName, w.Subject, w.WeaknessScore, w.AccuracyRate, w.TotalQuestions, w.Net,
		})
	}
	if _, err := f.NewSheet(WeakSheet); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	if err := writeRows(f, WeakSheet, weakRows); err != nil {
		return err
	}

	if roadmap != nil {
		planRows := [][]interface{}{{"Week", "Topics", "Focus Areas", "Study Hours", "Recommendations"}}
		for _, plan := range roadmap.WeeklyPlans {
			names := make([]string, len(plan.Topics))
			for i, t := range plan.Topics {
				names[i] = t.TopicName
			}
			planRows = append(planRows, []interface{}{
				plan.WeekNumber,
				strings.Join(names, ", "),
				strings.Join(plan.FocusAreas, ", "),
				plan.EstimatedStudyHours,
				strings.Join(plan.Recommendations, "\n"),
			})
		}
		if _, err := f.NewSheet(RoadmapSheet); err != nil {
			return fmt.Errorf("failed to create sheet: %w", err)
		}
		if err := writeRows(f, RoadmapSheet, planRows); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		addr, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, addr, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
