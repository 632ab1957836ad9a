package report

import (
	"fmt"
	"time"

	"github.com/example/examprep/internal/composite"
	"github.com/example/examprep/pkg/models"
)

// Priority of a recommendation
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
)

// Thresholds below which Recommend suggests a change
const (
	MinCompletionRate  = 70.0
	MinDailyStudyHours = 2.0
)

// Recommendation is one personalized suggestion
type Recommendation struct {
	Type        string   `json:"type"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Priority    Priority `json:"priority"`
}

// Recommend builds suggestions from the exam, task and study summaries
func Recommend(exams ExamSummary, tasks TaskSummary, study StudySummary) []Recommendation {
	recs := []Recommendation{}

	if exams.WorstSubject != "" {
		recs = append(recs, Recommendation{
			Type:        "study_focus",
			Title:       fmt.Sprintf("Focus on %s", exams.WorstSubject),
			Description: fmt.Sprintf("%s has the most room for improvement. Give it more of your study time.", exams.WorstSubject),
			Priority:    PriorityHigh,
		})
	}

	if tasks.CompletionRate < MinCompletionRate {
		recs = append(recs, Recommendation{
			Type:        "task_management",
			Title:       "Raise your task completion rate",
			Description: fmt.Sprintf("Your task completion rate is below %.0f%%. Break your work into smaller, manageable tasks.", MinCompletionRate),
			Priority:    PriorityMedium,
		})
	}

	if study.DailyAverage < MinDailyStudyHours {
		recs = append(recs, Recommendation{
			Type:        "study_time",
			Title:       "Increase your daily study time",
			Description: fmt.Sprintf("You study less than %.0f hours a day on average. Study more to reach your goals.", MinDailyStudyHours),
			Priority:    PriorityHigh,
		})
	}

	return recs
}

// KeyMetrics are the headline numbers of a progress summary
type KeyMetrics struct {
	TotalExams         int     `json:"total_exams"`
	AverageNet         float64 `json:"average_net"`
	TaskCompletionRate float64 `json:"task_completion_rate"`
	StudyStreak        int     `json:"study_streak"`
}

// ProgressSummary combines the composite score with its milestone
type ProgressSummary struct {
	Score         *composite.Score    `json:"score"`
	OverallScore  float64             `json:"overall_score"`
	ProgressLevel composite.Tier      `json:"progress_level"`
	NextMilestone composite.Milestone `json:"next_milestone"`
	KeyMetrics    KeyMetrics          `json:"key_metrics"`
}

// BuildProgressSummary scores the summaries and attaches the next milestone
func BuildProgressSummary(engine *composite.Engine, exams ExamSummary, tasks TaskSummary, study StudySummary) (*ProgressSummary, error) {
	score, err := engine.Score(composite.Inputs{
		AverageNet:         exams.AverageNet,
		TaskCompletionRate: tasks.CompletionRate,
		DailyStudyHours:    study.DailyAverage,
	})
	if err != nil {
		return nil, err
	}

	return &ProgressSummary{
		Score:         score,
		OverallScore:  score.OverallScore,
		ProgressLevel: score.ProgressTier,
		NextMilestone: composite.MilestoneFor(score.ProgressTier),
		KeyMetrics: KeyMetrics{
			TotalExams:         exams.TotalExams,
			AverageNet:         exams.AverageNet,
			TaskCompletionRate: tasks.CompletionRate,
			StudyStreak:        study.StudyStreak,
		},
	}, nil
}

// Input is everything known about one user
type Input struct {
	Exams    []models.ExamRecord
	Tasks    []models.StudyTask
	Sessions []models.StudySession
}

// Report is the full user report
type Report struct {
	Exams           ExamSummary      `json:"exam_analysis"`
	Tasks           TaskSummary      `json:"task_analysis"`
	Study           StudySummary     `json:"study_analysis"`
	Topics          TopicSummary     `json:"topic_analysis"`
	Recommendations []Recommendation `json:"recommendations"`
	Progress        *ProgressSummary `json:"progress_summary"`
}

// Builder assembles user reports
type Builder struct {
	engine    *composite.Engine
	heuristic HeuristicConfig
}

// NewBuilder creates a report builder
func NewBuilder(engine *composite.Engine, heuristic HeuristicConfig) (*Builder, error) {
	if err := heuristic.Validate(); err != nil {
		return nil, err
	}
	return &Builder{engine: engine, heuristic: heuristic}, nil
}

// Build computes every section of the report as of now
func (b *Builder) Build(in Input, now time.Time) (*Report, error) {
	exams := SummarizeExams(in.Exams)
	tasks := SummarizeTasks(in.Tasks, now)
	study := SummarizeStudy(in.Sessions, in.Tasks, now)

	topics, err := TopicHeuristic(in.Exams, b.heuristic)
	if err != nil {
		return nil, err
	}
	progress, err := BuildProgressSummary(b.engine, exams, tasks, study)
	if err != nil {
		return nil, fmt.Errorf("failed to score progress: %w", err)
	}

	return &Report{
		Exams:           exams,
		Tasks:           tasks,
		Study:           study,
		Topics:          topics,
		Recommendations: Recommend(exams, tasks, study),
		Progress:        progress,
	}, nil
}
