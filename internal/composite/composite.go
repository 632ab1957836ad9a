package composite

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidInput is returned when a signal is outside its documented range
var ErrInvalidInput = errors.New("invalid input")

// Tier is the coarse progress level derived from the overall score
type Tier string

const (
	TierNeedsImprovement Tier = "needs_improvement"
	TierFair             Tier = "fair"
	TierGood             Tier = "good"
	TierExcellent        Tier = "excellent"
)

// Inputs are the externally computed signals combined into one score
type Inputs struct {
	AverageNet         float64 `json:"average_net"`
	TaskCompletionRate float64 `json:"task_completion_rate"` // 0-100
	DailyStudyHours    float64 `json:"daily_average_study_hours"`
}

// Score is the composite result
type Score struct {
	ExamScore    float64 `json:"exam_score"`
	TaskScore    float64 `json:"task_score"`
	StudyScore   float64 `json:"study_score"`
	OverallScore float64 `json:"overall_score"`
	ProgressTier Tier    `json:"progress_tier"`
}

// Config holds the weights and multipliers of the composite score
type Config struct {
	ExamWeight  float64
	TaskWeight  float64
	StudyWeight float64

	// Each net point is worth this many exam-score points
	NetMultiplier float64
	// Each daily study hour is worth this many study-score points
	StudyHourMultiplier float64

	// Lower bounds of the tiers, inclusive
	ExcellentFrom float64
	GoodFrom      float64
	FairFrom      float64
}

// DefaultConfig returns the default composite configuration
func DefaultConfig() Config {
	return Config{
		ExamWeight:          0.5,
		TaskWeight:          0.3,
		StudyWeight:         0.2,
		NetMultiplier:       2,
		StudyHourMultiplier: 10,
		ExcellentFrom:       80,
		GoodFrom:            60,
		FairFrom:            40,
	}
}

// Engine computes composite scores
type Engine struct {
	config Config
}

// NewEngine creates an engine with the given configuration
func NewEngine(config Config) *Engine {
	return &Engine{config: config}
}

// Score combines exam, task and study signals into a 0-100 score and tier.
// Exam and study components are capped at 100 and floored at 0.
func (e *Engine) Score(in Inputs) (*Score, error) {
	if math.IsNaN(in.TaskCompletionRate) || in.TaskCompletionRate < 0 || in.TaskCompletionRate > 100 {
		return nil, fmt.Errorf("%w: task completion rate %v outside 0-100", ErrInvalidInput, in.TaskCompletionRate)
	}
	if math.IsNaN(in.AverageNet) || math.IsNaN(in.DailyStudyHours) {
		return nil, fmt.Errorf("%w: signals must be numbers", ErrInvalidInput)
	}

	c := e.config
	s := &Score{
		ExamScore:  bounded(in.AverageNet * c.NetMultiplier),
		TaskScore:  in.TaskCompletionRate,
		StudyScore: bounded(in.DailyStudyHours * c.StudyHourMultiplier),
	}
	overall := s.ExamScore*c.ExamWeight + s.TaskScore*c.TaskWeight + s.StudyScore*c.StudyWeight
	s.OverallScore = math.Round(overall*10) / 10
	s.ProgressTier = e.Tier(s.OverallScore)
	return s, nil
}

// Tier maps an overall score to a progress tier
func (e *Engine) Tier(score float64) Tier {
	switch {
	case score >= e.config.ExcellentFrom:
		return TierExcellent
	case score >= e.config.GoodFrom:
		return TierGood
	case score >= e.config.FairFrom:
		return TierFair
	default:
		return TierNeedsImprovement
	}
}

func bounded(v float64) float64 {
	return math.Max(0, math.Min(v, 100))
}
