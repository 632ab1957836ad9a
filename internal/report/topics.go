package report

import (
	"fmt"
	"math"
	"sort"

	"github.com/example/examprep/internal/analysis"
	"github.com/example/examprep/pkg/models"
)

// HeuristicConfig tunes the topic estimate built from exam-level totals.
// Exam records carry only totals, so each listed topic is credited with a
// fixed share of the exam's questions and correct answers.
type HeuristicConfig struct {
	TopicShare     float64 // share of an exam's questions attributed to each listed topic
	MinAppearances int     // topics seen in fewer exams are not classified
	WeakBelow      float64 // success rate, 0-1
	StrongAbove    float64 // success rate, 0-1
	Limit          int     // max weak and strong topics returned
}

// DefaultHeuristicConfig returns the default topic heuristic
func DefaultHeuristicConfig() HeuristicConfig {
	return HeuristicConfig{
		TopicShare:     0.2,
		MinAppearances: 2,
		WeakBelow:      analysis.DefaultConfig().WeakThreshold,
		StrongAbove:    0.8,
		Limit:          5,
	}
}

// Validate checks the heuristic parameters
func (c HeuristicConfig) Validate() error {
	switch {
	case c.TopicShare <= 0 || c.TopicShare > 1:
		return fmt.Errorf("%w: topic share must be in (0,1], got %v", analysis.ErrConfiguration, c.TopicShare)
	case c.MinAppearances < 1:
		return fmt.Errorf("%w: min appearances must be at least 1", analysis.ErrConfiguration)
	case c.WeakBelow > c.StrongAbove:
		return fmt.Errorf("%w: weak threshold above strong threshold", analysis.ErrConfiguration)
	case c.Limit < 1:
		return fmt.Errorf("%w: limit must be at least 1", analysis.ErrConfiguration)
	}
	return nil
}

// TopicEstimate is the accumulated estimate for one topic
type TopicEstimate struct {
	Topic          string  `json:"topic"`
	Subject        string  `json:"subject"`
	TotalQuestions int     `json:"total_questions"`
	CorrectAnswers int     `json:"correct_answers"`
	Appearances    int     `json:"appearances"`
	SuccessRate    float64 `json:"success_rate"`
}

// TopicStanding is a classified weak or strong topic
type TopicStanding struct {
	Name        string  `json:"name"`
	Subject     string  `json:"subject"`
	SuccessRate float64 `json:"success_rate"`
}

// TopicSummary is the topic side of a user report
type TopicSummary struct {
	WeakTopics   []TopicStanding `json:"weak_topics"`
	StrongTopics []TopicStanding `json:"strong_topics"`
	TopicStats   []TopicEstimate `json:"topic_stats"`
}

// TopicHeuristic estimates per-topic success from exam records and
// classifies topics seen often enough as weak or strong
func TopicHeuristic(records []models.ExamRecord, cfg HeuristicConfig) (TopicSummary, error) {
	summary := TopicSummary{
		WeakTopics:   []TopicStanding{},
		StrongTopics: []TopicStanding{},
		TopicStats:   []TopicEstimate{},
	}
	if err := cfg.Validate(); err != nil {
		return summary, err
	}

	index := make(map[string]int)
	for _, r := range records {
		questions := int(math.Floor(float64(r.TotalQuestions) * cfg.TopicShare))
		correct := int(math.Floor(float64(r.TotalCorrect) * cfg.TopicShare))
		subject := r.SubjectName
		if subject == "" {
			subject = UnknownSubject
		}

		for _, topic := range r.Topics {
			i, ok := index[topic]
			if !ok {
				i = len(summary.TopicStats)
				index[topic] = i
				summary.TopicStats = append(summary.TopicStats, TopicEstimate{Topic: topic, Subject: subject})
			}
			est := &summary.TopicStats[i]
			est.Appearances++
			est.TotalQuestions += questions
			est.CorrectAnswers += correct
		}
	}

	for i := range summary.TopicStats {
		est := &summary.TopicStats[i]
		est.SuccessRate = round(analysis.SafeRatio(float64(est.CorrectAnswers), float64(est.TotalQuestions)), 3)
		if est.Appearances < cfg.MinAppearances {
			continue
		}

		standing := TopicStanding{Name: est.Topic, Subject: est.Subject, SuccessRate: est.SuccessRate}
		switch {
		case est.SuccessRate < cfg.WeakBelow:
			summary.WeakTopics = append(summary.WeakTopics, standing)
		case est.SuccessRate > cfg.StrongAbove:
			summary.StrongTopics = append(summary.StrongTopics, standing)
		}
	}

	sort.SliceStable(summary.WeakTopics, func(i, j int) bool {
		return summary.WeakTopics[i].SuccessRate < summary.WeakTopics[j].SuccessRate
	})
	sort.SliceStable(summary.StrongTopics, func(i, j int) bool {
		return summary.StrongTopics[i].SuccessRate > summary.StrongTopics[j].SuccessRate
	})
	if len(summary.WeakTopics) > cfg.Limit {
		summary.WeakTopics = summary.WeakTopics[:cfg.Limit]
	}
	if len(summary.StrongTopics) > cfg.Limit {
		summary.StrongTopics = summary.StrongTopics[:cfg.Limit]
	}
	return summary, nil
}
