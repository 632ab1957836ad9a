package analysis

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/example/examprep/pkg/models"
)

// Analysis is the full result of analyzing one exam
type Analysis struct {
	General          GeneralStats       `json:"general_stats"`
	TopicPerformance []TopicPerformance `json:"topic_performance"`
	WeakTopics       []WeakTopicEntry   `json:"weak_topics"`
}

// Topic returns the performance of a topic by name
func (a *Analysis) Topic(name string) (TopicPerformance, bool) {
	for _, p := range a.TopicPerformance {
		if p.Topic == name {
			return p, true
		}
	}
	return TopicPerformance{}, false
}

// Analyzer runs the aggregation, scoring and ranking pipeline
type Analyzer struct {
	config Config
}

// NewAnalyzer creates an analyzer after validating the configuration
func NewAnalyzer(config Config) (*Analyzer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Analyzer{config: config}, nil
}

// Config returns the analyzer's configuration
func (a *Analyzer) Config() Config {
	return a.config
}

// Analyze scores a batch of attempts and ranks its weakest topics
func (a *Analyzer) Analyze(attempts []models.QuestionAttempt) (*Analysis, error) {
	agg, err := Aggregate(attempts)
	if err != nil {
		return nil, err
	}

	perf := a.config.ScoreTopics(agg.Topics)
	return &Analysis{
		General:          a.config.General(agg.General),
		TopicPerformance: perf,
		WeakTopics:       Rank(Entries(perf), a.config.TopN),
	}, nil
}

// Roadmap builds the study roadmap for an analysis. perWeek <= 0 uses the configured default.
func (a *Analyzer) Roadmap(an *Analysis, perWeek int) (*Roadmap, error) {
	if perWeek <= 0 {
		perWeek = a.config.TopicsPerWeek
	}
	return a.config.GenerateRoadmap(an.WeakTopics, perWeek)
}

// AnalyzeProgress analyzes two exams independently and compares them
func (a *Analyzer) AnalyzeProgress(previous, current []models.QuestionAttempt) (*ProgressReport, error) {
	prev, err := a.Analyze(previous)
	if err != nil {
		return nil, fmt.Errorf("previous exam: %w", err)
	}
	curr, err := a.Analyze(current)
	if err != nil {
		return nil, fmt.Errorf("current exam: %w", err)
	}
	return Compare(prev, curr), nil
}

// Batch is a named set of attempts, e.g. one exam file
type Batch struct {
	Name     string
	Attempts []models.QuestionAttempt
}

// AnalyzeMany analyzes independent batches concurrently with at most limit
// workers (limit <= 0 means unbounded). Results keep the batch order. The
// first failing batch cancels the rest and its error is returned.
func (a *Analyzer) AnalyzeMany(ctx context.Context, batches []Batch, limit int) ([]*Analysis, error) {
	results := make([]*Analysis, len(batches))

	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, b := range batches {
		i, b := i, b
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := a.Analyze(b.Attempts)
			if err != nil {
				return fmt.Errorf("batch %q: %w", b.Name, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
