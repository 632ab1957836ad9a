package analysis

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidInput is returned for malformed attempt records
	ErrInvalidInput = errors.New("invalid input")
	// ErrConfiguration is returned for unusable scoring or roadmap settings
	ErrConfiguration = errors.New("invalid configuration")
)

// RecommendationBand maps an accuracy range to a study recommendation.
// A topic falls into the first band whose Below is greater than its accuracy.
type RecommendationBand struct {
	Below float64
	Text  string
}

// Config holds the weights and thresholds used by the analysis pipeline
type Config struct {
	// Weakness score weights, must sum to 1
	AccuracyWeight float64
	OmissionWeight float64
	ErrorWeight    float64

	// Number of wrong answers that cancel one correct answer
	WrongPenaltyDivisor float64

	// Success rate below which a topic counts as weak; seeds report.DefaultHeuristicConfig
	WeakThreshold float64

	// Number of weak topics kept after ranking
	TopN int
	// Default number of topics per roadmap week
	TopicsPerWeek int
	// Estimated study hours for one topic
	StudyHoursPerTopic float64

	// Ordered by Below ascending; the last band catches everything else
	RecommendationBands []RecommendationBand
}

// DefaultConfig returns the default analysis configuration
func DefaultConfig() Config {
	return Config{
		AccuracyWeight:      0.6,
		OmissionWeight:      0.2,
		ErrorWeight:         0.2,
		WrongPenaltyDivisor: 4,
		WeakThreshold:       0.6,
		TopN:                5,
		TopicsPerWeek:       3,
		StudyHoursPerTopic:  5,
		RecommendationBands: []RecommendationBand{
			{Below: 0.3, Text: "review fundamentals, ≥20 practice questions"},
			{Below: 0.6, Text: "review topic, ≥15 practice questions"},
			{Below: math.Inf(1), Text: "fill gaps, ≥10 practice questions"},
		},
	}
}

// Validate checks that the configuration can be used for scoring
func (c Config) Validate() error {
	if c.AccuracyWeight < 0 || c.OmissionWeight < 0 || c.ErrorWeight < 0 {
		return fmt.Errorf("%w: weights must not be negative", ErrConfiguration)
	}
	if sum := c.AccuracyWeight + c.OmissionWeight + c.ErrorWeight; math.Abs(sum-1) > 1e-9 {
		return fmt.Errorf("%w: weights sum to %v, want 1", ErrConfiguration, sum)
	}
	if c.WrongPenaltyDivisor <= 0 {
		return fmt.Errorf("%w: wrong penalty divisor must be positive", ErrConfiguration)
	}
	if c.TopN < 1 {
		return fmt.Errorf("%w: top_n must be at least 1, got %d", ErrConfiguration, c.TopN)
	}
	if c.TopicsPerWeek < 1 {
		return fmt.Errorf("%w: topics per week must be at least 1, got %d", ErrConfiguration, c.TopicsPerWeek)
	}
	if c.StudyHoursPerTopic < 0 {
		return fmt.Errorf("%w: study hours per topic must not be negative", ErrConfiguration)
	}
	if len(c.RecommendationBands) == 0 {
		return fmt.Errorf("%w: at least one recommendation band is required", ErrConfiguration)
	}
	return nil
}

// SafeRatio returns num/den, or 0 when den is 0
func SafeRatio(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}
