package analysis

import (
	"fmt"
	"strings"

	"github.com/example/examprep/pkg/models"
)

// Outcome is the classification of a single attempt
type Outcome int

const (
	OutcomeBlank Outcome = iota
	OutcomeCorrect
	OutcomeWrong
)

// Counts holds correct/wrong/blank tallies
type Counts struct {
	Total   int `json:"total_questions"`
	Correct int `json:"correct_count"`
	Wrong   int `json:"wrong_count"`
	Blank   int `json:"blank_count"`
}

func (c *Counts) add(o Outcome) {
	c.Total++
	switch o {
	case OutcomeCorrect:
		c.Correct++
	case OutcomeWrong:
		c.Wrong++
	default:
		c.Blank++
	}
}

// TopicStat is the tally for one topic
type TopicStat struct {
	Topic   string `json:"topic"`
	Subject string `json:"subject"`
	Counts
}

// Aggregation is the result of reducing a batch of attempts.
// Topics are kept in the order they first appear in the batch.
type Aggregation struct {
	General Counts
	Topics  []TopicStat
	index   map[string]int
}

// Topic returns the stat for a topic by name
func (a *Aggregation) Topic(name string) (TopicStat, bool) {
	i, ok := a.index[name]
	if !ok {
		return TopicStat{}, false
	}
	return a.Topics[i], true
}

// Classify decides whether an attempt is blank, correct or wrong.
// Blank wins over everything else, so an answered question flagged blank still counts as blank.
func Classify(a models.QuestionAttempt) Outcome {
	if a.IsBlank || a.UserAnswer == nil || *a.UserAnswer == "" {
		return OutcomeBlank
	}
	if *a.UserAnswer == a.CorrectAnswer {
		return OutcomeCorrect
	}
	return OutcomeWrong
}

// ValidateAttempt checks the mandatory fields of an attempt record
func ValidateAttempt(a models.QuestionAttempt) error {
	switch {
	case strings.TrimSpace(a.Topic) == "":
		return fmt.Errorf("%w: missing topic", ErrInvalidInput)
	case strings.TrimSpace(a.Subject) == "":
		return fmt.Errorf("%w: missing subject", ErrInvalidInput)
	case strings.TrimSpace(a.CorrectAnswer) == "":
		return fmt.Errorf("%w: missing correct_answer", ErrInvalidInput)
	}
	return nil
}

// Aggregate validates the attempts and tallies them overall and per topic.
// The whole batch is rejected if any record is malformed.
func Aggregate(attempts []models.QuestionAttempt) (*Aggregation, error) {
	for i, a := range attempts {
		if err := ValidateAttempt(a); err != nil {
			return nil, fmt.Errorf("attempt %d: %w", i, err)
		}
	}

	agg := &Aggregation{
		Topics: make([]TopicStat, 0),
		index:  make(map[string]int),
	}
	for _, a := range attempts {
		outcome := Classify(a)
		agg.General.add(outcome)

		i, ok := agg.index[a.Topic]
		if !ok {
			// The first attempt seen for a topic decides its subject
			i = len(agg.Topics)
			agg.index[a.Topic] = i
			agg.Topics = append(agg.Topics, TopicStat{Topic: a.Topic, Subject: a.Subject})
		}
		agg.Topics[i].add(outcome)
	}
	return agg, nil
}
