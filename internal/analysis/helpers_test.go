package analysis_test

import (
	"math"

	"github.com/example/examprep/pkg/models"
)

const epsilon = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

// attempts builds correct, wrong and blank attempts for one topic
func attempts(topic, subject string, correct, wrong, blank int) []models.QuestionAttempt {
	var out []models.QuestionAttempt
	for i := 0; i < correct; i++ {
		out = append(out, models.QuestionAttempt{
			Topic: topic, Subject: subject, UserAnswer: models.Answer("A"), CorrectAnswer: "A",
		})
	}
	for i := 0; i < wrong; i++ {
		out = append(out, models.QuestionAttempt{
			Topic: topic, Subject: subject, UserAnswer: models.Answer("B"), CorrectAnswer: "A",
		})
	}
	for i := 0; i < blank; i++ {
		out = append(out, models.QuestionAttempt{
			Topic: topic, Subject: subject, CorrectAnswer: "A", IsBlank: true,
		})
	}
	return out
}
