package models

// QuestionAttempt is a single answered (or skipped) question from a practice exam
type QuestionAttempt struct {
	Topic         string  `json:"topic" db:"topic"`
	Subject       string  `json:"subject" db:"subject"`
	UserAnswer    *string `json:"user_answer,omitempty" db:"user_answer"` // nil when the question was not answered
	CorrectAnswer string  `json:"correct_answer" db:"correct_answer"`
	IsBlank       bool    `json:"is_blank" db:"is_blank"`
}

// Answer returns a pointer to s, for building attempts inline
func Answer(s string) *string {
	return &s
}
