package models

import "time"

// ReviewItem tracks a user's spaced-repetition state for one learning item (e.g. a flashcard)
type ReviewItem struct {
	ID              string    `json:"id" db:"id"`
	UserID          string    `json:"user_id" db:"user_id"`
	ItemID          string    `json:"item_id" db:"item_id"`
	RepetitionCount int       `json:"repetition_count" db:"repetition_count"`
	IntervalDays    int       `json:"interval_days" db:"interval_days"`
	EaseFactor      float64   `json:"ease_factor" db:"ease_factor"`
	LastGrade       int       `json:"last_difficulty_grade" db:"last_grade"` // 0-5
	NextReviewAt    time.Time `json:"next_review_timestamp" db:"next_review_at"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}
