package models

import "time"

// StudyTask is a daily study task assigned to a user
type StudyTask struct {
	ID               string     `json:"id" db:"id"`
	UserID           string     `json:"user_id" db:"user_id"`
	TaskType         string     `json:"task_type" db:"task_type"` // e.g., "practice", "reading", "review"
	IsCompleted      bool       `json:"is_completed" db:"is_completed"`
	EstimatedMinutes int        `json:"estimated_duration" db:"estimated_minutes"`
	CreatedAt        time.Time  `json:"created_at" db:"created_at"`
	CompletedAt      *time.Time `json:"completed_at" db:"completed_at"`
}
