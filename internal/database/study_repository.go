package database

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/example/examprep/pkg/models"
)

// TaskRepository handles database operations for study tasks
type TaskRepository struct {
	db *sqlx.DB
}

// NewTaskRepository creates a new repository instance
func NewTaskRepository(db *sqlx.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create inserts a new study task
func (r *TaskRepository) Create(ctx context.Context, task *models.StudyTask) error {
	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	if task.CreatedAt.IsZero() {
		task.CreatedAt = time.Now()
	}
	task.CreatedAt = dbTime(task.CreatedAt)
	task.CompletedAt = dbTimePtr(task.CompletedAt)

	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO study_tasks (id, user_id, task_type, is_completed, estimated_minutes, created_at, completed_at)
		VALUES (:id, :user_id, :task_type, :is_completed, :estimated_minutes, :created_at, :completed_at)
	`, task)
	if err != nil {
		return fmt.Errorf("failed to create study task: %w", err)
	}
	return nil
}

// Complete marks a task as completed at the given time
func (r *TaskRepository) Complete(ctx context.Context, id string, at time.Time) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE study_tasks SET is_completed = $1, completed_at = $2 WHERE id = $3", true, dbTime(at), id)
	if err != nil {
		return fmt.Errorf("failed to complete study task: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("study task %s not found", id)
	}
	return nil
}

// ListByUser returns all tasks of a user, oldest first
func (r *TaskRepository) ListByUser(ctx context.Context, userID string) ([]models.StudyTask, error) {
	tasks := []models.StudyTask{}
	err := r.db.SelectContext(ctx, &tasks, `
		SELECT id, user_id, task_type, is_completed, estimated_minutes, created_at, completed_at
		FROM study_tasks
		WHERE user_id = $1
		ORDER BY created_at ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get study tasks: %w", err)
	}
	return tasks, nil
}

// StudySessionRepository handles database operations for study sessions
type StudySessionRepository struct {
	db *sqlx.DB
}

// NewStudySessionRepository creates a new repository instance
func NewStudySessionRepository(db *sqlx.DB) *StudySessionRepository {
	return &StudySessionRepository{db: db}
}

// Create inserts a new study session
func (r *StudySessionRepository) Create(ctx context.Context, session *models.StudySession) error {
	if session.ID == "" {
		session.ID = uuid.NewString()
	}
	session.StartTime = dbTime(session.StartTime)

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO study_sessions (id, user_id, start_time, duration_minutes)
		VALUES ($1, $2, $3, $4)
	`, session.ID, session.UserID, session.StartTime, session.DurationMinutes)
	if err != nil {
		return fmt.Errorf("failed to create study session: %w", err)
	}
	return nil
}

// ListByUser returns all sessions of a user, oldest first
func (r *StudySessionRepository) ListByUser(ctx context.Context, userID string) ([]models.StudySession, error) {
	sessions := []models.StudySession{}
	err := r.db.SelectContext(ctx, &sessions, `
		SELECT id, user_id, start_time, duration_minutes
		FROM study_sessions
		WHERE user_id = $1
		ORDER BY start_time ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get study sessions: %w", err)
	}
	return sessions, nil
}
