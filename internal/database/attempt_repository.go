package database

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/example/examprep/pkg/models"
)

// AttemptRepository handles database operations for question attempts
type AttemptRepository struct {
	db *sqlx.DB
}

// NewAttemptRepository creates a new repository instance
func NewAttemptRepository(db *sqlx.DB) *AttemptRepository {
	return &AttemptRepository{db: db}
}

// SaveBatch stores the attempts of one exam in a single transaction, keeping their order
func (r *AttemptRepository) SaveBatch(ctx context.Context, examID, userID string, attempts []models.QuestionAttempt) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := insertAttempts(ctx, tx, examID, userID, attempts); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit attempts: %w", err)
	}
	return nil
}

func insertAttempts(ctx context.Context, tx *sqlx.Tx, examID, userID string, attempts []models.QuestionAttempt) error {
	stmt, err := tx.PreparexContext(ctx, `
		INSERT INTO question_attempts (
			id, exam_id, user_id, position, topic, subject, user_answer, correct_answer, is_blank
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare attempt insert: %w", err)
	}
	defer stmt.Close()

	for i, a := range attempts {
		_, err := stmt.ExecContext(ctx, uuid.NewString(), examID, userID, i,
			a.Topic, a.Subject, a.UserAnswer, a.CorrectAnswer, a.IsBlank)
		if err != nil {
			return fmt.Errorf("failed to save attempt %d: %w", i, err)
		}
	}
	return nil
}

// ListByExam returns the attempts of an exam in their original order
func (r *AttemptRepository) ListByExam(ctx context.Context, examID string) ([]models.QuestionAttempt, error) {
	attempts := []models.QuestionAttempt{}
	err := r.db.SelectContext(ctx, &attempts, `
		SELECT topic, subject, user_answer, correct_answer, is_blank
		FROM question_attempts
		WHERE exam_id = $1
		ORDER BY position ASC
	`, examID)
	if err != nil {
		return nil, fmt.Errorf("failed to get attempts: %w", err)
	}
	return attempts, nil
}
