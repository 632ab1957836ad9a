package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/example/examprep/pkg/models"
)

// ErrExamNotFound is returned when an exam record does not exist
var ErrExamNotFound = errors.New("exam record not found")

const examRecordColumns = `id, user_id, exam_name, subject_name, total_questions, total_correct,
	total_wrong, total_net, topics, exam_date, created_at`

// ExamRecordRepository handles database operations for exam records
type ExamRecordRepository struct {
	db *sqlx.DB
}

// NewExamRecordRepository creates a new repository instance
func NewExamRecordRepository(db *sqlx.DB) *ExamRecordRepository {
	return &ExamRecordRepository{db: db}
}

// Create inserts a new exam record, assigning its ID and creation time
func (r *ExamRecordRepository) Create(ctx context.Context, record *models.ExamRecord) error {
	prepareExamRecord(record)
	if _, err := r.db.NamedExecContext(ctx, insertExamRecord, record); err != nil {
		return fmt.Errorf("failed to create exam record: %w", err)
	}
	return nil
}

// CreateWithAttempts inserts an exam record and its attempts in one transaction
func (r *ExamRecordRepository) CreateWithAttempts(ctx context.Context, record *models.ExamRecord, attempts []models.QuestionAttempt) error {
	prepareExamRecord(record)

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.NamedExecContext(ctx, insertExamRecord, record); err != nil {
		return fmt.Errorf("failed to create exam record: %w", err)
	}
	if err := insertAttempts(ctx, tx, record.ID, record.UserID, attempts); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit exam record: %w", err)
	}
	return nil
}

const insertExamRecord = `
	INSERT INTO exam_records (` + examRecordColumns + `)
	VALUES (:id, :user_id, :exam_name, :subject_name, :total_questions, :total_correct,
		:total_wrong, :total_net, :topics, :exam_date, :created_at)
`

func prepareExamRecord(record *models.ExamRecord) {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}
	if record.ExamDate.IsZero() {
		record.ExamDate = record.CreatedAt
	}
	if record.Topics == nil {
		record.Topics = models.StringList{}
	}
	record.CreatedAt = dbTime(record.CreatedAt)
	record.ExamDate = dbTime(record.ExamDate)
}

// Get returns an exam record by ID
func (r *ExamRecordRepository) Get(ctx context.Context, id string) (*models.ExamRecord, error) {
	var record models.ExamRecord
	err := r.db.GetContext(ctx, &record, "SELECT "+examRecordColumns+" FROM exam_records WHERE id = $1", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrExamNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get exam record: %w", err)
	}
	return &record, nil
}

// ListByUser returns a user's exam records, newest first
func (r *ExamRecordRepository) ListByUser(ctx context.Context, userID string) ([]models.ExamRecord, error) {
	records := []models.ExamRecord{}
	err := r.db.SelectContext(ctx, &records, `
		SELECT `+examRecordColumns+` FROM exam_records
		WHERE user_id = $1
		ORDER BY exam_date DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get exam records: %w", err)
	}
	return records, nil
}
