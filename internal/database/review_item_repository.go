package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	sr "github.com/example/examprep/internal/spaced_repetition"
	"github.com/example/examprep/pkg/models"
)

const reviewItemColumns = `id, user_id, item_id, repetition_count, interval_days, ease_factor,
	last_grade, next_review_at, created_at, updated_at`

// ReviewItemRepository handles database operations for review items
type ReviewItemRepository struct {
	db *sqlx.DB
}

var _ sr.Store = (*ReviewItemRepository)(nil)

// NewReviewItemRepository creates a new repository instance
func NewReviewItemRepository(db *sqlx.DB) *ReviewItemRepository {
	return &ReviewItemRepository{db: db}
}

// Get returns the review item of a user for a learning item
func (r *ReviewItemRepository) Get(ctx context.Context, userID, itemID string) (*models.ReviewItem, error) {
	var item models.ReviewItem
	err := r.db.GetContext(ctx, &item,
		"SELECT "+reviewItemColumns+" FROM review_items WHERE user_id = $1 AND item_id = $2", userID, itemID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get review item: %w", err)
	}
	return &item, nil
}

// Create inserts a review item unless the user already has one for the item
func (r *ReviewItemRepository) Create(ctx context.Context, item *models.ReviewItem) (*models.ReviewItem, bool, error) {
	row := *item
	if row.ID == "" {
		row.ID = uuid.NewString()
	}
	normalizeReviewItem(&row)

	res, err := r.db.NamedExecContext(ctx, `
		INSERT INTO review_items (`+reviewItemColumns+`)
		VALUES (:id, :user_id, :item_id, :repetition_count, :interval_days, :ease_factor,
			:last_grade, :next_review_at, :created_at, :updated_at)
		ON CONFLICT (user_id, item_id) DO NOTHING
	`, &row)
	if err != nil {
		return nil, false, fmt.Errorf("failed to create review item: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, false, fmt.Errorf("failed to create review item: %w", err)
	}
	if affected == 1 {
		return &row, true, nil
	}

	existing, err := r.Get(ctx, row.UserID, row.ItemID)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

// Update runs fn against the locked current state of an item and saves the result
func (r *ReviewItemRepository) Update(ctx context.Context, userID, itemID string, fn func(*models.ReviewItem) error) (*models.ReviewItem, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := "SELECT " + reviewItemColumns + " FROM review_items WHERE user_id = $1 AND item_id = $2"
	if r.db.DriverName() == DriverPostgres {
		query += " FOR UPDATE"
	}

	var item models.ReviewItem
	err = tx.GetContext(ctx, &item, query, userID, itemID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock review item: %w", err)
	}

	if err := fn(&item); err != nil {
		return nil, err
	}
	normalizeReviewItem(&item)

	_, err = tx.ExecContext(ctx, `
		UPDATE review_items SET
			repetition_count = $1,
			interval_days = $2,
			ease_factor = $3,
			last_grade = $4,
			next_review_at = $5,
			updated_at = $6
		WHERE id = $7
	`, item.RepetitionCount, item.IntervalDays, item.EaseFactor, item.LastGrade,
		item.NextReviewAt, item.UpdatedAt, item.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to update review item: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit review item: %w", err)
	}
	return &item, nil
}

// ListDue returns a user's items due at now, earliest first
func (r *ReviewItemRepository) ListDue(ctx context.Context, userID string, now time.Time) ([]models.ReviewItem, error) {
	items := []models.ReviewItem{}
	err := r.db.SelectContext(ctx, &items, `
		SELECT `+reviewItemColumns+` FROM review_items
		WHERE user_id = $1 AND next_review_at <= $2
		ORDER BY next_review_at ASC
	`, userID, dbTime(now))
	if err != nil {
		return nil, fmt.Errorf("failed to get due review items: %w", err)
	}
	return items, nil
}

// DueCounts returns the number of due items per user
func (r *ReviewItemRepository) DueCounts(ctx context.Context, now time.Time) (map[string]int, error) {
	var rows []struct {
		UserID string `db:"user_id"`
		Due    int    `db:"due"`
	}
	err := r.db.SelectContext(ctx, &rows, `
		SELECT user_id, COUNT(*) AS due FROM review_items
		WHERE next_review_at <= $1
		GROUP BY user_id
	`, dbTime(now))
	if err != nil {
		return nil, fmt.Errorf("failed to count due review items: %w", err)
	}

	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[row.UserID] = row.Due
	}
	return counts, nil
}

func normalizeReviewItem(item *models.ReviewItem) {
	item.NextReviewAt = dbTime(item.NextReviewAt)
	item.CreatedAt = dbTime(item.CreatedAt)
	item.UpdatedAt = dbTime(item.UpdatedAt)
}
