package spaced_repetition

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/example/examprep/pkg/models"
)

// Service schedules reviews for users on top of a Store
type Service struct {
	store  Store
	sm2    *SM2
	logger *slog.Logger
	now    func() time.Time
}

// Option configures a Service
type Option func(*Service)

// WithClock replaces the wall clock, mainly for tests
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithSM2 replaces the default algorithm parameters
func WithSM2(sm2 *SM2) Option {
	return func(s *Service) { s.sm2 = sm2 }
}

// NewService creates a review service
func NewService(store Store, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		store:  store,
		sm2:    NewSM2(),
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// StartLearning creates the review item for a user and learning item.
// Calling it again returns the existing item with created set to false.
func (s *Service) StartLearning(ctx context.Context, userID, itemID string) (*models.ReviewItem, bool, error) {
	if err := validKey(userID, itemID); err != nil {
		return nil, false, err
	}

	item, created, err := s.store.Create(ctx, s.sm2.NewItem(userID, itemID, s.now()))
	if err != nil {
		return nil, false, fmt.Errorf("failed to start learning %s: %w", itemID, err)
	}
	if created {
		s.logger.Info("started learning", "user_id", userID, "item_id", itemID, "next_review_at", item.NextReviewAt)
	} else {
		s.logger.Debug("already learning", "user_id", userID, "item_id", itemID)
	}
	return item, created, nil
}

// Review applies a graded review to a user's item
func (s *Service) Review(ctx context.Context, userID, itemID string, grade int) (*models.ReviewItem, error) {
	if err := validKey(userID, itemID); err != nil {
		return nil, err
	}

	item, err := s.store.Update(ctx, userID, itemID, func(item *models.ReviewItem) error {
		return s.sm2.Apply(item, grade, s.now())
	})
	if err != nil {
		return nil, fmt.Errorf("failed to review %s: %w", itemID, err)
	}

	s.logger.Info("reviewed item",
		"user_id", userID,
		"item_id", itemID,
		"grade", grade,
		"repetition_count", item.RepetitionCount,
		"interval_days", item.IntervalDays,
		"ease_factor", item.EaseFactor,
	)
	return item, nil
}

// Due returns the user's items due for review now
func (s *Service) Due(ctx context.Context, userID string) ([]models.ReviewItem, error) {
	items, err := s.store.ListDue(ctx, userID, s.now())
	if err != nil {
		return nil, fmt.Errorf("failed to list due items: %w", err)
	}
	return items, nil
}

func validKey(userID, itemID string) error {
	if strings.TrimSpace(userID) == "" || strings.TrimSpace(itemID) == "" {
		return ErrMissingKey
	}
	return nil
}
