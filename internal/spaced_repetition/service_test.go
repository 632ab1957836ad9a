package spaced_repetition_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	sr "github.com/example/examprep/internal/spaced_repetition"
)

func newService(clock *time.Time) *sr.Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return sr.NewService(sr.NewMemoryStore(), logger, sr.WithClock(func() time.Time { return *clock }))
}

func TestStartLearning_Idempotent(t *testing.T) {
	ctx := context.Background()
	clock := now
	svc := newService(&clock)

	first, created, err := svc.StartLearning(ctx, "u1", "card")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !created {
		t.Error("expected first call to create the item")
	}
	if first.RepetitionCount != 0 || first.EaseFactor != 2.5 || first.LastGrade != 3 {
		t.Errorf("unexpected initial state: %+v", first)
	}
	if !first.NextReviewAt.Equal(now.Add(sr.Day)) {
		t.Errorf("expected first review in one day, got %v", first.NextReviewAt)
	}

	clock = now.Add(time.Hour)
	second, created, err := svc.StartLearning(ctx, "u1", "card")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created {
		t.Error("expected second call to report an existing item")
	}
	if second.ID != first.ID || !second.NextReviewAt.Equal(first.NextReviewAt) {
		t.Errorf("existing item was replaced: %+v", second)
	}
}

func TestReview(t *testing.T) {
	ctx := context.Background()
	clock := now
	svc := newService(&clock)

	if _, _, err := svc.StartLearning(ctx, "u1", "card"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	clock = now.Add(sr.Day)
	item, err := svc.Review(ctx, "u1", "card", sr.GradePerfect)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if item.RepetitionCount != 1 || item.IntervalDays != 1 {
		t.Errorf("unexpected state after first pass: %+v", item)
	}
	if !item.NextReviewAt.Equal(clock.Add(sr.Day)) {
		t.Errorf("expected next review a day after the review, got %v", item.NextReviewAt)
	}

	if _, err := svc.Review(ctx, "u1", "card", 9); !errors.Is(err, sr.ErrInvalidGrade) {
		t.Errorf("expected ErrInvalidGrade, got %v", err)
	}
}

func TestReview_UnknownItem(t *testing.T) {
	clock := now
	svc := newService(&clock)

	if _, err := svc.Review(context.Background(), "u1", "missing", 4); !errors.Is(err, sr.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestService_RejectsEmptyKeys(t *testing.T) {
	clock := now
	svc := newService(&clock)

	if _, _, err := svc.StartLearning(context.Background(), " ", "card"); !errors.Is(err, sr.ErrMissingKey) {
		t.Errorf("expected ErrMissingKey, got %v", err)
	}
	if _, err := svc.Review(context.Background(), "u1", "", 4); !errors.Is(err, sr.ErrMissingKey) {
		t.Errorf("expected ErrMissingKey, got %v", err)
	}
}

func TestReview_ConcurrentReviewsAreSerialized(t *testing.T) {
	ctx := context.Background()
	clock := now
	svc := newService(&clock)

	if _, _, err := svc.StartLearning(ctx, "u1", "card"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	const reviews = 30
	var wg sync.WaitGroup
	errs := make(chan error, reviews)
	for i := 0; i < reviews; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.Review(ctx, "u1", "card", sr.GradeCorrectDifficult); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("unexpected error: %v", err)
	}

	clock = now.Add(2 * 36500 * sr.Day)
	due, err := svc.Due(ctx, "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(due) != 1 {
		t.Fatalf("expected 1 due item, got %d", len(due))
	}
	if due[0].RepetitionCount != reviews {
		t.Errorf("lost update: expected repetition %d, got %d", reviews, due[0].RepetitionCount)
	}
}

func TestDue(t *testing.T) {
	ctx := context.Background()
	clock := now
	svc := newService(&clock)

	for _, id := range []string{"a", "b"} {
		if _, _, err := svc.StartLearning(ctx, "u1", id); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if _, _, err := svc.StartLearning(ctx, "u2", "a"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	due, err := svc.Due(ctx, "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(due) != 0 {
		t.Errorf("expected nothing due yet, got %d", len(due))
	}

	clock = now.Add(sr.Day)
	due, err = svc.Due(ctx, "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(due) != 2 {
		t.Errorf("expected 2 due items, got %d", len(due))
	}
}

func TestMemoryStore_DueCounts(t *testing.T) {
	ctx := context.Background()
	clock := now
	store := sr.NewMemoryStore()
	svc := sr.NewService(store, slog.New(slog.NewTextHandler(io.Discard, nil)), sr.WithClock(func() time.Time { return clock }))

	for _, key := range [][2]string{{"u1", "a"}, {"u1", "b"}, {"u2", "a"}} {
		if _, _, err := svc.StartLearning(ctx, key[0], key[1]); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	counts, err := store.DueCounts(ctx, now.Add(sr.Day))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if counts["u1"] != 2 || counts["u2"] != 1 {
		t.Errorf("unexpected counts: %v", counts)
	}
}
