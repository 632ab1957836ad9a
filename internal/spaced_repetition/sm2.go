package spaced_repetition

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/example/examprep/pkg/models"
)

var (
	// ErrNotFound is returned when a user has no review item for a learning item
	ErrNotFound = errors.New("review item not found")
	// ErrInvalidGrade is returned for grades outside 0..MaxGrade
	ErrInvalidGrade = errors.New("invalid grade")
	// ErrMissingKey is returned when a user or item identifier is empty
	ErrMissingKey = errors.New("user and item identifiers are required")
)

// Day is the length of one review interval unit
const Day = 24 * time.Hour

// Grade is the recall quality reported for a review
type Grade = int

const (
	// Complete blackout, unable to recall
	GradeBlackout Grade = 0
	// Incorrect response but remembered upon seeing the correct answer
	GradeIncorrect Grade = 1
	// Incorrect response but the correct answer felt familiar
	GradeIncorrectFamiliar Grade = 2
	// Correct response but required significant effort
	GradeCorrectDifficult Grade = 3
	// Correct response after some hesitation
	GradeCorrectHesitation Grade = 4
	// Perfect response with no hesitation
	GradePerfect Grade = 5
)

// SM2 implements the SuperMemo-2 algorithm for spaced repetition
type SM2 struct {
	// Grades at or above this are a pass
	PassThreshold int
	MaxGrade      int
	// Ease never drops below this
	MinEase float64
	// Upper bound on the interval in days, keeps next review times representable
	MaxInterval int

	// State of a freshly started item
	InitialEase     float64
	InitialInterval int
	DefaultGrade    int
}

// NewSM2 creates an SM2 with the standard parameters
func NewSM2() *SM2 {
	return &SM2{
		PassThreshold:   GradeCorrectDifficult,
		MaxGrade:        GradePerfect,
		MinEase:         1.3,
		MaxInterval:     36500,
		InitialEase:     2.5,
		InitialInterval: 1,
		DefaultGrade:    GradeCorrectDifficult,
	}
}

// NewItem returns the initial state for a user starting to learn an item
func (sm *SM2) NewItem(userID, itemID string, now time.Time) *models.ReviewItem {
	return &models.ReviewItem{
		UserID:          userID,
		ItemID:          itemID,
		RepetitionCount: 0,
		IntervalDays:    sm.InitialInterval,
		EaseFactor:      sm.InitialEase,
		LastGrade:       sm.DefaultGrade,
		NextReviewAt:    now.Add(time.Duration(sm.InitialInterval) * Day),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// Apply updates an item after a review with the given grade.
// A pass advances the repetition and grows the interval using the ease
// in effect before the review; a fail resets the item to a one day
// interval and keeps its ease.
func (sm *SM2) Apply(item *models.ReviewItem, grade int, now time.Time) error {
	if grade < 0 || grade > sm.MaxGrade {
		return fmt.Errorf("%w: %d not in 0..%d", ErrInvalidGrade, grade, sm.MaxGrade)
	}

	if grade >= sm.PassThreshold {
		item.RepetitionCount++
		switch item.RepetitionCount {
		case 1:
			item.IntervalDays = 1
		case 2:
			item.IntervalDays = 6
		default:
			next := math.Round(float64(item.IntervalDays) * item.EaseFactor)
			item.IntervalDays = int(math.Min(next, float64(sm.MaxInterval)))
		}
		item.EaseFactor = sm.NextEase(item.EaseFactor, grade)
	} else {
		item.RepetitionCount = 0
		item.IntervalDays = 1
	}

	item.LastGrade = grade
	item.NextReviewAt = now.Add(time.Duration(item.IntervalDays) * Day)
	item.UpdatedAt = now
	return nil
}

// NextEase applies the ease recurrence for a grade
func (sm *SM2) NextEase(ease float64, grade int) float64 {
	q := float64(sm.MaxGrade - grade)
	return math.Max(sm.MinEase, ease+(0.1-q*(0.08+q*0.02)))
}

// IsDue reports whether an item should be reviewed at now
func IsDue(item models.ReviewItem, now time.Time) bool {
	return !item.NextReviewAt.After(now)
}

// DueItems returns the items due at now, in input order
func DueItems(items []models.ReviewItem, now time.Time) []models.ReviewItem {
	due := make([]models.ReviewItem, 0, len(items))
	for _, item := range items {
		if IsDue(item, now) {
			due = append(due, item)
		}
	}
	return due
}
