package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/example/examprep/pkg/models"
)

// Default notification window, in UTC hours, inclusive
const (
	DefaultNotificationStartHour = 8
	DefaultNotificationEndHour   = 22
	DefaultInterval              = time.Hour
)

// Notifier is told how many reviews a user has waiting
type Notifier interface {
	NotifyDue(ctx context.Context, userID string, due int) error
}

// DueSource reports due review items
type DueSource interface {
	DueCounts(ctx context.Context, now time.Time) (map[string]int, error)
	ListDue(ctx context.Context, userID string, now time.Time) ([]models.ReviewItem, error)
}

// Config controls when reminders go out
type Config struct {
	Interval  time.Duration
	StartHour int
	EndHour   int
}

// DefaultConfig returns the default reminder schedule
func DefaultConfig() Config {
	return Config{
		Interval:  DefaultInterval,
		StartHour: DefaultNotificationStartHour,
		EndHour:   DefaultNotificationEndHour,
	}
}

// Validate checks the schedule
func (c Config) Validate() error {
	if c.Interval <= 0 {
		return fmt.Errorf("reminder interval must be positive, got %s", c.Interval)
	}
	if c.StartHour < 0 || c.StartHour > 23 || c.EndHour < 0 || c.EndHour > 23 {
		return fmt.Errorf("notification hours must be within 0-23, got %d-%d", c.StartHour, c.EndHour)
	}
	return nil
}

// InWindow reports whether hour falls in the notification window.
// A start after the end describes a window spanning midnight.
func (c Config) InWindow(hour int) bool {
	if c.StartHour <= c.EndHour {
		return hour >= c.StartHour && hour <= c.EndHour
	}
	return hour >= c.StartHour || hour <= c.EndHour
}

// Scheduler sends due-review reminders on a fixed interval
type Scheduler struct {
	scheduler *gocron.Scheduler
	source    DueSource
	notifier  Notifier
	config    Config
	logger    *slog.Logger
	now       func() time.Time
}

// New creates a new scheduler instance
func New(source DueSource, notifier Notifier, config Config, logger *slog.Logger) (*Scheduler, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		source:    source,
		notifier:  notifier,
		config:    config,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}, nil
}

// Start begins running the reminder job in the background
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.scheduler.Every(s.config.Interval).Do(func() {
		if _, err := s.RunOnce(ctx, s.now()); err != nil {
			s.logger.Error("reminder run failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule reminders: %w", err)
	}

	// Start the scheduler in a non-blocking manner
	s.scheduler.StartAsync()
	s.logger.Info("reminder scheduler started",
		"interval", s.config.Interval.String(),
		"start_hour", s.config.StartHour,
		"end_hour", s.config.EndHour,
	)
	return nil
}

// Stop terminates all scheduled tasks
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// RunOnce notifies every user with due reviews at now and returns how many
// users were notified. Users are processed in ID order and a failed
// notification does not stop the others.
func (s *Scheduler) RunOnce(ctx context.Context, now time.Time) (int, error) {
	hour := now.UTC().Hour()
	if !s.config.InWindow(hour) {
		s.logger.Debug("outside notification hours, skipping reminders",
			"hour", hour, "start_hour", s.config.StartHour, "end_hour", s.config.EndHour)
		return 0, nil
	}

	counts, err := s.source.DueCounts(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("failed to count due reviews: %w", err)
	}

	users := make([]string, 0, len(counts))
	for user, due := range counts {
		if due > 0 {
			users = append(users, user)
		}
	}
	sort.Strings(users)

	var (
		sent int
		errs []error
	)
	for _, user := range users {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		if err := s.notifier.NotifyDue(ctx, user, counts[user]); err != nil {
			s.logger.Error("failed to send reminder", "user_id", user, "error", err)
			errs = append(errs, fmt.Errorf("user %s: %w", user, err))
			continue
		}
		sent++
	}

	s.logger.Info("reminders sent", "users", sent, "failed", len(errs))
	return sent, errors.Join(errs...)
}

// RunManualCheck forces a check for a specific user, ignoring the notification window
func (s *Scheduler) RunManualCheck(ctx context.Context, userID string) (int, error) {
	due, err := s.source.ListDue(ctx, userID, s.now())
	if err != nil {
		return 0, fmt.Errorf("failed to get due reviews: %w", err)
	}
	if len(due) == 0 {
		return 0, nil
	}
	if err := s.notifier.NotifyDue(ctx, userID, len(due)); err != nil {
		return 0, err
	}
	return len(due), nil
}

// LogNotifier writes reminders to the log instead of a broker
type LogNotifier struct {
	Logger *slog.Logger
}

// NotifyDue logs the reminder
func (n LogNotifier) NotifyDue(_ context.Context, userID string, due int) error {
	n.Logger.Info("reviews due", "user_id", userID, "due_count", due)
	return nil
}
