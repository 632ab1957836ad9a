package spaced_repetition

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/example/examprep/pkg/models"
)

// Store persists review items.
// Update must run fn with the current state of the item and save the
// result without letting another Update of the same item interleave.
type Store interface {
	Get(ctx context.Context, userID, itemID string) (*models.ReviewItem, error)
	// Create saves item unless the user already has it. It returns the
	// stored item and whether it was created.
	Create(ctx context.Context, item *models.ReviewItem) (*models.ReviewItem, bool, error)
	Update(ctx context.Context, userID, itemID string, fn func(*models.ReviewItem) error) (*models.ReviewItem, error)
	ListDue(ctx context.Context, userID string, now time.Time) ([]models.ReviewItem, error)
	// DueCounts returns the number of due items per user
	DueCounts(ctx context.Context, now time.Time) (map[string]int, error)
}

type itemKey struct {
	userID string
	itemID string
}

// MemoryStore is an in-process Store with one lock per item
type MemoryStore struct {
	mu    sync.Mutex
	items map[itemKey]*models.ReviewItem
	locks map[itemKey]*sync.Mutex
}

// NewMemoryStore creates an empty store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		items: make(map[itemKey]*models.ReviewItem),
		locks: make(map[itemKey]*sync.Mutex),
	}
}

func (s *MemoryStore) Get(_ context.Context, userID, itemID string) (*models.ReviewItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[itemKey{userID, itemID}]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *item
	return &cp, nil
}

func (s *MemoryStore) Create(_ context.Context, item *models.ReviewItem) (*models.ReviewItem, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := itemKey{item.UserID, item.ItemID}
	if existing, ok := s.items[key]; ok {
		cp := *existing
		return &cp, false, nil
	}

	stored := *item
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	s.items[key] = &stored
	s.locks[key] = &sync.Mutex{}

	cp := stored
	return &cp, true, nil
}

func (s *MemoryStore) Update(_ context.Context, userID, itemID string, fn func(*models.ReviewItem) error) (*models.ReviewItem, error) {
	key := itemKey{userID, itemID}

	s.mu.Lock()
	lock, ok := s.locks[key]
	s.mu.Unlock()
	if !ok {
		return nil, ErrNotFound
	}

	lock.Lock()
	defer lock.Unlock()

	s.mu.Lock()
	working := *s.items[key]
	s.mu.Unlock()

	if err := fn(&working); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.items[key] = &working
	s.mu.Unlock()

	cp := working
	return &cp, nil
}

func (s *MemoryStore) ListDue(_ context.Context, userID string, now time.Time) ([]models.ReviewItem, error) {
	s.mu.Lock()
	var items []models.ReviewItem
	for key, item := range s.items {
		if key.userID == userID {
			items = append(items, *item)
		}
	}
	s.mu.Unlock()

	sort.Slice(items, func(i, j int) bool {
		return items[i].NextReviewAt.Before(items[j].NextReviewAt)
	})
	return DueItems(items, now), nil
}

func (s *MemoryStore) DueCounts(_ context.Context, now time.Time) (map[string]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	counts := make(map[string]int)
	for key, item := range s.items {
		if IsDue(*item, now) {
			counts[key.userID]++
		}
	}
	return counts, nil
}
