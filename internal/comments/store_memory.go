package comments

import (
	"context"
	"sort"
	"sync"
)

// InMemoryStore keeps comments in process memory for unit tests.
type InMemoryStore struct {
	mu     sync.RWMutex
	rows   []Comment
	nextID int64
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{nextID: 1}
}

func (s *InMemoryStore) Insert(_ context.Context, comment Comment) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	comment.ID = s.nextID
	s.nextID++
	s.rows = append(s.rows, comment)
	return comment.ID, nil
}

func (s *InMemoryStore) ListForPhoto(_ context.Context, photoID int64, limit int) ([]Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []Comment
	for _, c := range s.rows {
		if c.PhotoID == photoID {
			matched = append(matched, c)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID > matched[j].ID
	})
	if limit >= 0 && limit < len(matched) {
		matched = matched[:limit]
	}
	return matched, nil
}

func (s *InMemoryStore) CountForPhoto(_ context.Context, photoID int64) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int64
	for _, c := range s.rows {
		if c.PhotoID == photoID {
			count++
		}
	}
	return count, nil
}

func (s *InMemoryStore) DeleteForPhoto(_ context.Context, photoID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.rows[:0]
	for _, c := range s.rows {
		if c.PhotoID != photoID {
			kept = append(kept, c)
		}
	}
	s.rows = kept
	return nil
}
